package auth

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndExtract(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret", time.Hour)

	tok, err := m.GenerateToken("a@x.com", "USER")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	email, err := m.ExtractEmail(tok)
	if err != nil {
		t.Fatalf("ExtractEmail error: %v", err)
	}
	if email != "a@x.com" {
		t.Fatalf("email mismatch: got %q want %q", email, "a@x.com")
	}

	role, err := m.ExtractRole(tok)
	if err != nil {
		t.Fatalf("ExtractRole error: %v", err)
	}
	if role != "USER" {
		t.Fatalf("role mismatch: got %q want %q", role, "USER")
	}
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret", time.Hour)

	tok, err := m.GenerateToken("a@x.com", "ADMIN")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if !m.ValidateToken(tok, "a@x.com") {
		t.Fatalf("token should validate against its own subject")
	}
	if m.ValidateToken(tok, "b@x.com") {
		t.Fatalf("token should not validate against a different subject")
	}
}

func TestExpiredToken(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", -1*time.Second)

	tok, err := m.GenerateToken("a@x.com", "USER")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = m.ExtractEmail(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	if m.ValidateToken(tok, "a@x.com") {
		t.Fatalf("expired token must not validate")
	}
}

func TestWrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewManager("right-secret", time.Hour)
	verifier := NewManager("wrong-secret", time.Hour)

	tok, err := issuer.GenerateToken("a@x.com", "USER")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := verifier.ExtractEmail(tok); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for wrong key, got %v", err)
	}
	if verifier.ValidateToken(tok, "a@x.com") {
		t.Fatalf("token signed with another key must not validate")
	}
}

func TestMalformedToken(t *testing.T) {
	t.Parallel()

	m := NewManager("k", time.Hour)

	if _, err := m.ExtractEmail("not.a.jwt"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
	if _, err := m.ExtractRole(""); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for empty token, got %v", err)
	}
}
