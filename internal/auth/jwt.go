package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies the signed identity tokens. The subject claim
// carries the user's email; the key is static process configuration.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (m *Manager) GenerateToken(email, role string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256

		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// ExtractEmail returns the subject of a token. Expired or garbage input comes
// back as ErrTokenExpired / ErrTokenMalformed, never a panic.
func (m *Manager) ExtractEmail(tokenStr string) (string, error) {
	claims, err := m.parse(tokenStr)

	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}

func (m *Manager) ExtractRole(tokenStr string) (string, error) {
	claims, err := m.parse(tokenStr)

	if err != nil {
		return "", err
	}

	return claims.Role, nil
}

// ValidateToken reports whether the token verifies, is unexpired and carries
// the expected email as its subject.
func (m *Manager) ValidateToken(tokenStr, expectedEmail string) bool {
	claims, err := m.parse(tokenStr)

	if err != nil {
		return false
	}

	return claims.Subject == expectedEmail
}
