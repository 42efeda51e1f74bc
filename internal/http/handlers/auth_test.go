package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cataloghub/cataloghub/internal/domain/user"
	"github.com/cataloghub/cataloghub/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

type fakeAuthService struct {
	registerFn func(ctx context.Context, req user.RegisterRequest) (user.AuthResult, error)
	loginFn    func(ctx context.Context, req user.LoginRequest) (user.AuthResult, error)
}

func (f *fakeAuthService) Register(ctx context.Context, req user.RegisterRequest) (user.AuthResult, error) {
	if f.registerFn != nil {
		return f.registerFn(ctx, req)
	}
	return user.AuthResult{}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req user.LoginRequest) (user.AuthResult, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, req)
	}
	return user.AuthResult{}, nil
}

func authRouter(svc handlers.Authenticator) *gin.Engine {
	h := handlers.NewAuthHandler(svc)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)

	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		registerFn func(ctx context.Context, req user.RegisterRequest) (user.AuthResult, error)
		wantStatus int
		wantToken  string
		wantMsg    string
	}{
		{
			name: "success",
			body: `{"email":"a@x.com","password":"pw1pw1"}`,
			registerFn: func(_ context.Context, req user.RegisterRequest) (user.AuthResult, error) {
				return user.AuthResult{Token: "T1", Email: req.Email, Role: "USER"}, nil
			},
			wantStatus: http.StatusOK,
			wantToken:  "T1",
		},
		{
			name: "duplicate email",
			body: `{"email":"a@x.com","password":"pw2pw2"}`,
			registerFn: func(context.Context, user.RegisterRequest) (user.AuthResult, error) {
				return user.AuthResult{}, user.ErrEmailTaken
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Email already exists",
		},
		{
			name:       "invalid body",
			body:       `{"email":"not-an-email","password":"pw1pw1"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := authRouter(&fakeAuthService{registerFn: tc.registerFn})
			w := postJSON(r, "/api/auth/register", tc.body)

			if w.Code != tc.wantStatus {
				t.Fatalf("status: got %d want %d body=%s", w.Code, tc.wantStatus, w.Body.String())
			}

			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("bad body: %v", err)
			}

			if tc.wantToken != "" && body["token"] != tc.wantToken {
				t.Fatalf("token: got %v want %q", body["token"], tc.wantToken)
			}
			if tc.wantMsg != "" && body["message"] != tc.wantMsg {
				t.Fatalf("message: got %v want %q", body["message"], tc.wantMsg)
			}
		})
	}
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	registered := false
	r := authRouter(&fakeAuthService{
		registerFn: func(context.Context, user.RegisterRequest) (user.AuthResult, error) {
			registered = true
			return user.AuthResult{}, nil
		},
	})

	// 73 bytes: one past what bcrypt will accept
	body := `{"email":"a@x.com","password":"` + strings.Repeat("p", 73) + `"}`
	w := postJSON(r, "/api/auth/register", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want %d body=%s", w.Code, http.StatusBadRequest, w.Body.String())
	}
	if registered {
		t.Fatalf("an overlong password must fail validation before reaching the service")
	}

	var resp bindErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	found := false
	for _, fe := range resp.Fields {
		if fe.Field == "password" && fe.Rule == "max" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a max violation on password, got %+v", resp.Fields)
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		loginFn    func(ctx context.Context, req user.LoginRequest) (user.AuthResult, error)
		wantStatus int
		wantMsg    string
	}{
		{
			name: "success",
			body: `{"email":"a@x.com","password":"pw1"}`,
			loginFn: func(_ context.Context, req user.LoginRequest) (user.AuthResult, error) {
				return user.AuthResult{Token: "T2", Email: req.Email, Role: "USER"}, nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "bad credentials",
			body: `{"email":"a@x.com","password":"wrong"}`,
			loginFn: func(context.Context, user.LoginRequest) (user.AuthResult, error) {
				return user.AuthResult{}, user.ErrInvalidCredentials
			},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid credentials",
		},
		{
			name:       "missing password",
			body:       `{"email":"a@x.com"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := authRouter(&fakeAuthService{loginFn: tc.loginFn})
			w := postJSON(r, "/api/auth/login", tc.body)

			if w.Code != tc.wantStatus {
				t.Fatalf("status: got %d want %d body=%s", w.Code, tc.wantStatus, w.Body.String())
			}

			if tc.wantStatus == http.StatusOK {
				var res user.AuthResult
				if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
					t.Fatalf("bad body: %v", err)
				}
				if res.Token == "" || res.Email != "a@x.com" || res.Role != "USER" {
					t.Fatalf("auth result: %+v", res)
				}
			}

			if tc.wantMsg != "" {
				var body map[string]any
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("bad body: %v", err)
				}
				if body["message"] != tc.wantMsg {
					t.Fatalf("message: got %v want %q", body["message"], tc.wantMsg)
				}
			}
		})
	}
}
