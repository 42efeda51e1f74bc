package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cataloghub/cataloghub/internal/config"
	"github.com/cataloghub/cataloghub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Register(ctx context.Context, req user.RegisterRequest) (user.AuthResult, error)
	Login(ctx context.Context, req user.LoginRequest) (user.AuthResult, error)
}

type AuthHandler struct {
	svc Authenticator
}

func NewAuthHandler(svc Authenticator) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	res, err := h.svc.Register(cctx, req)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondBadRequest(ctx, "Email already exists")
			return
		}

		RespondInternal(ctx, "Could not register user")
		return
	}

	ctx.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// bcrypt comparison plus a DB lookup; give it a little headroom
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	res, err := h.svc.Login(cctx, req)

	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			RespondUnauthorized(ctx, "Invalid credentials")
			return
		}

		RespondInternal(ctx, "Could not log in")
		return
	}

	ctx.JSON(http.StatusOK, res)
}
