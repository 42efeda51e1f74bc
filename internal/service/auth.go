// Package service holds the business logic between the HTTP handlers and the
// Mongo repositories: registration/login on one side, catalog CRUD on the
// other.
package service

import (
	"context"
	"errors"

	"github.com/cataloghub/cataloghub/internal/auth"
	"github.com/cataloghub/cataloghub/internal/domain/user"
	"github.com/cataloghub/cataloghub/internal/repo/mongodb"
	"github.com/cataloghub/cataloghub/internal/security"
)

type UserStore interface {
	Save(ctx context.Context, u *user.User) error
	GetByEmail(ctx context.Context, email string) (user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type AuthService struct {
	users  UserStore
	hasher *security.Hasher
	jwt    *auth.Manager
}

func NewAuthService(users UserStore, hasher *security.Hasher, jwt *auth.Manager) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Register creates a user and hands back a signed token. The existence check
// followed by the insert is not atomic; two racing registrations for the same
// email can both pass the check. Known gap, carried over from the original
// contract.
func (s *AuthService) Register(ctx context.Context, req user.RegisterRequest) (user.AuthResult, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)

	if err != nil {
		return user.AuthResult{}, err
	}

	if exists {
		return user.AuthResult{}, user.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.Password)

	if err != nil {
		return user.AuthResult{}, err
	}

	u := user.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         user.NormalizeRole(req.Role),
	}

	err = s.users.Save(ctx, &u)

	if err != nil {
		return user.AuthResult{}, err
	}

	token, err := s.jwt.GenerateToken(u.Email, u.Role)

	if err != nil {
		return user.AuthResult{}, err
	}

	return user.AuthResult{
		Token: token,
		Email: u.Email,
		Role:  u.Role,
	}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password both come back as the same ErrInvalidCredentials so the response
// does not reveal whether the account exists.
func (s *AuthService) Login(ctx context.Context, req user.LoginRequest) (user.AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)

	if err != nil {
		if errors.Is(err, mongodb.ErrUserNotFound) {
			return user.AuthResult{}, user.ErrInvalidCredentials
		}

		return user.AuthResult{}, err
	}

	err = s.hasher.Check(u.PasswordHash, req.Password)

	if err != nil {
		return user.AuthResult{}, user.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(u.Email, u.Role)

	if err != nil {
		return user.AuthResult{}, err
	}

	return user.AuthResult{
		Token: token,
		Email: u.Email,
		Role:  u.Role,
	}, nil
}
