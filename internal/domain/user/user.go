package user

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultRole = "USER"

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"` // never expose hash in JSON
	Role         string             `bson:"role" json:"role"`
}

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	// bcrypt only reads the first 72 bytes; longer input is a hard error there,
	// so reject it as a validation failure instead
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"omitempty,max=40"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResult is what both register and login hand back to the client.
type AuthResult struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// NormalizeRole upper-cases a caller-supplied role, falling back to the
// default role when empty.
func NormalizeRole(role string) string {
	role = strings.TrimSpace(role)

	if role == "" {
		return DefaultRole
	}

	return strings.ToUpper(role)
}
