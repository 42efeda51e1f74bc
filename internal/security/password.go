package security

import "golang.org/x/crypto/bcrypt"

// Hasher wraps bcrypt so the cost is chosen once at wiring time instead of
// through a hidden package global.
type Hasher struct {
	cost int
}

// NewHasher builds a Hasher; a non-positive cost falls back to bcrypt's default.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}

	return &Hasher{cost: cost}
}

// Hash hashes a plain text password with bcrypt. The salt is random per call,
// so hashing the same password twice yields different strings.
func (h *Hasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// Check compares a bcrypt hash with a plaintext password. A malformed hash is
// just a mismatch, never a panic.
func (h *Hasher) Check(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
