package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	// Hash generates a salted one-way hash of a plaintext password.
	Hash(password string) (string, error)

	// Check reports whether password matches the stored hash.
	Check(password, hash string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt-backed PasswordHasher. Costs outside bcrypt's
// accepted range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
