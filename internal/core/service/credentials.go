package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/smartlicense/license-api/internal/core/domain"
)

// maxSecretBytes is bcrypt's input limit; longer secrets would be silently truncated.
const maxSecretBytes = 72

// BcryptHasher implements ports.SecretHasher for passwords and security answers.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, or bcrypt.DefaultCost when cost
// is outside bcrypt's accepted range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(secret string) (string, error) {
	if len(secret) > maxSecretBytes {
		return "", domain.Invalid("secret must be at most %d bytes", maxSecretBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
