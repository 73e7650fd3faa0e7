package passwordservice

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/mikiasgoitom/Coursely/internal/domain/contract"

	"golang.org/x/crypto/bcrypt"
)

type Hasher struct {
	cost int
}

// check if IHasher was implemented at compile time
var _ contract.IHasher = (*Hasher)(nil)

func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// NewHasherWithCost is used by tests to keep bcrypt fast.
func NewHasherWithCost(cost int) *Hasher {
	return &Hasher{cost: cost}
}

func (h *Hasher) HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func (h *Hasher) ComparePasswordHash(password, hashedPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("password verification failed")
		}
		return fmt.Errorf("failed to check password hash: %w", err)
	}
	return nil
}

// HashString uses SHA256; bcrypt truncates at 72 bytes which is shorter than a JWT.
func (h *Hasher) HashString(s string) string {
	if s == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", hash)
}

func (h *Hasher) CheckHash(s, hash string) bool {
	expectedHash := h.HashString(s)
	return subtle.ConstantTimeCompare([]byte(expectedHash), []byte(hash)) == 1
}
