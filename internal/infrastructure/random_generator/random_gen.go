package randomgenerator

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"

	"github.com/mikiasgoitom/Coursely/internal/domain/contract"
)

type RandomGenerator struct{}

func NewRandomGenerator() contract.IRandomGenerator {
	return &RandomGenerator{}
}

var _ (contract.IRandomGenerator) = (*RandomGenerator)(nil)

func (rg *RandomGenerator) GenerateRandomToken(n int) (string, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)

	if err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	token := base64.RawURLEncoding.EncodeToString(b)

	return token, nil
}

func (rg *RandomGenerator) GenerateNumericCode(digits int) (string, error) {
	if digits <= 0 || digits > 18 {
		return "", fmt.Errorf("unsupported code length %d", digits)
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n.Int64()), nil
}
