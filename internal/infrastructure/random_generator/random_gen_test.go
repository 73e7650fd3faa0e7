package randomgenerator

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNumericCode(t *testing.T) {
	rg := NewRandomGenerator()
	digits := regexp.MustCompile(`^[0-9]{6}$`)
	for i := 0; i < 50; i++ {
		code, err := rg.GenerateNumericCode(6)
		require.NoError(t, err)
		assert.Regexp(t, digits, code)
	}
	_, err := rg.GenerateNumericCode(0)
	assert.Error(t, err)
}

func TestGenerateRandomToken_URLSafe(t *testing.T) {
	rg := NewRandomGenerator()
	a, err := rg.GenerateRandomToken(16)
	require.NoError(t, err)
	b, err := rg.GenerateRandomToken(16)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, ".")
}
