package passwordservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_Password(t *testing.T) {
	h := NewHasherWithCost(bcrypt.MinCost)
	hash, err := h.HashPassword("Secret123!")
	require.NoError(t, err)

	assert.NoError(t, h.ComparePasswordHash("Secret123!", hash))
	assert.Error(t, h.ComparePasswordHash("wrong", hash))
}

func TestHasher_HashString(t *testing.T) {
	h := NewHasher()
	assert.Equal(t, "", h.HashString(""))
	digest := h.HashString("refresh-token")
	assert.Len(t, digest, 64)
	assert.True(t, h.CheckHash("refresh-token", digest))
	assert.False(t, h.CheckHash("other", digest))
}
