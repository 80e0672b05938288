package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("supersecret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "supersecret", hash)

	require.NoError(t, h.Compare(hash, "supersecret"))
	require.Error(t, h.Compare(hash, "wrong"))
}

func TestBcryptHasher_DistinctHashes(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("supersecret")
	require.NoError(t, err)
	second, err := h.Hash("supersecret")
	require.NoError(t, err)
	// bcrypt salts each hash, so equal inputs produce distinct hashes.
	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_OutOfRangeCostFallsBack(t *testing.T) {
	h := NewBcryptHasher(99)

	hash, err := h.Hash("supersecret")
	require.NoError(t, err)
	require.NoError(t, h.Compare(hash, "supersecret"))
}
