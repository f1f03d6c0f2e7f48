package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashVerify_Roundtrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "secret123", hash)

	ok, err := h.Verify("secret123", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_WrongPasswordIsFalseNotError(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)

	ok, err := h.Verify("not-the-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_MalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	ok, err := h.Verify("secret123", "definitely-not-a-bcrypt-hash")
	assert.False(t, ok)
	require.ErrorIs(t, err, ErrMalformedHash)
}

func TestHash_NonDeterministic(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("secret123")
	require.NoError(t, err)
	second, err := h.Hash("secret123")
	require.NoError(t, err)

	// Fresh salt every time.
	assert.NotEqual(t, first, second)
}

func TestNewHasher_CostOutOfRangeFallsBack(t *testing.T) {
	h := NewHasher(0)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
