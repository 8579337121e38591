package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("pw123")
	require.NoError(t, err)
	assert.NotContains(t, hash, "pw123")

	assert.True(t, VerifyPassword(hash, "pw123"))
	assert.False(t, VerifyPassword(hash, "pw124"))
	assert.False(t, VerifyPassword("garbage", "pw123"))
	assert.False(t, VerifyPassword("a$b", "pw123"))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("same")
	require.NoError(t, err)
	h2, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "two hashes of the same password must differ by salt")
}
