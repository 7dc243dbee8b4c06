package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLegacyCipher_Deterministic(t *testing.T) {
	c, err := NewLegacyCipher("test-secret")
	require.NoError(t, err)

	first, err := c.Hash("my-password")
	require.NoError(t, err)
	second, err := c.Hash("my-password")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// one AES block, hex encoded
	assert.Len(t, first, 32)
}

func TestLegacyCipher_DifferentSecretsDiffer(t *testing.T) {
	a, err := NewLegacyCipher("secret-a")
	require.NoError(t, err)
	b, err := NewLegacyCipher("secret-b")
	require.NoError(t, err)

	da, _ := a.Hash("my-password")
	db, _ := b.Hash("my-password")
	assert.NotEqual(t, da, db)
}

func TestLegacyCipher_Compare(t *testing.T) {
	c, err := NewLegacyCipher("test-secret")
	require.NoError(t, err)

	digest, err := c.Hash("pw1234")
	require.NoError(t, err)

	assert.True(t, c.Compare("pw1234", digest))
	assert.False(t, c.Compare("pw12345", digest))
	assert.False(t, c.Compare("", digest))
	assert.False(t, c.Compare("pw1234", ""))
}

func TestLegacyCipher_LongInputSpansBlocks(t *testing.T) {
	c, err := NewLegacyCipher("test-secret")
	require.NoError(t, err)

	digest, err := c.Hash("exactly-16-bytes")
	require.NoError(t, err)
	// a full block of padding is appended
	assert.Len(t, digest, 64)
}

func TestNewLegacyCipher_RequiresSecret(t *testing.T) {
	_, err := NewLegacyCipher("")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("pw1234")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1234", digest)

	assert.True(t, h.Compare("pw1234", digest))
	assert.False(t, h.Compare("wrong", digest))
	assert.False(t, h.Compare("", digest))
	assert.False(t, h.Compare("pw1234", "not-a-bcrypt-hash"))

	_, err = h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestNewPasswordHasher(t *testing.T) {
	h, err := NewPasswordHasher("", "")
	require.NoError(t, err)
	assert.IsType(t, &BcryptHasher{}, h)

	h, err = NewPasswordHasher("legacy", "s3cret")
	require.NoError(t, err)
	assert.IsType(t, &LegacyCipher{}, h)

	_, err = NewPasswordHasher("legacy", "")
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = NewPasswordHasher("md5", "")
	assert.ErrorIs(t, err, ErrUnknownScheme)
}
