package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	// low cost keeps the test fast
	h := New(bcrypt.MinCost)

	digest, err := h.Hash("s3cr3t")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	// the digest is salted, never the plaintext
	assert.NotEqual(t, "s3cr3t", digest)

	ok, err := h.Verify("s3cr3t", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", digest)
	require.NoError(t, err, "a mismatch is not an error")
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	h := New(bcrypt.MinCost)

	first, err := h.Hash("same")
	require.NoError(t, err)

	second, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two digests of the same plaintext must differ")
}

func TestVerifyMalformedDigest(t *testing.T) {
	h := New(bcrypt.MinCost)

	ok, err := h.Verify("anything", "not-a-bcrypt-digest")
	require.Error(t, err, "a malformed digest is a system error, not a mismatch")
	assert.False(t, ok)
}

func TestDefaultCost(t *testing.T) {
	h := New(0)
	assert.Equal(t, DefaultCost, h.Cost)

	var zero Hasher

	digest, err := zero.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}
