package token

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authgate/authgate/internal/db/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Username: "alice",
		Role:     models.RoleAdmin,
	}
}

func TestIssueAndVerify(t *testing.T) {
	codec := New("test-secret", time.Hour)

	signed, err := codec.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := codec.Verify(signed)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestVerifyWrongSecret(t *testing.T) {
	codec := New("test-secret", time.Hour)

	signed, err := codec.Issue(testUser())
	require.NoError(t, err)

	other := New("different-secret", time.Hour)

	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	codec := New("test-secret", time.Hour)

	signed, err := codec.Issue(testUser())
	require.NoError(t, err)

	// move the codec clock past the expiry
	codec.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = codec.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	codec := New("test-secret", time.Hour)

	_, err := codec.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsAsymmetricSession(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	signed, err := tok.SignedString(key)
	require.NoError(t, err)

	codec := New("test-secret", time.Hour)

	_, err = codec.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken, "session tokens are HMAC only")
}

func TestVerifyWithKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub":   "provider-subject",
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	tok.Header["kid"] = "key-1"

	signed, err := tok.SignedString(key)
	require.NoError(t, err)

	codec := New("unrelated-secret", time.Hour)

	claims, err := codec.VerifyWithKey(signed, &key.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims["email"])

	// wrong key fails
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	_, err = codec.VerifyWithKey(signed, &otherKey.PublicKey)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestKeyID(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	withKid := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{"sub": "x"})
	withKid.Header["kid"] = "key-7"

	signed, err := withKid.SignedString(key)
	require.NoError(t, err)

	kid, err := KeyID(signed)
	require.NoError(t, err)
	assert.Equal(t, "key-7", kid)

	withoutKid := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{"sub": "x"})

	signed, err = withoutKid.SignedString(key)
	require.NoError(t, err)

	_, err = KeyID(signed)
	assert.ErrorIs(t, err, ErrNoKeyID)

	_, err = KeyID("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
