// Package token implements the session token codec.
// Session tokens are compact signed JWTs carrying the subject id, username
// and role. The same codec verifies remote ID tokens against a caller
// supplied public key during federation.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/authgate/authgate/internal/db/models"
)

// Claims is the session token payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uint64      `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// Codec signs and verifies session tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New creates a Codec signing with the given shared secret and token lifetime.
func New(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue mints a signed session token for the given user.
// Signing is synchronous and never touches the network.
func (c *Codec) Issue(user *models.User) (string, error) {
	now := c.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	return signed, nil
}

// Verify checks signature and expiry against the shared secret and returns
// the session claims.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := new(Claims)

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(_ *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// VerifyWithKey checks signature and expiry of a third-party token against
// the given public key and returns its raw claims. Used for provider issued
// ID tokens, which are signed asymmetrically.
func (c *Codec) VerifyWithKey(tokenString string, key interface{}) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(_ *jwt.Token) (interface{}, error) { return key, nil },
		jwt.WithValidMethods([]string{
			jwt.SigningMethodRS256.Alg(),
			jwt.SigningMethodRS384.Alg(),
			jwt.SigningMethodRS512.Alg(),
			jwt.SigningMethodES256.Alg(),
			jwt.SigningMethodES384.Alg(),
		}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// KeyID decodes the token header without verifying the signature and returns
// the signing key id. Used to pick the matching key from a provider's
// published key set before verification.
func KeyID(tokenString string) (string, error) {
	tok, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", ErrInvalidToken
	}

	kid, ok := tok.Header["kid"].(string)
	if !ok || kid == "" {
		return "", ErrNoKeyID
	}

	return kid, nil
}
