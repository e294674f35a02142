package sso

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/rs/zerolog/log"

	"github.com/authgate/authgate/internal/token"
)

// verifyIDToken validates a provider issued ID token against the provider's
// published key set. The token header names the signing key by id; the
// matching key is fetched from jwksURI, exported to its raw public form and
// handed to the codec for signature and expiry verification.
func (s *Service) verifyIDToken(ctx context.Context, idToken, jwksURI string) (jwt.MapClaims, error) {
	kid, err := token.KeyID(idToken)
	if err != nil {
		return nil, err
	}

	set, err := jwk.Fetch(ctx, jwksURI, jwk.WithHTTPClient(s.client))
	if err != nil {
		log.Error().Err(err).Str("jwks_uri", jwksURI).Msg("failed to fetch provider key set")
		return nil, ErrFederationUnreachable
	}

	key, found := set.LookupKeyID(kid)
	if !found {
		log.Error().Str("kid", kid).Str("jwks_uri", jwksURI).Msg("no key with kid in provider key set")
		return nil, ErrKeyNotFound
	}

	var rawKey interface{}
	if err := jwk.Export(key, &rawKey); err != nil {
		log.Error().Err(err).Str("kid", kid).Msg("failed to export raw verification key")
		return nil, ErrKeyNotFound
	}

	return s.codec.VerifyWithKey(idToken, rawKey)
}
