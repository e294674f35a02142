package sso

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/authgate/authgate/internal/db/models"
)

// providerTokens is the distilled result of a token-endpoint exchange.
type providerTokens struct {
	AccessToken string
	IDToken     string
}

// tokenResponseParser turns a provider family's token-endpoint reply into
// providerTokens. New provider families add a parser, not new conditionals
// in the login flow.
type tokenResponseParser func(body []byte) (*providerTokens, error)

// tokenResponseParsers dispatches parsing by provider family. Families not
// listed here reply with the standard JSON shape.
var tokenResponseParsers = map[models.SsoConfigType]tokenResponseParser{ //nolint:gochecknoglobals
	models.SsoTypeGitHub: parseFormTokenResponse,
}

func parserFor(t models.SsoConfigType) tokenResponseParser {
	if p, ok := tokenResponseParsers[t]; ok {
		return p
	}

	return parseJSONTokenResponse
}

// parseJSONTokenResponse handles the standard OAuth2/OIDC JSON reply.
func parseJSONTokenResponse(body []byte) (*providerTokens, error) {
	var reply struct {
		AccessToken string `json:"access_token"`
		IDToken     string `json:"id_token"`
	}

	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, errors.Wrap(err, "failed to parse token response")
	}

	return &providerTokens{AccessToken: reply.AccessToken, IDToken: reply.IDToken}, nil
}

// parseFormTokenResponse handles GitHub-style form-urlencoded replies.
func parseFormTokenResponse(body []byte) (*providerTokens, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token response")
	}

	return &providerTokens{AccessToken: values.Get("access_token")}, nil
}

// exchangeCode posts the authorization code to the provider's token endpoint
// and parses the reply according to the provider family.
// Codes are single use, so transport failures are never retried.
func (s *Service) exchangeCode(ctx context.Context, code string, cfg *models.SsoConfig) (*providerTokens, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {cfg.CallbackURL},
		"client_id":     {cfg.ClientID},
		"client_secret": {cfg.ClientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build token request")
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("name", cfg.Name).Msg("token endpoint unreachable")
		return nil, ErrFederationUnreachable
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrFederationUnreachable
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error().Int("status", resp.StatusCode).Str("name", cfg.Name).Msg("token endpoint rejected the exchange")
		return nil, ErrFederationUnreachable
	}

	tokens, err := parserFor(cfg.Type)(body)
	if err != nil {
		log.Error().Err(err).Str("name", cfg.Name).Msg("failed to parse token response")
		return nil, ErrFederationUnreachable
	}

	return tokens, nil
}

// fetchUserInfo reads the provider's user-info endpoint with the access token.
func (s *Service) fetchUserInfo(ctx context.Context, cfg *models.SsoConfig, accessToken string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.UserInfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build userinfo request")
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("name", cfg.Name).Msg("userinfo endpoint unreachable")
		return nil, ErrFederationUnreachable
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error().Int("status", resp.StatusCode).Str("name", cfg.Name).Msg("userinfo request rejected")
		return nil, ErrFederationUnreachable
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, ErrFederationUnreachable
	}

	return payload, nil
}
