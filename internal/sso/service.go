// Package sso implements the federation engine: provider configuration,
// the OAuth2 authorization-code login flow, optional ID token verification
// against the provider's published key set, identity resolution with
// auto-provisioning, and session issuance.
//
// The flow is stateless across requests. Everything a callback needs travels
// in the authorization code and the state parameter.
package sso

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/authgate/authgate/internal/auth"
	"github.com/authgate/authgate/internal/db/models"
	"github.com/authgate/authgate/internal/db/store"
)

// Scopes requested from every provider.
const Scopes = "openid profile email"

// roleClaim is the user-info claim carrying the provider-asserted role.
const roleClaim = "role"

// ConfigStore is the subset of the persistence layer managing SSO configs.
type ConfigStore interface {
	SsoConfigByName(name string) (*models.SsoConfig, error)
	SsoConfigs(offset, limit int) ([]models.SsoConfig, error)
	CountSsoConfigs() (int64, error)
	SaveSsoConfig(cfg *models.SsoConfig) error
	DeleteSsoConfigByName(name string) (int64, error)
}

// UserStore resolves and persists federated identities.
type UserStore interface {
	UserByEmail(email string) (*models.User, error)
	SaveUser(user *models.User) error
}

// TokenCodec issues session tokens and verifies remote ID tokens.
type TokenCodec interface {
	Issue(user *models.User) (string, error)
	VerifyWithKey(tokenString string, key interface{}) (jwt.MapClaims, error)
}

// Service provides the federation engine.
type Service struct {
	configs ConfigStore
	users   UserStore
	eula    auth.EulaStore
	codec   TokenCodec
	client  *http.Client
}

// NewService creates a new federation service. Every outbound provider call
// shares one client bounded by the given timeout; authorization codes are
// single use, so there are no retries.
func NewService(
	configs ConfigStore,
	users UserStore,
	eula auth.EulaStore,
	codec TokenCodec,
	providerTimeout time.Duration,
) *Service {
	return &Service{
		configs: configs,
		users:   users,
		eula:    eula,
		codec:   codec,
		client:  &http.Client{Timeout: providerTimeout},
	}
}

// ConfigInput carries the writable fields of an SSO configuration.
type ConfigInput struct {
	Type             models.SsoConfigType `json:"type" validate:"required"`
	Issuer           string               `json:"issuer"`
	AuthorizationURL string               `json:"authorization_url" validate:"required,url"`
	TokenURL         string               `json:"token_url" validate:"required,url"`
	UserInfoURL      string               `json:"user_info_url" validate:"required,url"`
	JwksURI          string               `json:"jwks_uri" validate:"omitempty,url"`
	ClientID         string               `json:"client_id" validate:"required"`
	ClientSecret     string               `json:"client_secret" validate:"required"`
	CallbackURL      string               `json:"callback_url" validate:"required,url"`
}

// UpsertConfig creates or updates the configuration stored under name.
// An existing row keeps its id and creator stamp; a new row stamps the
// acting user as both creator and updater.
func (s *Service) UpsertConfig(name string, input ConfigInput, actingUserID uint64) (*models.SsoConfig, error) {
	cfg, err := s.configs.SsoConfigByName(name)

	switch {
	case errors.Is(err, store.ErrNotFound):
		cfg = &models.SsoConfig{
			Name:       name,
			AddedByUid: &actingUserID,
		}
	case err != nil:
		log.Error().Err(err).Str("name", name).Msg("failed to look up sso config")
		return nil, err
	}

	cfg.Type = input.Type
	cfg.Issuer = input.Issuer
	cfg.AuthorizationURL = input.AuthorizationURL
	cfg.TokenURL = input.TokenURL
	cfg.UserInfoURL = input.UserInfoURL
	cfg.JwksURI = input.JwksURI
	cfg.ClientID = input.ClientID
	cfg.ClientSecret = input.ClientSecret
	cfg.CallbackURL = input.CallbackURL
	cfg.UpdatedByUid = &actingUserID

	if err := s.configs.SaveSsoConfig(cfg); err != nil {
		log.Error().Err(err).Str("name", name).Msg("failed to save sso config")
		return nil, err
	}

	log.Info().Str("name", name).Uint64("acting_user_id", actingUserID).Msg("sso config saved")

	return cfg, nil
}

// GetConfig retrieves the configuration stored under name. Non-privileged
// callers receive only id, name, type and timestamps; client credentials and
// endpoint URLs never leak to them.
func (s *Service) GetConfig(name string, privileged bool) (*models.SsoConfig, error) {
	cfg, err := s.configs.SsoConfigByName(name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrConfigNotFound
	}

	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("failed to get sso config")
		return nil, err
	}

	if !privileged {
		masked := cfg.Masked()
		return &masked, nil
	}

	return cfg, nil
}

// Page is one page of SSO configurations.
type Page struct {
	CurrentPage  int                `json:"current_page"`
	CurrentLimit int                `json:"current_limit"`
	TotalCount   int64              `json:"total_count"`
	TotalPages   int64              `json:"total_pages"`
	Data         []models.SsoConfig `json:"data"`
}

// ListConfigs retrieves a 1-indexed page of configurations, applying the
// same field masking rule as GetConfig.
func (s *Service) ListConfigs(page, limit int, privileged bool) (*Page, error) {
	if page < 1 {
		page = 1
	}

	if limit < 1 {
		limit = 10
	}

	configs, err := s.configs.SsoConfigs((page-1)*limit, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list sso configs")
		return nil, err
	}

	totalCount, err := s.configs.CountSsoConfigs()
	if err != nil {
		return nil, err
	}

	if !privileged {
		for i := range configs {
			configs[i] = configs[i].Masked()
		}
	}

	totalPages := totalCount / int64(limit)
	if totalCount%int64(limit) != 0 {
		totalPages++
	}

	return &Page{
		CurrentPage:  page,
		CurrentLimit: limit,
		TotalCount:   totalCount,
		TotalPages:   totalPages,
		Data:         configs,
	}, nil
}

// BuildAuthorizationRedirect constructs the provider's authorization URL for
// the named configuration. The provider name itself, reversibly encoded,
// rides along as the state parameter and comes back on the callback.
func (s *Service) BuildAuthorizationRedirect(name string) (string, error) {
	cfg, err := s.GetConfig(name, true)
	if err != nil {
		return "", err
	}

	oauthCfg := oauth2.Config{
		ClientID:    cfg.ClientID,
		RedirectURL: cfg.CallbackURL,
		Endpoint:    oauth2.Endpoint{AuthURL: cfg.AuthorizationURL},
		Scopes:      []string{"openid", "profile", "email"},
	}

	redirectURL := oauthCfg.AuthCodeURL(EncodeState(name))

	log.Info().Str("name", name).Msg("built authorization redirect")

	return redirectURL, nil
}

// DeleteConfig hard deletes the configuration stored under name and reports
// the number of affected rows. Deleting an absent name is not an error.
func (s *Service) DeleteConfig(name string) (int64, error) {
	affected, err := s.configs.DeleteSsoConfigByName(name)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("failed to delete sso config")
		return 0, err
	}

	log.Info().Str("name", name).Int64("affected", affected).Msg("sso config deleted")

	return affected, nil
}

// resolveOrProvisionIdentity maps a provider-asserted email onto a local
// user, creating one on first login. The provider is the role source of
// truth after login: an asserted role that differs from the stored one is
// persisted. Concurrent duplicate callbacks for the same email are resolved
// by the unique email constraint; the loser of the race re-fetches.
func (s *Service) resolveOrProvisionIdentity(email string, assertedRole models.Role) (*models.User, error) {
	user, err := s.users.UserByEmail(email)

	switch {
	case errors.Is(err, store.ErrNotFound):
		role := assertedRole
		if role == "" {
			role = models.RoleUser
		}

		user = &models.User{
			Username:  email,
			UserEmail: &email,
			Role:      role,
			Active:    true,
		}

		err = s.users.SaveUser(user)
		if errors.Is(err, store.ErrDuplicate) {
			// lost a provisioning race, the row exists now
			return s.users.UserByEmail(email)
		}

		if err != nil {
			return nil, err
		}

		log.Info().Str("email", email).Str("role", string(user.Role)).Msg("auto-provisioned federated user")

		return user, nil
	case err != nil:
		return nil, err
	}

	if assertedRole != "" && assertedRole != user.Role {
		user.Role = assertedRole
		if err := s.users.SaveUser(user); err != nil {
			return nil, err
		}

		log.Info().Str("email", email).Str("role", string(assertedRole)).Msg("synced role from provider")
	}

	return user, nil
}

// CompleteLogin runs the callback half of the federation flow: resolve the
// configuration, exchange the code, verify the ID token when a key set is
// configured, fetch the user info, resolve or provision the local identity,
// then apply the same ordered gates as local login before issuing a session
// token. Intermediate failures collapse to ErrFederationFailed; only a
// missing config, a disabled account and a pending EULA keep their distinct
// meaning.
func (s *Service) CompleteLogin(ctx context.Context, name, code string) (string, error) {
	signed, err := s.completeLogin(ctx, name, code)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("sso login failed")

		switch {
		case errors.Is(err, ErrConfigNotFound),
			errors.Is(err, auth.ErrAccountDisabled),
			errors.Is(err, auth.ErrEulaNotAccepted):
			return "", err
		default:
			return "", ErrFederationFailed
		}
	}

	return signed, nil
}

func (s *Service) completeLogin(ctx context.Context, name, code string) (string, error) {
	cfg, err := s.GetConfig(name, true)
	if err != nil {
		return "", err
	}

	tokens, err := s.exchangeCode(ctx, code, cfg)
	if err != nil {
		return "", err
	}

	if cfg.JwksURI != "" {
		if tokens.IDToken == "" {
			return "", ErrNoIDToken
		}

		if _, err := s.verifyIDToken(ctx, tokens.IDToken, cfg.JwksURI); err != nil {
			return "", err
		}
	}

	payload, err := s.fetchUserInfo(ctx, cfg, tokens.AccessToken)
	if err != nil {
		return "", err
	}

	email, _ := payload["email"].(string)
	if email == "" {
		return "", errors.New("no email in userinfo payload")
	}

	var assertedRole models.Role
	if raw, ok := payload[roleClaim].(string); ok && raw != "" {
		assertedRole = models.Role(raw)
		if !assertedRole.Valid() {
			log.Warn().Str("role", raw).Str("name", name).Msg("ignoring unknown provider-asserted role")
			assertedRole = ""
		}
	}

	user, err := s.resolveOrProvisionIdentity(email, assertedRole)
	if err != nil {
		return "", err
	}

	if !user.Active {
		return "", auth.ErrAccountDisabled
	}

	eula, err := s.eula.Eula()
	if err != nil {
		return "", err
	}

	if !eula.Accepted {
		return "", auth.ErrEulaNotAccepted
	}

	signed, err := s.codec.Issue(user)
	if err != nil {
		return "", err
	}

	log.Info().Uint64("user_id", user.ID).Str("name", name).Msg("sso login succeeded")

	return signed, nil
}
