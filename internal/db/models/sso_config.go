package models

import "time"

// SsoConfigType identifies the provider family an SSO configuration belongs
// to. The family decides how the token-endpoint response is parsed.
type SsoConfigType string

const (
	// SsoTypeOIDC is a generic OIDC provider returning a JSON token response.
	SsoTypeOIDC SsoConfigType = "oidc"
	// SsoTypeGitHub is a GitHub-style provider returning a form-urlencoded
	// token response.
	SsoTypeGitHub SsoConfigType = "github"
)

// Valid reports whether the type is a known provider family.
func (t SsoConfigType) Valid() bool {
	switch t {
	case SsoTypeOIDC, SsoTypeGitHub:
		return true
	}

	return false
}

// SsoConfig holds the settings for one named identity provider.
// The name doubles as the federation route key and round-trips through the
// OAuth state parameter.
type SsoConfig struct {
	// ID is the unique identifier for the configuration.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Name is the unique provider name used in federation routes.
	Name string `gorm:"unique;size:100;not null" json:"name"`
	// Type is the provider family (oidc, github).
	Type SsoConfigType `gorm:"type:varchar(20);not null" json:"type"`
	// Issuer is the provider's issuer identifier.
	Issuer string `gorm:"size:512" json:"issuer,omitempty"`
	// AuthorizationURL is the provider's authorization endpoint.
	AuthorizationURL string `gorm:"column:authorization_url;size:512" json:"authorization_url,omitempty"`
	// TokenURL is the provider's token endpoint.
	TokenURL string `gorm:"column:token_url;size:512" json:"token_url,omitempty"`
	// UserInfoURL is the provider's user-info endpoint.
	UserInfoURL string `gorm:"column:user_info_url;size:512" json:"user_info_url,omitempty"`
	// JwksURI is the provider's published key set. When empty, ID-token
	// signature verification is skipped.
	JwksURI string `gorm:"column:jwks_uri;size:512" json:"jwks_uri,omitempty"`
	// ClientID is the OAuth2 client identifier.
	ClientID string `gorm:"column:client_id;size:255" json:"client_id,omitempty"`
	// ClientSecret is the OAuth2 client secret. Never exposed to
	// non-privileged callers and never logged.
	ClientSecret string `gorm:"column:client_secret;size:255" json:"client_secret,omitempty"`
	// CallbackURL is the redirect URI registered with the provider.
	CallbackURL string `gorm:"column:callback_url;size:512" json:"callback_url,omitempty"`
	// AddedByUid references the user that created this configuration.
	AddedByUid *uint64 `gorm:"column:added_by_uid" json:"added_by_uid,omitempty"`
	// UpdatedByUid references the user that last modified this configuration.
	UpdatedByUid *uint64 `gorm:"column:updated_by_uid" json:"updated_by_uid,omitempty"`
	// CreatedAt is the creation timestamp (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the last modification timestamp (managed by GORM).
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the gorm table name.
func (SsoConfig) TableName() string {
	return "sso_config"
}

// Masked returns a copy stripped down to the fields non-privileged callers
// may see: id, name, type and timestamps.
func (c SsoConfig) Masked() SsoConfig {
	return SsoConfig{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
