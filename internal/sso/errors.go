package sso

import "errors"

var (
	// ErrConfigNotFound is returned when no SSO configuration matches the
	// requested name.
	ErrConfigNotFound = errors.New("no sso config found")

	// ErrFederationUnreachable is returned when a provider endpoint cannot be
	// reached or its response cannot be parsed. The raw provider error never
	// surfaces to callers.
	ErrFederationUnreachable = errors.New("failed to reach identity provider")

	// ErrFederationFailed is the collapsed, externally visible failure for the
	// federation login chain.
	ErrFederationFailed = errors.New("failed to authenticate with sso")

	// ErrKeyNotFound is returned when the provider's published key set holds
	// no key matching the ID token's key id.
	ErrKeyNotFound = errors.New("no matching key in provider key set")

	// ErrNoIDToken is returned when verification is configured but the token
	// response carries no ID token.
	ErrNoIDToken = errors.New("no id_token in token response")
)
