package sso

import (
	"encoding/base64"

	"github.com/pkg/errors"
)

// EncodeState wraps the provider name into the opaque OAuth state parameter.
// The encoding is reversible, not encrypted; it must never carry secrets.
// No server-side state is kept between redirect and callback, the parameter
// is the sole carrier.
func EncodeState(name string) string {
	return base64.URLEncoding.EncodeToString([]byte(name))
}

// DecodeState recovers the provider name from the state parameter.
func DecodeState(state string) (string, error) {
	name, err := base64.URLEncoding.DecodeString(state)
	if err != nil {
		return "", errors.Wrap(err, "invalid state parameter")
	}

	return string(name), nil
}
