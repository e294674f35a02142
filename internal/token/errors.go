package token

import "errors"

var (
	// ErrInvalidToken is returned when a token fails signature or expiry checks.
	ErrInvalidToken = errors.New("invalid token")

	// ErrNoKeyID is returned when a token header carries no key id.
	ErrNoKeyID = errors.New("no kid in token header")
)
