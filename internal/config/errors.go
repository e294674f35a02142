package config

import "errors"

var (
	// ErrWebServerPortCanNotBeZero is returned when no listening port is configured.
	ErrWebServerPortCanNotBeZero = errors.New("webserver port cannot be 0")

	// ErrEmptyURL is returned when the webserver base URL is missing.
	ErrEmptyURL = errors.New("webserver url cannot be empty")

	// ErrEmptySecret is returned when no token signing secret is configured.
	ErrEmptySecret = errors.New("auth secret cannot be empty")
)
