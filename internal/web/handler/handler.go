// Package handler holds shared helpers for the JSON route handlers.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/authgate/authgate/internal/auth"
	"github.com/authgate/authgate/internal/sso"
	"github.com/authgate/authgate/internal/token"
)

const (
	// RouterRootPath is the root path of a route group.
	RouterRootPath = "/"

	// InternalErrorMessage is the fixed message for unexpected failures.
	// Raw provider responses, stack traces and credential material never
	// reach the caller.
	InternalErrorMessage = "internal server error"
)

// Error is the JSON error envelope.
type Error struct {
	Message string `json:"message"`
}

// RespondError maps an engine error onto its HTTP status and a safe message.
// Recognized kinds pass their message through; everything else collapses to
// a 500 with a fixed message.
func RespondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := InternalErrorMessage

	switch {
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, sso.ErrConfigNotFound):
		status = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, token.ErrInvalidToken):
		status = fiber.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, auth.ErrAccountDisabled),
		errors.Is(err, auth.ErrPasswordAlreadySet):
		status = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, auth.ErrEulaNotAccepted):
		status = fiber.StatusForbidden
		message = err.Error()
	case errors.Is(err, sso.ErrFederationUnreachable),
		errors.Is(err, sso.ErrFederationFailed),
		errors.Is(err, sso.ErrKeyNotFound),
		errors.Is(err, sso.ErrNoIDToken):
		status = fiber.StatusBadGateway
		message = sso.ErrFederationFailed.Error()
	}

	return c.Status(status).JSON(Error{Message: message})
}
