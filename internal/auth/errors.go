package auth

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned when the provided password does not
	// verify against the stored digest.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrAccountDisabled is returned when attempting to authenticate a
	// deactivated user account.
	ErrAccountDisabled = errors.New("user account is disabled")

	// ErrEulaNotAccepted is returned when login is attempted before the
	// license agreement has been accepted.
	ErrEulaNotAccepted = errors.New("eula is not accepted")

	// ErrPasswordAlreadySet is returned when the admin bootstrap is attempted
	// after the sentinel password has already been changed.
	ErrPasswordAlreadySet = errors.New("admin password already updated")
)
