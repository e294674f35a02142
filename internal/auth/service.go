// Package auth implements local password authentication: login, first-run
// admin bootstrap and password resets.
package auth

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/authgate/authgate/internal/db/models"
	"github.com/authgate/authgate/internal/db/store"
)

// UserStore is the subset of the persistence layer the engine consumes.
type UserStore interface {
	UserByUsername(username string) (*models.User, error)
	UserByID(id uint64) (*models.User, error)
	SaveUser(user *models.User) error
}

// EulaStore reads the singleton license agreement row.
type EulaStore interface {
	Eula() (*models.EULA, error)
}

// Hasher hashes and verifies password digests.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) (bool, error)
}

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// Service provides local authentication functionality.
type Service struct {
	users  UserStore
	eula   EulaStore
	hasher Hasher
	codec  TokenIssuer
}

// NewService creates a new local auth service.
func NewService(users UserStore, eula EulaStore, hasher Hasher, codec TokenIssuer) *Service {
	return &Service{
		users:  users,
		eula:   eula,
		hasher: hasher,
		codec:  codec,
	}
}

// IsFirstLogin reports whether the sentinel admin account still carries its
// provisioning-time password. A missing admin account is not first login;
// any other lookup failure is a system error.
func (s *Service) IsFirstLogin() (bool, error) {
	user, err := s.users.UserByUsername(models.AdminUsername)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to check if first login")
		return false, err
	}

	return s.hasher.Verify(models.AdminUsername, user.HashedPassword)
}

// BootstrapAdminPassword sets the admin password once, during first login.
// It fails with ErrPasswordAlreadySet on any later attempt; a missing
// sentinel account fails the same way because first-login is false for it.
// The updater stamp is the admin account itself, since no authenticated
// actor exists yet.
func (s *Service) BootstrapAdminPassword(newPassword string) (*models.User, error) {
	firstLogin, err := s.IsFirstLogin()
	if err != nil {
		return nil, err
	}

	if !firstLogin {
		return nil, ErrPasswordAlreadySet
	}

	user, err := s.users.UserByUsername(models.AdminUsername)
	if err != nil {
		return nil, err
	}

	updated, err := s.UpdatePassword(user.ID, newPassword, user.ID)
	if err != nil {
		return nil, err
	}

	log.Info().Uint64("user_id", updated.ID).Msg("admin password bootstrapped")

	return updated, nil
}

// UpdatePassword hashes and persists a new password for the target user,
// stamping the acting user as updater.
func (s *Service) UpdatePassword(userID uint64, newPassword string, actingUserID uint64) (*models.User, error) {
	user, err := s.users.UserByID(userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		log.Error().Err(err).Uint64("user_id", userID).Msg("failed to load user for password update")
		return nil, err
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = digest
	user.UpdatedByUid = &actingUserID

	if err := s.users.SaveUser(user); err != nil {
		log.Error().Err(err).Uint64("user_id", userID).Msg("failed to save user password")
		return nil, err
	}

	log.Info().Uint64("user_id", userID).Uint64("acting_user_id", actingUserID).Msg("password updated")

	return user, nil
}

// ResetPassword resets the target user's password on behalf of the acting
// user. Self reset and admin reset are the same operation here; who may
// target whom is enforced by the route-level role gate.
func (s *Service) ResetPassword(userID uint64, newPassword string, actingUserID uint64) (*models.User, error) {
	return s.UpdatePassword(userID, newPassword, actingUserID)
}

// Login authenticates a username/password pair and issues a session token.
// The check order is fixed: existence, credential, active flag, EULA.
// Callers branch on the error kind, so later checks must not shadow earlier
// ones.
func (s *Service) Login(username, passwd string) (string, error) {
	user, err := s.users.UserByUsername(username)
	if errors.Is(err, store.ErrNotFound) {
		log.Warn().Str("username", username).Msg("login for unknown user")
		return "", ErrUserNotFound
	}

	if err != nil {
		return "", err
	}

	// SSO-provisioned accounts carry no local digest; that is a mismatch,
	// not a malformed-digest system error
	if user.HashedPassword == "" {
		log.Warn().Str("username", username).Msg("local login for account without local password")
		return "", ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(passwd, user.HashedPassword)
	if err != nil {
		return "", err
	}

	if !ok {
		log.Warn().Str("username", username).Msg("login with invalid password")
		return "", ErrInvalidCredentials
	}

	if !user.Active {
		return "", ErrAccountDisabled
	}

	eula, err := s.eula.Eula()
	if err != nil {
		return "", err
	}

	if !eula.Accepted {
		return "", ErrEulaNotAccepted
	}

	signed, err := s.codec.Issue(user)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to issue session token")
		return "", err
	}

	log.Info().Uint64("user_id", user.ID).Str("username", user.Username).Msg("user logged in")

	return signed, nil
}
