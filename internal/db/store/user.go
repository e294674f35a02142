package store

import (
	"github.com/authgate/authgate/internal/db/models"
)

const (
	whereUsername = "username = ?"
	whereEmail    = "user_email = ?"
)

// UserByUsername retrieves a user by username.
func (s *Store) UserByUsername(username string) (*models.User, error) {
	if s == nil || s.db == nil {
		return nil, ErrDBNil
	}

	var user models.User
	if err := s.db.Where(whereUsername, username).First(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

// UserByID retrieves a user by id.
func (s *Store) UserByID(id uint64) (*models.User, error) {
	if s == nil || s.db == nil {
		return nil, ErrDBNil
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

// UserByEmail retrieves a user by email address.
func (s *Store) UserByEmail(email string) (*models.User, error) {
	if s == nil || s.db == nil {
		return nil, ErrDBNil
	}

	var user models.User
	if err := s.db.Where(whereEmail, email).First(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

// SaveUser inserts or updates a user row.
// Uniqueness violations are reported as ErrDuplicate so callers can resolve
// concurrent provisioning races by re-fetching.
func (s *Store) SaveUser(user *models.User) error {
	if s == nil || s.db == nil {
		return ErrDBNil
	}

	return translate(s.db.Save(user).Error)
}
