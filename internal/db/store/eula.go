package store

import (
	"github.com/authgate/authgate/internal/db/models"
)

// Eula retrieves the singleton EULA row.
func (s *Store) Eula() (*models.EULA, error) {
	if s == nil || s.db == nil {
		return nil, ErrDBNil
	}

	var eula models.EULA
	if err := s.db.First(&eula, models.EulaID).Error; err != nil {
		return nil, translate(err)
	}

	return &eula, nil
}

// SaveEula updates the singleton EULA row.
func (s *Store) SaveEula(eula *models.EULA) error {
	if s == nil || s.db == nil {
		return ErrDBNil
	}

	eula.ID = models.EulaID

	return translate(s.db.Save(eula).Error)
}
