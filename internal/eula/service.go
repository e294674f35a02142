// Package eula manages the singleton license agreement acceptance record.
package eula

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/authgate/authgate/internal/db/models"
)

// Store reads and writes the singleton EULA row.
type Store interface {
	Eula() (*models.EULA, error)
	SaveEula(eula *models.EULA) error
}

// Service provides accept/reject and read access to the agreement state.
type Service struct {
	store Store
}

// NewService creates a new EULA service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get returns the current agreement state.
func (s *Service) Get() (*models.EULA, error) {
	eula, err := s.store.Eula()
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch eula")
		return nil, err
	}

	return eula, nil
}

// Set records acceptance or rejection. Accepting stamps the acceptance time;
// rejecting clears the flag but keeps the row, which is never deleted.
func (s *Service) Set(accepted bool) (*models.EULA, error) {
	eula, err := s.store.Eula()
	if err != nil {
		return nil, err
	}

	eula.Accepted = accepted
	if accepted {
		now := time.Now()
		eula.AcceptedAt = &now
	}

	if err := s.store.SaveEula(eula); err != nil {
		log.Error().Err(err).Msg("failed to save eula")
		return nil, err
	}

	log.Info().Bool("accepted", accepted).Msg("eula updated")

	return eula, nil
}
