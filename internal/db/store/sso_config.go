package store

import (
	"github.com/authgate/authgate/internal/db/models"
)

const whereName = "name = ?"

// SsoConfigByName retrieves an SSO configuration by its unique name.
func (s *Store) SsoConfigByName(name string) (*models.SsoConfig, error) {
	if s == nil || s.db == nil {
		return nil, ErrDBNil
	}

	var cfg models.SsoConfig
	if err := s.db.Where(whereName, name).First(&cfg).Error; err != nil {
		return nil, translate(err)
	}

	return &cfg, nil
}

// SsoConfigs retrieves a page of SSO configurations.
func (s *Store) SsoConfigs(offset, limit int) ([]models.SsoConfig, error) {
	if s == nil || s.db == nil {
		return nil, ErrDBNil
	}

	var configs []models.SsoConfig
	if err := s.db.Offset(offset).Limit(limit).Find(&configs).Error; err != nil {
		return nil, translate(err)
	}

	return configs, nil
}

// CountSsoConfigs returns the total number of SSO configurations.
func (s *Store) CountSsoConfigs() (int64, error) {
	if s == nil || s.db == nil {
		return 0, ErrDBNil
	}

	var count int64
	if err := s.db.Model(&models.SsoConfig{}).Count(&count).Error; err != nil {
		return 0, translate(err)
	}

	return count, nil
}

// SaveSsoConfig inserts or updates an SSO configuration row.
func (s *Store) SaveSsoConfig(cfg *models.SsoConfig) error {
	if s == nil || s.db == nil {
		return ErrDBNil
	}

	return translate(s.db.Save(cfg).Error)
}

// DeleteSsoConfigByName hard deletes an SSO configuration and reports the
// number of affected rows. Deleting an absent name affects zero rows and is
// not an error.
func (s *Store) DeleteSsoConfigByName(name string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, ErrDBNil
	}

	result := s.db.Where(whereName, name).Delete(&models.SsoConfig{})
	if result.Error != nil {
		return 0, translate(result.Error)
	}

	return result.RowsAffected, nil
}
