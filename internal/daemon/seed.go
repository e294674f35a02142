package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/authgate/authgate/internal/config"
	"github.com/authgate/authgate/internal/db/models"
	"github.com/authgate/authgate/internal/password"
)

// seed creates the sentinel admin account and the license agreement row on
// an empty database. The admin starts with its username as password; the
// first-login endpoints detect and replace it.
func seed(cfg *config.Config, db *gorm.DB) {
	var count int64

	db.Model(&models.User{}).Count(&count)

	if count == 0 {
		hasher := password.New(cfg.Auth.BcryptCost)

		digest, err := hasher.Hash(models.AdminUsername)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to hash initial admin password")
			return
		}

		db.Create(
			&models.User{
				Username:       models.AdminUsername,
				HashedPassword: digest,
				Role:           models.RoleAdmin,
				Active:         true,
			},
		)

		log.Info().Msg("seeded initial admin user")
	}

	db.Model(&models.EULA{}).Count(&count)

	if count == 0 {
		db.Create(&models.EULA{ID: models.EulaID, Accepted: false})

		log.Info().Msg("seeded license agreement record")
	}
}
