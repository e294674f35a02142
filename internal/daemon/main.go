// Package daemon assembles the database and the web service into the
// long-running application process.
package daemon

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/authgate/authgate/internal/config"
	"github.com/authgate/authgate/internal/db/dsn"
	"github.com/authgate/authgate/internal/db/models"
	"github.com/authgate/authgate/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := gorm.Open(dsn.Dialector(cfg), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.SsoConfig{},
		&models.EULA{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db),
	}
}
