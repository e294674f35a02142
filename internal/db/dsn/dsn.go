// Package dsn provides Data Source Name and gorm dialector construction for
// database connections.
package dsn

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/authgate/authgate/internal/config"
)

// Create builds the Data Source Name from the configuration.
func Create(cfg *config.Config) string {
	switch cfg.DB.Engine {
	case config.DBEnginePostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s %s",
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Name,
			cfg.DB.Extras,
		)
	case config.DBEngineSQLite:
		return cfg.DB.Path
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.Name,
			cfg.DB.Extras,
		)
	}
}

// Dialector returns the gorm dialector matching the configured engine.
func Dialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DB.Engine {
	case config.DBEnginePostgres:
		return postgres.Open(Create(cfg))
	case config.DBEngineSQLite:
		return sqlite.Open(Create(cfg))
	default:
		return mysql.Open(Create(cfg))
	}
}
