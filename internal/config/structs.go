package config

import (
	"time"

	"github.com/authgate/authgate/internal/logger"
)

// DBEngine selects the database driver.
type DBEngine string

const (
	// DBEngineMySQL uses the MySQL driver.
	DBEngineMySQL DBEngine = "mysql"
	// DBEnginePostgres uses the PostgreSQL driver.
	DBEnginePostgres DBEngine = "postgres"
	// DBEngineSQLite uses the embedded SQLite driver.
	DBEngineSQLite DBEngine = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Engine   DBEngine
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Path     string // sqlite database file
}

// Auth holds the settings consumed by the authentication engines.
type Auth struct {
	// Secret signs session tokens. Required.
	Secret string
	// TokenTTL is the session token lifetime.
	TokenTTL time.Duration
	// BcryptCost is the adaptive cost factor for password hashing.
	BcryptCost int
	// ProviderTimeout bounds every outbound call to an identity provider.
	ProviderTimeout time.Duration
}

// Webserver implements webserver settings.
type Webserver struct {
	Domain       string // domain name for the webserver
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown
	URL          string // base url for the webserver
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Auth      Auth
	Webserver Webserver
}
