// Package config handles input from etc/*.toml files and environment overrides.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	defaultTokenTTL        = 24 * time.Hour
	defaultBcryptCost      = 11
	defaultProviderTimeout = 10 * time.Second
	defaultShutDownTime    = 5
)

// envKeys are the settings that may come from the environment. Viper only
// merges env values for keys it already knows about, so each one is bound
// explicitly; log settings stay file-only.
var envKeys = []string{
	"devmode",
	"db.engine",
	"db.extras",
	"db.host",
	"db.port",
	"db.user",
	"db.password",
	"db.name",
	"db.path",
	"auth.secret",
	"auth.tokenttl",
	"auth.bcryptcost",
	"auth.providertimeout",
	"webserver.domain",
	"webserver.port",
	"webserver.shutdowntime",
	"webserver.url",
}

// ReadConfig reads the configuration from the given directory.
// Environment variables prefixed with AUTHGATE_ override file values for
// the db, auth and webserver sections (e.g. AUTHGATE_AUTH_SECRET overrides
// auth.secret); a file-less, env-only deployment works too.
func ReadConfig(path string) (Config, error) {
	var c Config

	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigName("main")
	v.SetConfigType("toml")
	v.AddConfigPath(path)

	v.SetEnvPrefix("AUTHGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, errors.Wrapf(err, "failed to bind env for %s", key)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// a pure-env configuration is valid, anything else is not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "failed to read main config file")
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal config")
	}

	return c, validate(&c)
}

// validate applies defaults and rejects settings the daemon cannot run with.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Auth.Secret == "" {
		return errors.Wrap(ErrEmptySecret, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = defaultTokenTTL
	}

	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = defaultBcryptCost
	}

	if c.Auth.ProviderTimeout == 0 {
		c.Auth.ProviderTimeout = defaultProviderTimeout
	}

	if c.DB.Engine == "" {
		c.DB.Engine = DBEngineSQLite
	}

	if c.DB.Engine == DBEngineSQLite && c.DB.Path == "" {
		c.DB.Path = "./authgate.db"
	}

	return nil
}
