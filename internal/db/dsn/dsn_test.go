package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/authgate/authgate/internal/config"
)

func testConfig(engine config.DBEngine) *config.Config {
	return &config.Config{
		DB: config.DB{
			Engine:   engine,
			Host:     "db.example.com",
			Port:     5432,
			User:     "authgate",
			Password: "secret",
			Name:     "authgate",
			Extras:   "sslmode=disable",
			Path:     "./authgate.db",
		},
	}
}

func TestCreate(t *testing.T) {
	testCases := []struct {
		name     string
		engine   config.DBEngine
		expected string
	}{
		{
			name:     "postgres",
			engine:   config.DBEnginePostgres,
			expected: "host=db.example.com port=5432 user=authgate password=secret dbname=authgate sslmode=disable",
		},
		{
			name:     "sqlite",
			engine:   config.DBEngineSQLite,
			expected: "./authgate.db",
		},
		{
			name:     "mysql",
			engine:   config.DBEngineMySQL,
			expected: "authgate:secret@tcp(db.example.com:5432)/authgate?sslmode=disable",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Create(testConfig(tc.engine)))
		})
	}
}

func TestDialector(t *testing.T) {
	for _, engine := range []config.DBEngine{config.DBEnginePostgres, config.DBEngineSQLite, config.DBEngineMySQL} {
		assert.NotNil(t, Dialector(testConfig(engine)))
	}
}
