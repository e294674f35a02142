package store

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/authgate/authgate/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{}, &models.SsoConfig{}, &models.EULA{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func strPtr(s string) *string { return &s }

func TestNilStore(t *testing.T) {
	var s *Store

	_, err := s.UserByUsername("admin")
	assert.ErrorIs(t, err, ErrDBNil)

	s = New(nil)

	_, err = s.UserByID(1)
	assert.ErrorIs(t, err, ErrDBNil)

	_, err = s.Eula()
	assert.ErrorIs(t, err, ErrDBNil)

	err = s.SaveSsoConfig(&models.SsoConfig{})
	assert.ErrorIs(t, err, ErrDBNil)
}

func TestUserLookups(t *testing.T) {
	s := New(setupTestDB(t))

	user := &models.User{
		Username:  "alice",
		UserEmail: strPtr("alice@example.com"),
		Role:      models.RoleUser,
		Active:    true,
	}
	require.NoError(t, s.SaveUser(user))
	require.NotZero(t, user.ID)

	byName, err := s.UserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byID, err := s.UserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byEmail, err := s.UserByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = s.UserByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UserByID(9999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveUserDuplicateEmail(t *testing.T) {
	s := New(setupTestDB(t))

	require.NoError(t, s.SaveUser(&models.User{
		Username:  "alice",
		UserEmail: strPtr("alice@example.com"),
		Role:      models.RoleUser,
		Active:    true,
	}))

	err := s.SaveUser(&models.User{
		Username:  "alice2",
		UserEmail: strPtr("alice@example.com"),
		Role:      models.RoleUser,
		Active:    true,
	})
	assert.ErrorIs(t, err, ErrDuplicate, "second row with same email must violate the unique constraint")
}

func TestSsoConfigCRUD(t *testing.T) {
	s := New(setupTestDB(t))

	cfg := &models.SsoConfig{
		Name:             "google",
		Type:             models.SsoTypeOIDC,
		AuthorizationURL: "https://accounts.example.com/auth",
		TokenURL:         "https://accounts.example.com/token",
		UserInfoURL:      "https://accounts.example.com/userinfo",
		ClientID:         "client",
		ClientSecret:     "secret",
		CallbackURL:      "https://gate.example.com/sso/callback",
	}
	require.NoError(t, s.SaveSsoConfig(cfg))

	got, err := s.SsoConfigByName("google")
	require.NoError(t, err)
	assert.Equal(t, cfg.ID, got.ID)
	assert.Equal(t, models.SsoTypeOIDC, got.Type)

	_, err = s.SsoConfigByName("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := s.CountSsoConfigs()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	affected, err := s.DeleteSsoConfigByName("google")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// deleting again affects nothing and does not fail
	affected, err = s.DeleteSsoConfigByName("google")
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestSsoConfigsPaging(t *testing.T) {
	s := New(setupTestDB(t))

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, s.SaveSsoConfig(&models.SsoConfig{
			Name: name, Type: models.SsoTypeOIDC,
			AuthorizationURL: "https://x/auth", TokenURL: "https://x/token",
			UserInfoURL: "https://x/ui", ClientID: "c", ClientSecret: "s",
			CallbackURL: "https://x/cb",
		}))
	}

	page, err := s.SsoConfigs(0, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = s.SsoConfigs(2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestEulaSingleton(t *testing.T) {
	s := New(setupTestDB(t))

	_, err := s.Eula()
	assert.ErrorIs(t, err, ErrNotFound, "unseeded database has no row")

	require.NoError(t, s.SaveEula(&models.EULA{Accepted: false}))

	eula, err := s.Eula()
	require.NoError(t, err)
	assert.Equal(t, uint64(models.EulaID), eula.ID)
	assert.False(t, eula.Accepted)

	eula.Accepted = true
	require.NoError(t, s.SaveEula(eula))

	eula, err = s.Eula()
	require.NoError(t, err)
	assert.True(t, eula.Accepted)
}
