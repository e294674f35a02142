package eula

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/authgate/authgate/internal/db/models"
	"github.com/authgate/authgate/internal/db/store"
)

func setup(t *testing.T) (*Service, *store.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	require.NoError(t, db.AutoMigrate(&models.EULA{}))

	repo := store.New(db)
	require.NoError(t, repo.SaveEula(&models.EULA{Accepted: false}))

	return NewService(repo), repo
}

func TestGet(t *testing.T) {
	s, _ := setup(t)

	eula, err := s.Get()
	require.NoError(t, err)
	assert.False(t, eula.Accepted)
	assert.Nil(t, eula.AcceptedAt)
}

func TestSet(t *testing.T) {
	s, repo := setup(t)

	accepted, err := s.Set(true)
	require.NoError(t, err)
	assert.True(t, accepted.Accepted)
	require.NotNil(t, accepted.AcceptedAt)

	// rejecting clears the flag but keeps the row and the stamp
	rejected, err := s.Set(false)
	require.NoError(t, err)
	assert.False(t, rejected.Accepted)

	stored, err := repo.Eula()
	require.NoError(t, err)
	assert.Equal(t, uint64(models.EulaID), stored.ID)
	assert.False(t, stored.Accepted)
}
