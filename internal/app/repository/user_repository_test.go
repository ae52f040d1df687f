package repository

import (
	"testing"
	"time"

	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAdminUserRepository(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	repo := NewAdminUserRepository(testDB)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	user := &model.AdminUser{Email: "admin@santafonte.com.br", PasswordHash: "hash"}
	require.NoError(t, repo.Create(user))
	assert.NotZero(t, user.ID)

	// Email is unique.
	assert.Error(t, repo.Create(&model.AdminUser{Email: "admin@santafonte.com.br", PasswordHash: "x"}))

	found, err := repo.FindByEmail("admin@santafonte.com.br")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByEmail("nobody@santafonte.com.br")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.TouchLastLogin(user.ID, now))
	require.NoError(t, repo.UpdatePassword(user.ID, "new-hash"))

	found, err = repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", found.PasswordHash)
	require.NotNil(t, found.LastLoginAt)
	assert.True(t, found.LastLoginAt.Equal(now))
}
