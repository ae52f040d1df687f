package service

import (
	"testing"

	"github.com/minhasantafonte/santafonte-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupSeededDB returns a migrated, seeded in-memory database.
func setupSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	require.NoError(t, db.SeedDB(testDB))
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return testDB
}

// breakDB closes the connection so every later write fails.
func breakDB(t *testing.T, testDB *gorm.DB) {
	t.Helper()
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func ptr[T any](v T) *T {
	return &v
}
