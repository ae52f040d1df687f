package db

import (
	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table owned by the storefront.
func Models() []interface{} {
	return []interface{}{
		&model.Product{},
		&model.RosaryOption{},
		&model.SaleEntry{},
		&model.StoreConfig{},
		&model.AdminUser{},
		&model.Article{},
	}
}

// Migrate runs database migrations and fills empty tables with seed data
func Migrate() error {
	return MigrateDB(DB)
}

func MigrateDB(gdb *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := gdb.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := SeedDB(gdb); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database
func Seed() error {
	return SeedDB(DB)
}
