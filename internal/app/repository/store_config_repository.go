package repository

import (
	"errors"

	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StoreConfigRepository interface {
	// GetValue returns the stored value for key, or fallback when the key
	// has never been written.
	GetValue(key string, fallback float64) (float64, error)
	SetValue(key string, value float64) error
}

type storeConfigRepository struct {
	db *gorm.DB
}

func NewStoreConfigRepository(db *gorm.DB) StoreConfigRepository {
	return &storeConfigRepository{db: db}
}

func (r *storeConfigRepository) GetValue(key string, fallback float64) (float64, error) {
	var row model.StoreConfig
	err := r.db.First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Debug("Config key not set, using fallback", map[string]interface{}{
			"key":      key,
			"fallback": fallback,
		})
		return fallback, nil
	}
	if err != nil {
		logger.Error("Failed to read config value", err, map[string]interface{}{
			"key": key,
		})
		return 0, err
	}
	return row.Value, nil
}

func (r *storeConfigRepository) SetValue(key string, value float64) error {
	logger.Debug("Writing config value", map[string]interface{}{
		"key":   key,
		"value": value,
	})

	row := model.StoreConfig{Key: key, Value: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
	if err != nil {
		logger.Error("Failed to write config value", err, map[string]interface{}{
			"key": key,
		})
		return err
	}
	return nil
}
