package repository

import (
	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
	"gorm.io/gorm"
)

type RosaryOptionRepository interface {
	FindAll() ([]model.RosaryOption, error)
	FindByType(optionType model.OptionType) ([]model.RosaryOption, error)
	FindByID(id string) (*model.RosaryOption, error)
	Upsert(option *model.RosaryOption) error
	Delete(id string) error
}

type rosaryOptionRepository struct {
	db *gorm.DB
}

func NewRosaryOptionRepository(db *gorm.DB) RosaryOptionRepository {
	return &rosaryOptionRepository{db: db}
}

func (r *rosaryOptionRepository) FindAll() ([]model.RosaryOption, error) {
	logger.Debug("Finding all rosary options", nil)

	var options []model.RosaryOption
	if err := r.db.Order("created_at ASC, id ASC").Find(&options).Error; err != nil {
		logger.Error("Failed to find rosary options", err)
		return nil, err
	}

	logger.Debug("Rosary options found", map[string]interface{}{
		"count": len(options),
	})
	return options, nil
}

func (r *rosaryOptionRepository) FindByType(optionType model.OptionType) ([]model.RosaryOption, error) {
	logger.Debug("Finding rosary options by type", map[string]interface{}{
		"type": optionType,
	})

	var options []model.RosaryOption
	if err := r.db.Where("type = ?", optionType).Order("created_at ASC, id ASC").Find(&options).Error; err != nil {
		logger.Error("Failed to find rosary options by type", err, map[string]interface{}{
			"type": optionType,
		})
		return nil, err
	}

	return options, nil
}

func (r *rosaryOptionRepository) FindByID(id string) (*model.RosaryOption, error) {
	logger.Debug("Finding rosary option by ID", map[string]interface{}{
		"option_id": id,
	})

	var option model.RosaryOption
	if err := r.db.First(&option, "id = ?", id).Error; err != nil {
		logger.Error("Failed to find rosary option by ID", err, map[string]interface{}{
			"option_id": id,
		})
		return nil, err
	}

	return &option, nil
}

// Upsert updates the row with option.ID, or inserts it when absent.
func (r *rosaryOptionRepository) Upsert(option *model.RosaryOption) error {
	logger.Debug("Upserting rosary option", map[string]interface{}{
		"option_id": option.ID,
		"type":      option.Type,
		"name":      option.Name,
	})

	if err := r.db.Save(option).Error; err != nil {
		logger.Error("Failed to upsert rosary option", err, map[string]interface{}{
			"option_id": option.ID,
			"type":      option.Type,
		})
		return err
	}

	logger.Debug("Rosary option upserted", map[string]interface{}{
		"option_id": option.ID,
	})
	return nil
}

func (r *rosaryOptionRepository) Delete(id string) error {
	logger.Debug("Deleting rosary option", map[string]interface{}{
		"option_id": id,
	})

	result := r.db.Delete(&model.RosaryOption{}, "id = ?", id)
	if result.Error != nil {
		logger.Error("Failed to delete rosary option", result.Error, map[string]interface{}{
			"option_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Rosary option deleted", map[string]interface{}{
		"option_id": id,
	})
	return nil
}
