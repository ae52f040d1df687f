package repository

import (
	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(sale *model.SaleEntry) error
	FindAll() ([]model.SaleEntry, error)
	FindByID(id string) (*model.SaleEntry, error)
	Update(sale *model.SaleEntry) error
	UpdateStatus(id string, status model.SaleStatus) error
	Delete(id string) error
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(sale *model.SaleEntry) error {
	logger.Debug("Creating sale entry in database", map[string]interface{}{
		"sale_id": sale.ID,
		"value":   sale.Value,
		"status":  sale.Status,
	})

	if err := r.db.Create(sale).Error; err != nil {
		logger.Error("Failed to create sale entry in database", err, map[string]interface{}{
			"sale_id": sale.ID,
		})
		return err
	}

	logger.Debug("Sale entry created in database", map[string]interface{}{
		"sale_id": sale.ID,
	})
	return nil
}

// FindAll returns the ledger, newest first.
func (r *saleRepository) FindAll() ([]model.SaleEntry, error) {
	logger.Debug("Finding all sale entries in database", nil)

	var sales []model.SaleEntry
	if err := r.db.Order("created_at DESC").Find(&sales).Error; err != nil {
		logger.Error("Failed to find sale entries in database", err)
		return nil, err
	}

	logger.Debug("Sale entries found in database", map[string]interface{}{
		"count": len(sales),
	})
	return sales, nil
}

func (r *saleRepository) FindByID(id string) (*model.SaleEntry, error) {
	var sale model.SaleEntry
	if err := r.db.First(&sale, "id = ?", id).Error; err != nil {
		logger.Error("Failed to find sale entry by ID in database", err, map[string]interface{}{
			"sale_id": id,
		})
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) Update(sale *model.SaleEntry) error {
	logger.Debug("Updating sale entry in database", map[string]interface{}{
		"sale_id": sale.ID,
		"status":  sale.Status,
	})

	if err := r.db.Save(sale).Error; err != nil {
		logger.Error("Failed to update sale entry in database", err, map[string]interface{}{
			"sale_id": sale.ID,
		})
		return err
	}
	return nil
}

func (r *saleRepository) UpdateStatus(id string, status model.SaleStatus) error {
	logger.Debug("Updating sale status in database", map[string]interface{}{
		"sale_id": id,
		"status":  status,
	})

	result := r.db.Model(&model.SaleEntry{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update sale status in database", result.Error, map[string]interface{}{
			"sale_id": id,
			"status":  status,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Sale status updated in database", map[string]interface{}{
		"sale_id": id,
		"status":  status,
	})
	return nil
}

func (r *saleRepository) Delete(id string) error {
	logger.Debug("Deleting sale entry from database", map[string]interface{}{
		"sale_id": id,
	})

	result := r.db.Delete(&model.SaleEntry{}, "id = ?", id)
	if result.Error != nil {
		logger.Error("Failed to delete sale entry from database", result.Error, map[string]interface{}{
			"sale_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
