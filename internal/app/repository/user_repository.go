package repository

import (
	"time"

	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
	"gorm.io/gorm"
)

type AdminUserRepository interface {
	Create(user *model.AdminUser) error
	FindByID(id uint) (*model.AdminUser, error)
	FindByEmail(email string) (*model.AdminUser, error)
	Count() (int64, error)
	UpdatePassword(id uint, passwordHash string) error
	TouchLastLogin(id uint, at time.Time) error
}

type adminUserRepository struct {
	db *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) AdminUserRepository {
	return &adminUserRepository{db: db}
}

func (r *adminUserRepository) Create(user *model.AdminUser) error {
	logger.Debug("Creating admin user in database", map[string]interface{}{
		"email": user.Email,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create admin user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}

	logger.Debug("Admin user created in database", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return nil
}

func (r *adminUserRepository) FindByID(id uint) (*model.AdminUser, error) {
	logger.Debug("Finding admin user by ID in database", map[string]interface{}{
		"user_id": id,
	})

	var user model.AdminUser
	if err := r.db.First(&user, id).Error; err != nil {
		logger.Error("Failed to find admin user by ID in database", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return &user, nil
}

func (r *adminUserRepository) FindByEmail(email string) (*model.AdminUser, error) {
	logger.Debug("Finding admin user by email in database", map[string]interface{}{
		"email": email,
	})

	var user model.AdminUser
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		logger.Debug("Admin user not found by email in database", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return nil, err
	}

	logger.Debug("Admin user found by email in database", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return &user, nil
}

func (r *adminUserRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.AdminUser{}).Count(&count).Error; err != nil {
		logger.Error("Failed to count admin users", err)
		return 0, err
	}
	return count, nil
}

func (r *adminUserRepository) UpdatePassword(id uint, passwordHash string) error {
	result := r.db.Model(&model.AdminUser{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if result.Error != nil {
		logger.Error("Failed to update admin password", result.Error, map[string]interface{}{
			"user_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *adminUserRepository) TouchLastLogin(id uint, at time.Time) error {
	if err := r.db.Model(&model.AdminUser{}).Where("id = ?", id).Update("last_login_at", at).Error; err != nil {
		logger.Error("Failed to update admin last login", err, map[string]interface{}{
			"user_id": id,
		})
		return err
	}
	return nil
}
