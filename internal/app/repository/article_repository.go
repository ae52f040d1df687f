package repository

import (
	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
	"gorm.io/gorm"
)

type ArticleRepository interface {
	FindAll() ([]model.Article, error)
	FindByID(id string) (*model.Article, error)
	Create(article *model.Article) error
	Update(article *model.Article) error
	Delete(id string) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) FindAll() ([]model.Article, error) {
	var articles []model.Article
	if err := r.db.Order("created_at DESC").Find(&articles).Error; err != nil {
		logger.Error("Failed to find articles", err)
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) FindByID(id string) (*model.Article, error) {
	var article model.Article
	if err := r.db.First(&article, "id = ?", id).Error; err != nil {
		logger.Error("Failed to find article by ID", err, map[string]interface{}{
			"article_id": id,
		})
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) Create(article *model.Article) error {
	logger.Debug("Creating article", map[string]interface{}{
		"article_id": article.ID,
		"title":      article.Title,
	})

	if err := r.db.Create(article).Error; err != nil {
		logger.Error("Failed to create article", err, map[string]interface{}{
			"title": article.Title,
		})
		return err
	}
	return nil
}

func (r *articleRepository) Update(article *model.Article) error {
	if err := r.db.Save(article).Error; err != nil {
		logger.Error("Failed to update article", err, map[string]interface{}{
			"article_id": article.ID,
		})
		return err
	}
	return nil
}

func (r *articleRepository) Delete(id string) error {
	result := r.db.Delete(&model.Article{}, "id = ?", id)
	if result.Error != nil {
		logger.Error("Failed to delete article", result.Error, map[string]interface{}{
			"article_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
