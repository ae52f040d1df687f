package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/internal/app/repository"
	"github.com/minhasantafonte/santafonte-backend/internal/optimistic"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrArticleNotFound = errors.New("article not found")

// articleDateLayout matches the seeded "12 Mar 2024" dates.
const articleDateLayout = "02 Jan 2006"

type ArticleInput struct {
	Title   string `json:"title" validate:"required,max=200"`
	Excerpt string `json:"excerpt" validate:"max=500"`
	Content string `json:"content" validate:"required"`
	Date    string `json:"date"`
	Image   string `json:"image" validate:"omitempty,url"`
}

type ArticleService interface {
	Load() error
	List() []model.Article
	Get(id string) (*model.Article, error)
	Create(input ArticleInput) (*model.Article, error)
	Update(id string, input ArticleInput) (*model.Article, error)
	Delete(id string, confirmed bool) error
	SyncStatus() optimistic.SyncState
}

type articleService struct {
	articleRepo repository.ArticleRepository
	articles    *optimistic.Collection[model.Article]
}

func NewArticleService(articleRepo repository.ArticleRepository) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		articles: optimistic.NewCollection("articles", func(a model.Article) string {
			return a.ID
		}),
	}
}

func (s *articleService) Load() error {
	articles, err := s.articleRepo.FindAll()
	if err != nil {
		logger.Error("Failed to load articles", err)
		return err
	}
	s.articles.Replace(articles)
	return nil
}

func (s *articleService) List() []model.Article {
	return s.articles.List()
}

func (s *articleService) Get(id string) (*model.Article, error) {
	article, ok := s.articles.Get(id)
	if !ok {
		return nil, ErrArticleNotFound
	}
	return &article, nil
}

func (s *articleService) Create(input ArticleInput) (*model.Article, error) {
	if err := checkStruct(input).err(); err != nil {
		return nil, err
	}

	now := time.Now()
	article := model.Article{
		ID:        uuid.New().String(),
		Title:     input.Title,
		Excerpt:   input.Excerpt,
		Content:   input.Content,
		Date:      input.Date,
		Image:     input.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if article.Date == "" {
		article.Date = now.Format(articleDateLayout)
	}

	err := s.articles.Upsert(article, func(a model.Article) error {
		return s.articleRepo.Create(&a)
	})
	recordWrite(s.articles.Name(), err)
	if err != nil {
		return nil, err
	}

	logger.Info("Article created", map[string]interface{}{
		"article_id": article.ID,
		"title":      article.Title,
	})
	return &article, nil
}

func (s *articleService) Update(id string, input ArticleInput) (*model.Article, error) {
	if err := checkStruct(input).err(); err != nil {
		return nil, err
	}

	updated, err := s.articles.Update(id, func(a model.Article) (model.Article, error) {
		a.Title = input.Title
		a.Excerpt = input.Excerpt
		a.Content = input.Content
		if input.Date != "" {
			a.Date = input.Date
		}
		a.Image = input.Image
		a.UpdatedAt = time.Now()
		return a, nil
	}, func(a model.Article) error {
		return s.articleRepo.Update(&a)
	})
	recordWrite(s.articles.Name(), err)
	if err != nil {
		if errors.Is(err, optimistic.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (s *articleService) Delete(id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	err := s.articles.Remove(id, s.articleRepo.Delete)
	recordWrite(s.articles.Name(), err)
	if err != nil {
		if errors.Is(err, optimistic.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArticleNotFound
		}
		return err
	}

	logger.Info("Article deleted", map[string]interface{}{
		"article_id": id,
	})
	return nil
}

func (s *articleService) SyncStatus() optimistic.SyncState {
	return s.articles.Status()
}
