package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhasantafonte/santafonte-backend/internal/app/service"
	apperrors "github.com/minhasantafonte/santafonte-backend/internal/errors"
	"github.com/minhasantafonte/santafonte-backend/internal/middleware"
)

type ArticleController struct {
	articleService service.ArticleService
}

func NewArticleController(articleService service.ArticleService) *ArticleController {
	return &ArticleController{
		articleService: articleService,
	}
}

// ListArticles GET /api/v1/articles
func (ctrl *ArticleController) ListArticles(c *gin.Context) {
	articles := ctrl.articleService.List()
	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"count":    len(articles),
	})
}

// GetArticle GET /api/v1/articles/:id
func (ctrl *ArticleController) GetArticle(c *gin.Context) {
	article, err := ctrl.articleService.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "get article")
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}

// CreateArticle POST /api/v1/admin/articles
func (ctrl *ArticleController) CreateArticle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.ArticleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados do artigo inválidos")
		return
	}

	article, err := ctrl.articleService.Create(req)
	if err != nil {
		respondServiceError(c, err, "create article")
		return
	}

	log.Info("Article created", map[string]interface{}{
		"article_id": article.ID,
		"title":      article.Title,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Artigo publicado",
		"article": article,
	})
}

// UpdateArticle PUT /api/v1/admin/articles/:id
func (ctrl *ArticleController) UpdateArticle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.ArticleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados do artigo inválidos")
		return
	}

	article, err := ctrl.articleService.Update(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "update article")
		return
	}

	log.Info("Article updated", map[string]interface{}{
		"article_id": article.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Artigo atualizado",
		"article": article,
	})
}

// DeleteArticle DELETE /api/v1/admin/articles/:id?confirm=true
func (ctrl *ArticleController) DeleteArticle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	if err := ctrl.articleService.Delete(id, confirmed(c)); err != nil {
		respondServiceError(c, err, "delete article")
		return
	}

	log.Info("Article deleted", map[string]interface{}{
		"article_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Artigo excluído",
	})
}
