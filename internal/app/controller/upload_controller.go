package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/minhasantafonte/santafonte-backend/internal/errors"
	"github.com/minhasantafonte/santafonte-backend/internal/middleware"
	"github.com/minhasantafonte/santafonte-backend/internal/storage"
)

type UploadController struct {
	storage storage.ImageStorage
}

func NewUploadController(storage storage.ImageStorage) *UploadController {
	return &UploadController{
		storage: storage,
	}
}

type GeneratePresignedURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size" binding:"gte=0"`
	Folder      string `json:"folder"` // products, options or articles; defaults to products
}

// GeneratePresignedURL returns a PUT URL the admin uploads the image to and
// the public URL to store on the entity
// POST /api/v1/admin/uploads/presigned-url
func (ctrl *UploadController) GeneratePresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req GeneratePresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid presigned URL request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados do arquivo inválidos")
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = storage.FolderProducts
	}

	response, err := ctrl.storage.PresignImageUpload(c.Request.Context(), folder, req.Filename, req.ContentType, req.Size)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrContentTypeInvalid):
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Envie apenas imagens (JPEG, PNG, GIF ou WEBP)")
		case errors.Is(err, storage.ErrFileTooLarge):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "A imagem deve ter no máximo 10 MB")
		case errors.Is(err, storage.ErrFolderInvalid):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Pasta de destino inválida")
		default:
			log.Error("Failed to generate presigned URL", err, map[string]interface{}{
				"filename":     req.Filename,
				"content_type": req.ContentType,
				"folder":       folder,
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed,
				"Não foi possível preparar o envio da imagem")
		}
		return
	}

	log.Info("Presigned URL generated", map[string]interface{}{
		"key":    response.Key,
		"folder": folder,
	})

	c.JSON(http.StatusOK, response)
}
