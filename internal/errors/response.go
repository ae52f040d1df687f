package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse estrutura padrão de erro
type ErrorResponse struct {
	Error   string `json:"error"`   // código (codes.go)
	Message string `json:"message"` // mensagem para o usuário (pt-BR)
}

// RespondWithError escreve o envelope de erro com o status informado
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Atalhos para as respostas mais comuns

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "É necessário fazer login"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Ocorreu um erro no servidor. Tente novamente em instantes"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// ConfirmationRequired responde exclusões enviadas sem confirm=true
func ConfirmationRequired(c *gin.Context) {
	RespondWithError(c, http.StatusBadRequest, ValidationConfirmationRequired,
		"Confirme a exclusão enviando confirm=true")
}

// ValidationError erro de validação com mensagens por campo
type ValidationError struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ValidationError{
		Error:   ValidationInvalidInput,
		Message: "Dados inválidos",
		Fields:  fields,
	})
}
