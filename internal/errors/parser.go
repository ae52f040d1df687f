package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo código e mensagem de um erro já traduzido
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converte erros de banco e de rede em código + mensagem amigável.
// context descreve a operação ("create product", "delete sale", ...).
// Detalhes internos nunca chegam ao usuário.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Ocorreu um erro no servidor",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. Erros do GORM
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    notFoundCode(context),
			Message: getNotFoundMessage(context),
		}
	}

	// 2. Violação de unicidade (postgres 23505 / sqlite)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// 3. NOT NULL
	if strings.Contains(errStrLower, "not-null constraint") || strings.Contains(errStrLower, "not null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "Preencha todos os campos obrigatórios",
		}
	}

	// 4. Rede / conexão
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Falha ao conectar a um serviço externo. Tente novamente em instantes",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "Este e-mail já está cadastrado",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "Já existe um registro com este identificador",
	}
}

func notFoundCode(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "product"):
		return ProductNotFound
	case strings.Contains(contextLower, "option"):
		return OptionNotFound
	case strings.Contains(contextLower, "sale"):
		return SaleNotFound
	case strings.Contains(contextLower, "article"):
		return ArticleNotFound
	}
	return ResourceNotFound
}

// getNotFoundMessage mensagem de "não encontrado" conforme o contexto
func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "product") {
		return "Produto não encontrado"
	}
	if strings.Contains(contextLower, "option") {
		return "Opção de personalização não encontrada"
	}
	if strings.Contains(contextLower, "sale") {
		return "Venda não encontrada"
	}
	if strings.Contains(contextLower, "article") {
		return "Artigo não encontrado"
	}
	if strings.Contains(contextLower, "user") {
		return "Usuário não encontrado"
	}

	return "Registro não encontrado"
}

// getDefaultErrorMessage mensagem genérica conforme a operação
func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") {
		return "Erro ao cadastrar. Tente novamente em instantes"
	}
	if strings.Contains(contextLower, "update") {
		return "Erro ao salvar as alterações. Tente novamente em instantes"
	}
	if strings.Contains(contextLower, "delete") {
		return "Erro ao excluir. Tente novamente em instantes"
	}

	return "Ocorreu um erro no servidor. Tente novamente em instantes"
}

// ParseAndRespond atalho para os controllers
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
