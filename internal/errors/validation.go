package errors

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldErrors traduz os erros do validator para mensagens por campo.
// Retorna nil quando err não é um erro de validação.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório"
	case "min":
		return fmt.Sprintf("Deve ser no mínimo %s", fe.Param())
	case "max":
		return fmt.Sprintf("Deve ser no máximo %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Deve ser maior ou igual a %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Valor inválido, use um de: %s", fe.Param())
	case "email":
		return "E-mail inválido"
	case "url":
		return "URL inválida"
	case "datetime":
		return fmt.Sprintf("Data inválida, use o formato %s", fe.Param())
	}
	return "Valor inválido"
}
