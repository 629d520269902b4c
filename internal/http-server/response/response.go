// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков.
//
// Все ответы сервера несут флаг success; при неуспехе добавляется
// человеко-читаемый текст ошибки.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную обёртку JSON-ответа сервера.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// OK возвращает успешный Response.
func OK() Response {
	return Response{Success: true}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Success: false,
		Error:   msg,
	}
}

// ValidationError формирует Response на основе ошибок валидации.
// Каждое нарушение преобразуется в человеко-читаемый текст.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Success: false,
		Error:   strings.Join(errsMsgs, ", "),
	}
}
