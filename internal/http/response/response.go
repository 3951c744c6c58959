// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов и ошибок бизнес-логики в едином формате.
package response

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-manager/internal/lib/apperror"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Error — текст ошибки (опционально, при неуспехе).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string               `json:"status" example:"Error"`
	Error  string               `json:"error" example:"User not found"`
	Fields []apperror.FieldError `json:"fields,omitempty"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// RenderError пишет ошибку бизнес-логики в ответ: HTTP-статус берётся из
// классифицированной ошибки, нарушения валидации попадают в поле fields.
// Неклассифицированная ошибка отдаётся как 500 без деталей.
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, Error("internal server error"))
		return
	}

	w.WriteHeader(appErr.StatusCode())
	render.JSON(w, r, ErrorResponse{
		Status: StatusError,
		Error:  appErr.Message,
		Fields: appErr.Fields,
	})
}
