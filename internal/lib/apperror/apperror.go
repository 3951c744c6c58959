// Package apperror определяет типизированные ошибки приложения.
//
// Каждая ошибка несёт категорию (Kind), имя ресурса и сообщение, пригодное
// для показа клиенту, и умеет отображаться в HTTP-статус. Функция Parse
// применяется на границе сервиса: уже классифицированная ошибка пробрасывается
// как есть, любая другая оборачивается в переданный fallback — ни одна ошибка
// не проглатывается молча.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind категория ошибки приложения.
type Kind int

const (
	// KindUnknown — неклассифицированная ошибка
	KindUnknown Kind = iota
	// KindValidation — ошибка валидации входных данных, с перечнем полей
	KindValidation
	// KindBadRequest — некорректный запрос или нарушенный пост-инвариант записи
	KindBadRequest
	// KindConflict — конфликт уникального ключа (дубликат)
	KindConflict
	// KindNotFound — ресурс не найден либо изменено ноль записей
	KindNotFound
	// KindInternal — внутренняя ошибка сервиса
	KindInternal
)

// FieldError описывает одно нарушение валидации на уровне поля.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError типизированная ошибка приложения.
type AppError struct {
	Kind     Kind
	Resource string       // Имя ресурса ("User", "Subscription Plan")
	Message  string       // Сообщение для клиента
	Fields   []FieldError // Нарушения по полям (только для KindValidation)
	Err      error        // Исходная ошибка, если есть
}

// Error возвращает текст ошибки, включая исходную ошибку, если она есть.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap возвращает исходную ошибку для errors.Is/errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode отображает категорию ошибки в HTTP-статус.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewConflict создает ошибку конфликта уникального ключа.
func NewConflict(resource, message string) *AppError {
	return &AppError{Kind: KindConflict, Resource: resource, Message: message}
}

// NewNotFound создает ошибку отсутствующего ресурса.
func NewNotFound(resource, message string) *AppError {
	return &AppError{Kind: KindNotFound, Resource: resource, Message: message}
}

// NewBadRequest создает ошибку некорректного запроса.
func NewBadRequest(resource, message string) *AppError {
	return &AppError{Kind: KindBadRequest, Resource: resource, Message: message}
}

// NewInternal создает внутреннюю ошибку сервиса.
func NewInternal(resource, message string) *AppError {
	return &AppError{Kind: KindInternal, Resource: resource, Message: message}
}

// NewValidation создает ошибку валидации: сообщение собирается из всех нарушений.
func NewValidation(resource string, fields []FieldError) *AppError {
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.Message)
	}
	return &AppError{
		Kind:     KindValidation,
		Resource: resource,
		Message:  strings.Join(msgs, ", "),
		Fields:   fields,
	}
}

// Parse классифицирует пойманную ошибку: уже типизированная ошибка
// возвращается без изменений, любая другая оборачивается в fallback,
// сохраняя исходную ошибку в цепочке.
func Parse(err error, fallback *AppError) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	fallback.Err = err
	return fallback
}
