// Package validate настраивает валидатор входных данных и переводит его
// нарушения в типизированную ошибку валидации.
//
// Нарушения собираются все сразу, без остановки на первом: клиент получает
// полный список полей с человеко-читаемыми сообщениями из errmsg.
package validate

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-manager/internal/lib/apperror"
	"github.com/magabrotheeeer/subscription-manager/internal/lib/errmsg"
)

// New создает валидатор, в котором имена полей берутся из json-тегов,
// чтобы сообщения об ошибках совпадали с полями запроса.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Violations переводит ошибку валидатора в AppError со списком нарушений по полям.
func Violations(resource string, err error) *apperror.AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewBadRequest(resource, "invalid payload")
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return apperror.NewValidation(resource, fields)
}

func message(fe validator.FieldError) string {
	param, _ := strconv.Atoi(fe.Param())
	switch fe.ActualTag() {
	case "required":
		return errmsg.Required(fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return errmsg.MinLength(fe.Field(), param)
		}
		return errmsg.MinValue(fe.Field(), param)
	case "max":
		if fe.Kind() == reflect.String {
			return errmsg.MaxLength(fe.Field(), param)
		}
		return errmsg.MaxValue(fe.Field(), param)
	case "gte":
		return errmsg.MinValue(fe.Field(), param)
	case "lte":
		return errmsg.MaxValue(fe.Field(), param)
	default:
		return errmsg.Invalid(fe.Field())
	}
}
