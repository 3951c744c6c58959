// Package errmsg содержит чистые функции для генерации стандартных
// текстов ошибок. Функции параметризуются именем поля или именем ресурса
// и не имеют побочных эффектов: один и тот же вход всегда даёт один и тот же текст.
//
// Тексты используются как для ошибок валидации отдельных полей,
// так и для ошибок уровня ресурса (дубликат, не найдено, не удалось сохранить).
package errmsg

import "fmt"

// Required возвращает текст ошибки для обязательного, но не заполненного поля.
func Required(field string) string {
	return fmt.Sprintf("field %s is a required field", field)
}

// MinLength возвращает текст ошибки для поля короче минимальной длины.
func MinLength(field string, n int) string {
	return fmt.Sprintf("field %s must be at least %d characters long", field, n)
}

// MaxLength возвращает текст ошибки для поля длиннее максимальной длины.
func MaxLength(field string, n int) string {
	return fmt.Sprintf("field %s must be at most %d characters long", field, n)
}

// MinValue возвращает текст ошибки для числового поля меньше допустимого значения.
func MinValue(field string, n int) string {
	return fmt.Sprintf("field %s must be %d or greater", field, n)
}

// MaxValue возвращает текст ошибки для числового поля больше допустимого значения.
func MaxValue(field string, n int) string {
	return fmt.Sprintf("field %s must be %d or less", field, n)
}

// Invalid возвращает общий текст ошибки для поля, не прошедшего валидацию.
func Invalid(field string) string {
	return fmt.Sprintf("field %s is not a valid", field)
}

// Duplicate возвращает текст ошибки для ресурса с уже занятым уникальным ключом.
func Duplicate(resource string) string {
	return fmt.Sprintf("%s already exists", resource)
}

// NotFound возвращает текст ошибки для отсутствующего ресурса.
func NotFound(resource string) string {
	return fmt.Sprintf("%s not found", resource)
}

// UnableToSave возвращает текст ошибки для ресурса, который не удалось сохранить.
func UnableToSave(resource string) string {
	return fmt.Sprintf("unable to save %s", resource)
}

// UnableToDelete возвращает текст ошибки для ресурса, который не удалось удалить.
func UnableToDelete(resource string) string {
	return fmt.Sprintf("unable to delete %s", resource)
}
