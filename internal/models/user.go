// Package models содержит доменные структуры сервиса: пользователи, тарифные
// планы, фильтры с пагинацией и конверты ответов.
//
// Для каждого ресурса типы разделены по назначению: полная сущность,
// структуры приёма данных из JSON-запросов (с тегами валидации),
// фильтр для поиска и patch для обновления.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string     `json:"uid"`                     // Уникальный идентификатор, назначается базой данных
	Name         string     `json:"name"`                    // Имя пользователя
	Email        string     `json:"email"`                   // Электронная почта (уникальная)
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"` // Дата рождения (опционально)
	Role         string     `json:"role"`                    // Роль пользователя, admin или user
	PasswordHash string     `json:"-"`                       // Хэш пароля, наружу не отдается
}

// CreateUserRequest используется для приёма данных регистрации из JSON-запроса.
// Дата рождения приходит строкой в формате 02-01-2006 и парсится в сервисе.
type CreateUserRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,min=10,max=50,email"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	DateOfBirth string `json:"date_of_birth,omitempty" validate:"omitempty"`
	Role        string `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
}

// UpdateUserRequest используется для приёма данных обновления пользователя.
type UpdateUserRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,min=10,max=50,email"`
	DateOfBirth string `json:"date_of_birth,omitempty" validate:"omitempty"`
	Role        string `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
}

// LoginRequest используется для приёма данных входа.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserPatch содержит поля пользователя, которые разрешено менять при обновлении.
type UserPatch struct {
	Name        string
	Email       string
	DateOfBirth *time.Time
	Role        string
}
