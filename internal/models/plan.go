package models

// Plan представляет тарифный план подписки.
// Slug выводится из названия (нижний регистр, первый пробел заменяется
// дефисом) и уникален среди всех планов.
type Plan struct {
	ID          int    `json:"id"` // Назначается базой данных
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Price       int    `json:"price"`    // Цена за месяц в минимальных единицах валюты
	Currency    string `json:"currency"` // Трёхбуквенный код валюты
	IsActive    bool   `json:"is_active"`
}

// CreatePlanRequest используется для приёма данных нового тарифа из JSON-запроса.
type CreatePlanRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=50"`
	Description string `json:"description,omitempty" validate:"omitempty,max=250"`
	Price       int    `json:"price" validate:"gte=0"`
	Currency    string `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
}

// UpdatePlanRequest используется для приёма данных обновления тарифа.
// Обновление принимает полный набор полей; slug пересчитывается из названия.
type UpdatePlanRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=50"`
	Description string `json:"description,omitempty" validate:"omitempty,max=250"`
	Price       int    `json:"price" validate:"gte=0"`
	Currency    string `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	IsActive    bool   `json:"is_active"`
}

// PlanPatch содержит поля тарифа, которые применяются при обновлении.
type PlanPatch struct {
	Name        string
	Slug        string
	Description string
	Price       int
	Currency    string
	IsActive    bool
}
