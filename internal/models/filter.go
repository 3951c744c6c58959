package models

// Значения пагинации по умолчанию.
const (
	DefaultLimit = 10
	DefaultSkip  = 0
)

// UserFilter представляет фильтр поиска пользователей: идентификатор
// и параметры пагинации, все поля опциональны.
type UserFilter struct {
	UID   string `json:"uid,omitempty" validate:"omitempty,uuid"`
	Limit *int   `json:"limit,omitempty" validate:"omitempty,gte=1,lte=100"`
	Skip  *int   `json:"skip,omitempty" validate:"omitempty,gte=0"`
}

// PlanFilter представляет фильтр поиска тарифных планов.
type PlanFilter struct {
	ID    *int `json:"id,omitempty" validate:"omitempty,gte=1"`
	Limit *int `json:"limit,omitempty" validate:"omitempty,gte=1,lte=100"`
	Skip  *int `json:"skip,omitempty" validate:"omitempty,gte=0"`
}

// UserQuery — нормализованный запрос списка пользователей для слоя хранилища.
type UserQuery struct {
	UID   string
	Limit int
	Skip  int
}

// PlanQuery — нормализованный запрос списка тарифов для слоя хранилища.
type PlanQuery struct {
	ID    int
	Limit int
	Skip  int
}

// Normalize сводит фильтр к одному явному запросу с пагинацией.
// Пагинация применяется только когда заданы и limit, и skip;
// неподдерживаемые сочетания сводятся к значениям по умолчанию.
func (f UserFilter) Normalize() UserQuery {
	q := UserQuery{UID: f.UID, Limit: DefaultLimit, Skip: DefaultSkip}
	if f.Limit != nil && f.Skip != nil {
		q.Limit = *f.Limit
		q.Skip = *f.Skip
	}
	return q
}

// Normalize сводит фильтр тарифов к одному явному запросу с пагинацией.
func (f PlanFilter) Normalize() PlanQuery {
	q := PlanQuery{Limit: DefaultLimit, Skip: DefaultSkip}
	if f.ID != nil {
		q.ID = *f.ID
	}
	if f.Limit != nil && f.Skip != nil {
		q.Limit = *f.Limit
		q.Skip = *f.Skip
	}
	return q
}
