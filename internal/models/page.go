package models

// PageInfo содержит метаданные пагинации для списочного ответа.
type PageInfo struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Skip    int  `json:"skip"`
	HasMore bool `json:"has_more"`
}

// NewPageInfo вычисляет метаданные пагинации: has_more истинно,
// когда total превышает limit + skip.
func NewPageInfo(total, limit, skip int) PageInfo {
	return PageInfo{
		Total:   total,
		Limit:   limit,
		Skip:    skip,
		HasMore: total > limit+skip,
	}
}

// Page представляет одну страницу списочного ответа.
type Page[T any] struct {
	Edges    []T      `json:"edges"`
	PageInfo PageInfo `json:"page_info"`
}

// MutationResult представляет результат обновления или удаления:
// количество затронутых записей и сами записи.
type MutationResult[T any] struct {
	Modified int `json:"modified"`
	Edges    []T `json:"edges"`
}
