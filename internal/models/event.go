package models

import (
	"time"

	"github.com/google/uuid"
)

// Действия, с которыми публикуются события об изменении сущностей.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EntityEvent описывает событие изменения сущности, публикуемое в брокер.
type EntityEvent struct {
	ID         string    `json:"id"`
	Resource   string    `json:"resource"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}

// NewEntityEvent создает событие с уникальным идентификатором и текущим временем.
func NewEntityEvent(resource, action string, payload any) EntityEvent {
	return EntityEvent{
		ID:         uuid.New().String(),
		Resource:   resource,
		Action:     action,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}
