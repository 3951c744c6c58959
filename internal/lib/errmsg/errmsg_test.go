package errmsg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/subscription-manager/internal/lib/errmsg"
)

func TestFieldMessages(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"required", errmsg.Required("name"), "field name is a required field"},
		{"min length", errmsg.MinLength("name", 3), "field name must be at least 3 characters long"},
		{"max length", errmsg.MaxLength("name", 50), "field name must be at most 50 characters long"},
		{"min value", errmsg.MinValue("price", 0), "field price must be 0 or greater"},
		{"max value", errmsg.MaxValue("limit", 100), "field limit must be 100 or less"},
		{"invalid", errmsg.Invalid("email"), "field email is not a valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestResourceMessages(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"duplicate", errmsg.Duplicate("Subscription Plan"), "Subscription Plan already exists"},
		{"not found", errmsg.NotFound("User"), "User not found"},
		{"unable to save", errmsg.UnableToSave("User"), "unable to save User"},
		{"unable to delete", errmsg.UnableToDelete("Subscription Plan"), "unable to delete Subscription Plan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

// одинаковый вход всегда даёт одинаковый текст
func TestMessagesAreDeterministic(t *testing.T) {
	assert.Equal(t, errmsg.Duplicate("User"), errmsg.Duplicate("User"))
	assert.Equal(t, errmsg.MinLength("name", 3), errmsg.MinLength("name", 3))
}
