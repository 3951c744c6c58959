package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-manager/internal/lib/apperror"
)

func TestRenderError_AppError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "not found",
			err:        apperror.NewNotFound("User", "User not found"),
			wantStatus: 404,
			wantMsg:    "User not found",
		},
		{
			name:       "conflict",
			err:        apperror.NewConflict("Subscription Plan", "Subscription Plan already exists"),
			wantStatus: 409,
			wantMsg:    "Subscription Plan already exists",
		},
		{
			name:       "plain error hides details",
			err:        errors.New("pq: connection refused"),
			wantStatus: 500,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/", nil)

			RenderError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, StatusError, body.Status)
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}

func TestRenderError_ValidationFields(t *testing.T) {
	err := apperror.NewValidation("User", []apperror.FieldError{
		{Field: "name", Message: "field name is a required field"},
		{Field: "email", Message: "field email is a required field"},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/", nil)

	RenderError(rec, req, err)

	assert.Equal(t, 422, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Fields, 2)
	assert.Equal(t, "name", body.Fields[0].Field)
}
