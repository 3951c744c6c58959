package read

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-manager/internal/lib/apperror"
	"github.com/magabrotheeeer/subscription-manager/internal/models"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) FindOne(ctx context.Context, filter models.UserFilter) (*models.User, error) {
	args := m.Called(ctx, filter)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	uid := "7f1c0a9e-1111-2222-3333-444455556666"

	tests := []struct {
		name           string
		uid            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное чтение пользователя",
			uid:  uid,
			setupMock: func(m *MockService) {
				user := &models.User{UID: uid, Name: "Alikhan", Email: "alikhan@example.com", Role: "user"}
				m.On("FindOne", mock.Anything, models.UserFilter{UID: uid}).Return(user, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"email":"alikhan@example.com"`,
		},
		{
			name: "пользователь не найден",
			uid:  uid,
			setupMock: func(m *MockService) {
				m.On("FindOne", mock.Anything, models.UserFilter{UID: uid}).
					Return(nil, apperror.NewNotFound("User", "User not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"User not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.uid, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("uid", tt.uid)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
