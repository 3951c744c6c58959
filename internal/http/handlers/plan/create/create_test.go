package create

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-manager/internal/lib/apperror"
	"github.com/magabrotheeeer/subscription-manager/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.CreatePlanRequest) (*models.Plan, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание тарифа",
			body: `{"name":"Pro Plan","price":990}`,
			setupMock: func(m *MockService) {
				plan := &models.Plan{ID: 3, Name: "Pro Plan", Slug: "pro-plan", Price: 990, Currency: "RUB", IsActive: true}
				m.On("Create", mock.Anything, mock.Anything).Return(plan, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"slug":"pro-plan"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"name":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid request body"`,
		},
		{
			name: "дубликат слага",
			body: `{"name":"Pro Plan","price":990}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, apperror.NewConflict("Subscription Plan", "Subscription Plan already exists"))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"Subscription Plan already exists"`,
		},
		{
			name: "ошибка валидации со списком полей",
			body: `{"name":"ab","price":-1}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, apperror.NewValidation("Subscription Plan", []apperror.FieldError{
						{Field: "name", Message: "field name must have minimal length equal 3"},
						{Field: "price", Message: "field price must have minimal value equal 0"},
					}))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"field":"price"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
