package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-manager/internal/lib/apperror"
	"github.com/magabrotheeeer/subscription-manager/internal/models"
	"github.com/magabrotheeeer/subscription-manager/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreatePlan(ctx context.Context, plan models.Plan) (int, error) {
	args := m.Called(ctx, plan)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetPlanByID(ctx context.Context, id int) (*models.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}
func (m *RepoMock) GetPlanBySlug(ctx context.Context, slug string) (*models.Plan, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}
func (m *RepoMock) FindPlanBySlugExcept(ctx context.Context, slug string, id int) (*models.Plan, error) {
	args := m.Called(ctx, slug, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}
func (m *RepoMock) ListPlans(ctx context.Context, q models.PlanQuery) ([]*models.Plan, int, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Plan), args.Int(1), args.Error(2)
}
func (m *RepoMock) UpdatePlan(ctx context.Context, patch models.PlanPatch, id int) ([]*models.Plan, int, error) {
	args := m.Called(ctx, patch, id)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Plan), args.Int(1), args.Error(2)
}
func (m *RepoMock) DeletePlan(ctx context.Context, id int) ([]*models.Plan, int, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Plan), args.Int(1), args.Error(2)
}
func (m *RepoMock) CountPlans(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

type EventsMock struct{ mock.Mock }

func (m *EventsMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestService(repo *RepoMock, cache *CacheMock, events *EventsMock) *PlanService {
	return NewPlanService(repo, cache, events, newNoopLogger())
}

func TestPlanService_Create(t *testing.T) {
	req := models.CreatePlanRequest{
		Name:     "Pro Plan",
		Price:    990,
		Currency: "rub",
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock, e *EventsMock)
		req        models.CreatePlanRequest
		wantID     int
		wantSlug   string
		wantErr    bool
		wantKind   apperror.Kind
	}{
		{
			name: "success create derives slug",
			setupMocks: func(r *RepoMock, c *CacheMock, e *EventsMock) {
				r.On("GetPlanBySlug", mock.Anything, "pro-plan").
					Return(nil, storage.ErrNotFound).Once()
				r.On("CreatePlan", mock.Anything, mock.MatchedBy(func(p models.Plan) bool {
					return p.Slug == "pro-plan" && p.Currency == "RUB" && p.IsActive
				})).Return(3, nil).Once()
				e.On("Publish", "plan.created", mock.Anything).Return(nil).Once()
				c.On("Set", "plan:3", mock.Anything, time.Hour).Return(nil).Once()
			},
			req:      req,
			wantID:   3,
			wantSlug: "pro-plan",
		},
		{
			name: "only first space becomes a hyphen",
			setupMocks: func(r *RepoMock, c *CacheMock, e *EventsMock) {
				r.On("GetPlanBySlug", mock.Anything, "my-cool plan").
					Return(nil, storage.ErrNotFound).Once()
				r.On("CreatePlan", mock.Anything, mock.MatchedBy(func(p models.Plan) bool {
					return p.Slug == "my-cool plan"
				})).Return(4, nil).Once()
				e.On("Publish", "plan.created", mock.Anything).Return(nil).Once()
				c.On("Set", "plan:4", mock.Anything, time.Hour).Return(nil).Once()
			},
			req:      models.CreatePlanRequest{Name: "My Cool Plan", Price: 500},
			wantID:   4,
			wantSlug: "my-cool plan",
		},
		{
			name: "duplicate slug",
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *EventsMock) {
				r.On("GetPlanBySlug", mock.Anything, "pro-plan").
					Return(&models.Plan{ID: 1, Slug: "pro-plan"}, nil).Once()
			},
			req:      req,
			wantErr:  true,
			wantKind: apperror.KindConflict,
		},
		{
			name:       "negative price is a validation error",
			setupMocks: func(_ *RepoMock, _ *CacheMock, _ *EventsMock) {},
			req:        models.CreatePlanRequest{Name: "Pro Plan", Price: -1},
			wantErr:    true,
			wantKind:   apperror.KindValidation,
		},
		{
			name: "repository error is classified as conflict",
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *EventsMock) {
				r.On("GetPlanBySlug", mock.Anything, "pro-plan").
					Return(nil, storage.ErrNotFound).Once()
				r.On("CreatePlan", mock.Anything, mock.Anything).
					Return(0, errors.New("db down")).Once()
			},
			req:      req,
			wantErr:  true,
			wantKind: apperror.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			events := new(EventsMock)
			svc := newTestService(repo, cache, events)

			tt.setupMocks(repo, cache, events)

			got, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				var appErr *apperror.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantKind, appErr.Kind)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, got.ID)
				assert.Equal(t, tt.wantSlug, got.Slug)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
			events.AssertExpectations(t)
		})
	}
}

func TestPlanService_FindOne(t *testing.T) {
	id := 3
	stored := &models.Plan{ID: id, Name: "Pro Plan", Slug: "pro-plan", Price: 990, Currency: "RUB"}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		filter     models.PlanFilter
		wantErr    bool
		wantKind   apperror.Kind
	}{
		{
			name: "cache miss reads storage",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "plan:3", mock.Anything).Return(false, nil).Once()
				r.On("GetPlanByID", mock.Anything, id).Return(stored, nil).Once()
				c.On("Set", "plan:3", mock.Anything, time.Hour).Return(nil).Once()
			},
			filter: models.PlanFilter{ID: &id},
		},
		{
			name: "missing record is not found",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "plan:3", mock.Anything).Return(false, nil).Once()
				r.On("GetPlanByID", mock.Anything, id).
					Return(nil, storage.ErrNotFound).Once()
			},
			filter:   models.PlanFilter{ID: &id},
			wantErr:  true,
			wantKind: apperror.KindNotFound,
		},
		{
			name:       "empty filter is not found",
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			filter:     models.PlanFilter{},
			wantErr:    true,
			wantKind:   apperror.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := newTestService(repo, cache, new(EventsMock))

			tt.setupMocks(repo, cache)

			got, err := svc.FindOne(context.Background(), tt.filter)
			if tt.wantErr {
				require.Error(t, err)
				var appErr *apperror.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantKind, appErr.Kind)
			} else {
				require.NoError(t, err)
				assert.Equal(t, stored.Slug, got.Slug)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestPlanService_FindAll(t *testing.T) {
	plans := []*models.Plan{
		{ID: 1, Name: "Basic", Slug: "basic"},
		{ID: 2, Name: "Pro Plan", Slug: "pro-plan"},
	}
	limit, skip := 2, 2

	repo := new(RepoMock)
	svc := newTestService(repo, new(CacheMock), new(EventsMock))

	repo.On("ListPlans", mock.Anything, models.PlanQuery{Limit: 2, Skip: 2}).
		Return(plans, 4, nil).Once()

	page, err := svc.FindAll(context.Background(), models.PlanFilter{Limit: &limit, Skip: &skip})
	require.NoError(t, err)
	assert.Len(t, page.Edges, 2)
	assert.Equal(t, 4, page.PageInfo.Total)
	// total == limit+skip: следующей страницы нет
	assert.False(t, page.PageInfo.HasMore)
	repo.AssertExpectations(t)
}

func TestPlanService_Update(t *testing.T) {
	id := 3
	req := models.UpdatePlanRequest{
		Name:     "Pro Plan",
		Price:    1190,
		IsActive: true,
	}
	updated := []*models.Plan{{ID: id, Name: "Pro Plan", Slug: "pro-plan", Price: 1190}}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock, e *EventsMock)
		id         int
		wantErr    bool
		wantKind   apperror.Kind
	}{
		{
			name: "success update keeps own slug",
			setupMocks: func(r *RepoMock, c *CacheMock, e *EventsMock) {
				r.On("FindPlanBySlugExcept", mock.Anything, "pro-plan", id).
					Return(nil, storage.ErrNotFound).Once()
				r.On("UpdatePlan", mock.Anything, mock.MatchedBy(func(p models.PlanPatch) bool {
					return p.Slug == "pro-plan" && p.Price == 1190 && p.Currency == "RUB"
				}), id).Return(updated, 1, nil).Once()
				c.On("Invalidate", "plan:3").Return(nil).Once()
				e.On("Publish", "plan.updated", mock.Anything).Return(nil).Once()
			},
			id: id,
		},
		{
			name: "slug taken by another plan",
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *EventsMock) {
				r.On("FindPlanBySlugExcept", mock.Anything, "pro-plan", id).
					Return(&models.Plan{ID: 9, Slug: "pro-plan"}, nil).Once()
			},
			id:       id,
			wantErr:  true,
			wantKind: apperror.KindConflict,
		},
		{
			name: "zero modified is not found",
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *EventsMock) {
				r.On("FindPlanBySlugExcept", mock.Anything, "pro-plan", id).
					Return(nil, storage.ErrNotFound).Once()
				r.On("UpdatePlan", mock.Anything, mock.Anything, id).
					Return([]*models.Plan{}, 0, nil).Once()
			},
			id:       id,
			wantErr:  true,
			wantKind: apperror.KindNotFound,
		},
		{
			name:       "missing id is a validation error",
			setupMocks: func(_ *RepoMock, _ *CacheMock, _ *EventsMock) {},
			id:         0,
			wantErr:    true,
			wantKind:   apperror.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			events := new(EventsMock)
			svc := newTestService(repo, cache, events)

			tt.setupMocks(repo, cache, events)

			res, err := svc.Update(context.Background(), tt.id, req)
			if tt.wantErr {
				require.Error(t, err)
				var appErr *apperror.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantKind, appErr.Kind)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 1, res.Modified)
				assert.Len(t, res.Edges, 1)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
			events.AssertExpectations(t)
		})
	}
}

func TestPlanService_Delete(t *testing.T) {
	id := 3
	deleted := []*models.Plan{{ID: id, Name: "Pro Plan", Slug: "pro-plan"}}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock, e *EventsMock)
		filter     models.PlanFilter
		wantErr    bool
		wantKind   apperror.Kind
	}{
		{
			name: "success delete",
			setupMocks: func(r *RepoMock, c *CacheMock, e *EventsMock) {
				r.On("DeletePlan", mock.Anything, id).Return(deleted, 1, nil).Once()
				c.On("Invalidate", "plan:3").Return(nil).Once()
				e.On("Publish", "plan.deleted", mock.Anything).Return(nil).Once()
			},
			filter: models.PlanFilter{ID: &id},
		},
		{
			name: "zero deleted is not found",
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *EventsMock) {
				r.On("DeletePlan", mock.Anything, id).
					Return([]*models.Plan{}, 0, nil).Once()
			},
			filter:   models.PlanFilter{ID: &id},
			wantErr:  true,
			wantKind: apperror.KindNotFound,
		},
		{
			name: "repository error is classified as bad request",
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *EventsMock) {
				r.On("DeletePlan", mock.Anything, id).
					Return(nil, 0, errors.New("db down")).Once()
			},
			filter:   models.PlanFilter{ID: &id},
			wantErr:  true,
			wantKind: apperror.KindBadRequest,
		},
		{
			name:       "missing id is a validation error",
			setupMocks: func(_ *RepoMock, _ *CacheMock, _ *EventsMock) {},
			filter:     models.PlanFilter{},
			wantErr:    true,
			wantKind:   apperror.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			events := new(EventsMock)
			svc := newTestService(repo, cache, events)

			tt.setupMocks(repo, cache, events)

			res, err := svc.Delete(context.Background(), tt.filter)
			if tt.wantErr {
				require.Error(t, err)
				var appErr *apperror.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantKind, appErr.Kind)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 1, res.Modified)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
			events.AssertExpectations(t)
		})
	}
}

func TestPlanService_Count(t *testing.T) {
	repo := new(RepoMock)
	svc := newTestService(repo, new(CacheMock), new(EventsMock))

	repo.On("CountPlans", mock.Anything, 0).Return(4, nil).Once()

	total, err := svc.Count(context.Background(), models.PlanFilter{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	repo.AssertExpectations(t)
}
