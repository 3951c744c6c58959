// Package services содержит бизнес-логику работы с тарифными планами.
//
// Слаг плана выводится из имени и уникален: дубликат проверяется и при
// создании, и при обновлении, исключая саму изменяемую запись.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-manager/internal/lib/apperror"
	"github.com/magabrotheeeer/subscription-manager/internal/lib/errmsg"
	"github.com/magabrotheeeer/subscription-manager/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-manager/internal/lib/slug"
	"github.com/magabrotheeeer/subscription-manager/internal/lib/validate"
	"github.com/magabrotheeeer/subscription-manager/internal/models"
	"github.com/magabrotheeeer/subscription-manager/internal/storage"
)

// resourcePlan — имя ресурса в сообщениях об ошибках.
const resourcePlan = "Subscription Plan"

// defaultCurrency используется, если валюта не указана в запросе.
const defaultCurrency = "RUB"

// PlanRepository определяет методы для работы с тарифными планами в хранилище.
type PlanRepository interface {
	// CreatePlan сохраняет новый план и возвращает назначенный id.
	CreatePlan(ctx context.Context, plan models.Plan) (int, error)
	// GetPlanByID возвращает план по id.
	GetPlanByID(ctx context.Context, id int) (*models.Plan, error)
	// GetPlanBySlug возвращает план по слагу.
	GetPlanBySlug(ctx context.Context, slug string) (*models.Plan, error)
	// FindPlanBySlugExcept ищет план с данным слагом и другим id.
	FindPlanBySlugExcept(ctx context.Context, slug string, id int) (*models.Plan, error)
	// ListPlans возвращает страницу планов и общее количество записей.
	ListPlans(ctx context.Context, q models.PlanQuery) ([]*models.Plan, int, error)
	// UpdatePlan применяет patch и возвращает изменённые записи с количеством.
	UpdatePlan(ctx context.Context, patch models.PlanPatch, id int) ([]*models.Plan, int, error)
	// DeletePlan удаляет план и возвращает удалённые записи с количеством.
	DeletePlan(ctx context.Context, id int) ([]*models.Plan, int, error)
	// CountPlans подсчитывает планы по фильтру.
	CountPlans(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Events описывает публикацию событий об изменении сущностей.
type Events interface {
	Publish(routingKey string, message any) error
}

// PlanService реализует бизнес-логику работы с тарифными планами.
type PlanService struct {
	repo     PlanRepository
	cache    Cache
	events   Events
	validate *validator.Validate
	log      *slog.Logger
}

// NewPlanService создает новый экземпляр PlanService.
func NewPlanService(repo PlanRepository, cache Cache, events Events, log *slog.Logger) *PlanService {
	return &PlanService{
		repo:     repo,
		cache:    cache,
		events:   events,
		validate: validate.New(),
		log:      log,
	}
}

// Create сохраняет новый тарифный план. Слаг выводится из имени;
// план с таким же слагом — конфликт.
func (s *PlanService) Create(ctx context.Context, req models.CreatePlanRequest) (*models.Plan, error) {
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validate.Struct(req); err != nil {
		return nil, validate.Violations(resourcePlan, err)
	}

	newSlug := slug.Make(req.Name)

	existing, err := s.repo.GetPlanBySlug(ctx, newSlug)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.log.Error("duplicate check failed", sl.Err(err))
		return nil, apperror.Parse(err, apperror.NewConflict(resourcePlan, errmsg.Duplicate(resourcePlan)))
	}
	if existing != nil {
		return nil, apperror.NewConflict(resourcePlan, errmsg.Duplicate(resourcePlan))
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}
	plan := models.Plan{
		Name:        req.Name,
		Slug:        newSlug,
		Description: req.Description,
		Price:       req.Price,
		Currency:    currency,
		IsActive:    true, // новый план активен по умолчанию
	}

	id, err := s.repo.CreatePlan(ctx, plan)
	if err != nil {
		s.log.Error("failed to create plan", sl.Err(err))
		return nil, apperror.Parse(err, apperror.NewConflict(resourcePlan, errmsg.Duplicate(resourcePlan)))
	}
	if id == 0 {
		return nil, apperror.NewBadRequest(resourcePlan, errmsg.UnableToSave(resourcePlan))
	}
	plan.ID = id

	s.log.Info("created new plan", slog.Int("id", id), slog.String("slug", newSlug))

	if err := s.events.Publish("plan."+models.ActionCreated,
		models.NewEntityEvent(resourcePlan, models.ActionCreated, plan)); err != nil {
		s.log.Warn("failed to publish event", sl.Err(err))
	}
	cacheKey := fmt.Sprintf("plan:%d", id)
	if err := s.cache.Set(cacheKey, plan, time.Hour); err != nil {
		s.log.Warn("failed to cache plan", slog.String("key", cacheKey), sl.Err(err))
	}

	return &plan, nil
}

// FindOne возвращает план по id из фильтра, используя кеш или хранилище.
func (s *PlanService) FindOne(ctx context.Context, filter models.PlanFilter) (*models.Plan, error) {
	if err := s.validate.Struct(filter); err != nil {
		return nil, validate.Violations(resourcePlan, err)
	}
	if filter.ID == nil {
		return nil, apperror.NewNotFound(resourcePlan, errmsg.NotFound(resourcePlan))
	}

	cacheKey := fmt.Sprintf("plan:%d", *filter.ID)
	var cached models.Plan
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	plan, err := s.repo.GetPlanByID(ctx, *filter.ID)
	if err != nil {
		s.log.Error("failed to read plan", sl.Err(err))
		return nil, apperror.Parse(err, apperror.NewNotFound(resourcePlan, errmsg.NotFound(resourcePlan)))
	}

	if err := s.cache.Set(cacheKey, plan, time.Hour); err != nil {
		s.log.Warn("failed to cache plan", slog.String("key", cacheKey), sl.Err(err))
	}
	return plan, nil
}

// FindAll возвращает страницу тарифных планов.
// Пустой результат — ошибка NotFound.
func (s *PlanService) FindAll(ctx context.Context, filter models.PlanFilter) (*models.Page[*models.Plan], error) {
	if err := s.validate.Struct(filter); err != nil {
		return nil, validate.Violations(resourcePlan, err)
	}
	q := filter.Normalize()

	plans, total, err := s.repo.ListPlans(ctx, q)
	if err != nil {
		s.log.Error("failed to list plans", sl.Err(err))
		return nil, apperror.Parse(err, apperror.NewNotFound(resourcePlan, errmsg.NotFound(resourcePlan)))
	}
	if len(plans) == 0 {
		return nil, apperror.NewNotFound(resourcePlan, errmsg.NotFound(resourcePlan))
	}

	return &models.Page[*models.Plan]{
		Edges:    plans,
		PageInfo: models.NewPageInfo(total, q.Limit, q.Skip),
	}, nil
}

// Update обновляет план по id. Новый слаг выводится из нового имени,
// конфликт слага проверяется среди остальных записей.
func (s *PlanService) Update(ctx context.Context, id int, req models.UpdatePlanRequest) (*models.MutationResult[*models.Plan], error) {
	if id == 0 {
		return nil, apperror.NewValidation(resourcePlan, []apperror.FieldError{
			{Field: "id", Message: errmsg.Required("id")},
		})
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		return nil, validate.Violations(resourcePlan, err)
	}

	newSlug := slug.Make(req.Name)

	conflict, err := s.repo.FindPlanBySlugExcept(ctx, newSlug, id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.log.Error("conflict check failed", sl.Err(err))
		return nil, apperror.Parse(err, apperror.NewConflict(resourcePlan, errmsg.Duplicate(resourcePlan)))
	}
	if conflict != nil {
		return nil, apperror.NewConflict(resourcePlan, errmsg.Duplicate(resourcePlan))
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}
	patch := models.PlanPatch{
		Name:        req.Name,
		Slug:        newSlug,
		Description: req.Description,
		Price:       req.Price,
		Currency:    currency,
		IsActive:    req.IsActive,
	}
	edges, modified, err := s.repo.UpdatePlan(ctx, patch, id)
	if err != nil {
		s.log.Error("failed to update plan", sl.Err(err))
		return nil, apperror.Parse(err, apperror.NewConflict(resourcePlan, errmsg.Duplicate(resourcePlan)))
	}
	if modified == 0 {
		return nil, apperror.NewNotFound(resourcePlan, errmsg.NotFound(resourcePlan))
	}

	s.log.Info("updated plan", slog.Int("id", id))

	cacheKey := fmt.Sprintf("plan:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if err := s.events.Publish("plan."+models.ActionUpdated,
		models.NewEntityEvent(resourcePlan, models.ActionUpdated, edges)); err != nil {
		s.log.Warn("failed to publish event", sl.Err(err))
	}

	return &models.MutationResult[*models.Plan]{Modified: modified, Edges: edges}, nil
}

// Delete удаляет план по id из фильтра.
// Ноль удалённых записей — ошибка NotFound.
func (s *PlanService) Delete(ctx context.Context, filter models.PlanFilter) (*models.MutationResult[*models.Plan], error) {
	if err := s.validate.Struct(filter); err != nil {
		return nil, validate.Violations(resourcePlan, err)
	}
	if filter.ID == nil {
		return nil, apperror.NewValidation(resourcePlan, []apperror.FieldError{
			{Field: "id", Message: errmsg.Required("id")},
		})
	}

	edges, modified, err := s.repo.DeletePlan(ctx, *filter.ID)
	if err != nil {
		s.log.Error("failed to delete plan", sl.Err(err))
		return nil, apperror.Parse(err, apperror.NewBadRequest(resourcePlan, errmsg.UnableToDelete(resourcePlan)))
	}
	if modified == 0 {
		return nil, apperror.NewNotFound(resourcePlan, errmsg.NotFound(resourcePlan))
	}

	s.log.Info("deleted plan", slog.Int("id", *filter.ID))

	cacheKey := fmt.Sprintf("plan:%d", *filter.ID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if err := s.events.Publish("plan."+models.ActionDeleted,
		models.NewEntityEvent(resourcePlan, models.ActionDeleted, edges)); err != nil {
		s.log.Warn("failed to publish event", sl.Err(err))
	}

	return &models.MutationResult[*models.Plan]{Modified: modified, Edges: edges}, nil
}

// Count подсчитывает планы, удовлетворяющие фильтру, не загружая записи.
func (s *PlanService) Count(ctx context.Context, filter models.PlanFilter) (int, error) {
	if err := s.validate.Struct(filter); err != nil {
		return 0, validate.Violations(resourcePlan, err)
	}

	var id int
	if filter.ID != nil {
		id = *filter.ID
	}
	total, err := s.repo.CountPlans(ctx, id)
	if err != nil {
		s.log.Error("failed to count plans", sl.Err(err))
		return 0, apperror.Parse(err, apperror.NewNotFound(resourcePlan, errmsg.NotFound(resourcePlan)))
	}
	return total, nil
}
