// Package services содержит бизнес-логику работы с пользователями:
// регистрация, вход, чтение, обновление и удаление.
//
// Каждая операция следует одной схеме: валидация входных данных (все
// нарушения собираются сразу), проверка дубликата уникального ключа,
// обращение к хранилищу и классификация ошибки на границе сервиса.
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
	"github.com/magabrotheeeer/subscription-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-manager/internal/lib/password"
	"github.com/magabrotheeeer/subscription-manager/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-manager/internal/lib/validate"
	"github.com/magabrotheeeer/subscription-manager/internal/models"
	"github.com/magabrotheeeer/subscription-manager/internal/storage"
)

// resourceUser — имя ресурса в сообщениях об ошибках.
const resourceUser = "User"

// dateLayout — формат даты рождения в запросах.
const dateLayout = "02-01-2006"

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает назначенный uid.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUserByUID возвращает пользователя по uid.
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// FindUserByEmailExcept ищет пользователя с данным email и другим uid.
	FindUserByEmailExcept(ctx context.Context, email, uid string) (*models.User, error)
	// ListUsers возвращает страницу пользователей и общее количество записей.
	ListUsers(ctx context.Context, q models.UserQuery) ([]*models.User, int, error)
	// UpdateUser применяет patch и возвращает изменённые записи с количеством.
	UpdateUser(ctx context.Context, patch models.UserPatch, uid string) ([]*models.User, int, error)
	// DeleteUser удаляет пользователя и возвращает удалённые записи с количеством.
	DeleteUser(ctx context.Context, uid string) ([]*models.User, int, error)
	// CountUsers подсчитывает пользователей по фильтру.
	CountUsers(ctx context.Context, uid string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Events описывает публикацию событий об изменении сущностей.
type Events interface {
	Publish(routingKey string, message any) error
}

// UserService реализует бизнес-логику работы с пользователями.
type UserService struct {
	repo     UserRepository
	cache    Cache
	events   Events
	tokens   jwt.Maker
	validate *validator.Validate
	log      *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, cache Cache, events Events, tokens jwt.Maker, log *slog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		cache:    cache,
		events:   events,
		tokens:   tokens,
		validate: validate.New(),
		log:      log,
	}
}

// Create регистрирует нового пользователя: валидация, проверка дубликата
// email, хэширование пароля и сохранение. Возвращённая сущность обязана
// нести назначенный базой uid.
func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.validate.Struct(req); err != nil {
		return nil, validate.Violations(resourceUser, err)
	}
	dateOfBirth, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	// проверка дубликата — best-effort, гарантию дает уникальный индекс
	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.log.Error("duplicate check failed", sl.Err(err))
		return nil, apperror.Parse(err, apperror.NewConflict(resourceUser, errmsg.Duplicate(resourceUser)))
	}
	if existing != nil {
		return nil, apperror.NewConflict(resourceUser, errmsg.Duplicate(resourceUser))
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		s.log.Error("failed to hash password", sl.Err(err))
		return nil, apperror.Parse(err, apperror.NewConflict(resourceUser, errmsg.Duplicate(resourceUser)))
	}

	role := req.Role
	if role == "" {
		role = "user" // дефолтная роль при регистрации
	}
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		DateOfBirth:  dateOfBirth,
		Role:         role,
		PasswordHash: hashed,
	}

	uid, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		s.log.Error("failed to create user", sl.Err(err))
		return nil, apperror.Parse(err, apperror.NewConflict(resourceUser, errmsg.Duplicate(resourceUser)))
	}
	if uid == "" {
		return nil, apperror.NewBadRequest(resourceUser, errmsg.UnableToSave(resourceUser))
	}
	user.UID = uid

	s.log.Info("created new user", slog.String("uid", uid))

	if err := s.events.Publish("user."+models.ActionCreated,
		models.NewEntityEvent(resourceUser, models.ActionCreated, user)); err != nil {
		s.log.Warn("failed to publish event", sl.Err(err))
	}
	cacheKey := fmt.Sprintf("user:%s", uid)
	if err := s.cache.Set(cacheKey, user, time.Hour); err != nil {
		s.log.Warn("failed to cache user", slog.String("key", cacheKey), sl.Err(err))
	}

	return &user, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return "", nil, validate.Violations(resourceUser, err)
	}

	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		s.log.Error("failed to find user for login", sl.Err(err))
		return "", nil, apperror.NewBadRequest(resourceUser, "invalid credentials")
	}
	if err := password.CompareHash(user.PasswordHash, req.Password); err != nil {
		return "", nil, apperror.NewBadRequest(resourceUser, "invalid credentials")
	}

	token, err := s.tokens.GenerateToken(user.Email, user.Role, user.UID)
	if err != nil {
		s.log.Error("failed to generate token", sl.Err(err))
		return "", nil, apperror.NewInternal(resourceUser, "failed to issue token")
	}
	return token, user, nil
}

// FindOne возвращает пользователя по uid из фильтра, используя кеш или хранилище.
func (s *UserService) FindOne(ctx context.Context, filter models.UserFilter) (*models.User, error) {
	if err := s.validate.Struct(filter); err != nil {
		return nil, validate.Violations(resourceUser, err)
	}
	if filter.UID == "" {
		return nil, apperror.NewNotFound(resourceUser, errmsg.NotFound(resourceUser))
	}

	cacheKey := fmt.Sprintf("user:%s", filter.UID)
	var cached models.User
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	user, err := s.repo.GetUserByUID(ctx, filter.UID)
	if err != nil {
		s.log.Error("failed to read user", sl.Err(err))
		return nil, apperror.Parse(err, apperror.NewNotFound(resourceUser, errmsg.NotFound(resourceUser)))
	}

	if err := s.cache.Set(cacheKey, user, time.Hour); err != nil {
		s.log.Warn("failed to cache user", slog.String("key", cacheKey), sl.Err(err))
	}
	return user, nil
}

// FindAll возвращает страницу пользователей. Фильтр сводится к одному
// нормализованному запросу; пустой результат — ошибка NotFound.
func (s *UserService) FindAll(ctx context.Context, filter models.UserFilter) (*models.Page[*models.User], error) {
	if err := s.validate.Struct(filter); err != nil {
		return nil, validate.Violations(resourceUser, err)
	}
	q := filter.Normalize()

	users, total, err := s.repo.ListUsers(ctx, q)
	if err != nil {
		s.log.Error("failed to list users", sl.Err(err))
		return nil, apperror.Parse(err, apperror.NewNotFound(resourceUser, errmsg.NotFound(resourceUser)))
	}
	if len(users) == 0 {
		return nil, apperror.NewNotFound(resourceUser, errmsg.NotFound(resourceUser))
	}

	return &models.Page[*models.User]{
		Edges:    users,
		PageInfo: models.NewPageInfo(total, q.Limit, q.Skip),
	}, nil
}

// Update обновляет пользователя по uid: проверяет конфликт email с другими
// записями и применяет patch. Ноль изменённых записей — ошибка NotFound.
func (s *UserService) Update(ctx context.Context, uid string, req models.UpdateUserRequest) (*models.MutationResult[*models.User], error) {
	if uid == "" {
		return nil, apperror.NewValidation(resourceUser, []apperror.FieldError{
			{Field: "uid", Message: errmsg.Required("uid")},
		})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validate.Struct(req); err != nil {
		return nil, validate.Violations(resourceUser, err)
	}
	dateOfBirth, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	conflict, err := s.repo.FindUserByEmailExcept(ctx, req.Email, uid)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.log.Error("conflict check failed", sl.Err(err))
		return nil, apperror.Parse(err, apperror.NewConflict(resourceUser, errmsg.Duplicate(resourceUser)))
	}
	if conflict != nil {
		return nil, apperror.NewConflict(resourceUser, errmsg.Duplicate(resourceUser))
	}

	patch := models.UserPatch{
		Name:        req.Name,
		Email:       req.Email,
		DateOfBirth: dateOfBirth,
		Role:        req.Role,
	}
	edges, modified, err := s.repo.UpdateUser(ctx, patch, uid)
	if err != nil {
		s.log.Error("failed to update user", sl.Err(err))
		return nil, apperror.Parse(err, apperror.NewConflict(resourceUser, errmsg.Duplicate(resourceUser)))
	}
	if modified == 0 {
		return nil, apperror.NewNotFound(resourceUser, errmsg.NotFound(resourceUser))
	}

	s.log.Info("updated user", slog.String("uid", uid))

	cacheKey := fmt.Sprintf("user:%s", uid)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if err := s.events.Publish("user."+models.ActionUpdated,
		models.NewEntityEvent(resourceUser, models.ActionUpdated, edges)); err != nil {
		s.log.Warn("failed to publish event", sl.Err(err))
	}

	return &models.MutationResult[*models.User]{Modified: modified, Edges: edges}, nil
}

// Delete удаляет пользователя по uid из фильтра.
// Ноль удалённых записей — ошибка NotFound.
func (s *UserService) Delete(ctx context.Context, filter models.UserFilter) (*models.MutationResult[*models.User], error) {
	if err := s.validate.Struct(filter); err != nil {
		return nil, validate.Violations(resourceUser, err)
	}
	if filter.UID == "" {
		return nil, apperror.NewValidation(resourceUser, []apperror.FieldError{
			{Field: "uid", Message: errmsg.Required("uid")},
		})
	}

	edges, modified, err := s.repo.DeleteUser(ctx, filter.UID)
	if err != nil {
		s.log.Error("failed to delete user", sl.Err(err))
		return nil, apperror.Parse(err, apperror.NewBadRequest(resourceUser, errmsg.UnableToDelete(resourceUser)))
	}
	if modified == 0 {
		return nil, apperror.NewNotFound(resourceUser, errmsg.NotFound(resourceUser))
	}

	s.log.Info("deleted user", slog.String("uid", filter.UID))

	cacheKey := fmt.Sprintf("user:%s", filter.UID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if err := s.events.Publish("user."+models.ActionDeleted,
		models.NewEntityEvent(resourceUser, models.ActionDeleted, edges)); err != nil {
		s.log.Warn("failed to publish event", sl.Err(err))
	}

	return &models.MutationResult[*models.User]{Modified: modified, Edges: edges}, nil
}

// Count подсчитывает пользователей, удовлетворяющих фильтру, не загружая записи.
func (s *UserService) Count(ctx context.Context, filter models.UserFilter) (int, error) {
	if err := s.validate.Struct(filter); err != nil {
		return 0, validate.Violations(resourceUser, err)
	}

	total, err := s.repo.CountUsers(ctx, filter.UID)
	if err != nil {
		s.log.Error("failed to count users", sl.Err(err))
		return 0, apperror.Parse(err, apperror.NewNotFound(resourceUser, errmsg.NotFound(resourceUser)))
	}
	return total, nil
}

func parseDateOfBirth(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, apperror.NewValidation(resourceUser, []apperror.FieldError{
			{Field: "date_of_birth", Message: errmsg.Invalid("date_of_birth")},
		})
	}
	return &parsed, nil
}
