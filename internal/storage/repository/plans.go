package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/subscription-manager/internal/models"
	"github.com/magabrotheeeer/subscription-manager/internal/storage"
)

// Plans реализует доступ к таблице subscription_plans.
type Plans struct {
	db *storage.Storage
}

// NewPlans создает репозиторий тарифных планов поверх подключения к базе.
func NewPlans(db *storage.Storage) *Plans {
	return &Plans{db: db}
}

// CreatePlan вставляет новый тарифный план и возвращает его ID.
func (r *Plans) CreatePlan(ctx context.Context, plan models.Plan) (int, error) {
	const op = "storage.CreatePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscription_plans (name, slug, description, price, currency, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	if err := r.db.DB.QueryRowContext(ctx, query,
		plan.Name, plan.Slug, plan.Description, plan.Price, plan.Currency, plan.IsActive).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPlanByID возвращает тарифный план по его ID.
func (r *Plans) GetPlanByID(ctx context.Context, id int) (*models.Plan, error) {
	const op = "storage.GetPlanByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, slug, description, price, currency, is_active
			  FROM subscription_plans
			  WHERE id = $1`
	return r.scanPlan(r.db.DB.QueryRowContext(ctx, query, id), op)
}

// GetPlanBySlug возвращает тарифный план по slug.
// Используется как проверка дубликата перед созданием.
func (r *Plans) GetPlanBySlug(ctx context.Context, slug string) (*models.Plan, error) {
	const op = "storage.GetPlanBySlug"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, slug, description, price, currency, is_active
			  FROM subscription_plans
			  WHERE slug = $1`
	return r.scanPlan(r.db.DB.QueryRowContext(ctx, query, slug), op)
}

// FindPlanBySlugExcept возвращает тарифный план с данным slug и ID,
// отличным от переданного. Используется как проверка конфликта при обновлении.
func (r *Plans) FindPlanBySlugExcept(ctx context.Context, slug string, id int) (*models.Plan, error) {
	const op = "storage.FindPlanBySlugExcept"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, slug, description, price, currency, is_active
			  FROM subscription_plans
			  WHERE slug = $1 AND id <> $2`
	return r.scanPlan(r.db.DB.QueryRowContext(ctx, query, slug, id), op)
}

// ListPlans возвращает страницу тарифных планов и общее количество записей,
// удовлетворяющих запросу.
func (r *Plans) ListPlans(ctx context.Context, q models.PlanQuery) ([]*models.Plan, int, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, slug, description, price, currency, is_active,
			      COUNT(*) OVER () AS total
			  FROM subscription_plans
			  WHERE ($1 = 0 OR id = $1)
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := r.db.DB.QueryContext(ctx, query, q.ID, q.Limit, q.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Plan
	var total int
	for rows.Next() {
		var p models.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Description,
			&p.Price, &p.Currency, &p.IsActive, &total); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// UpdatePlan обновляет тарифный план по ID и возвращает изменённые записи
// вместе с их количеством.
func (r *Plans) UpdatePlan(ctx context.Context, patch models.PlanPatch, id int) ([]*models.Plan, int, error) {
	const op = "storage.UpdatePlan"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscription_plans
			  SET name = $1, slug = $2, description = $3, price = $4, currency = $5, is_active = $6
			  WHERE id = $7
			  RETURNING id, name, slug, description, price, currency, is_active`
	rows, err := r.db.DB.QueryContext(ctx, query,
		patch.Name, patch.Slug, patch.Description, patch.Price, patch.Currency, patch.IsActive, id)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return collectPlans(rows, op)
}

// DeletePlan удаляет тарифный план по ID и возвращает удалённые записи
// вместе с их количеством.
func (r *Plans) DeletePlan(ctx context.Context, id int) ([]*models.Plan, int, error) {
	const op = "storage.DeletePlan"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscription_plans
			  WHERE id = $1
			  RETURNING id, name, slug, description, price, currency, is_active`
	rows, err := r.db.DB.QueryContext(ctx, query, id)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return collectPlans(rows, op)
}

// CountPlans подсчитывает тарифные планы, удовлетворяющие фильтру, не загружая записи.
func (r *Plans) CountPlans(ctx context.Context, id int) (int, error) {
	const op = "storage.CountPlans"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM subscription_plans WHERE ($1 = 0 OR id = $1)`
	var total int
	if err := r.db.DB.QueryRowContext(ctx, query, id).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

func (r *Plans) scanPlan(row *sql.Row, op string) (*models.Plan, error) {
	p := &models.Plan{}
	if err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description,
		&p.Price, &p.Currency, &p.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func collectPlans(rows *sql.Rows, op string) ([]*models.Plan, int, error) {
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Plan
	for rows.Next() {
		var p models.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Description,
			&p.Price, &p.Currency, &p.IsActive); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, len(result), nil
}
