// Package repository содержит SQL-методы хранилища для пользователей
// и тарифных планов поверх общего подключения storage.Storage.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/subscription-manager/internal/models"
	"github.com/magabrotheeeer/subscription-manager/internal/storage"
)

// Users реализует доступ к таблице users.
type Users struct {
	db *storage.Storage
}

// NewUsers создает репозиторий пользователей поверх подключения к базе.
func NewUsers(db *storage.Storage) *Users {
	return &Users{db: db}
}

// CreateUser вставляет нового пользователя и возвращает назначенный базой uid.
func (r *Users) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (name, email, date_of_birth, role, password_hash)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid`
	var newUID string
	if err := r.db.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.DateOfBirth, user.Role, user.PasswordHash).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByUID возвращает пользователя по его uid.
func (r *Users) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, date_of_birth, role, password_hash
			  FROM users
			  WHERE uid = $1`
	return r.scanUser(r.db.DB.QueryRowContext(ctx, query, uid), op)
}

// GetUserByEmail возвращает пользователя по email. Используется при входе
// и как проверка дубликата перед созданием.
func (r *Users) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, date_of_birth, role, password_hash
			  FROM users
			  WHERE email = $1`
	return r.scanUser(r.db.DB.QueryRowContext(ctx, query, email), op)
}

// FindUserByEmailExcept возвращает пользователя с данным email и uid,
// отличным от переданного. Используется как проверка конфликта при обновлении.
func (r *Users) FindUserByEmailExcept(ctx context.Context, email, uid string) (*models.User, error) {
	const op = "storage.FindUserByEmailExcept"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, date_of_birth, role, password_hash
			  FROM users
			  WHERE email = $1 AND uid::text <> $2`
	return r.scanUser(r.db.DB.QueryRowContext(ctx, query, email, uid), op)
}

// ListUsers возвращает страницу пользователей и общее количество записей,
// удовлетворяющих запросу.
func (r *Users) ListUsers(ctx context.Context, q models.UserQuery) ([]*models.User, int, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, date_of_birth, role, password_hash,
			      COUNT(*) OVER () AS total
			  FROM users
			  WHERE ($1 = '' OR uid::text = $1)
			  ORDER BY created_at, uid
			  LIMIT $2 OFFSET $3`
	rows, err := r.db.DB.QueryContext(ctx, query, q.UID, q.Limit, q.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	var total int
	for rows.Next() {
		var u models.User
		var dateOfBirth sql.NullTime
		if err := rows.Scan(&u.UID, &u.Name, &u.Email, &dateOfBirth,
			&u.Role, &u.PasswordHash, &total); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		if dateOfBirth.Valid {
			u.DateOfBirth = &dateOfBirth.Time
		}
		result = append(result, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// UpdateUser обновляет пользователя по uid и возвращает изменённые записи
// вместе с их количеством.
func (r *Users) UpdateUser(ctx context.Context, patch models.UserPatch, uid string) ([]*models.User, int, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	// пустая роль в patch не затирает сохранённую
	query := `UPDATE users
			  SET name = $1, email = $2, date_of_birth = $3,
			      role = COALESCE(NULLIF($4, ''), role)
			  WHERE uid::text = $5
			  RETURNING uid, name, email, date_of_birth, role, password_hash`
	rows, err := r.db.DB.QueryContext(ctx, query,
		patch.Name, patch.Email, patch.DateOfBirth, patch.Role, uid)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return collectUsers(rows, op)
}

// DeleteUser удаляет пользователя по uid и возвращает удалённые записи
// вместе с их количеством.
func (r *Users) DeleteUser(ctx context.Context, uid string) ([]*models.User, int, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users
			  WHERE uid::text = $1
			  RETURNING uid, name, email, date_of_birth, role, password_hash`
	rows, err := r.db.DB.QueryContext(ctx, query, uid)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return collectUsers(rows, op)
}

// CountUsers подсчитывает пользователей, удовлетворяющих фильтру, не загружая записи.
func (r *Users) CountUsers(ctx context.Context, uid string) (int, error) {
	const op = "storage.CountUsers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM users WHERE ($1 = '' OR uid::text = $1)`
	var total int
	if err := r.db.DB.QueryRowContext(ctx, query, uid).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

func (r *Users) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var dateOfBirth sql.NullTime
	if err := row.Scan(&u.UID, &u.Name, &u.Email, &dateOfBirth,
		&u.Role, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if dateOfBirth.Valid {
		u.DateOfBirth = &dateOfBirth.Time
	}
	return u, nil
}

func collectUsers(rows *sql.Rows, op string) ([]*models.User, int, error) {
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		var dateOfBirth sql.NullTime
		if err := rows.Scan(&u.UID, &u.Name, &u.Email, &dateOfBirth,
			&u.Role, &u.PasswordHash); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		if dateOfBirth.Valid {
			u.DateOfBirth = &dateOfBirth.Time
		}
		result = append(result, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, len(result), nil
}
