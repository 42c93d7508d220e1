// user.go — репозиторий таблицы users.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/gofiman/internal/domain/model"
)

// userColumns — список столбцов таблицы users для SELECT-запросов.
const userColumns = `id, email, password_hash, created_at`

// UserRepository — интерфейс доступа к пользователям.
type UserRepository interface {
	// Insert вставляет пользователя; id и created_at заполняются БД.
	// Занятый email даёт ErrAlreadyExists.
	Insert(ctx context.Context, u *model.User) error
	// GetByEmail возвращает пользователя по email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetByID возвращает пользователя по UUID.
	GetByID(ctx context.Context, userID string) (*model.User, error)
	// Exists сообщает, существует ли пользователь с указанным UUID.
	Exists(ctx context.Context, userID string) (bool, error)
	// Count возвращает общее количество пользователей.
	Count(ctx context.Context) (int, error)
}

// userRepo — реализация UserRepository через pgx.
type userRepo struct {
	db DBTX
}

// NewUserRepository создаёт репозиторий пользователей.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepo{db: db}
}

// Insert вставляет пользователя. UUID и created_at назначает БД.
func (r *userRepo) Insert(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, u.Email, u.PasswordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("ошибка вставки пользователя: %w", err)
	}
	return nil
}

// GetByEmail возвращает пользователя по email или ErrNotFound.
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

// GetByID возвращает пользователя по UUID или ErrNotFound.
func (r *userRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

// Exists сообщает, существует ли пользователь с указанным UUID.
func (r *userRepo) Exists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки пользователя: %w", err)
	}
	return exists, nil
}

// Count возвращает общее количество пользователей.
func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта пользователей: %w", err)
	}
	return count, nil
}

// scanOne сканирует одну строку или возвращает ErrNotFound.
func (r *userRepo) scanOne(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return u, nil
}
