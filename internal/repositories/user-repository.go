package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"calibration-system/internal/entities"
	apperrors "calibration-system/pkg/errors"
)

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context) ([]entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	FindUserByID(ctx context.Context, id string) (*entities.User, error)
	CreateUser(ctx context.Context, u *entities.User) (string, error)
	UpdateUser(ctx context.Context, u *entities.User) error
	DeleteUser(ctx context.Context, id string) error
	EnsureUser(ctx context.Context, email, name string) (*entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]entities.User, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, email, name, created_at, updated_at FROM users ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("выборка пользователей: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("сканирование пользователя: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var u entities.User
	err := r.storage.QueryRow(ctx,
		`SELECT id, email, name, created_at, updated_at FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, id string) (*entities.User, error) {
	var u entities.User
	err := r.storage.QueryRow(ctx,
		`SELECT id, email, name, created_at, updated_at FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, u *entities.User) (string, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := r.storage.Exec(ctx,
		`INSERT INTO users (id, email, name) VALUES ($1, $2, $3)`,
		u.ID, u.Email, u.Name,
	)
	if err != nil {
		return "", fmt.Errorf("создание пользователя: %w", err)
	}
	return u.ID, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, u *entities.User) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE users SET email = $1, name = $2, updated_at = NOW() WHERE id = $3`,
		u.Email, u.Name, u.ID,
	)
	if err != nil {
		return fmt.Errorf("обновление пользователя: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("удаление пользователя: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// EnsureUser находит пользователя по email либо заводит его. Используется
// при входе, чтобы записи журнала всегда ссылались на существующую строку.
func (r *UserRepository) EnsureUser(ctx context.Context, email, name string) (*entities.User, error) {
	u, err := r.FindUserByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	created := &entities.User{ID: uuid.NewString(), Email: email, Name: name}
	if _, err := r.CreateUser(ctx, created); err != nil {
		return nil, err
	}
	return r.FindUserByEmail(ctx, email)
}
