package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"calibration-system/internal/entities"
	apperrors "calibration-system/pkg/errors"
)

type CustomFieldRepositoryInterface interface {
	GetCustomFields(ctx context.Context, tableName string) ([]entities.CustomField, error)
	FindCustomField(ctx context.Context, id uint64) (*entities.CustomField, error)
	CreateCustomField(ctx context.Context, cf *entities.CustomField) (uint64, error)
	UpdateCustomField(ctx context.Context, cf *entities.CustomField) error
	DeleteCustomField(ctx context.Context, id uint64) error
}

type CustomFieldRepository struct {
	storage *pgxpool.Pool
}

func NewCustomFieldRepository(storage *pgxpool.Pool) CustomFieldRepositoryInterface {
	return &CustomFieldRepository{storage: storage}
}

const customFieldColumns = `id, table_name, field_name, field_type, is_required, field_options, display_order, created_at, updated_at`

func scanCustomField(row pgx.Row) (*entities.CustomField, error) {
	var cf entities.CustomField
	err := row.Scan(&cf.ID, &cf.TableName, &cf.FieldName, &cf.FieldType,
		&cf.IsRequired, &cf.FieldOptions, &cf.DisplayOrder,
		&cf.CreatedAt, &cf.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cf, nil
}

// GetCustomFields возвращает поля таблицы в порядке display_order; пустое
// tableName означает все таблицы.
func (r *CustomFieldRepository) GetCustomFields(ctx context.Context, tableName string) ([]entities.CustomField, error) {
	query := `SELECT ` + customFieldColumns + ` FROM custom_fields`
	args := []interface{}{}
	if tableName != "" {
		query += ` WHERE table_name = $1`
		args = append(args, tableName)
	}
	query += ` ORDER BY display_order, field_name`

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("выборка пользовательских полей: %w", err)
	}
	defer rows.Close()

	fields := make([]entities.CustomField, 0)
	for rows.Next() {
		cf, err := scanCustomField(rows)
		if err != nil {
			return nil, fmt.Errorf("сканирование пользовательского поля: %w", err)
		}
		fields = append(fields, *cf)
	}
	return fields, rows.Err()
}

func (r *CustomFieldRepository) FindCustomField(ctx context.Context, id uint64) (*entities.CustomField, error) {
	cf, err := scanCustomField(r.storage.QueryRow(ctx,
		`SELECT `+customFieldColumns+` FROM custom_fields WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return cf, nil
}

func (r *CustomFieldRepository) CreateCustomField(ctx context.Context, cf *entities.CustomField) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO custom_fields (table_name, field_name, field_type, is_required, field_options, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		cf.TableName, cf.FieldName, cf.FieldType, cf.IsRequired, cf.FieldOptions, cf.DisplayOrder,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("создание пользовательского поля: %w", err)
	}
	return id, nil
}

func (r *CustomFieldRepository) UpdateCustomField(ctx context.Context, cf *entities.CustomField) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE custom_fields
		SET field_name = $1, field_type = $2, is_required = $3, field_options = $4, display_order = $5, updated_at = NOW()
		WHERE id = $6`,
		cf.FieldName, cf.FieldType, cf.IsRequired, cf.FieldOptions, cf.DisplayOrder, cf.ID,
	)
	if err != nil {
		return fmt.Errorf("обновление пользовательского поля: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CustomFieldRepository) DeleteCustomField(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM custom_fields WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("удаление пользовательского поля: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
