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

type EquipmentTypeRepositoryInterface interface {
	GetEquipmentTypes(ctx context.Context) ([]entities.EquipmentType, error)
	FindEquipmentType(ctx context.Context, id uint64) (*entities.EquipmentType, error)
	CreateEquipmentType(ctx context.Context, et *entities.EquipmentType) (uint64, error)
	UpdateEquipmentType(ctx context.Context, et *entities.EquipmentType) error
	DeleteEquipmentType(ctx context.Context, id uint64) error
}

type EquipmentTypeRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentTypeRepository(storage *pgxpool.Pool) EquipmentTypeRepositoryInterface {
	return &EquipmentTypeRepository{storage: storage}
}

func (r *EquipmentTypeRepository) GetEquipmentTypes(ctx context.Context) ([]entities.EquipmentType, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), created_at, updated_at
		FROM equipment_types
		ORDER BY name`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("выборка типов оборудования: %w", err)
	}
	defer rows.Close()

	types := make([]entities.EquipmentType, 0)
	for rows.Next() {
		var et entities.EquipmentType
		if err := rows.Scan(&et.ID, &et.Name, &et.Description, &et.CreatedAt, &et.UpdatedAt); err != nil {
			return nil, fmt.Errorf("сканирование типа оборудования: %w", err)
		}
		types = append(types, et)
	}
	return types, rows.Err()
}

func (r *EquipmentTypeRepository) FindEquipmentType(ctx context.Context, id uint64) (*entities.EquipmentType, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), created_at, updated_at
		FROM equipment_types
		WHERE id = $1`

	var et entities.EquipmentType
	err := r.storage.QueryRow(ctx, query, id).
		Scan(&et.ID, &et.Name, &et.Description, &et.CreatedAt, &et.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &et, nil
}

func (r *EquipmentTypeRepository) CreateEquipmentType(ctx context.Context, et *entities.EquipmentType) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO equipment_types (name, description) VALUES ($1, $2) RETURNING id`,
		et.Name, et.Description,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("создание типа оборудования: %w", err)
	}
	return id, nil
}

func (r *EquipmentTypeRepository) UpdateEquipmentType(ctx context.Context, et *entities.EquipmentType) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE equipment_types SET name = $1, description = $2, updated_at = NOW() WHERE id = $3`,
		et.Name, et.Description, et.ID,
	)
	if err != nil {
		return fmt.Errorf("обновление типа оборудования: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentTypeRepository) DeleteEquipmentType(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM equipment_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("удаление типа оборудования: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
