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

type CalibrationStatusRepositoryInterface interface {
	GetCalibrationStatuses(ctx context.Context) ([]entities.CalibrationStatus, error)
	FindCalibrationStatus(ctx context.Context, id uint64) (*entities.CalibrationStatus, error)
	CreateCalibrationStatus(ctx context.Context, cs *entities.CalibrationStatus) (uint64, error)
	UpdateCalibrationStatus(ctx context.Context, cs *entities.CalibrationStatus) error
	DeleteCalibrationStatus(ctx context.Context, id uint64) error
}

type CalibrationStatusRepository struct {
	storage *pgxpool.Pool
}

func NewCalibrationStatusRepository(storage *pgxpool.Pool) CalibrationStatusRepositoryInterface {
	return &CalibrationStatusRepository{storage: storage}
}

const calibrationStatusColumns = `id, name, COALESCE(color, ''), is_overdue, is_in_progress, is_completed, created_at, updated_at`

func scanCalibrationStatus(row pgx.Row) (*entities.CalibrationStatus, error) {
	var cs entities.CalibrationStatus
	err := row.Scan(&cs.ID, &cs.Name, &cs.Color,
		&cs.IsOverdue, &cs.IsInProgress, &cs.IsCompleted,
		&cs.CreatedAt, &cs.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func (r *CalibrationStatusRepository) GetCalibrationStatuses(ctx context.Context) ([]entities.CalibrationStatus, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT `+calibrationStatusColumns+` FROM calibration_statuses ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("выборка статусов поверки: %w", err)
	}
	defer rows.Close()

	statuses := make([]entities.CalibrationStatus, 0)
	for rows.Next() {
		cs, err := scanCalibrationStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("сканирование статуса поверки: %w", err)
		}
		statuses = append(statuses, *cs)
	}
	return statuses, rows.Err()
}

func (r *CalibrationStatusRepository) FindCalibrationStatus(ctx context.Context, id uint64) (*entities.CalibrationStatus, error) {
	cs, err := scanCalibrationStatus(r.storage.QueryRow(ctx,
		`SELECT `+calibrationStatusColumns+` FROM calibration_statuses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return cs, nil
}

func (r *CalibrationStatusRepository) CreateCalibrationStatus(ctx context.Context, cs *entities.CalibrationStatus) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO calibration_statuses (name, color, is_overdue, is_in_progress, is_completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		cs.Name, cs.Color, cs.IsOverdue, cs.IsInProgress, cs.IsCompleted,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("создание статуса поверки: %w", err)
	}
	return id, nil
}

func (r *CalibrationStatusRepository) UpdateCalibrationStatus(ctx context.Context, cs *entities.CalibrationStatus) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE calibration_statuses
		SET name = $1, color = $2, is_overdue = $3, is_in_progress = $4, is_completed = $5, updated_at = NOW()
		WHERE id = $6`,
		cs.Name, cs.Color, cs.IsOverdue, cs.IsInProgress, cs.IsCompleted, cs.ID,
	)
	if err != nil {
		return fmt.Errorf("обновление статуса поверки: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CalibrationStatusRepository) DeleteCalibrationStatus(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM calibration_statuses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("удаление статуса поверки: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
