package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"calibration-system/internal/dto"
	"calibration-system/internal/entities"
	apperrors "calibration-system/pkg/errors"
)

// EquipmentWithRelations - строка выборки оборудования, обогащённая
// именем типа и именем/цветом/флагами статуса из LEFT JOIN.
type EquipmentWithRelations struct {
	entities.Equipment
	EquipmentTypeName     null.String
	CalibrationStatusName null.String
	StatusColor           null.String
	IsOverdue             bool
	IsInProgress          bool
	IsCompleted           bool
}

type EquipmentRepositoryInterface interface {
	GetEquipmentWithFilters(ctx context.Context, filter dto.EquipmentFilterDTO) ([]EquipmentWithRelations, error)
	FindEquipment(ctx context.Context, id uint64) (*EquipmentWithRelations, error)
	CreateEquipment(ctx context.Context, eq *entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, eq *entities.Equipment) error
	DeleteEquipment(ctx context.Context, id uint64) error
	GetOverdueByDate(ctx context.Context) ([]EquipmentWithRelations, error)
	GetInProgress(ctx context.Context) ([]EquipmentWithRelations, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

var equipmentSelectColumns = []string{
	"e.id", "e.name", "e.description", "e.serial_number", "e.manufacturer", "e.model",
	"e.equipment_type_id", "e.calibration_status_id",
	"e.last_calibration_date", "e.next_calibration_date",
	"e.assigned_person", "e.location", "e.calibration_frequency_months",
	"e.custom_fields", "e.created_at", "e.updated_at",
	"et.name AS equipment_type_name",
	"cs.name AS calibration_status_name",
	"cs.color AS status_color",
	"COALESCE(cs.is_overdue, false)",
	"COALESCE(cs.is_in_progress, false)",
	"COALESCE(cs.is_completed, false)",
}

func baseEquipmentQuery() sq.SelectBuilder {
	return sq.Select(equipmentSelectColumns...).
		From("equipment e").
		LeftJoin("equipment_types et ON e.equipment_type_id = et.id").
		LeftJoin("calibration_statuses cs ON e.calibration_status_id = cs.id").
		PlaceholderFormat(sq.Dollar)
}

// buildEquipmentQuery собирает запрос списка из необязательных измерений
// фильтра. Измерения соединяются через AND, search внутри себя - через OR
// по шести полям. Порядок сортировки фильтры не меняют.
func buildEquipmentQuery(filter dto.EquipmentFilterDTO) sq.SelectBuilder {
	builder := baseEquipmentQuery()

	if filter.EquipmentType != "" {
		builder = builder.Where(sq.Eq{"et.name": filter.EquipmentType})
	}

	if filter.Status != "" {
		// Токены overdue/in-progress/due-soon трактуются через флаги и
		// дату, любое другое значение - точное совпадение имени статуса.
		switch filter.Status {
		case "overdue":
			builder = builder.Where(sq.Eq{"cs.is_overdue": true})
		case "in-progress":
			builder = builder.Where(sq.Eq{"cs.is_in_progress": true})
		case "due-soon":
			builder = builder.
				Where(sq.Expr("e.next_calibration_date <= CURRENT_DATE + INTERVAL '30 days'")).
				Where(sq.Eq{"cs.is_overdue": false})
		default:
			builder = builder.Where(sq.Eq{"cs.name": filter.Status})
		}
	}

	if filter.AssignedPerson != "" {
		builder = builder.Where(sq.ILike{"e.assigned_person": "%" + filter.AssignedPerson + "%"})
	}

	if filter.Location != "" {
		builder = builder.Where(sq.ILike{"e.location": "%" + filter.Location + "%"})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"e.name": pattern},
			sq.ILike{"e.description": pattern},
			sq.ILike{"e.serial_number": pattern},
			sq.ILike{"e.manufacturer": pattern},
			sq.ILike{"e.model": pattern},
			sq.ILike{"e.assigned_person": pattern},
		})
	}

	return builder.OrderBy("e.next_calibration_date ASC")
}

func scanEquipmentRow(row pgx.Row) (*EquipmentWithRelations, error) {
	var item EquipmentWithRelations
	var typeID, statusID null.Uint64

	err := row.Scan(
		&item.ID, &item.Name, &item.Description, &item.SerialNumber,
		&item.Manufacturer, &item.Model,
		&typeID, &statusID,
		&item.LastCalibrationDate, &item.NextCalibrationDate,
		&item.AssignedPerson, &item.Location, &item.CalibrationFrequencyMonths,
		&item.CustomFields, &item.CreatedAt, &item.UpdatedAt,
		&item.EquipmentTypeName, &item.CalibrationStatusName, &item.StatusColor,
		&item.IsOverdue, &item.IsInProgress, &item.IsCompleted,
	)
	if err != nil {
		return nil, err
	}

	item.EquipmentTypeID = typeID
	item.CalibrationStatusID = statusID
	return &item, nil
}

func (r *EquipmentRepository) collectEquipment(ctx context.Context, builder sq.SelectBuilder) ([]EquipmentWithRelations, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("сборка запроса оборудования: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("выборка оборудования: %w", err)
	}
	defer rows.Close()

	items := make([]EquipmentWithRelations, 0)
	for rows.Next() {
		item, err := scanEquipmentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("сканирование строки оборудования: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *EquipmentRepository) GetEquipmentWithFilters(ctx context.Context, filter dto.EquipmentFilterDTO) ([]EquipmentWithRelations, error) {
	return r.collectEquipment(ctx, buildEquipmentQuery(filter))
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*EquipmentWithRelations, error) {
	builder := baseEquipmentQuery().Where(sq.Eq{"e.id": id})

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("сборка запроса оборудования: %w", err)
	}

	item, err := scanEquipmentRow(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, eq *entities.Equipment) (uint64, error) {
	query := `
		INSERT INTO equipment (
			name, description, serial_number, manufacturer, model,
			equipment_type_id, calibration_status_id,
			last_calibration_date, next_calibration_date,
			assigned_person, location, calibration_frequency_months, custom_fields
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		eq.Name, eq.Description, eq.SerialNumber, eq.Manufacturer, eq.Model,
		eq.EquipmentTypeID, eq.CalibrationStatusID,
		eq.LastCalibrationDate, eq.NextCalibrationDate,
		eq.AssignedPerson, eq.Location, eq.CalibrationFrequencyMonths, eq.CustomFields,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("создание оборудования: %w", err)
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, eq *entities.Equipment) error {
	query := `
		UPDATE equipment
		SET name = $1, description = $2, serial_number = $3, manufacturer = $4, model = $5,
			equipment_type_id = $6, calibration_status_id = $7,
			last_calibration_date = $8, next_calibration_date = $9,
			assigned_person = $10, location = $11, calibration_frequency_months = $12,
			custom_fields = $13, updated_at = NOW()
		WHERE id = $14`

	result, err := r.storage.Exec(ctx, query,
		eq.Name, eq.Description, eq.SerialNumber, eq.Manufacturer, eq.Model,
		eq.EquipmentTypeID, eq.CalibrationStatusID,
		eq.LastCalibrationDate, eq.NextCalibrationDate,
		eq.AssignedPerson, eq.Location, eq.CalibrationFrequencyMonths,
		eq.CustomFields, eq.ID,
	)
	if err != nil {
		return fmt.Errorf("обновление оборудования: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("удаление оборудования: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetOverdueByDate - просрочка в SQL-смысле: дата поверки раньше текущей даты.
// Определение расходится с флагом is_overdue и сохранено как есть (см. DESIGN.md).
func (r *EquipmentRepository) GetOverdueByDate(ctx context.Context) ([]EquipmentWithRelations, error) {
	builder := baseEquipmentQuery().
		Where(sq.Expr("e.next_calibration_date < CURRENT_DATE")).
		OrderBy("e.next_calibration_date ASC")
	return r.collectEquipment(ctx, builder)
}

func (r *EquipmentRepository) GetInProgress(ctx context.Context) ([]EquipmentWithRelations, error) {
	builder := baseEquipmentQuery().
		Where(sq.Eq{"cs.is_in_progress": true}).
		OrderBy("e.updated_at DESC")
	return r.collectEquipment(ctx, builder)
}

// FormatDate приводит дату к YYYY-MM-DD для DTO, пустая строка для NULL.
func FormatDate(t null.Time) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format("2006-01-02")
}

func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
