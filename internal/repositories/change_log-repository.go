package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5/pgxpool"

	"calibration-system/internal/dto"
	"calibration-system/internal/entities"
)

type ChangeLogRepositoryInterface interface {
	CreateChangeLog(ctx context.Context, cl *entities.ChangeLog) error
	GetChangeLogs(ctx context.Context, filter dto.ChangeLogFilterDTO) ([]ChangeLogWithUser, error)
}

// ChangeLogWithUser - строка журнала вместе с данными пользователя из LEFT JOIN.
type ChangeLogWithUser struct {
	entities.ChangeLog
	UserName  null.String
	UserEmail null.String
}

type ChangeLogRepository struct {
	storage *pgxpool.Pool
}

func NewChangeLogRepository(storage *pgxpool.Pool) ChangeLogRepositoryInterface {
	return &ChangeLogRepository{storage: storage}
}

func (r *ChangeLogRepository) CreateChangeLog(ctx context.Context, cl *entities.ChangeLog) error {
	_, err := r.storage.Exec(ctx, `
		INSERT INTO change_logs (table_name, record_id, action, old_values, new_values, user_id, changed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		cl.TableName, cl.RecordID, cl.Action, cl.OldValues, cl.NewValues, cl.UserID, cl.ChangedBy,
	)
	if err != nil {
		return fmt.Errorf("запись в журнал изменений: %w", err)
	}
	return nil
}

// GetChangeLogs возвращает записи журнала, новые первыми. С EquipmentID
// выбираются все записи по этой позиции, limit/offset игнорируются.
func (r *ChangeLogRepository) GetChangeLogs(ctx context.Context, filter dto.ChangeLogFilterDTO) ([]ChangeLogWithUser, error) {
	builder := sq.Select(
		"cl.id", "cl.table_name", "cl.record_id", "cl.action",
		"cl.old_values", "cl.new_values", "cl.changed_at",
		"cl.user_id", "COALESCE(cl.changed_by, '')",
		"u.name", "u.email",
	).
		From("change_logs cl").
		LeftJoin("users u ON cl.user_id = u.id").
		PlaceholderFormat(sq.Dollar).
		OrderBy("cl.changed_at DESC")

	if filter.EquipmentID != nil {
		builder = builder.
			Where(sq.Eq{"cl.table_name": "equipment"}).
			Where(sq.Eq{"cl.record_id": *filter.EquipmentID})
	} else {
		limit := filter.Limit
		if limit <= 0 {
			limit = 50
		}
		builder = builder.Limit(uint64(limit))
		if filter.Offset > 0 {
			builder = builder.Offset(uint64(filter.Offset))
		}
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("сборка запроса журнала: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("выборка журнала изменений: %w", err)
	}
	defer rows.Close()

	logs := make([]ChangeLogWithUser, 0)
	for rows.Next() {
		var cl ChangeLogWithUser
		err := rows.Scan(
			&cl.ID, &cl.TableName, &cl.RecordID, &cl.Action,
			&cl.OldValues, &cl.NewValues, &cl.ChangedAt,
			&cl.UserID, &cl.ChangedBy,
			&cl.UserName, &cl.UserEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("сканирование записи журнала: %w", err)
		}
		logs = append(logs, cl)
	}
	return logs, rows.Err()
}
