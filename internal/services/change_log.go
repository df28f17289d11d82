package services

import (
	"context"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"calibration-system/internal/dto"
	"calibration-system/internal/entities"
	"calibration-system/internal/repositories"
)

// writeChangeLogEntry - общая запись в журнал для всех сервисов. Ошибка
// журналирования логируется, но не прерывает основную операцию.
func writeChangeLogEntry(
	ctx context.Context,
	repo repositories.ChangeLogRepositoryInterface,
	logger *zap.Logger,
	tableName, action string,
	recordID uint64,
	oldValues, newValues map[string]interface{},
	actor Actor,
) {
	cl := &entities.ChangeLog{
		TableName: tableName,
		RecordID:  recordID,
		Action:    action,
		OldValues: oldValues,
		NewValues: newValues,
		ChangedBy: actor.Name,
	}
	if actor.UserID != "" {
		cl.UserID = null.StringFrom(actor.UserID)
	}

	if err := repo.CreateChangeLog(ctx, cl); err != nil {
		logger.Error("Ошибка записи в журнал изменений",
			zap.String("table", tableName),
			zap.String("action", action),
			zap.Uint64("record_id", recordID),
			zap.Error(err))
	}
}

type ChangeLogService struct {
	changeLogRepository repositories.ChangeLogRepositoryInterface
	logger              *zap.Logger
}

func NewChangeLogService(changeLogRepository repositories.ChangeLogRepositoryInterface, logger *zap.Logger) *ChangeLogService {
	return &ChangeLogService{changeLogRepository: changeLogRepository, logger: logger}
}

func (s *ChangeLogService) GetChangeLogs(ctx context.Context, filter dto.ChangeLogFilterDTO) ([]dto.ChangeLogDTO, error) {
	logs, err := s.changeLogRepository.GetChangeLogs(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при выборке журнала изменений", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ChangeLogDTO, 0, len(logs))
	for _, cl := range logs {
		result = append(result, dto.ChangeLogDTO{
			ID:        cl.ID,
			TableName: cl.TableName,
			RecordID:  cl.RecordID,
			Action:    cl.Action,
			OldValues: cl.OldValues,
			NewValues: cl.NewValues,
			ChangedAt: repositories.FormatTimestamp(cl.ChangedAt),
			UserID:    cl.ChangeLog.UserID.String,
			ChangedBy: cl.ChangedBy,
			UserName:  cl.UserName.String,
			UserEmail: cl.UserEmail.String,
		})
	}
	return result, nil
}
