package services

import (
	"context"

	"go.uber.org/zap"

	"calibration-system/internal/dto"
	"calibration-system/internal/entities"
	"calibration-system/internal/repositories"
)

type CalibrationStatusService struct {
	calibrationStatusRepository repositories.CalibrationStatusRepositoryInterface
	changeLogRepository         repositories.ChangeLogRepositoryInterface
	logger                      *zap.Logger
}

func NewCalibrationStatusService(
	calibrationStatusRepository repositories.CalibrationStatusRepositoryInterface,
	changeLogRepository repositories.ChangeLogRepositoryInterface,
	logger *zap.Logger,
) *CalibrationStatusService {
	return &CalibrationStatusService{
		calibrationStatusRepository: calibrationStatusRepository,
		changeLogRepository:         changeLogRepository,
		logger:                      logger,
	}
}

func mapCalibrationStatusDTO(cs entities.CalibrationStatus) dto.CalibrationStatusDTO {
	return dto.CalibrationStatusDTO{
		ID:           cs.ID,
		Name:         cs.Name,
		Color:        cs.Color,
		IsOverdue:    cs.IsOverdue,
		IsInProgress: cs.IsInProgress,
		IsCompleted:  cs.IsCompleted,
		CreatedAt:    repositories.FormatTimestamp(cs.CreatedAt),
		UpdatedAt:    repositories.FormatTimestamp(cs.UpdatedAt),
	}
}

func (s *CalibrationStatusService) GetCalibrationStatuses(ctx context.Context) ([]dto.CalibrationStatusDTO, error) {
	statuses, err := s.calibrationStatusRepository.GetCalibrationStatuses(ctx)
	if err != nil {
		s.logger.Error("Ошибка при выборке статусов поверки", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CalibrationStatusDTO, 0, len(statuses))
	for _, cs := range statuses {
		result = append(result, mapCalibrationStatusDTO(cs))
	}
	return result, nil
}

func (s *CalibrationStatusService) CreateCalibrationStatus(ctx context.Context, payload dto.CreateCalibrationStatusDTO, actor Actor) (*dto.CalibrationStatusDTO, error) {
	cs := &entities.CalibrationStatus{
		Name:         payload.Name,
		Color:        payload.Color,
		IsOverdue:    payload.IsOverdue,
		IsInProgress: payload.IsInProgress,
		IsCompleted:  payload.IsCompleted,
	}

	id, err := s.calibrationStatusRepository.CreateCalibrationStatus(ctx, cs)
	if err != nil {
		s.logger.Error("Ошибка при создании статуса поверки", zap.Error(err))
		return nil, err
	}

	created, err := s.calibrationStatusRepository.FindCalibrationStatus(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log(ctx, entities.ChangeActionCreate, id, map[string]interface{}{},
		calibrationStatusSnapshot(created), actor)

	result := mapCalibrationStatusDTO(*created)
	return &result, nil
}

func (s *CalibrationStatusService) UpdateCalibrationStatus(ctx context.Context, payload dto.UpdateCalibrationStatusDTO, actor Actor) (*dto.CalibrationStatusDTO, error) {
	cs := &entities.CalibrationStatus{
		ID:           payload.ID,
		Name:         payload.Name,
		Color:        payload.Color,
		IsOverdue:    payload.IsOverdue,
		IsInProgress: payload.IsInProgress,
		IsCompleted:  payload.IsCompleted,
	}

	if err := s.calibrationStatusRepository.UpdateCalibrationStatus(ctx, cs); err != nil {
		s.logger.Error("Ошибка при обновлении статуса поверки", zap.Uint64("id", payload.ID), zap.Error(err))
		return nil, err
	}

	updated, err := s.calibrationStatusRepository.FindCalibrationStatus(ctx, payload.ID)
	if err != nil {
		return nil, err
	}

	s.log(ctx, entities.ChangeActionUpdate, payload.ID, map[string]interface{}{},
		calibrationStatusSnapshot(updated), actor)

	result := mapCalibrationStatusDTO(*updated)
	return &result, nil
}

func (s *CalibrationStatusService) DeleteCalibrationStatus(ctx context.Context, id uint64, actor Actor) error {
	existing, err := s.calibrationStatusRepository.FindCalibrationStatus(ctx, id)
	if err != nil {
		return err
	}

	s.log(ctx, entities.ChangeActionDelete, id,
		calibrationStatusSnapshot(existing), map[string]interface{}{}, actor)

	if err := s.calibrationStatusRepository.DeleteCalibrationStatus(ctx, id); err != nil {
		s.logger.Error("Ошибка при удалении статуса поверки", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *CalibrationStatusService) log(ctx context.Context, action string, recordID uint64, oldValues, newValues map[string]interface{}, actor Actor) {
	writeChangeLogEntry(ctx, s.changeLogRepository, s.logger, "calibration_statuses", action, recordID, oldValues, newValues, actor)
}

func calibrationStatusSnapshot(cs *entities.CalibrationStatus) map[string]interface{} {
	return map[string]interface{}{
		"id":             cs.ID,
		"name":           cs.Name,
		"color":          cs.Color,
		"is_overdue":     cs.IsOverdue,
		"is_in_progress": cs.IsInProgress,
		"is_completed":   cs.IsCompleted,
	}
}
