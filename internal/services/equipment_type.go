package services

import (
	"context"

	"go.uber.org/zap"

	"calibration-system/internal/dto"
	"calibration-system/internal/entities"
	"calibration-system/internal/repositories"
)

type EquipmentTypeService struct {
	equipmentTypeRepository repositories.EquipmentTypeRepositoryInterface
	changeLogRepository     repositories.ChangeLogRepositoryInterface
	logger                  *zap.Logger
}

func NewEquipmentTypeService(
	equipmentTypeRepository repositories.EquipmentTypeRepositoryInterface,
	changeLogRepository repositories.ChangeLogRepositoryInterface,
	logger *zap.Logger,
) *EquipmentTypeService {
	return &EquipmentTypeService{
		equipmentTypeRepository: equipmentTypeRepository,
		changeLogRepository:     changeLogRepository,
		logger:                  logger,
	}
}

func mapEquipmentTypeDTO(et entities.EquipmentType) dto.EquipmentTypeDTO {
	return dto.EquipmentTypeDTO{
		ID:          et.ID,
		Name:        et.Name,
		Description: et.Description,
		CreatedAt:   repositories.FormatTimestamp(et.CreatedAt),
		UpdatedAt:   repositories.FormatTimestamp(et.UpdatedAt),
	}
}

func (s *EquipmentTypeService) GetEquipmentTypes(ctx context.Context) ([]dto.EquipmentTypeDTO, error) {
	types, err := s.equipmentTypeRepository.GetEquipmentTypes(ctx)
	if err != nil {
		s.logger.Error("Ошибка при выборке типов оборудования", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EquipmentTypeDTO, 0, len(types))
	for _, et := range types {
		result = append(result, mapEquipmentTypeDTO(et))
	}
	return result, nil
}

func (s *EquipmentTypeService) CreateEquipmentType(ctx context.Context, payload dto.CreateEquipmentTypeDTO, actor Actor) (*dto.EquipmentTypeDTO, error) {
	et := &entities.EquipmentType{Name: payload.Name, Description: payload.Description}

	id, err := s.equipmentTypeRepository.CreateEquipmentType(ctx, et)
	if err != nil {
		s.logger.Error("Ошибка при создании типа оборудования", zap.Error(err))
		return nil, err
	}

	created, err := s.equipmentTypeRepository.FindEquipmentType(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log(ctx, entities.ChangeActionCreate, id, map[string]interface{}{},
		equipmentTypeSnapshot(created), actor)

	result := mapEquipmentTypeDTO(*created)
	return &result, nil
}

func (s *EquipmentTypeService) UpdateEquipmentType(ctx context.Context, payload dto.UpdateEquipmentTypeDTO, actor Actor) (*dto.EquipmentTypeDTO, error) {
	et := &entities.EquipmentType{ID: payload.ID, Name: payload.Name, Description: payload.Description}

	if err := s.equipmentTypeRepository.UpdateEquipmentType(ctx, et); err != nil {
		s.logger.Error("Ошибка при обновлении типа оборудования", zap.Uint64("id", payload.ID), zap.Error(err))
		return nil, err
	}

	updated, err := s.equipmentTypeRepository.FindEquipmentType(ctx, payload.ID)
	if err != nil {
		return nil, err
	}

	s.log(ctx, entities.ChangeActionUpdate, payload.ID, map[string]interface{}{},
		equipmentTypeSnapshot(updated), actor)

	result := mapEquipmentTypeDTO(*updated)
	return &result, nil
}

func (s *EquipmentTypeService) DeleteEquipmentType(ctx context.Context, id uint64, actor Actor) error {
	existing, err := s.equipmentTypeRepository.FindEquipmentType(ctx, id)
	if err != nil {
		return err
	}

	s.log(ctx, entities.ChangeActionDelete, id,
		equipmentTypeSnapshot(existing), map[string]interface{}{}, actor)

	if err := s.equipmentTypeRepository.DeleteEquipmentType(ctx, id); err != nil {
		s.logger.Error("Ошибка при удалении типа оборудования", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *EquipmentTypeService) log(ctx context.Context, action string, recordID uint64, oldValues, newValues map[string]interface{}, actor Actor) {
	writeChangeLogEntry(ctx, s.changeLogRepository, s.logger, "equipment_types", action, recordID, oldValues, newValues, actor)
}

func equipmentTypeSnapshot(et *entities.EquipmentType) map[string]interface{} {
	return map[string]interface{}{
		"id":          et.ID,
		"name":        et.Name,
		"description": et.Description,
	}
}
