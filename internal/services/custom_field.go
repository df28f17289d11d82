package services

import (
	"context"
	"encoding/json"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"calibration-system/internal/dto"
	"calibration-system/internal/entities"
	"calibration-system/internal/repositories"
)

type CustomFieldService struct {
	customFieldRepository repositories.CustomFieldRepositoryInterface
	changeLogRepository   repositories.ChangeLogRepositoryInterface
	logger                *zap.Logger
}

func NewCustomFieldService(
	customFieldRepository repositories.CustomFieldRepositoryInterface,
	changeLogRepository repositories.ChangeLogRepositoryInterface,
	logger *zap.Logger,
) *CustomFieldService {
	return &CustomFieldService{
		customFieldRepository: customFieldRepository,
		changeLogRepository:   changeLogRepository,
		logger:                logger,
	}
}

func mapCustomFieldDTO(cf entities.CustomField) dto.CustomFieldDTO {
	result := dto.CustomFieldDTO{
		ID:           cf.ID,
		TableName:    cf.TableName,
		FieldName:    cf.FieldName,
		FieldType:    cf.FieldType,
		IsRequired:   cf.IsRequired,
		DisplayOrder: cf.DisplayOrder,
		CreatedAt:    repositories.FormatTimestamp(cf.CreatedAt),
		UpdatedAt:    repositories.FormatTimestamp(cf.UpdatedAt),
	}
	if cf.FieldOptions.Valid {
		var options map[string]interface{}
		if err := json.Unmarshal(cf.FieldOptions.JSON, &options); err == nil {
			result.FieldOptions = options
		}
	}
	return result
}

func fieldOptionsJSON(options map[string]interface{}) (null.JSON, error) {
	if options == nil {
		return null.JSON{}, nil
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return null.JSON{}, err
	}
	return null.JSONFrom(raw), nil
}

func (s *CustomFieldService) GetCustomFields(ctx context.Context, tableName string) ([]dto.CustomFieldDTO, error) {
	fields, err := s.customFieldRepository.GetCustomFields(ctx, tableName)
	if err != nil {
		s.logger.Error("Ошибка при выборке пользовательских полей", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CustomFieldDTO, 0, len(fields))
	for _, cf := range fields {
		result = append(result, mapCustomFieldDTO(cf))
	}
	return result, nil
}

func (s *CustomFieldService) CreateCustomField(ctx context.Context, payload dto.CreateCustomFieldDTO, actor Actor) (*dto.CustomFieldDTO, error) {
	options, err := fieldOptionsJSON(payload.FieldOptions)
	if err != nil {
		return nil, err
	}

	cf := &entities.CustomField{
		TableName:    payload.TableName,
		FieldName:    payload.FieldName,
		FieldType:    payload.FieldType,
		IsRequired:   payload.IsRequired,
		FieldOptions: options,
		DisplayOrder: payload.DisplayOrder,
	}

	id, err := s.customFieldRepository.CreateCustomField(ctx, cf)
	if err != nil {
		s.logger.Error("Ошибка при создании пользовательского поля", zap.Error(err))
		return nil, err
	}

	created, err := s.customFieldRepository.FindCustomField(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log(ctx, entities.ChangeActionCreate, id, map[string]interface{}{},
		customFieldSnapshot(created), actor)

	result := mapCustomFieldDTO(*created)
	return &result, nil
}

func (s *CustomFieldService) UpdateCustomField(ctx context.Context, payload dto.UpdateCustomFieldDTO, actor Actor) (*dto.CustomFieldDTO, error) {
	existing, err := s.customFieldRepository.FindCustomField(ctx, payload.ID)
	if err != nil {
		return nil, err
	}

	options, err := fieldOptionsJSON(payload.FieldOptions)
	if err != nil {
		return nil, err
	}

	cf := &entities.CustomField{
		ID:           payload.ID,
		TableName:    existing.TableName,
		FieldName:    payload.FieldName,
		FieldType:    payload.FieldType,
		IsRequired:   payload.IsRequired,
		FieldOptions: options,
		DisplayOrder: payload.DisplayOrder,
	}

	if err := s.customFieldRepository.UpdateCustomField(ctx, cf); err != nil {
		s.logger.Error("Ошибка при обновлении пользовательского поля", zap.Uint64("id", payload.ID), zap.Error(err))
		return nil, err
	}

	updated, err := s.customFieldRepository.FindCustomField(ctx, payload.ID)
	if err != nil {
		return nil, err
	}

	s.log(ctx, entities.ChangeActionUpdate, payload.ID, map[string]interface{}{},
		customFieldSnapshot(updated), actor)

	result := mapCustomFieldDTO(*updated)
	return &result, nil
}

func (s *CustomFieldService) DeleteCustomField(ctx context.Context, id uint64, actor Actor) error {
	existing, err := s.customFieldRepository.FindCustomField(ctx, id)
	if err != nil {
		return err
	}

	s.log(ctx, entities.ChangeActionDelete, id,
		customFieldSnapshot(existing), map[string]interface{}{}, actor)

	if err := s.customFieldRepository.DeleteCustomField(ctx, id); err != nil {
		s.logger.Error("Ошибка при удалении пользовательского поля", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *CustomFieldService) log(ctx context.Context, action string, recordID uint64, oldValues, newValues map[string]interface{}, actor Actor) {
	writeChangeLogEntry(ctx, s.changeLogRepository, s.logger, "custom_fields", action, recordID, oldValues, newValues, actor)
}

func customFieldSnapshot(cf *entities.CustomField) map[string]interface{} {
	snapshot := map[string]interface{}{
		"id":            cf.ID,
		"table_name":    cf.TableName,
		"field_name":    cf.FieldName,
		"field_type":    cf.FieldType,
		"is_required":   cf.IsRequired,
		"display_order": cf.DisplayOrder,
	}
	if cf.FieldOptions.Valid {
		snapshot["field_options"] = json.RawMessage(cf.FieldOptions.JSON)
	}
	return snapshot
}
