package services

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"calibration-system/internal/calibration"
	"calibration-system/internal/dto"
	"calibration-system/internal/entities"
	"calibration-system/internal/repositories"
)

// Actor - кто выполняет операцию; попадает в журнал изменений.
type Actor struct {
	UserID string
	Name   string
	Email  string
}

const dashboardSummaryCacheKey = "dashboard:summary"

type EquipmentService struct {
	equipmentRepository     repositories.EquipmentRepositoryInterface
	equipmentTypeRepository repositories.EquipmentTypeRepositoryInterface
	changeLogRepository     repositories.ChangeLogRepositoryInterface
	cacheRepository         repositories.CacheRepositoryInterface
	logger                  *zap.Logger
}

func NewEquipmentService(
	equipmentRepository repositories.EquipmentRepositoryInterface,
	equipmentTypeRepository repositories.EquipmentTypeRepositoryInterface,
	changeLogRepository repositories.ChangeLogRepositoryInterface,
	cacheRepository repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) *EquipmentService {
	return &EquipmentService{
		equipmentRepository:     equipmentRepository,
		equipmentTypeRepository: equipmentTypeRepository,
		changeLogRepository:     changeLogRepository,
		cacheRepository:         cacheRepository,
		logger:                  logger,
	}
}

// mapEquipmentDTO переводит строку выборки в DTO и вычисляет корзину статуса.
func mapEquipmentDTO(row repositories.EquipmentWithRelations, today time.Time) dto.EquipmentDTO {
	item := dto.EquipmentDTO{
		ID:                         row.ID,
		Name:                       row.Name,
		Description:                row.Description,
		SerialNumber:               row.SerialNumber,
		Manufacturer:               row.Manufacturer,
		Model:                      row.Model,
		LastCalibrationDate:        repositories.FormatDate(row.LastCalibrationDate),
		NextCalibrationDate:        repositories.FormatDate(row.NextCalibrationDate),
		AssignedPerson:             row.AssignedPerson,
		Location:                   row.Location,
		CalibrationFrequencyMonths: row.CalibrationFrequencyMonths,
		CustomFields:               row.CustomFields,
		EquipmentTypeName:          row.EquipmentTypeName.String,
		CalibrationStatusName:      row.CalibrationStatusName.String,
		StatusColor:                row.StatusColor.String,
		IsOverdue:                  row.IsOverdue,
		IsInProgress:               row.IsInProgress,
		IsCompleted:                row.IsCompleted,
		CreatedAt:                  repositories.FormatTimestamp(row.CreatedAt),
		UpdatedAt:                  repositories.FormatTimestamp(row.UpdatedAt),
	}
	if row.EquipmentTypeID.Valid {
		v := row.EquipmentTypeID.Uint64
		item.EquipmentTypeID = &v
	}
	if row.CalibrationStatusID.Valid {
		v := row.CalibrationStatusID.Uint64
		item.CalibrationStatusID = &v
	}

	classified := equipmentToItem(row)
	item.StatusBucket = string(calibration.Classify(classified.Flags, classified.DueDate, today))
	return item
}

func equipmentToItem(row repositories.EquipmentWithRelations) calibration.Item {
	item := calibration.Item{
		ID:             row.ID,
		Name:           row.Name,
		TypeName:       row.EquipmentTypeName.String,
		StatusName:     row.CalibrationStatusName.String,
		SerialNumber:   row.SerialNumber,
		AssignedPerson: row.AssignedPerson,
		Flags: calibration.StatusFlags{
			IsOverdue:    row.IsOverdue,
			IsInProgress: row.IsInProgress,
			IsCompleted:  row.IsCompleted,
		},
	}
	if row.NextCalibrationDate.Valid {
		item.DueDate = row.NextCalibrationDate.Time
	}
	return item
}

func (s *EquipmentService) GetEquipmentList(ctx context.Context, filter dto.EquipmentFilterDTO) (*dto.EquipmentListDTO, error) {
	rows, err := s.equipmentRepository.GetEquipmentWithFilters(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при выборке оборудования", zap.Error(err))
		return nil, err
	}

	types, err := s.equipmentTypeRepository.GetEquipmentTypes(ctx)
	if err != nil {
		s.logger.Error("Ошибка при выборке типов оборудования", zap.Error(err))
		return nil, err
	}

	today := time.Now()
	list := &dto.EquipmentListDTO{
		Equipment:      make([]dto.EquipmentDTO, 0, len(rows)),
		EquipmentTypes: make([]dto.EquipmentTypeDTO, 0, len(types)),
	}
	for _, row := range rows {
		list.Equipment = append(list.Equipment, mapEquipmentDTO(row, today))
	}
	for _, et := range types {
		list.EquipmentTypes = append(list.EquipmentTypes, mapEquipmentTypeDTO(et))
	}
	return list, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	row, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	item := mapEquipmentDTO(*row, time.Now())
	return &item, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO, actor Actor) (*dto.EquipmentDTO, error) {
	eq := &entities.Equipment{
		Name:                       payload.Name,
		Description:                payload.Description,
		SerialNumber:               payload.SerialNumber,
		Manufacturer:               payload.Manufacturer,
		Model:                      payload.Model,
		AssignedPerson:             payload.AssignedPerson,
		Location:                   payload.Location,
		CalibrationFrequencyMonths: payload.CalibrationFrequencyMonths,
		CustomFields:               payload.CustomFields,
	}
	applyOptionalID(&eq.EquipmentTypeID, payload.EquipmentTypeID)
	applyOptionalID(&eq.CalibrationStatusID, payload.CalibrationStatusID)
	if err := applyOptionalDate(&eq.LastCalibrationDate, payload.LastCalibrationDate); err != nil {
		return nil, err
	}
	if err := applyOptionalDate(&eq.NextCalibrationDate, payload.NextCalibrationDate); err != nil {
		return nil, err
	}

	id, err := s.equipmentRepository.CreateEquipment(ctx, eq)
	if err != nil {
		s.logger.Error("Ошибка при создании оборудования", zap.Error(err))
		return nil, err
	}

	created, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	s.writeChangeLog(ctx, entities.ChangeActionCreate, id,
		map[string]interface{}{}, equipmentSnapshot(&created.Equipment), actor)
	s.invalidateDashboardCache(ctx)

	s.logger.Info("Оборудование создано", zap.Uint64("id", id), zap.String("name", eq.Name))
	item := mapEquipmentDTO(*created, time.Now())
	return &item, nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO, actor Actor) (*dto.EquipmentDTO, error) {
	existing, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	eq := existing.Equipment
	if payload.Name != nil {
		eq.Name = *payload.Name
	}
	if payload.Description != nil {
		eq.Description = *payload.Description
	}
	if payload.SerialNumber != nil {
		eq.SerialNumber = *payload.SerialNumber
	}
	if payload.Manufacturer != nil {
		eq.Manufacturer = *payload.Manufacturer
	}
	if payload.Model != nil {
		eq.Model = *payload.Model
	}
	applyOptionalID(&eq.EquipmentTypeID, payload.EquipmentTypeID)
	applyOptionalID(&eq.CalibrationStatusID, payload.CalibrationStatusID)
	if err := applyOptionalDate(&eq.LastCalibrationDate, payload.LastCalibrationDate); err != nil {
		return nil, err
	}
	if err := applyOptionalDate(&eq.NextCalibrationDate, payload.NextCalibrationDate); err != nil {
		return nil, err
	}
	if payload.AssignedPerson != nil {
		eq.AssignedPerson = *payload.AssignedPerson
	}
	if payload.Location != nil {
		eq.Location = *payload.Location
	}
	if payload.CalibrationFrequencyMonths != nil {
		eq.CalibrationFrequencyMonths = *payload.CalibrationFrequencyMonths
	}
	if payload.CustomFields != nil {
		eq.CustomFields = payload.CustomFields
	}

	if err := s.equipmentRepository.UpdateEquipment(ctx, &eq); err != nil {
		s.logger.Error("Ошибка при обновлении оборудования", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	// Старые значения пишутся пустым объектом, как и при создании.
	s.writeChangeLog(ctx, entities.ChangeActionUpdate, id,
		map[string]interface{}{}, equipmentSnapshot(&updated.Equipment), actor)
	s.invalidateDashboardCache(ctx)

	item := mapEquipmentDTO(*updated, time.Now())
	return &item, nil
}

// DeleteEquipment сначала фиксирует удаление в журнале и только затем
// удаляет строку: после удаления снимок взять уже неоткуда.
func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64, actor Actor) error {
	existing, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return err
	}

	s.writeChangeLog(ctx, entities.ChangeActionDelete, id,
		equipmentSnapshot(&existing.Equipment), map[string]interface{}{}, actor)

	if err := s.equipmentRepository.DeleteEquipment(ctx, id); err != nil {
		s.logger.Error("Ошибка при удалении оборудования", zap.Uint64("id", id), zap.Error(err))
		return err
	}

	s.invalidateDashboardCache(ctx)
	s.logger.Info("Оборудование удалено", zap.Uint64("id", id), zap.String("name", existing.Name))
	return nil
}

func (s *EquipmentService) writeChangeLog(ctx context.Context, action string, recordID uint64, oldValues, newValues map[string]interface{}, actor Actor) {
	writeChangeLogEntry(ctx, s.changeLogRepository, s.logger, "equipment", action, recordID, oldValues, newValues, actor)
}

func (s *EquipmentService) invalidateDashboardCache(ctx context.Context) {
	if s.cacheRepository == nil {
		return
	}
	if err := s.cacheRepository.Del(ctx, dashboardSummaryCacheKey); err != nil {
		s.logger.Warn("Не удалось сбросить кеш дашборда", zap.Error(err))
	}
}

func equipmentSnapshot(eq *entities.Equipment) map[string]interface{} {
	snapshot := map[string]interface{}{
		"id":                           eq.ID,
		"name":                         eq.Name,
		"description":                  eq.Description,
		"serial_number":                eq.SerialNumber,
		"manufacturer":                 eq.Manufacturer,
		"model":                        eq.Model,
		"assigned_person":              eq.AssignedPerson,
		"location":                     eq.Location,
		"calibration_frequency_months": eq.CalibrationFrequencyMonths,
		"custom_fields":                eq.CustomFields,
	}
	if eq.EquipmentTypeID.Valid {
		snapshot["equipment_type_id"] = eq.EquipmentTypeID.Uint64
	}
	if eq.CalibrationStatusID.Valid {
		snapshot["calibration_status_id"] = eq.CalibrationStatusID.Uint64
	}
	if eq.LastCalibrationDate.Valid {
		snapshot["last_calibration_date"] = eq.LastCalibrationDate.Time.Format("2006-01-02")
	}
	if eq.NextCalibrationDate.Valid {
		snapshot["next_calibration_date"] = eq.NextCalibrationDate.Time.Format("2006-01-02")
	}
	return snapshot
}

func applyOptionalID(dst *null.Uint64, src *uint64) {
	if src != nil {
		*dst = null.Uint64From(*src)
	}
}

func applyOptionalDate(dst *null.Time, src *string) error {
	if src == nil {
		return nil
	}
	if *src == "" {
		*dst = null.Time{}
		return nil
	}
	t, err := time.Parse("2006-01-02", *src)
	if err != nil {
		return err
	}
	*dst = null.TimeFrom(t)
	return nil
}
