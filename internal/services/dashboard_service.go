package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"calibration-system/internal/calibration"
	"calibration-system/internal/dto"
	"calibration-system/internal/repositories"
)

const dashboardSummaryCacheTTL = 5 * time.Minute

type DashboardService struct {
	equipmentRepository     repositories.EquipmentRepositoryInterface
	equipmentTypeRepository repositories.EquipmentTypeRepositoryInterface
	cacheRepository         repositories.CacheRepositoryInterface
	logger                  *zap.Logger
}

func NewDashboardService(
	equipmentRepository repositories.EquipmentRepositoryInterface,
	equipmentTypeRepository repositories.EquipmentTypeRepositoryInterface,
	cacheRepository repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		equipmentRepository:     equipmentRepository,
		equipmentTypeRepository: equipmentTypeRepository,
		cacheRepository:         cacheRepository,
		logger:                  logger,
	}
}

// GetSummary считает сводку по всему парку. Результат кешируется, кеш
// сбрасывается сервисом оборудования при любой мутации.
func (s *DashboardService) GetSummary(ctx context.Context) (*dto.SummaryDTO, error) {
	if s.cacheRepository != nil {
		if cached, err := s.cacheRepository.Get(ctx, dashboardSummaryCacheKey); err == nil && cached != "" {
			var summary dto.SummaryDTO
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	rows, err := s.equipmentRepository.GetEquipmentWithFilters(ctx, dto.EquipmentFilterDTO{})
	if err != nil {
		s.logger.Error("Ошибка при выборке оборудования для сводки", zap.Error(err))
		return nil, err
	}

	types, err := s.equipmentTypeRepository.GetEquipmentTypes(ctx)
	if err != nil {
		s.logger.Error("Ошибка при выборке типов для сводки", zap.Error(err))
		return nil, err
	}

	typeNames := make([]string, 0, len(types))
	for _, et := range types {
		typeNames = append(typeNames, et.Name)
	}

	items := make([]calibration.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, equipmentToItem(row))
	}

	summary := calibration.Summarize(items, typeNames, time.Now())
	result := &dto.SummaryDTO{
		Total:   summary.Total,
		Overdue: summary.Overdue,
		DueSoon: summary.DueSoon,
		ByType:  summary.ByType,
	}

	if s.cacheRepository != nil {
		if raw, err := json.Marshal(result); err == nil {
			if err := s.cacheRepository.Set(ctx, dashboardSummaryCacheKey, string(raw), dashboardSummaryCacheTTL); err != nil {
				s.logger.Warn("Не удалось записать сводку в кеш", zap.Error(err))
			}
		}
	}
	return result, nil
}

// GetTimeline строит шестимесячное окно вокруг выбранного месяца.
func (s *DashboardService) GetTimeline(ctx context.Context, year int, month time.Month) (*dto.TimelineDTO, error) {
	rows, err := s.equipmentRepository.GetEquipmentWithFilters(ctx, dto.EquipmentFilterDTO{})
	if err != nil {
		s.logger.Error("Ошибка при выборке оборудования для таймлайна", zap.Error(err))
		return nil, err
	}

	today := time.Now()
	rowsByID := make(map[uint64]repositories.EquipmentWithRelations, len(rows))
	items := make([]calibration.Item, 0, len(rows))
	for _, row := range rows {
		rowsByID[row.ID] = row
		items = append(items, equipmentToItem(row))
	}

	buckets := calibration.TimelineWindow(items, year, month, today)

	timeline := &dto.TimelineDTO{Months: make([]dto.TimelineMonthDTO, 0, len(buckets))}
	for _, bucket := range buckets {
		monthDTO := dto.TimelineMonthDTO{
			Year:           bucket.Year,
			Month:          int(bucket.Month),
			IsCurrentMonth: bucket.IsCurrentMonth,
			Equipment:      make([]dto.EquipmentDTO, 0, len(bucket.Items)),
		}
		for _, item := range bucket.Items {
			if row, ok := rowsByID[item.ID]; ok {
				monthDTO.Equipment = append(monthDTO.Equipment, mapEquipmentDTO(row, today))
			}
		}
		timeline.Months = append(timeline.Months, monthDTO)
	}
	return timeline, nil
}
