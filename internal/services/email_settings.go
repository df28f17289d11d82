package services

import (
	"context"

	"go.uber.org/zap"

	"calibration-system/internal/dto"
	"calibration-system/internal/entities"
	"calibration-system/internal/repositories"
)

type EmailSettingsService struct {
	emailSettingRepository repositories.EmailSettingRepositoryInterface
	changeLogRepository    repositories.ChangeLogRepositoryInterface
	logger                 *zap.Logger
}

func NewEmailSettingsService(
	emailSettingRepository repositories.EmailSettingRepositoryInterface,
	changeLogRepository repositories.ChangeLogRepositoryInterface,
	logger *zap.Logger,
) *EmailSettingsService {
	return &EmailSettingsService{
		emailSettingRepository: emailSettingRepository,
		changeLogRepository:    changeLogRepository,
		logger:                 logger,
	}
}

func (s *EmailSettingsService) GetEmailSettings(ctx context.Context) ([]dto.EmailSettingDTO, error) {
	settings, err := s.emailSettingRepository.GetEmailSettings(ctx)
	if err != nil {
		s.logger.Error("Ошибка при выборке настроек рассылки", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EmailSettingDTO, 0, len(settings))
	for _, es := range settings {
		result = append(result, dto.EmailSettingDTO{
			ID:           es.ID,
			SettingName:  es.SettingName,
			SettingValue: es.SettingValue,
			Description:  es.Description,
			CreatedAt:    repositories.FormatTimestamp(es.CreatedAt),
			UpdatedAt:    repositories.FormatTimestamp(es.UpdatedAt),
		})
	}
	return result, nil
}

// UpdateEmailSettings применяет каждую пару имя/значение независимым
// апсертом; ошибки по отдельным ключам не откатывают остальные.
// В журнал пишется отдельная строка на каждый сохранённый ключ.
func (s *EmailSettingsService) UpdateEmailSettings(ctx context.Context, payload dto.UpdateEmailSettingsDTO, actor Actor) ([]dto.EmailSettingDTO, error) {
	for name, value := range payload {
		if err := s.emailSettingRepository.UpsertSetting(ctx, name, value); err != nil {
			s.logger.Error("Не удалось сохранить настройку рассылки",
				zap.String("setting", name), zap.Error(err))
			continue
		}

		writeChangeLogEntry(ctx, s.changeLogRepository, s.logger, "email_settings",
			entities.ChangeActionUpdate, 0, map[string]interface{}{},
			map[string]interface{}{"setting_name": name, "setting_value": value}, actor)
	}

	return s.GetEmailSettings(ctx)
}
