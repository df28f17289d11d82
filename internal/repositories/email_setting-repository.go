package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"calibration-system/internal/entities"
)

type EmailSettingRepositoryInterface interface {
	GetEmailSettings(ctx context.Context) ([]entities.EmailSetting, error)
	GetSettingsMap(ctx context.Context) (map[string]string, error)
	UpsertSetting(ctx context.Context, name, value string) error
}

type EmailSettingRepository struct {
	storage *pgxpool.Pool
}

func NewEmailSettingRepository(storage *pgxpool.Pool) EmailSettingRepositoryInterface {
	return &EmailSettingRepository{storage: storage}
}

func (r *EmailSettingRepository) GetEmailSettings(ctx context.Context) ([]entities.EmailSetting, error) {
	query := `
		SELECT id, setting_name, setting_value, COALESCE(description, ''), created_at, updated_at
		FROM email_settings
		ORDER BY setting_name`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("выборка настроек рассылки: %w", err)
	}
	defer rows.Close()

	settings := make([]entities.EmailSetting, 0)
	for rows.Next() {
		var es entities.EmailSetting
		err := rows.Scan(&es.ID, &es.SettingName, &es.SettingValue, &es.Description, &es.CreatedAt, &es.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("сканирование настройки рассылки: %w", err)
		}
		settings = append(settings, es)
	}
	return settings, rows.Err()
}

// GetSettingsMap - настройки как словарь имя -> значение для сервиса уведомлений.
func (r *EmailSettingRepository) GetSettingsMap(ctx context.Context) (map[string]string, error) {
	settings, err := r.GetEmailSettings(ctx)
	if err != nil {
		return nil, err
	}

	m := make(map[string]string, len(settings))
	for _, s := range settings {
		m[s.SettingName] = s.SettingValue
	}
	return m, nil
}

func (r *EmailSettingRepository) UpsertSetting(ctx context.Context, name, value string) error {
	_, err := r.storage.Exec(ctx, `
		INSERT INTO email_settings (setting_name, setting_value)
		VALUES ($1, $2)
		ON CONFLICT (setting_name)
		DO UPDATE SET setting_value = EXCLUDED.setting_value, updated_at = NOW()`,
		name, value,
	)
	if err != nil {
		return fmt.Errorf("сохранение настройки рассылки %q: %w", name, err)
	}
	return nil
}
