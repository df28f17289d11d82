package dto

// UpdateEmailSettingsDTO - тело PUT /admin/email-settings: отображение
// имя настройки -> значение. Каждый ключ применяется независимым апсертом.
type UpdateEmailSettingsDTO map[string]string

type EmailSettingDTO struct {
	ID           uint64 `json:"id"`
	SettingName  string `json:"setting_name"`
	SettingValue string `json:"setting_value"`
	Description  string `json:"description"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
