package entities

import "time"

type EmailSetting struct {
	ID           uint64    `json:"id"`
	SettingName  string    `json:"setting_name"`
	SettingValue string    `json:"setting_value"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
