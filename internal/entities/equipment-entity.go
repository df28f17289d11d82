package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type Equipment struct {
	ID                         uint64                 `json:"id"`
	Name                       string                 `json:"name"`
	Description                string                 `json:"description"`
	SerialNumber               string                 `json:"serial_number"`
	Manufacturer               string                 `json:"manufacturer"`
	Model                      string                 `json:"model"`
	EquipmentTypeID            null.Uint64            `json:"equipment_type_id"`
	CalibrationStatusID        null.Uint64            `json:"calibration_status_id"`
	LastCalibrationDate        null.Time              `json:"last_calibration_date"`
	NextCalibrationDate        null.Time              `json:"next_calibration_date"`
	AssignedPerson             string                 `json:"assigned_person"`
	Location                   string                 `json:"location"`
	CalibrationFrequencyMonths int                    `json:"calibration_frequency_months"`
	CustomFields               map[string]interface{} `json:"custom_fields"`
	CreatedAt                  time.Time              `json:"created_at"`
	UpdatedAt                  time.Time              `json:"updated_at"`
}
