package dto

// EquipmentFilterDTO - необязательные измерения фильтра списка оборудования.
// Пустое значение измерения не ограничивает выборку.
type EquipmentFilterDTO struct {
	EquipmentType  string `json:"equipmentType"`
	Status         string `json:"status"`
	AssignedPerson string `json:"assignedPerson"`
	Location       string `json:"location"`
	Search         string `json:"search"`
}

func (f EquipmentFilterDTO) IsEmpty() bool {
	return f.EquipmentType == "" && f.Status == "" && f.AssignedPerson == "" &&
		f.Location == "" && f.Search == ""
}

type CreateEquipmentDTO struct {
	Name                       string                 `json:"name" validate:"required"`
	Description                string                 `json:"description"`
	SerialNumber               string                 `json:"serial_number" validate:"required"`
	Manufacturer               string                 `json:"manufacturer"`
	Model                      string                 `json:"model"`
	EquipmentTypeID            *uint64                `json:"equipment_type_id" validate:"omitempty,gt=0"`
	CalibrationStatusID        *uint64                `json:"calibration_status_id" validate:"omitempty,gt=0"`
	LastCalibrationDate        *string                `json:"last_calibration_date" validate:"omitempty,datetime=2006-01-02"`
	NextCalibrationDate        *string                `json:"next_calibration_date" validate:"omitempty,datetime=2006-01-02"`
	AssignedPerson             string                 `json:"assigned_person"`
	Location                   string                 `json:"location"`
	CalibrationFrequencyMonths int                    `json:"calibration_frequency_months" validate:"omitempty,gte=0"`
	CustomFields               map[string]interface{} `json:"custom_fields"`
}

type UpdateEquipmentDTO struct {
	Name                       *string                `json:"name,omitempty"`
	Description                *string                `json:"description,omitempty"`
	SerialNumber               *string                `json:"serial_number,omitempty"`
	Manufacturer               *string                `json:"manufacturer,omitempty"`
	Model                      *string                `json:"model,omitempty"`
	EquipmentTypeID            *uint64                `json:"equipment_type_id,omitempty" validate:"omitempty,gt=0"`
	CalibrationStatusID        *uint64                `json:"calibration_status_id,omitempty" validate:"omitempty,gt=0"`
	LastCalibrationDate        *string                `json:"last_calibration_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	NextCalibrationDate        *string                `json:"next_calibration_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AssignedPerson             *string                `json:"assigned_person,omitempty"`
	Location                   *string                `json:"location,omitempty"`
	CalibrationFrequencyMonths *int                   `json:"calibration_frequency_months,omitempty" validate:"omitempty,gte=0"`
	CustomFields               map[string]interface{} `json:"custom_fields,omitempty"`
}

// EquipmentDTO - позиция оборудования, обогащённая данными типа и статуса.
type EquipmentDTO struct {
	ID                         uint64                 `json:"id"`
	Name                       string                 `json:"name"`
	Description                string                 `json:"description"`
	SerialNumber               string                 `json:"serial_number"`
	Manufacturer               string                 `json:"manufacturer"`
	Model                      string                 `json:"model"`
	EquipmentTypeID            *uint64                `json:"equipment_type_id"`
	CalibrationStatusID        *uint64                `json:"calibration_status_id"`
	LastCalibrationDate        string                 `json:"last_calibration_date,omitempty"`
	NextCalibrationDate        string                 `json:"next_calibration_date,omitempty"`
	AssignedPerson             string                 `json:"assigned_person"`
	Location                   string                 `json:"location"`
	CalibrationFrequencyMonths int                    `json:"calibration_frequency_months"`
	CustomFields               map[string]interface{} `json:"custom_fields"`

	EquipmentTypeName     string `json:"equipment_type_name,omitempty"`
	CalibrationStatusName string `json:"calibration_status_name,omitempty"`
	StatusColor           string `json:"status_color,omitempty"`
	IsOverdue             bool   `json:"is_overdue"`
	IsInProgress          bool   `json:"is_in_progress"`
	IsCompleted           bool   `json:"is_completed"`

	// StatusBucket - корзина централизованного классификатора.
	StatusBucket string `json:"status_bucket,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// EquipmentListDTO - ответ GET /equipment: список плюс справочник типов.
type EquipmentListDTO struct {
	Equipment      []EquipmentDTO     `json:"equipment"`
	EquipmentTypes []EquipmentTypeDTO `json:"equipmentTypes"`
}
