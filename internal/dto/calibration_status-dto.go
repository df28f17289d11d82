package dto

type CreateCalibrationStatusDTO struct {
	Name         string `json:"name" validate:"required"`
	Color        string `json:"color"`
	IsOverdue    bool   `json:"is_overdue"`
	IsInProgress bool   `json:"is_in_progress"`
	IsCompleted  bool   `json:"is_completed"`
}

type UpdateCalibrationStatusDTO struct {
	ID           uint64 `json:"id" validate:"required,gt=0"`
	Name         string `json:"name" validate:"required"`
	Color        string `json:"color"`
	IsOverdue    bool   `json:"is_overdue"`
	IsInProgress bool   `json:"is_in_progress"`
	IsCompleted  bool   `json:"is_completed"`
}

type CalibrationStatusDTO struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	IsOverdue    bool   `json:"is_overdue"`
	IsInProgress bool   `json:"is_in_progress"`
	IsCompleted  bool   `json:"is_completed"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
