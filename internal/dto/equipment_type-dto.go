package dto

type CreateEquipmentTypeDTO struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type UpdateEquipmentTypeDTO struct {
	ID          uint64 `json:"id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type DeleteByIDDTO struct {
	ID uint64 `json:"id" validate:"required,gt=0"`
}

type EquipmentTypeDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
