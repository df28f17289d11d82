package dto

type CreateCustomFieldDTO struct {
	TableName    string                 `json:"table_name" validate:"required,oneof=equipment calibrations"`
	FieldName    string                 `json:"field_name" validate:"required"`
	FieldType    string                 `json:"field_type" validate:"required,oneof=text textarea number date select checkbox email url"`
	IsRequired   bool                   `json:"is_required"`
	FieldOptions map[string]interface{} `json:"field_options"`
	DisplayOrder int                    `json:"display_order" validate:"omitempty,gte=0"`
}

type UpdateCustomFieldDTO struct {
	ID           uint64                 `json:"id" validate:"required,gt=0"`
	FieldName    string                 `json:"field_name" validate:"required"`
	FieldType    string                 `json:"field_type" validate:"required,oneof=text textarea number date select checkbox email url"`
	IsRequired   bool                   `json:"is_required"`
	FieldOptions map[string]interface{} `json:"field_options"`
	DisplayOrder int                    `json:"display_order" validate:"omitempty,gte=0"`
}

type CustomFieldDTO struct {
	ID           uint64                 `json:"id"`
	TableName    string                 `json:"table_name"`
	FieldName    string                 `json:"field_name"`
	FieldType    string                 `json:"field_type"`
	IsRequired   bool                   `json:"is_required"`
	FieldOptions map[string]interface{} `json:"field_options,omitempty"`
	DisplayOrder int                    `json:"display_order"`
	CreatedAt    string                 `json:"created_at"`
	UpdatedAt    string                 `json:"updated_at"`
}
