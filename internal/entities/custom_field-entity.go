package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CustomField struct {
	ID           uint64    `json:"id"`
	TableName    string    `json:"table_name"`
	FieldName    string    `json:"field_name"`
	FieldType    string    `json:"field_type"`
	IsRequired   bool      `json:"is_required"`
	FieldOptions null.JSON `json:"field_options"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
