package dto

// ChangeLogFilterDTO - параметры выборки журнала. При указании EquipmentID
// limit/offset игнорируются и возвращаются все записи по этой позиции.
type ChangeLogFilterDTO struct {
	EquipmentID *uint64
	Limit       int
	Offset      int
}

type ChangeLogDTO struct {
	ID        uint64                 `json:"id"`
	TableName string                 `json:"table_name"`
	RecordID  uint64                 `json:"record_id"`
	Action    string                 `json:"action"`
	OldValues map[string]interface{} `json:"old_values"`
	NewValues map[string]interface{} `json:"new_values"`
	ChangedAt string                 `json:"changed_at"`
	UserID    string                 `json:"user_id,omitempty"`
	ChangedBy string                 `json:"changed_by"`
	UserName  string                 `json:"user_name,omitempty"`
	UserEmail string                 `json:"user_email,omitempty"`
}
