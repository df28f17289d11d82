package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// ChangeLog - строка журнала изменений. Журнал только дописывается:
// путей обновления или удаления записей не существует.
type ChangeLog struct {
	ID        uint64                 `json:"id"`
	TableName string                 `json:"table_name"`
	RecordID  uint64                 `json:"record_id"`
	Action    string                 `json:"action"`
	OldValues map[string]interface{} `json:"old_values"`
	NewValues map[string]interface{} `json:"new_values"`
	ChangedAt time.Time              `json:"changed_at"`
	UserID    null.String            `json:"user_id"`
	ChangedBy string                 `json:"changed_by"`
}

const (
	ChangeActionCreate = "CREATE"
	ChangeActionUpdate = "UPDATE"
	ChangeActionDelete = "DELETE"
)
