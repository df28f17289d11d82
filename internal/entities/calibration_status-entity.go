package entities

import "time"

// CalibrationStatus - статус поверки. Три флага независимы: статус может
// нести несколько флагов или ни одного, взаимоисключение не гарантируется.
type CalibrationStatus struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	IsOverdue    bool      `json:"is_overdue"`
	IsInProgress bool      `json:"is_in_progress"`
	IsCompleted  bool      `json:"is_completed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
