package dto

// TimelineMonthDTO - одна колонка шестимесячного таймлайна.
type TimelineMonthDTO struct {
	Year           int            `json:"year"`
	Month          int            `json:"month"`
	IsCurrentMonth bool           `json:"is_current_month"`
	Equipment      []EquipmentDTO `json:"equipment"`
}

type TimelineDTO struct {
	Months []TimelineMonthDTO `json:"months"`
}

type SummaryDTO struct {
	Total   int            `json:"total"`
	Overdue int            `json:"overdue"`
	DueSoon int            `json:"due_soon"`
	ByType  map[string]int `json:"by_type"`
}
