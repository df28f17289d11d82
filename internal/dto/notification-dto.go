package dto

// WeeklyReportResultDTO - итог запуска еженедельного отчёта.
type WeeklyReportResultDTO struct {
	Sent            bool     `json:"sent"`
	SkippedReason   string   `json:"skipped_reason,omitempty"`
	Recipients      []string `json:"recipients,omitempty"`
	TotalCount      int      `json:"total_count"`
	OverdueCount    int      `json:"overdue_count"`
	InProgressCount int      `json:"in_progress_count"`
	UpcomingCount   int      `json:"upcoming_count"`
}

// ReminderResultDTO - итог запуска напоминаний о поверке.
type ReminderResultDTO struct {
	Checked int `json:"checked"`
	Sent    int `json:"sent"`
	Errors  int `json:"errors"`
}
