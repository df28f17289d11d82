package calibration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_Counts(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	items := []Item{
		{ID: 1, TypeName: "Ion Chamber", Flags: StatusFlags{IsOverdue: true}, DueDate: now.AddDate(0, 0, 5)},
		{ID: 2, TypeName: "Ion Chamber", DueDate: now.AddDate(0, 0, 30)},  // граница окна
		{ID: 3, TypeName: "Electrometer", DueDate: now.AddDate(0, 0, 31)}, // за окном
		{ID: 4, TypeName: "Electrometer", DueDate: now.AddDate(0, 0, -2)}, // прошлая дата, не overdue
		{ID: 5, TypeName: "Well Chamber", Flags: StatusFlags{IsCompleted: true}, DueDate: now.AddDate(1, 0, 0)},
	}
	types := []string{"Ion Chamber", "Electrometer", "Well Chamber"}

	s := Summarize(items, types, now)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 1, s.Overdue)
	// Позиции 2 и 4: дата <= 30 дней и флаг is_overdue не стоит.
	assert.Equal(t, 2, s.DueSoon)
	assert.Equal(t, 2, s.ByType["Ion Chamber"])
	assert.Equal(t, 2, s.ByType["Electrometer"])
	assert.Equal(t, 1, s.ByType["Well Chamber"])
}

func TestSummarize_OverdueExcludedFromDueSoon(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	items := []Item{
		{ID: 1, TypeName: "Ion Chamber", Flags: StatusFlags{IsOverdue: true}, DueDate: now.AddDate(0, 0, 3)},
	}

	s := Summarize(items, []string{"Ion Chamber"}, now)

	assert.Equal(t, 1, s.Overdue)
	assert.Equal(t, 0, s.DueSoon)
}

func TestSummarize_EmptyInput(t *testing.T) {
	now := time.Now()

	s := Summarize(nil, []string{"Ion Chamber"}, now)

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.Overdue)
	assert.Equal(t, 0, s.DueSoon)
	assert.Equal(t, 0, s.ByType["Ion Chamber"])
}

func TestSummarize_Idempotent(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	items := []Item{
		{ID: 1, TypeName: "Ion Chamber", DueDate: now.AddDate(0, 0, 10)},
		{ID: 2, TypeName: "Electrometer", Flags: StatusFlags{IsOverdue: true}},
	}
	types := []string{"Ion Chamber", "Electrometer"}

	first := Summarize(items, types, now)
	second := Summarize(items, types, now)

	assert.Equal(t, first, second)
}
