package calibration

import (
	"sort"
	"time"
)

// MonthKey - ключ группировки по (год, месяц) даты следующей поверки.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthBucket - одна колонка таймлайна. Месяцы без позиций тоже
// присутствуют в окне, с пустым списком.
type MonthBucket struct {
	Year           int
	Month          time.Month
	IsCurrentMonth bool
	Items          []Item
}

// GroupByMonth раскладывает позиции по месяцу следующей поверки.
// Позиции без даты в группировку не попадают.
func GroupByMonth(items []Item) map[MonthKey][]Item {
	grouped := make(map[MonthKey][]Item)
	for _, item := range items {
		if item.DueDate.IsZero() {
			continue
		}
		key := MonthKey{Year: item.DueDate.Year(), Month: item.DueDate.Month()}
		grouped[key] = append(grouped[key], item)
	}
	return grouped
}

// TimelineWindow строит окно из шести месяцев, начиная за два месяца
// до выбранного. Внутри каждой колонки позиции отсортированы по дате поверки.
// Входной срез не изменяется.
func TimelineWindow(items []Item, year int, month time.Month, today time.Time) []MonthBucket {
	grouped := GroupByMonth(items)

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -2, 0)
	buckets := make([]MonthBucket, 0, 6)

	for i := 0; i < 6; i++ {
		monthDate := start.AddDate(0, i, 0)
		key := MonthKey{Year: monthDate.Year(), Month: monthDate.Month()}

		monthItems := make([]Item, len(grouped[key]))
		copy(monthItems, grouped[key])
		sort.Slice(monthItems, func(a, b int) bool {
			return monthItems[a].DueDate.Before(monthItems[b].DueDate)
		})

		buckets = append(buckets, MonthBucket{
			Year:           key.Year,
			Month:          key.Month,
			IsCurrentMonth: key.Year == today.Year() && key.Month == today.Month(),
			Items:          monthItems,
		})
	}

	return buckets
}
