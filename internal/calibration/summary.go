package calibration

import "time"

// Summary - счётчики для карточек панели. Производное представление:
// пересчитывается на каждый запрос, нигде не хранится.
type Summary struct {
	Total   int            `json:"total"`
	Overdue int            `json:"overdue"`
	DueSoon int            `json:"due_soon"`
	ByType  map[string]int `json:"by_type"`
}

// Summarize считает счётчики карточек. Просрочка здесь определяется
// флагом статуса, "скоро поверка" - датой в пределах 30 дней, исключая
// просроченные (формула карточек исходной панели: без нижней границы даты).
func Summarize(items []Item, typeNames []string, today time.Time) Summary {
	summary := Summary{
		Total:  len(items),
		ByType: make(map[string]int, len(typeNames)),
	}
	for _, name := range typeNames {
		summary.ByType[name] = 0
	}

	horizon := today.AddDate(0, 0, DueSoonWindowDays)
	for _, item := range items {
		if item.Flags.IsOverdue {
			summary.Overdue++
		} else if !item.DueDate.IsZero() && !item.DueDate.After(horizon) {
			summary.DueSoon++
		}
		if _, ok := summary.ByType[item.TypeName]; ok {
			summary.ByType[item.TypeName]++
		}
	}

	return summary
}
