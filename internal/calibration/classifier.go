package calibration

import (
	"math"
	"time"
)

// Bucket - корзина, в которую панель раскладывает оборудование.
type Bucket string

const (
	BucketOverdue    Bucket = "overdue"
	BucketDueSoon    Bucket = "due-soon"
	BucketInProgress Bucket = "in-progress"
	BucketCompleted  Bucket = "completed"
	BucketNone       Bucket = ""
)

// DueSoonWindowDays - горизонт "скоро поверка": дата ровно через 30 дней
// ещё попадает в окно (сравнение включительное).
const DueSoonWindowDays = 30

// StatusFlags - три независимых флага статуса поверки.
type StatusFlags struct {
	IsOverdue    bool
	IsInProgress bool
	IsCompleted  bool
}

// Item - единица оборудования в том виде, в котором её потребляют
// классификатор и агрегации: только то, что нужно для дат и флагов.
type Item struct {
	ID             uint64
	Name           string
	TypeName       string
	StatusName     string
	SerialNumber   string
	AssignedPerson string
	DueDate        time.Time // нулевое значение = дата поверки не назначена
	Flags          StatusFlags
}

// DaysUntilDue считает целое число дней до поверки с округлением вверх,
// как это делала исходная панель: ceil((due - today) / сутки).
func DaysUntilDue(dueDate, today time.Time) int {
	return int(math.Ceil(dueDate.Sub(today).Hours() / 24))
}

// Classify раскладывает позицию ровно в одну корзину.
// Порядок проверок фиксирован: флаг is_overdue сильнее любой даты,
// затем is_in_progress, затем дата (<= 30 дней), затем is_completed.
// Прошедшая дата без флага is_overdue просроченной НЕ считается -
// это поведение исходной панели, расхождение с SQL-фильтром задокументировано
// в DESIGN.md и сознательно не унифицировано.
func Classify(flags StatusFlags, dueDate, today time.Time) Bucket {
	if flags.IsOverdue {
		return BucketOverdue
	}
	if flags.IsInProgress {
		return BucketInProgress
	}
	if !dueDate.IsZero() && DaysUntilDue(dueDate, today) <= DueSoonWindowDays {
		return BucketDueSoon
	}
	if flags.IsCompleted {
		return BucketCompleted
	}
	return BucketNone
}
