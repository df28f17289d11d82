package calibration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

func days(n int) time.Time {
	return today.AddDate(0, 0, n)
}

func TestClassify_FlagWinsOverDate(t *testing.T) {
	// Просроченный статус с датой через год всё равно просрочен.
	bucket := Classify(StatusFlags{IsOverdue: true}, days(365), today)
	assert.Equal(t, BucketOverdue, bucket)
}

func TestClassify_InProgressBeforeDateCheck(t *testing.T) {
	bucket := Classify(StatusFlags{IsInProgress: true}, days(5), today)
	assert.Equal(t, BucketInProgress, bucket)
}

func TestClassify_DueSoonBoundaryInclusive(t *testing.T) {
	// Ровно 30 дней - ещё "скоро поверка".
	assert.Equal(t, BucketDueSoon, Classify(StatusFlags{}, days(30), today))
	// 31 день без флагов - никакой корзины.
	assert.Equal(t, BucketNone, Classify(StatusFlags{}, days(31), today))
}

func TestClassify_CompletedBeyondWindow(t *testing.T) {
	bucket := Classify(StatusFlags{IsCompleted: true}, days(31), today)
	assert.Equal(t, BucketCompleted, bucket)
}

func TestClassify_PastDateWithoutFlagIsNotOverdue(t *testing.T) {
	// Дата в прошлом без is_overdue даёт "скоро поверка", не просрочку:
	// панель опирается на флаг, а не на дату.
	bucket := Classify(StatusFlags{}, days(-10), today)
	assert.Equal(t, BucketDueSoon, bucket)
}

func TestClassify_NoDateNoFlags(t *testing.T) {
	assert.Equal(t, BucketNone, Classify(StatusFlags{}, time.Time{}, today))
}

func TestClassify_Pure(t *testing.T) {
	flags := StatusFlags{IsCompleted: true}
	due := days(45)
	first := Classify(flags, due, today)
	second := Classify(flags, due, today)
	assert.Equal(t, first, second)
}

func TestDaysUntilDue_CeilsPartialDays(t *testing.T) {
	// 12 часов до срока округляются до целого дня вверх.
	due := today.Add(12 * time.Hour)
	assert.Equal(t, 1, DaysUntilDue(due, today))

	assert.Equal(t, 7, DaysUntilDue(days(7), today))
	assert.Equal(t, -3, DaysUntilDue(days(-3), today))
	assert.Equal(t, 0, DaysUntilDue(today, today))
}
