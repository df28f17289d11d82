package calibration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemDue(id uint64, year int, month time.Month, day int) Item {
	return Item{
		ID:      id,
		Name:    "Item",
		DueDate: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestGroupByMonth(t *testing.T) {
	items := []Item{
		itemDue(1, 2025, time.March, 10),
		itemDue(2, 2025, time.March, 3),
		itemDue(3, 2025, time.July, 1),
		{ID: 4, Name: "без даты"},
	}

	grouped := GroupByMonth(items)

	assert.Len(t, grouped, 2)
	assert.Len(t, grouped[MonthKey{2025, time.March}], 2)
	assert.Len(t, grouped[MonthKey{2025, time.July}], 1)
}

func TestTimelineWindow_SixBucketsWithEmpties(t *testing.T) {
	// Данные разбросаны по восьми месяцам; окно вокруг июня 2025
	// (апрель..сентябрь) должно отдать ровно шесть колонок,
	// включая пустые, и ничего за пределами окна.
	items := []Item{
		itemDue(1, 2025, time.February, 5),  // до окна
		itemDue(2, 2025, time.March, 20),    // до окна
		itemDue(3, 2025, time.April, 1),
		itemDue(4, 2025, time.May, 15),
		itemDue(5, 2025, time.June, 30),
		itemDue(6, 2025, time.June, 2),
		itemDue(7, 2025, time.September, 9),
		itemDue(8, 2025, time.October, 25),  // после окна
		itemDue(9, 2025, time.November, 11), // после окна
		itemDue(10, 2024, time.December, 31),
	}
	now := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	buckets := TimelineWindow(items, 2025, time.June, now)

	require.Len(t, buckets, 6)
	assert.Equal(t, time.April, buckets[0].Month)
	assert.Equal(t, time.September, buckets[5].Month)

	var total int
	for _, b := range buckets {
		total += len(b.Items)
	}
	assert.Equal(t, 5, total, "позиции вне окна не должны попадать в колонки")

	// Июль и август пустые, но присутствуют.
	assert.Equal(t, time.July, buckets[3].Month)
	assert.Empty(t, buckets[3].Items)
	assert.Equal(t, time.August, buckets[4].Month)
	assert.Empty(t, buckets[4].Items)
}

func TestTimelineWindow_SortsWithinBucket(t *testing.T) {
	items := []Item{
		itemDue(1, 2025, time.June, 25),
		itemDue(2, 2025, time.June, 3),
		itemDue(3, 2025, time.June, 14),
	}
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	buckets := TimelineWindow(items, 2025, time.June, now)

	june := buckets[2]
	require.Equal(t, time.June, june.Month)
	require.Len(t, june.Items, 3)
	assert.Equal(t, uint64(2), june.Items[0].ID)
	assert.Equal(t, uint64(3), june.Items[1].ID)
	assert.Equal(t, uint64(1), june.Items[2].ID)
	assert.True(t, june.IsCurrentMonth)
}

func TestTimelineWindow_CrossesYearBoundary(t *testing.T) {
	items := []Item{
		itemDue(1, 2024, time.December, 20),
		itemDue(2, 2025, time.January, 8),
	}
	now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	buckets := TimelineWindow(items, 2025, time.February, now)

	require.Len(t, buckets, 6)
	assert.Equal(t, 2024, buckets[0].Year)
	assert.Equal(t, time.December, buckets[0].Month)
	assert.Len(t, buckets[0].Items, 1)
	assert.Len(t, buckets[1].Items, 1)
}

func TestTimelineWindow_DoesNotMutateInput(t *testing.T) {
	items := []Item{
		itemDue(1, 2025, time.June, 25),
		itemDue(2, 2025, time.June, 3),
	}
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	TimelineWindow(items, 2025, time.June, now)

	assert.Equal(t, uint64(1), items[0].ID, "исходный срез должен остаться в прежнем порядке")
	assert.Equal(t, uint64(2), items[1].ID)
}
