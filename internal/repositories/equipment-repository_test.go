package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calibration-system/internal/dto"
)

func TestBuildEquipmentQuery_NoFilters(t *testing.T) {
	query, args, err := buildEquipmentQuery(dto.EquipmentFilterDTO{}).ToSql()
	require.NoError(t, err)

	assert.Empty(t, args)
	assert.Contains(t, query, "LEFT JOIN equipment_types et ON e.equipment_type_id = et.id")
	assert.Contains(t, query, "LEFT JOIN calibration_statuses cs ON e.calibration_status_id = cs.id")
	assert.Contains(t, query, "ORDER BY e.next_calibration_date ASC")
	assert.NotContains(t, query, "WHERE")
}

func TestBuildEquipmentQuery_StatusTokens(t *testing.T) {
	testCases := []struct {
		name     string
		status   string
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "overdue по флагу статуса",
			status:   "overdue",
			wantSQL:  "cs.is_overdue = $1",
			wantArgs: []interface{}{true},
		},
		{
			name:     "in-progress по флагу статуса",
			status:   "in-progress",
			wantSQL:  "cs.is_in_progress = $1",
			wantArgs: []interface{}{true},
		},
		{
			name:     "due-soon по дате и без просрочки",
			status:   "due-soon",
			wantSQL:  "e.next_calibration_date <= CURRENT_DATE + INTERVAL '30 days' AND cs.is_overdue = $1",
			wantArgs: []interface{}{false},
		},
		{
			name:     "прочее значение - точное имя статуса",
			status:   "Поверен",
			wantSQL:  "cs.name = $1",
			wantArgs: []interface{}{"Поверен"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, args, err := buildEquipmentQuery(dto.EquipmentFilterDTO{Status: tc.status}).ToSql()
			require.NoError(t, err)
			assert.Contains(t, query, tc.wantSQL)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestBuildEquipmentQuery_SearchSpansSixFields(t *testing.T) {
	query, args, err := buildEquipmentQuery(dto.EquipmentFilterDTO{Search: "PTW"}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "(e.name ILIKE $1 OR e.description ILIKE $2 OR e.serial_number ILIKE $3 OR e.manufacturer ILIKE $4 OR e.model ILIKE $5 OR e.assigned_person ILIKE $6)")
	require.Len(t, args, 6)
	for _, arg := range args {
		assert.Equal(t, "%PTW%", arg)
	}
}

func TestBuildEquipmentQuery_DimensionsCombineWithAnd(t *testing.T) {
	filter := dto.EquipmentFilterDTO{
		EquipmentType:  "Ионизационная камера",
		Status:         "overdue",
		AssignedPerson: "Иванов",
		Location:       "Каньон 1",
		Search:         "Farmer",
	}

	query, args, err := buildEquipmentQuery(filter).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "et.name = $1")
	assert.Contains(t, query, "cs.is_overdue = $2")
	assert.Contains(t, query, "e.assigned_person ILIKE $3")
	assert.Contains(t, query, "e.location ILIKE $4")
	assert.Len(t, args, 10)
	assert.Equal(t, "%Иванов%", args[2])
	assert.Equal(t, "%Каньон 1%", args[3])
	// Сортировка не зависит от набора фильтров.
	assert.Contains(t, query, "ORDER BY e.next_calibration_date ASC")
}

func TestBuildEquipmentQuery_FilterValuesAreParameterized(t *testing.T) {
	query, args, err := buildEquipmentQuery(dto.EquipmentFilterDTO{Search: "'; DROP TABLE equipment; --"}).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, query, "DROP TABLE")
	assert.Equal(t, "%'; DROP TABLE equipment; --%", args[0])
}
