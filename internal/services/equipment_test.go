package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"calibration-system/internal/dto"
	"calibration-system/internal/entities"
	"calibration-system/internal/repositories"
	apperrors "calibration-system/pkg/errors"
)

// stubEquipmentRepo хранит позиции в памяти и пишет события в общий журнал,
// чтобы проверять порядок операций.
type stubEquipmentRepo struct {
	items  map[uint64]repositories.EquipmentWithRelations
	nextID uint64
	events *[]string
}

func newStubEquipmentRepo(events *[]string) *stubEquipmentRepo {
	return &stubEquipmentRepo{items: make(map[uint64]repositories.EquipmentWithRelations), nextID: 1, events: events}
}

func (r *stubEquipmentRepo) GetEquipmentWithFilters(ctx context.Context, filter dto.EquipmentFilterDTO) ([]repositories.EquipmentWithRelations, error) {
	result := make([]repositories.EquipmentWithRelations, 0, len(r.items))
	for _, item := range r.items {
		result = append(result, item)
	}
	return result, nil
}

func (r *stubEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*repositories.EquipmentWithRelations, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &item, nil
}

func (r *stubEquipmentRepo) CreateEquipment(ctx context.Context, eq *entities.Equipment) (uint64, error) {
	id := r.nextID
	r.nextID++
	eq.ID = id
	r.items[id] = repositories.EquipmentWithRelations{Equipment: *eq}
	*r.events = append(*r.events, fmt.Sprintf("create:%d", id))
	return id, nil
}

func (r *stubEquipmentRepo) UpdateEquipment(ctx context.Context, eq *entities.Equipment) error {
	if _, ok := r.items[eq.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.items[eq.ID] = repositories.EquipmentWithRelations{Equipment: *eq}
	*r.events = append(*r.events, fmt.Sprintf("update:%d", eq.ID))
	return nil
}

func (r *stubEquipmentRepo) DeleteEquipment(ctx context.Context, id uint64) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	*r.events = append(*r.events, fmt.Sprintf("delete:%d", id))
	return nil
}

func (r *stubEquipmentRepo) GetOverdueByDate(ctx context.Context) ([]repositories.EquipmentWithRelations, error) {
	return nil, nil
}

func (r *stubEquipmentRepo) GetInProgress(ctx context.Context) ([]repositories.EquipmentWithRelations, error) {
	result := make([]repositories.EquipmentWithRelations, 0)
	for _, item := range r.items {
		if item.IsInProgress {
			result = append(result, item)
		}
	}
	return result, nil
}

type stubEquipmentTypeRepo struct{}

func (r *stubEquipmentTypeRepo) GetEquipmentTypes(ctx context.Context) ([]entities.EquipmentType, error) {
	return []entities.EquipmentType{{ID: 1, Name: "Ионизационная камера"}}, nil
}
func (r *stubEquipmentTypeRepo) FindEquipmentType(ctx context.Context, id uint64) (*entities.EquipmentType, error) {
	return &entities.EquipmentType{ID: id, Name: "Ионизационная камера"}, nil
}
func (r *stubEquipmentTypeRepo) CreateEquipmentType(ctx context.Context, et *entities.EquipmentType) (uint64, error) {
	return 1, nil
}
func (r *stubEquipmentTypeRepo) UpdateEquipmentType(ctx context.Context, et *entities.EquipmentType) error {
	return nil
}
func (r *stubEquipmentTypeRepo) DeleteEquipmentType(ctx context.Context, id uint64) error {
	return nil
}

type stubChangeLogRepo struct {
	entries []entities.ChangeLog
	events  *[]string
}

func (r *stubChangeLogRepo) CreateChangeLog(ctx context.Context, cl *entities.ChangeLog) error {
	r.entries = append(r.entries, *cl)
	*r.events = append(*r.events, fmt.Sprintf("log:%s:%d", cl.Action, cl.RecordID))
	return nil
}

func (r *stubChangeLogRepo) GetChangeLogs(ctx context.Context, filter dto.ChangeLogFilterDTO) ([]repositories.ChangeLogWithUser, error) {
	return nil, nil
}

type stubCacheRepo struct {
	deleted []string
}

func (r *stubCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}
func (r *stubCacheRepo) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (r *stubCacheRepo) Del(ctx context.Context, key ...string) error {
	r.deleted = append(r.deleted, key...)
	return nil
}

func newEquipmentServiceForTest() (*EquipmentService, *stubEquipmentRepo, *stubChangeLogRepo, *stubCacheRepo, *[]string) {
	events := &[]string{}
	equipmentRepo := newStubEquipmentRepo(events)
	changeLogRepo := &stubChangeLogRepo{events: events}
	cacheRepo := &stubCacheRepo{}
	svc := NewEquipmentService(equipmentRepo, &stubEquipmentTypeRepo{}, changeLogRepo, cacheRepo, zap.NewNop())
	return svc, equipmentRepo, changeLogRepo, cacheRepo, events
}

var testActor = Actor{UserID: "u-1", Name: "Jun Li", Email: "jun.li@jefferson.edu"}

func TestEquipmentService_CreateWritesChangeLog(t *testing.T) {
	svc, _, changeLogRepo, cacheRepo, _ := newEquipmentServiceForTest()

	date := "2026-09-15"
	created, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		Name:                "Камера Фармера",
		SerialNumber:        "SN-1001",
		NextCalibrationDate: &date,
	}, testActor)
	require.NoError(t, err)
	require.NotNil(t, created)

	require.Len(t, changeLogRepo.entries, 1)
	entry := changeLogRepo.entries[0]
	assert.Equal(t, "equipment", entry.TableName)
	assert.Equal(t, entities.ChangeActionCreate, entry.Action)
	assert.Equal(t, created.ID, entry.RecordID)
	assert.Empty(t, entry.OldValues)
	assert.Equal(t, "Камера Фармера", entry.NewValues["name"])
	assert.Equal(t, "2026-09-15", entry.NewValues["next_calibration_date"])
	assert.Equal(t, null.StringFrom("u-1"), entry.UserID)
	assert.Equal(t, "Jun Li", entry.ChangedBy)

	assert.Contains(t, cacheRepo.deleted, dashboardSummaryCacheKey)
}

func TestEquipmentService_UpdateWritesEmptyOldValues(t *testing.T) {
	svc, _, changeLogRepo, _, _ := newEquipmentServiceForTest()

	created, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		Name:         "Электрометр",
		SerialNumber: "SN-2002",
	}, testActor)
	require.NoError(t, err)

	newName := "Электрометр PTW"
	updated, err := svc.UpdateEquipment(context.Background(), created.ID, dto.UpdateEquipmentDTO{Name: &newName}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "Электрометр PTW", updated.Name)
	// Серийный номер не передан - остаётся прежним.
	assert.Equal(t, "SN-2002", updated.SerialNumber)

	require.Len(t, changeLogRepo.entries, 2)
	entry := changeLogRepo.entries[1]
	assert.Equal(t, entities.ChangeActionUpdate, entry.Action)
	assert.Empty(t, entry.OldValues)
	assert.Equal(t, "Электрометр PTW", entry.NewValues["name"])
}

func TestEquipmentService_DeleteLogsBeforeDeleting(t *testing.T) {
	svc, equipmentRepo, changeLogRepo, _, events := newEquipmentServiceForTest()

	created, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		Name:         "Колодезная камера",
		SerialNumber: "SN-3003",
	}, testActor)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEquipment(context.Background(), created.ID, testActor))

	entry := changeLogRepo.entries[len(changeLogRepo.entries)-1]
	assert.Equal(t, entities.ChangeActionDelete, entry.Action)
	assert.Equal(t, "Колодезная камера", entry.OldValues["name"])
	assert.Empty(t, entry.NewValues)

	// Запись в журнал предшествует удалению строки.
	logIdx, deleteIdx := -1, -1
	for i, ev := range *events {
		switch ev {
		case fmt.Sprintf("log:DELETE:%d", created.ID):
			logIdx = i
		case fmt.Sprintf("delete:%d", created.ID):
			deleteIdx = i
		}
	}
	require.NotEqual(t, -1, logIdx)
	require.NotEqual(t, -1, deleteIdx)
	assert.Less(t, logIdx, deleteIdx)

	_, ok := equipmentRepo.items[created.ID]
	assert.False(t, ok)
}

func TestEquipmentService_DeleteMissingReturnsNotFound(t *testing.T) {
	svc, _, changeLogRepo, _, _ := newEquipmentServiceForTest()

	err := svc.DeleteEquipment(context.Background(), 9999, testActor)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, changeLogRepo.entries)
}

func TestEquipmentService_InvalidDateRejected(t *testing.T) {
	svc, _, changeLogRepo, _, _ := newEquipmentServiceForTest()

	bad := "15.09.2026"
	_, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		Name:                "Камера",
		SerialNumber:        "SN-4004",
		NextCalibrationDate: &bad,
	}, testActor)
	assert.Error(t, err)
	assert.Empty(t, changeLogRepo.entries)
}
