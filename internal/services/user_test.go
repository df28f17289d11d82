package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"calibration-system/internal/dto"
	"calibration-system/internal/entities"
	apperrors "calibration-system/pkg/errors"
)

type stubUserRepo struct {
	users  map[string]entities.User // ключ - id
	events *[]string
}

func newStubUserRepo(events *[]string) *stubUserRepo {
	return &stubUserRepo{users: make(map[string]entities.User), events: events}
}

func (r *stubUserRepo) GetUsers(ctx context.Context) ([]entities.User, error) {
	result := make([]entities.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, u)
	}
	return result, nil
}

func (r *stubUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *stubUserRepo) FindUserByID(ctx context.Context, id string) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *stubUserRepo) CreateUser(ctx context.Context, u *entities.User) (string, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.users[u.ID] = *u
	*r.events = append(*r.events, "user-create:"+u.ID)
	return u.ID, nil
}

func (r *stubUserRepo) UpdateUser(ctx context.Context, u *entities.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.users[u.ID] = *u
	*r.events = append(*r.events, "user-update:"+u.ID)
	return nil
}

func (r *stubUserRepo) DeleteUser(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	*r.events = append(*r.events, "user-delete:"+id)
	return nil
}

func (r *stubUserRepo) EnsureUser(ctx context.Context, email, name string) (*entities.User, error) {
	if u, err := r.FindUserByEmail(ctx, email); err == nil {
		return u, nil
	}
	u := &entities.User{Email: email, Name: name}
	if _, err := r.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func newUserServiceForTest() (*UserService, *stubUserRepo, *stubChangeLogRepo, *[]string) {
	events := &[]string{}
	userRepo := newStubUserRepo(events)
	changeLogRepo := &stubChangeLogRepo{events: events}
	svc := NewUserService(userRepo, changeLogRepo, zap.NewNop())
	return svc, userRepo, changeLogRepo, events
}

func TestUserService_CreateWritesChangeLog(t *testing.T) {
	svc, _, changeLogRepo, _ := newUserServiceForTest()

	created, err := svc.CreateUser(context.Background(), dto.CreateUserDTO{
		Email: "maria.petrova@jefferson.edu",
		Name:  "Мария Петрова",
	}, testActor)
	require.NoError(t, err)
	require.NotNil(t, created)

	require.Len(t, changeLogRepo.entries, 1)
	entry := changeLogRepo.entries[0]
	assert.Equal(t, "users", entry.TableName)
	assert.Equal(t, entities.ChangeActionCreate, entry.Action)
	assert.Empty(t, entry.OldValues)
	assert.Equal(t, "maria.petrova@jefferson.edu", entry.NewValues["email"])
	assert.Equal(t, "Мария Петрова", entry.NewValues["name"])
	assert.Equal(t, created.ID, entry.NewValues["id"])
	assert.Equal(t, "Jun Li", entry.ChangedBy)
}

func TestUserService_UpdateWritesChangeLog(t *testing.T) {
	svc, _, changeLogRepo, _ := newUserServiceForTest()

	created, err := svc.CreateUser(context.Background(), dto.CreateUserDTO{
		Email: "maria.petrova@jefferson.edu",
		Name:  "Мария Петрова",
	}, testActor)
	require.NoError(t, err)

	updated, err := svc.UpdateUser(context.Background(), dto.UpdateUserDTO{
		ID:    created.ID,
		Email: "m.petrova@jefferson.edu",
		Name:  "Мария Петрова",
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "m.petrova@jefferson.edu", updated.Email)

	require.Len(t, changeLogRepo.entries, 2)
	entry := changeLogRepo.entries[1]
	assert.Equal(t, "users", entry.TableName)
	assert.Equal(t, entities.ChangeActionUpdate, entry.Action)
	assert.Empty(t, entry.OldValues)
	assert.Equal(t, "m.petrova@jefferson.edu", entry.NewValues["email"])
}

func TestUserService_DeleteLogsBeforeDeleting(t *testing.T) {
	svc, userRepo, changeLogRepo, events := newUserServiceForTest()

	created, err := svc.CreateUser(context.Background(), dto.CreateUserDTO{
		Email: "maria.petrova@jefferson.edu",
		Name:  "Мария Петрова",
	}, testActor)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), created.ID, testActor))

	entry := changeLogRepo.entries[len(changeLogRepo.entries)-1]
	assert.Equal(t, "users", entry.TableName)
	assert.Equal(t, entities.ChangeActionDelete, entry.Action)
	assert.Equal(t, "maria.petrova@jefferson.edu", entry.OldValues["email"])
	assert.Empty(t, entry.NewValues)

	// Запись в журнал предшествует удалению строки.
	logIdx, deleteIdx := -1, -1
	for i, ev := range *events {
		switch ev {
		case "log:DELETE:0":
			logIdx = i
		case "user-delete:" + created.ID:
			deleteIdx = i
		}
	}
	require.NotEqual(t, -1, logIdx)
	require.NotEqual(t, -1, deleteIdx)
	assert.Less(t, logIdx, deleteIdx)

	_, ok := userRepo.users[created.ID]
	assert.False(t, ok)
}

func TestUserService_DeleteMissingReturnsNotFound(t *testing.T) {
	svc, _, changeLogRepo, _ := newUserServiceForTest()

	err := svc.DeleteUser(context.Background(), "нет-такого", testActor)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, changeLogRepo.entries)
}
