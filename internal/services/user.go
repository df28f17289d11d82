package services

import (
	"context"

	"go.uber.org/zap"

	"calibration-system/internal/dto"
	"calibration-system/internal/entities"
	"calibration-system/internal/repositories"
)

type UserService struct {
	userRepository      repositories.UserRepositoryInterface
	changeLogRepository repositories.ChangeLogRepositoryInterface
	logger              *zap.Logger
}

func NewUserService(
	userRepository repositories.UserRepositoryInterface,
	changeLogRepository repositories.ChangeLogRepositoryInterface,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepository:      userRepository,
		changeLogRepository: changeLogRepository,
		logger:              logger,
	}
}

func mapUserDTO(u entities.User) dto.UserDTO {
	return dto.UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: repositories.FormatTimestamp(u.CreatedAt),
		UpdatedAt: repositories.FormatTimestamp(u.UpdatedAt),
	}
}

func (s *UserService) GetUsers(ctx context.Context) ([]dto.UserDTO, error) {
	users, err := s.userRepository.GetUsers(ctx)
	if err != nil {
		s.logger.Error("Ошибка при выборке пользователей", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, mapUserDTO(u))
	}
	return result, nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO, actor Actor) (*dto.UserDTO, error) {
	u := &entities.User{Email: payload.Email, Name: payload.Name}

	if _, err := s.userRepository.CreateUser(ctx, u); err != nil {
		s.logger.Error("Ошибка при создании пользователя", zap.String("email", payload.Email), zap.Error(err))
		return nil, err
	}

	created, err := s.userRepository.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		return nil, err
	}

	s.log(ctx, entities.ChangeActionCreate, map[string]interface{}{}, userSnapshot(created), actor)

	result := mapUserDTO(*created)
	return &result, nil
}

func (s *UserService) UpdateUser(ctx context.Context, payload dto.UpdateUserDTO, actor Actor) (*dto.UserDTO, error) {
	u := &entities.User{ID: payload.ID, Email: payload.Email, Name: payload.Name}

	if err := s.userRepository.UpdateUser(ctx, u); err != nil {
		s.logger.Error("Ошибка при обновлении пользователя", zap.String("id", payload.ID), zap.Error(err))
		return nil, err
	}

	updated, err := s.userRepository.FindUserByID(ctx, payload.ID)
	if err != nil {
		return nil, err
	}

	s.log(ctx, entities.ChangeActionUpdate, map[string]interface{}{}, userSnapshot(updated), actor)

	result := mapUserDTO(*updated)
	return &result, nil
}

// DeleteUser фиксирует удаление в журнале до удаления строки, как и
// остальные административные сервисы.
func (s *UserService) DeleteUser(ctx context.Context, id string, actor Actor) error {
	existing, err := s.userRepository.FindUserByID(ctx, id)
	if err != nil {
		return err
	}

	s.log(ctx, entities.ChangeActionDelete, userSnapshot(existing), map[string]interface{}{}, actor)

	if err := s.userRepository.DeleteUser(ctx, id); err != nil {
		s.logger.Error("Ошибка при удалении пользователя", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// log пишет строку журнала для таблицы users. record_id в журнале числовой,
// а идентификаторы пользователей строковые, поэтому record_id остаётся 0,
// сам id лежит в снимке значений.
func (s *UserService) log(ctx context.Context, action string, oldValues, newValues map[string]interface{}, actor Actor) {
	writeChangeLogEntry(ctx, s.changeLogRepository, s.logger, "users", action, 0, oldValues, newValues, actor)
}

func userSnapshot(u *entities.User) map[string]interface{} {
	return map[string]interface{}{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
	}
}
