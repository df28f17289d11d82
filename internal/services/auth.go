package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"calibration-system/internal/dto"
	"calibration-system/internal/repositories"
	"calibration-system/pkg/config"
	apperrors "calibration-system/pkg/errors"
	"calibration-system/pkg/service"
)

// CredentialProvider проверяет пару email/пароль и отдаёт имя пользователя.
type CredentialProvider interface {
	Verify(email, password string) (name string, err error)
}

// StaticCredentialProvider - список учёток из конфигурации с bcrypt-хешами.
type StaticCredentialProvider struct {
	users []config.DemoUser
}

func NewStaticCredentialProvider(users []config.DemoUser) *StaticCredentialProvider {
	return &StaticCredentialProvider{users: users}
}

func (p *StaticCredentialProvider) Verify(email, password string) (string, error) {
	for _, u := range p.users {
		if u.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
			return "", apperrors.ErrInvalidCredentials
		}
		return u.Name, nil
	}
	return "", apperrors.ErrInvalidCredentials
}

type AuthService struct {
	credentials    CredentialProvider
	sessionService service.SessionService
	userRepository repositories.UserRepositoryInterface
	logger         *zap.Logger
}

func NewAuthService(
	credentials CredentialProvider,
	sessionService service.SessionService,
	userRepository repositories.UserRepositoryInterface,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		credentials:    credentials,
		sessionService: sessionService,
		userRepository: userRepository,
		logger:         logger,
	}
}

// Login проверяет учётку, заводит пользователя в БД при первом входе и
// выпускает подписанный токен сессии.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (string, *dto.SessionUserDTO, error) {
	name, err := s.credentials.Verify(payload.Email, payload.Password)
	if err != nil {
		s.logger.Warn("Неудачная попытка входа", zap.String("email", payload.Email))
		return "", nil, err
	}

	user, err := s.userRepository.EnsureUser(ctx, payload.Email, name)
	if err != nil {
		s.logger.Error("Не удалось завести пользователя при входе",
			zap.String("email", payload.Email), zap.Error(err))
		return "", nil, err
	}

	token, err := s.sessionService.IssueToken(user.ID, payload.Email, name)
	if err != nil {
		s.logger.Error("Ошибка выпуска токена сессии", zap.Error(err))
		return "", nil, err
	}

	s.logger.Info("Пользователь вошёл в систему", zap.String("email", payload.Email))
	return token, &dto.SessionUserDTO{Email: payload.Email, Name: name}, nil
}
