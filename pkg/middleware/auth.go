package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"calibration-system/pkg/contextkeys"
	apperrors "calibration-system/pkg/errors"
	"calibration-system/pkg/service"
	"calibration-system/pkg/utils"
)

type AuthMiddleware struct {
	sessionService service.SessionService
	cookieName     string
	logger         *zap.Logger
}

func NewAuthMiddleware(sessionSvc service.SessionService, cookieName string, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessionService: sessionSvc,
		cookieName:     cookieName,
		logger:         logger,
	}
}

// Auth проверяет сессионную куку. Вся модель доступа плоская:
// валидная сессия открывает все защищённые маршруты.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			m.logger.Warn("AuthMiddleware: сессионная кука отсутствует")
			return utils.ErrorResponse(c, apperrors.ErrSessionNotFound, m.logger)
		}

		claims, err := m.sessionService.ValidateToken(cookie.Value)
		if err != nil {
			m.logger.Warn("AuthMiddleware: невалидная сессия", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		ctx := c.Request().Context()
		newCtx := context.WithValue(ctx, contextkeys.SessionUserKey, claims)
		c.SetRequest(c.Request().WithContext(newCtx))

		return next(c)
	}
}

// SessionFromContext достаёт claims, положенные middleware Auth.
func SessionFromContext(ctx context.Context) (*service.SessionClaims, bool) {
	claims, ok := ctx.Value(contextkeys.SessionUserKey).(*service.SessionClaims)
	return claims, ok
}
