package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"calibration-system/internal/dto"
	"calibration-system/internal/services"
	apperrors "calibration-system/pkg/errors"
	"calibration-system/pkg/middleware"
	"calibration-system/pkg/service"
	"calibration-system/pkg/utils"
)

type AuthController struct {
	authService    *services.AuthService
	sessionService service.SessionService
	cookieName     string
	logger         *zap.Logger
}

func NewAuthController(
	authService *services.AuthService,
	sessionService service.SessionService,
	cookieName string,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService:    authService,
		sessionService: sessionService,
		cookieName:     cookieName,
		logger:         logger,
	}
}

func (c *AuthController) Login(ctx echo.Context) error {
	var payload dto.LoginDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Неверный формат данных в теле запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	token, user, err := c.authService.Login(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.SetCookie(&http.Cookie{
		Name:     c.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.sessionService.GetTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return utils.SuccessResponse(ctx, dto.LoginResponseDTO{Success: true, User: *user},
		"Вход выполнен успешно", http.StatusOK)
}

func (c *AuthController) Logout(ctx echo.Context) error {
	ctx.SetCookie(&http.Cookie{
		Name:     c.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return utils.SuccessResponse(ctx, nil, "Выход выполнен успешно", http.StatusOK)
}

// Me возвращает пользователя текущей сессии.
func (c *AuthController) Me(ctx echo.Context) error {
	claims, ok := middleware.SessionFromContext(ctx.Request().Context())
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}
	return utils.SuccessResponse(ctx,
		dto.SessionUserDTO{Email: claims.Email, Name: claims.Name},
		"Сессия активна", http.StatusOK)
}
