package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"calibration-system/internal/dto"
	"calibration-system/internal/services"
	apperrors "calibration-system/pkg/errors"
	"calibration-system/pkg/utils"
)

type EmailSettingsController struct {
	emailSettingsService *services.EmailSettingsService
	logger               *zap.Logger
}

func NewEmailSettingsController(emailSettingsService *services.EmailSettingsService, logger *zap.Logger) *EmailSettingsController {
	return &EmailSettingsController{
		emailSettingsService: emailSettingsService,
		logger:               logger,
	}
}

func (c *EmailSettingsController) GetEmailSettings(ctx echo.Context) error {
	res, err := c.emailSettingsService.GetEmailSettings(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Настройки рассылки успешно получены", http.StatusOK)
}

func (c *EmailSettingsController) UpdateEmailSettings(ctx echo.Context) error {
	var payload dto.UpdateEmailSettingsDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Неверный формат данных в теле запроса", err), c.logger)
	}
	if len(payload) == 0 {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Тело запроса не содержит настроек", nil), c.logger)
	}

	res, err := c.emailSettingsService.UpdateEmailSettings(ctx.Request().Context(), payload, actorFromEcho(ctx))
	if err != nil {
		c.logger.Error("UpdateEmailSettings: ошибка при сохранении настроек", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Настройки рассылки успешно сохранены", http.StatusOK)
}
