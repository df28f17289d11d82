package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"calibration-system/internal/services"
	"calibration-system/pkg/utils"
)

type NotificationController struct {
	notificationService *services.NotificationService
	logger              *zap.Logger
}

func NewNotificationController(notificationService *services.NotificationService, logger *zap.Logger) *NotificationController {
	return &NotificationController{notificationService: notificationService, logger: logger}
}

func (c *NotificationController) SendWeeklyReport(ctx echo.Context) error {
	res, err := c.notificationService.SendWeeklyReport(ctx.Request().Context())
	if err != nil {
		c.logger.Error("SendWeeklyReport: ошибка при отправке отчёта", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	message := "Еженедельный отчёт отправлен"
	if !res.Sent {
		message = "Еженедельный отчёт пропущен"
	}
	return utils.SuccessResponse(ctx, res, message, http.StatusOK)
}

func (c *NotificationController) SendReminders(ctx echo.Context) error {
	res, err := c.notificationService.SendReminders(ctx.Request().Context())
	if err != nil {
		c.logger.Error("SendReminders: ошибка при отправке напоминаний", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Напоминания обработаны", http.StatusOK)
}
