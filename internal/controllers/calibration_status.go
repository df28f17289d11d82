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

type CalibrationStatusController struct {
	calibrationStatusService *services.CalibrationStatusService
	logger                   *zap.Logger
}

func NewCalibrationStatusController(calibrationStatusService *services.CalibrationStatusService, logger *zap.Logger) *CalibrationStatusController {
	return &CalibrationStatusController{
		calibrationStatusService: calibrationStatusService,
		logger:                   logger,
	}
}

func (c *CalibrationStatusController) GetCalibrationStatuses(ctx echo.Context) error {
	res, err := c.calibrationStatusService.GetCalibrationStatuses(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статусы поверки успешно получены", http.StatusOK)
}

func (c *CalibrationStatusController) CreateCalibrationStatus(ctx echo.Context) error {
	var payload dto.CreateCalibrationStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Неверный формат данных в теле запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.calibrationStatusService.CreateCalibrationStatus(ctx.Request().Context(), payload, actorFromEcho(ctx))
	if err != nil {
		c.logger.Error("CreateCalibrationStatus: ошибка при создании статуса", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статус поверки успешно создан", http.StatusCreated)
}

func (c *CalibrationStatusController) UpdateCalibrationStatus(ctx echo.Context) error {
	var payload dto.UpdateCalibrationStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Неверный формат данных в теле запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.calibrationStatusService.UpdateCalibrationStatus(ctx.Request().Context(), payload, actorFromEcho(ctx))
	if err != nil {
		c.logger.Error("UpdateCalibrationStatus: ошибка при обновлении статуса", zap.Uint64("id", payload.ID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статус поверки успешно обновлён", http.StatusOK)
}

func (c *CalibrationStatusController) DeleteCalibrationStatus(ctx echo.Context) error {
	var payload dto.DeleteByIDDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Неверный формат данных в теле запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.calibrationStatusService.DeleteCalibrationStatus(ctx.Request().Context(), payload.ID, actorFromEcho(ctx)); err != nil {
		c.logger.Error("DeleteCalibrationStatus: ошибка при удалении статуса", zap.Uint64("id", payload.ID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Статус поверки успешно удалён", http.StatusOK)
}
