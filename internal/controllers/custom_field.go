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

type CustomFieldController struct {
	customFieldService *services.CustomFieldService
	logger             *zap.Logger
}

func NewCustomFieldController(customFieldService *services.CustomFieldService, logger *zap.Logger) *CustomFieldController {
	return &CustomFieldController{
		customFieldService: customFieldService,
		logger:             logger,
	}
}

func (c *CustomFieldController) GetCustomFields(ctx echo.Context) error {
	res, err := c.customFieldService.GetCustomFields(ctx.Request().Context(), ctx.QueryParam("table"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Пользовательские поля успешно получены", http.StatusOK)
}

func (c *CustomFieldController) CreateCustomField(ctx echo.Context) error {
	var payload dto.CreateCustomFieldDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Неверный формат данных в теле запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.customFieldService.CreateCustomField(ctx.Request().Context(), payload, actorFromEcho(ctx))
	if err != nil {
		c.logger.Error("CreateCustomField: ошибка при создании поля", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Пользовательское поле успешно создано", http.StatusCreated)
}

func (c *CustomFieldController) UpdateCustomField(ctx echo.Context) error {
	var payload dto.UpdateCustomFieldDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Неверный формат данных в теле запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.customFieldService.UpdateCustomField(ctx.Request().Context(), payload, actorFromEcho(ctx))
	if err != nil {
		c.logger.Error("UpdateCustomField: ошибка при обновлении поля", zap.Uint64("id", payload.ID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Пользовательское поле успешно обновлено", http.StatusOK)
}

func (c *CustomFieldController) DeleteCustomField(ctx echo.Context) error {
	var payload dto.DeleteByIDDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Неверный формат данных в теле запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.customFieldService.DeleteCustomField(ctx.Request().Context(), payload.ID, actorFromEcho(ctx)); err != nil {
		c.logger.Error("DeleteCustomField: ошибка при удалении поля", zap.Uint64("id", payload.ID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Пользовательское поле успешно удалено", http.StatusOK)
}
