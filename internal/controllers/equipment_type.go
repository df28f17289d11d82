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

type EquipmentTypeController struct {
	equipmentTypeService *services.EquipmentTypeService
	logger               *zap.Logger
}

func NewEquipmentTypeController(equipmentTypeService *services.EquipmentTypeService, logger *zap.Logger) *EquipmentTypeController {
	return &EquipmentTypeController{
		equipmentTypeService: equipmentTypeService,
		logger:               logger,
	}
}

func (c *EquipmentTypeController) GetEquipmentTypes(ctx echo.Context) error {
	res, err := c.equipmentTypeService.GetEquipmentTypes(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Типы оборудования успешно получены", http.StatusOK)
}

func (c *EquipmentTypeController) CreateEquipmentType(ctx echo.Context) error {
	var payload dto.CreateEquipmentTypeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Неверный формат данных в теле запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentTypeService.CreateEquipmentType(ctx.Request().Context(), payload, actorFromEcho(ctx))
	if err != nil {
		c.logger.Error("CreateEquipmentType: ошибка при создании типа", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Тип оборудования успешно создан", http.StatusCreated)
}

func (c *EquipmentTypeController) UpdateEquipmentType(ctx echo.Context) error {
	var payload dto.UpdateEquipmentTypeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Неверный формат данных в теле запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentTypeService.UpdateEquipmentType(ctx.Request().Context(), payload, actorFromEcho(ctx))
	if err != nil {
		c.logger.Error("UpdateEquipmentType: ошибка при обновлении типа", zap.Uint64("id", payload.ID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Тип оборудования успешно обновлён", http.StatusOK)
}

func (c *EquipmentTypeController) DeleteEquipmentType(ctx echo.Context) error {
	var payload dto.DeleteByIDDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Неверный формат данных в теле запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentTypeService.DeleteEquipmentType(ctx.Request().Context(), payload.ID, actorFromEcho(ctx)); err != nil {
		c.logger.Error("DeleteEquipmentType: ошибка при удалении типа", zap.Uint64("id", payload.ID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Тип оборудования успешно удалён", http.StatusOK)
}
