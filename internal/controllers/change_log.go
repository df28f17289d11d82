package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"calibration-system/internal/dto"
	"calibration-system/internal/services"
	apperrors "calibration-system/pkg/errors"
	"calibration-system/pkg/utils"
)

type ChangeLogController struct {
	changeLogService *services.ChangeLogService
	logger           *zap.Logger
}

func NewChangeLogController(changeLogService *services.ChangeLogService, logger *zap.Logger) *ChangeLogController {
	return &ChangeLogController{changeLogService: changeLogService, logger: logger}
}

func (c *ChangeLogController) GetChangeLogs(ctx echo.Context) error {
	filter := dto.ChangeLogFilterDTO{}

	if raw := ctx.QueryParam("equipmentId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.ErrorResponse(ctx,
				apperrors.NewBadRequestError("Неверный формат ID оборудования", err), c.logger)
		}
		filter.EquipmentID = &id
	}
	if raw := ctx.QueryParam("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}
	if raw := ctx.QueryParam("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil {
			filter.Offset = offset
		}
	}

	res, err := c.changeLogService.GetChangeLogs(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetChangeLogs: ошибка при выборке журнала", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Журнал изменений успешно получен", http.StatusOK)
}
