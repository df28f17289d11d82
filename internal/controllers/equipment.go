package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"calibration-system/internal/dto"
	"calibration-system/internal/services"
	apperrors "calibration-system/pkg/errors"
	"calibration-system/pkg/middleware"
	"calibration-system/pkg/utils"
)

// actorFromEcho достаёт актора из сессии запроса; для публичных ручек
// возвращает пустого актора.
func actorFromEcho(ctx echo.Context) services.Actor {
	claims, ok := middleware.SessionFromContext(ctx.Request().Context())
	if !ok {
		return services.Actor{}
	}
	return services.Actor{UserID: claims.UserID, Name: claims.Name, Email: claims.Email}
}

type EquipmentController struct {
	equipmentService *services.EquipmentService
	logger           *zap.Logger
}

func NewEquipmentController(equipmentService *services.EquipmentService, logger *zap.Logger) *EquipmentController {
	return &EquipmentController{
		equipmentService: equipmentService,
		logger:           logger,
	}
}

func parseEquipmentFilter(ctx echo.Context) dto.EquipmentFilterDTO {
	return dto.EquipmentFilterDTO{
		EquipmentType:  ctx.QueryParam("equipmentType"),
		Status:         ctx.QueryParam("status"),
		AssignedPerson: ctx.QueryParam("assignedPerson"),
		Location:       ctx.QueryParam("location"),
		Search:         ctx.QueryParam("search"),
	}
}

func (c *EquipmentController) GetEquipmentList(ctx echo.Context) error {
	filter := parseEquipmentFilter(ctx)
	c.logger.Debug("Запрос списка оборудования", zap.Any("filter", filter))

	res, err := c.equipmentService.GetEquipmentList(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetEquipmentList: ошибка при получении списка оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if strings.ToLower(ctx.QueryParam("format")) == "xlsx" {
		return c.respondWithXLSX(ctx, res.Equipment)
	}

	return utils.SuccessResponse(ctx, res, "Список оборудования успешно получен", http.StatusOK)
}

// ExportEquipment выгружает отфильтрованный список в xlsx независимо
// от параметра format.
func (c *EquipmentController) ExportEquipment(ctx echo.Context) error {
	filter := parseEquipmentFilter(ctx)

	res, err := c.equipmentService.GetEquipmentList(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("ExportEquipment: ошибка при выгрузке оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.respondWithXLSX(ctx, res.Equipment)
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Неверный формат ID оборудования", err), c.logger)
	}

	res, err := c.equipmentService.FindEquipment(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("FindEquipment: ошибка при поиске оборудования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно найдено", http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	var payload dto.CreateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateEquipment: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Неверный формат данных в теле запроса", err), c.logger)
	}

	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.CreateEquipment(ctx.Request().Context(), payload, actorFromEcho(ctx))
	if err != nil {
		c.logger.Error("CreateEquipment: ошибка при создании оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно создано", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Неверный формат ID оборудования", err), c.logger)
	}

	var payload dto.UpdateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("UpdateEquipment: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Неверный формат данных в теле запроса", err), c.logger)
	}

	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateEquipment(ctx.Request().Context(), id, payload, actorFromEcho(ctx))
	if err != nil {
		c.logger.Error("UpdateEquipment: ошибка при обновлении оборудования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно обновлено", http.StatusOK)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Неверный формат ID оборудования", err), c.logger)
	}

	if err := c.equipmentService.DeleteEquipment(ctx.Request().Context(), id, actorFromEcho(ctx)); err != nil {
		c.logger.Error("DeleteEquipment: ошибка при удалении оборудования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Оборудование успешно удалено", http.StatusOK)
}

var equipmentExportHeaders = []interface{}{
	"ID", "Наименование", "Тип", "Зав. №", "Производитель", "Модель",
	"Статус", "Последняя поверка", "Следующая поверка", "Ответственный", "Расположение",
}

func (c *EquipmentController) respondWithXLSX(ctx echo.Context, items []dto.EquipmentDTO) error {
	f := excelize.NewFile()
	sheet := "Оборудование"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &equipmentExportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "K1", style)

	for i, item := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			item.ID, item.Name, item.EquipmentTypeName, item.SerialNumber,
			item.Manufacturer, item.Model, item.CalibrationStatusName,
			item.LastCalibrationDate, item.NextCalibrationDate,
			item.AssignedPerson, item.Location,
		}
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "C", 30)
	f.SetColWidth(sheet, "D", "G", 20)
	f.SetColWidth(sheet, "H", "K", 18)

	fileName := fmt.Sprintf("equipment_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
