package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"calibration-system/internal/services"
	"calibration-system/pkg/utils"
)

type DashboardController struct {
	dashboardService *services.DashboardService
	logger           *zap.Logger
}

func NewDashboardController(dashboardService *services.DashboardService, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

func (c *DashboardController) GetSummary(ctx echo.Context) error {
	res, err := c.dashboardService.GetSummary(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetSummary: ошибка при построении сводки", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Сводка успешно построена", http.StatusOK)
}

// GetTimeline принимает year/month выбранного месяца; без параметров
// окно строится вокруг текущего.
func (c *DashboardController) GetTimeline(ctx echo.Context) error {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if raw := ctx.QueryParam("year"); raw != "" {
		if y, err := strconv.Atoi(raw); err == nil && y > 0 {
			year = y
		}
	}
	if raw := ctx.QueryParam("month"); raw != "" {
		if m, err := strconv.Atoi(raw); err == nil && m >= 1 && m <= 12 {
			month = time.Month(m)
		}
	}

	res, err := c.dashboardService.GetTimeline(ctx.Request().Context(), year, month)
	if err != nil {
		c.logger.Error("GetTimeline: ошибка при построении таймлайна", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Таймлайн успешно построен", http.StatusOK)
}
