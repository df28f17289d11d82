package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"calibration-system/internal/controllers"
	"calibration-system/internal/repositories"
	"calibration-system/internal/services"
	"calibration-system/pkg/config"
	"calibration-system/pkg/mailer"
	"calibration-system/pkg/middleware"
	"calibration-system/pkg/service"
)

// InitRouter собирает весь граф зависимостей и вешает маршруты.
// Чтение списка и панели доступно без сессии, любые мутации - только
// с валидной сессионной кукой.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	sessionSvc service.SessionService,
	m mailer.Mailer,
	cfg *config.Config,
	logger *zap.Logger,
) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(sessionSvc, cfg.Session.CookieName, logger)

	// --- РЕПОЗИТОРИИ ---
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	equipmentTypeRepo := repositories.NewEquipmentTypeRepository(dbConn)
	calibrationStatusRepo := repositories.NewCalibrationStatusRepository(dbConn)
	customFieldRepo := repositories.NewCustomFieldRepository(dbConn)
	emailSettingRepo := repositories.NewEmailSettingRepository(dbConn)
	changeLogRepo := repositories.NewChangeLogRepository(dbConn)
	userRepo := repositories.NewUserRepository(dbConn)

	// --- СЕРВИСЫ ---
	credentials := services.NewStaticCredentialProvider(cfg.DemoUsers)
	authService := services.NewAuthService(credentials, sessionSvc, userRepo, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, equipmentTypeRepo, changeLogRepo, cacheRepo, logger)
	equipmentTypeService := services.NewEquipmentTypeService(equipmentTypeRepo, changeLogRepo, logger)
	calibrationStatusService := services.NewCalibrationStatusService(calibrationStatusRepo, changeLogRepo, logger)
	customFieldService := services.NewCustomFieldService(customFieldRepo, changeLogRepo, logger)
	emailSettingsService := services.NewEmailSettingsService(emailSettingRepo, changeLogRepo, logger)
	userService := services.NewUserService(userRepo, changeLogRepo, logger)
	changeLogService := services.NewChangeLogService(changeLogRepo, logger)
	dashboardService := services.NewDashboardService(equipmentRepo, equipmentTypeRepo, cacheRepo, logger)
	notificationService := services.NewNotificationService(equipmentRepo, emailSettingRepo, m, logger)

	// --- КОНТРОЛЛЕРЫ ---
	authCtrl := controllers.NewAuthController(authService, sessionSvc, cfg.Session.CookieName, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)
	equipmentTypeCtrl := controllers.NewEquipmentTypeController(equipmentTypeService, logger)
	calibrationStatusCtrl := controllers.NewCalibrationStatusController(calibrationStatusService, logger)
	customFieldCtrl := controllers.NewCustomFieldController(customFieldService, logger)
	emailSettingsCtrl := controllers.NewEmailSettingsController(emailSettingsService, logger)
	userCtrl := controllers.NewUserController(userService, logger)
	changeLogCtrl := controllers.NewChangeLogController(changeLogService, logger)
	dashboardCtrl := controllers.NewDashboardController(dashboardService, logger)
	notificationCtrl := controllers.NewNotificationController(notificationService, logger)

	// --- МАРШРУТЫ ---
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/logout", authCtrl.Logout)
		authGroup.GET("/me", authCtrl.Me, authMW.Auth)
	}

	api.GET("/equipment", equipmentCtrl.GetEquipmentList)
	api.GET("/equipment/export", equipmentCtrl.ExportEquipment)
	api.GET("/equipment/:id", equipmentCtrl.FindEquipment)
	api.POST("/equipment", equipmentCtrl.CreateEquipment, authMW.Auth)
	api.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment, authMW.Auth)
	api.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment, authMW.Auth)

	api.GET("/dashboard/summary", dashboardCtrl.GetSummary)
	api.GET("/dashboard/timeline", dashboardCtrl.GetTimeline)

	api.GET("/change-logs", changeLogCtrl.GetChangeLogs)

	// Эндпоинты рассылок дергает планировщик, сессия не требуется.
	notificationsGroup := api.Group("/notifications")
	{
		notificationsGroup.POST("/weekly-report", notificationCtrl.SendWeeklyReport)
		notificationsGroup.POST("/reminders", notificationCtrl.SendReminders)
	}

	adminGroup := api.Group("/admin", authMW.Auth)
	{
		adminGroup.GET("/equipment-types", equipmentTypeCtrl.GetEquipmentTypes)
		adminGroup.POST("/equipment-types", equipmentTypeCtrl.CreateEquipmentType)
		adminGroup.PUT("/equipment-types", equipmentTypeCtrl.UpdateEquipmentType)
		adminGroup.DELETE("/equipment-types", equipmentTypeCtrl.DeleteEquipmentType)

		adminGroup.GET("/calibration-statuses", calibrationStatusCtrl.GetCalibrationStatuses)
		adminGroup.POST("/calibration-statuses", calibrationStatusCtrl.CreateCalibrationStatus)
		adminGroup.PUT("/calibration-statuses", calibrationStatusCtrl.UpdateCalibrationStatus)
		adminGroup.DELETE("/calibration-statuses", calibrationStatusCtrl.DeleteCalibrationStatus)

		adminGroup.GET("/custom-fields", customFieldCtrl.GetCustomFields)
		adminGroup.POST("/custom-fields", customFieldCtrl.CreateCustomField)
		adminGroup.PUT("/custom-fields", customFieldCtrl.UpdateCustomField)
		adminGroup.DELETE("/custom-fields", customFieldCtrl.DeleteCustomField)

		adminGroup.GET("/users", userCtrl.GetUsers)
		adminGroup.POST("/users", userCtrl.CreateUser)
		adminGroup.PUT("/users", userCtrl.UpdateUser)
		adminGroup.DELETE("/users", userCtrl.DeleteUser)

		adminGroup.GET("/email-settings", emailSettingsCtrl.GetEmailSettings)
		adminGroup.PUT("/email-settings", emailSettingsCtrl.UpdateEmailSettings)
	}

	logger.Info("InitRouter: Маршруты успешно созданы")
}
