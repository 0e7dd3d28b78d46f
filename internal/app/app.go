package app

import (
	"context"
	"fmt"

	"workhub_backend/database"
	"workhub_backend/internal/config"
	"workhub_backend/internal/email"
	"workhub_backend/internal/handlers"
	"workhub_backend/internal/logger"
	"workhub_backend/internal/middleware"
	"workhub_backend/internal/repositories"
	"workhub_backend/internal/routes"
	"workhub_backend/internal/services"
	"workhub_backend/internal/validator"
	"workhub_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	if err := database.SeedPlans(gormDB); err != nil {
		logger.Fatal("Plan seeding failed", "error", err)
	}

	serviceContainer := initializeServices(cfg, gormDB)

	worker := workers.NewEnrollmentWorker(serviceContainer.EnrollmentService)
	worker.Start(context.Background())

	ginRouter := SetupRouter(serviceContainer)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(serviceContainer *services.ServiceContainer) *gin.Engine {
	appHandlers := initializeHandlers(serviceContainer)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(router, appHandlers, serviceContainer.QuotaService)
	return router
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	var mailProvider email.Provider
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP host not configured, outbound email disabled")
		mailProvider = email.NoopProvider{}
	} else {
		mailProvider = email.NewSMTPProvider(cfg)
	}

	userRepo := repositories.NewUserRepository(gormDB)
	planRepo := repositories.NewPlanRepository(gormDB)
	usageRepo := repositories.NewUsageRepository(gormDB)
	slotRepo := repositories.NewSlotRepository(gormDB)
	bookingRepo := repositories.NewBookingRepository(gormDB)
	pointsRepo := repositories.NewPointsRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)

	entitlementService := services.NewEntitlementService(planRepo)
	quotaService := services.NewQuotaService(entitlementService, usageRepo)
	pointsService := services.NewPointsService(pointsRepo, cfg.Points.RupeeRate, cfg.Points.CapPercent)
	enrollmentService := services.NewEnrollmentService(planRepo)
	slotService := services.NewSlotService(slotRepo)
	bookingService := services.NewBookingService(bookingRepo, slotRepo, userRepo, entitlementService, pointsService, mailProvider)
	userService := services.NewUserService(userRepo, quotaService)
	jobService := services.NewJobService(jobRepo, quotaService)

	return &services.ServiceContainer{
		UserService:        userService,
		EntitlementService: entitlementService,
		QuotaService:       quotaService,
		EnrollmentService:  enrollmentService,
		SlotService:        slotService,
		BookingService:     bookingService,
		PointsService:      pointsService,
		JobService:         jobService,
	}
}

func initializeHandlers(serviceContainer *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler: handlers.NewAuthHandler(baseHandler, serviceContainer.UserService),
		UserHandler: handlers.NewUserHandler(baseHandler, serviceContainer.UserService),
		PlanHandler: handlers.NewPlanHandler(baseHandler,
			serviceContainer.EnrollmentService,
			serviceContainer.EntitlementService,
			serviceContainer.QuotaService),
		SlotHandler:    handlers.NewSlotHandler(baseHandler, serviceContainer.SlotService),
		BookingHandler: handlers.NewBookingHandler(baseHandler, serviceContainer.BookingService),
		PointsHandler:  handlers.NewPointsHandler(baseHandler, serviceContainer.PointsService),
		JobHandler:     handlers.NewJobHandler(baseHandler, serviceContainer.JobService),
	}
}
