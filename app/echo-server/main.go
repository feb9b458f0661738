package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"shopsight/app/echo-server/router"
	"shopsight/business/activity"
	"shopsight/business/category"
	"shopsight/business/orders"
	"shopsight/business/product"
	"shopsight/business/recommend"
	"shopsight/business/report"
	userService "shopsight/business/user"
	"shopsight/internal/middleware"
	psqlRepo "shopsight/internal/repository/postgres"
	redisRepo "shopsight/internal/repository/redis"
	"shopsight/internal/rest"
	"shopsight/pkg/config"
	"shopsight/pkg/database"
	redisconn "shopsight/pkg/database/redis"
	"shopsight/pkg/logger"
	"shopsight/pkg/metrics"
	"shopsight/pkg/utils"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting ShopSight", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisconn.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	activityRepo := psqlRepo.NewActivityRepository(db)
	recoRepo := psqlRepo.NewRecommendationRepository(db)
	reportRepo := psqlRepo.NewReportRepository(db)
	sessionRepo := redisRepo.NewSessionRepository(redisClient)

	// Category names are fixed reference data, loaded once at startup.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	categoryLookup, err := category.NewLookup(startupCtx, categoryRepo)
	startupCancel()
	if err != nil {
		logger.Fatal("Failed to load category lookup", "error", err)
	}

	// Init service
	usrService := userService.NewUserService(userRepo, sessionRepo, validate, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	productService := product.NewProductService(productRepo, categoryLookup)
	categoryService := category.NewCategoryService(categoryRepo)
	activityService := activity.NewActivityService(activityRepo, cfg.Analytics.ActivityRetentionDays)
	ordersService := orders.NewOrdersService(ordersRepo, productRepo, activityService)
	recommendService := recommend.NewRecommendService(activityRepo, productRepo, recoRepo)
	reportService := report.NewReportService(reportRepo, productRepo)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	productHandler := rest.NewProductHandler(productService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	ordersHandler := rest.NewOrdersHandler(ordersService)
	activityHandler := rest.NewActivityHandler(activityService)
	recommendationHandler := rest.NewRecommendationHandler(recommendService)
	reportHandler := rest.NewReportHandler(reportService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Metrics
	metrics.Init()
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(usrService)
	adminOnly := middleware.AdminOnly()
	selfOrAdmin := middleware.SelfOrAdmin()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly, selfOrAdmin)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupCategoryRoutes(api, categoryHandler, authRequired, adminOnly)
	router.SetOrdersRoutes(api, ordersHandler, authRequired, adminOnly)
	router.SetActivityRoutes(api, activityHandler, authRequired, adminOnly)
	router.SetRecommendationRoutes(api, recommendationHandler, authRequired)
	router.SetReportRoutes(api, reportHandler, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisconn.CloseRedisClient(redisClient); err != nil {
		logger.Error("Redis close error", "error", err)
	}

	logger.Info("Server stopped")
}
