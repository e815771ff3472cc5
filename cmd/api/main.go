package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"wealthtracker/internal/config"
	"wealthtracker/internal/dashboard"
	"wealthtracker/internal/database"
	"wealthtracker/internal/handlers"
	"wealthtracker/internal/logger"
	"wealthtracker/internal/middleware"
	"wealthtracker/internal/realtime"
	"wealthtracker/internal/services"
	"wealthtracker/internal/validator"

	_ "wealthtracker/internal/docs" // Import swagger docs
)

// @title           Wealth Tracker API
// @version         1.0
// @description     Personal wealth tracking: assets, liabilities, goals, transactions and a live net worth dashboard.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the Supabase access token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Shared key for scheduled pipeline jobs.

const shutdownTimeout = 10 * time.Second

func main() {
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Init(appConfig.Env, appConfig.LogLevel); err != nil {
		return err
	}
	log := logger.Get()
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()
	router := setupRouter(appConfig, dbManager.DB())

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Wealth Tracker API on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// setupRouter wires services, handlers and routes.
func setupRouter(appConfig *config.Config, db *gorm.DB) *gin.Engine {
	// Initialize services
	auditService := services.NewAuditService(db)
	profileService := services.NewProfileService(db)
	assetService := services.NewAssetService(db)
	liabilityService := services.NewLiabilityService(db)
	goalService := services.NewGoalService(db)
	transactionService := services.NewTransactionService(db)
	insightService := services.NewInsightService(db)
	snapshotService := services.NewNetWorthSnapshotService(db)
	dashboardService := services.NewDashboardService(db, insightService, dashboard.Options{
		DueWindow:   appConfig.UpcomingDueWindow,
		RecentLimit: appConfig.RecentTransactionsLimit,
	})

	hub := realtime.NewHub(dashboardService, logger.Named("realtime"))

	// Initialize handlers
	profileHandler := handlers.NewProfileHandler(profileService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, snapshotService, hub, appConfig.AllowedOrigins)
	assetHandler := handlers.NewAssetHandler(assetService, dashboardService, auditService, hub)
	liabilityHandler := handlers.NewLiabilityHandler(liabilityService, auditService, hub)
	goalHandler := handlers.NewGoalHandler(goalService, auditService, hub)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService, hub)
	insightHandler := handlers.NewInsightHandler(insightService, dashboardService, auditService, hub)
	pipelineHandler := handlers.NewPipelineHandler(snapshotService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(appConfig.AllowedOrigins))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Pipeline routes (API key)
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(appConfig.PipelineAPIKey))
	pipeline.POST("/snapshots", pipelineHandler.RecordSnapshots)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(appConfig.SupabaseJWTSecret))

	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile", profileHandler.UpdateProfile)

	dash := protected.Group("/dashboard")
	dash.GET("", dashboardHandler.GetDashboard)
	dash.GET("/stream", dashboardHandler.StreamDashboard)
	dash.GET("/history", dashboardHandler.GetNetWorthHistory)

	assets := protected.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.GetAssets)
	assets.GET("/summary", assetHandler.GetAssetSummary)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	liabilities := protected.Group("/liabilities")
	liabilities.POST("", liabilityHandler.CreateLiability)
	liabilities.GET("", liabilityHandler.GetLiabilities)
	liabilities.GET("/:id", liabilityHandler.GetLiability)
	liabilities.PUT("/:id", liabilityHandler.UpdateLiability)
	liabilities.DELETE("/:id", liabilityHandler.DeleteLiability)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	insights := protected.Group("/insights")
	insights.GET("", insightHandler.GetInsights)
	insights.POST("/generate", insightHandler.GenerateInsights)
	insights.PUT("/:id/read", insightHandler.MarkInsightRead)
	insights.DELETE("/:id", insightHandler.DeleteInsight)

	return router
}
