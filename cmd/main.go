package main

import (
	"fmt"
	"log"
	"os"

	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/labstack/echo/v4"

	"housebill/internal/analytics"
	"housebill/internal/caching"
	"housebill/internal/config"
	"housebill/internal/handlers"
	"housebill/internal/jobs"
	"housebill/internal/jobs/background"
	"housebill/internal/repositories"
	"housebill/internal/services"
	"housebill/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// MinIO is optional; exports still work without the archive copy.
	minioSvc, err := services.NewMinioService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.Printf("WARNING: MinIO unavailable, export archiving disabled: %v", err)
		minioSvc = nil
	}

	// Repositories
	houseRepo := repositories.NewHouseRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	memberRepo := repositories.NewMemberRepo(pool)
	paymentRepo := repositories.NewPaymentRepo(pool)

	// Cache
	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// Services
	analyticsSvc := analytics.NewAnalyticsService(houseRepo, productRepo, memberRepo, paymentRepo, cacheSvc)
	houseSvc := services.NewHouseService(houseRepo, productRepo, cacheSvc)
	productSvc := services.NewProductService(productRepo, cacheSvc)
	memberSvc := services.NewMemberService(memberRepo, houseRepo, paymentRepo, cacheSvc)
	sampleDataSvc := services.NewSampleDataService(houseRepo, productRepo, memberRepo, paymentRepo, cacheSvc)
	expirySvc := jobs.NewExpiryAlertService(memberRepo)

	// Handlers
	houseHandlers := handlers.NewHouseHandlers(houseSvc, memberSvc, analyticsSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	memberHandlers := handlers.NewMemberHandlers(memberSvc)
	paymentHandlers := handlers.NewPaymentHandlers(paymentRepo)
	statsHandlers := handlers.NewStatsHandlers(analyticsSvc)
	transferHandlers := handlers.NewTransferHandlers(memberSvc, minioSvc, cfg.Export.Bucket)
	sampleDataHandlers := handlers.NewSampleDataHandlers(sampleDataSvc)

	// Background jobs
	scheduler := background.NewJobScheduler(analyticsSvc, expirySvc)
	if err := scheduler.Start(); err != nil {
		log.Printf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, scheduler)

	// Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)
	e.GET("/health/detailed", healthHandlers.Detailed)

	api := e.Group("/api")

	// House routes
	api.GET("/houses", houseHandlers.ListHouses)
	api.POST("/houses", houseHandlers.CreateHouse)
	api.GET("/houses/:id", houseHandlers.GetHouse)
	api.PUT("/houses/:id", houseHandlers.UpdateHouse)
	api.DELETE("/houses/:id", houseHandlers.DeleteHouse)
	api.GET("/houses/:id/stats", houseHandlers.GetHouseStats)

	// Product routes
	api.GET("/products", productHandlers.ListProducts)
	api.POST("/products", productHandlers.CreateProduct)
	api.PUT("/products/:id", productHandlers.UpdateProduct)
	api.DELETE("/products/:id", productHandlers.DeleteProduct)

	// Member routes. Static paths register before :id so echo routes them
	// correctly.
	api.GET("/members", memberHandlers.ListMembers)
	api.POST("/members", memberHandlers.CreateMember)
	api.GET("/members/upcoming", memberHandlers.UpcomingPayments)
	api.GET("/members/export", transferHandlers.ExportMembers)
	api.GET("/members/export/archive-url", transferHandlers.ArchivedExportURL)
	api.POST("/members/import", transferHandlers.ImportMembers)
	api.GET("/members/:id", memberHandlers.GetMember)
	api.PUT("/members/:id", memberHandlers.UpdateMember)
	api.DELETE("/members/:id", memberHandlers.DeleteMember)
	api.POST("/members/:id/pay", memberHandlers.RecordPayment)

	// Payment ledger
	api.GET("/payments", paymentHandlers.ListPayments)

	// Dashboard stats
	api.GET("/stats", statsHandlers.GetStats)

	// Demo dataset
	api.POST("/sample-data", sampleDataHandlers.CreateSampleData)

	log.Printf("Starting housebill %s on port %d", version, cfg.Server.Port)
	if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
