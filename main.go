// File: tripdesk/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tripdesk/config"
	"tripdesk/cron"
	"tripdesk/database"
	productRepo "tripdesk/database/repository/product"
	"tripdesk/handlers"
	"tripdesk/middleware"
	"tripdesk/routes"
	"tripdesk/services/catalog"
	"tripdesk/services/order"
	"tripdesk/services/reservation"
	"tripdesk/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	prodRepo := productRepo.NewMongoProductRepo()
	if err := prodRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Warnf("main: failed to ensure product indexes: %v", err)
	}

	// services.
	refreshQueue := cron.NewRefreshQueue()
	catalogService := &catalog.DefaultCatalogService{
		Repo:     prodRepo,
		Upstream: catalog.NewUpstreamClient(config.AppConfig.PartnerAPIBaseURL, config.AppConfig.PartnerAPIKey),
		Cache:    utils.GetCacheClient(),
		CacheTTL: time.Duration(config.AppConfig.ProductCacheTTLMin) * time.Minute,
		Refresh:  refreshQueue,
	}

	reservationService := &reservation.DefaultReservationService{
		Catalog: catalogService,
		Orders:  order.NewClient(config.AppConfig.OrderAPIBaseURL, config.AppConfig.OrderAPIKey),
	}

	productHandler := handlers.NewProductHandler(catalogService, logger)
	calendarHandler := handlers.NewCalendarHandler(catalogService, logger)
	reservationHandler := handlers.NewReservationHandler(reservationService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GetProductHandler:     productHandler.GetProductHandler,
		RefreshProductHandler: productHandler.RefreshProductHandler,
		MonthCalendarHandler:  calendarHandler.MonthCalendarHandler,

		QuoteHandler:             reservationHandler.QuoteHandler,
		CreateReservationHandler: reservationHandler.CreateReservationHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background refresh worker and health monitor.
	cron.InitRefreshWorker(catalogService)
	cron.StartStaleScanner(prodRepo, refreshQueue, catalogService.CacheTTL)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
