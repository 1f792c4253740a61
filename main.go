package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spacebook/config"
	"spacebook/cron"
	"spacebook/database"
	bookingRepoPkg "spacebook/database/repository/booking"
	propertyRepoPkg "spacebook/database/repository/property"
	"spacebook/handlers"
	"spacebook/middleware"
	"spacebook/routes"
	"spacebook/services/booking"
	"spacebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
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
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	propertyRepo := propertyRepoPkg.NewMongoPropertyRepo()
	if err := bookingRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	if err := propertyRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure property indexes: %v", err)
	}

	// services.
	bookingService := booking.NewDefaultBookingService(bookingRepo, propertyRepo)

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Booking:  handlers.NewBookingHandler(bookingService, logger),
		Property: handlers.NewPropertyHandler(propertyRepo, utils.GetCacheClient(), logger),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background completion sweep and health monitor.
	cron.InitCompletionWorker(bookingService)
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

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
