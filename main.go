// File: slotwise/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotwise/config"
	"slotwise/cron"
	"slotwise/database"
	bookingRepoPkg "slotwise/database/repository/booking"
	businessRepoPkg "slotwise/database/repository/business"
	customerRepoPkg "slotwise/database/repository/customer"
	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/routes"
	"slotwise/services/notification"
	"slotwise/services/payment"
	"slotwise/services/scheduling"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
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
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	businessRepo := businessRepoPkg.NewMongoBusinessRepo()
	customerRepo := customerRepoPkg.NewMongoCustomerRepo()

	if idx, ok := bookingRepo.(interface{ EnsureIndexes() error }); ok {
		if err := idx.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
		}
	}

	// services.
	cache := utils.GetCacheClient()
	locker := &utils.RedisLocker{Client: cache, Logger: logger}
	notifier := &notification.LogSender{Logger: logger}
	gateway := &payment.StripeGateway{WebhookSecret: config.AppConfig.StripeWebhookSecret}

	engine := &scheduling.Engine{
		Bookings:   bookingRepo,
		Businesses: businessRepo,
		Customers:  customerRepo,
		Locks:      locker,
		Notifier:   notifier,
		Payments:   gateway,
		Logger:     logger,
		Opts: scheduling.Options{
			SlotStepMinutes:     config.AppConfig.SlotStepMinutes,
			CheckinGraceMinutes: config.AppConfig.CheckinGraceMinutes,
			EnforceBuffer:       config.AppConfig.EnforceBuffer,
			Currency:            config.AppConfig.Currency,
		},
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Slots:    handlers.NewSlotHandler(engine, cache, logger),
		Bookings: handlers.NewBookingHandler(engine, cache, logger),
		Payments: handlers.NewPaymentHandler(engine, gateway, logger),
		Sweeps:   handlers.NewSweepHandler(engine, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the background sweep worker.
	cron.InitSweepWorker(engine)

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
