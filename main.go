package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"github.com/sharathcodingit/remi-fitness-booking-app/config"
	"github.com/sharathcodingit/remi-fitness-booking-app/cron"
	"github.com/sharathcodingit/remi-fitness-booking-app/database"
	clientRepo "github.com/sharathcodingit/remi-fitness-booking-app/database/repository/client"
	"github.com/sharathcodingit/remi-fitness-booking-app/handlers"
	"github.com/sharathcodingit/remi-fitness-booking-app/middleware"
	"github.com/sharathcodingit/remi-fitness-booking-app/routes"
	"github.com/sharathcodingit/remi-fitness-booking-app/services/booking"
	"github.com/sharathcodingit/remi-fitness-booking-app/services/ledger"
	"github.com/sharathcodingit/remi-fitness-booking-app/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Pick the client store backend.
	var store clientRepo.Store
	switch config.AppConfig.StorageBackend {
	case "mongo":
		database.InitDB()
		store = clientRepo.NewMongoClientStore()
	default:
		store = clientRepo.NewCSVClientStore(config.AppConfig.CSVPath)
	}

	// Seed the ledger from the persisted snapshot.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	records, err := store.Load(loadCtx)
	cancelLoad()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load client records: %v", err)
	}
	bookingLedger := ledger.NewLedger()
	bookingLedger.Load(records)
	logger.Sugar().Infof("Loaded %d client records (%s backend)", len(records), config.AppConfig.StorageBackend)

	// Booking drafts live in Redis between form steps.
	sessionStore := booking.NewRedisSessionStore(utils.GetSessionCacheClient())
	sessionService := &booking.DefaultSessionService{
		Ledger: bookingLedger,
		Store:  sessionStore,
	}

	// Payment reminder queue (optional).
	var reminderClient *asynq.Client
	var reminders handlers.ReminderEnqueuer
	if config.AppConfig.RemindersEnabled {
		cron.InitReminderWorker()
		reminderClient = cron.NewReminderClient()
		reminders = reminderClient
	}

	utils.StartHealthMonitor(utils.GetSessionCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:      &handlers.AuthHandler{},
		Clients:   handlers.NewClientHandler(bookingLedger, store, reminders),
		Booking:   handlers.NewBookingHandler(sessionService, bookingLedger, store),
		Payments:  handlers.NewPaymentHandler(bookingLedger, store, reminders),
		Dashboard: handlers.NewDashboardHandler(bookingLedger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
	if reminderClient != nil {
		_ = reminderClient.Close()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
