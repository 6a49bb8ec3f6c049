// File: medibook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	recordsRepo "medibook/database/repository/records"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/adapters"
	"medibook/services/catalog"
	"medibook/services/tasks"
	"medibook/services/workflow"
	"medibook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()
	utils.InitDedupCache()

	// Record archive: MongoDB when enabled, in-memory otherwise.
	var archiver workflow.RecordArchiver
	if config.AppConfig.ArchiveEnabled {
		database.InitDB()
		archiver = recordsRepo.NewMongoRecordArchive()
	} else {
		archiver = recordsRepo.NewMemoryRecordArchive()
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// Side-effect adapters.
	locationProvider := adapters.NewIPLocationProvider("", config.LocationTimeout(), logger)
	paymentProcessor := adapters.NewSimulatedPaymentProcessor(
		logger, time.Duration(config.AppConfig.PaymentDelayMillis)*time.Millisecond)
	dispatchService := adapters.NewSimulatedDispatchService(
		workflow.NewTicketIDGenerator(time.Now),
		&adapters.RedisDedupStore{Client: utils.GetDedupCacheClient(), TTL: 24 * time.Hour},
		logger,
	)

	// Reminder queue.
	reminderClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer reminderClient.Close()
	cron.InitReminderWorker()

	catalogService := catalog.NewMemoryCatalog()

	sessionService := &workflow.DefaultSessionService{
		Store:    workflow.NewRedisSessionStore(utils.GetSessionCacheClient(), config.SessionTTL()),
		Catalog:  catalogService,
		Location: locationProvider,
		Payments: paymentProcessor,
		Dispatch: dispatchService,
		Archiver: archiver,
		Reminders: &tasks.AsynqReminderScheduler{
			Client: reminderClient,
			Logger: logger,
		},
		Logger: logger,
	}

	workflowHandler := handlers.NewWorkflowHandler(sessionService, logger)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	routes.RegisterRoutes(router, workflowHandler, catalogHandler)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetSessionCacheClient(), utils.GetDedupCacheClient()},
		database.MongoClient,
	)

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
