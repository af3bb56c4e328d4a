package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mes-platform/labor-service/pkg/api"
	"github.com/mes-platform/labor-service/pkg/cloudevents"
	"github.com/mes-platform/labor-service/pkg/kafka"
	"github.com/mes-platform/labor-service/pkg/logging"
	"github.com/mes-platform/labor-service/pkg/metrics"
	"github.com/mes-platform/labor-service/pkg/middleware"
	"github.com/mes-platform/labor-service/pkg/mongodb"
	"github.com/mes-platform/labor-service/pkg/outbox"
	outboxMongo "github.com/mes-platform/labor-service/pkg/outbox/mongodb"
	"github.com/mes-platform/labor-service/pkg/tracing"

	"github.com/mes-platform/labor-service/internal/application"
	"github.com/mes-platform/labor-service/internal/config"
	"github.com/mes-platform/labor-service/internal/domain"
	"github.com/mes-platform/labor-service/internal/infrastructure/messaging"
	mongoRepo "github.com/mes-platform/labor-service/internal/infrastructure/mongodb"
)

const serviceName = "labor-service"

func main() {
	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(cfg.Logging.Level)
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting labor-service API")

	ctx := context.Background()

	// Tracing
	tracingConfig := tracing.DefaultConfig(serviceName)
	tracingConfig.OTLPEndpoint = cfg.Tracing.OTLPEndpoint
	tracingConfig.SampleRate = cfg.Tracing.SampleRate
	tracingConfig.Enabled = cfg.Tracing.Enabled
	tracingConfig.Environment = getEnv("ENVIRONMENT", "development")

	tracerProvider, err := tracing.Initialize(ctx, tracingConfig)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize tracing")
	} else if tracerProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Failed to shutdown tracer")
			}
		}()
		if cfg.Tracing.Enabled {
			logger.Info("Tracing initialized", "endpoint", cfg.Tracing.OTLPEndpoint)
		}
	}

	// Metrics
	m := metrics.New(metrics.DefaultConfig(serviceName))

	// MongoDB
	mongoConfig := mongodb.DefaultConfig()
	mongoConfig.URI = cfg.MongoDB.URI
	mongoConfig.Database = cfg.MongoDB.Database
	mongoConfig.Username = cfg.MongoDB.Username
	mongoConfig.Password = cfg.MongoDB.Password
	mongoConfig.AuthDB = cfg.MongoDB.AuthDB

	mongoClient, err := mongodb.NewClient(ctx, mongoConfig)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", cfg.MongoDB.Database)

	eventFactory := cloudevents.NewEventFactory(cloudevents.SourceLabor)

	// Kafka producer and outbox publisher
	var eventPublisher domain.EventPublisher
	if cfg.Kafka.Enabled {
		kafkaConfig := kafka.DefaultConfig()
		kafkaConfig.Brokers = cfg.Kafka.Brokers

		producer := kafka.NewProducer(kafkaConfig, m, logger)
		cbProducer := kafka.NewCircuitBreakerProducer(producer, m, logger)
		defer cbProducer.Close()
		logger.Info("Kafka producer initialized", "brokers", cfg.Kafka.Brokers)

		outboxPublisher := outbox.NewPublisher(
			outboxMongo.NewOutboxRepository(mongoClient.Database()),
			cbProducer,
			logger,
			outbox.DefaultPublisherConfig(),
		)
		if err := outboxPublisher.Start(ctx); err != nil {
			logger.WithError(err).Error("Failed to start outbox publisher")
			os.Exit(1)
		}
		defer outboxPublisher.Stop()
		logger.Info("Outbox publisher started")

		eventPublisher = messaging.NewKafkaEventPublisher(cbProducer, eventFactory)
	} else {
		logger.Warn("Kafka disabled; events will accumulate in the outbox")
	}

	// Repositories
	instrumentedDB := mongodb.NewInstrumentedDatabase(mongoClient.Database(), m)
	planRepo := mongoRepo.NewWorkPlanRepository(instrumentedDB, eventFactory)
	removalRepo := mongoRepo.NewRemovalRepository(instrumentedDB)
	shiftRepo := application.NewShiftCache(
		mongoRepo.NewShiftRepository(instrumentedDB),
		cfg.Labor.ShiftCacheTTL,
		m,
	)
	reassignmentRepo := mongoRepo.NewReassignmentRepository(instrumentedDB)
	rateRepo := application.NewConfiguredHolidays(
		mongoRepo.NewRateRepository(instrumentedDB),
		cfg.HolidayDates(),
	)

	planningService := application.NewPlanningApplicationService(
		planRepo,
		removalRepo,
		shiftRepo,
		reassignmentRepo,
		rateRepo,
		eventPublisher,
		m,
		logger,
	)

	// Router
	api.RegisterValidators()
	router := gin.New()

	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middlewareConfig.AllowedOrigins = cfg.Server.AllowedOrigins
	middleware.Setup(router, middlewareConfig)
	router.Use(middleware.MetricsMiddleware(m))

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return mongoClient.HealthCheck(ctx)
	}))
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	apiV1 := router.Group("/api/v1")

	plans := apiV1.Group("/plans")
	{
		plans.POST("", createPlanHandler(planningService, logger))
		plans.GET("/:planId", getPlanHandler(planningService, logger))
		plans.POST("/:planId/submit", submitPlanHandler(planningService, logger))
		plans.POST("/:planId/approve", approvePlanHandler(planningService, logger))
		plans.POST("/:planId/reject", rejectPlanHandler(planningService, logger))
		plans.POST("/:planId/cancel", cancelPlanHandler(planningService, logger))
		plans.POST("/:planId/reports", reportWorkHandler(planningService, logger))
	}

	planning := apiV1.Group("/planning")
	{
		planning.GET("/eligibility", checkEligibilityHandler(planningService, logger))
		planning.POST("/validate", validateShiftPlansHandler(planningService, logger))
	}

	workers := apiV1.Group("/workers")
	{
		workers.GET("/:employeeId/stage", workerStageHandler(planningService, logger))
	}

	costing := apiV1.Group("/costing")
	{
		costing.POST("/standard", distributeStandardCostHandler(planningService, logger))
		costing.POST("/non-standard", distributeNonStandardCostHandler(planningService, logger))
		costing.POST("/lost-time", distributeLostTimeHandler(planningService, logger))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
		}
	}()
	logger.Info("Server started", "addr", srv.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
