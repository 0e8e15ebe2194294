package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"store_manager/internal/authz"
	"store_manager/internal/config"
	"store_manager/internal/database"
	"store_manager/internal/handlers"
	"store_manager/internal/logger"
	"store_manager/internal/migrations"
	"store_manager/internal/observability"
	"store_manager/internal/redis"
	"store_manager/internal/repository"
	"store_manager/internal/server"
	"store_manager/internal/services"
	"store_manager/pkg/events"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	appLog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer appLog.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, appLog, observability.TracingConfig{
		ServiceName: cfg.OtelServiceName,
		Environment: cfg.Environment,
		Exporter:    cfg.OtelExporter,
	})
	if err != nil {
		appLog.Fatal("Failed to initialize tracing", "error", err)
	}

	// Initialize database
	db, err := database.Initialize(database.Options{
		Driver:       cfg.DatabaseDriver,
		URL:          cfg.DatabaseURL,
		LogLevel:     cfg.DBLogLevel,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		Logger:       appLog,
	})
	if err != nil {
		appLog.Fatal("Failed to connect to database", "error", err)
	}

	err = migrations.RunMigrations(ctx, db, appLog, migrations.Options{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		SeedDemoData:  cfg.SeedDemoData,
	})
	if err != nil {
		appLog.Fatal("Failed to migrate database", "error", err)
	}

	// Refresh-token sessions live in Redis when it is configured
	var sessions services.SessionStore
	if cfg.RedisURL != "" {
		redisClient, err := redis.Initialize(cfg.RedisURL)
		if err != nil {
			appLog.Fatal("Failed to connect to Redis", "error", err)
		}
		defer redisClient.Close()
		sessions = redisClient
	} else {
		appLog.Warn("REDIS_URL not set, refresh tokens cannot be revoked")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.OrderEventsQueue)
		if err != nil {
			appLog.Fatal("Failed to connect to message broker", "error", err)
		}
		publisher = amqpPublisher
	}
	defer publisher.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	userRepo := repository.NewUserRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// Initialize services
	productService := services.NewProductService(productRepo, appLog)
	customerService := services.NewCustomerService(customerRepo, orderRepo, publisher, appLog)
	orderService := services.NewOrderService(orderRepo, orderItemRepo, customerRepo, productRepo, publisher, appLog)
	dashboardService := services.NewDashboardService(dashboardRepo, appLog)
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userService, sessions, services.AuthConfig{
		Secret:     []byte(cfg.JWTSecret),
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}, appLog)

	policy, err := authz.NewPolicy()
	if err != nil {
		appLog.Fatal("Failed to load access policy", "error", err)
	}

	// Setup routes
	router := server.NewRouter(server.RouterConfig{
		ServiceName:    cfg.OtelServiceName,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		Tokens:         authService,
		Policy:         policy,
		Logger:         appLog,
		Handlers: server.Handlers{
			Products:  handlers.NewProductHandler(productService, appLog),
			Customers: handlers.NewCustomerHandler(customerService, appLog),
			Orders:    handlers.NewOrderHandler(orderService, appLog),
			Dashboard: handlers.NewDashboardHandler(dashboardService, appLog),
			Auth:      handlers.NewAuthHandler(authService, appLog),
			Health:    handlers.NewHealthHandler(db, appLog),
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
	}

	// Start server
	go func() {
		appLog.Info("Server starting", "port", cfg.ServerPort, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLog.Warn("Failed to flush traces", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	appLog.Info("Server exited")
}
