package main

import (
	"context"
	"log"

	"store_manager/internal/config"
	"store_manager/internal/database"
	"store_manager/internal/logger"
	"store_manager/internal/migrations"
)

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

	appLog.Info("Initializing database...")

	// Initialize database
	db, err := database.Initialize(database.Options{
		Driver:   cfg.DatabaseDriver,
		URL:      cfg.DatabaseURL,
		LogLevel: cfg.DBLogLevel,
		Logger:   appLog,
	})
	if err != nil {
		appLog.Fatal("Failed to connect to database", "error", err)
	}

	// Schema, admin account and the demo catalogue
	err = migrations.RunMigrations(context.Background(), db, appLog, migrations.Options{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		SeedDemoData:  true,
	})
	if err != nil {
		appLog.Fatal("Failed to initialize database", "error", err)
	}

	appLog.Info("Database initialization completed successfully!", "admin", cfg.AdminUsername)
}
