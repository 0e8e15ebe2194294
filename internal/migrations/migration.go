package migrations

import (
	"context"
	"fmt"

	"store_manager/internal/logger"
	"store_manager/internal/models"
	"store_manager/internal/repository"
	"store_manager/internal/services"

	"gorm.io/gorm"
)

type Options struct {
	AdminUsername string
	AdminPassword string
	SeedDemoData  bool
}

// RunMigrations brings the schema up to date, makes sure the admin account
// exists and optionally loads the demo catalogue. It never drops data.
func RunMigrations(ctx context.Context, db *gorm.DB, log *logger.Logger, opts Options) error {
	log.Info("Running database migrations...")
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err := createDefaultAdmin(ctx, db, log, opts); err != nil {
		return err
	}

	if opts.SeedDemoData {
		if err := SeedDemoData(ctx, db, log); err != nil {
			return err
		}
	}

	log.Info("Database migrations completed successfully!")
	return nil
}

func createDefaultAdmin(ctx context.Context, db *gorm.DB, log *logger.Logger, opts Options) error {
	if opts.AdminUsername == "" {
		return nil
	}

	userService := services.NewUserService(repository.NewUserRepository(db))
	admin := &models.User{
		Username: opts.AdminUsername,
		Email:    opts.AdminUsername + "@example.com",
		IsActive: true,
		IsStaff:  true,
	}
	created, err := userService.EnsureUser(ctx, admin, opts.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	if created {
		log.Info("Admin user created", "username", admin.Username)
	} else {
		log.Debug("Admin user already exists", "username", admin.Username)
	}
	return nil
}
