package db

import (
	"os"

	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/pkg/logger"
	"github.com/ikkim/backoffice-backend/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.Variant{},
		&model.BundleItem{},
		&model.BankAccount{},
		&model.Reward{},
		&model.Voucher{},
		&model.Order{},
		&model.OrderItem{},
		&model.StockAlert{},
		&model.AlertSettings{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

// seedInitialData creates the bootstrap admin account when the user table is
// empty, so a fresh deployment can be logged into.
func seedInitialData() error {
	logger.Info("Seeding initial data...")

	var count int64
	if err := DB.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Users already exist, skipping admin seed", map[string]interface{}{
			"user_count": count,
		})
		return nil
	}

	password := os.Getenv("ADMIN_INITIAL_PASSWORD")
	if password == "" {
		logger.Warn("ADMIN_INITIAL_PASSWORD not set, skipping admin seed", nil)
		return nil
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        getEnvOrDefault("ADMIN_INITIAL_EMAIL", "admin@example.com"),
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         model.RoleAdmin,
	}
	if err := DB.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("Bootstrap admin account created", map[string]interface{}{
		"email": admin.Email,
	})
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
