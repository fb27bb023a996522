// Package db provides database connection and management functionality
package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"amazon-analytics/internal/models"
	"amazon-analytics/pkg/config"

	"github.com/sirupsen/logrus"
)

// Setup initializes the PostgreSQL database connection and runs migrations.
// Returns a configured *gorm.DB instance or exits on fatal errors.
func Setup(cfg config.Database) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Auto-migrate database schema for all models
	if err := db.AutoMigrate(
		&models.Product{},          // Product catalog
		&models.PriceHistory{},     // Append-only price observations
		&models.ProductAnalytics{}, // Ingested analytics events
	); err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database schema")
	}

	logrus.Info("Database initialized successfully")
	return db
}
