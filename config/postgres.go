package config

import (
	"errors"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wearly/supportbot/internal/models"
)

func NewPostgres() (*gorm.DB, error) {
	uri := os.Getenv("POSTGRES_URI")
	if uri == "" {
		return nil, errors.New("POSTGRES_URI environment variable is not set")
	}
	db, err := gorm.Open(postgres.Open(uri), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection Pooling settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// Migrate creates or updates every table the service reads and writes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ChatUser{},
		&models.Conversation{},
		&models.Message{},
		&models.DistributionCenter{},
		&models.Product{},
		&models.StoreUser{},
		&models.Order{},
		&models.OrderItem{},
		&models.InventoryItem{},
	)
}
