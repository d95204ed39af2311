package database

import (
	"log"

	"github.com/azurvoyages/tours-api/internal/config"
	"github.com/azurvoyages/tours-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	// SQLite leaves foreign keys off unless asked; the Booking→Tour
	// cascade depends on them.
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath+"?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(&models.User{}, &models.Tour{}, &models.Booking{}, &models.ShuttleSchedule{})
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}
