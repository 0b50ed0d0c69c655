package db

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"theater-booking-backend/config"
	"theater-booking-backend/internal/model"
)

// Init opens the run-journal database and runs migrations. The default DSN
// is an in-memory sqlite database: the journal deliberately does not survive
// a restart.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&model.BookingRun{},
		&model.RunTransition{},
		&model.PushSubscription{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	return db, nil
}
