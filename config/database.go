package config

import (
	"errors"
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDatabase opens the process-wide database handle from the DB_URL
// environment variable. The handle is passed down explicitly; nothing in the
// application reads it from a global.
func ConnectDatabase() (*gorm.DB, error) {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		return nil, errors.New("DB_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	slog.Info("connected to database")
	return db, nil
}
