package main

import (
	"fmt"
	"log/slog"
	"os"

	"movienight/config"
	"movienight/models"
	"movienight/routes"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment as-is")
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	r := routes.SetupRouter(db)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := fmt.Sprintf(":%s", port)
	slog.Info("server running", "addr", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Host{}, &models.RefreshToken{}, &models.Event{},
		&models.Film{}, &models.LineupEntry{}, &models.Invitation{}, &models.FeatureRequest{})
}
