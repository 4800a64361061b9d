package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/lexio-dev/lexio/db"
	"github.com/lexio-dev/lexio/internal/config"
	"github.com/lexio-dev/lexio/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg := config.Load()

	if err := db.ConnectDatabase(cfg.DBBackend, cfg.DBPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if !cfg.AuthEnabled() {
		log.Println("JWT_SECRET not set, token checks are disabled")
	}

	r := router.New(cfg)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
