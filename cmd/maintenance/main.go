package main

import (
	"context"
	"log"
	"time"

	_ "github.com/garagehub/garage_services/docs"
	"github.com/garagehub/garage_services/internal/app"
	"github.com/garagehub/garage_services/internal/config"

	_ "github.com/lib/pq"
)

// @title Maintenance Service API
// @version 1.0
// @description Maintenance scheduling and status workflow

// @host localhost:8083
// @BasePath /
func main() {
	// Loading environment
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Create app
	application, err := app.NewMaintenance(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	if err := application.RunUntilSignal(30 * time.Second); err != nil {
		log.Fatalf("maintenance service stopped: %v", err)
	}
}
