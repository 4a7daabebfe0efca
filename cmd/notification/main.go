package main

import (
	"context"
	"log"
	"time"

	_ "github.com/garagehub/garage_services/docs"
	"github.com/garagehub/garage_services/internal/app"
	"github.com/garagehub/garage_services/internal/config"
)

// @title Notification Service
// @version 1.0
// @description Consumes maintenance events and mails owners and mechanics

// @host localhost:8085
// @BasePath /
func main() {
	// Loading environment
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Create app
	application, err := app.NewNotification(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	if err := application.RunUntilSignal(30 * time.Second); err != nil {
		log.Fatalf("notification service stopped: %v", err)
	}
}
