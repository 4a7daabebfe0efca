package main

import (
	"context"
	"log"
	"time"

	_ "github.com/garagehub/garage_services/docs"
	"github.com/garagehub/garage_services/internal/app"
	"github.com/garagehub/garage_services/internal/config"
)

// @title Garage Services API
// @version 1.0
// @description Public entry point proxying every service

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Loading environment
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Create app
	application, err := app.NewGateway(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	if err := application.RunUntilSignal(30 * time.Second); err != nil {
		log.Fatalf("gateway service stopped: %v", err)
	}
}
