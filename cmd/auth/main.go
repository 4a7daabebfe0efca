package main

import (
	"context"
	"log"
	"time"

	_ "github.com/garagehub/garage_services/docs"
	"github.com/garagehub/garage_services/internal/app"
	"github.com/garagehub/garage_services/internal/config"
)

// @title Auth Service API
// @version 1.0
// @description Login, signup, logout and token verification

// @host localhost:8084
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
	application, err := app.NewAuth(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	if err := application.RunUntilSignal(30 * time.Second); err != nil {
		log.Fatalf("auth service stopped: %v", err)
	}
}
