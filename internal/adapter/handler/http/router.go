package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/garagehub/garage_services/internal/config"
	"github.com/garagehub/garage_services/internal/core/ports"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	router *gin.Engine
	server *http.Server
}

// newEngine builds the engine shared by every service: CORS, swagger, metrics and health.
func newEngine(cfg *config.HTTP, logger ports.LoggerPort) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(recoverPanic(logger), requestLogger(logger))

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: cfg.AllowedOrigins != "*",
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func NewMaintenanceRouter(cfg *config.HTTP, logger ports.LoggerPort, handler *MaintenanceHandler) (*Router, error) {
	router := newEngine(cfg, logger)

	router.POST("/", handler.CreateMaintenance)
	router.GET("/", handler.ListMaintenances)
	router.GET("/mechanics", handler.ListMechanics)
	router.GET("/:id", handler.GetMaintenance)
	router.PATCH("/:id/status", handler.UpdateStatus)
	router.DELETE("/:id", handler.DeleteMaintenance)

	return newRouter(router), nil
}

func NewUserRouter(cfg *config.HTTP, logger ports.LoggerPort, handler *UserHandler) (*Router, error) {
	router := newEngine(cfg, logger)

	router.POST("/", handler.CreateUser)
	router.GET("/", handler.ListUsers)
	router.POST("/credentials/verify", handler.VerifyCredentials)
	router.GET("/:identifier", handler.GetUser)
	router.PUT("/:id", handler.UpdateUser)
	router.DELETE("/:id", handler.DeleteUser)

	return newRouter(router), nil
}

func NewVehicleRouter(cfg *config.HTTP, logger ports.LoggerPort, handler *VehicleHandler) (*Router, error) {
	router := newEngine(cfg, logger)

	router.POST("/", handler.CreateVehicle)
	router.GET("/", handler.ListVehicles)
	router.GET("/:id", handler.GetVehicle)
	router.PUT("/:id", handler.UpdateVehicle)
	router.DELETE("/:id", handler.DeleteVehicle)

	return newRouter(router), nil
}

func NewAuthRouter(cfg *config.HTTP, logger ports.LoggerPort, handler *AuthHandler) (*Router, error) {
	router := newEngine(cfg, logger)

	router.POST("/login", handler.Login)
	router.POST("/signup", handler.Signup)
	router.POST("/logout", handler.Logout)
	router.GET("/verify", handler.Verify)

	return newRouter(router), nil
}

// NewHealthRouter serves only health, metrics and swagger, for workers without an API.
func NewHealthRouter(cfg *config.HTTP, logger ports.LoggerPort) *Router {
	return newRouter(newEngine(cfg, logger))
}

// NewGatewayRouter mounts the proxies. auth is nil when the JWT gate is disabled.
func NewGatewayRouter(cfg *config.HTTP, logger ports.LoggerPort, handler *GatewayHandler, auth gin.HandlerFunc) (*Router, error) {
	if len(handler.Routes()) == 0 {
		return nil, errors.New("gateway has no upstream service configured")
	}

	router := newEngine(cfg, logger)
	router.GET("/status", handler.Status)

	proxied := router.Group("")
	if auth != nil {
		proxied.Use(GatewayAuth(auth))
	}
	handler.Register(proxied)

	return newRouter(router), nil
}

func newRouter(engine *gin.Engine) *Router {
	return &Router{
		router: engine,
		server: &http.Server{
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (r *Router) Serve(addr string) error {
	r.server.Addr = addr
	if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}
