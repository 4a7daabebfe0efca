package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/garagehub/garage_services/internal/adapter/bus"
	"github.com/garagehub/garage_services/internal/adapter/directory"
	"github.com/garagehub/garage_services/internal/adapter/handler/http"
	"github.com/garagehub/garage_services/internal/adapter/mail"
	"github.com/garagehub/garage_services/internal/adapter/memory"
	"github.com/garagehub/garage_services/internal/adapter/postgres"
	"github.com/garagehub/garage_services/internal/adapter/prometheus"
	"github.com/garagehub/garage_services/internal/adapter/redis"
	"github.com/garagehub/garage_services/internal/config"
	"github.com/garagehub/garage_services/internal/core/ports"
	"github.com/garagehub/garage_services/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// NewMaintenance wires the maintenance workflow service.
func NewMaintenance(ctx context.Context, cfg *config.Container) (*App, error) {
	a := newApp("maintenance", cfg)

	if err := a.openDB(ctx); err != nil {
		return a.fail(err)
	}

	eventBus, err := bus.New(cfg.Bus, a.Logger)
	if err != nil {
		return a.fail(fmt.Errorf("failed to connect to event bus: %w", err))
	}
	a.Bus = eventBus

	timeout := cfg.HTTP.ClientTimeoutValue()
	vehicles, err := directory.NewVehicleClient(cfg.Services.VehicleURL, timeout)
	if err != nil {
		return a.fail(err)
	}
	users, err := directory.NewUserClient(cfg.Services.UserURL, timeout)
	if err != nil {
		return a.fail(err)
	}

	// Observability
	metrics := prometheus.NewPrometheusAdapter()

	// Repositories
	maintenanceRepo := postgres.NewMaintenanceRepository(a.DB)

	// Services
	maintenanceService := services.NewMaintenanceService(maintenanceRepo, vehicles, users, eventBus, a.Logger, metrics)

	// HTTP
	maintenanceHandler := http.NewMaintenanceHandler(maintenanceService, a.Logger, metrics)
	router, err := http.NewMaintenanceRouter(cfg.HTTP, a.Logger, maintenanceHandler)
	if err != nil {
		return a.fail(fmt.Errorf("failed to initialize router: %w", err))
	}
	a.HTTPRouter = router

	return a, nil
}

// NewNotification wires the consumer that mails owners and mechanics.
func NewNotification(_ context.Context, cfg *config.Container) (*App, error) {
	a := newApp("notification", cfg)

	eventBus, err := bus.New(cfg.Bus, a.Logger)
	if err != nil {
		return a.fail(fmt.Errorf("failed to connect to event bus: %w", err))
	}
	a.Bus = eventBus

	timeout := cfg.HTTP.ClientTimeoutValue()
	vehicles, err := directory.NewVehicleClient(cfg.Services.VehicleURL, timeout)
	if err != nil {
		return a.fail(err)
	}
	users, err := directory.NewUserClient(cfg.Services.UserURL, timeout)
	if err != nil {
		return a.fail(err)
	}

	var mailer ports.MailerPort
	if cfg.Mail.Enabled() {
		mailer = mail.NewSMTPMailer(cfg.Mail, a.Logger)
	} else {
		a.Logger.Warn("SMTP_HOST not set, emails are only logged", nil)
		mailer = mail.NewLogMailer(a.Logger)
	}

	metrics := prometheus.NewPrometheusAdapter()
	notificationService := services.NewNotificationService(vehicles, users, mailer, a.Logger, metrics)

	a.consume = func(ctx context.Context) error {
		a.Logger.Info("Listening for maintenance events", map[string]interface{}{
			"topic": cfg.Bus.Topic,
			"group": cfg.Bus.Group,
		})
		return eventBus.Subscribe(ctx, notificationService.HandleMessage)
	}
	a.HTTPRouter = http.NewHealthRouter(cfg.HTTP, a.Logger)

	return a, nil
}

// NewUser wires the user directory.
func NewUser(ctx context.Context, cfg *config.Container) (*App, error) {
	a := newApp("user", cfg)

	if _, err := a.connectRedis(ctx, true); err != nil {
		return a.fail(err)
	}
	if err := a.openDB(ctx); err != nil {
		return a.fail(err)
	}

	cacheAdapter := redis.NewRedisAdapter(a.RedisClient)
	metrics := prometheus.NewPrometheusAdapter()

	userRepo := postgres.NewUserRepository(a.DB)
	userService := services.NewUserService(userRepo, a.Logger, validator.New(), cacheAdapter)

	router, err := http.NewUserRouter(cfg.HTTP, a.Logger, http.NewUserHandler(userService, a.Logger, metrics))
	if err != nil {
		return a.fail(fmt.Errorf("failed to initialize router: %w", err))
	}
	a.HTTPRouter = router

	return a, nil
}

// NewVehicle wires the vehicle registry.
func NewVehicle(ctx context.Context, cfg *config.Container) (*App, error) {
	a := newApp("vehicle", cfg)

	if _, err := a.connectRedis(ctx, true); err != nil {
		return a.fail(err)
	}
	if err := a.openDB(ctx); err != nil {
		return a.fail(err)
	}

	owners, err := directory.NewUserClient(cfg.Services.UserURL, cfg.HTTP.ClientTimeoutValue())
	if err != nil {
		return a.fail(err)
	}

	cacheAdapter := redis.NewRedisAdapter(a.RedisClient)
	metrics := prometheus.NewPrometheusAdapter()

	vehicleRepo := postgres.NewVehicleRepository(a.DB)
	vehicleService := services.NewVehicleService(vehicleRepo, owners, a.Logger, validator.New(), cacheAdapter)

	router, err := http.NewVehicleRouter(cfg.HTTP, a.Logger, http.NewVehicleHandler(vehicleService, a.Logger, metrics))
	if err != nil {
		return a.fail(fmt.Errorf("failed to initialize router: %w", err))
	}
	a.HTTPRouter = router

	return a, nil
}

// NewAuth wires the authentication service.
func NewAuth(ctx context.Context, cfg *config.Container) (*App, error) {
	a := newApp("auth", cfg)

	if cfg.Token.Secret == "" {
		return a.fail(errors.New("TOKEN_SECRET is required"))
	}

	revoked, err := a.revocationStore(ctx)
	if err != nil {
		return a.fail(err)
	}

	accounts, err := directory.NewUserClient(cfg.Services.UserURL, cfg.HTTP.ClientTimeoutValue())
	if err != nil {
		return a.fail(err)
	}

	metrics := prometheus.NewPrometheusAdapter()
	tokenService := http.NewJWTTokenService(cfg.Token.Secret, cfg.Token.DurationValue(), a.Logger)
	authService := services.NewAuthService(accounts, tokenService, revoked, a.Logger)

	router, err := http.NewAuthRouter(cfg.HTTP, a.Logger, http.NewAuthHandler(authService, a.Logger, metrics))
	if err != nil {
		return a.fail(fmt.Errorf("failed to initialize router: %w", err))
	}
	a.HTTPRouter = router

	return a, nil
}

// NewGateway wires the reverse proxy in front of every service.
func NewGateway(ctx context.Context, cfg *config.Container) (*App, error) {
	a := newApp("gateway", cfg)

	metrics := prometheus.NewPrometheusAdapter()
	gateway := http.NewGatewayHandler(http.GatewayRoutes(cfg.Services), a.Logger, metrics)

	var auth gin.HandlerFunc
	if cfg.Gateway.AuthEnabled {
		if cfg.Token.Secret == "" {
			return a.fail(errors.New("TOKEN_SECRET is required when GATEWAY_AUTH_ENABLED is set"))
		}
		// Only a shared store sees tokens revoked by the auth service.
		var revoked ports.RevocationStore
		hasRedis, err := a.connectRedis(ctx, false)
		if err != nil {
			return a.fail(err)
		}
		if hasRedis {
			revoked = redis.NewRevocationStore(a.RedisClient)
		}
		tokenService := http.NewJWTTokenService(cfg.Token.Secret, cfg.Token.DurationValue(), a.Logger)
		auth = http.AuthMiddleware(tokenService, revoked, a.Logger)
	}

	router, err := http.NewGatewayRouter(cfg.HTTP, a.Logger, gateway, auth)
	if err != nil {
		return a.fail(fmt.Errorf("failed to initialize router: %w", err))
	}
	a.HTTPRouter = router

	return a, nil
}

// revocationStore prefers Redis so every instance and the gateway share revocations.
func (a *App) revocationStore(ctx context.Context) (ports.RevocationStore, error) {
	hasRedis, err := a.connectRedis(ctx, false)
	if err != nil {
		return nil, err
	}
	if hasRedis {
		return redis.NewRevocationStore(a.RedisClient), nil
	}
	return memory.NewRevocationStore(memory.DefaultMaxEntries, a.Logger), nil
}
