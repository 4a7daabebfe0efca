package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/garagehub/garage_services/internal/adapter/handler/http"
	"github.com/garagehub/garage_services/internal/adapter/logger"
	"github.com/garagehub/garage_services/internal/config"
	"github.com/garagehub/garage_services/internal/core/ports"

	"github.com/pressly/goose"
	redisClient "github.com/redis/go-redis/v9"
)

// App is one running service: its HTTP router plus whatever infrastructure it opened.
type App struct {
	Name        string
	Config      *config.Container
	Logger      *logger.LoggerAdapter
	DB          *sql.DB
	RedisClient *redisClient.Client
	Bus         ports.EventBus
	HTTPRouter  *http.Router

	// consume is set for services that read the event bus.
	consume func(ctx context.Context) error
	ctx     context.Context
	cancel  context.CancelFunc
	once    sync.Once
}

func newApp(name string, cfg *config.Container) *App {
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app":     cfg.App.Name,
		"service": name,
		"env":     cfg.App.Env,
	})
	ctx, cancel := context.WithCancel(context.Background())
	return &App{Name: name, Config: cfg, Logger: loggerAdapter, ctx: ctx, cancel: cancel}
}

// openDB connects to Postgres and applies the service's goose migrations.
func (a *App) openDB(ctx context.Context) error {
	db, err := sql.Open("postgres", a.Config.DB.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	dir := a.Config.DB.MigrationsDir(a.Name)
	if err := goose.Up(db, dir); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations from %s: %w", dir, err)
	}

	a.DB = db
	return nil
}

// connectRedis returns false without error when Redis is optional and not configured.
func (a *App) connectRedis(ctx context.Context, required bool) (bool, error) {
	if a.Config.Redis.Address == "" {
		if required {
			return false, errors.New("REDIS_ADDRESS is required")
		}
		a.Logger.Warn("Redis not configured, using in-memory fallback", nil)
		return false, nil
	}

	conn := redisClient.NewClient(&redisClient.Options{
		Addr:     a.Config.Redis.Address,
		Password: a.Config.Redis.Password,
		DB:       0,
	})
	if _, err := conn.Ping(ctx).Result(); err != nil {
		conn.Close()
		return false, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	a.RedisClient = conn
	return true, nil
}

// fail releases whatever was opened before a constructor error.
func (a *App) fail(err error) (*App, error) {
	a.Logger.Error("Failed to initialize the application", map[string]interface{}{
		"service": a.Name,
		"error":   err.Error(),
	})
	a.cancel()
	a.closeResources()
	return nil, err
}

// Run starts the consumer, if any, then blocks serving HTTP.
func (a *App) Run() error {
	if a.consume != nil {
		if err := a.consume(a.ctx); err != nil {
			a.Logger.Error("Failed to subscribe to events", map[string]interface{}{
				"error": err.Error(),
				"topic": a.Config.Bus.Topic,
			})
			return err
		}
	}

	listenAddr := fmt.Sprintf("%s:%s", a.Config.HTTP.URL, a.Config.HTTP.Port)
	a.Logger.Info("Starting HTTP server", map[string]interface{}{
		"addr":    listenAddr,
		"service": a.Name,
	})

	if err := a.HTTPRouter.Serve(listenAddr); err != nil {
		a.Logger.Error("HTTP server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// Stop drains the HTTP server and closes every connection.
func (a *App) Stop(ctx context.Context) error {
	a.Logger.Info("Shutting down gracefully...", nil)

	var stopErr error
	if a.HTTPRouter != nil {
		if err := a.HTTPRouter.Shutdown(ctx); err != nil {
			a.Logger.Error("HTTP server shutdown error", map[string]interface{}{
				"error": err.Error(),
			})
			stopErr = err
		}
	}
	a.cancel()
	a.closeResources()

	a.Logger.Info("Application stopped successfully", nil)
	_ = a.Logger.Sync()
	return stopErr
}

func (a *App) closeResources() {
	a.once.Do(func() {
		if a.Bus != nil {
			if err := a.Bus.Close(); err != nil {
				a.Logger.Error("Event bus close error", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
		if a.DB != nil {
			if err := a.DB.Close(); err != nil {
				a.Logger.Error("Database close error", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
		if a.RedisClient != nil {
			if err := a.RedisClient.Close(); err != nil {
				a.Logger.Error("Redis close error", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	})
}

// RunUntilSignal serves until SIGINT or SIGTERM, then stops within shutdownTimeout.
func (a *App) RunUntilSignal(shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-stop:
	case runErr = <-errCh:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
