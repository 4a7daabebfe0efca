package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/joho/godotenv"
)

type (
	Container struct {
		App      *App
		Token    *Token
		DB       *DB
		HTTP     *HTTP
		Redis    *Redis
		Bus      *Bus
		Services *Services
		Mail     *Mail
		Gateway  *Gateway
	}

	App struct {
		Name string
		Env  string
	}

	Token struct {
		Secret   string
		Duration string
	}

	DB struct {
		Host       string
		Port       string
		User       string
		Password   string
		Name       string
		Migrations string
	}

	HTTP struct {
		Env            string
		Port           string
		AllowedOrigins string
		URL            string
		ClientTimeout  string
	}

	Redis struct {
		Address  string
		Password string
	}

	Bus struct {
		Driver   string
		URL      string
		Topic    string
		Group    string
		ClientID string
	}

	Services struct {
		AuthURL        string
		UserURL        string
		VehicleURL     string
		MaintenanceURL string
	}

	Mail struct {
		Host     string
		Port     string
		Username string
		Password string
		From     string
	}

	Gateway struct {
		AuthEnabled bool
	}
)

func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		// .env is optional when the variables come from the environment.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	app := &App{
		Name: os.Getenv("APP_NAME"),
		Env:  os.Getenv("APP_ENV"),
	}

	token := &Token{
		Secret:   os.Getenv("TOKEN_SECRET"),
		Duration: getEnv("TOKEN_DURATION", "1h"),
	}

	db := &DB{
		Host:       os.Getenv("DB_HOST"),
		Port:       getEnv("DB_PORT", "5432"),
		User:       os.Getenv("DB_USER"),
		Password:   os.Getenv("DB_PASSWORD"),
		Name:       os.Getenv("DB_NAME"),
		Migrations: os.Getenv("DB_MIGRATIONS_DIR"),
	}

	http := &HTTP{
		Port:           getEnv("HTTP_PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		URL:            os.Getenv("HTTP_URL"),
		Env:            os.Getenv("APP_ENV"),
		ClientTimeout:  getEnv("HTTP_CLIENT_TIMEOUT", "10s"),
	}

	redis := &Redis{
		Address:  os.Getenv("REDIS_ADDRESS"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	bus := &Bus{
		Driver:   getEnv("BUS_DRIVER", "nats"),
		URL:      getEnv("BUS_URL", "nats://localhost:4222"),
		Topic:    getEnv("BUS_TOPIC", domain.DefaultEventTopic),
		Group:    getEnv("BUS_GROUP", "notification-service"),
		ClientID: os.Getenv("BUS_CLIENT_ID"),
	}

	services := &Services{
		AuthURL:        os.Getenv("AUTH_SERVICE_URL"),
		UserURL:        os.Getenv("USER_SERVICE_URL"),
		VehicleURL:     os.Getenv("VEHICLE_SERVICE_URL"),
		MaintenanceURL: os.Getenv("MAINTENANCE_SERVICE_URL"),
	}

	mail := &Mail{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     getEnv("SMTP_PORT", "587"),
		Username: os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     getEnv("SMTP_FROM", "maintenance@garage.local"),
	}

	gateway := &Gateway{
		AuthEnabled: getBool("GATEWAY_AUTH_ENABLED", false),
	}

	return &Container{
		App:      app,
		Token:    token,
		DB:       db,
		HTTP:     http,
		Redis:    redis,
		Bus:      bus,
		Services: services,
		Mail:     mail,
		Gateway:  gateway,
	}, nil
}

func (t *Token) DurationValue() time.Duration {
	return parseDuration(t.Duration, time.Hour)
}

func (h *HTTP) ClientTimeoutValue() time.Duration {
	return parseDuration(h.ClientTimeout, 10*time.Second)
}

func (d *DB) DSN() string {
	return "host=" + d.Host + " port=" + d.Port + " user=" + d.User +
		" password=" + d.Password + " dbname=" + d.Name + " sslmode=disable"
}

// MigrationsDir falls back to the per-service directory shipped in the repo.
func (d *DB) MigrationsDir(service string) string {
	if d.Migrations != "" {
		return d.Migrations
	}
	return "./internal/adapter/postgres/migrations/" + service
}

func (m *Mail) Enabled() bool {
	return m.Host != ""
}

func (m *Mail) PortInt() int {
	port, err := strconv.Atoi(m.Port)
	if err != nil {
		return 587
	}
	return port
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
