package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Storage  StorageConfig
	Holiday  HolidayConfig
	Backup   BackupConfig
	Geocoder GeocoderConfig
	Admin    AdminConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	FrontendURL string
	// StateBackend is "postgres" or "memory".
	StateBackend string
	PolicyFile   string
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

type HolidayConfig struct {
	SourceURL       string
	SourceFile      string
	FetchTimeout    time.Duration
	RefreshInterval time.Duration
}

type BackupConfig struct {
	Interval time.Duration
}

type GeocoderConfig struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
}

type AdminConfig struct {
	// PINHash is the bcrypt hash of the kiosk admin PIN. Admin routes are
	// closed when it is empty.
	PINHash string
}

const (
	StateBackendPostgres = "postgres"
	StateBackendMemory   = "memory"
)

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded, using environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "ponto"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:         appPort,
		Env:          getEnv("APP_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Timezone:     getEnv("APP_TIMEZONE", "America/Maceio"),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
		StateBackend: strings.ToLower(getEnv("STATE_BACKEND", StateBackendPostgres)),
		PolicyFile:   getEnv("POLICY_FILE", ""),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
	}

	config.Admin = AdminConfig{
		PINHash: getEnv("ADMIN_PIN_HASH", ""),
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", fmt.Sprintf("http://localhost:%d/uploads", appPort)),
	}

	// Holiday source configuration
	fetchTimeout, err := getEnvDuration("HOLIDAY_FETCH_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	refreshInterval, err := getEnvDuration("HOLIDAY_REFRESH_INTERVAL", "24h")
	if err != nil {
		return nil, err
	}

	config.Holiday = HolidayConfig{
		SourceURL:       getEnv("HOLIDAY_SOURCE_URL", ""),
		SourceFile:      getEnv("HOLIDAY_SOURCE_FILE", ""),
		FetchTimeout:    fetchTimeout,
		RefreshInterval: refreshInterval,
	}

	backupInterval, err := getEnvDuration("BACKUP_INTERVAL", "24h")
	if err != nil {
		return nil, err
	}
	config.Backup = BackupConfig{Interval: backupInterval}

	geocoderTimeout, err := getEnvDuration("GEOCODER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	config.Geocoder = GeocoderConfig{
		URL:       getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		UserAgent: getEnv("GEOCODER_USER_AGENT", "ponto-backend-go"),
		Timeout:   geocoderTimeout,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.App.StateBackend {
	case StateBackendPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StateBackendMemory:
	default:
		return fmt.Errorf("STATE_BACKEND must be %q or %q", StateBackendPostgres, StateBackendMemory)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Backup.Interval <= 0 {
		return fmt.Errorf("BACKUP_INTERVAL must be positive")
	}
	if c.Holiday.RefreshInterval <= 0 {
		return fmt.Errorf("HOLIDAY_REFRESH_INTERVAL must be positive")
	}
	return nil
}

// Location returns the timezone used to decide what "today" is.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
