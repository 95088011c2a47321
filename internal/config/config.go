package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// minSecretLen is the shortest accepted HS256 signing secret
const minSecretLen = 16

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `toml:"server"`

	// Database configuration
	Database DatabaseConfig `toml:"database"`

	// Admin panel and authentication
	Admin AdminConfig `toml:"admin"`

	// Bootstrap seeding
	Seed SeedConfig `toml:"seed"`

	// Bulk upsert configuration
	Import ImportConfig `toml:"import"`

	// Logging configuration
	Log LogConfig `toml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `toml:"port"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	StaticDir       string        `toml:"static_dir"`
	AllowedOrigins  []string      `toml:"allowed_origins"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver       string        `toml:"driver"`
	Path         string        `toml:"path"` // sqlite file path
	URL          string        `toml:"url"`  // postgres connection URL
	MaxOpenConns int           `toml:"max_open_conns"`
	MaxIdleConns int           `toml:"max_idle_conns"`
	MaxLifetime  time.Duration `toml:"max_lifetime"`
}

// AdminConfig controls the admin panel and its credentials
type AdminConfig struct {
	Enabled   bool          `toml:"enabled"`
	Username  string        `toml:"username"`
	Email     string        `toml:"email"`
	Password  string        `toml:"password"`
	JWTSecret string        `toml:"jwt_secret"`
	TokenTTL  time.Duration `toml:"token_ttl"`
}

// SeedConfig controls first-run seeding
type SeedConfig struct {
	Enabled bool `toml:"enabled"`
}

// ImportConfig holds bulk upsert limits
type ImportConfig struct {
	MaxBatchSize int   `toml:"max_batch_size"`
	MaxBodySize  int64 `toml:"max_body_size"` // in bytes
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "pretty"
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "3000",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:       DriverSQLite,
			Path:         "portfolio.db",
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			MaxLifetime:  5 * time.Minute,
		},
		Admin: AdminConfig{
			Enabled:   true,
			Username:  "admin",
			Email:     "shalu@example.com",
			Password:  "admin123",
			JWTSecret: "", // must come from JWT_SECRET or the config file
			TokenTTL:  12 * time.Hour,
		},
		Seed: SeedConfig{
			Enabled: true,
		},
		Import: ImportConfig{
			MaxBatchSize: 5000,
			MaxBodySize:  10 * 1024 * 1024, // 10MB
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from an optional TOML file (CONFIG_FILE),
// an optional .env file and environment variables, in that order.
func Load() (*Config, error) {
	cfg := Default()

	// .env is optional; values already set in the environment win
	_ = godotenv.Load()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.ReadTimeout = getDurationEnv("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getDurationEnv("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.ShutdownTimeout = getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.StaticDir = getEnv("STATIC_DIR", c.Server.StaticDir)
	c.Server.AllowedOrigins = getListEnv("CORS_ALLOWED_ORIGINS", c.Server.AllowedOrigins)

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Database.URL = getEnv("DATABASE_URL", c.Database.URL)
	c.Database.MaxOpenConns = getIntEnv("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = getIntEnv("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.MaxLifetime = getDurationEnv("DB_MAX_LIFETIME", c.Database.MaxLifetime)

	c.Admin.Enabled = getBoolEnv("ADMIN_ENABLED", c.Admin.Enabled)
	c.Admin.Username = getEnv("ADMIN_USERNAME", c.Admin.Username)
	c.Admin.Email = getEnv("ADMIN_EMAIL", c.Admin.Email)
	c.Admin.Password = getEnv("ADMIN_PASSWORD", c.Admin.Password)
	c.Admin.JWTSecret = getEnv("JWT_SECRET", c.Admin.JWTSecret)
	c.Admin.TokenTTL = getDurationEnv("JWT_TTL", c.Admin.TokenTTL)

	c.Seed.Enabled = getBoolEnv("SEED_ENABLED", c.Seed.Enabled)

	c.Import.MaxBatchSize = getIntEnv("IMPORT_MAX_BATCH_SIZE", c.Import.MaxBatchSize)
	c.Import.MaxBodySize = getInt64Env("IMPORT_MAX_BODY_SIZE", c.Import.MaxBodySize)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite3 driver")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.Database.Driver, DriverSQLite, DriverPostgres)
	}
	if c.Admin.Enabled && len(c.Admin.JWTSecret) < minSecretLen {
		return fmt.Errorf("JWT_SECRET must be set to at least %d bytes when the admin panel is enabled", minSecretLen)
	}
	if c.Import.MaxBatchSize <= 0 {
		return fmt.Errorf("IMPORT_MAX_BATCH_SIZE must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
