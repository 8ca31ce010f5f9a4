package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/localnerve/publishdb/internal/models"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port            string
	CacheExpiration time.Duration
	LogDevelopment  bool

	// Database configuration
	DBType            string // sqlite, sqlite-purego, mysql, postgres, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string // file path for sqlite
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBLogLevel        string

	// Archive configuration
	VisibilityRule models.VisibilityRule
}

var supportedDBTypes = map[string]string{
	"sqlite":        "sqlite",
	"sqlite-purego": "sqlite-purego",
	"mysql":         "mysql",
	"mariadb":       "mysql",
	"postgres":      "postgres",
	"postgresql":    "postgres",
	"sqlserver":     "sqlserver",
	"mssql":         "sqlserver",
}

var defaultPorts = map[string]string{
	"mysql":     "3306",
	"postgres":  "5432",
	"sqlserver": "1433",
}

// Load loads configuration from the environment, after merging a .env file
// if one is present. ENV_FILE names an explicit file, which must exist.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	dbType, ok := supportedDBTypes[strings.ToLower(getEnv("DB_TYPE", "sqlite"))]
	if !ok {
		return nil, fmt.Errorf("unsupported DB_TYPE: %s", os.Getenv("DB_TYPE"))
	}

	rule, err := models.ParseVisibilityRule(getEnv("VISIBILITY_RULE", "both"))
	if err != nil {
		return nil, fmt.Errorf("VISIBILITY_RULE: %w", err)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		CacheExpiration:   getEnvAsDuration("CACHE_EXPIRATION", time.Hour),
		LogDevelopment:    getEnvAsBool("LOG_DEVELOPMENT", false),
		DBType:            dbType,
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", defaultPorts[dbType]),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DBLogLevel:        strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		VisibilityRule:    rule,
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if !cfg.IsSQLite() && cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required for %s", cfg.DBType)
	}
	if cfg.DBConnectionLimit < 1 {
		return nil, fmt.Errorf("DB_CONNECTION_LIMIT must be positive, got %d", cfg.DBConnectionLimit)
	}

	return cfg, nil
}

// IsSQLite reports whether the configured database is a SQLite file.
func (c *Config) IsSQLite() bool {
	return c.DBType == "sqlite" || c.DBType == "sqlite-purego"
}

func loadEnvFile() error {
	if name := os.Getenv("ENV_FILE"); name != "" {
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("failed to load ENV_FILE %s: %w", name, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
