package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is returned when the Places credential is not configured
var ErrMissingAPIKey = errors.New("missing GOOGLE_API_KEY environment variable")

// Config holds application configuration
type Config struct {
	Env    string
	DB     DBConfig
	Server ServerConfig
	Places PlacesConfig
	Client ClientConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeMemory     DBType = "memory"
)

// DBConfig holds database configuration for the search log
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	if c.Type == DBTypeMemory {
		if c.Name != "" && c.Name != "restaurants" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
		}
		return "file::memory:?cache=shared"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsMemory returns true if using in-memory database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// ServerConfig holds adapter server configuration
type ServerConfig struct {
	Port string
	// PublicBaseURL prefixes photo proxy links handed to clients.
	// Empty means links are relative to the adapter root.
	PublicBaseURL  string
	AllowedOrigins []string
}

// PlacesConfig holds upstream Places API settings
type PlacesConfig struct {
	APIKey        string
	BaseURL       string
	Timeout       time.Duration
	PhotoMaxWidth int
}

// Validate checks that the upstream credential is present
func (c PlacesConfig) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// ClientConfig holds discovery client settings
type ClientConfig struct {
	AdapterURL    string
	DefaultRadius int
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "memory"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeMemory {
		dbType = DBTypeMemory
	}

	origins := getEnvAsSlice("CORS_ALLOWED_ORIGINS")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	config := &Config{
		Env: getEnv("APP_ENV", "development"),
		DB: DBConfig{
			Type:     dbType,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "restaurants"),
			Password: getEnv("DB_PASSWORD", "restaurants_password"),
			Name:     getEnv("DB_NAME", "restaurants"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port:           getEnv("APP_PORT", "3000"),
			PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
			AllowedOrigins: origins,
		},
		Places: PlacesConfig{
			APIKey:        getEnv("GOOGLE_API_KEY", ""),
			BaseURL:       strings.TrimRight(getEnv("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"), "/"),
			Timeout:       time.Duration(getEnvAsInt("PLACES_TIMEOUT_SECONDS", 10)) * time.Second,
			PhotoMaxWidth: getEnvAsInt("PLACES_PHOTO_MAX_WIDTH", 400),
		},
		Client: ClientConfig{
			AdapterURL:    strings.TrimRight(getEnv("ADAPTER_URL", "http://localhost:3000"), "/"),
			DefaultRadius: getEnvAsInt("DEFAULT_RADIUS", 2000),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	var result []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
