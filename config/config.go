package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL        string
	Port               string
	GoEnv              string
	SessionSecret      string
	AdminUsername      string
	AdminPasswordHash  string
	MenuSheetURL       string
	CORSAllowedOrigins string
	LogLevel           string
}

var appConfig *Config

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		// If environment-specific file doesn't exist, try .env
		if err := godotenv.Load(); err != nil {
			// In production, environment variables are set directly
			// so it's okay if .env files don't exist
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	config := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", "spice_villa.db"),
		Port:               getEnv("PORT", "8080"),
		GoEnv:              getEnv("GO_ENV", "development"),
		SessionSecret:      getEnv("SESSION_SECRET", ""),
		AdminUsername:      getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		MenuSheetURL:       getEnv("MENU_SHEET_URL", ""),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required (bcrypt hash of the admin password)")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// GetConfig returns the loaded configuration instance
func GetConfig() *Config {
	return appConfig
}

// SetConfig sets the configuration instance (primarily for testing)
func SetConfig(c *Config) {
	appConfig = c
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
