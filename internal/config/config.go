// Package config collects the runtime configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is the configuration of the backend.
type Config struct {
	// API_URL is the externally reachable URL of the API
	APIURL string
	Port   string

	// SQLite
	DBPath string

	// PostgreSQL, used when DBHost is set
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Exchange rates
	ExchangeRateAPIURL string
	ExchangeRateAPIKey string

	TransferWizardTimeout time.Duration

	// Events are only published when AMQPURL is set
	AMQPURL      string
	AMQPExchange string
}

// Load reads the configuration from the environment.
//
// If a .env file exists in the working directory, it is loaded first.
// Variables that are already set take precedence over the file.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("Loaded environment from .env")
	}

	return &Config{
		APIURL: os.Getenv("API_URL"),
		Port:   getEnv("PORT", "8080"),

		DBPath: getEnv("DB_PATH", filepath.Join("data", "hearth.db")),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "hearth"),

		ExchangeRateAPIURL: os.Getenv("EXCHANGE_RATE_API_URL"),
		ExchangeRateAPIKey: os.Getenv("EXCHANGE_RATE_API_KEY"),

		TransferWizardTimeout: getEnvDuration("TRANSFER_WIZARD_TIMEOUT", 10*time.Second),

		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "hearth"),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errors []string

	if c.APIURL == "" {
		errors = append(errors, "API_URL must be set")
	} else if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API_URL '%s': must be an absolute URL", c.APIURL))
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.Postgres() {
		if c.DBUser == "" {
			errors = append(errors, "DB_USER must be set when DB_HOST is set")
		}
		if c.DBName == "" {
			errors = append(errors, "DB_NAME must be set when DB_HOST is set")
		}
	} else if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty when using sqlite")
	}

	if c.TransferWizardTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid transfer wizard timeout %v: must be positive", c.TransferWizardTimeout))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Postgres reports whether PostgreSQL is used instead of SQLite.
func (c *Config) Postgres() bool {
	return c.DBHost != ""
}

// PostgresDSN returns the connection string for PostgreSQL.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

// BaseURL returns the parsed API URL. It must only be called after Validate.
func (c *Config) BaseURL() *url.URL {
	u, _ := url.Parse(c.APIURL)
	return u
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid duration, using default")
	}
	return defaultValue
}
