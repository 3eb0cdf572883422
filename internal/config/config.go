// Package config loads server and CLI settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/htn0810/Bill-Sharing/internal/format"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	// HTTP Server
	Port            string
	ShutdownTimeout time.Duration
	MetricsPath     string

	// Storage
	Store  string
	DBPath string

	// Logging
	LogLevel  string
	LogFormat string

	// Display
	Timezone string

	// AMQP; events are only logged when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string

	// values that could not be parsed at load time
	loadProblems []string
}

// Load reads the given .env files (default ".env"; missing files are fine),
// then builds a Config from the environment. Variables already set in the
// environment win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	shutdownTimeout, err := getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: shutdownTimeout,
		MetricsPath:     getEnv("METRICS_PATH", "/metrics"),

		Store:  getEnv("STORE", StoreSQLite),
		DBPath: getEnv("DB_PATH", "./data/bills.db"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		Timezone: getEnv("TIMEZONE", format.DefaultTimezone),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "billsharing"),
	}
	if err != nil {
		cfg.loadProblems = append(cfg.loadProblems, err.Error())
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Validate validates the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	problems := slices.Clone(c.loadProblems)

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validStores := []string{StoreSQLite, StoreMemory}
	if !slices.Contains(validStores, c.Store) {
		problems = append(problems, fmt.Sprintf("invalid store '%s': must be one of %v", c.Store, validStores))
	}
	if c.Store == StoreSQLite && c.DBPath == "" {
		problems = append(problems, "database path cannot be empty when using sqlite store")
	}

	validFormats := []string{"text", "json"}
	if !slices.Contains(validFormats, strings.ToLower(c.LogFormat)) {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validFormats))
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if !strings.HasPrefix(c.MetricsPath, "/") {
		problems = append(problems, fmt.Sprintf("invalid metrics path '%s': must start with /", c.MetricsPath))
	}

	if c.ShutdownTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration returns defaultValue alongside an error when the variable is
// set but unparsable, so Validate can report it.
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s '%s': must be a duration such as 10s", key, value)
	}
	return d, nil
}
