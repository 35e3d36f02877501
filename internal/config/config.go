// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// Config holds the application configuration.
type Config struct {
	ActivityLogPath       string
	DatabasePath          string
	LogFile               string
	LogLevel              string
	WatchDebounce         time.Duration
	Notifications         bool
	SessionGap            time.Duration
	MinTransitionDuration time.Duration
	MinTransitions        int
	SequenceLength        int
	DayFilter             models.DayFilter
	RangeDays             int
}

// Default values
const (
	defaultWatchDebounce         = 100 * time.Millisecond
	defaultSessionGap            = 10 * time.Minute
	defaultMinTransitionDuration = 3 * time.Second
	defaultMinTransitions        = 10
	defaultSequenceLength        = 2
	defaultRangeDays             = 30
	defaultLogLevel              = "info"
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// First .env found wins; real env vars still take precedence.
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	dayFilter, err := models.ParseDayFilter(getEnvString("DAY_FILTER", string(models.DayFilterAll)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse DAY_FILTER: %w", err)
	}

	cfg := &Config{
		ActivityLogPath:       getEnvString("ACTIVITY_LOG_PATH", ""),
		DatabasePath:          getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		LogFile:               getEnvString("LOG_FILE", getDefaultLogPath()),
		LogLevel:              getEnvString("LOG_LEVEL", defaultLogLevel),
		WatchDebounce:         getEnvDuration("WATCH_DEBOUNCE", defaultWatchDebounce),
		Notifications:         getEnvBool("NOTIFICATIONS", true),
		SessionGap:            getEnvDuration("SESSION_GAP", defaultSessionGap),
		MinTransitionDuration: getEnvDuration("MIN_TRANSITION_DURATION", defaultMinTransitionDuration),
		MinTransitions:        getEnvInt("MIN_TRANSITIONS", defaultMinTransitions),
		SequenceLength:        getEnvInt("SEQUENCE_LENGTH", defaultSequenceLength),
		DayFilter:             dayFilter,
		RangeDays:             getEnvInt("RANGE_DAYS", defaultRangeDays),
	}

	if cfg.SequenceLength < 2 || cfg.SequenceLength > 5 {
		return nil, fmt.Errorf("SEQUENCE_LENGTH must be between 2 and 5, got %d", cfg.SequenceLength)
	}

	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnsureDirs creates the parent directories of the database and log file.
func (c *Config) EnsureDirs() error {
	if err := ensureDir(filepath.Dir(c.DatabasePath)); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	if c.LogFile != "" {
		if err := ensureDir(filepath.Dir(c.LogFile)); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	return nil
}

// TimeRange maps RangeDays onto the selectable ranges.
func (c *Config) TimeRange() models.TimeRange {
	return models.TimeRangeForDays(c.RangeDays)
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "activity-insights", ".env"),
			filepath.Join(home, ".activity-insights", ".env"),
		)
	}

	// Parent directory (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(cwd), ".env"))
	}

	return paths
}

func configDir() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, ".config", "activity-insights"), true
}

// getDefaultDatabasePath returns the default path for the SQLite database.
func getDefaultDatabasePath() string {
	dir, ok := configDir()
	if !ok {
		return "insights.db"
	}
	return filepath.Join(dir, "insights.db")
}

// getDefaultLogPath returns the default path for the log file.
func getDefaultLogPath() string {
	dir, ok := configDir()
	if !ok {
		return "ait.log"
	}
	return filepath.Join(dir, "ait.log")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool accepts anything strconv.ParseBool does, plus yes/no and on/off.
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "":
		return defaultValue
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
