// Package config loads server configuration from flags, environment variables and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cascade modes for admin user deletion.
const (
	CascadeBestEffort = "best-effort"
	CascadeStrict     = "strict"
)

// Ranking strategies.
const (
	RankingScan      = "scan"
	RankingAggregate = "aggregate"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Data      DataConfig
	Server    ServerConfig
	Auth      AuthConfig
	Admin     AdminConfig
	Ledger    LedgerConfig
	RateLimit RateLimitConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds on-disk storage configuration.
// The sqlite database, notification feed, search index and auth key all live under BasePath.
type DataConfig struct {
	BasePath string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// Hex-encoded PASETO v4 symmetric key. Filled at startup by auth.LoadOrGenerateKey.
	AccessTokenKey      string
	AccessTokenDuration time.Duration
}

// AdminConfig describes the privileged account guaranteed to exist after startup.
type AdminConfig struct {
	Username string
	Email    string
	Password string
}

// LedgerConfig tunes the counter ledger and the aggregations that read it.
type LedgerConfig struct {
	// CascadeMode is best-effort (leave counters on related entities untouched)
	// or strict (repair them) when an admin deletes a user.
	CascadeMode string
	// RankingStrategy is scan (one query per user) or aggregate (single GROUP BY pass).
	RankingStrategy string
	// TrendingLimit is the top-N size for trending lists.
	TrendingLimit int
	// ReconcileInterval is how often stored counters are recomputed from
	// relation rows. Zero disables the background job.
	ReconcileInterval time.Duration
}

// RateLimitConfig holds per-minute request budgets.
type RateLimitConfig struct {
	EngagementPerMinute int
	AuthPerMinute       int
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	return load(flag.CommandLine, os.Args[1:])
}

func load(fs *flag.FlagSet, args []string) (*Config, error) {
	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := fs.String("data-path", "", "Base path for persistent data")
	serverPort := fs.String("port", "", "Server port (default: 8080)")
	accessTokenDuration := fs.String("access-token-duration", "", "Access token lifetime (e.g., 720h)")
	cascadeMode := fs.String("cascade-mode", "", "User deletion cascade: best-effort or strict")
	rankingStrategy := fs.String("ranking-strategy", "", "Ranking computation: scan or aggregate")
	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Missing .env is fine. godotenv never overrides variables that are already set.
	_ = godotenv.Load(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Server: ServerConfig{
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
		Admin: AdminConfig{
			Username: getConfigValue("", "ADMIN_USERNAME", "admin"),
			Email:    getConfigValue("", "ADMIN_EMAIL", "admin@quotevibe.com"),
			Password: getConfigValue("", "ADMIN_PASSWORD", "admin123"),
		},
		Ledger: LedgerConfig{
			CascadeMode:     getConfigValue(*cascadeMode, "CASCADE_MODE", CascadeBestEffort),
			RankingStrategy: getConfigValue(*rankingStrategy, "RANKING_STRATEGY", RankingScan),
			TrendingLimit:   getIntConfigValue("", "TRENDING_LIMIT", 5),
		},
		RateLimit: RateLimitConfig{
			EngagementPerMinute: getIntConfigValue("", "ENGAGEMENT_RATE_PER_MINUTE", 120),
			AuthPerMinute:       getIntConfigValue("", "AUTH_RATE_PER_MINUTE", 20),
		},
	}

	var err error
	if cfg.Auth.AccessTokenDuration, err = getDurationConfigValue(*accessTokenDuration, "ACCESS_TOKEN_DURATION", "720h"); err != nil {
		return nil, err
	}
	if cfg.Ledger.ReconcileInterval, err = getDurationConfigValue("", "RECONCILE_INTERVAL", "1h"); err != nil {
		return nil, err
	}
	if cfg.Server.ReadTimeout, err = getDurationConfigValue("", "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = getDurationConfigValue("", "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = getDurationConfigValue("", "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "staging", "production":
	case "":
		return errors.New("ENV is required")
	default:
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	switch c.Ledger.CascadeMode {
	case CascadeBestEffort, CascadeStrict:
	default:
		return fmt.Errorf("invalid cascade mode: %s (must be %s or %s)", c.Ledger.CascadeMode, CascadeBestEffort, CascadeStrict)
	}

	switch c.Ledger.RankingStrategy {
	case RankingScan, RankingAggregate:
	default:
		return fmt.Errorf("invalid ranking strategy: %s (must be %s or %s)", c.Ledger.RankingStrategy, RankingScan, RankingAggregate)
	}

	if c.Ledger.TrendingLimit <= 0 {
		return errors.New("trending limit must be positive")
	}

	if c.Admin.Username == "" || c.Admin.Email == "" || c.Admin.Password == "" {
		return errors.New("admin username, email and password are required")
	}

	return nil
}

// StrictCascade reports whether user deletion repairs counters on related entities.
func (c *Config) StrictCascade() bool {
	return c.Ledger.CascadeMode == CascadeStrict
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is returned unchanged.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "QuoteVibe", "data")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
// Unparseable values fall back to the default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strValue)
	if err != nil {
		return defaultValue
	}
	return result
}

func getDurationConfigValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	strValue := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), strValue, err)
	}
	return d, nil
}
