package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: "/some/path"},
		Admin: AdminConfig{
			Username: "admin",
			Email:    "admin@quotevibe.com",
			Password: "admin123",
		},
		Ledger: LedgerConfig{
			CascadeMode:     CascadeBestEffort,
			RankingStrategy: RankingScan,
			TrendingLimit:   5,
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_LedgerSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"strict cascade", func(c *Config) { c.Ledger.CascadeMode = CascadeStrict }, true},
		{"unknown cascade", func(c *Config) { c.Ledger.CascadeMode = "partial" }, false},
		{"aggregate ranking", func(c *Config) { c.Ledger.RankingStrategy = RankingAggregate }, true},
		{"unknown ranking", func(c *Config) { c.Ledger.RankingStrategy = "cached" }, false},
		{"zero trending limit", func(c *Config) { c.Ledger.TrendingLimit = 0 }, false},
		{"missing admin password", func(c *Config) { c.Admin.Password = "" }, false},
		{"bad log level", func(c *Config) { c.Logger.Level = "verbose" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CASCADE_MODE", "")
	t.Setenv("RANKING_STRATEGY", "")
	t.Setenv("TRENDING_LIMIT", "")
	t.Setenv("DATA_PATH", dir)

	cfg, err := load(flag.NewFlagSet("test", flag.ContinueOnError), []string{
		"-env-file", filepath.Join(dir, "missing.env"),
	})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, dir, cfg.Data.BasePath)
	assert.Equal(t, CascadeBestEffort, cfg.Ledger.CascadeMode)
	assert.Equal(t, RankingScan, cfg.Ledger.RankingStrategy)
	assert.Equal(t, 5, cfg.Ledger.TrendingLimit)
	assert.Equal(t, 720*time.Hour, cfg.Auth.AccessTokenDuration)
	assert.False(t, cfg.StrictCascade())
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV", "staging")
	t.Setenv("CASCADE_MODE", CascadeBestEffort)
	t.Setenv("DATA_PATH", dir)

	cfg, err := load(flag.NewFlagSet("test", flag.ContinueOnError), []string{
		"-env", "production",
		"-cascade-mode", CascadeStrict,
		"-env-file", filepath.Join(dir, "missing.env"),
	})
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.True(t, cfg.StrictCascade())
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("TRENDING_LIMIT=7\nRANKING_STRATEGY=aggregate\n"), 0o600))

	t.Setenv("DATA_PATH", dir)
	t.Setenv("ENV", "")
	// Ensure the keys come from the file; godotenv does not override set variables.
	os.Unsetenv("TRENDING_LIMIT")
	os.Unsetenv("RANKING_STRATEGY")
	t.Cleanup(func() {
		os.Unsetenv("TRENDING_LIMIT")
		os.Unsetenv("RANKING_STRATEGY")
	})

	cfg, err := load(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-env-file", envPath})
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Ledger.TrendingLimit)
	assert.Equal(t, RankingAggregate, cfg.Ledger.RankingStrategy)
}

func TestLoad_InvalidDuration(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_PATH", dir)
	t.Setenv("ACCESS_TOKEN_DURATION", "forever")

	_, err := load(flag.NewFlagSet("test", flag.ContinueOnError), []string{
		"-env-file", filepath.Join(dir, "missing.env"),
	})
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	got, err := expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	got, err = expandPath("~/quotes", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "quotes"), got)

	got, err = expandPath("/tmp/../tmp/data", "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/data", got)
}
