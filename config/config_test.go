package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/attendance-payroll/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// GIVEN: a working directory with no config file
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "./data/payroll.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.Engine.LookupTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, ":8080", cfg.Server.Addr())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  allowed_origins: ["http://localhost:3000"]
database:
  path: /tmp/payroll.db
engine:
  lookup_timeout: 250ms
log:
  level: debug
  format: json
seed:
  enabled: false
  bonus1: "1000"
  bonus2: "500.50"
  workers:
    - name: Pablo
      hourly_rate: 4850
      scheduled_days: [Lu, Ma]
      scheduled_start: "08:00"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "/tmp/payroll.db", cfg.Database.Path)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.LookupTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Seed.Enabled)
	require.Len(t, cfg.Seed.Workers, 1)
	assert.Equal(t, "Pablo", cfg.Seed.Workers[0]["name"])

	b, err := cfg.Seed.BonusAmounts()
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(b.Bonus1))
	assert.True(t, decimal.RequireFromString("500.50").Equal(b.Bonus2))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("PAYROLL_SERVER_PORT", "7070")
	t.Setenv("PAYROLL_LOG_LEVEL", "warn")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			Server:   config.ServerConfig{Port: 8080},
			Database: config.DatabaseConfig{Path: "x.db"},
			Log:      config.LogConfig{Level: "info", Format: "json"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"port zero", func(c *config.Config) { c.Server.Port = 0 }},
		{"port too big", func(c *config.Config) { c.Server.Port = 70000 }},
		{"no database", func(c *config.Config) { c.Database.Path = "" }},
		{"negative timeout", func(c *config.Config) { c.Engine.LookupTimeout = -time.Second }},
		{"bad format", func(c *config.Config) { c.Log.Format = "xml" }},
		{"bad bonus", func(c *config.Config) { c.Seed.Bonus1 = "lots" }},
		{"negative bonus", func(c *config.Config) { c.Seed.Bonus2 = "-5" }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		l, err := config.NewLogger(config.LogConfig{Level: "debug", Format: format})
		require.NoError(t, err, format)
		assert.NotNil(t, l)
	}

	_, err := config.NewLogger(config.LogConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payroll.log")

	l, err := config.NewLogger(config.LogConfig{Level: "info", Format: "console", File: path})
	require.NoError(t, err)
	l.Info("hello")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"timestamp"`)
}
