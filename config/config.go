// Package config loads the service configuration and builds its logger.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/warp/attendance-payroll/generic"
)

// Config represents application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Log      LogConfig      `mapstructure:"log"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type EngineConfig struct {
	LookupTimeout time.Duration `mapstructure:"lookup_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
	File   string `mapstructure:"file"`   // rotated by lumberjack when set
}

// SeedConfig is applied to an empty directory on first start.
type SeedConfig struct {
	Enabled bool             `mapstructure:"enabled"`
	Workers []map[string]any `mapstructure:"workers"` // worker JSON objects; empty means the default roster
	Bonus1  string           `mapstructure:"bonus1"`
	Bonus2  string           `mapstructure:"bonus2"`
}

// BonusAmounts parses the seed amounts. Empty values are zero.
func (s SeedConfig) BonusAmounts() (generic.BonusAmounts, error) {
	parse := func(field, v string) (decimal.Decimal, error) {
		if strings.TrimSpace(v) == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("seed.%s: %w", field, err)
		}
		return d, nil
	}

	b1, err := parse("bonus1", s.Bonus1)
	if err != nil {
		return generic.BonusAmounts{}, err
	}
	b2, err := parse("bonus2", s.Bonus2)
	if err != nil {
		return generic.BonusAmounts{}, err
	}
	out := generic.BonusAmounts{Bonus1: b1, Bonus2: b2}
	return out, out.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("database.path", "./data/payroll.db")
	v.SetDefault("engine.lookup_timeout", "5s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.bonus1", "0")
	v.SetDefault("seed.bonus2", "0")
}

// Load loads configuration from file, .env and PAYROLL_* environment
// variables, in increasing precedence. A missing config file is not an
// error; an explicitly named one is.
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.payroll-engine")
		v.AddConfigPath("/etc/payroll-engine")
	}

	v.SetEnvPrefix("PAYROLL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Engine.LookupTimeout < 0 {
		return fmt.Errorf("engine.lookup_timeout must not be negative")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be 'console' or 'json', got '%s'", c.Log.Format)
	}
	if _, err := c.Seed.BonusAmounts(); err != nil {
		return err
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
