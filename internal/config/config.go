// Package config loads trax settings from an optional YAML file,
// TRAX_-prefixed environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/alexanderramin/trax/internal/domain"
	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendSheets = "sheets"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
)

// DefaultUser matches the worksheet a fresh spreadsheet starts with.
const DefaultUser = "Default"

// Config holds the complete application configuration
type Config struct {
	User           string         `mapstructure:"user"`
	Store          StoreConfig    `mapstructure:"store"`
	Tracking       TrackingConfig `mapstructure:"tracking"`
	RequestTimeout time.Duration  `mapstructure:"request_timeout"`
	Logging        LoggingConfig  `mapstructure:"logging"`
}

// StoreConfig selects a row store backend and holds the settings of each.
type StoreConfig struct {
	Backend string       `mapstructure:"backend"`
	Sheets  SheetsConfig `mapstructure:"sheets"`
	SQLite  PathConfig   `mapstructure:"sqlite"`
	Bolt    PathConfig   `mapstructure:"bolt"`
	Redis   RedisConfig  `mapstructure:"redis"`
}

type SheetsConfig struct {
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type PathConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// TrackingConfig tunes the interval rules.
type TrackingConfig struct {
	MaxAutoGapHours float64 `mapstructure:"max_auto_gap_hours"`
	Timezone        string  `mapstructure:"timezone"`
}

// LoggingConfig defines logging behavior
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration. An empty configPath looks for config.yaml in
// DefaultDir; a missing file is not an error, an explicit one that cannot be
// read is.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultDir())
	}
	v.SetEnvPrefix("TRAX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// DefaultDir is ~/.trax, or .trax in the working directory when the home
// directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".trax"
	}
	return filepath.Join(home, ".trax")
}

func setDefaults(v *viper.Viper) {
	dir := DefaultDir()

	v.SetDefault("user", DefaultUser)

	v.SetDefault("store.backend", BackendSQLite)
	v.SetDefault("store.sheets.spreadsheet_id", "")
	v.SetDefault("store.sheets.credentials_file", filepath.Join(dir, "credentials.json"))
	v.SetDefault("store.sqlite.path", filepath.Join(dir, "trax.db"))
	v.SetDefault("store.bolt.path", filepath.Join(dir, "trax.bolt"))
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.key_prefix", "trax")

	v.SetDefault("tracking.max_auto_gap_hours", domain.DefaultMaxAutoGapHours)
	v.SetDefault("tracking.timezone", "Local")

	v.SetDefault("request_timeout", "30s")

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
}

// Validate rejects settings no backend or policy can run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.User) == "" {
		return errors.New("user must not be empty")
	}

	switch c.Store.Backend {
	case BackendSQLite:
		if c.Store.SQLite.Path == "" {
			return errors.New("store.sqlite.path is required")
		}
	case BackendBolt:
		if c.Store.Bolt.Path == "" {
			return errors.New("store.bolt.path is required")
		}
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return errors.New("store.redis.addr is required")
		}
	case BackendSheets:
		if c.Store.Sheets.SpreadsheetID == "" {
			return errors.New("store.sheets.spreadsheet_id is required")
		}
		if c.Store.Sheets.CredentialsFile == "" {
			return errors.New("store.sheets.credentials_file is required")
		}
	default:
		return fmt.Errorf("unknown store backend %q (want sheets, sqlite, bolt or redis)", c.Store.Backend)
	}

	if c.Tracking.MaxAutoGapHours <= 0 {
		return fmt.Errorf("tracking.max_auto_gap_hours must be positive, got %v", c.Tracking.MaxAutoGapHours)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown logging.format %q", c.Logging.Format)
	}
	return nil
}

// Location resolves tracking.timezone. "Local" and "" mean the system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Tracking.Timezone == "" || c.Tracking.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Tracking.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown tracking.timezone %q: %w", c.Tracking.Timezone, err)
	}
	return loc, nil
}

// IntervalPolicy builds the track policy from the tracking settings.
func (c *Config) IntervalPolicy() domain.IntervalPolicy {
	return domain.NewIntervalPolicy(c.Tracking.MaxAutoGapHours)
}

// Entries lists the effective settings as key/value pairs for display.
// The redis password is masked.
func (c *Config) Entries() [][2]string {
	password := ""
	if c.Store.Redis.Password != "" {
		password = "********"
	}
	return [][2]string{
		{"user", c.User},
		{"store.backend", c.Store.Backend},
		{"store.sheets.spreadsheet_id", c.Store.Sheets.SpreadsheetID},
		{"store.sheets.credentials_file", c.Store.Sheets.CredentialsFile},
		{"store.sqlite.path", c.Store.SQLite.Path},
		{"store.bolt.path", c.Store.Bolt.Path},
		{"store.redis.addr", c.Store.Redis.Addr},
		{"store.redis.password", password},
		{"store.redis.db", fmt.Sprint(c.Store.Redis.DB)},
		{"store.redis.key_prefix", c.Store.Redis.KeyPrefix},
		{"tracking.max_auto_gap_hours", fmt.Sprint(c.Tracking.MaxAutoGapHours)},
		{"tracking.timezone", c.Tracking.Timezone},
		{"request_timeout", c.RequestTimeout.String()},
		{"logging.level", c.Logging.Level},
		{"logging.format", c.Logging.Format},
	}
}
