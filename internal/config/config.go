// Package config holds the application configuration, loaded from a YAML
// file and SOLAR_* environment variables via Viper.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	instance *Config
	once     sync.Once
)

// Config is the root configuration structure for the entire application.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Commons  CommonsConfig  `mapstructure:"commons"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" json:"level" yaml:"level"`
	Format      string `mapstructure:"format" json:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" json:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" json:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" json:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" json:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" json:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" json:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" json:"compress" yaml:"compress"`
}

// DatasetConfig locates the query result inputs and the Turtle output, and
// carries the base namespace under which all entity identifiers are minted.
type DatasetConfig struct {
	SourceDir string `mapstructure:"source_dir"`
	Output    string `mapstructure:"output"`
	BaseURL   string `mapstructure:"base_url"`
}

// CommonsConfig holds settings for the Wikimedia Commons API client.
type CommonsConfig struct {
	Endpoint       string        `mapstructure:"endpoint"`
	Timeout        time.Duration `mapstructure:"timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
	ThumbnailWidth int           `mapstructure:"thumbnail_width"`
	ForceHTTP2     bool          `mapstructure:"force_http2"`
}

// PostgresConfig holds settings for the optional graph persistence backend.
type PostgresConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

// SetDefaults registers default values so the tool can run with a minimal
// config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "solar-system-rdf")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)

	v.SetDefault("dataset.source_dir", "data/temp")
	v.SetDefault("dataset.output", "data/planets_and_satellites.ttl")

	v.SetDefault("commons.endpoint", "https://commons.wikimedia.org/w/api.php")
	v.SetDefault("commons.timeout", 30*time.Second)
	v.SetDefault("commons.thumbnail_width", 200)

	v.SetDefault("postgres.enabled", false)
}

// Validate checks the configuration for values the run cannot proceed
// without.
func (c *Config) Validate() error {
	if c.Dataset.BaseURL == "" {
		return fmt.Errorf("dataset.base_url is required (hint: check SOLAR_DATASET_BASE_URL)")
	}
	u, err := url.Parse(c.Dataset.BaseURL)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("dataset.base_url %q must be an absolute URL", c.Dataset.BaseURL)
	}
	if !strings.HasSuffix(c.Dataset.BaseURL, "/") {
		return fmt.Errorf("dataset.base_url %q must end with a slash", c.Dataset.BaseURL)
	}
	if c.Dataset.SourceDir == "" {
		return fmt.Errorf("dataset.source_dir is required")
	}
	if c.Dataset.Output == "" {
		return fmt.Errorf("dataset.output is required")
	}
	if c.Commons.ThumbnailWidth <= 0 {
		return fmt.Errorf("commons.thumbnail_width must be positive, got %d", c.Commons.ThumbnailWidth)
	}
	if c.Postgres.Enabled && c.Postgres.URL == "" {
		return fmt.Errorf("postgres.url is required when postgres.enabled is set (hint: check SOLAR_POSTGRES_URL)")
	}
	return nil
}

// Set stores the configuration singleton. Only the first call wins; tests
// reset the package state explicitly.
func Set(cfg *Config) {
	once.Do(func() {
		instance = cfg
	})
}

// Get returns the loaded configuration instance.
func Get() *Config {
	if instance == nil {
		panic("Configuration not initialized. Call config.Set() in the root command.")
	}
	return instance
}
