package config

import (
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Logger: LoggerConfig{Level: "info", Format: "console"},
		Dataset: DatasetConfig{
			SourceDir: "data/temp",
			Output:    "data/planets_and_satellites.ttl",
			BaseURL:   "https://example.org/solar/",
		},
		Commons: CommonsConfig{
			Endpoint:       "https://commons.wikimedia.org/w/api.php",
			Timeout:        30 * time.Second,
			ThumbnailWidth: 200,
		},
	}
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "solar-system-rdf", cfg.Logger.ServiceName)
	assert.Equal(t, "data/temp", cfg.Dataset.SourceDir)
	assert.Equal(t, "data/planets_and_satellites.ttl", cfg.Dataset.Output)
	assert.Equal(t, "https://commons.wikimedia.org/w/api.php", cfg.Commons.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Commons.Timeout)
	assert.Equal(t, 200, cfg.Commons.ThumbnailWidth)
	assert.False(t, cfg.Postgres.Enabled)

	// The base namespace has no sensible default; it must come from the
	// config file or SOLAR_DATASET_BASE_URL.
	assert.Empty(t, cfg.Dataset.BaseURL)
}

func TestValidate(t *testing.T) {
	t.Run("accepts a complete configuration", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.Dataset.BaseURL = "" },
			wantErr: "dataset.base_url is required",
		},
		{
			name:    "relative base URL",
			mutate:  func(c *Config) { c.Dataset.BaseURL = "solar/" },
			wantErr: "must be an absolute URL",
		},
		{
			name:    "base URL without trailing slash",
			mutate:  func(c *Config) { c.Dataset.BaseURL = "https://example.org/solar" },
			wantErr: "must end with a slash",
		},
		{
			name:    "missing source directory",
			mutate:  func(c *Config) { c.Dataset.SourceDir = "" },
			wantErr: "dataset.source_dir is required",
		},
		{
			name:    "missing output path",
			mutate:  func(c *Config) { c.Dataset.Output = "" },
			wantErr: "dataset.output is required",
		},
		{
			name:    "non-positive thumbnail width",
			mutate:  func(c *Config) { c.Commons.ThumbnailWidth = 0 },
			wantErr: "commons.thumbnail_width must be positive",
		},
		{
			name:    "persistence enabled without a URL",
			mutate:  func(c *Config) { c.Postgres.Enabled = true },
			wantErr: "postgres.url is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func resetSingleton() {
	instance = nil
	once = sync.Once{}
}

func TestSetAndGet(t *testing.T) {
	t.Run("Get panics before Set", func(t *testing.T) {
		resetSingleton()
		defer resetSingleton()
		assert.Panics(t, func() { Get() })
	})

	t.Run("first Set wins", func(t *testing.T) {
		resetSingleton()
		defer resetSingleton()

		first := validConfig()
		second := validConfig()
		second.Logger.Level = "debug"

		Set(first)
		Set(second)
		assert.Same(t, first, Get())
	})
}
