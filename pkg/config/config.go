package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the profile resolution engine.
type Config struct {
	// Platform holds remote platform request settings
	Platform PlatformConfig `yaml:"platform" json:"platform"`

	// RateLimit holds remote call budget settings
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Retry holds caller-level retry settings (whole resolve/list calls)
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// Download holds media download pipeline settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// PlatformConfig holds the headers and timeouts the remote platform expects
// from an anonymous web client.
type PlatformConfig struct {
	UserAgent string `yaml:"user_agent" json:"user_agent"`
	AppID     string `yaml:"app_id" json:"app_id"`

	// ContentTimeout bounds profile/content calls, MediaTimeout bounds
	// media byte-stream downloads.
	ContentTimeout time.Duration `yaml:"content_timeout" json:"content_timeout"`
	MediaTimeout   time.Duration `yaml:"media_timeout" json:"media_timeout"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" json:"requests_per_minute"`
	BurstSize         int `yaml:"burst_size" json:"burst_size"`
}

// RetryConfig holds whole-call retry configuration. Individual strategies are
// never retried; a failed resolve or list call may be repeated from the top.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled" json:"enabled"`
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay" json:"base_delay"`
	MaxDelay    time.Duration `yaml:"max_delay" json:"max_delay"`
}

// DownloadConfig holds media download pipeline settings.
type DownloadConfig struct {
	Folder              string `yaml:"folder" json:"folder"`
	ChunkSize           int    `yaml:"chunk_size" json:"chunk_size"`
	ConcurrentDownloads int    `yaml:"concurrent_downloads" json:"concurrent_downloads"`
	MaxFileSize         int64  `yaml:"max_file_size" json:"max_file_size"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Platform: PlatformConfig{
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			AppID:          "936619743392459",
			ContentTimeout: 15 * time.Second,
			MediaTimeout:   30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
			BurstSize:         10,
		},
		Retry: RetryConfig{
			Enabled:     false,
			MaxAttempts: 3,
			BaseDelay:   2 * time.Second,
			MaxDelay:    30 * time.Second,
		},
		Download: DownloadConfig{
			Folder:              "downloads",
			ChunkSize:           8192,
			ConcurrentDownloads: 3,
			MaxFileSize:         500 * 1024 * 1024,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration overrides from environment variables.
func (c *Config) LoadFromEnv() error {
	if ua := os.Getenv("IGSPYGLASS_USER_AGENT"); ua != "" {
		c.Platform.UserAgent = ua
	}
	if appID := os.Getenv("IGSPYGLASS_APP_ID"); appID != "" {
		c.Platform.AppID = appID
	}
	if rpm := os.Getenv("IGSPYGLASS_REQUESTS_PER_MINUTE"); rpm != "" {
		var val int
		fmt.Sscanf(rpm, "%d", &val)
		if val > 0 {
			c.RateLimit.RequestsPerMinute = val
		}
	}
	if folder := os.Getenv("IGSPYGLASS_DOWNLOAD_FOLDER"); folder != "" {
		c.Download.Folder = folder
	}
	if concurrent := os.Getenv("IGSPYGLASS_CONCURRENT_DOWNLOADS"); concurrent != "" {
		var val int
		fmt.Sscanf(concurrent, "%d", &val)
		if val > 0 {
			c.Download.ConcurrentDownloads = val
		}
	}
	if logLevel := os.Getenv("IGSPYGLASS_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // no config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for a config file in standard locations.
func (c *Config) findConfigFile() string {
	locations := []string{
		".igspyglass.yaml",
		".igspyglass.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "igspyglass", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "igspyglass", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".igspyglass.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Platform.UserAgent == "" {
		errs = append(errs, errors.New("user agent is required"))
	}
	if c.Platform.AppID == "" {
		errs = append(errs, errors.New("platform app ID is required"))
	}
	if c.Platform.ContentTimeout <= 0 {
		errs = append(errs, errors.New("content timeout must be positive"))
	}
	if c.Platform.MediaTimeout <= 0 {
		errs = append(errs, errors.New("media timeout must be positive"))
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}
	if c.RateLimit.BurstSize <= 0 {
		errs = append(errs, errors.New("burst size must be positive"))
	}

	if c.Retry.MaxAttempts < 0 {
		errs = append(errs, errors.New("max retry attempts cannot be negative"))
	}

	if c.Download.Folder == "" {
		errs = append(errs, errors.New("download folder is required"))
	}
	if c.Download.ChunkSize <= 0 {
		errs = append(errs, errors.New("chunk size must be positive"))
	}
	if c.Download.ConcurrentDownloads <= 0 {
		errs = append(errs, errors.New("concurrent downloads must be positive"))
	}
	if c.Download.ConcurrentDownloads > 10 {
		errs = append(errs, errors.New("concurrent downloads should not exceed 10"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: environment variables > .env file > config file > defaults.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".igspyglass.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
