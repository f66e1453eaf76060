package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dmateos/tagsync/internal/utils"
)

const (
	// ConfigFileName is the name of the config file
	ConfigFileName = "config.json"
	// EnvPrefix is the prefix for environment variables
	EnvPrefix = "TAGSYNC_"
)

// Config holds application configuration. The sync engine receives its
// values through an explicit structure at construction; nothing reads
// process-wide state.
type Config struct {
	// DefaultProfile is the default authentication profile to use
	DefaultProfile string `json:"defaultProfile"`

	// RootFolderID is the Drive folder mirroring the local image root
	RootFolderID string `json:"rootFolderId"`

	// LocalDir is the local directory to enumerate for images
	LocalDir string `json:"localDir"`

	// MaxRetries is the maximum number of retries for API calls
	MaxRetries int `json:"maxRetries"`

	// RetryBaseDelay is the base delay for exponential backoff in milliseconds
	RetryBaseDelay int `json:"retryBaseDelay"`

	// Concurrency bounds in-flight updates during batch execution
	Concurrency int `json:"concurrency"`

	// CacheTTL is the folder-prefix cache TTL in seconds; 0 disables caching
	CacheTTL int `json:"cacheTTL"`

	// LogLevel sets the logging verbosity (quiet, normal, verbose, debug)
	LogLevel string `json:"logLevel"`

	// ColorOutput enables color in console logging
	ColorOutput bool `json:"colorOutput"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultProfile: "default",
		LocalDir:       "images",
		MaxRetries:     utils.DefaultMaxRetries,
		RetryBaseDelay: utils.DefaultRetryDelayMs,
		Concurrency:    utils.DefaultBatchConcurrency,
		CacheTTL:       utils.DefaultCacheTTLSeconds,
		LogLevel:       "normal",
		ColorOutput:    true,
	}
}

// Load loads configuration with precedence: CLI flags > env vars > config file > defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.loadFromFile(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromFile() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv(EnvPrefix + "DEFAULT_PROFILE"); v != "" {
		c.DefaultProfile = v
	}
	if v := os.Getenv(EnvPrefix + "ROOT_FOLDER_ID"); v != "" {
		c.RootFolderID = v
	}
	if v := os.Getenv(EnvPrefix + "LOCAL_DIR"); v != "" {
		c.LocalDir = v
	}
	if v := os.Getenv(EnvPrefix + "MAX_RETRIES"); v != "" {
		if retries, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = retries
		}
	}
	if v := os.Getenv(EnvPrefix + "RETRY_BASE_DELAY"); v != "" {
		if delay, err := strconv.Atoi(v); err == nil {
			c.RetryBaseDelay = delay
		}
	}
	if v := os.Getenv(EnvPrefix + "CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Concurrency = n
		}
	}
	if v := os.Getenv(EnvPrefix + "CACHE_TTL"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil {
			c.CacheTTL = ttl
		}
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvPrefix + "COLOR_OUTPUT"); v != "" {
		c.ColorOutput = parseBool(v)
	}
}

// Save saves the configuration to the config file
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("max retries must be between 0 and 10, got: %d", c.MaxRetries)
	}

	if c.RetryBaseDelay < 100 || c.RetryBaseDelay > 60000 {
		return fmt.Errorf("retry base delay must be between 100ms and 60000ms, got: %d", c.RetryBaseDelay)
	}

	if c.Concurrency < 1 || c.Concurrency > 50 {
		return fmt.Errorf("concurrency must be between 1 and 50, got: %d", c.Concurrency)
	}

	if c.CacheTTL < 0 {
		return fmt.Errorf("cache TTL must be non-negative, got: %d", c.CacheTTL)
	}

	validLogLevels := []string{"quiet", "normal", "verbose", "debug"}
	isValid := false
	for _, level := range validLogLevels {
		if c.LogLevel == level {
			isValid = true
			break
		}
	}
	if !isValid {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	return nil
}

// GetCacheTTL returns the cache TTL as a duration
func (c *Config) GetCacheTTL() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvPrefix + "CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "tagsync"), nil
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
