// Package config loads configuration for the course report tool from
// environment variables and an optional YAML file. File values are the
// base; environment variables override them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig      `yaml:"app"`
	GitHub   GitHubConfig   `yaml:"github"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name  string `yaml:"name"`
	Debug bool   `yaml:"debug"`

	// DisplayTimezone is used only when rendering the report; the pipeline
	// itself works in UTC.
	DisplayTimezone string `yaml:"display_timezone"`

	// LogLevel: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// GitHubConfig holds the source repository coordinates and fetch settings.
type GitHubConfig struct {
	Owner  string `yaml:"owner"`
	Repo   string `yaml:"repo"`
	Branch string `yaml:"branch"`

	// Token is an optional bearer token for the API rate limit.
	Token string `yaml:"token"`

	APIBaseURL string        `yaml:"api_base_url"`
	RawBaseURL string        `yaml:"raw_base_url"`
	Timeout    time.Duration `yaml:"timeout"`

	MaxRetries     int           `yaml:"max_retries"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`
	RetryMaxDelay  time.Duration `yaml:"retry_max_delay"`
}

// RedisConfig holds the document cache settings. The cache is optional;
// Disabled (or a failed connection) means every run fetches fresh.
type RedisConfig struct {
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
	Disabled bool          `yaml:"disabled"`
}

// DatabaseConfig holds the report archive settings. An empty URL disables
// archiving.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RepoSlug returns the owner/name coordinate of the source repository.
func (c GitHubConfig) RepoSlug() string {
	return c.Owner + "/" + c.Repo
}

// Load builds the configuration: defaults, then the YAML file named by
// REPORT_CONFIG (if any), then environment variables.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("REPORT_CONFIG"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
	}

	loadEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:            "course-report",
			DisplayTimezone: "Asia/Jerusalem",
			LogLevel:        "info",
		},
		GitHub: GitHubConfig{
			Branch:         "main",
			Timeout:        30 * time.Second,
			MaxRetries:     3,
			RetryBaseDelay: 500 * time.Millisecond,
			RetryMaxDelay:  30 * time.Second,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
			TTL:  10 * time.Minute,
		},
	}
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func loadEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Debug = getEnvBool("APP_DEBUG", cfg.App.Debug)
	cfg.App.DisplayTimezone = getEnv("APP_DISPLAY_TIMEZONE", cfg.App.DisplayTimezone)
	cfg.App.LogLevel = getEnv("LOG_LEVEL", cfg.App.LogLevel)

	cfg.GitHub.Owner = getEnv("GITHUB_OWNER", cfg.GitHub.Owner)
	cfg.GitHub.Repo = getEnv("GITHUB_REPO", cfg.GitHub.Repo)
	cfg.GitHub.Branch = getEnv("GITHUB_BRANCH", cfg.GitHub.Branch)
	cfg.GitHub.Token = getEnv("GITHUB_TOKEN", cfg.GitHub.Token)
	cfg.GitHub.APIBaseURL = getEnv("GITHUB_API_BASE_URL", cfg.GitHub.APIBaseURL)
	cfg.GitHub.RawBaseURL = getEnv("GITHUB_RAW_BASE_URL", cfg.GitHub.RawBaseURL)
	cfg.GitHub.Timeout = getEnvDuration("GITHUB_TIMEOUT", cfg.GitHub.Timeout)
	cfg.GitHub.MaxRetries = getEnvInt("GITHUB_MAX_RETRIES", cfg.GitHub.MaxRetries)
	cfg.GitHub.RetryBaseDelay = getEnvDuration("GITHUB_RETRY_BASE_DELAY", cfg.GitHub.RetryBaseDelay)
	cfg.GitHub.RetryMaxDelay = getEnvDuration("GITHUB_RETRY_MAX_DELAY", cfg.GitHub.RetryMaxDelay)

	cfg.Redis.Host = getEnv("REDIS_HOST", cfg.Redis.Host)
	cfg.Redis.Port = getEnvInt("REDIS_PORT", cfg.Redis.Port)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.TTL = getEnvDuration("REDIS_TTL", cfg.Redis.TTL)
	cfg.Redis.Disabled = getEnvBool("REDIS_DISABLED", cfg.Redis.Disabled)

	cfg.Database.URL = getEnv("DATABASE_URL", cfg.Database.URL)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []string

	if c.GitHub.Owner == "" {
		errs = append(errs, "GITHUB_OWNER is required")
	}
	if c.GitHub.Repo == "" {
		errs = append(errs, "GITHUB_REPO is required")
	}
	if c.GitHub.MaxRetries < 1 {
		errs = append(errs, "GITHUB_MAX_RETRIES must be at least 1")
	}
	if !c.Redis.Disabled && c.Redis.TTL <= 0 {
		errs = append(errs, "REDIS_TTL must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// --- Helper functions for environment variable parsing ---

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
