package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/chromaview/internal/chroma"
)

// Config captures how chromaview reaches a Chroma server and where it keeps
// its own state.
type Config struct {
	URL      string `toml:"url" default:"http://localhost:8000" validate:"required,url"`
	Tenant   string `toml:"tenant" default:"default_tenant" validate:"required"`
	Database string `toml:"database" default:"default_database" validate:"required"`

	Auth AuthConfig `toml:"auth"`

	PageSize          int `toml:"page_size" default:"10" validate:"oneof=10 25 50 100"`
	RequestTimeoutSec int `toml:"request_timeout_sec" default:"10" validate:"min=1,max=300"`
	HealthIntervalSec int `toml:"health_interval_sec" default:"5" validate:"min=1,max=3600"`

	LogFile  string `toml:"log_file" default:"~/.local/state/chromaview/chromaview.log"`
	LogLevel string `toml:"log_level" default:"info" validate:"oneof=debug info warn error"`

	// ThemeFile points at an optional YAML palette override.
	ThemeFile string `toml:"theme_file"`
	// MetricsAddr enables the Prometheus endpoint when non-empty.
	MetricsAddr string `toml:"metrics_addr" validate:"omitempty,hostname_port"`
}

// AuthConfig selects how requests to Chroma are authenticated.
type AuthConfig struct {
	Provider    string `toml:"provider" default:"none" validate:"oneof=none token basic"`
	Token       string `toml:"token" validate:"required_if=Provider token"`
	TokenHeader string `toml:"token_header" default:"Authorization" validate:"oneof=Authorization X-Chroma-Token"`
	Username    string `toml:"username" validate:"required_if=Provider basic"`
	Password    string `toml:"password"`
}

const defaultConfigPath = "~/.config/chromaview/config.toml"

// Environment variables that override file values.
const (
	EnvURL      = "CHROMA_URL"
	EnvTenant   = "CHROMA_TENANT"
	EnvDatabase = "CHROMA_DATABASE"
	EnvToken    = "CHROMA_TOKEN"
)

// Default returns a config populated only from struct defaults.
func Default() Config {
	var cfg Config
	_ = defaults.Set(&cfg)
	cfg.LogFile = mustExpand(cfg.LogFile)
	return cfg
}

// LoadDotEnv reads KEY=value pairs from path (".env" when empty) into the
// process environment. A missing file is not an error and existing variables
// are never overwritten.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load locates and parses the chromaview config, falling back to defaults when
// missing. Environment overrides are applied before validation.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	cfg.trim()
	if err := defaults.Set(&cfg); err != nil {
		return Config{}, fmt.Errorf("apply defaults: %w", err)
	}
	cfg.applyEnv()
	if cfg.Auth.Token != "" && cfg.Auth.Provider == "none" {
		cfg.Auth.Provider = "token"
	}

	cfg.LogFile = mustExpand(cfg.LogFile)
	if cfg.ThemeFile != "" {
		cfg.ThemeFile = mustExpand(cfg.ThemeFile)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints declared in struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RequestTimeout is the per-request deadline for Chroma calls.
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// HealthInterval is the base cadence of the background heartbeat.
func (c Config) HealthInterval() time.Duration {
	if c.HealthIntervalSec <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.HealthIntervalSec) * time.Second
}

// Header returns the HTTP header name and value carrying the credentials, or
// empty strings when no authentication is configured.
func (a AuthConfig) Header() (string, string) {
	switch a.Provider {
	case "token":
		if a.Token == "" {
			return "", ""
		}
		if a.TokenHeader == "X-Chroma-Token" {
			return "X-Chroma-Token", a.Token
		}
		return "Authorization", "Bearer " + a.Token
	case "basic":
		creds := base64.StdEncoding.EncodeToString([]byte(a.Username + ":" + a.Password))
		return "Authorization", "Basic " + creds
	default:
		return "", ""
	}
}

// Credentials returns the auth handed to the Chroma client. Basic auth keeps
// the username and password so the client can use its basic provider.
func (a AuthConfig) Credentials() chroma.Auth {
	header, value := a.Header()
	auth := chroma.Auth{Header: header, Value: value}
	if a.Provider == "basic" {
		auth.Username = a.Username
		auth.Password = a.Password
	}
	return auth
}

func (c *Config) trim() {
	c.URL = strings.TrimSpace(c.URL)
	c.Tenant = strings.TrimSpace(c.Tenant)
	c.Database = strings.TrimSpace(c.Database)
	c.LogFile = strings.TrimSpace(c.LogFile)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.ThemeFile = strings.TrimSpace(c.ThemeFile)
	c.MetricsAddr = strings.TrimSpace(c.MetricsAddr)
	c.Auth.Provider = strings.ToLower(strings.TrimSpace(c.Auth.Provider))
	c.Auth.Token = strings.TrimSpace(c.Auth.Token)
	c.Auth.TokenHeader = strings.TrimSpace(c.Auth.TokenHeader)
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvURL)); v != "" {
		c.URL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTenant)); v != "" {
		c.Tenant = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDatabase)); v != "" {
		c.Database = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvToken)); v != "" {
		c.Auth.Token = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
