// Package config loads service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the full server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Supabase SupabaseConfig `yaml:"supabase"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SupabaseConfig holds the hosted backend settings. Keys come from the
// environment, never from the YAML file.
type SupabaseConfig struct {
	URL        string `yaml:"url"`
	AnonKey    string `yaml:"-"`
	ServiceKey string `yaml:"-"`
	JWTSecret  string `yaml:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from the given YAML file (optional) and the
// environment. A .env file next to the working directory is honored when
// present, matching local development against a Supabase project.
func Load(path string) (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		cfg.Supabase.URL = v
	}
	cfg.Supabase.AnonKey = os.Getenv("SUPABASE_ANON_KEY")
	cfg.Supabase.ServiceKey = os.Getenv("SUPABASE_SERVICE_KEY")
	cfg.Supabase.JWTSecret = os.Getenv("SUPABASE_JWT_SECRET")

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitAndTrim(v)
	}
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.Supabase.URL == "" {
		return fmt.Errorf("config: SUPABASE_URL is required")
	}
	if c.Supabase.AnonKey == "" {
		return fmt.Errorf("config: SUPABASE_ANON_KEY is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid server port %d", c.Server.Port)
	}
	return nil
}

// Addr returns the listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
