package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Session modes. Guest sessions persist to local storage only; account
// sessions persist to the remote document store keyed by user id.
const (
	ModeGuest   = "guest"
	ModeAccount = "account"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Session   SessionConfig   `yaml:"session"`
	Local     LocalConfig     `yaml:"local"`
	Surreal   SurrealConfig   `yaml:"surreal"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "http"
}

type SessionConfig struct {
	Mode   string `yaml:"mode"` // "guest" or "account"
	UserID string `yaml:"user_id"`
}

type LocalConfig struct {
	Path string `yaml:"path"`
}

type SurrealConfig struct {
	URL       string `yaml:"url"`
	Namespace string `yaml:"namespace"`
	Database  string `yaml:"database"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
}

type AuthConfig struct {
	Enabled   bool   `yaml:"enabled"`
	JWTSecret string `yaml:"jwt_secret"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment
// variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Session: SessionConfig{
			Mode: ModeGuest,
		},
		Local: LocalConfig{
			Path: "taskdeck.db",
		},
		Surreal: SurrealConfig{
			URL:       "ws://localhost:8000/rpc",
			Namespace: "taskdeck",
			Database:  "taskdeck",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("TASKDECK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("TASKDECK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("TASKDECK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TASKDECK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("TASKDECK_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if mode := os.Getenv("TASKDECK_SESSION_MODE"); mode != "" {
		cfg.Session.Mode = mode
	}
	if userID := os.Getenv("TASKDECK_USER_ID"); userID != "" {
		cfg.Session.UserID = userID
	}
	if path := os.Getenv("TASKDECK_LOCAL_PATH"); path != "" {
		cfg.Local.Path = path
	}
	if url := os.Getenv("TASKDECK_SURREAL_URL"); url != "" {
		cfg.Surreal.URL = url
	}
	if user := os.Getenv("TASKDECK_SURREAL_USER"); user != "" {
		cfg.Surreal.Username = user
	}
	if pass := os.Getenv("TASKDECK_SURREAL_PASS"); pass != "" {
		cfg.Surreal.Password = pass
	}
	if secret := os.Getenv("TASKDECK_JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
		cfg.Auth.Enabled = true
	}
	if level := os.Getenv("TASKDECK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

// Validate checks mode combinations that cannot work at runtime.
func (c Config) Validate() error {
	switch c.Session.Mode {
	case ModeGuest:
	case ModeAccount:
		if c.Session.UserID == "" {
			return fmt.Errorf("session mode %q requires a user id", ModeAccount)
		}
	default:
		return fmt.Errorf("unknown session mode %q", c.Session.Mode)
	}
	if c.Transport.Mode != "stdio" && c.Transport.Mode != "http" {
		return fmt.Errorf("unknown transport mode %q", c.Transport.Mode)
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth enabled without a jwt secret")
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
