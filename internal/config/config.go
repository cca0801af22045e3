// Package config loads Numberdle settings.
//
// Precedence, lowest to highest: built-in defaults, an optional YAML file,
// environment variables (a .env file is loaded into the environment first).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/numberdle/internal/game"
)

// DefaultPath is read when no --config flag is given and the file exists.
const DefaultPath = "numberdle.yaml"

// Config holds all server and client settings.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Daily    DailyConfig    `yaml:"daily"`
	Game     GameConfig     `yaml:"game"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port           string        `yaml:"port"`
	ClientOrigin   string        `yaml:"client_origin"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	JWTSecret   string `yaml:"jwt_secret"`
	ExpiresDays int    `yaml:"expires_days"`
	CookieName  string `yaml:"cookie_name"`
	AnonCookie  string `yaml:"anon_cookie"`
	Production  bool   `yaml:"production"`
}

type DailyConfig struct {
	Salt string `yaml:"salt"`
}

type GameConfig struct {
	DefaultMode      game.Mode `yaml:"default_mode"`
	AllowFixedSecret bool      `yaml:"allow_fixed_secret"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the development defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "5175",
			ClientOrigin:   "http://localhost:5173",
			RequestTimeout: 10 * time.Second,
			SessionTTL:     24 * time.Hour,
		},
		Database: DatabaseConfig{Path: "./data/numberdle.db"},
		Auth: AuthConfig{
			JWTSecret:   "dev_secret_change_me",
			ExpiresDays: 14,
			CookieName:  "numberdle_token",
			AnonCookie:  "numberdle_anon",
		},
		Daily:   DailyConfig{Salt: "local_dev_salt"},
		Game:    GameConfig{DefaultMode: game.Normal},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the configuration. An empty path falls back to DefaultPath,
// which is optional; an explicit path must exist.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// applyEnvOverrides copies recognised environment variables over the config.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("CLIENT_ORIGIN"); v != "" {
		c.Server.ClientOrigin = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("JWT_EXPIRES_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("JWT_EXPIRES_DAYS: %w", err)
		}
		c.Auth.ExpiresDays = n
	}
	if v := os.Getenv("COOKIE_NAME"); v != "" {
		c.Auth.CookieName = v
	}
	if os.Getenv("NODE_ENV") == "production" {
		c.Auth.Production = true
	}
	if v := os.Getenv("DAILY_SALT"); v != "" {
		c.Daily.Salt = v
	}
	if v := os.Getenv("DEFAULT_MODE"); v != "" {
		m, err := game.ParseMode(v)
		if err != nil {
			return fmt.Errorf("DEFAULT_MODE: %w", err)
		}
		c.Game.DefaultMode = m
	}
	if v := os.Getenv("ALLOW_FIXED_SECRET"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ALLOW_FIXED_SECRET: %w", err)
		}
		c.Game.AllowFixedSecret = b
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Auth.ExpiresDays <= 0 {
		return fmt.Errorf("auth.expires_days must be positive, got %d", c.Auth.ExpiresDays)
	}
	if c.Auth.Production && c.Auth.JWTSecret == Default().Auth.JWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.Server.Port }
