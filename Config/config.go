// Package Config holds the service configuration. Values are layered:
// built-in defaults, then an optional YAML file, then a .env file, then
// CHECKLIST_* environment variables.
package Config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// AppName names the data directory under the XDG data home.
const AppName = "checklist"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Upload   UploadConfig   `yaml:"upload"`
	Drafts   DraftsConfig   `yaml:"drafts"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port         int    `yaml:"port"`
	AllowOrigins string `yaml:"allow_origins"`
	// BodyLimitMB bounds request bodies; photos travel base64-encoded.
	BodyLimitMB int `yaml:"body_limit_mb"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "mysql".
	Driver string      `yaml:"driver"`
	Path   string      `yaml:"path"`
	MySQL  MySQLConfig `yaml:"mysql"`
}

type MySQLConfig struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Addr     string `yaml:"addr"`
	Name     string `yaml:"name"`
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type UploadConfig struct {
	// URL is the Drive web app endpoint receiving the JSON envelope.
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type DraftsConfig struct {
	// Retention is how long drafts are kept. Zero keeps them forever.
	Retention     time.Duration `yaml:"retention"`
	PurgeSchedule string        `yaml:"purge_schedule"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Format is "json" or "console".
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

const minJWTSecretLen = 16

// weakJWTSecrets are placeholder values seen in sample configs.
var weakJWTSecrets = map[string]bool{
	"secret":                  true,
	"changeme":                true,
	"jwt_secret":              true,
	"change-me-in-production": true,
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         3001,
			AllowOrigins: "*",
			BodyLimitMB:  32,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   filepath.Join(xdg.DataHome, AppName, "checklist.db"),
			MySQL: MySQLConfig{
				Addr: "127.0.0.1:3306",
				Name: AppName,
			},
		},
		Auth: AuthConfig{
			SessionTTL: 12 * time.Hour,
		},
		Upload: UploadConfig{
			Timeout: 60 * time.Second,
		},
		Drafts: DraftsConfig{
			Retention:     30 * 24 * time.Hour,
			PurgeSchedule: "@daily",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the values the server needs to start.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return ErrInvalidPort
	}
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return ErrNoDatabasePath
		}
	case "mysql":
		if c.Database.MySQL.Addr == "" || c.Database.MySQL.Name == "" {
			return ErrIncompleteMySQL
		}
	default:
		return ErrUnknownDriver
	}
	if c.Upload.URL == "" {
		return ErrNoUploadURL
	}
	if c.Upload.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Auth.JWTSecret == "" {
		return ErrNoJWTSecret
	}
	if len(c.Auth.JWTSecret) < minJWTSecretLen || weakJWTSecrets[strings.ToLower(c.Auth.JWTSecret)] {
		return ErrWeakJWTSecret
	}
	if c.Drafts.Retention < 0 {
		return ErrInvalidRetention
	}
	return nil
}
