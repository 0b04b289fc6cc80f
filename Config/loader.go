package Config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory and then in the
// XDG config home when no path is given.
const DefaultConfigFile = "checklist.yaml"

// Load builds the configuration. An explicit path that does not exist is an
// error; a missing default file is not.
func Load(path string) (*Config, error) {
	cfg := Default()

	file := FindConfigFile(path)
	if path != "" && file == "" {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if file != "" {
		if err := loadFile(file, cfg); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile returns the config file to read, or "" when there is none.
func FindConfigFile(path string) string {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	home := filepath.Join(xdg.ConfigHome, AppName, DefaultConfigFile)
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path) //nolint:gosec // operator supplied path
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// loadDotEnv exports the variables of a .env file without overriding
// variables already set in the environment.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	str("CHECKLIST_ALLOW_ORIGINS", &c.Server.AllowOrigins)
	str("CHECKLIST_DB_DRIVER", &c.Database.Driver)
	str("CHECKLIST_DB_PATH", &c.Database.Path)
	str("CHECKLIST_MYSQL_USER", &c.Database.MySQL.User)
	str("CHECKLIST_MYSQL_PASSWORD", &c.Database.MySQL.Password)
	str("CHECKLIST_MYSQL_ADDR", &c.Database.MySQL.Addr)
	str("CHECKLIST_MYSQL_NAME", &c.Database.MySQL.Name)
	str("CHECKLIST_JWT_SECRET", &c.Auth.JWTSecret)
	str("CHECKLIST_UPLOAD_URL", &c.Upload.URL)
	str("CHECKLIST_DRAFT_PURGE_SCHEDULE", &c.Drafts.PurgeSchedule)
	str("CHECKLIST_LOG_LEVEL", &c.Log.Level)
	str("CHECKLIST_LOG_FORMAT", &c.Log.Format)
	str("CHECKLIST_LOG_FILE", &c.Log.File)

	ints := []struct {
		key string
		dst *int
	}{
		{"CHECKLIST_PORT", &c.Server.Port},
		{"CHECKLIST_BODY_LIMIT_MB", &c.Server.BodyLimitMB},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"CHECKLIST_SESSION_TTL", &c.Auth.SessionTTL},
		{"CHECKLIST_UPLOAD_TIMEOUT", &c.Upload.Timeout},
		{"CHECKLIST_DRAFT_RETENTION", &c.Drafts.Retention},
	}
	for _, e := range durations {
		v, ok := os.LookupEnv(e.key)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = d
	}
	return nil
}
