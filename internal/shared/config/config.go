package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Config struct {
	HTTPPort      string        `koanf:"http_port"`
	StorageDriver StorageDriver `koanf:"storage_driver"`
	StoragePath   string        `koanf:"storage_path"`
	DatabaseURL   string        `koanf:"database_url"`

	SiteURL            string `koanf:"site_url"`
	SiteTitle          string `koanf:"site_title"`
	SiteDescription    string `koanf:"site_description"`
	SiteLanguage       string `koanf:"site_language"`
	SiteCopyright      string `koanf:"site_copyright"`
	SiteManagingEditor string `koanf:"site_managing_editor"`
	SiteWebMaster      string `koanf:"site_web_master"`
	SiteImageURL       string `koanf:"site_image_url"`
	FeedTTL            int    `koanf:"feed_ttl"`
	FeedLimit          int    `koanf:"feed_limit"`

	// ScheduleInterval is in seconds.
	ScheduleInterval int `koanf:"schedule_interval"`

	TelegramBotToken string  `koanf:"telegram_bot_token"`
	TelegramAPIURL   string  `koanf:"telegram_api_url"`
	AllowedUsers     []int64 `koanf:"-"`

	AppEnv   AppEnv `koanf:"app_env"`
	LogLevel string `koanf:"log_level"`
}

var configFiles = []string{
	"config.yaml",
	"config.yml",
	"config.json",
	"config.toml",
}

var defaults = map[string]any{
	"http_port":         "8080",
	"storage_driver":    "file",
	"storage_path":      "./data",
	"site_url":          "http://localhost:8080",
	"site_title":        "Portfolio",
	"site_description":  "Projects, notes and articles",
	"site_language":     "en-us",
	"feed_ttl":          60,
	"feed_limit":        0,
	"schedule_interval": 60,
	"telegram_api_url":  "https://api.telegram.org",
	"app_env":           "production",
	"log_level":         "info",
}

// Load reads the first config file found in the working directory, then lets
// environment variables override it.
func Load() (*Config, error) {
	k := koanf.New(".")

	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// SITE_URL -> site_url
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// Env vars arrive as "1,2,3", config files as arrays.
	if allowedUsers := k.Get("allowed_users"); allowedUsers != nil {
		switch v := allowedUsers.(type) {
		case string:
			cfg.AllowedUsers = ParseAllowedUsers(v)
		case []interface{}:
			cfg.AllowedUsers = lo.FilterMap(v, func(item interface{}, _ int) (int64, bool) {
				switch val := item.(type) {
				case int64:
					return val, true
				case int:
					return int64(val), true
				case float64:
					return int64(val), true
				case string:
					ids := ParseAllowedUsers(val)
					return lo.FirstOrEmpty(ids), len(ids) == 1
				default:
					return 0, false
				}
			})
		}
	}

	appEnv, err := ParseAppEnv(k.String("app_env"))
	if err != nil {
		slog.Warn("Unknown app_env, falling back to production", "app_env", k.String("app_env"))
		appEnv = AppEnvProduction
	}
	cfg.AppEnv = appEnv

	driver, err := ParseStorageDriver(k.String("storage_driver"))
	if err != nil {
		return nil, oops.With("storage_driver", k.String("storage_driver")).Wrap(err)
	}
	cfg.StorageDriver = driver

	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	if cfg.StorageDriver == StorageDriverPostgres && cfg.DatabaseURL == "" {
		return nil, errors.ErrMissingDatabaseURL
	}

	return &cfg, nil
}

// SlogLevel maps log_level to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// TelegramEnabled reports whether the admin bot should run.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != ""
}

// ParseAllowedUsers parses comma-separated user IDs string into []int64
func ParseAllowedUsers(s string) []int64 {
	if s == "" {
		return []int64{}
	}
	parts := strings.Split(s, ",")
	return lo.FilterMap(parts, func(part string, _ int) (int64, bool) {
		part = strings.TrimSpace(part)
		if part == "" {
			return 0, false
		}
		var id int64
		if _, err := fmt.Sscanf(part, "%d", &id); err == nil {
			return id, true
		}
		return 0, false
	})
}
