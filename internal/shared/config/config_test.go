package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/reshetovitsme/portfolio-feed/internal/shared/config"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inEmptyDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inEmptyDir(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, config.StorageDriverFile, cfg.StorageDriver)
	assert.Equal(t, "./data", cfg.StoragePath)
	assert.Equal(t, "http://localhost:8080", cfg.SiteURL)
	assert.Equal(t, "Portfolio", cfg.SiteTitle)
	assert.Equal(t, "en-us", cfg.SiteLanguage)
	assert.Equal(t, 60, cfg.FeedTTL)
	assert.Equal(t, 0, cfg.FeedLimit)
	assert.Equal(t, 60, cfg.ScheduleInterval)
	assert.Equal(t, config.AppEnvProduction, cfg.AppEnv)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.False(t, cfg.TelegramEnabled())
	assert.Empty(t, cfg.AllowedUsers)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	dir := inEmptyDir(t)
	yaml := `
site_url: https://jane.dev/
site_title: Jane Doe
feed_ttl: 30
app_env: Development
log_level: debug
allowed_users:
  - 10
  - 20
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))
	t.Setenv("SITE_TITLE", "Jane D.")
	t.Setenv("FEED_LIMIT", "5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://jane.dev", cfg.SiteURL)
	assert.Equal(t, "Jane D.", cfg.SiteTitle)
	assert.Equal(t, 30, cfg.FeedTTL)
	assert.Equal(t, 5, cfg.FeedLimit)
	assert.Equal(t, config.AppEnvDevelopment, cfg.AppEnv)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, []int64{10, 20}, cfg.AllowedUsers)
}

func TestLoadJSON(t *testing.T) {
	dir := inEmptyDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"http_port": "9090", "telegram_bot_token": "abc"}`), 0644))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.True(t, cfg.TelegramEnabled())
}

func TestLoadAllowedUsersFromEnv(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("ALLOWED_USERS", "1, 2,x,,3")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, cfg.AllowedUsers)
}

func TestLoadPostgresRequiresDatabaseURL(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("STORAGE_DRIVER", "postgres")

	_, err := config.Load()
	assert.ErrorIs(t, err, errors.ErrMissingDatabaseURL)

	t.Setenv("DATABASE_URL", "postgres://localhost/portfolio")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorageDriverPostgres, cfg.StorageDriver)
}

func TestLoadRejectsUnknownStorageDriver(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrInvalidStorageDriver)
}

func TestLoadUnknownAppEnvFallsBack(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("APP_ENV", "staging")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.AppEnvProduction, cfg.AppEnv)
}

func TestParseAllowedUsers(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []int64
	}{
		{name: "empty", in: "", expected: []int64{}},
		{name: "single", in: "42", expected: []int64{42}},
		{name: "spaces", in: " 1 , 2 ", expected: []int64{1, 2}},
		{name: "garbage skipped", in: "a,3", expected: []int64{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, config.ParseAllowedUsers(tt.in))
		})
	}
}
