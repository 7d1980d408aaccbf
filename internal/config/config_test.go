package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/maxviazov/reporting-dashboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func clearSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("APP_POSTGRES_USER", "")
	t.Setenv("APP_POSTGRES_PASSWORD", "")
	t.Setenv("APP_POSTGRES_DB", "")
}

func TestConfigLoad_FromYAMLAndEnv(t *testing.T) {
	yaml := `
app:
  name: reporting-dashboard
  version: 0.1.0
  env: test
  port: 18080

logger:
  level: info
  format: json
  output_target: stdout
  time_format: rfc3339
  with_caller: false
  stacktrace: false

postgres:
  host: 127.0.0.1
  port: 5432
  sslmode: disable
  max_conns: 5
  min_conns: 1
  max_conn_lifetime: 60
  max_conn_idle_time: 30
  health_check_period: 15

reports:
  page_size: 7
  locale: en-US
  query_timeout: 2s
`
	path := writeTempConfig(t, yaml)

	t.Setenv("APP_POSTGRES_USER", "testuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "testpass")
	t.Setenv("APP_POSTGRES_DB", "testdb")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.App.Port)
	assert.Equal(t, "testuser", cfg.Postgres.User)
	assert.Equal(t, "testpass", cfg.Postgres.Password)
	assert.Equal(t, "testdb", cfg.Postgres.DBName)
	assert.Equal(t, "127.0.0.1", cfg.Postgres.Host)
	assert.Equal(t, int32(5), cfg.Postgres.MaxConns)
	assert.Equal(t, "stdout", cfg.Logger.OutputTarget)
	assert.Equal(t, "rfc3339", cfg.Logger.TimeFormat)

	assert.Equal(t, 7, cfg.Reports.PageSize)
	assert.Equal(t, "en-US", cfg.Reports.Locale)
	assert.Equal(t, "$", cfg.Reports.CurrencySymbol, "default symbol")
	assert.Equal(t, 2*time.Second, cfg.Reports.QueryTimeout)
}

func TestConfigLoad_Defaults(t *testing.T) {
	path := writeTempConfig(t, "app:\n  env: dev\n")
	t.Setenv("APP_POSTGRES_USER", "u")
	t.Setenv("APP_POSTGRES_PASSWORD", "p")
	t.Setenv("APP_POSTGRES_DB", "d")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Reports.PageSize)
	assert.Equal(t, "es-MX", cfg.Reports.Locale)
	assert.Equal(t, 5*time.Second, cfg.Reports.QueryTimeout)
	assert.Equal(t, 8080, cfg.App.Port)
}

func TestConfigLoad_EnvOverridesFile(t *testing.T) {
	path := writeTempConfig(t, "reports:\n  page_size: 5\n")
	t.Setenv("APP_POSTGRES_USER", "u")
	t.Setenv("APP_POSTGRES_PASSWORD", "p")
	t.Setenv("APP_POSTGRES_DB", "d")
	t.Setenv("APP_REPORTS_PAGE_SIZE", "20")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Reports.PageSize)
}

func TestConfigLoad_DotEnvNextToConfig(t *testing.T) {
	clearSecrets(t)
	os.Unsetenv("APP_POSTGRES_USER")
	os.Unsetenv("APP_POSTGRES_PASSWORD")
	os.Unsetenv("APP_POSTGRES_DB")

	path := writeTempConfig(t, "app:\n  env: test\n")
	env := "APP_POSTGRES_USER=dotuser\nAPP_POSTGRES_PASSWORD=dotpass\nAPP_POSTGRES_DB=dotdb\n"
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), ".env"), []byte(env), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("APP_POSTGRES_USER")
		os.Unsetenv("APP_POSTGRES_PASSWORD")
		os.Unsetenv("APP_POSTGRES_DB")
	})

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dotuser", cfg.Postgres.User)
	assert.Equal(t, "dotdb", cfg.Postgres.DBName)
}

func TestConfigLoad_MissingRequiredEnvFails(t *testing.T) {
	path := writeTempConfig(t, "app:\n  env: test\npostgres:\n  host: localhost\n")
	clearSecrets(t)

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestConfigLoad_InvalidPageSizeFails(t *testing.T) {
	path := writeTempConfig(t, "reports:\n  page_size: 0\n")
	t.Setenv("APP_POSTGRES_USER", "u")
	t.Setenv("APP_POSTGRES_PASSWORD", "p")
	t.Setenv("APP_POSTGRES_DB", "d")

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestConfigLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
