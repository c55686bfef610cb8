package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_DefaultsWithMinimalFile(t *testing.T) {
	path := writeConfigFile(t, "jwt:\n  secret: test-secret\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "merito", cfg.Database.DBName)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "720h", cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, int64(1000), cfg.Merit.SemesterCreditAmount)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
  mode: production
jwt:
  secret: file-secret
  access_token_expiration: 30m
merit:
  semester_credit_amount: 2500
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, "30m", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, int64(2500), cfg.Merit.SemesterCreditAmount)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "jwt:\n  secret: file-secret\n")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("MERIT_SEMESTER_CREDIT_AMOUNT", "500")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, int64(500), cfg.Merit.SemesterCreditAmount)
}

func TestLoadConfig_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-only-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-only-secret", cfg.JWT.Secret)
}

func TestLoadConfig_Validation(t *testing.T) {
	_, err := LoadConfig(writeConfigFile(t, "server:\n  port: \"8080\"\n"))
	assert.Error(t, err, "missing JWT secret")

	_, err = LoadConfig(writeConfigFile(t, "jwt:\n  secret: s\n  access_token_expiration: nonsense\n"))
	assert.Error(t, err, "bad duration")

	_, err = LoadConfig(writeConfigFile(t, "jwt:\n  secret: s\nmerit:\n  semester_credit_amount: -5\n"))
	assert.Error(t, err, "non-positive semester credit amount")
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "merito"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "merito_test"
	cfg.Database.SSLMode = ""

	assert.Equal(t,
		"postgres://merito:pw@db.internal:5433/merito_test?sslmode=disable",
		cfg.GetPostgresConnectionString())
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("bogus", time.Hour))
}
