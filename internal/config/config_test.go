package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
server:
  host: "0.0.0.0"
  port: 9090
database:
  host: "localhost"
  port: 5432
  user: "foundly"
  password: "secret"
  database: "foundly"
jwt:
  secret: "test-secret"
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.GetServerAddress())
	assert.Equal(t, "host=localhost port=5432 user=foundly password=secret dbname=foundly sslmode=disable",
		cfg.GetDatabaseConnectionString())

	// Defaults applied by Validate.
	assert.Equal(t, 60, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 7*24*60, cfg.JWT.RefreshTokenExpiry)
	assert.Equal(t, "0 0 3 * * *", cfg.Scheduler.MembershipReconcile)
	assert.Equal(t, "0 0 8 * * *", cfg.Scheduler.EventReminders)
	assert.Equal(t, 24, cfg.Scheduler.EventReminderWindow)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SERVER_PORT", "8081")

	cfg, err := Load(writeConfigFile(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 8081, cfg.Server.Port)
}

func TestLoadRejectsMissingRequiredValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"NoDatabaseHost", "jwt:\n  secret: x\ndatabase:\n  user: u\n  database: d\n"},
		{"NoJWTSecret", "database:\n  host: h\n  user: u\n  database: d\n"},
		{"NoDatabaseUser", "jwt:\n  secret: x\ndatabase:\n  host: h\n  database: d\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfigFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
