package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultsApplyToEmptyFile(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 6, cfg.Census.LongStayThresholdDays)
	days, err := cfg.Census.Weekdays()
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Friday, time.Saturday}, days)
	assert.Equal(t, 5*time.Second, cfg.Outbox.PollInterval)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.CORS.AllowCredentials)
	assert.Equal(t, 12*time.Hour, cfg.CORS.MaxAge)
}

func TestFileValues(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
server:
  port: 9090
census:
  long_stay_threshold_days: 10
  weekend_days: [saturday, sunday]
  timezone: Europe/Berlin
sweep:
  recipients: [charge-nurse@example.org]
cors:
  allowed_origins: [https://ward.example]
  allow_credentials: true
  max_age: 1h
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Census.LongStayThresholdDays)
	days, err := cfg.Census.Weekdays()
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, days)
	loc, err := cfg.Census.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
	assert.Equal(t, []string{"charge-nurse@example.org"}, cfg.Sweep.Recipients)
	assert.Equal(t, []string{"https://ward.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.CORS.AllowCredentials)
	assert.Equal(t, time.Hour, cfg.CORS.MaxAge)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("WARD_DATABASE_HOST", "db.internal")
	t.Setenv("WARD_CENSUS_LONG_STAY_THRESHOLD_DAYS", "8")

	cfg, err := LoadFile(writeConfig(t, "database:\n  host: localhost\n"))
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 8, cfg.Census.LongStayThresholdDays)
}

func TestValidateRejectsBadPolicy(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "census:\n  weekend_days: [funday]\n"))
	assert.Error(t, err)

	_, err = LoadFile(writeConfig(t, "census:\n  long_stay_threshold_days: 0\n"))
	assert.Error(t, err)

	_, err = LoadFile(writeConfig(t, "cors:\n  allow_credentials: true\n"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p", Name: "ward", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=ward sslmode=disable", c.DSN())
}
