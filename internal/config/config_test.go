package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBrokers = "broker1:9092,broker2:9092"

// noDotEnv points ENV_FILE at a path that does not exist so a developer's
// local .env cannot leak into tests.
func noDotEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoad_Defaults(t *testing.T) {
	noDotEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/tempo_no2.csv", cfg.InputPath)
	assert.Equal(t, "data/tempo_aqi_risk.csv", cfg.SnapshotPath)
	assert.Equal(t, "static/aqi_action.json", cfg.AdvisoryPath)
	assert.Equal(t, "static/aqi_chart_data.json", cfg.ChartPath)
	assert.Equal(t, "visuals/aqi_map.geojson", cfg.MapPath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Zero(t, cfg.RefreshInterval)
	assert.False(t, cfg.WatchInput)
	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "zone-advisories", cfg.KafkaAdvisoryTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	noDotEnv(t)
	t.Setenv("INPUT_PATH", "/data/in.csv")
	t.Setenv("SNAPSHOT_PATH", "/data/out.csv")
	t.Setenv("ADVISORY_PATH", "/www/action.json")
	t.Setenv("CHART_PATH", "/www/chart.json")
	t.Setenv("MAP_PATH", "/www/map.geojson")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("REFRESH_INTERVAL", "15m")
	t.Setenv("WATCH_INPUT", "true")
	t.Setenv("KAFKA_BROKERS", testBrokers)
	t.Setenv("KAFKA_ADVISORY_TOPIC", "custom-advisories")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/in.csv", cfg.InputPath)
	assert.Equal(t, "/data/out.csv", cfg.SnapshotPath)
	assert.Equal(t, "/www/action.json", cfg.AdvisoryPath)
	assert.Equal(t, "/www/chart.json", cfg.ChartPath)
	assert.Equal(t, "/www/map.geojson", cfg.MapPath)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.True(t, cfg.WatchInput)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-advisories", cfg.KafkaAdvisoryTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	noDotEnv(t)
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidRefreshInterval(t *testing.T) {
	noDotEnv(t)
	t.Setenv("REFRESH_INTERVAL", "soon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestLoad_NegativeRefreshInterval(t *testing.T) {
	noDotEnv(t)
	t.Setenv("REFRESH_INTERVAL", "-1m")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestLoad_InvalidWatchInput(t *testing.T) {
	noDotEnv(t)
	t.Setenv("WATCH_INPUT", "sometimes")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WATCH_INPUT")
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	noDotEnv(t)
	t.Setenv("KAFKA_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_KafkaExplicitlyDisabled(t *testing.T) {
	noDotEnv(t)
	t.Setenv("KAFKA_BROKERS", testBrokers)
	t.Setenv("KAFKA_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("INPUT_PATH=/from/dotenv.csv\nHTTP_ADDR=:7070\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	t.Setenv("HTTP_ADDR", ":6060")
	t.Cleanup(func() { os.Unsetenv("INPUT_PATH") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv.csv", cfg.InputPath)
	assert.Equal(t, ":6060", cfg.HTTPAddr, "real environment wins over .env")
}
