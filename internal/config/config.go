package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	InputPath    string
	SnapshotPath string
	AdvisoryPath string
	ChartPath    string
	MapPath      string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// RefreshInterval re-runs the pipeline periodically; 0 disables it.
	RefreshInterval time.Duration
	WatchInput      bool

	// Kafka advisory publishing.
	KafkaEnabled       bool
	KafkaBrokers       []string
	KafkaAdvisoryTopic string
}

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file (ENV_FILE, default ".env") is applied first without
// overriding variables that are already set.
func Load() (*Config, error) {
	if err := loadDotEnv(sharedcfg.EnvOrDefault("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	refreshInterval, err := parseRefreshInterval()
	if err != nil {
		return nil, err
	}

	watchInput, err := parseBool("WATCH_INPUT", false)
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	kafkaEnabled, err := parseBool("KAFKA_ENABLED", len(brokers) > 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		InputPath:    sharedcfg.EnvOrDefault("INPUT_PATH", "data/tempo_no2.csv"),
		SnapshotPath: sharedcfg.EnvOrDefault("SNAPSHOT_PATH", "data/tempo_aqi_risk.csv"),
		AdvisoryPath: sharedcfg.EnvOrDefault("ADVISORY_PATH", "static/aqi_action.json"),
		ChartPath:    sharedcfg.EnvOrDefault("CHART_PATH", "static/aqi_chart_data.json"),
		MapPath:      sharedcfg.EnvOrDefault("MAP_PATH", "visuals/aqi_map.geojson"),

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		RefreshInterval: refreshInterval,
		WatchInput:      watchInput,

		KafkaEnabled:       kafkaEnabled,
		KafkaBrokers:       brokers,
		KafkaAdvisoryTopic: sharedcfg.EnvOrDefault("KAFKA_ADVISORY_TOPIC", "zone-advisories"),
	}

	if cfg.InputPath == "" {
		return nil, errors.New("INPUT_PATH is required")
	}
	if cfg.SnapshotPath == "" {
		return nil, errors.New("SNAPSHOT_PATH is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaAdvisoryTopic == "" {
		return nil, errors.New("KAFKA_ADVISORY_TOPIC is required when Kafka is enabled")
	}

	return cfg, nil
}

// loadDotEnv applies a .env file if one exists. Variables already present in
// the environment take precedence.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load ENV_FILE %s: %w", path, err)
	}
	return nil
}

func parseRefreshInterval() (time.Duration, error) {
	s := os.Getenv("REFRESH_INTERVAL")
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errors.New("invalid REFRESH_INTERVAL")
	}
	return d, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", key, s)
	}
	return v, nil
}
