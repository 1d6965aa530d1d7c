package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// logging
	LogLevel    string `toml:"log_level"`
	LogsPath    string `toml:"logs_path"`
	LogToStdout bool   `toml:"log_to_stdout"`

	SentryEnabled bool `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	MigrationsPath string `toml:"migrations_path"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// how many finished sessions back set seeding looks when a session
	// is started from a template
	ExerciseHistoryWindow int `toml:"exercise_history_window"`

	// timers
	TimerTickMillis       int    `toml:"timer_tick_millis"`
	RestNotificationTitle string `toml:"rest_notification_title"`
	RestNotificationBody  string `toml:"rest_notification_body"`
	PushWebhookURL        string `toml:"push_webhook_url"`

	SessionStartRateLimitAllowedPerMin int `toml:"session_start_rate_limit_allowed_per_min"`
}

type Toml struct {
	Development *Config
	DockerDev   *Config `toml:"docker_dev"`
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "ddev", "dockerdev":
		return t.DockerDev, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(path, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env %s not present in %s", env, path)
	}

	return cfg, nil
}
