package status_poller

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type AppConfig struct {
	Poller PollerConfig
	Log    LogConfig
}

type PollerConfig struct {
	BackendURL           string        `envconfig:"BACKEND_URL" default:"http://localhost:3000" validate:"required,url"`
	HealthPath           string        `envconfig:"HEALTH_PATH" default:"/api/health" validate:"required,startswith=/"`
	PollInterval         time.Duration `envconfig:"POLL_INTERVAL" default:"30s" validate:"gt=0"`
	ProbeTimeout         time.Duration `envconfig:"PROBE_TIMEOUT" default:"10s" validate:"gt=0,ltfield=PollInterval"`
	NetworkCheckInterval time.Duration `envconfig:"NETWORK_CHECK_INTERVAL" default:"5s" validate:"gt=0"`
	MetricsAddr          string        `envconfig:"METRICS_ADDR"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" default:"./log/status-poller.log"`
}

func (c AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("AppConfig.Validate: %w", err)
	}
	return nil
}

func LoadConfig(path string) (AppConfig, error) {
	_ = godotenv.Load(path)

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
