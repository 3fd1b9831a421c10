package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/units"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvironmentProduction = "production"

type AppConfig struct {
	Server ServerConfig
	Log    LogConfig
}

type ServerConfig struct {
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Port            string        `envconfig:"PORT" default:"3000" validate:"required,numeric"`
	Environment     string        `envconfig:"NODE_ENV" default:"development" validate:"required"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS"`
	BodyLimit       string        `envconfig:"BODY_LIMIT" default:"10MB" validate:"required"`
	StaticDir       string        `envconfig:"STATIC_DIR"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s" validate:"gt=0"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" default:"./log/web-server.log"`
}

func (s ServerConfig) IsProduction() bool {
	return s.Environment == EnvironmentProduction
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Origins returns the CORS allow-list. Without ALLOWED_ORIGINS it falls back to localhost in
// non-production environments and to the placeholder domain in production.
func (s ServerConfig) Origins() []string {
	var origins []string
	for _, o := range s.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) > 0 {
		return origins
	}
	if s.IsProduction() {
		return []string{"http://your-domain.com", "https://your-domain.com"}
	}
	return []string{
		fmt.Sprintf("http://localhost:%s", s.Port),
		fmt.Sprintf("http://127.0.0.1:%s", s.Port),
	}
}

// BodyLimitBytes parses BODY_LIMIT with base-2 units, so "10MB" is 10*1024*1024 bytes.
func (s ServerConfig) BodyLimitBytes() (int64, error) {
	b, err := units.ParseBase2Bytes(s.BodyLimit)
	if err != nil {
		return 0, fmt.Errorf("ServerConfig.BodyLimitBytes: %w", err)
	}
	if b <= 0 {
		return 0, fmt.Errorf("ServerConfig.BodyLimitBytes: body limit must be positive, got %q", s.BodyLimit)
	}
	return int64(b), nil
}

func (c AppConfig) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("AppConfig.Validate: %w", err)
	}
	if err := v.Var(c.Server.Origins(), "dive,url"); err != nil {
		return fmt.Errorf("AppConfig.Validate: ALLOWED_ORIGINS: %w", err)
	}
	if _, err := c.Server.BodyLimitBytes(); err != nil {
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
