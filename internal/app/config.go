package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/HACKWAVE2025/B54/internal/alerts"
	"github.com/HACKWAVE2025/B54/internal/clients/gemini"
	"github.com/HACKWAVE2025/B54/internal/clients/telegram"
	"github.com/HACKWAVE2025/B54/internal/clients/twilio"
	"github.com/HACKWAVE2025/B54/internal/observability"
	"github.com/HACKWAVE2025/B54/internal/services"
)

// ConfigFileEnv names the optional YAML file read before the environment.
const ConfigFileEnv = "B54_CONFIG_FILE"

type Config struct {
	Server    ServerConfig        `yaml:"server"`
	Gemini    GeminiConfig        `yaml:"gemini"`
	Alerts    AlertsConfig        `yaml:"alerts"`
	Chat      services.ChatConfig `yaml:"chat"`
	Telemetry TelemetryConfig     `yaml:"telemetry"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" envconfig:"SERVER_ADDR"`
	LogMode         string        `yaml:"log_mode" envconfig:"LOG_MODE"`
	Version         string        `yaml:"version" envconfig:"APP_VERSION"`
	AllowedOrigins  []string      `yaml:"allowed_origins" envconfig:"CORS_ALLOWED_ORIGINS"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

type GeminiConfig struct {
	APIKey  string        `yaml:"api_key" envconfig:"GEMINI_API_KEY"`
	Model   string        `yaml:"model" envconfig:"GEMINI_MODEL"`
	BaseURL string        `yaml:"base_url" envconfig:"GEMINI_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" envconfig:"GEMINI_TIMEOUT"`
}

func (g GeminiConfig) client() gemini.Config {
	return gemini.Config{APIKey: g.APIKey, Model: g.Model, BaseURL: g.BaseURL, Timeout: g.Timeout}
}

type AlertsConfig struct {
	alerts.Config `yaml:",inline"`

	// RateEvery and RateBurst throttle the SOS and driving routes.
	RateEvery time.Duration `yaml:"rate_every" envconfig:"ALERT_RATE_EVERY"`
	RateBurst int           `yaml:"rate_burst" envconfig:"ALERT_RATE_BURST"`

	Twilio   twilio.Config   `yaml:"twilio"`
	Telegram telegram.Config `yaml:"telegram"`
}

type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled" envconfig:"OTEL_ENABLED"`
	ServiceName string  `yaml:"service_name" envconfig:"OTEL_SERVICE_NAME"`
	Environment string  `yaml:"environment" envconfig:"APP_ENV"`
	Endpoint    string  `yaml:"endpoint" envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"OTEL_SAMPLER_RATIO"`
}

func (t TelemetryConfig) otel(version string) observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     t.Enabled,
		ServiceName: t.ServiceName,
		Environment: t.Environment,
		Version:     version,
		Endpoint:    t.Endpoint,
		SampleRatio: t.SampleRatio,
	}
}

// LoadConfig layers .env, then the YAML file at path (or $B54_CONFIG_FILE),
// then process environment, then defaults. Later layers win over earlier ones.
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if strings.TrimSpace(path) == "" {
		path = strings.TrimSpace(os.Getenv(ConfigFileEnv))
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = ":8080"
	}
	if strings.TrimSpace(c.Server.LogMode) == "" {
		c.Server.LogMode = "development"
	}
	if strings.TrimSpace(c.Server.Version) == "" {
		c.Server.Version = "dev"
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}
	if strings.TrimSpace(c.Gemini.Model) == "" {
		c.Gemini.Model = gemini.DefaultModel
	}
	if c.Alerts.RateEvery <= 0 {
		c.Alerts.RateEvery = 10 * time.Second
	}
	if c.Alerts.RateBurst <= 0 {
		c.Alerts.RateBurst = 3
	}
	c.Alerts.Channel = strings.ToLower(strings.TrimSpace(c.Alerts.Channel))
	if c.Alerts.Channel == "" {
		switch {
		case c.Alerts.Twilio.Configured():
			c.Alerts.Channel = alerts.ChannelSMS
		case strings.TrimSpace(c.Alerts.Telegram.Token) != "":
			c.Alerts.Channel = alerts.ChannelTelegram
		default:
			c.Alerts.Channel = alerts.ChannelLog
		}
	}
	if strings.TrimSpace(c.Telemetry.ServiceName) == "" {
		c.Telemetry.ServiceName = "b54"
	}
}

// Validate checks settings that cannot be defaulted. A missing Gemini key is
// reported later by the client so the config can still be inspected.
func (c Config) Validate() error {
	switch c.Alerts.Channel {
	case alerts.ChannelSMS:
		if !c.Alerts.Twilio.Configured() {
			return fmt.Errorf("alert channel %q needs TWILIO_ACCOUNT_SID and a credential", c.Alerts.Channel)
		}
	case alerts.ChannelTelegram:
		if strings.TrimSpace(c.Alerts.Telegram.Token) == "" {
			return fmt.Errorf("alert channel %q needs TELEGRAM_BOT_TOKEN", c.Alerts.Channel)
		}
	case alerts.ChannelLog:
	default:
		return fmt.Errorf("unknown alert channel %q (want %s, %s or %s)",
			c.Alerts.Channel, alerts.ChannelSMS, alerts.ChannelTelegram, alerts.ChannelLog)
	}
	if c.Chat.MaxSessions < 0 {
		return fmt.Errorf("chat max sessions must not be negative")
	}
	return nil
}
