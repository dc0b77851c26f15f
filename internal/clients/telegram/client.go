package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

// Client sends plain-text messages through the Telegram Bot API.
type Client interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

type Config struct {
	Token string `yaml:"token" envconfig:"TELEGRAM_BOT_TOKEN"`
	// APIEndpoint is a format string taking the token and the method name.
	APIEndpoint    string        `yaml:"api_endpoint" envconfig:"TELEGRAM_API_ENDPOINT"`
	HTTPTimeout    time.Duration `yaml:"http_timeout" envconfig:"TELEGRAM_HTTP_TIMEOUT"`
	RateLimitRate  int           `yaml:"rate_limit_rate" envconfig:"TELEGRAM_RATE_LIMIT_RATE"`
	RateLimitBurst int           `yaml:"rate_limit_burst" envconfig:"TELEGRAM_RATE_LIMIT_BURST"`
}

type client struct {
	api     *tgbotapi.BotAPI
	log     *logger.Logger
	limiter *rate.Limiter
}

// New authorizes the bot (one getMe call) and returns a client.
func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	cfg.Token = strings.TrimSpace(cfg.Token)
	if cfg.Token == "" {
		return nil, fmt.Errorf("missing TELEGRAM_BOT_TOKEN")
	}
	if strings.TrimSpace(cfg.APIEndpoint) == "" {
		cfg.APIEndpoint = tgbotapi.APIEndpoint
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.RateLimitRate <= 0 {
		cfg.RateLimitRate = 20
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 30
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, cfg.APIEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	log.Info("Telegram bot authorized", "bot", api.Self.UserName)

	return &client{
		api:     api,
		log:     log.With("client", "TelegramClient"),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitRate), cfg.RateLimitBurst),
	}, nil
}

func (c *client) SendText(ctx context.Context, chatID int64, text string) error {
	if chatID == 0 {
		return fmt.Errorf("telegram: chat id required")
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("telegram: text required")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram rate limiter: %w", err)
	}

	start := time.Now()
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.api.Send(msg); err != nil {
		c.log.Warn("Telegram send failed",
			"chat_id", chatID,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err.Error(),
		)
		return fmt.Errorf("telegram send: %w", err)
	}
	c.log.Debug("Telegram message sent",
		"chat_id", chatID,
		"text_length", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
