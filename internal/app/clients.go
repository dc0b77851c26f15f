package app

import (
	"context"
	"fmt"

	"github.com/HACKWAVE2025/B54/internal/alerts"
	"github.com/HACKWAVE2025/B54/internal/clients/gemini"
	"github.com/HACKWAVE2025/B54/internal/clients/telegram"
	"github.com/HACKWAVE2025/B54/internal/clients/twilio"
	"github.com/HACKWAVE2025/B54/internal/observability"
	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

type Clients struct {
	Gemini   gemini.Client
	Twilio   twilio.Client
	Telegram telegram.Client
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config, metrics *observability.Metrics) (Clients, error) {
	log.Info("Wiring clients...")

	// Gemini
	gen, err := gemini.New(ctx, log, cfg.Gemini.client(), metrics)
	if err != nil {
		return Clients{}, fmt.Errorf("init gemini client: %w", err)
	}
	out := Clients{Gemini: gen}

	// Only the selected alert channel gets a client.
	switch cfg.Alerts.Channel {
	case alerts.ChannelSMS:
		tc, err := twilio.New(log, cfg.Alerts.Twilio)
		if err != nil {
			return Clients{}, fmt.Errorf("init twilio client: %w", err)
		}
		out.Twilio = tc
	case alerts.ChannelTelegram:
		tg, err := telegram.New(log, cfg.Alerts.Telegram)
		if err != nil {
			return Clients{}, fmt.Errorf("init telegram client: %w", err)
		}
		out.Telegram = tg
	}
	return out, nil
}

func wireDispatcher(log *logger.Logger, channel string, clients Clients) alerts.Dispatcher {
	switch {
	case channel == alerts.ChannelSMS && clients.Twilio != nil:
		return alerts.NewSMSDispatcher(clients.Twilio)
	case channel == alerts.ChannelTelegram && clients.Telegram != nil:
		return alerts.NewTelegramDispatcher(clients.Telegram)
	default:
		return alerts.NewLogDispatcher(log)
	}
}
