package app

import (
	"github.com/HACKWAVE2025/B54/internal/alerts"
	"github.com/HACKWAVE2025/B54/internal/observability"
	"github.com/HACKWAVE2025/B54/internal/platform/logger"
	"github.com/HACKWAVE2025/B54/internal/services"
)

type Services struct {
	Notifier *alerts.Notifier
	Analysis services.AnalysisService
	Chat     services.ChatService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	notifier := alerts.NewNotifier(wireDispatcher(log, cfg.Alerts.Channel, clients), cfg.Alerts.Contact, log, metrics)
	return Services{
		Notifier: notifier,
		Analysis: services.NewAnalysisService(log, clients.Gemini, notifier, metrics),
		Chat:     services.NewChatService(log, clients.Gemini, cfg.Chat, metrics),
	}
}
