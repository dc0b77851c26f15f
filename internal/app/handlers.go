package app

import (
	httpH "github.com/HACKWAVE2025/B54/internal/http/handlers"
	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Analysis *httpH.AnalysisHandler
	Chat     *httpH.ChatHandler
	Alert    *httpH.AlertHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(httpH.HealthInfo{
			Version:      cfg.Server.Version,
			Model:        cfg.Gemini.Model,
			AlertChannel: services.Notifier.Channel(),
		}),
		Analysis: httpH.NewAnalysisHandler(services.Analysis),
		Chat:     httpH.NewChatHandler(services.Chat),
		Alert:    httpH.NewAlertHandler(services.Notifier),
	}
}
