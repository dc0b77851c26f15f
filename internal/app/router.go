package app

import (
	httpserver "github.com/HACKWAVE2025/B54/internal/http"
	"github.com/HACKWAVE2025/B54/internal/observability"
	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *httpserver.Server {
	serviceName := ""
	if cfg.Telemetry.Enabled {
		serviceName = cfg.Telemetry.ServiceName
	}
	return httpserver.NewServer(httpserver.RouterConfig{
		Log:             log,
		Metrics:         metrics,
		ServiceName:     serviceName,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		AlertEvery:      cfg.Alerts.RateEvery,
		AlertBurst:      cfg.Alerts.RateBurst,
		HealthHandler:   handlers.Health,
		AnalysisHandler: handlers.Analysis,
		ChatHandler:     handlers.Chat,
		AlertHandler:    handlers.Alert,
	})
}
