package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/HACKWAVE2025/B54/internal/http/handlers"
	httpMW "github.com/HACKWAVE2025/B54/internal/http/middleware"
	"github.com/HACKWAVE2025/B54/internal/observability"
	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	// ServiceName names the otelgin server spans. Empty disables otelgin.
	ServiceName    string
	AllowedOrigins []string
	// AlertEvery and AlertBurst throttle the alert routes. Zero disables it.
	AlertEvery time.Duration
	AlertBurst int

	HealthHandler   *httpH.HealthHandler
	AnalysisHandler *httpH.AnalysisHandler
	ChatHandler     *httpH.ChatHandler
	AlertHandler    *httpH.AlertHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Structured analysis
		if cfg.AnalysisHandler != nil {
			api.POST("/analyze/medical", cfg.AnalysisHandler.AnalyzeMedical)
			api.POST("/analyze/crop", cfg.AnalysisHandler.AnalyzeCrop)
			api.POST("/analyze/wellness-log", cfg.AnalysisHandler.AnalyzeWellnessLog)
			api.POST("/analyze/medicine", cfg.AnalysisHandler.AnalyzeMedicine)
			api.GET("/facilities", cfg.AnalysisHandler.FindFacilities)
			api.GET("/organs/:organ", cfg.AnalysisHandler.OrganInfo)
			api.GET("/wellness/tips/:category", cfg.AnalysisHandler.WellnessTip)
		}

		// Assistant chat
		if cfg.ChatHandler != nil {
			api.POST("/chat/sessions", cfg.ChatHandler.CreateSession)
			api.GET("/chat/sessions/:id", cfg.ChatHandler.GetSession)
			api.POST("/chat/sessions/:id/messages", cfg.ChatHandler.SendMessage)
			api.DELETE("/chat/sessions/:id", cfg.ChatHandler.DeleteSession)
		}

		// Alerts
		if cfg.AlertHandler != nil {
			alertsGroup := api.Group("/alerts", httpMW.RateLimit(cfg.AlertEvery, cfg.AlertBurst))
			alertsGroup.POST("/sos", cfg.AlertHandler.SOS)
			alertsGroup.POST("/driving", cfg.AlertHandler.Driving)
		}
	}

	return r
}
