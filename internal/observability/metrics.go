package observability

import (
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

// Metrics holds every collector the service exports. All methods are safe on a
// nil receiver so callers never need to check whether metrics are enabled.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	llmRequests *prometheus.CounterVec
	llmLatency  *prometheus.HistogramVec

	extractFailures *prometheus.CounterVec
	validationGaps  *prometheus.CounterVec

	alertDispatch *prometheus.CounterVec
	chatSessions  prometheus.Gauge
	chatDegraded  prometheus.Counter
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	v := strings.TrimSpace(os.Getenv("METRICS_ENABLED"))
	if v == "" {
		return true
	}
	return strings.EqualFold(v, "true") || v == "1" || strings.EqualFold(v, "yes")
}

func Current() *Metrics {
	return instance
}

// Init builds the process-wide Metrics once. Returns nil when METRICS_ENABLED
// is explicitly off.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = New()
		if log != nil {
			log.Info("prometheus metrics initialized")
		}
	})
	return instance
}

// New builds a Metrics backed by its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "b54_api_requests_total",
			Help: "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "b54_api_request_duration_seconds",
			Help:    "API request latency in seconds by method/route/status.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "b54_api_inflight_requests",
			Help: "In-flight API requests.",
		}),
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "b54_llm_requests_total",
			Help: "Generation calls by model/prompt/status.",
		}, []string{"model", "prompt", "status"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "b54_llm_request_duration_seconds",
			Help:    "Generation call latency in seconds by model/prompt.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"model", "prompt"}),
		extractFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "b54_extract_failures_total",
			Help: "Model responses that could not be parsed as JSON, by prompt.",
		}, []string{"prompt"}),
		validationGaps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "b54_validation_gaps_total",
			Help: "Parsed responses missing required fields or violating the schema, by prompt.",
		}, []string{"prompt"}),
		alertDispatch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "b54_alert_dispatch_total",
			Help: "Alert dispatch attempts by channel/kind/outcome.",
		}, []string{"channel", "kind", "outcome"}),
		chatSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "b54_chat_sessions_active",
			Help: "Chat sessions currently held in memory.",
		}),
		chatDegraded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "b54_chat_degraded_replies_total",
			Help: "Chat turns answered with the fallback reply.",
		}),
	}
	reg.MustRegister(
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.llmRequests, m.llmLatency,
		m.extractFailures, m.validationGaps,
		m.alertDispatch, m.chatSessions, m.chatDegraded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveLLMRequest records one generation call. status is "ok" or an error class.
func (m *Metrics) ObserveLLMRequest(model, prompt, status string, dur time.Duration) {
	if m == nil {
		return
	}
	model = orUnknown(model)
	prompt = orUnknown(prompt)
	m.llmRequests.WithLabelValues(model, prompt, orUnknown(status)).Inc()
	if dur > 0 {
		m.llmLatency.WithLabelValues(model, prompt).Observe(dur.Seconds())
	}
}

func (m *Metrics) IncExtractFailure(prompt string) {
	if m == nil {
		return
	}
	m.extractFailures.WithLabelValues(orUnknown(prompt)).Inc()
}

func (m *Metrics) IncValidationGap(prompt string) {
	if m == nil {
		return
	}
	m.validationGaps.WithLabelValues(orUnknown(prompt)).Inc()
}

func (m *Metrics) IncAlertDispatch(channel, kind string, success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.alertDispatch.WithLabelValues(orUnknown(channel), orUnknown(kind), outcome).Inc()
}

func (m *Metrics) SetChatSessions(n int) {
	if m == nil {
		return
	}
	m.chatSessions.Set(float64(n))
}

func (m *Metrics) IncChatDegraded() {
	if m == nil {
		return
	}
	m.chatDegraded.Inc()
}

func orUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}
