package alerts

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/HACKWAVE2025/B54/internal/observability"
	"github.com/HACKWAVE2025/B54/internal/platform/ctxutil"
	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

type Config struct {
	Channel string `yaml:"channel" envconfig:"ALERT_CHANNEL"`
	// Contact is the fixed emergency destination: a phone number for SMS, a
	// chat id for Telegram.
	Contact string `yaml:"contact" envconfig:"ALERT_CONTACT"`
}

// Notifier sends alerts to the configured emergency contact, one attempt each.
type Notifier struct {
	dispatcher Dispatcher
	contact    string
	log        *logger.Logger
	metrics    *observability.Metrics
}

func NewNotifier(d Dispatcher, contact string, log *logger.Logger, metrics *observability.Metrics) *Notifier {
	if log == nil {
		log = logger.NewNop()
	}
	if d == nil {
		d = NewLogDispatcher(log)
	}
	return &Notifier{
		dispatcher: d,
		contact:    strings.TrimSpace(contact),
		log:        log.With("component", "AlertNotifier", "channel", d.Channel()),
		metrics:    metrics,
	}
}

func (n *Notifier) Channel() string { return n.dispatcher.Channel() }

func (n *Notifier) Notify(ctx context.Context, a Alert) Result {
	ctx = ctxutil.Default(ctx)
	ctx, span := observability.Tracer().Start(ctx, "alerts.notify")
	defer span.End()
	span.SetAttributes(
		attribute.String("b54.alert.kind", string(a.Kind)),
		attribute.String("b54.alert.channel", n.dispatcher.Channel()),
	)

	var res Result
	start := time.Now()
	switch {
	case n.contact == "":
		res = failed("no emergency contact configured")
	case strings.TrimSpace(a.Message) == "":
		res = failed("empty alert message")
	default:
		res = n.dispatcher.Dispatch(ctx, n.contact, a.Message)
	}

	n.metrics.IncAlertDispatch(n.dispatcher.Channel(), string(a.Kind), res.Success)
	if !res.Success {
		span.SetStatus(codes.Error, res.Error)
		n.log.Error("alert dispatch failed",
			"kind", a.Kind,
			"contact", n.contact,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", ctxutil.RequestID(ctx),
			"error", res.Error,
		)
		return res
	}
	n.log.Info("alert dispatched",
		"kind", a.Kind,
		"contact", n.contact,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", ctxutil.RequestID(ctx),
	)
	return res
}
