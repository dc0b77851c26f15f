package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	httpserver "github.com/HACKWAVE2025/B54/internal/http"
	"github.com/HACKWAVE2025/B54/internal/observability"
	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

// sessionSweepInterval is how often the chat-session gauge is refreshed.
const sessionSweepInterval = 30 * time.Second

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Metrics  *observability.Metrics
	Clients  Clients
	Services Services
	Server   *httpserver.Server

	otelShutdown func(context.Context) error
}

func New(ctx context.Context, cfg Config) (*App, error) {
	log, err := logger.New(cfg.Server.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	metrics := observability.Init(log)
	otelShutdown := observability.InitOTel(ctx, log, cfg.Telemetry.otel(cfg.Server.Version))

	clients, err := wireClients(ctx, log, cfg, metrics)
	if err != nil {
		_ = otelShutdown(context.Background())
		log.Sync()
		return nil, err
	}

	serviceset := wireServices(log, cfg, clients, metrics)
	handlerset := wireHandlers(log, cfg, serviceset)
	server := wireServer(log, cfg, handlerset, metrics)

	log.Info("App wired",
		"model", cfg.Gemini.Model,
		"alert_channel", serviceset.Notifier.Channel(),
		"metrics", metrics != nil,
	)

	return &App{
		Log:          log,
		Cfg:          cfg,
		Metrics:      metrics,
		Clients:      clients,
		Services:     serviceset,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP until ctx is cancelled or the listener fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", a.Cfg.Server.Addr)
		return a.Server.Run(gctx, a.Cfg.Server.Addr, a.Cfg.Server.ShutdownTimeout)
	})

	g.Go(func() error {
		t := time.NewTicker(sessionSweepInterval)
		defer t.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-t.C:
				a.Services.Chat.ActiveSessions()
			}
		}
	})

	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
