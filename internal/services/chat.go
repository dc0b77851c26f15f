package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/HACKWAVE2025/B54/internal/analysis/chat"
	"github.com/HACKWAVE2025/B54/internal/analysis/prompts"
	"github.com/HACKWAVE2025/B54/internal/observability"
	"github.com/HACKWAVE2025/B54/internal/platform/apierr"
	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

type ChatService interface {
	// CreateSession starts an assistant conversation under the fixed medical
	// directive.
	CreateSession(ctx context.Context, language string) (*chat.Session, error)
	GetSession(ctx context.Context, id string) (*chat.Session, error)
	// SendMessage never reports backend failures; those come back as a
	// degraded reply. Errors are limited to unknown sessions and empty input.
	SendMessage(ctx context.Context, id, text string, att *prompts.Attachment) (chat.Reply, error)
	DeleteSession(ctx context.Context, id string) error
	// ActiveSessions reports the live session count and refreshes the gauge,
	// which TTL expiry alone does not update.
	ActiveSessions() int
}

type ChatConfig struct {
	MaxSessions int           `yaml:"max_sessions" envconfig:"CHAT_MAX_SESSIONS"`
	IdleTTL     time.Duration `yaml:"idle_ttl" envconfig:"CHAT_IDLE_TTL"`
	Directive   string        `yaml:"directive" envconfig:"CHAT_DIRECTIVE"`
}

type chatService struct {
	log       *logger.Logger
	backend   chat.Conversant
	store     *chat.Store
	directive string
	metrics   *observability.Metrics
}

func NewChatService(baseLog *logger.Logger, backend chat.Conversant, cfg ChatConfig, metrics *observability.Metrics) ChatService {
	if baseLog == nil {
		baseLog = logger.NewNop()
	}
	return &chatService{
		log:       baseLog.With("service", "ChatService"),
		backend:   backend,
		store:     chat.NewStore(cfg.MaxSessions, cfg.IdleTTL, metrics),
		directive: strings.TrimSpace(cfg.Directive),
		metrics:   metrics,
	}
}

func (s *chatService) CreateSession(ctx context.Context, language string) (*chat.Session, error) {
	sess, err := chat.NewSession(s.backend, s.log, s.metrics, chat.Options{
		Directive: s.directive,
		Language:  language,
	})
	if err != nil {
		return nil, err
	}
	s.store.Put(sess)
	s.log.Info("chat session created", "session_id", sess.ID(), "language", sess.Language())
	return sess, nil
}

func (s *chatService) GetSession(ctx context.Context, id string) (*chat.Session, error) {
	sess, ok := s.store.Get(strings.TrimSpace(id))
	if !ok {
		return nil, apierr.NotFound("session_not_found", "chat session %q not found", id)
	}
	return sess, nil
}

func (s *chatService) SendMessage(ctx context.Context, id, text string, att *prompts.Attachment) (chat.Reply, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return chat.Reply{}, err
	}
	if err := chat.CheckMessage(text, att); err != nil {
		return chat.Reply{}, apierr.New(http.StatusBadRequest, "empty_message", err)
	}
	return sess.Send(ctx, text, att), nil
}

func (s *chatService) DeleteSession(ctx context.Context, id string) error {
	if !s.store.Delete(strings.TrimSpace(id)) {
		return apierr.NotFound("session_not_found", "chat session %q not found", id)
	}
	s.log.Info("chat session deleted", "session_id", id)
	return nil
}

func (s *chatService) ActiveSessions() int {
	n := s.store.Len()
	s.metrics.SetChatSessions(n)
	return n
}
