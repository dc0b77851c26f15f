// Package chat keeps multi-turn assistant conversations. A Session always
// answers: backend failures become a fallback reply instead of an error.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HACKWAVE2025/B54/internal/analysis/prompts"
	"github.com/HACKWAVE2025/B54/internal/clients/gemini"
	"github.com/HACKWAVE2025/B54/internal/observability"
	"github.com/HACKWAVE2025/B54/internal/platform/ctxutil"
	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

const (
	DefaultDirective = "You are a specialized medical AI assistant. Your ONLY purpose is to answer health and medical-related questions. " +
		"If a user asks a question that is NOT related to medicine, health, biology, or wellness, you MUST politely decline to answer " +
		"and state that you are only programmed for medical inquiries. For all medical questions, provide general information and " +
		"ALWAYS remind the user to consult a healthcare professional for actual medical advice."

	// AttachmentPlaceholder stands in for the question when only an image is sent.
	AttachmentPlaceholder = "(No text provided, please describe the image)"

	FallbackReply = "Sorry, I couldn't get a response. Please try again."
)

var ErrEmptyMessage = errors.New("message needs text or an attachment")

// Conversant is the backend a Session talks to. gemini.Client satisfies it.
type Conversant interface {
	Converse(ctx context.Context, directive string, history []gemini.Message, live gemini.Message) (string, error)
}

type Turn struct {
	Role       gemini.Role
	Text       string
	Attachment *prompts.Attachment
	// Degraded marks the fallback reply and the user turn it answered.
	Degraded bool
	At       time.Time
}

// Reply is what Send hands back. Degraded replies are still valid text.
type Reply struct {
	Text     string `json:"text"`
	Degraded bool   `json:"degraded"`
}

type Options struct {
	ID        string
	Directive string
	Language  string
}

type Session struct {
	id        string
	directive string
	language  string
	createdAt time.Time

	backend Conversant
	log     *logger.Logger
	metrics *observability.Metrics

	// sendMu serialises exchanges so turns land in send order. mu guards the
	// transcript and is never held across a backend call.
	sendMu     sync.Mutex
	mu         sync.Mutex
	turns      []Turn
	lastActive time.Time
}

func NewSession(backend Conversant, log *logger.Logger, metrics *observability.Metrics, opts Options) (*Session, error) {
	if backend == nil {
		return nil, fmt.Errorf("chat backend required")
	}
	if log == nil {
		log = logger.NewNop()
	}
	id := strings.TrimSpace(opts.ID)
	if id == "" {
		id = uuid.NewString()
	}
	directive := strings.TrimSpace(opts.Directive)
	if directive == "" {
		directive = DefaultDirective
	}
	language := strings.TrimSpace(opts.Language)
	if language == "" {
		language = prompts.DefaultLanguage
	}
	now := time.Now().UTC()
	return &Session{
		id:         id,
		directive:  directive,
		language:   language,
		createdAt:  now,
		lastActive: now,
		backend:    backend,
		log:        log.With("component", "ChatSession", "session_id", id),
		metrics:    metrics,
	}, nil
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Directive() string    { return s.directive }
func (s *Session) Language() string     { return s.language }
func (s *Session) CreatedAt() time.Time { return s.createdAt }

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Turns returns a copy of the conversation so far.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// CheckMessage reports ErrEmptyMessage when there is nothing to send.
func CheckMessage(text string, att *prompts.Attachment) error {
	if strings.TrimSpace(text) == "" && (att == nil || len(att.Data) == 0) {
		return ErrEmptyMessage
	}
	return nil
}

// Send runs one exchange. Prior turns are sent as history; the new message is
// the live prompt, wrapped with the session language. On backend failure the
// fallback reply is recorded and returned with Degraded set. An empty message
// is ignored and yields a zero Reply.
func (s *Session) Send(ctx context.Context, text string, att *prompts.Attachment) Reply {
	if CheckMessage(text, att) != nil {
		return Reply{}
	}
	if att != nil && len(att.Data) == 0 {
		att = nil
	}
	ctx = ctxutil.Default(ctx)

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	s.mu.Lock()
	history := s.historyLocked()
	s.mu.Unlock()
	live := gemini.Message{
		Role:       gemini.RoleUser,
		Text:       s.livePrompt(text),
		Attachment: att,
	}

	start := time.Now()
	out, err := s.backend.Converse(ctx, s.directive, history, live)
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = now

	user := Turn{Role: gemini.RoleUser, Text: text, Attachment: att, At: now}
	if err != nil || strings.TrimSpace(out) == "" {
		if err == nil {
			err = fmt.Errorf("empty reply")
		}
		user.Degraded = true
		s.turns = append(s.turns, user, Turn{Role: gemini.RoleModel, Text: FallbackReply, Degraded: true, At: now})
		s.metrics.IncChatDegraded()
		s.log.Warn("chat turn degraded",
			"turn", len(s.turns)/2,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", ctxutil.RequestID(ctx),
			"error", err.Error(),
		)
		return Reply{Text: FallbackReply, Degraded: true}
	}

	s.turns = append(s.turns, user, Turn{Role: gemini.RoleModel, Text: out, At: now})
	s.log.Debug("chat turn ok",
		"turn", len(s.turns)/2,
		"history_turns", len(history),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return Reply{Text: out}
}

func (s *Session) livePrompt(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		text = AttachmentPlaceholder
	}
	return fmt.Sprintf("Please respond in %s. Here is my question: %s", s.language, text)
}

// historyLocked builds the backend history from recorded turns. Degraded
// exchanges are left out so the model never sees the fallback text.
func (s *Session) historyLocked() []gemini.Message {
	out := make([]gemini.Message, 0, len(s.turns))
	for _, t := range s.turns {
		if t.Degraded {
			continue
		}
		out = append(out, gemini.Message{Role: t.Role, Text: t.Text, Attachment: t.Attachment})
	}
	return out
}
