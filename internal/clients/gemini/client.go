package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"github.com/HACKWAVE2025/B54/internal/analysis/prompts"
	"github.com/HACKWAVE2025/B54/internal/observability"
	"github.com/HACKWAVE2025/B54/internal/platform/ctxutil"
	"github.com/HACKWAVE2025/B54/internal/platform/httpx"
	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

const DefaultModel = "gemini-2.5-flash"

// Client issues exactly one model call per method invocation. It never retries
// and imposes no deadline beyond the one carried by ctx.
type Client interface {
	// Generate returns the model's free-text answer to p.
	Generate(ctx context.Context, p prompts.Prompt) (string, error)
	// GenerateStructured asks for application/json constrained by p.Schema and
	// returns the raw text, which may still need fence stripping.
	GenerateStructured(ctx context.Context, p prompts.Prompt) (string, error)
	// Converse sends a multi-turn exchange under a fixed system directive.
	Converse(ctx context.Context, directive string, history []Message, live Message) (string, error)
}

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn of a conversation as sent to the model.
type Message struct {
	Role       Role
	Text       string
	Attachment *prompts.Attachment
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	// Zero keeps the transport default.
	Timeout time.Duration
}

// contentGenerator is the slice of *genai.Models this package relies on.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type client struct {
	log     *logger.Logger
	models  contentGenerator
	model   string
	metrics *observability.Metrics
}

func New(ctx context.Context, log *logger.Logger, cfg Config, metrics *observability.Metrics) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		cc.HTTPOptions.BaseURL = strings.TrimRight(base, "/") + "/"
	}
	if cfg.Timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	gc, err := genai.NewClient(ctxutil.Default(ctx), cc)
	if err != nil {
		return nil, fmt.Errorf("init genai client: %w", err)
	}
	return newWithModels(log, gc.Models, cfg.Model, metrics), nil
}

func newWithModels(log *logger.Logger, models contentGenerator, model string, metrics *observability.Metrics) *client {
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	return &client{
		log:     log.With("client", "GeminiClient", "model", model),
		models:  models,
		model:   model,
		metrics: metrics,
	}
}

func (c *client) Generate(ctx context.Context, p prompts.Prompt) (string, error) {
	cfg := &genai.GenerateContentConfig{SystemInstruction: systemContent(p.System)}
	contents := []*genai.Content{userContent(p.User, p.Attachment)}
	return c.call(ctx, string(p.Name), contents, cfg)
}

func (c *client) GenerateStructured(ctx context.Context, p prompts.Prompt) (string, error) {
	if p.Schema == nil {
		return "", fmt.Errorf("prompt %s has no response schema", p.Name)
	}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: systemContent(p.System),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    p.Schema.ToGenai(),
	}
	contents := []*genai.Content{userContent(p.User, p.Attachment)}
	return c.call(ctx, string(p.Name), contents, cfg)
}

func (c *client) Converse(ctx context.Context, directive string, history []Message, live Message) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, messageContent(m))
	}
	live.Role = RoleUser
	contents = append(contents, messageContent(live))
	cfg := &genai.GenerateContentConfig{SystemInstruction: systemContent(directive)}
	return c.call(ctx, "chat", contents, cfg)
}

func (c *client) call(ctx context.Context, op string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	ctx = ctxutil.Default(ctx)
	ctx, span := observability.Tracer().Start(ctx, "gemini.generate_content")
	defer span.End()
	span.SetAttributes(
		attribute.String("gen_ai.request.model", c.model),
		attribute.String("b54.prompt", op),
		attribute.Int("b54.contents", len(contents)),
	)

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, contents, cfg)
	dur := time.Since(start)
	if err != nil {
		cerr := classify(err)
		c.metrics.ObserveLLMRequest(c.model, op, errorClass(cerr), dur)
		span.RecordError(cerr)
		span.SetStatus(codes.Error, errorClass(cerr))
		c.log.Warn("Gemini request failed",
			"prompt", op,
			"duration_ms", dur.Milliseconds(),
			"transient", httpx.IsTransient(cerr),
			"request_id", ctxutil.RequestID(ctx),
			"error", cerr.Error(),
		)
		return "", cerr
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		eerr := emptyResponse(resp)
		c.metrics.ObserveLLMRequest(c.model, op, errorClass(eerr), dur)
		span.SetStatus(codes.Error, "empty_response")
		c.log.Warn("Gemini returned no text",
			"prompt", op,
			"duration_ms", dur.Milliseconds(),
			"finish_reason", eerr.FinishReason,
			"block_reason", eerr.BlockReason,
		)
		return "", eerr
	}

	c.metrics.ObserveLLMRequest(c.model, op, "ok", dur)
	c.log.Debug("Gemini request ok",
		"prompt", op,
		"duration_ms", dur.Milliseconds(),
		"response_chars", len(text),
		"request_id", ctxutil.RequestID(ctx),
	)
	return text, nil
}

func systemContent(text string) *genai.Content {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

func userContent(text string, att *prompts.Attachment) *genai.Content {
	return messageContent(Message{Role: RoleUser, Text: text, Attachment: att})
}

// messageContent keeps the text part first and the attachment as its own
// inline part.
func messageContent(m Message) *genai.Content {
	role := m.Role
	if role == "" {
		role = RoleUser
	}
	parts := make([]*genai.Part, 0, 2)
	if strings.TrimSpace(m.Text) != "" {
		parts = append(parts, &genai.Part{Text: m.Text})
	}
	if m.Attachment != nil && len(m.Attachment.Data) > 0 {
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{
			MIMEType: m.Attachment.MIMEType,
			Data:     m.Attachment.Data,
		}})
	}
	return &genai.Content{Role: string(role), Parts: parts}
}

// responseText concatenates the non-thought text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}

func emptyResponse(resp *genai.GenerateContentResponse) *EmptyResponseError {
	out := &EmptyResponseError{}
	if resp == nil {
		return out
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		out.FinishReason = string(resp.Candidates[0].FinishReason)
	}
	if resp.PromptFeedback != nil {
		out.BlockReason = string(resp.PromptFeedback.BlockReason)
	}
	return out
}

func errorClass(err error) string {
	var te *TransportError
	var ue *UpstreamError
	var ee *EmptyResponseError
	switch {
	case errors.As(err, &te):
		return "transport_error"
	case errors.As(err, &ue):
		return fmt.Sprintf("http_%d", ue.StatusCode)
	case errors.As(err, &ee):
		return "empty_response"
	default:
		return "error"
	}
}
