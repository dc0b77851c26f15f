package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/HACKWAVE2025/B54/internal/platform/ctxutil"
	"github.com/HACKWAVE2025/B54/internal/platform/httpx"
	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

const DefaultBaseURL = "https://api.twilio.com/2010-04-01"

// Client sends SMS through the Twilio Messages API. Each call is a single
// attempt.
type Client interface {
	SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error)
	SendSMS(ctx context.Context, to string, body string) (*Message, error)
}

type Config struct {
	AccountSID                 string        `yaml:"account_sid" envconfig:"TWILIO_ACCOUNT_SID"`
	AuthToken                  string        `yaml:"auth_token" envconfig:"TWILIO_AUTH_TOKEN"`
	APIKey                     string        `yaml:"api_key" envconfig:"TWILIO_API_KEY"`
	APIKeySecret               string        `yaml:"api_key_secret" envconfig:"TWILIO_API_KEY_SECRET"`
	BaseURL                    string        `yaml:"base_url" envconfig:"TWILIO_BASE_URL"`
	DefaultFrom                string        `yaml:"from_number" envconfig:"TWILIO_FROM_NUMBER"`
	DefaultMessagingServiceSID string        `yaml:"messaging_service_sid" envconfig:"TWILIO_MESSAGING_SERVICE_SID"`
	DefaultStatusCallbackURL   string        `yaml:"status_callback_url" envconfig:"TWILIO_STATUS_CALLBACK_URL"`
	Timeout                    time.Duration `yaml:"timeout" envconfig:"TWILIO_TIMEOUT"`
}

// Configured reports whether cfg carries an account and a credential.
func (cfg Config) Configured() bool {
	if strings.TrimSpace(cfg.AccountSID) == "" {
		return false
	}
	return strings.TrimSpace(cfg.AuthToken) != "" || strings.TrimSpace(cfg.APIKey) != ""
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	return NewWithHTTPClient(log, cfg, nil)
}

// NewWithHTTPClient lets callers supply the transport. A nil hc gets a client
// with cfg.Timeout.
func NewWithHTTPClient(log *logger.Logger, cfg Config, hc *http.Client) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	cfg.AccountSID = strings.TrimSpace(cfg.AccountSID)
	if cfg.AccountSID == "" {
		return nil, fmt.Errorf("missing TWILIO_ACCOUNT_SID")
	}

	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.APIKeySecret = strings.TrimSpace(cfg.APIKeySecret)
	cfg.AuthToken = strings.TrimSpace(cfg.AuthToken)
	if cfg.APIKey != "" {
		if cfg.APIKeySecret == "" {
			return nil, fmt.Errorf("missing TWILIO_API_KEY_SECRET (required when TWILIO_API_KEY is set)")
		}
	} else if cfg.AuthToken == "" {
		return nil, fmt.Errorf("missing TWILIO_AUTH_TOKEN (or provide TWILIO_API_KEY + TWILIO_API_KEY_SECRET)")
	}

	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	return &client{
		log:        log.With("client", "TwilioClient"),
		cfg:        cfg,
		httpClient: hc,
	}, nil
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

type SendMessageRequest struct {
	To                  string
	From                string
	MessagingServiceSID string
	Body                string
	StatusCallbackURL   string
}

type Message struct {
	SID                 string  `json:"sid,omitempty"`
	AccountSID          string  `json:"account_sid,omitempty"`
	To                  string  `json:"to,omitempty"`
	From                string  `json:"from,omitempty"`
	Body                string  `json:"body,omitempty"`
	MessagingServiceSID string  `json:"messaging_service_sid,omitempty"`
	Status              string  `json:"status,omitempty"`
	NumSegments         string  `json:"num_segments,omitempty"`
	ErrorCode           *int    `json:"error_code,omitempty"`
	ErrorMessage        *string `json:"error_message,omitempty"`
	DateCreated         string  `json:"date_created,omitempty"`
}

func (c *client) SendSMS(ctx context.Context, to string, body string) (*Message, error) {
	return c.SendMessage(ctx, SendMessageRequest{
		To:   to,
		Body: body,
	})
}

func (c *client) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	if c == nil || c.httpClient == nil {
		return nil, fmt.Errorf("twilio client unavailable")
	}

	req.To = strings.TrimSpace(req.To)
	req.From = strings.TrimSpace(req.From)
	req.MessagingServiceSID = strings.TrimSpace(req.MessagingServiceSID)
	req.Body = strings.TrimSpace(req.Body)
	req.StatusCallbackURL = strings.TrimSpace(req.StatusCallbackURL)

	if req.To == "" {
		return nil, fmt.Errorf("twilio: To required")
	}
	if req.From == "" {
		req.From = strings.TrimSpace(c.cfg.DefaultFrom)
	}
	if req.MessagingServiceSID == "" {
		req.MessagingServiceSID = strings.TrimSpace(c.cfg.DefaultMessagingServiceSID)
	}
	if req.StatusCallbackURL == "" {
		req.StatusCallbackURL = strings.TrimSpace(c.cfg.DefaultStatusCallbackURL)
	}
	if req.From == "" && req.MessagingServiceSID == "" {
		return nil, fmt.Errorf("twilio: sender required (From or MessagingServiceSID)")
	}
	if req.Body == "" {
		return nil, fmt.Errorf("twilio: Body required")
	}

	form := url.Values{}
	form.Set("To", req.To)
	if req.From != "" {
		form.Set("From", req.From)
	}
	if req.MessagingServiceSID != "" {
		form.Set("MessagingServiceSid", req.MessagingServiceSID)
	}
	form.Set("Body", req.Body)
	if req.StatusCallbackURL != "" {
		form.Set("StatusCallback", req.StatusCallbackURL)
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.cfg.BaseURL, url.PathEscape(c.cfg.AccountSID))
	start := time.Now()
	msg, err := postForm[Message](c, ctx, endpoint, form)
	if err != nil {
		c.log.Warn("Twilio send failed",
			"to", req.To,
			"duration_ms", time.Since(start).Milliseconds(),
			"transient", httpx.IsTransient(err),
			"error", err.Error(),
		)
		return nil, err
	}
	c.log.Info("Twilio message queued",
		"to", req.To,
		"sid", msg.SID,
		"status", msg.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return msg, nil
}

type apiError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

type HTTPError struct {
	StatusCode int
	Body       string
	APIError   *apiError
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "twilio: <nil error>"
	}
	if e.APIError != nil && strings.TrimSpace(e.APIError.Message) != "" {
		if e.APIError.Code != 0 {
			return fmt.Sprintf("twilio http %d: %s (code=%d)", e.StatusCode, e.APIError.Message, e.APIError.Code)
		}
		return fmt.Sprintf("twilio http %d: %s", e.StatusCode, e.APIError.Message)
	}
	return fmt.Sprintf("twilio http %d: %s", e.StatusCode, httpx.TrimBody(e.Body, 4000))
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) basicAuth() (user, pass string) {
	if c.cfg.APIKey != "" {
		return c.cfg.APIKey, c.cfg.APIKeySecret
	}
	return c.cfg.AccountSID, c.cfg.AuthToken
}

func postForm[T any](c *client, ctx context.Context, urlStr string, form url.Values) (*T, error) {
	req, err := http.NewRequestWithContext(ctxutil.Default(ctx), http.MethodPost, urlStr, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if rid := ctxutil.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	u, p := c.basicAuth()
	req.SetBasicAuth(u, p)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ae apiError
		if json.Unmarshal(raw, &ae) == nil && strings.TrimSpace(ae.Message) != "" {
			return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw), APIError: &ae}
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out T
	if len(raw) == 0 {
		return &out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("twilio decode error: %w; raw=%s", err, httpx.TrimBody(string(raw), 512))
	}
	return &out, nil
}
