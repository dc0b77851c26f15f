// Package alerts composes emergency notifications and hands them to an
// outbound channel. Dispatch failures are values, never errors.
package alerts

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/HACKWAVE2025/B54/internal/clients/telegram"
	"github.com/HACKWAVE2025/B54/internal/clients/twilio"
	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

const (
	ChannelSMS      = "twilio"
	ChannelTelegram = "telegram"
	ChannelLog      = "log"
)

// Result reports the outcome of one dispatch attempt.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func failed(format string, args ...any) Result {
	return Result{Success: false, Error: fmt.Sprintf(format, args...)}
}

// Dispatcher sends message to contact once.
type Dispatcher interface {
	Dispatch(ctx context.Context, contact, message string) Result
	Channel() string
}

type smsDispatcher struct {
	client twilio.Client
}

func NewSMSDispatcher(client twilio.Client) Dispatcher {
	return &smsDispatcher{client: client}
}

func (d *smsDispatcher) Channel() string { return ChannelSMS }

func (d *smsDispatcher) Dispatch(ctx context.Context, contact, message string) Result {
	if d.client == nil {
		return failed("sms channel not configured")
	}
	if _, err := d.client.SendSMS(ctx, contact, message); err != nil {
		return failed("%v", err)
	}
	return Result{Success: true}
}

// telegramDispatcher treats contact as a numeric chat id.
type telegramDispatcher struct {
	client telegram.Client
}

func NewTelegramDispatcher(client telegram.Client) Dispatcher {
	return &telegramDispatcher{client: client}
}

func (d *telegramDispatcher) Channel() string { return ChannelTelegram }

func (d *telegramDispatcher) Dispatch(ctx context.Context, contact, message string) Result {
	if d.client == nil {
		return failed("telegram channel not configured")
	}
	chatID, ok := parseChatID(contact)
	if !ok {
		return failed("invalid telegram chat id %q", contact)
	}
	if err := d.client.SendText(ctx, chatID, message); err != nil {
		return failed("%v", err)
	}
	return Result{Success: true}
}

// logDispatcher only writes the alert to the log. Used when no outbound
// channel is configured.
type logDispatcher struct {
	log *logger.Logger
}

func NewLogDispatcher(log *logger.Logger) Dispatcher {
	if log == nil {
		log = logger.NewNop()
	}
	return &logDispatcher{log: log.With("component", "LogDispatcher")}
}

func (d *logDispatcher) Channel() string { return ChannelLog }

func (d *logDispatcher) Dispatch(ctx context.Context, contact, message string) Result {
	// The log line is the only record on this channel, so the text goes
	// under a key the logger does not shorten.
	d.log.Warn("ALERT (log channel)", "contact", contact, "alert_body", message)
	return Result{Success: true}
}

// parseChatID accepts a Telegram chat id: a plain user id or a negative
// group/channel id. Phone-number shaped contacts ("+1555...") are rejected.
func parseChatID(contact string) (int64, bool) {
	contact = strings.TrimSpace(contact)
	if contact == "" || strings.HasPrefix(contact, "+") {
		return 0, false
	}
	id, err := strconv.ParseInt(contact, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
