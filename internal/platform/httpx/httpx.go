package httpx

import (
	"context"
	"errors"
	"net"
	"strings"
)

type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

// StatusCode returns the HTTP status carried by the first HTTPStatusCoder in
// err's chain.
func StatusCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	var sc HTTPStatusCoder
	if errors.As(err, &sc) {
		if code := sc.HTTPStatusCode(); code != 0 {
			return code, true
		}
	}
	return 0, false
}

func IsRetryableHTTPStatus(code int) bool {
	if code == 408 || code == 429 {
		return true
	}
	return code >= 500 && code <= 599
}

// IsTransient reports whether a caller may reasonably try again later. Nothing
// in this module retries on its own; the flag is surfaced in logs and to clients.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if code, ok := StatusCode(err); ok {
		return IsRetryableHTTPStatus(code)
	}
	return false
}

// TrimBody shortens an upstream response body for inclusion in an error.
func TrimBody(raw string, max int) string {
	msg := strings.TrimSpace(raw)
	if msg == "" {
		return "<empty body>"
	}
	if max > 0 && len(msg) > max {
		return msg[:max] + "..."
	}
	return msg
}
