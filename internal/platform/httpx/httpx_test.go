package httpx

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type statusErr int

func (s statusErr) Error() string       { return fmt.Sprintf("status %d", int(s)) }
func (s statusErr) HTTPStatusCode() int { return int(s) }

func TestStatusCode(t *testing.T) {
	code, ok := StatusCode(fmt.Errorf("wrap: %w", statusErr(503)))
	if !ok || code != 503 {
		t.Fatalf("StatusCode=%d,%v", code, ok)
	}
	if _, ok := StatusCode(errors.New("plain")); ok {
		t.Fatalf("plain error should carry no status")
	}
	if _, ok := StatusCode(nil); ok {
		t.Fatalf("nil error should carry no status")
	}
}

func TestIsTransient(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadline", context.DeadlineExceeded, true},
		{"rate_limited", statusErr(429), true},
		{"server_error", statusErr(502), true},
		{"bad_request", statusErr(400), false},
		{"plain", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTransient(tc.err); got != tc.want {
				t.Fatalf("IsTransient(%v)=%v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestTrimBody(t *testing.T) {
	if got := TrimBody("   ", 10); got != "<empty body>" {
		t.Fatalf("TrimBody empty=%q", got)
	}
	if got := TrimBody("abcdefghijkl", 4); got != "abcd..." {
		t.Fatalf("TrimBody long=%q", got)
	}
}
