package gemini

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/HACKWAVE2025/B54/internal/platform/httpx"
)

// TransportError means the request never produced an HTTP response
// (DNS, connection reset, cancelled context, ...).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e == nil || e.Err == nil {
		return "gemini transport error"
	}
	return "gemini transport error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError is a non-success status returned by the API.
type UpstreamError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "gemini: <nil error>"
	}
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "<no message>"
	}
	if e.Status != "" {
		return fmt.Sprintf("gemini http %d (%s): %s", e.StatusCode, e.Status, httpx.TrimBody(msg, 2000))
	}
	return fmt.Sprintf("gemini http %d: %s", e.StatusCode, httpx.TrimBody(msg, 2000))
}

func (e *UpstreamError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// EmptyResponseError is a successful call whose response carried no text,
// typically because generation was blocked or stopped early.
type EmptyResponseError struct {
	FinishReason string
	BlockReason  string
}

func (e *EmptyResponseError) Error() string {
	parts := []string{"gemini returned no text"}
	if e != nil && e.FinishReason != "" {
		parts = append(parts, "finish_reason="+e.FinishReason)
	}
	if e != nil && e.BlockReason != "" {
		parts = append(parts, "block_reason="+e.BlockReason)
	}
	return strings.Join(parts, " ")
}

// classify maps an error from the genai SDK onto this package's error types.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{StatusCode: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &UpstreamError{StatusCode: apiErrPtr.Code, Status: apiErrPtr.Status, Message: apiErrPtr.Message}
	}
	var sc httpx.HTTPStatusCoder
	if errors.As(err, &sc) && sc.HTTPStatusCode() != 0 {
		return &UpstreamError{StatusCode: sc.HTTPStatusCode(), Message: err.Error()}
	}
	return &TransportError{Err: err}
}
