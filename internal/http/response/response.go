package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HACKWAVE2025/B54/internal/analysis/extract"
	"github.com/HACKWAVE2025/B54/internal/clients/gemini"
	"github.com/HACKWAVE2025/B54/internal/platform/apierr"
	"github.com/HACKWAVE2025/B54/internal/platform/httpx"
)

type APIError struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondErr maps err onto a status and code and writes the error envelope.
func RespondErr(c *gin.Context, err error) {
	status, code := Classify(err)
	if err != nil {
		_ = c.Error(err)
	}
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message:   msg,
			Code:      code,
			Retryable: httpx.IsTransient(err) || code == "transport_error",
		},
	})
}

// Classify returns the HTTP status and error code for err.
func Classify(err error) (int, string) {
	if ae, ok := apierr.As(err); ok {
		status := ae.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, ae.Code
	}
	var (
		me *extract.MalformedOutputError
		ue *gemini.UpstreamError
		ee *gemini.EmptyResponseError
		te *gemini.TransportError
	)
	switch {
	case errors.As(err, &me):
		return http.StatusBadGateway, "malformed_output"
	case errors.As(err, &ue):
		return http.StatusBadGateway, "upstream_error"
	case errors.As(err, &ee):
		return http.StatusBadGateway, "empty_response"
	case errors.As(err, &te):
		return http.StatusServiceUnavailable, "transport_error"
	case errors.Is(err, context.Canceled):
		return 499, "canceled"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
