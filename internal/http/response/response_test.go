package response

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/HACKWAVE2025/B54/internal/analysis/extract"
	"github.com/HACKWAVE2025/B54/internal/clients/gemini"
	"github.com/HACKWAVE2025/B54/internal/platform/apierr"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apierr.BadRequest("invalid_input", "bad"), http.StatusBadRequest, "invalid_input"},
		{apierr.NotFound("session_not_found", "gone"), http.StatusNotFound, "session_not_found"},
		{&extract.MalformedOutputError{Err: errors.New("x")}, http.StatusBadGateway, "malformed_output"},
		{&gemini.UpstreamError{StatusCode: 500}, http.StatusBadGateway, "upstream_error"},
		{&gemini.EmptyResponseError{}, http.StatusBadGateway, "empty_response"},
		{&gemini.TransportError{Err: errors.New("dial")}, http.StatusServiceUnavailable, "transport_error"},
		{context.Canceled, 499, "canceled"},
		{errors.New("?"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		status, code := Classify(tc.err)
		assert.Equal(t, tc.status, status, tc.code)
		assert.Equal(t, tc.code, code)
	}
}

func TestRespondErrEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondErr(c, &gemini.TransportError{Err: errors.New("connection refused")})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":{"message":"gemini transport error: connection refused","code":"transport_error","retryable":true}}`, rec.Body.String())
}
