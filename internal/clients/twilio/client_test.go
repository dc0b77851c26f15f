package twilio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

func newTestClient(t *testing.T, srv *httptest.Server, cfg Config) Client {
	t.Helper()
	cfg.BaseURL = srv.URL
	if cfg.AccountSID == "" {
		cfg.AccountSID = "AC123"
	}
	if cfg.AuthToken == "" && cfg.APIKey == "" {
		cfg.AuthToken = "secret"
	}
	c, err := NewWithHTTPClient(logger.NewNop(), cfg, srv.Client())
	require.NoError(t, err)
	return c
}

func TestSendSMSPostsForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Accounts/AC123/Messages.json", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "secret", pass)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "+15550001111", r.PostForm.Get("To"))
		assert.Equal(t, "+15559990000", r.PostForm.Get("From"))
		assert.Equal(t, "help", r.PostForm.Get("Body"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM1","status":"queued","to":"+15550001111"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Config{DefaultFrom: "+15559990000"})
	msg, err := c.SendSMS(context.Background(), " +15550001111 ", "help")
	require.NoError(t, err)
	assert.Equal(t, "SM1", msg.SID)
	assert.Equal(t, "queued", msg.Status)
}

func TestSendSMSSingleAttemptOnFailure(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"code":20503,"message":"Service unavailable","status":503}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Config{DefaultFrom: "+1555"})
	_, err := c.SendSMS(context.Background(), "+1666", "help")
	require.Error(t, err)

	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusServiceUnavailable, he.HTTPStatusCode())
	assert.Contains(t, he.Error(), "code=20503")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestSendMessageValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Config{})
	_, err := c.SendSMS(context.Background(), "", "x")
	assert.Error(t, err)
	_, err = c.SendSMS(context.Background(), "+1", "x")
	assert.ErrorContains(t, err, "sender required")

	c = newTestClient(t, srv, Config{DefaultMessagingServiceSID: "MG1"})
	_, err = c.SendSMS(context.Background(), "+1", "  ")
	assert.ErrorContains(t, err, "Body required")
}

func TestAPIKeyAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, _ := r.BasicAuth()
		assert.Equal(t, "SK1", user)
		assert.Equal(t, "sk-secret", pass)
		_, _ = w.Write([]byte(`{"sid":"SM2"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Config{APIKey: "SK1", APIKeySecret: "sk-secret", DefaultFrom: "+1"})
	_, err := c.SendSMS(context.Background(), "+2", "hi")
	require.NoError(t, err)
}

func TestNewValidatesCredentials(t *testing.T) {
	_, err := New(logger.NewNop(), Config{})
	assert.Error(t, err)
	_, err = New(logger.NewNop(), Config{AccountSID: "AC"})
	assert.Error(t, err)
	_, err = New(logger.NewNop(), Config{AccountSID: "AC", APIKey: "SK"})
	assert.Error(t, err)
	_, err = New(nil, Config{AccountSID: "AC", AuthToken: "t"})
	assert.Error(t, err)

	assert.True(t, Config{AccountSID: "AC", AuthToken: "t"}.Configured())
	assert.False(t, Config{AuthToken: "t"}.Configured())
}
