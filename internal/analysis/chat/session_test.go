package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HACKWAVE2025/B54/internal/analysis/prompts"
	"github.com/HACKWAVE2025/B54/internal/clients/gemini"
	"github.com/HACKWAVE2025/B54/internal/observability"
	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

type call struct {
	directive string
	history   []gemini.Message
	live      gemini.Message
}

type fakeBackend struct {
	mu      sync.Mutex
	calls   []call
	replies []string
	errs    []error
}

func (f *fakeBackend) Converse(ctx context.Context, directive string, history []gemini.Message, live gemini.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.calls)
	f.calls = append(f.calls, call{directive: directive, history: append([]gemini.Message(nil), history...), live: live})
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "ok", nil
}

func newSession(t *testing.T, f *fakeBackend, opts Options) *Session {
	t.Helper()
	s, err := NewSession(f, logger.NewNop(), nil, opts)
	require.NoError(t, err)
	return s
}

func TestHistoryExcludesLiveTurn(t *testing.T) {
	f := &fakeBackend{replies: []string{"Hello! How can I help?", "Sure."}}
	s := newSession(t, f, Options{})

	r := s.Send(context.Background(), "hello", nil)
	assert.Equal(t, Reply{Text: "Hello! How can I help?"}, r)
	assert.Empty(t, f.calls[0].history)

	s.Send(context.Background(), "again", nil)
	require.Len(t, f.calls, 2)
	h := f.calls[1].history
	require.Len(t, h, 2)
	assert.Equal(t, gemini.Message{Role: gemini.RoleUser, Text: "hello"}, h[0])
	assert.Equal(t, gemini.Message{Role: gemini.RoleModel, Text: "Hello! How can I help?"}, h[1])
	assert.Equal(t, "Please respond in English. Here is my question: again", f.calls[1].live.Text)
	assert.Len(t, s.Turns(), 4)
}

func TestFailureYieldsFallbackAndSessionStaysUsable(t *testing.T) {
	f := &fakeBackend{
		replies: []string{"", "Back online."},
		errs:    []error{&gemini.TransportError{Err: errors.New("connection reset")}},
	}
	metrics := observability.New()
	s, err := NewSession(f, logger.NewNop(), metrics, Options{})
	require.NoError(t, err)

	r := s.Send(context.Background(), "hello", nil)
	assert.True(t, r.Degraded)
	assert.Equal(t, FallbackReply, r.Text)

	turns := s.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, gemini.RoleModel, turns[1].Role)
	assert.Equal(t, FallbackReply, turns[1].Text)

	r = s.Send(context.Background(), "still there?", nil)
	assert.False(t, r.Degraded)
	assert.Equal(t, "Back online.", r.Text)
	assert.Empty(t, f.calls[1].history, "degraded exchange is not sent as history")
	assert.Len(t, s.Turns(), 4)
}

func TestEmptyReplyIsDegraded(t *testing.T) {
	f := &fakeBackend{replies: []string{"   "}}
	s := newSession(t, f, Options{})
	r := s.Send(context.Background(), "hi", nil)
	assert.True(t, r.Degraded)
}

func TestAttachmentOnlyUsesPlaceholder(t *testing.T) {
	f := &fakeBackend{}
	s := newSession(t, f, Options{Language: "Hindi"})
	att := &prompts.Attachment{MIMEType: "image/png", Data: []byte{1, 2, 3}}

	s.Send(context.Background(), "  ", att)
	require.Len(t, f.calls, 1)
	assert.Equal(t, "Please respond in Hindi. Here is my question: "+AttachmentPlaceholder, f.calls[0].live.Text)
	assert.Same(t, att, f.calls[0].live.Attachment)
	assert.Equal(t, DefaultDirective, f.calls[0].directive)
}

func TestEmptyMessageIsIgnored(t *testing.T) {
	f := &fakeBackend{}
	s := newSession(t, f, Options{})
	assert.Equal(t, Reply{}, s.Send(context.Background(), "", nil))
	assert.Empty(t, f.calls)
	assert.ErrorIs(t, CheckMessage(" ", &prompts.Attachment{}), ErrEmptyMessage)
}

func TestConcurrentSendsKeepPairs(t *testing.T) {
	f := &fakeBackend{}
	s := newSession(t, f, Options{ID: "fixed"})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Send(context.Background(), "q", nil)
		}()
	}
	wg.Wait()
	turns := s.Turns()
	require.Len(t, turns, 16)
	for i := 0; i < len(turns); i += 2 {
		assert.Equal(t, gemini.RoleUser, turns[i].Role)
		assert.Equal(t, gemini.RoleModel, turns[i+1].Role)
	}
	assert.Equal(t, "fixed", s.ID())
}

func TestStore(t *testing.T) {
	st := NewStore(2, time.Minute, nil)
	f := &fakeBackend{}
	a := newSession(t, f, Options{ID: "a"})
	b := newSession(t, f, Options{ID: "b"})
	c := newSession(t, f, Options{ID: "c"})

	st.Put(a)
	st.Put(b)
	_, ok := st.Get("a")
	require.True(t, ok)
	st.Put(c)

	_, ok = st.Get("b")
	assert.False(t, ok, "least recently used session evicted")
	assert.Equal(t, 2, st.Len())
	assert.True(t, st.Delete("a"))
	assert.False(t, st.Delete("a"))
}

func TestNewSessionNeedsBackend(t *testing.T) {
	_, err := NewSession(nil, nil, nil, Options{})
	assert.Error(t, err)
}

type blockingBackend struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingBackend) Converse(ctx context.Context, directive string, history []gemini.Message, live gemini.Message) (string, error) {
	close(b.started)
	<-b.release
	return "done", nil
}

func TestReadsDoNotWaitOnInFlightSend(t *testing.T) {
	b := &blockingBackend{started: make(chan struct{}), release: make(chan struct{})}
	s, err := NewSession(b, logger.NewNop(), nil, Options{})
	require.NoError(t, err)

	sent := make(chan Reply, 1)
	go func() { sent <- s.Send(context.Background(), "hello", nil) }()
	<-b.started

	read := make(chan int, 1)
	go func() {
		_ = s.LastActive()
		read <- len(s.Turns())
	}()
	select {
	case n := <-read:
		assert.Zero(t, n)
	case <-time.After(time.Second):
		t.Fatal("Turns/LastActive blocked while a send was in flight")
	}

	close(b.release)
	reply := <-sent
	assert.Equal(t, "done", reply.Text)
	assert.Len(t, s.Turns(), 2)
}
