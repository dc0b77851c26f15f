package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/HACKWAVE2025/B54/internal/analysis/prompts"
	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

type fakeModels struct {
	calls    int
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	resp     *genai.GenerateContentResponse
	err      error
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	ps := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		ps = append(ps, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content:      &genai.Content{Role: "model", Parts: ps},
		FinishReason: genai.FinishReasonStop,
	}}}
}

func newTestClient(f *fakeModels) *client {
	return newWithModels(logger.NewNop(), f, "", nil)
}

func TestGenerateStructuredSendsSchemaAndAttachment(t *testing.T) {
	att, err := prompts.NewAttachment([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, "image/png")
	require.NoError(t, err)
	p, err := prompts.Build(prompts.PromptMedicalReportECG, prompts.Input{ReportText: "ST elevation", Attachment: att})
	require.NoError(t, err)

	f := &fakeModels{resp: textResponse(`{"criticalAlert":"HIGH"}`)}
	out, err := newTestClient(f).GenerateStructured(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, `{"criticalAlert":"HIGH"}`, out)
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, DefaultModel, f.model)
	require.NotNil(t, f.config)
	assert.Equal(t, "application/json", f.config.ResponseMIMEType)
	require.NotNil(t, f.config.ResponseSchema)
	assert.Equal(t, genai.TypeObject, f.config.ResponseSchema.Type)
	require.NotNil(t, f.config.SystemInstruction)

	require.Len(t, f.contents, 1)
	parts := f.contents[0].Parts
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0].Text, "ST elevation")
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "image/png", parts[1].InlineData.MIMEType)
}

func TestGenerateStructuredNeedsSchema(t *testing.T) {
	f := &fakeModels{resp: textResponse("x")}
	_, err := newTestClient(f).GenerateStructured(context.Background(), prompts.Prompt{Name: prompts.PromptWellnessRecipe})
	assert.Error(t, err)
	assert.Zero(t, f.calls)
}

func TestGenerateFreeTextSkipsThoughts(t *testing.T) {
	resp := textResponse("Step 1. ", "Breathe.")
	resp.Candidates[0].Content.Parts = append([]*genai.Part{{Text: "thinking...", Thought: true}}, resp.Candidates[0].Content.Parts...)
	f := &fakeModels{resp: resp}

	p, err := prompts.Build(prompts.PromptWellnessMindfulness, prompts.Input{})
	require.NoError(t, err)
	out, err := newTestClient(f).Generate(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "Step 1. Breathe.", out)
	assert.Empty(t, f.config.ResponseMIMEType)
	assert.Nil(t, f.config.ResponseSchema)
}

func TestEmptyResponse(t *testing.T) {
	f := &fakeModels{resp: &genai.GenerateContentResponse{
		Candidates:     []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
	}}
	p, err := prompts.Build(prompts.PromptOrganInformation, prompts.Input{Organ: "Heart"})
	require.NoError(t, err)

	_, err = newTestClient(f).GenerateStructured(context.Background(), p)
	var ee *EmptyResponseError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, string(genai.FinishReasonSafety), ee.FinishReason)
	assert.Equal(t, string(genai.BlockedReasonSafety), ee.BlockReason)
	assert.Equal(t, 1, f.calls)
}

func TestUpstreamErrorIsClassified(t *testing.T) {
	f := &fakeModels{err: genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED", Message: "quota"}}
	p, err := prompts.Build(prompts.PromptOrganInformation, prompts.Input{Organ: "Heart"})
	require.NoError(t, err)

	_, err = newTestClient(f).GenerateStructured(context.Background(), p)
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusTooManyRequests, ue.HTTPStatusCode())
	assert.Contains(t, ue.Error(), "quota")
	assert.Equal(t, 1, f.calls, "no retries")
}

func TestTransportErrorIsClassified(t *testing.T) {
	f := &fakeModels{err: fmt.Errorf("dial tcp: connection refused")}
	_, err := newTestClient(f).Generate(context.Background(), prompts.Prompt{User: "hi"})
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Contains(t, te.Error(), "connection refused")
}

func TestConverseOrdersHistoryThenLive(t *testing.T) {
	f := &fakeModels{resp: textResponse("Drink water.")}
	history := []Message{
		{Role: RoleUser, Text: "hello"},
		{Role: RoleModel, Text: "Hi, how can I help?"},
	}
	out, err := newTestClient(f).Converse(context.Background(), "medical only", history, Message{Text: "I have a headache"})
	require.NoError(t, err)
	assert.Equal(t, "Drink water.", out)

	require.Len(t, f.contents, 3)
	assert.Equal(t, "user", f.contents[0].Role)
	assert.Equal(t, "model", f.contents[1].Role)
	assert.Equal(t, "user", f.contents[2].Role)
	assert.Equal(t, "I have a headache", f.contents[2].Parts[0].Text)
	assert.Equal(t, "medical only", f.config.SystemInstruction.Parts[0].Text)
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), logger.NewNop(), Config{}, nil)
	assert.Error(t, err)
	_, err = New(context.Background(), nil, Config{APIKey: "k"}, nil)
	assert.Error(t, err)
}
