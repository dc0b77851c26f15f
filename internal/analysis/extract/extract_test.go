package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidate(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"bare", `  {"a":1}  `, `{"a":1}`},
		{"json_fence", "Here you go:\n```json\n{\"a\":1}\n```\nthanks", `{"a":1}`},
		{"plain_fence", "```\n[1,2]\n```", `[1,2]`},
		{"json_fence_wins", "```\n{\"x\":0}\n```\n```json\n{\"y\":1}\n```", `{"y":1}`},
		{"first_pair_only", "```\n{\"a\":1}\n```\n```\n{\"b\":2}\n```", `{"a":1}`},
		{"unterminated_json_fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"unterminated_plain_fence", "```\n{\"a\":1}", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Candidate(tc.raw))
		})
	}
}

func TestExtract(t *testing.T) {
	v, err := Extract("```json\n{\"summary\":\"ok\",\"n\":2}\n```")
	require.NoError(t, err)
	obj, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", obj["summary"])
	assert.Equal(t, 2.0, obj["n"])

	arr, err := Extract("[]")
	require.NoError(t, err)
	assert.Equal(t, []any{}, arr)
}

func TestExtractMalformed(t *testing.T) {
	for _, raw := range []string{
		"I could not analyze this report.",
		"",
		"```json\n```",
		`{"summary": "cut off`,
	} {
		_, err := Extract(raw)
		var me *MalformedOutputError
		require.Truef(t, errors.As(err, &me), "raw=%q", raw)
	}
}

func TestExtractIntoTyped(t *testing.T) {
	var out struct {
		Usage string `json:"usage"`
	}
	require.NoError(t, ExtractInto(`{"usage":"pain relief"}`, &out))
	assert.Equal(t, "pain relief", out.Usage)
}
