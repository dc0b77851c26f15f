package prompts

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/gowebpki/jcs"

	"github.com/HACKWAVE2025/B54/internal/analysis/schema"
)

// Prompt is a fully rendered generation request: instruction text, optional
// attachment and, for structured prompts, the expected output shape.
type Prompt struct {
	Name       PromptName
	Version    int
	System     string
	User       string
	Attachment *Attachment
	SchemaName string
	Schema     *schema.Node
}

// Structured reports whether the response must be a JSON value.
func (p Prompt) Structured() bool {
	return p.Schema != nil
}

// Fingerprint is a stable hash of everything that influences the model call.
// The payload is canonicalised (RFC 8785) so map ordering in the schema does
// not change the result.
func (p Prompt) Fingerprint() string {
	payload := map[string]any{
		"name":    string(p.Name),
		"version": p.Version,
		"system":  strings.TrimSpace(p.System),
		"user":    strings.TrimSpace(p.User),
	}
	if p.Schema != nil {
		payload["schema"] = p.Schema.JSONSchema()
	}
	if p.Attachment != nil {
		payload["attachment"] = map[string]any{
			"mime":   p.Attachment.MIMEType,
			"sha256": p.Attachment.Digest(),
		}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	canon, err := jcs.Transform(raw)
	if err != nil {
		canon = raw
	}
	h := sha256.Sum256(canon)
	return hex.EncodeToString(h[:])
}
