package prompts

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// MaxAttachmentBytes bounds inline attachments (the Gemini inline-data limit is 20MB
// for the whole request).
const MaxAttachmentBytes = 15 << 20

var ErrEmptyAttachment = errors.New("attachment is empty")

// Attachment is an opaque binary payload (usually a photo of a report, an ECG
// strip or a crop) sent to the model as an inline part.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// NewAttachment wraps raw bytes. When mimeType is blank it is sniffed from the
// content.
func NewAttachment(data []byte, mimeType string) (*Attachment, error) {
	if len(data) == 0 {
		return nil, ErrEmptyAttachment
	}
	if len(data) > MaxAttachmentBytes {
		return nil, fmt.Errorf("attachment too large: %s (max %s)",
			humanize.Bytes(uint64(len(data))), humanize.Bytes(uint64(MaxAttachmentBytes)))
	}
	mt := baseMIME(mimeType)
	if mt == "" {
		mt = baseMIME(mimetype.Detect(data).String())
	}
	return &Attachment{MIMEType: mt, Data: data}, nil
}

// DecodeBase64 builds an attachment from the {data, mimeType} pair clients send.
func DecodeBase64(data string, mimeType string) (*Attachment, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, ErrEmptyAttachment
	}
	if strings.HasPrefix(data, "data:") {
		return ParseDataURI(data)
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("attachment is not valid base64: %w", err)
	}
	return NewAttachment(raw, mimeType)
}

// ParseDataURI parses "data:<mime>;base64,<payload>".
func ParseDataURI(uri string) (*Attachment, error) {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, "data:") {
		return nil, fmt.Errorf("not a data uri")
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("data uri has no payload")
	}
	if !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("data uri must be base64 encoded")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("data uri payload is not valid base64: %w", err)
	}
	return NewAttachment(raw, strings.TrimSuffix(header, ";base64"))
}

func (a *Attachment) IsImage() bool {
	return a != nil && strings.HasPrefix(a.MIMEType, "image/")
}

// Size renders the payload size for logs.
func (a *Attachment) Size() string {
	if a == nil {
		return "0 B"
	}
	return humanize.Bytes(uint64(len(a.Data)))
}

func (a *Attachment) Digest() string {
	if a == nil {
		return ""
	}
	sum := sha256.Sum256(a.Data)
	return hex.EncodeToString(sum[:])
}

func baseMIME(mt string) string {
	mt, _, _ = strings.Cut(mt, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
