package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	redacted = "[REDACTED]"
	// Free text from users and the model is cut to this many runes.
	previewRunes = 80
)

// Keys containing any of these substrings are dropped outright. Report text
// and image payloads are health data.
var redactSubstrings = []string{
	"token", "authorization", "secret", "api_key", "apikey",
	"report_text", "image_data",
}

// Phone numbers, chat ids and session ids identify a person; they are logged
// as a short salted hash so log lines can still be correlated.
var hashKeys = map[string]bool{
	"to": true, "from": true, "contact": true, "phone": true, "chat_id": true,
}

var previewKeys = map[string]bool{
	"text": true, "reply": true, "message": true, "raw": true, "response": true,
}

type policy struct {
	enabled bool
	salt    string
}

var (
	policyOnce sync.Once
	active     policy
)

func currentPolicy() policy {
	policyOnce.Do(func() {
		switch strings.TrimSpace(strings.ToLower(os.Getenv("LOG_REDACTION_ENABLED"))) {
		case "0", "false", "no", "off":
			active.enabled = false
		default:
			active.enabled = true
		}
		active.salt = strings.TrimSpace(os.Getenv("LOG_HASH_SALT"))
	})
	return active
}

// scrub rewrites a zap key/value list according to the redaction policy. A
// trailing key without a value is passed through for zap to report.
func scrub(kv []interface{}) []interface{} {
	if len(kv) == 0 || !currentPolicy().enabled {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i+1 >= len(kv) {
			out = append(out, kv[i])
			break
		}
		name := toString(kv[i])
		out = append(out, name, scrubValue(normalizeKey(name), kv[i+1]))
	}
	return out
}

func scrubValue(key string, val interface{}) interface{} {
	switch {
	case key == "":
	case isRedactKey(key):
		return redacted
	case isHashKey(key):
		return hashValue(val)
	case previewKeys[key]:
		return preview(val)
	}
	switch v := val.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, inner := range v {
			out[k] = scrubValue(normalizeKey(k), inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, inner := range v {
			out[i] = scrubValue("", inner)
		}
		return out
	default:
		return val
	}
}

func isRedactKey(key string) bool {
	for _, s := range redactSubstrings {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}

func isHashKey(key string) bool {
	return hashKeys[key] || strings.Contains(key, "session_id") || strings.Contains(key, "phone")
}

func hashValue(val interface{}) string {
	raw := toString(val)
	if raw == "" {
		return ""
	}
	h := sha256.New()
	if salt := currentPolicy().salt; salt != "" {
		_, _ = h.Write([]byte(salt))
	}
	_, _ = h.Write([]byte(raw))
	return "hash:" + hex.EncodeToString(h.Sum(nil))[:12]
}

func preview(val interface{}) interface{} {
	s, ok := val.(string)
	if !ok || utf8.RuneCountInString(s) <= previewRunes {
		return val
	}
	r := []rune(s)
	return fmt.Sprintf("%s… (%d chars)", string(r[:previewRunes]), len(r))
}

func normalizeKey(k string) string {
	return strings.TrimSpace(strings.ToLower(k))
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
