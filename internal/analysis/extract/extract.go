// Package extract turns raw model text into a decoded JSON value.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	jsonFence = "```json"
	fence     = "```"
)

// MalformedOutputError means the candidate text was not valid JSON.
type MalformedOutputError struct {
	Candidate string
	Err       error
}

func (e *MalformedOutputError) Error() string {
	if e == nil {
		return "malformed model output"
	}
	return fmt.Sprintf("malformed model output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// Candidate isolates the JSON payload in raw:
//  1. text after the first "```json" up to the next "```";
//  2. otherwise, text between the first and second "```";
//  3. otherwise, the whole text.
//
// The result is whitespace-trimmed. Anything after the first fence pair is
// dropped.
func Candidate(raw string) string {
	if _, after, ok := strings.Cut(raw, jsonFence); ok {
		body, _, _ := strings.Cut(after, fence)
		return strings.TrimSpace(body)
	}
	if _, after, ok := strings.Cut(raw, fence); ok {
		body, _, _ := strings.Cut(after, fence)
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(raw)
}

// Extract decodes the JSON payload of raw into a generic value (maps, slices,
// strings, float64, bool, nil).
func Extract(raw string) (any, error) {
	var out any
	if err := ExtractInto(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExtractInto decodes the JSON payload of raw into v.
func ExtractInto(raw string, v any) error {
	candidate := Candidate(raw)
	if candidate == "" {
		return &MalformedOutputError{Candidate: candidate, Err: fmt.Errorf("empty payload")}
	}
	if err := json.Unmarshal([]byte(candidate), v); err != nil {
		return &MalformedOutputError{Candidate: candidate, Err: err}
	}
	return nil
}
