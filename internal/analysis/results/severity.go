package results

import "strings"

// Severity is the criticality token attached to medical results. The model is
// instructed to answer with one of the four English tokens whatever the
// response language.
type Severity string

const (
	SeverityNone   Severity = "NONE"
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

func Severities() []Severity {
	return []Severity{SeverityNone, SeverityLow, SeverityMedium, SeverityHigh}
}

// ParseSeverity accepts any casing and surrounding whitespace.
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(strings.ToUpper(strings.TrimSpace(s))) {
	case SeverityNone:
		return SeverityNone, true
	case SeverityLow:
		return SeverityLow, true
	case SeverityMedium:
		return SeverityMedium, true
	case SeverityHigh:
		return SeverityHigh, true
	default:
		return "", false
	}
}

func (s Severity) Valid() bool {
	_, ok := ParseSeverity(string(s))
	return ok
}
