package alerts

import (
	"fmt"
	"strings"

	"github.com/HACKWAVE2025/B54/internal/analysis/prompts"
	"github.com/HACKWAVE2025/B54/internal/analysis/results"
)

type Kind string

const (
	KindCardiac Kind = "cardiac"
	KindMedical Kind = "medical"
	KindCrash   Kind = "crash"
	KindSOS     Kind = "sos"
)

// Alert is a composed notification ready for dispatch.
type Alert struct {
	Kind    Kind
	Message string
}

func CardiacMessage(summary string) string {
	return fmt.Sprintf("CRITICAL ECG ALERT: POTENTIAL HEART ATTACK DETECTED.\nSummary: \"%s\"\nThis is a time-sensitive emergency. Please seek immediate medical attention.",
		strings.TrimSpace(summary))
}

func MedicalMessage(reportType, summary string) string {
	return fmt.Sprintf("URGENT MEDICAL ALERT\nReport Type: %s\nSummary: \"%s\"\nUrgency: HIGH. Please consult a healthcare provider immediately.",
		prompts.ReportTypeLabel(reportType), strings.TrimSpace(summary))
}

// CrashMessage is sent when driving mode hears a crash-like sound. location
// is optional.
func CrashMessage(location string) string {
	msg := "DRIVING EMERGENCY: Potential Crash Detection. The user's device detected a loud sound consistent with a vehicle crash. Please check on them immediately."
	if loc := strings.TrimSpace(location); loc != "" {
		msg += " Last known location: " + loc + "."
	}
	return msg
}

func SOSMessage(location string) string {
	msg := "MANUAL SOS ALERT: The user has triggered an SOS from the app. Please check on them immediately."
	if loc := strings.TrimSpace(location); loc != "" {
		msg += " Last known location: " + loc + "."
	}
	return msg
}

// ForMedical decides whether a medical result warrants an alert. Only HIGH
// severity does; ECG reports get the cardiac message.
func ForMedical(r results.MedicalResult, reportType string) (Alert, bool) {
	if !r.IsHigh() {
		return Alert{}, false
	}
	if prompts.IsCardiac(reportType) {
		return Alert{Kind: KindCardiac, Message: CardiacMessage(r.Summary)}, true
	}
	return Alert{Kind: KindMedical, Message: MedicalMessage(reportType, r.Summary)}, true
}

func Crash(location string) Alert {
	return Alert{Kind: KindCrash, Message: CrashMessage(location)}
}

func SOS(location string) Alert {
	return Alert{Kind: KindSOS, Message: SOSMessage(location)}
}
