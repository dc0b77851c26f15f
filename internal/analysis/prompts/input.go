package prompts

import "strings"

// NotProvided replaces optional inputs the user left empty, so the model sees
// an explicit marker instead of a blank.
const NotProvided = "Not provided"

const DefaultLanguage = "English"

// Input is a superset of all fields any prompt might need.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	// Output language for free-text fields
	Language string
	// Medical report
	ReportText string
	ReportType string
	// Organ explorer
	Organ string
	// Medicine lookup
	MedicineName string
	// Crop analysis
	CropPart    string
	Description string
	// Facility search
	Location     string
	FacilityType string
	// Wellness log
	FoodIntake       string
	ActivityType     string
	ActivityDuration string

	// Attachment travels as its own content part, never inside the text.
	Attachment *Attachment
}

func (in Input) normalized() Input {
	in.Language = strings.TrimSpace(in.Language)
	if in.Language == "" {
		in.Language = DefaultLanguage
	}
	in.ReportText = strings.TrimSpace(in.ReportText)
	in.ReportType = strings.TrimSpace(in.ReportType)
	in.Organ = strings.TrimSpace(in.Organ)
	in.MedicineName = strings.TrimSpace(in.MedicineName)
	in.CropPart = strings.TrimSpace(in.CropPart)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.FacilityType = strings.TrimSpace(in.FacilityType)
	in.FoodIntake = strings.TrimSpace(in.FoodIntake)
	in.ActivityType = strings.TrimSpace(in.ActivityType)
	in.ActivityDuration = strings.TrimSpace(in.ActivityDuration)
	return in
}

// provided is exposed to templates as {{provided .Field}}.
func provided(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotProvided
	}
	return s
}

// ReportTypeLabel is how a report type is shown to the model and in alerts.
// A blank type becomes NotProvided.
func ReportTypeLabel(reportType string) string {
	return provided(strings.TrimSpace(reportType))
}
