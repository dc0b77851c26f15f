package prompts

import (
	"fmt"
	"strings"
)

type PromptName string

const (
	// Medical reports
	PromptMedicalReport       PromptName = "medical_report"
	PromptMedicalReportECG    PromptName = "medical_report_ecg"
	PromptMedicalReportKidney PromptName = "medical_report_kidney"
	PromptOrganInformation    PromptName = "organ_information"
	PromptMedicineAnalysis    PromptName = "medicine_analysis"

	// Agriculture
	PromptCropAnalysis PromptName = "crop_analysis"

	// Local search
	PromptNearbyFacilities PromptName = "nearby_facilities"

	// Wellness
	PromptWellnessLog         PromptName = "wellness_log"
	PromptWellnessRecipe      PromptName = "wellness_recipe"
	PromptWellnessWorkout     PromptName = "wellness_workout"
	PromptWellnessMindfulness PromptName = "wellness_mindfulness"
)

// Report types that have a specialised template. Anything else uses the
// generic medical report prompt.
const (
	ReportTypeECG    = "ECG"
	ReportTypeKidney = "Kidney Report"
)

func AllPromptNames() []PromptName {
	return []PromptName{
		PromptMedicalReport,
		PromptMedicalReportECG,
		PromptMedicalReportKidney,
		PromptOrganInformation,
		PromptMedicineAnalysis,
		PromptCropAnalysis,
		PromptNearbyFacilities,
		PromptWellnessLog,
		PromptWellnessRecipe,
		PromptWellnessWorkout,
		PromptWellnessMindfulness,
	}
}

func (n PromptName) Valid() bool {
	for _, known := range AllPromptNames() {
		if n == known {
			return true
		}
	}
	return false
}

// ReportPrompt resolves the template used for a user-facing report type.
func ReportPrompt(reportType string) PromptName {
	switch strings.TrimSpace(reportType) {
	case ReportTypeECG:
		return PromptMedicalReportECG
	case ReportTypeKidney:
		return PromptMedicalReportKidney
	default:
		return PromptMedicalReport
	}
}

// IsCardiac reports whether a report type is an ECG.
func IsCardiac(reportType string) bool {
	return strings.TrimSpace(reportType) == ReportTypeECG
}

type WellnessCategory string

const (
	WellnessRecipe      WellnessCategory = "Recipe"
	WellnessWorkout     WellnessCategory = "Workout"
	WellnessMindfulness WellnessCategory = "Mindfulness"
)

// WellnessTipPrompt maps a tip category (case-insensitive) to its template.
func WellnessTipPrompt(category string) (PromptName, error) {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "recipe":
		return PromptWellnessRecipe, nil
	case "workout":
		return PromptWellnessWorkout, nil
	case "mindfulness":
		return PromptWellnessMindfulness, nil
	default:
		return "", fmt.Errorf("unknown wellness category %q", category)
	}
}
