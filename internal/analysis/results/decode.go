package results

import (
	"encoding/json"
	"fmt"

	"github.com/HACKWAVE2025/B54/internal/analysis/extract"
	"github.com/HACKWAVE2025/B54/internal/analysis/prompts"
	"github.com/HACKWAVE2025/B54/internal/analysis/schema"
)

// checker lets a result report domain violations the schema cannot express.
type checker interface {
	check() []string
}

// Decode extracts the JSON payload of raw and decodes it into T.
//
// Only unparseable text is an error (*extract.MalformedOutputError). Missing
// required fields, schema violations and fields of the wrong type are reported
// in the returned gap, which is nil when the payload fully conforms.
func Decode[T Result](raw, name string, s *schema.Node) (T, *ValidationGap, error) {
	return decode[T](raw, name, name, s)
}

func decode[T Result](raw, prompt, schemaName string, s *schema.Node) (T, *ValidationGap, error) {
	var out T
	value, err := extract.Extract(raw)
	if err != nil {
		return out, nil, err
	}
	candidate := []byte(extract.Candidate(raw))

	gap := checkGap(prompt, schemaName, s, value, candidate)
	if err := json.Unmarshal(candidate, &out); err != nil {
		gap.addViolation("decode: %v", err)
	}
	if c, ok := any(out).(checker); ok {
		gap.Violations = append(gap.Violations, c.check()...)
	}
	if gap.Empty() {
		return out, nil, nil
	}
	return out, gap, nil
}

func Medical(raw string, name prompts.PromptName) (MedicalResult, *ValidationGap, error) {
	return decodePrompt[MedicalResult](raw, name)
}

func Crop(raw string) (CropResult, *ValidationGap, error) {
	return decodePrompt[CropResult](raw, prompts.PromptCropAnalysis)
}

func Facilities(raw string) (FacilityList, *ValidationGap, error) {
	return decodePrompt[FacilityList](raw, prompts.PromptNearbyFacilities)
}

func Organ(raw string) (OrganInfo, *ValidationGap, error) {
	return decodePrompt[OrganInfo](raw, prompts.PromptOrganInformation)
}

func WellnessLog(raw string) (WellnessLogResult, *ValidationGap, error) {
	return decodePrompt[WellnessLogResult](raw, prompts.PromptWellnessLog)
}

func Medicine(raw string) (MedicineResult, *ValidationGap, error) {
	return decodePrompt[MedicineResult](raw, prompts.PromptMedicineAnalysis)
}

func decodePrompt[T Result](raw string, name prompts.PromptName) (T, *ValidationGap, error) {
	schemaName, s, ok := prompts.Schema(name)
	if !ok {
		var zero T
		return zero, nil, fmt.Errorf("results: prompt %s has no response schema", name)
	}
	return decode[T](raw, string(name), schemaName, s)
}
