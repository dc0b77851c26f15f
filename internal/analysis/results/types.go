// Package results holds the typed outcomes of each analysis prompt and the
// decoding that turns raw model text into them.
package results

type Kind string

const (
	KindMedical     Kind = "medical"
	KindCrop        Kind = "crop"
	KindFacilities  Kind = "facilities"
	KindOrgan       Kind = "organ"
	KindWellnessLog Kind = "wellness_log"
	KindWellnessTip Kind = "wellness_tip"
	KindMedicine    Kind = "medicine"
)

// Result is implemented by every typed analysis outcome.
type Result interface {
	Kind() Kind
}

type KidneyStone struct {
	Size     string `json:"size"`
	Location string `json:"location"`
}

type TestResult struct {
	TestName    string `json:"testName"`
	Result      string `json:"result"`
	Explanation string `json:"explanation"`
}

type TermDefinition struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type MedicalResult struct {
	CriticalAlert      string           `json:"criticalAlert"`
	Summary            string           `json:"summary"`
	KidneyStoneDetails []KidneyStone    `json:"kidneyStoneDetails,omitempty"`
	ResultsBreakdown   []TestResult     `json:"resultsBreakdown"`
	TermDefinitions    []TermDefinition `json:"termDefinitions"`
}

func (MedicalResult) Kind() Kind { return KindMedical }

// Severity maps the criticalAlert token to a Severity. Unknown or missing
// tokens read as NONE.
func (r MedicalResult) Severity() Severity {
	if s, ok := ParseSeverity(r.CriticalAlert); ok {
		return s
	}
	return SeverityNone
}

func (r MedicalResult) IsHigh() bool { return r.Severity() == SeverityHigh }

func (r MedicalResult) check() []string {
	if _, ok := ParseSeverity(r.CriticalAlert); !ok {
		return []string{"criticalAlert: unrecognized severity " + quote(r.CriticalAlert) + ", treated as NONE"}
	}
	return nil
}

type CropDisease struct {
	Name        string `json:"name"`
	Explanation string `json:"explanation"`
}

type Suggestion struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type CropResult struct {
	Summary               string        `json:"summary"`
	PotentialDiseases     []CropDisease `json:"potentialDiseases"`
	FertilizerSuggestions []Suggestion  `json:"fertilizerSuggestions"`
	PesticideSuggestions  []Suggestion  `json:"pesticideSuggestions"`
}

func (CropResult) Kind() Kind { return KindCrop }

type Facility struct {
	Name    string `json:"name"`
	Rating  string `json:"rating"`
	Address string `json:"address"`
}

// FacilityList is returned in model order and is never filtered or truncated.
type FacilityList []Facility

func (FacilityList) Kind() Kind { return KindFacilities }

type OrganDisease struct {
	Name     string   `json:"name"`
	Symptoms []string `json:"symptoms"`
}

type OrganInfo struct {
	RelatedTests    []string       `json:"relatedTests"`
	RelatedDiseases []OrganDisease `json:"relatedDiseases"`
}

func (OrganInfo) Kind() Kind { return KindOrgan }

type Impact struct {
	Level       string `json:"level"`
	Explanation string `json:"explanation"`
}

type WellnessLogResult struct {
	DiabetesImpact      Impact `json:"diabetesImpact"`
	BloodPressureImpact Impact `json:"bloodPressureImpact"`
	CholesterolImpact   Impact `json:"cholesterolImpact"`
	Summary             string `json:"summary"`
}

func (WellnessLogResult) Kind() Kind { return KindWellnessLog }

type Ingredient struct {
	Name string `json:"name"`
	Func string `json:"func"`
}

type MedicineResult struct {
	Usage       string       `json:"usage"`
	Ingredients []Ingredient `json:"ingredients"`
}

func (MedicineResult) Kind() Kind { return KindMedicine }

// WellnessTip is free text; it has no schema.
type WellnessTip struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

func (WellnessTip) Kind() Kind { return KindWellnessTip }

func quote(s string) string { return `"` + s + `"` }
