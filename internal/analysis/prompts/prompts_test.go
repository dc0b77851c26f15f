package prompts

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Smallest valid PNG header is enough for content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestEveryDeclaredPromptIsRegistered(t *testing.T) {
	for _, name := range AllPromptNames() {
		_, ok := registry[name]
		assert.Truef(t, ok, "prompt %s not registered", name)
	}
}

func TestReportPromptResolution(t *testing.T) {
	cases := map[string]PromptName{
		"ECG":           PromptMedicalReportECG,
		" ECG ":         PromptMedicalReportECG,
		"Kidney Report": PromptMedicalReportKidney,
		"Blood Test":    PromptMedicalReport,
		"":              PromptMedicalReport,
		"ecg":           PromptMedicalReport,
	}
	for in, want := range cases {
		assert.Equalf(t, want, ReportPrompt(in), "ReportPrompt(%q)", in)
	}
	assert.True(t, IsCardiac("ECG"))
	assert.False(t, IsCardiac("Kidney Report"))
}

func TestBuildMedicalReportAppendsContract(t *testing.T) {
	p, err := Build(PromptMedicalReport, Input{
		ReportText: "Glucose 150 mg/dL",
		ReportType: "Blood Test",
		Language:   "Hindi",
	})
	require.NoError(t, err)

	assert.True(t, p.Structured())
	assert.Equal(t, "medical_report", p.SchemaName)
	assert.Contains(t, p.User, "Glucose 150 mg/dL")
	assert.Contains(t, p.User, `The report type is "Blood Test"`)
	assert.Contains(t, p.User, "must be in Hindi")
	assert.Contains(t, p.User, "do not wrap it in markdown code fences")
	assert.Contains(t, p.User, "criticalAlert (NONE, LOW, MEDIUM, HIGH)")
	assert.True(t, strings.HasSuffix(p.User, "Write every other text value in Hindi."))
	assert.Nil(t, p.Attachment)
}

func TestBuildDefaultsLanguageAndMarksMissingText(t *testing.T) {
	att, err := NewAttachment(pngBytes, "")
	require.NoError(t, err)

	p, err := Build(PromptMedicalReportECG, Input{Attachment: att})
	require.NoError(t, err)

	assert.Contains(t, p.User, "Text: "+NotProvided)
	assert.Contains(t, p.User, "written in English")
	require.NotNil(t, p.Attachment)
	assert.Equal(t, "image/png", p.Attachment.MIMEType)
	assert.NotContains(t, p.User, string(pngBytes))
}

func TestBuildRejectsEmptyReport(t *testing.T) {
	_, err := Build(PromptMedicalReportKidney, Input{Language: "English"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "medical_report_kidney")
}

func TestBuildCropRequiresImage(t *testing.T) {
	_, err := Build(PromptCropAnalysis, Input{Description: "yellow leaves"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAttachmentRequired))

	pdf, err := NewAttachment([]byte("%PDF-1.4 fake"), "application/pdf")
	require.NoError(t, err)
	_, err = Build(PromptCropAnalysis, Input{Attachment: pdf})
	assert.True(t, errors.Is(err, ErrAttachmentRequired))

	img, err := NewAttachment(pngBytes, "image/png")
	require.NoError(t, err)
	p, err := Build(PromptCropAnalysis, Input{Attachment: img, CropPart: "Leaf"})
	require.NoError(t, err)
	assert.Contains(t, p.User, `crop's "Leaf"`)
	assert.Contains(t, p.User, "---\n"+NotProvided+"\n---")
}

func TestBuildWellnessLogNotProvidedMarkers(t *testing.T) {
	p, err := Build(PromptWellnessLog, Input{FoodIntake: "two samosas and chai"})
	require.NoError(t, err)
	assert.Contains(t, p.User, "- Activity Type: "+NotProvided)
	assert.Contains(t, p.User, "- Activity Duration: "+NotProvided)
	assert.Contains(t, p.User, "level (Positive, Neutral, Negative)")

	p, err = Build(PromptWellnessLog, Input{FoodIntake: "salad", ActivityType: "Running", ActivityDuration: "30"})
	require.NoError(t, err)
	assert.Contains(t, p.User, "- Activity Duration: 30 minutes")
}

func TestBuildFacilitiesIsArrayContract(t *testing.T) {
	p, err := Build(PromptNearbyFacilities, Input{Location: "Pune", FacilityType: "Hospitals"})
	require.NoError(t, err)
	assert.Contains(t, p.User, `top 3 best "Hospitals" near "Pune"`)
	assert.Contains(t, p.User, "exactly one JSON array")

	_, err = Build(PromptNearbyFacilities, Input{Location: "Pune"})
	assert.Error(t, err)
}

func TestWellnessTipsAreFreeText(t *testing.T) {
	for _, cat := range []string{"Recipe", "workout", "MINDFULNESS"} {
		name, err := WellnessTipPrompt(cat)
		require.NoError(t, err)
		p, err := Build(name, Input{})
		require.NoError(t, err)
		assert.False(t, p.Structured())
		assert.NotContains(t, p.User, "Output rules")
	}
	_, err := WellnessTipPrompt("Yoga")
	assert.Error(t, err)
}

func TestBuildUnknownPrompt(t *testing.T) {
	_, err := Build(PromptName("nope"), Input{})
	assert.Error(t, err)
}

func TestFingerprintStableAndSensitive(t *testing.T) {
	in := Input{Organ: "Lungs"}
	a, err := Build(PromptOrganInformation, in)
	require.NoError(t, err)
	b, err := Build(PromptOrganInformation, in)
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)

	c, err := Build(PromptOrganInformation, Input{Organ: "Heart"})
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestParseDataURI(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
	att, err := ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", att.MIMEType)
	assert.Equal(t, pngBytes, att.Data)
	assert.True(t, att.IsImage())
	assert.NotEmpty(t, att.Size())

	_, err = ParseDataURI("data:image/png,rawtext")
	assert.Error(t, err)
	_, err = ParseDataURI("image/png;base64,AAAA")
	assert.Error(t, err)
}

func TestDecodeBase64(t *testing.T) {
	att, err := DecodeBase64(base64.StdEncoding.EncodeToString(pngBytes), "image/png; charset=binary")
	require.NoError(t, err)
	assert.Equal(t, "image/png", att.MIMEType)

	_, err = DecodeBase64("", "image/png")
	assert.ErrorIs(t, err, ErrEmptyAttachment)

	_, err = DecodeBase64("!!!", "image/png")
	assert.Error(t, err)
}

func TestECGPromptPinsSeverityTokens(t *testing.T) {
	p, err := Build(ReportPrompt("ECG"), Input{ReportText: "ST elevation noted", Language: "English"})
	require.NoError(t, err)
	assert.Equal(t, PromptMedicalReportECG, p.Name)
	assert.Contains(t, p.User, "ST elevation noted")
	assert.Contains(t, p.User, "criticalAlert (NONE, LOW, MEDIUM, HIGH)")
}

func TestValidationFailureIsInputError(t *testing.T) {
	_, err := Build(PromptMedicineAnalysis, Input{})
	var ie *InputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, PromptMedicineAnalysis, ie.Prompt)

	_, err = Build(PromptName("nope"), Input{})
	assert.False(t, errors.As(err, &ie))
}

func TestBlankReportTypeIsMarkedNotProvided(t *testing.T) {
	p, err := Build(ReportPrompt(""), Input{ReportText: "Hb 9"})
	require.NoError(t, err)
	assert.Contains(t, p.User, `The report type is "`+NotProvided+`".`)
	assert.NotContains(t, p.User, `report type is ""`)
	assert.Equal(t, NotProvided, ReportTypeLabel("  "))
	assert.Equal(t, "Blood Test", ReportTypeLabel(" Blood Test "))
}
