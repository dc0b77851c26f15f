package prompts

import "github.com/HACKWAVE2025/B54/internal/analysis/schema"

func CropAnalysisSchema() *schema.Node {
	return schema.Object("Health assessment of a crop part.",
		schema.Prop("summary", schema.String(
			"A concise, one-paragraph summary of the crop's condition, written in simple, farmer-friendly language.",
		)),
		schema.Prop("potentialDiseases", schema.Array(
			"Potential diseases found.",
			schema.Object("",
				schema.Prop("name", schema.String("The common name of the disease (e.g., 'Powdery Mildew', 'Rust').")),
				schema.Prop("explanation", schema.String("What this disease is and how it affects the plant.")),
			).RequireAll(),
		)),
		schema.Prop("fertilizerSuggestions", NamedReasonSchema(
			"Suggested fertilizers to improve plant health.",
			"The fertilizer or nutrient (e.g., 'NPK 10-10-10', 'Potassium Nitrate').",
			"Why this fertilizer is recommended.",
		)),
		schema.Prop("pesticideSuggestions", NamedReasonSchema(
			"Suggested pesticides against the identified diseases.",
			"The pesticide or type (e.g., 'Neem Oil', 'Sulfur-based fungicide').",
			"Why this pesticide is recommended for the identified issues.",
		)),
	).RequireAll()
}

func NearbyFacilitiesSchema() *schema.Node {
	return schema.Array(
		"The top 3 suggested facilities based on public ratings and proximity.",
		schema.Object("",
			schema.Prop("name", schema.String("The name of the facility.")),
			schema.Prop("rating", schema.String("The rating of the facility, e.g., '4.5 stars'.")),
			schema.Prop("address", schema.String("The full address of the facility.")),
		).RequireAll(),
	)
}

func impactSchema(desc string) *schema.Node {
	return schema.Object(desc,
		schema.Prop("level", schema.Enum("The predicted impact level.", ImpactLevels...)),
		schema.Prop("explanation", schema.String("A brief explanation for the prediction.")),
	).RequireAll()
}

func WellnessLogSchema() *schema.Node {
	return schema.Object("Predicted short-term health impact of a food and activity log.",
		schema.Prop("diabetesImpact", impactSchema("Short-term impact on blood sugar levels.")),
		schema.Prop("bloodPressureImpact", impactSchema("Short-term impact on blood pressure.")),
		schema.Prop("cholesterolImpact", impactSchema("Short-term impact on cholesterol.")),
		schema.Prop("summary", schema.String("A brief, encouraging and actionable overall summary.")),
	).RequireAll()
}
