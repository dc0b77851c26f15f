package prompts

import "github.com/HACKWAVE2025/B54/internal/analysis/schema"

func MedicalReportSchema() *schema.Node {
	return schema.Object("Simplified analysis of a medical report.",
		schema.Prop("criticalAlert", schema.Enum(
			"The assessed criticality of the report findings.",
			SeverityTokens...,
		)),
		schema.Prop("summary", schema.String(
			"A concise, one-paragraph summary of the report's key findings, written in plain, easy-to-understand language.",
		)),
		schema.Prop("kidneyStoneDetails", schema.Array(
			"Specific details about any kidney stones found in the report.",
			schema.Object("",
				schema.Prop("size", schema.String("The size of the stone, including units (e.g., '5mm').")),
				schema.Prop("location", schema.String("The precise location of the stone (e.g., 'Left kidney, upper pole').")),
			).RequireAll(),
		)),
		schema.Prop("resultsBreakdown", schema.Array(
			"One entry per test result in the report.",
			schema.Object("",
				schema.Prop("testName", schema.String("The name of the test or measurement (e.g., 'Glucose', 'Blood Pressure').")),
				schema.Prop("result", schema.String("The measured value or result (e.g., '150 mg/dL', '120/80 mmHg').")),
				schema.Prop("explanation", schema.String("A simple explanation of what this result means.")),
			).RequireAll(),
		)),
		schema.Prop("termDefinitions", schema.Array(
			"Definitions of complex medical terms found in the report.",
			schema.Object("",
				schema.Prop("term", schema.String("The medical term.")),
				schema.Prop("definition", schema.String("A simple, clear definition of the term.")),
			).RequireAll(),
		)),
	).Require("criticalAlert", "summary", "resultsBreakdown", "termDefinitions")
}

func OrganInformationSchema() *schema.Node {
	return schema.Object("Tests and diseases related to one organ.",
		schema.Prop("relatedTests", StringListSchema(
			"Common medical tests for this organ. For 'Lungs': 'Chest X-ray', 'CT scan of the chest', etc.",
		)),
		schema.Prop("relatedDiseases", schema.Array(
			"Common diseases related to this organ.",
			schema.Object("",
				schema.Prop("name", schema.String("The name of the disease (e.g., 'Asthma', 'Pneumonia').")),
				schema.Prop("symptoms", StringListSchema("3-5 common symptoms for this disease.")),
			).RequireAll(),
		)),
	).RequireAll()
}

func MedicineAnalysisSchema() *schema.Node {
	return schema.Object("Purpose and active ingredients of a medicine.",
		schema.Prop("usage", schema.String(
			"What the medicine is primarily used for. If the medicine is not found, say so here.",
		)),
		schema.Prop("ingredients", schema.Array(
			"Active ingredients. Empty when the medicine is not found.",
			schema.Object("",
				schema.Prop("name", schema.String("The name of the ingredient.")),
				schema.Prop("func", schema.String("How this ingredient functions in the body.")),
			).RequireAll(),
		)),
	).RequireAll()
}
