package prompts

func init() {
	RegisterAll()
}

// RegisterAll registers every prompt in the registry. Safe to call more than once.
func RegisterAll() {
	// ---------- Medical reports ----------

	RegisterSpec(Spec{
		Name:       PromptMedicalReport,
		Version:    1,
		SchemaName: "medical_report",
		Schema:     MedicalReportSchema,
		System: `
You are a helpful medical AI assistant. Your goal is to simplify medical reports for a non-medical user.
Do not provide a diagnosis or medical advice. Emphasize that the user must consult a healthcare professional.`,
		User: `
Analyze the following medical report. The report type is "{{provided .ReportType}}".
The user-provided text is below:
---
{{provided .ReportText}}
---
The user may have also provided an image of the report.

Task:
- Carefully extract key information.
- Provide a clear summary.
- Most importantly, assess the urgency or criticality in 'criticalAlert'.

Your entire response, including the summary, explanations and definitions, must be in {{.Language}}.
For the 'criticalAlert' field you must ONLY use one of the following English strings: 'NONE', 'LOW', 'MEDIUM', or 'HIGH'.`,
		Validators: []Validator{RequireTextOrAttachment},
	})

	RegisterSpec(Spec{
		Name:       PromptMedicalReportECG,
		Version:    1,
		SchemaName: "medical_report",
		Schema:     MedicalReportSchema,
		System: `
You are an expert AI assistant specializing in cardiology.
Do not provide a definitive diagnosis.`,
		User: `
Analyze the following ECG report.

ECG Report Data:
---
Text: {{provided .ReportText}}
(An image may also be provided)
---

Analysis Instructions:
1. Primary goal: identify signs of a potential myocardial infarction (heart attack) or other critical cardiac events.
2. Key indicators to look for:
   - ST-segment elevation (STEMI) or ST-segment depression.
   - T-wave inversion.
   - Pathological Q waves.
3. Set 'criticalAlert' by these rules:
   - 'HIGH': strong evidence of a potential myocardial infarction or other life-threatening condition based on the key indicators.
   - 'MEDIUM': significant but less immediately life-threatening abnormalities (e.g., atrial fibrillation, bradycardia, arrhythmias).
   - 'LOW': minor abnormalities that are not urgent.
   - 'NONE': the ECG appears normal or shows only minor, non-critical variations.
4. If 'criticalAlert' is 'HIGH', the summary MUST begin with a sentence strongly urging the user to seek immediate medical attention.
5. The summary, explanations and definitions MUST be written in {{.Language}}. 'criticalAlert' MUST be one of the exact English strings 'NONE', 'LOW', 'MEDIUM', 'HIGH'.`,
		Validators: []Validator{RequireTextOrAttachment},
	})

	RegisterSpec(Spec{
		Name:       PromptMedicalReportKidney,
		Version:    1,
		SchemaName: "medical_report",
		Schema:     MedicalReportSchema,
		System: `
You are an expert AI assistant specializing in radiology and nephrology.
Do not provide a definitive diagnosis.`,
		User: `
Analyze the following kidney report (likely an ultrasound or CT scan).

Report Data:
---
Text: {{provided .ReportText}}
(An image may also be provided)
---

Analysis Instructions:
1. Primary goal: detect the presence, size and location of any renal calculi (kidney stones).
2. If kidney stones are mentioned, extract their exact size (e.g., "5mm", "1.2cm") and precise location (e.g., "left kidney, lower pole").
   Add one 'kidneyStoneDetails' entry per stone. If no stones are found, leave the array empty or omit it.
   Keep the original units in 'size'.
3. Set 'criticalAlert' by these rules:
   - 'HIGH': large stones (e.g., >10mm) or stones causing significant obstruction (hydronephrosis).
   - 'MEDIUM': smaller stones likely to cause symptoms but not immediately life-threatening.
   - 'LOW': very small, non-obstructive stones (gravel).
   - 'NONE': the report is normal and no stones are found.
4. The summary, explanations, definitions and stone locations MUST be in {{.Language}}. 'criticalAlert' MUST be one of the exact English strings 'NONE', 'LOW', 'MEDIUM', 'HIGH'.`,
		Validators: []Validator{RequireTextOrAttachment},
	})

	RegisterSpec(Spec{
		Name:       PromptOrganInformation,
		Version:    1,
		SchemaName: "organ_information",
		Schema:     OrganInformationSchema,
		System: `
You are a medical reference assistant. Give general, well-established information only.`,
		User: `
For the human organ "{{.Organ}}", provide a list of related medical tests and a list of common diseases with their typical symptoms.`,
		Validators: []Validator{
			RequireNonEmpty("Organ", func(in Input) string { return in.Organ }),
		},
	})

	RegisterSpec(Spec{
		Name:       PromptMedicineAnalysis,
		Version:    1,
		SchemaName: "medicine_analysis",
		Schema:     MedicineAnalysisSchema,
		System: `
You are an expert pharmacologist AI assistant.`,
		User: `
Medicine Name: {{.MedicineName}}

Analysis Instructions:
1. Search your knowledge base for the specified medicine.
2. usage: explain the primary medical purpose of this medicine. What conditions or symptoms does it treat?
3. ingredients: identify the key active ingredients. For each, give its name and an easy-to-understand explanation of its mechanism of action in 'func'.
4. If you cannot find any information about the medicine, 'usage' must say "Information could not be found for {{.MedicineName}}." and 'ingredients' must be an empty array.`,
		Validators: []Validator{
			RequireNonEmpty("MedicineName", func(in Input) string { return in.MedicineName }),
		},
	})

	// ---------- Agriculture ----------

	RegisterSpec(Spec{
		Name:       PromptCropAnalysis,
		Version:    1,
		SchemaName: "crop_analysis",
		Schema:     CropAnalysisSchema,
		System: `
You are an expert AI assistant specializing in agriculture and plant pathology.`,
		User: `
The user is showing you an image of a crop's "{{provided .CropPart}}".
The user-provided text is below:
---
{{provided .Description}}
---

Analysis Instructions:
1. Visually analyze the image to identify signs of diseases, nutrient deficiencies or pest damage. Use the text for additional context.
2. Give a simple, farmer-friendly summary of the plant's overall health.
3. List any potential diseases with their common name and a simple explanation.
4. Recommend fertilizers or nutrients that could help, and pesticides (fungicides, insecticides or organic alternatives like neem oil) effective against the identified issues, each with a reason.
5. Always include a disclaimer in the summary that this is an AI-generated analysis and a local agricultural expert should be consulted for a definitive diagnosis.
6. The summary, explanations, suggestions and reasons MUST be written in {{.Language}}.`,
		Validators: []Validator{RequireImage},
	})

	// ---------- Local search ----------

	RegisterSpec(Spec{
		Name:       PromptNearbyFacilities,
		Version:    1,
		SchemaName: "nearby_facilities",
		Schema:     NearbyFacilitiesSchema,
		System: `
You are a helpful local guide AI.`,
		User: `
Find the top 3 best "{{.FacilityType}}" near "{{.Location}}".
Prefer the closest facilities that also have good public ratings. The first suggestion should ideally be the nearest option with a high rating.
Balance proximity and quality. Base your suggestions on publicly available information, such as Google Maps data.
Each item needs the facility's 'name', 'rating' and 'address'.
If you cannot find any reliable results, return an empty array.`,
		Validators: []Validator{
			RequireNonEmpty("Location", func(in Input) string { return in.Location }),
			RequireNonEmpty("FacilityType", func(in Input) string { return in.FacilityType }),
		},
	})

	// ---------- Wellness ----------

	RegisterSpec(Spec{
		Name:       PromptWellnessLog,
		Version:    1,
		SchemaName: "wellness_log",
		Schema:     WellnessLogSchema,
		System: `
You are an expert AI health and wellness assistant.`,
		User: `
Analyze the user's daily food and activity log and predict the likely short-term impact on their key health metrics.

User's Log:
- Food Intake: {{.FoodIntake}}
- Activity Type: {{provided .ActivityType}}
- Activity Duration: {{if .ActivityDuration}}{{.ActivityDuration}} minutes{{else}}{{provided ""}}{{end}}

Analysis Instructions:
1. Evaluate the food intake (type, quantity, likely carbs, fats and sugars) and the physical activity (type and duration).
2. diabetesImpact: predict the short-term effect on blood sugar from the food's likely glycemic index and the exercise. A sugary meal is 'Negative'; a balanced meal with exercise is 'Positive'.
3. bloodPressureImpact: assess how the food (e.g., high sodium) and activity might influence blood pressure in the short term.
4. cholesterolImpact: assess how dietary fats (saturated, unsaturated) could influence cholesterol.
5. summary: a brief, encouraging and actionable summary.`,
		Validators: []Validator{
			RequireNonEmpty("FoodIntake", func(in Input) string { return in.FoodIntake }),
		},
	})

	RegisterSpec(Spec{
		Name:    PromptWellnessRecipe,
		Version: 1,
		System:  `You are a friendly wellness coach.`,
		User: `
Generate a simple, healthy recipe. The recipe should be for one serving, take less than 30 minutes to prepare, and include a list of ingredients and step-by-step instructions.
Format the response clearly with headings for ingredients and instructions. Write it in {{.Language}}.`,
	})

	RegisterSpec(Spec{
		Name:    PromptWellnessWorkout,
		Version: 1,
		System:  `You are a friendly wellness coach.`,
		User: `
Suggest a quick 10-minute workout routine that can be done at home with no equipment.
For each exercise, provide a brief, clear description of how to perform it and a suggested number of reps or duration. Write it in {{.Language}}.`,
	})

	RegisterSpec(Spec{
		Name:    PromptWellnessMindfulness,
		Version: 1,
		System:  `You are a friendly wellness coach.`,
		User: `
Provide a practical mindfulness or stress-reduction tip that can be done in under 5 minutes.
Explain the steps clearly so a beginner can follow along easily. Write it in {{.Language}}.`,
	})
}
