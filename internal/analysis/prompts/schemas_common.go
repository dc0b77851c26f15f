package prompts

import "github.com/HACKWAVE2025/B54/internal/analysis/schema"

// SeverityTokens are the literal criticality values every medical prompt asks for.
var SeverityTokens = []string{"NONE", "LOW", "MEDIUM", "HIGH"}

// ImpactLevels grade a wellness log's effect on a health metric.
var ImpactLevels = []string{"Positive", "Neutral", "Negative"}

func NamedReasonSchema(desc, nameDesc, reasonDesc string) *schema.Node {
	return schema.Array(desc, schema.Object("",
		schema.Prop("name", schema.String(nameDesc)),
		schema.Prop("reason", schema.String(reasonDesc)),
	).RequireAll())
}

func StringListSchema(desc string) *schema.Node {
	return schema.Array(desc, schema.String(""))
}
