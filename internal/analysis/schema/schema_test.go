package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func reportShape() *Node {
	return Object("report",
		Prop("criticalAlert", Enum("severity", "NONE", "LOW", "MEDIUM", "HIGH")),
		Prop("summary", String("summary")),
		Prop("resultsBreakdown", Array("rows",
			Object("row",
				Prop("testName", String("name")),
				Prop("result", String("value")),
			).RequireAll(),
		)),
		Prop("notes", String("optional notes")),
	).Require("criticalAlert", "summary", "resultsBreakdown")
}

func TestToGenaiKeepsShape(t *testing.T) {
	g := reportShape().ToGenai()

	require.Equal(t, genai.TypeObject, g.Type)
	assert.Equal(t, []string{"criticalAlert", "summary", "resultsBreakdown"}, g.Required)
	assert.Equal(t, []string{"criticalAlert", "summary", "resultsBreakdown", "notes"}, g.PropertyOrdering)

	sev := g.Properties["criticalAlert"]
	require.NotNil(t, sev)
	assert.Equal(t, genai.TypeString, sev.Type)
	assert.Equal(t, []string{"NONE", "LOW", "MEDIUM", "HIGH"}, sev.Enum)

	rows := g.Properties["resultsBreakdown"]
	require.NotNil(t, rows)
	assert.Equal(t, genai.TypeArray, rows.Type)
	require.NotNil(t, rows.Items)
	assert.Equal(t, []string{"testName", "result"}, rows.Items.Required)
}

func TestJSONSchemaIsValidJSON(t *testing.T) {
	raw, err := reportShape().MarshalJSONSchema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "object", doc["type"])
	props := doc["properties"].(map[string]any)
	sev := props["criticalAlert"].(map[string]any)
	assert.Equal(t, "string", sev["type"])
	assert.Len(t, sev["enum"], 4)
}

func TestMissingRequired(t *testing.T) {
	var value any
	require.NoError(t, json.Unmarshal([]byte(`{
		"criticalAlert": "LOW",
		"summary": null,
		"resultsBreakdown": [{"testName": "Glucose"}, {"testName": "HbA1c", "result": "6%"}]
	}`), &value))

	missing := reportShape().MissingRequired(value)
	assert.ElementsMatch(t, []string{"summary", "resultsBreakdown[0].result"}, missing)
}

func TestMissingRequiredTopLevelArray(t *testing.T) {
	list := Array("facilities", Object("facility",
		Prop("name", String("")),
		Prop("address", String("")),
	).RequireAll())

	var value any
	require.NoError(t, json.Unmarshal([]byte(`[{"name":"A","address":"x"},{"name":"B"}]`), &value))
	assert.Equal(t, []string{"[1].address"}, list.MissingRequired(value))

	var empty any
	require.NoError(t, json.Unmarshal([]byte(`[]`), &empty))
	assert.Empty(t, list.MissingRequired(empty))
}

func TestMissingRequiredWrongTypeStops(t *testing.T) {
	assert.Empty(t, reportShape().MissingRequired("not an object"))
	assert.Empty(t, reportShape().MissingRequired(nil))
}

func TestMissingRequiredMultiDigitIndex(t *testing.T) {
	list := Array("facilities", Object("facility", Prop("name", String(""))).RequireAll())

	items := make([]any, 12)
	for i := range items {
		items[i] = map[string]any{"name": "x"}
	}
	items[11] = map[string]any{}
	assert.Equal(t, []string{"[11].name"}, list.MissingRequired(items))
}
