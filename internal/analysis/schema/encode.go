package schema

import (
	"encoding/json"

	"google.golang.org/genai"
)

// ToGenai converts the descriptor to the constrained-output schema accepted by
// the Gemini API.
func (n *Node) ToGenai() *genai.Schema {
	if n == nil {
		return nil
	}
	out := &genai.Schema{Description: n.Description}
	switch n.Kind {
	case KindObject:
		out.Type = genai.TypeObject
		out.Properties = make(map[string]*genai.Schema, len(n.Fields))
		out.PropertyOrdering = make([]string, 0, len(n.Fields))
		for _, f := range n.Fields {
			out.Properties[f.Name] = f.Node.ToGenai()
			out.PropertyOrdering = append(out.PropertyOrdering, f.Name)
		}
		if len(n.Required) > 0 {
			out.Required = append([]string(nil), n.Required...)
		}
	case KindArray:
		out.Type = genai.TypeArray
		out.Items = n.Items.ToGenai()
	case KindEnum:
		out.Type = genai.TypeString
		out.Format = "enum"
		out.Enum = append([]string(nil), n.Values...)
	case KindNumber:
		out.Type = genai.TypeNumber
	case KindBoolean:
		out.Type = genai.TypeBoolean
	default:
		out.Type = genai.TypeString
	}
	return out
}

// JSONSchema converts the descriptor to a JSON Schema document (draft 2020-12
// vocabulary) for caller-side checks.
func (n *Node) JSONSchema() map[string]any {
	if n == nil {
		return map[string]any{}
	}
	out := map[string]any{}
	if n.Description != "" {
		out["description"] = n.Description
	}
	switch n.Kind {
	case KindObject:
		props := make(map[string]any, len(n.Fields))
		for _, f := range n.Fields {
			props[f.Name] = f.Node.JSONSchema()
		}
		out["type"] = "object"
		out["properties"] = props
		if len(n.Required) > 0 {
			req := make([]any, 0, len(n.Required))
			for _, r := range n.Required {
				req = append(req, r)
			}
			out["required"] = req
		}
	case KindArray:
		out["type"] = "array"
		out["items"] = n.Items.JSONSchema()
	case KindEnum:
		vals := make([]any, 0, len(n.Values))
		for _, v := range n.Values {
			vals = append(vals, v)
		}
		out["type"] = "string"
		out["enum"] = vals
	case KindNumber:
		out["type"] = "number"
	case KindBoolean:
		out["type"] = "boolean"
	default:
		out["type"] = "string"
	}
	return out
}

func (n *Node) MarshalJSONSchema() ([]byte, error) {
	return json.Marshal(n.JSONSchema())
}
