package prompts

import (
	"sort"
	"strings"

	"github.com/HACKWAVE2025/B54/internal/analysis/schema"
)

// outputContract is appended to every structured prompt.
func outputContract(s *schema.Node, language string) string {
	var b strings.Builder
	b.WriteString("Output rules:\n")
	if s != nil && s.Kind == schema.KindArray {
		b.WriteString("- Respond with exactly one JSON array that matches the response schema.")
	} else {
		b.WriteString("- Respond with exactly one JSON object that matches the response schema.")
	}
	b.WriteString(" Do not write any text before or after it and do not wrap it in markdown code fences.\n")

	if enums := enumFields(s); len(enums) > 0 {
		b.WriteString("- These fields take fixed English tokens whatever the response language: ")
		b.WriteString(strings.Join(enums, "; "))
		b.WriteString(".\n")
	}
	b.WriteString("- Write every other text value in " + language + ".")
	return b.String()
}

func enumFields(s *schema.Node) []string {
	seen := map[string]string{}
	var walk func(n *schema.Node, name string)
	walk = func(n *schema.Node, name string) {
		if n == nil {
			return
		}
		switch n.Kind {
		case schema.KindEnum:
			seen[name] = name + " (" + strings.Join(n.Values, ", ") + ")"
		case schema.KindObject:
			for _, f := range n.Fields {
				walk(f.Node, f.Name)
			}
		case schema.KindArray:
			walk(n.Items, name)
		}
	}
	walk(s, "")
	out := make([]string, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
