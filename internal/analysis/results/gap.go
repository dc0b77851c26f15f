package results

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kaptinlin/jsonschema"

	"github.com/HACKWAVE2025/B54/internal/analysis/schema"
)

// ValidationGap records how a parsed response deviates from its schema.
// It is informational: the partial result is still returned to the caller.
type ValidationGap struct {
	Prompt     string   `json:"prompt"`
	Missing    []string `json:"missing,omitempty"`
	Violations []string `json:"violations,omitempty"`
}

func (g *ValidationGap) Empty() bool {
	return g == nil || (len(g.Missing) == 0 && len(g.Violations) == 0)
}

func (g *ValidationGap) Error() string {
	if g.Empty() {
		return "no validation gap"
	}
	parts := []string{}
	if len(g.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(g.Missing, ", "))
	}
	if len(g.Violations) > 0 {
		parts = append(parts, strings.Join(g.Violations, "; "))
	}
	return fmt.Sprintf("%s: %s", g.Prompt, strings.Join(parts, "; "))
}

func (g *ValidationGap) addViolation(format string, args ...any) {
	g.Violations = append(g.Violations, fmt.Sprintf(format, args...))
}

// compiled JSON Schemas keyed by schema name.
var (
	compiledMu sync.Mutex
	compiled   = map[string]*jsonschema.Schema{}
)

func compiledSchema(name string, s *schema.Node) (*jsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()
	if cs, ok := compiled[name]; ok && name != "" {
		return cs, nil
	}
	raw, err := s.MarshalJSONSchema()
	if err != nil {
		return nil, err
	}
	cs, err := jsonschema.NewCompiler().Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}
	if name != "" {
		compiled[name] = cs
	}
	return cs, nil
}

// checkGap compares a decoded value and its JSON text against the descriptor.
func checkGap(prompt, schemaName string, s *schema.Node, value any, candidate []byte) *ValidationGap {
	gap := &ValidationGap{Prompt: prompt}
	if s == nil {
		return gap
	}
	gap.Missing = s.MissingRequired(value)

	cs, err := compiledSchema(schemaName, s)
	if err != nil {
		gap.addViolation("schema unavailable: %v", err)
		return gap
	}
	result := cs.ValidateJSON(candidate)
	if result.IsValid() {
		return gap
	}
	msgs := make([]string, 0, len(result.Errors))
	for loc, e := range result.Errors {
		msgs = append(msgs, fmt.Sprintf("%v: %v", loc, e))
	}
	sort.Strings(msgs)
	gap.Violations = append(gap.Violations, msgs...)
	return gap
}
