package prompts

import (
	"fmt"
	"strings"

	"github.com/HACKWAVE2025/B54/internal/analysis/schema"
)

type Validator func(Input) error

type Template struct {
	Name       PromptName
	Version    int
	SchemaName string
	Schema     func() *schema.Node
	System     func(Input) string
	User       func(Input) string
	Validate   Validator
}

var registry = map[PromptName]Template{}

// Register registers a compiled Template.
func Register(t Template) {
	registry[t.Name] = t
}

// Build renders the named template. It performs no I/O and is rebuilt on every
// call.
func Build(name PromptName, in Input) (Prompt, error) {
	t, ok := registry[name]
	if !ok {
		return Prompt{}, fmt.Errorf("unknown prompt: %s", string(name))
	}
	if t.System == nil || t.User == nil {
		return Prompt{}, fmt.Errorf("prompt %s missing system/user renderers", string(name))
	}
	in = in.normalized()
	if t.Validate != nil {
		if err := t.Validate(in); err != nil {
			return Prompt{}, &InputError{Prompt: name, Err: err}
		}
	}

	p := Prompt{
		Name:       t.Name,
		Version:    t.Version,
		SchemaName: strings.TrimSpace(t.SchemaName),
		System:     strings.TrimSpace(t.System(in)),
		User:       strings.TrimSpace(t.User(in)),
		Attachment: in.Attachment,
	}
	if t.Schema != nil {
		p.Schema = t.Schema()
		p.User = p.User + "\n\n" + outputContract(p.Schema, in.Language)
	}
	return p, nil
}

func Schema(name PromptName) (schemaName string, s *schema.Node, ok bool) {
	t, ok := registry[name]
	if !ok || t.Schema == nil {
		return "", nil, false
	}
	return t.SchemaName, t.Schema(), true
}
