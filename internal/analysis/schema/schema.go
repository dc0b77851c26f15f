// Package schema describes the shape of a structured model response.
//
// A descriptor is plain data: it is sent to the model as a constraint and
// used afterwards to spot missing fields, but it never rejects a value itself.
package schema

import "strconv"

type Kind string

const (
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindString  Kind = "string"
	KindEnum    Kind = "enum"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
)

// Field is a named member of an object node. Fields keep declaration order.
type Field struct {
	Name string
	Node *Node
}

type Node struct {
	Kind        Kind
	Description string
	Fields      []Field
	Required    []string
	Items       *Node
	Values      []string
}

func Prop(name string, n *Node) Field {
	return Field{Name: name, Node: n}
}

func Object(desc string, fields ...Field) *Node {
	return &Node{Kind: KindObject, Description: desc, Fields: fields}
}

func Array(desc string, items *Node) *Node {
	return &Node{Kind: KindArray, Description: desc, Items: items}
}

func String(desc string) *Node {
	return &Node{Kind: KindString, Description: desc}
}

func Number(desc string) *Node {
	return &Node{Kind: KindNumber, Description: desc}
}

func Boolean(desc string) *Node {
	return &Node{Kind: KindBoolean, Description: desc}
}

func Enum(desc string, values ...string) *Node {
	return &Node{Kind: KindEnum, Description: desc, Values: values}
}

// Require marks fields of an object node as required and returns the node.
func (n *Node) Require(names ...string) *Node {
	if n == nil {
		return nil
	}
	n.Required = append(n.Required, names...)
	return n
}

// RequireAll marks every declared field as required.
func (n *Node) RequireAll() *Node {
	if n == nil {
		return nil
	}
	names := make([]string, 0, len(n.Fields))
	for _, f := range n.Fields {
		names = append(names, f.Name)
	}
	return n.Require(names...)
}

func (n *Node) IsRequired(name string) bool {
	if n == nil {
		return false
	}
	for _, r := range n.Required {
		if r == name {
			return true
		}
	}
	return false
}

// MissingRequired walks a decoded JSON value (maps, slices, scalars as produced
// by encoding/json) and returns the dotted paths of required fields that are
// absent or null. Type mismatches on the way down stop the walk for that branch.
func (n *Node) MissingRequired(value any) []string {
	var out []string
	n.walkMissing(value, "", &out)
	return out
}

func (n *Node) walkMissing(value any, path string, out *[]string) {
	if n == nil || value == nil {
		return
	}
	switch n.Kind {
	case KindObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return
		}
		for _, name := range n.Required {
			if v, ok := obj[name]; !ok || v == nil {
				*out = append(*out, joinPath(path, name))
			}
		}
		for _, f := range n.Fields {
			if v, ok := obj[f.Name]; ok {
				f.Node.walkMissing(v, joinPath(path, f.Name), out)
			}
		}
	case KindArray:
		arr, ok := value.([]any)
		if !ok {
			return
		}
		for i, item := range arr {
			n.Items.walkMissing(item, path+"["+strconv.Itoa(i)+"]", out)
		}
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
