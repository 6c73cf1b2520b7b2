package llm

import "sort"

// Type is the JSON type of a schema node
type Type string

// Schema node types
const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
)

// Schema is a provider-neutral response schema. Each client converts it to
// its SDK's schema type.
type Schema struct {
	Type        Type
	Description string
	Properties  map[string]*Schema
	// PropertyOrder fixes the order in which the model emits object keys
	PropertyOrder []string
	Items         *Schema
	Required      []string
}

// Walk calls visit for s and every nested schema, depth first
func (s *Schema) Walk(visit func(path string, node *Schema)) {
	s.walk("$", visit)
}

func (s *Schema) walk(path string, visit func(string, *Schema)) {
	if s == nil {
		return
	}
	visit(path, s)
	for _, name := range s.orderedKeys() {
		s.Properties[name].walk(path+"."+name, visit)
	}
	if s.Items != nil {
		s.Items.walk(path+"[]", visit)
	}
}

// orderedKeys returns property names in PropertyOrder first, then Required
// order, then the rest alphabetically.
func (s *Schema) orderedKeys() []string {
	seen := make(map[string]bool, len(s.Properties))
	var keys []string
	add := func(name string) {
		if _, ok := s.Properties[name]; ok && !seen[name] {
			seen[name] = true
			keys = append(keys, name)
		}
	}
	for _, name := range s.PropertyOrder {
		add(name)
	}
	for _, name := range s.Required {
		add(name)
	}
	var rest []string
	for name := range s.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
