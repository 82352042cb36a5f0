package transform

import (
	"sort"

	"github.com/mohae/deepcopy"
)

// MapParameters adapts a plain config map (as parsed from a registry
// file) to the property-declaration contract. Every key is declared as a
// required input property; keys listed in optional are declared optional.
type MapParameters struct {
	display  string
	values   map[string]any
	optional map[string]bool
}

func NewMapParameters(display string, values map[string]any, optional ...string) *MapParameters {
	opt := make(map[string]bool, len(optional))
	for _, name := range optional {
		opt[name] = true
	}
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &MapParameters{display: display, values: copied, optional: opt}
}

func (m *MapParameters) String() string { return m.display }

// Get returns a declared parameter value.
func (m *MapParameters) Get(name string) (any, bool) {
	v, ok := m.values[name]
	return v, ok
}

// IsolateValue produces a private copy. A generic reflective deep copy
// cannot reach the unexported fields here, so the type copies itself.
func (m *MapParameters) IsolateValue() (any, error) {
	cp := &MapParameters{
		display:  m.display,
		values:   deepcopy.Copy(m.values).(map[string]any),
		optional: make(map[string]bool, len(m.optional)),
	}
	for name, opt := range m.optional {
		cp.optional[name] = opt
	}
	return cp, nil
}

func (m *MapParameters) VisitProperties(v PropertyVisitor) error {
	names := make([]string, 0, len(m.values))
	for name := range m.values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := m.values[name]
		p := Property{
			Name:     name,
			Kind:     PropertyInput,
			Optional: m.optional[name],
		}
		if value != nil {
			p.Value = func() (any, error) { return value, nil }
		}
		if err := v.VisitProperty(p); err != nil {
			return err
		}
	}
	return nil
}
