package transform

import (
	"fmt"
	"sort"

	"morph/internal/hashing"
	"morph/internal/snapshot"
)

// PropertyKind tags a declared parameter property.
type PropertyKind int

const (
	PropertyInput PropertyKind = iota
	PropertyInputFile
	PropertyOutputFile
	PropertyOutputDirectory
)

// Property is one declared property yielded during a parameter walk.
// Value is evaluated lazily; a nil Value func means no value is set.
type Property struct {
	Name          string
	Kind          PropertyKind
	Optional      bool
	SkipWhenEmpty bool
	Value         func() (any, error)
}

// PropertyVisitor receives each declared property in turn. Returning an
// error stops the walk immediately.
type PropertyVisitor interface {
	VisitProperty(p Property) error
}

// VisitorFunc adapts a function to PropertyVisitor.
type VisitorFunc func(p Property) error

func (f VisitorFunc) VisitProperty(p Property) error { return f(p) }

// PropertySource is implemented by parameter objects (or their declaration
// schemas) to enumerate declared properties.
type PropertySource interface {
	VisitProperties(v PropertyVisitor) error
}

// FingerprintParameters walks params and feeds an ordered, deterministic
// fingerprint of its input properties into h. Hash input is independent of
// declaration order: entries are sorted by property name before hashing.
//
// Output-kind properties and missing required values become validation
// messages; if any were recorded the whole operation fails with a
// *ValidationError and nothing is hashed. File-input properties abort the
// walk with ErrFileInputsUnsupported.
func FingerprintParameters(params PropertySource, snap snapshot.Snapshotter, h *hashing.Hasher) error {
	entries := make(map[string]snapshot.Snapshot)
	var messages []string

	err := params.VisitProperties(VisitorFunc(func(p Property) error {
		switch p.Kind {
		case PropertyOutputFile, PropertyOutputDirectory:
			messages = append(messages, fmt.Sprintf("property %q declares an output location", p.Name))
			return nil
		case PropertyInputFile:
			return fmt.Errorf("property %q: %w", p.Name, ErrFileInputsUnsupported)
		}

		if _, dup := entries[p.Name]; dup {
			messages = append(messages, fmt.Sprintf("property %q is declared more than once", p.Name))
			return nil
		}

		var value any
		if p.Value != nil {
			v, err := p.Value()
			if err != nil {
				return fmt.Errorf("error while evaluating property %q of %s: %w", p.Name, displayName(params), err)
			}
			value = v
		}
		if value == nil && !p.Optional {
			messages = append(messages, fmt.Sprintf("property %q does not have a value specified", p.Name))
		}

		s, err := snap.Snapshot(value)
		if err != nil {
			return fmt.Errorf("error while snapshotting property %q of %s: %w", p.Name, displayName(params), err)
		}
		entries[p.Name] = s
		return nil
	}))
	if err != nil {
		return err
	}

	if len(messages) > 0 {
		return newValidationError(displayName(params), messages)
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		h.PutString(name)
		entries[name].AppendTo(h)
	}
	return nil
}

func displayName(params any) string {
	if s, ok := params.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", params)
}
