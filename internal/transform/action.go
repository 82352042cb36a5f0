package transform

import (
	"context"
	"fmt"
)

// Action is one configured transform step. Implementations read their
// injected values from the ServiceLookup at construction time and write
// their results through the staged Outputs.
type Action interface {
	Transform(ctx context.Context, outputs *Outputs) error
}

// ActionFactory builds a fresh action instance for one invocation,
// pulling its constructor-time values from the lookup.
type ActionFactory func(services *ServiceLookup) (Action, error)

/*──────── registry ───────*/

var registry = map[string]ActionFactory{}

// RegisterAction is called from each action implementation's init() or
// from main() wiring.
func RegisterAction(name string, f ActionFactory) {
	registry[name] = f
}

// ActionFor returns the factory registered under name.
func ActionFor(name string) (ActionFactory, error) {
	if f, ok := registry[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("unknown transform action %q", name)
}
