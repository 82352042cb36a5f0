// Package uppercase provides the built-in "uppercase" action, mainly
// useful for demos and smoke tests: the input artifact's bytes are
// upper-cased into a sibling output.
package uppercase

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"morph/internal/transform"
)

type action struct {
	input  string
	suffix string
}

func (a *action) Transform(_ context.Context, outputs *transform.Outputs) error {
	payload, err := os.ReadFile(a.input)
	if err != nil {
		return err
	}
	dest, err := outputs.File(filepath.Base(a.input) + a.suffix)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, bytes.ToUpper(payload), 0o644)
}

func init() {
	transform.RegisterAction("uppercase", func(services *transform.ServiceLookup) (transform.Action, error) {
		input, err := transform.Inject[string](services, transform.CapPrimaryInput)
		if err != nil {
			return nil, err
		}
		suffix := ".upper"
		if params, err := transform.Inject[*transform.MapParameters](services, transform.CapParameters); err == nil {
			if v, ok := params.Get("suffix"); ok {
				if s, ok := v.(string); ok {
					suffix = s
				}
			}
		}
		return &action{input: input, suffix: suffix}, nil
	})
}
