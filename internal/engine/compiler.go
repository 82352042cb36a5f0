package engine

import (
	"fmt"

	"morph/internal/locking"
	"morph/internal/spec"
	"morph/internal/transform"
)

// Compile builds the registered transforms declared in a registry spec.
// Action names resolve against the action registry; parameter maps become
// property-declaring parameter objects.
func Compile(reg spec.File, unit locking.Handle) ([]*transform.Transform, error) {
	transforms := make([]*transform.Transform, 0, len(reg.Transforms))
	for _, ts := range reg.Transforms {
		factory, err := transform.ActionFor(ts.Action)
		if err != nil {
			return nil, fmt.Errorf("transform %s: %w", ts.Name, err)
		}

		var params transform.PropertySource
		if len(ts.Parameters) > 0 {
			display := fmt.Sprintf("parameters of %s", ts.Name)
			params = transform.NewMapParameters(display, ts.Parameters, ts.Optional...)
		}

		tr, err := transform.New(transform.Config{
			Name:                 ts.Name,
			Action:               ts.Action,
			Parameters:           params,
			FromAttributes:       ts.From,
			RequiresDependencies: ts.RequiresDependencies,
			Factory:              factory,
			Unit:                 unit,
		})
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, tr)
	}
	return transforms, nil
}
