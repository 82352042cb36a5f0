package engine

import (
	"fmt"

	"morph/internal/config"
	"morph/internal/telemetry"
)

// Bootstrap loads the transform registry, builds the engine and exposes
// metrics. Action factories must be registered before this runs.
func Bootstrap(cfg config.Engine) (*Engine, error) {
	reg, err := config.LoadRegistrySpec(cfg.Registry)
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}

	e, err := New(cfg, reg)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	telemetry.Expose(cfg.MetricsPort)
	return e, nil
}
