package transform

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"morph/internal/hashing"
	"morph/internal/isolation"
	"morph/internal/locking"
	"morph/internal/snapshot"
)

// Transform is one configured unit of work mapping an input artifact to a
// declared set of outputs. Its identity is the action implementation, the
// parameter object (or absence thereof) and the declared from-attributes;
// all of it is immutable once constructed.
//
// The isolated-parameters cell is the only shared mutable state: it moves
// monotonically from empty to populated, under a single-flight lock, and
// is reset only by never being set (isolation failure leaves it empty so a
// later caller can retry).
type Transform struct {
	name                 string
	actionName           string
	parameters           PropertySource
	fromAttributes       map[string]string
	requiresDependencies bool

	factory     ActionFactory
	identity    IdentityHasher
	snapshotter snapshot.Snapshotter
	isolator    isolation.Isolator

	unit          locking.Handle
	isolationLock *locking.OperationLock

	isolated atomic.Pointer[IsolatedParameters]
}

// IsolatedParameters pairs the transform-private parameter snapshot with
// the secondary-input hash derived from it. Shared read-only by every
// invocation of the owning transform.
type IsolatedParameters struct {
	snapshot           any
	secondaryInputHash hashing.Hash
}

func (p *IsolatedParameters) SecondaryInputHash() hashing.Hash { return p.secondaryInputHash }

// Config carries everything a Transform needs. Name, Action, Factory and
// Unit are required; nil collaborators fall back to the defaults.
type Config struct {
	Name                 string
	Action               string
	Parameters           PropertySource
	FromAttributes       map[string]string
	RequiresDependencies bool

	Factory     ActionFactory
	Identity    IdentityHasher
	Snapshotter snapshot.Snapshotter
	Isolator    isolation.Isolator
	Unit        locking.Handle
}

func New(cfg Config) (*Transform, error) {
	if cfg.Name == "" {
		return nil, errors.New("transform: name is required")
	}
	if cfg.Factory == nil {
		return nil, fmt.Errorf("transform %s: action factory is required", cfg.Name)
	}
	if cfg.Unit == nil {
		return nil, fmt.Errorf("transform %s: ownership unit handle is required", cfg.Name)
	}
	if cfg.Identity == nil {
		cfg.Identity = NameIdentity{}
	}
	if cfg.Snapshotter == nil {
		cfg.Snapshotter = snapshot.NewValues()
	}
	if cfg.Isolator == nil {
		cfg.Isolator = isolation.NewDeep()
	}

	attrs := make(map[string]string, len(cfg.FromAttributes))
	for k, v := range cfg.FromAttributes {
		attrs[k] = v
	}

	return &Transform{
		name:                 cfg.Name,
		actionName:           cfg.Action,
		parameters:           cfg.Parameters,
		fromAttributes:       attrs,
		requiresDependencies: cfg.RequiresDependencies,
		factory:              cfg.Factory,
		identity:             cfg.Identity,
		snapshotter:          cfg.Snapshotter,
		isolator:             cfg.Isolator,
		unit:                 cfg.Unit,
		isolationLock:        cfg.Unit.NewOperationLock(),
	}, nil
}

func (t *Transform) Name() string               { return t.name }
func (t *Transform) ActionName() string         { return t.actionName }
func (t *Transform) RequiresDependencies() bool { return t.requiresDependencies }

// FromAttributes returns a copy of the declared source attribute set.
func (t *Transform) FromAttributes() map[string]string {
	out := make(map[string]string, len(t.fromAttributes))
	for k, v := range t.fromAttributes {
		out[k] = v
	}
	return out
}

// IsolateParameters computes the transform's isolated parameters and
// secondary-input hash, at most once. Safe to call from any number of
// goroutines: the first caller does the work, everyone else blocks on the
// operation lock and then observes the finished result. A caller that does
// not already hold the owning unit takes lenient (shared) unit access
// first, so it cannot deadlock against a holder driving the same work.
func (t *Transform) IsolateParameters() error {
	if t.isolated.Load() != nil {
		return nil
	}
	if !t.unit.HasMutableState() {
		var err error
		t.unit.WithLenientState(func() {
			err = t.isolateExclusively()
		})
		return err
	}
	return t.isolateExclusively()
}

func (t *Transform) isolateExclusively() error {
	return t.isolationLock.WithLock(func() error {
		if t.isolated.Load() != nil {
			return nil
		}
		isolated, err := t.doIsolateParameters()
		if err != nil {
			return &ConfigurationError{Transform: t.name, Parameters: displayName(t.parameters), cause: err}
		}
		t.isolated.Store(isolated)
		return nil
	})
}

func (t *Transform) doIsolateParameters() (*IsolatedParameters, error) {
	var isolatedParams any
	if t.parameters != nil {
		v, err := t.isolator.Isolate(t.parameters)
		if err != nil {
			return nil, err
		}
		isolatedParams = v
	}

	h := hashing.NewHasher()
	id, err := t.identity.IdentityHash(t.actionName)
	if err != nil {
		return nil, err
	}
	h.PutString(t.actionName)
	h.PutBytes(id)

	if isolatedParams != nil {
		// Fingerprint a fresh copy so the walk cannot observe (or leak)
		// the stored snapshot.
		fresh, err := t.isolator.Isolate(isolatedParams)
		if err != nil {
			return nil, err
		}
		source, ok := fresh.(PropertySource)
		if !ok {
			return nil, fmt.Errorf("parameters %s do not declare their properties", displayName(fresh))
		}
		if err := FingerprintParameters(source, t.snapshotter, h); err != nil {
			return nil, err
		}
	}

	return &IsolatedParameters{snapshot: isolatedParams, secondaryInputHash: h.Hash()}, nil
}

// SecondaryInputHash returns the cache-key component derived from the
// implementation identity and the parameter fingerprint. Calling it before
// isolation completed is an ordering bug and fails with ErrNotIsolated.
func (t *Transform) SecondaryInputHash() (hashing.Hash, error) {
	isolated := t.isolated.Load()
	if isolated == nil {
		return hashing.Hash{}, fmt.Errorf("%w: transform %s", ErrNotIsolated, t.name)
	}
	return isolated.secondaryInputHash, nil
}

// Execute runs one invocation: a fresh action instance gets the resolved
// injection values, writes through a fresh Outputs bound to (primaryInput,
// outputDir), and the validated output list is returned in registration
// order. No retries here; that is the scheduler's call.
func (t *Transform) Execute(ctx context.Context, primaryInput, outputDir string, dependencies *Dependencies) ([]string, error) {
	isolated := t.isolated.Load()
	if isolated == nil {
		return nil, fmt.Errorf("%w: transform %s", ErrNotIsolated, t.name)
	}

	var params any
	if isolated.snapshot != nil {
		fresh, err := t.isolator.Isolate(isolated.snapshot)
		if err != nil {
			return nil, fmt.Errorf("transform %s: copy isolated parameters: %w", t.name, err)
		}
		params = fresh
	}

	var deps *Dependencies
	if t.requiresDependencies {
		deps = dependencies
	}

	services := NewServiceLookup(primaryInput, params, deps)
	action, err := t.factory(services)
	if err != nil {
		return nil, fmt.Errorf("transform %s: instantiate action: %w", t.name, err)
	}

	outputs := NewOutputs(primaryInput, outputDir)
	if err := action.Transform(ctx, outputs); err != nil {
		return nil, fmt.Errorf("transform %s: %w", t.name, err)
	}
	return outputs.Finalize()
}
