// Package engine drives registered transforms over declared inputs.
// Cache keys are computed up front (isolation happens before any
// scheduling decision), invocations run concurrently under a throttle,
// and each invocation gets its own workspace directory keyed by the
// transform's secondary-input hash.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"morph/internal/config"
	"morph/internal/locking"
	"morph/internal/logging"
	"morph/internal/spec"
	"morph/internal/telemetry"
	"morph/internal/transform"
)

type Engine struct {
	cfg        config.Engine
	unit       *locking.Unit
	transforms []*transform.Transform
	inputs     []spec.InputSpec
	throttle   *Throttle
}

// Result is one finished invocation.
type Result struct {
	Transform string
	Input     string
	CacheKey  string
	Outputs   []string
}

func New(cfg config.Engine, reg spec.File) (*Engine, error) {
	unitName := reg.Unit
	if unitName == "" {
		unitName = "root"
	}
	unit := locking.NewUnit(unitName)

	transforms, err := Compile(reg, unit.SharedAccess())
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:        cfg,
		unit:       unit,
		transforms: transforms,
		inputs:     reg.Inputs,
		throttle:   NewThrottle(cfg.Workers),
	}, nil
}

func (e *Engine) Transforms() []*transform.Transform { return e.transforms }

// Run isolates every transform, then executes each applicable
// (transform, input) pair. All failures are collected, not just the first.
func (e *Engine) Run(ctx context.Context) ([]Result, error) {
	log := logging.For("engine")

	if err := e.isolateAll(); err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		results []Result
		errs    *multierror.Error
		wg      sync.WaitGroup
	)
	for _, tr := range e.transforms {
		for _, in := range e.inputs {
			if !applies(tr, in) {
				continue
			}
			tr, in := tr, in
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := e.throttle.Acquire(ctx); err != nil {
					mu.Lock()
					errs = multierror.Append(errs, err)
					mu.Unlock()
					return
				}
				defer e.throttle.Release()

				res, err := e.invoke(ctx, tr, in)
				mu.Lock()
				if err != nil {
					errs = multierror.Append(errs, err)
					telemetry.Executions.WithLabelValues("error").Inc()
				} else {
					results = append(results, res)
					telemetry.Executions.WithLabelValues("ok").Inc()
				}
				mu.Unlock()
			}()
		}
	}
	wg.Wait()

	if err := errs.ErrorOrNil(); err != nil {
		return results, err
	}
	log.Info("run complete", "invocations", len(results))
	return results, nil
}

// isolateAll computes every cache key before execution starts; a cache
// lookup needs the key before the scheduler decides anything.
func (e *Engine) isolateAll() error {
	var errs *multierror.Error
	for _, tr := range e.transforms {
		if err := tr.IsolateParameters(); err != nil {
			telemetry.IsolationFailures.Inc()
			errs = multierror.Append(errs, err)
			continue
		}
		telemetry.Isolations.Inc()
	}
	return errs.ErrorOrNil()
}

func (e *Engine) invoke(ctx context.Context, tr *transform.Transform, in spec.InputSpec) (Result, error) {
	log := logging.For("engine")

	key, err := tr.SecondaryInputHash()
	if err != nil {
		return Result{}, err
	}

	outputDir := filepath.Join(e.cfg.WorkspaceRoot, tr.Name(), key.String(), in.Name)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("provision workspace for %s: %w", tr.Name(), err)
	}

	invocation := uuid.NewString()
	log.Debug("executing transform",
		"invocation", invocation, "transform", tr.Name(), "input", in.Name, "cache_key", key.String())

	var deps *transform.Dependencies
	if tr.RequiresDependencies() {
		deps = transform.NewDependencies(in.Dependencies...)
	}

	outputs, err := tr.Execute(ctx, in.Path, outputDir, deps)
	if err != nil {
		if isOutputValidation(err) {
			telemetry.OutputValidationFailures.Inc()
		}
		return Result{}, fmt.Errorf("invocation %s (%s on %s): %w", invocation, tr.Name(), in.Name, err)
	}

	return Result{
		Transform: tr.Name(),
		Input:     in.Name,
		CacheKey:  key.String(),
		Outputs:   outputs,
	}, nil
}

func isOutputValidation(err error) bool {
	var loc *transform.LocationError
	var missing *transform.MissingOutputError
	var wrong *transform.WrongKindError
	return errors.As(err, &loc) || errors.As(err, &missing) || errors.As(err, &wrong)
}

// applies reports whether the transform's from-attributes are a subset of
// the input's attributes.
func applies(tr *transform.Transform, in spec.InputSpec) bool {
	for k, v := range tr.FromAttributes() {
		if in.Attributes[k] != v {
			return false
		}
	}
	return true
}
