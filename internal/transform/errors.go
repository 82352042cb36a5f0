package transform

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrNotIsolated signals that isolated parameters were accessed
	// before isolation completed. Always a caller ordering bug.
	ErrNotIsolated = errors.New("transform parameters have not been isolated")

	// ErrFileInputsUnsupported signals a file-input property on a
	// parameter object. There are no defined semantics for it here, so
	// it fails the whole fingerprinting operation rather than becoming
	// a validation message.
	ErrFileInputsUnsupported = errors.New("file input properties are not supported on transform parameters")
)

// LocationError reports an output registered outside both allowed roots.
type LocationError struct {
	Path         string
	PrimaryInput string
	OutputDir    string
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("transform output %s must be inside the input artifact %s or the output directory %s", e.Path, e.PrimaryInput, e.OutputDir)
}

// MissingOutputError reports a registered output absent at finalize time.
type MissingOutputError struct {
	Path string
}

func (e *MissingOutputError) Error() string {
	return fmt.Sprintf("transform output %s does not exist", e.Path)
}

// WrongKindError reports a registered output whose on-disk kind does not
// match its declared kind.
type WrongKindError struct {
	Path string
	Kind OutputKind
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("transform output %s must be a %s, but is not", e.Path, e.Kind)
}

// ValidationError aggregates every problem found while fingerprinting one
// parameter object, so the author sees the complete set in one report.
type ValidationError struct {
	Subject  string
	problems *multierror.Error
}

func newValidationError(subject string, messages []string) *ValidationError {
	var problems *multierror.Error
	for _, m := range messages {
		problems = multierror.Append(problems, errors.New(m))
	}
	return &ValidationError{Subject: subject, problems: problems}
}

func (e *ValidationError) Error() string {
	n := len(e.problems.Errors)
	if n == 1 {
		return fmt.Sprintf("a problem was found with the configuration of the transform parameters %s: %s", e.Subject, e.problems.Errors[0])
	}
	return fmt.Sprintf("%d problems were found with the configuration of the transform parameters %s: %s", n, e.Subject, e.problems)
}

func (e *ValidationError) Unwrap() error { return e.problems }

// Messages returns the individual problems in discovery order.
func (e *ValidationError) Messages() []string {
	out := make([]string, len(e.problems.Errors))
	for i, err := range e.problems.Errors {
		out[i] = err.Error()
	}
	return out
}

// ConfigurationError wraps a failure to isolate a transform's parameters.
// The transform's isolation cell stays empty, so a later call may retry.
type ConfigurationError struct {
	Transform  string
	Parameters string
	cause      error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("cannot isolate parameters %s of artifact transform %s: %v", e.Parameters, e.Transform, e.cause)
}

func (e *ConfigurationError) Unwrap() error { return e.cause }

// UnknownServiceError reports a service lookup the resolver cannot satisfy.
type UnknownServiceError struct {
	Type       reflect.Type
	Capability Capability
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("no service of type %s with capability %q available", e.Type, e.Capability)
}
