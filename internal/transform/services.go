package transform

import "reflect"

// Capability tags the role a value plays when injected into a freshly
// constructed action.
type Capability string

const (
	CapPrimaryInput Capability = "primary-input"
	CapParameters   Capability = "parameters"
	CapDependencies Capability = "dependencies"
)

type injectionPoint struct {
	capability Capability
	typ        reflect.Type
	value      any
}

// ServiceLookup resolves the values supplied to one action instance:
// the primary input path, the isolated parameters (when the transform has
// any) and the upstream dependency file set (when the transform declared
// it). Built fresh per invocation and discarded after construction.
type ServiceLookup struct {
	points []injectionPoint
}

func NewServiceLookup(primaryInput string, parameters any, dependencies *Dependencies) *ServiceLookup {
	points := []injectionPoint{
		{capability: CapPrimaryInput, typ: reflect.TypeOf(primaryInput), value: primaryInput},
	}
	if parameters != nil {
		points = append(points, injectionPoint{capability: CapParameters, typ: reflect.TypeOf(parameters), value: parameters})
	}
	if dependencies != nil {
		points = append(points, injectionPoint{capability: CapDependencies, typ: reflect.TypeOf(dependencies), value: dependencies})
	}
	return &ServiceLookup{points: points}
}

// Find returns the first injection point whose capability matches and whose
// declared type is assignable to serviceType.
func (l *ServiceLookup) Find(serviceType reflect.Type, capability Capability) (any, bool) {
	for _, p := range l.points {
		if p.capability == capability && p.typ.AssignableTo(serviceType) {
			return p.value, true
		}
	}
	return nil, false
}

// Get is Find, but an unsatisfiable lookup is an error rather than an
// empty result.
func (l *ServiceLookup) Get(serviceType reflect.Type, capability Capability) (any, error) {
	if v, ok := l.Find(serviceType, capability); ok {
		return v, nil
	}
	return nil, &UnknownServiceError{Type: serviceType, Capability: capability}
}

// Inject resolves a typed value from the lookup.
func Inject[T any](l *ServiceLookup, capability Capability) (T, error) {
	v, err := l.Get(reflect.TypeFor[T](), capability)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
