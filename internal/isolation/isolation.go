// Package isolation makes transform-private copies of parameter objects.
// An isolated value shares no mutable state with the original, so later
// mutation by the configuring code cannot corrupt a transform's frozen view.
package isolation

// Isolator produces an independent deep copy of a value.
type Isolator interface {
	Isolate(value any) (any, error)
}

// Isolatable lets a parameter object control its own copy, e.g. when it
// holds handles that a generic deep copy would not reproduce correctly.
type Isolatable interface {
	IsolateValue() (any, error)
}
