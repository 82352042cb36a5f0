// Package locking models access to an ownership unit's state lock.
//
// Transforms belong to a unit (typically the project that registered them).
// Isolating a transform's parameters must not race with the unit's own
// configuration, so the isolator needs at least shared (lenient) access to
// the unit before it takes its private single-flight lock. A caller that
// already holds the unit exclusively must not re-acquire it, or it would
// deadlock against itself; the Handle reports which case applies.
package locking

import "sync"

// Handle is the view of a unit's lock that a transform receives.
type Handle interface {
	// HasMutableState reports whether the holder of this handle already
	// owns the unit's state exclusively.
	HasMutableState() bool

	// WithLenientState runs fn while holding shared access to the unit.
	WithLenientState(fn func())

	// NewOperationLock returns an independent lock scoped to the unit,
	// for single-flight critical sections.
	NewOperationLock() *OperationLock
}

// Unit is an ownership unit with a reader/writer state lock.
type Unit struct {
	name  string
	state sync.RWMutex
}

func NewUnit(name string) *Unit { return &Unit{name: name} }

func (u *Unit) Name() string { return u.name }

// Lock acquires the unit's state exclusively. The holder should hand
// MutableAccess handles to work it drives while holding the lock.
func (u *Unit) Lock()   { u.state.Lock() }
func (u *Unit) Unlock() { u.state.Unlock() }

// SharedAccess returns a handle for callers that do not hold the unit.
func (u *Unit) SharedAccess() Handle { return access{unit: u, mutable: false} }

// MutableAccess returns a handle for the caller currently holding the
// unit's exclusive lock.
func (u *Unit) MutableAccess() Handle { return access{unit: u, mutable: true} }

type access struct {
	unit    *Unit
	mutable bool
}

func (a access) HasMutableState() bool { return a.mutable }

func (a access) WithLenientState(fn func()) {
	a.unit.state.RLock()
	defer a.unit.state.RUnlock()
	fn()
}

func (a access) NewOperationLock() *OperationLock { return &OperationLock{} }

// OperationLock guards one single-flight operation.
type OperationLock struct {
	mu sync.Mutex
}

func (l *OperationLock) WithLock(fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}
