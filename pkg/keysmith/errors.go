package keysmith

import (
	"errors"
	"fmt"
)

// ErrSessionClosed is returned by every Session operation invoked after
// Teardown.
var ErrSessionClosed = errors.New("keysmith: session is closed")

// ConnectionError reports that no injection backend could be reached at
// session construction. It is fatal to that session.
type ConnectionError struct {
	Backend string // backend name, or "auto" when probing all registered backends
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("keysmith: cannot connect to backend %q: %v", e.Backend, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// UnsupportedKeyError reports that an abstract key has no resolution on the
// current platform and layout. The caller may recover by substituting a
// different key; session state is unchanged.
type UnsupportedKeyError struct {
	Key Key
}

func (e *UnsupportedKeyError) Error() string {
	return fmt.Sprintf("keysmith: key %s has no resolution on this platform", e.Key)
}

// LayoutQueryError reports that the backend failed while querying the
// active keyboard layout.
type LayoutQueryError struct {
	Err error
}

func (e *LayoutQueryError) Error() string {
	return fmt.Sprintf("keysmith: layout query failed: %v", e.Err)
}

func (e *LayoutQueryError) Unwrap() error { return e.Err }

// InjectionError reports that the backend rejected or failed to deliver a
// primitive event. It aborts the remainder of a compound request; held-state
// bookkeeping reflects only the sub-events that actually succeeded.
type InjectionError struct {
	Event Primitive
	Err   error
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("keysmith: failed to inject %s: %v", e.Event, e.Err)
}

func (e *InjectionError) Unwrap() error { return e.Err }
