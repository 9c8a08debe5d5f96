package keysmith

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Backend is the transport that delivers resolved primitive events to the
// operating system or display server. One implementation exists per
// platform/protocol; the core never branches on platform identity.
//
// All methods are called from a single goroutine for the lifetime of one
// Session, which owns the underlying connection exclusively.
type Backend interface {
	// SendPrimitive delivers one event. Events must reach the target in
	// exactly the order they are sent.
	SendPrimitive(ev Primitive) error

	// NamedKeyCode resolves a portable named key to its fixed code on this
	// platform. ok is false when the platform has no such key.
	NamedKeyCode(k NamedKey) (code ResolvedCode, ok bool)

	// LayoutMapping queries the active keyboard layout for a key+modifier
	// combination producing exactly r. ok is false when the layout has no
	// such combination; a non-nil error means the query itself failed.
	LayoutMapping(r rune) (code ResolvedCode, ok bool, err error)

	// FallbackMapping resolves r through the backend's Unicode-injection
	// mode, if it has one (temporary layout entry, direct character
	// injection). ok is false when the backend has no fallback.
	FallbackMapping(r rune) (code ResolvedCode, ok bool, err error)

	// LayoutGeneration is a counter that increases every time the backend
	// observes a keyboard layout change. Resolution caches keyed to a
	// generation are invalid once it moves.
	LayoutGeneration() uint64

	// MainDisplayBounds returns the size of the main display in pixels,
	// used to clamp absolute mouse moves.
	MainDisplayBounds() (width, height int, err error)

	Close() error
}

// LocationQuerier is implemented by backends that can report the current
// pointer position.
type LocationQuerier interface {
	Location() (x, y int, err error)
}

// TextInjector is implemented by backends that can inject a whole string
// directly, bypassing per-character key events. Used as a fast path only;
// per-character typing remains the reference semantics.
type TextInjector interface {
	InjectText(s string, marker uint32) error
}

// BackendFactory describes one registered backend implementation.
type BackendFactory struct {
	// Name identifies the backend ("x11", "wayland", "windows", ...).
	Name string
	// Priority orders auto-selection probing; higher is tried first.
	Priority int
	// Probe is a cheap environment check (env vars, GOOS) run before Open.
	Probe func() bool
	// Open establishes the connection.
	Open func(cfg Config) (Backend, error)
}

var (
	backendsMu sync.Mutex
	backends   []BackendFactory
)

// RegisterBackend makes a backend available for auto-selection and for
// opening by name. Backend packages call it from init.
func RegisterBackend(f BackendFactory) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends = append(backends, f)
}

// registeredBackends returns a stable snapshot sorted by descending
// priority.
func registeredBackends() []BackendFactory {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	out := make([]BackendFactory, len(backends))
	copy(out, backends)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}

// openBackend connects to the configured backend, or probes all registered
// backends in priority order when no name is given.
func openBackend(cfg Config) (Backend, error) {
	if cfg.Backend != nil {
		return cfg.Backend, nil
	}
	if cfg.BackendName != "" {
		for _, f := range registeredBackends() {
			if f.Name == cfg.BackendName {
				b, err := f.Open(cfg)
				if err != nil {
					return nil, &ConnectionError{Backend: f.Name, Err: err}
				}
				return b, nil
			}
		}
		return nil, &ConnectionError{Backend: cfg.BackendName, Err: errors.New("no such backend registered")}
	}

	var probeErrs []error
	for _, f := range registeredBackends() {
		if f.Probe != nil && !f.Probe() {
			continue
		}
		b, err := f.Open(cfg)
		if err != nil {
			probeErrs = append(probeErrs, fmt.Errorf("%s: %w", f.Name, err))
			continue
		}
		return b, nil
	}
	if len(probeErrs) == 0 {
		probeErrs = append(probeErrs, errors.New("no backend available for this platform"))
	}
	return nil, &ConnectionError{Backend: "auto", Err: errors.Join(probeErrs...)}
}
