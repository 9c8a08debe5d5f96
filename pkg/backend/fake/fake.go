// Package fake provides an in-memory injection backend that records every
// primitive it receives. It backs the core test suite and the CLI dry-run
// mode.
package fake

import (
	"errors"
	"fmt"

	"github.com/ottogen/keysmith/pkg/backend/evdev"
	"github.com/ottogen/keysmith/pkg/keysmith"
)

func init() {
	keysmith.RegisterBackend(keysmith.BackendFactory{
		Name:     "fake",
		Priority: -100,
		// Never auto-selected; opened by name only.
		Probe: func() bool { return false },
		Open: func(cfg keysmith.Config) (keysmith.Backend, error) {
			return New(), nil
		},
	})
}

// Backend records primitives instead of delivering them anywhere. The
// keyboard layout it simulates is US; characters outside the layout resolve
// through a synthetic Unicode fallback unless DisableFallback is set.
type Backend struct {
	Events []keysmith.Primitive

	// FailOn, when non-nil, is consulted before recording each primitive;
	// a non-nil result is returned as the transport error.
	FailOn func(ev keysmith.Primitive) error

	// DisableFallback makes FallbackMapping report no support, so
	// characters outside the US layout fail with UnsupportedKey.
	DisableFallback bool

	// Generation is reported as the layout generation; bump it to simulate
	// a layout change.
	Generation uint64

	// Width and Height are the reported display bounds.
	Width, Height int

	// X, Y is the reported pointer location, updated by move primitives.
	X, Y int

	closed bool
}

// New returns an empty recording backend with a 1920x1080 display.
func New() *Backend {
	return &Backend{Width: 1920, Height: 1080}
}

func (b *Backend) SendPrimitive(ev keysmith.Primitive) error {
	if b.closed {
		return errors.New("backend closed")
	}
	if b.FailOn != nil {
		if err := b.FailOn(ev); err != nil {
			return err
		}
	}
	switch ev.Kind {
	case keysmith.MouseMoveAbs:
		b.X, b.Y = ev.X, ev.Y
	case keysmith.MouseMoveRel:
		b.X += ev.X
		b.Y += ev.Y
	}
	b.Events = append(b.Events, ev)
	return nil
}

func (b *Backend) NamedKeyCode(k keysmith.NamedKey) (keysmith.ResolvedCode, bool) {
	code, ok := evdev.NamedKeyCode[k]
	if !ok {
		return keysmith.ResolvedCode{}, false
	}
	return keysmith.ResolvedCode{Keycode: code}, true
}

func (b *Backend) LayoutMapping(r rune) (keysmith.ResolvedCode, bool, error) {
	code, shift, ok := evdev.Resolve(r)
	if !ok {
		return keysmith.ResolvedCode{}, false, nil
	}
	var mods keysmith.Modifier
	if shift {
		mods = keysmith.ModShift
	}
	return keysmith.ResolvedCode{Keycode: code, Rune: r, Mods: mods}, true, nil
}

func (b *Backend) FallbackMapping(r rune) (keysmith.ResolvedCode, bool, error) {
	if b.DisableFallback {
		return keysmith.ResolvedCode{}, false, nil
	}
	// Synthetic code outside the evdev range, unique per rune.
	return keysmith.ResolvedCode{Keycode: uint16(0x8000 | (uint16(r) & 0x7fff)), Rune: r, Fallback: true}, true, nil
}

func (b *Backend) LayoutGeneration() uint64 { return b.Generation }

func (b *Backend) MainDisplayBounds() (int, int, error) { return b.Width, b.Height, nil }

// Location implements keysmith.LocationQuerier.
func (b *Backend) Location() (int, int, error) { return b.X, b.Y, nil }

func (b *Backend) Close() error {
	if b.closed {
		return errors.New("backend closed twice")
	}
	b.closed = true
	return nil
}

// Kinds returns the recorded primitive kinds in order, handy for compact
// assertions.
func (b *Backend) Kinds() []keysmith.PrimitiveKind {
	out := make([]keysmith.PrimitiveKind, len(b.Events))
	for i, ev := range b.Events {
		out[i] = ev.Kind
	}
	return out
}

// Describe renders the recorded stream one primitive per line.
func (b *Backend) Describe() string {
	s := ""
	for i, ev := range b.Events {
		s += fmt.Sprintf("%d: %s\n", i, ev)
	}
	return s
}
