package keysmith

import (
	"log/slog"
	"time"
)

// Config is the immutable session configuration, captured at construction.
type Config struct {
	// InterEventDelay is the minimum spacing enforced between consecutive
	// primitive events. Some injection APIs silently drop rapid-fire events;
	// on backends that deliver synchronously it is a harmless no-op.
	InterEventDelay time.Duration `help:"Minimum delay between primitive events" default:"12ms" env:"KEYSMITH_DELAY"`

	// IndependentOfPhysicalModifiers makes synthesized events ignore the
	// real keyboard's current modifier state where the backend supports it.
	IndependentOfPhysicalModifiers bool `help:"Ignore physically held modifiers when injecting" default:"true" env:"KEYSMITH_INDEPENDENT"`

	// EventMarker is attached to every synthesized event so the originating
	// application can distinguish its own synthetic events from real user
	// input when it observes them later.
	EventMarker uint32 `help:"Opaque marker attached to every synthesized event" default:"0" env:"KEYSMITH_MARKER"`

	// BackendName selects a registered backend by name; empty means probe
	// all registered backends in priority order.
	BackendName string `help:"Injection backend (x11, wayland, windows); empty for auto" default:"" env:"KEYSMITH_BACKEND"`

	// Display overrides the display/connection string passed to the
	// backend (e.g. X11 DISPLAY, Wayland socket name).
	Display string `help:"Display or connection string for the backend" default:"" env:"KEYSMITH_DISPLAY"`

	// AllowFastText lets backends that support direct string injection
	// bypass per-character typing for Text requests.
	AllowFastText bool `help:"Allow direct string injection where supported" default:"false" env:"KEYSMITH_FAST_TEXT"`

	// Backend, when non-nil, is used directly and BackendName is ignored.
	// The session takes ownership and closes it on teardown.
	Backend Backend `kong:"-"`

	// Logger receives structured logs; nil means slog.Default().
	Logger *slog.Logger `kong:"-"`
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
