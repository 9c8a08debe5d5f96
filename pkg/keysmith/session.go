package keysmith

import (
	"errors"
	"log/slog"
)

// Session is the entry point for input synthesis. It owns one backend
// connection for its lifetime and tracks every key, button and modifier it
// holds so they can be released on teardown.
//
// A Session has two states: active from construction until Teardown, and
// torn down afterwards. Operations on a torn-down session fail with
// ErrSessionClosed; there is no re-entry.
//
// Sessions are not safe for concurrent use.
type Session struct {
	seq      *sequencer
	logger   *slog.Logger
	tornDown bool
}

// NewSession connects to an injection backend and returns an active
// session. When cfg names no backend, all registered backends are probed in
// priority order. Fails with *ConnectionError when no backend can be
// reached.
func NewSession(cfg Config) (*Session, error) {
	b, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}
	logger := cfg.logger()
	logger.Debug("session established", "backend", cfg.BackendName, "delay", cfg.InterEventDelay)
	return &Session{
		seq:    newSequencer(b, cfg),
		logger: logger,
	}, nil
}

// Key presses, releases or clicks an abstract key. Modifier keys are
// reference-counted in the session's modifier state; other keys enter the
// held set on Press and leave it on Release.
func (s *Session) Key(k Key, dir Direction) error {
	if s.tornDown {
		return ErrSessionClosed
	}
	return s.seq.key(k, dir)
}

// RawKey injects a platform keycode directly, bypassing layout resolution.
// The code is held-tracked like any other key.
func (s *Session) RawKey(code uint16, dir Direction) error {
	if s.tornDown {
		return ErrSessionClosed
	}
	return s.seq.rawKey(code, dir)
}

// Text types a Unicode string character by character, strictly in input
// order, bracketing each character with the modifiers its layout resolution
// requires. It returns the number of characters fully typed: on failure the
// remainder is abandoned, but partially-typed text has already reached the
// target and is reported rather than silently discarded.
func (s *Session) Text(text string) (int, error) {
	if s.tornDown {
		return 0, ErrSessionClosed
	}
	return s.seq.text(text)
}

// Button presses, releases or clicks a mouse button.
func (s *Session) Button(b Button, dir Direction) error {
	if s.tornDown {
		return ErrSessionClosed
	}
	return s.seq.button(b, dir)
}

// MoveMouse moves the pointer. Absolute coordinates are clamped to the main
// display bounds; Relative forwards the deltas as-is.
func (s *Session) MoveMouse(x, y int, coord Coordinate) error {
	if s.tornDown {
		return ErrSessionClosed
	}
	return s.seq.moveMouse(x, y, coord)
}

// Scroll scrolls by amount along the given axis. Positive is down for
// Vertical and right for Horizontal on every platform.
func (s *Session) Scroll(amount int, axis Axis) error {
	if s.tornDown {
		return ErrSessionClosed
	}
	return s.seq.scroll(amount, axis)
}

// Location returns the current pointer position, when the backend supports
// querying it.
func (s *Session) Location() (x, y int, err error) {
	if s.tornDown {
		return 0, 0, ErrSessionClosed
	}
	lq, ok := s.seq.backend.(LocationQuerier)
	if !ok {
		return 0, 0, errors.New("keysmith: backend cannot query pointer location")
	}
	return lq.Location()
}

// HeldKeys returns the number of keys and buttons currently in the held
// set, excluding modifiers.
func (s *Session) HeldKeys() int {
	return len(s.seq.held)
}

// HeldModifiers returns the bitmask of modifiers the session currently
// holds.
func (s *Session) HeldModifiers() Modifier {
	return s.seq.mods.Held()
}

// Teardown releases every held key, button and modifier, then closes the
// backend connection. Releases are best-effort: a failure on one never
// prevents attempting the rest, and all failures are aggregated into the
// returned error. Teardown is idempotent; the first call transitions the
// session to its terminal state.
func (s *Session) Teardown() error {
	if s.tornDown {
		return nil
	}
	s.tornDown = true

	err := s.seq.releaseAll()
	if cerr := s.seq.backend.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	if err != nil {
		s.logger.Warn("session teardown completed with errors", "error", err)
	} else {
		s.logger.Debug("session torn down")
	}
	return err
}
