package keysmith

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ottogen/keysmith/internal/log"
)

// heldEntry identifies one not-yet-released key or button in the HeldSet.
type heldEntry struct {
	isButton bool
	btn      Button
	code     ResolvedCode
}

// sequencer turns high-level requests into ordered primitive event streams,
// applying modifier bracketing and inter-event delay pacing, and keeps the
// session's held-state bookkeeping consistent with what the backend
// actually delivered: state is mutated strictly after backend confirmation,
// so a failed down-event never enters the HeldSet.
type sequencer struct {
	backend Backend
	keymap  *KeyMap
	mods    *ModifierTracker
	held    map[heldEntry]struct{}
	// modCodes records the resolved code of every confirmed modifier
	// down-event, per bit. A side-specific key (right shift) shares its
	// bit with the canonical key but not its code, and releases must use
	// the code that actually went down.
	modCodes map[Modifier][]ResolvedCode
	cfg      Config
	logger   *slog.Logger
	last     time.Time
}

func newSequencer(b Backend, cfg Config) *sequencer {
	logger := cfg.logger()
	return &sequencer{
		backend:  b,
		keymap:   NewKeyMap(b),
		mods:     NewModifierTracker(logger),
		held:     make(map[heldEntry]struct{}),
		modCodes: make(map[Modifier][]ResolvedCode),
		cfg:      cfg,
		logger:   logger,
	}
}

// send paces and delivers one primitive, stamping the configured marker.
func (q *sequencer) send(ev Primitive) error {
	if d := q.cfg.InterEventDelay; d > 0 && !q.last.IsZero() {
		if wait := d - time.Since(q.last); wait > 0 {
			time.Sleep(wait)
		}
	}
	ev.Marker = q.cfg.EventMarker
	err := q.backend.SendPrimitive(ev)
	q.last = time.Now()
	if err != nil {
		return &InjectionError{Event: ev, Err: err}
	}
	q.logger.Log(context.Background(), log.LevelTrace, "primitive delivered", "event", ev.String())
	return nil
}

// key performs a press, release or click of an abstract key. Click wraps
// the stroke in the modifier bracket its resolution requires; bare Press
// and Release emit exactly one primitive and leave modifier handling to the
// caller, so a held key is always released as the same code it was pressed
// with.
func (q *sequencer) key(k Key, dir Direction) error {
	code, err := q.keymap.Resolve(k)
	if err != nil {
		return err
	}

	named, _ := k.IsNamed()
	if mod := named.Modifier(); mod != 0 {
		return q.modifierKey(code, mod, dir)
	}

	switch dir {
	case Press:
		if err := q.send(Primitive{Kind: KeyDown, Code: code}); err != nil {
			return err
		}
		q.held[heldEntry{code: code}] = struct{}{}
		return nil
	case Release:
		if err := q.send(Primitive{Kind: KeyUp, Code: code}); err != nil {
			return err
		}
		delete(q.held, heldEntry{code: code})
		return nil
	case Click:
		_, err := q.clickCode(code)
		return err
	}
	return fmt.Errorf("keysmith: unknown direction %d", dir)
}

// rawKey injects a bare platform keycode, bypassing the keymap. The code is
// held-tracked like any other key.
func (q *sequencer) rawKey(code uint16, dir Direction) error {
	return q.keyCode(ResolvedCode{Keycode: code}, dir)
}

func (q *sequencer) keyCode(code ResolvedCode, dir Direction) error {
	entry := heldEntry{code: code}
	if dir == Press || dir == Click {
		if err := q.send(Primitive{Kind: KeyDown, Code: code}); err != nil {
			return err
		}
		q.held[entry] = struct{}{}
	}
	if dir == Release || dir == Click {
		if err := q.send(Primitive{Kind: KeyUp, Code: code}); err != nil {
			return err
		}
		delete(q.held, entry)
	}
	return nil
}

// modifierKey tracks modifier strokes in ModifierState rather than the
// HeldSet, reference-counted so overlapping holders do not release each
// other's state.
func (q *sequencer) modifierKey(code ResolvedCode, mod Modifier, dir Direction) error {
	if dir == Press || dir == Click {
		if err := q.send(Primitive{Kind: KeyDown, Code: code}); err != nil {
			return err
		}
		q.mods.NoteDown(mod)
		q.modCodes[mod] = append(q.modCodes[mod], code)
	}
	if dir == Release || dir == Click {
		if err := q.send(Primitive{Kind: KeyUp, Code: code}); err != nil {
			return err
		}
		q.mods.NoteUp(mod)
		q.dropModCode(mod, code)
	}
	return nil
}

// dropModCode forgets one recorded down-code for a modifier bit, matching
// by exact code first so a side-specific release reconciles against its own
// press rather than the canonical key's.
func (q *sequencer) dropModCode(mod Modifier, code ResolvedCode) {
	codes := q.modCodes[mod]
	for i := len(codes) - 1; i >= 0; i-- {
		if codes[i] == code {
			q.modCodes[mod] = append(codes[:i], codes[i+1:]...)
			return
		}
	}
	if len(codes) > 0 {
		q.modCodes[mod] = codes[:len(codes)-1]
	}
}

// clickCode emits the full bracketed stroke for one resolved code: bracket
// modifier downs, the key's own down+up, bracket modifier ups. Bracket
// modifiers already held by the session are never touched. delivered
// reports whether the key's own down+up both reached the target, even when
// backing out the bracket afterwards failed.
func (q *sequencer) clickCode(code ResolvedCode) (delivered bool, err error) {
	bracket := q.mods.Bracket(code.Mods)

	pressed, err := q.pressBracket(bracket)
	if err != nil {
		// Back out whatever part of the bracket went down.
		return false, errors.Join(err, q.releaseBracket(pressed))
	}

	entry := heldEntry{code: code}
	if err := q.send(Primitive{Kind: KeyDown, Code: code}); err != nil {
		return false, errors.Join(err, q.releaseBracket(pressed))
	}
	q.held[entry] = struct{}{}

	if err := q.send(Primitive{Kind: KeyUp, Code: code}); err != nil {
		// Down succeeded, so the key stays in the HeldSet until a later
		// successful release or teardown.
		return false, errors.Join(err, q.releaseBracket(pressed))
	}
	delete(q.held, entry)

	return true, q.releaseBracket(pressed)
}

// pressBracket sends down-events for each bracket modifier, returning the
// subset that was actually delivered.
func (q *sequencer) pressBracket(bracket Modifier) (Modifier, error) {
	var pressed Modifier
	for _, bit := range bracket.bits() {
		code, ok := q.backend.NamedKeyCode(bit.namedKeyFor())
		if !ok {
			return pressed, &UnsupportedKeyError{Key: Named(bit.namedKeyFor())}
		}
		if err := q.send(Primitive{Kind: KeyDown, Code: code}); err != nil {
			return pressed, err
		}
		q.mods.NoteDown(bit)
		q.modCodes[bit] = append(q.modCodes[bit], code)
		pressed |= bit
	}
	return pressed, nil
}

// releaseBracket sends up-events for bracket modifiers in reverse press
// order, best-effort.
func (q *sequencer) releaseBracket(pressed Modifier) error {
	bits := pressed.bits()
	var errs []error
	for i := len(bits) - 1; i >= 0; i-- {
		bit := bits[i]
		code, ok := q.backend.NamedKeyCode(bit.namedKeyFor())
		if !ok {
			errs = append(errs, &UnsupportedKeyError{Key: Named(bit.namedKeyFor())})
			continue
		}
		if err := q.send(Primitive{Kind: KeyUp, Code: code}); err != nil {
			errs = append(errs, err)
			continue
		}
		q.mods.NoteUp(bit)
		q.dropModCode(bit, code)
	}
	return errors.Join(errs...)
}

// text types a string character by character, in input order. It returns
// the number of characters fully typed; a failure aborts the remainder
// without discarding what already reached the target.
func (q *sequencer) text(s string) (int, error) {
	if q.cfg.AllowFastText {
		if ti, ok := q.backend.(TextInjector); ok {
			err := ti.InjectText(s, q.cfg.EventMarker)
			q.last = time.Now()
			if err != nil {
				// The batch may have partially delivered; retyping from
				// the start would duplicate characters on the target.
				return 0, fmt.Errorf("direct text injection failed: %w", err)
			}
			n := 0
			for range s {
				n++
			}
			return n, nil
		}
	}

	typed := 0
	for _, r := range s {
		code, err := q.keymap.Resolve(Unicode(r))
		if err != nil {
			return typed, fmt.Errorf("typed %d characters: %w", typed, err)
		}
		delivered, err := q.clickCode(code)
		if delivered {
			typed++
		}
		if err != nil {
			return typed, fmt.Errorf("typed %d characters: %w", typed, err)
		}
	}
	return typed, nil
}

func (q *sequencer) button(b Button, dir Direction) error {
	entry := heldEntry{isButton: true, btn: b}
	if dir == Press || dir == Click {
		if err := q.send(Primitive{Kind: ButtonDown, Button: b}); err != nil {
			return err
		}
		q.held[entry] = struct{}{}
	}
	if dir == Release || dir == Click {
		if err := q.send(Primitive{Kind: ButtonUp, Button: b}); err != nil {
			return err
		}
		delete(q.held, entry)
	}
	return nil
}

// moveMouse dispatches a pointer move. Absolute coordinates are clamped to
// the main display bounds; relative deltas are forwarded untouched.
func (q *sequencer) moveMouse(x, y int, coord Coordinate) error {
	if coord == Relative {
		return q.send(Primitive{Kind: MouseMoveRel, X: x, Y: y})
	}

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if w, h, err := q.backend.MainDisplayBounds(); err == nil {
		if x >= w {
			x = w - 1
		}
		if y >= h {
			y = h - 1
		}
	} else {
		q.logger.Debug("display bounds unavailable, clamping at zero only", "error", err)
	}
	return q.send(Primitive{Kind: MouseMoveAbs, X: x, Y: y})
}

// scroll forwards a scroll request in canonical sign convention: positive
// is down for Vertical, right for Horizontal. Backends with an inverted
// native convention convert internally.
func (q *sequencer) scroll(amount int, axis Axis) error {
	return q.send(Primitive{Kind: ScrollEvent, Amount: amount, Axis: axis})
}

// releaseAll synthesizes up-events for every entry in the HeldSet and every
// modifier with a nonzero reference count, exactly once each. It is
// best-effort: one failed release never prevents attempting the rest, and
// failures are aggregated into a single error.
func (q *sequencer) releaseAll() error {
	var errs []error

	for entry := range q.held {
		var ev Primitive
		if entry.isButton {
			ev = Primitive{Kind: ButtonUp, Button: entry.btn}
		} else {
			ev = Primitive{Kind: KeyUp, Code: entry.code}
		}
		if err := q.send(ev); err != nil {
			errs = append(errs, err)
			continue
		}
		delete(q.held, entry)
	}

	for _, bit := range q.mods.Held().bits() {
		codes := q.modCodes[bit]
		if len(codes) == 0 {
			code, ok := q.backend.NamedKeyCode(bit.namedKeyFor())
			if !ok {
				errs = append(errs, &UnsupportedKeyError{Key: Named(bit.namedKeyFor())})
				continue
			}
			codes = []ResolvedCode{code}
		}

		// One up-event per distinct pressed code clears the modifier
		// regardless of how many logical holders remained; side-specific
		// keys sharing the bit each get their own release.
		sent := make(map[ResolvedCode]struct{}, len(codes))
		failed := false
		for _, code := range codes {
			if _, done := sent[code]; done {
				continue
			}
			if err := q.send(Primitive{Kind: KeyUp, Code: code}); err != nil {
				errs = append(errs, err)
				failed = true
				continue
			}
			sent[code] = struct{}{}
		}
		if failed {
			continue
		}
		delete(q.modCodes, bit)
		for q.mods.refs[bit] > 0 {
			q.mods.NoteUp(bit)
		}
	}

	return errors.Join(errs...)
}
