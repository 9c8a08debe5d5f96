package keysmith

import (
	"log/slog"
	"strings"
)

// Modifier is a bitmask of modifier identities.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModAltGr
	ModMeta
)

var modifierNames = []struct {
	bit  Modifier
	name string
}{
	{ModShift, "shift"},
	{ModControl, "control"},
	{ModAlt, "alt"},
	{ModAltGr, "altgr"},
	{ModMeta, "meta"},
}

func (m Modifier) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, mn := range modifierNames {
		if m&mn.bit != 0 {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "+")
}

// namedKeyFor returns the canonical named key used to synthesize down/up
// events for a modifier bit.
func (m Modifier) namedKeyFor() NamedKey {
	switch m {
	case ModShift:
		return KeyShift
	case ModControl:
		return KeyControl
	case ModAlt:
		return KeyAlt
	case ModAltGr:
		return KeyAltGr
	case ModMeta:
		return KeyMeta
	}
	return KeyNone
}

// bits iterates the single-bit modifiers present in m, in declaration order.
func (m Modifier) bits() []Modifier {
	var out []Modifier
	for _, mn := range modifierNames {
		if m&mn.bit != 0 {
			out = append(out, mn.bit)
		}
	}
	return out
}

// ModifierTracker maintains the set of modifiers this session currently
// holds in the backend. Each modifier carries a reference count: a modifier
// may be logically held via several overlapping request paths (an explicit
// Press plus a transient type-text bracket), and it is actually up in the
// backend only when its count reaches zero.
type ModifierTracker struct {
	refs   map[Modifier]int
	logger *slog.Logger
}

// NewModifierTracker returns an empty tracker. logger may be nil.
func NewModifierTracker(logger *slog.Logger) *ModifierTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModifierTracker{refs: make(map[Modifier]int), logger: logger}
}

// NoteDown records one confirmed down-event for a modifier.
func (t *ModifierTracker) NoteDown(m Modifier) {
	for _, bit := range m.bits() {
		t.refs[bit]++
	}
}

// NoteUp records one confirmed up-event for a modifier. An unmatched
// release clamps at zero and is logged as a non-fatal inconsistency rather
// than treated as a hard failure.
func (t *ModifierTracker) NoteUp(m Modifier) {
	for _, bit := range m.bits() {
		if t.refs[bit] == 0 {
			t.logger.Warn("unmatched modifier release", "modifier", bit.String())
			continue
		}
		t.refs[bit]--
		if t.refs[bit] == 0 {
			delete(t.refs, bit)
		}
	}
}

// Held returns the bitmask of modifiers with a nonzero reference count.
func (t *ModifierTracker) Held() Modifier {
	var held Modifier
	for bit, n := range t.refs {
		if n > 0 {
			held |= bit
		}
	}
	return held
}

// TotalRefs returns the sum of all reference counts. Zero after a correct
// teardown.
func (t *ModifierTracker) TotalRefs() int {
	total := 0
	for _, n := range t.refs {
		total += n
	}
	return total
}

// Bracket computes the modifiers that must be transiently pressed before a
// primary event requiring the given modifier set, and released after it.
// Modifiers the session already holds are never part of the bracket: a
// caller's explicit Press stays held across any number of bracketed events
// until the caller releases it.
func (t *ModifierTracker) Bracket(required Modifier) Modifier {
	return required &^ t.Held()
}
