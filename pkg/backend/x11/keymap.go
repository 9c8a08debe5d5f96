package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// keymap holds a snapshot of the server's keycode-to-keysym table plus the
// spare keycodes available for binding characters the layout lacks.
type keymap struct {
	minKeycode xproto.Keycode
	maxKeycode xproto.Keycode
	perKeycode byte
	keysyms    []xproto.Keysym

	// spare keycodes have no keysyms bound in the current mapping and can
	// host temporary bindings for fallback characters.
	spare []xproto.Keycode
	// bound tracks keysyms we bound ourselves, so repeated fallback
	// resolutions reuse one keycode and Close can undo every binding.
	bound map[xproto.Keysym]xproto.Keycode
}

// readKeymap fetches the full keyboard mapping from the server.
func readKeymap(conn *xgb.Conn) (*keymap, error) {
	setup := xproto.Setup(conn)
	min, max := setup.MinKeycode, setup.MaxKeycode
	count := byte(max - min + 1)

	reply, err := xproto.GetKeyboardMapping(conn, min, count).Reply()
	if err != nil {
		return nil, err
	}

	km := &keymap{
		minKeycode: min,
		maxKeycode: max,
		perKeycode: reply.KeysymsPerKeycode,
		keysyms:    reply.Keysyms,
		bound:      make(map[xproto.Keysym]xproto.Keycode),
	}

	for kc := min; ; kc++ {
		if km.rowEmpty(kc) {
			km.spare = append(km.spare, kc)
		}
		if kc == max {
			break
		}
	}
	return km, nil
}

func (m *keymap) row(kc xproto.Keycode) []xproto.Keysym {
	start := int(kc-m.minKeycode) * int(m.perKeycode)
	end := start + int(m.perKeycode)
	if start < 0 || end > len(m.keysyms) {
		return nil
	}
	return m.keysyms[start:end]
}

func (m *keymap) rowEmpty(kc xproto.Keycode) bool {
	for _, sym := range m.row(kc) {
		if sym != 0 {
			return false
		}
	}
	return true
}

// keycodeForKeysym scans the mapping for a keycode producing the keysym.
// Column 0 is the unshifted level, column 1 the shifted level; deeper
// levels need group or level switches we do not synthesize, so they are
// not reported.
func (m *keymap) keycodeForKeysym(sym xproto.Keysym) (xproto.Keycode, bool, bool) {
	for kc := m.minKeycode; ; kc++ {
		syms := m.row(kc)
		if len(syms) > 0 && syms[0] == sym {
			return kc, false, true
		}
		if len(syms) > 1 && syms[1] == sym {
			return kc, true, true
		}
		if kc == m.maxKeycode {
			break
		}
	}
	return 0, false, false
}

// bind maps the keysym onto a spare keycode via ChangeKeyboardMapping and
// returns the keycode. Bindings are reused and undone by unbindAll.
func (m *keymap) bind(conn *xgb.Conn, sym xproto.Keysym) (xproto.Keycode, error) {
	if kc, ok := m.bound[sym]; ok {
		return kc, nil
	}
	if len(m.spare) == 0 {
		return 0, errors.New("no spare keycodes left for fallback binding")
	}
	kc := m.spare[0]

	syms := make([]xproto.Keysym, m.perKeycode)
	for i := range syms {
		syms[i] = sym
	}
	err := xproto.ChangeKeyboardMappingChecked(conn, 1, kc, m.perKeycode, syms).Check()
	if err != nil {
		return 0, fmt.Errorf("bind keysym %#x to keycode %d: %w", sym, kc, err)
	}

	m.spare = m.spare[1:]
	m.bound[sym] = kc
	copy(m.row(kc), syms)
	return kc, nil
}

// unbindAll clears every temporary binding, best-effort.
func (m *keymap) unbindAll(conn *xgb.Conn) error {
	var errs []error
	empty := make([]xproto.Keysym, m.perKeycode)
	for sym, kc := range m.bound {
		if err := xproto.ChangeKeyboardMappingChecked(conn, 1, kc, m.perKeycode, empty).Check(); err != nil {
			errs = append(errs, fmt.Errorf("unbind keycode %d: %w", kc, err))
			continue
		}
		delete(m.bound, sym)
		m.spare = append(m.spare, kc)
	}
	return errors.Join(errs...)
}
