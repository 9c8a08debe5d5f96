// Package x11 injects input through the XTEST extension of an X11 display
// server.
//
// Characters the active layout cannot produce are handled by binding their
// keysym to an unused keycode with ChangeKeyboardMapping, mirroring what
// established X11 typing tools do; bindings are undone when the backend
// closes.
package x11

import (
	"fmt"
	"os"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"

	"github.com/ottogen/keysmith/pkg/keysmith"
)

func init() {
	keysmith.RegisterBackend(keysmith.BackendFactory{
		Name:     "x11",
		Priority: 10,
		Probe:    func() bool { return os.Getenv("DISPLAY") != "" },
		Open: func(cfg keysmith.Config) (keysmith.Backend, error) {
			return Open(cfg.Display)
		},
	})
}

// buttonCode maps portable buttons to X11 core button numbers.
var buttonCode = map[keysmith.Button]byte{
	keysmith.ButtonLeft:    1,
	keysmith.ButtonMiddle:  2,
	keysmith.ButtonRight:   3,
	keysmith.ButtonBack:    8,
	keysmith.ButtonForward: 9,
}

// Scroll is expressed as button clicks on X11: 4=up 5=down 6=left 7=right.
const (
	scrollUp    = 4
	scrollDown  = 5
	scrollLeft  = 6
	scrollRight = 7
)

// Backend is an XTEST injection backend bound to one display connection.
type Backend struct {
	conn       *xgb.Conn
	root       xproto.Window
	screen     *xproto.ScreenInfo
	keymap     *keymap
	generation uint64
}

// Open connects to the display (empty means $DISPLAY) and initializes the
// XTEST extension.
func Open(display string) (*Backend, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect to X display: %w", err)
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init XTEST extension: %w", err)
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)
	km, err := readKeymap(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("read keyboard mapping: %w", err)
	}

	return &Backend{
		conn:       conn,
		root:       screen.Root,
		screen:     screen,
		keymap:     km,
		generation: 1,
	}, nil
}

func (b *Backend) SendPrimitive(ev keysmith.Primitive) error {
	// XTEST events carry no room for a caller marker; ev.Marker is
	// accepted and dropped here.
	switch ev.Kind {
	case keysmith.KeyDown:
		return b.fakeInput(xproto.KeyPress, byte(ev.Code.Keycode), 0, 0)
	case keysmith.KeyUp:
		return b.fakeInput(xproto.KeyRelease, byte(ev.Code.Keycode), 0, 0)
	case keysmith.ButtonDown, keysmith.ButtonUp:
		code, ok := buttonCode[ev.Button]
		if !ok {
			return fmt.Errorf("no X11 button for %s", ev.Button)
		}
		typ := byte(xproto.ButtonPress)
		if ev.Kind == keysmith.ButtonUp {
			typ = xproto.ButtonRelease
		}
		return b.fakeInput(typ, code, 0, 0)
	case keysmith.MouseMoveAbs:
		return b.fakeInput(xproto.MotionNotify, 0, int16(ev.X), int16(ev.Y))
	case keysmith.MouseMoveRel:
		return b.fakeInput(xproto.MotionNotify, 1, int16(ev.X), int16(ev.Y))
	case keysmith.ScrollEvent:
		return b.scroll(ev.Amount, ev.Axis)
	}
	return fmt.Errorf("unknown primitive kind %d", ev.Kind)
}

func (b *Backend) fakeInput(typ, detail byte, x, y int16) error {
	return xtest.FakeInputChecked(b.conn, typ, detail, xproto.TimeCurrentTime, b.root, x, y, 0).Check()
}

// scroll emits |amount| click pairs of the wheel button matching the
// canonical direction (positive = down/right).
func (b *Backend) scroll(amount int, axis keysmith.Axis) error {
	var button byte
	switch {
	case axis == keysmith.Vertical && amount >= 0:
		button = scrollDown
	case axis == keysmith.Vertical:
		button = scrollUp
	case amount >= 0:
		button = scrollRight
	default:
		button = scrollLeft
	}
	n := amount
	if n < 0 {
		n = -n
	}
	for i := 0; i < n; i++ {
		if err := b.fakeInput(xproto.ButtonPress, button, 0, 0); err != nil {
			return err
		}
		if err := b.fakeInput(xproto.ButtonRelease, button, 0, 0); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) NamedKeyCode(k keysmith.NamedKey) (keysmith.ResolvedCode, bool) {
	sym, ok := namedKeysym[k]
	if !ok {
		return keysmith.ResolvedCode{}, false
	}
	code, shift, ok := b.keymap.keycodeForKeysym(sym)
	if !ok {
		// Named keys absent from the current mapping go through the same
		// spare-keycode binding as fallback characters.
		bound, err := b.keymap.bind(b.conn, sym)
		if err != nil {
			return keysmith.ResolvedCode{}, false
		}
		return keysmith.ResolvedCode{Keycode: uint16(bound)}, true
	}
	var mods keysmith.Modifier
	if shift {
		mods = keysmith.ModShift
	}
	return keysmith.ResolvedCode{Keycode: uint16(code), Mods: mods}, true
}

func (b *Backend) LayoutMapping(r rune) (keysmith.ResolvedCode, bool, error) {
	sym := runeToKeysym(r)
	code, shift, ok := b.keymap.keycodeForKeysym(sym)
	if !ok {
		return keysmith.ResolvedCode{}, false, nil
	}
	var mods keysmith.Modifier
	if shift {
		mods = keysmith.ModShift
	}
	return keysmith.ResolvedCode{Keycode: uint16(code), Rune: r, Mods: mods}, true, nil
}

func (b *Backend) FallbackMapping(r rune) (keysmith.ResolvedCode, bool, error) {
	code, err := b.keymap.bind(b.conn, runeToKeysym(r))
	if err != nil {
		return keysmith.ResolvedCode{}, false, err
	}
	return keysmith.ResolvedCode{Keycode: uint16(code), Rune: r, Fallback: true}, true, nil
}

// LayoutGeneration drains pending X events and bumps the generation when a
// keyboard MappingNotify arrived, re-reading the mapping so later queries
// see the new layout.
func (b *Backend) LayoutGeneration() uint64 {
	for {
		ev, err := b.conn.PollForEvent()
		if ev == nil && err == nil {
			break
		}
		if err != nil {
			continue
		}
		if mn, ok := ev.(xproto.MappingNotifyEvent); ok && mn.Request == xproto.MappingKeyboard {
			if km, err := readKeymap(b.conn); err == nil {
				// Keep the record of our own fallback bindings so Close
				// can still undo them.
				km.bound = b.keymap.bound
				b.keymap = km
				b.generation++
			}
		}
	}
	return b.generation
}

func (b *Backend) MainDisplayBounds() (int, int, error) {
	return int(b.screen.WidthInPixels), int(b.screen.HeightInPixels), nil
}

// Location implements keysmith.LocationQuerier.
func (b *Backend) Location() (int, int, error) {
	reply, err := xproto.QueryPointer(b.conn, b.root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("query pointer: %w", err)
	}
	return int(reply.RootX), int(reply.RootY), nil
}

func (b *Backend) Close() error {
	err := b.keymap.unbindAll(b.conn)
	b.conn.Close()
	return err
}
