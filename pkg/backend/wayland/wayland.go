//go:build linux

// Package wayland injects input through the zwp_virtual_keyboard and
// zwlr_virtual_pointer protocols of a Wayland compositor (wlroots-based
// compositors and others exposing these globals).
//
// The virtual keyboard speaks evdev key codes against the seat's keymap;
// characters outside the US table have no resolution here, so they fail
// with UnsupportedKey rather than guessing. Compositors expose no portable
// layout-change notification through these protocols, so the layout
// generation never moves.
package wayland

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bnema/wayland-virtual-input-go/virtual_keyboard"
	"github.com/bnema/wayland-virtual-input-go/virtual_pointer"

	"github.com/ottogen/keysmith/pkg/backend/evdev"
	"github.com/ottogen/keysmith/pkg/keysmith"
)

func init() {
	keysmith.RegisterBackend(keysmith.BackendFactory{
		Name: "wayland",
		// Preferred over x11: under XWayland both DISPLAY and
		// WAYLAND_DISPLAY are set, and native injection is the better path.
		Priority: 20,
		Probe:    func() bool { return os.Getenv("WAYLAND_DISPLAY") != "" },
		Open: func(cfg keysmith.Config) (keysmith.Backend, error) {
			return Open(cfg.Display)
		},
	})
}

var buttonCode = map[keysmith.Button]uint32{
	keysmith.ButtonLeft:    virtual_pointer.BTN_LEFT,
	keysmith.ButtonRight:   virtual_pointer.BTN_RIGHT,
	keysmith.ButtonMiddle:  virtual_pointer.BTN_MIDDLE,
	keysmith.ButtonBack:    virtual_pointer.BTN_SIDE,
	keysmith.ButtonForward: virtual_pointer.BTN_EXTRA,
}

// Backend drives one virtual keyboard and one virtual pointer.
type Backend struct {
	kbd *virtual_keyboard.VirtualKeyboard
	ptr *virtual_pointer.VirtualPointer

	// extent is the coordinate space for absolute pointer motion; the
	// protocol has no display-size query, so a conventional full-HD extent
	// is assumed unless the caller knows better.
	extentW, extentH int
}

// Open connects to the compositor named by display (empty means
// $WAYLAND_DISPLAY) and creates the virtual devices.
func Open(display string) (*Backend, error) {
	if display != "" {
		os.Setenv("WAYLAND_DISPLAY", display)
	}
	ctx := context.Background()

	kbdMgr, err := virtual_keyboard.NewVirtualKeyboardManager(ctx)
	if err != nil {
		return nil, fmt.Errorf("bind virtual keyboard manager: %w", err)
	}
	kbd, err := kbdMgr.CreateKeyboard()
	if err != nil {
		return nil, fmt.Errorf("create virtual keyboard: %w", err)
	}

	ptrMgr, err := virtual_pointer.NewVirtualPointerManager(ctx)
	if err != nil {
		_ = kbd.Close()
		return nil, fmt.Errorf("bind virtual pointer manager: %w", err)
	}
	ptr, err := ptrMgr.CreatePointer()
	if err != nil {
		_ = kbd.Close()
		return nil, fmt.Errorf("create virtual pointer: %w", err)
	}

	return &Backend{kbd: kbd, ptr: ptr, extentW: 1920, extentH: 1080}, nil
}

func (b *Backend) SendPrimitive(ev keysmith.Primitive) error {
	// The Wayland protocols carry no caller marker; ev.Marker is dropped.
	now := time.Now()
	switch ev.Kind {
	case keysmith.KeyDown:
		return b.kbd.Key(now, uint32(ev.Code.Keycode), virtual_keyboard.KeyStatePressed)
	case keysmith.KeyUp:
		return b.kbd.Key(now, uint32(ev.Code.Keycode), virtual_keyboard.KeyStateReleased)
	case keysmith.ButtonDown, keysmith.ButtonUp:
		code, ok := buttonCode[ev.Button]
		if !ok {
			return fmt.Errorf("no wayland button for %s", ev.Button)
		}
		state := virtual_pointer.ButtonStatePressed
		if ev.Kind == keysmith.ButtonUp {
			state = virtual_pointer.ButtonStateReleased
		}
		if err := b.ptr.Button(now, code, state); err != nil {
			return err
		}
		return b.ptr.Frame()
	case keysmith.MouseMoveAbs:
		if err := b.ptr.MotionAbsolute(now, uint32(ev.X), uint32(ev.Y), uint32(b.extentW), uint32(b.extentH)); err != nil {
			return err
		}
		return b.ptr.Frame()
	case keysmith.MouseMoveRel:
		if err := b.ptr.Motion(now, float64(ev.X), float64(ev.Y)); err != nil {
			return err
		}
		return b.ptr.Frame()
	case keysmith.ScrollEvent:
		return b.scroll(now, ev.Amount, ev.Axis)
	}
	return fmt.Errorf("unknown primitive kind %d", ev.Kind)
}

// scroll forwards the canonical amount directly: Wayland axis values are
// already positive-down/positive-right.
func (b *Backend) scroll(now time.Time, amount int, axis keysmith.Axis) error {
	if err := b.ptr.AxisSource(virtual_pointer.AxisSourceWheel); err != nil {
		return err
	}
	a := virtual_pointer.AxisVertical
	if axis == keysmith.Horizontal {
		a = virtual_pointer.AxisHorizontal
	}
	if err := b.ptr.Axis(now, a, float64(amount)); err != nil {
		return err
	}
	return b.ptr.Frame()
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

// FallbackMapping reports no support: injecting characters outside the
// seat keymap would require uploading a custom keymap, which would clobber
// the user's layout for every client of the virtual keyboard.
func (b *Backend) FallbackMapping(r rune) (keysmith.ResolvedCode, bool, error) {
	return keysmith.ResolvedCode{}, false, nil
}

func (b *Backend) LayoutGeneration() uint64 { return 1 }

func (b *Backend) MainDisplayBounds() (int, int, error) {
	return b.extentW, b.extentH, nil
}

func (b *Backend) Close() error {
	kerr := b.kbd.Close()
	perr := b.ptr.Close()
	if kerr != nil {
		return kerr
	}
	return perr
}
