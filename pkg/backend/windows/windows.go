//go:build windows

// Package windows injects input through the Win32 SendInput API.
//
// Characters are resolved against the active keyboard layout with
// VkKeyScanW; anything the layout cannot produce is injected directly with
// KEYEVENTF_UNICODE, which delivers the exact character regardless of
// layout. The session event marker rides in dwExtraInfo, where hook-based
// consumers can read it back.
package windows

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/ottogen/keysmith/pkg/keysmith"
)

func init() {
	keysmith.RegisterBackend(keysmith.BackendFactory{
		Name:     "windows",
		Priority: 10,
		Probe:    func() bool { return true },
		Open: func(cfg keysmith.Config) (keysmith.Backend, error) {
			b, err := Open()
			if err != nil {
				return nil, err
			}
			b.scancodes = cfg.IndependentOfPhysicalModifiers
			return b, nil
		},
	})
}

var (
	user32              = windows.NewLazySystemDLL("user32.dll")
	procSendInput       = user32.NewProc("SendInput")
	procVkKeyScanW      = user32.NewProc("VkKeyScanW")
	procGetSystemMetric = user32.NewProc("GetSystemMetrics")
	procGetCursorPos    = user32.NewProc("GetCursorPos")
	procGetKeyboardLay  = user32.NewProc("GetKeyboardLayout")
	procMapVirtualKeyW  = user32.NewProc("MapVirtualKeyW")
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	keyeventfKeyup    = 0x0002
	keyeventfUnicode  = 0x0004
	keyeventfScancode = 0x0008

	mouseeventfMove       = 0x0001
	mouseeventfLeftdown   = 0x0002
	mouseeventfLeftup     = 0x0004
	mouseeventfRightdown  = 0x0008
	mouseeventfRightup    = 0x0010
	mouseeventfMiddledown = 0x0020
	mouseeventfMiddleup   = 0x0040
	mouseeventfXdown      = 0x0080
	mouseeventfXup        = 0x0100
	mouseeventfWheel      = 0x0800
	mouseeventfHwheel     = 0x1000
	mouseeventfAbsolute   = 0x8000

	xbutton1 = 0x0001
	xbutton2 = 0x0002

	wheelDelta = 120

	smCxScreen = 0
	smCyScreen = 1
)

// keybdInput mirrors KEYBDINPUT.
type keybdInput struct {
	Vk        uint16
	Scan      uint16
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// mouseInput mirrors MOUSEINPUT.
type mouseInput struct {
	Dx        int32
	Dy        int32
	MouseData uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// input mirrors INPUT for 64-bit Windows: 4 bytes type, 4 bytes alignment
// padding, then a union as large as MOUSEINPUT.
type input struct {
	Type uint32
	_    uint32
	M    mouseInput
}

func keyInput(ki keybdInput) input {
	var in input
	in.Type = inputKeyboard
	*(*keybdInput)(unsafe.Pointer(&in.M)) = ki
	return in
}

func mouseEvent(mi mouseInput) input {
	return input{Type: inputMouse, M: mi}
}

func sendInputs(ins []input) error {
	if len(ins) == 0 {
		return nil
	}
	n, _, err := procSendInput.Call(
		uintptr(len(ins)),
		uintptr(unsafe.Pointer(&ins[0])),
		unsafe.Sizeof(ins[0]),
	)
	if int(n) != len(ins) {
		return fmt.Errorf("SendInput delivered %d of %d events: %w", n, len(ins), err)
	}
	return nil
}

// Backend injects through SendInput on the current desktop.
type Backend struct {
	lastLayout uintptr
	generation uint64

	// scancodes makes layout-resolved character events go out as scan
	// codes, which Windows translates without consulting the physically
	// held modifiers.
	scancodes bool
}

// Open verifies a desktop is reachable by querying the screen metrics.
func Open() (*Backend, error) {
	w, _, _ := procGetSystemMetric.Call(smCxScreen)
	if w == 0 {
		return nil, errors.New("no interactive desktop available")
	}
	layout, _, _ := procGetKeyboardLay.Call(0)
	return &Backend{lastLayout: layout, generation: 1}, nil
}

func (b *Backend) SendPrimitive(ev keysmith.Primitive) error {
	marker := uintptr(ev.Marker)
	switch ev.Kind {
	case keysmith.KeyDown, keysmith.KeyUp:
		return b.sendKey(ev, marker)
	case keysmith.ButtonDown, keysmith.ButtonUp:
		return b.sendButton(ev, marker)
	case keysmith.MouseMoveAbs:
		return b.moveAbs(ev.X, ev.Y, marker)
	case keysmith.MouseMoveRel:
		return sendInputs([]input{mouseEvent(mouseInput{
			Dx: int32(ev.X), Dy: int32(ev.Y), Flags: mouseeventfMove, ExtraInfo: marker,
		})})
	case keysmith.ScrollEvent:
		return b.sendScroll(ev, marker)
	}
	return fmt.Errorf("unknown primitive kind %d", ev.Kind)
}

func (b *Backend) sendKey(ev keysmith.Primitive, marker uintptr) error {
	up := uint32(0)
	if ev.Kind == keysmith.KeyUp {
		up = keyeventfKeyup
	}

	if ev.Code.Fallback {
		// KEYEVENTF_UNICODE: the scan code field carries UTF-16 units;
		// supplementary-plane characters take one event per surrogate.
		units := utf16.Encode([]rune{ev.Code.Rune})
		ins := make([]input, 0, len(units))
		for _, u := range units {
			ins = append(ins, keyInput(keybdInput{
				Scan: u, Flags: keyeventfUnicode | up, ExtraInfo: marker,
			}))
		}
		return sendInputs(ins)
	}

	// Extended keys (arrows, navigation cluster) need an 0xE0-prefixed
	// scan code, so only character events take the scan code path.
	if b.scancodes && ev.Code.Rune != 0 {
		const mapvkVkToVsc = 0
		if scan, _, _ := procMapVirtualKeyW.Call(uintptr(ev.Code.Keycode), mapvkVkToVsc); scan != 0 {
			return sendInputs([]input{keyInput(keybdInput{
				Scan: uint16(scan), Flags: keyeventfScancode | up, ExtraInfo: marker,
			})})
		}
	}

	return sendInputs([]input{keyInput(keybdInput{
		Vk: ev.Code.Keycode, Scan: ev.Code.Scancode, Flags: up, ExtraInfo: marker,
	})})
}

func (b *Backend) sendButton(ev keysmith.Primitive, marker uintptr) error {
	down := ev.Kind == keysmith.ButtonDown
	var flags, data uint32
	switch ev.Button {
	case keysmith.ButtonLeft:
		flags = mouseeventfLeftdown
		if !down {
			flags = mouseeventfLeftup
		}
	case keysmith.ButtonRight:
		flags = mouseeventfRightdown
		if !down {
			flags = mouseeventfRightup
		}
	case keysmith.ButtonMiddle:
		flags = mouseeventfMiddledown
		if !down {
			flags = mouseeventfMiddleup
		}
	case keysmith.ButtonBack, keysmith.ButtonForward:
		flags = mouseeventfXdown
		if !down {
			flags = mouseeventfXup
		}
		data = xbutton1
		if ev.Button == keysmith.ButtonForward {
			data = xbutton2
		}
	default:
		return fmt.Errorf("no windows button for %s", ev.Button)
	}
	return sendInputs([]input{mouseEvent(mouseInput{MouseData: data, Flags: flags, ExtraInfo: marker})})
}

// moveAbs normalizes pixel coordinates into the 0..65535 space absolute
// mouse events use.
func (b *Backend) moveAbs(x, y int, marker uintptr) error {
	w, h, err := b.MainDisplayBounds()
	if err != nil {
		return err
	}
	nx := int32(x * 65535 / max(w-1, 1))
	ny := int32(y * 65535 / max(h-1, 1))
	return sendInputs([]input{mouseEvent(mouseInput{
		Dx: nx, Dy: ny, Flags: mouseeventfMove | mouseeventfAbsolute, ExtraInfo: marker,
	})})
}

// sendScroll converts the canonical sign (positive = down/right) to the
// Windows wheel convention (positive = up for vertical, right for
// horizontal).
func (b *Backend) sendScroll(ev keysmith.Primitive, marker uintptr) error {
	flags := uint32(mouseeventfWheel)
	amount := -ev.Amount
	if ev.Axis == keysmith.Horizontal {
		flags = mouseeventfHwheel
		amount = ev.Amount
	}
	return sendInputs([]input{mouseEvent(mouseInput{
		MouseData: uint32(int32(amount * wheelDelta)), Flags: flags, ExtraInfo: marker,
	})})
}

func (b *Backend) NamedKeyCode(k keysmith.NamedKey) (keysmith.ResolvedCode, bool) {
	vk, ok := namedVirtualKey[k]
	if !ok {
		return keysmith.ResolvedCode{}, false
	}
	return keysmith.ResolvedCode{Keycode: vk}, true
}

func (b *Backend) LayoutMapping(r rune) (keysmith.ResolvedCode, bool, error) {
	if r > 0xffff {
		return keysmith.ResolvedCode{}, false, nil
	}
	ret, _, _ := procVkKeyScanW.Call(uintptr(r))
	scan := int16(ret)
	if scan == -1 {
		return keysmith.ResolvedCode{}, false, nil
	}
	vk := uint16(scan & 0xff)
	shiftState := uint8(scan >> 8)

	var mods keysmith.Modifier
	if shiftState&1 != 0 {
		mods |= keysmith.ModShift
	}
	if shiftState&2 != 0 {
		mods |= keysmith.ModControl
	}
	if shiftState&4 != 0 {
		mods |= keysmith.ModAlt
	}
	// Ctrl+Alt together is how VkKeyScanW reports AltGr characters.
	if mods&(keysmith.ModControl|keysmith.ModAlt) == keysmith.ModControl|keysmith.ModAlt {
		mods = (mods &^ (keysmith.ModControl | keysmith.ModAlt)) | keysmith.ModAltGr
	}
	return keysmith.ResolvedCode{Keycode: vk, Rune: r, Mods: mods}, true, nil
}

func (b *Backend) FallbackMapping(r rune) (keysmith.ResolvedCode, bool, error) {
	return keysmith.ResolvedCode{Rune: r, Fallback: true}, true, nil
}

// LayoutGeneration bumps whenever the foreground keyboard layout handle
// changes.
func (b *Backend) LayoutGeneration() uint64 {
	layout, _, _ := procGetKeyboardLay.Call(0)
	if layout != b.lastLayout {
		b.lastLayout = layout
		b.generation++
	}
	return b.generation
}

func (b *Backend) MainDisplayBounds() (int, int, error) {
	w, _, _ := procGetSystemMetric.Call(smCxScreen)
	h, _, _ := procGetSystemMetric.Call(smCyScreen)
	if w == 0 || h == 0 {
		return 0, 0, errors.New("GetSystemMetrics reported no screen")
	}
	return int(w), int(h), nil
}

// Location implements keysmith.LocationQuerier.
func (b *Backend) Location() (int, int, error) {
	var pt struct{ X, Y int32 }
	ret, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return 0, 0, fmt.Errorf("GetCursorPos: %w", err)
	}
	return int(pt.X), int(pt.Y), nil
}

// InjectText implements keysmith.TextInjector: the whole string goes out
// as one SendInput batch of KEYEVENTF_UNICODE down/up pairs.
func (b *Backend) InjectText(s string, marker uint32) error {
	units := utf16.Encode([]rune(s))
	ins := make([]input, 0, len(units)*2)
	for _, u := range units {
		ins = append(ins, keyInput(keybdInput{Scan: u, Flags: keyeventfUnicode, ExtraInfo: uintptr(marker)}))
		ins = append(ins, keyInput(keybdInput{Scan: u, Flags: keyeventfUnicode | keyeventfKeyup, ExtraInfo: uintptr(marker)}))
	}
	return sendInputs(ins)
}

func (b *Backend) Close() error { return nil }
