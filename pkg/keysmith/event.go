package keysmith

import "fmt"

// Direction selects which half of a key or button stroke to perform.
type Direction uint8

const (
	// Press sends a down-event only; the key or button stays held.
	Press Direction = iota
	// Release sends an up-event only.
	Release
	// Click sends a down-event immediately followed by an up-event.
	Click
)

func (d Direction) String() string {
	switch d {
	case Press:
		return "press"
	case Release:
		return "release"
	case Click:
		return "click"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// ParseDirection resolves "press", "release" or "click".
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "press":
		return Press, true
	case "release":
		return Release, true
	case "click":
		return Click, true
	}
	return Click, false
}

// Coordinate distinguishes absolute screen positions from deltas relative
// to the current pointer location.
type Coordinate uint8

const (
	Absolute Coordinate = iota
	Relative
)

func (c Coordinate) String() string {
	if c == Relative {
		return "relative"
	}
	return "absolute"
}

// Axis selects the scroll direction. The canonical sign convention is
// positive = scroll down for Vertical and positive = scroll right for
// Horizontal; backends differing from this convert internally so callers
// never deal with per-platform signs.
type Axis uint8

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Button identifies a mouse button.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
	ButtonBack
	ButtonForward
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonBack:
		return "back"
	case ButtonForward:
		return "forward"
	}
	return fmt.Sprintf("Button(%d)", uint8(b))
}

// ParseButton resolves a button name as produced by Button.String.
func ParseButton(s string) (Button, bool) {
	switch s {
	case "left":
		return ButtonLeft, true
	case "middle":
		return ButtonMiddle, true
	case "right":
		return ButtonRight, true
	case "back":
		return ButtonBack, true
	case "forward":
		return ButtonForward, true
	}
	return ButtonLeft, false
}

// ResolvedCode is the backend-specific identity of a key: a numeric key
// code, optionally a scan code, the modifiers the active layout requires to
// produce the character, and whether the resolution fell back to a
// backend-specific Unicode injection mode instead of a layout-native
// mapping.
type ResolvedCode struct {
	Keycode  uint16
	Scancode uint16
	// Rune is the character this code was resolved from; zero for named
	// keys. Fallback transports need it to inject the exact character.
	Rune rune
	// Mods are the modifiers required to produce Rune on the active layout.
	Mods Modifier
	// Fallback marks codes resolved through the backend's Unicode-injection
	// mode rather than the active layout.
	Fallback bool
}

// PrimitiveKind enumerates the smallest units of work sent to a backend.
type PrimitiveKind uint8

const (
	KeyDown PrimitiveKind = iota
	KeyUp
	ButtonDown
	ButtonUp
	MouseMoveAbs
	MouseMoveRel
	ScrollEvent
)

func (k PrimitiveKind) String() string {
	switch k {
	case KeyDown:
		return "KeyDown"
	case KeyUp:
		return "KeyUp"
	case ButtonDown:
		return "ButtonDown"
	case ButtonUp:
		return "ButtonUp"
	case MouseMoveAbs:
		return "MouseMoveAbs"
	case MouseMoveRel:
		return "MouseMoveRel"
	case ScrollEvent:
		return "Scroll"
	}
	return fmt.Sprintf("PrimitiveKind(%d)", uint8(k))
}

// Primitive is one low-level event in the ordered stream consumed by a
// Backend.
//
// Which fields are meaningful depends on Kind: Code for KeyDown/KeyUp,
// Button for ButtonDown/ButtonUp, X/Y for the move kinds, Amount/Axis for
// Scroll. Marker is always set from the session configuration.
type Primitive struct {
	Kind   PrimitiveKind
	Code   ResolvedCode
	Button Button
	X, Y   int
	Amount int
	Axis   Axis
	// Marker is an opaque value attached to every synthesized event so the
	// originating application can recognize its own synthetic input.
	Marker uint32
}

func (p Primitive) String() string {
	switch p.Kind {
	case KeyDown, KeyUp:
		return fmt.Sprintf("%s(code=%d scan=%d fallback=%t)", p.Kind, p.Code.Keycode, p.Code.Scancode, p.Code.Fallback)
	case ButtonDown, ButtonUp:
		return fmt.Sprintf("%s(%s)", p.Kind, p.Button)
	case MouseMoveAbs, MouseMoveRel:
		return fmt.Sprintf("%s(%d,%d)", p.Kind, p.X, p.Y)
	case ScrollEvent:
		return fmt.Sprintf("Scroll(%d,%s)", p.Amount, p.Axis)
	}
	return p.Kind.String()
}
