// Package keysmith synthesizes keyboard and mouse input events that are
// indistinguishable, to the receiving application, from physical hardware
// input.
//
// A Session owns a connection to one injection backend (X11, Wayland,
// Windows, or a custom implementation of Backend) and translates
// platform-independent requests ("press this key", "type this string")
// into ordered low-level event streams, tracking every key and button it
// holds so they can be released on teardown.
//
// A Session is not safe for concurrent use; callers must serialize access
// externally. Input event ordering is load-bearing for the receiving
// application, so all operations are synchronous and blocking.
package keysmith

import "fmt"

// NamedKey is a platform-portable identifier for a physical or logical key
// that is not an ordinary printable character. Characters are entered via
// Unicode instead.
type NamedKey uint8

const (
	KeyNone NamedKey = iota

	// Modifiers
	KeyShift
	KeyLeftShift
	KeyRightShift
	KeyControl
	KeyLeftControl
	KeyRightControl
	KeyAlt
	KeyLeftAlt
	KeyRightAlt
	KeyAltGr
	KeyMeta
	KeyLeftMeta
	KeyRightMeta

	// Whitespace and editing
	KeyReturn
	KeyTab
	KeySpace
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyEscape

	// Navigation
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUpArrow
	KeyDownArrow
	KeyLeftArrow
	KeyRightArrow

	// Locks
	KeyCapsLock
	KeyNumLock
	KeyScrollLock

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Misc
	KeyPrintScreen
	KeyPause
	KeyMenu

	// Media control
	KeyVolumeUp
	KeyVolumeDown
	KeyVolumeMute
	KeyMediaPlayPause
	KeyMediaStop
	KeyMediaNext
	KeyMediaPrevious

	namedKeyCount // keep last
)

// keyName maps portable key identifiers to human-readable names.
var keyName = map[NamedKey]string{
	KeyShift:        "Shift",
	KeyLeftShift:    "LeftShift",
	KeyRightShift:   "RightShift",
	KeyControl:      "Control",
	KeyLeftControl:  "LeftControl",
	KeyRightControl: "RightControl",
	KeyAlt:          "Alt",
	KeyLeftAlt:      "LeftAlt",
	KeyRightAlt:     "RightAlt",
	KeyAltGr:        "AltGr",
	KeyMeta:         "Meta",
	KeyLeftMeta:     "LeftMeta",
	KeyRightMeta:    "RightMeta",

	KeyReturn:    "Return",
	KeyTab:       "Tab",
	KeySpace:     "Space",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyEscape:    "Escape",

	KeyHome:       "Home",
	KeyEnd:        "End",
	KeyPageUp:     "PageUp",
	KeyPageDown:   "PageDown",
	KeyUpArrow:    "Up",
	KeyDownArrow:  "Down",
	KeyLeftArrow:  "Left",
	KeyRightArrow: "Right",

	KeyCapsLock:   "CapsLock",
	KeyNumLock:    "NumLock",
	KeyScrollLock: "ScrollLock",

	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4",
	KeyF5: "F5", KeyF6: "F6", KeyF7: "F7", KeyF8: "F8",
	KeyF9: "F9", KeyF10: "F10", KeyF11: "F11", KeyF12: "F12",

	KeyPrintScreen: "PrintScreen",
	KeyPause:       "Pause",
	KeyMenu:        "Menu",

	KeyVolumeUp:       "VolumeUp",
	KeyVolumeDown:     "VolumeDown",
	KeyVolumeMute:     "VolumeMute",
	KeyMediaPlayPause: "MediaPlayPause",
	KeyMediaStop:      "MediaStop",
	KeyMediaNext:      "MediaNext",
	KeyMediaPrevious:  "MediaPrevious",
}

func (n NamedKey) String() string {
	if s, ok := keyName[n]; ok {
		return s
	}
	return fmt.Sprintf("NamedKey(%d)", uint8(n))
}

// ParseNamedKey resolves a key name as produced by NamedKey.String.
// Matching is exact and case-sensitive.
func ParseNamedKey(s string) (NamedKey, bool) {
	for k, name := range keyName {
		if name == s {
			return k, true
		}
	}
	return KeyNone, false
}

// Modifier returns the modifier bit a named key contributes to ModifierState,
// or 0 if the key is not a modifier.
func (n NamedKey) Modifier() Modifier {
	switch n {
	case KeyShift, KeyLeftShift, KeyRightShift:
		return ModShift
	case KeyControl, KeyLeftControl, KeyRightControl:
		return ModControl
	case KeyAlt, KeyLeftAlt:
		return ModAlt
	case KeyRightAlt, KeyAltGr:
		return ModAltGr
	case KeyMeta, KeyLeftMeta, KeyRightMeta:
		return ModMeta
	}
	return 0
}

type keyKind uint8

const (
	keyKindNamed keyKind = iota
	keyKindUnicode
)

// Key is the abstract identity of a keyboard key: either a portable named
// key or an arbitrary Unicode scalar to be typed. A Unicode key carries no
// platform code until it is resolved against the active layout.
type Key struct {
	kind  keyKind
	named NamedKey
	r     rune
}

// Named wraps a portable key identifier.
func Named(n NamedKey) Key {
	return Key{kind: keyKindNamed, named: n}
}

// Unicode wraps an arbitrary character to be typed.
func Unicode(r rune) Key {
	return Key{kind: keyKindUnicode, r: r}
}

// IsNamed reports whether the key is a named key and returns its identifier.
func (k Key) IsNamed() (NamedKey, bool) {
	return k.named, k.kind == keyKindNamed
}

// IsUnicode reports whether the key is a Unicode scalar and returns it.
func (k Key) IsUnicode() (rune, bool) {
	return k.r, k.kind == keyKindUnicode
}

func (k Key) String() string {
	if k.kind == keyKindUnicode {
		return fmt.Sprintf("Unicode(%q)", k.r)
	}
	return k.named.String()
}
