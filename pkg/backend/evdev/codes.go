// Package evdev carries Linux input-event key codes and a US-layout
// character table, shared by the backends that speak evdev codes (Wayland
// virtual keyboard, test fakes).
package evdev

import "github.com/ottogen/keysmith/pkg/keysmith"

// Linux input-event-codes.h key codes.
const (
	KeyEsc        = 1
	Key1          = 2
	Key2          = 3
	Key3          = 4
	Key4          = 5
	Key5          = 6
	Key6          = 7
	Key7          = 8
	Key8          = 9
	Key9          = 10
	Key0          = 11
	KeyMinus      = 12
	KeyEqual      = 13
	KeyBackspace  = 14
	KeyTab        = 15
	KeyQ          = 16
	KeyW          = 17
	KeyE          = 18
	KeyR          = 19
	KeyT          = 20
	KeyY          = 21
	KeyU          = 22
	KeyI          = 23
	KeyO          = 24
	KeyP          = 25
	KeyLeftBrace  = 26
	KeyRightBrace = 27
	KeyEnter      = 28
	KeyLeftCtrl   = 29
	KeyA          = 30
	KeyS          = 31
	KeyD          = 32
	KeyF          = 33
	KeyG          = 34
	KeyH          = 35
	KeyJ          = 36
	KeyK          = 37
	KeyL          = 38
	KeySemicolon  = 39
	KeyApostrophe = 40
	KeyGrave      = 41
	KeyLeftShift  = 42
	KeyBackslash  = 43
	KeyZ          = 44
	KeyX          = 45
	KeyC          = 46
	KeyV          = 47
	KeyB          = 48
	KeyN          = 49
	KeyM          = 50
	KeyComma      = 51
	KeyDot        = 52
	KeySlash      = 53
	KeyRightShift = 54
	KeyLeftAlt    = 56
	KeySpace      = 57
	KeyCapsLock   = 58
	KeyF1         = 59
	KeyF2         = 60
	KeyF3         = 61
	KeyF4         = 62
	KeyF5         = 63
	KeyF6         = 64
	KeyF7         = 65
	KeyF8         = 66
	KeyF9         = 67
	KeyF10        = 68
	KeyNumLock    = 69
	KeyScrollLock = 70
	KeyF11        = 87
	KeyF12        = 88
	KeyRightCtrl  = 97
	KeySysRq      = 99
	KeyRightAlt   = 100
	KeyHome       = 102
	KeyUp         = 103
	KeyPageUp     = 104
	KeyLeft       = 105
	KeyRight      = 106
	KeyEnd        = 107
	KeyDown       = 108
	KeyPageDown   = 109
	KeyInsert     = 110
	KeyDelete     = 111
	KeyMute       = 113
	KeyVolumeDown = 114
	KeyVolumeUp   = 115
	KeyPause      = 119
	KeyLeftMeta   = 125
	KeyRightMeta  = 126
	KeyCompose    = 127
	KeyNextSong   = 163
	KeyPlayPause  = 164
	KeyPrevSong   = 165
	KeyStopCD     = 166
)

// NamedKeyCode maps portable key identifiers to evdev key codes.
var NamedKeyCode = map[keysmith.NamedKey]uint16{
	keysmith.KeyShift:        KeyLeftShift,
	keysmith.KeyLeftShift:    KeyLeftShift,
	keysmith.KeyRightShift:   KeyRightShift,
	keysmith.KeyControl:      KeyLeftCtrl,
	keysmith.KeyLeftControl:  KeyLeftCtrl,
	keysmith.KeyRightControl: KeyRightCtrl,
	keysmith.KeyAlt:          KeyLeftAlt,
	keysmith.KeyLeftAlt:      KeyLeftAlt,
	keysmith.KeyRightAlt:     KeyRightAlt,
	keysmith.KeyAltGr:        KeyRightAlt,
	keysmith.KeyMeta:         KeyLeftMeta,
	keysmith.KeyLeftMeta:     KeyLeftMeta,
	keysmith.KeyRightMeta:    KeyRightMeta,

	keysmith.KeyReturn:    KeyEnter,
	keysmith.KeyTab:       KeyTab,
	keysmith.KeySpace:     KeySpace,
	keysmith.KeyBackspace: KeyBackspace,
	keysmith.KeyDelete:    KeyDelete,
	keysmith.KeyInsert:    KeyInsert,
	keysmith.KeyEscape:    KeyEsc,

	keysmith.KeyHome:       KeyHome,
	keysmith.KeyEnd:        KeyEnd,
	keysmith.KeyPageUp:     KeyPageUp,
	keysmith.KeyPageDown:   KeyPageDown,
	keysmith.KeyUpArrow:    KeyUp,
	keysmith.KeyDownArrow:  KeyDown,
	keysmith.KeyLeftArrow:  KeyLeft,
	keysmith.KeyRightArrow: KeyRight,

	keysmith.KeyCapsLock:   KeyCapsLock,
	keysmith.KeyNumLock:    KeyNumLock,
	keysmith.KeyScrollLock: KeyScrollLock,

	keysmith.KeyF1:  KeyF1,
	keysmith.KeyF2:  KeyF2,
	keysmith.KeyF3:  KeyF3,
	keysmith.KeyF4:  KeyF4,
	keysmith.KeyF5:  KeyF5,
	keysmith.KeyF6:  KeyF6,
	keysmith.KeyF7:  KeyF7,
	keysmith.KeyF8:  KeyF8,
	keysmith.KeyF9:  KeyF9,
	keysmith.KeyF10: KeyF10,
	keysmith.KeyF11: KeyF11,
	keysmith.KeyF12: KeyF12,

	keysmith.KeyPrintScreen: KeySysRq,
	keysmith.KeyPause:       KeyPause,
	keysmith.KeyMenu:        KeyCompose,

	keysmith.KeyVolumeUp:       KeyVolumeUp,
	keysmith.KeyVolumeDown:     KeyVolumeDown,
	keysmith.KeyVolumeMute:     KeyMute,
	keysmith.KeyMediaPlayPause: KeyPlayPause,
	keysmith.KeyMediaStop:      KeyStopCD,
	keysmith.KeyMediaNext:      KeyNextSong,
	keysmith.KeyMediaPrevious:  KeyPrevSong,
}
