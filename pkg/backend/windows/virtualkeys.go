//go:build windows

package windows

import "github.com/ottogen/keysmith/pkg/keysmith"

// Win32 virtual-key codes for the portable named keys.
var namedVirtualKey = map[keysmith.NamedKey]uint16{
	keysmith.KeyShift:        0x10, // VK_SHIFT
	keysmith.KeyLeftShift:    0xa0, // VK_LSHIFT
	keysmith.KeyRightShift:   0xa1,
	keysmith.KeyControl:      0x11, // VK_CONTROL
	keysmith.KeyLeftControl:  0xa2,
	keysmith.KeyRightControl: 0xa3,
	keysmith.KeyAlt:          0x12, // VK_MENU
	keysmith.KeyLeftAlt:      0xa4,
	keysmith.KeyRightAlt:     0xa5,
	keysmith.KeyAltGr:        0xa5, // right alt doubles as AltGr
	keysmith.KeyMeta:         0x5b, // VK_LWIN
	keysmith.KeyLeftMeta:     0x5b,
	keysmith.KeyRightMeta:    0x5c,

	keysmith.KeyReturn:    0x0d,
	keysmith.KeyTab:       0x09,
	keysmith.KeySpace:     0x20,
	keysmith.KeyBackspace: 0x08,
	keysmith.KeyDelete:    0x2e,
	keysmith.KeyInsert:    0x2d,
	keysmith.KeyEscape:    0x1b,

	keysmith.KeyHome:       0x24,
	keysmith.KeyEnd:        0x23,
	keysmith.KeyPageUp:     0x21,
	keysmith.KeyPageDown:   0x22,
	keysmith.KeyUpArrow:    0x26,
	keysmith.KeyDownArrow:  0x28,
	keysmith.KeyLeftArrow:  0x25,
	keysmith.KeyRightArrow: 0x27,

	keysmith.KeyCapsLock:   0x14,
	keysmith.KeyNumLock:    0x90,
	keysmith.KeyScrollLock: 0x91,

	keysmith.KeyF1:  0x70,
	keysmith.KeyF2:  0x71,
	keysmith.KeyF3:  0x72,
	keysmith.KeyF4:  0x73,
	keysmith.KeyF5:  0x74,
	keysmith.KeyF6:  0x75,
	keysmith.KeyF7:  0x76,
	keysmith.KeyF8:  0x77,
	keysmith.KeyF9:  0x78,
	keysmith.KeyF10: 0x79,
	keysmith.KeyF11: 0x7a,
	keysmith.KeyF12: 0x7b,

	keysmith.KeyPrintScreen: 0x2c, // VK_SNAPSHOT
	keysmith.KeyPause:       0x13,
	keysmith.KeyMenu:        0x5d, // VK_APPS

	keysmith.KeyVolumeMute:     0xad,
	keysmith.KeyVolumeDown:     0xae,
	keysmith.KeyVolumeUp:       0xaf,
	keysmith.KeyMediaNext:      0xb0,
	keysmith.KeyMediaPrevious:  0xb1,
	keysmith.KeyMediaStop:      0xb2,
	keysmith.KeyMediaPlayPause: 0xb3,
}
