package x11

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/ottogen/keysmith/pkg/keysmith"
)

// X11 keysym values for the portable named keys.
var namedKeysym = map[keysmith.NamedKey]xproto.Keysym{
	keysmith.KeyShift:        0xffe1, // Shift_L
	keysmith.KeyLeftShift:    0xffe1,
	keysmith.KeyRightShift:   0xffe2,
	keysmith.KeyControl:      0xffe3, // Control_L
	keysmith.KeyLeftControl:  0xffe3,
	keysmith.KeyRightControl: 0xffe4,
	keysmith.KeyAlt:          0xffe9, // Alt_L
	keysmith.KeyLeftAlt:      0xffe9,
	keysmith.KeyRightAlt:     0xffea,
	keysmith.KeyAltGr:        0xfe03, // ISO_Level3_Shift
	keysmith.KeyMeta:         0xffeb, // Super_L
	keysmith.KeyLeftMeta:     0xffeb,
	keysmith.KeyRightMeta:    0xffec,

	keysmith.KeyReturn:    0xff0d,
	keysmith.KeyTab:       0xff09,
	keysmith.KeySpace:     0x0020,
	keysmith.KeyBackspace: 0xff08,
	keysmith.KeyDelete:    0xffff,
	keysmith.KeyInsert:    0xff63,
	keysmith.KeyEscape:    0xff1b,

	keysmith.KeyHome:       0xff50,
	keysmith.KeyLeftArrow:  0xff51,
	keysmith.KeyUpArrow:    0xff52,
	keysmith.KeyRightArrow: 0xff53,
	keysmith.KeyDownArrow:  0xff54,
	keysmith.KeyPageUp:     0xff55,
	keysmith.KeyPageDown:   0xff56,
	keysmith.KeyEnd:        0xff57,

	keysmith.KeyCapsLock:   0xffe5,
	keysmith.KeyNumLock:    0xff7f,
	keysmith.KeyScrollLock: 0xff14,

	keysmith.KeyF1:  0xffbe,
	keysmith.KeyF2:  0xffbf,
	keysmith.KeyF3:  0xffc0,
	keysmith.KeyF4:  0xffc1,
	keysmith.KeyF5:  0xffc2,
	keysmith.KeyF6:  0xffc3,
	keysmith.KeyF7:  0xffc4,
	keysmith.KeyF8:  0xffc5,
	keysmith.KeyF9:  0xffc6,
	keysmith.KeyF10: 0xffc7,
	keysmith.KeyF11: 0xffc8,
	keysmith.KeyF12: 0xffc9,

	keysmith.KeyPrintScreen: 0xff61, // Print
	keysmith.KeyPause:       0xff13,
	keysmith.KeyMenu:        0xff67,

	keysmith.KeyVolumeDown:     0x1008ff11, // XF86AudioLowerVolume
	keysmith.KeyVolumeMute:     0x1008ff12,
	keysmith.KeyVolumeUp:       0x1008ff13,
	keysmith.KeyMediaPlayPause: 0x1008ff14,
	keysmith.KeyMediaStop:      0x1008ff15,
	keysmith.KeyMediaPrevious:  0x1008ff16,
	keysmith.KeyMediaNext:      0x1008ff17,
}

// runeToKeysym converts a Unicode scalar to its keysym. Latin-1 characters
// are their own keysym; everything else uses the 0x01000000 Unicode offset
// convention.
func runeToKeysym(r rune) xproto.Keysym {
	switch r {
	case '\n', '\r':
		return 0xff0d // Return
	case '\t':
		return 0xff09 // Tab
	}
	if r < 0x100 {
		return xproto.Keysym(r)
	}
	return xproto.Keysym(0x01000000 + uint32(r))
}
