package evdev

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		r     rune
		code  uint16
		shift bool
		ok    bool
	}{
		{'a', KeyA, false, true},
		{'Z', KeyZ, true, true},
		{'1', Key1, false, true},
		{'!', Key1, true, true},
		{';', KeySemicolon, false, true},
		{':', KeySemicolon, true, true},
		{'\n', KeyEnter, false, true},
		{'\t', KeyTab, false, true},
		{' ', KeySpace, false, true},
		{'é', 0, false, false},
		{'π', 0, false, false},
	}
	for _, tt := range tests {
		code, shift, ok := Resolve(tt.r)
		assert.Equalf(t, tt.ok, ok, "rune %q", tt.r)
		if !tt.ok {
			continue
		}
		assert.Equalf(t, tt.code, code, "rune %q", tt.r)
		assert.Equalf(t, tt.shift, shift, "rune %q", tt.r)
	}
}

func TestNamedKeyCodeCoversModifiers(t *testing.T) {
	for _, k := range []struct {
		name string
		code uint16
	}{
		{"shift", KeyLeftShift},
		{"rightshift", KeyRightShift},
		{"leftctrl", KeyLeftCtrl},
		{"leftalt", KeyLeftAlt},
		{"leftmeta", KeyLeftMeta},
	} {
		found := false
		for _, code := range NamedKeyCode {
			if code == k.code {
				found = true
				break
			}
		}
		assert.Truef(t, found, "no named key maps to %s (%d)", k.name, k.code)
	}
}
