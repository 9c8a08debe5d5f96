package keysmith_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ottogen/keysmith/pkg/backend/evdev"
	"github.com/ottogen/keysmith/pkg/backend/fake"
	"github.com/ottogen/keysmith/pkg/keysmith"
)

func TestResolveNamedKey(t *testing.T) {
	m := keysmith.NewKeyMap(fake.New())

	code, err := m.Resolve(keysmith.Named(keysmith.KeyEscape))
	require.NoError(t, err)
	assert.Equal(t, uint16(evdev.KeyEsc), code.Keycode)
	assert.False(t, code.Fallback)
	assert.Zero(t, m.CacheSize(), "named keys are not cached")
}

func TestResolveLayoutNative(t *testing.T) {
	m := keysmith.NewKeyMap(fake.New())

	tests := []struct {
		r    rune
		code uint16
		mods keysmith.Modifier
	}{
		{'a', evdev.KeyA, 0},
		{'A', evdev.KeyA, keysmith.ModShift},
		{'7', evdev.Key7, 0},
		{'&', evdev.Key7, keysmith.ModShift},
		{' ', evdev.KeySpace, 0},
	}
	for _, tt := range tests {
		code, err := m.Resolve(keysmith.Unicode(tt.r))
		require.NoErrorf(t, err, "rune %q", tt.r)
		assert.Equalf(t, tt.code, code.Keycode, "rune %q", tt.r)
		assert.Equalf(t, tt.mods, code.Mods, "rune %q", tt.r)
		assert.Falsef(t, code.Fallback, "rune %q", tt.r)
	}
	assert.Equal(t, len(tests), m.CacheSize())
}

func TestResolveFallback(t *testing.T) {
	m := keysmith.NewKeyMap(fake.New())

	code, err := m.Resolve(keysmith.Unicode('Ω'))
	require.NoError(t, err)
	assert.True(t, code.Fallback)
	assert.Equal(t, 'Ω', code.Rune)
	assert.Zero(t, code.Mods, "fallback injection carries no modifier requirement")
}

func TestResolveUnsupported(t *testing.T) {
	fb := fake.New()
	fb.DisableFallback = true
	m := keysmith.NewKeyMap(fb)

	_, err := m.Resolve(keysmith.Unicode('Ω'))
	var unsupported *keysmith.UnsupportedKeyError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, keysmith.Unicode('Ω'), unsupported.Key)
}

func TestResolveCachesAndInvalidates(t *testing.T) {
	fb := fake.New()
	m := keysmith.NewKeyMap(fb)

	first, err := m.Resolve(keysmith.Unicode('a'))
	require.NoError(t, err)
	assert.Equal(t, 1, m.CacheSize())

	again, err := m.Resolve(keysmith.Unicode('a'))
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, m.CacheSize())

	// A layout change drops every cached resolution.
	fb.Generation++
	_, err = m.Resolve(keysmith.Unicode('b'))
	require.NoError(t, err)
	assert.Equal(t, 1, m.CacheSize(), "cache rebuilt from empty after layout change")
}
