package keysmith_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ottogen/keysmith/pkg/backend/evdev"
	"github.com/ottogen/keysmith/pkg/backend/fake"
	"github.com/ottogen/keysmith/pkg/keysmith"
)

func newTestSession(t *testing.T) (*keysmith.Session, *fake.Backend) {
	t.Helper()
	fb := fake.New()
	sess, err := keysmith.NewSession(keysmith.Config{Backend: fb})
	require.NoError(t, err)
	return sess, fb
}

func TestTeardownReleasesEverything(t *testing.T) {
	sess, fb := newTestSession(t)

	require.NoError(t, sess.Key(keysmith.Named(keysmith.KeyShift), keysmith.Press))
	require.NoError(t, sess.Key(keysmith.Named(keysmith.KeyShift), keysmith.Press)) // held twice
	require.NoError(t, sess.Key(keysmith.Named(keysmith.KeyF5), keysmith.Press))
	require.NoError(t, sess.Key(keysmith.Unicode('x'), keysmith.Press))
	require.NoError(t, sess.Button(keysmith.ButtonRight, keysmith.Press))

	// HeldKeys counts keys and buttons: F5, 'x', and the right button.
	assert.Equal(t, 3, sess.HeldKeys())
	assert.Equal(t, keysmith.ModShift, sess.HeldModifiers())

	require.NoError(t, sess.Teardown())

	assert.Zero(t, sess.HeldKeys())
	assert.Zero(t, sess.HeldModifiers())

	keyBalance := map[uint16]int{}
	buttonBalance := map[keysmith.Button]int{}
	for _, ev := range fb.Events {
		switch ev.Kind {
		case keysmith.KeyDown:
			keyBalance[ev.Code.Keycode]++
		case keysmith.KeyUp:
			keyBalance[ev.Code.Keycode]--
		case keysmith.ButtonDown:
			buttonBalance[ev.Button]++
		case keysmith.ButtonUp:
			buttonBalance[ev.Button]--
		}
	}
	for code, n := range keyBalance {
		if code == evdev.KeyLeftShift {
			// Held twice, but one physical up-event clears it.
			assert.Equal(t, 1, n, "shift balance")
			continue
		}
		assert.Equalf(t, 0, n, "unbalanced events for keycode %d", code)
	}
	for btn, n := range buttonBalance {
		assert.Equalf(t, 0, n, "unbalanced events for button %v", btn)
	}
}

func TestTeardownReleasesSideSpecificModifier(t *testing.T) {
	sess, fb := newTestSession(t)

	require.NoError(t, sess.Key(keysmith.Named(keysmith.KeyRightShift), keysmith.Press))
	require.NoError(t, sess.Teardown())

	// The release must use the code that actually went down, not the
	// canonical left-hand key sharing the same modifier bit.
	require.Len(t, fb.Events, 2, fb.Describe())
	assert.Equal(t, keysmith.KeyDown, fb.Events[0].Kind)
	assert.Equal(t, uint16(evdev.KeyRightShift), fb.Events[0].Code.Keycode)
	assert.Equal(t, keysmith.KeyUp, fb.Events[1].Kind)
	assert.Equal(t, uint16(evdev.KeyRightShift), fb.Events[1].Code.Keycode)
	assert.Zero(t, sess.HeldModifiers())
}

func TestTeardownReleasesBothShiftSides(t *testing.T) {
	sess, fb := newTestSession(t)

	require.NoError(t, sess.Key(keysmith.Named(keysmith.KeyLeftShift), keysmith.Press))
	require.NoError(t, sess.Key(keysmith.Named(keysmith.KeyRightShift), keysmith.Press))
	require.NoError(t, sess.Teardown())

	ups := map[uint16]int{}
	for _, ev := range fb.Events {
		if ev.Kind == keysmith.KeyUp {
			ups[ev.Code.Keycode]++
		}
	}
	assert.Equal(t, 1, ups[evdev.KeyLeftShift])
	assert.Equal(t, 1, ups[evdev.KeyRightShift])
	assert.Zero(t, sess.HeldModifiers())
}

func TestSideSpecificReleaseReconcilesOwnPress(t *testing.T) {
	sess, fb := newTestSession(t)

	require.NoError(t, sess.Key(keysmith.Named(keysmith.KeyLeftShift), keysmith.Press))
	require.NoError(t, sess.Key(keysmith.Named(keysmith.KeyRightShift), keysmith.Press))
	require.NoError(t, sess.Key(keysmith.Named(keysmith.KeyRightShift), keysmith.Release))

	// Left shift is still down, so the modifier stays held and teardown
	// releases the left code only.
	assert.Equal(t, keysmith.ModShift, sess.HeldModifiers())
	require.NoError(t, sess.Teardown())

	last := fb.Events[len(fb.Events)-1]
	assert.Equal(t, keysmith.KeyUp, last.Kind)
	assert.Equal(t, uint16(evdev.KeyLeftShift), last.Code.Keycode)
}

func TestTeardownIsIdempotent(t *testing.T) {
	sess, fb := newTestSession(t)
	require.NoError(t, sess.Teardown())
	require.NoError(t, sess.Teardown())
	assert.Empty(t, fb.Events)
}

func TestOperationsAfterTeardown(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.Teardown())

	assert.ErrorIs(t, sess.Key(keysmith.Unicode('a'), keysmith.Click), keysmith.ErrSessionClosed)
	assert.ErrorIs(t, sess.Button(keysmith.ButtonLeft, keysmith.Click), keysmith.ErrSessionClosed)
	assert.ErrorIs(t, sess.MoveMouse(1, 1, keysmith.Absolute), keysmith.ErrSessionClosed)
	assert.ErrorIs(t, sess.Scroll(1, keysmith.Vertical), keysmith.ErrSessionClosed)
	_, err := sess.Text("a")
	assert.ErrorIs(t, err, keysmith.ErrSessionClosed)
}

func TestTypeTextDecomposition(t *testing.T) {
	// One Text call and character-by-character calls must produce the
	// same primitive sequence and the same final modifier state.
	const text = "Hé!\n"

	whole, wholeFb := newTestSession(t)
	n, err := whole.Text(text)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	perChar, perCharFb := newTestSession(t)
	for _, r := range text {
		_, err := perChar.Text(string(r))
		require.NoError(t, err)
	}

	assert.Equal(t, wholeFb.Events, perCharFb.Events)
	assert.Equal(t, whole.HeldModifiers(), perChar.HeldModifiers())
}

func TestBracketNeverReleasesExplicitModifiers(t *testing.T) {
	sess, fb := newTestSession(t)

	require.NoError(t, sess.Key(keysmith.Named(keysmith.KeyShift), keysmith.Press))
	shiftCode := fb.Events[0].Code

	_, err := sess.Text("a") // needs no shift
	require.NoError(t, err)
	_, err = sess.Text("A") // needs shift, but shift is already held
	require.NoError(t, err)

	for _, ev := range fb.Events[1:] {
		if ev.Kind == keysmith.KeyUp {
			assert.NotEqual(t, shiftCode, ev.Code, "bracket released an explicitly held modifier")
		}
	}
	assert.Equal(t, keysmith.ModShift, sess.HeldModifiers())

	// The explicit release is still required to clear it.
	require.NoError(t, sess.Key(keysmith.Named(keysmith.KeyShift), keysmith.Release))
	assert.Zero(t, sess.HeldModifiers())
	require.NoError(t, sess.Teardown())
}

func TestClickRoundTrip(t *testing.T) {
	sess, _ := newTestSession(t)

	require.NoError(t, sess.Key(keysmith.Unicode('q'), keysmith.Press))
	before := sess.HeldKeys()

	require.NoError(t, sess.Key(keysmith.Named(keysmith.KeyReturn), keysmith.Click))
	assert.Equal(t, before, sess.HeldKeys())

	require.NoError(t, sess.Teardown())
}

func TestScenarioMoveClickType(t *testing.T) {
	sess, fb := newTestSession(t)

	require.NoError(t, sess.MoveMouse(500, 200, keysmith.Absolute))
	require.NoError(t, sess.Button(keysmith.ButtonLeft, keysmith.Click))
	n, err := sess.Text("Hi!")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, sess.Teardown())

	type exp struct {
		kind keysmith.PrimitiveKind
		code uint16
	}
	expected := []exp{
		{keysmith.MouseMoveAbs, 0},
		{keysmith.ButtonDown, 0},
		{keysmith.ButtonUp, 0},
		{keysmith.KeyDown, evdev.KeyLeftShift}, // bracket for 'H'
		{keysmith.KeyDown, evdev.KeyH},
		{keysmith.KeyUp, evdev.KeyH},
		{keysmith.KeyUp, evdev.KeyLeftShift},
		{keysmith.KeyDown, evdev.KeyI}, // 'i', no bracket
		{keysmith.KeyUp, evdev.KeyI},
		{keysmith.KeyDown, evdev.KeyLeftShift}, // bracket for '!'
		{keysmith.KeyDown, evdev.Key1},
		{keysmith.KeyUp, evdev.Key1},
		{keysmith.KeyUp, evdev.KeyLeftShift},
	}
	require.Len(t, fb.Events, len(expected), fb.Describe())
	for i, e := range expected {
		assert.Equal(t, e.kind, fb.Events[i].Kind, "event %d", i)
		assert.Equal(t, e.code, fb.Events[i].Code.Keycode, "event %d", i)
	}
	assert.Equal(t, 500, fb.Events[0].X)
	assert.Equal(t, 200, fb.Events[0].Y)
}

func TestUnsupportedKeyLeavesStateUntouched(t *testing.T) {
	fb := fake.New()
	fb.DisableFallback = true
	sess, err := keysmith.NewSession(keysmith.Config{Backend: fb})
	require.NoError(t, err)

	require.NoError(t, sess.Key(keysmith.Unicode('k'), keysmith.Press))
	heldBefore := sess.HeldKeys()
	modsBefore := sess.HeldModifiers()
	eventsBefore := len(fb.Events)

	err = sess.Key(keysmith.Unicode('π'), keysmith.Click)
	var unsupported *keysmith.UnsupportedKeyError
	require.ErrorAs(t, err, &unsupported)

	assert.Equal(t, heldBefore, sess.HeldKeys())
	assert.Equal(t, modsBefore, sess.HeldModifiers())
	assert.Equal(t, eventsBefore, len(fb.Events))

	require.NoError(t, sess.Teardown())
}

func TestClickUpFailureKeepsKeyHeld(t *testing.T) {
	sess, fb := newTestSession(t)

	fb.FailOn = func(ev keysmith.Primitive) error {
		if ev.Kind == keysmith.KeyUp && ev.Code.Keycode == evdev.KeyZ {
			return errors.New("transport hiccup")
		}
		return nil
	}

	err := sess.Key(keysmith.Unicode('z'), keysmith.Click)
	var injErr *keysmith.InjectionError
	require.ErrorAs(t, err, &injErr)

	// The down succeeded, so the key is held until a later release.
	assert.Equal(t, 1, sess.HeldKeys())

	fb.FailOn = nil
	require.NoError(t, sess.Teardown())
	assert.Zero(t, sess.HeldKeys())
	assert.Equal(t, keysmith.KeyUp, fb.Events[len(fb.Events)-1].Kind)
}

func TestTextPartialFailure(t *testing.T) {
	sess, fb := newTestSession(t)

	fb.FailOn = func(ev keysmith.Primitive) error {
		if ev.Kind == keysmith.KeyDown && ev.Code.Rune == 'c' {
			return errors.New("dropped")
		}
		return nil
	}

	typed, err := sess.Text("abcd")
	assert.Equal(t, 2, typed)
	var injErr *keysmith.InjectionError
	require.ErrorAs(t, err, &injErr)

	fb.FailOn = nil
	require.NoError(t, sess.Teardown())
}

// fastTextBackend adds direct string injection on top of the recorder.
type fastTextBackend struct {
	*fake.Backend
	injectErr error
	injected  []string
}

func (b *fastTextBackend) InjectText(s string, marker uint32) error {
	if b.injectErr != nil {
		return b.injectErr
	}
	b.injected = append(b.injected, s)
	return nil
}

func TestFastTextPath(t *testing.T) {
	fb := &fastTextBackend{Backend: fake.New()}
	sess, err := keysmith.NewSession(keysmith.Config{Backend: fb, AllowFastText: true})
	require.NoError(t, err)

	n, err := sess.Text("héllo")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []string{"héllo"}, fb.injected)
	assert.Empty(t, fb.Events, "no per-character primitives on the fast path")
	require.NoError(t, sess.Teardown())
}

func TestFastTextFailureDoesNotRetype(t *testing.T) {
	fb := &fastTextBackend{Backend: fake.New(), injectErr: errors.New("batch truncated")}
	sess, err := keysmith.NewSession(keysmith.Config{Backend: fb, AllowFastText: true})
	require.NoError(t, err)

	n, terr := sess.Text("hello")
	assert.Zero(t, n)
	require.Error(t, terr)
	assert.ErrorIs(t, terr, fb.injectErr)
	// The batch may have partially delivered, so falling back to
	// per-character typing could duplicate characters on the target.
	assert.Empty(t, fb.Events)
	require.NoError(t, sess.Teardown())
}

func TestTextCountsCharDeliveredBeforeBracketFailure(t *testing.T) {
	sess, fb := newTestSession(t)

	fb.FailOn = func(ev keysmith.Primitive) error {
		if ev.Kind == keysmith.KeyUp && ev.Code.Keycode == evdev.KeyLeftShift {
			return errors.New("dropped")
		}
		return nil
	}

	// 'A' itself reached the target; only backing out the shift bracket
	// failed, so the character counts as typed.
	typed, err := sess.Text("A")
	assert.Equal(t, 1, typed)
	var injErr *keysmith.InjectionError
	require.ErrorAs(t, err, &injErr)

	// The bracket shift stays held until teardown releases it.
	assert.Equal(t, keysmith.ModShift, sess.HeldModifiers())
	fb.FailOn = nil
	require.NoError(t, sess.Teardown())
	assert.Zero(t, sess.HeldModifiers())
}

func TestMoveMouseClampsAbsolute(t *testing.T) {
	sess, fb := newTestSession(t)

	require.NoError(t, sess.MoveMouse(5000, -50, keysmith.Absolute))
	last := fb.Events[len(fb.Events)-1]
	assert.Equal(t, 1919, last.X)
	assert.Equal(t, 0, last.Y)

	// Relative deltas are never clamped.
	require.NoError(t, sess.MoveMouse(-30, 99999, keysmith.Relative))
	last = fb.Events[len(fb.Events)-1]
	assert.Equal(t, keysmith.MouseMoveRel, last.Kind)
	assert.Equal(t, -30, last.X)
	assert.Equal(t, 99999, last.Y)

	require.NoError(t, sess.Teardown())
}

func TestScrollPassesCanonicalSign(t *testing.T) {
	sess, fb := newTestSession(t)

	require.NoError(t, sess.Scroll(3, keysmith.Vertical))
	require.NoError(t, sess.Scroll(-2, keysmith.Horizontal))

	assert.Equal(t, 3, fb.Events[0].Amount)
	assert.Equal(t, keysmith.Vertical, fb.Events[0].Axis)
	assert.Equal(t, -2, fb.Events[1].Amount)
	assert.Equal(t, keysmith.Horizontal, fb.Events[1].Axis)

	require.NoError(t, sess.Teardown())
}

func TestEventMarkerStampedOnEveryPrimitive(t *testing.T) {
	fb := fake.New()
	sess, err := keysmith.NewSession(keysmith.Config{Backend: fb, EventMarker: 0xbeef})
	require.NoError(t, err)

	require.NoError(t, sess.Button(keysmith.ButtonLeft, keysmith.Click))
	_, err = sess.Text("ok")
	require.NoError(t, err)
	require.NoError(t, sess.Teardown())

	for i, ev := range fb.Events {
		assert.Equalf(t, uint32(0xbeef), ev.Marker, "event %d", i)
	}
}

func TestRawKeyBypassesLayout(t *testing.T) {
	sess, fb := newTestSession(t)

	require.NoError(t, sess.RawKey(123, keysmith.Press))
	assert.Equal(t, 1, sess.HeldKeys())
	require.NoError(t, sess.RawKey(123, keysmith.Release))
	assert.Zero(t, sess.HeldKeys())

	assert.Equal(t, uint16(123), fb.Events[0].Code.Keycode)
	require.NoError(t, sess.Teardown())
}

func TestLocationQuery(t *testing.T) {
	sess, _ := newTestSession(t)

	require.NoError(t, sess.MoveMouse(40, 50, keysmith.Absolute))
	x, y, err := sess.Location()
	require.NoError(t, err)
	assert.Equal(t, 40, x)
	assert.Equal(t, 50, y)

	require.NoError(t, sess.Teardown())
}

func TestConnectionFailure(t *testing.T) {
	_, err := keysmith.NewSession(keysmith.Config{BackendName: "no-such-backend"})
	var connErr *keysmith.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "no-such-backend", connErr.Backend)
}
