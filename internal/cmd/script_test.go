package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ottogen/keysmith/pkg/backend/fake"
	"github.com/ottogen/keysmith/pkg/keysmith"
)

func TestParseScriptRunsSteps(t *testing.T) {
	const script = `
# smoke-test script
move 10 20
button left
key Return press
key Return release

text hi
scroll 2 horizontal
move -5 0 rel
`
	steps, err := parseScript(strings.NewReader(script))
	require.NoError(t, err)
	require.Len(t, steps, 7)
	assert.Equal(t, 3, steps[0].line)
	assert.Equal(t, 10, steps[6].line)

	fb := fake.New()
	sess, err := keysmith.NewSession(keysmith.Config{Backend: fb})
	require.NoError(t, err)
	for _, st := range steps {
		require.NoError(t, st.apply(sess))
	}
	require.NoError(t, sess.Teardown())

	kinds := fb.Kinds()
	assert.Equal(t, keysmith.MouseMoveAbs, kinds[0])
	assert.Equal(t, keysmith.ButtonDown, kinds[1])
	assert.Equal(t, keysmith.ButtonUp, kinds[2])
	assert.Equal(t, keysmith.ScrollEvent, kinds[len(kinds)-2])
	assert.Equal(t, keysmith.MouseMoveRel, kinds[len(kinds)-1])
}

func TestParseLineText(t *testing.T) {
	// text keeps the rest of the line verbatim, inner spaces included.
	st, err := parseLine("text hello  world")
	require.NoError(t, err)

	fb := fake.New()
	sess, err := keysmith.NewSession(keysmith.Config{Backend: fb})
	require.NoError(t, err)
	require.NoError(t, st.apply(sess))
	require.NoError(t, sess.Teardown())

	var typed []rune
	for _, ev := range fb.Events {
		if ev.Kind == keysmith.KeyDown && ev.Code.Rune != 0 {
			typed = append(typed, ev.Code.Rune)
		}
	}
	assert.Equal(t, "hello  world", string(typed))
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"unknown verb", "type hello"},
		{"key without name", "key"},
		{"key bad direction", "key a tap"},
		{"button unknown name", "button side"},
		{"move non-integer", "move a b"},
		{"move bad mode", "move 1 2 screen"},
		{"scroll non-integer", "scroll fast"},
		{"scroll bad axis", "scroll 1 diagonal"},
		{"sleep bad duration", "sleep soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLine(tt.line)
			assert.Error(t, err)
		})
	}
}

func TestParseScriptReportsLineNumber(t *testing.T) {
	_, err := parseScript(strings.NewReader("move 1 2\nbogus\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseKeyArg(t *testing.T) {
	k, err := parseKeyArg("Return")
	require.NoError(t, err)
	named, ok := k.IsNamed()
	assert.True(t, ok)
	assert.Equal(t, keysmith.KeyReturn, named)

	k, err = parseKeyArg("a")
	require.NoError(t, err)
	r, ok := k.IsUnicode()
	assert.True(t, ok)
	assert.Equal(t, 'a', r)

	_, err = parseKeyArg("NotAKey")
	assert.Error(t, err)
}
