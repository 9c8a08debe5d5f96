package keysmith_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ottogen/keysmith/pkg/keysmith"
)

func TestModifierTrackerRefCounting(t *testing.T) {
	tr := keysmith.NewModifierTracker(nil)

	tr.NoteDown(keysmith.ModShift)
	tr.NoteDown(keysmith.ModShift)
	tr.NoteDown(keysmith.ModControl)

	assert.Equal(t, keysmith.ModShift|keysmith.ModControl, tr.Held())
	assert.Equal(t, 3, tr.TotalRefs())

	tr.NoteUp(keysmith.ModShift)
	assert.Equal(t, keysmith.ModShift|keysmith.ModControl, tr.Held(), "one release of a double hold keeps the modifier held")

	tr.NoteUp(keysmith.ModShift)
	assert.Equal(t, keysmith.ModControl, tr.Held())

	tr.NoteUp(keysmith.ModControl)
	assert.Zero(t, tr.Held())
	assert.Zero(t, tr.TotalRefs())
}

func TestModifierTrackerClampsAtZero(t *testing.T) {
	tr := keysmith.NewModifierTracker(nil)

	tr.NoteUp(keysmith.ModAlt)
	assert.Zero(t, tr.Held())
	assert.Zero(t, tr.TotalRefs())

	// State stays usable after the unmatched release.
	tr.NoteDown(keysmith.ModAlt)
	assert.Equal(t, keysmith.ModAlt, tr.Held())
	assert.Equal(t, 1, tr.TotalRefs())
}

func TestModifierTrackerCombinedMask(t *testing.T) {
	tr := keysmith.NewModifierTracker(nil)

	tr.NoteDown(keysmith.ModShift | keysmith.ModAltGr)
	assert.Equal(t, keysmith.ModShift|keysmith.ModAltGr, tr.Held())
	assert.Equal(t, 2, tr.TotalRefs())

	tr.NoteUp(keysmith.ModShift | keysmith.ModAltGr)
	assert.Zero(t, tr.Held())
}

func TestBracket(t *testing.T) {
	tests := []struct {
		name     string
		held     keysmith.Modifier
		required keysmith.Modifier
		want     keysmith.Modifier
	}{
		{"nothing held, nothing required", 0, 0, 0},
		{"nothing held", 0, keysmith.ModShift, keysmith.ModShift},
		{"required already held", keysmith.ModShift, keysmith.ModShift, 0},
		{"partial overlap", keysmith.ModShift, keysmith.ModShift | keysmith.ModAltGr, keysmith.ModAltGr},
		{"held but not required", keysmith.ModControl, keysmith.ModShift, keysmith.ModShift},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := keysmith.NewModifierTracker(nil)
			tr.NoteDown(tt.held)
			assert.Equal(t, tt.want, tr.Bracket(tt.required))
		})
	}
}

func TestModifierString(t *testing.T) {
	assert.Equal(t, "none", keysmith.Modifier(0).String())
	assert.Equal(t, "shift", keysmith.ModShift.String())
	assert.Equal(t, "shift+control+meta", (keysmith.ModShift | keysmith.ModControl | keysmith.ModMeta).String())
}
