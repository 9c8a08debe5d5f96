package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ottogen/keysmith/pkg/keysmith"
)

// Mouse groups the pointer subcommands.
type Mouse struct {
	Move   MouseMove   `cmd:"" help:"Move the pointer"`
	Click  MouseClick  `cmd:"" help:"Press, release or click a button"`
	Scroll MouseScroll `cmd:"" help:"Scroll the wheel"`
	Where  MouseWhere  `cmd:"" help:"Print the current pointer position"`
}

// MouseMove moves the pointer to absolute coordinates or by deltas.
type MouseMove struct {
	SessionFlags

	X        int  `arg:"" help:"X coordinate or delta"`
	Y        int  `arg:"" help:"Y coordinate or delta"`
	Relative bool `help:"Treat the coordinates as deltas from the current position"`
}

// Run is called by kong when the mouse move command is executed.
func (m *MouseMove) Run(logger *slog.Logger) error {
	coord := keysmith.Absolute
	if m.Relative {
		coord = keysmith.Relative
	}
	sess, err := m.open(logger)
	if err != nil {
		return err
	}
	return errors.Join(sess.MoveMouse(m.X, m.Y, coord), sess.Teardown())
}

// MouseClick performs one stroke of a mouse button.
type MouseClick struct {
	SessionFlags

	Button    string `arg:"" help:"left, middle, right, back or forward" default:"left"`
	Direction string `help:"press, release or click" enum:"press,release,click" default:"click"`
}

// Run is called by kong when the mouse click command is executed.
func (m *MouseClick) Run(logger *slog.Logger) error {
	button, ok := keysmith.ParseButton(m.Button)
	if !ok {
		return fmt.Errorf("unknown button %q", m.Button)
	}
	dir, _ := keysmith.ParseDirection(m.Direction)

	sess, err := m.open(logger)
	if err != nil {
		return err
	}
	return errors.Join(sess.Button(button, dir), sess.Teardown())
}

// MouseScroll scrolls by a signed amount; positive is down or right.
type MouseScroll struct {
	SessionFlags

	Amount     int  `arg:"" help:"Scroll amount; positive scrolls down (or right with --horizontal)"`
	Horizontal bool `help:"Scroll horizontally instead of vertically"`
}

// Run is called by kong when the mouse scroll command is executed.
func (m *MouseScroll) Run(logger *slog.Logger) error {
	axis := keysmith.Vertical
	if m.Horizontal {
		axis = keysmith.Horizontal
	}
	sess, err := m.open(logger)
	if err != nil {
		return err
	}
	return errors.Join(sess.Scroll(m.Amount, axis), sess.Teardown())
}

// MouseWhere prints the pointer position on backends that can query it.
type MouseWhere struct {
	SessionFlags
}

// Run is called by kong when the mouse where command is executed.
func (m *MouseWhere) Run(logger *slog.Logger) error {
	sess, err := m.open(logger)
	if err != nil {
		return err
	}
	x, y, lerr := sess.Location()
	if lerr == nil {
		fmt.Printf("%d %d\n", x, y)
	}
	return errors.Join(lerr, sess.Teardown())
}
