package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ottogen/keysmith/pkg/keysmith"
)

// Key performs one stroke of a named key or a single character.
type Key struct {
	SessionFlags

	Name      string `arg:"" help:"Key name (e.g. Return, F5, LeftShift) or a single character"`
	Direction string `help:"press, release or click" enum:"press,release,click" default:"click"`
	Raw       uint16 `help:"Inject this platform keycode instead of resolving a name" default:"0"`
}

// Run is called by kong when the key command is executed.
func (k *Key) Run(logger *slog.Logger) error {
	dir, _ := keysmith.ParseDirection(k.Direction)

	sess, err := k.open(logger)
	if err != nil {
		return err
	}

	var kerr error
	switch {
	case k.Raw != 0:
		kerr = sess.RawKey(k.Raw, dir)
	default:
		key, perr := parseKeyArg(k.Name)
		if perr != nil {
			kerr = perr
			break
		}
		kerr = sess.Key(key, dir)
	}
	return errors.Join(kerr, sess.Teardown())
}

// parseKeyArg accepts a named key or a single character.
func parseKeyArg(s string) (keysmith.Key, error) {
	if named, ok := keysmith.ParseNamedKey(s); ok {
		return keysmith.Named(named), nil
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return keysmith.Unicode(runes[0]), nil
	}
	return keysmith.Key{}, fmt.Errorf("unknown key %q", s)
}
