package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Text types its arguments as one string.
type Text struct {
	SessionFlags

	Words []string `arg:"" name:"text" help:"Text to type; multiple arguments are joined with spaces"`
}

// Run is called by kong when the text command is executed.
func (t *Text) Run(logger *slog.Logger) error {
	sess, err := t.open(logger)
	if err != nil {
		return err
	}

	text := strings.Join(t.Words, " ")
	typed, terr := sess.Text(text)
	if terr != nil {
		terr = fmt.Errorf("typed %d of %d characters: %w", typed, len([]rune(text)), terr)
	}
	return errors.Join(terr, sess.Teardown())
}
