package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	backendfake "github.com/ottogen/keysmith/pkg/backend/fake"
	"github.com/ottogen/keysmith/pkg/keysmith"
)

// Script executes a line-oriented input script against one session.
//
// Supported statements, one per line ('#' starts a comment):
//
//	text <rest of line>
//	key <name> [press|release|click]
//	button <name> [press|release|click]
//	move <x> <y> [abs|rel]
//	scroll <amount> [vertical|horizontal]
//	sleep <duration>
type Script struct {
	SessionFlags

	Path   string `arg:"" optional:"" help:"Script file; '-' or empty reads stdin"`
	DryRun bool   `help:"Record the primitive event stream instead of injecting it"`
}

// Run is called by kong when the script command is executed.
func (s *Script) Run(logger *slog.Logger) error {
	var in io.Reader
	switch s.Path {
	case "", "-":
		if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "reading script from terminal; end with Ctrl-D")
		}
		in = os.Stdin
	default:
		f, err := os.Open(s.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	steps, err := parseScript(in)
	if err != nil {
		return err
	}

	var recorder *backendfake.Backend
	cfg := s.Config
	cfg.Logger = logger
	if s.DryRun {
		recorder = backendfake.New()
		cfg.Backend = recorder
	}

	sess, err := keysmith.NewSession(cfg)
	if err != nil {
		return err
	}

	var runErr error
	for _, st := range steps {
		if runErr = st.apply(sess); runErr != nil {
			runErr = fmt.Errorf("line %d: %w", st.line, runErr)
			break
		}
	}
	err = errors.Join(runErr, sess.Teardown())

	if recorder != nil {
		fmt.Print(recorder.Describe())
	}
	return err
}

// step is one parsed script statement.
type step struct {
	line  int
	apply func(*keysmith.Session) error
}

func parseScript(r io.Reader) ([]step, error) {
	var steps []step
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		st, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		st.line = lineNo
		steps = append(steps, st)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}

func parseLine(line string) (step, error) {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	fields := strings.Fields(rest)

	switch verb {
	case "text":
		text := rest
		return step{apply: func(s *keysmith.Session) error {
			_, err := s.Text(text)
			return err
		}}, nil

	case "key":
		if len(fields) < 1 || len(fields) > 2 {
			return step{}, errors.New("usage: key <name> [press|release|click]")
		}
		key, err := parseKeyArg(fields[0])
		if err != nil {
			return step{}, err
		}
		dir := keysmith.Click
		if len(fields) == 2 {
			var ok bool
			if dir, ok = keysmith.ParseDirection(fields[1]); !ok {
				return step{}, fmt.Errorf("unknown direction %q", fields[1])
			}
		}
		return step{apply: func(s *keysmith.Session) error { return s.Key(key, dir) }}, nil

	case "button":
		if len(fields) < 1 || len(fields) > 2 {
			return step{}, errors.New("usage: button <name> [press|release|click]")
		}
		button, ok := keysmith.ParseButton(fields[0])
		if !ok {
			return step{}, fmt.Errorf("unknown button %q", fields[0])
		}
		dir := keysmith.Click
		if len(fields) == 2 {
			if dir, ok = keysmith.ParseDirection(fields[1]); !ok {
				return step{}, fmt.Errorf("unknown direction %q", fields[1])
			}
		}
		return step{apply: func(s *keysmith.Session) error { return s.Button(button, dir) }}, nil

	case "move":
		if len(fields) < 2 || len(fields) > 3 {
			return step{}, errors.New("usage: move <x> <y> [abs|rel]")
		}
		x, errX := strconv.Atoi(fields[0])
		y, errY := strconv.Atoi(fields[1])
		if errX != nil || errY != nil {
			return step{}, errors.New("move coordinates must be integers")
		}
		coord := keysmith.Absolute
		if len(fields) == 3 {
			switch fields[2] {
			case "abs":
			case "rel":
				coord = keysmith.Relative
			default:
				return step{}, fmt.Errorf("unknown coordinate mode %q", fields[2])
			}
		}
		return step{apply: func(s *keysmith.Session) error { return s.MoveMouse(x, y, coord) }}, nil

	case "scroll":
		if len(fields) < 1 || len(fields) > 2 {
			return step{}, errors.New("usage: scroll <amount> [vertical|horizontal]")
		}
		amount, err := strconv.Atoi(fields[0])
		if err != nil {
			return step{}, errors.New("scroll amount must be an integer")
		}
		axis := keysmith.Vertical
		if len(fields) == 2 {
			switch fields[1] {
			case "vertical":
			case "horizontal":
				axis = keysmith.Horizontal
			default:
				return step{}, fmt.Errorf("unknown axis %q", fields[1])
			}
		}
		return step{apply: func(s *keysmith.Session) error { return s.Scroll(amount, axis) }}, nil

	case "sleep":
		if len(fields) != 1 {
			return step{}, errors.New("usage: sleep <duration>")
		}
		d, err := time.ParseDuration(fields[0])
		if err != nil {
			return step{}, fmt.Errorf("bad duration: %w", err)
		}
		return step{apply: func(*keysmith.Session) error {
			time.Sleep(d)
			return nil
		}}, nil
	}

	return step{}, fmt.Errorf("unknown statement %q", verb)
}
