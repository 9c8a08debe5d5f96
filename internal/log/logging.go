// Package log builds the configured slog.Logger for keysmith commands.
//
// Without a log file, records below Error go to stdout and Error and above
// to stderr, so shell redirection can separate diagnostics from failures.
// With a log file, everything additionally lands in the file.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// LevelTrace sits below Debug and is used for per-primitive event logging.
const LevelTrace slog.Level = -8

// ParseLevel maps a level name to a slog.Level, defaulting to Info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fanout forwards each record to every child handler.
type fanout struct{ hs []slog.Handler }

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f.hs {
		_ = h.Handle(ctx, r)
	}
	return nil
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(f.hs))
	for i, h := range f.hs {
		out[i] = h.WithAttrs(attrs)
	}
	return fanout{hs: out}
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(f.hs))
	for i, h := range f.hs {
		out[i] = h.WithGroup(name)
	}
	return fanout{hs: out}
}

// levelRange passes only records the predicate accepts.
type levelRange struct {
	pass func(slog.Level) bool
	h    slog.Handler
}

func (l levelRange) Enabled(ctx context.Context, level slog.Level) bool {
	return l.pass(level) && l.h.Enabled(ctx, level)
}

func (l levelRange) Handle(ctx context.Context, r slog.Record) error {
	if !l.pass(r.Level) {
		return nil
	}
	return l.h.Handle(ctx, r)
}

func (l levelRange) WithAttrs(attrs []slog.Attr) slog.Handler {
	return levelRange{pass: l.pass, h: l.h.WithAttrs(attrs)}
}

func (l levelRange) WithGroup(name string) slog.Handler {
	return levelRange{pass: l.pass, h: l.h.WithGroup(name)}
}

// Setup builds the logger and returns any files that must be closed when
// the process exits.
func Setup(level, file string) (*slog.Logger, []io.Closer, error) {
	lv := ParseLevel(level)
	var handlers []slog.Handler

	if file == "" {
		out := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lv})
		handlers = append(handlers, levelRange{pass: func(l slog.Level) bool { return l < slog.LevelError }, h: out})
		errOut := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})
		handlers = append(handlers, levelRange{pass: func(l slog.Level) bool { return l >= slog.LevelError }, h: errOut})
	} else {
		handlers = append(handlers, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
	}

	var closers []io.Closer
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, f)
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: lv}))
	}

	return slog.New(fanout{hs: handlers}), closers, nil
}
