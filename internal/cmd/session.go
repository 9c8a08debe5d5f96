// Package cmd implements the keysmith CLI commands.
package cmd

import (
	"log/slog"

	"github.com/ottogen/keysmith/pkg/keysmith"
)

// SessionFlags is embedded by every command that opens an input session.
type SessionFlags struct {
	keysmith.Config `embed:"" prefix:"session."`
}

// open builds an active session from the flags. The caller must tear it
// down on every exit path.
func (f *SessionFlags) open(logger *slog.Logger) (*keysmith.Session, error) {
	cfg := f.Config
	cfg.Logger = logger
	return keysmith.NewSession(cfg)
}
