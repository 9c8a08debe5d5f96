// Package config declares the keysmith CLI surface parsed by kong.
package config

import (
	"github.com/ottogen/keysmith/internal/cmd"
)

// LogConfig groups the logging flags shared by every command.
type LogConfig struct {
	Level string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"KEYSMITH_LOG_LEVEL"`
	File  string `help:"Write logs to this file instead of the console" env:"KEYSMITH_LOG_FILE"`
}

// CLI is the root command tree.
type CLI struct {
	Log    LogConfig `embed:"" prefix:"log."`
	Config string    `help:"Path to a configuration file (JSON, YAML or TOML)" env:"KEYSMITH_CONFIG"`

	Text       cmd.Text       `cmd:"" help:"Type a Unicode string"`
	Key        cmd.Key        `cmd:"" help:"Press, release or click a key"`
	Mouse      cmd.Mouse      `cmd:"" help:"Move the pointer, click or scroll"`
	Script     cmd.Script     `cmd:"" help:"Execute an input script"`
	InitConfig cmd.ConfigInit `cmd:"" help:"Generate a configuration template"`
}
