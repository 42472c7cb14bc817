// Package logging wires the CLI's slog handler and its flags.
package logging

import (
	"io"
	"log/slog"

	"github.com/spf13/pflag"
)

// DebugFlagName is the persistent flag that elevates the log level.
const DebugFlagName = "debug"

// RegisterFlags attaches the logging flags to a flag set. Register them
// as persistent flags on the root command so every subcommand inherits
// them.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.Bool(DebugFlagName, false, "Enable debug logging")
}

// NewLogger builds the process logger: text records to w (stderr in
// production) at warn and above, or everything when debug is on. Tables
// and detail views go to stdout, so log noise never corrupts piped output.
// The returned LevelVar stays live; the --debug flag flips it after the
// logger has already been handed out.
func NewLogger(w io.Writer, debug bool) (*slog.Logger, *slog.LevelVar) {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	if debug {
		level.Set(slog.LevelDebug)
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	return logger, level
}
