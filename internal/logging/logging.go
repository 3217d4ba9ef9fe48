package logging

import (
	"io"
	"log/slog"
)

// Level picks the handler level for a command. base is the level used when
// neither flag is set.
func Level(base slog.Level, verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return base
}

// Setup installs the process-wide slog logger and returns it. asJSON switches
// to the JSON handler, which is what `serve` uses in containers.
func Setup(w io.Writer, level slog.Level, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if asJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}
