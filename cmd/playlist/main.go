package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/WictorCampos/playlist-inteligente/internal/config"
	"github.com/WictorCampos/playlist-inteligente/internal/playlist"
)

const (
	exitSuccess     = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
	version         = "1.0.0"
)

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

// reportedError has already been shown to the user.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(config.Load()).ExecuteContext(ctx)
	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "Interrupted (Ctrl-C)")
		os.Exit(exitInterrupted)
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(os.Stderr, ue.msg)
		return exitUsage
	}
	var re reportedError
	var f *playlist.Failure
	if !errors.As(err, &re) && !errors.As(err, &f) {
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
	}
	return exitFailure
}
