// SPDX-License-Identifier: EPL-2.0

// Command wavplay plays an uncompressed WAV or AIFF file on an output device.
//
//	wavplay [flags] [file]
//
// Every flag can also be set through a WAVPLAY_* environment variable; flags
// win. The exit status is 0 when the whole file was played, 1 on any fatal
// error and 130 when interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/wavplay"
	"github.com/ik5/wavplay/config"
	"github.com/ik5/wavplay/internal/logutil"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()

	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("wavplay", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: wavplay [flags] [file]")
		fs.PrintDefaults()
	}
	cfg.BindFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitFailure
	}

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.File = fs.Arg(0)
	default:
		fmt.Fprintln(stderr, "wavplay: only one file can be played at a time")
		return exitFailure
	}

	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintf(stderr, "wavplay: config: %v\n", err)
		return exitFailure
	}
	lf := logutil.NewFactory(stderr, level)

	backends := wavplay.DefaultBackends(wavplay.BackendOptions{
		PeriodSize:    uint32(max(cfg.PeriodSize, 0)),
		PeriodCount:   uint32(max(cfg.PeriodCount, 0)),
		LoggerFactory: lf,
	})

	if _, err := wavplay.Play(ctx, cfg, wavplay.DefaultLoaders(), backends, lf); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(stderr, "wavplay: interrupted")
			return exitInterrupted
		}

		fmt.Fprintf(stderr, "wavplay: %v\n", err)
		return exitFailure
	}

	return exitOK
}
