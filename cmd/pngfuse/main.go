// Copyright 2026 The PNGFuse Authors
// SPDX-License-Identifier: Apache-2.0

// pngfuse embeds files inside PNG metadata and recovers or removes
// them later.
//
// Usage:
//
//	pngfuse [--verbose] fuse [flags] <host.png> <file>...
//	pngfuse [--verbose] extract <fused.png>
//	pngfuse [--verbose] list <fused.png>...
//	pngfuse [--verbose] clean [flags] <fused.png>...
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var verbose bool
	args := os.Args[1:]

	flags := globalFlags(&verbose)
	flags.SetOutput(io.Discard)
	if err := flags.Parse(args); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			return err
		}
		// A help flag before any subcommand: pass the original args
		// through so Execute prints the root help.
	} else {
		args = flags.Args()
	}

	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	return rootCommand(logger).Execute(args)
}

// globalFlags builds the root flag set. Global flags are parsed
// before subcommand dispatch and must precede the subcommand name;
// everything from the subcommand onward is left for the subcommand's
// own flag set.
func globalFlags(verbose *bool) *pflag.FlagSet {
	flags := pflag.NewFlagSet("pngfuse", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.BoolVarP(verbose, "verbose", "v", false, "enable debug logging to stderr")
	return flags
}
