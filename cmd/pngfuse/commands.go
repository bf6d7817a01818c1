// Copyright 2026 The PNGFuse Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/pngfuse/pngfuse/cmd/pngfuse/cli"
	"github.com/pngfuse/pngfuse/lib/pngfuse"
)

// pngExtension identifies fusion targets among the positional
// arguments, compared case-insensitively.
const pngExtension = ".png"

func rootCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:    "pngfuse",
		Summary: "fuse sub-files into PNG metadata",
		Description: "pngfuse stores arbitrary files inside the metadata of a PNG image\n" +
			"without altering how the image renders, and recovers or removes them\n" +
			"later.",
		Flags: func() *pflag.FlagSet {
			// For help output only; run() parses the global flags
			// before dispatch.
			var verbose bool
			return globalFlags(&verbose)
		},
		Subcommands: []*cli.Command{
			fuseCommand(logger),
			extractCommand(logger),
			listCommand(),
			cleanCommand(logger),
		},
	}
}

func fuseCommand(logger *slog.Logger) *cli.Command {
	var overwrite bool
	var output string
	return &cli.Command{
		Name:    "fuse",
		Summary: "embed files into a PNG",
		Usage:   "pngfuse fuse [flags] <host.png> <file>...",
		Description: "Embed one or more files into the first PNG listed. The result is\n" +
			"written to <host>.fused.png unless --overwrite or --output is given.",
		Examples: []cli.Example{
			{Description: "embed two files", Command: "pngfuse fuse photo.png notes.txt data.bin"},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("fuse", pflag.ContinueOnError)
			flags.BoolVarP(&overwrite, "overwrite", "m", false, "modify the host PNG in place")
			flags.StringVarP(&output, "output", "o", "", "custom output path for the fused PNG")
			return flags
		},
		Run: func(args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("fuse requires a host PNG and at least one file to embed")
			}
			target, rest := findTarget(args)
			if target == "" {
				return fmt.Errorf("could not find a target PNG to fuse into")
			}
			logger.Debug("fusing", "target", target, "files", rest)

			image, err := pngfuse.LoadSubFileImage(target)
			if err != nil {
				return err
			}

			files := make([]pngfuse.SubFile, len(rest))
			for i, path := range rest {
				if files[i], err = pngfuse.LoadSubFile(path); err != nil {
					return err
				}
			}
			if len(files) == 1 {
				err = image.AddSubFile(files[0])
			} else {
				err = image.AddSubFiles(files)
			}
			if err != nil {
				return err
			}

			destination := output
			if destination == "" {
				destination = target
				if !overwrite {
					destination = fusedOutputPath(target)
				}
			}
			logger.Debug("saving", "path", destination)
			return image.Save(destination)
		},
	}
}

func extractCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:    "extract",
		Summary: "write out the sub-files embedded in a fused PNG",
		Usage:   "pngfuse extract <fused.png>...",
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("extract requires at least one fused PNG")
			}
			for _, source := range args {
				image, err := pngfuse.LoadSubFileImage(source)
				if err != nil {
					return err
				}
				files, err := image.SubFiles()
				if err != nil {
					return err
				}
				for _, file := range files {
					logger.Debug("extracting", "name", file.Name, "bytes", len(file.Contents))
					if err := file.Save(); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Summary: "list the sub-files present in a fused PNG",
		Usage:   "pngfuse list <fused.png>...",
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("list requires at least one fused PNG")
			}
			for _, source := range args {
				if len(args) > 1 {
					fmt.Printf("%s:\n", filepath.Base(source))
				}
				image, err := pngfuse.LoadSubFileImage(source)
				if err != nil {
					return err
				}
				files, err := image.SubFiles()
				if err != nil {
					return err
				}
				for _, file := range files {
					fmt.Printf("%s : %d bytes (%s)\n",
						file.Name, len(file.Contents), humanize.IBytes(uint64(len(file.Contents))))
				}
			}
			return nil
		},
	}
}

func cleanCommand(logger *slog.Logger) *cli.Command {
	var overwrite bool
	var output string
	return &cli.Command{
		Name:    "clean",
		Summary: "remove all sub-files from a fused PNG",
		Usage:   "pngfuse clean [flags] <fused.png>...",
		Description: "Remove every embedded sub-file. The result is written to a\n" +
			"derived path (stripping \".fused\" or adding \".unfused\") unless\n" +
			"--overwrite or --output is given.",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("clean", pflag.ContinueOnError)
			flags.BoolVarP(&overwrite, "overwrite", "m", false, "modify the input PNG in place")
			flags.StringVarP(&output, "output", "o", "", "custom output path for the cleaned PNG")
			return flags
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("clean requires at least one fused PNG")
			}
			for _, source := range args {
				if len(args) > 1 {
					fmt.Printf("%s:\n", filepath.Base(source))
				}
				image, err := pngfuse.LoadSubFileImage(source)
				if err != nil {
					return err
				}
				removed, err := image.ClearSubFiles()
				if err != nil {
					return err
				}
				plural := "s"
				if removed == 1 {
					plural = ""
				}
				fmt.Printf("%d subfile%s removed.\n", removed, plural)

				destination := output
				if destination == "" {
					destination = source
					if !overwrite {
						destination = cleanedOutputPath(source)
					}
				}
				logger.Debug("saving", "path", destination)
				if err := image.Save(destination); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// findTarget picks the fusion target: the first argument with a .png
// extension. Returns the target and the remaining arguments.
func findTarget(args []string) (target string, rest []string) {
	for i, arg := range args {
		if strings.EqualFold(filepath.Ext(arg), pngExtension) {
			rest = append(rest, args[:i]...)
			return arg, append(rest, args[i+1:]...)
		}
	}
	return "", args
}

// fusedOutputPath derives the default output path for a fusion:
// "photo.png" becomes "photo.fused.png".
func fusedOutputPath(target string) string {
	extension := filepath.Ext(target)
	return strings.TrimSuffix(target, extension) + ".fused" + extension
}

// cleanedOutputPath derives the default output path for a clean:
// "photo.fused.png" becomes "photo.png", and a source without the
// ".fused" marker becomes "photo.unfused.png" so the original is
// never clobbered.
func cleanedOutputPath(source string) string {
	extension := filepath.Ext(source)
	stem := strings.TrimSuffix(source, extension)
	if strings.HasSuffix(strings.ToLower(stem), ".fused") {
		return stem[:len(stem)-len(".fused")] + extension
	}
	return stem + ".unfused" + extension
}
