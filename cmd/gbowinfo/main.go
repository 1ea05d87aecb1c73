package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/gbowinfo/internal/gbow"
	"github.com/danmuck/gbowinfo/internal/inspect"
	"github.com/danmuck/gbowinfo/internal/logging"
	"github.com/danmuck/gbowinfo/internal/report"
)

const VERSION = "0.1.0"

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gbowinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a TOML config file")
	noColor := fs.Bool("no-color", false, "disable colored output")
	workers := fs.Int("workers", 0, "files decoded in parallel (default: config or CPU count)")
	indent := fs.String("indent", "", "indent used for the document (default: tab)")
	showVersion := fs.Bool("version", false, "display version information")
	fs.Usage = func() { printUsage(fs, stderr) }

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *showVersion {
		fmt.Fprintf(stdout, "gbowinfo version %s\n", VERSION)
		return exitOK
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: at least one .gbow file is required.")
		printUsage(fs, stderr)
		return exitUsage
	}

	logging.ConfigureRuntime()

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath, cfg)
		if err != nil {
			fmt.Fprintf(stderr, "gbowinfo: %v\n", err)
			return exitFail
		}
		cfg = loaded
	}
	if *noColor {
		cfg.Color = false
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *indent != "" {
		cfg.Indent = *indent
	}
	if cfg.LogLevel != "" {
		logging.SetLevel(cfg.LogLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Debug().Int("files", fs.NArg()).Int("workers", cfg.Workers).Msg("inspect")
	results := inspect.Run(ctx, gbow.NewDecoder(log.Logger), fs.Args(), cfg.Workers)

	out := report.NewPrinter(stdout, report.Options{Color: cfg.Color, Indent: cfg.Indent})
	errOut := report.NewPrinter(stderr, report.Options{Color: cfg.Color})
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		if res.Report != nil {
			out.Print(res.Report)
		}
		if res.Err != nil {
			errOut.PrintError(res.Path, res.Err)
		}
	}

	if inspect.Failed(results) {
		return exitFail
	}
	return exitOK
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Usage: gbowinfo [options] <file.gbow> [file.gbow...]")
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w, "\nExamples:")
	fmt.Fprintln(w, "  gbowinfo session.gbow                     # Inspect one file")
	fmt.Fprintln(w, "  gbowinfo -workers 4 presets/*.gbow        # Inspect many files in parallel")
	fmt.Fprintln(w, "  gbowinfo -config gbowinfo.toml x.gbow     # Load settings from a config file")
}
