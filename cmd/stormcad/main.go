// Package main is the entry point for stormcad.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dshills/stormcad/internal/app"
	"github.com/dshills/stormcad/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.HistoryPath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.HistoryPath), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error: history directory: %v\n", err)
			return 1
		}
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// dataDir returns the per-user stormcad directory, or "" when the
// platform has none.
func dataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "stormcad")
}

func inDataDir(name string) string {
	dir := dataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, name)
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", inDataDir("config.toml"), "Settings file (TOML or YAML)")
	flag.StringVar(&opts.ScriptsDir, "scripts", inDataDir("scripts"), "Directory of Lua command scripts")
	flag.StringVar(&opts.HistoryPath, "history", inDataDir("history.db"), "Command history database; empty disables history")
	flag.StringVar(&opts.LogPath, "log", "", "Log file; empty discards logs")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the settings file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "stormcad - terminal 2D drafting\n\n")
		fmt.Fprintf(os.Stderr, "Usage: stormcad [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  type a command name and Enter, Enter or Space repeats the last command\n")
		fmt.Fprintf(os.Stderr, "  arrows pan, PgUp/PgDn or the wheel zoom, Home fits the drawing\n")
		fmt.Fprintf(os.Stderr, "  Tab cycles snap candidates, Ctrl+Q quits\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("stormcad %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" {
		if _, ok := logging.LookupLevel(opts.LogLevel); !ok {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			os.Exit(1)
		}
	}

	return opts
}
