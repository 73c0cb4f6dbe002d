// Package main is the entry point for the modal editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/modal/internal/app"
	"github.com/dshills/modal/internal/config"
	"github.com/dshills/modal/internal/renderer/backend"
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

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: modal must be run in a terminal")
		return 1
	}

	// Create application
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Create terminal backend
	tty, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(tty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// flagValues holds the flags that override the configuration.
type flagValues struct {
	logLevel  string
	logFile   string
	scrolloff int
	set       map[string]bool
}

// apply overrides cfg with the flags given on the command line.
func (f *flagValues) apply(cfg *config.Config) {
	if f.set["log-level"] {
		cfg.Logging.Level = f.logLevel
	}
	if f.set["log-file"] {
		cfg.Logging.File = f.logFile
	}
	if f.set["scrolloff"] {
		cfg.Editor.Scrolloff = f.scrolloff
	}
}

func parseFlags() app.Options {
	var opts app.Options
	var flags flagValues
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&flags.logFile, "log-file", "", "Write logs to this file")
	flag.IntVar(&flags.scrolloff, "scrolloff", 3, "Lines kept visible above and below the cursor")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "modal - a small modal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: modal [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		for _, name := range config.EnvVars() {
			fmt.Fprintf(os.Stderr, "  %s\n", name)
		}
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  i          insert mode (Escape returns to normal)\n")
		fmt.Fprintf(os.Stderr, "  h j k l    move the cursor\n")
		fmt.Fprintf(os.Stderr, "  : Enter    save the current buffer\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+Q     quit\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  modal                       Open with empty buffer\n")
		fmt.Fprintf(os.Stderr, "  modal notes.txt             Open a file (created on save)\n")
		fmt.Fprintf(os.Stderr, "  modal -log-file modal.log   Log to a file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("modal %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	flags.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { flags.set[f.Name] = true })

	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultPath()
	}
	opts.Overrides = flags.apply

	// Remaining arguments are files to open
	opts.Files = flag.Args()

	return opts
}
