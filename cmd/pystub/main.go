// # cmd/pystub/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"pystub/internal/config"
)

var (
	configPath = flag.String("config", "./pystub.toml", "Path to config file")
	watch      = flag.Bool("watch", false, "Keep running and regenerate stubs on change")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("pystub v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config; a missing default config file just means defaults.
	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath == "./pystub.toml" && errors.Is(err, fs.ErrNotExist) {
			cfg = config.Default()
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	if flag.NArg() > 0 {
		cfg.SourcePaths = flag.Args()
	}

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}

	failed, err := app.Run()
	if err != nil {
		slog.Error("scan failed", "error", err)
		os.Exit(1)
	}

	if !*watch {
		if failed > 0 {
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := app.StartWatcher(); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	// Block forever
	select {}
}
