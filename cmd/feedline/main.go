package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/feedline/internal/config"
	"github.com/drake/feedline/internal/feed"
	"github.com/drake/feedline/internal/log"
	"github.com/drake/feedline/internal/store"
	"github.com/drake/feedline/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	var noCache bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&noCache, "no-cache", false, "skip the story cache")
	flag.Parse()

	if showVersion {
		fmt.Printf("feedline %s\n", Version)
		return
	}

	if err := run(noCache); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(noCache bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if noCache {
		cfg.Cache.Disabled = true
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting feedline", "version", Version)

	// Persist the defaults on first run so users have a file to edit
	if _, err := os.Stat(config.Path()); os.IsNotExist(err) {
		if err := config.SaveConfig(cfg); err != nil {
			logger.Warn("failed to write default config", "error", err)
		}
	}

	storyStore, err := store.NewStoryStore(cfg.CacheDir(), logger)
	if err != nil {
		logger.Warn("cache unavailable, running memory-only", "error", err)
		storyStore, _ = store.NewStoryStore("", logger)
	}
	defer storyStore.Close()

	client := feed.NewClient(cfg.Feed.BaseURL, logger)
	svc := feed.NewService(client, storyStore, cfg.Feed.PageSize, logger)

	app := tui.NewApp(svc, time.Duration(cfg.Feed.PollInterval)*time.Second, logger)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
