package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lightbox/internal/config"
	"github.com/llehouerou/lightbox/internal/errmsg"
	"github.com/llehouerou/lightbox/internal/gallery"
	"github.com/llehouerou/lightbox/internal/manifest"
	"github.com/llehouerou/lightbox/internal/media"
	"github.com/llehouerou/lightbox/internal/ui/viewer"
)

const usage = "usage: lightbox <image|audio|directory|url|manifest.yaml>..."

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	logger, closeLog, err := openLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpLogOpen, cfg.LogFile, err))
	}
	defer closeLog()

	items, title, err := manifest.FromArgs(args)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpManifestLoad, err))
	}

	m, err := viewer.New(viewer.Config{
		Items:        items,
		Options:      cfg.GalleryOptions(),
		Capabilities: cfg.Capabilities(),
		Factories:    newFactories(cfg.GetMediaConfig(), logger),
		Logger:       logger,
		Title:        title,
		KeepOpen:     cfg.KeepOpen,
	})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpGalleryInit, err))
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// newFactories wires the media loaders. A cache that cannot be created is
// skipped, not fatal.
func newFactories(mc config.MediaConfig, logger *slog.Logger) map[string]gallery.ContentFactory {
	var cache *media.Cache
	if !mc.NoCache {
		c, err := media.NewCache(mc.CacheDir, mc.CacheMaxAge)
		if err != nil {
			logger.Warn("media: image cache disabled", "dir", mc.CacheDir, "error", err)
		} else {
			cache = c
		}
	}
	fetcher := &media.Fetcher{Client: &http.Client{Timeout: mc.HTTPTimeout}}

	return map[string]gallery.ContentFactory{
		"image": media.NewImageFactory(fetcher, cache, logger),
		"audio": &media.AudioFactory{Fetcher: fetcher},
	}
}

// openLogger logs to path at the given level, or nowhere when path is empty.
func openLogger(path, level string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))
	return logger, func() { _ = f.Close() }, nil
}
