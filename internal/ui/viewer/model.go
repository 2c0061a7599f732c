// Package viewer provides the full-screen lightbox model: it feeds terminal
// input to a gallery and draws its slide strip.
package viewer

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"

	"github.com/llehouerou/lightbox/internal/gallery"
	"github.com/llehouerou/lightbox/internal/keymap"
	"github.com/llehouerou/lightbox/internal/ui"
)

// Config describes what the viewer shows and how the gallery behaves.
type Config struct {
	Items        []gallery.Item
	Options      gallery.Options
	Capabilities gallery.Capabilities
	// Factories maps MIME major types to content factories.
	Factories map[string]gallery.ContentFactory
	Logger    *slog.Logger
	// Title is the terminal window title, if any.
	Title string
	// KeepOpen keeps the viewer running after the gallery closes, so it can
	// be reopened.
	KeepOpen bool
}

// Model is the viewer's bubbletea model. It is a pointer type: the gallery
// measures its viewport through it.
type Model struct {
	ui.Base

	gallery *gallery.Gallery
	loop    *gallery.Loop
	logger  *slog.Logger

	resolver *keymap.Resolver
	helpMap  keymap.HelpMap
	help     help.Model

	title    string
	keepOpen bool
	started  bool
	closed   bool
	quitting bool
	framing  bool
	showInfo bool

	// Pointer press in progress.
	pressed     bool
	pressTarget gallery.Target
}

// New creates the viewer and its gallery. A gallery configuration error is
// returned as is.
func New(cfg Config) (*Model, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &Model{
		loop:     gallery.NewLoop(),
		logger:   logger,
		resolver: keymap.NewResolver(keymap.Bindings),
		helpMap:  keymap.NewHelpMap(keymap.Bindings),
		help:     help.New(),
		title:    cfg.Title,
		keepOpen: cfg.KeepOpen,
	}

	opts := cfg.Options
	onOpen, onClosed := opts.Hooks.OnOpen, opts.Hooks.OnClosed
	opts.Hooks.OnOpen = func(g *gallery.Gallery) {
		m.closed = false
		if onOpen != nil {
			onOpen(g)
		}
	}
	opts.Hooks.OnClosed = func(g *gallery.Gallery) {
		m.closed = true
		if onClosed != nil {
			onClosed(g)
		}
	}

	options := []gallery.Option{
		gallery.WithScheduler(m.loop),
		gallery.WithCapabilities(cfg.Capabilities),
		gallery.WithLogger(logger),
	}
	for kind, f := range cfg.Factories {
		options = append(options, gallery.WithFactory(kind, f))
	}

	g, err := gallery.New(cfg.Items, gallery.ViewportFunc(m.stripSize), opts, options...)
	if err != nil {
		return nil, err
	}
	m.gallery = g
	return m, nil
}

// Gallery returns the gallery driven by the viewer.
func (m *Model) Gallery() *gallery.Gallery {
	return m.gallery
}

// Closed reports whether the gallery finished closing.
func (m *Model) Closed() bool {
	return m.closed
}

// footerHeight is the height of the help area below the strip.
func (m *Model) footerHeight() int {
	h := 1
	if m.help.ShowAll {
		for _, column := range m.helpMap.FullHelp() {
			h = max(h, len(column))
		}
	}
	return h
}

func (m *Model) stripTop() int {
	return ui.HeaderHeight
}

func (m *Model) stripHeight() int {
	overhead := ui.HeaderHeight + m.footerHeight()
	if m.showInfo {
		overhead += ui.InfoHeight
	}
	return m.Remaining(overhead, ui.MinStripHeight)
}

// stripSize is the gallery viewport: one slide is as wide as the terminal.
func (m *Model) stripSize() (width, height int) {
	return m.Width(), m.stripHeight()
}

func (m *Model) inStrip(y int) bool {
	return y >= m.stripTop() && y < m.stripTop()+m.stripHeight()
}
