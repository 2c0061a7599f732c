package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/lightbox/internal/gallery"
)

const appName = "lightbox"

type Config struct {
	Preset    string `koanf:"preset"`    // "lightbox" or "carousel"
	Animation string `koanf:"animation"` // "auto", "transform" or "offset"
	LogFile   string `koanf:"log_file"`  // empty disables logging
	LogLevel  string `koanf:"log_level"` // "debug", "info", "warn", "error"
	KeepOpen  bool   `koanf:"keep_open"` // stay in the viewer after the gallery closes

	Media   MediaConfig   `koanf:"media"`
	Gallery GalleryConfig `koanf:"gallery"`
}

// MediaConfig controls how slide content is fetched and cached.
type MediaConfig struct {
	CacheDir    string        `koanf:"cache_dir"`     // default: $XDG_CACHE_HOME/lightbox
	CacheMaxAge time.Duration `koanf:"cache_max_age"` // default: 720h
	HTTPTimeout time.Duration `koanf:"http_timeout"`  // default: 15s
	NoCache     bool          `koanf:"no_cache"`
}

// GalleryConfig overrides gallery options. Unset fields keep the value of the
// selected preset.
type GalleryConfig struct {
	Index                       *int           `koanf:"index"`
	PreloadRange                *int           `koanf:"preload_range"`
	TransitionDuration          *time.Duration `koanf:"transition_duration"`
	SlideshowTransitionDuration *time.Duration `koanf:"slideshow_transition_duration"`
	SlideshowInterval           *time.Duration `koanf:"slideshow_interval"`
	SlideshowDirection          string         `koanf:"slideshow_direction"` // "ltr" or "rtl"
	SwipeThreshold              *float64       `koanf:"swipe_threshold"`

	Continuous        *bool `koanf:"continuous"`
	UnloadElements    *bool `koanf:"unload_elements"`
	ClearSlides       *bool `koanf:"clear_slides"`
	DisplayTransition *bool `koanf:"display_transition"`
	StartSlideshow    *bool `koanf:"start_slideshow"`

	ToggleControlsOnEnter      *bool `koanf:"toggle_controls_on_enter"`
	ToggleControlsOnSlideClick *bool `koanf:"toggle_controls_on_slide_click"`
	ToggleSlideshowOnSpace     *bool `koanf:"toggle_slideshow_on_space"`
	EnableKeyboardNavigation   *bool `koanf:"enable_keyboard_navigation"`
	CloseOnEscape              *bool `koanf:"close_on_escape"`
	CloseOnSlideClick          *bool `koanf:"close_on_slide_click"`
	CloseOnSwipeUpOrDown       *bool `koanf:"close_on_swipe_up_or_down"`
	EmulateTouchEvents         *bool `koanf:"emulate_touch_events"`

	// Properties renames the item fields read from manifests.
	Properties gallery.Accessor `koanf:"properties"`
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files in order, later files overriding
// earlier ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Preset = strings.ToLower(strings.TrimSpace(cfg.Preset))
	cfg.Animation = strings.ToLower(strings.TrimSpace(cfg.Animation))
	if cfg.LogFile != "" {
		cfg.LogFile = expandPath(cfg.LogFile)
	}
	if cfg.Media.CacheDir != "" {
		cfg.Media.CacheDir = expandPath(cfg.Media.CacheDir)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/lightbox/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// IsCarousel returns true if the carousel preset is selected.
func (c *Config) IsCarousel() bool {
	return c.Preset == "carousel"
}

// GetMediaConfig returns the media configuration with defaults applied.
func (c *Config) GetMediaConfig() MediaConfig {
	cfg := c.Media

	if cfg.CacheDir == "" {
		cfg.CacheDir = filepath.Join(xdg.CacheHome, appName)
	}
	if cfg.CacheMaxAge <= 0 {
		cfg.CacheMaxAge = 30 * 24 * time.Hour
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 15 * time.Second
	}

	return cfg
}

// GalleryOptions builds gallery options: defaults, then the preset, then
// every field set in the [gallery] table.
func (c *Config) GalleryOptions() gallery.Options {
	opts := gallery.DefaultOptions()
	if c.IsCarousel() {
		opts.ApplyCarouselPreset()
	}

	g := c.Gallery
	setInt(&opts.Index, g.Index)
	setInt(&opts.PreloadRange, g.PreloadRange)
	setDuration(&opts.TransitionDuration, g.TransitionDuration)
	setDuration(&opts.SlideshowTransitionDuration, g.SlideshowTransitionDuration)
	setDuration(&opts.SlideshowInterval, g.SlideshowInterval)
	if g.SwipeThreshold != nil {
		opts.SwipeThreshold = *g.SwipeThreshold
	}
	switch strings.ToLower(g.SlideshowDirection) {
	case "rtl":
		opts.SlideshowDirection = gallery.RightToLeft
	case "ltr":
		opts.SlideshowDirection = gallery.LeftToRight
	}

	for _, f := range []struct {
		dst *bool
		src *bool
	}{
		{&opts.Continuous, g.Continuous},
		{&opts.UnloadElements, g.UnloadElements},
		{&opts.ClearSlides, g.ClearSlides},
		{&opts.DisplayTransition, g.DisplayTransition},
		{&opts.StartSlideshow, g.StartSlideshow},
		{&opts.ToggleControlsOnEnter, g.ToggleControlsOnEnter},
		{&opts.ToggleControlsOnSlideClick, g.ToggleControlsOnSlideClick},
		{&opts.ToggleSlideshowOnSpace, g.ToggleSlideshowOnSpace},
		{&opts.EnableKeyboardNavigation, g.EnableKeyboardNavigation},
		{&opts.CloseOnEscape, g.CloseOnEscape},
		{&opts.CloseOnSlideClick, g.CloseOnSlideClick},
		{&opts.CloseOnSwipeUpOrDown, g.CloseOnSwipeUpOrDown},
		{&opts.EmulateTouchEvents, g.EmulateTouchEvents},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}

	// Empty names fall back to the defaults when the gallery is built.
	p := g.Properties
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&opts.Properties.URLProperty, p.URLProperty},
		{&opts.Properties.TypeProperty, p.TypeProperty},
		{&opts.Properties.TitleProperty, p.TitleProperty},
		{&opts.Properties.AltTextProperty, p.AltTextProperty},
		{&opts.Properties.SrcsetProperty, p.SrcsetProperty},
		{&opts.Properties.SizesProperty, p.SizesProperty},
		{&opts.Properties.SourcesProperty, p.SourcesProperty},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}

	return opts
}

// Capabilities returns the engine capabilities for the animation setting.
// The terminal has no native touch input.
func (c *Config) Capabilities() gallery.Capabilities {
	return gallery.Capabilities{Transform: c.Animation != "offset"}
}

func setInt(dst, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst, src *time.Duration) {
	if src != nil {
		*dst = *src
	}
}
