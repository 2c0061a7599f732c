//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/lightbox/internal/gallery"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/.cache/lightbox",
			expected: filepath.Join(home, ".cache", "lightbox"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/log/lightbox.log",
			expected: "/var/log/lightbox.log",
		},
		{
			name:     "relative path unchanged",
			input:    "logs/lightbox.log",
			expected: "logs/lightbox.log",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) != 2 {
		t.Fatalf("getConfigPaths() returned %d paths, want 2", len(paths))
	}
	if want := filepath.Join(xdg.ConfigHome, "lightbox", "config.toml"); paths[0] != want {
		t.Errorf("first config path = %q, want %q", paths[0], want)
	}
	if paths[1] != "config.toml" {
		t.Errorf("last config path = %q, want %q", paths[1], "config.toml")
	}
}

func TestLoadFrom_MissingFilesUseDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Preset)
	assert.Equal(t, gallery.DefaultOptions().TransitionDuration, cfg.GalleryOptions().TransitionDuration)
	assert.True(t, cfg.Capabilities().Transform)
}

func TestLoadFrom_ParsesAllSections(t *testing.T) {
	path := writeConfig(t, `
preset = "Carousel"
animation = "offset"
log_file = "~/lightbox.log"
log_level = "debug"
keep_open = true

[media]
cache_dir = "/tmp/lightbox-cache"
cache_max_age = "48h"
http_timeout = "3s"

[gallery]
preload_range = 1
transition_duration = "250ms"
slideshow_interval = "2s"
slideshow_direction = "rtl"
swipe_threshold = 40.5
continuous = false
close_on_escape = true

[gallery.properties]
url_property = "href"
title_property = "caption"
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "carousel", cfg.Preset)
	assert.True(t, cfg.IsCarousel())
	assert.False(t, cfg.Capabilities().Transform)
	assert.NotContains(t, cfg.LogFile, "~")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.KeepOpen)

	media := cfg.GetMediaConfig()
	assert.Equal(t, "/tmp/lightbox-cache", media.CacheDir)
	assert.Equal(t, 48*time.Hour, media.CacheMaxAge)
	assert.Equal(t, 3*time.Second, media.HTTPTimeout)

	opts := cfg.GalleryOptions()
	assert.Equal(t, 1, opts.PreloadRange)
	assert.Equal(t, 250*time.Millisecond, opts.TransitionDuration)
	assert.Equal(t, 2*time.Second, opts.SlideshowInterval)
	assert.Equal(t, gallery.RightToLeft, opts.SlideshowDirection)
	assert.InDelta(t, 40.5, opts.SwipeThreshold, 0.0001)
	assert.False(t, opts.Continuous)
	assert.Equal(t, "href", opts.Properties.URLProperty)
	assert.Equal(t, "caption", opts.Properties.TitleProperty)
	assert.Equal(t, gallery.PropAltText, opts.Properties.AltTextProperty)
}

func TestLoadFrom_LaterFileWins(t *testing.T) {
	global := writeConfig(t, `
[gallery]
preload_range = 4
continuous = false
`)
	local := writeConfig(t, `
[gallery]
preload_range = 1
`)

	cfg, err := LoadFrom(global, local)
	require.NoError(t, err)

	opts := cfg.GalleryOptions()
	assert.Equal(t, 1, opts.PreloadRange)
	assert.False(t, opts.Continuous, "keys absent from the later file are kept")
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "preset = [unterminated")

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestGalleryOptions_Precedence(t *testing.T) {
	yes := true
	no := false

	tests := []struct {
		name   string
		config Config
		check  func(t *testing.T, o gallery.Options)
	}{
		{
			name:   "defaults",
			config: Config{},
			check: func(t *testing.T, o gallery.Options) {
				assert.Equal(t, gallery.DefaultOptions().Carousel, o.Carousel)
				assert.True(t, o.CloseOnEscape)
				assert.False(t, o.StartSlideshow)
			},
		},
		{
			name:   "carousel preset",
			config: Config{Preset: "carousel"},
			check: func(t *testing.T, o gallery.Options) {
				assert.True(t, o.Carousel)
				assert.False(t, o.CloseOnEscape)
				assert.True(t, o.StartSlideshow)
			},
		},
		{
			name: "explicit beats preset",
			config: Config{
				Preset: "carousel",
				Gallery: GalleryConfig{
					CloseOnEscape:  &yes,
					StartSlideshow: &no,
				},
			},
			check: func(t *testing.T, o gallery.Options) {
				assert.True(t, o.Carousel)
				assert.True(t, o.CloseOnEscape)
				assert.False(t, o.StartSlideshow)
				assert.False(t, o.CloseOnSlideClick)
			},
		},
		{
			name:   "unknown direction ignored",
			config: Config{Gallery: GalleryConfig{SlideshowDirection: "up"}},
			check: func(t *testing.T, o gallery.Options) {
				assert.Equal(t, gallery.LeftToRight, o.SlideshowDirection)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.config.GalleryOptions())
		})
	}
}

func TestGetMediaConfig_Defaults(t *testing.T) {
	cfg := Config{}
	media := cfg.GetMediaConfig()

	if want := filepath.Join(xdg.CacheHome, "lightbox"); media.CacheDir != want {
		t.Errorf("CacheDir = %q, want %q", media.CacheDir, want)
	}
	if media.CacheMaxAge != 30*24*time.Hour {
		t.Errorf("CacheMaxAge = %v, want 720h", media.CacheMaxAge)
	}
	if media.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v, want 15s", media.HTTPTimeout)
	}
	if media.NoCache {
		t.Error("NoCache should default to false")
	}
}
