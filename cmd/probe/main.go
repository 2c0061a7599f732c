// Probe loads every item of a gallery without the viewer and prints what was
// found. Loading goes through the image cache, so it also warms it.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/lightbox/internal/config"
	"github.com/llehouerou/lightbox/internal/gallery"
	"github.com/llehouerou/lightbox/internal/manifest"
	"github.com/llehouerou/lightbox/internal/media"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: probe <image|audio|directory|url|manifest.yaml>...")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	mc := cfg.GetMediaConfig()

	items, title, err := manifest.FromArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}
	if title != "" {
		log.Printf("%s: %d items", title, len(items))
	}

	var cache *media.Cache
	if !mc.NoCache {
		if cache, err = media.NewCache(mc.CacheDir, mc.CacheMaxAge); err != nil {
			log.Printf("Cache disabled: %v", err)
		}
	}
	fetcher := &media.Fetcher{Client: &http.Client{Timeout: mc.HTTPTimeout}}
	factories := map[string]gallery.ContentFactory{
		"image": media.NewImageFactory(fetcher, cache, nil),
		"audio": &media.AudioFactory{Fetcher: fetcher},
	}
	accessor := cfg.GalleryOptions().Properties

	failed := 0
	for i, item := range items {
		d := accessor.Describe(item)
		start := time.Now()
		content, err := load(factories, d, mc.HTTPTimeout)
		if err != nil {
			failed++
			fmt.Printf("%3d  %-10s  %s  error: %v\n", i+1, d.Type, d.URL, err)
			continue
		}
		fmt.Printf("%3d  %-10s  %s  %s (%s)\n", i+1, d.Type, d.URL, summary(content), time.Since(start).Round(time.Millisecond))
	}
	if failed > 0 {
		log.Fatalf("%d of %d items failed to load", failed, len(items))
	}
}

// load runs the factory for d and waits for it to finish.
func load(factories map[string]gallery.ContentFactory, d gallery.Descriptor, timeout time.Duration) (gallery.Content, error) {
	f, ok := factories[d.Kind()]
	if !ok {
		f = factories[gallery.DefaultKind]
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	content, err := f.Create(ctx, d, func(err error) { done <- err })
	if err != nil {
		return nil, err
	}
	select {
	case err := <-done:
		return content, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func summary(c gallery.Content) string {
	switch c := c.(type) {
	case *media.Track:
		s := c.Caption()
		if c.HasCover() {
			s += " [cover]"
		}
		return s
	case *media.Image:
		info := c.Info()
		s := fmt.Sprintf("%s %dx%d", info.Format, info.Width, info.Height)
		if info.Bytes > 0 {
			s += " " + humanize.Bytes(uint64(info.Bytes)) //nolint:gosec // checked positive
		}
		if info.Cached {
			s += " cached"
		}
		return s
	default:
		return fmt.Sprintf("%T", c)
	}
}
