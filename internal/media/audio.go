package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/dhowden/tag"
	"github.com/nfnt/resize"

	"github.com/llehouerou/lightbox/internal/gallery"
)

// Track is the content of an audio slide: its tags and, when the file
// embeds one, its cover.
type Track struct {
	Cover *Image

	mu     sync.Mutex
	title  string
	artist string
	album  string
	cover  bool
}

// Caption returns "artist - title", falling back to whatever is known.
func (t *Track) Caption() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	parts := make([]string, 0, 2)
	if t.artist != "" {
		parts = append(parts, t.artist)
	}
	if t.title != "" {
		parts = append(parts, t.title)
	}
	return strings.Join(parts, " - ")
}

// Album returns the album tag.
func (t *Track) Album() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.album
}

// HasCover reports whether the file embeds a picture.
func (t *Track) HasCover() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cover
}

// Lines draws the cover, or nothing if there is none.
func (t *Track) Lines(cols, rows int) []string {
	return t.Cover.Lines(cols, rows)
}

// Info describes the cover.
func (t *Track) Info() Info {
	return t.Cover.Info()
}

// Close releases the cover.
func (t *Track) Close() error {
	return t.Cover.Close()
}

// AudioFactory loads audio slides by reading their tags.
type AudioFactory struct {
	Fetcher *Fetcher
	MaxEdge int
}

// Create implements gallery.ContentFactory.
func (f *AudioFactory) Create(ctx context.Context, item gallery.Descriptor, done func(error)) (gallery.Content, error) {
	location := Location(item)
	if location == "" {
		return nil, ErrNoLocation
	}
	t := &Track{Cover: &Image{location: location}}
	t.title = item.Title
	go func() {
		done(f.load(ctx, t))
	}()
	return t, nil
}

func (f *AudioFactory) load(ctx context.Context, t *Track) error {
	fetcher := f.Fetcher
	if fetcher == nil {
		fetcher = &Fetcher{}
	}
	data, err := fetcher.Fetch(ctx, t.Cover.location)
	if err != nil {
		return err
	}

	m, err := tag.ReadFrom(bytes.NewReader(data))
	if errors.Is(err, tag.ErrNoTagsFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read tags: %w", err)
	}

	t.mu.Lock()
	if m.Title() != "" {
		t.title = m.Title()
	}
	t.artist = m.Artist()
	t.album = m.Album()
	t.mu.Unlock()

	pic := m.Picture()
	if pic == nil {
		return nil
	}
	src, format, err := image.Decode(bytes.NewReader(pic.Data))
	if err != nil {
		return nil //nolint:nilerr // a broken cover is ignored
	}

	edge := uint(f.MaxEdge) //nolint:gosec // small positive value
	if edge == 0 {
		edge = DefaultMaxEdge
	}
	b := src.Bounds()
	t.Cover.set(resize.Thumbnail(edge, edge, src, resize.Lanczos3), Info{
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
		Bytes:  int64(len(pic.Data)),
	})
	t.mu.Lock()
	t.cover = true
	t.mu.Unlock()
	return nil
}
