// Package media materializes slide content: it fetches images and audio
// covers, downscales them and draws them into terminal cells.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder for slides
	_ "image/jpeg" // JPEG decoder for slides
	"image/png"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // BMP decoder for slides
	_ "golang.org/x/image/tiff" // TIFF decoder for slides
	_ "golang.org/x/image/webp" // WebP decoder for slides

	"github.com/llehouerou/lightbox/internal/gallery"
)

// DefaultMaxEdge bounds the longest edge of a kept source image in pixels.
const DefaultMaxEdge = 512

// ErrNoLocation is reported for items without any URL or source.
var ErrNoLocation = errors.New("item has no location")

// Picture is slide content that draws itself into terminal cells.
type Picture interface {
	Lines(cols, rows int) []string
}

// Info describes loaded media.
type Info struct {
	Format string
	Width  int
	Height int
	Bytes  int64
	Cached bool
}

// Image is the content of an image slide. It is filled in by a loader
// goroutine and read from the UI, so every access is locked.
type Image struct {
	location string

	mu    sync.Mutex
	src   image.Image
	info  Info
	cols  int
	rows  int
	lines []string
}

// Location returns where the image was loaded from.
func (i *Image) Location() string { return i.location }

// Info returns the media description once loaded.
func (i *Image) Info() Info {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.info
}

// Lines renders the image into cols x rows cells. The result is memoized
// per size.
func (i *Image) Lines(cols, rows int) []string {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.src == nil {
		return nil
	}
	if i.lines == nil || i.cols != cols || i.rows != rows {
		i.lines = RenderHalfBlocks(i.src, cols, rows)
		i.cols, i.rows = cols, rows
	}
	return i.lines
}

// Close releases the pixels.
func (i *Image) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.src = nil
	i.lines = nil
	return nil
}

func (i *Image) set(src image.Image, info Info) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.src = src
	i.info = info
	i.lines = nil
}

// ImageFactory loads image slides.
type ImageFactory struct {
	Fetcher *Fetcher
	Cache   *Cache
	Logger  *slog.Logger
	MaxEdge int
}

// NewImageFactory creates an image factory. cache may be nil.
func NewImageFactory(fetcher *Fetcher, cache *Cache, logger *slog.Logger) *ImageFactory {
	return &ImageFactory{
		Fetcher: fetcher,
		Cache:   cache,
		Logger:  logger,
		MaxEdge: DefaultMaxEdge,
	}
}

// Create implements gallery.ContentFactory. Loading runs on its own
// goroutine and reports through done.
func (f *ImageFactory) Create(ctx context.Context, item gallery.Descriptor, done func(error)) (gallery.Content, error) {
	location := Location(item)
	if location == "" {
		return nil, ErrNoLocation
	}
	img := &Image{location: location}
	go func() {
		done(f.load(ctx, img))
	}()
	return img, nil
}

func (f *ImageFactory) load(ctx context.Context, img *Image) error {
	edge := f.edge()
	if data := f.Cache.Get(img.location, edge); data != nil {
		src, err := png.Decode(bytes.NewReader(data))
		if err == nil {
			b := src.Bounds()
			img.set(src, Info{Format: "png", Width: b.Dx(), Height: b.Dy(), Bytes: int64(len(data)), Cached: true})
			return nil
		}
		f.logger().Warn("media: dropping unreadable cache entry", "url", img.location, "error", err)
	}

	data, err := f.fetcher().Fetch(ctx, img.location)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := f.decode(img, data)
	if err != nil {
		return err
	}

	// Cache what was expensive to get: remote bytes or a large decode.
	b := src.Bounds()
	if f.Cache != nil && (isRemote(img.location) || b.Dx() > edge || b.Dy() > edge) {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img.srcLocked()); err == nil {
			if err := f.Cache.Put(img.location, edge, buf.Bytes()); err != nil {
				f.logger().Warn("media: cache write failed", "url", img.location, "error", err)
			}
		}
	}
	return nil
}

// decode decodes data and stores the downscaled result in img. It returns
// the full-size image.
func (f *ImageFactory) decode(img *Image, data []byte) (image.Image, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", img.location, err)
	}
	b := src.Bounds()
	edge := uint(f.edge()) //nolint:gosec // edge is a small positive constant
	img.set(resize.Thumbnail(edge, edge, src, resize.Lanczos3), Info{
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
		Bytes:  int64(len(data)),
	})
	return src, nil
}

func (i *Image) srcLocked() image.Image {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.src
}

func (f *ImageFactory) edge() int {
	if f.MaxEdge <= 0 {
		return DefaultMaxEdge
	}
	return f.MaxEdge
}

func (f *ImageFactory) fetcher() *Fetcher {
	if f.Fetcher == nil {
		return &Fetcher{}
	}
	return f.Fetcher
}

func (f *ImageFactory) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return f.Logger
}

// Location picks the address to load for an item: its URL, else the first
// responsive source, else the widest srcset candidate.
func Location(item gallery.Descriptor) string {
	if item.URL != "" {
		return item.URL
	}
	for _, s := range item.Sources {
		if s.URL != "" {
			return s.URL
		}
		if u := widestCandidate(s.Srcset); u != "" {
			return u
		}
	}
	return widestCandidate(item.Srcset)
}

// widestCandidate returns the srcset candidate with the largest descriptor.
func widestCandidate(srcset string) string {
	best, bestSize := "", -1.0
	for _, candidate := range strings.Split(srcset, ",") {
		fields := strings.Fields(candidate)
		if len(fields) == 0 {
			continue
		}
		size := 1.0
		if len(fields) > 1 {
			if n, err := strconv.ParseFloat(strings.TrimRight(fields[1], "wx"), 64); err == nil {
				size = n
			}
		}
		if size > bestSize {
			best, bestSize = fields[0], size
		}
	}
	return best
}

func isRemote(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}
