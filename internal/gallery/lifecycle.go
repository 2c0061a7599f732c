package gallery

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Content is whatever a factory materializes for a slide. Content that
// implements io.Closer is closed when the slide is unloaded.
type Content any

// ContentFactory materializes the content of one item. It must call done
// exactly once when the content finished loading or failed; done may be
// called from any goroutine, before or after Create returns. An error
// returned by Create is final and done need not be called.
type ContentFactory interface {
	Create(ctx context.Context, item Descriptor, done func(error)) (Content, error)
}

// FactoryFunc adapts a function to ContentFactory.
type FactoryFunc func(ctx context.Context, item Descriptor, done func(error)) (Content, error)

// Create implements ContentFactory.
func (f FactoryFunc) Create(ctx context.Context, item Descriptor, done func(error)) (Content, error) {
	return f(ctx, item, done)
}

// DefaultKind is the factory key used for items without a registered type.
const DefaultKind = "image"

// PreloadWindow returns the indices kept materialized around index, nearest
// first: index, +1, -1, +2, -2, ... Out-of-range indices wrap in continuous
// mode and are skipped otherwise.
func (g *Gallery) PreloadWindow(index int) []int {
	var out []int
	g.iteratePreloadRange(index, func(i int) {
		out = append(out, i)
	})
	return out
}

func (g *Gallery) iteratePreloadRange(index int, fn func(int)) {
	limit := g.opts.PreloadRange*2 + 1
	if g.continuous() {
		limit = min(limit, g.num)
	} else {
		// Steps past an edge are skipped, so walk until both edges are
		// reached or the range is exhausted.
		limit = min(limit, g.num*2+1)
	}
	j := index
	for i := range limit {
		if i%2 == 0 {
			j -= i
		} else {
			j += i
		}
		if j < 0 || j >= g.num {
			if !g.continuous() {
				continue
			}
			j = g.circle(j)
		}
		fn(j)
	}
}

func (g *Gallery) loadElements(index int) {
	g.iteratePreloadRange(index, g.loadElement)
}

func (g *Gallery) loadElement(index int) {
	if index >= len(g.slides) {
		return
	}
	s := g.slides[index]
	if s.state != ContentEmpty {
		return
	}
	// Content kept from a previous opening.
	if s.materialized {
		if s.failed {
			s.state = ContentErrored
		} else {
			s.state = ContentLoaded
		}
		return
	}

	s.state = ContentLoading
	g.epoch++
	s.epoch = g.epoch
	epoch := s.epoch
	desc := g.opts.Properties.Describe(g.items[index])

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	var once sync.Once
	done := func(err error) {
		once.Do(func() {
			g.sched.Post(func() { g.onComplete(index, epoch, desc.URL, err) })
		})
	}

	content, err := g.createContent(ctx, desc, done)
	if err == nil && content == nil {
		err = ErrNoContent
	}
	s.content = content
	s.materialized = true
	if err != nil {
		done(err)
	}
	g.logger.Debug("gallery: loading slide", "index", index, "url", desc.URL, "type", desc.Type)
}

func (g *Gallery) createContent(ctx context.Context, desc Descriptor, done func(error)) (content Content, err error) {
	factory, ok := g.factories[desc.Kind()]
	if !ok {
		factory = g.factories[DefaultKind]
	}
	if factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, desc.Type)
	}
	defer func() {
		if r := recover(); r != nil {
			content, err = nil, fmt.Errorf("content factory panic: %v", r)
		}
	}()
	return factory.Create(ctx, desc, done)
}

// onComplete records a finished load. Completions for a slide that was
// unloaded or reloaded since the request are stale and dropped.
func (g *Gallery) onComplete(index int, epoch uint64, url string, err error) {
	if !g.ready() || index >= len(g.slides) {
		return
	}
	s := g.slides[index]
	if s.epoch != epoch || s.state != ContentLoading {
		g.logger.Debug("gallery: dropping stale completion", "index", index, "epoch", epoch)
		return
	}
	if err != nil {
		s.failed = true
		s.err = &ContentLoadError{Index: index, URL: url, Err: err}
		s.state = ContentErrored
		g.logger.Warn("gallery: slide failed to load", "index", index, "url", url, "error", err)
	} else {
		s.state = ContentLoaded
	}
	// The slideshow waits for the active slide's content.
	if g.interval > 0 && g.index < len(g.slides) && g.slides[g.index] == s {
		g.play(g.interval)
	}
	g.notifySlide(g.opts.Hooks.OnSlideComplete, index, s)
}

// unloadElements drops content that left the preload window when moving
// from oldIndex to newIndex.
func (g *Gallery) unloadElements(oldIndex, newIndex int) {
	r := g.opts.PreloadRange
	g.iteratePreloadRange(oldIndex, func(i int) {
		diff := abs(i - newIndex)
		if diff <= r {
			return
		}
		// In continuous mode the far end is near by wrapping.
		if !g.continuous() || diff+r < g.num {
			g.unloadSlide(i)
		}
	})
}

func (g *Gallery) unloadSlide(index int) {
	if index >= len(g.slides) {
		return
	}
	s := g.slides[index]
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if c, ok := s.content.(io.Closer); ok {
		if err := c.Close(); err != nil {
			g.logger.Warn("gallery: failed to release slide content", "index", index, "error", err)
		}
	}
	s.content = nil
	s.materialized = false
	s.failed = false
	s.err = nil
	s.state = ContentEmpty
}

func (g *Gallery) unloadAllSlides() {
	for i := range g.slides {
		g.unloadSlide(i)
	}
}
