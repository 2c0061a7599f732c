package gallery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreloadWindow(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		rng        int
		continuous bool
		index      int
		want       []int
	}{
		{"continuous wraps", 10, 2, true, 0, []int{0, 1, 9, 2, 8}},
		{"linear skips below zero", 10, 2, false, 0, []int{0, 1, 2}},
		{"linear skips past end", 10, 2, false, 9, []int{9, 8, 7}},
		{"interior", 10, 2, false, 5, []int{5, 6, 4, 7, 3}},
		{"zero range", 10, 0, true, 3, []int{3}},
		{"range larger than list", 3, 5, true, 0, []int{0, 1, 2}},
		{"linear range larger than list", 3, 5, false, 0, []int{0, 1, 2}},
		{"linear range larger than list from end", 4, 5, false, 3, []int{3, 2, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.count, func(o *Options) {
				o.PreloadRange = tt.rng
				o.Continuous = tt.continuous
			})
			assert.Equal(t, tt.want, h.g.PreloadWindow(tt.index))
		})
	}
}

func TestLoad_WindowFollowsIndex(t *testing.T) {
	h := newHarness(t, 5, func(o *Options) { o.PreloadRange = 1 }).open()

	assert.Equal(t, []string{itemURL(0), itemURL(1), itemURL(4)}, h.factory.urls())
	assert.Equal(t, map[int]ContentState{0: ContentLoaded, 1: ContentLoaded, 4: ContentLoaded}, h.states())

	h.g.Next()
	h.sched.flush()

	assert.Equal(t, map[int]ContentState{0: ContentLoaded, 1: ContentLoaded, 2: ContentLoaded}, h.states())
	assert.Equal(t, 1, h.factory.contents[2].closed, "unloaded content is released")
	assert.Equal(t, 1, h.factory.count(itemURL(4)))
}

func TestLoad_LinearJumpUnloadsFarEnd(t *testing.T) {
	h := newHarness(t, 10, func(o *Options) {
		o.PreloadRange = 1
		o.Continuous = false
	}).open()
	require.Equal(t, map[int]ContentState{0: ContentLoaded, 1: ContentLoaded}, h.states())

	h.g.Slide(9, 0)
	h.settle()

	assert.Equal(t, 9, h.g.Index())
	assert.Equal(t, map[int]ContentState{8: ContentLoaded, 9: ContentLoaded}, h.states())
}

func TestLoad_LinearSmallListLoadsWholeRange(t *testing.T) {
	h := newHarness(t, 3, func(o *Options) {
		o.PreloadRange = 5
		o.Continuous = false
	}).open()

	assert.Equal(t, map[int]ContentState{0: ContentLoaded, 1: ContentLoaded, 2: ContentLoaded}, h.states())
}

func TestLoad_ReentryReloads(t *testing.T) {
	h := newHarness(t, 5, func(o *Options) { o.PreloadRange = 1 }).open()

	h.g.Next()
	h.g.Prev()
	h.sched.flush()

	assert.Equal(t, 2, h.factory.count(itemURL(4)))
	assert.Equal(t, ContentLoaded, h.g.SlideAt(4).ContentState())
}

func TestLoad_KeepsContentWhenUnloadingDisabled(t *testing.T) {
	h := newHarness(t, 5, func(o *Options) {
		o.PreloadRange = 1
		o.UnloadElements = false
	}).open()

	h.g.Next()
	h.g.Next()
	h.sched.flush()

	assert.Len(t, h.states(), 5)
	for _, c := range h.factory.contents {
		assert.Zero(t, c.closed)
	}
}

func TestLoad_StaleCompletionDropped(t *testing.T) {
	h := newHarness(t, 5, func(o *Options) { o.PreloadRange = 1 })
	h.factory.auto = false
	h.open()
	require.Equal(t, []string{itemURL(0), itemURL(1), itemURL(4)}, h.factory.urls())

	h.g.Next()
	require.ErrorIs(t, h.factory.requests[2].ctx.Err(), context.Canceled, "unloading cancels the request")

	h.factory.complete(t, itemURL(4), nil)
	h.factory.complete(t, itemURL(0), nil)
	h.sched.flush()

	assert.Equal(t, ContentEmpty, h.g.SlideAt(4).ContentState())
	assert.Equal(t, ContentLoaded, h.g.SlideAt(0).ContentState())
	assert.Equal(t, ContentLoading, h.g.SlideAt(1).ContentState())
}

func TestLoad_CompletionFromAnotherGoroutine(t *testing.T) {
	h := newHarness(t, 3, nil)
	h.factory.auto = false
	h.open()

	done := make(chan struct{})
	go func() {
		h.factory.requests[0].done(nil)
		close(done)
	}()
	<-done
	assert.Equal(t, ContentLoading, h.g.SlideAt(0).ContentState(), "completions only apply on the scheduler")

	h.sched.flush()
	assert.Equal(t, ContentLoaded, h.g.SlideAt(0).ContentState())
}

func TestLoad_DoneCalledTwice(t *testing.T) {
	var completes int
	h := newHarness(t, 3, func(o *Options) {
		o.Hooks.OnSlideComplete = func(*Gallery, int, *Slide) { completes++ }
	})
	h.factory.auto = false
	h.open()

	h.factory.requests[0].done(nil)
	h.factory.requests[0].done(errBroken)
	h.sched.flush()

	assert.Equal(t, ContentLoaded, h.g.SlideAt(0).ContentState())
	assert.Equal(t, 1, completes)
}

func TestLoad_Errored(t *testing.T) {
	var completed []int
	h := newHarness(t, 5, func(o *Options) {
		o.Hooks.OnSlideComplete = func(_ *Gallery, index int, _ *Slide) { completed = append(completed, index) }
	})
	h.factory.fail = map[string]error{itemURL(1): errBroken}
	h.open()

	s := h.g.SlideAt(1)
	assert.Equal(t, ContentErrored, s.ContentState())
	var loadErr *ContentLoadError
	require.ErrorAs(t, s.Err(), &loadErr)
	assert.Equal(t, 1, loadErr.Index)
	assert.Equal(t, itemURL(1), loadErr.URL)
	assert.ErrorIs(t, s.Err(), errBroken)
	assert.Contains(t, completed, 1)

	h.g.Next()
	assert.Equal(t, 1, h.g.Index(), "an errored slide is still navigable")
	h.g.Next()
	assert.Equal(t, 2, h.g.Index())
}

func TestLoad_FactoryFailures(t *testing.T) {
	tests := []struct {
		name    string
		factory ContentFactory
		wantErr error
	}{
		{
			name: "create error",
			factory: FactoryFunc(func(context.Context, Descriptor, func(error)) (Content, error) {
				return nil, errBroken
			}),
			wantErr: errBroken,
		},
		{
			name: "nil content",
			factory: FactoryFunc(func(context.Context, Descriptor, func(error)) (Content, error) {
				return nil, nil
			}),
			wantErr: ErrNoContent,
		},
		{
			name: "panic",
			factory: FactoryFunc(func(context.Context, Descriptor, func(error)) (Content, error) {
				panic("decoder exploded")
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 3, nil, WithFactory(DefaultKind, tt.factory)).open()

			s := h.g.SlideAt(0)
			assert.Equal(t, ContentErrored, s.ContentState())
			require.Error(t, s.Err())
			if tt.wantErr != nil {
				assert.ErrorIs(t, s.Err(), tt.wantErr)
			}
		})
	}
}

func TestLoad_FactoryByType(t *testing.T) {
	var audio []string
	audioFactory := FactoryFunc(func(_ context.Context, d Descriptor, done func(error)) (Content, error) {
		audio = append(audio, d.URL)
		done(nil)
		return d.URL, nil
	})
	sched := newManualScheduler()
	images := &fakeFactory{auto: true}
	items := []Item{
		&Media{URL: "a.png", Type: "image/png"},
		&Media{URL: "b.mp3", Type: "audio/mpeg"},
		&Media{URL: "c.bin", Type: "application/octet-stream"},
	}
	opts := DefaultOptions()
	opts.DisplayTransition = false
	g, err := New(items, &fixedViewport{width: 10, height: 10}, opts,
		WithScheduler(sched), WithFactory("image", images), WithFactory("audio", audioFactory))
	require.NoError(t, err)

	g.Open()
	sched.flush()

	assert.Equal(t, []string{"b.mp3"}, audio)
	assert.ElementsMatch(t, []string{"a.png", "c.bin"}, images.urls(), "unknown types use the default factory")
}

func TestLoad_UnsupportedType(t *testing.T) {
	sched := newManualScheduler()
	opts := DefaultOptions()
	opts.DisplayTransition = false
	g, err := New([]Item{URL("a.png"), URL("b.png"), URL("c.png")}, &fixedViewport{width: 10, height: 10}, opts,
		WithScheduler(sched))
	require.NoError(t, err)

	g.Open()
	sched.flush()

	assert.ErrorIs(t, g.SlideAt(0).Err(), ErrUnsupportedType)
}

func TestSlideshow_WaitsForActiveSlide(t *testing.T) {
	h := newHarness(t, 5, nil)
	h.factory.auto = false
	h.open()

	h.g.Play(time.Second)
	assert.True(t, h.g.Playing())
	assert.False(t, h.g.SlideshowPending(), "nothing scheduled while the active slide loads")

	h.factory.complete(t, itemURL(1), nil)
	h.sched.flush()
	assert.False(t, h.g.SlideshowPending(), "a neighbor finishing does not start the timer")

	h.factory.complete(t, itemURL(0), nil)
	h.sched.flush()
	assert.True(t, h.g.SlideshowPending())

	h.sched.advance(time.Second)
	assert.Equal(t, 1, h.g.Index())

	// Slide 1 already loaded: the slideshow rearms once its transition ends.
	h.sched.advance(500 * time.Millisecond)
	assert.True(t, h.g.SlideshowPending())
	h.sched.advance(time.Second)
	assert.Equal(t, 2, h.g.Index())
	assert.False(t, h.g.SlideshowPending(), "slide 2 is still loading")
}

func TestSlideshow_ErroredSlideDoesNotStall(t *testing.T) {
	h := newHarness(t, 5, nil)
	h.factory.fail = map[string]error{itemURL(0): errBroken}
	h.open()

	h.g.Play(time.Second)
	assert.True(t, h.g.SlideshowPending())

	h.sched.advance(time.Second)
	assert.Equal(t, 1, h.g.Index())
}

func TestClose_ReleasesContent(t *testing.T) {
	h := newHarness(t, 5, func(o *Options) { o.PreloadRange = 1 }).open()

	h.g.Close()

	assert.Nil(t, h.g.SlideAt(0))
	for _, c := range h.factory.contents {
		assert.Equal(t, 1, c.closed, "%s not released", c.url)
	}
}

func TestReopen_KeepsContentWithoutClearSlides(t *testing.T) {
	h := newHarness(t, 5, func(o *Options) {
		o.PreloadRange = 1
		o.ClearSlides = false
	}).open()
	require.Len(t, h.factory.requests, 3)

	h.g.Close()
	h.g.Open()
	h.sched.flush()

	assert.Len(t, h.factory.requests, 3, "content is reused")
	assert.Equal(t, ContentLoaded, h.g.SlideAt(0).ContentState())
}

func TestReopen_ResetsSlideRoles(t *testing.T) {
	h := newHarness(t, 5, func(o *Options) { o.ClearSlides = false }).open()
	h.g.Next()
	h.settle()
	h.g.Next()
	h.settle()
	require.Equal(t, 2, h.g.Index())

	h.g.Close()
	h.g.Open()
	h.sched.flush()

	require.Equal(t, 0, h.g.Index())
	roles := make(map[int]LogicalState)
	for i := range h.g.Count() {
		if st := h.g.SlideAt(i).State(); st != SlideInert {
			roles[i] = st
		}
	}
	assert.Equal(t, map[int]LogicalState{4: SlidePrev, 0: SlideActive, 1: SlideNext}, roles)
	assert.True(t, h.g.SlideAt(2).Hidden())
}

func TestLoad_ErrorsAreTyped(t *testing.T) {
	err := &ContentLoadError{Index: 2, URL: "x.png", Err: errBroken}
	assert.True(t, errors.Is(err, errBroken))
	assert.Equal(t, "gallery: slide 2 (x.png): broken image", err.Error())
}
