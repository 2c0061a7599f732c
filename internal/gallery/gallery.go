// Package gallery implements the slide engine of a media lightbox: index
// arithmetic over a wrapping or bounded list, per-slide translate
// bookkeeping, gesture interpretation and the lazy loading of a bounded
// window of items around the current one.
//
// A Gallery is not safe for concurrent use. All input methods and every
// callback handed out through its Scheduler must run on one goroutine.
package gallery

import (
	"io"
	"log/slog"
	"time"
)

// Viewport is the fixed-size area slides are displayed in.
type Viewport interface {
	// Size returns the viewport dimensions; the width is the slide width.
	Size() (width, height int)
}

// ViewportFunc adapts a function to Viewport.
type ViewportFunc func() (width, height int)

// Size implements Viewport.
func (f ViewportFunc) Size() (width, height int) { return f() }

// Key is a key the gallery reacts to.
type Key int

const (
	KeyEnter Key = iota + 1
	KeyEscape
	KeySpace
	KeyLeft
	KeyRight
)

// Target is the role of a clicked element.
type Target int

const (
	TargetNone Target = iota
	TargetToggle
	TargetPrev
	TargetNext
	TargetClose
	TargetPlayPause
	// TargetBackground is the empty area of a slide.
	TargetBackground
	// TargetContent is the content displayed inside a slide.
	TargetContent
)

// Display mirrors the state the host styles the widget with.
type Display struct {
	// Visible is set while the gallery is open and not fading out.
	Visible      bool
	Controls     bool
	Single       bool
	LeftEdge     bool
	RightEdge    bool
	Playing      bool
	ScrollLocked bool
	Title        string
}

// Option customizes a Gallery at construction.
type Option func(*Gallery)

// WithScheduler sets the scheduler callbacks and timers run on.
func WithScheduler(s Scheduler) Option {
	return func(g *Gallery) { g.sched = s }
}

// WithCapabilities sets the host capabilities.
func WithCapabilities(c Capabilities) Option {
	return func(g *Gallery) { g.caps = c }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gallery) { g.logger = l }
}

// WithFactory registers the content factory for a MIME major type such as
// "image" or "audio". DefaultKind is used for unknown types.
func WithFactory(kind string, f ContentFactory) Option {
	return func(g *Gallery) { g.factories[kind] = f }
}

// Gallery is the lightbox controller.
type Gallery struct {
	opts      Options
	caps      Capabilities
	sched     Scheduler
	logger    *slog.Logger
	viewport  Viewport
	factories map[string]ContentFactory
	err       error

	items      []Item
	num        int
	index      int
	continuity Continuity

	slides      []*Slide
	positions   []float64
	strip       motion
	tweens      int
	slideWidth  float64
	slideHeight float64

	touch     gesture
	lastDelta *Point

	timeout  Timer
	interval time.Duration

	epoch      uint64
	opened     bool
	closing    bool
	subscribed bool
	display    Display
}

// New creates a gallery over items displayed in viewport. On a
// ConfigurationError the returned gallery is inert: every method is a no-op.
func New(items []Item, viewport Viewport, opts Options, options ...Option) (*Gallery, error) {
	g := &Gallery{
		caps:      DefaultCapabilities(),
		factories: make(map[string]ContentFactory),
	}
	for _, o := range options {
		o(g)
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if g.sched == nil {
		g.sched = NewLoop()
	}
	switch {
	case len(items) == 0:
		g.err = &ConfigurationError{Err: ErrNoItems}
	case viewport == nil:
		g.err = &ConfigurationError{Err: ErrNoViewport}
	}
	if g.err != nil {
		g.logger.Error("gallery: initialization failed", "error", g.err)
		return g, g.err
	}

	g.items = append([]Item(nil), items...)
	g.num = len(items)
	g.viewport = viewport
	g.opts = opts
	g.opts.normalize()
	switch {
	case g.num < 3 && g.opts.Continuous:
		// Remember the request so adding items can turn it back on.
		g.continuity = ContinuitySuspended
	case g.opts.Continuous:
		g.continuity = ContinuityOn
	default:
		g.continuity = ContinuityOff
	}
	return g, nil
}

func (g *Gallery) ready() bool {
	return g != nil && g.err == nil
}

// Err returns the configuration error of an inert gallery.
func (g *Gallery) Err() error {
	if g == nil {
		return nil
	}
	return g.err
}

// Scheduler returns the scheduler the gallery runs on.
func (g *Gallery) Scheduler() Scheduler { return g.sched }

// Open displays the gallery at the start index, loads the preload window
// and subscribes to input.
func (g *Gallery) Open() {
	if !g.ready() || g.opened {
		return
	}
	g.opened = true
	g.closing = false
	g.initStartIndex()
	if g.num == 1 {
		g.display.Single = true
	}
	if h := g.opts.Hooks.OnOpen; h != nil {
		h(g)
	}
	if g.opts.DisplayTransition {
		g.sched.AfterFunc(g.opts.TransitionDuration, g.handleOpen)
	} else {
		g.sched.Post(g.handleOpen)
	}
	if g.opts.HidePageScrollbars {
		g.display.ScrollLocked = true
	}
	g.initSlides(false)
	g.display.Visible = true
	g.subscribed = true
	g.logger.Info("gallery: opened",
		"items", g.num, "index", g.index, "mode", g.continuity.String(), "transform", g.caps.Transform)

	g.onslide(g.index)
	// The first slide has no transition to wait for.
	g.onTransitionEnd(nil)
	if g.opts.StartSlideshow {
		g.Play(0)
	}
}

func (g *Gallery) handleOpen() {
	if !g.opened || g.closing {
		return
	}
	if h := g.opts.Hooks.OnOpened; h != nil {
		h(g)
	}
}

// Close starts closing the gallery. Input is ignored once closed.
func (g *Gallery) Close() {
	if !g.ready() || !g.opened || g.closing {
		return
	}
	g.closing = true
	if h := g.opts.Hooks.OnClose; h != nil {
		h(g)
	}
	if g.opts.DisplayTransition {
		g.display.Visible = false
		g.sched.AfterFunc(g.opts.TransitionDuration, g.handleClose)
		return
	}
	g.handleClose()
}

func (g *Gallery) handleClose() {
	g.subscribed = false
	g.touch.tracking = false
	g.Pause()
	g.display = Display{Title: g.display.Title}
	if g.opts.ClearSlides {
		g.resetSlides()
	}
	g.opened = false
	g.closing = false
	g.logger.Info("gallery: closed", "index", g.index)
	if h := g.opts.Hooks.OnClosed; h != nil {
		h(g)
	}
}

// IsOpen reports whether the gallery is open or still closing.
func (g *Gallery) IsOpen() bool {
	return g.ready() && g.opened
}

func (g *Gallery) initStartIndex() {
	index := g.opts.Index
	if start := g.opts.StartItem; start != nil {
		for i, item := range g.items {
			if g.opts.Properties.Same(item, start) {
				index = i
				break
			}
		}
	}
	g.index = g.circle(index)
}

// Index returns the current index.
func (g *Gallery) Index() int { return g.index }

// Count returns the number of items.
func (g *Gallery) Count() int { return g.num }

// Continuity returns the current wrap mode.
func (g *Gallery) Continuity() Continuity { return g.continuity }

// SlideAt returns the slide bound to index, or nil.
func (g *Gallery) SlideAt(index int) *Slide {
	if index < 0 || index >= len(g.slides) {
		return nil
	}
	return g.slides[index]
}

// Item returns the item at index, or nil.
func (g *Gallery) Item(index int) Item {
	if index < 0 || index >= len(g.items) {
		return nil
	}
	return g.items[index]
}

// Describe returns the typed properties of the item at index.
func (g *Gallery) Describe(index int) Descriptor {
	return g.opts.Properties.Describe(g.Item(index))
}

// Display returns the current display state.
func (g *Gallery) Display() Display { return g.display }

// Prev moves one slide back unless at the left edge of a linear gallery.
func (g *Gallery) Prev() {
	if g.continuous() || g.index > 0 {
		g.Slide(g.index-1, 0)
	}
}

// Next moves one slide forward unless at the right edge of a linear gallery.
func (g *Gallery) Next() {
	if g.continuous() || g.index < g.num-1 {
		g.Slide(g.index+1, 0)
	}
}

// Play starts the slideshow. A zero interval uses the configured one. The
// next slide is scheduled only once the current slide finished loading.
func (g *Gallery) Play(interval time.Duration) {
	if !g.ready() || !g.subscribed {
		return
	}
	g.play(interval)
}

func (g *Gallery) play(interval time.Duration) {
	step := 1
	if g.opts.SlideshowDirection == RightToLeft {
		step = -1
	}
	next := g.index + step
	g.stopTimeout()
	if interval <= 0 {
		interval = g.opts.SlideshowInterval
	}
	g.interval = interval
	if g.index < len(g.slides) && g.slides[g.index].state.settled() {
		g.timeout = g.sched.AfterFunc(interval, func() {
			g.timeout = nil
			g.Slide(next, g.opts.SlideshowTransitionDuration)
		})
	}
	g.display.Playing = true
}

// Pause stops the slideshow.
func (g *Gallery) Pause() {
	if !g.ready() {
		return
	}
	g.stopTimeout()
	g.interval = 0
	g.display.Playing = false
}

// Playing reports whether the slideshow is active.
func (g *Gallery) Playing() bool {
	return g.interval > 0
}

// SlideshowPending reports whether an automatic slide is scheduled.
func (g *Gallery) SlideshowPending() bool {
	return g.timeout != nil
}

// ToggleSlideshow plays or pauses the slideshow.
func (g *Gallery) ToggleSlideshow() {
	if g.interval == 0 {
		g.Play(0)
	} else {
		g.Pause()
	}
}

// ToggleControls shows or hides the controls.
func (g *Gallery) ToggleControls() {
	if !g.ready() {
		return
	}
	g.display.Controls = !g.display.Controls
}

func (g *Gallery) stopTimeout() {
	if g.timeout != nil {
		g.timeout.Stop()
		g.timeout = nil
	}
}

// Add appends items. Slides already laid out keep their positions.
func (g *Gallery) Add(items ...Item) {
	if !g.ready() || len(items) == 0 {
		return
	}
	old := g.num
	g.items = append(g.items, items...)
	g.num = len(g.items)
	if g.num > 2 && g.continuity == ContinuitySuspended {
		g.continuity = ContinuityOn
		g.display.LeftEdge = false
	}
	g.display.RightEdge = false
	g.display.Single = false
	if !g.opened || len(g.slides) != old {
		return
	}
	g.positions = append(g.positions, make([]float64, g.num-old)...)
	for i := old; i < g.num; i++ {
		g.addSlide(i)
		g.positionSlide(i)
	}
	g.seedNeighbors()
	g.updateActiveSlide(g.index, g.index)
	g.loadElements(g.index)
	g.logger.Debug("gallery: items added", "added", len(items), "count", g.num)
}

// KeyDown handles a key press. It reports whether the key was consumed.
func (g *Gallery) KeyDown(k Key) bool {
	if !g.ready() || !g.subscribed {
		return false
	}
	switch k {
	case KeyEnter:
		if g.opts.ToggleControlsOnEnter {
			g.ToggleControls()
			return true
		}
	case KeyEscape:
		if g.opts.CloseOnEscape {
			g.Close()
			return true
		}
	case KeySpace:
		if g.opts.ToggleSlideshowOnSpace {
			g.ToggleSlideshow()
			return true
		}
	case KeyLeft:
		if g.opts.EnableKeyboardNavigation {
			g.Prev()
			return true
		}
	case KeyRight:
		if g.opts.EnableKeyboardNavigation {
			g.Next()
			return true
		}
	}
	return false
}

// Click routes a click by the role of its target. A click that ends an
// emulated drag is swallowed. It reports whether the click was consumed.
func (g *Gallery) Click(target Target) bool {
	if !g.ready() || !g.subscribed {
		return false
	}
	if d := g.lastDelta; g.opts.EmulateTouchEvents && d != nil {
		g.lastDelta = nil
		th := g.opts.SwipeThreshold
		if d.X > th || d.X < -th || d.Y > th || d.Y < -th {
			return false
		}
	}
	switch target {
	case TargetToggle:
		g.ToggleControls()
	case TargetPrev:
		g.Prev()
	case TargetNext:
		g.Next()
	case TargetClose:
		g.Close()
	case TargetPlayPause:
		g.ToggleSlideshow()
	case TargetBackground:
		switch {
		case g.opts.CloseOnSlideClick:
			g.Close()
		case g.opts.ToggleControlsOnSlideClick:
			g.ToggleControls()
		default:
			return false
		}
	case TargetContent:
		if !g.opts.ToggleControlsOnSlideClick {
			return false
		}
		g.ToggleControls()
	default:
		return false
	}
	return true
}

// AddressChanged handles the host's navigation signal.
func (g *Gallery) AddressChanged() {
	if g.ready() && g.subscribed && g.opts.CloseOnHashChange {
		g.Close()
	}
}

// onslide commits index as the current one and loads its window.
func (g *Gallery) onslide(index int) {
	g.handleSlide(g.index, index)
	g.index = index
	g.notifySlide(g.opts.Hooks.OnSlide, index, g.slides[index])
}

func (g *Gallery) handleSlide(oldIndex, newIndex int) {
	if !g.continuous() {
		g.updateEdges(newIndex)
	}
	g.updateActiveSlide(oldIndex, newIndex)
	g.loadElements(newIndex)
	if g.opts.UnloadElements {
		g.unloadElements(oldIndex, newIndex)
	}
	g.setTitle(newIndex)
}

func (g *Gallery) updateActiveSlide(oldIndex, newIndex int) {
	for _, u := range []struct {
		index int
		on    bool
	}{{oldIndex, false}, {newIndex, true}} {
		g.slides[u.index].active = u.on
		if i := g.circle(u.index - 1); g.continuous() || i < u.index {
			g.slides[i].prev = u.on
		}
		if i := g.circle(u.index + 1); g.continuous() || i > u.index {
			g.slides[i].next = u.on
		}
	}
	g.slides[oldIndex].hidden = true
	g.slides[newIndex].hidden = false
}

func (g *Gallery) setTitle(index int) {
	d := g.Describe(index)
	g.display.Title = d.Title
	if g.display.Title == "" {
		g.display.Title = d.AltText
	}
}

// notifySlide runs a slide hook on the scheduler after the current call.
func (g *Gallery) notifySlide(fn func(*Gallery, int, *Slide), index int, s *Slide) {
	if fn == nil {
		return
	}
	g.sched.Post(func() { fn(g, index, s) })
}
