package gallery

import "time"

// SlideshowDirection is the direction automatic slides move in.
type SlideshowDirection string

const (
	LeftToRight SlideshowDirection = "ltr"
	RightToLeft SlideshowDirection = "rtl"
)

// Continuity is the wrap-around state of the gallery.
type Continuity int

const (
	// ContinuityOff is linear mode: first and last slides are hard edges.
	ContinuityOff Continuity = iota
	// ContinuityOn wraps from last to first and vice versa.
	ContinuityOn
	// ContinuitySuspended was requested but needs at least three items.
	// It behaves like ContinuityOff until enough items are added.
	ContinuitySuspended
)

func (c Continuity) String() string {
	switch c {
	case ContinuityOn:
		return "continuous"
	case ContinuitySuspended:
		return "suspended"
	default:
		return "linear"
	}
}

// Hooks are the lifecycle callbacks. Each receives the gallery instance.
type Hooks struct {
	// OnOpen runs synchronously when the gallery starts opening.
	OnOpen func(g *Gallery)
	// OnOpened runs once the display transition has completed.
	OnOpened func(g *Gallery)
	// OnSlide runs after every index change.
	OnSlide func(g *Gallery, index int, slide *Slide)
	// OnSlideEnd runs when the active slide's transition has ended.
	OnSlideEnd func(g *Gallery, index int, slide *Slide)
	// OnSlideComplete runs when a slide's content finished loading or failed.
	OnSlideComplete func(g *Gallery, index int, slide *Slide)
	// OnClose runs synchronously when the gallery starts closing.
	OnClose func(g *Gallery)
	// OnClosed runs once the gallery is fully closed.
	OnClosed func(g *Gallery)
}

// Options configures a Gallery. Start from DefaultOptions.
type Options struct {
	// Index is the start index; StartItem, when set, takes precedence and is
	// matched by identity or URL.
	Index     int
	StartItem Item

	// PreloadRange is the number of items loaded on each side of the current one.
	PreloadRange int

	TransitionDuration          time.Duration
	SlideshowTransitionDuration time.Duration
	SlideshowInterval           time.Duration
	SlideshowDirection          SlideshowDirection

	// SwipeThreshold is the minimum drag distance committing a swipe or close.
	SwipeThreshold float64

	Continuous bool
	Carousel   bool

	UnloadElements    bool
	ClearSlides       bool
	DisplayTransition bool
	StartSlideshow    bool

	ToggleControlsOnEnter      bool
	ToggleControlsOnSlideClick bool
	ToggleSlideshowOnSpace     bool
	EnableKeyboardNavigation   bool
	CloseOnEscape              bool
	CloseOnSlideClick          bool
	CloseOnSwipeUpOrDown       bool
	CloseOnHashChange          bool
	EmulateTouchEvents         bool
	HidePageScrollbars         bool
	DisableScroll              bool

	Properties Accessor
	Hooks      Hooks
}

// DefaultOptions returns the stock lightbox configuration.
func DefaultOptions() Options {
	return Options{
		PreloadRange:                2,
		TransitionDuration:          300 * time.Millisecond,
		SlideshowTransitionDuration: 500 * time.Millisecond,
		SlideshowInterval:           5 * time.Second,
		SlideshowDirection:          LeftToRight,
		SwipeThreshold:              20,
		Continuous:                  true,
		UnloadElements:              true,
		ClearSlides:                 true,
		DisplayTransition:           true,
		ToggleControlsOnEnter:       true,
		ToggleControlsOnSlideClick:  true,
		ToggleSlideshowOnSpace:      true,
		EnableKeyboardNavigation:    true,
		CloseOnEscape:               true,
		CloseOnSlideClick:           true,
		CloseOnSwipeUpOrDown:        true,
		CloseOnHashChange:           true,
		EmulateTouchEvents:          true,
		HidePageScrollbars:          true,
		DisableScroll:               true,
		Properties:                  DefaultAccessor(),
	}
}

// CarouselOptions returns DefaultOptions with the carousel preset applied.
func CarouselOptions() Options {
	o := DefaultOptions()
	o.ApplyCarouselPreset()
	return o
}

// ApplyCarouselPreset switches o to an embedded carousel: no scroll lock,
// no keyboard or close shortcuts, slideshow on open.
func (o *Options) ApplyCarouselPreset() {
	o.Carousel = true
	o.HidePageScrollbars = false
	o.ToggleControlsOnEnter = false
	o.ToggleSlideshowOnSpace = false
	o.EnableKeyboardNavigation = false
	o.CloseOnEscape = false
	o.CloseOnSlideClick = false
	o.CloseOnSwipeUpOrDown = false
	o.CloseOnHashChange = false
	o.DisableScroll = false
	o.StartSlideshow = true
}

func (o *Options) normalize() {
	def := DefaultOptions()
	if o.PreloadRange < 0 {
		o.PreloadRange = 0
	}
	if o.TransitionDuration <= 0 {
		o.TransitionDuration = def.TransitionDuration
	}
	if o.SlideshowTransitionDuration <= 0 {
		o.SlideshowTransitionDuration = o.TransitionDuration
	}
	if o.SlideshowInterval <= 0 {
		o.SlideshowInterval = def.SlideshowInterval
	}
	if o.SlideshowDirection != RightToLeft {
		o.SlideshowDirection = LeftToRight
	}
	if o.SwipeThreshold <= 0 {
		o.SwipeThreshold = def.SwipeThreshold
	}
	p := &o.Properties
	for _, f := range []struct {
		dst *string
		def string
	}{
		{&p.URLProperty, PropURL},
		{&p.TypeProperty, PropType},
		{&p.TitleProperty, PropTitle},
		{&p.AltTextProperty, PropAltText},
		{&p.SrcsetProperty, PropSrcset},
		{&p.SizesProperty, PropSizes},
		{&p.SourcesProperty, PropSources},
	} {
		if *f.dst == "" {
			*f.dst = f.def
		}
	}
}
