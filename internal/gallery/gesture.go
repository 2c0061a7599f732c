package gallery

import (
	"math"
	"time"
)

// Point is a single contact position in viewport coordinates.
type Point struct {
	X, Y float64
}

// TouchEvent is one sample of a touch stream.
type TouchEvent struct {
	Points []Point
	// Scale is the pinch scale reported by the platform; 0 and 1 mean none.
	Scale float64
}

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// GesturePhase is the state of the current or last gesture.
//
//	Idle ──start──► Tracking ──end──► Swiped | Closed | SnappedBack
type GesturePhase int

const (
	GestureIdle GesturePhase = iota
	GestureTracking
	GestureSwiped
	GestureClosed
	GestureSnappedBack
)

func (p GesturePhase) String() string {
	switch p {
	case GestureTracking:
		return "tracking"
	case GestureSwiped:
		return "swiped"
	case GestureClosed:
		return "closed"
	case GestureSnappedBack:
		return "snapped-back"
	default:
		return "idle"
	}
}

type gesture struct {
	tracking  bool
	emulated  bool
	start     Point
	startTime time.Time
	delta     Point
	moved     bool
	// decided latches the scroll-vs-swipe decision of the first move.
	decided   bool
	scrolling bool
	phase     GesturePhase
}

// TouchStart begins a gesture. A start while another gesture is being
// tracked is ignored.
func (g *Gallery) TouchStart(ev TouchEvent) {
	if !g.ready() || !g.subscribed || len(ev.Points) == 0 || g.touch.tracking {
		return
	}
	g.touch = gesture{
		tracking:  true,
		start:     ev.Points[0],
		startTime: g.sched.Now(),
		phase:     GestureTracking,
	}
	g.lastDelta = nil
}

// TouchMove drags the slides along with the gesture. It reports whether the
// platform's default scrolling should be suppressed.
func (g *Gallery) TouchMove(ev TouchEvent) bool {
	if !g.ready() || !g.subscribed || !g.touch.tracking || len(ev.Points) == 0 {
		return false
	}
	// One finger swipes only, not pinches.
	if len(ev.Points) > 1 || (ev.Scale != 0 && ev.Scale != 1) {
		return false
	}
	prevent := g.opts.DisableScroll
	t := &g.touch
	p := ev.Points[0]
	t.delta = Point{X: p.X - t.start.X, Y: p.Y - t.start.Y}
	t.moved = true
	dx := t.delta.X
	if !t.decided {
		t.decided = true
		t.scrolling = math.Abs(dx) < math.Abs(t.delta.Y)
	}

	index := g.index
	switch {
	case !t.scrolling:
		prevent = true
		g.stopTimeout()
		var indices []int
		if g.continuous() {
			indices = []int{g.circle(index + 1), index, g.circle(index - 1)}
		} else {
			if g.pastBounds(index, dx) {
				dx /= math.Abs(dx)/g.slideWidth + 1
				t.delta.X = dx
			}
			if index < g.num-1 {
				indices = append(indices, index+1)
			}
			indices = append(indices, index)
			if index > 0 {
				indices = append(indices, index-1)
			}
		}
		if !g.caps.Transform {
			g.strip = motion{toX: float64(index)*-g.slideWidth + dx}
			return prevent
		}
		for _, i := range indices {
			g.translateX(i, dx+g.positions[i], 0)
		}
	case !g.opts.Carousel:
		g.translateY(index, t.delta.Y+g.positions[index], 0)
	}
	return prevent
}

// TouchEnd settles the gesture: commit a swipe, close on a vertical swipe,
// or snap back into place.
func (g *Gallery) TouchEnd() {
	if !g.ready() || !g.subscribed || !g.touch.tracking {
		return
	}
	t := &g.touch
	t.tracking = false
	delta := t.delta
	g.lastDelta = &delta

	index := g.index
	threshold := g.opts.SwipeThreshold
	absDX := math.Abs(delta.X)
	duration := g.settleDuration(absDX)
	validSlide := absDX > threshold
	pastBounds := g.pastBounds(index, delta.X)
	validClose := !validSlide && g.opts.CloseOnSwipeUpOrDown && math.Abs(delta.Y) > threshold
	// 1: right, -1: left
	dir := 1
	if delta.X < 0 {
		dir = -1
	}

	switch {
	case !t.scrolling && validSlide && !pastBounds:
		t.phase = GestureSwiped
		g.commitSwipe(index, dir, duration)
	case !t.scrolling:
		t.phase = GestureSnappedBack
		g.snapBack(index, duration)
	case validClose:
		t.phase = GestureClosed
		g.Close()
	default:
		t.phase = GestureSnappedBack
		g.translateY(index, 0, duration)
	}
	g.logger.Debug("gallery: gesture ended",
		"phase", t.phase.String(), "dx", delta.X, "dy", delta.Y, "index", g.index)
}

// TouchCancel behaves like TouchEnd.
func (g *Gallery) TouchCancel() {
	g.TouchEnd()
}

// settleDuration shortens the settle animation for gestures that already
// traveled most of the slide width.
func (g *Gallery) settleDuration(absDX float64) time.Duration {
	ratio := 0.0
	if g.slideWidth > 0 {
		ratio = absDX / g.slideWidth
	}
	base := float64(g.opts.TransitionDuration.Milliseconds())
	ms := math.Ceil(base * (1 - ratio) / 2)
	// A slide dragged beyond its width still needs an end signal.
	ms = max(ms, 1)
	return time.Duration(ms) * time.Millisecond
}

func (g *Gallery) commitSwipe(index, dir int, duration time.Duration) {
	forward := index + dir
	backward := g.circle(index - dir)
	w := g.slideWidth * float64(dir)
	if !g.caps.Transform {
		g.animate(g.StripOffset(), float64(backward)*-g.slideWidth, duration)
		g.onslide(backward)
		return
	}
	if g.continuous() {
		g.move(g.circle(forward), w, 0)
		g.move(g.circle(index-2*dir), -w, 0)
	} else if forward >= 0 && forward < g.num {
		g.move(forward, w, 0)
	}
	g.move(index, g.positions[index]+w, duration)
	g.move(backward, g.positions[backward]+w, duration)
	g.onslide(backward)
}

func (g *Gallery) snapBack(index int, duration time.Duration) {
	w := g.slideWidth
	if !g.caps.Transform {
		g.animate(g.StripOffset(), float64(index)*-w, duration)
		return
	}
	if g.continuous() {
		g.move(g.circle(index-1), -w, duration)
		g.move(index, 0, duration)
		g.move(g.circle(index+1), w, duration)
		return
	}
	if index > 0 {
		g.move(index-1, -w, duration)
	}
	g.move(index, 0, duration)
	if index < g.num-1 {
		g.move(index+1, w, duration)
	}
}

// emulating reports whether pointer input is turned into gestures.
func (g *Gallery) emulating() bool {
	return g.ready() && g.subscribed && g.opts.EmulateTouchEvents && !g.caps.Touch
}

// PointerDown starts an emulated gesture for a left-button press. It
// reports whether the press was consumed.
func (g *Gallery) PointerDown(p Point, b Button) bool {
	if !g.emulating() || b != ButtonLeft || g.touch.tracking {
		return false
	}
	g.TouchStart(TouchEvent{Points: []Point{p}})
	g.touch.emulated = true
	return true
}

// PointerMove continues an emulated gesture.
func (g *Gallery) PointerMove(p Point) bool {
	if !g.emulating() || !g.touch.tracking || !g.touch.emulated {
		return false
	}
	return g.TouchMove(TouchEvent{Points: []Point{p}})
}

// PointerUp ends an emulated gesture.
func (g *Gallery) PointerUp() {
	if !g.emulating() || !g.touch.tracking || !g.touch.emulated {
		return
	}
	g.TouchEnd()
}

// PointerLeave ends an emulated gesture when the pointer leaves the viewport.
func (g *Gallery) PointerLeave() {
	g.PointerUp()
}

// Dragging reports whether a gesture has moved the slides and not yet ended.
func (g *Gallery) Dragging() bool {
	return g.touch.tracking && g.touch.moved
}

// GesturePhase returns the state of the current or last gesture.
func (g *Gallery) GesturePhase() GesturePhase {
	return g.touch.phase
}

// GestureDelta returns the (possibly damped) displacement of the current or
// last gesture.
func (g *Gallery) GestureDelta() Point {
	return g.touch.delta
}
