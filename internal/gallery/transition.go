package gallery

import (
	"math"
	"time"
)

// offsetTick is the tween interval of the strip-offset fallback.
const offsetTick = 4 * time.Millisecond

// Capabilities describes what the host can render. It is detected once and
// handed to the engine at construction.
type Capabilities struct {
	// Transform means each slide can be translated independently with its
	// own transition. Without it the engine animates one shared strip offset.
	Transform bool
	// Touch means the host delivers native touch events; pointer events are
	// then not turned into emulated gestures.
	Touch bool
}

// DefaultCapabilities is a transform-capable host without native touch.
func DefaultCapabilities() Capabilities {
	return Capabilities{Transform: true}
}

// Slide navigates to index to. A zero duration uses the configured
// transition duration. Navigating to the current index, or in a gallery of
// one, does nothing.
func (g *Gallery) Slide(to int, duration time.Duration) {
	if !g.ready() || !g.subscribed {
		return
	}
	g.stopTimeout()
	index := g.index
	if index == to || g.num == 1 {
		return
	}
	if duration <= 0 {
		duration = g.opts.TransitionDuration
	}
	if !g.caps.Transform {
		to = g.circle(to)
		if to == index {
			return
		}
		g.animate(float64(index)*-g.slideWidth, float64(to)*-g.slideWidth, duration)
		g.onslide(to)
		return
	}

	if g.circle(to) == index {
		return
	}
	if !g.continuous() {
		to = g.circle(to)
	}
	// 1: backward, -1: forward
	dir := direction(index, to)
	if g.continuous() {
		natural := dir
		// Travel the way the target actually sits: a slide to the right
		// means moving forward even if its index is lower.
		switch pos := g.positions[g.circle(to)]; {
		case pos > 0:
			dir = -1
		case pos < 0:
			dir = 1
		}
		if dir != natural {
			to = -dir*g.num + to
		}
	}
	w := g.slideWidth * float64(dir)
	diff := abs(index-to) - 1
	// Park every slide in between on the far side so the outgoing and
	// incoming slides cross nothing.
	for diff > 0 {
		diff--
		g.move(g.circle(max(to, index)-diff-1), w, 0)
	}
	to = g.circle(to)
	g.move(index, w, duration)
	g.move(to, 0, duration)
	if g.continuous() {
		g.move(g.circle(to-dir), -w, 0)
	}
	g.onslide(to)
}

// animate tweens the strip offset from one value to another. Tweens are
// never canceled: an overwritten tween still runs and signals its end.
func (g *Gallery) animate(from, to float64, duration time.Duration) {
	if duration <= 0 {
		g.strip = motion{toX: to}
		return
	}
	start := g.sched.Now()
	g.tweens++
	var step func()
	step = func() {
		elapsed := g.sched.Now().Sub(start)
		if elapsed > duration {
			g.tweens--
			g.strip = motion{toX: to}
			g.onTransitionEnd(nil)
			return
		}
		progress := math.Floor(float64(elapsed)/float64(duration)*100) / 100
		g.strip = motion{toX: (to-from)*progress + from}
		g.sched.AfterFunc(offsetTick, step)
	}
	g.sched.AfterFunc(offsetTick, step)
}

// onTransitionEnd handles the end of a slide transition. target is nil for
// the synthetic end of a strip tween or of the opening sequence.
func (g *Gallery) onTransitionEnd(target *Slide) {
	if !g.ready() || !g.subscribed || g.index >= len(g.slides) {
		return
	}
	slide := g.slides[g.index]
	if target != nil && target != slide {
		return
	}
	if g.interval > 0 {
		g.play(g.interval)
	}
	index := g.index
	g.notifySlide(g.opts.Hooks.OnSlideEnd, index, slide)
}

// Animating reports whether any slide or the strip is still moving.
func (g *Gallery) Animating() bool {
	if g.tweens > 0 {
		return true
	}
	now := g.sched.Now()
	for _, s := range g.slides {
		if !s.motion.settled(now) {
			return true
		}
	}
	return false
}
