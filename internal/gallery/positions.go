package gallery

import "time"

// move records dist as the resting offset of slide index and translates the
// slide there. It is the only writer of the position table.
func (g *Gallery) move(index int, dist float64, duration time.Duration) {
	g.translate(index, dist, 0, duration)
	if index >= 0 && index < len(g.positions) {
		g.positions[index] = dist
	}
}

// translate animates slide index to (x, y). A pending transition end of the
// slide is dropped: the new motion replaces it.
func (g *Gallery) translate(index int, x, y float64, duration time.Duration) {
	if index < 0 || index >= len(g.slides) {
		return
	}
	s := g.slides[index]
	now := g.sched.Now()
	cx, cy := s.motion.at(now)
	if s.endTimer != nil {
		s.endTimer.Stop()
		s.endTimer = nil
	}
	s.motion = motion{fromX: cx, fromY: cy, toX: x, toY: y, start: now, duration: duration}
	if duration <= 0 || (cx == x && cy == y) {
		return
	}
	s.endTimer = g.sched.AfterFunc(duration, func() {
		s.endTimer = nil
		g.onTransitionEnd(s)
	})
}

func (g *Gallery) translateX(index int, x float64, duration time.Duration) {
	g.translate(index, x, 0, duration)
}

func (g *Gallery) translateY(index int, y float64, duration time.Duration) {
	g.translate(index, 0, y, duration)
}

// positionSlide puts slide index at its resting place relative to the
// current index.
func (g *Gallery) positionSlide(index int) {
	if !g.caps.Transform {
		return
	}
	var dist float64
	switch {
	case g.index > index:
		dist = -g.slideWidth
	case g.index < index:
		dist = g.slideWidth
	}
	g.move(index, dist, 0)
}

func (g *Gallery) addSlide(index int) {
	g.slides = append(g.slides, newSlide(index))
}

// resetSlides drops every slide surface and its content.
func (g *Gallery) resetSlides() {
	g.unloadAllSlides()
	for _, s := range g.slides {
		if s.endTimer != nil {
			s.endTimer.Stop()
			s.endTimer = nil
		}
	}
	g.slides = nil
}

// initSlides measures the viewport and lays out every slide. A reload keeps
// slides and content and only repositions.
func (g *Gallery) initSlides(reload bool) {
	clearSlides := false
	if !reload {
		g.positions = make([]float64, g.num)
		// Roles from a previous opening would leave a second active slide.
		for _, s := range g.slides {
			s.state = ContentEmpty
			s.active, s.prev, s.next = false, false, false
			s.hidden = true
		}
		clearSlides = g.opts.ClearSlides || len(g.slides) != g.num
	}
	w, h := g.viewport.Size()
	g.slideWidth = float64(w)
	g.slideHeight = float64(h)
	if clearSlides {
		g.resetSlides()
	}
	for i := range g.num {
		if clearSlides {
			g.addSlide(i)
		}
		g.positionSlide(i)
	}
	g.seedNeighbors()
	if !g.caps.Transform {
		g.strip = motion{toX: float64(g.index) * -g.slideWidth}
	}
}

// seedNeighbors places the wrapped neighbors of the current slide on either
// side of it.
func (g *Gallery) seedNeighbors() {
	if g.continuous() && g.caps.Transform {
		g.move(g.circle(g.index-1), -g.slideWidth, 0)
		g.move(g.circle(g.index+1), g.slideWidth, 0)
	}
}

// Positions returns a copy of the position table: the resting horizontal
// offset of every slide.
func (g *Gallery) Positions() []float64 {
	out := make([]float64, len(g.positions))
	copy(out, g.positions)
	return out
}

// Offset returns where slide index is drawn right now, relative to the
// viewport origin.
func (g *Gallery) Offset(index int) (x, y float64) {
	if index < 0 || index >= len(g.slides) {
		return 0, 0
	}
	now := g.sched.Now()
	x, y = g.slides[index].motion.at(now)
	if !g.caps.Transform {
		sx, _ := g.strip.at(now)
		x += float64(index)*g.slideWidth + sx
	}
	return x, y
}

// StripOffset returns the shared strip offset used when slides cannot be
// transformed individually.
func (g *Gallery) StripOffset() float64 {
	x, _ := g.strip.at(g.sched.Now())
	return x
}

// SlideWidth returns the current slide width.
func (g *Gallery) SlideWidth() float64 { return g.slideWidth }

// SlideHeight returns the current slide height.
func (g *Gallery) SlideHeight() float64 { return g.slideHeight }

// Resize re-measures the viewport and repositions every slide without
// firing navigation callbacks.
func (g *Gallery) Resize() {
	if !g.ready() || !g.subscribed {
		return
	}
	g.initSlides(true)
}
