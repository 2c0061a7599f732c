package gallery

import (
	"context"
	"time"
)

// LogicalState is a slide's role relative to the current index.
type LogicalState int

const (
	SlideInert LogicalState = iota
	SlideActive
	SlidePrev
	SlideNext
)

func (s LogicalState) String() string {
	switch s {
	case SlideActive:
		return "active"
	case SlidePrev:
		return "prev"
	case SlideNext:
		return "next"
	default:
		return "inert"
	}
}

// ContentState tracks a slide's materialized content.
type ContentState int

const (
	ContentEmpty ContentState = iota
	ContentLoading
	ContentLoaded
	ContentErrored
)

func (s ContentState) String() string {
	switch s {
	case ContentLoading:
		return "loading"
	case ContentLoaded:
		return "loaded"
	case ContentErrored:
		return "errored"
	default:
		return "empty"
	}
}

// settled reports whether loading finished, successfully or not.
func (s ContentState) settled() bool {
	return s == ContentLoaded || s == ContentErrored
}

// Slide is the surface bound to one list index. Slides persist for the
// lifetime of their index; only their content comes and goes.
type Slide struct {
	index int

	active bool
	prev   bool
	next   bool
	hidden bool

	state ContentState
	// materialized is true while content is attached, even if loading failed.
	materialized bool
	failed       bool
	content      Content
	err          error
	epoch        uint64
	cancel       context.CancelFunc

	motion   motion
	endTimer Timer
}

func newSlide(index int) *Slide {
	return &Slide{index: index, hidden: true}
}

// Index returns the list index the slide is bound to.
func (s *Slide) Index() int { return s.index }

// State returns the slide's logical role.
func (s *Slide) State() LogicalState {
	switch {
	case s.active:
		return SlideActive
	case s.prev:
		return SlidePrev
	case s.next:
		return SlideNext
	default:
		return SlideInert
	}
}

// Hidden reports whether the slide is hidden from assistive output.
func (s *Slide) Hidden() bool { return s.hidden }

// ContentState returns the state of the slide's content.
func (s *Slide) ContentState() ContentState { return s.state }

// Content returns the materialized content, or nil.
func (s *Slide) Content() Content { return s.content }

// Err returns the load error of an errored slide.
func (s *Slide) Err() error { return s.err }

// motion is a linear translate from one point to another.
type motion struct {
	fromX, fromY float64
	toX, toY     float64
	start        time.Time
	duration     time.Duration
}

func (m motion) at(now time.Time) (x, y float64) {
	if m.duration <= 0 {
		return m.toX, m.toY
	}
	elapsed := now.Sub(m.start)
	if elapsed >= m.duration {
		return m.toX, m.toY
	}
	if elapsed <= 0 {
		return m.fromX, m.fromY
	}
	p := float64(elapsed) / float64(m.duration)
	return m.fromX + (m.toX-m.fromX)*p, m.fromY + (m.toY-m.fromY)*p
}

func (m motion) settled(now time.Time) bool {
	return m.duration <= 0 || now.Sub(m.start) >= m.duration
}
