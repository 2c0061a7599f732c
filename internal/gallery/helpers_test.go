package gallery

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testWidth = 300

// manualScheduler is a virtual clock. Posted callbacks run on flush, timers
// run in due order on advance.
type manualScheduler struct {
	now    time.Time
	seq    int
	timers []*manualTimer
	posted []func()
}

type manualTimer struct {
	at      time.Time
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{now: time.Unix(1_700_000_000, 0)}
}

func (s *manualScheduler) Now() time.Time { return s.now }

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.seq++
	t := &manualTimer{at: s.now.Add(d), seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) Post(fn func()) {
	s.posted = append(s.posted, fn)
}

func (s *manualScheduler) flush() {
	for len(s.posted) > 0 {
		fn := s.posted[0]
		s.posted = s.posted[1:]
		fn()
	}
}

func (s *manualScheduler) advance(d time.Duration) {
	target := s.now.Add(d)
	s.flush()
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		if next.at.After(s.now) {
			s.now = next.at
		}
		next.fired = true
		next.fn()
		s.flush()
	}
	s.now = target
	s.compact()
}

func (s *manualScheduler) nextDue(target time.Time) *manualTimer {
	var best *manualTimer
	for _, t := range s.timers {
		if t.stopped || t.fired || t.at.After(target) {
			continue
		}
		if best == nil || t.at.Before(best.at) || (t.at.Equal(best.at) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *manualScheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.timers = live
}

type fixedViewport struct {
	width, height int
}

func (v *fixedViewport) Size() (int, int) { return v.width, v.height }

type fakeContent struct {
	url    string
	closed int
}

func (c *fakeContent) Close() error {
	c.closed++
	return nil
}

type fakeRequest struct {
	ctx  context.Context
	item Descriptor
	done func(error)
}

// fakeFactory records requests. With auto set, it completes each request
// synchronously, failing the URLs listed in fail.
type fakeFactory struct {
	auto     bool
	fail     map[string]error
	requests []fakeRequest
	contents []*fakeContent
}

func (f *fakeFactory) Create(ctx context.Context, item Descriptor, done func(error)) (Content, error) {
	f.requests = append(f.requests, fakeRequest{ctx: ctx, item: item, done: done})
	c := &fakeContent{url: item.URL}
	f.contents = append(f.contents, c)
	if f.auto {
		done(f.fail[item.URL])
	}
	return c, nil
}

func (f *fakeFactory) urls() []string {
	out := make([]string, 0, len(f.requests))
	for _, r := range f.requests {
		out = append(out, r.item.URL)
	}
	return out
}

func (f *fakeFactory) count(url string) int {
	n := 0
	for _, r := range f.requests {
		if r.item.URL == url {
			n++
		}
	}
	return n
}

func (f *fakeFactory) complete(t *testing.T, url string, err error) {
	t.Helper()
	for i := len(f.requests) - 1; i >= 0; i-- {
		if f.requests[i].item.URL == url {
			f.requests[i].done(err)
			return
		}
	}
	t.Fatalf("no request for %s", url)
}

func itemURL(i int) string {
	return fmt.Sprintf("img-%d.png", i)
}

func testItems(n int) []Item {
	items := make([]Item, n)
	for i := range n {
		items[i] = &Media{URL: itemURL(i), Title: fmt.Sprintf("Image %d", i)}
	}
	return items
}

type harness struct {
	g       *Gallery
	sched   *manualScheduler
	factory *fakeFactory
}

// newHarness builds an open-ready gallery of count items on a 300 px wide
// viewport with no display transition and auto-completing loads.
func newHarness(t *testing.T, count int, configure func(*Options), extra ...Option) *harness {
	t.Helper()
	h := &harness{
		sched:   newManualScheduler(),
		factory: &fakeFactory{auto: true},
	}
	opts := DefaultOptions()
	opts.DisplayTransition = false
	if configure != nil {
		configure(&opts)
	}
	options := append([]Option{
		WithScheduler(h.sched),
		WithFactory(DefaultKind, h.factory),
	}, extra...)
	g, err := New(testItems(count), &fixedViewport{width: testWidth, height: 200}, opts, options...)
	require.NoError(t, err)
	h.g = g
	return h
}

func (h *harness) open() *harness {
	h.g.Open()
	h.sched.flush()
	return h
}

func (h *harness) settle() {
	h.sched.advance(time.Second)
}

func (h *harness) states() map[int]ContentState {
	out := make(map[int]ContentState)
	for i := range h.g.Count() {
		if s := h.g.SlideAt(i); s != nil && s.ContentState() != ContentEmpty {
			out[i] = s.ContentState()
		}
	}
	return out
}

// drag performs a full emulated touch gesture from (100, 100).
func (h *harness) drag(dx, dy float64) {
	h.g.TouchStart(TouchEvent{Points: []Point{{X: 100, Y: 100}}})
	h.g.TouchMove(TouchEvent{Points: []Point{{X: 100 + dx, Y: 100 + dy}}})
	h.g.TouchEnd()
}

var errBroken = errors.New("broken image")
