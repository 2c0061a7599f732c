package gallery

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler runs engine callbacks on a single logical thread.
//
// Every state mutation of a Gallery happens inside a call made by the owner
// of that thread: an input method, or a callback handed out by AfterFunc or
// Post. Implementations must never run two callbacks concurrently.
type Scheduler interface {
	// Now returns the scheduler's notion of the current time.
	Now() time.Time
	// AfterFunc runs fn on the scheduler's thread once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer
	// Post queues fn for execution on the scheduler's thread.
	// It is safe to call from any goroutine.
	Post(fn func())
}

// Timer is a pending AfterFunc callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer (false if it already ran or was stopped).
	Stop() bool
}

// Loop is the production Scheduler. Callbacks from timers and other
// goroutines are queued; the owner drains them from its own goroutine
// whenever Ready fires.
//
//	for range loop.Ready() {
//	    loop.Drain()
//	}
type Loop struct {
	mu    sync.Mutex
	queue []func()
	ready chan struct{}
}

// NewLoop creates an empty event loop.
func NewLoop() *Loop {
	return &Loop{ready: make(chan struct{}, 1)}
}

// Now implements Scheduler.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Post implements Scheduler. The queue is unbounded so callbacks running on
// the loop may post without deadlocking.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.ready <- struct{}{}:
	default:
	}
}

// AfterFunc implements Scheduler.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			// Stopped after firing but before the loop got to it.
			if !t.state.CompareAndSwap(timerPending, timerFired) {
				return
			}
			fn()
		})
	})
	return t
}

// Ready signals that at least one callback is queued.
func (l *Loop) Ready() <-chan struct{} {
	return l.ready
}

// Drain runs the callbacks queued so far and returns how many ran.
// Callbacks posted while draining are left for the next Drain.
func (l *Loop) Drain() int {
	l.mu.Lock()
	queue := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, fn := range queue {
		fn()
	}
	return len(queue)
}

// Pending returns the number of queued callbacks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

const (
	timerPending int32 = iota
	timerFired
	timerStopped
)

type loopTimer struct {
	timer *time.Timer
	state atomic.Int32
}

func (t *loopTimer) Stop() bool {
	if t.timer != nil {
		t.timer.Stop()
	}
	return t.state.CompareAndSwap(timerPending, timerStopped)
}
