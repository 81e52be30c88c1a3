// Package schedule provides the frame and interval primitives the animation
// runs on. Queue is single-threaded: the host drives it from its own loop and
// tests drive it by advancing time by hand.
package schedule

import "time"

// Handle identifies a pending frame request or a running interval. The zero
// Handle is never issued.
type Handle uint64

// FrameScheduler runs a callback once on the next display refresh.
type FrameScheduler interface {
	RequestFrame(fn func(now time.Duration)) Handle
	CancelFrame(h Handle)
}

// IntervalTimer runs a callback repeatedly at a fixed period.
type IntervalTimer interface {
	SetInterval(every time.Duration, fn func()) Handle
	ClearInterval(h Handle)
}

type interval struct {
	every time.Duration
	next  time.Duration
	fn    func()
}

// Queue implements FrameScheduler and IntervalTimer on a caller-driven
// timeline.
type Queue struct {
	now  time.Duration
	last Handle

	frames     map[Handle]func(time.Duration)
	frameOrder []Handle

	timers     map[Handle]*interval
	timerOrder []Handle
}

// NewQueue returns an empty queue positioned at time zero.
func NewQueue() *Queue {
	return &Queue{
		frames: make(map[Handle]func(time.Duration)),
		timers: make(map[Handle]*interval),
	}
}

func (q *Queue) issue() Handle {
	q.last++
	return q.last
}

// Now is the time of the most recent Run call.
func (q *Queue) Now() time.Duration { return q.now }

// RequestFrame queues fn for the next RunFrames.
func (q *Queue) RequestFrame(fn func(now time.Duration)) Handle {
	h := q.issue()
	q.frames[h] = fn
	q.frameOrder = append(q.frameOrder, h)
	return h
}

// CancelFrame drops a pending request. Unknown handles are ignored.
func (q *Queue) CancelFrame(h Handle) {
	delete(q.frames, h)
}

// SetInterval fires fn every period, first at Now()+every.
func (q *Queue) SetInterval(every time.Duration, fn func()) Handle {
	h := q.issue()
	q.timers[h] = &interval{every: every, next: q.now + every, fn: fn}
	q.timerOrder = append(q.timerOrder, h)
	return h
}

// ClearInterval stops an interval. Unknown handles are ignored.
func (q *Queue) ClearInterval(h Handle) {
	delete(q.timers, h)
}

// RunFrames runs every frame requested before the call, in request order.
// Requests made by the callbacks wait for the next RunFrames.
func (q *Queue) RunFrames(now time.Duration) int {
	q.advance(now)
	batch := q.frameOrder
	q.frameOrder = nil
	ran := 0
	for _, h := range batch {
		fn, ok := q.frames[h]
		if !ok {
			continue
		}
		delete(q.frames, h)
		fn(q.now)
		ran++
	}
	return ran
}

// RunTimers fires each interval that is due, at most once per call. Missed
// periods are skipped rather than replayed.
func (q *Queue) RunTimers(now time.Duration) int {
	q.advance(now)
	order := q.timerOrder[:0]
	var due []Handle
	for _, h := range q.timerOrder {
		t, ok := q.timers[h]
		if !ok {
			continue
		}
		order = append(order, h)
		if t.next <= q.now {
			due = append(due, h)
		}
	}
	q.timerOrder = order

	fired := 0
	for _, h := range due {
		t, ok := q.timers[h]
		if !ok {
			continue
		}
		if t.every > 0 {
			for t.next <= q.now {
				t.next += t.every
			}
		} else {
			t.next = q.now + 1
		}
		t.fn()
		fired++
	}
	return fired
}

// Advance runs due timers then pending frames at now, the order a host loop
// uses within one tick.
func (q *Queue) Advance(now time.Duration) {
	q.RunTimers(now)
	q.RunFrames(now)
}

// PendingFrames reports queued frame requests.
func (q *Queue) PendingFrames() int { return len(q.frames) }

// ActiveIntervals reports running intervals.
func (q *Queue) ActiveIntervals() int { return len(q.timers) }

func (q *Queue) advance(now time.Duration) {
	if now > q.now {
		q.now = now
	}
}
