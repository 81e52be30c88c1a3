package schedule

import (
	"testing"
	"time"
)

func TestRequestFrameRunsOnce(t *testing.T) {
	q := NewQueue()
	var got []time.Duration
	q.RequestFrame(func(now time.Duration) { got = append(got, now) })

	if n := q.RunFrames(16 * time.Millisecond); n != 1 {
		t.Fatalf("RunFrames() = %d, want 1", n)
	}
	if n := q.RunFrames(32 * time.Millisecond); n != 0 {
		t.Fatalf("second RunFrames() = %d, want 0", n)
	}
	if len(got) != 1 || got[0] != 16*time.Millisecond {
		t.Errorf("callback times = %v", got)
	}
}

func TestRequestFromCallbackWaitsForNextRun(t *testing.T) {
	q := NewQueue()
	count := 0
	var loop func(time.Duration)
	loop = func(time.Duration) {
		count++
		q.RequestFrame(loop)
	}
	q.RequestFrame(loop)

	for i := 1; i <= 3; i++ {
		q.RunFrames(time.Duration(i) * 16 * time.Millisecond)
		if count != i {
			t.Fatalf("after run %d: count = %d", i, count)
		}
	}
	if q.PendingFrames() != 1 {
		t.Errorf("PendingFrames() = %d, want 1", q.PendingFrames())
	}
}

func TestCancelFrame(t *testing.T) {
	q := NewQueue()
	ran := false
	h := q.RequestFrame(func(time.Duration) { ran = true })
	q.CancelFrame(h)
	q.CancelFrame(h)
	q.CancelFrame(Handle(999))
	q.RunFrames(time.Millisecond)
	if ran {
		t.Error("cancelled frame ran")
	}
}

func TestCancelSiblingWithinBatch(t *testing.T) {
	q := NewQueue()
	var second Handle
	ran := false
	q.RequestFrame(func(time.Duration) { q.CancelFrame(second) })
	second = q.RequestFrame(func(time.Duration) { ran = true })
	q.RunFrames(time.Millisecond)
	if ran {
		t.Error("frame cancelled earlier in the same batch still ran")
	}
}

func TestIntervalFiresOnPeriod(t *testing.T) {
	q := NewQueue()
	fired := 0
	q.SetInterval(100*time.Millisecond, func() { fired++ })

	steps := []struct {
		at   time.Duration
		want int
	}{
		{50 * time.Millisecond, 0},
		{100 * time.Millisecond, 1},
		{150 * time.Millisecond, 1},
		{200 * time.Millisecond, 2},
		// a long stall fires once, not once per missed period
		{900 * time.Millisecond, 3},
		{1000 * time.Millisecond, 4},
	}
	for _, s := range steps {
		q.RunTimers(s.at)
		if fired != s.want {
			t.Fatalf("at %v fired = %d, want %d", s.at, fired, s.want)
		}
	}
}

func TestClearInterval(t *testing.T) {
	q := NewQueue()
	fired := 0
	h := q.SetInterval(10*time.Millisecond, func() { fired++ })
	q.RunTimers(10 * time.Millisecond)
	q.ClearInterval(h)
	q.RunTimers(100 * time.Millisecond)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if q.ActiveIntervals() != 0 {
		t.Errorf("ActiveIntervals() = %d, want 0", q.ActiveIntervals())
	}
}

func TestIntervalClearedFromOwnCallback(t *testing.T) {
	q := NewQueue()
	fired := 0
	var h Handle
	h = q.SetInterval(10*time.Millisecond, func() {
		fired++
		q.ClearInterval(h)
	})
	q.Advance(10 * time.Millisecond)
	q.Advance(20 * time.Millisecond)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestHandlesAreUniqueAndNonZero(t *testing.T) {
	q := NewQueue()
	seen := map[Handle]bool{}
	for i := 0; i < 10; i++ {
		for _, h := range []Handle{
			q.RequestFrame(func(time.Duration) {}),
			q.SetInterval(time.Second, func() {}),
		} {
			if h == 0 || seen[h] {
				t.Fatalf("bad handle %d", h)
			}
			seen[h] = true
		}
	}
}

func TestTimeNeverRunsBackwards(t *testing.T) {
	q := NewQueue()
	q.RunFrames(time.Second)
	q.RunFrames(500 * time.Millisecond)
	if q.Now() != time.Second {
		t.Errorf("Now() = %v, want 1s", q.Now())
	}
}
