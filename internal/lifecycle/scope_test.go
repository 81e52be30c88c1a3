package lifecycle

import (
	"reflect"
	"testing"
)

func TestScopeReleasesInReverse(t *testing.T) {
	var got []int
	s := &Scope{}
	for i := 1; i <= 3; i++ {
		s.Defer(func() { got = append(got, i) })
	}
	s.Defer(nil)
	s.Close()
	s.Close()
	if want := []int{3, 2, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("release order = %v, want %v", got, want)
	}
	if !s.Closed() {
		t.Error("Closed() = false after Close")
	}
}

func TestScopeDeferAfterCloseRunsNow(t *testing.T) {
	s := &Scope{}
	s.Close()
	ran := false
	s.Defer(func() { ran = true })
	if !ran {
		t.Error("release registered after Close did not run")
	}
}

func TestListeners(t *testing.T) {
	var l Listeners[func(int)]
	var got []int
	detachA := l.Add(func(v int) { got = append(got, v) })
	l.Add(func(v int) { got = append(got, v*10) })

	l.Each(func(fn func(int)) { fn(1) })
	detachA()
	detachA()
	l.Each(func(fn func(int)) { fn(2) })

	if want := []int{1, 10, 20}; !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestListenersDetachDuringWalk(t *testing.T) {
	var l Listeners[func()]
	calls := 0
	var detachB func()
	l.Add(func() { calls++; detachB() })
	detachB = l.Add(func() { calls += 100 })
	l.Each(func(fn func()) { fn() })
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
