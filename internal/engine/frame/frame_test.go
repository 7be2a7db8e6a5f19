package frame

import (
	"testing"
	"time"
)

func TestFlushRunsInRequestOrder(t *testing.T) {
	s := NewScheduler()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		s.Request(func(time.Time) { order = append(order, i) })
	}

	if got := s.Flush(time.Now()); got != 3 {
		t.Fatalf("Flush ran %d callbacks, want 3", got)
	}
	for i, v := range order {
		if v != i {
			t.Errorf("order[%d] = %d, want %d", i, v, i)
		}
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d after flush, want 0", s.Pending())
	}
}

func TestRequestDuringFlushWaitsForNextFlush(t *testing.T) {
	s := NewScheduler()
	ticks := 0
	var tick Callback
	tick = func(time.Time) {
		ticks++
		s.Request(tick)
	}
	s.Request(tick)

	for i := 1; i <= 5; i++ {
		s.Flush(time.Now())
		if ticks != i {
			t.Fatalf("after flush %d: ticks = %d", i, ticks)
		}
		if s.Pending() != 1 {
			t.Fatalf("after flush %d: Pending = %d, want 1", i, s.Pending())
		}
	}
	if s.Flushes() != 5 {
		t.Errorf("Flushes = %d, want 5", s.Flushes())
	}
}

func TestCancel(t *testing.T) {
	s := NewScheduler()
	ran := false
	id := s.Request(func(time.Time) { ran = true })
	s.Cancel(id)
	s.Cancel(id)
	s.Cancel(ID(999))

	if s.Pending() != 0 {
		t.Fatalf("Pending = %d, want 0", s.Pending())
	}
	s.Flush(time.Now())
	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestCancelLaterCallbackInSameFlush(t *testing.T) {
	s := NewScheduler()
	var second ID
	secondRan := false
	s.Request(func(time.Time) { s.Cancel(second) })
	second = s.Request(func(time.Time) { secondRan = true })

	if got := s.Flush(time.Now()); got != 1 {
		t.Errorf("Flush ran %d callbacks, want 1", got)
	}
	if secondRan {
		t.Error("callback cancelled mid-flush still ran")
	}

	// The cancellation must not leak into later flushes.
	again := false
	s.Request(func(time.Time) { again = true })
	s.Flush(time.Now())
	if !again {
		t.Error("callback after a mid-flush cancel did not run")
	}
}

func TestFlushPassesTimestamp(t *testing.T) {
	s := NewScheduler()
	want := time.Unix(1700000000, 0)
	var got time.Time
	s.Request(func(now time.Time) { got = now })
	s.Flush(want)
	if !got.Equal(want) {
		t.Errorf("callback saw %v, want %v", got, want)
	}
}
