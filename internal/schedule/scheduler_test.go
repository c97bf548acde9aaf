package schedule

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestScheduler() (*Scheduler, *fakeClock, *int) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	runs := 0
	return New(clk, func() { runs++ }), clk, &runs
}

func TestBurstCoalesces(t *testing.T) {
	s, clk, runs := newTestScheduler()
	for i := 0; i < 20; i++ {
		s.Request()
		clk.Advance(DebounceInterval / 2)
		s.Tick()
	}
	if *runs != 0 {
		t.Fatalf("cycles during burst = %d, want 0", *runs)
	}
	clk.Advance(DebounceInterval)
	s.Tick()
	s.Tick()
	if *runs != 1 {
		t.Errorf("cycles after burst = %d, want 1", *runs)
	}
	if req, cyc := s.Stats(); req != 20 || cyc != 1 {
		t.Errorf("Stats = %d, %d; want 20, 1", req, cyc)
	}
}

func TestIsolatedRequestRunsOnce(t *testing.T) {
	s, clk, runs := newTestScheduler()
	s.Request()
	if s.Tick() {
		t.Fatal("ran before the window elapsed")
	}
	clk.Advance(DebounceInterval - time.Nanosecond)
	if s.Tick() {
		t.Fatal("ran one nanosecond early")
	}
	clk.Advance(time.Nanosecond)
	if !s.Tick() {
		t.Fatal("did not run at the deadline")
	}
	clk.Advance(time.Second)
	s.Tick()
	if *runs != 1 {
		t.Errorf("cycles = %d, want 1", *runs)
	}
}

func TestRequestResetsDeadline(t *testing.T) {
	s, clk, runs := newTestScheduler()
	s.Request()
	_, first := s.State()
	clk.Advance(10 * time.Millisecond)
	s.Request()
	state, second := s.State()
	if state != Pending {
		t.Fatalf("state = %v, want pending", state)
	}
	if got := second.Sub(first); got != 10*time.Millisecond {
		t.Errorf("deadline moved by %v, want 10ms", got)
	}
	clk.Advance(10 * time.Millisecond)
	s.Tick()
	if *runs != 0 {
		t.Error("ran at the superseded deadline")
	}
	clk.Advance(6 * time.Millisecond)
	s.Tick()
	if *runs != 1 {
		t.Errorf("cycles = %d, want 1", *runs)
	}
}

func TestIdleAfterCycle(t *testing.T) {
	s, clk, _ := newTestScheduler()
	if _, ok := s.Wait(); ok {
		t.Error("Wait reported pending on a fresh scheduler")
	}
	s.Request()
	if d, ok := s.Wait(); !ok || d != DebounceInterval {
		t.Errorf("Wait = %v, %v; want %v, true", d, ok, DebounceInterval)
	}
	clk.Advance(time.Minute)
	if d, _ := s.Wait(); d != 0 {
		t.Errorf("Wait past deadline = %v, want 0", d)
	}
	s.Tick()
	if state, _ := s.State(); state != Idle {
		t.Errorf("state = %v, want idle", state)
	}
}

func TestRequestDuringCycleSchedulesAnother(t *testing.T) {
	clk := &fakeClock{now: time.Unix(0, 0)}
	var s *Scheduler
	runs := 0
	s = New(clk, func() {
		runs++
		if runs == 1 {
			s.Request()
		}
	})
	s.Request()
	clk.Advance(DebounceInterval)
	s.Tick()
	if state, _ := s.State(); state != Pending {
		t.Fatalf("state after self-request = %v, want pending", state)
	}
	clk.Advance(DebounceInterval)
	s.Tick()
	if runs != 2 {
		t.Errorf("cycles = %d, want 2", runs)
	}
}

func TestSystemClockDefault(t *testing.T) {
	s := New(nil, func() {})
	if _, ok := s.clock.(SystemClock); !ok {
		t.Errorf("default clock = %T, want SystemClock", s.clock)
	}
}
