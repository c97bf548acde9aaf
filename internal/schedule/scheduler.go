// Package schedule coalesces bursts of render requests into single render
// cycles with a debounce window.
//
// The scheduler is cooperative: it owns no goroutine or timer. The host loop
// (the window's update tick, the terminal's select loop) calls Tick, and the
// pending cycle runs inside that call once the window has elapsed. Request
// and Tick must be called from the same goroutine.
package schedule

import "time"

// DebounceInterval is the quiet period that must follow the last Request
// before a cycle runs. It approximates one 60Hz display refresh.
const DebounceInterval = 16 * time.Millisecond

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// State is the scheduler's position in its two-state machine.
type State int

const (
	Idle State = iota
	Pending
)

func (s State) String() string {
	if s == Pending {
		return "pending"
	}
	return "idle"
}

// Scheduler debounces requests. Every Request restarts the window, so a
// continuous stream of requests postpones the cycle until input stops.
type Scheduler struct {
	clock    Clock
	interval time.Duration
	cycle    func()

	state    State
	deadline time.Time
	requests int
	cycles   int
}

// New returns an idle scheduler that runs cycle after DebounceInterval of
// silence. A nil clock means SystemClock.
func New(clock Clock, cycle func()) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{
		clock:    clock,
		interval: DebounceInterval,
		cycle:    cycle,
	}
}

// Request arms the window, replacing any pending deadline.
func (s *Scheduler) Request() {
	s.state = Pending
	s.deadline = s.clock.Now().Add(s.interval)
	s.requests++
}

// Tick runs the pending cycle if its deadline has passed and reports whether
// it did. The scheduler is idle again before the cycle starts, so at most one
// cycle is ever in flight and a cycle that started always completes.
func (s *Scheduler) Tick() bool {
	if s.state != Pending || s.clock.Now().Before(s.deadline) {
		return false
	}
	s.state = Idle
	s.cycles++
	s.cycle()
	return true
}

// Wait returns how long the host may sleep before the next Tick can do
// anything. ok is false when nothing is pending.
func (s *Scheduler) Wait() (d time.Duration, ok bool) {
	if s.state != Pending {
		return 0, false
	}
	d = s.deadline.Sub(s.clock.Now())
	if d < 0 {
		d = 0
	}
	return d, true
}

// State returns the current state and, when pending, its deadline.
func (s *Scheduler) State() (State, time.Time) {
	return s.state, s.deadline
}

// Stats returns the number of requests received and cycles run.
func (s *Scheduler) Stats() (requests, cycles int) {
	return s.requests, s.cycles
}
