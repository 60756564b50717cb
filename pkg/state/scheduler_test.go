package state

import (
	"sync"
	"testing"
	"time"
)

// recorder collects saved states behind a lock so timer-goroutine saves can
// be asserted from the test goroutine.
type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) save(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

func (r *recorder) last() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[len(r.states)-1]
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestSchedulerDebounces(t *testing.T) {
	var rec recorder
	s := NewScheduler(rec.save)

	// Three rapid schedules within the delay window collapse into one save of
	// the last snapshot.
	for i := 1; i <= 3; i++ {
		s.Schedule(50*time.Millisecond, State{Edges: make([][4]int, i)})
	}
	if !s.Pending() {
		t.Fatal("Pending = false right after Schedule")
	}

	waitFor(t, func() bool { return rec.count() > 0 })
	if got := rec.count(); got != 1 {
		t.Errorf("saves = %d, want 1", got)
	}
	if got := len(rec.last().Edges); got != 3 {
		t.Errorf("saved snapshot has %d edges, want 3 (last schedule wins)", got)
	}
	if s.Pending() {
		t.Error("Pending = true after the timer fired")
	}
}

func TestSchedulerFlush(t *testing.T) {
	var rec recorder
	s := NewScheduler(rec.save)

	s.Schedule(time.Hour, State{Edges: [][4]int{{0, 0, 1, 0}}})
	s.Flush()

	if got := rec.count(); got != 1 {
		t.Fatalf("saves after Flush = %d, want 1", got)
	}
	if s.Pending() {
		t.Error("Pending = true after Flush")
	}

	// Flushing with nothing pending is a no-op.
	s.Flush()
	if got := rec.count(); got != 1 {
		t.Errorf("saves after second Flush = %d, want 1", got)
	}
}

func TestSchedulerStop(t *testing.T) {
	var rec recorder
	s := NewScheduler(rec.save)

	s.Schedule(20*time.Millisecond, State{})
	s.Stop()

	time.Sleep(60 * time.Millisecond)
	if got := rec.count(); got != 0 {
		t.Errorf("saves after Stop = %d, want 0", got)
	}
}

func TestSchedulerSaveNow(t *testing.T) {
	var rec recorder
	s := NewScheduler(rec.save)

	s.Schedule(time.Hour, State{Edges: make([][4]int, 9)})
	s.SaveNow(State{Edges: [][4]int{{1, 1, 2, 1}}})

	if got := rec.count(); got != 1 {
		t.Fatalf("saves = %d, want 1 (pending schedule canceled)", got)
	}
	if got := len(rec.last().Edges); got != 1 {
		t.Errorf("saved snapshot has %d edges, want the immediate one", got)
	}
}
