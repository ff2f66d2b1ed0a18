package fsm

import (
	"errors"
	"fmt"
)

// DefaultMaxPasses bounds Resolve when no cap is configured.
const DefaultMaxPasses = 16

// ErrNoConvergence is returned when transitions keep changing states after
// the pass cap.
var ErrNoConvergence = errors.New("fsm: transitions did not converge")

// World exposes the states the scheduler settles.
type World interface {
	States() []*State
}

// Check is one named transition check. It may write Current of any state.
type Check[W World] struct {
	Name string
	Fn   func(W)
}

// Scheduler runs an ordered list of transition checks until no state
// changes. Order is part of the contract: later checks see the writes of
// earlier ones within the same pass.
type Scheduler[W World] struct {
	checks    []Check[W]
	maxPasses int
}

// NewScheduler creates a scheduler. maxPasses <= 0 uses DefaultMaxPasses.
func NewScheduler[W World](maxPasses int) *Scheduler[W] {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	return &Scheduler[W]{maxPasses: maxPasses}
}

// Add appends a check. Checks run in the order they were added.
func (s *Scheduler[W]) Add(name string, fn func(W)) *Scheduler[W] {
	s.checks = append(s.checks, Check[W]{Name: name, Fn: fn})
	return s
}

// Checks returns the registered check names in run order.
func (s *Scheduler[W]) Checks() []string {
	names := make([]string, len(s.checks))
	for i, c := range s.checks {
		names[i] = c.Name
	}
	return names
}

// Resolve runs passes until one settles nothing. It returns the number of
// passes run. On hitting the cap the states are left settled as of the last
// pass and ErrNoConvergence is returned.
func (s *Scheduler[W]) Resolve(w W) (int, error) {
	for pass := 1; ; pass++ {
		for _, c := range s.checks {
			c.Fn(w)
		}
		if !Settle(w.States()) {
			return pass, nil
		}
		if pass >= s.maxPasses {
			return pass, fmt.Errorf("%w after %d passes", ErrNoConvergence, pass)
		}
	}
}

// Settle restarts the age of every changed state and reports whether any
// changed.
func Settle(states []*State) bool {
	changed := false
	for _, st := range states {
		if st.settle() {
			changed = true
		}
	}
	return changed
}

// Tick ages every state by one tick.
func Tick(w World) {
	for _, st := range w.States() {
		st.tick()
	}
}
