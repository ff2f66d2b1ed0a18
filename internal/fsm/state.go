// Package fsm provides per-entity state tracking and the transition scheduler
// that resolves cascading state changes to a fixed point within one tick.
package fsm

import "math"

// StateID names an entity state.
type StateID uint8

const (
	Free StateID = iota
	Tackle
	Shoot
	Ball
	Kick
	Pass
	Turn
	Recieve
	Tackled
	Win
	Lose
	Wait
	Grab
)

var stateNames = [...]string{
	Free:    "free",
	Tackle:  "tackle",
	Shoot:   "shoot",
	Ball:    "ball",
	Kick:    "kick",
	Pass:    "pass",
	Turn:    "turn",
	Recieve: "recieve",
	Tackled: "tackled",
	Win:     "win",
	Lose:    "lose",
	Wait:    "wait",
	Grab:    "grab",
}

func (id StateID) String() string {
	if int(id) < len(stateNames) {
		return stateNames[id]
	}
	return "unknown"
}

// ParseStateID looks a state up by name.
func ParseStateID(name string) (StateID, bool) {
	for id, n := range stateNames {
		if n == name {
			return StateID(id), true
		}
	}
	return 0, false
}

// State is the state of one entity. Current may be written directly by
// transition checks; the age only restarts once the scheduler settles.
type State struct {
	Current StateID
	age     uint64
	pre     StateID
}

// NewState returns a settled state.
func NewState(id StateID) State {
	return State{Current: id, pre: id}
}

// Age is the number of ticks spent in Current. It reads 0 while a change is
// pending settlement.
func (s State) Age() uint64 {
	if s.Current != s.pre {
		return 0
	}
	return s.age
}

// Is reports whether the current state is one of ids.
func (s State) Is(ids ...StateID) bool {
	for _, id := range ids {
		if s.Current == id {
			return true
		}
	}
	return false
}

// settle records a pending change and reports whether there was one.
func (s *State) settle() bool {
	if s.Current == s.pre {
		return false
	}
	s.age = 0
	s.pre = s.Current
	return true
}

func (s *State) tick() {
	if s.age < math.MaxUint64 {
		s.age++
	}
}
