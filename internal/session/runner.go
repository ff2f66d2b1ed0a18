// Package session drives a Striker Ball round: the fixed-timestep runner
// that turns host polls into simulation ticks, and the manager that creates
// and tears down rounds and forwards their intents to collaborators.
package session

import (
	"time"

	"github.com/vovakirdan/striker-ball/internal/input"
	"github.com/vovakirdan/striker-ball/internal/play"
	"github.com/vovakirdan/striker-ball/internal/roster"
)

// Runner advances a world in exact fixed steps regardless of how often or
// how irregularly it is polled. Poll instants are durations since the
// runner's epoch.
type Runner struct {
	world   *play.World
	devices *input.Devices
	info    roster.PlayersInfo

	step       time.Duration
	maxCatchUp int

	acc     time.Duration
	epoch   time.Duration
	last    time.Duration
	hasLast bool
	clock   time.Duration

	localInput bool
	dropped    uint64
	lastSnap   input.Snapshot
}

// NewRunner wraps world. devices may be shared with other rounds; the
// runner advances them once per tick.
func NewRunner(world *play.World, devices *input.Devices) *Runner {
	cfg := world.Config().Runner
	return &Runner{
		world:      world,
		devices:    devices,
		info:       world.Roster(),
		step:       time.Second / time.Duration(cfg.TickRate),
		maxCatchUp: cfg.MaxCatchUp,
		localInput: true,
	}
}

// World returns the simulated world.
func (r *Runner) World() *play.World { return r.world }

// Step returns the fixed tick length.
func (r *Runner) Step() time.Duration { return r.step }

// Clock returns the simulated time, advanced exactly one step per tick.
func (r *Runner) Clock() time.Duration { return r.clock }

// Accumulator returns the real time not yet consumed by a tick.
func (r *Runner) Accumulator() time.Duration { return r.acc }

// Last returns the instant of the last poll, if any.
func (r *Runner) Last() (time.Duration, bool) { return r.last, r.hasLast }

// Dropped returns how many whole steps were discarded by the catch-up cap.
func (r *Runner) Dropped() uint64 { return r.dropped }

// SetLocalInput enables or disables reading the local devices. While
// disabled every tick sees an empty snapshot.
func (r *Runner) SetLocalInput(enabled bool) { r.localInput = enabled }

// Input returns the snapshot the last tick ran with.
func (r *Runner) Input() input.Snapshot { return r.lastSnap }

// Poll consumes the real time elapsed up to at and runs as many ticks as
// fit. It returns the number of ticks run and the first tick error.
func (r *Runner) Poll(at time.Duration) (int, error) {
	last := r.epoch
	if r.hasLast {
		last = r.last
	}
	r.acc += at - last
	r.last, r.hasLast = at, true

	var firstErr error
	ticks := 0
	for r.acc >= r.step {
		if r.maxCatchUp > 0 && ticks >= r.maxCatchUp {
			n := r.acc / r.step
			r.dropped += uint64(n)
			r.acc -= n * r.step
			break
		}
		r.acc -= r.step
		if err := r.tick(); err != nil && firstErr == nil {
			firstErr = err
		}
		ticks++
	}
	return ticks, firstErr
}

// Restart drops the accumulated time and the last poll instant, and makes at
// the new epoch. Used when resuming from a pause so the pause is not caught
// up.
func (r *Runner) Restart(at time.Duration) {
	r.acc = 0
	r.hasLast = false
	r.last = 0
	r.epoch = at
}

func (r *Runner) tick() error {
	r.clock += r.step

	var snap input.Snapshot
	if r.localInput {
		snap = r.devices.Compile(r.info)
	}
	r.lastSnap = snap

	err := r.world.Step(snap)
	r.devices.Advance()
	return err
}
