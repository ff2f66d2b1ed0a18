// Package replay records the device events of a round and plays them back
// tick for tick. Since a round only depends on its configuration, roster and
// per-tick input, a replay reproduces the round exactly.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/striker-ball/internal/config"
	"github.com/vovakirdan/striker-ball/internal/input"
	"github.com/vovakirdan/striker-ball/internal/play"
	"github.com/vovakirdan/striker-ball/internal/roster"
	"github.com/vovakirdan/striker-ball/internal/session"
)

// Version is the current file format version.
const Version = 1

// ErrVersion is returned when loading a replay of another format version.
var ErrVersion = errors.New("replay: unsupported version")

// Frame is a device event and the tick it first affects.
type Frame struct {
	Tick  uint64      `msgpack:"tick"`
	Event input.Event `msgpack:"event"`
}

// Replay is a complete recording of a round.
type Replay struct {
	Version    int                `msgpack:"version"`
	RecordedAt int64              `msgpack:"recorded_at"`
	Config     config.Game        `msgpack:"config"`
	Roster     roster.PlayersInfo `msgpack:"roster"`
	Ticks      uint64             `msgpack:"ticks"`
	Frames     []Frame            `msgpack:"frames"`
}

// Recorder collects frames from a session event hook.
type Recorder struct {
	rep Replay
}

// NewRecorder starts a recording of a round created with cfg and info.
func NewRecorder(cfg config.Game, info roster.PlayersInfo) *Recorder {
	return &Recorder{rep: Replay{
		Version:    Version,
		RecordedAt: time.Now().Unix(),
		Config:     cfg,
		Roster:     info,
	}}
}

// Record implements session.EventHook.
func (r *Recorder) Record(tick uint64, ev input.Event) {
	r.rep.Frames = append(r.rep.Frames, Frame{Tick: tick, Event: ev})
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.rep.Frames)
}

// Finish returns the recording of a round that ran for ticks. Frames for
// ticks that never ran are dropped.
func (r *Recorder) Finish(ticks uint64) Replay {
	rep := r.rep
	rep.Ticks = ticks
	rep.Frames = make([]Frame, 0, len(r.rep.Frames))
	for _, f := range r.rep.Frames {
		if f.Tick <= ticks {
			rep.Frames = append(rep.Frames, f)
		}
	}
	return rep
}

// Encode writes rep as msgpack.
func Encode(w io.Writer, rep Replay) error {
	if err := msgpack.NewEncoder(w).Encode(&rep); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return nil
}

// Decode reads a msgpack replay.
func Decode(r io.Reader) (Replay, error) {
	var rep Replay
	if err := msgpack.NewDecoder(r).Decode(&rep); err != nil {
		return Replay{}, fmt.Errorf("replay: decode: %w", err)
	}
	if rep.Version != Version {
		return Replay{}, fmt.Errorf("%w: %d", ErrVersion, rep.Version)
	}
	return rep, nil
}

// Save writes rep to path.
func Save(path string, rep Replay) error {
	data, err := msgpack.Marshal(&rep)
	if err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("replay: write %s: %w", path, err)
	}
	return nil
}

// Load reads a replay file.
func Load(path string) (Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return Replay{}, fmt.Errorf("replay: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Play runs rep in a fresh session and returns the final snapshot. Each poll
// covers exactly one step, and the frames for a tick are applied right
// before it.
func Play(rep Replay, opts ...session.Option) (play.Snapshot, error) {
	m := session.NewManager(rep.Config, opts...)
	r, err := m.CreateRound(rep.Roster)
	if err != nil {
		return play.Snapshot{}, fmt.Errorf("replay: %w", err)
	}

	next := 0
	for tick := uint64(1); tick <= rep.Ticks; tick++ {
		for next < len(rep.Frames) && rep.Frames[next].Tick <= tick {
			m.Apply(rep.Frames[next].Event)
			next++
		}
		if _, err := m.Poll(time.Duration(tick) * r.Step()); err != nil {
			return r.World().Snapshot(), fmt.Errorf("replay: tick %d: %w", tick, err)
		}
	}
	return r.World().Snapshot(), nil
}
