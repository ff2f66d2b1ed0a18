package play

import (
	"time"

	"github.com/vovakirdan/striker-ball/internal/core"
	"github.com/vovakirdan/striker-ball/internal/fsm"
	"github.com/vovakirdan/striker-ball/internal/roster"
)

// AttachmentKind names a decoration that follows a player.
type AttachmentKind uint8

const (
	AttachShadow AttachmentKind = iota
	AttachStickIndicator
	AttachNumber
)

func (k AttachmentKind) String() string {
	switch k {
	case AttachShadow:
		return "shadow"
	case AttachStickIndicator:
		return "stick_indicator"
	case AttachNumber:
		return "number"
	}
	return "unknown"
}

// Lifetime removes an attachment after a duration. The zero value lives
// forever.
type Lifetime struct {
	Target  time.Duration
	Elapsed time.Duration
}

// NewLifetime returns a lifetime of d.
func NewLifetime(d time.Duration) Lifetime {
	return Lifetime{Target: d}
}

// Tick advances the lifetime.
func (l *Lifetime) Tick(d time.Duration) {
	l.Elapsed += d
}

// Dead reports whether a bounded lifetime ran out.
func (l Lifetime) Dead() bool {
	return l.Target > 0 && l.Elapsed >= l.Target
}

// Attachment follows a player with a fixed offset. It only references the
// player; it never owns it.
type Attachment struct {
	ID       int
	Kind     AttachmentKind
	Target   roster.Slot
	Offset   core.Vec2
	Pos      core.Vec2
	Visible  bool
	Lifetime Lifetime
	// Number is the join number shown by AttachNumber.
	Number int

	removed bool
}

func (w *World) attach(a Attachment) {
	a.ID = w.newID()
	a.Visible = true
	a.Pos = w.Player(a.Target).Pos.Add(a.Offset)
	w.Attachments = append(w.Attachments, a)
}

// updateAttachments runs after every primary transform has moved.
func (w *World) updateAttachments() {
	for i := range w.Attachments {
		a := &w.Attachments[i]
		p := w.Player(a.Target)
		a.Pos = p.Pos.Add(a.Offset)

		if a.Kind == AttachStickIndicator {
			a.Visible = !p.State.Is(fsm.Shoot, fsm.Win, fsm.Lose)
		}

		if a.Lifetime.Target > 0 {
			a.Lifetime.Tick(w.step)
			if a.Lifetime.Dead() && !a.removed {
				a.removed = true
				w.queue(Command{Kind: CmdRemoveAttachment, ID: a.ID})
			}
		}
	}
}

// CommandKind names a deferred world mutation.
type CommandKind uint8

const (
	CmdRemovePin CommandKind = iota
	CmdRemoveAttachment
)

// Command is a mutation requested mid-tick and applied when the tick ends,
// so systems never remove entities they may still be iterating.
type Command struct {
	Kind CommandKind
	ID   int
}

func (w *World) queue(c Command) {
	w.commands = append(w.commands, c)
}

func (w *World) drainCommands() {
	for _, c := range w.commands {
		switch c.Kind {
		case CmdRemovePin:
			w.Pins = removeFunc(w.Pins, func(p Pin) bool { return p.ID == c.ID })
		case CmdRemoveAttachment:
			w.Attachments = removeFunc(w.Attachments, func(a Attachment) bool { return a.ID == c.ID })
		}
	}
	w.commands = w.commands[:0]
}

func removeFunc[T any](s []T, match func(T) bool) []T {
	out := s[:0]
	for _, v := range s {
		if !match(v) {
			out = append(out, v)
		}
	}
	return out
}
