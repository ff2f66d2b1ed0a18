package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/striker-ball/internal/input"
)

// Keyboard device ids. The terminal keyboard is split into two virtual
// gamepads so two people can share it.
const (
	KeyboardLeft  uint32 = 0 // WASD side
	KeyboardRight uint32 = 1 // arrow side
)

// Binding is the device control a key drives.
type Binding struct {
	Device  uint32
	Control input.Control
	Value   float64
}

var keyBindings = map[string]Binding{
	// Left side: WASD moves, shift+WASD drives the dual stick partner.
	"w": {KeyboardLeft, input.LeftStickY, 1},
	"s": {KeyboardLeft, input.LeftStickY, -1},
	"a": {KeyboardLeft, input.LeftStickX, -1},
	"d": {KeyboardLeft, input.LeftStickX, 1},
	"W": {KeyboardLeft, input.RightStickY, 1},
	"S": {KeyboardLeft, input.RightStickY, -1},
	"A": {KeyboardLeft, input.RightStickX, -1},
	"D": {KeyboardLeft, input.RightStickX, 1},
	"f": {KeyboardLeft, input.South, 1},
	"g": {KeyboardLeft, input.West, 1},
	"e": {KeyboardLeft, input.East, 1},
	"r": {KeyboardLeft, input.RightBump, 1},

	// Right side: arrows move, shift+arrows drive the partner.
	"up":          {KeyboardRight, input.LeftStickY, 1},
	"down":        {KeyboardRight, input.LeftStickY, -1},
	"left":        {KeyboardRight, input.LeftStickX, -1},
	"right":       {KeyboardRight, input.LeftStickX, 1},
	"shift+up":    {KeyboardRight, input.RightStickY, 1},
	"shift+down":  {KeyboardRight, input.RightStickY, -1},
	"shift+left":  {KeyboardRight, input.RightStickX, -1},
	"shift+right": {KeyboardRight, input.RightStickX, 1},
	"k":           {KeyboardRight, input.South, 1},
	"l":           {KeyboardRight, input.West, 1},
	"o":           {KeyboardRight, input.East, 1},
	"i":           {KeyboardRight, input.RightBump, 1},
}

// Lookup returns the device control bound to a key.
func Lookup(k string) (Binding, bool) {
	b, ok := keyBindings[k]
	return b, ok
}

// DeviceName is the label of a keyboard device on screen.
func DeviceName(id uint32) string {
	switch id {
	case KeyboardLeft:
		return "WASD"
	case KeyboardRight:
		return "Arrows"
	}
	return "Gamepad"
}

type heldControl struct {
	device  uint32
	control input.Control
	ticks   int
}

// Keyboard turns key presses into device events. Terminals report no key
// release, so a press holds its control down for a number of ticks and is
// refreshed by key repeat.
type Keyboard struct {
	holdTicks int
	held      []heldControl
}

// NewKeyboard creates a keyboard holding presses for holdTicks ticks.
func NewKeyboard(holdTicks int) *Keyboard {
	if holdTicks < 1 {
		holdTicks = 1
	}
	return &Keyboard{holdTicks: holdTicks}
}

// Press returns the event for a key and starts or refreshes its hold.
// Unbound keys return false.
func (k *Keyboard) Press(key string) (input.Event, bool) {
	b, ok := Lookup(key)
	if !ok {
		return input.Event{}, false
	}
	ev := input.Event{Device: b.Device, Control: b.Control, Value: b.Value}

	for i := range k.held {
		h := &k.held[i]
		if h.device == b.Device && h.control == b.Control {
			h.ticks = k.holdTicks
			return ev, true
		}
	}
	k.held = append(k.held, heldControl{device: b.Device, control: b.Control, ticks: k.holdTicks})
	return ev, true
}

// Advance counts n ticks down and returns the releases of expired holds in
// press order.
func (k *Keyboard) Advance(n int) []input.Event {
	if n <= 0 {
		return nil
	}
	var released []input.Event
	kept := k.held[:0]
	for _, h := range k.held {
		h.ticks -= n
		if h.ticks <= 0 {
			released = append(released, input.Event{Device: h.device, Control: h.control})
			continue
		}
		kept = append(kept, h)
	}
	k.held = kept
	return released
}

// ReleaseAll releases every held control.
func (k *Keyboard) ReleaseAll() []input.Event {
	released := make([]input.Event, 0, len(k.held))
	for _, h := range k.held {
		released = append(released, input.Event{Device: h.device, Control: h.control})
	}
	k.held = k.held[:0]
	return released
}

// Held returns the number of controls currently down.
func (k *Keyboard) Held() int {
	return len(k.held)
}

// KeyMap defines the key bindings shown in the help bar.
type KeyMap struct {
	Move  key.Binding
	Shoot key.Binding
	Pass  key.Binding
	Back  key.Binding
	Start key.Binding
	Pause key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Shoot, k.Pass, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Shoot, k.Pass, k.Back},
		{k.Start, k.Pause, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Move: key.NewBinding(
			key.WithKeys("w", "a", "s", "d", "up", "down", "left", "right"),
			key.WithHelp("wasd/arrows", "move"),
		),
		Shoot: key.NewBinding(
			key.WithKeys("f", "k"),
			key.WithHelp("f/k", "shoot, tackle, join"),
		),
		Pass: key.NewBinding(
			key.WithKeys("g", "l"),
			key.WithHelp("g/l", "pass, dual stick"),
		),
		Back: key.NewBinding(
			key.WithKeys("e", "o"),
			key.WithHelp("e/o", "back"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start match"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}
