// Package input turns raw device events into per-tick logical button state
// and routes devices to the four player clients of a round.
package input

// PressThreshold is the analog value above which a button reads as pressed.
const PressThreshold = 0.5

// Button is a debounced logical button. Writes only touch the current value;
// Advance shifts it into the previous-tick value once per simulation tick.
type Button struct {
	current bool
	last    bool
	held    uint32
}

// NewButton builds a button in a given state, for replaying or scripting input.
func NewButton(current, last bool, held uint32) Button {
	return Button{current: current, last: last, held: held}
}

// Apply sets the current value. A write that produces a fresh press resets
// the hold counter.
func (b *Button) Apply(pressed bool) {
	b.current = pressed
	if b.JustPressed() {
		b.held = 0
	}
}

// ApplyValue applies an analog value against PressThreshold.
func (b *Button) ApplyValue(v float64) {
	b.Apply(v > PressThreshold)
}

// Advance moves to the next tick.
func (b *Button) Advance() {
	b.last = b.current
	if b.current {
		b.held++
	}
}

func (b Button) JustPressed() bool  { return b.current && !b.last }
func (b Button) JustReleased() bool { return !b.current && b.last }
func (b Button) Pressed() bool      { return b.current }
func (b Button) Released() bool     { return !b.current }

// Held returns the number of ticks the button has been held since its last
// press.
func (b Button) Held() uint32 { return b.held }

// HeldAtLeast reports whether the button is down and has been for n ticks.
func (b Button) HeldAtLeast(n uint32) bool {
	return b.current && b.held >= n
}

// Or merges two physical buttons into one logical action. The hold counter
// is the larger of the two so neither source loses its hold duration.
func (b Button) Or(o Button) Button {
	held := b.held
	if o.held > held {
		held = o.held
	}
	return Button{
		current: b.current || o.current,
		last:    b.last || o.last,
		held:    held,
	}
}

// AnyOf ORs a list of buttons together.
func AnyOf(first Button, rest ...Button) Button {
	for _, b := range rest {
		first = first.Or(b)
	}
	return first
}
