package input

import (
	"math"
	"sort"

	"github.com/vovakirdan/striker-ball/internal/core"
)

// Control names a single axis or button on a device.
type Control uint8

const (
	ControlNone Control = iota
	LeftStickX
	LeftStickY
	RightStickX
	RightStickY
	North
	South
	West
	East
	Start
	LeftBump
	RightBump
	LeftTrigger
	RightTrigger
)

var controlNames = map[Control]string{
	LeftStickX:   "left_stick_x",
	LeftStickY:   "left_stick_y",
	RightStickX:  "right_stick_x",
	RightStickY:  "right_stick_y",
	North:        "north",
	South:        "south",
	West:         "west",
	East:         "east",
	Start:        "start",
	LeftBump:     "left_bump",
	RightBump:    "right_bump",
	LeftTrigger:  "left_trigger",
	RightTrigger: "right_trigger",
}

func (c Control) String() string {
	if name, ok := controlNames[c]; ok {
		return name
	}
	return "unknown"
}

// Event is one raw device reading. Buttons use 0/1 (or an analog trigger
// value), sticks use [-1, 1].
type Event struct {
	Device  uint32  `msgpack:"device"`
	Control Control `msgpack:"control"`
	Value   float64 `msgpack:"value"`
}

// Device is the logical state of one input device.
type Device struct {
	LeftStick  core.Vec2
	RightStick core.Vec2

	// Directional buttons, pressed by left stick deflection.
	Up, Down, Left, Right Button

	North, South, West, East Button
	Start                    Button
	LeftBump, RightBump      Button
	LeftTrigger              Button
	RightTrigger             Button
}

func (d *Device) buttons() []*Button {
	return []*Button{
		&d.Up, &d.Down, &d.Left, &d.Right,
		&d.North, &d.South, &d.West, &d.East,
		&d.Start, &d.LeftBump, &d.RightBump,
		&d.LeftTrigger, &d.RightTrigger,
	}
}

func (d *Device) button(c Control) *Button {
	switch c {
	case North:
		return &d.North
	case South:
		return &d.South
	case West:
		return &d.West
	case East:
		return &d.East
	case Start:
		return &d.Start
	case LeftBump:
		return &d.LeftBump
	case RightBump:
		return &d.RightBump
	case LeftTrigger:
		return &d.LeftTrigger
	case RightTrigger:
		return &d.RightTrigger
	}
	return nil
}

// Devices aggregates every device seen so far. Devices are created on first
// reference and never removed.
type Devices struct {
	devices map[uint32]*Device
	// Stroke is the stick deflection that presses a directional button.
	Stroke float64
	// DeadZone zeroes small stick readings.
	DeadZone float64
}

// NewDevices creates an empty aggregator.
func NewDevices(stroke, deadZone float64) *Devices {
	return &Devices{
		devices:  make(map[uint32]*Device),
		Stroke:   stroke,
		DeadZone: deadZone,
	}
}

// Device returns the device with the given id, creating it if needed.
func (ds *Devices) Device(id uint32) *Device {
	if ds.devices == nil {
		ds.devices = make(map[uint32]*Device)
	}
	d, ok := ds.devices[id]
	if !ok {
		d = &Device{}
		ds.devices[id] = d
	}
	return d
}

// IDs returns the known device ids in ascending order.
func (ds *Devices) IDs() []uint32 {
	ids := make([]uint32, 0, len(ds.devices))
	for id := range ds.devices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Apply writes one event into the current value of its control. Unknown
// controls are ignored.
func (ds *Devices) Apply(ev Event) {
	d := ds.Device(ev.Device)

	switch ev.Control {
	case LeftStickX, LeftStickY, RightStickX, RightStickY:
		v := core.ClampF(ev.Value, -1, 1)
		if math.Abs(v) < ds.DeadZone {
			v = 0
		}
		switch ev.Control {
		case LeftStickX:
			d.LeftStick.X = v
		case LeftStickY:
			d.LeftStick.Y = v
		case RightStickX:
			d.RightStick.X = v
		case RightStickY:
			d.RightStick.Y = v
		}
		ds.stroke(d)
		return
	}

	if b := d.button(ev.Control); b != nil {
		b.ApplyValue(ev.Value)
	}
}

func (ds *Devices) stroke(d *Device) {
	stroke := ds.Stroke
	if stroke <= 0 {
		stroke = PressThreshold
	}
	d.Right.Apply(d.LeftStick.X > stroke)
	d.Left.Apply(d.LeftStick.X < -stroke)
	d.Up.Apply(d.LeftStick.Y > stroke)
	d.Down.Apply(d.LeftStick.Y < -stroke)
}

// Advance shifts every button of every device to the next tick.
func (ds *Devices) Advance() {
	for _, d := range ds.devices {
		for _, b := range d.buttons() {
			b.Advance()
		}
	}
}
