package input

import (
	"github.com/vovakirdan/striker-ball/internal/core"
	"github.com/vovakirdan/striker-ball/internal/roster"
)

// Client is the compiled input of one player slot for one tick.
type Client struct {
	Axis  core.Vec2
	Shoot Button
	Pass  Button
	Start Button
}

// FromDevice reads a single-stick player from the left half of a device.
func FromDevice(d *Device) Client {
	return Client{
		Axis:  d.LeftStick,
		Shoot: AnyOf(d.South, d.RightTrigger, d.LeftTrigger, d.East),
		Pass:  AnyOf(d.West, d.LeftBump, d.North),
		Start: d.Start,
	}
}

// FromDeviceDual reads the second player of a dual-stick device from its
// right stick.
func FromDeviceDual(d *Device) Client {
	return Client{
		Axis:  d.RightStick,
		Shoot: AnyOf(d.South, d.RightTrigger, d.LeftTrigger),
		Pass:  d.West.Or(d.RightBump),
		Start: d.Start,
	}
}

// Menu is the input every device contributes to shared screens.
type Menu struct {
	Up, Down, Left, Right Button
	Confirm, Back, Start  Button
}

// Snapshot is the input of one tick for every slot.
type Snapshot struct {
	Clients [roster.NumSlots]Client
	Menu    Menu
}

// Client returns the input routed to slot.
func (s Snapshot) Client(slot roster.Slot) Client {
	return s.Clients[slot.Index()]
}

// Compile routes devices to clients according to the roster.
func (ds *Devices) Compile(info roster.PlayersInfo) Snapshot {
	var snap Snapshot
	ds.route(&snap, info.TeamA, roster.A1, roster.A2)
	ds.route(&snap, info.TeamB, roster.B1, roster.B2)
	snap.Menu = ds.menu()
	return snap
}

func (ds *Devices) route(snap *Snapshot, team roster.TeamInfo, first, second roster.Slot) {
	if team.IsDualStick() {
		d := ds.Device(team.Primary.Gamepad)
		snap.Clients[first.Index()] = FromDevice(d)
		snap.Clients[second.Index()] = FromDeviceDual(d)
		return
	}
	snap.Clients[first.Index()] = FromDevice(ds.Device(team.Primary.Gamepad))
	snap.Clients[second.Index()] = FromDevice(ds.Device(team.Secondary.Gamepad))
}

func (ds *Devices) menu() Menu {
	var m Menu
	for _, id := range ds.IDs() {
		d := ds.devices[id]
		m.Up = m.Up.Or(d.Up)
		m.Down = m.Down.Or(d.Down)
		m.Left = m.Left.Or(d.Left)
		m.Right = m.Right.Or(d.Right)
		m.Confirm = m.Confirm.Or(d.South)
		m.Back = m.Back.Or(d.East)
		m.Start = m.Start.Or(d.Start)
	}
	return m
}
