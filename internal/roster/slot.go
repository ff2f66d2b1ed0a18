// Package roster describes who plays which character: the four fixed player
// slots, the two teams, and the device-to-slot mapping built on the team
// select screen.
package roster

import "fmt"

// Team is one of the two sides of the court.
type Team uint8

const (
	TeamA Team = iota
	TeamB
)

// Other returns the opposing team.
func (t Team) Other() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

func (t Team) String() string {
	if t == TeamA {
		return "A"
	}
	return "B"
}

// Slot is one of the four fixed player identities. Its value doubles as the
// client index into an input snapshot.
type Slot uint8

const (
	A1 Slot = iota
	A2
	B1
	B2
)

// NumSlots is the number of player slots in a round.
const NumSlots = 4

// Slots returns every slot in entity order.
func Slots() [NumSlots]Slot {
	return [NumSlots]Slot{A1, A2, B1, B2}
}

// Index returns the client index associated with the slot.
func (s Slot) Index() int {
	return int(s)
}

// Team returns the team the slot belongs to.
func (s Slot) Team() Team {
	switch s {
	case A1, A2:
		return TeamA
	case B1, B2:
		return TeamB
	}
	panic(fmt.Sprintf("roster: invalid slot %d", s))
}

// Partner returns the other slot on the same team.
func (s Slot) Partner() Slot {
	switch s {
	case A1:
		return A2
	case A2:
		return A1
	case B1:
		return B2
	case B2:
		return B1
	}
	panic(fmt.Sprintf("roster: partner of slot %d not in roster", s))
}

// IsPrimary reports whether the slot is the first of its team.
func (s Slot) IsPrimary() bool {
	return s == A1 || s == B1
}

func (s Slot) String() string {
	switch s {
	case A1:
		return "A1"
	case A2:
		return "A2"
	case B1:
		return "B1"
	case B2:
		return "B2"
	}
	return fmt.Sprintf("Slot(%d)", s)
}

// PlayerInfo links a human to a slot.
type PlayerInfo struct {
	// Number is the join order, 0 being P1.
	Number    int    `msgpack:"number"`
	Gamepad   uint32 `msgpack:"gamepad"`
	DualStick bool   `msgpack:"dual_stick"`
	Slot      Slot   `msgpack:"slot"`
}

// TeamMode tells whether a team is driven by one device or two.
type TeamMode uint8

const (
	// Single is one device controlling both players with two sticks.
	Single TeamMode = iota
	// Double is one device per player.
	Double
)

func (m TeamMode) String() string {
	if m == Double {
		return "double"
	}
	return "single"
}

// TeamInfo is the resolved device mapping of one team.
type TeamInfo struct {
	Mode      TeamMode   `msgpack:"mode"`
	Primary   PlayerInfo `msgpack:"primary"`
	Secondary PlayerInfo `msgpack:"secondary"`
}

// SingleTeam builds a dual-stick team from one player.
func SingleTeam(p PlayerInfo) TeamInfo {
	return TeamInfo{Mode: Single, Primary: p}
}

// DoubleTeam builds a two-device team.
func DoubleTeam(primary, secondary PlayerInfo) TeamInfo {
	return TeamInfo{Mode: Double, Primary: primary, Secondary: secondary}
}

// IsDualStick reports whether one device drives both players.
func (t TeamInfo) IsDualStick() bool {
	return t.Mode == Single
}

// SecondaryPlayer returns the info controlling the second character. For a
// single team it is the primary device on the partner slot.
func (t TeamInfo) SecondaryPlayer() PlayerInfo {
	if t.Mode == Single {
		p := t.Primary
		p.Slot = p.Slot.Partner()
		return p
	}
	return t.Secondary
}

// PlayersInfo is the immutable roster of a round.
type PlayersInfo struct {
	TeamA TeamInfo `msgpack:"team_a"`
	TeamB TeamInfo `msgpack:"team_b"`
}

// DefaultPlayersInfo is one device playing both teams with dual sticks.
func DefaultPlayersInfo() PlayersInfo {
	return PlayersInfo{
		TeamA: SingleTeam(PlayerInfo{Gamepad: 0, DualStick: true, Slot: A1}),
		TeamB: SingleTeam(PlayerInfo{Gamepad: 0, DualStick: true, Slot: B1}),
	}
}

// Team returns the info of the given team.
func (p PlayersInfo) Team(t Team) TeamInfo {
	if t == TeamA {
		return p.TeamA
	}
	return p.TeamB
}

// Entities returns the slots in the fixed entity order A1, A2, B1, B2.
func (p PlayersInfo) Entities() [NumSlots]Slot {
	return Slots()
}

// Partner returns the teammate of slot. Panics for a slot outside the roster.
func (p PlayersInfo) Partner(s Slot) Slot {
	return s.Partner()
}

// Mode summarises the roster for match history, e.g. "single/double".
func (p PlayersInfo) Mode() string {
	return p.TeamA.Mode.String() + "/" + p.TeamB.Mode.String()
}
