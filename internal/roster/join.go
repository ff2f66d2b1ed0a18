package roster

// JoinStage is the progress of one device through team select.
type JoinStage uint8

const (
	Empty JoinStage = iota
	Joined
	Set
	Ready
)

const errJoinOrder = "un-enforced join state ordering"

// Join tracks one device on the team select screen:
// Empty -> Joined{gamepad} -> Set{slot} -> Ready{dual stick}.
// Each step may only be taken from the stage before it; anything else is a
// caller bug and panics.
type Join struct {
	Stage     JoinStage
	Gamepad   uint32
	Slot      Slot
	DualStick bool
}

func (j *Join) Join(gamepad uint32) {
	if j.Stage != Empty {
		panic(errJoinOrder)
	}
	*j = Join{Stage: Joined, Gamepad: gamepad}
}

func (j *Join) Unjoin() {
	if j.Stage != Joined {
		panic(errJoinOrder)
	}
	*j = Join{}
}

func (j *Join) Set(slot Slot) {
	if j.Stage != Joined {
		panic(errJoinOrder)
	}
	j.Stage = Set
	j.Slot = slot
}

func (j *Join) Unset() {
	if j.Stage != Set {
		panic(errJoinOrder)
	}
	*j = Join{Stage: Joined, Gamepad: j.Gamepad}
}

func (j *Join) Ready() {
	if j.Stage != Set {
		panic(errJoinOrder)
	}
	j.Stage = Ready
	j.DualStick = false
}

func (j *Join) Unready() {
	if j.Stage != Ready {
		panic(errJoinOrder)
	}
	j.Stage = Set
	j.DualStick = false
}

func (j *Join) DualStickReady() {
	if j.Stage != Ready {
		panic(errJoinOrder)
	}
	j.DualStick = true
}

func (j *Join) UnDualStick() {
	if j.Stage != Ready {
		panic(errJoinOrder)
	}
	j.DualStick = false
}

// PlayerSlot returns the chosen slot once one is set.
func (j Join) PlayerSlot() (Slot, bool) {
	if j.Stage < Set {
		return 0, false
	}
	return j.Slot, true
}

func (j Join) IsGamepad(id uint32) bool { return j.Stage != Empty && j.Gamepad == id }
func (j Join) IsSlot(s Slot) bool       { return j.Stage >= Set && j.Slot == s }
func (j Join) IsJoined() bool           { return j.Stage != Empty }
func (j Join) IsSet() bool              { return j.Stage >= Set }
func (j Join) IsReady() bool            { return j.Stage == Ready }
func (j Join) IsDualStick() bool        { return j.Stage == Ready && j.DualStick }

// TeamSelect holds the join state of up to four devices.
type TeamSelect struct {
	Joins [NumSlots]Join
}

// AddGamepad joins a device into the first free entry. Already joined
// devices and a full screen are ignored.
func (ts *TeamSelect) AddGamepad(id uint32) {
	if _, ok := ts.index(id); ok {
		return
	}
	for i := range ts.Joins {
		if !ts.Joins[i].IsJoined() {
			ts.Joins[i].Join(id)
			return
		}
	}
}

// RemoveGamepad clears the entry of a device regardless of its stage.
func (ts *TeamSelect) RemoveGamepad(id uint32) {
	if i, ok := ts.index(id); ok {
		ts.Joins[i] = Join{}
	}
}

func (ts *TeamSelect) index(id uint32) (int, bool) {
	for i, j := range ts.Joins {
		if j.IsGamepad(id) {
			return i, true
		}
	}
	return 0, false
}

// ReadyGamepad advances a set device to ready, or a ready device to dual
// stick when its partner slot is free.
func (ts *TeamSelect) ReadyGamepad(id uint32) {
	i, ok := ts.index(id)
	if !ok {
		return
	}
	slot, ok := ts.Joins[i].PlayerSlot()
	if !ok {
		return
	}
	dualAble := !ts.IsSlotSet(slot.Partner())

	j := &ts.Joins[i]
	switch {
	case j.IsSet() && !j.IsReady():
		j.Ready()
	case j.IsReady() && dualAble:
		j.DualStickReady()
	}
}

// DualReady switches a ready device to dual stick if its partner slot is free.
func (ts *TeamSelect) DualReady(id uint32) {
	i, ok := ts.index(id)
	if !ok {
		return
	}
	slot, ok := ts.Joins[i].PlayerSlot()
	if !ok || ts.IsSlotSet(slot.Partner()) {
		return
	}
	if ts.Joins[i].IsReady() {
		ts.Joins[i].DualStickReady()
	}
}

// ReverseGamepad walks a device one stage back.
func (ts *TeamSelect) ReverseGamepad(id uint32) {
	for i := range ts.Joins {
		j := &ts.Joins[i]
		if !j.IsGamepad(id) {
			continue
		}
		switch {
		case j.IsDualStick():
			j.UnDualStick()
		case j.IsReady():
			j.Unready()
		case j.IsSet():
			j.Unset()
		case j.IsJoined():
			j.Unjoin()
		}
	}
}

func (ts *TeamSelect) nextSlot(team Team) (Slot, bool) {
	first, second := A1, A2
	if team == TeamB {
		first, second = B1, B2
	}
	var firstTaken, secondTaken bool
	for _, j := range ts.Joins {
		if !j.IsSet() {
			continue
		}
		if j.IsSlot(first) {
			firstTaken = true
			if j.IsDualStick() {
				secondTaken = true
			}
		}
		if j.IsSlot(second) {
			secondTaken = true
		}
	}
	if !firstTaken {
		return first, true
	}
	if !secondTaken {
		return second, true
	}
	return 0, false
}

// NextSlotA returns the next free slot on team A.
func (ts *TeamSelect) NextSlotA() (Slot, bool) { return ts.nextSlot(TeamA) }

// NextSlotB returns the next free slot on team B.
func (ts *TeamSelect) NextSlotB() (Slot, bool) { return ts.nextSlot(TeamB) }

// LeftGamepad moves a device toward team A: a device set on team B steps
// back to joined, a joined device takes the next free team A slot.
func (ts *TeamSelect) LeftGamepad(id uint32) {
	ts.move(id, TeamA)
}

// RightGamepad is LeftGamepad mirrored for team B.
func (ts *TeamSelect) RightGamepad(id uint32) {
	ts.move(id, TeamB)
}

func (ts *TeamSelect) move(id uint32, toward Team) {
	next, free := ts.nextSlot(toward)
	for i := range ts.Joins {
		j := &ts.Joins[i]
		if !j.IsGamepad(id) {
			continue
		}
		switch j.Stage {
		case Set:
			if j.Slot.Team() != toward {
				j.Unset()
			}
		case Joined:
			if free {
				j.Set(next)
			}
		}
	}
}

// IsReady reports whether the device has readied up.
func (ts *TeamSelect) IsReady(id uint32) bool {
	if i, ok := ts.index(id); ok {
		return ts.Joins[i].IsReady()
	}
	return false
}

// IsSlotDualStick reports whether slot is taken by a dual stick device.
func (ts *TeamSelect) IsSlotDualStick(s Slot) bool {
	for _, j := range ts.Joins {
		if j.IsSlot(s) && j.IsDualStick() {
			return true
		}
	}
	return false
}

// IsSlotReady reports whether slot is covered by a ready device, either
// directly or through a dual stick partner.
func (ts *TeamSelect) IsSlotReady(s Slot) bool {
	for _, j := range ts.Joins {
		if j.IsSlot(s) && j.IsReady() || j.IsSlot(s.Partner()) && j.IsDualStick() {
			return true
		}
	}
	return false
}

// IsSlotSet reports whether a device picked slot.
func (ts *TeamSelect) IsSlotSet(s Slot) bool {
	for _, j := range ts.Joins {
		if j.IsSlot(s) {
			return true
		}
	}
	return false
}

// PlayersInfo builds the roster from ready devices. It returns false until
// both teams are complete.
func (ts *TeamSelect) PlayersInfo() (PlayersInfo, bool) {
	var b playersBuilder
	for number, j := range ts.Joins {
		if !j.IsReady() {
			continue
		}
		b.insert(PlayerInfo{
			Number:    number,
			Gamepad:   j.Gamepad,
			DualStick: j.DualStick,
			Slot:      j.Slot,
		})
	}
	return b.finish()
}

type teamStage uint8

const (
	teamEmpty teamStage = iota
	teamPrimary
	teamSecondary
	teamSingle
	teamDouble
)

const errSlotTwice = "team slot taken twice"

type teamBuilder struct {
	stage     teamStage
	primary   PlayerInfo
	secondary PlayerInfo
}

func (b *teamBuilder) insertDualStick(p PlayerInfo) {
	if b.stage != teamEmpty {
		panic(errSlotTwice)
	}
	b.stage = teamSingle
	b.primary = p
}

func (b *teamBuilder) insertPrimary(p PlayerInfo) {
	switch b.stage {
	case teamEmpty:
		b.stage = teamPrimary
	case teamSecondary:
		b.stage = teamDouble
	default:
		panic(errSlotTwice)
	}
	b.primary = p
}

func (b *teamBuilder) insertSecondary(p PlayerInfo) {
	switch b.stage {
	case teamEmpty:
		b.stage = teamSecondary
	case teamPrimary:
		b.stage = teamDouble
	default:
		panic(errSlotTwice)
	}
	b.secondary = p
}

func (b teamBuilder) finish() (TeamInfo, bool) {
	switch b.stage {
	case teamSingle:
		return SingleTeam(b.primary), true
	case teamDouble:
		return DoubleTeam(b.primary, b.secondary), true
	}
	return TeamInfo{}, false
}

type playersBuilder struct {
	a, b teamBuilder
}

func (pb *playersBuilder) insert(p PlayerInfo) {
	tb := &pb.a
	if p.Slot.Team() == TeamB {
		tb = &pb.b
	}
	switch {
	case p.DualStick:
		tb.insertDualStick(p)
	case p.Slot.IsPrimary():
		tb.insertPrimary(p)
	default:
		tb.insertSecondary(p)
	}
}

func (pb playersBuilder) finish() (PlayersInfo, bool) {
	a, ok := pb.a.finish()
	if !ok {
		return PlayersInfo{}, false
	}
	b, ok := pb.b.finish()
	if !ok {
		return PlayersInfo{}, false
	}
	return PlayersInfo{TeamA: a, TeamB: b}, true
}
