package game

import (
	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/direction"
	"github.com/dekarrin/gamecmd/internal/util"
)

// File actions.go holds the handlers for commands that move the player or act
// on the terrain.

// maxRunSteps stops a run from going on forever in an open area.
const maxRunSteps = 100

// trapDamage is the damage done by setting off a trap.
const trapDamage = 3

// RestAsNeeded and RestUntilHealed are the special rest counts. Any positive
// count rests that many turns.
const (
	RestAsNeeded    = -2
	RestUntilHealed = -1
)

// towards returns the grid one step from the player in direction d.
func (s *State) towards(d direction.Dir) (int, int) {
	dx, dy := d.Offset()
	return s.Player.X + dx, s.Player.Y + dy
}

// heal restores up to n hit points.
func (s *State) heal(n int) {
	s.Player.HP += n
	if s.Player.HP > s.Player.MaxHP {
		s.Player.HP = s.Player.MaxHP
	}
}

// hurt takes away n hit points, killing the player if none are left.
func (s *State) hurt(n int) {
	s.Player.HP -= n
	if s.Player.HP <= 0 {
		s.Player.HP = 0
		s.Player.Dead = true
		s.ctx = command.ContextDeath
		s.msg("You die.")
	}
}

// step moves the player one grid in direction d. It returns whether nothing
// happened that should stop a repeated or continued movement.
func (s *State) step(d direction.Dir) bool {
	if !d.Known() || d == direction.None {
		return false
	}
	x, y := s.towards(d)
	t := s.Level.At(x, y)

	if !t.Passable() {
		switch {
		case t.Kind == Rubble:
			s.msg("There is a pile of rubble in the way.")
		case t.IsDoor():
			s.msg("There is a door in the way.")
		default:
			s.msg("There is a wall in the way.")
		}
		return false
	}

	s.Player.X, s.Player.Y = x, y
	undisturbed := true

	switch t.Kind {
	case HiddenTrap:
		s.Level.Set(x, y, Tile{Kind: Trap})
		s.msg("You found a trap!")
		fallthrough
	case Trap:
		s.msg("You fall into a pit!")
		s.hurt(trapDamage)
		undisturbed = false
	case StairUp, StairDown, ShopEntrance:
		s.msg("There is %s here.", util.ArticleFor(t.Name(), false)+" "+t.Name())
		undisturbed = false
	}

	if objs := s.floorAt(x, y); len(objs) > 0 {
		var names []string
		for _, obj := range objs {
			names = append(names, obj.Describe())
		}
		s.msg("You see %s.", util.MakeTextList(names, false))
		undisturbed = false
	}

	if s.Player.Searching && s.search() {
		undisturbed = false
	}

	return undisturbed
}

// search looks for traps around the player and returns whether any were
// found.
func (s *State) search() bool {
	found := false
	check := func(x, y int) {
		if s.Level.At(x, y).Kind == HiddenTrap {
			s.Level.Set(x, y, Tile{Kind: Trap})
			found = true
		}
	}

	check(s.Player.X, s.Player.Y)
	for _, d := range direction.Compass() {
		check(s.towards(d))
	}

	if found {
		s.msg("You have found a trap.")
	}
	return found
}

func (s *State) cmdWalk(rc command.RepeatControl, id command.ID, args command.Args) {
	d, _ := args.Direction(0)
	if !s.step(d) {
		rc.CancelRepeat()
	}
}

// cmdJump moves without stopping to disarm traps. With no monsters about it
// is a plain step.
func (s *State) cmdJump(rc command.RepeatControl, id command.ID, args command.Args) {
	d, _ := args.Direction(0)
	s.step(d)
}

func (s *State) cmdRun(rc command.RepeatControl, id command.ID, args command.Args) {
	d, _ := args.Direction(0)
	for i := 0; i < maxRunSteps; i++ {
		if !s.step(d) || s.Player.Dead {
			return
		}
		// stop before walking into something
		if !s.Level.At(s.towards(d)).Passable() {
			return
		}
		if n, _, _ := s.Level.countAdjacent(s.Player.X, s.Player.Y, false, Tile.IsDoor); n > 0 {
			return
		}
	}
}

func (s *State) cmdPathfind(rc command.RepeatControl, id command.ID, args command.Args) {
	pt, _ := args.Point(0)
	if !s.Level.InBounds(pt.X, pt.Y) {
		s.msg("That is off the map.")
		return
	}

	path := s.findPath(s.Player.X, s.Player.Y, pt.X, pt.Y)
	if path == nil {
		s.msg("There is no known path to there.")
		return
	}

	for _, next := range path[1:] {
		d := direction.Motion(s.Player.X, s.Player.Y, next[0], next[1])
		if !s.step(d) || s.Player.Dead {
			return
		}
	}
}

func (s *State) cmdHold(rc command.RepeatControl, id command.ID, args command.Args) {
	if s.Player.Searching && s.search() {
		rc.CancelRepeat()
	}
	if s.Level.At(s.Player.X, s.Player.Y).Kind == ShopEntrance {
		s.cmdEnterStore(rc, EnterStore, command.Args{})
	}
}

func (s *State) cmdSearch(rc command.RepeatControl, id command.ID, args command.Args) {
	if s.search() {
		rc.CancelRepeat()
		return
	}
	if rc.RepeatCount() <= 1 {
		s.msg("You find nothing of interest.")
	}
}

func (s *State) cmdToggleSearch(rc command.RepeatControl, id command.ID, args command.Args) {
	s.Player.Searching = !s.Player.Searching
	if s.Player.Searching {
		s.msg("You begin searching.")
	} else {
		s.msg("You stop searching.")
	}
}

func (s *State) cmdGoUp(rc command.RepeatControl, id command.ID, args command.Args) {
	if s.Level.At(s.Player.X, s.Player.Y).Kind != StairUp {
		s.msg("I see no up staircase here.")
		return
	}
	if s.Level.Depth > 0 {
		s.Level.Depth--
	}
	s.msg("You enter a maze of up staircases.")
}

func (s *State) cmdGoDown(rc command.RepeatControl, id command.ID, args command.Args) {
	if s.Level.At(s.Player.X, s.Player.Y).Kind != StairDown {
		s.msg("I see no down staircase here.")
		return
	}
	s.Level.Depth++
	s.msg("You enter a maze of down staircases.")
}

func (s *State) cmdRest(rc command.RepeatControl, id command.ID, args command.Args) {
	turns, ok := args.Choice(0)
	if !ok {
		turns = RestAsNeeded
	}

	if turns == RestAsNeeded || turns == RestUntilHealed {
		if s.Player.HP >= s.Player.MaxHP {
			s.msg("You have no need to rest.")
			return
		}
		turns = s.Player.MaxHP - s.Player.HP
	}
	if turns <= 0 {
		return
	}

	s.heal(turns)
	s.msg("You rest for %d turns.", turns)
}

// work applies one turn of work to the tile at (x, y) and returns whether it
// gave way.
func (s *State) work(x, y int) bool {
	t := s.Level.At(x, y)
	t.Work++
	s.Level.Set(x, y, t)
	return t.Remaining() == 0
}

func (s *State) cmdOpen(rc command.RepeatControl, id command.ID, args command.Args) {
	d, _ := args.Direction(0)
	x, y := s.towards(d)

	switch s.Level.At(x, y).Kind {
	case DoorClosed:
		s.Level.Set(x, y, Tile{Kind: DoorOpen})
		s.msg("You open the door.")
	case DoorLocked:
		if !s.work(x, y) {
			s.msg("You failed to pick the lock.")
			return
		}
		s.Level.Set(x, y, Tile{Kind: DoorOpen})
		s.msg("You have picked the lock.")
	default:
		s.msg("You see nothing there to open.")
	}
	rc.CancelRepeat()
}

func (s *State) cmdClose(rc command.RepeatControl, id command.ID, args command.Args) {
	d, _ := args.Direction(0)
	x, y := s.towards(d)

	switch s.Level.At(x, y).Kind {
	case DoorOpen:
		if len(s.floorAt(x, y)) > 0 {
			s.msg("There seems to be something in the way.")
			break
		}
		s.Level.Set(x, y, Tile{Kind: DoorClosed})
		s.msg("You close the door.")
	case DoorBroken:
		s.msg("The door appears to be broken.")
	default:
		s.msg("You see nothing there to close.")
	}
	rc.CancelRepeat()
}

func (s *State) cmdTunnel(rc command.RepeatControl, id command.ID, args command.Args) {
	d, _ := args.Direction(0)
	x, y := s.towards(d)
	t := s.Level.At(x, y)

	switch {
	case t.Kind == Granite:
		s.msg("This seems to be permanent rock.")
	case t.Kind == Rubble:
		if !s.work(x, y) {
			s.msg("You dig in the rubble.")
			return
		}
		s.Level.Set(x, y, Tile{Kind: Floor})
		s.msg("You have removed the rubble.")
	case t.Kind == Vein:
		if !s.work(x, y) {
			s.msg("You tunnel into the mineral vein.")
			return
		}
		s.Level.Set(x, y, Tile{Kind: Floor})
		s.msg("You have finished the tunnel.")
	case t.IsDoor():
		s.msg("You cannot tunnel through doors.")
	default:
		s.msg("You see nothing there to tunnel.")
	}
	rc.CancelRepeat()
}

func (s *State) cmdDisarm(rc command.RepeatControl, id command.ID, args command.Args) {
	d, _ := args.Direction(0)
	x, y := s.towards(d)

	if s.Level.At(x, y).Kind != Trap {
		s.msg("You see nothing there to disarm.")
		rc.CancelRepeat()
		return
	}

	if !s.work(x, y) {
		s.msg("You failed to disarm the trap.")
		return
	}
	s.Level.Set(x, y, Tile{Kind: Floor})
	s.msg("You have disarmed the trap.")
	rc.CancelRepeat()
}

func (s *State) cmdBash(rc command.RepeatControl, id command.ID, args command.Args) {
	d, _ := args.Direction(0)
	x, y := s.towards(d)

	if !s.Level.At(x, y).IsClosedDoor() {
		s.msg("You see nothing there to bash.")
		rc.CancelRepeat()
		return
	}

	s.msg("You smash into the door!")
	if !s.work(x, y) {
		s.msg("The door holds firm.")
		return
	}
	s.Level.Set(x, y, Tile{Kind: DoorBroken})
	s.msg("The door crashes open!")
	rc.CancelRepeat()
}

// cmdAlter does whatever makes the most sense for the terrain in the given
// direction.
func (s *State) cmdAlter(rc command.RepeatControl, id command.ID, args command.Args) {
	d, _ := args.Direction(0)

	switch s.Level.At(s.towards(d)).Kind {
	case Granite, Vein, Rubble:
		s.cmdTunnel(rc, Tunnel, args)
	case DoorClosed, DoorLocked:
		s.cmdOpen(rc, Open, args)
	case DoorOpen:
		s.cmdClose(rc, Close, args)
	case Trap:
		s.cmdDisarm(rc, Disarm, args)
	default:
		s.msg("You spin around.")
		rc.CancelRepeat()
	}
}

func (s *State) cmdJam(rc command.RepeatControl, id command.ID, args command.Args) {
	d, _ := args.Direction(0)
	x, y := s.towards(d)

	if !s.Level.At(x, y).IsClosedDoor() {
		s.msg("You see nothing there to spike.")
		return
	}

	spikes := s.Objects.Sorted(func(o *Object) bool { return o.Class == ClassSpike && o.Where == InInventory })
	if len(spikes) == 0 {
		s.msg("You have no spikes!")
		return
	}

	s.destroy(spikes[0], 1)
	s.Level.Set(x, y, Tile{Kind: DoorLocked})
	s.msg("You jam the door with a spike.")
}
