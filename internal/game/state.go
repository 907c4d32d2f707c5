package game

import (
	"fmt"

	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/util"
	"github.com/dekarrin/rosed"
)

var textFormatOptions = rosed.Options{
	PreserveParagraphs: true,
	IndentStr:          "  ",
}

// IODevice is how the State talks to the player outside of prompts.
type IODevice struct {
	// The width of each line of output.
	Width int

	// a function to send output. If s is empty, an empty line is sent.
	Output func(s string, a ...interface{}) error
}

// Options are the settings a State is created with.
type Options struct {
	// EasyOpen makes open, close and disarm pick the only possible direction
	// when one is not given.
	EasyOpen bool

	// IO is where messages go. If Output is nil, messages are dropped.
	IO IODevice

	// SavePath is where the save command writes the level. If empty, saving
	// reports that there is nowhere to save to.
	SavePath string
}

// Player is the state of the player character.
type Player struct {
	X, Y int

	HP    int
	MaxHP int

	Gold int

	// Searching is whether the player searches on every step.
	Searching bool

	// Spells is the set of spell indexes the player has learned.
	Spells util.KeySet[int]

	Dead bool
}

// State is the game's entire state. It implements command.Resolver for the
// commands in its Catalog.
type State struct {
	Level  *Level
	Player Player

	// Objects is every object that exists. Using up or destroying an object
	// removes it.
	Objects Inventory

	ctx      command.Context
	nextRef  int
	easyOpen bool
	io       IODevice
	savePath string
	quitting bool

	// target is the grid the player has targeted, if any.
	target *[2]int

	// catalog is kept so that help can describe every command.
	catalog []command.Entry

	paths *Pathfinder
}

// New creates a new State from loaded level data. It performs basic sanity
// checks to ensure that a valid level is being passed in.
func New(data LevelData, opts Options) (*State, error) {
	if opts.IO.Width < 2 {
		opts.IO.Width = 80
	}
	if opts.IO.Output == nil {
		opts.IO.Output = func(string, ...interface{}) error { return nil }
	}
	if data.Level == nil {
		return nil, fmt.Errorf("level data has no map")
	}

	s := &State{
		Level:    data.Level,
		Player:   data.Player,
		Objects:  Inventory{},
		ctx:      command.ContextGame,
		nextRef:  1,
		easyOpen: opts.EasyOpen,
		io:       opts.IO,
		savePath: opts.SavePath,
	}
	if s.Player.Spells == nil {
		s.Player.Spells = util.NewKeySet[int]()
	}
	if s.Player.MaxHP < 1 {
		s.Player.MaxHP = 1
	}
	if s.Player.HP < 1 || s.Player.HP > s.Player.MaxHP {
		s.Player.HP = s.Player.MaxHP
	}

	if !s.Level.At(s.Player.X, s.Player.Y).Passable() {
		return nil, fmt.Errorf("player start (%d, %d) is not passable", s.Player.X, s.Player.Y)
	}

	ringsWorn := 0
	for i := range data.Objects {
		obj := data.Objects[i]
		if obj.Ref < 1 {
			obj.Ref = s.nextRef
		}
		if _, dup := s.Objects[obj.Ref]; dup {
			return nil, fmt.Errorf("objects[%d]: reference %d is used twice", i, obj.Ref)
		}
		if obj.Count < 1 {
			obj.Count = 1
		}

		if obj.Where == InEquipment {
			obj.Slot = obj.wieldSlot()
			if obj.Slot < 0 {
				return nil, fmt.Errorf("objects[%d]: a %s cannot be worn", i, obj.Class)
			}
			if obj.Class == ClassRing {
				if ringsWorn >= 2 {
					return nil, fmt.Errorf("objects[%d]: only two rings can be worn", i)
				}
				obj.Slot += ringsWorn
				ringsWorn++
			}
			if s.equipped(obj.Slot) != nil {
				return nil, fmt.Errorf("objects[%d]: %s slot is already taken", i, slotName(obj.Slot))
			}
		}
		if obj.Where == OnFloor && !s.Level.InBounds(obj.X, obj.Y) {
			return nil, fmt.Errorf("objects[%d]: floor position (%d, %d) is outside the level", i, obj.X, obj.Y)
		}

		s.Objects[obj.Ref] = &obj
		if obj.Ref >= s.nextRef {
			s.nextRef = obj.Ref + 1
		}
	}

	return s, nil
}

// Context returns the context commands are currently being given in.
func (s *State) Context() command.Context {
	return s.ctx
}

// Quitting returns whether the player has asked to stop playing.
func (s *State) Quitting() bool {
	return s.quitting
}

// SetTarget sets the grid that aimed commands fire at when told to use the
// current target.
func (s *State) SetTarget(x, y int) {
	s.target = &[2]int{x, y}
}

// ClearTarget forgets the current target.
func (s *State) ClearTarget() {
	s.target = nil
}

// targetOkay returns whether there is a usable target.
func (s *State) targetOkay() bool {
	return s.target != nil && s.Level.InBounds(s.target[0], s.target[1])
}

// ItemExists returns whether ref refers to an object that still exists.
func (s *State) ItemExists(ref int) bool {
	_, ok := s.Objects[ref]
	return ok
}

// Object returns the object with the given reference, or nil if there is none.
func (s *State) Object(ref int) *Object {
	return s.Objects[ref]
}

// msg sends a message to the player, wrapped to the output width.
func (s *State) msg(format string, a ...interface{}) {
	text := fmt.Sprintf(format, a...)
	text = rosed.Edit(text).WithOptions(textFormatOptions).Wrap(s.io.Width).String()

	// nothing useful can be done about a failed write in the middle of a
	// command
	_ = s.io.Output("%s\n", text)
}

// inventory returns the objects the player is carrying but not wearing.
func (s *State) inventory() []*Object {
	return s.Objects.Sorted(func(o *Object) bool { return o.Where == InInventory })
}

// floorAt returns the objects on the floor at (x, y).
func (s *State) floorAt(x, y int) []*Object {
	return s.Objects.Sorted(func(o *Object) bool {
		return o.Where == OnFloor && o.X == x && o.Y == y
	})
}

// equipped returns the object worn in the given slot, or nil.
func (s *State) equipped(slot int) *Object {
	for _, obj := range s.Objects {
		if obj.Where == InEquipment && obj.Slot == slot {
			return obj
		}
	}
	return nil
}

// reachable returns whether the player can get at obj without moving.
func (s *State) reachable(obj *Object) bool {
	switch obj.Where {
	case InInventory, InEquipment:
		return true
	case OnFloor:
		return obj.X == s.Player.X && obj.Y == s.Player.Y
	default:
		return false
	}
}

// destroy removes count of obj from existence. If none are left, the object's
// reference stops being valid.
func (s *State) destroy(obj *Object, count int) {
	obj.Count -= count
	if obj.Count <= 0 {
		delete(s.Objects, obj.Ref)
	}
}

// split takes count of obj off its stack and returns them as a new object with
// its own reference. If count is the whole stack, obj itself is returned.
func (s *State) split(obj *Object, count int) *Object {
	if count >= obj.Count {
		return obj
	}

	part := *obj
	part.Ref = s.nextRef
	part.Count = count
	s.nextRef++

	obj.Count -= count
	s.Objects[part.Ref] = &part
	return &part
}

// place puts obj into the given location, merging it into a matching stack
// already there if one exists. The object that now holds it is returned.
func (s *State) place(obj *Object, where Location, x, y int) *Object {
	for _, other := range s.Objects {
		if other == obj || other.Label != obj.Label || other.Where != where || other.Note != obj.Note {
			continue
		}
		if where == OnFloor && (other.X != x || other.Y != y) {
			continue
		}
		if where == InEquipment {
			continue
		}

		other.Count += obj.Count
		delete(s.Objects, obj.Ref)
		return other
	}

	obj.Where = where
	obj.X, obj.Y = x, y
	return obj
}

func slotName(slot int) string {
	if slot < 0 || slot >= SlotCount {
		return fmt.Sprintf("slot %d", slot)
	}
	return slotNames[slot]
}
