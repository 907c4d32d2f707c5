package game

import (
	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/direction"
	"github.com/dekarrin/gamecmd/internal/util"
)

// File use.go holds the handlers for commands that act on objects.

// missileRange is the furthest a thrown or fired object travels.
const missileRange = 10

// fuelPerFlask is the turns of light added by refueling from a flask.
const fuelPerFlask = 7500

// aimPhrase describes an aim for messages, such as "to the north".
func aimPhrase(d direction.Dir) string {
	switch {
	case d == direction.Target:
		return "at your target"
	case d.Known():
		return "to the " + d.String()
	default:
		return "at nothing in particular"
	}
}

// usableBy returns whether obj is the right sort of object for id.
func usableBy(id command.ID, obj *Object) bool {
	sel, ok := itemSelectors[id]
	return !ok || sel.filter == nil || sel.filter(obj)
}

// objectArg returns the object in slot 0 of args, or nil with a message shown
// if it cannot be used by the command.
func (s *State) objectArg(id command.ID, args command.Args) *Object {
	ref, _ := args.Item(0)
	obj := s.Object(ref)
	if obj == nil {
		s.msg("You have nothing to %s.", Verb(id))
		return nil
	}
	if !s.reachable(obj) {
		s.msg("You cannot reach %s.", obj.Describe())
		return nil
	}
	if !usableBy(id, obj) {
		s.msg("You cannot %s that.", Verb(id))
		return nil
	}
	return obj
}

func (s *State) cmdUse(rc command.RepeatControl, id command.ID, args command.Args) {
	obj := s.objectArg(id, args)
	if obj == nil {
		return
	}
	aim, _ := args.Aim(1)
	name := obj.Name

	switch obj.Class {
	case ClassFood:
		s.destroy(obj, 1)
		s.heal(2)
		s.msg("That tastes good.")
	case ClassPotion:
		s.destroy(obj, 1)
		s.heal(10)
		s.msg("You feel better.")
	case ClassScroll:
		s.destroy(obj, 1)
		if obj.NeedsAim() {
			s.msg("You read the %s %s. It crumbles to dust.", name, aimPhrase(aim))
		} else {
			s.msg("You read the %s. It crumbles to dust.", name)
		}
	case ClassStaff, ClassWand:
		if obj.Charges <= 0 {
			s.msg("The %s has no charges left.", name)
			return
		}
		obj.Charges--
		if obj.Class == ClassWand {
			s.msg("You aim the %s %s.", name, aimPhrase(aim))
		} else {
			s.msg("You use the %s.", name)
		}
	case ClassRod:
		if obj.NeedsAim() {
			s.msg("You zap the %s %s.", name, aimPhrase(aim))
		} else {
			s.msg("You zap the %s.", name)
		}
	case ClassAmmo:
		s.cmdFire(rc, Fire, args)
	default:
		if !obj.Activates {
			s.msg("You cannot %s that.", Verb(id))
			return
		}
		if obj.NeedsAim() {
			s.msg("You activate the %s %s.", name, aimPhrase(aim))
		} else {
			s.msg("You activate the %s.", name)
		}
	}
}

// launch sends one of obj flying in direction d and returns where it lands.
func (s *State) launch(obj *Object, d direction.Dir) *Object {
	one := s.split(obj, 1)

	x, y := s.Player.X, s.Player.Y
	if d == direction.Target && s.targetOkay() {
		x, y = s.target[0], s.target[1]
	} else {
		dx, dy := d.Offset()
		for i := 0; i < missileRange && (dx != 0 || dy != 0); i++ {
			nx, ny := x+dx, y+dy
			if !s.Level.At(nx, ny).Passable() {
				break
			}
			x, y = nx, ny
		}
	}

	return s.place(one, OnFloor, x, y)
}

func (s *State) cmdFire(rc command.RepeatControl, id command.ID, args command.Args) {
	obj := s.objectArg(Fire, args)
	if obj == nil {
		return
	}
	if s.equipped(SlotBow) == nil {
		s.msg("You have nothing to fire with.")
		return
	}

	aim, _ := args.Aim(1)
	name := obj.Name
	s.launch(obj, aim)
	s.msg("You fire %s %s %s.", util.ArticleFor(name, false), name, aimPhrase(aim))
}

func (s *State) cmdThrow(rc command.RepeatControl, id command.ID, args command.Args) {
	obj := s.objectArg(Throw, args)
	if obj == nil {
		return
	}

	aim, _ := args.Aim(1)
	name := obj.Name
	s.launch(obj, aim)
	s.msg("You throw %s %s %s.", util.ArticleFor(name, false), name, aimPhrase(aim))
}

func (s *State) cmdRefill(rc command.RepeatControl, id command.ID, args command.Args) {
	obj := s.objectArg(Refill, args)
	if obj == nil {
		return
	}

	light := s.equipped(SlotLight)
	if light == nil {
		s.msg("You are not wielding a light.")
		return
	}

	fuel := obj.Charges
	if fuel <= 0 {
		fuel = fuelPerFlask
	}
	s.destroy(obj, 1)
	light.Charges += fuel
	s.msg("You fuel your %s.", light.Name)
}

func (s *State) cmdPickup(rc command.RepeatControl, id command.ID, args command.Args) {
	ref, ok := args.Item(0)
	obj := s.Object(ref)
	if !ok || obj == nil || obj.Where != OnFloor || obj.X != s.Player.X || obj.Y != s.Player.Y {
		s.msg("There is nothing here to pick up.")
		return
	}

	held := s.place(obj, InInventory, 0, 0)
	s.msg("You have %s.", held.Describe())
}

// cmdAutoPickup picks up everything here that stacks with something already
// carried.
func (s *State) cmdAutoPickup(rc command.RepeatControl, id command.ID, args command.Args) {
	carried := util.NewKeySet[string]()
	for _, obj := range s.inventory() {
		carried.Add(obj.Label)
	}

	for _, obj := range s.floorAt(s.Player.X, s.Player.Y) {
		if carried.Has(obj.Label) {
			held := s.place(obj, InInventory, 0, 0)
			s.msg("You have %s.", held.Describe())
		}
	}
}

func (s *State) cmdWield(rc command.RepeatControl, id command.ID, args command.Args) {
	obj := s.objectArg(Wield, args)
	if obj == nil {
		return
	}
	slot, ok := args.Number(1)
	if !ok {
		slot = obj.wieldSlot()
	}
	if slot < 0 || slot >= SlotCount {
		s.msg("You cannot wear or wield %s.", obj.Describe())
		return
	}

	if old := s.equipped(slot); old != nil {
		if old == obj {
			s.msg("You are already using that.")
			return
		}
		s.msg("You were wearing %s.", old.Describe())
		s.place(old, InInventory, 0, 0)
	}

	worn := s.split(obj, 1)
	worn.Where = InEquipment
	worn.Slot = slot
	s.msg("You are wearing %s (%s).", worn.Describe(), slotName(slot))
}

func (s *State) cmdTakeOff(rc command.RepeatControl, id command.ID, args command.Args) {
	obj := s.objectArg(TakeOff, args)
	if obj == nil {
		return
	}
	if obj.Where != InEquipment {
		s.msg("You are not wearing that.")
		return
	}

	s.msg("You were wearing %s.", obj.Describe())
	s.place(obj, InInventory, 0, 0)
}

func (s *State) cmdDrop(rc command.RepeatControl, id command.ID, args command.Args) {
	obj := s.objectArg(Drop, args)
	if obj == nil {
		return
	}
	amt, ok := args.Number(1)
	if !ok || amt < 1 {
		amt = 1
	}

	part := s.split(obj, amt)
	desc := part.Describe()
	s.place(part, OnFloor, s.Player.X, s.Player.Y)
	s.msg("You drop %s.", desc)
}

func (s *State) cmdInscribe(rc command.RepeatControl, id command.ID, args command.Args) {
	obj := s.objectArg(Inscribe, args)
	if obj == nil {
		return
	}
	text, _ := args.Text(1)

	obj.Note = text
	s.msg("You inscribe %s.", obj.Describe())
}

func (s *State) cmdUninscribe(rc command.RepeatControl, id command.ID, args command.Args) {
	obj := s.objectArg(Uninscribe, args)
	if obj == nil {
		return
	}
	if obj.Note == "" {
		s.msg("That item had no inscription to remove.")
		return
	}

	obj.Note = ""
	s.msg("Inscription removed.")
}

func (s *State) cmdDestroy(rc command.RepeatControl, id command.ID, args command.Args) {
	rc.DisableRepeat()

	obj := s.objectArg(Destroy, args)
	if obj == nil {
		return
	}

	desc := obj.Describe()
	s.destroy(obj, obj.Count)
	s.msg("You ignore %s.", desc)
}

func (s *State) cmdSuicide(rc command.RepeatControl, id command.ID, args command.Args) {
	rc.DisableRepeat()
	s.Player.Dead = true
	s.ctx = command.ContextDeath
	s.msg("You have retired.")
}

func (s *State) cmdSave(rc command.RepeatControl, id command.ID, args command.Args) {
	rc.DisableRepeat()
	if s.savePath == "" {
		s.msg("There is nowhere to save the game to.")
		return
	}

	if err := SaveLevelFile(s, s.savePath); err != nil {
		s.msg("Saving game... failed!")
		return
	}
	s.msg("Saving game... done.")
}

func (s *State) cmdQuit(rc command.RepeatControl, id command.ID, args command.Args) {
	rc.DisableRepeat()
	s.quitting = true
}
