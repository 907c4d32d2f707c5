package game

import (
	"github.com/dekarrin/gamecmd/internal/command"
)

// File store.go holds the handlers for trading with the store and using the
// home. Both are reached through a shop entrance, and while inside the player
// gives commands in the store context.

// sellFraction is how much of an object's value the store pays for it.
const sellFraction = 2

// countOf describes n of the same kind of object as obj.
func countOf(obj *Object, n int) string {
	one := *obj
	one.Count = n
	one.Note = ""
	return one.Describe()
}

func (s *State) inStore() bool {
	if s.ctx != command.ContextStore {
		s.msg("You are not in a store.")
		return false
	}
	return true
}

func (s *State) cmdEnterStore(rc command.RepeatControl, id command.ID, args command.Args) {
	if s.Level.At(s.Player.X, s.Player.Y).Kind != ShopEntrance {
		s.msg("You see no store here.")
		return
	}
	s.ctx = command.ContextStore
	s.msg("You enter the store.")
}

func (s *State) cmdLeaveStore(rc command.RepeatControl, id command.ID, args command.Args) {
	if !s.inStore() {
		return
	}
	s.ctx = command.ContextGame
	s.msg("You leave the store.")
}

func (s *State) cmdSell(rc command.RepeatControl, id command.ID, args command.Args) {
	if !s.inStore() {
		return
	}
	obj := s.objectArg(Sell, args)
	if obj == nil {
		return
	}
	amt, _ := args.Number(1)
	if amt < 1 {
		amt = 1
	}

	part := s.split(obj, amt)
	price := part.Value * part.Count / sellFraction
	desc := countOf(part, part.Count)
	part.Note = ""
	s.place(part, InStore, 0, 0)

	s.Player.Gold += price
	s.msg("You sold %s for %d gold.", desc, price)
}

func (s *State) cmdBuy(rc command.RepeatControl, id command.ID, args command.Args) {
	if !s.inStore() {
		return
	}
	ref, _ := args.Choice(0)
	obj := s.Object(ref)
	if obj == nil || obj.Where != InStore {
		s.msg("The store does not have that.")
		return
	}
	amt, _ := args.Number(1)
	if amt < 1 {
		amt = 1
	}
	if amt > obj.Count {
		amt = obj.Count
	}

	price := obj.Value * amt
	if price > s.Player.Gold {
		s.msg("You do not have enough gold for this item.")
		return
	}

	part := s.split(obj, amt)
	s.Player.Gold -= price
	held := s.place(part, InInventory, 0, 0)
	s.msg("You bought %s for %d gold. You have %s.", countOf(held, amt), price, held.Describe())
}

func (s *State) cmdStash(rc command.RepeatControl, id command.ID, args command.Args) {
	if !s.inStore() {
		return
	}
	obj := s.objectArg(Stash, args)
	if obj == nil {
		return
	}
	amt, _ := args.Number(1)
	if amt < 1 {
		amt = 1
	}

	part := s.split(obj, amt)
	desc := part.Describe()
	s.place(part, InHome, 0, 0)
	s.msg("You drop %s in your home.", desc)
}

func (s *State) cmdRetrieve(rc command.RepeatControl, id command.ID, args command.Args) {
	if !s.inStore() {
		return
	}
	ref, _ := args.Choice(0)
	obj := s.Object(ref)
	if obj == nil || obj.Where != InHome {
		s.msg("That is not in your home.")
		return
	}
	amt, _ := args.Number(1)
	if amt < 1 {
		amt = 1
	}

	part := s.split(obj, amt)
	held := s.place(part, InInventory, 0, 0)
	s.msg("You have %s.", held.Describe())
}
