package game

import (
	"sort"

	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/util"
)

type spell struct {
	name  string
	aimed bool

	// heal is how many hit points casting the spell restores.
	heal int
}

// spellBook is every spell there is. A spell is referred to by its index.
// Any book teaches any of them.
var spellBook = []spell{
	{name: "Magic Missile", aimed: true},
	{name: "Detect Monsters"},
	{name: "Phase Door"},
	{name: "Cure Light Wounds", heal: 15},
	{name: "Stinking Cloud", aimed: true},
}

// spellChoices gives prompt choices for the spells with the given indexes, in
// index order.
func spellChoices(idx []int) []command.Choice {
	sorted := append([]int{}, idx...)
	sort.Ints(sorted)

	choices := make([]command.Choice, 0, len(sorted))
	for _, i := range sorted {
		if i < 0 || i >= len(spellBook) {
			continue
		}
		choices = append(choices, command.Choice{Value: i, Label: spellBook[i].name})
	}
	return choices
}

// learnable returns the indexes of the spells the player does not know yet.
func (s *State) learnable() []int {
	var idx []int
	for i := range spellBook {
		if !s.Player.Spells.Has(i) {
			idx = append(idx, i)
		}
	}
	return idx
}

func (s *State) hasBook() bool {
	for _, obj := range s.Objects {
		if obj.Class == ClassBook && obj.Where == InInventory {
			return true
		}
	}
	return false
}

func (s *State) cmdBrowse(rc command.RepeatControl, id command.ID, args command.Args) {
	if s.Player.Spells.Empty() {
		s.msg("You don't know any spells.")
		return
	}

	var names []string
	for _, c := range spellChoices(s.Player.Spells.Elements()) {
		names = append(names, c.Label)
	}
	s.msg("You know %s.", util.MakeTextList(names, false))
}

func (s *State) cmdStudySpell(rc command.RepeatControl, id command.ID, args command.Args) {
	idx, _ := args.Choice(0)
	if idx < 0 || idx >= len(spellBook) {
		s.msg("There is no such spell.")
		return
	}
	if !s.hasBook() {
		s.msg("You have no books that you can read.")
		return
	}
	s.learn(idx)
}

func (s *State) cmdStudyBook(rc command.RepeatControl, id command.ID, args command.Args) {
	ref, _ := args.Item(0)
	obj := s.Object(ref)
	if obj == nil || obj.Class != ClassBook {
		s.msg("You cannot learn anything from that.")
		return
	}

	learnable := s.learnable()
	if len(learnable) == 0 {
		s.msg("You cannot learn any new spells from that book.")
		return
	}
	s.learn(learnable[0])
}

func (s *State) learn(idx int) {
	if s.Player.Spells.Has(idx) {
		s.msg("You already know the spell of %s.", spellBook[idx].name)
		return
	}
	s.Player.Spells.Add(idx)
	s.msg("You have learned the spell of %s.", spellBook[idx].name)
}

func (s *State) cmdCast(rc command.RepeatControl, id command.ID, args command.Args) {
	idx, _ := args.Choice(0)
	if !s.Player.Spells.Has(idx) || idx >= len(spellBook) {
		s.msg("You don't know that spell.")
		return
	}

	sp := spellBook[idx]
	if d, ok := args.Aim(1); ok && sp.aimed {
		s.msg("You cast %s %s.", sp.name, aimPhrase(d))
	} else {
		s.msg("You cast %s.", sp.name)
	}

	if sp.heal > 0 {
		s.heal(sp.heal)
	}
}
