package game

import (
	"fmt"

	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/gcerrors"
	"github.com/dekarrin/gamecmd/internal/util"
)

// useFrom is the set of places an item selector looks for candidates.
type useFrom uint8

const (
	useEquip useFrom = 1 << iota
	useInven
	useFloor
	useStore
	useHome
)

// itemSelector says which objects a command can be given when the player is
// asked to choose one.
type itemSelector struct {
	// noun and plural name the kind of object in prompts. If empty, "item"
	// and "items" are used.
	noun   string
	plural string

	// filter, if set, must be true for an object to be offered.
	filter func(*Object) bool

	from useFrom
}

var itemSelectors = map[command.ID]itemSelector{
	Inscribe:   {from: useEquip | useInven | useFloor},
	Uninscribe: {filter: func(o *Object) bool { return o.Note != "" }, from: useEquip | useInven | useFloor},
	Wield:      {filter: func(o *Object) bool { return o.Wearable() }, from: useInven | useFloor},
	TakeOff:    {from: useEquip},
	Eat:        {noun: "food", plural: "food", filter: classIs(ClassFood), from: useInven | useFloor},
	Quaff:      {noun: "potion", filter: classIs(ClassPotion), from: useInven | useFloor},
	UseRod:     {noun: "rod", filter: classIs(ClassRod), from: useInven | useFloor},
	UseStaff:   {noun: "staff", filter: classIs(ClassStaff), from: useInven | useFloor},
	UseWand:    {noun: "wand", filter: classIs(ClassWand), from: useInven | useFloor},
	ReadScroll: {noun: "scroll", filter: classIs(ClassScroll), from: useInven | useFloor},
	Activate:   {filter: func(o *Object) bool { return o.Activates }, from: useEquip},
	Refill:     {noun: "fuel source", filter: classIs(ClassFlask), from: useInven | useFloor},
	Fire:       {filter: classIs(ClassAmmo), from: useInven | useFloor},
	Throw:      {from: useInven | useEquip | useFloor},
	Drop:       {from: useEquip | useInven},
	Destroy:    {from: useEquip | useInven | useFloor},
	StudyBook:  {noun: "book", filter: classIs(ClassBook), from: useInven | useFloor},
	Pickup:     {from: useFloor},
	Sell:       {from: useInven | useEquip},
	Stash:      {from: useInven | useEquip},
	UseAimed:   {filter: func(o *Object) bool { return o.Useable() && o.UsedAimed() }, from: useEquip | useInven | useFloor},
	UseUnaimed: {filter: func(o *Object) bool { return o.Useable() && !o.UsedAimed() }, from: useEquip | useInven | useFloor},
	UseAny:     {filter: func(o *Object) bool { return o.Useable() }, from: useEquip | useInven | useFloor},
}

func classIs(c Class) func(*Object) bool {
	return func(o *Object) bool { return o.Class == c }
}

func (sel itemSelector) nouns() (string, string) {
	if sel.noun == "" {
		return "item", "items"
	}
	if sel.plural == "" {
		return sel.noun, util.Pluralize(sel.noun)
	}
	return sel.noun, sel.plural
}

// allows returns whether obj is something the selector would offer the player
// standing at (px, py).
func (sel itemSelector) allows(obj *Object, px, py int) bool {
	var in bool
	switch obj.Where {
	case InEquipment:
		in = sel.from&useEquip != 0
	case InInventory:
		in = sel.from&useInven != 0
	case OnFloor:
		in = sel.from&useFloor != 0 && obj.X == px && obj.Y == py
	case InStore:
		in = sel.from&useStore != 0
	case InHome:
		in = sel.from&useHome != 0
	}
	return in && (sel.filter == nil || sel.filter(obj))
}

// candidates returns every object sel offers, ordered by reference.
func (s *State) candidates(sel itemSelector) []*Object {
	return s.Objects.Sorted(func(o *Object) bool {
		return sel.allows(o, s.Player.X, s.Player.Y)
	})
}

// SelectItem asks the player to choose the object that cmd acts on and puts
// it in the first argument slot. Commands that have no item selector are left
// alone.
func (s *State) SelectItem(ctx command.Context, cmd *command.Command, p command.Prompter) error {
	sel, ok := itemSelectors[cmd.ID]
	if !ok {
		return nil
	}

	verb := Verb(cmd.ID)
	noun, plural := sel.nouns()

	cands := s.candidates(sel)
	if len(cands) == 0 {
		return gcerrors.Wrapf(command.ErrPromptCancelled, "You have no %s you can %s.", plural, verb)
	}

	choices := make([]command.Choice, len(cands))
	for i, obj := range cands {
		choices[i] = command.Choice{
			Value: obj.Ref,
			Label: fmt.Sprintf("%s (%s)", obj.Describe(), obj.Where),
		}
	}

	ans, ok := p.Prompt(command.Prompt{
		Kind:    command.KindItem,
		Context: ctx,
		Text:    util.Capitalize(fmt.Sprintf("%s which %s?", verb, noun)),
		Choices: choices,
	})
	if !ok {
		return command.ErrPromptCancelled
	}

	ref, isItem := ans.(command.ItemArg)
	if !isItem {
		return fmt.Errorf("%w: item prompt answered with %s", command.ErrArgKind, ans.Kind())
	}

	// a reference to nothing is left for the stale check to report
	if obj := s.Object(int(ref)); obj != nil && !sel.allows(obj, s.Player.X, s.Player.Y) {
		return gcerrors.Playerf("You cannot %s that.", verb)
	}

	return cmd.Set(0, ans)
}
