package game

import (
	"fmt"

	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/direction"
	"github.com/dekarrin/gamecmd/internal/gcerrors"
	"github.com/dekarrin/gamecmd/internal/util"
)

// File check.go holds the checks run on a command after its item is chosen
// and before it is carried out. They fill in whatever arguments are still
// missing.

// pickSelectors say what can be chosen by commands that pick from a store
// rather than from the player's own items.
var pickSelectors = map[command.ID]itemSelector{
	Buy:      {from: useStore},
	Retrieve: {from: useHome},
}

// Check fills in the arguments cmd still needs, prompting p for any that
// cannot be worked out, and makes sure the command makes sense. Commands with
// nothing to check always pass.
func (s *State) Check(ctx command.Context, cmd *command.Command, p command.Prompter) error {
	switch cmd.ID {
	case Open:
		s.easyDirection(cmd, false, Tile.IsClosedDoor)
		return s.requireDirection(ctx, cmd, p)
	case Close:
		s.easyDirection(cmd, false, func(t Tile) bool { return t.Kind == DoorOpen })
		return s.requireDirection(ctx, cmd, p)
	case Disarm:
		s.easyDirection(cmd, true, Tile.IsKnownTrap)
		return s.requireDirection(ctx, cmd, p)
	case Walk, Run, Jump, Tunnel, Bash, Alter, Jam:
		return s.requireDirection(ctx, cmd, p)
	case Pathfind:
		return s.checkPathfind(ctx, cmd, p)
	case Inscribe:
		return s.checkInscribe(ctx, cmd, p)
	case Drop, Sell, Stash:
		return s.checkQuantity(ctx, cmd, p)
	case Buy, Retrieve:
		if err := s.checkPick(ctx, cmd, p); err != nil {
			return err
		}
		return s.checkQuantity(ctx, cmd, p)
	case Wield:
		return s.checkWield(ctx, cmd, p)
	case Quaff, UseRod, UseWand, ReadScroll, Activate, Fire, Throw, UseAimed, UseUnaimed, UseAny:
		return s.checkAim(ctx, cmd, p)
	case Cast:
		return s.checkCast(ctx, cmd, p)
	case StudySpell:
		return s.checkStudy(ctx, cmd, p)
	}
	return nil
}

// easyDirection fills in the direction of cmd when it is missing and exactly
// one grid around the player passes test.
func (s *State) easyDirection(cmd *command.Command, under bool, test func(Tile) bool) {
	if !s.easyOpen {
		return
	}
	if d, ok := cmd.Args.Direction(0); ok && d != direction.Unknown {
		return
	}

	n, x, y := s.Level.countAdjacent(s.Player.X, s.Player.Y, under, test)
	if n == 1 {
		_ = cmd.Set(0, command.DirectionArg(direction.Motion(s.Player.X, s.Player.Y, x, y)))
	}
}

// requireDirection makes sure cmd has a direction in its first slot, asking
// for one if it does not.
func (s *State) requireDirection(ctx command.Context, cmd *command.Command, p command.Prompter) error {
	if d, ok := cmd.Args.Direction(0); ok && d != direction.Unknown {
		return nil
	}

	ans, ok := p.Prompt(command.Prompt{
		Kind:    command.KindDirection,
		Context: ctx,
		Text:    "Direction?",
	})
	if !ok {
		return command.ErrPromptCancelled
	}

	d, isDir := ans.(command.DirectionArg)
	if !isDir || !direction.Dir(d).Known() {
		return gcerrors.Wrap(command.ErrPromptCancelled, "That is not a direction.", "")
	}
	return cmd.Set(0, d)
}

func (s *State) checkPathfind(ctx command.Context, cmd *command.Command, p command.Prompter) error {
	if _, ok := cmd.Args.Point(0); ok {
		return nil
	}

	ans, ok := p.Prompt(command.Prompt{
		Kind:    command.KindPoint,
		Context: ctx,
		Text:    "Walk to where?",
	})
	if !ok {
		return command.ErrPromptCancelled
	}
	return cmd.Set(0, ans)
}

func (s *State) checkInscribe(ctx command.Context, cmd *command.Command, p command.Prompter) error {
	if _, ok := cmd.Args.Text(1); ok {
		return nil
	}

	var def command.Arg
	if ref, ok := cmd.Args.Item(0); ok {
		if obj := s.Object(ref); obj != nil && obj.Note != "" {
			def = command.StringArg(obj.Note)
		}
	}

	ans, ok := p.Prompt(command.Prompt{
		Kind:    command.KindString,
		Context: ctx,
		Text:    "Inscription:",
		Default: def,
	})
	if !ok {
		return command.ErrPromptCancelled
	}
	return cmd.Set(1, ans)
}

// checkQuantity makes sure cmd has a count in its second slot that is no more
// than the size of the stack in its first. Stacks of one need no asking.
func (s *State) checkQuantity(ctx command.Context, cmd *command.Command, p command.Prompter) error {
	var obj *Object
	if ref, ok := cmd.Args.Item(0); ok {
		obj = s.Object(ref)
	} else if ref, ok := cmd.Args.Choice(0); ok {
		obj = s.Object(ref)
	}
	if obj == nil {
		return nil
	}

	amt, ok := cmd.Args.Number(1)
	if !ok {
		if obj.Count == 1 {
			return cmd.Set(1, command.NumberArg(1))
		}

		ans, answered := p.Prompt(command.Prompt{
			Kind:    command.KindNumber,
			Context: ctx,
			Text:    fmt.Sprintf("Quantity (1-%d):", obj.Count),
			Max:     obj.Count,
			Default: command.NumberArg(1),
		})
		if !answered {
			return command.ErrPromptCancelled
		}
		n, isNum := ans.(command.NumberArg)
		if !isNum {
			return fmt.Errorf("%w: quantity prompt answered with %s", command.ErrArgKind, ans.Kind())
		}
		amt = int(n)
	}

	if amt <= 0 {
		return command.ErrPromptCancelled
	}
	if amt > obj.Count {
		amt = obj.Count
	}
	return cmd.Set(1, command.NumberArg(amt))
}

// checkPick has the player choose something from the store or the home.
func (s *State) checkPick(ctx command.Context, cmd *command.Command, p command.Prompter) error {
	sel := pickSelectors[cmd.ID]
	verb := Verb(cmd.ID)

	if ref, ok := cmd.Args.Choice(0); ok {
		if obj := s.Object(ref); obj == nil || !sel.allows(obj, s.Player.X, s.Player.Y) {
			return gcerrors.Playerf("There is no such item to %s.", verb)
		}
		return nil
	}

	cands := s.candidates(sel)
	if len(cands) == 0 {
		return gcerrors.Wrapf(command.ErrPromptCancelled, "There is nothing to %s.", verb)
	}

	choices := make([]command.Choice, len(cands))
	for i, obj := range cands {
		choices[i] = command.Choice{
			Value: obj.Ref,
			Label: fmt.Sprintf("%s (%d gold each)", obj.Describe(), obj.Value),
		}
	}

	ans, ok := p.Prompt(command.Prompt{
		Kind:    command.KindChoice,
		Context: ctx,
		Text:    util.Capitalize(fmt.Sprintf("%s which item?", verb)),
		Choices: choices,
	})
	if !ok {
		return command.ErrPromptCancelled
	}
	return cmd.Set(0, ans)
}

// checkWield works out the slot an object goes in. If it is a ring and both
// ring slots are taken, the player is asked which ring to replace.
func (s *State) checkWield(ctx command.Context, cmd *command.Command, p command.Prompter) error {
	ref, _ := cmd.Args.Item(0)
	obj := s.Object(ref)
	if obj == nil {
		return nil
	}

	slot := obj.wieldSlot()
	if slot < 0 {
		return gcerrors.Playerf("You cannot wear or wield %s.", obj.Describe())
	}
	if _, ok := cmd.Args.Number(1); ok {
		return nil
	}

	if obj.Class == ClassRing {
		left, right := s.equipped(SlotRingLeft), s.equipped(SlotRingRight)
		switch {
		case left == nil:
			slot = SlotRingLeft
		case right == nil:
			slot = SlotRingRight
		default:
			ans, ok := p.Prompt(command.Prompt{
				Kind:    command.KindItem,
				Context: ctx,
				Text:    "Replace which ring?",
				Choices: []command.Choice{
					{Value: left.Ref, Label: left.Describe() + " (left hand)"},
					{Value: right.Ref, Label: right.Describe() + " (right hand)"},
				},
			})
			if !ok {
				return command.ErrPromptCancelled
			}
			replace, _ := ans.(command.ItemArg)
			switch int(replace) {
			case left.Ref:
				slot = SlotRingLeft
			case right.Ref:
				slot = SlotRingRight
			default:
				return gcerrors.Player("That is not a ring you are wearing.", "")
			}
		}
	}

	return cmd.Set(1, command.NumberArg(slot))
}

// checkAim makes sure an item that must be aimed has somewhere to aim. The aim
// slot is always present afterwards, holding direction.Unknown for objects
// that do not need one.
func (s *State) checkAim(ctx command.Context, cmd *command.Command, p command.Prompter) error {
	ref, _ := cmd.Args.Item(0)
	obj := s.Object(ref)
	if obj == nil {
		return nil
	}

	needsAim := obj.NeedsAim() || cmd.ID == Fire || cmd.ID == Throw
	return s.aim(ctx, cmd, p, needsAim)
}

// aim fills in the aim in slot 1 of cmd, asking for one if needed is true and
// the command has no usable aim.
func (s *State) aim(ctx command.Context, cmd *command.Command, p command.Prompter, needed bool) error {
	d, present := cmd.Args.Aim(1)
	if !needed {
		if !present {
			return cmd.Set(1, command.TargetArg(direction.Unknown))
		}
		return nil
	}

	if present && d != direction.Unknown && (d != direction.Target || s.targetOkay()) {
		return cmd.Set(1, command.TargetArg(d))
	}

	ans, ok := p.Prompt(command.Prompt{
		Kind:    command.KindTarget,
		Context: ctx,
		Text:    "Direction or * for target?",
	})
	if !ok {
		return command.ErrPromptCancelled
	}

	switch v := ans.(type) {
	case command.TargetArg:
		d = direction.Dir(v)
	case command.DirectionArg:
		d = direction.Dir(v)
	default:
		return fmt.Errorf("%w: aim prompt answered with %s", command.ErrArgKind, ans.Kind())
	}

	if !d.Known() {
		return gcerrors.Wrap(command.ErrPromptCancelled, "That is not a direction.", "")
	}
	if d == direction.Target && !s.targetOkay() {
		return gcerrors.Wrap(command.ErrPromptCancelled, "You have no target.", "")
	}
	return cmd.Set(1, command.TargetArg(d))
}

func (s *State) checkCast(ctx command.Context, cmd *command.Command, p command.Prompter) error {
	idx, ok := cmd.Args.Choice(0)
	if !ok {
		known := s.Player.Spells.Elements()
		if len(known) == 0 {
			return gcerrors.Wrap(command.ErrPromptCancelled, "You don't know any spells.", "")
		}
		ans, answered := p.Prompt(command.Prompt{
			Kind:    command.KindChoice,
			Context: ctx,
			Text:    "Cast which spell?",
			Choices: spellChoices(known),
		})
		if !answered {
			return command.ErrPromptCancelled
		}
		if err := cmd.Set(0, ans); err != nil {
			return err
		}
		idx, _ = cmd.Args.Choice(0)
	}

	if !s.Player.Spells.Has(idx) {
		return gcerrors.Player("You don't know that spell.", "")
	}
	return s.aim(ctx, cmd, p, spellBook[idx].aimed)
}

func (s *State) checkStudy(ctx command.Context, cmd *command.Command, p command.Prompter) error {
	if _, ok := cmd.Args.Choice(0); ok {
		return nil
	}

	if len(s.Objects.Sorted(func(o *Object) bool { return o.Class == ClassBook && o.Where == InInventory })) == 0 {
		return gcerrors.Wrap(command.ErrPromptCancelled, "You have no books that you can read.", "")
	}

	learnable := s.learnable()
	if len(learnable) == 0 {
		return gcerrors.Wrap(command.ErrPromptCancelled, "You cannot learn any new spells.", "")
	}

	ans, ok := p.Prompt(command.Prompt{
		Kind:    command.KindChoice,
		Context: ctx,
		Text:    "Study which spell?",
		Choices: spellChoices(learnable),
	})
	if !ok {
		return command.ErrPromptCancelled
	}
	return cmd.Set(0, ans)
}
