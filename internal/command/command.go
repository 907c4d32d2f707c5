// Package command defines game command data types and the pipeline that
// carries commands from an input source to the gameplay code that performs
// them.
//
// A front end inserts Commands into a Pipeline. Each call to Pipeline.Process
// takes the next Command, resolves any arguments it is missing by prompting the
// front end, validates the result, and hands it to the Handler registered for
// its ID. Commands may be repeated, either because they were inserted with a
// repeat count, because their Registry entry auto-repeats them, or because the
// player asked to repeat the last command.
package command

import (
	"fmt"
	"strings"
)

// ID identifies one kind of player action, such as walking, opening a door, or
// quaffing a potion. The set of valid IDs is fixed by the Registry in use.
type ID int

const (
	// Null is the "no command yet" ID. It is never a valid Registry entry.
	Null ID = 0

	// Repeat is the repeat-last-command pseudo-command. Inserting it queues a
	// copy of the most recently inserted command rather than itself.
	Repeat ID = -1
)

// MaxArgs is the number of argument slots every Command carries.
const MaxArgs = 2

// Context is the part of the game that is asking for a command. It is passed
// through the pipeline to the front end and the Resolver so they can change
// what they offer.
type Context int

const (
	ContextInit Context = iota
	ContextBirth
	ContextGame
	ContextStore
	ContextDeath
)

func (c Context) String() string {
	switch c {
	case ContextInit:
		return "init"
	case ContextBirth:
		return "birth"
	case ContextGame:
		return "game"
	case ContextStore:
		return "store"
	case ContextDeath:
		return "death"
	default:
		return fmt.Sprintf("Context(%d)", int(c))
	}
}

// Command is a single request for the game to do something.
type Command struct {
	// ID is the kind of action being requested.
	ID ID

	// Repeats is the number of times the command is still to be carried out.
	// Zero means once.
	Repeats int

	// Args holds the arguments given so far. Slots that have not been given
	// are filled in during dispatch.
	Args Args
}

// New creates a Command with the given ID and fills its argument slots in
// order from args. A nil entry leaves its slot unset. It panics if more than
// MaxArgs arguments are given.
func New(id ID, args ...Arg) Command {
	if len(args) > MaxArgs {
		panic(fmt.Sprintf("command: %d arguments given but at most %d are allowed", len(args), MaxArgs))
	}

	cmd := Command{ID: id}
	for i := range args {
		if args[i] != nil {
			cmd.Args[i] = Slot{Present: true, Value: args[i]}
		}
	}
	return cmd
}

// Set sets argument slot n to v.
func (cmd *Command) Set(n int, v Arg) error {
	return cmd.Args.Set(n, v)
}

func (cmd Command) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Command(%d", int(cmd.ID)))
	for i := range cmd.Args {
		if cmd.Args[i].Present {
			sb.WriteString(fmt.Sprintf(", %d=%s", i, cmd.Args[i].Value))
		}
	}
	if cmd.Repeats > 0 {
		sb.WriteString(fmt.Sprintf(", x%d", cmd.Repeats))
	}
	sb.WriteRune(')')

	return sb.String()
}

// Slot is one argument position of a Command.
type Slot struct {
	// Present is whether the slot has ever been set.
	Present bool

	// Value is the argument in the slot. It is nil when Present is false.
	Value Arg
}

// Kind returns the kind of the value in the slot, or KindNone if nothing has
// been set.
func (s Slot) Kind() Kind {
	if !s.Present || s.Value == nil {
		return KindNone
	}
	return s.Value.Kind()
}

// Args is the fixed set of argument slots carried by a Command.
type Args [MaxArgs]Slot

// Set puts v into slot n and marks it present. It returns an error wrapping
// ErrBadSlot if n is out of range or v is nil.
func (a *Args) Set(n int, v Arg) error {
	if n < 0 || n >= MaxArgs {
		return fmt.Errorf("%w: slot %d out of range", ErrBadSlot, n)
	}
	if v == nil {
		return fmt.Errorf("%w: nil value for slot %d", ErrBadSlot, n)
	}

	a[n] = Slot{Present: true, Value: v}
	return nil
}

// Clear marks slot n as never having been set. Out-of-range slots are ignored.
func (a *Args) Clear(n int) {
	if n < 0 || n >= MaxArgs {
		return
	}
	a[n] = Slot{}
}

// Get returns the value in slot n and whether it is present.
func (a Args) Get(n int) (Arg, bool) {
	if n < 0 || n >= MaxArgs || !a[n].Present {
		return nil, false
	}
	return a[n].Value, true
}
