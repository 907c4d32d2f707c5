package command

import (
	"fmt"
)

// Handler carries out a command once all of its arguments are resolved.
//
// The RepeatControl passed in is the Pipeline doing the dispatch; handlers use
// it to stop repeating when something interrupts them or to prevent the
// command from being repeated with the repeat pseudo-command.
type Handler interface {
	Execute(rc RepeatControl, id ID, args Args)
}

// HandlerFunc is a function that can be used as a Handler.
type HandlerFunc func(rc RepeatControl, id ID, args Args)

// Execute calls f.
func (f HandlerFunc) Execute(rc RepeatControl, id ID, args Args) {
	f(rc, id, args)
}

// Entry is the registry description of one kind of command.
type Entry struct {
	// ID is the identifier of the command. It must be unique within a
	// Registry.
	ID ID

	// Verb is the human-readable name of the action, such as "walk" or
	// "quaff".
	Verb string

	// Args is the set of kinds each argument slot accepts. An empty set means
	// the slot is not used.
	Args [MaxArgs]KindSet

	// Handler carries out the command. If nil, the front end handles the
	// command entirely and dispatching it does nothing.
	Handler Handler

	// RepeatAllowed is whether the command may be repeated with a repeat
	// count.
	RepeatAllowed bool

	// AutoRepeat is the repeat count applied when the command is dispatched
	// without one. Zero disables auto-repeat.
	AutoRepeat int
}

// Registry is the immutable catalog of every command the game understands.
// Create one with NewRegistry.
type Registry struct {
	entries []Entry
	index   map[ID]int
}

// NewRegistry builds a Registry from the given entries. Entries keep the order
// given. An error is returned if the table is malformed: the Null ID is used,
// an ID appears more than once, a verb is empty, an auto-repeat count is
// negative or set on a command that does not allow repeats, or the Repeat
// pseudo-command has a handler.
func NewRegistry(entries []Entry) (*Registry, error) {
	reg := &Registry{
		entries: make([]Entry, len(entries)),
		index:   make(map[ID]int, len(entries)),
	}

	for i, e := range entries {
		if e.ID == Null {
			return nil, fmt.Errorf("entry %d: the null command cannot be registered", i)
		}
		if prev, ok := reg.index[e.ID]; ok {
			return nil, fmt.Errorf("entry %d: command %d already registered at entry %d", i, int(e.ID), prev)
		}
		if e.Verb == "" {
			return nil, fmt.Errorf("entry %d: command %d has no verb", i, int(e.ID))
		}
		if e.AutoRepeat < 0 {
			return nil, fmt.Errorf("entry %d (%s): auto-repeat count cannot be negative", i, e.Verb)
		}
		if e.AutoRepeat > 0 && !e.RepeatAllowed {
			return nil, fmt.Errorf("entry %d (%s): auto-repeat set on a command that cannot repeat", i, e.Verb)
		}
		if e.ID == Repeat && e.Handler != nil {
			return nil, fmt.Errorf("entry %d (%s): the repeat command cannot have a handler", i, e.Verb)
		}

		reg.entries[i] = e
		reg.index[e.ID] = i
	}

	return reg, nil
}

// Lookup returns the entry for id. If id is not registered, ok is false.
func (reg *Registry) Lookup(id ID) (e Entry, ok bool) {
	idx, ok := reg.index[id]
	if !ok {
		return Entry{}, false
	}
	return reg.entries[idx], true
}

// Verb returns the verb of the command with the given id.
func (reg *Registry) Verb(id ID) (string, bool) {
	e, ok := reg.Lookup(id)
	return e.Verb, ok
}

// Accepts returns whether the command with the given id accepts k in argument
// slot n.
func (reg *Registry) Accepts(id ID, n int, k Kind) bool {
	e, ok := reg.Lookup(id)
	if !ok || n < 0 || n >= MaxArgs {
		return false
	}
	return e.Args[n].Has(k)
}

// Entries returns a copy of every entry in registration order.
func (reg *Registry) Entries() []Entry {
	return append([]Entry{}, reg.entries...)
}

// Len returns the number of registered commands.
func (reg *Registry) Len() int {
	return len(reg.entries)
}

// checkKinds makes sure every present slot of cmd holds a kind e accepts.
func checkKinds(cmd Command, e Entry) error {
	for i := range cmd.Args {
		k := cmd.Args[i].Kind()
		if k == KindNone {
			continue
		}
		if !e.Args[i].Has(k) {
			return fmt.Errorf("%w: %s slot %d takes %s, not %s", ErrArgKind, e.Verb, i, e.Args[i], k)
		}
	}
	return nil
}
