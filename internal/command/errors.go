package command

import "errors"

// Errors returned by the queue and the dispatch pipeline. None of them are
// fatal; a Pipeline that returns one of these is left in a consistent state and
// may be used again immediately. Use errors.Is to check for them, as they are
// usually wrapped with more detail.
var (
	// ErrQueueFull is returned when a command is inserted into a queue with no
	// free slot. The caller should drop the input or try again after the queue
	// has been processed.
	ErrQueueFull = errors.New("command queue is full")

	// ErrNoCommand is returned by Process when there was nothing to dispatch,
	// even after asking the front end for a command.
	ErrNoCommand = errors.New("no command available")

	// ErrUnknownIdentifier is returned when a command's ID is not in the
	// registry. Process drops such commands without running anything.
	ErrUnknownIdentifier = errors.New("unknown command identifier")

	// ErrStaleReference is returned when an item argument refers to an object
	// that no longer exists at dispatch time.
	ErrStaleReference = errors.New("argument refers to an object that no longer exists")

	// ErrPromptCancelled is returned when the player cancels an argument prompt
	// or the gameplay checks decide the command cannot go ahead.
	ErrPromptCancelled = errors.New("command cancelled")

	// ErrNothingToRepeat is returned when the repeat pseudo-command is inserted
	// but repeating is not allowed or there is no previous command.
	ErrNothingToRepeat = errors.New("nothing to repeat")

	// ErrArgKind is returned when an argument slot holds a kind of value that
	// the registry does not accept for that slot.
	ErrArgKind = errors.New("argument kind not accepted")

	// ErrBadSlot is returned when an argument slot index is out of range or a
	// nil value is given.
	ErrBadSlot = errors.New("bad argument slot")

	// ErrHandlerPanic is returned by Process when the handler for a command
	// panicked. The panic is recovered and any pending repeats are cancelled.
	ErrHandlerPanic = errors.New("command handler panicked")

	// ErrReentrantProcess is returned when Process is called from inside a
	// dispatch cycle, for instance from a prompt or a handler.
	ErrReentrantProcess = errors.New("process called during a dispatch cycle")
)
