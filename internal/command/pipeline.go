package command

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dekarrin/gamecmd/internal/logging"
)

// DefaultInboxSize is the number of posted commands that can wait to be moved
// into the queue when no size is configured.
const DefaultInboxSize = 8

// Options holds the collaborators and sizes used to build a Pipeline. Every
// field is optional.
type Options struct {
	// QueueSize is the number of slots in the command queue. If less than 1,
	// DefaultQueueSize is used.
	QueueSize int

	// InboxSize is the number of commands Post can hold before they are moved
	// into the queue. If less than 1, DefaultInboxSize is used.
	InboxSize int

	// FrontEnd supplies commands and answers prompts. If nil, the pipeline
	// only dispatches what is inserted directly and every prompt is treated
	// as cancelled.
	FrontEnd FrontEnd

	// Resolver performs gameplay-specific argument resolution. If nil,
	// commands are only type-checked before execution.
	Resolver Resolver

	// Recorder, if set, is told about every executed command.
	Recorder Recorder

	// Logger receives diagnostic messages. If nil, a "pipeline" component
	// logger is used.
	Logger *log.Logger
}

// Pipeline owns a command queue and the repeat state, and dispatches commands
// to the handlers in a Registry.
//
// A Pipeline is meant to be driven by a single goroutine; Insert, Process and
// the repeat controls may be called from within handlers and prompts on that
// goroutine but must not be called concurrently. Other goroutines hand
// commands over with Post.
type Pipeline struct {
	reg      *Registry
	queue    *Queue
	fe       FrontEnd
	resolver Resolver
	recorder Recorder
	log      *log.Logger

	inbox chan Command

	// repeating is whether the last dispatched command is to be dispatched
	// again instead of reading the queue.
	repeating bool

	// repeatAllowed is whether the repeat pseudo-command may be inserted.
	repeatAllowed bool

	inCycle bool
}

// NewPipeline creates a Pipeline that dispatches to the handlers in reg.
func NewPipeline(reg *Registry, opts Options) (*Pipeline, error) {
	if reg == nil {
		return nil, fmt.Errorf("registry is required")
	}

	qSize := opts.QueueSize
	if qSize < 1 {
		qSize = DefaultQueueSize
	}
	q, err := NewQueue(qSize)
	if err != nil {
		return nil, err
	}

	inboxSize := opts.InboxSize
	if inboxSize < 1 {
		inboxSize = DefaultInboxSize
	}

	p := &Pipeline{
		reg:      reg,
		queue:    q,
		fe:       opts.FrontEnd,
		resolver: opts.Resolver,
		recorder: opts.Recorder,
		log:      opts.Logger,
		inbox:    make(chan Command, inboxSize),
	}

	if p.fe == nil {
		p.fe = nopFrontEnd{}
	}
	if p.log == nil {
		p.log = logging.NewComponent("pipeline")
	}

	return p, nil
}

// Registry returns the registry the pipeline dispatches from.
func (p *Pipeline) Registry() *Registry {
	return p.reg
}

// Queued returns the number of commands waiting in the queue.
func (p *Pipeline) Queued() int {
	return p.queue.Len()
}

// Insert adds cmd to the end of the queue. Any arguments already present are
// checked against the registry entry for cmd.ID; commands with IDs that are
// not registered are queued as-is and dropped when dispatched.
//
// If cmd.ID is Repeat, a copy of the most recently inserted command is queued
// instead, provided repeating it is currently allowed. Otherwise
// ErrNothingToRepeat is returned.
func (p *Pipeline) Insert(cmd Command) error {
	if cmd.ID == Repeat {
		if !p.repeatAllowed {
			return fmt.Errorf("%w: repeating the last command is not allowed now", ErrNothingToRepeat)
		}
		return p.queue.InsertRepeat()
	}

	if e, ok := p.reg.Lookup(cmd.ID); ok {
		if err := checkKinds(cmd, e); err != nil {
			return err
		}
	}

	return p.queue.Insert(cmd)
}

// InsertID queues a command with no arguments and the given number of
// repeats. Unlike Insert, it rejects IDs that are not registered with
// ErrUnknownIdentifier.
func (p *Pipeline) InsertID(id ID, repeats int) error {
	if id != Repeat {
		if _, ok := p.reg.Lookup(id); !ok {
			return fmt.Errorf("%w: %d", ErrUnknownIdentifier, int(id))
		}
	}
	return p.Insert(Command{ID: id, Repeats: repeats})
}

// Post hands cmd to the pipeline from any goroutine. Posted commands are moved
// into the queue, in the order they were posted, the next time the pipeline
// fetches a command. ErrQueueFull is returned if too many posted commands are
// already waiting.
func (p *Pipeline) Post(cmd Command) error {
	select {
	case p.inbox <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// drainInbox moves posted commands into the queue until either runs out of
// room or commands.
func (p *Pipeline) drainInbox() {
	for !p.queue.Full() {
		select {
		case cmd := <-p.inbox:
			if err := p.Insert(cmd); err != nil {
				p.log.Warn("dropping posted command", "command", cmd, "error", err)
			}
		default:
			return
		}
	}
}

// fetch returns the command to dispatch next. If the pipeline is repeating, it
// is the last dispatched command again.
func (p *Pipeline) fetch(ctx Context, wait bool) (*Command, error) {
	p.drainInbox()

	if p.repeating {
		return p.queue.Last(), nil
	}

	if p.queue.Empty() && wait {
		p.fe.RequestCommand(p, ctx, wait)
		p.drainInbox()
	}

	cmd, ok := p.queue.Next()
	if !ok {
		return nil, ErrNoCommand
	}
	return cmd, nil
}

// Process runs one dispatch cycle: it gets the next command, resolves and
// validates its arguments, executes it, and updates the repeat state. If
// noWait is true, the front end is not asked for a command when the queue is
// empty.
//
// The returned error says why nothing was executed, or that the handler
// panicked; it is informational only. Whatever is returned, the pipeline is
// ready for the next call, and a cycle that stops before execution leaves the
// repeat state exactly as it was.
func (p *Pipeline) Process(ctx Context, noWait bool) error {
	if p.inCycle {
		return ErrReentrantProcess
	}
	p.inCycle = true
	defer func() {
		p.inCycle = false
	}()

	cmd, err := p.fetch(ctx, !noWait)
	if err != nil {
		return err
	}

	oldRepeats := cmd.Repeats

	entry, ok := p.reg.Lookup(cmd.ID)
	if !ok {
		p.log.Debug("dropping command with unknown identifier", "id", int(cmd.ID))
		return fmt.Errorf("%w: %d", ErrUnknownIdentifier, int(cmd.ID))
	}

	if err := p.resolve(ctx, cmd, entry); err != nil {
		p.abort(entry, err)
		return err
	}

	if entry.RepeatAllowed {
		// auto-repeat only if there isn't already a repeat count
		if entry.AutoRepeat > 0 && cmd.Repeats == 0 {
			p.SetRepeat(entry.AutoRepeat)
		}
	} else {
		cmd.Repeats = 0
		p.repeating = false
	}

	// the handler gets to unset this if the player should not repeat it
	p.repeatAllowed = true

	ran := *cmd
	if err := p.execute(cmd, entry); err != nil {
		return err
	}

	// if the handler didn't change the count itself, count this execution
	if cmd.Repeats > 0 && oldRepeats == p.RepeatCount() {
		p.SetRepeat(oldRepeats - 1)
	}

	if p.recorder != nil {
		p.recorder.Record(ctx, entry, ran)
	}

	return nil
}

// resolve fills in and validates the arguments of cmd. Any error it returns
// means the command must not be executed.
func (p *Pipeline) resolve(ctx Context, cmd *Command, entry Entry) error {
	if p.resolver != nil {
		if entry.Args[0].Has(KindItem) && !cmd.Args[0].Present {
			if err := p.resolver.SelectItem(ctx, cmd, p.fe); err != nil {
				return asCancellation(err)
			}
		}

		for i := range cmd.Args {
			ref, ok := cmd.Args.Item(i)
			if ok && !p.resolver.ItemExists(ref) {
				return fmt.Errorf("%w: %s slot %d refers to item #%d", ErrStaleReference, entry.Verb, i, ref)
			}
		}

		if err := p.resolver.Check(ctx, cmd, p.fe); err != nil {
			return asCancellation(err)
		}
	}

	return checkKinds(*cmd, entry)
}

// execute runs the handler for cmd, recovering from any panic in it.
func (p *Pipeline) execute(cmd *Command, entry Entry) (err error) {
	if entry.Handler == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			p.log.Error("command handler panicked", "verb", entry.Verb, "command", *cmd, "panic", r)
			p.CancelRepeat()
			err = fmt.Errorf("%w: %s: %v", ErrHandlerPanic, entry.Verb, r)
		}
	}()

	entry.Handler.Execute(p, cmd.ID, cmd.Args)
	return nil
}

// abort logs why a command was not executed and passes any in-game message
// about it on to the front end.
func (p *Pipeline) abort(entry Entry, err error) {
	p.log.Debug("command not executed", "verb", entry.Verb, "reason", err)

	var gm gameMessager
	if errors.As(err, &gm) {
		if n, ok := p.fe.(Notifier); ok && gm.GameMessage() != "" {
			n.Notify(gm.GameMessage())
		}
	}
}

// gameMessager is implemented by errors that carry a message to show the
// player.
type gameMessager interface {
	GameMessage() string
}

// asCancellation makes sure err is reported as a cancellation. Stale
// references keep their own identity.
func asCancellation(err error) error {
	if errors.Is(err, ErrPromptCancelled) || errors.Is(err, ErrStaleReference) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPromptCancelled, err)
}
