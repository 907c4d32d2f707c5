package command

// RepeatControl is the part of a Pipeline that handlers and front ends use to
// manage repetition of the current command. The current command is the one
// most recently dispatched.
type RepeatControl interface {
	// CancelRepeat removes any pending repeats from the current command.
	CancelRepeat()

	// SetRepeat sets the number of repeats pending for the current command.
	SetRepeat(n int)

	// RepeatCount returns the number of repeats left for the current command,
	// or zero if it is not repeating.
	RepeatCount() int

	// DisableRepeat stops the current command from being repeated with the
	// repeat pseudo-command. It is allowed again once another command is
	// dispatched.
	DisableRepeat()
}

// RepeatState is a snapshot of a Pipeline's repeat bookkeeping.
type RepeatState struct {
	// Repeating is whether the next dispatch will re-run the current command
	// instead of reading the queue.
	Repeating bool

	// Remaining is the number of repeats pending for the current command.
	Remaining int

	// Allowed is whether the repeat pseudo-command may be inserted.
	Allowed bool
}

// CancelRepeat removes any pending repeats from the current command.
func (p *Pipeline) CancelRepeat() {
	cur := p.queue.Last()
	if cur.Repeats != 0 || p.repeating {
		cur.Repeats = 0
		p.repeating = false
		p.log.Debug("repeat cancelled", "command", *cur)
	}
}

// SetRepeat sets the number of repeats pending for the current command. A
// positive count makes the next dispatch re-run the current command; zero
// stops repetition. Negative counts are treated as zero. If no registered
// command has been dispatched yet, SetRepeat does nothing.
func (p *Pipeline) SetRepeat(n int) {
	cur := p.queue.Last()
	if _, ok := p.reg.Lookup(cur.ID); !ok {
		return
	}
	if n < 0 {
		n = 0
	}

	cur.Repeats = n
	p.repeating = n > 0
}

// RepeatCount returns the number of repeats left for the current command.
func (p *Pipeline) RepeatCount() int {
	return p.queue.Last().Repeats
}

// DisableRepeat prevents the current command from being repeated with the
// repeat pseudo-command.
func (p *Pipeline) DisableRepeat() {
	p.repeatAllowed = false
}

// Repeating returns whether the next dispatch will re-run the current command.
func (p *Pipeline) Repeating() bool {
	return p.repeating
}

// RepeatState returns a snapshot of the repeat bookkeeping.
func (p *Pipeline) RepeatState() RepeatState {
	return RepeatState{
		Repeating: p.repeating,
		Remaining: p.RepeatCount(),
		Allowed:   p.repeatAllowed,
	}
}

// Current returns a copy of the most recently dispatched command. If nothing
// has been dispatched yet, ok is false.
func (p *Pipeline) Current() (cmd Command, ok bool) {
	cur := p.queue.Last()
	if cur.ID == Null {
		return Command{}, false
	}
	return *cur, true
}
