package command

// Inserter accepts new commands. Pipeline implements it; it is what a FrontEnd
// is given when it is asked for a command.
type Inserter interface {
	Insert(cmd Command) error
}

// Prompt is a request for the player to supply one argument.
type Prompt struct {
	// Kind is the kind of value wanted.
	Kind Kind

	// Context is the part of the game asking.
	Context Context

	// Text is the question to show, such as "Quaff which potion?".
	Text string

	// Choices lists the values the player may pick from, for item and choice
	// prompts. It may be empty for other kinds.
	Choices []Choice

	// Max is the largest number accepted by a number prompt. Zero means no
	// limit.
	Max int

	// Default is offered to the player as the value to use if they do not
	// give one. It may be nil.
	Default Arg
}

// Choice is one option in a Prompt.
type Choice struct {
	// Value is what is put in the argument slot when the option is chosen. For
	// item prompts, it is the item reference.
	Value int

	// Label is the text describing the option.
	Label string
}

// Prompter asks the player for a single argument value.
type Prompter interface {
	// Prompt shows req to the player and waits for an answer. It returns false
	// if the player cancels. The returned Arg should be of req.Kind, but the
	// pipeline type-checks every argument before execution regardless.
	Prompt(req Prompt) (Arg, bool)
}

// FrontEnd is the source of player input.
type FrontEnd interface {
	Prompter

	// RequestCommand is called when the pipeline needs a command and none are
	// queued. Implementations insert zero or more commands into in before
	// returning. If wait is false, implementations should return promptly
	// rather than blocking on the player.
	RequestCommand(in Inserter, ctx Context, wait bool)
}

// Notifier is implemented by front ends that can show the player a message.
// When a dispatch cycle is aborted with an error that carries an in-game
// message, the message is passed to Notify.
type Notifier interface {
	Notify(msg string)
}

// Resolver is the gameplay side of argument resolution. It decides which
// objects a command can use, whether referenced objects still exist, and fills
// in any arguments a command still needs.
type Resolver interface {
	// SelectItem is called when a command's first slot accepts an item and is
	// not yet set. It should set slot 0 of cmd, usually by prompting p, or
	// return an error to abort. Returning nil without setting the slot lets
	// the command go ahead with no item.
	SelectItem(ctx Context, cmd *Command, p Prompter) error

	// ItemExists returns whether ref still refers to a real object.
	ItemExists(ref int) bool

	// Check resolves the remaining arguments of cmd, prompting p as needed.
	// Any returned error aborts the command.
	Check(ctx Context, cmd *Command, p Prompter) error
}

// Recorder is told about every command that is carried out. The command it
// is given is as it was when its handler was called, before this execution
// was counted against its repeats.
type Recorder interface {
	Record(ctx Context, e Entry, cmd Command)
}

// nopFrontEnd is used when a Pipeline is created without a front end. It never
// supplies commands and cancels every prompt.
type nopFrontEnd struct{}

func (nopFrontEnd) RequestCommand(Inserter, Context, bool) {}

func (nopFrontEnd) Prompt(Prompt) (Arg, bool) {
	return nil, false
}
