package command

import (
	"fmt"

	"github.com/dekarrin/gamecmd/internal/direction"
	"github.com/dekarrin/gamecmd/internal/logging"
)

const (
	testWalk ID = iota + 1
	testSearch
	testOpen
	testQuaff
	testInscribe
	testHelp
	testBoom
	testNoRepeat
)

// handlerCall is one recorded invocation of a recordingHandler.
type handlerCall struct {
	id   ID
	args Args
}

// recordingHandler remembers every call made to it and optionally runs a hook
// on each.
type recordingHandler struct {
	calls []handlerCall
	hook  func(rc RepeatControl, n int)
}

func (h *recordingHandler) Execute(rc RepeatControl, id ID, args Args) {
	h.calls = append(h.calls, handlerCall{id: id, args: args})
	if h.hook != nil {
		h.hook(rc, len(h.calls))
	}
}

// scriptedFrontEnd answers prompts from a list of canned answers. A nil answer
// cancels the prompt.
type scriptedFrontEnd struct {
	answers   []Arg
	prompts   []Prompt
	notified  []string
	requests  int
	onRequest func(in Inserter)
}

func (fe *scriptedFrontEnd) Prompt(req Prompt) (Arg, bool) {
	fe.prompts = append(fe.prompts, req)
	if len(fe.answers) == 0 {
		return nil, false
	}
	ans := fe.answers[0]
	fe.answers = fe.answers[1:]
	return ans, ans != nil
}

func (fe *scriptedFrontEnd) RequestCommand(in Inserter, ctx Context, wait bool) {
	fe.requests++
	if fe.onRequest != nil {
		fe.onRequest(in)
	}
}

func (fe *scriptedFrontEnd) Notify(msg string) {
	fe.notified = append(fe.notified, msg)
}

// gameMsgErr is an error with an in-game message, like the ones produced by
// the gameplay layer.
type gameMsgErr struct {
	msg  string
	wrap error
}

func (e gameMsgErr) Error() string       { return fmt.Sprintf("game error: %s", e.msg) }
func (e gameMsgErr) GameMessage() string { return e.msg }
func (e gameMsgErr) Unwrap() error       { return e.wrap }

// fakeResolver is a Resolver with a fixed set of live items. Directions are
// prompted for when a walk or open command has none.
type fakeResolver struct {
	live        map[int]bool
	selectCalls int
	checkCalls  int
	checkErr    error
}

func (r *fakeResolver) SelectItem(ctx Context, cmd *Command, p Prompter) error {
	r.selectCalls++
	ans, ok := p.Prompt(Prompt{Kind: KindItem, Context: ctx, Text: "Quaff which potion?"})
	if !ok {
		return gameMsgErr{msg: "You have no potions you can quaff.", wrap: ErrPromptCancelled}
	}
	return cmd.Set(0, ans)
}

func (r *fakeResolver) ItemExists(ref int) bool {
	return r.live[ref]
}

func (r *fakeResolver) Check(ctx Context, cmd *Command, p Prompter) error {
	r.checkCalls++
	if r.checkErr != nil {
		return r.checkErr
	}

	if cmd.ID != testWalk && cmd.ID != testOpen {
		return nil
	}
	if d, ok := cmd.Args.Direction(0); ok && d != direction.Unknown {
		return nil
	}
	ans, ok := p.Prompt(Prompt{Kind: KindDirection, Context: ctx, Text: "Direction?"})
	if !ok {
		return ErrPromptCancelled
	}
	return cmd.Set(0, ans)
}

type testFixture struct {
	reg      *Registry
	fe       *scriptedFrontEnd
	resolver *fakeResolver
	handlers map[ID]*recordingHandler
}

func newTestFixture() *testFixture {
	fx := &testFixture{
		fe:       &scriptedFrontEnd{},
		resolver: &fakeResolver{live: map[int]bool{}},
		handlers: map[ID]*recordingHandler{},
	}
	for _, id := range []ID{testWalk, testSearch, testOpen, testQuaff, testInscribe, testBoom, testNoRepeat} {
		fx.handlers[id] = &recordingHandler{}
	}
	fx.handlers[testBoom].hook = func(RepeatControl, int) {
		panic("kaboom")
	}

	reg, err := NewRegistry([]Entry{
		{ID: testWalk, Verb: "walk", Args: [MaxArgs]KindSet{Kinds(KindDirection)}, Handler: fx.handlers[testWalk], RepeatAllowed: true},
		{ID: testSearch, Verb: "search", Handler: fx.handlers[testSearch], RepeatAllowed: true, AutoRepeat: 3},
		{ID: testOpen, Verb: "open", Args: [MaxArgs]KindSet{Kinds(KindDirection)}, Handler: fx.handlers[testOpen], RepeatAllowed: true, AutoRepeat: 99},
		{ID: testQuaff, Verb: "quaff", Args: [MaxArgs]KindSet{Kinds(KindItem), Kinds(KindTarget)}, Handler: fx.handlers[testQuaff]},
		{ID: testInscribe, Verb: "inscribe", Args: [MaxArgs]KindSet{Kinds(KindItem), Kinds(KindString)}, Handler: fx.handlers[testInscribe]},
		{ID: testHelp, Verb: "help"},
		{ID: testBoom, Verb: "explode", Handler: fx.handlers[testBoom], RepeatAllowed: true},
		{ID: testNoRepeat, Verb: "jump", Handler: fx.handlers[testNoRepeat]},
		{ID: Repeat, Verb: "repeat"},
	})
	if err != nil {
		panic(fmt.Sprintf("bad test registry: %v", err))
	}
	fx.reg = reg

	return fx
}

func (fx *testFixture) pipeline(queueSize int) *Pipeline {
	p, err := NewPipeline(fx.reg, Options{
		QueueSize: queueSize,
		FrontEnd:  fx.fe,
		Resolver:  fx.resolver,
		Logger:    logging.Discard(),
	})
	if err != nil {
		panic(fmt.Sprintf("bad test pipeline: %v", err))
	}
	return p
}

func walk(d direction.Dir) Command {
	return New(testWalk, DirectionArg(d))
}
