package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/logging"
)

// scriptedPrompter answers prompts from a list of canned answers. A nil answer
// cancels the prompt.
type scriptedPrompter struct {
	answers []command.Arg
	prompts []command.Prompt
}

func (sp *scriptedPrompter) Prompt(req command.Prompt) (command.Arg, bool) {
	sp.prompts = append(sp.prompts, req)
	if len(sp.answers) == 0 {
		return nil, false
	}
	ans := sp.answers[0]
	sp.answers = sp.answers[1:]
	return ans, ans != nil
}

func (sp *scriptedPrompter) RequestCommand(in command.Inserter, ctx command.Context, wait bool) {}

func (sp *scriptedPrompter) Notify(msg string) {}

func (sp *scriptedPrompter) promptTexts() []string {
	var texts []string
	for _, p := range sp.prompts {
		texts = append(texts, p.Text)
	}
	return texts
}

type testGame struct {
	s   *State
	fe  *scriptedPrompter
	p   *command.Pipeline
	out *strings.Builder
}

func loadTestLevel(t *testing.T) LevelData {
	data, err := LoadLevelFile(filepath.Join("testdata", "cave.toml"))
	if err != nil {
		t.Fatalf("loading test level: %v", err)
	}
	return data
}

func newTestGame(t *testing.T, opts Options) *testGame {
	out := &strings.Builder{}
	opts.IO = IODevice{
		Width: 80,
		Output: func(s string, a ...interface{}) error {
			_, err := fmt.Fprintf(out, s, a...)
			return err
		},
	}

	s, err := New(loadTestLevel(t), opts)
	if err != nil {
		t.Fatalf("creating state: %v", err)
	}

	reg, err := command.NewRegistry(s.Catalog(nil))
	if err != nil {
		t.Fatalf("creating registry: %v", err)
	}

	fe := &scriptedPrompter{}
	p, err := command.NewPipeline(reg, command.Options{
		FrontEnd: fe,
		Resolver: s,
		Logger:   logging.Discard(),
	})
	if err != nil {
		t.Fatalf("creating pipeline: %v", err)
	}

	return &testGame{s: s, fe: fe, p: p, out: out}
}

// run queues cmd and dispatches it, followed by any repeats it sets up.
func (g *testGame) run(t *testing.T, cmd command.Command) error {
	if err := g.p.Insert(cmd); err != nil {
		t.Fatalf("inserting %v: %v", cmd, err)
	}

	err := g.p.Process(g.s.Context(), true)
	for i := 0; err == nil && g.p.Repeating() && i < 200; i++ {
		err = g.p.Process(g.s.Context(), true)
	}
	return err
}

func (g *testGame) answer(args ...command.Arg) {
	g.fe.answers = append(g.fe.answers, args...)
}

func readFile(t *testing.T, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
