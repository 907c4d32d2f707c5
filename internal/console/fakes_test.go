package console

import (
	"io"
	"testing"

	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/game"
)

// scriptedReader returns canned lines and then io.EOF.
type scriptedReader struct {
	lines   []string
	prompts []string
	prompt  string
	blanks  bool
}

func (r *scriptedReader) ReadLine() (string, error) {
	for len(r.lines) > 0 {
		line := r.lines[0]
		r.lines = r.lines[1:]
		r.prompts = append(r.prompts, r.prompt)
		if line != "" || r.blanks {
			return line, nil
		}
	}
	return "", io.EOF
}

func (r *scriptedReader) SetPrompt(p string)    { r.prompt = p }
func (r *scriptedReader) AllowBlank(allow bool) { r.blanks = allow }
func (r *scriptedReader) Close() error          { return nil }

// recordingInserter keeps every command inserted into it.
type recordingInserter struct {
	cmds []command.Command
	err  error
}

func (ri *recordingInserter) Insert(cmd command.Command) error {
	if ri.err != nil {
		err := ri.err
		ri.err = nil
		return err
	}
	ri.cmds = append(ri.cmds, cmd)
	return nil
}

// fakeViews returns fixed text for every view.
type fakeViews struct {
	target *[2]int
}

func (fv *fakeViews) InventoryTable() string { return "INVENTORY TABLE" }
func (fv *fakeViews) EquipmentTable() string { return "EQUIPMENT TABLE" }
func (fv *fakeViews) StoreTable() string     { return "STORE TABLE" }
func (fv *fakeViews) Look() string           { return "LOOK TEXT" }
func (fv *fakeViews) Map() string            { return "#@#" }
func (fv *fakeViews) Status() string         { return "STATUS TABLE" }
func (fv *fakeViews) SetTarget(x, y int)     { fv.target = &[2]int{x, y} }
func (fv *fakeViews) ClearTarget()           { fv.target = nil }

// testRegistry builds a registry from the game's catalog.
func testRegistry(t *testing.T) *command.Registry {
	lvl, x, y, err := game.NewLevel("test", 0, []string{"###", "#@#", "###"})
	if err != nil {
		t.Fatalf("creating level: %v", err)
	}
	s, err := game.New(game.LevelData{Level: lvl, Player: game.Player{X: x, Y: y, MaxHP: 1}}, game.Options{})
	if err != nil {
		t.Fatalf("creating state: %v", err)
	}
	reg, err := command.NewRegistry(s.Catalog(nil))
	if err != nil {
		t.Fatalf("creating registry: %v", err)
	}
	return reg
}
