package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/direction"
	"github.com/dekarrin/gamecmd/internal/game"
	"github.com/stretchr/testify/assert"
)

func Test_Console_Prompt(t *testing.T) {
	potions := []command.Choice{
		{Value: 3, Label: "a Potion of Cure Light Wounds (inventory)"},
		{Value: 5, Label: "a Wand of Magic Missile (inventory)"},
	}

	testCases := []struct {
		name         string
		req          command.Prompt
		lines        []string
		expect       command.Arg
		expectOK     bool
		expectOutput string
	}{
		{
			name:     "menu letter",
			req:      command.Prompt{Kind: command.KindItem, Text: "Use which item?", Choices: potions},
			lines:    []string{"b"},
			expect:   command.ItemArg(5),
			expectOK: true,
		},
		{
			name:     "item number",
			req:      command.Prompt{Kind: command.KindItem, Text: "Use which item?", Choices: potions},
			lines:    []string{"#3"},
			expect:   command.ItemArg(3),
			expectOK: true,
		},
		{
			name:     "choice by value",
			req:      command.Prompt{Kind: command.KindChoice, Text: "Buy which item?", Choices: potions},
			lines:    []string{"5"},
			expect:   command.ChoiceArg(5),
			expectOK: true,
		},
		{
			name:     "escape cancels",
			req:      command.Prompt{Kind: command.KindItem, Text: "Use which item?", Choices: potions},
			lines:    []string{"esc"},
			expectOK: false,
		},
		{
			name:     "blank cancels",
			req:      command.Prompt{Kind: command.KindDirection, Text: "Direction?"},
			lines:    []string{""},
			expectOK: false,
		},
		{
			name:     "blank takes default",
			req:      command.Prompt{Kind: command.KindNumber, Text: "Quantity (1-5):", Max: 5, Default: command.NumberArg(1)},
			lines:    []string{""},
			expect:   command.NumberArg(1),
			expectOK: true,
		},
		{
			name:     "escape cancels even with default",
			req:      command.Prompt{Kind: command.KindString, Text: "Inscription:", Default: command.StringArg("@q1")},
			lines:    []string{"escape"},
			expectOK: false,
		},
		{
			name:         "gives up after bad answers",
			req:          command.Prompt{Kind: command.KindItem, Text: "Use which item?", Choices: potions},
			lines:        []string{"z", "9", "potion", "a"},
			expectOK:     false,
			expectOutput: "9 is not one of the choices.",
		},
		{
			name:     "direction",
			req:      command.Prompt{Kind: command.KindDirection, Text: "Direction?"},
			lines:    []string{"ne"},
			expect:   command.DirectionArg(direction.NE),
			expectOK: true,
		},
		{
			name:     "target",
			req:      command.Prompt{Kind: command.KindTarget, Text: "Direction or * for target?"},
			lines:    []string{"*"},
			expect:   command.TargetArg(direction.Target),
			expectOK: true,
		},
		{
			name:         "bad direction then good",
			req:          command.Prompt{Kind: command.KindDirection, Text: "Direction?"},
			lines:        []string{"sideways", "2"},
			expect:       command.DirectionArg(direction.S),
			expectOK:     true,
			expectOutput: "\"sideways\" is not a direction.",
		},
		{
			name:         "number over max",
			req:          command.Prompt{Kind: command.KindNumber, Text: "Quantity (1-5):", Max: 5, Default: command.NumberArg(1)},
			lines:        []string{"7", "3"},
			expect:       command.NumberArg(3),
			expectOK:     true,
			expectOutput: "Enter a number from 0 to 5.",
		},
		{
			name:     "point",
			req:      command.Prompt{Kind: command.KindPoint, Text: "Walk to where?"},
			lines:    []string{"3, 4"},
			expect:   command.PointArg{X: 3, Y: 4},
			expectOK: true,
		},
		{
			name:     "text keeps case",
			req:      command.Prompt{Kind: command.KindString, Text: "Inscription:"},
			lines:    []string{"  @Q1 Hello "},
			expect:   command.StringArg("@Q1 Hello"),
			expectOK: true,
		},
		{
			name:     "end of input",
			req:      command.Prompt{Kind: command.KindDirection, Text: "Direction?"},
			lines:    nil,
			expectOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			in := &scriptedReader{lines: tc.lines}
			out := &bytes.Buffer{}
			con := New(in, out, 80, testRegistry(t), nil)

			actual, ok := con.Prompt(tc.req)

			assert.Equal(tc.expectOK, ok)
			if tc.expectOK {
				assert.Equal(tc.expect, actual)
			} else {
				assert.Nil(actual)
			}
			if tc.expectOutput != "" {
				assert.Contains(out.String(), tc.expectOutput)
			}
			assert.False(in.blanks, "blank lines should be disallowed again after a prompt")
		})
	}
}

func Test_Console_Prompt_ShowsMenuAndDefault(t *testing.T) {
	assert := assert.New(t)
	in := &scriptedReader{lines: []string{"a", "2"}}
	out := &bytes.Buffer{}
	con := New(in, out, 80, testRegistry(t), nil)

	_, ok := con.Prompt(command.Prompt{
		Kind: command.KindChoice,
		Text: "Rest how long?",
		Choices: []command.Choice{
			{Value: game.RestAsNeeded, Label: "as needed"},
			{Value: game.RestUntilHealed, Label: "until healed"},
		},
	})
	assert.True(ok)
	assert.Equal("  a) as needed [#-2]\n  b) until healed [#-1]\n", out.String())
	assert.Equal("Rest how long? ", in.prompts[0])

	_, ok = con.Prompt(command.Prompt{Kind: command.KindNumber, Text: "Quantity (1-3):", Max: 3, Default: command.NumberArg(1)})
	assert.True(ok)
	assert.Equal("Quantity (1-3): [1] ", in.prompts[1])
}

func Test_Console_RequestCommand(t *testing.T) {
	testCases := []struct {
		name         string
		ctx          command.Context
		lines        []string
		insertErr    error
		startTarget  *[2]int
		expectCmds   []command.Command
		expectOutput []string
		expectPrompt string
		expectClosed bool
		expectTarget *[2]int
	}{
		{
			name:         "first line is a command",
			ctx:          command.ContextGame,
			lines:        []string{"walk n", "search"},
			expectCmds:   []command.Command{command.New(game.Walk, command.DirectionArg(direction.N))},
			expectPrompt: "Game> ",
		},
		{
			name:         "skips blanks and views",
			ctx:          command.ContextStore,
			lines:        []string{"", "i", "store", "sell 2"},
			expectCmds:   []command.Command{command.New(game.Sell, command.ItemArg(2))},
			expectOutput: []string{"INVENTORY TABLE\n", "STORE TABLE\n"},
			expectPrompt: "Store> ",
		},
		{
			name:         "reports bad input and keeps reading",
			ctx:          command.ContextGame,
			lines:        []string{"dance", "5 search"},
			expectCmds:   []command.Command{{ID: game.Search, Repeats: 5}},
			expectOutput: []string{"I don't know what you mean by \"dance\".\nTry HELP for valid commands.\n"},
			expectPrompt: "Game> ",
		},
		{
			name:         "insert failure keeps reading",
			ctx:          command.ContextGame,
			lines:        []string{"n", "hold"},
			insertErr:    command.ErrNothingToRepeat,
			expectCmds:   []command.Command{command.New(game.Hold)},
			expectOutput: []string{"There is nothing to repeat.\n"},
			expectPrompt: "Game> ",
		},
		{
			name:         "end of input quits",
			ctx:          command.ContextGame,
			lines:        []string{"map"},
			expectCmds:   []command.Command{command.New(game.Quit)},
			expectOutput: []string{"#@#\n"},
			expectPrompt: "Game> ",
			expectClosed: true,
		},
		{
			name:         "set target",
			ctx:          command.ContextGame,
			lines:        []string{"target 4, 5", "hold"},
			expectCmds:   []command.Command{command.New(game.Hold)},
			expectOutput: []string{"Target set to (4, 5).\n"},
			expectPrompt: "Game> ",
			expectTarget: &[2]int{4, 5},
		},
		{
			name:         "clear target",
			ctx:          command.ContextGame,
			lines:        []string{"target clear", "hold"},
			startTarget:  &[2]int{1, 1},
			expectCmds:   []command.Command{command.New(game.Hold)},
			expectOutput: []string{"Target cleared.\n"},
			expectPrompt: "Game> ",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			in := &scriptedReader{lines: tc.lines}
			out := &bytes.Buffer{}
			views := &fakeViews{target: tc.startTarget}
			con := New(in, out, 80, testRegistry(t), views)
			ins := &recordingInserter{err: tc.insertErr}

			con.RequestCommand(ins, tc.ctx, true)

			assert.Equal(tc.expectCmds, ins.cmds)
			for _, o := range tc.expectOutput {
				assert.Contains(out.String(), o)
			}
			assert.Equal(tc.expectPrompt, in.prompt)
			assert.Equal(tc.expectClosed, con.Closed())
			assert.Equal(tc.expectTarget, views.target)
		})
	}
}

func Test_Console_RequestCommand_NoWait(t *testing.T) {
	assert := assert.New(t)
	in := &scriptedReader{lines: []string{"walk n"}}
	con := New(in, &bytes.Buffer{}, 80, testRegistry(t), nil)
	ins := &recordingInserter{}

	con.RequestCommand(ins, command.ContextGame, false)

	assert.Empty(ins.cmds)
	assert.Len(in.lines, 1)
}

func Test_Console_RequestCommand_AfterClose(t *testing.T) {
	assert := assert.New(t)
	in := &scriptedReader{}
	con := New(in, &bytes.Buffer{}, 80, testRegistry(t), nil)
	ins := &recordingInserter{}

	con.RequestCommand(ins, command.ContextGame, true)
	con.RequestCommand(ins, command.ContextGame, true)

	assert.True(con.Closed())
	assert.Equal([]command.Command{command.New(game.Quit), command.New(game.Quit)}, ins.cmds)

	_, ok := con.Prompt(command.Prompt{Kind: command.KindDirection, Text: "Direction?"})
	assert.False(ok)
}

func Test_Console_Printf(t *testing.T) {
	testCases := []struct {
		name   string
		width  int
		text   string
		expect func(assert *assert.Assertions, out string)
	}{
		{
			name:  "short line unchanged",
			width: 80,
			text:  "You have found a trap.\n",
			expect: func(assert *assert.Assertions, out string) {
				assert.Equal("You have found a trap.\n", out)
			},
		},
		{
			name:  "long line wrapped",
			width: 20,
			text:  "There is a pile of rubble in the way of you going anywhere.\n",
			expect: func(assert *assert.Assertions, out string) {
				lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
				assert.Greater(len(lines), 1)
				for _, l := range lines {
					assert.LessOrEqual(len(l), 20)
				}
				assert.True(strings.HasSuffix(out, "\n"))
			},
		},
		{
			name:  "multi-line text left alone",
			width: 5,
			text:  "#######\n#.@...#\n",
			expect: func(assert *assert.Assertions, out string) {
				assert.Equal("#######\n#.@...#\n", out)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			out := &bytes.Buffer{}
			con := New(&scriptedReader{}, out, tc.width, testRegistry(t), nil)

			err := con.Printf("%s", tc.text)

			assert.NoError(err)
			tc.expect(assert, out.String())
		})
	}
}
