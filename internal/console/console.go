// Package console is a line-oriented front end for the game. It turns typed
// input into commands and answers prompts from the same input.
package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/direction"
	"github.com/dekarrin/gamecmd/internal/game"
	"github.com/dekarrin/gamecmd/internal/gcerrors"
	"github.com/dekarrin/gamecmd/internal/input"
	"github.com/dekarrin/gamecmd/internal/logging"
	"github.com/dekarrin/rosed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxBadAnswers is how many unusable answers to a prompt are accepted before
// the prompt is treated as cancelled.
const maxBadAnswers = 3

const menuLetters = "abcdefghijklmnopqrstuvwxyz"

// Views is what the console can show the player outside of commands.
type Views interface {
	InventoryTable() string
	EquipmentTable() string
	StoreTable() string
	Look() string
	Map() string
	Status() string
	SetTarget(x, y int)
	ClearTarget()
}

// Console implements command.FrontEnd and command.Notifier over an
// input.Reader.
type Console struct {
	in    input.Reader
	out   io.Writer
	width int
	reg   *command.Registry
	views Views
	log   *log.Logger

	title cases.Caser

	// closed is set once input has run out.
	closed bool
}

// New creates a Console that reads from in and writes to out, wrapping text
// at width. Typed input is parsed against reg. views may be nil, in which case
// view keywords show nothing.
func New(in input.Reader, out io.Writer, width int, reg *command.Registry, views Views) *Console {
	if width < 2 {
		width = 80
	}
	return &Console{
		in:    in,
		out:   out,
		width: width,
		reg:   reg,
		views: views,
		log:   logging.NewComponent("console"),
		title: cases.Title(language.English),
	}
}

// Closed returns whether the console has run out of input.
func (c *Console) Closed() bool {
	return c.closed
}

// Printf writes formatted text to the player, wrapped to the console width. It
// has the signature game.IODevice needs for its Output.
func (c *Console) Printf(format string, a ...interface{}) error {
	text := fmt.Sprintf(format, a...)
	trailing := strings.HasSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\n")

	if !strings.Contains(text, "\n") {
		text = rosed.Edit(text).Wrap(c.width).String()
	}
	if trailing {
		text += "\n"
	}

	_, err := io.WriteString(c.out, text)
	return err
}

// Notify shows a message to the player.
func (c *Console) Notify(msg string) {
	_ = c.Printf("%s\n", msg)
}

// RequestCommand reads input until it gets a command that can be queued. Views
// are shown along the way. If wait is false, nothing is read; the console has
// no way to tell whether a line is ready without blocking.
//
// When input runs out, a quit command is queued.
func (c *Console) RequestCommand(in command.Inserter, ctx command.Context, wait bool) {
	if !wait {
		return
	}
	if c.closed {
		c.queueQuit(in)
		return
	}

	c.in.AllowBlank(false)
	c.in.SetPrompt(c.title.String(ctx.String()) + "> ")

	for {
		line, err := c.in.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.log.Error("reading command input", "error", err)
			}
			c.closed = true
			c.queueQuit(in)
			return
		}

		action, err := Parse(line, c.reg)
		if err != nil {
			c.log.Debug("could not parse input", "line", line, "error", err)
			_ = c.Printf("%s\nTry HELP for valid commands.\n", gcerrors.GameMessage(err))
			continue
		}

		switch {
		case action.Blank:
			continue
		case action.View != "":
			c.show(action.View, action.ViewArgs)
			continue
		}

		if err := in.Insert(action.Command); err != nil {
			c.log.Debug("could not queue command", "command", action.Command, "error", err)
			switch {
			case errors.Is(err, command.ErrNothingToRepeat):
				_ = c.Printf("There is nothing to repeat.\n")
			case errors.Is(err, command.ErrQueueFull):
				_ = c.Printf("Too many commands are waiting already.\n")
			default:
				_ = c.Printf("That doesn't work that way.\n")
			}
			continue
		}
		return
	}
}

func (c *Console) queueQuit(in command.Inserter) {
	if err := in.Insert(command.New(game.Quit)); err != nil {
		c.log.Warn("could not queue quit at end of input", "error", err)
	}
}

// show prints the named view.
func (c *Console) show(view string, args []string) {
	if c.views == nil {
		return
	}

	var text string
	switch view {
	case "INVENTORY":
		text = c.views.InventoryTable()
	case "EQUIPMENT":
		text = c.views.EquipmentTable()
	case "STORE":
		text = c.views.StoreTable()
	case "LOOK":
		text = c.views.Look()
	case "MAP":
		text = c.views.Map()
	case "STATUS":
		text = c.views.Status()
	case "TARGET":
		text = c.target(args)
	}
	_ = c.Printf("%s\n", text)
}

func (c *Console) target(args []string) string {
	if len(args) == 1 && (args[0] == "CLEAR" || args[0] == "NONE") {
		c.views.ClearTarget()
		return "Target cleared."
	}
	if len(args) != 2 {
		return "Type TARGET followed by an x and a y, or TARGET CLEAR."
	}

	x, xErr := strconv.Atoi(strings.TrimSuffix(args[0], ","))
	y, yErr := strconv.Atoi(args[1])
	if xErr != nil || yErr != nil {
		return "Type TARGET followed by an x and a y, or TARGET CLEAR."
	}
	c.views.SetTarget(x, y)
	return fmt.Sprintf("Target set to (%d, %d).", x, y)
}

// Prompt asks the player for one argument. A blank line takes the default if
// the request has one and cancels otherwise. "esc" or "escape" always cancels.
func (c *Console) Prompt(req command.Prompt) (command.Arg, bool) {
	if c.closed {
		return nil, false
	}

	if len(req.Choices) > 0 {
		_ = c.Printf("%s\n", menu(req.Choices))
	}

	c.in.AllowBlank(true)
	c.in.SetPrompt(promptText(req))
	defer c.in.AllowBlank(false)

	for tries := 0; tries < maxBadAnswers; tries++ {
		line, err := c.in.ReadLine()
		if err != nil {
			c.closed = true
			return nil, false
		}

		norm := strings.ToUpper(strings.TrimSpace(line))
		if norm == "" {
			if req.Default != nil {
				return req.Default, true
			}
			return nil, false
		}
		if norm == "ESC" || norm == "ESCAPE" {
			return nil, false
		}

		arg, err := parseAnswer(req, line)
		if err != nil {
			_ = c.Printf("%s\n", gcerrors.GameMessage(err))
			continue
		}
		return arg, true
	}

	return nil, false
}

func promptText(req command.Prompt) string {
	text := req.Text
	if req.Default != nil {
		text += fmt.Sprintf(" [%v]", req.Default)
	}
	return text + " "
}

// menu lists the choices of a prompt, one per line with a letter for each.
func menu(choices []command.Choice) string {
	var sb strings.Builder
	for i, ch := range choices {
		if i > 0 {
			sb.WriteRune('\n')
		}
		letter := " "
		if i < len(menuLetters) {
			letter = string(menuLetters[i])
		}
		sb.WriteString(fmt.Sprintf("  %s) %s [#%d]", letter, ch.Label, ch.Value))
	}
	return sb.String()
}

// parseAnswer reads an answer to req from what the player typed.
func parseAnswer(req command.Prompt, line string) (command.Arg, error) {
	text := strings.TrimSpace(line)
	upper := strings.ToUpper(text)

	switch req.Kind {
	case command.KindString:
		return command.StringArg(text), nil
	case command.KindDirection, command.KindTarget:
		d, err := direction.Parse(upper)
		if err != nil {
			return nil, gcerrors.Wrapf(err, "%q is not a direction.", text)
		}
		if req.Kind == command.KindTarget {
			return command.TargetArg(d), nil
		}
		return command.DirectionArg(d), nil
	case command.KindNumber:
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, gcerrors.Playerf("%q is not a number.", text)
		}
		if n < 0 || (req.Max > 0 && n > req.Max) {
			return nil, gcerrors.Playerf("Enter a number from 0 to %d.", req.Max)
		}
		return command.NumberArg(n), nil
	case command.KindPoint:
		fields := strings.Fields(strings.ReplaceAll(text, ",", " "))
		if len(fields) != 2 {
			return nil, gcerrors.Player("Enter an x and a y.", "")
		}
		x, xErr := strconv.Atoi(fields[0])
		y, yErr := strconv.Atoi(fields[1])
		if xErr != nil || yErr != nil {
			return nil, gcerrors.Playerf("%q is not a place.", text)
		}
		return command.PointArg{X: x, Y: y}, nil
	case command.KindItem, command.KindChoice:
		v, err := pickChoice(req.Choices, text)
		if err != nil {
			return nil, err
		}
		if req.Kind == command.KindItem {
			return command.ItemArg(v), nil
		}
		return command.ChoiceArg(v), nil
	default:
		return nil, gcerrors.Playerf("Nothing can be typed in for %s.", req.Kind)
	}
}

// pickChoice finds the choice meant by text, which is either a menu letter or
// the value itself.
func pickChoice(choices []command.Choice, text string) (int, error) {
	if len(text) == 1 {
		if idx := strings.Index(menuLetters, strings.ToLower(text)); idx >= 0 && idx < len(choices) {
			return choices[idx].Value, nil
		}
	}

	v, err := strconv.Atoi(strings.TrimPrefix(text, "#"))
	if err != nil {
		return 0, gcerrors.Playerf("%q is not one of the choices.", text)
	}
	if len(choices) == 0 {
		return v, nil
	}
	for _, ch := range choices {
		if ch.Value == v {
			return v, nil
		}
	}
	return 0, gcerrors.Playerf("%d is not one of the choices.", v)
}
