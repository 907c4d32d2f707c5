package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/util"
	"github.com/dekarrin/rosed"
)

// This file contains the text views of game.State that the front end shows
// outside of commands.

func (s *State) objectTable(heading string, objs []*Object, extra func(*Object) string, extraHeading string) string {
	if len(objs) == 0 {
		return ""
	}

	header := []string{"#", heading}
	if extra != nil {
		header = append(header, extraHeading)
	}
	data := [][]string{header}

	for _, obj := range objs {
		row := []string{fmt.Sprintf("%d", obj.Ref), obj.Describe()}
		if extra != nil {
			row = append(row, extra(obj))
		}
		data = append(data, row)
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, s.io.Width, tableOpts).
		String()
}

// InventoryTable returns a text table of the objects the player is carrying.
func (s *State) InventoryTable() string {
	table := s.objectTable("Carrying", s.inventory(), nil, "")
	if table == "" {
		return "You are not carrying anything."
	}
	return table
}

// EquipmentTable returns a text table of the objects the player is wearing.
func (s *State) EquipmentTable() string {
	worn := s.Objects.Sorted(func(o *Object) bool { return o.Where == InEquipment })
	table := s.objectTable("Wearing", worn, func(o *Object) string { return slotName(o.Slot) }, "Slot")
	if table == "" {
		return "You are not wearing anything."
	}
	return table
}

// StoreTable returns a text table of what the store has for sale and what is
// kept in the home.
func (s *State) StoreTable() string {
	stock := s.Objects.Sorted(func(o *Object) bool { return o.Where == InStore })
	home := s.Objects.Sorted(func(o *Object) bool { return o.Where == InHome })

	price := func(o *Object) string { return fmt.Sprintf("%d", o.Value) }

	var sb strings.Builder
	if table := s.objectTable("For sale", stock, price, "Gold each"); table != "" {
		sb.WriteString(table)
	} else {
		sb.WriteString("The store has nothing for sale.")
	}
	sb.WriteString("\n\n")
	if table := s.objectTable("In your home", home, nil, ""); table != "" {
		sb.WriteString(table)
	} else {
		sb.WriteString("Your home is empty.")
	}
	sb.WriteString(fmt.Sprintf("\n\nYou have %d gold.", s.Player.Gold))
	return sb.String()
}

// Look describes the grid the player is standing on.
func (s *State) Look() string {
	t := s.Level.At(s.Player.X, s.Player.Y)
	desc := fmt.Sprintf("You are standing on %s %s.", util.ArticleFor(t.Name(), false), t.Name())

	objs := s.floorAt(s.Player.X, s.Player.Y)
	if len(objs) > 0 {
		var names []string
		for _, obj := range objs {
			names = append(names, obj.Describe())
		}
		desc += fmt.Sprintf(" You see %s.", util.MakeTextList(names, false))
	}

	return rosed.Edit(desc).WithOptions(textFormatOptions).Wrap(s.io.Width).String()
}

// Map returns the level as the player sees it.
func (s *State) Map() string {
	return s.Level.Render(s.Player.X, s.Player.Y)
}

// Status returns a definitions table with the player's condition.
func (s *State) Status() string {
	levelName := s.Level.Name
	if levelName == "" {
		levelName = "(unnamed)"
	}

	info := [][2]string{
		{"Level", fmt.Sprintf("%s (depth %d)", levelName, s.Level.Depth)},
		{"HP", fmt.Sprintf("%d/%d", s.Player.HP, s.Player.MaxHP)},
		{"Gold", fmt.Sprintf("%d", s.Player.Gold)},
		{"Position", fmt.Sprintf("(%d, %d)", s.Player.X, s.Player.Y)},
		{"Searching", fmt.Sprintf("%t", s.Player.Searching)},
		{"Context", s.ctx.String()},
	}

	// build at width + 2 then eliminate the left margin that
	// InsertDefinitionsTable always adds to remove the 2 extra
	// chars
	tableOpts := rosed.Options{ParagraphSeparator: "\n", NoTrailingLineSeparators: true}
	return rosed.Edit("Status\n\n").
		InsertDefinitionsTableOpts(math.MaxInt, info, s.io.Width+2, tableOpts).
		LinesFrom(2).
		Apply(func(idx int, line string) []string {
			if len(line) >= 2 {
				line = line[2:]
			}
			return []string{strings.Replace(line, "  -", "  :", 1)}
		}).
		String()
}

// describeArgs gives a short summary of what a catalog entry takes.
func describeArgs(e command.Entry) string {
	var parts []string
	for _, ks := range e.Args {
		if ks.Empty() {
			continue
		}
		var names []string
		for _, k := range ks.Elements() {
			names = append(names, k.String())
		}
		parts = append(parts, strings.Join(names, "/"))
	}

	desc := "no arguments"
	if len(parts) > 0 {
		desc = "takes " + util.MakeTextList(parts, false)
	}
	if e.AutoRepeat > 0 {
		desc += fmt.Sprintf("; repeats %d times", e.AutoRepeat)
	} else if e.RepeatAllowed {
		desc += "; can repeat"
	}
	return desc
}

func (s *State) cmdHelp(rc command.RepeatControl, id command.ID, args command.Args) {
	rc.DisableRepeat()

	seen := util.NewKeySet[string]()
	var defs [][2]string
	for _, e := range s.catalog {
		if e.Handler == nil {
			continue
		}
		d := [2]string{strings.ToUpper(e.Verb), describeArgs(e)}
		key := d[0] + "|" + d[1]
		if seen.Has(key) {
			continue
		}
		seen.Add(key)
		defs = append(defs, d)
	}

	help := rosed.Edit("").
		InsertDefinitionsTable(0, defs, s.io.Width).
		String()

	_ = s.io.Output("%s\n", help)
}
