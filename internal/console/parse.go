package console

import (
	"strconv"
	"strings"

	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/direction"
	"github.com/dekarrin/gamecmd/internal/game"
	"github.com/dekarrin/gamecmd/internal/gcerrors"
)

var (
	// Keywords maps the first word of typed input to the command it queues.
	// They are all uppercase.
	Keywords = map[string]command.ID{
		"WALK":       game.Walk,
		"RUN":        game.Run,
		"JUMP":       game.Jump,
		"TRAVEL":     game.Pathfind,
		"OPEN":       game.Open,
		"CLOSE":      game.Close,
		"TUNNEL":     game.Tunnel,
		"DISARM":     game.Disarm,
		"BASH":       game.Bash,
		"ALTER":      game.Alter,
		"JAM":        game.Jam,
		"SEARCH":     game.Search,
		"SEARCHMODE": game.ToggleSearch,
		"HOLD":       game.Hold,
		"REST":       game.Rest,
		"ASCEND":     game.GoUp,
		"DESCEND":    game.GoDown,
		"PICKUP":     game.Pickup,
		"AUTOPICKUP": game.AutoPickup,
		"WIELD":      game.Wield,
		"TAKEOFF":    game.TakeOff,
		"DROP":       game.Drop,
		"INSCRIBE":   game.Inscribe,
		"UNINSCRIBE": game.Uninscribe,
		"EAT":        game.Eat,
		"QUAFF":      game.Quaff,
		"READ":       game.ReadScroll,
		"USE":        game.UseAny,
		"STAFF":      game.UseStaff,
		"AIM":        game.UseWand,
		"ZAP":        game.UseRod,
		"ACTIVATE":   game.Activate,
		"FIRE":       game.Fire,
		"THROW":      game.Throw,
		"REFUEL":     game.Refill,
		"IGNORE":     game.Destroy,
		"BROWSE":     game.BrowseSpell,
		"STUDY":      game.StudyBook,
		"LEARN":      game.StudySpell,
		"CAST":       game.Cast,
		"ENTER":      game.EnterStore,
		"LEAVE":      game.LeaveStore,
		"BUY":        game.Buy,
		"SELL":       game.Sell,
		"STASH":      game.Stash,
		"RETRIEVE":   game.Retrieve,
		"SAVE":       game.Save,
		"QUIT":       game.Quit,
		"RETIRE":     game.Suicide,
		"HELP":       game.Help,
		"REPEAT":     game.Repeat,
	}

	// viewKeywords are keywords that show something without giving a command.
	viewKeywords = map[string]bool{
		"INVENTORY": true,
		"EQUIPMENT": true,
		"LOOK":      true,
		"MAP":       true,
		"STATUS":    true,
		"STORE":     true,
		"TARGET":    true,
	}

	// VerbAliases maps shorthand verbs (which must be the first words in a
	// command) to their canonical forms. They are all uppercase.
	VerbAliases = map[string]string{
		"N":         "REPEAT",
		"NORTH":     "WALK NORTH",
		"SOUTH":     "WALK SOUTH",
		"EAST":      "WALK EAST",
		"WEST":      "WALK WEST",
		"NORTHEAST": "WALK NORTHEAST",
		"NORTHWEST": "WALK NORTHWEST",
		"SOUTHEAST": "WALK SOUTHEAST",
		"SOUTHWEST": "WALK SOUTHWEST",
		"NE":        "WALK NE",
		"NW":        "WALK NW",
		"SE":        "WALK SE",
		"SW":        "WALK SW",
		"GO":        "WALK",
		"MOVE":      "WALK",
		"GOTO":      "TRAVEL",
		"GO UP":     "ASCEND",
		"GO DOWN":   "DESCEND",
		"<":         "ASCEND",
		">":         "DESCEND",
		"DIG":       "TUNNEL",
		"SPIKE":     "JAM",
		"GET":       "PICKUP",
		"TAKE":      "PICKUP",
		"PICK UP":   "PICKUP",
		"WEAR":      "WIELD",
		"TAKE OFF":  "TAKEOFF",
		"REMOVE":    "TAKEOFF",
		"PUT":       "DROP",
		"PUT DOWN":  "DROP",
		"DESTROY":   "IGNORE",
		"FUEL":      "REFUEL",
		"EXIT":      "LEAVE",
		"SUICIDE":   "RETIRE",
		"BYE":       "QUIT",
		"?":         "HELP",
		"H":         "HELP",
		"INVEN":     "INVENTORY",
		"I":         "INVENTORY",
		"EQUIP":     "EQUIPMENT",
		"L":         "LOOK",
		"M":         "MAP",
		"C":         "STATUS",
	}

	// specialChoices are words accepted in place of a number for choice
	// arguments.
	specialChoices = map[string]int{
		"&":        game.RestAsNeeded,
		"AS":       game.RestAsNeeded,
		"*":        game.RestUntilHealed,
		"HP":       game.RestUntilHealed,
		"HEALED":   game.RestUntilHealed,
		"NEEDED":   game.RestAsNeeded,
		"ASNEEDED": game.RestAsNeeded,
	}
)

// Action is the result of parsing one line of input.
type Action struct {
	// View is set to the name of a view when the input asks to see something
	// rather than do something.
	View string

	// ViewArgs holds the words after a view keyword.
	ViewArgs []string

	// Command is the command to queue. It is only meaningful when View is
	// empty and Blank is false.
	Command command.Command

	// Blank is set when the input had nothing in it.
	Blank bool
}

// Parse reads an Action from a line of input. Arguments are matched against
// the kinds that reg says the command accepts; any that are left off are
// prompted for when the command is dispatched. A leading number is taken as
// the number of times to repeat the command.
func Parse(line string, reg *command.Registry) (Action, error) {
	original := strings.Fields(line)
	if len(original) < 1 {
		return Action{Blank: true}, nil
	}

	// make entire input upper case to make matching easy
	upper := strings.Fields(strings.ToUpper(line))

	repeats := 0
	if n, err := strconv.Atoi(upper[0]); err == nil {
		if n < 0 {
			return Action{}, gcerrors.Playerf("You can't do something %d times.", n)
		}
		repeats = n
		original, upper = original[1:], upper[1:]
		if len(upper) < 1 {
			return Action{}, gcerrors.Playerf("Do what %d times?", n)
		}
	}

	// expand verb aliases up to 2 words long
	tokens := ExpandAliases(upper, 2)
	verb := tokens[0]

	if viewKeywords[verb] {
		if repeats > 0 {
			return Action{}, gcerrors.Playerf("You can't %s more than once at a time.", strings.ToLower(verb))
		}
		return Action{View: verb, ViewArgs: tokens[1:]}, nil
	}

	id, ok := Keywords[verb]
	if !ok {
		return Action{}, gcerrors.Playerf("I don't know what you mean by %q.", original[0])
	}

	cmd := command.Command{ID: id, Repeats: repeats}
	if id == command.Repeat {
		if len(tokens) > 1 {
			return Action{}, gcerrors.Playerf("Type %s by itself to repeat the last command.", original[0])
		}
		return Action{Command: cmd}, nil
	}

	entry, ok := reg.Lookup(id)
	if !ok {
		return Action{}, gcerrors.Playerf("You can't %s right now.", strings.ToLower(verb))
	}

	rest := tokens[1:]
	for slot := 0; slot < command.MaxArgs && len(rest) > 0; slot++ {
		ks := entry.Args[slot]
		if ks.Empty() {
			continue
		}

		var arg command.Arg
		var used int
		var err error

		if ks.Has(command.KindString) {
			// the remaining words keep the case they were typed in
			arg = command.StringArg(strings.Join(original[len(original)-len(rest):], " "))
			used = len(rest)
		} else {
			arg, used, err = parseArg(ks, rest)
			if err != nil {
				return Action{}, err
			}
		}

		if err := cmd.Set(slot, arg); err != nil {
			return Action{}, err
		}
		rest = rest[used:]
	}

	if len(rest) > 0 {
		return Action{}, gcerrors.Playerf("I don't understand %q after %s.", strings.ToLower(strings.Join(rest, " ")), strings.ToLower(entry.Verb))
	}

	return Action{Command: cmd}, nil
}

// parseArg reads a non-text argument of one of the kinds in ks from the start
// of words. It returns the argument and how many words it used.
func parseArg(ks command.KindSet, words []string) (command.Arg, int, error) {
	w := words[0]

	switch {
	case ks.Has(command.KindPoint):
		if len(words) < 2 {
			return nil, 0, gcerrors.Player("A place needs both an x and a y.", "")
		}
		x, xErr := strconv.Atoi(strings.TrimSuffix(w, ","))
		y, yErr := strconv.Atoi(words[1])
		if xErr != nil || yErr != nil {
			return nil, 0, gcerrors.Playerf("%q is not a place.", strings.ToLower(w+" "+words[1]))
		}
		return command.PointArg{X: x, Y: y}, 2, nil
	case ks.Has(command.KindDirection), ks.Has(command.KindTarget):
		d, err := direction.Parse(w)
		if err != nil {
			return nil, 0, gcerrors.Wrapf(err, "%q is not a direction.", strings.ToLower(w))
		}
		if ks.Has(command.KindDirection) {
			return command.DirectionArg(d), 1, nil
		}
		return command.TargetArg(d), 1, nil
	case ks.Has(command.KindItem):
		ref, err := strconv.Atoi(strings.TrimPrefix(w, "#"))
		if err != nil || ref < 1 {
			return nil, 0, gcerrors.Playerf("%q is not an item number.", strings.ToLower(w))
		}
		return command.ItemArg(ref), 1, nil
	case ks.Has(command.KindNumber):
		n, err := strconv.Atoi(w)
		if err != nil {
			return nil, 0, gcerrors.Playerf("%q is not a number.", strings.ToLower(w))
		}
		return command.NumberArg(n), 1, nil
	case ks.Has(command.KindChoice):
		if v, ok := specialChoices[w]; ok {
			return command.ChoiceArg(v), 1, nil
		}
		n, err := strconv.Atoi(strings.TrimPrefix(w, "#"))
		if err != nil {
			return nil, 0, gcerrors.Playerf("%q is not one of the choices.", strings.ToLower(w))
		}
		return command.ChoiceArg(n), 1, nil
	default:
		return nil, 0, gcerrors.Playerf("I don't understand %q.", strings.ToLower(w))
	}
}

// ExpandAliases takes a slice of tokens of user input and runs alias expansion
// on it. It expects all strings in the given slice to be upper case; failure to
// ensure this may cause the expansion to not work properly. The returned slice
// contains the same tokens but with aliases expanded.
//
// The unexpanded tokens slice is not modified during this operation.
//
// Aliases up to aliasLimit words long are supported, and longer aliases are
// preferred. If it is less than 1, the given tokens will be returned
// unchanged.
//
// Aliases will not be multi-expanded; that is, expansion is not applied to the
// results of an expansion.
func ExpandAliases(tokens []string, aliasLimit int) []string {
	expandedTokens := append([]string{}, tokens...)
	if aliasLimit < 1 {
		return expandedTokens
	}

	// only modify verb up to minimum of limit and number of tokens
	if aliasLimit > len(tokens) {
		aliasLimit = len(tokens)
	}

	for curLimit := aliasLimit; curLimit >= 1; curLimit-- {
		checkStr := strings.Join(tokens[:curLimit], " ")
		expansion, ok := VerbAliases[checkStr]
		if ok {
			replacementTokens := strings.Fields(expansion)

			// we are operating from the start of the tokens, so the ones in
			// checkStr can just be replaced
			expandedTokens = append(replacementTokens, tokens[curLimit:]...)

			// only a single substitution is ever done
			return expandedTokens
		}
	}

	return expandedTokens
}
