package game

import (
	"strings"

	"github.com/dekarrin/gamecmd/internal/command"
)

// File commands.go holds the command identifiers of the game and the table
// that describes them.

// Command identifiers. They start at 1 so that none of them is command.Null.
const (
	LoadFile command.ID = iota + 1
	NewGame

	BirthReset
	ChooseSex
	ChooseRace
	ChooseClass
	FinalizeOptions
	BuyStat
	SellStat
	ResetStats
	RollStats
	PrevStats
	NameChoice
	AcceptCharacter

	GoUp
	GoDown
	Search
	ToggleSearch
	Walk
	Jump
	Pathfind

	Inscribe
	Uninscribe
	TakeOff
	Wield
	Drop
	BrowseSpell
	StudySpell
	StudyBook
	Cast
	UseStaff
	UseWand
	UseRod
	Activate
	Eat
	Quaff
	ReadScroll
	Refill
	Fire
	Throw
	Pickup
	AutoPickup
	Destroy
	Disarm
	Rest
	Tunnel
	Open
	Close
	Jam
	Bash
	Run
	Hold
	EnterStore
	Alter

	Sell
	Buy
	Stash
	Retrieve

	UseAimed
	UseUnaimed
	UseAny

	Suicide
	Save
	Quit
	Help
	LeaveStore

	// Repeat re-queues the last command given.
	Repeat = command.Repeat
)

// handlerFn carries out a command against a State.
type handlerFn func(s *State, rc command.RepeatControl, id command.ID, args command.Args)

type commandDef struct {
	id     command.ID
	verb   string
	args   [command.MaxArgs]command.KindSet
	fn     handlerFn
	repeat bool
	auto   int
}

var (
	noArgs      = [command.MaxArgs]command.KindSet{}
	argChoice   = [command.MaxArgs]command.KindSet{command.Kinds(command.KindChoice)}
	argString   = [command.MaxArgs]command.KindSet{command.Kinds(command.KindString)}
	argDir      = [command.MaxArgs]command.KindSet{command.Kinds(command.KindDirection)}
	argPoint    = [command.MaxArgs]command.KindSet{command.Kinds(command.KindPoint)}
	argItem     = [command.MaxArgs]command.KindSet{command.Kinds(command.KindItem)}
	argItemNum  = [command.MaxArgs]command.KindSet{command.Kinds(command.KindItem), command.Kinds(command.KindNumber)}
	argItemAim  = [command.MaxArgs]command.KindSet{command.Kinds(command.KindItem), command.Kinds(command.KindTarget)}
	argItemText = [command.MaxArgs]command.KindSet{command.Kinds(command.KindItem), command.Kinds(command.KindString)}
	argSpellAim = [command.MaxArgs]command.KindSet{command.Kinds(command.KindChoice), command.Kinds(command.KindTarget)}
	argPickNum  = [command.MaxArgs]command.KindSet{command.Kinds(command.KindChoice), command.Kinds(command.KindNumber)}
)

// commandTable is every command the game knows. Commands without a handler
// are carried out by the front end.
var commandTable = []commandDef{
	{id: LoadFile, verb: "load a savefile", args: noArgs},
	{id: NewGame, verb: "start a new game", args: noArgs},

	{id: BirthReset, verb: "go back to the beginning", args: noArgs},
	{id: ChooseSex, verb: "select sex", args: argChoice},
	{id: ChooseRace, verb: "select race", args: argChoice},
	{id: ChooseClass, verb: "select class", args: argChoice},
	{id: FinalizeOptions, verb: "finalise options", args: argChoice},
	{id: BuyStat, verb: "buy points in a stat", args: argChoice},
	{id: SellStat, verb: "sell points in a stat", args: argChoice},
	{id: ResetStats, verb: "reset stats", args: argChoice},
	{id: RollStats, verb: "roll new stats", args: noArgs},
	{id: PrevStats, verb: "use previously rolled stats", args: noArgs},
	{id: NameChoice, verb: "choose name", args: argString},
	{id: AcceptCharacter, verb: "accept character", args: noArgs},

	{id: GoUp, verb: "go up stairs", args: noArgs, fn: (*State).cmdGoUp},
	{id: GoDown, verb: "go down stairs", args: noArgs, fn: (*State).cmdGoDown},
	{id: Search, verb: "search", args: noArgs, fn: (*State).cmdSearch, repeat: true, auto: 10},
	{id: ToggleSearch, verb: "toggle search mode", args: noArgs, fn: (*State).cmdToggleSearch},
	{id: Walk, verb: "walk", args: argDir, fn: (*State).cmdWalk, repeat: true},
	{id: Run, verb: "run", args: argDir, fn: (*State).cmdRun},
	{id: Jump, verb: "jump", args: argDir, fn: (*State).cmdJump},
	{id: Open, verb: "open", args: argDir, fn: (*State).cmdOpen, repeat: true, auto: 99},
	{id: Close, verb: "close", args: argDir, fn: (*State).cmdClose, repeat: true, auto: 99},
	{id: Tunnel, verb: "tunnel", args: argDir, fn: (*State).cmdTunnel, repeat: true, auto: 99},
	{id: Hold, verb: "stay still", args: noArgs, fn: (*State).cmdHold, repeat: true},
	{id: Disarm, verb: "disarm", args: argDir, fn: (*State).cmdDisarm, repeat: true, auto: 99},
	{id: Bash, verb: "bash", args: argDir, fn: (*State).cmdBash, repeat: true, auto: 99},
	{id: Alter, verb: "alter", args: argDir, fn: (*State).cmdAlter, repeat: true, auto: 99},
	{id: Jam, verb: "jam", args: argDir, fn: (*State).cmdJam},
	{id: Rest, verb: "rest", args: argChoice, fn: (*State).cmdRest},
	{id: Pathfind, verb: "walk", args: argPoint, fn: (*State).cmdPathfind},
	{id: Pickup, verb: "pickup", args: argItem, fn: (*State).cmdPickup},
	{id: AutoPickup, verb: "autopickup", args: noArgs, fn: (*State).cmdAutoPickup},
	{id: Wield, verb: "wear or wield", args: argItemNum, fn: (*State).cmdWield},
	{id: TakeOff, verb: "take off", args: argItem, fn: (*State).cmdTakeOff},
	{id: Drop, verb: "drop", args: argItemNum, fn: (*State).cmdDrop},
	{id: Uninscribe, verb: "un-inscribe", args: argItem, fn: (*State).cmdUninscribe},
	{id: Eat, verb: "eat", args: argItem, fn: (*State).cmdUse},
	{id: Quaff, verb: "quaff", args: argItemAim, fn: (*State).cmdUse},
	{id: UseRod, verb: "zap", args: argItemAim, fn: (*State).cmdUse},
	{id: UseStaff, verb: "use", args: argItem, fn: (*State).cmdUse},
	{id: UseWand, verb: "aim", args: argItemAim, fn: (*State).cmdUse},
	{id: ReadScroll, verb: "read", args: argItemAim, fn: (*State).cmdUse},
	{id: Activate, verb: "activate", args: argItemAim, fn: (*State).cmdUse},
	{id: Refill, verb: "refuel with", args: argItem, fn: (*State).cmdRefill},
	{id: Fire, verb: "fire", args: argItemAim, fn: (*State).cmdFire},
	{id: Throw, verb: "throw", args: argItemAim, fn: (*State).cmdThrow},
	{id: Destroy, verb: "ignore", args: argItem, fn: (*State).cmdDestroy},
	{id: EnterStore, verb: "go into", args: noArgs, fn: (*State).cmdEnterStore},
	{id: LeaveStore, verb: "leave", args: noArgs, fn: (*State).cmdLeaveStore},
	{id: Inscribe, verb: "inscribe", args: argItemText, fn: (*State).cmdInscribe},
	{id: BrowseSpell, verb: "browse", args: noArgs, fn: (*State).cmdBrowse},
	{id: StudySpell, verb: "study", args: argChoice, fn: (*State).cmdStudySpell},
	{id: StudyBook, verb: "study", args: argItem, fn: (*State).cmdStudyBook},
	{id: Cast, verb: "cast", args: argSpellAim, fn: (*State).cmdCast},
	{id: Sell, verb: "sell", args: argItemNum, fn: (*State).cmdSell},
	{id: Stash, verb: "stash", args: argItemNum, fn: (*State).cmdStash},
	{id: Buy, verb: "buy", args: argPickNum, fn: (*State).cmdBuy},
	{id: Retrieve, verb: "retrieve", args: argPickNum, fn: (*State).cmdRetrieve},
	{id: UseAimed, verb: "use", args: argItemAim, fn: (*State).cmdUse},
	{id: UseUnaimed, verb: "use", args: argItemAim, fn: (*State).cmdUse},
	{id: UseAny, verb: "use", args: argItemAim, fn: (*State).cmdUse},
	{id: Suicide, verb: "commit suicide", args: noArgs, fn: (*State).cmdSuicide},
	{id: Save, verb: "save", args: noArgs, fn: (*State).cmdSave},
	{id: Quit, verb: "quit", args: noArgs, fn: (*State).cmdQuit},
	{id: Help, verb: "help", args: noArgs, fn: (*State).cmdHelp},
	{id: Repeat, verb: "repeat", args: noArgs},
}

// commandsByID indexes commandTable. It is filled in by init because the
// handlers in commandTable look verbs up through it.
var commandsByID map[command.ID]commandDef

func init() {
	commandsByID = make(map[command.ID]commandDef, len(commandTable))
	for _, def := range commandTable {
		commandsByID[def.id] = def
	}
}

// Verb returns the verb of the command with the given identifier, or an empty
// string if there is no such command.
func Verb(id command.ID) string {
	return commandsByID[id].verb
}

// Catalog returns the registry entries for every command, with handlers bound
// to s. autoRepeat overrides the auto-repeat count of commands by verb; it is
// only applied to commands that can repeat, and a count of zero turns
// auto-repeat off.
func (s *State) Catalog(autoRepeat map[string]int) []command.Entry {
	entries := make([]command.Entry, 0, len(commandTable))

	for _, def := range commandTable {
		e := command.Entry{
			ID:            def.id,
			Verb:          def.verb,
			Args:          def.args,
			RepeatAllowed: def.repeat,
			AutoRepeat:    def.auto,
		}

		if override, ok := autoRepeat[strings.ToLower(def.verb)]; ok && def.repeat && override >= 0 {
			e.AutoRepeat = override
		}

		if def.fn != nil {
			fn := def.fn
			e.Handler = command.HandlerFunc(func(rc command.RepeatControl, id command.ID, args command.Args) {
				fn(s, rc, id, args)
			})
		}

		entries = append(entries, e)
	}

	s.catalog = entries
	return entries
}
