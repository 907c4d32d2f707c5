// Package gamecmd contains a CLI-driven engine for getting commands from the
// player and carrying them out until the player quits.
package gamecmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/config"
	"github.com/dekarrin/gamecmd/internal/console"
	"github.com/dekarrin/gamecmd/internal/game"
	"github.com/dekarrin/gamecmd/internal/input"
	"github.com/dekarrin/gamecmd/internal/journal"
	"github.com/dekarrin/gamecmd/internal/logging"
)

// HistoryFile is the name of the file that interactive input history is kept
// in, in the user's home directory.
const HistoryFile = ".gamecmd_history"

// Engine contains the things needed to run a game from an interactive shell
// attached to an input stream and an output stream.
type Engine struct {
	state   *game.State
	pipe    *command.Pipeline
	con     *console.Console
	in      input.Reader
	out     io.Writer
	journal *journal.Journal
	log     *log.Logger

	logCloser   io.Closer
	forceDirect bool
	running     bool
}

// New creates a new engine ready to operate on the given input and output
// streams using the settings in cfg.
//
// If nil is given for the input stream, stdin is used. If nil is given for the
// output stream, stdout is used. Readline is used for input only when both are
// the process's terminal streams and forceDirectInput is false.
func New(inputStream io.Reader, outputStream io.Writer, cfg config.Config, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logCloser, err := logging.Configure(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	eng := &Engine{
		out:         outputStream,
		log:         logging.NewComponent("engine"),
		logCloser:   logCloser,
		forceDirect: forceDirectInput,
	}
	// anything opened so far is released if a later step fails
	ok := false
	defer func() {
		if !ok {
			eng.closeResources()
		}
	}()

	levelData, err := game.LoadLevelFile(cfg.LevelFile)
	if err != nil {
		return nil, err
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout
	if useReadline {
		histFile := ""
		if home, err := os.UserHomeDir(); err == nil {
			histFile = filepath.Join(home, HistoryFile)
		}
		eng.in, err = input.NewInteractiveReader(histFile)
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream, outputStream)
	}

	// the console is created after the state but the state writes through it
	ioDev := game.IODevice{
		Width: cfg.OutputWidth,
		Output: func(s string, a ...interface{}) error {
			return eng.con.Printf(s, a...)
		},
	}
	eng.state, err = game.New(levelData, game.Options{
		EasyOpen: cfg.EasyOpen,
		IO:       ioDev,
		SavePath: cfg.SaveFile,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing game engine: %w", err)
	}

	reg, err := command.NewRegistry(eng.state.Catalog(cfg.AutoRepeat))
	if err != nil {
		return nil, fmt.Errorf("building command registry: %w", err)
	}

	eng.con = console.New(eng.in, outputStream, cfg.OutputWidth, reg, eng.state)

	opts := command.Options{
		QueueSize: cfg.QueueSize,
		FrontEnd:  eng.con,
		Resolver:  eng.state,
		Logger:    logging.NewComponent("pipeline"),
	}

	jCfg, err := cfg.JournalSettings()
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	repo, err := jCfg.Connect()
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	if repo != nil {
		eng.journal, err = journal.New(repo)
		if err != nil {
			repo.Close()
			return nil, fmt.Errorf("journal: %w", err)
		}
		opts.Recorder = eng.journal
		eng.log.Info("recording commands", "journal", jCfg.Type, "session", eng.journal.Session())
	}

	eng.pipe, err = command.NewPipeline(reg, opts)
	if err != nil {
		return nil, fmt.Errorf("creating command pipeline: %w", err)
	}

	ok = true
	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running game engine")
	}
	return eng.closeResources()
}

func (eng *Engine) closeResources() error {
	var errs []error

	if eng.in != nil {
		if err := eng.in.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close command reader: %w", err))
		}
	}
	if eng.journal != nil {
		if err := eng.journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close journal: %w", err))
		}
	}
	if eng.logCloser != nil {
		if err := eng.logCloser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close log file: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Interrupt asks the game to quit. It is safe to call from any goroutine; the
// quit takes effect once the command being read or carried out is done.
func (eng *Engine) Interrupt() error {
	return eng.pipe.Post(command.New(game.Quit))
}

// Journal returns the journal commands are recorded in, or nil if they are
// not being recorded.
func (eng *Engine) Journal() *journal.Journal {
	return eng.journal
}

// RunUntilQuit begins reading commands from the streams and applying them to
// the game until the player quits, input runs out, or ctx is done.
func (eng *Engine) RunUntilQuit(ctx context.Context) error {
	introMsg := "Welcome to gamecmd\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "==================\n"
	introMsg += "\n"

	if _, err := io.WriteString(eng.out, introMsg); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.con.Printf("%s\n", eng.state.Look()); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}

	eng.running = true
	// so we dont have to remember to do this on every returned error condition
	defer func() {
		eng.running = false
	}()

	for !eng.state.Quitting() {
		if err := ctx.Err(); err != nil {
			break
		}

		err := eng.pipe.Process(eng.state.Context(), false)
		switch {
		case err == nil:
		case errors.Is(err, command.ErrStaleReference):
			// a repeat of something that has since been used up
			if eng.pipe.Repeating() {
				eng.pipe.CancelRepeat()
			}
			eng.con.Notify("You no longer have that item.")
		case errors.Is(err, command.ErrHandlerPanic):
			eng.con.Notify("Something went wrong; that did not work.")
		case errors.Is(err, command.ErrNoCommand):
			if eng.con.Closed() {
				return nil
			}
		case errors.Is(err, command.ErrReentrantProcess):
			return fmt.Errorf("process commands: %w", err)
		default:
			eng.log.Debug("cycle ended without a command", "reason", err)
		}
	}

	if _, err := io.WriteString(eng.out, "Goodbye\n"); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}

	return nil
}
