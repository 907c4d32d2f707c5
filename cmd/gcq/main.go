/*
Gcq starts an interactive gamecmd session.

It reads in a level file and starts the player at the level's starting
position. It then prints what is happening in the game to stdout and reads
commands from stdin until the player quits or input runs out.

Usage:

	gcq [flags]

The flags are:

	-v, --version
		Give the current version of gamecmd and then exit.

	-c, --config FILE
		Read settings from the given TOML file. Settings in the file are
		overridden by GAMECMD_* environment variables, which are in turn
		overridden by flags.

	-l, --level FILE
		Play the given TOML level file. Defaults to "level.toml" in the current
		working directory if neither the config nor GAMECMD_LEVEL_FILE give
		one.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading command input even if launched in
		a tty with stdin and stdout.

	-j, --journal DRIVER[:PARAMS]
		Record every command carried out. DRIVER must be one of none, inmem or
		sqlite. sqlite needs the path to a data directory, such as
		sqlite:path/to/dir.

	--log-level LEVEL
		Log diagnostics at the given level: debug, info, warn, error or fatal.

Once a session has started, input is parsed for commands. For an explanation
of the commands, type "HELP" once in a session. To exit, type "QUIT". An
interrupt signal asks the game to quit once the current command is done; a
second one exits immediately.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dekarrin/gamecmd"
	"github.com/dekarrin/gamecmd/internal/config"
	"github.com/dekarrin/gamecmd/internal/version"
	"github.com/spf13/pflag"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitGameError indicates an unsuccessful program execution due to a
	// problem during the game.
	ExitGameError

	// ExitInitError indicates an unsuccessful program execution due to an issue
	// initializing the engine.
	ExitInitError
)

const defaultLevelFile = "level.toml"

var (
	returnCode int = ExitSuccess

	flagVersion  = pflag.BoolP("version", "v", false, "Give the current version of gamecmd and then exit.")
	flagConfig   = pflag.StringP("config", "c", "", "Read settings from the given TOML file.")
	flagLevel    = pflag.StringP("level", "l", defaultLevelFile, "Play the given TOML level file.")
	flagDirect   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
	flagJournal  = pflag.StringP("journal", "j", "", "Record every command to the given journal (none, inmem, or sqlite:DIR).")
	flagLogLevel = pflag.String("log-level", "", "Log diagnostics at the given level.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	if pflag.Lookup("level").Changed || cfg.LevelFile == "" {
		cfg.LevelFile = *flagLevel
	}
	if pflag.Lookup("journal").Changed {
		cfg.Journal = *flagJournal
	}
	if pflag.Lookup("log-level").Changed {
		cfg.LogLevel = *flagLogLevel
	}

	gameEng, initErr := gamecmd.New(os.Stdin, os.Stdout, cfg, *flagDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer gameEng.Close()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)
	go func() {
		if _, ok := <-sigs; !ok {
			return
		}
		if err := gameEng.Interrupt(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		}
		if _, ok := <-sigs; ok {
			os.Exit(ExitGameError)
		}
	}()

	err = gameEng.RunUntilQuit(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGameError
		return
	}
}
