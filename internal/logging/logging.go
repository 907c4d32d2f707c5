// Package logging provides the diagnostic logger used throughout gamecmd. Game
// output meant for the player never goes through here; this is only for the
// operator.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Logger is the global logger. Components derive their own prefixed loggers
// from it with NewComponent.
var Logger *log.Logger

// output is where Logger and every component logger write to.
var output io.Writer = os.Stderr

func init() {
	Logger = log.New(output)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.WarnLevel)
}

// Configure sets the level and destination of the global logger. If file is
// empty, logs go to stderr. The returned closer must be closed when logging is
// no longer needed; it is a no-op for stderr.
func Configure(level string, file string) (io.Closer, error) {
	var closer io.Closer = nopCloser{}
	output = os.Stderr

	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, err
		}
		output = f
		closer = f
	}

	Logger = log.New(output)
	Logger.SetTimeFormat("")
	Logger.SetLevel(ParseLevel(level))

	return closer, nil
}

// ParseLevel converts a level name to a log level. Unrecognized names give the
// warn level.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// NewComponent creates a logger for one part of the program. Its messages are
// prefixed with the component name and it uses the global logger's level and
// destination as they are at the time of the call.
func NewComponent(prefix string) *log.Logger {
	l := log.NewWithOptions(output, log.Options{
		Prefix: prefix,
	})
	l.SetTimeFormat("")
	l.SetLevel(Logger.GetLevel())
	return l
}

// Discard returns a logger that drops everything. It is meant for tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
