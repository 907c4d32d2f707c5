// Package gcerrors has errors that carry a message meant for the player in
// addition to the technical message given by Error().
package gcerrors

import (
	"errors"
	"fmt"
)

// playerError is an error caused by a command that cannot be carried out as
// requested. Either its arguments could not be understood or it asks for
// something that is impossible or not allowed at the current time.
//
// playerError includes a human-readable message to show to the player as well
// as a typical more technical "error message" style message.
type playerError struct {
	msg   string
	human string
	wrap  error
}

func (e *playerError) Error() string {
	return e.msg
}

// GameMessage shows the message that should be displayed in-game to describe
// the error.
func (e *playerError) GameMessage() string {
	return e.human
}

// Unwrap gives the error that the playerError wraps, if it wraps one.
func (e *playerError) Unwrap() error {
	return e.wrap
}

// Player returns a new error that has both the message to show the player and
// the technical description of the error.
func Player(game, technical string) error {
	return Wrap(nil, game, technical)
}

// Playerf returns a new error that has a message to show to the player and an
// automatically generated Error() description.
func Playerf(gameFormat string, a ...interface{}) error {
	return Player(fmt.Sprintf(gameFormat, a...), "")
}

// Wrap returns a new error that has both the message to show the player and
// the technical description of the error, and that wraps e.
func Wrap(e error, game, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("player error: %s", game)
		if e != nil {
			technical += ": " + e.Error()
		}
	}
	return &playerError{
		msg:   technical,
		human: game,
		wrap:  e,
	}
}

// Wrapf returns a new error that has a message to show the player and an
// automatically generated Error() description, and that wraps e.
func Wrapf(e error, gameFormat string, a ...interface{}) error {
	return Wrap(e, fmt.Sprintf(gameFormat, a...), "")
}

// GameMessage gets the message to display to the player for the given error.
// If err or any error it wraps has a game message, that is returned. Otherwise,
// err.Error() is returned.
func GameMessage(err error) string {
	if err == nil {
		return ""
	}

	var gm interface{ GameMessage() string }
	if errors.As(err, &gm) {
		return gm.GameMessage()
	}
	return err.Error()
}

// HasGameMessage returns whether err or any error it wraps has a game message.
func HasGameMessage(err error) bool {
	var gm interface{ GameMessage() string }
	return errors.As(err, &gm)
}
