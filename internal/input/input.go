// Package input contains the line readers used to get player input from a
// terminal or any other stream.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Reader is a source of player input lines.
type Reader interface {
	// ReadLine reads a single line of input with surrounding whitespace
	// removed. Unless blank lines are allowed, it blocks until a line with
	// non-space characters is read.
	//
	// At end of input, the returned string is empty and error is io.EOF. If
	// EOF was encountered but some input was received, the input is returned
	// with a nil error and the next call returns "", io.EOF.
	ReadLine() (string, error)

	// SetPrompt sets the text shown before each line is read.
	SetPrompt(p string)

	// AllowBlank sets whether blank lines are returned. By default they are
	// skipped.
	AllowBlank(allow bool)

	// Close releases anything the Reader holds. It should be called once the
	// Reader is no longer needed.
	Close() error
}

// DirectReader implements Reader and reads lines from any generic input
// stream directly. It can be used generically with any io.Reader but does not
// sanitize the input of control and escape sequences.
//
// DirectReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectReader struct {
	r             *bufio.Reader
	promptOut     io.Writer
	prompt        string
	blanksAllowed bool
}

// InteractiveReader implements Reader and reads lines from stdin using a go
// implementation of the GNU Readline library. This keeps input clear of all
// typing and editing escape sequences and enables the use of input history.
// This should in general only be used when directly connected to a TTY.
//
// InteractiveReader should not be used directly; instead, create one with
// [NewInteractiveReader].
type InteractiveReader struct {
	rl            *readline.Instance
	blanksAllowed bool
}

// NewDirectReader creates a DirectReader that reads from r. If promptOut is
// not nil, prompts are written to it before each line is read.
func NewDirectReader(r io.Reader, promptOut io.Writer) *DirectReader {
	return &DirectReader{
		r:         bufio.NewReader(r),
		promptOut: promptOut,
	}
}

// NewInteractiveReader creates an InteractiveReader and initializes readline.
// The returned InteractiveReader must have Close() called on it before
// disposal to properly teardown readline resources.
func NewInteractiveReader(historyFile string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       historyFile,
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{rl: rl}, nil
}

// Close does nothing for a DirectReader; the stream it reads is owned by the
// caller.
func (dr *DirectReader) Close() error {
	return nil
}

// Close cleans up readline resources.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

// ReadLine reads the next line from the stream.
func (dr *DirectReader) ReadLine() (string, error) {
	for {
		if dr.promptOut != nil && dr.prompt != "" {
			if _, err := io.WriteString(dr.promptOut, dr.prompt); err != nil {
				return "", fmt.Errorf("write prompt: %w", err)
			}
		}

		line, err := dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line != "" || dr.blanksAllowed {
			return line, nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
	}
}

// ReadLine reads the next line from the terminal. An interrupt (Ctrl-C) while
// a line is being typed gives an empty line if blanks are allowed.
func (ir *InteractiveReader) ReadLine() (string, error) {
	for {
		line, err := ir.rl.Readline()
		if err == readline.ErrInterrupt {
			if ir.blanksAllowed {
				return "", nil
			}
			continue
		}
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line != "" || ir.blanksAllowed {
			return line, nil
		}
	}
}

// AllowBlank sets whether blank lines are returned. By default they are not.
func (dr *DirectReader) AllowBlank(allow bool) {
	dr.blanksAllowed = allow
}

// AllowBlank sets whether blank lines are returned. By default they are not.
func (ir *InteractiveReader) AllowBlank(allow bool) {
	ir.blanksAllowed = allow
}

// SetPrompt updates the prompt to the given text.
func (dr *DirectReader) SetPrompt(p string) {
	dr.prompt = p
}

// SetPrompt updates the prompt to the given text.
func (ir *InteractiveReader) SetPrompt(p string) {
	ir.rl.SetPrompt(p)
}
