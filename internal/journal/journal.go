// Package journal records every command the pipeline carries out so that a
// play session can be looked at afterwards.
package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/logging"
	"github.com/google/uuid"
)

var (
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
	ErrNotFound            = errors.New("the requested resource was not found")
)

// Entry is one executed command.
type Entry struct {
	ID        uuid.UUID
	SessionID uuid.UUID

	// Seq is the position of the entry within its session, starting at 1.
	Seq int

	Context   command.Context
	CommandID command.ID
	Verb      string

	// Repeats is the number of repeats that were pending when the command
	// was carried out, counting that execution.
	Repeats int

	// Args is the command's arguments in the form produced by EncodeArgs.
	Args []byte

	Created time.Time
}

// Repository stores Entries.
type Repository interface {
	// Create stores a new Entry. The ID and Created fields are generated; all
	// others are taken from the given Entry.
	Create(ctx context.Context, e Entry) (Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (Entry, error)

	// GetAllBySession returns every entry of a session in Seq order.
	GetAllBySession(ctx context.Context, sessionID uuid.UUID) ([]Entry, error)
	GetAll(ctx context.Context) ([]Entry, error)
	Close() error
}

// Journal is a command.Recorder that writes to a Repository under a single
// session.
type Journal struct {
	repo    Repository
	session uuid.UUID
	seq     int
	log     *log.Logger
}

// New creates a Journal that records into repo under a freshly generated
// session ID.
func New(repo Repository) (*Journal, error) {
	sesh, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("could not generate session ID: %w", err)
	}

	return &Journal{
		repo:    repo,
		session: sesh,
		log:     logging.NewComponent("journal"),
	}, nil
}

// Session returns the ID of the session being recorded.
func (j *Journal) Session() uuid.UUID {
	return j.session
}

// Record stores cmd. Failures are logged and otherwise ignored so that a
// broken journal never stops the game.
func (j *Journal) Record(ctx command.Context, e command.Entry, cmd command.Command) {
	j.seq++
	entry := Entry{
		SessionID: j.session,
		Seq:       j.seq,
		Context:   ctx,
		CommandID: cmd.ID,
		Verb:      e.Verb,
		Repeats:   cmd.Repeats,
		Args:      EncodeArgs(cmd.Args),
	}

	if _, err := j.repo.Create(context.Background(), entry); err != nil {
		j.log.Warn("could not record command", "command", cmd, "error", err)
	}
}

// Entries returns everything recorded in this session so far.
func (j *Journal) Entries(ctx context.Context) ([]Entry, error) {
	all, err := j.repo.GetAllBySession(ctx, j.session)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return all, err
}

// Close closes the underlying Repository.
func (j *Journal) Close() error {
	return j.repo.Close()
}
