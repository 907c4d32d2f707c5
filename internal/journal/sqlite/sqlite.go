// Package sqlite is a journal.Repository backed by a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/journal"
	"github.com/google/uuid"
	"modernc.org/sqlite"
)

// DBFilename is the name of the database file created in the storage
// directory.
const DBFilename = "journal.db"

// NewEntriesDB opens (creating if needed) the journal database in storageDir.
func NewEntriesDB(storageDir string) (*EntriesDB, error) {
	return NewEntriesDBConn(filepath.Join(storageDir, DBFilename))
}

// NewEntriesDBConn opens the journal database at the given file.
func NewEntriesDBConn(file string) (*EntriesDB, error) {
	repo := &EntriesDB{}

	var err error
	repo.db, err = sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	if err := repo.init(); err != nil {
		repo.db.Close()
		return nil, err
	}
	return repo, nil
}

type EntriesDB struct {
	db *sql.DB
}

func (repo *EntriesDB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS entries (
		id TEXT NOT NULL PRIMARY KEY,
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		context INTEGER NOT NULL,
		command_id INTEGER NOT NULL,
		verb TEXT NOT NULL,
		repeats INTEGER NOT NULL,
		args TEXT NOT NULL,
		created INTEGER NOT NULL,
		UNIQUE (session_id, seq)
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *EntriesDB) Create(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return journal.Entry{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.PrepareContext(ctx, `INSERT INTO entries (id, session_id, seq, context, command_id, verb, repeats, args, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return journal.Entry{}, wrapDBError(err)
	}
	defer stmt.Close()

	now := time.Now()
	_, err = stmt.ExecContext(
		ctx,
		newUUID.String(),
		e.SessionID.String(),
		e.Seq,
		int(e.Context),
		int(e.CommandID),
		e.Verb,
		e.Repeats,
		base64.StdEncoding.EncodeToString(e.Args),
		now.UnixMicro(),
	)
	if err != nil {
		return journal.Entry{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *EntriesDB) GetByID(ctx context.Context, id uuid.UUID) (journal.Entry, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, session_id, seq, context, command_id, verb, repeats, args, created FROM entries WHERE id = ?;`,
		id.String(),
	)

	e, err := scanEntry(row)
	if err != nil {
		return journal.Entry{}, err
	}
	return e, nil
}

func (repo *EntriesDB) GetAllBySession(ctx context.Context, sessionID uuid.UUID) ([]journal.Entry, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, session_id, seq, context, command_id, verb, repeats, args, created FROM entries WHERE session_id = ? ORDER BY seq;`,
		sessionID.String(),
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	all, err := scanAll(rows)
	if err != nil {
		return all, err
	}
	if len(all) < 1 {
		return nil, journal.ErrNotFound
	}
	return all, nil
}

func (repo *EntriesDB) GetAll(ctx context.Context) ([]journal.Entry, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, session_id, seq, context, command_id, verb, repeats, args, created FROM entries ORDER BY session_id, seq;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	return scanAll(rows)
}

func (repo *EntriesDB) Close() error {
	return repo.db.Close()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAll(rows *sql.Rows) ([]journal.Entry, error) {
	var all []journal.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return all, err
		}
		all = append(all, e)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func scanEntry(row scanner) (journal.Entry, error) {
	var e journal.Entry
	var id string
	var seshID string
	var ctxNum int
	var cmdID int
	var encArgs string
	var created int64

	err := row.Scan(
		&id,
		&seshID,
		&e.Seq,
		&ctxNum,
		&cmdID,
		&e.Verb,
		&e.Repeats,
		&encArgs,
		&created,
	)
	if err != nil {
		return e, wrapDBError(err)
	}

	e.ID, err = uuid.Parse(id)
	if err != nil {
		return e, fmt.Errorf("stored ID %q is invalid: %w", id, err)
	}
	e.SessionID, err = uuid.Parse(seshID)
	if err != nil {
		return e, fmt.Errorf("stored session ID %q is invalid: %w", seshID, err)
	}
	e.Args, err = base64.StdEncoding.DecodeString(encArgs)
	if err != nil {
		return e, fmt.Errorf("stored args %q are invalid: %w", encArgs, err)
	}
	e.Context = command.Context(ctxNum)
	e.CommandID = command.ID(cmdID)
	e.Created = time.UnixMicro(created)

	return e, nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		// extended result codes keep the primary code in the low byte
		primary := sqliteErr.Code() & 0xff
		if primary == 19 {
			return journal.ErrConstraintViolation
		}
		if msg, ok := sqlite.ErrorCodeString[primary]; ok {
			return fmt.Errorf("%s", msg)
		}
		return err
	} else if errors.Is(err, sql.ErrNoRows) {
		return journal.ErrNotFound
	}
	return err
}
