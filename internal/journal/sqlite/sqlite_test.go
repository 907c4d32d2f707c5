package sqlite

import (
	"context"
	"testing"

	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/journal"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestDB(t *testing.T) *EntriesDB {
	db, err := NewEntriesDB(t.TempDir())
	if err != nil {
		t.Fatalf("opening journal db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func Test_EntriesDB_CreateAndGet(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	db := newTestDB(t)
	sesh := uuid.New()

	created, err := db.Create(ctx, journal.Entry{
		SessionID: sesh,
		Seq:       1,
		Context:   command.ContextStore,
		CommandID: 44,
		Verb:      "sell",
		Repeats:   0,
		Args:      []byte{0x00, 0x01, 0xff},
	})
	if !assert.NoError(err) {
		return
	}

	assert.NotEqual(uuid.Nil, created.ID)
	assert.Equal(sesh, created.SessionID)
	assert.Equal(1, created.Seq)
	assert.Equal(command.ContextStore, created.Context)
	assert.Equal(command.ID(44), created.CommandID)
	assert.Equal("sell", created.Verb)
	assert.Equal([]byte{0x00, 0x01, 0xff}, created.Args)
	assert.False(created.Created.IsZero())

	got, err := db.GetByID(ctx, created.ID)
	assert.NoError(err)
	assert.Equal(created, got)
}

func Test_EntriesDB_GetAllBySession(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	db := newTestDB(t)
	seshA := uuid.New()
	seshB := uuid.New()

	for _, seq := range []int{3, 1, 2} {
		_, err := db.Create(ctx, journal.Entry{SessionID: seshA, Seq: seq, Verb: "walk", Args: []byte{}})
		assert.NoError(err)
	}
	_, err := db.Create(ctx, journal.Entry{SessionID: seshB, Seq: 1, Verb: "search", Args: []byte{}})
	assert.NoError(err)

	bySesh, err := db.GetAllBySession(ctx, seshA)
	if !assert.NoError(err) || !assert.Len(bySesh, 3) {
		return
	}
	for i := range bySesh {
		assert.Equal(i+1, bySesh[i].Seq)
		assert.Equal(seshA, bySesh[i].SessionID)
	}

	all, err := db.GetAll(ctx)
	assert.NoError(err)
	assert.Len(all, 4)
}

func Test_EntriesDB_Errors(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	db := newTestDB(t)
	sesh := uuid.New()

	_, err := db.Create(ctx, journal.Entry{SessionID: sesh, Seq: 1, Verb: "walk", Args: []byte{}})
	assert.NoError(err)

	_, err = db.Create(ctx, journal.Entry{SessionID: sesh, Seq: 1, Verb: "walk", Args: []byte{}})
	assert.ErrorIs(err, journal.ErrConstraintViolation)

	_, err = db.GetByID(ctx, uuid.New())
	assert.ErrorIs(err, journal.ErrNotFound)

	_, err = db.GetAllBySession(ctx, uuid.New())
	assert.ErrorIs(err, journal.ErrNotFound)
}
