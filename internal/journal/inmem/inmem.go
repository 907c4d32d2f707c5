// Package inmem is a journal.Repository that keeps everything in memory.
package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dekarrin/gamecmd/internal/journal"
	"github.com/google/uuid"
)

// NewEntriesRepository creates an empty in-memory Entries repository.
func NewEntriesRepository() *InMemoryEntriesRepository {
	return &InMemoryEntriesRepository{
		entries:       make(map[uuid.UUID]journal.Entry),
		bySeshIDIndex: make(map[uuid.UUID][]uuid.UUID),
	}
}

type InMemoryEntriesRepository struct {
	mtx           sync.Mutex
	entries       map[uuid.UUID]journal.Entry
	bySeshIDIndex map[uuid.UUID][]uuid.UUID
}

func (imer *InMemoryEntriesRepository) Close() error {
	return nil
}

func (imer *InMemoryEntriesRepository) Create(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	imer.mtx.Lock()
	defer imer.mtx.Unlock()

	newUUID, err := uuid.NewRandom()
	if err != nil {
		return journal.Entry{}, fmt.Errorf("could not generate ID: %w", err)
	}

	// session and seq together are unique
	for _, id := range imer.bySeshIDIndex[e.SessionID] {
		if imer.entries[id].Seq == e.Seq {
			return journal.Entry{}, journal.ErrConstraintViolation
		}
	}

	e.ID = newUUID
	e.Created = time.Now()
	e.Args = append([]byte{}, e.Args...)

	imer.entries[e.ID] = e
	imer.bySeshIDIndex[e.SessionID] = append(imer.bySeshIDIndex[e.SessionID], e.ID)

	return e, nil
}

func (imer *InMemoryEntriesRepository) GetByID(ctx context.Context, id uuid.UUID) (journal.Entry, error) {
	imer.mtx.Lock()
	defer imer.mtx.Unlock()

	e, ok := imer.entries[id]
	if !ok {
		return journal.Entry{}, journal.ErrNotFound
	}

	return e, nil
}

func (imer *InMemoryEntriesRepository) GetAllBySession(ctx context.Context, id uuid.UUID) ([]journal.Entry, error) {
	imer.mtx.Lock()
	defer imer.mtx.Unlock()

	bySesh := imer.bySeshIDIndex[id]
	if len(bySesh) < 1 {
		return nil, journal.ErrNotFound
	}

	all := make([]journal.Entry, len(bySesh))
	for i := range bySesh {
		all[i] = imer.entries[bySesh[i]]
	}

	sort.Slice(all, func(l, r int) bool {
		return all[l].Seq < all[r].Seq
	})

	return all, nil
}

func (imer *InMemoryEntriesRepository) GetAll(ctx context.Context) ([]journal.Entry, error) {
	imer.mtx.Lock()
	defer imer.mtx.Unlock()

	all := make([]journal.Entry, 0, len(imer.entries))
	for k := range imer.entries {
		all = append(all, imer.entries[k])
	}

	sort.Slice(all, func(l, r int) bool {
		if all[l].SessionID != all[r].SessionID {
			return all[l].SessionID.String() < all[r].SessionID.String()
		}
		return all[l].Seq < all[r].Seq
	})

	return all, nil
}
