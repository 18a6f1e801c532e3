// Package editor keeps the CMS edit buffers between requests.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/debemdeboas/oremos-juntos/internal/content"
	"github.com/rs/zerolog"
)

var (
	ErrBufferNotFound = errors.New("edit buffer not found")
	// ErrBufferConflict means the stored buffer changed after it was read.
	ErrBufferConflict = errors.New("edit buffer changed concurrently")
)

const updateAttempts = 8

var editorLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	editorLogger = l
}

// Repository stores buffers by id. Get hands out a buffer the caller may
// mutate freely; changes become visible to later calls only through Save.
//
// Save and Drop compare the buffer's Revision with the stored one and fail
// with ErrBufferConflict when another writer got there first. A successful
// Save bumps buf.Revision.
type Repository interface {
	Create(ctx context.Context, doc content.Document, version uint64) (*Buffer, error)
	Get(ctx context.Context, id BufferID) (*Buffer, error)
	Save(ctx context.Context, buf *Buffer) error
	// Drop deletes buf unless it was saved again after being read.
	Drop(ctx context.Context, buf *Buffer) error
	Delete(ctx context.Context, id BufferID) error
}

// Update reads the buffer, applies fn and saves the result, starting over
// when the save loses a race. An error from fn is returned as is and nothing
// is written.
func Update(ctx context.Context, repo Repository, id BufferID, fn func(*Buffer) error) (*Buffer, error) {
	for attempt := 1; ; attempt++ {
		buf, err := repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := fn(buf); err != nil {
			return nil, err
		}

		err = repo.Save(ctx, buf)
		if err == nil {
			return buf, nil
		}
		if !errors.Is(err, ErrBufferConflict) || attempt == updateAttempts {
			return nil, err
		}
		editorLogger.Debug().Str("buffer_id", string(id)).Int("attempt", attempt).Msg("Edit buffer conflict, retrying")
	}
}

// Locks serializes work on a buffer inside one process. Entries live only
// while someone holds or waits for them.
type Locks struct {
	mu   sync.Mutex
	held map[BufferID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewLocks() *Locks {
	return &Locks{held: make(map[BufferID]*lockEntry)}
}

// Lock blocks until id is free and returns the function that releases it.
func (l *Locks) Lock(id BufferID) (unlock func()) {
	l.mu.Lock()
	e, ok := l.held[id]
	if !ok {
		e = &lockEntry{}
		l.held[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		if e.refs--; e.refs == 0 {
			delete(l.held, id)
		}
		l.mu.Unlock()
	}
}

func (l *Locks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}

func conflict(id BufferID, stored, have uint64) error {
	return fmt.Errorf("%w: %s at revision %d, have %d", ErrBufferConflict, id, stored, have)
}
