package editor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/debemdeboas/oremos-juntos/internal/content"
)

type MemoryRepository struct {
	buffers sync.Map
	// writes guards the compare-and-set of Save and Drop.
	writes sync.Mutex
	ttl    time.Duration
	now    func() time.Time
}

// NewMemoryRepository keeps buffers in process. Buffers untouched for longer
// than ttl are dropped on access; a zero ttl keeps them forever.
func NewMemoryRepository(ttl time.Duration) *MemoryRepository {
	return &MemoryRepository{ttl: ttl, now: time.Now}
}

func (m *MemoryRepository) Create(ctx context.Context, doc content.Document, version uint64) (*Buffer, error) {
	buf := NewBuffer(doc, version)
	m.buffers.Store(buf.ID, *buf)
	return buf, nil
}

func (m *MemoryRepository) Get(ctx context.Context, id BufferID) (*Buffer, error) {
	v, ok := m.buffers.Load(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBufferNotFound, id)
	}
	buf := v.(Buffer)
	if m.expired(buf) {
		m.buffers.Delete(id)
		editorLogger.Debug().Str("buffer_id", string(id)).Msg("Edit buffer expired")
		return nil, fmt.Errorf("%w: %s", ErrBufferNotFound, id)
	}
	// Documents are copy-on-write, a value copy is enough.
	return &buf, nil
}

func (m *MemoryRepository) Save(ctx context.Context, buf *Buffer) error {
	m.writes.Lock()
	defer m.writes.Unlock()

	if err := m.check(buf); err != nil {
		return err
	}
	buf.Revision++
	m.buffers.Store(buf.ID, *buf)
	return nil
}

func (m *MemoryRepository) Drop(ctx context.Context, buf *Buffer) error {
	m.writes.Lock()
	defer m.writes.Unlock()

	if err := m.check(buf); err != nil {
		return err
	}
	m.buffers.Delete(buf.ID)
	return nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id BufferID) error {
	m.buffers.Delete(id)
	return nil
}

func (m *MemoryRepository) check(buf *Buffer) error {
	v, ok := m.buffers.Load(buf.ID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBufferNotFound, buf.ID)
	}
	if stored := v.(Buffer).Revision; stored != buf.Revision {
		return conflict(buf.ID, stored, buf.Revision)
	}
	return nil
}

func (m *MemoryRepository) expired(buf Buffer) bool {
	return m.ttl > 0 && m.now().Sub(buf.UpdatedAt) > m.ttl
}
