package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// ContentRowID is the fixed key of the single content row.
const ContentRowID = "main_content"

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
)

var repoLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	repoLogger = l
}

// ContentRecord is the persisted content row. Content is the JSON document,
// already decompressed.
type ContentRecord struct {
	ID        string
	Content   []byte
	Hash      string
	UpdatedAt time.Time
}

type ContentRepository interface {
	// Fetch returns ErrNotFound when no row has been written yet.
	Fetch(ctx context.Context) (ContentRecord, error)
	Upsert(ctx context.Context, content []byte) error

	// SetReloadNotifier sets a function that will be called when the row is
	// changed by someone else.
	SetReloadNotifier(notifier func(ContentRecord))
}

// Lead is a registration of interest left by a visitor.
type Lead struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Contacted bool      `json:"contacted"`
}

type LeadRepository interface {
	Insert(ctx context.Context, name, email string) (Lead, error)
	// List returns every lead, newest first.
	List(ctx context.Context) ([]Lead, error)
	SetContacted(ctx context.Context, id string, contacted bool) error
	Delete(ctx context.Context, id string) error
}
