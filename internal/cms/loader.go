package cms

import (
	"context"
	"errors"
	"fmt"

	"github.com/debemdeboas/oremos-juntos/internal/content"
	"github.com/debemdeboas/oremos-juntos/internal/repository"
)

// ContentReader reads the persisted content row.
type ContentReader interface {
	Fetch(ctx context.Context) (repository.ContentRecord, error)
}

type Loader struct {
	store    ContentReader
	defaults func() content.Document
}

func NewLoader(store ContentReader) *Loader {
	return &Loader{store: store, defaults: content.Defaults}
}

// Fetch reads the persisted row and reconciles it onto the defaults.
//
// A missing row yields the defaults with no error. On a read failure the
// defaults are returned along with the error. A row with undecodable sections
// yields the healed document and the decode error.
func (l *Loader) Fetch(ctx context.Context) (content.Document, error) {
	rec, err := l.store.Fetch(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return l.defaults(), nil
	}
	if err != nil {
		return l.defaults(), fmt.Errorf("fetching content: %w", err)
	}

	doc, err := content.Reconcile(l.defaults(), rec.Content)
	if err != nil {
		return doc, fmt.Errorf("reconciling content updated at %s: %w", rec.UpdatedAt, err)
	}
	return doc, nil
}

// Load is Fetch for callers that must always render something: failures are
// logged and never returned.
func (l *Loader) Load(ctx context.Context) content.Document {
	doc, err := l.Fetch(ctx)
	if err != nil {
		cmsLogger.Error().Err(err).Msg("Error loading content, falling back")
		return doc
	}
	cmsLogger.Debug().Msg("Content loaded")
	return doc
}
