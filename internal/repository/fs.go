package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/debemdeboas/oremos-juntos/internal/util"
)

// FSContentRepository keeps the content row as a plain JSON file, which is
// handy when the site copy is tracked in version control.
type FSContentRepository struct { // implements ContentRepository
	path string

	mu             sync.Mutex
	lastHash       string
	reloadNotifier func(ContentRecord)
}

func NewFSContentRepository(path string) *FSContentRepository {
	return &FSContentRepository{path: path}
}

func (r *FSContentRepository) Fetch(ctx context.Context) (ContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return ContentRecord{}, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ContentRecord{}, ErrNotFound
	}
	if err != nil {
		return ContentRecord{}, fmt.Errorf("error reading content file: %w", err)
	}

	info, err := os.Stat(r.path)
	if err != nil {
		return ContentRecord{}, fmt.Errorf("error reading content file: %w", err)
	}

	rec := ContentRecord{
		ID:        ContentRowID,
		Content:   data,
		Hash:      util.ContentHash(data),
		UpdatedAt: info.ModTime().UTC(),
	}

	r.mu.Lock()
	r.lastHash = rec.Hash
	r.mu.Unlock()
	return rec, nil
}

// Upsert writes through a temporary file so readers never see half a document.
func (r *FSContentRepository) Upsert(ctx context.Context, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("error creating content directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".content-*.json")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing content file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing content file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("error replacing content file: %w", err)
	}

	r.mu.Lock()
	r.lastHash = util.ContentHash(content)
	r.mu.Unlock()
	return nil
}

func (r *FSContentRepository) SetReloadNotifier(notifier func(ContentRecord)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloadNotifier = notifier
}

// Watch re-reads the file every interval until ctx is done and calls the
// reload notifier when it was edited by hand.
func (r *FSContentRepository) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		r.mu.Lock()
		previous := r.lastHash
		r.mu.Unlock()

		rec, err := r.Fetch(ctx)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			repoLogger.Error().Err(err).Msg("Error reloading content file")
			continue
		}
		if rec.Hash == previous {
			continue
		}

		repoLogger.Info().Str("path", r.path).Msg("Content file changed, reloading")
		r.mu.Lock()
		notify := r.reloadNotifier
		r.mu.Unlock()
		if notify != nil {
			notify(rec)
		}
	}
}
