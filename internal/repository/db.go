package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/debemdeboas/oremos-juntos/internal/db"
	"github.com/debemdeboas/oremos-juntos/internal/util"
	"github.com/debemdeboas/oremos-juntos/internal/util/compression"
)

type DBContentRepository struct { // implements ContentRepository
	db         db.Db
	compressor compression.Compressor

	mu             sync.Mutex
	lastHash       string // hash of the last row this process read or wrote
	reloadNotifier func(ContentRecord)
}

func NewDBContentRepository(database db.Db, compressor compression.Compressor) *DBContentRepository {
	if compressor == nil {
		compressor = compression.Auto{Writer: compression.ZstdCompressor{}}
	}
	return &DBContentRepository{
		db:         database,
		compressor: compressor,
	}
}

func (r *DBContentRepository) Fetch(ctx context.Context) (ContentRecord, error) {
	var rec ContentRecord
	var compressed []byte

	err := r.db.QueryRow(ctx,
		`SELECT id, content, content_hash, updated_at FROM site_content WHERE id = ?`,
		ContentRowID,
	).Scan(&rec.ID, &compressed, &rec.Hash, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ContentRecord{}, ErrNotFound
	}
	if err != nil {
		return ContentRecord{}, fmt.Errorf("error querying content: %w", err)
	}

	rec.Content, err = r.compressor.Decompress(compressed)
	if err != nil {
		return ContentRecord{}, fmt.Errorf("error decompressing content: %w", err)
	}

	r.mu.Lock()
	r.lastHash = rec.Hash
	r.mu.Unlock()
	return rec, nil
}

func (r *DBContentRepository) Upsert(ctx context.Context, content []byte) error {
	compressed, err := r.compressor.Compress(content)
	if err != nil {
		return fmt.Errorf("error compressing content: %w", err)
	}
	hash := util.ContentHash(content)

	res, err := r.db.Exec(ctx, `
INSERT INTO site_content (id, content, content_hash, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    content = excluded.content,
    content_hash = excluded.content_hash,
    updated_at = excluded.updated_at`,
		ContentRowID, compressed, hash, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("error saving content: %w", err)
	}

	r.mu.Lock()
	r.lastHash = hash
	r.mu.Unlock()

	repoLogger.Debug().Interface("result", res).Str("hash", hash).Msg("Content saved")
	return nil
}

func (r *DBContentRepository) SetReloadNotifier(notifier func(ContentRecord)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloadNotifier = notifier
}

// Watch polls the row every interval until ctx is done and calls the reload
// notifier when another writer changed it.
func (r *DBContentRepository) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := r.checkForChanges(ctx); err != nil && ctx.Err() == nil {
			repoLogger.Error().Err(err).Msg("Error checking content for changes")
		}
	}
}

func (r *DBContentRepository) checkForChanges(ctx context.Context) error {
	// Lightweight check first, the blob is only read when the hash moved.
	var hash string
	err := r.db.QueryRow(ctx, `SELECT content_hash FROM site_content WHERE id = ?`, ContentRowID).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking content hash: %w", err)
	}

	r.mu.Lock()
	unchanged := hash == r.lastHash
	r.mu.Unlock()
	if unchanged {
		repoLogger.Debug().Msg("Content unchanged, skipping reload")
		return nil
	}

	rec, err := r.Fetch(ctx)
	if err != nil {
		return err
	}

	repoLogger.Info().Str("hash", rec.Hash).Time("updated_at", rec.UpdatedAt).Msg("Content changed elsewhere, reloading")

	r.mu.Lock()
	notify := r.reloadNotifier
	r.mu.Unlock()
	if notify != nil {
		notify(rec)
	}
	return nil
}
