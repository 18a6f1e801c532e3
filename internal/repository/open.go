package repository

import (
	"context"
	"time"

	"github.com/debemdeboas/oremos-juntos/internal/db"
	"github.com/debemdeboas/oremos-juntos/internal/util/compression"
)

// WatchedContentRepository is a content store that can notice writes made by
// other processes.
type WatchedContentRepository interface {
	ContentRepository
	Watch(ctx context.Context, interval time.Duration)
}

// NewContentStore keeps the content in contentFile when it is set and in the
// database otherwise, compressed with the named codec.
func NewContentStore(database db.Db, contentFile, codec string) (WatchedContentRepository, error) {
	if contentFile != "" {
		return NewFSContentRepository(contentFile), nil
	}
	compressor, err := compression.ForName(codec)
	if err != nil {
		return nil, err
	}
	return NewDBContentRepository(database, compression.Auto{Writer: compressor}), nil
}
