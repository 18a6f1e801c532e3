package repository

import (
	"context"
	"fmt"
)

// PolicyContentRepository is the direct write path: it stands in for the
// store's row-level access policy and refuses writes unless they are allowed.
// The privileged save procedure writes to the inner repository instead.
type PolicyContentRepository struct {
	ContentRepository
	allowDirectWrites bool
}

func NewPolicyContentRepository(inner ContentRepository, allowDirectWrites bool) *PolicyContentRepository {
	return &PolicyContentRepository{
		ContentRepository: inner,
		allowDirectWrites: allowDirectWrites,
	}
}

func (r *PolicyContentRepository) Upsert(ctx context.Context, content []byte) error {
	if !r.allowDirectWrites {
		repoLogger.Warn().Str("id", ContentRowID).Msg("Direct content write refused by access policy")
		return fmt.Errorf("upsert %s: %w", ContentRowID, ErrPermissionDenied)
	}
	return r.ContentRepository.Upsert(ctx, content)
}
