package insights

import (
	"context"
	"time"

	"github.com/ignite/optimizer/internal/domain"
)

// Repository is the lifecycle store for recommendation batches. A batch is
// every open recommendation for one (account, source, source id) triple;
// replacement is atomic, so at most one open batch exists per triple.
type Repository interface {
	// FreshOpenBatch returns the open batch when its newest row is younger
	// than maxAge. fresh is false when there is no open batch or it has
	// aged out.
	FreshOpenBatch(ctx context.Context, accountID string, source domain.SourceType, sourceID string, maxAge time.Duration) (recs []domain.Recommendation, fresh bool, err error)

	// OpenBatch returns the open batch regardless of age.
	OpenBatch(ctx context.Context, accountID string, source domain.SourceType, sourceID string) ([]domain.Recommendation, error)

	// ReplaceOpenBatch supersedes the triple's open recommendations and
	// inserts recs in one transaction. An empty recs slice is valid: the
	// old batch is retired and nothing replaces it. Every row is validated
	// before any write; one invalid row aborts the whole batch.
	ReplaceOpenBatch(ctx context.Context, accountID string, source domain.SourceType, sourceID string, recs []domain.Recommendation) error

	// Apply marks an open recommendation applied and records who did it.
	// Returns ErrNotFound for a missing id and *StateError when the
	// recommendation has already been resolved.
	Apply(ctx context.Context, recommendationID, actorID, notes string) (domain.Action, error)

	// Dismiss marks an open recommendation dismissed, same contract as Apply.
	Dismiss(ctx context.Context, recommendationID, actorID, notes string) (domain.Action, error)
}
