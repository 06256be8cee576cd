package port

import (
	"context"
	"fmt"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/core/domain"
)

// TagUpdater defines the business operation exposed by the updater engine.
// This interface represents the primary port into the application domain.
type TagUpdater interface {
	// Update reconciles the export rows against the union of all supplied
	// tag sets and rewrites the URL fields of matched rows in place.
	// Unmatched rows pass through untouched. Row-level problems never abort
	// the batch; they surface in the result's summary. The only errors are
	// duplicate composite keys in strict mode.
	Update(ctx context.Context, sources []domain.SourceRecord, tagSets [][]domain.TagRecord) (*UpdateResult, error)
}

// UpdateResult carries everything one run produced: a unique run ID, the
// per-row results in input order, and the aggregated summary. The rewritten
// rows live in the slice the caller passed to Update.
type UpdateResult struct {
	RunID   string
	Results []domain.RowResult
	Summary domain.RunSummary
}

// DuplicateKeyError is returned by Update in strict mode when two tag records
// normalize to the same composite key.
type DuplicateKeyError struct {
	Key        domain.MatchKey
	FirstFile  string
	SecondFile string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate tag key (campaign=%q, placement=%q, ad=%q): %s and %s",
		e.Key.Campaign, e.Key.Placement, e.Key.Ad, e.FirstFile, e.SecondFile)
}
