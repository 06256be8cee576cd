package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/core/domain"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/core/port"
)

// Updater implements port.TagUpdater. It orchestrates the engine: build the
// tag index, match every export row, rewrite the matched ones and aggregate
// the summary. An Updater holds no per-run state; one value serves any number
// of independent runs.
type Updater struct {
	params TrackingParams
	strict bool
}

// NewUpdater creates an updater with the given attribution parameter values.
// strict enables fail-fast on duplicate tag keys.
func NewUpdater(params TrackingParams, strict bool) *Updater {
	return &Updater{params: params, strict: strict}
}

// Update reconciles sources against the union of tagSets. Matched rows have
// ClickURL and ImpressionField rewritten in place; unmatched rows are left
// untouched. The result keeps one RowResult per input row, in input order.
func (u *Updater) Update(ctx context.Context, sources []domain.SourceRecord, tagSets [][]domain.TagRecord) (*port.UpdateResult, error) {
	index, err := BuildIndex(tagSets, u.strict)
	if err != nil {
		return nil, err
	}

	outcomes := Match(sources, index)
	results := make([]domain.RowResult, 0, len(outcomes))
	for _, oc := range outcomes {
		results = append(results, u.applyRow(oc))
	}

	return &port.UpdateResult{
		RunID:   uuid.NewString(),
		Results: results,
		Summary: Summarize(results),
	}, nil
}

// applyRow rewrites one matched row in place and records what changed.
// Unmatched rows pass through with their URLs intact.
func (u *Updater) applyRow(oc domain.MatchOutcome) domain.RowResult {
	src := oc.Source
	res := domain.RowResult{
		Row:          src.Row,
		Status:       oc.Status,
		Key:          src.Key(),
		CampaignName: src.CampaignName,
		AdGroupName:  src.AdGroupName,
		AdName:       src.AdName,
	}
	if oc.Status != domain.OutcomeMatched {
		return res
	}

	newClick, diags := RewriteClick(src.ClickURL, oc.Tag.ClickTracker, src.CampaignName, u.params)
	res.Diagnostics = append(res.Diagnostics, diags...)
	if newClick != src.ClickURL {
		src.ClickURL = newClick
		res.ClickURLUpdated = true
	}

	if strings.TrimSpace(oc.Tag.ImpressionTracker) != "" {
		extracted, ok := ExtractImpressionURL(oc.Tag.ImpressionTracker)
		switch {
		case !ok:
			res.Diagnostics = append(res.Diagnostics,
				"impression tracker has no quoted URL; field left unchanged")
		case extracted != "":
			src.ImpressionField = extracted
			res.ImpressionUpdated = true
		}
	}
	return res
}
