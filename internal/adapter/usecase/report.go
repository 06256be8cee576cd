package usecase

import (
	"fmt"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/core/domain"
)

// Summarize aggregates per-row results into a RunSummary. It only counts and
// collects: unmatched keys and log lines come out in input row order so two
// runs over the same data produce the same log.
func Summarize(results []domain.RowResult) domain.RunSummary {
	s := domain.RunSummary{TotalRows: len(results)}

	var rowLines []string
	for _, r := range results {
		switch r.Status {
		case domain.OutcomeMatched:
			s.MatchedCount++
		default:
			s.UnmatchedCount++
			s.UnmatchedKeys = append(s.UnmatchedKeys, r.Key)
			rowLines = append(rowLines, fmt.Sprintf(
				"No match found for: Campaign=%q, Ad Group=%q, Ad=%q",
				r.CampaignName, r.AdGroupName, r.AdName))
		}
		if r.ClickURLUpdated {
			s.ClickURLUpdates++
		}
		if r.ImpressionUpdated {
			s.ImpressionUpdates++
		}
		for _, d := range r.Diagnostics {
			rowLines = append(rowLines, fmt.Sprintf("Row %d: %s", r.Row, d))
		}
	}

	s.Log = append([]string{
		"Processing complete:",
		fmt.Sprintf("  - Total rows processed: %d", s.TotalRows),
		fmt.Sprintf("  - Matches found: %d", s.MatchedCount),
		fmt.Sprintf("  - Click URL updates: %d", s.ClickURLUpdates),
		fmt.Sprintf("  - Impression URL updates: %d", s.ImpressionUpdates),
		"",
	}, rowLines...)
	return s
}
