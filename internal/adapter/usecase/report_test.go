package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/core/domain"
)

func TestSummarize(t *testing.T) {
	results := []domain.RowResult{
		{
			Row: 2, Status: domain.OutcomeMatched,
			ClickURLUpdated: true, ImpressionUpdated: true,
		},
		{
			Row: 3, Status: domain.OutcomeUnmatched,
			Key:          domain.MatchKey{Campaign: "camp", Placement: "grp", Ad: "ad two"},
			CampaignName: "Camp", AdGroupName: "Grp", AdName: "Ad Two",
		},
		{
			Row: 4, Status: domain.OutcomeMatched,
			ClickURLUpdated: true,
			Diagnostics:     []string{"impression tracker has no quoted URL; field left unchanged"},
		},
	}

	s := Summarize(results)

	assert.Equal(t, 3, s.TotalRows)
	assert.Equal(t, 2, s.MatchedCount)
	assert.Equal(t, 1, s.UnmatchedCount)
	assert.Equal(t, 2, s.ClickURLUpdates)
	assert.Equal(t, 1, s.ImpressionUpdates)

	require.Len(t, s.UnmatchedKeys, 1)
	assert.Equal(t, domain.MatchKey{Campaign: "camp", Placement: "grp", Ad: "ad two"}, s.UnmatchedKeys[0])

	require.GreaterOrEqual(t, len(s.Log), 8)
	assert.Equal(t, "Processing complete:", s.Log[0])
	assert.Equal(t, "  - Total rows processed: 3", s.Log[1])
	assert.Equal(t, "  - Matches found: 2", s.Log[2])
	assert.Equal(t, "  - Click URL updates: 2", s.Log[3])
	assert.Equal(t, "  - Impression URL updates: 1", s.Log[4])
	// row-level entries keep input order after the header block
	assert.Equal(t, `No match found for: Campaign="Camp", Ad Group="Grp", Ad="Ad Two"`, s.Log[6])
	assert.Equal(t, "Row 4: impression tracker has no quoted URL; field left unchanged", s.Log[7])
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalRows)
	assert.Equal(t, 0, s.MatchedCount)
	assert.Equal(t, 0, s.UnmatchedCount)
	assert.Empty(t, s.UnmatchedKeys)
	require.Len(t, s.Log, 6)
}
