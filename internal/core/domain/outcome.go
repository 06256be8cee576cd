package domain

// Match outcome statuses.
const (
	OutcomeMatched   = "matched"
	OutcomeUnmatched = "unmatched"
	// OutcomeAmbiguous is reserved. Duplicate composite keys currently
	// resolve by last-write-wins (or fail the whole run in strict mode), so
	// no outcome carries this status yet.
	OutcomeAmbiguous = "ambiguous"
)

// MatchOutcome pairs a source row with the tag record found for its key.
// Tag is nil unless Status is OutcomeMatched.
type MatchOutcome struct {
	Status string
	Source *SourceRecord
	Tag    *TagRecord
}

// RowResult records what happened to one export row. The raw name fields are
// kept alongside the normalized Key so diagnostics can show the values as
// they appear in the file.
type RowResult struct {
	Row               int
	Status            string
	Key               MatchKey
	CampaignName      string
	AdGroupName       string
	AdName            string
	ClickURLUpdated   bool
	ImpressionUpdated bool
	Diagnostics       []string
}

// RunSummary aggregates per-row results for display. UnmatchedKeys and Log
// preserve input row order so diagnostics are reproducible across runs.
type RunSummary struct {
	TotalRows         int        `json:"total_rows"`
	MatchedCount      int        `json:"matched_count"`
	UnmatchedCount    int        `json:"unmatched_count"`
	ClickURLUpdates   int        `json:"click_url_updates"`
	ImpressionUpdates int        `json:"impression_url_updates"`
	UnmatchedKeys     []MatchKey `json:"unmatched_keys,omitempty"`
	Log               []string   `json:"log"`
}
