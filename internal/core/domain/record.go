package domain

import "strings"

// SourceRecord is one row of the TikTok Ads export. Row is the workbook row
// number the record came from (the header occupies row 1). ClickURL and
// ImpressionField are overwritten in place by the rewriter; every input row
// produces exactly one output row whether or not it matched.
type SourceRecord struct {
	Row             int
	CampaignName    string
	AdGroupName     string
	AdName          string
	ClickURL        string
	ImpressionField string
}

// TagRecord is one row of a DCM tag workbook. SourceFile labels the workbook
// the record came from, for duplicate-key reporting.
type TagRecord struct {
	CampaignName      string
	PlacementName     string
	AdName            string
	ClickTracker      string
	ImpressionTracker string
	SourceFile        string
}

// MatchKey joins export rows to tag rows. All three fields hold normalized
// values; two keys compare equal iff the rows should be paired.
type MatchKey struct {
	Campaign  string `json:"campaign"`
	Placement string `json:"placement"`
	Ad        string `json:"ad"`
}

// NormalizeKey canonicalizes one join field: leading/trailing whitespace is
// trimmed and the value is case-folded. Nothing else — names that differ only
// by internal punctuation stay distinct.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Key returns the record's normalized composite key. The export's ad group
// column pairs with the tag file's placement column.
func (r SourceRecord) Key() MatchKey {
	return MatchKey{
		Campaign:  NormalizeKey(r.CampaignName),
		Placement: NormalizeKey(r.AdGroupName),
		Ad:        NormalizeKey(r.AdName),
	}
}

// Key returns the record's normalized composite key.
func (r TagRecord) Key() MatchKey {
	return MatchKey{
		Campaign:  NormalizeKey(r.CampaignName),
		Placement: NormalizeKey(r.PlacementName),
		Ad:        NormalizeKey(r.AdName),
	}
}
