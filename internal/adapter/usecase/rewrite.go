package usecase

import (
	"net/url"
	"regexp"
	"strings"
)

// requiredParams fixes the order in which missing attribution parameters are
// appended to a rewritten click URL.
var requiredParams = []string{
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"tf_source",
	"tf_medium",
	"tf_campaign",
}

// TrackingParams holds the attribution parameter values injected into click
// URLs. The campaign parameters always take the row's campaign name.
type TrackingParams struct {
	UTMSource string
	UTMMedium string
	TFSource  string
	TFMedium  string
}

// DefaultTrackingParams returns the values required for TikTok traffic.
func DefaultTrackingParams() TrackingParams {
	return TrackingParams{
		UTMSource: "tiktok",
		UTMMedium: "paid",
		TFSource:  "tiktok",
		TFMedium:  "paid_social",
	}
}

func (p TrackingParams) value(name, campaignName string) string {
	switch name {
	case "utm_source":
		return p.UTMSource
	case "utm_medium":
		return p.UTMMedium
	case "utm_campaign", "tf_campaign":
		return campaignName
	case "tf_source":
		return p.TFSource
	case "tf_medium":
		return p.TFMedium
	}
	return ""
}

// RewriteClick composes the tracked click URL: the tag file's click tracker
// prepended to the original URL, followed by whichever of the six required
// attribution parameters the result does not already carry. Parameters are
// appended with the URL's existing query-separator convention (? first, &
// after). Values are query-escaped. An empty original URL yields the bare
// tracker plus a diagnostic; it is never an error.
func RewriteClick(originalURL, clickTracker, campaignName string, p TrackingParams) (string, []string) {
	tracker := strings.TrimSpace(clickTracker)
	original := strings.TrimSpace(originalURL)
	if original == "" {
		return tracker, []string{"empty click URL; wrote the bare click tracker"}
	}

	result := tracker + original
	present := presentParams(result)
	for _, name := range requiredParams {
		if present[name] {
			continue
		}
		sep := "&"
		if !strings.Contains(result, "?") {
			sep = "?"
		}
		result += sep + name + "=" + escapeValue(p.value(name, campaignName))
	}
	return result, nil
}

// escapeValue query-escapes a parameter value, encoding spaces as %20 rather
// than + so the value reads the same in path-style and query-style decoders.
func escapeValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// presentParams reports which required parameter names the URL already
// carries. The query string is parsed and names compared exactly; when it
// cannot be parsed the check degrades to a substring scan, which still keeps
// the rewrite idempotent on already-tagged URLs.
func presentParams(u string) map[string]bool {
	present := make(map[string]bool, len(requiredParams))
	q := strings.Index(u, "?")
	if q < 0 {
		return present
	}
	if values, err := url.ParseQuery(u[q+1:]); err == nil {
		for _, name := range requiredParams {
			if _, ok := values[name]; ok {
				present[name] = true
			}
		}
		return present
	}
	for _, name := range requiredParams {
		if strings.Contains(u, name) {
			present[name] = true
		}
	}
	return present
}

// quotedSection matches the first double-quoted run in a pixel tag.
var quotedSection = regexp.MustCompile(`"([^"]*)"`)

// ExtractImpressionURL pulls the URL embedded between the first pair of
// double quotes in a DCM impression pixel. ok is false when the field
// contains no quoted section.
func ExtractImpressionURL(raw string) (extracted string, ok bool) {
	m := quotedSection.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}
