package profiles

import (
	"encoding/json"
	"strings"
	"truevibe-backend/lib/textutil"
)

var platformPrefixes = []string{"Instagram", "TikTok"}

func stripSuffixFold(s, suffix string) string {
	if len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return strings.TrimSpace(s[:len(s)-len(suffix)])
	}
	return s
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// NormalizeDetail relabels and types one key/value pair from a crawled
// details blob. Scraped markup sometimes swaps follower counts and
// engagement-rate text under each other's labels, so the value text
// gets the final say on what the key means.
func NormalizeDetail(key string, value any) (string, any) {
	text, isString := value.(string)
	if !isString {
		return "Detail - " + key, value
	}

	text = strings.TrimSpace(text)

	shortKey := strings.TrimSpace(key)
	for _, prefix := range platformPrefixes {
		if strings.HasPrefix(shortKey, prefix) {
			stripped := strings.TrimSpace(strings.TrimPrefix(shortKey, prefix))
			if stripped == "" {
				shortKey = prefix
			} else {
				shortKey = stripped
			}
			break
		}
	}

	// the mislabel check has to see the raw value text: the unit words
	// it keys on are exactly the suffixes trimmed off below
	impliesFollowers := containsFold(shortKey, "follower")
	impliesEngagement := containsFold(shortKey, "engagement")
	if impliesFollowers && (strings.Contains(text, "%") || containsFold(text, "engagement")) {
		shortKey = "Engagement Rate"
		impliesFollowers = false
		impliesEngagement = true
	} else if impliesEngagement && containsFold(text, "followers") && !strings.Contains(text, "%") {
		shortKey = "Followers"
		impliesFollowers = true
		impliesEngagement = false
	}

	text = stripSuffixFold(text, " followers")
	text = stripSuffixFold(text, " engagement rate")

	column := "Detail - " + shortKey
	if impliesFollowers {
		if n, ok := textutil.ParseCompactNumber(text); ok {
			return column, n
		}
		return column, text
	}
	if impliesEngagement {
		if rate, ok := textutil.ParsePercentage(text); ok {
			return column, rate
		}
		return column, text
	}
	return column, text
}

// FlattenDetails turns a details blob into flat display columns.
// Structured values are serialized to json; string values go through
// NormalizeDetail.
func FlattenDetails(details any) map[string]any {
	detailMap, ok := details.(map[string]any)
	if !ok {
		if details == nil {
			return map[string]any{}
		}
		return map[string]any{"Detail - raw": details}
	}

	flattened := map[string]any{}
	for key, value := range detailMap {
		switch value.(type) {
		case map[string]any, []any, []string, []map[string]string, map[string]string:
			serialized, err := json.Marshal(value)
			if err != nil {
				flattened["Detail - "+key] = value
				continue
			}
			flattened["Detail - "+key] = string(serialized)
		default:
			column, normalized := NormalizeDetail(key, value)
			flattened[column] = normalized
		}
	}
	return flattened
}
