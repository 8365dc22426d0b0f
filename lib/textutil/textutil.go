package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var compactNumberRegex = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*([KkMmBb]?)`)
var digitsRegex = regexp.MustCompile(`[0-9]+`)
var decimalRegex = regexp.MustCompile(`-?[0-9]+(?:\.[0-9]+)?`)
var tokenRegex = regexp.MustCompile(`[a-z0-9]+`)

var suffixMultipliers = map[string]float64{
	"":  1,
	"K": 1_000,
	"M": 1_000_000,
	"B": 1_000_000_000,
}

// ParseCompactNumber parses follower-style magnitude text such as
// "12.3K", "1,000,000" or "912". The second return value is false
// when the text carries no numeric token at all.
func ParseCompactNumber(s string) (float64, bool) {
	normalized := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if normalized == "" {
		return 0, false
	}

	match := compactNumberRegex.FindStringSubmatch(normalized)
	if match == nil {
		// values like "~1200 fans" still carry digits worth keeping
		digits := strings.Join(digitsRegex.FindAllString(normalized, -1), "")
		if digits == "" {
			return 0, false
		}
		value, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return 0, false
		}
		return value, true
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return value * suffixMultipliers[strings.ToUpper(match[2])], true
}

// ParsePercentage extracts the first decimal number from text like
// "Engagement: 4.56% last month". The trailing percent sign is
// optional, engagement text often embeds the number mid-sentence.
func ParsePercentage(s string) (float64, bool) {
	normalized := strings.TrimSpace(s)
	normalized = strings.TrimSuffix(normalized, "%")
	match := decimalRegex.FindString(normalized)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// KeywordSet tokenizes free text into lower-cased alphanumeric runs
// of length >= 3, the unit of overlap for interest scoring.
func KeywordSet(parts ...string) map[string]struct{} {
	tokens := map[string]struct{}{}
	for _, part := range parts {
		if part == "" {
			continue
		}
		for _, token := range tokenRegex.FindAllString(strings.ToLower(part), -1) {
			if len(token) >= 3 {
				tokens[token] = struct{}{}
			}
		}
	}
	return tokens
}

// CollectText flattens the loosely-typed values found in scraped
// demographics (strings, string slices, json-decoded []any) into a
// single space-joined string.
func CollectText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, " ")
	case []any:
		var parts []string
		for _, item := range v {
			text := CollectText(item)
			if text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// NormalizeHandle lower-cases a creator handle and strips the
// decorative leading "@".
func NormalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(handle), "@")))
}
