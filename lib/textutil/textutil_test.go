package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCompactNumber(t *testing.T) {
	cases := []struct {
		input  string
		value  float64
		parsed bool
	}{
		{"12.3K", 12_300, true},
		{"1,000,000", 1_000_000, true},
		{"4.5M", 4_500_000, true},
		{"1.2b", 1_200_000_000, true},
		{"912", 912, true},
		{"  87k  ", 87_000, true},
		{"~1200 fans", 1200, true},
		{"not a number", 0, false},
		{"", 0, false},
		{"N/A", 0, false},
	}

	for _, c := range cases {
		value, ok := ParseCompactNumber(c.input)
		require.Equal(t, c.parsed, ok, "input: %q", c.input)
		if c.parsed {
			require.InDelta(t, c.value, value, 0.001, "input: %q", c.input)
		}
	}
}

func TestParsePercentage(t *testing.T) {
	cases := []struct {
		input  string
		value  float64
		parsed bool
	}{
		{"Engagement: 4.56% last month", 4.56, true},
		{"4.56%", 4.56, true},
		{"0.9 % engagement", 0.9, true},
		{"-2.5%", -2.5, true},
		{"N/A", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		value, ok := ParsePercentage(c.input)
		require.Equal(t, c.parsed, ok, "input: %q", c.input)
		if c.parsed {
			require.InDelta(t, c.value, value, 0.001, "input: %q", c.input)
		}
	}
}

func TestKeywordSet(t *testing.T) {
	tokens := KeywordSet("Vegan Fitness & wellness", "fitness 101")
	require.Contains(t, tokens, "vegan")
	require.Contains(t, tokens, "fitness")
	require.Contains(t, tokens, "wellness")
	require.Contains(t, tokens, "101")
	// runs shorter than 3 characters are noise
	require.NotContains(t, tokens, "10")
	require.Len(t, tokens, 4)

	require.Empty(t, KeywordSet("", "a b c"))
}

func TestCollectText(t *testing.T) {
	require.Equal(t, "", CollectText(nil))
	require.Equal(t, "beauty", CollectText("beauty"))
	require.Equal(t, "beauty travel", CollectText([]string{"beauty", "travel"}))
	require.Equal(t, "beauty travel", CollectText([]any{"beauty", nil, "travel"}))
}

func TestNormalizeHandle(t *testing.T) {
	require.Equal(t, "somecreator", NormalizeHandle(" @SomeCreator "))
	require.Equal(t, "plain", NormalizeHandle("plain"))
	require.Equal(t, "", NormalizeHandle("@"))
}
