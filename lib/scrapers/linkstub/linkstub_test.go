package linkstub

import (
	"testing"
	"truevibe-backend/lib/textutil"

	"github.com/stretchr/testify/require"
)

func TestInferPlatform(t *testing.T) {
	for link, want := range map[string]string{
		"https://www.tiktok.com/@someone/video/123": "TikTok",
		"https://instagram.com/someone":             "Instagram",
		"https://m.facebook.com/page":               "Facebook",
		"https://youtube.com/watch?v=abc":           "YouTube",
		"https://x.com/someone/status/1":            "X",
		"https://twitter.com/someone":               "X",
		"https://example.com/post":                  "Unknown",
	} {
		require.Equal(t, want, InferPlatform(link), "link %s", link)
	}
}

func TestFetchProfileDeterministic(t *testing.T) {
	link := "https://instagram.com/jane-doe"

	a := FetchProfile(link)
	b := FetchProfile(link)
	require.Equal(t, a, b)

	require.Equal(t, "jane-doe", a.Handle)
	require.Equal(t, "Jane Doe", a.Name)
	require.Equal(t, "Instagram", a.Platform)
	require.Equal(t, link, a.PublishLink)
	require.GreaterOrEqual(t, a.FollowerCount, int64(5_000))
	require.Less(t, a.FollowerCount, int64(505_000))
	require.Equal(t, "true", a.Demographics["synthetic"])
	require.Equal(t, "com", a.Demographics["primary_market"])

	other := FetchProfile("https://instagram.com/john-roe")
	require.NotEqual(t, a.FollowerCount, other.FollowerCount)
}

func TestFetchProfileSeedsEngagementRate(t *testing.T) {
	p := FetchProfile("https://instagram.com/jane-doe")

	rate, ok := textutil.ParsePercentage(p.EngagementRate)
	require.True(t, ok)
	require.GreaterOrEqual(t, rate, 1.0)
	require.Less(t, rate, 5.0)
	require.Contains(t, p.EngagementRate, "%")
}

func TestFetchProfileFallsBackToHost(t *testing.T) {
	p := FetchProfile("https://tiktok.com")
	require.Equal(t, "tiktok", p.Handle)
	require.Equal(t, "Tiktok", p.Name)
}
