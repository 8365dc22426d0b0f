package profiles

import (
	"encoding/json"
	"testing"
	"truevibe-backend/lib/scrapers/creatoriqdom"
	"truevibe-backend/lib/scrapers/linkstub"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFromCollection(t *testing.T) {
	payload := map[string]any{
		"fullName":              "Ada Lovelace",
		"primarySocialUsername": "@Ada",
		"primaryNetwork":        "Instagram",
		"totalSocialConnections": float64(120_000),
		"country":               "UK",
		"tags":                  []any{"math", "history"},
		"profilePictureURL":     "https://cdn.example.com/ada.jpg",
		"accounts": []any{
			map[string]any{
				"network":    "TikTok",
				"followers":  float64(45_000),
				"accountUrl": "https://instagram.com/ada",
			},
		},
	}

	profile, err := FromCollection(payload)
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", profile.Name)
	require.Equal(t, "ada", profile.Handle)
	require.Equal(t, "Instagram", profile.Platform)
	require.NotNil(t, profile.FollowerCount)
	require.Equal(t, int64(120_000), *profile.FollowerCount)
	require.Equal(t, "UK", profile.Demographics.Country)
	require.Equal(t, []string{"math", "history"}, profile.Demographics.Tags)
	require.Equal(t, "https://instagram.com/ada", profile.ProfileURL)
}

func TestFromCollectionFallbacks(t *testing.T) {
	// identity falls back to the internal list id, followers to the
	// first linked account, platform to the account network
	profile, err := FromCollection(map[string]any{
		"listCreatorsId": float64(991),
		"accounts": []any{
			map[string]any{"network": "YouTube", "followers": float64(800)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "991", profile.Handle)
	require.Equal(t, "991", profile.Name)
	require.Equal(t, "YouTube", profile.Platform)
	require.Equal(t, int64(800), *profile.FollowerCount)

	_, err = FromCollection(map[string]any{"fullName": "No Identity"})
	require.ErrorIs(t, err, ErrNoHandle)
}

func TestFromCard(t *testing.T) {
	card := creatoriqdom.ProfileCard{
		FullName:  "Grace Hopper",
		Handle:    "@Grace",
		ImageURL:  "https://cdn.example.com/grace.jpg",
		Platform:  "TikTok",
		Followers: "2.5M",
		Bio:       "compilers",
		Details:   map[string]any{"About": "navy"},
	}

	profile, err := FromCard(card)
	require.NoError(t, err)
	require.Equal(t, "grace", profile.Handle)
	require.Equal(t, int64(2_500_000), *profile.FollowerCount)
	require.Equal(t, "compilers", profile.Demographics.Bio)
	require.Equal(t, "navy", profile.Demographics.Details["About"])

	_, err = FromCard(creatoriqdom.ProfileCard{Handle: "@unknown"})
	require.ErrorIs(t, err, ErrNoHandle)
	_, err = FromCard(creatoriqdom.ProfileCard{})
	require.ErrorIs(t, err, ErrNoHandle)
}

func TestFromLink(t *testing.T) {
	profile := FromLink(linkstub.FetchProfile("https://tiktok.com/@jane-doe"))
	require.Equal(t, "jane-doe", profile.Handle)
	require.Equal(t, "TikTok", profile.Platform)
	require.NotNil(t, profile.FollowerCount)
	require.True(t, profile.Synthetic())

	// the seeded rate must land where the engagement scorer looks
	rate, ok := profile.Demographics.Details["Engagement Rate"].(string)
	require.True(t, ok)
	require.Contains(t, rate, "%")
}

func TestNormalizeDetail(t *testing.T) {
	for _, tt := range []struct {
		name      string
		key       string
		value     any
		wantKey   string
		wantValue any
	}{
		{
			name:  "platform prefix stripped and count parsed",
			key:   "Instagram Followers",
			value: "120K followers",
			wantKey:   "Detail - Followers",
			wantValue: float64(120_000),
		},
		{
			name:  "engagement rate parsed",
			key:   "TikTok Engagement Rate",
			value: "4.56%",
			wantKey:   "Detail - Engagement Rate",
			wantValue: 4.56,
		},
		{
			name:  "mislabeled followers key holding a rate",
			key:   "Instagram Followers",
			value: "4.2%",
			wantKey:   "Detail - Engagement Rate",
			wantValue: 4.2,
		},
		{
			name:  "mislabeled engagement key holding a count",
			key:   "Engagement Rate",
			value: "98K followers",
			wantKey:   "Detail - Followers",
			wantValue: float64(98_000),
		},
		{
			name:  "mislabeled followers key holding a suffixed rate",
			key:   "TikTok Followers",
			value: "4.5% engagement rate",
			wantKey:   "Detail - Engagement Rate",
			wantValue: 4.5,
		},
		{
			name:  "stripping the prefix empties the key",
			key:   "Instagram",
			value: "something",
			wantKey:   "Detail - Instagram",
			wantValue: "something",
		},
		{
			name:  "plain text stays verbatim",
			key:   "About",
			value: "  Travel and food.  ",
			wantKey:   "Detail - About",
			wantValue: "Travel and food.",
		},
		{
			name:  "non-string passes through",
			key:   "Age Demographics",
			value: 42,
			wantKey:   "Detail - Age Demographics",
			wantValue: 42,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			key, value := NormalizeDetail(tt.key, tt.value)
			require.Equal(t, tt.wantKey, key)
			require.Equal(t, tt.wantValue, value)
		})
	}
}

func TestFlattenDetails(t *testing.T) {
	flat := FlattenDetails(map[string]any{
		"About":        "hi",
		"Social Links": []string{"https://a", "https://b"},
		"Age Demographics": map[string]string{
			"18-24": "42%",
		},
	})

	require.Equal(t, "hi", flat["Detail - About"])
	require.JSONEq(t, `["https://a","https://b"]`, flat["Detail - Social Links"].(string))
	require.JSONEq(t, `{"18-24":"42%"}`, flat["Detail - Age Demographics"].(string))

	require.Equal(t, map[string]any{"Detail - raw": "oops"}, FlattenDetails("oops"))
	require.Empty(t, FlattenDetails(nil))
}

func TestDemographicsJSONRoundTrip(t *testing.T) {
	original := Demographics{
		Bio:      "hello",
		Country:  "UK",
		Tags:     []string{"travel"},
		Details:  map[string]any{"About": "hi"},
		Extra:    map[string]any{"primary_market": "com", "synthetic": "true"},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Demographics
	require.NoError(t, json.Unmarshal(data, &decoded))

	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
