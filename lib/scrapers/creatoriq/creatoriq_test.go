package creatoriq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractSlug(t *testing.T) {
	slug, err := ExtractSlug("https://vero.creatoriq.com/lists/report/abc123XYZ?tab=creators")
	require.NoError(t, err)
	require.Equal(t, "abc123XYZ", slug)

	slug, err = ExtractSlug("https://app.creatoriq.com/lists/report/slug-with-dash#frag")
	require.NoError(t, err)
	require.Equal(t, "slug-with-dash", slug)

	_, err = ExtractSlug("https://example.com/some/other/path")
	require.Error(t, err)
}

func TestIsCreatorIQLink(t *testing.T) {
	require.True(t, IsCreatorIQLink("https://vero.creatoriq.com/lists/report/abc"))
	require.False(t, IsCreatorIQLink("https://instagram.com/someone"))
}

func TestMergedSkipsNulls(t *testing.T) {
	record := CreatorRecord{
		Data: map[string]any{
			"fullName":  "Ada Lovelace",
			"followers": float64(1000),
			"bio":       nil,
		},
		Detail: map[string]any{
			"followers": nil,
			"handle":    "ada",
		},
	}
	merged := record.Merged()

	require.Equal(t, "Ada Lovelace", merged["fullName"])
	// a null detail value must not clobber the collection value
	require.Equal(t, float64(1000), merged["followers"])
	require.Equal(t, "ada", merged["handle"])
	_, hasBio := merged["bio"]
	require.False(t, hasBio)
}
