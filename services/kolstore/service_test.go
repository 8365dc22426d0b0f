package kolstore

import (
	"context"
	"testing"
	"time"
	"truevibe-backend/lib/testutil"
	"truevibe-backend/services/kolstore/db"
	"truevibe-backend/services/profiles"
	"truevibe-backend/services/scoring"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func int64p(v int64) *int64       { return &v }
func float64p(v float64) *float64 { return &v }

func setupService(t *testing.T) Service {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/kolstore",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)
	return NewService(setup.DB)
}

func TestUpsertCreatorIdempotence(t *testing.T) {
	service := setupService(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	profile := profiles.CreatorProfile{
		Name:          "Ada Lovelace",
		Handle:        "ada",
		Platform:      "Instagram",
		FollowerCount: int64p(120_000),
		Demographics:  profiles.Demographics{Bio: "math"},
	}

	first, err := service.UpsertCreator(ctx, profile)
	require.NoError(t, err)
	second, err := service.UpsertCreator(ctx, profile)
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.Profile, second.Profile)

	listed, err := service.ListBySearch(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestUpsertCreatorNullsNeverOverwrite(t *testing.T) {
	service := setupService(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	stored, err := service.UpsertCreator(ctx, profiles.CreatorProfile{
		Name:          "Grace Hopper",
		Handle:        "grace",
		Platform:      "TikTok",
		FollowerCount: int64p(5000),
		Demographics:  profiles.Demographics{Bio: "compilers", Country: "US"},
	})
	require.NoError(t, err)

	// an update with no follower count and partial demographics must
	// keep the stored values
	updated, err := service.UpsertCreator(ctx, profiles.CreatorProfile{
		Handle:       "grace",
		Platform:     "TikTok",
		Demographics: profiles.Demographics{City: "Arlington"},
	})
	require.NoError(t, err)

	require.Equal(t, stored.ID, updated.ID)
	require.Equal(t, "Grace Hopper", updated.Profile.Name)
	require.NotNil(t, updated.Profile.FollowerCount)
	require.Equal(t, int64(5000), *updated.Profile.FollowerCount)
	require.Equal(t, "compilers", updated.Profile.Demographics.Bio)
	require.Equal(t, "US", updated.Profile.Demographics.Country)
	require.Equal(t, "Arlington", updated.Profile.Demographics.City)
}

func TestUpsertCreatorNormalizesHandle(t *testing.T) {
	service := setupService(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	first, err := service.UpsertCreator(ctx, profiles.CreatorProfile{Handle: "Ada", Platform: "Instagram"})
	require.NoError(t, err)
	second, err := service.UpsertCreator(ctx, profiles.CreatorProfile{Handle: " @ada ", Platform: "Instagram"})
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "ada", second.Profile.Handle)

	listed, err := service.ListBySearch(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestUpsertCreatorDistinctPlatforms(t *testing.T) {
	service := setupService(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	a, err := service.UpsertCreator(ctx, profiles.CreatorProfile{Handle: "same", Platform: "Instagram"})
	require.NoError(t, err)
	b, err := service.UpsertCreator(ctx, profiles.CreatorProfile{Handle: "same", Platform: "TikTok"})
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
}

func TestEnsureAssociationIdempotence(t *testing.T) {
	service := setupService(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	campaign, err := service.CreateCampaign(ctx, "Summer Launch", "Acme", "SEA", "travel food push")
	require.NoError(t, err)
	creator, err := service.UpsertCreator(ctx, profiles.CreatorProfile{Handle: "ada", Platform: "Instagram"})
	require.NoError(t, err)

	first, err := service.EnsureAssociation(ctx, campaign.ID, creator.ID)
	require.NoError(t, err)
	require.False(t, first.TotalScore.Valid)

	second, err := service.EnsureAssociation(ctx, campaign.ID, creator.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.False(t, second.TotalScore.Valid)
}

func TestSaveScores(t *testing.T) {
	service := setupService(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	campaign, err := service.CreateCampaign(ctx, "Summer Launch", "", "", "")
	require.NoError(t, err)
	creator, err := service.UpsertCreator(ctx, profiles.CreatorProfile{Handle: "ada", Platform: "Instagram"})
	require.NoError(t, err)
	association, err := service.EnsureAssociation(ctx, campaign.ID, creator.ID)
	require.NoError(t, err)

	payload := scoring.BuildScorePayload(scoring.ScoreInputs{
		ReachScore:         3.0,
		InterestScore:      5.0,
		EngagementRate:     4.56,
		EngagementScore:    4.0,
		ContentOriginality: 4.0,
		ContentCreativity:  4.0,
		OrganicPostsL2M:    float64p(5),
		SponsoredPostsL2M:  float64p(20),
		AuthorityOverall:   4.0,
		ValuesOverall:      5.0,
		QualitativeNotes:   "solid fit",
	})
	require.NoError(t, service.SaveScores(ctx, association.ID, payload))

	saved, err := service.GetAssociation(ctx, association.ID)
	require.NoError(t, err)
	require.True(t, saved.TotalScore.Valid)
	require.Equal(t, payload.TotalScore, saved.TotalScore.Float64)
	require.Equal(t, 0.25, saved.SaturationRate.Float64)
	require.Equal(t, 5.0, saved.ContentBalance.Float64)
	require.Equal(t, "solid fit", saved.QualitativeNotes.String)

	rows, err := service.ListCampaignCreators(ctx, campaign.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "ada", rows[0].Handle)
	require.Equal(t, payload.TotalScore, rows[0].TotalScore.Float64)
}

func TestLogImportUpdatesInPlace(t *testing.T) {
	service := setupService(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	campaign, err := service.CreateCampaign(ctx, "Summer Launch", "", "", "")
	require.NoError(t, err)

	link := "https://vero.creatoriq.com/lists/report/abc"
	first, err := service.LogImport(ctx, ImportLog{
		CampaignID:  campaign.ID,
		PublishLink: link,
		Platform:    "CreatorIQ",
		Status:      "pending",
	})
	require.NoError(t, err)

	second, err := service.LogImport(ctx, ImportLog{
		CampaignID:  campaign.ID,
		PublishLink: link,
		Platform:    "CreatorIQ",
		Status:      "imported",
		Payload:     map[string]any{"imported_ids": []int64{1, 2}},
	})
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "imported", second.Status)
	require.True(t, second.RawPayload.Valid)

	records, err := service.ListImports(ctx, campaign.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestListBySearch(t *testing.T) {
	service := setupService(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, err := service.UpsertCreator(ctx, profiles.CreatorProfile{Name: "Ada Lovelace", Handle: "ada", Platform: "Instagram"})
	require.NoError(t, err)
	_, err = service.UpsertCreator(ctx, profiles.CreatorProfile{Name: "Grace Hopper", Handle: "grace", Platform: "TikTok"})
	require.NoError(t, err)

	rows, err := service.ListBySearch(ctx, "Lovelace", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "ada", rows[0].Handle)

	rows, err = service.ListBySearch(ctx, "tiktok", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "grace", rows[0].Handle)

	rows, err = service.ListBySearch(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}
