package ingestion

import (
	"context"
	"fmt"
	"testing"
	"time"
	"truevibe-backend/lib/scrapers/creatoriqdom"
	"truevibe-backend/lib/testutil"
	"truevibe-backend/services/kolstore"
	"truevibe-backend/services/kolstore/db"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

const reportLink = "https://vero.creatoriq.com/lists/report/abc123"

type fakeCollection struct {
	creators  []map[string]any
	details   map[string]map[string]any
	fetchErr  error
	detailErr error
}

func (f *fakeCollection) FetchCreators(ctx context.Context) ([]map[string]any, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.creators, nil
}

func (f *fakeCollection) FetchCreatorDetail(ctx context.Context, creatorId string) (map[string]any, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.details[creatorId], nil
}

type fakeScraper struct {
	cards    []creatoriqdom.ProfileCard
	warnings []string
	err      error
}

func (f *fakeScraper) ScrapeReport(ctx context.Context, url string, maxProfiles, detailLimit int) ([]creatoriqdom.ProfileCard, []string, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	cards := f.cards
	if maxProfiles >= 0 && len(cards) > maxProfiles {
		cards = cards[:maxProfiles]
	}
	return cards, f.warnings, nil
}

func setupIngestion(t *testing.T, opts Options) (Service, kolstore.Service) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/ingestion",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)
	store := kolstore.NewService(setup.DB)
	return NewService(store, opts), store
}

func collectionCreator(id int, handle string) map[string]any {
	creator := map[string]any{
		"id":                     fmt.Sprint(1000 + id),
		"fullName":               fmt.Sprintf("Creator %d", id),
		"primaryNetwork":         "Instagram",
		"totalSocialConnections": float64(10_000 * (id + 1)),
	}
	if handle != "" {
		creator["primarySocialUsername"] = handle
	}
	return creator
}

func TestImportCollectionPartialSuccess(t *testing.T) {
	source := &fakeCollection{creators: []map[string]any{
		collectionCreator(0, "alpha"),
		collectionCreator(1, "beta"),
		collectionCreator(2, ""), // no handle, no listCreatorsId
		collectionCreator(3, "gamma"),
		collectionCreator(4, "delta"),
	}}
	service, store := setupIngestion(t, Options{
		NewCollectionClient: func(slug string) CollectionClient {
			require.Equal(t, "abc123", slug)
			return source
		},
	})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	campaign, err := store.CreateCampaign(ctx, "Launch", "", "", "")
	require.NoError(t, err)

	summary, err := service.ImportCollection(ctx, campaign.ID, reportLink, false)
	require.NoError(t, err)
	require.Equal(t, 4, summary.Imported)
	require.Len(t, summary.Warnings, 1)

	rows, err := store.ListCampaignCreators(ctx, campaign.ID)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	records, err := store.ListImports(ctx, campaign.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "imported", records[0].Status)
	require.Equal(t, "CreatorIQ", records[0].Platform.String)
}

func TestImportCollectionSourceFailure(t *testing.T) {
	source := &fakeCollection{fetchErr: fmt.Errorf("http 500")}
	service, store := setupIngestion(t, Options{
		NewCollectionClient: func(slug string) CollectionClient { return source },
	})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	campaign, err := store.CreateCampaign(ctx, "Launch", "", "", "")
	require.NoError(t, err)

	_, err = service.ImportCollection(ctx, campaign.ID, reportLink, false)
	require.Error(t, err)

	records, err := store.ListImports(ctx, campaign.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "failed", records[0].Status)
}

func TestImportCollectionDetailEnrichment(t *testing.T) {
	source := &fakeCollection{
		creators: []map[string]any{collectionCreator(0, "alpha")},
		details: map[string]map[string]any{
			"1000": {"profilePictureURL": "https://cdn.example.com/alpha.jpg"},
		},
	}
	service, store := setupIngestion(t, Options{
		NewCollectionClient: func(slug string) CollectionClient { return source },
	})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	campaign, err := store.CreateCampaign(ctx, "Launch", "", "", "")
	require.NoError(t, err)

	summary, err := service.ImportCollection(ctx, campaign.ID, reportLink, true)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)
	require.Empty(t, summary.Warnings)
}

func TestImportCollectionDetailFailureDegradesToWarning(t *testing.T) {
	source := &fakeCollection{
		creators:  []map[string]any{collectionCreator(0, "alpha")},
		detailErr: fmt.Errorf("timeout"),
	}
	service, store := setupIngestion(t, Options{
		NewCollectionClient: func(slug string) CollectionClient { return source },
	})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	campaign, err := store.CreateCampaign(ctx, "Launch", "", "", "")
	require.NoError(t, err)

	summary, err := service.ImportCollection(ctx, campaign.ID, reportLink, true)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)
	require.Len(t, summary.Warnings, 1)
}

func TestImportReportCrawl(t *testing.T) {
	scraper := &fakeScraper{
		cards: []creatoriqdom.ProfileCard{
			{FullName: "Alpha", Handle: "alpha", Platform: "Instagram", Followers: "120K"},
			{FullName: "Unknown Card", Handle: "unknown", Platform: "TikTok"},
			{FullName: "Gamma", Handle: "gamma", Platform: "TikTok", Followers: "8,400"},
		},
		warnings: []string{"Profile detail for alpha timed out."},
	}
	service, store := setupIngestion(t, Options{Scraper: scraper})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	campaign, err := store.CreateCampaign(ctx, "Launch", "", "", "")
	require.NoError(t, err)

	summary, err := service.ImportReportCrawl(ctx, campaign.ID, reportLink, 100, 1)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Imported)
	// scraper warning plus the skipped unknown handle
	require.Len(t, summary.Warnings, 2)

	records, err := store.ListImports(ctx, campaign.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "imported", records[0].Status)
	require.Equal(t, "CreatorIQ (DOM)", records[0].Platform.String)
}

func TestImportReportCrawlRespectsMaxProfiles(t *testing.T) {
	scraper := &fakeScraper{
		cards: []creatoriqdom.ProfileCard{
			{FullName: "Alpha", Handle: "alpha", Platform: "Instagram"},
			{FullName: "Beta", Handle: "beta", Platform: "Instagram"},
			{FullName: "Gamma", Handle: "gamma", Platform: "Instagram"},
		},
	}
	service, store := setupIngestion(t, Options{Scraper: scraper})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	campaign, err := store.CreateCampaign(ctx, "Launch", "", "", "")
	require.NoError(t, err)

	summary, err := service.ImportReportCrawl(ctx, campaign.ID, reportLink, 2, 0)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Imported)
}

func TestImportLink(t *testing.T) {
	service, store := setupIngestion(t, Options{})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	campaign, err := store.CreateCampaign(ctx, "Launch", "", "", "")
	require.NoError(t, err)

	summary, err := service.ImportLink(ctx, campaign.ID, "https://www.tiktok.com/@dance-star")
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)

	rows, err := store.ListBySearch(ctx, "dance", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "TikTok", rows[0].Platform)

	records, err := store.ListImports(ctx, campaign.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "TikTok", records[0].Platform.String)
}

func TestImportFromSourceDispatch(t *testing.T) {
	source := &fakeCollection{creators: []map[string]any{collectionCreator(0, "alpha")}}
	service, store := setupIngestion(t, Options{
		NewCollectionClient: func(slug string) CollectionClient { return source },
	})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	campaign, err := store.CreateCampaign(ctx, "Launch", "", "", "")
	require.NoError(t, err)

	summary, err := service.ImportFromSource(ctx, campaign.ID, reportLink, ImportOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)

	summary, err = service.ImportFromSource(ctx, campaign.ID, "https://www.instagram.com/someone", ImportOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)

	rows, err := store.ListBySearch(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}
