package creatoriqdom

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func profileCardHtml(name, handle, platformClass, followers string) string {
	return fmt.Sprintf(`
<div class="HeightPreservingItem-module__root">
  <div class="MuiStack-root css-bxytpu">
    <div data-testid="creator-avatar"><img src="https://cdn.example.com/%s.jpg"></div>
    <span data-testid="creator-fullname">%s</span>
    <span data-testid="creator-handle">%s</span>
  </div>
  <div class="MuiStack-root css-18zsr3k">
    <i class="ciq-icon %s"></i>
    <span class="MuiTypography-body-lg">%s</span>
  </div>
  <p data-testid="creator-bio">bio of %s</p>
</div>`, handle, name, handle, platformClass, followers, name)
}

type fakeFetcher struct {
	feed        string
	detail      string
	detailErr   error
	detailHangs bool
	detailHits  []string
}

func (f *fakeFetcher) FetchReport(ctx context.Context, url string, maxProfiles int) (string, error) {
	return f.feed, nil
}

func (f *fakeFetcher) FetchProfileDetail(ctx context.Context, url, handle string) (string, error) {
	f.detailHits = append(f.detailHits, handle)
	if f.detailHangs {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if f.detailErr != nil {
		return "", f.detailErr
	}
	return f.detail, nil
}

const detailSidebarHtml = `
<div data-testid="creator-details-sidebar-root">
  <h3 class="MuiTypography-root MuiTypography-title-md">Travel and food content.</h3>
</div>
<span class="MuiTypography-root MuiTypography-body-md css-12t7p4b">travel, food</span>
<span class="MuiTypography-root MuiTypography-body-md css-12t7p4b">Lifestyle</span>
<a class="MuiChip-action" href="https://instagram.com/ada"></a>
<a class="MuiChip-action" href="https://tiktok.com/@ada"></a>
<h4 class="MuiTypography-root MuiTypography-h4 css-rgovxk">120K</h4>
<h4 class="MuiTypography-root MuiTypography-h4 css-rgovxk">45K</h4>
<div class="MuiStack-root css-1qqjprm">4.2%</div>
<div class="MuiStack-root css-1qqjprm">6.1%</div>
<span data-testid="pie-chart-Female-value">61%</span>
<span data-testid="pie-chart-Male-value">39%</span>
<span data-testid="bar-chart-right-label-18-24">42%</span>
`

func TestScrapeReportParsesCards(t *testing.T) {
	feed := profileCardHtml("Ada Lovelace", "@ada", "ciq-instagram-logo", "120K") +
		profileCardHtml("Grace Hopper", "@grace", "ciq-tiktok-logo", "2.5M") +
		profileCardHtml("Ada Again", "@ADA", "ciq-instagram-logo", "120K")

	fetcher := &fakeFetcher{feed: feed, detail: detailSidebarHtml}
	scraper := NewScraper(fetcher)

	profiles, warnings, err := scraper.ScrapeReport(context.Background(), "https://vero.creatoriq.com/lists/report/x", 100, 1)
	require.NoError(t, err)

	require.Len(t, profiles, 2)
	require.Equal(t, "Ada Lovelace", profiles[0].FullName)
	require.Equal(t, "@ada", profiles[0].Handle)
	require.Equal(t, "Instagram", profiles[0].Platform)
	require.Equal(t, "120K", profiles[0].Followers)
	require.Equal(t, "bio of Ada Lovelace", profiles[0].Bio)
	require.Equal(t, "TikTok", profiles[1].Platform)

	followers, ok := profiles[1].FollowerCount()
	require.True(t, ok)
	require.Equal(t, int64(2_500_000), followers)

	// the case-insensitive duplicate is skipped with a warning
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0], "duplicate")

	// only the first profile got a detail crawl
	require.Equal(t, []string{"@ada"}, fetcher.detailHits)
	require.NotNil(t, profiles[0].Details)
	require.Nil(t, profiles[1].Details)
	require.Equal(t, "Travel and food content.", profiles[0].Details["About"])
	require.Equal(t, "travel, food", profiles[0].Details["Tags"])
	require.Equal(t, "Lifestyle", profiles[0].Details["Category"])
	require.Equal(t, []string{"https://instagram.com/ada", "https://tiktok.com/@ada"}, profiles[0].Details["Social Links"])
	require.Equal(t, "4.2%", profiles[0].Details["Instagram Engagement Rate"])
	require.Equal(t, "6.1%", profiles[0].Details["TikTok Engagement Rate"])
	require.Equal(t, "61%", profiles[0].Details["Female Audience"])

	ages, ok := profiles[0].Details["Age Demographics"].(map[string]string)
	require.True(t, ok)
	require.Equal(t, "42%", ages["18-24"])
	require.Equal(t, "N/A", ages["<18"])
}

func TestScrapeReportRespectsMaxProfiles(t *testing.T) {
	feed := profileCardHtml("A", "@a", "ciq-instagram-logo", "1K") +
		profileCardHtml("B", "@b", "ciq-instagram-logo", "2K") +
		profileCardHtml("C", "@c", "ciq-instagram-logo", "3K")

	scraper := NewScraper(&fakeFetcher{feed: feed})
	profiles, _, err := scraper.ScrapeReport(context.Background(), "url", 2, 0)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
}

func TestScrapeReportDetailFailureIsWarning(t *testing.T) {
	feed := profileCardHtml("A", "@a", "ciq-youtube-logo", "9K")
	fetcher := &fakeFetcher{feed: feed, detailErr: fmt.Errorf("browser crashed")}
	scraper := NewScraper(fetcher)

	profiles, warnings, err := scraper.ScrapeReport(context.Background(), "url", 10, -1)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.Nil(t, profiles[0].Details)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0], "@a")
}

func TestScrapeReportDetailTimeoutIsWarning(t *testing.T) {
	feed := profileCardHtml("A", "@a", "ciq-tiktok-logo", "9K")
	fetcher := &fakeFetcher{feed: feed, detailHangs: true}
	scraper := NewScraper(fetcher)
	scraper.DetailTimeout = time.Millisecond * 50

	start := time.Now()
	profiles, warnings, err := scraper.ScrapeReport(context.Background(), "url", 10, -1)
	require.Less(t, time.Since(start), time.Second)

	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.Nil(t, profiles[0].Details)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0], "@a")
	require.Contains(t, warnings[0], context.DeadlineExceeded.Error())
}

func TestParseProfileCardMissingFields(t *testing.T) {
	// a card without a handle element is dropped entirely
	feed := `
<div class="HeightPreservingItem-module__root">
  <div class="MuiStack-root css-bxytpu">
    <span data-testid="creator-fullname">No Handle</span>
  </div>
</div>`
	scraper := NewScraper(&fakeFetcher{feed: feed})
	profiles, warnings, err := scraper.ScrapeReport(context.Background(), "url", 10, 0)
	require.NoError(t, err)
	require.Empty(t, profiles)
	require.Empty(t, warnings)
}
