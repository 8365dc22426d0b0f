package creatoriqdom

import (
	"context"
	"fmt"
	"truevibe-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

// StaticFetcher fetches pages over plain HTTP. It works against
// pre-rendered report mirrors; live reports need a browser-backed
// PageFetcher since the feed only fills in after scripts run.
type StaticFetcher struct {
	client *resty.Client
}

func NewStaticFetcher() StaticFetcher {
	client := resty.New()
	telemetry.InstrumentResty(client, "scrapers/creatoriqdom/http")
	return StaticFetcher{client: client}
}

func (f StaticFetcher) get(ctx context.Context, url string) (string, error) {
	res, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", err
	}
	if res.StatusCode() >= 400 {
		return "", fmt.Errorf("fetch %s: status %d", url, res.StatusCode())
	}
	return res.String(), nil
}

func (f StaticFetcher) FetchReport(ctx context.Context, url string, maxProfiles int) (string, error) {
	return f.get(ctx, url)
}

// FetchProfileDetail refetches the report page; on a static mirror
// the detail sidebar markup is already present for every profile.
func (f StaticFetcher) FetchProfileDetail(ctx context.Context, url, handle string) (string, error) {
	return f.get(ctx, url)
}
