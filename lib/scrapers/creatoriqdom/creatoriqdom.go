// Package creatoriqdom scrapes a CreatorIQ shared report straight out
// of its rendered markup. It exists for reports whose GraphQL share
// endpoint is disabled; a PageFetcher drives the actual browser while
// this package owns selector knowledge and parsing.
package creatoriqdom

import (
	"context"
	"fmt"
	"time"
	"truevibe-backend/lib/textutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/creatoriqdom")

// PageFetcher renders report pages and hands back html snapshots.
// Implementations wrap a headless browser; tests feed in fixtures.
type PageFetcher interface {
	// FetchReport loads the report feed and scrolls until either
	// maxProfiles cards are visible or the feed runs out.
	FetchReport(ctx context.Context, url string, maxProfiles int) (string, error)
	// FetchProfileDetail searches the report for the given handle,
	// opens the first matching result and returns the rendered
	// detail sidebar.
	FetchProfileDetail(ctx context.Context, url, handle string) (string, error)
}

// ProfileCard is one creator card lifted off the report feed, plus the
// detail sidebar payload when one was fetched.
type ProfileCard struct {
	FullName  string
	Handle    string
	ImageURL  string
	Platform  string
	Followers string
	Bio       string
	Details   map[string]any
}

// FollowerCount parses the card's compact follower text ("1.2M").
// ok is false when the text carries no number at all.
func (c ProfileCard) FollowerCount() (int64, bool) {
	n, ok := textutil.ParseCompactNumber(c.Followers)
	if !ok {
		return 0, false
	}
	return int64(n), true
}

const DefaultDetailTimeout = time.Second * 45

type Scraper struct {
	fetcher PageFetcher
	// cap on how long a single profile's detail crawl may take,
	// defaults to DefaultDetailTimeout
	DetailTimeout time.Duration
}

func NewScraper(fetcher PageFetcher) *Scraper {
	return &Scraper{
		fetcher:       fetcher,
		DetailTimeout: DefaultDetailTimeout,
	}
}

// ScrapeReport crawls the report feed into deduplicated profile cards
// and then attaches detail payloads to the first detailLimit profiles.
// detailLimit < 0 means every profile; a failed or timed out detail
// crawl becomes a warning, never an error.
func (s *Scraper) ScrapeReport(
	ctx context.Context,
	url string,
	maxProfiles int,
	detailLimit int,
) ([]ProfileCard, []string, error) {
	ctx, span := tracer.Start(ctx, "ScrapeReport")
	defer span.End()

	span.SetAttributes(
		attribute.String("url", url),
		attribute.Int("max_profiles", maxProfiles),
		attribute.Int("detail_limit", detailLimit),
	)

	feed, err := s.fetcher.FetchReport(ctx, url, maxProfiles)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch report feed")
		return nil, nil, err
	}

	profiles, warnings, err := parseFeed(feed, maxProfiles)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse report feed")
		return nil, nil, err
	}
	span.SetAttributes(attribute.Int("profile_count", len(profiles)))

	limit := len(profiles)
	if detailLimit >= 0 && detailLimit < limit {
		limit = detailLimit
	}
	for i := 0; i < limit; i++ {
		warning := s.attachDetails(ctx, url, &profiles[i])
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return profiles, warnings, nil
}

func (s *Scraper) attachDetails(ctx context.Context, url string, profile *ProfileCard) (warning string) {
	timeout := s.DetailTimeout
	if timeout <= 0 {
		timeout = DefaultDetailTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "attachDetails")
	defer span.End()
	span.SetAttributes(attribute.String("handle", profile.Handle))

	sidebar, err := s.fetcher.FetchProfileDetail(ctx, url, profile.Handle)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch profile detail")
		return fmt.Sprintf("detail crawl for %q failed: %s", profile.Handle, err)
	}

	details, err := parseDetailSidebar(sidebar)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse profile detail")
		return fmt.Sprintf("detail parse for %q failed: %s", profile.Handle, err)
	}

	profile.Details = details
	return ""
}
