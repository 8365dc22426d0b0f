// Package ingestion drives source adapters through the
// normalize-upsert-associate pipeline and logs one import record per
// attempt. Batches have partial-success semantics: bad records become
// warnings, source failures abort the remainder without undoing
// earlier upserts.
package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"truevibe-backend/lib/scrapers/creatoriq"
	"truevibe-backend/lib/scrapers/creatoriqdom"
	"truevibe-backend/lib/scrapers/linkstub"
	"truevibe-backend/services/kolstore"
	"truevibe-backend/services/profiles"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("services/ingestion")

// CollectionClient fetches creators out of a shared collection API.
type CollectionClient interface {
	FetchCreators(ctx context.Context) ([]map[string]any, error)
	FetchCreatorDetail(ctx context.Context, creatorId string) (map[string]any, error)
}

// ReportScraper crawls a rendered report into profile cards.
type ReportScraper interface {
	ScrapeReport(ctx context.Context, url string, maxProfiles, detailLimit int) ([]creatoriqdom.ProfileCard, []string, error)
}

// LinkFetcher turns a bare publish link into a placeholder profile.
type LinkFetcher func(publishLink string) linkstub.Profile

type Options struct {
	// constructs a collection client for a report slug, defaults to
	// the CreatorIQ graphql client
	NewCollectionClient func(slug string) CollectionClient
	// drives crawl-based imports; required only for ImportReportCrawl
	Scraper ReportScraper
	// defaults to the deterministic link stub
	FetchLink LinkFetcher
}

type Service struct {
	store               kolstore.Service
	newCollectionClient func(slug string) CollectionClient
	scraper             ReportScraper
	fetchLink           LinkFetcher
}

func NewService(store kolstore.Service, opts Options) Service {
	newClient := opts.NewCollectionClient
	if newClient == nil {
		newClient = func(slug string) CollectionClient {
			return creatoriq.NewClient(slug)
		}
	}
	fetchLink := opts.FetchLink
	if fetchLink == nil {
		fetchLink = linkstub.FetchProfile
	}
	return Service{
		store:               store,
		newCollectionClient: newClient,
		scraper:             opts.Scraper,
		fetchLink:           fetchLink,
	}
}

// Summary reports the outcome of one import call.
type Summary struct {
	Imported int
	Warnings []string
}

const warnMissingHandle = "Skipped a creator because handle/username was missing."

// upsertProfile runs one normalized profile through the store,
// returning the association id.
func (s Service) upsertProfile(ctx context.Context, campaignID int64, profile profiles.CreatorProfile) (int64, error) {
	creator, err := s.store.UpsertCreator(ctx, profile)
	if err != nil {
		return 0, err
	}
	association, err := s.store.EnsureAssociation(ctx, campaignID, creator.ID)
	if err != nil {
		return 0, err
	}
	return association.ID, nil
}

// ImportCollection pulls every creator in a shared collection report.
// withDetails additionally fetches each creator's detail payload; a
// failed detail fetch degrades to a warning and the collection-level
// fields are kept.
func (s Service) ImportCollection(ctx context.Context, campaignID int64, publishLink string, withDetails bool) (Summary, error) {
	ctx, span := tracer.Start(ctx, "ImportCollection")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("campaign_id", campaignID),
		attribute.String("publish_link", publishLink),
	)

	if !creatoriq.IsCreatorIQLink(publishLink) {
		return Summary{}, fmt.Errorf("link does not belong to creatoriq: %s", publishLink)
	}
	slug, err := creatoriq.ExtractSlug(publishLink)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Summary{}, err
	}

	client := s.newCollectionClient(slug)
	creators, err := client.FetchCreators(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch collection")
		s.logImport(ctx, kolstore.ImportLog{
			CampaignID:  campaignID,
			PublishLink: publishLink,
			Platform:    "CreatorIQ",
			Status:      "failed",
			Payload:     map[string]any{"error": err.Error()},
		})
		return Summary{}, err
	}

	var summary Summary
	var importedIds []int64
	for _, creator := range creators {
		record := creatoriq.CreatorRecord{Data: creator}

		if withDetails {
			creatorId := fmt.Sprint(creator["id"])
			if creatorId == "" || creatorId == "<nil>" {
				creatorId = fmt.Sprint(creator["listCreatorsId"])
			}
			detail, err := client.FetchCreatorDetail(ctx, creatorId)
			if err != nil {
				summary.Warnings = append(summary.Warnings, fmt.Sprintf("detail fetch for creator %s failed: %s", creatorId, err))
			} else {
				record.Detail = detail
			}
		}

		profile, err := profiles.FromCollection(record.Merged())
		if err != nil {
			summary.Warnings = append(summary.Warnings, warnMissingHandle)
			continue
		}

		associationID, err := s.upsertProfile(ctx, campaignID, profile)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to persist creator")
			return summary, err
		}
		importedIds = append(importedIds, associationID)
		summary.Imported++
	}

	s.logImport(ctx, kolstore.ImportLog{
		CampaignID:  campaignID,
		PublishLink: publishLink,
		Platform:    "CreatorIQ",
		Status:      "imported",
		Payload:     map[string]any{"imported_ids": importedIds},
	})
	return summary, nil
}

// ImportReportCrawl scrapes a report straight out of its markup for
// reports whose collection API is unavailable.
func (s Service) ImportReportCrawl(ctx context.Context, campaignID int64, publishLink string, maxProfiles, detailLimit int) (Summary, error) {
	ctx, span := tracer.Start(ctx, "ImportReportCrawl")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("campaign_id", campaignID),
		attribute.String("publish_link", publishLink),
		attribute.Int("max_profiles", maxProfiles),
	)

	if !creatoriq.IsCreatorIQLink(publishLink) {
		return Summary{}, fmt.Errorf("link does not belong to creatoriq: %s", publishLink)
	}
	if s.scraper == nil {
		return Summary{}, fmt.Errorf("no report scraper configured")
	}

	cards, warnings, err := s.scraper.ScrapeReport(ctx, publishLink, maxProfiles, detailLimit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to crawl report")
		s.logImport(ctx, kolstore.ImportLog{
			CampaignID:  campaignID,
			PublishLink: publishLink,
			Platform:    "CreatorIQ (DOM)",
			Status:      "failed",
			Payload:     map[string]any{"error": err.Error()},
		})
		return Summary{}, err
	}

	summary := Summary{Warnings: warnings}
	for _, card := range cards {
		profile, err := profiles.FromCard(card)
		if err != nil {
			summary.Warnings = append(summary.Warnings, warnMissingHandle)
			continue
		}

		_, err = s.upsertProfile(ctx, campaignID, profile)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to persist creator")
			return summary, err
		}
		summary.Imported++
	}

	s.logImport(ctx, kolstore.ImportLog{
		CampaignID:  campaignID,
		PublishLink: publishLink,
		Platform:    "CreatorIQ (DOM)",
		Status:      "imported",
		Payload: map[string]any{
			"profiles":     len(cards),
			"max_profiles": maxProfiles,
			"warnings":     summary.Warnings,
		},
	})
	return summary, nil
}

// ImportLink ingests a single publish link through the synthetic
// profile fetcher.
func (s Service) ImportLink(ctx context.Context, campaignID int64, publishLink string) (Summary, error) {
	ctx, span := tracer.Start(ctx, "ImportLink")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("campaign_id", campaignID),
		attribute.String("publish_link", publishLink),
	)

	stub := s.fetchLink(publishLink)
	profile := profiles.FromLink(stub)
	if profile.Handle == "" || profile.Handle == "unknown" {
		return Summary{Warnings: []string{warnMissingHandle}}, nil
	}

	_, err := s.upsertProfile(ctx, campaignID, profile)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist creator")
		return Summary{}, err
	}

	s.logImport(ctx, kolstore.ImportLog{
		CampaignID:  campaignID,
		PublishLink: publishLink,
		Platform:    stub.Platform,
		Status:      "imported",
		Payload:     map[string]any{"source": "link-stub", "handle": profile.Handle},
	})
	return Summary{Imported: 1}, nil
}

// ImportOptions tunes ImportFromSource's adapter selection.
type ImportOptions struct {
	// crawl the rendered report instead of the collection API
	UseDom bool
	// fetch per-creator detail payloads on collection imports
	WithDetails bool
	MaxProfiles int
	DetailLimit int
}

// ImportFromSource picks the adapter for the given link: report links
// go through the collection API (or the page crawl when UseDom is
// set), anything else through the link stub.
func (s Service) ImportFromSource(ctx context.Context, campaignID int64, publishLink string, opts ImportOptions) (Summary, error) {
	ctx, span := tracer.Start(ctx, "ImportFromSource")
	defer span.End()

	if creatoriq.IsCreatorIQLink(publishLink) {
		if opts.UseDom {
			maxProfiles := opts.MaxProfiles
			if maxProfiles <= 0 {
				maxProfiles = 100
			}
			return s.ImportReportCrawl(ctx, campaignID, publishLink, maxProfiles, opts.DetailLimit)
		}
		return s.ImportCollection(ctx, campaignID, publishLink, opts.WithDetails)
	}
	return s.ImportLink(ctx, campaignID, publishLink)
}

func (s Service) logImport(ctx context.Context, log kolstore.ImportLog) {
	_, err := s.store.LogImport(ctx, log)
	if err != nil {
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		slog.WarnContext(ctx, "failed to log import record", "err", err)
	}
}
