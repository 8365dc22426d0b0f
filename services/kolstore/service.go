// Package kolstore is the persistence layer for creators, campaigns,
// their associations and import logs. Creator upserts are atomic
// insert-or-merge operations keyed by (handle, platform).
package kolstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"truevibe-backend/lib/textutil"
	"truevibe-backend/lib/timezone"
	"truevibe-backend/services/kolstore/db"
	"truevibe-backend/services/profiles"
	"truevibe-backend/services/scoring"

	"dario.cat/mergo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/kolstore")

type Service struct {
	db  *sql.DB
	qry *db.Queries
}

func NewService(database *sql.DB) Service {
	return Service{
		db:  database,
		qry: db.New(database),
	}
}

// StoredCreator is a creator profile together with its durable id.
type StoredCreator struct {
	ID         int64
	Profile    profiles.CreatorProfile
	LastSeenAt time.Time
}

func creatorFromRow(row db.Creator) (StoredCreator, error) {
	profile := profiles.CreatorProfile{
		Name:     row.Name,
		Handle:   row.Handle,
		Platform: row.Platform,
	}
	if row.FollowerCount.Valid {
		count := row.FollowerCount.Int64
		profile.FollowerCount = &count
	}
	if row.DemographicsJson.Valid && row.DemographicsJson.String != "" {
		err := json.Unmarshal([]byte(row.DemographicsJson.String), &profile.Demographics)
		if err != nil {
			return StoredCreator{}, err
		}
	}
	return StoredCreator{
		ID:         row.ID,
		Profile:    profile,
		LastSeenAt: time.Unix(row.LastSeenAt, 0).In(timezone.Location),
	}, nil
}

// UpsertCreator inserts the profile or merges it over the stored
// record with the same (handle, platform). Incoming non-null fields
// win; stored values survive gaps in the incoming profile. The whole
// read-merge-write runs in one transaction.
func (s Service) UpsertCreator(ctx context.Context, profile profiles.CreatorProfile) (StoredCreator, error) {
	ctx, span := tracer.Start(ctx, "UpsertCreator")
	defer span.End()

	// (lower(handle), platform) is the dedup key, so normalize here
	// rather than trusting callers to have done it
	handle := textutil.NormalizeHandle(profile.Handle)

	span.SetAttributes(
		attribute.String("handle", handle),
		attribute.String("platform", profile.Platform),
	)

	if handle == "" {
		return StoredCreator{}, profiles.ErrNoHandle
	}
	platform := profile.Platform
	if platform == "" {
		platform = "Unknown"
	}
	name := profile.Name
	if name == "" {
		name = handle
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StoredCreator{}, err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	demographics := profile.Demographics
	existing, err := txqry.GetCreatorByIdentity(ctx, db.GetCreatorByIdentityParams{
		Handle:   handle,
		Platform: platform,
	})
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StoredCreator{}, err
	}
	if err == nil && existing.DemographicsJson.Valid && existing.DemographicsJson.String != "" {
		var stored profiles.Demographics
		err := json.Unmarshal([]byte(existing.DemographicsJson.String), &stored)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to decode stored demographics")
			return StoredCreator{}, err
		}
		// fill gaps in the incoming demographics from the stored
		// ones so an import with partial data never erases fields a
		// previous import already learned
		err = mergo.Merge(&demographics, stored)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return StoredCreator{}, err
		}
	}

	var demographicsJson sql.NullString
	if !demographics.IsZero() {
		serialized, err := json.Marshal(demographics)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return StoredCreator{}, err
		}
		demographicsJson = sql.NullString{String: string(serialized), Valid: true}
	}

	var followerCount sql.NullInt64
	if profile.FollowerCount != nil {
		followerCount = sql.NullInt64{Int64: *profile.FollowerCount, Valid: true}
	}

	row, err := txqry.UpsertCreator(ctx, db.UpsertCreatorParams{
		Name:             name,
		Handle:           handle,
		Platform:         platform,
		FollowerCount:    followerCount,
		DemographicsJson: demographicsJson,
		LastSeenAt:       timezone.Now().Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StoredCreator{}, err
	}
	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StoredCreator{}, err
	}

	return creatorFromRow(row)
}

func (s Service) GetCreator(ctx context.Context, id int64) (StoredCreator, error) {
	ctx, span := tracer.Start(ctx, "GetCreator")
	defer span.End()

	row, err := s.qry.GetCreator(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StoredCreator{}, err
	}
	return creatorFromRow(row)
}

// EnsureAssociation idempotently creates the zero-scored association
// row for (campaign, creator), returning the existing row on repeat
// calls with only its updated timestamp advanced.
func (s Service) EnsureAssociation(ctx context.Context, campaignID, creatorID int64) (db.CampaignCreator, error) {
	ctx, span := tracer.Start(ctx, "EnsureAssociation")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("campaign_id", campaignID),
		attribute.Int64("creator_id", creatorID),
	)

	now := timezone.Now().Unix()
	row, err := s.qry.EnsureCampaignCreator(ctx, db.EnsureCampaignCreatorParams{
		CampaignID: campaignID,
		CreatorID:  creatorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return db.CampaignCreator{}, err
	}
	return row, nil
}

func (s Service) GetAssociation(ctx context.Context, id int64) (db.CampaignCreator, error) {
	ctx, span := tracer.Start(ctx, "GetAssociation")
	defer span.End()

	row, err := s.qry.GetCampaignCreator(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return db.CampaignCreator{}, err
	}
	return row, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func someFloat(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

// SaveScores overwrites one association's score fields with the
// payload in a single write.
func (s Service) SaveScores(ctx context.Context, associationID int64, payload scoring.ScorePayload) error {
	ctx, span := tracer.Start(ctx, "SaveScores")
	defer span.End()

	span.SetAttributes(attribute.Int64("association_id", associationID))

	err := s.qry.SaveCampaignCreatorScores(ctx, db.SaveCampaignCreatorScoresParams{
		ReachScore:         someFloat(payload.ReachScore),
		InterestScore:      someFloat(payload.InterestScore),
		EngagementRate:     someFloat(payload.EngagementRate),
		EngagementScore:    someFloat(payload.EngagementScore),
		ContentBalance:     nullFloat(payload.ContentBalance),
		OrganicPostsL2m:    nullFloat(payload.OrganicPostsL2M),
		SponsoredPostsL2m:  nullFloat(payload.SponsoredPostsL2M),
		SaturationRate:     nullFloat(payload.SaturationRate),
		ContentOriginality: someFloat(payload.ContentOriginality),
		ContentCreativity:  someFloat(payload.ContentCreativity),
		ContentScore:       someFloat(payload.ContentScore),
		AuthorityScore:     someFloat(payload.AuthorityScore),
		ValuesScore:        someFloat(payload.ValuesScore),
		TotalScore:         someFloat(payload.TotalScore),
		QualitativeNotes:   sql.NullString{String: payload.QualitativeNotes, Valid: true},
		UpdatedAt:          timezone.Now().Unix(),
		ID:                 associationID,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// ImportLog summarizes one ingestion attempt against a campaign.
type ImportLog struct {
	CampaignID  int64
	PublishLink string
	Platform    string
	Status      string
	Payload     any
}

func (s Service) LogImport(ctx context.Context, log ImportLog) (db.ImportRecord, error) {
	ctx, span := tracer.Start(ctx, "LogImport")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("campaign_id", log.CampaignID),
		attribute.String("status", log.Status),
	)

	var rawPayload sql.NullString
	if log.Payload != nil {
		serialized, err := json.Marshal(log.Payload)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return db.ImportRecord{}, err
		}
		rawPayload = sql.NullString{String: string(serialized), Valid: true}
	}
	var platform sql.NullString
	if log.Platform != "" {
		platform = sql.NullString{String: log.Platform, Valid: true}
	}

	now := timezone.Now().Unix()
	row, err := s.qry.LogImport(ctx, db.LogImportParams{
		CampaignID:  log.CampaignID,
		PublishLink: log.PublishLink,
		Platform:    platform,
		Status:      log.Status,
		RawPayload:  rawPayload,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return db.ImportRecord{}, err
	}
	return row, nil
}

func (s Service) ListImports(ctx context.Context, campaignID int64) ([]db.ImportRecord, error) {
	ctx, span := tracer.Start(ctx, "ListImports")
	defer span.End()

	rows, err := s.qry.ListImports(ctx, campaignID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rows, nil
}

// ListBySearch lists creators across the whole workspace, optionally
// filtered by a case-insensitive substring over name/handle/platform.
func (s Service) ListBySearch(ctx context.Context, search string, limit int64) ([]db.ListCreatorsRow, error) {
	ctx, span := tracer.Start(ctx, "ListBySearch")
	defer span.End()

	span.SetAttributes(attribute.String("search", search))

	if limit <= 0 {
		limit = 500
	}
	if search == "" {
		rows, err := s.qry.ListCreators(ctx, limit)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		return rows, nil
	}

	rows, err := s.qry.SearchCreators(ctx, db.SearchCreatorsParams{
		Search: "%" + strings.ToLower(strings.TrimSpace(search)) + "%",
		Limit:  limit,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rows, nil
}

func (s Service) ListCampaignCreators(ctx context.Context, campaignID int64) ([]db.ListCampaignCreatorsRow, error) {
	ctx, span := tracer.Start(ctx, "ListCampaignCreators")
	defer span.End()

	span.SetAttributes(attribute.Int64("campaign_id", campaignID))

	rows, err := s.qry.ListCampaignCreators(ctx, campaignID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rows, nil
}

func nullTrimmed(v string) sql.NullString {
	v = strings.TrimSpace(v)
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func (s Service) CreateCampaign(ctx context.Context, name, clientName, market, objective string) (db.Campaign, error) {
	ctx, span := tracer.Start(ctx, "CreateCampaign")
	defer span.End()

	span.SetAttributes(attribute.String("name", name))

	row, err := s.qry.CreateCampaign(ctx, db.CreateCampaignParams{
		Name:       strings.TrimSpace(name),
		ClientName: nullTrimmed(clientName),
		Market:     nullTrimmed(market),
		Objective:  nullTrimmed(objective),
		CreatedAt:  timezone.Now().Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return db.Campaign{}, err
	}
	return row, nil
}

func (s Service) GetCampaign(ctx context.Context, id int64) (db.Campaign, error) {
	ctx, span := tracer.Start(ctx, "GetCampaign")
	defer span.End()

	row, err := s.qry.GetCampaign(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return db.Campaign{}, err
	}
	return row, nil
}

func (s Service) ListCampaigns(ctx context.Context) ([]db.Campaign, error) {
	ctx, span := tracer.Start(ctx, "ListCampaigns")
	defer span.End()

	rows, err := s.qry.ListCampaigns(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rows, nil
}
