package db

import (
	"context"
	"database/sql"
)

const createCampaign = `
INSERT INTO campaigns (name, client_name, market, objective, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, name, client_name, market, objective, created_at
`

type CreateCampaignParams struct {
	Name       string
	ClientName sql.NullString
	Market     sql.NullString
	Objective  sql.NullString
	CreatedAt  int64
}

func (q *Queries) CreateCampaign(ctx context.Context, arg CreateCampaignParams) (Campaign, error) {
	row := q.db.QueryRowContext(ctx, createCampaign,
		arg.Name,
		arg.ClientName,
		arg.Market,
		arg.Objective,
		arg.CreatedAt,
	)
	var i Campaign
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.ClientName,
		&i.Market,
		&i.Objective,
		&i.CreatedAt,
	)
	return i, err
}

const getCampaign = `
SELECT id, name, client_name, market, objective, created_at
FROM campaigns
WHERE id = ?
`

func (q *Queries) GetCampaign(ctx context.Context, id int64) (Campaign, error) {
	row := q.db.QueryRowContext(ctx, getCampaign, id)
	var i Campaign
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.ClientName,
		&i.Market,
		&i.Objective,
		&i.CreatedAt,
	)
	return i, err
}

const listCampaigns = `
SELECT id, name, client_name, market, objective, created_at
FROM campaigns
ORDER BY created_at DESC
`

func (q *Queries) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	rows, err := q.db.QueryContext(ctx, listCampaigns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Campaign
	for rows.Next() {
		var i Campaign
		err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.ClientName,
			&i.Market,
			&i.Objective,
			&i.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertCreator = `
INSERT INTO creators (name, handle, platform, follower_count, demographics_json, last_seen_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (handle, platform) DO UPDATE SET
    name = coalesce(nullif(excluded.name, ''), name),
    follower_count = coalesce(excluded.follower_count, follower_count),
    demographics_json = coalesce(excluded.demographics_json, demographics_json),
    last_seen_at = excluded.last_seen_at
RETURNING id, name, handle, platform, follower_count, demographics_json, last_seen_at
`

type UpsertCreatorParams struct {
	Name             string
	Handle           string
	Platform         string
	FollowerCount    sql.NullInt64
	DemographicsJson sql.NullString
	LastSeenAt       int64
}

func (q *Queries) UpsertCreator(ctx context.Context, arg UpsertCreatorParams) (Creator, error) {
	row := q.db.QueryRowContext(ctx, upsertCreator,
		arg.Name,
		arg.Handle,
		arg.Platform,
		arg.FollowerCount,
		arg.DemographicsJson,
		arg.LastSeenAt,
	)
	var i Creator
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Handle,
		&i.Platform,
		&i.FollowerCount,
		&i.DemographicsJson,
		&i.LastSeenAt,
	)
	return i, err
}

const getCreator = `
SELECT id, name, handle, platform, follower_count, demographics_json, last_seen_at
FROM creators
WHERE id = ?
`

func (q *Queries) GetCreator(ctx context.Context, id int64) (Creator, error) {
	row := q.db.QueryRowContext(ctx, getCreator, id)
	var i Creator
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Handle,
		&i.Platform,
		&i.FollowerCount,
		&i.DemographicsJson,
		&i.LastSeenAt,
	)
	return i, err
}

const getCreatorByIdentity = `
SELECT id, name, handle, platform, follower_count, demographics_json, last_seen_at
FROM creators
WHERE handle = ? AND platform = ?
`

type GetCreatorByIdentityParams struct {
	Handle   string
	Platform string
}

func (q *Queries) GetCreatorByIdentity(ctx context.Context, arg GetCreatorByIdentityParams) (Creator, error) {
	row := q.db.QueryRowContext(ctx, getCreatorByIdentity, arg.Handle, arg.Platform)
	var i Creator
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Handle,
		&i.Platform,
		&i.FollowerCount,
		&i.DemographicsJson,
		&i.LastSeenAt,
	)
	return i, err
}

const listCreators = `
SELECT id, name, handle, platform, follower_count, last_seen_at
FROM creators
ORDER BY last_seen_at DESC
LIMIT ?
`

type ListCreatorsRow struct {
	ID            int64
	Name          string
	Handle        string
	Platform      string
	FollowerCount sql.NullInt64
	LastSeenAt    int64
}

func (q *Queries) ListCreators(ctx context.Context, limit int64) ([]ListCreatorsRow, error) {
	rows, err := q.db.QueryContext(ctx, listCreators, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCreatorsRow
	for rows.Next() {
		var i ListCreatorsRow
		err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Handle,
			&i.Platform,
			&i.FollowerCount,
			&i.LastSeenAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const searchCreators = `
SELECT id, name, handle, platform, follower_count, last_seen_at
FROM creators
WHERE lower(name) LIKE ?
   OR lower(handle) LIKE ?
   OR lower(platform) LIKE ?
ORDER BY last_seen_at DESC
LIMIT ?
`

type SearchCreatorsParams struct {
	Search string
	Limit  int64
}

func (q *Queries) SearchCreators(ctx context.Context, arg SearchCreatorsParams) ([]ListCreatorsRow, error) {
	rows, err := q.db.QueryContext(ctx, searchCreators,
		arg.Search,
		arg.Search,
		arg.Search,
		arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCreatorsRow
	for rows.Next() {
		var i ListCreatorsRow
		err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Handle,
			&i.Platform,
			&i.FollowerCount,
			&i.LastSeenAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const ensureCampaignCreator = `
INSERT INTO campaign_creators (campaign_id, creator_id, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (campaign_id, creator_id) DO UPDATE SET
    updated_at = excluded.updated_at
RETURNING id, campaign_id, creator_id, reach_score, interest_score, engagement_rate, engagement_score, content_balance, organic_posts_l2m, sponsored_posts_l2m, saturation_rate, content_originality, content_creativity, content_score, authority_score, values_score, total_score, qualitative_notes, created_at, updated_at
`

type EnsureCampaignCreatorParams struct {
	CampaignID int64
	CreatorID  int64
	CreatedAt  int64
	UpdatedAt  int64
}

func (q *Queries) EnsureCampaignCreator(ctx context.Context, arg EnsureCampaignCreatorParams) (CampaignCreator, error) {
	row := q.db.QueryRowContext(ctx, ensureCampaignCreator,
		arg.CampaignID,
		arg.CreatorID,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanCampaignCreator(row)
}

const getCampaignCreator = `
SELECT id, campaign_id, creator_id, reach_score, interest_score, engagement_rate, engagement_score, content_balance, organic_posts_l2m, sponsored_posts_l2m, saturation_rate, content_originality, content_creativity, content_score, authority_score, values_score, total_score, qualitative_notes, created_at, updated_at
FROM campaign_creators
WHERE id = ?
`

func (q *Queries) GetCampaignCreator(ctx context.Context, id int64) (CampaignCreator, error) {
	row := q.db.QueryRowContext(ctx, getCampaignCreator, id)
	return scanCampaignCreator(row)
}

func scanCampaignCreator(row *sql.Row) (CampaignCreator, error) {
	var i CampaignCreator
	err := row.Scan(
		&i.ID,
		&i.CampaignID,
		&i.CreatorID,
		&i.ReachScore,
		&i.InterestScore,
		&i.EngagementRate,
		&i.EngagementScore,
		&i.ContentBalance,
		&i.OrganicPostsL2m,
		&i.SponsoredPostsL2m,
		&i.SaturationRate,
		&i.ContentOriginality,
		&i.ContentCreativity,
		&i.ContentScore,
		&i.AuthorityScore,
		&i.ValuesScore,
		&i.TotalScore,
		&i.QualitativeNotes,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const saveCampaignCreatorScores = `
UPDATE campaign_creators SET
    reach_score = ?,
    interest_score = ?,
    engagement_rate = ?,
    engagement_score = ?,
    content_balance = ?,
    organic_posts_l2m = ?,
    sponsored_posts_l2m = ?,
    saturation_rate = ?,
    content_originality = ?,
    content_creativity = ?,
    content_score = ?,
    authority_score = ?,
    values_score = ?,
    total_score = ?,
    qualitative_notes = ?,
    updated_at = ?
WHERE id = ?
`

type SaveCampaignCreatorScoresParams struct {
	ReachScore         sql.NullFloat64
	InterestScore      sql.NullFloat64
	EngagementRate     sql.NullFloat64
	EngagementScore    sql.NullFloat64
	ContentBalance     sql.NullFloat64
	OrganicPostsL2m    sql.NullFloat64
	SponsoredPostsL2m  sql.NullFloat64
	SaturationRate     sql.NullFloat64
	ContentOriginality sql.NullFloat64
	ContentCreativity  sql.NullFloat64
	ContentScore       sql.NullFloat64
	AuthorityScore     sql.NullFloat64
	ValuesScore        sql.NullFloat64
	TotalScore         sql.NullFloat64
	QualitativeNotes   sql.NullString
	UpdatedAt          int64
	ID                 int64
}

func (q *Queries) SaveCampaignCreatorScores(ctx context.Context, arg SaveCampaignCreatorScoresParams) error {
	_, err := q.db.ExecContext(ctx, saveCampaignCreatorScores,
		arg.ReachScore,
		arg.InterestScore,
		arg.EngagementRate,
		arg.EngagementScore,
		arg.ContentBalance,
		arg.OrganicPostsL2m,
		arg.SponsoredPostsL2m,
		arg.SaturationRate,
		arg.ContentOriginality,
		arg.ContentCreativity,
		arg.ContentScore,
		arg.AuthorityScore,
		arg.ValuesScore,
		arg.TotalScore,
		arg.QualitativeNotes,
		arg.UpdatedAt,
		arg.ID,
	)
	return err
}

const listCampaignCreators = `
SELECT
    cc.id, cc.campaign_id, cc.creator_id,
    c.name, c.handle, c.platform, c.follower_count, c.demographics_json,
    cc.reach_score, cc.interest_score, cc.engagement_rate, cc.engagement_score,
    cc.content_balance, cc.organic_posts_l2m, cc.sponsored_posts_l2m, cc.saturation_rate,
    cc.content_originality, cc.content_creativity, cc.content_score,
    cc.authority_score, cc.values_score, cc.total_score,
    cc.qualitative_notes, cc.updated_at
FROM campaign_creators cc
JOIN creators c ON c.id = cc.creator_id
WHERE cc.campaign_id = ?
ORDER BY c.name ASC
`

type ListCampaignCreatorsRow struct {
	ID                 int64
	CampaignID         int64
	CreatorID          int64
	Name               string
	Handle             string
	Platform           string
	FollowerCount      sql.NullInt64
	DemographicsJson   sql.NullString
	ReachScore         sql.NullFloat64
	InterestScore      sql.NullFloat64
	EngagementRate     sql.NullFloat64
	EngagementScore    sql.NullFloat64
	ContentBalance     sql.NullFloat64
	OrganicPostsL2m    sql.NullFloat64
	SponsoredPostsL2m  sql.NullFloat64
	SaturationRate     sql.NullFloat64
	ContentOriginality sql.NullFloat64
	ContentCreativity  sql.NullFloat64
	ContentScore       sql.NullFloat64
	AuthorityScore     sql.NullFloat64
	ValuesScore        sql.NullFloat64
	TotalScore         sql.NullFloat64
	QualitativeNotes   sql.NullString
	UpdatedAt          int64
}

func (q *Queries) ListCampaignCreators(ctx context.Context, campaignID int64) ([]ListCampaignCreatorsRow, error) {
	rows, err := q.db.QueryContext(ctx, listCampaignCreators, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCampaignCreatorsRow
	for rows.Next() {
		var i ListCampaignCreatorsRow
		err := rows.Scan(
			&i.ID,
			&i.CampaignID,
			&i.CreatorID,
			&i.Name,
			&i.Handle,
			&i.Platform,
			&i.FollowerCount,
			&i.DemographicsJson,
			&i.ReachScore,
			&i.InterestScore,
			&i.EngagementRate,
			&i.EngagementScore,
			&i.ContentBalance,
			&i.OrganicPostsL2m,
			&i.SponsoredPostsL2m,
			&i.SaturationRate,
			&i.ContentOriginality,
			&i.ContentCreativity,
			&i.ContentScore,
			&i.AuthorityScore,
			&i.ValuesScore,
			&i.TotalScore,
			&i.QualitativeNotes,
			&i.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const logImport = `
INSERT INTO import_records (campaign_id, publish_link, platform, status, raw_payload, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (campaign_id, publish_link) DO UPDATE SET
    platform = excluded.platform,
    status = excluded.status,
    raw_payload = excluded.raw_payload,
    updated_at = excluded.updated_at
RETURNING id, campaign_id, publish_link, platform, status, raw_payload, created_at, updated_at
`

type LogImportParams struct {
	CampaignID  int64
	PublishLink string
	Platform    sql.NullString
	Status      string
	RawPayload  sql.NullString
	CreatedAt   int64
	UpdatedAt   int64
}

func (q *Queries) LogImport(ctx context.Context, arg LogImportParams) (ImportRecord, error) {
	row := q.db.QueryRowContext(ctx, logImport,
		arg.CampaignID,
		arg.PublishLink,
		arg.Platform,
		arg.Status,
		arg.RawPayload,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i ImportRecord
	err := row.Scan(
		&i.ID,
		&i.CampaignID,
		&i.PublishLink,
		&i.Platform,
		&i.Status,
		&i.RawPayload,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listImports = `
SELECT id, campaign_id, publish_link, platform, status, raw_payload, created_at, updated_at
FROM import_records
WHERE campaign_id = ?
ORDER BY created_at DESC
`

func (q *Queries) ListImports(ctx context.Context, campaignID int64) ([]ImportRecord, error) {
	rows, err := q.db.QueryContext(ctx, listImports, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ImportRecord
	for rows.Next() {
		var i ImportRecord
		err := rows.Scan(
			&i.ID,
			&i.CampaignID,
			&i.PublishLink,
			&i.Platform,
			&i.Status,
			&i.RawPayload,
			&i.CreatedAt,
			&i.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
