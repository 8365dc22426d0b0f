package db

import (
	"database/sql"
)

type Campaign struct {
	ID         int64
	Name       string
	ClientName sql.NullString
	Market     sql.NullString
	Objective  sql.NullString
	CreatedAt  int64
}

type Creator struct {
	ID               int64
	Name             string
	Handle           string
	Platform         string
	FollowerCount    sql.NullInt64
	DemographicsJson sql.NullString
	LastSeenAt       int64
}

type CampaignCreator struct {
	ID                 int64
	CampaignID         int64
	CreatorID          int64
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
	CreatedAt          int64
	UpdatedAt          int64
}

type ImportRecord struct {
	ID          int64
	CampaignID  int64
	PublishLink string
	Platform    sql.NullString
	Status      string
	RawPayload  sql.NullString
	CreatedAt   int64
	UpdatedAt   int64
}
