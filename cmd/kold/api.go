package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"truevibe-backend/services/ingestion"
	"truevibe-backend/services/kolstore"
	"truevibe-backend/services/kolstore/db"
	"truevibe-backend/services/linker"
	"truevibe-backend/services/scoring"
)

// API exposes campaign, import, creator and scoring operations over
// plain JSON endpoints.
type API struct {
	store     kolstore.Service
	ingestion ingestion.Service
	linker    linker.Service
}

func (a API) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/campaigns", a.createCampaign)
	mux.HandleFunc("GET /v1/campaigns", a.listCampaigns)
	mux.HandleFunc("GET /v1/campaigns/{id}", a.getCampaign)
	mux.HandleFunc("GET /v1/campaigns/{id}/creators", a.listCampaignCreators)
	mux.HandleFunc("GET /v1/campaigns/{id}/imports", a.listImports)
	mux.HandleFunc("POST /v1/campaigns/{id}/import", a.importSource)
	mux.HandleFunc("POST /v1/associations/{id}/scores", a.saveScores)
	mux.HandleFunc("GET /v1/creators", a.listCreators)
	mux.HandleFunc("GET /v1/links/cross-platform", a.crossPlatformLinks)
	mux.HandleFunc("GET /v1/links/duplicates", a.duplicateSuggestions)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Warn("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func readJSON(w http.ResponseWriter, r *http.Request, out any) bool {
	err := json.NewDecoder(r.Body).Decode(out)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

type campaignBody struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ClientName *string `json:"client_name"`
	Market     *string `json:"market"`
	Objective  *string `json:"objective"`
	CreatedAt  int64   `json:"created_at"`
}

func campaignToBody(c db.Campaign) campaignBody {
	return campaignBody{
		ID:         c.ID,
		Name:       c.Name,
		ClientName: nullString(c.ClientName),
		Market:     nullString(c.Market),
		Objective:  nullString(c.Objective),
		CreatedAt:  c.CreatedAt,
	}
}

func (a API) createCampaign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		ClientName string `json:"client_name"`
		Market     string `json:"market"`
		Objective  string `json:"objective"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	campaign, err := a.store.CreateCampaign(r.Context(), req.Name, req.ClientName, req.Market, req.Objective)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, campaignToBody(campaign))
}

func (a API) listCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := a.store.ListCampaigns(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	body := make([]campaignBody, len(campaigns))
	for i, c := range campaigns {
		body[i] = campaignToBody(c)
	}
	writeJSON(w, http.StatusOK, body)
}

func (a API) getCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	campaign, err := a.store.GetCampaign(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, campaignToBody(campaign))
}

func (a API) importSource(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		PublishLink string `json:"publish_link"`
		UseDom      bool   `json:"use_dom"`
		WithDetails bool   `json:"with_details"`
		MaxProfiles int    `json:"max_profiles"`
		DetailLimit int    `json:"detail_limit"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if req.PublishLink == "" {
		writeError(w, http.StatusBadRequest, errors.New("publish_link is required"))
		return
	}
	if _, err := a.store.GetCampaign(r.Context(), campaignID); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	summary, err := a.ingestion.ImportFromSource(r.Context(), campaignID, req.PublishLink, ingestion.ImportOptions{
		UseDom:      req.UseDom,
		WithDetails: req.WithDetails,
		MaxProfiles: req.MaxProfiles,
		DetailLimit: req.DetailLimit,
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"imported": summary.Imported,
		"warnings": summary.Warnings,
	})
}

func (a API) listCreators(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		limit = parsed
	}

	rows, err := a.store.ListBySearch(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	type creatorBody struct {
		ID            int64  `json:"id"`
		Name          string `json:"name"`
		Handle        string `json:"handle"`
		Platform      string `json:"platform"`
		FollowerCount *int64 `json:"follower_count"`
		LastSeenAt    int64  `json:"last_seen_at"`
	}
	body := make([]creatorBody, len(rows))
	for i, row := range rows {
		body[i] = creatorBody{
			ID:            row.ID,
			Name:          row.Name,
			Handle:        row.Handle,
			Platform:      row.Platform,
			FollowerCount: nullInt(row.FollowerCount),
			LastSeenAt:    row.LastSeenAt,
		}
	}
	writeJSON(w, http.StatusOK, body)
}

func (a API) listCampaignCreators(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathID(w, r)
	if !ok {
		return
	}
	rows, err := a.store.ListCampaignCreators(r.Context(), campaignID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	type rosterBody struct {
		AssociationID    int64           `json:"association_id"`
		CreatorID        int64           `json:"creator_id"`
		Name             string          `json:"name"`
		Handle           string          `json:"handle"`
		Platform         string          `json:"platform"`
		FollowerCount    *int64          `json:"follower_count"`
		Demographics     json.RawMessage `json:"demographics"`
		ReachScore       *float64        `json:"reach_score"`
		InterestScore    *float64        `json:"interest_score"`
		EngagementRate   *float64        `json:"engagement_rate"`
		EngagementScore  *float64        `json:"engagement_score"`
		ContentBalance   *float64        `json:"content_balance"`
		SaturationRate   *float64        `json:"saturation_rate"`
		ContentScore     *float64        `json:"content_score"`
		AuthorityScore   *float64        `json:"authority_score"`
		ValuesScore      *float64        `json:"values_score"`
		TotalScore       *float64        `json:"total_score"`
		QualitativeNotes *string         `json:"qualitative_notes"`
		UpdatedAt        int64           `json:"updated_at"`
	}
	body := make([]rosterBody, len(rows))
	for i, row := range rows {
		var demographics json.RawMessage
		if row.DemographicsJson.Valid {
			demographics = json.RawMessage(row.DemographicsJson.String)
		}
		body[i] = rosterBody{
			AssociationID:    row.ID,
			CreatorID:        row.CreatorID,
			Name:             row.Name,
			Handle:           row.Handle,
			Platform:         row.Platform,
			FollowerCount:    nullInt(row.FollowerCount),
			Demographics:     demographics,
			ReachScore:       nullFloat(row.ReachScore),
			InterestScore:    nullFloat(row.InterestScore),
			EngagementRate:   nullFloat(row.EngagementRate),
			EngagementScore:  nullFloat(row.EngagementScore),
			ContentBalance:   nullFloat(row.ContentBalance),
			SaturationRate:   nullFloat(row.SaturationRate),
			ContentScore:     nullFloat(row.ContentScore),
			AuthorityScore:   nullFloat(row.AuthorityScore),
			ValuesScore:      nullFloat(row.ValuesScore),
			TotalScore:       nullFloat(row.TotalScore),
			QualitativeNotes: nullString(row.QualitativeNotes),
			UpdatedAt:        row.UpdatedAt,
		}
	}
	writeJSON(w, http.StatusOK, body)
}

func (a API) listImports(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathID(w, r)
	if !ok {
		return
	}
	records, err := a.store.ListImports(r.Context(), campaignID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	type importBody struct {
		ID          int64           `json:"id"`
		PublishLink string          `json:"publish_link"`
		Platform    *string         `json:"platform"`
		Status      string          `json:"status"`
		RawPayload  json.RawMessage `json:"raw_payload"`
		CreatedAt   int64           `json:"created_at"`
		UpdatedAt   int64           `json:"updated_at"`
	}
	body := make([]importBody, len(records))
	for i, record := range records {
		var payload json.RawMessage
		if record.RawPayload.Valid {
			payload = json.RawMessage(record.RawPayload.String)
		}
		body[i] = importBody{
			ID:          record.ID,
			PublishLink: record.PublishLink,
			Platform:    nullString(record.Platform),
			Status:      record.Status,
			RawPayload:  payload,
			CreatedAt:   record.CreatedAt,
			UpdatedAt:   record.UpdatedAt,
		}
	}
	writeJSON(w, http.StatusOK, body)
}

type scoreRequest struct {
	// recompute reach/interest/engagement from the stored profile and
	// the campaign objective instead of taking them from this body
	Derive bool `json:"derive"`
	// persist the blended engagement score instead of the raw one
	SaveBlended bool `json:"save_blended"`

	ReachScore      float64 `json:"reach_score"`
	InterestScore   float64 `json:"interest_score"`
	EngagementRate  float64 `json:"engagement_rate"`
	EngagementScore float64 `json:"engagement_score"`

	ContentOriginality float64  `json:"content_originality"`
	ContentCreativity  float64  `json:"content_creativity"`
	OrganicPostsL2M    *float64 `json:"organic_posts_l2m"`
	SponsoredPostsL2M  *float64 `json:"sponsored_posts_l2m"`

	AuthorityOverall float64 `json:"authority_overall"`
	ValuesOverall    float64 `json:"values_overall"`
	QualitativeNotes string  `json:"qualitative_notes"`
}

func (a API) saveScores(w http.ResponseWriter, r *http.Request) {
	associationID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req scoreRequest
	if !readJSON(w, r, &req) {
		return
	}

	association, err := a.store.GetAssociation(r.Context(), associationID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	inputs := scoring.ScoreInputs{
		ReachScore:         req.ReachScore,
		InterestScore:      req.InterestScore,
		EngagementRate:     req.EngagementRate,
		EngagementScore:    req.EngagementScore,
		ContentOriginality: req.ContentOriginality,
		ContentCreativity:  req.ContentCreativity,
		OrganicPostsL2M:    req.OrganicPostsL2M,
		SponsoredPostsL2M:  req.SponsoredPostsL2M,
		AuthorityOverall:   req.AuthorityOverall,
		ValuesOverall:      req.ValuesOverall,
		QualitativeNotes:   req.QualitativeNotes,
	}

	if req.Derive {
		creator, err := a.store.GetCreator(r.Context(), association.CreatorID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		campaign, err := a.store.GetCampaign(r.Context(), association.CampaignID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		// rows imported before demographics backfill have nothing to
		// derive from, so replay whatever was saved last time
		var scorer scoring.Scorer = scoring.DerivedScorer{}
		if creator.Profile.Demographics.IsZero() {
			scorer = scoring.StoredScorer{Stored: scoring.QuantScores{
				ReachScore:      association.ReachScore.Float64,
				InterestScore:   association.InterestScore.Float64,
				EngagementRate:  association.EngagementRate.Float64,
				EngagementScore: association.EngagementScore.Float64,
			}}
		}
		quant := scorer.Derive(
			creator.Profile.FollowerCount,
			creator.Profile.Demographics,
			campaign.Objective.String,
		)
		inputs.ReachScore = quant.ReachScore
		inputs.InterestScore = quant.InterestScore
		inputs.EngagementRate = quant.EngagementRate
		inputs.EngagementScore = quant.EngagementScore
	}

	payload := scoring.BuildScorePayload(inputs)
	if req.SaveBlended {
		inputs.EngagementScore = scoring.BlendedEngagementScore(payload.EngagementScore, payload.ContentBalance)
		payload = scoring.BuildScorePayload(inputs)
	}

	err = a.store.SaveScores(r.Context(), associationID, payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reach_score":      payload.ReachScore,
		"interest_score":   payload.InterestScore,
		"engagement_rate":  payload.EngagementRate,
		"engagement_score": payload.EngagementScore,
		"content_score":    payload.ContentScore,
		"content_balance":  payload.ContentBalance,
		"saturation_rate":  payload.SaturationRate,
		"authority_score":  payload.AuthorityScore,
		"values_score":     payload.ValuesScore,
		"total_score":      payload.TotalScore,
	})
}

func (a API) crossPlatformLinks(w http.ResponseWriter, r *http.Request) {
	links, err := a.linker.LinkAcrossPlatforms(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

func (a API) duplicateSuggestions(w http.ResponseWriter, r *http.Request) {
	var minCorrelation float64
	if raw := r.URL.Query().Get("min"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		minCorrelation = parsed
	}

	suggestions, err := a.linker.SuggestDuplicates(r.Context(), minCorrelation)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}
