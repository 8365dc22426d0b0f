// Package scoring turns creator signals and analyst ratings into the
// bounded sub-scores that make up a campaign total.
package scoring

import (
	"math"
	"strings"
	"truevibe-backend/lib/textutil"
	"truevibe-backend/services/profiles"
)

// Clamp bounds a sub-score to the [1, 5] scale.
func Clamp(score float64) float64 {
	return math.Max(1.0, math.Min(5.0, score))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// ReachScore is a step function of follower count. The score is the
// value of the highest boundary met; null or non-positive counts
// score the floor of 1.0.
func ReachScore(followerCount *int64) float64 {
	if followerCount == nil || *followerCount <= 0 {
		return 1.0
	}
	thresholds := []struct {
		boundary int64
		score    float64
	}{
		{10_000, 2.0},
		{50_000, 3.0},
		{200_000, 4.0},
		{500_000, 4.5},
		{1_000_000, 5.0},
	}
	score := 1.5
	for _, t := range thresholds {
		if *followerCount >= t.boundary {
			score = t.score
		}
	}
	return round2(math.Min(score, 5.0))
}

// InterestScore buckets the keyword overlap between a creator's topic
// text and the campaign objective. Either side being empty yields a
// neutral 3.0.
func InterestScore(topicText, objectiveText string) float64 {
	topicTokens := textutil.KeywordSet(topicText)
	objectiveTokens := textutil.KeywordSet(objectiveText)
	if len(topicTokens) == 0 || len(objectiveTokens) == 0 {
		return 3.0
	}
	overlap := 0
	for token := range topicTokens {
		if _, ok := objectiveTokens[token]; ok {
			overlap++
		}
	}
	switch {
	case overlap >= 3:
		return 5.0
	case overlap == 2:
		return 4.0
	case overlap == 1:
		return 3.5
	}
	return 2.5
}

// engagement keys in priority order
var engagementRateKeys = []string{
	"Instagram Engagement Rate",
	"TikTok Engagement Rate",
	"Engagement Rate",
}

// ExtractEngagementRate pulls the first parseable engagement
// percentage out of a crawled details map, absent rates read as 0.
func ExtractEngagementRate(details map[string]any) float64 {
	if details == nil {
		return 0.0
	}
	for _, key := range engagementRateKeys {
		value, ok := details[key]
		if !ok || value == nil {
			continue
		}
		text, ok := value.(string)
		if !ok {
			continue
		}
		if !strings.Contains(text, "%") {
			continue
		}
		if rate, ok := textutil.ParsePercentage(text); ok {
			return rate
		}
	}
	return 0.0
}

// EngagementScoreFromRate buckets an engagement percentage onto the
// five-point scale.
func EngagementScoreFromRate(ratePercent float64) float64 {
	switch {
	case ratePercent >= 6.0:
		return 5.0
	case ratePercent >= 4.0:
		return 4.0
	case ratePercent >= 2.0:
		return 3.0
	case ratePercent >= 1.0:
		return 2.0
	case ratePercent > 0:
		return 1.5
	}
	return 1.0
}

type QuantScores struct {
	ReachScore      float64
	InterestScore   float64
	EngagementRate  float64
	EngagementScore float64
}

// Scorer derives the quantitative sub-scores for one creator. Two
// implementations exist: DerivedScorer recomputes from profile data,
// StoredScorer replays previously saved values for deployments that
// have not backfilled profile demographics yet.
type Scorer interface {
	Derive(followerCount *int64, demographics profiles.Demographics, campaignObjective string) QuantScores
}

type DerivedScorer struct{}

func (DerivedScorer) Derive(followerCount *int64, demographics profiles.Demographics, campaignObjective string) QuantScores {
	details := demographics.Details

	topicParts := []string{
		strings.Join(demographics.Tags, " "),
		strings.Join(demographics.Categories, " "),
		strings.Join(demographics.SubCategories, " "),
		textutil.CollectText(details["Tags"]),
		textutil.CollectText(details["Category"]),
	}
	var nonEmpty []string
	for _, part := range topicParts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	topicText := strings.Join(nonEmpty, " ")

	objective := campaignObjective
	if objective == "" {
		objective = textutil.CollectText(details["About"])
	}

	rate := ExtractEngagementRate(details)
	return QuantScores{
		ReachScore:      round2(ReachScore(followerCount)),
		InterestScore:   round2(InterestScore(topicText, objective)),
		EngagementRate:  round4(rate),
		EngagementScore: round2(EngagementScoreFromRate(rate)),
	}
}

// StoredScorer ignores profile data and echoes the scores already on
// the association row, substituting neutral defaults for gaps.
type StoredScorer struct {
	Stored QuantScores
}

func (s StoredScorer) Derive(*int64, profiles.Demographics, string) QuantScores {
	out := s.Stored
	if out.ReachScore == 0 {
		out.ReachScore = 3.0
	}
	if out.InterestScore == 0 {
		out.InterestScore = 3.0
	}
	if out.EngagementScore == 0 {
		out.EngagementScore = 3.0
	}
	return out
}
