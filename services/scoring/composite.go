package scoring

import "strings"

// SaturationRate is the organic-to-sponsored post ratio over the
// rolling two month window. Negative organic counts are clamped to
// zero; the rate is undefined when there are no sponsored posts.
func SaturationRate(organic, sponsored float64) (float64, bool) {
	if sponsored <= 0 {
		return 0, false
	}
	if organic < 0 {
		organic = 0
	}
	return organic / sponsored, true
}

// ContentBalanceScore buckets a saturation rate onto the five-point
// scale; rates below 0.2 (or an undefined rate) yield no score and
// balance is simply not applied.
//
// NOTE: the table is descending, so a higher organic-to-sponsored
// ratio yields a LOWER balance score. Product has been asked to
// confirm the direction; until then the historical thresholds are
// reproduced as-is.
func ContentBalanceScore(rate float64, defined bool) (float64, bool) {
	if !defined {
		return 0, false
	}
	switch {
	case rate >= 0.7:
		return 1.0, true
	case rate >= 0.5:
		return 2.0, true
	case rate >= 0.4:
		return 3.0, true
	case rate >= 0.3:
		return 4.0, true
	case rate >= 0.2:
		return 5.0, true
	}
	return 0, false
}

func average(values ...float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// ContentScore averages the two analyst sliders with the optional
// balance score folded in as a third input when present.
func ContentScore(originality, creativity float64, balance *float64) float64 {
	inputs := []float64{Clamp(originality), Clamp(creativity)}
	if balance != nil {
		inputs = append(inputs, Clamp(*balance))
	}
	return round2(average(inputs...))
}

// BlendedEngagementScore mixes the saturation balance into the raw
// engagement score for display. Without a balance score the raw value
// passes through untouched. The blend is preview-only; the canonical
// engagement score stays whatever the caller chooses to save.
func BlendedEngagementScore(engagementScore float64, balance *float64) float64 {
	if balance == nil {
		return engagementScore
	}
	return round2(0.7*engagementScore + 0.3*Clamp(*balance))
}

// AuthorityScore averages one or more clamped slider inputs. A single
// slider feeds it today but the formula supports more.
func AuthorityScore(components ...float64) float64 {
	if len(components) == 0 {
		return 0.0
	}
	clamped := make([]float64, len(components))
	for i, c := range components {
		clamped[i] = Clamp(c)
	}
	return round2(average(clamped...))
}

func ValuesScore(components ...float64) float64 {
	return AuthorityScore(components...)
}

// TotalScore sums the six sub-scores. engagementScore must be the
// value the caller chose to save (raw or blended); it is not
// recomputed here. Range: 6.0 to 30.0.
func TotalScore(reach, interest, engagementScore, content, authority, values float64) float64 {
	total := Clamp(reach) +
		Clamp(interest) +
		Clamp(engagementScore) +
		content +
		authority +
		values
	return round2(total)
}

// ScoreInputs is everything the analyst and the quantitative scorer
// contribute to one association's score save.
type ScoreInputs struct {
	ReachScore    float64
	InterestScore float64
	// extracted engagement percentage, stored alongside the score
	EngagementRate float64
	// the engagement value to persist and sum into the total; the
	// caller decides whether this is the raw or the blended score
	EngagementScore float64

	ContentOriginality float64
	ContentCreativity  float64

	// rolling two month post counters; nil when unknown
	OrganicPostsL2M   *float64
	SponsoredPostsL2M *float64

	AuthorityOverall float64
	ValuesOverall    float64
	QualitativeNotes string
}

// ScorePayload is the immutable result of one composite scoring pass,
// ready to overwrite an association's score fields in one write.
type ScorePayload struct {
	ReachScore      float64
	InterestScore   float64
	EngagementRate  float64
	EngagementScore float64

	ContentOriginality float64
	ContentCreativity  float64
	ContentBalance     *float64
	ContentScore       float64

	OrganicPostsL2M   *float64
	SponsoredPostsL2M *float64
	SaturationRate    *float64

	AuthorityScore   float64
	ValuesScore      float64
	TotalScore       float64
	QualitativeNotes string
}

// BuildScorePayload derives saturation and balance from the post
// counters, folds the analyst sliders into sub-scores and totals
// everything up.
func BuildScorePayload(in ScoreInputs) ScorePayload {
	var saturation *float64
	var balance *float64
	if in.OrganicPostsL2M != nil && in.SponsoredPostsL2M != nil {
		rate, defined := SaturationRate(*in.OrganicPostsL2M, *in.SponsoredPostsL2M)
		if defined {
			saturation = &rate
		}
		if score, ok := ContentBalanceScore(rate, defined); ok {
			balance = &score
		}
	}

	contentScore := ContentScore(in.ContentOriginality, in.ContentCreativity, balance)
	authorityScore := AuthorityScore(in.AuthorityOverall)
	valuesScore := ValuesScore(in.ValuesOverall)
	totalScore := TotalScore(
		in.ReachScore,
		in.InterestScore,
		in.EngagementScore,
		contentScore,
		authorityScore,
		valuesScore,
	)

	return ScorePayload{
		ReachScore:      round2(Clamp(in.ReachScore)),
		InterestScore:   round2(Clamp(in.InterestScore)),
		EngagementRate:  round4(in.EngagementRate),
		EngagementScore: round2(Clamp(in.EngagementScore)),

		ContentOriginality: round2(Clamp(in.ContentOriginality)),
		ContentCreativity:  round2(Clamp(in.ContentCreativity)),
		ContentBalance:     balance,
		ContentScore:       contentScore,

		OrganicPostsL2M:   in.OrganicPostsL2M,
		SponsoredPostsL2M: in.SponsoredPostsL2M,
		SaturationRate:    saturation,

		AuthorityScore:   authorityScore,
		ValuesScore:      valuesScore,
		TotalScore:       totalScore,
		QualitativeNotes: strings.TrimSpace(in.QualitativeNotes),
	}
}
