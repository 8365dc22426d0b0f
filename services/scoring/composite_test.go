package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func float64p(v float64) *float64 { return &v }

func TestSaturationRate(t *testing.T) {
	rate, defined := SaturationRate(10, 5)
	require.True(t, defined)
	require.Equal(t, 2.0, rate)

	// negative organic clamps to zero
	rate, defined = SaturationRate(-3, 5)
	require.True(t, defined)
	require.Equal(t, 0.0, rate)

	_, defined = SaturationRate(10, 0)
	require.False(t, defined)
	_, defined = SaturationRate(10, -1)
	require.False(t, defined)
}

func TestContentBalanceScore(t *testing.T) {
	for _, tt := range []struct {
		rate  float64
		want  float64
		found bool
	}{
		{0.8, 1.0, true},
		{0.7, 1.0, true},
		{0.55, 2.0, true},
		{0.45, 3.0, true},
		{0.3, 4.0, true},
		{0.25, 5.0, true},
		{0.19, 0, false},
		{0.0, 0, false},
	} {
		score, ok := ContentBalanceScore(tt.rate, true)
		require.Equal(t, tt.found, ok, "rate %v", tt.rate)
		require.Equal(t, tt.want, score, "rate %v", tt.rate)
	}

	_, ok := ContentBalanceScore(0.5, false)
	require.False(t, ok)
}

func TestContentScore(t *testing.T) {
	require.Equal(t, 4.0, ContentScore(4, 4, nil))
	require.Equal(t, 3.5, ContentScore(3, 4, nil))
	require.Equal(t, 4.0, ContentScore(4, 4, float64p(4)))
	require.Equal(t, 3.0, ContentScore(4, 4, float64p(1)))
	// sliders are clamped before averaging
	require.Equal(t, 3.0, ContentScore(9, 0, nil))
}

func TestBlendedEngagementScore(t *testing.T) {
	require.Equal(t, 3.0, BlendedEngagementScore(3.0, nil))
	// 0.7*4 + 0.3*2 = 3.4
	require.Equal(t, 3.4, BlendedEngagementScore(4.0, float64p(2.0)))
}

func TestAuthorityAndValuesScores(t *testing.T) {
	require.Equal(t, 0.0, AuthorityScore())
	require.Equal(t, 4.0, AuthorityScore(4))
	require.Equal(t, 3.5, AuthorityScore(3, 4))
	require.Equal(t, 5.0, AuthorityScore(12))
	require.Equal(t, 4.0, ValuesScore(4))
}

func TestTotalScoreBounds(t *testing.T) {
	// all-minimum inputs
	require.Equal(t, 6.0, TotalScore(1, 1, 1, 1, 1, 1))
	// all-maximum inputs
	require.Equal(t, 30.0, TotalScore(5, 5, 5, 5, 5, 5))
	// quantitative inputs are clamped, qualitative ones trusted
	require.Equal(t, 30.0, TotalScore(9, 9, 9, 5, 5, 5))
}

func TestBuildScorePayload(t *testing.T) {
	payload := BuildScorePayload(ScoreInputs{
		ReachScore:         3.0,
		InterestScore:      5.0,
		EngagementRate:     4.56,
		EngagementScore:    4.0,
		ContentOriginality: 4.0,
		ContentCreativity:  4.0,
		OrganicPostsL2M:    float64p(5),
		SponsoredPostsL2M:  float64p(20),
		AuthorityOverall:   4.0,
		ValuesOverall:      5.0,
		QualitativeNotes:   "  solid fit  ",
	})

	// 5 organic / 20 sponsored = 0.25 -> balance 5.0
	require.NotNil(t, payload.SaturationRate)
	require.Equal(t, 0.25, *payload.SaturationRate)
	require.NotNil(t, payload.ContentBalance)
	require.Equal(t, 5.0, *payload.ContentBalance)

	// content = mean(4, 4, 5)
	require.Equal(t, 4.33, payload.ContentScore)
	require.Equal(t, 4.0, payload.AuthorityScore)
	require.Equal(t, 5.0, payload.ValuesScore)
	require.InDelta(t, 25.33, payload.TotalScore, 1e-9)
	require.Equal(t, "solid fit", payload.QualitativeNotes)
	require.Equal(t, 4.56, payload.EngagementRate)
}

func TestBuildScorePayloadWithoutCounters(t *testing.T) {
	payload := BuildScorePayload(ScoreInputs{
		ReachScore:         1.0,
		InterestScore:      1.0,
		EngagementScore:    1.0,
		ContentOriginality: 1.0,
		ContentCreativity:  1.0,
		AuthorityOverall:   1.0,
		ValuesOverall:      1.0,
	})
	require.Nil(t, payload.SaturationRate)
	require.Nil(t, payload.ContentBalance)
	require.Equal(t, 1.0, payload.ContentScore)
	require.Equal(t, 6.0, payload.TotalScore)
}

func TestBuildScorePayloadUndefinedSaturation(t *testing.T) {
	payload := BuildScorePayload(ScoreInputs{
		ReachScore:         3.0,
		InterestScore:      3.0,
		EngagementScore:    3.0,
		ContentOriginality: 3.0,
		ContentCreativity:  3.0,
		OrganicPostsL2M:    float64p(10),
		SponsoredPostsL2M:  float64p(0),
		AuthorityOverall:   3.0,
		ValuesOverall:      3.0,
	})
	require.Nil(t, payload.SaturationRate)
	require.Nil(t, payload.ContentBalance)
}
