package compatibility

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

func uniformQuiz(v float64) *QuizScores {
	return &QuizScores{
		Openness:          v,
		Conscientiousness: v,
		Extraversion:      v,
		Agreeableness:     v,
		RiskTolerance:     v,
	}
}

func TestCalculateSelfMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b *FounderProfile
	}{
		{
			name: "same id without any data",
			a:    &FounderProfile{ID: "f1"},
			b:    &FounderProfile{ID: "f1"},
		},
		{
			name: "same email with different ids",
			a:    &FounderProfile{ID: "f1", Email: "ada@example.com"},
			b:    &FounderProfile{ID: "f2", Email: "ada@example.com"},
		},
		{
			name: "same id wins over assessment data",
			a:    &FounderProfile{ID: "f1", AssessmentCompleted: true, LongTermVision: strPtr("Lifestyle")},
			b:    &FounderProfile{ID: "f1", AssessmentCompleted: true, LongTermVision: strPtr("Venture scale")},
		},
		{
			name: "same id wins over legacy data",
			a:    &FounderProfile{ID: "f1", QuizScores: uniformQuiz(0)},
			b:    &FounderProfile{ID: "f1", QuizScores: uniformQuiz(100)},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Evaluate(tt.a, tt.b)
			assert.Equal(t, SelfMatch, res.Score)
			assert.Equal(t, VariantSelf, res.Variant)
		})
	}
}

func TestCalculateProfileWithItself(t *testing.T) {
	p := &FounderProfile{ID: "f1", QuizScores: uniformQuiz(40)}
	assert.Equal(t, 100, Calculate(p, p))
}

func TestCalculateEmptyIdentityIsNotSelf(t *testing.T) {
	a := &FounderProfile{}
	b := &FounderProfile{}
	assert.Equal(t, NoData, Calculate(a, b))
}

func TestCalculateNoData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b *FounderProfile
	}{
		{
			name: "nothing on either side",
			a:    &FounderProfile{ID: "a"},
			b:    &FounderProfile{ID: "b"},
		},
		{
			name: "assessment on one side only",
			a:    &FounderProfile{ID: "a", AssessmentCompleted: true, CurrentStage: strPtr("Idea")},
			b:    &FounderProfile{ID: "b", CurrentStage: strPtr("Idea")},
		},
		{
			name: "mixed eligibility",
			a:    &FounderProfile{ID: "a", AssessmentCompleted: true},
			b:    &FounderProfile{ID: "b", QuizScores: uniformQuiz(50)},
		},
		{
			name: "nil candidate",
			a:    &FounderProfile{ID: "a", QuizScores: uniformQuiz(50)},
			b:    nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Evaluate(tt.a, tt.b)
			assert.Equal(t, NoData, res.Score)
			assert.Equal(t, VariantNone, res.Variant)
		})
	}
}

func TestCalculateAssessmentTakesPriority(t *testing.T) {
	a := &FounderProfile{
		ID:                  "a",
		AssessmentCompleted: true,
		LongTermVision:      strPtr("Venture scale"),
		QuizScores:          uniformQuiz(50),
	}
	b := &FounderProfile{
		ID:                  "b",
		AssessmentCompleted: true,
		LongTermVision:      strPtr("Venture scale"),
		QuizScores:          uniformQuiz(50),
	}

	require.Equal(t, 95, ScoreLegacy(a, b))
	require.Equal(t, 98, ScoreAssessment(a, b))

	res := Evaluate(a, b)
	assert.Equal(t, 98, res.Score)
	assert.Equal(t, VariantAssessment, res.Variant)
}

func TestCalculateFallsBackToLegacy(t *testing.T) {
	a := &FounderProfile{ID: "a", QuizScores: uniformQuiz(50)}
	b := &FounderProfile{ID: "b", AssessmentCompleted: true, QuizScores: uniformQuiz(50)}

	res := Evaluate(a, b)
	assert.Equal(t, 95, res.Score)
	assert.Equal(t, VariantLegacy, res.Variant)
	assert.Zero(t, res.AvgDifference)
}

func TestCalculateRangeInvariant(t *testing.T) {
	visions := []string{"", "Lifestyle", "Niche problem", "Venture scale"}
	styles := []string{"", "Direct", "Detailed", "Collaborative"}
	stages := []string{"", "Idea", "MVP", "Revenue"}
	roles := []string{"", `["Product"]`, `["Engineering","Sales"]`, `["Product","Engineering","Sales","Design"]`, "not json"}

	rnd := rand.New(rand.NewSource(42))
	pick := func(values []string) *string {
		v := values[rnd.Intn(len(values))]
		if v == "" {
			return nil
		}
		return &v
	}
	random := func(id string) *FounderProfile {
		p := &FounderProfile{
			ID:                           id,
			AssessmentCompleted:          rnd.Intn(3) != 0,
			LongTermVision:               pick(visions),
			CommunicationStyleAssessment: pick(styles),
			CurrentStage:                 pick(stages),
			PreferredRoles:               pick(roles),
		}
		if rnd.Intn(2) == 0 {
			p.FullTimeReady = boolPtr(rnd.Intn(2) == 0)
		}
		if rnd.Intn(2) == 0 {
			p.RiskAppetite = intPtr(rnd.Intn(11))
		}
		if rnd.Intn(2) == 0 {
			p.QuizScores = &QuizScores{
				Openness:          rnd.Float64() * 100,
				Conscientiousness: rnd.Float64() * 100,
				Extraversion:      rnd.Float64() * 100,
				Agreeableness:     rnd.Float64() * 100,
				RiskTolerance:     rnd.Float64() * 100,
			}
		}
		return p
	}

	for i := 0; i < 2000; i++ {
		res := Evaluate(random("a"), random("b"))
		if res.Variant == VariantNone {
			assert.Equal(t, NoData, res.Score)
			continue
		}
		assert.GreaterOrEqual(t, res.Score, 60)
		assert.LessOrEqual(t, res.Score, 98)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Complete Assessment", Label(NoData))
	assert.Equal(t, "76% Match", Label(76))
	assert.Equal(t, "100% Match", Label(SelfMatch))
}
