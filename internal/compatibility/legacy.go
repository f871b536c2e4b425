package compatibility

import "math"

// legacyBase and legacyPenalty shape the Big Five model: identical answers land
// at 95 and every point of average trait distance costs 12.
const (
	legacyBase    = 95
	legacyPenalty = 12
)

// ScoreLegacy scores two founders from their Big Five quiz results.
// Both profiles must carry QuizScores. The result lies in [60, 98]; moderate
// differences are rewarded as complementary rather than penalised to zero.
func ScoreLegacy(a, b *FounderProfile) int {
	score, _ := scoreLegacy(a, b)
	return score
}

func scoreLegacy(a, b *FounderProfile) (int, float64) {
	avg := averageDifference(a.QuizScores, b.QuizScores)
	raw := legacyBase - avg*legacyPenalty
	return clamp(int(math.Round(raw))), avg
}

func averageDifference(a, b *QuizScores) float64 {
	diffs := [...]float64{
		math.Abs(a.Openness - b.Openness),
		math.Abs(a.Conscientiousness - b.Conscientiousness),
		math.Abs(a.Extraversion - b.Extraversion),
		math.Abs(a.Agreeableness - b.Agreeableness),
		math.Abs(a.RiskTolerance - b.RiskTolerance),
	}

	var sum float64
	for _, d := range diffs {
		sum += d
	}
	return sum / float64(len(diffs))
}
