// Package compatibility predicts how well two founders would work together.
//
// Scores are integer percentages. Two values sit outside the regular [60, 98]
// band on purpose: 100 means both profiles describe the same founder, and 0
// means there is not enough shared data to compute anything.
package compatibility

import "fmt"

const (
	// SelfMatch is returned when both profiles describe the same founder.
	SelfMatch = 100
	// NoData is returned when the founders share no scoring variant.
	NoData = 0
)

// Variant names the model that produced a score.
type Variant string

const (
	VariantNone       Variant = "none"
	VariantSelf       Variant = "self"
	VariantAssessment Variant = "assessment"
	VariantLegacy     Variant = "legacy"
)

// Result explains a score.
type Result struct {
	Score   int      `json:"score"`
	Variant Variant  `json:"variant"`
	Factors []Factor `json:"factors,omitempty"`
	// AvgDifference is set for the legacy variant only.
	AvgDifference float64 `json:"avgDifference,omitempty"`
}

// Calculate returns the compatibility percentage of candidate for current.
func Calculate(current, candidate *FounderProfile) int {
	return Evaluate(current, candidate).Score
}

// Evaluate is Calculate with the variant and factor breakdown attached.
func Evaluate(current, candidate *FounderProfile) Result {
	if IsSameFounder(current, candidate) {
		return Result{Score: SelfMatch, Variant: VariantSelf}
	}

	switch {
	case HasAssessment(current) && HasAssessment(candidate):
		score, factors := scoreAssessment(current, candidate)
		return Result{Score: score, Variant: VariantAssessment, Factors: factors}
	case HasLegacy(current) && HasLegacy(candidate):
		score, avg := scoreLegacy(current, candidate)
		return Result{Score: score, Variant: VariantLegacy, AvgDifference: avg}
	default:
		return Result{Score: NoData, Variant: VariantNone}
	}
}

// Label renders a score the way the discovery screen shows it.
func Label(score int) string {
	if score <= NoData {
		return "Complete Assessment"
	}
	return fmt.Sprintf("%d%% Match", score)
}
