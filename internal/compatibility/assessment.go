package compatibility

import "math"

const (
	FactorVision        = "long_term_vision"
	FactorCommitment    = "full_time_commitment"
	FactorRoles         = "role_complementarity"
	FactorCommunication = "communication_style"
	FactorRisk          = "risk_appetite"
	FactorStage         = "current_stage"
)

// Factor weights sum to 1 when every answer is present.
const (
	weightVision        = 0.25
	weightCommitment    = 0.20
	weightRoles         = 0.20
	weightCommunication = 0.15
	weightRisk          = 0.10
	weightStage         = 0.10
)

const (
	minScore = 60
	maxScore = 98

	// neutralScore is used when both founders completed the assessment
	// but no single answer can be compared.
	neutralScore = 70
	// neutralRolesScore is used when either role list cannot be decoded.
	neutralRolesScore = 70
)

// Factor is one evaluated term of the assessment model.
type Factor struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Score  float64 `json:"score"`
}

// Contribution is the factor's share of the weighted sum.
func (f Factor) Contribution() float64 {
	return f.Score * f.Weight
}

// ScoreAssessment scores two founders who both completed the assessment.
// The result lies in [60, 98].
func ScoreAssessment(a, b *FounderProfile) int {
	score, _ := scoreAssessment(a, b)
	return score
}

func scoreAssessment(a, b *FounderProfile) (int, []Factor) {
	factors := assessmentFactors(a, b)

	var total, weights float64
	for _, f := range factors {
		total += f.Contribution()
		weights += f.Weight
	}

	final := float64(neutralScore)
	if weights > 0 {
		final = total / weights
	}

	return clamp(int(math.Round(final))), factors
}

func assessmentFactors(a, b *FounderProfile) []Factor {
	factors := make([]Factor, 0, 6)

	if va, ok := present(a.LongTermVision); ok {
		if vb, ok := present(b.LongTermVision); ok {
			factors = append(factors, Factor{Name: FactorVision, Weight: weightVision, Score: visionScore(va, vb)})
		}
	}

	if a.FullTimeReady != nil && b.FullTimeReady != nil {
		s := 40.0
		if *a.FullTimeReady == *b.FullTimeReady {
			s = 100
		}
		factors = append(factors, Factor{Name: FactorCommitment, Weight: weightCommitment, Score: s})
	}

	if ra, ok := present(a.PreferredRoles); ok {
		if rb, ok := present(b.PreferredRoles); ok {
			factors = append(factors, Factor{Name: FactorRoles, Weight: weightRoles, Score: rolesScore(ra, rb)})
		}
	}

	if ca, ok := present(a.CommunicationStyleAssessment); ok {
		if cb, ok := present(b.CommunicationStyleAssessment); ok {
			factors = append(factors, Factor{Name: FactorCommunication, Weight: weightCommunication, Score: communicationScore(ca, cb)})
		}
	}

	// Zero is outside the 1-10 scale and counts as unanswered.
	if a.RiskAppetite != nil && b.RiskAppetite != nil && *a.RiskAppetite != 0 && *b.RiskAppetite != 0 {
		diff := math.Abs(float64(*a.RiskAppetite - *b.RiskAppetite))
		factors = append(factors, Factor{Name: FactorRisk, Weight: weightRisk, Score: math.Max(50, 100-diff*8)})
	}

	if sa, ok := present(a.CurrentStage); ok {
		if sb, ok := present(b.CurrentStage); ok {
			s := 70.0
			if sa == sb {
				s = 95
			}
			factors = append(factors, Factor{Name: FactorStage, Weight: weightStage, Score: s})
		}
	}

	return factors
}

func visionScore(a, b string) float64 {
	switch {
	case a == b:
		return 100
	case pairOf(a, b, "Lifestyle", "Niche problem"):
		return 80
	default:
		return 60
	}
}

func communicationScore(a, b string) float64 {
	switch {
	case a == b:
		return 90
	case pairOf(a, b, "Direct", "Detailed"):
		return 75
	default:
		return 60
	}
}

func rolesScore(rawA, rawB string) float64 {
	rolesA, err := ParseRoles(rawA)
	if err != nil {
		return neutralRolesScore
	}
	rolesB, err := ParseRoles(rawB)
	if err != nil {
		return neutralRolesScore
	}

	overlap := roleOverlap(rolesA, rolesB)
	if overlap == 0 {
		return 100
	}
	return math.Max(30, 100-float64(overlap)*20)
}

// roleOverlap counts distinct roles listed by both founders.
func roleOverlap(a, b []string) int {
	inB := make(map[string]struct{}, len(b))
	for _, r := range b {
		inB[r] = struct{}{}
	}

	seen := make(map[string]struct{}, len(a))
	overlap := 0
	for _, r := range a {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		if _, ok := inB[r]; ok {
			overlap++
		}
	}
	return overlap
}

// pairOf reports whether {a, b} is the unordered pair {x, y}.
func pairOf(a, b, x, y string) bool {
	return (a == x && b == y) || (a == y && b == x)
}

func clamp(score int) int {
	return max(minScore, min(maxScore, score))
}
