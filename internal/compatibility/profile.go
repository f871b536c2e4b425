package compatibility

import (
	"encoding/json"
	"errors"
	"strings"
)

// FounderProfile is the subset of a founder record the scorer reads.
// Optional fields are pointers; nil means the founder never answered.
type FounderProfile struct {
	ID       string `json:"id,omitempty"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Headline string `json:"headline,omitempty"`

	AssessmentCompleted bool        `json:"assessmentCompleted,omitempty"`
	QuizScores          *QuizScores `json:"quizScores,omitempty"`

	LongTermVision               *string `json:"longTermVision,omitempty"`
	FullTimeReady                *bool   `json:"fullTimeReady,omitempty"`
	PreferredRoles               *string `json:"preferredRoles,omitempty"`
	CommunicationStyleAssessment *string `json:"communicationStyleAssessment,omitempty"`
	RiskAppetite                 *int    `json:"riskAppetite,omitempty"`
	CurrentStage                 *string `json:"currentStage,omitempty"`
}

// QuizScores holds the legacy Big Five quiz results on a 0-100 scale.
// Neuroticism and EmotionalStability are carried but never scored.
type QuizScores struct {
	Openness           float64 `json:"openness"`
	Conscientiousness  float64 `json:"conscientiousness"`
	Extraversion       float64 `json:"extraversion"`
	Agreeableness      float64 `json:"agreeableness"`
	RiskTolerance      float64 `json:"riskTolerance"`
	Neuroticism        float64 `json:"neuroticism,omitempty"`
	EmotionalStability float64 `json:"emotionalStability,omitempty"`
}

var errRolesNotArray = errors.New("preferred roles is not a json array")

// HasAssessment reports whether p submitted the full founder assessment.
func HasAssessment(p *FounderProfile) bool {
	return p != nil && p.AssessmentCompleted
}

// HasLegacy reports whether p carries legacy quiz scores.
func HasLegacy(p *FounderProfile) bool {
	return p != nil && p.QuizScores != nil
}

// IsSameFounder reports whether a and b describe the same person,
// by equal non-empty email or equal non-empty id.
func IsSameFounder(a, b *FounderProfile) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Email != "" && a.Email == b.Email {
		return true
	}
	return a.ID != "" && a.ID == b.ID
}

// ParseRoles decodes a JSON-encoded list of role tags.
func ParseRoles(raw string) ([]string, error) {
	var roles []string
	if err := json.Unmarshal([]byte(raw), &roles); err != nil {
		return nil, err
	}
	// "null" decodes without error but is not a list.
	if roles == nil {
		return nil, errRolesNotArray
	}
	return roles, nil
}

// present returns the value and whether it counts as answered.
// Blank answers are treated as missing; answered values compare verbatim.
func present(s *string) (string, bool) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "", false
	}
	return *s, true
}
