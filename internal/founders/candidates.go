package founders

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spigell/cofounder-match/internal/compatibility"
)

// Candidate is a founder shown on the discovery screen, scored against the
// current founder.
type Candidate struct {
	Profile *compatibility.FounderProfile `json:"profile"`
	Result  compatibility.Result          `json:"result"`
}

func (c *Candidate) ID() string {
	return c.Profile.ID
}

// Key identifies the candidate across runs: the id, or the email for founders
// listed without one. Empty when the profile carries neither.
func (c *Candidate) Key() string {
	return founderKey(c.Profile.ID, c.Profile.Email)
}

func founderKey(id, email string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return strings.ToLower(strings.TrimSpace(email))
}

// DisplayName falls back to email and then id when the founder has no name.
func (c *Candidate) DisplayName() string {
	switch {
	case c.Profile.Name != "":
		return c.Profile.Name
	case c.Profile.Email != "":
		return c.Profile.Email
	default:
		return c.Profile.ID
	}
}

// Label is the match badge, e.g. "76% Match".
func (c *Candidate) Label() string {
	return compatibility.Label(c.Result.Score)
}

type Candidates struct {
	Items []*Candidate
}

func NewCandidates(pool *Profiles) *Candidates {
	candidates := &Candidates{Items: make([]*Candidate, 0, pool.Len())}
	for _, profile := range pool.Items {
		if profile == nil {
			continue
		}
		candidates.Items = append(candidates.Items, &Candidate{Profile: profile})
	}
	return candidates
}

// Score evaluates every candidate against me.
func (c *Candidates) Score(me *compatibility.FounderProfile) {
	for _, candidate := range c.Items {
		candidate.Result = compatibility.Evaluate(me, candidate.Profile)
	}
}

// Sort ranks candidates by score, highest first. Candidates without a score
// go last; ties keep a stable order by id.
func (c *Candidates) Sort() {
	sort.SliceStable(c.Items, func(i, j int) bool {
		a, b := c.Items[i], c.Items[j]
		if a.Result.Score != b.Result.Score {
			return a.Result.Score > b.Result.Score
		}
		return a.Key() < b.Key()
	})
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) FindByID(id string) *Candidate {
	for _, candidate := range c.Items {
		if candidate.ID() == id {
			return candidate
		}
	}
	return nil
}

func (c *Candidates) IDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, candidate := range c.Items {
		ids = append(ids, candidate.ID())
	}
	return ids
}

// Exclude removes candidates with the given keys, keeping the ranking order,
// and returns the removed keys. Empty keys never match.
func (c *Candidates) Exclude(keys []string) []string {
	targets := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if key = founderKey(key, ""); key != "" {
			targets[key] = struct{}{}
		}
	}
	if len(targets) == 0 {
		return nil
	}

	return c.ExcludeFunc(func(candidate *Candidate) bool {
		key := candidate.Key()
		if key == "" {
			return false
		}
		if _, ok := targets[key]; ok {
			return true
		}
		// Keys logged by email stay valid for founders that gained an id later.
		_, ok := targets[founderKey("", candidate.Profile.Email)]
		return ok
	})
}

// ExcludeFunc removes candidates matching drop, keeping the ranking order.
func (c *Candidates) ExcludeFunc(drop func(*Candidate) bool) []string {
	var excluded []string
	kept := c.Items[:0]
	for _, candidate := range c.Items {
		if drop(candidate) {
			excluded = append(excluded, candidate.Key())
			continue
		}
		kept = append(kept, candidate)
	}

	// Release references held past the new length.
	for i := len(kept); i < len(c.Items); i++ {
		c.Items[i] = nil
	}
	c.Items = kept

	return excluded
}

// ReportByVariant groups candidates by the scoring model that ranked them.
func (c *Candidates) ReportByVariant() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, candidate := range c.Items {
		key := string(candidate.Result.Variant)
		if key == "" {
			key = string(compatibility.VariantNone)
		}

		entry := map[string]string{
			"id":    candidate.ID(),
			"name":  candidate.DisplayName(),
			"match": candidate.Label(),
		}
		if candidate.Profile.Headline != "" {
			entry["headline"] = candidate.Profile.Headline
		}
		if candidate.Profile.CurrentStage != nil {
			entry["stage"] = *candidate.Profile.CurrentStage
		}
		for _, factor := range candidate.Result.Factors {
			entry["factor_"+factor.Name] = strconv.FormatFloat(factor.Score, 'f', -1, 64)
		}

		report[key] = append(report[key], entry)
	}
	return report
}

func (c *Candidates) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("encode candidates: %w", err)
	}
	return file.Name(), nil
}
