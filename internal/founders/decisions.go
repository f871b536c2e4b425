package founders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spigell/cofounder-match/internal/compatibility"
)

type Decision string

const (
	DecisionLike Decision = "like"
	DecisionPass Decision = "pass"
)

// Decisions is the local swipe history. Founders listed here are not shown again.
type Decisions struct {
	Items []*DecisionRecord
}

type DecisionRecord struct {
	FounderID    string                `json:"founder_id,omitempty"`
	FounderEmail string                `json:"founder_email,omitempty"`
	Name         string                `json:"name,omitempty"`
	Decision     Decision              `json:"decision"`
	Score        int                   `json:"score"`
	Variant      compatibility.Variant `json:"variant,omitempty"`
	DecidedAt    time.Time             `json:"decided_at"`
}

// Decide records decision for every candidate in the list.
func (c *Candidates) Decide(decision Decision) *Decisions {
	decisions := &Decisions{}
	now := time.Now().UTC()
	for _, candidate := range c.Items {
		decisions.Items = append(decisions.Items, &DecisionRecord{
			FounderID:    candidate.ID(),
			FounderEmail: candidate.Profile.Email,
			Name:         candidate.DisplayName(),
			Decision:     decision,
			Score:        candidate.Result.Score,
			Variant:      candidate.Result.Variant,
			DecidedAt:    now,
		})
	}
	return decisions
}

// LoadDecisions reads the swipe history. A missing or empty file is an empty history.
func LoadDecisions(path string) (*Decisions, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Decisions{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Decisions{}, nil
	}

	var decisions Decisions
	if err := json.NewDecoder(file).Decode(&decisions); err != nil {
		return nil, fmt.Errorf("decode decisions %s: %w", path, err)
	}
	return &decisions, nil
}

func (d *Decisions) Append(s *Decisions) {
	d.Items = append(d.Items, s.Items...)
}

func (d *Decisions) Len() int {
	return len(d.Items)
}

// Key matches Candidate.Key for the decided founder.
func (r *DecisionRecord) Key() string {
	return founderKey(r.FounderID, r.FounderEmail)
}

// Keys lists the decided founders. Records without an id or email are skipped.
func (d *Decisions) Keys() []string {
	keys := make([]string, 0, len(d.Items))
	for _, record := range d.Items {
		if key := record.Key(); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func (d *Decisions) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
