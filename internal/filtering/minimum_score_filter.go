package filtering

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spigell/cofounder-match/internal/compatibility"
	"github.com/spigell/cofounder-match/internal/founders"
)

type minimumScoreFilter struct {
	minimum int
}

// NewMinimumScore creates a filter that removes scored founders below minimum.
// Founders without a score are left to the incomplete filter.
func NewMinimumScore(minimum int) Filter {
	return &minimumScoreFilter{minimum: minimum}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Disable(string) {}

func (f *minimumScoreFilter) IsEnabled() bool { return true }

func (f *minimumScoreFilter) Validate() error {
	if f.minimum < 0 || f.minimum > compatibility.SelfMatch {
		return fmt.Errorf("minimum score %d is outside [0, %d]", f.minimum, compatibility.SelfMatch)
	}
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, c *founders.Candidates) (*founders.Candidates, Step, error) {
	initial := c.Len()
	if f.minimum == 0 {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	excluded := c.ExcludeFunc(func(candidate *founders.Candidate) bool {
		score := candidate.Result.Score
		return score != compatibility.NoData && score < f.minimum
	})

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: true,
		Details: map[string]string{"minimum_score": strconv.Itoa(f.minimum)},
	}
}
