package filtering

import (
	"context"

	"github.com/spigell/cofounder-match/internal/compatibility"
	"github.com/spigell/cofounder-match/internal/founders"
)

// IncompleteFilterName names the filter dropping founders without a score.
const IncompleteFilterName = "incomplete"

type incompleteFilter struct {
	enabled bool
	reason  string
}

// NewIncomplete creates a filter that removes founders who cannot be scored
// against the current founder.
func NewIncomplete() Filter {
	return &incompleteFilter{enabled: true}
}

func (f *incompleteFilter) Name() string { return IncompleteFilterName }

func (f *incompleteFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *incompleteFilter) IsEnabled() bool { return f.enabled }

func (f *incompleteFilter) Validate() error { return nil }

func (f *incompleteFilter) Apply(_ context.Context, c *founders.Candidates) (*founders.Candidates, Step, error) {
	initial := c.Len()
	excluded := c.ExcludeFunc(func(candidate *founders.Candidate) bool {
		return candidate.Result.Score == compatibility.NoData
	})

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *incompleteFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason}
}
