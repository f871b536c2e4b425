package filtering

import (
	"context"

	"github.com/spigell/cofounder-match/internal/compatibility"
	"github.com/spigell/cofounder-match/internal/founders"
)

type selfFilter struct{}

// NewSelf creates a filter that removes the current founder from the pool.
func NewSelf() Filter {
	return &selfFilter{}
}

func (f *selfFilter) Name() string { return "self" }

func (f *selfFilter) Disable(string) {}

func (f *selfFilter) IsEnabled() bool { return true }

func (f *selfFilter) Validate() error { return nil }

func (f *selfFilter) Apply(_ context.Context, c *founders.Candidates) (*founders.Candidates, Step, error) {
	initial := c.Len()
	excluded := c.ExcludeFunc(func(candidate *founders.Candidate) bool {
		return candidate.Result.Variant == compatibility.VariantSelf
	})

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}
