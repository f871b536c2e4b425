package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/cofounder-match/internal/founders"
)

const showDecidedMsg = "show-decided flag is set"

type decidedFilter struct {
	deps   *DecidedDeps
	path   string
	ignore bool
}

type DecidedDeps struct {
	Logger *zap.Logger
}

type DecidedConfig struct {
	// Path is the decision log. Empty disables the lookup.
	Path   string
	Ignore bool
}

// NewDecided creates a filter that removes founders already liked or passed.
func NewDecided(cfg *DecidedConfig, deps *DecidedDeps) Filter {
	f := &decidedFilter{deps: deps}
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.Path)
		f.ignore = cfg.Ignore
	}
	return f
}

func (f *decidedFilter) Name() string { return "decided" }

func (f *decidedFilter) Disable(string) {}

func (f *decidedFilter) IsEnabled() bool { return true }

func (f *decidedFilter) Validate() error {
	if f.deps == nil || f.deps.Logger == nil {
		return fmt.Errorf("logger is required")
	}

	return nil
}

func (f *decidedFilter) Apply(_ context.Context, c *founders.Candidates) (*founders.Candidates, Step, error) {
	initial := c.Len()
	if f.ignore {
		f.deps.Logger.Info("showing already decided founders", zap.String("reason", showDecidedMsg))
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	if f.path == "" {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	decisions, err := founders.LoadDecisions(f.path)
	if err != nil {
		return c, Step{}, fmt.Errorf("load decisions: %w", err)
	}

	excluded := c.Exclude(decisions.Keys())
	if len(excluded) > 0 {
		f.deps.Logger.Info("excluding founders based on my decisions",
			zap.Strings("excluded_founders", excluded),
			zap.Int("founders_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *decidedFilter) Status() Status {
	details := map[string]string{
		"exclude_decided": strconv.FormatBool(!f.ignore),
	}
	if f.path != "" {
		details["path"] = f.path
	}
	reason := ""
	if f.ignore {
		reason = "skip requested via flag"
	}
	return Status{Name: f.Name(), Enabled: true, Reason: reason, Details: details}
}
