package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/cofounder-match/internal/compatibility"
	"github.com/spigell/cofounder-match/internal/filtering"
	"github.com/spigell/cofounder-match/internal/founders"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

type fakeSource struct {
	*founders.FileSource
	liked []string
	err   error
}

func (f *fakeSource) Like(id string) error {
	if f.err != nil {
		return f.err
	}
	f.liked = append(f.liked, id)
	return nil
}

func testPool() *founders.FileSource {
	assessed := func(id, vision string) *compatibility.FounderProfile {
		return &compatibility.FounderProfile{
			ID:                  id,
			Name:                strings.ToUpper(id),
			AssessmentCompleted: true,
			LongTermVision:      strPtr(vision),
			FullTimeReady:       boolPtr(true),
		}
	}

	return &founders.FileSource{
		Path: "pool.json",
		Profiles: &founders.Profiles{Items: []*compatibility.FounderProfile{
			assessed("me", "unicorn"),
			assessed("bob", "lifestyle"),
			assessed("alice", "unicorn"),
			{ID: "ghost", Email: "ghost@example.com"},
		}},
	}
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:   "file source",
			config: &Config{Source: &SourceConfig{File: "profiles.json", Me: "me"}},
		},
		{
			name:   "api source without me",
			config: &Config{Source: &SourceConfig{API: &APIConfig{URL: "https://api.example.com"}}},
		},
		{
			name:    "file source needs me",
			config:  &Config{Source: &SourceConfig{File: "profiles.json"}},
			wantErr: true,
		},
		{
			name:    "no source",
			config:  &Config{},
			wantErr: true,
		},
		{
			name:    "empty source",
			config:  &Config{Source: &SourceConfig{}},
			wantErr: true,
		},
		{
			name:    "bad api url",
			config:  &Config{Source: &SourceConfig{API: &APIConfig{URL: "not a url"}}},
			wantErr: true,
		},
		{
			name:    "minimum score above 100",
			config:  &Config{Source: &SourceConfig{File: "profiles.json", Me: "me"}, MinimumScore: 101},
			wantErr: true,
		},
		{
			name:   "retries turned off",
			config: &Config{Source: &SourceConfig{API: &APIConfig{URL: "https://api.example.com", MaxRetries: intPtr(0)}}},
		},
		{
			name:    "negative retries",
			config:  &Config{Source: &SourceConfig{API: &APIConfig{URL: "https://api.example.com", MaxRetries: intPtr(-1)}}},
			wantErr: true,
		},
		{
			name:    "too many retries",
			config:  &Config{Source: &SourceConfig{API: &APIConfig{URL: "https://api.example.com", MaxRetries: intPtr(11)}}},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := validateConfig(tc.config)
			if tc.wantErr && err == nil {
				t.Fatalf("expected an error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRankCandidates(t *testing.T) {
	t.Parallel()

	me, candidates, err := rankCandidates(testPool(), "me", zap.NewNop())
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if me.ID != "me" {
		t.Fatalf("unexpected current founder %q", me.ID)
	}

	got := strings.Join(candidates.IDs(), ",")
	if got != "me,alice,bob,ghost" {
		t.Fatalf("unexpected ranking %s", got)
	}
}

func TestDiscoverFiltersPipeline(t *testing.T) {
	t.Parallel()

	_, candidates, err := rankCandidates(testPool(), "me", zap.NewNop())
	if err != nil {
		t.Fatalf("rank: %v", err)
	}

	filters := prepareFilters(nil, &Config{MinimumScore: 80}, zap.NewNop())
	filtered, err := filters.RunFilters(context.Background(), candidates)
	if err != nil {
		t.Fatalf("filters: %v", err)
	}

	// alice shares every answer, bob differs on vision and scores 78.
	if got := strings.Join(filtered.IDs(), ","); got != "alice" {
		t.Fatalf("unexpected candidates after filters %s", got)
	}
}

func TestDecideRecordsAndLikes(t *testing.T) {
	t.Parallel()

	source := &fakeSource{FileSource: testPool()}
	_, candidates, err := rankCandidates(source, "me", zap.NewNop())
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	candidates.Exclude([]string{"me"})

	path := filepath.Join(t.TempDir(), "decisions.json")
	config := &Config{DecisionsFile: path}

	if err := handleAction(PromptLike, source, zap.NewNop(), config, candidates); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := handleAction(PromptPass, source, zap.NewNop(), config, candidates); err != nil {
		t.Fatalf("pass: %v", err)
	}

	if len(source.liked) != 1 || source.liked[0] != "alice" {
		t.Fatalf("unexpected remote likes %v", source.liked)
	}

	if got := strings.Join(candidates.IDs(), ","); got != "ghost" {
		t.Fatalf("decided founders must leave the list, got %s", got)
	}

	decisions, err := founders.LoadDecisions(path)
	if err != nil {
		t.Fatalf("load decisions: %v", err)
	}
	if decisions.Len() != 2 {
		t.Fatalf("expected 2 decisions, got %d", decisions.Len())
	}
	if decisions.Items[0].Decision != founders.DecisionLike || decisions.Items[1].Decision != founders.DecisionPass {
		t.Fatalf("unexpected decisions %+v %+v", decisions.Items[0], decisions.Items[1])
	}
}

func TestDecideKeepsFounderWhenLikeFails(t *testing.T) {
	t.Parallel()

	source := &fakeSource{FileSource: testPool(), err: errors.New("boom")}
	_, candidates, err := rankCandidates(source, "me", zap.NewNop())
	if err != nil {
		t.Fatalf("rank: %v", err)
	}

	before := candidates.Len()
	if err := handleAction(PromptLike, source, zap.NewNop(), &Config{}, candidates); err == nil {
		t.Fatalf("expected like error")
	}
	if candidates.Len() != before {
		t.Fatalf("founder must stay in the list when like fails")
	}
}

func TestPassAll(t *testing.T) {
	t.Parallel()

	_, candidates, err := rankCandidates(testPool(), "me", zap.NewNop())
	if err != nil {
		t.Fatalf("rank: %v", err)
	}

	path := filepath.Join(t.TempDir(), "decisions.json")
	if err := handleAction(PromptAppendAllDecisions, testPool(), zap.NewNop(), &Config{DecisionsFile: path}, candidates); err != nil {
		t.Fatalf("pass all: %v", err)
	}

	if candidates.Len() != 0 {
		t.Fatalf("expected empty list, got %v", candidates.IDs())
	}

	decisions, err := founders.LoadDecisions(path)
	if err != nil {
		t.Fatalf("load decisions: %v", err)
	}
	if decisions.Len() != 4 {
		t.Fatalf("expected 4 decisions, got %d", decisions.Len())
	}
}

func TestHandleActionExit(t *testing.T) {
	t.Parallel()

	err := handleAction(PromptExit, testPool(), zap.NewNop(), &Config{}, &founders.Candidates{})
	if !errors.Is(err, errExit) {
		t.Fatalf("expected errExit, got %v", err)
	}

	if err := handleAction("unknown", testPool(), zap.NewNop(), &Config{}, &founders.Candidates{}); err == nil {
		t.Fatalf("expected invalid action error")
	}
}

func TestResolvePair(t *testing.T) {
	t.Parallel()

	current, candidate, err := resolvePair(testPool(), "me", []string{"alice"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if current.ID != "me" || candidate.ID != "alice" {
		t.Fatalf("unexpected pair %s/%s", current.ID, candidate.ID)
	}

	current, candidate, err = resolvePair(testPool(), "me", []string{"bob", "ghost@example.com"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if current.ID != "bob" || candidate.ID != "ghost" {
		t.Fatalf("unexpected pair %s/%s", current.ID, candidate.ID)
	}

	if _, _, err := resolvePair(testPool(), "me", []string{"nobody"}); err == nil {
		t.Fatalf("expected error for unknown founder")
	}
}

func TestExplain(t *testing.T) {
	t.Parallel()

	pool := testPool()
	result := compatibility.Evaluate(pool.Profiles.Items[0], pool.Profiles.Items[2])

	var out explanation
	if err := json.Unmarshal([]byte(explain(result)), &out); err != nil {
		t.Fatalf("explain output is not json: %v", err)
	}

	if out.Variant != compatibility.VariantAssessment {
		t.Fatalf("unexpected variant %s", out.Variant)
	}
	if len(out.Factors) != 2 {
		t.Fatalf("expected vision and commitment factors, got %+v", out.Factors)
	}
	for _, factor := range out.Factors {
		if factor.Contribution != factor.Score*factor.Weight {
			t.Fatalf("unexpected contribution for %s", factor.Name)
		}
	}
}

func TestNewSourceMaxRetries(t *testing.T) {
	t.Setenv(tokenEnv, "")

	tokenFile := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(tokenFile, []byte("secret\n"), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}

	build := func(retries *int) *founders.Client {
		t.Helper()

		config := &Config{Source: &SourceConfig{API: &APIConfig{
			URL:        "https://api.example.com",
			TokenFile:  tokenFile,
			MaxRetries: retries,
		}}}
		source, err := newSource(context.Background(), config, zap.NewNop())
		if err != nil {
			t.Fatalf("new source: %v", err)
		}
		client, ok := source.(*founders.Client)
		if !ok {
			t.Fatalf("expected an api client, got %T", source)
		}
		return client
	}

	if got := build(intPtr(0)).MaxRetries; got != 0 {
		t.Fatalf("zero must turn retries off, got %d", got)
	}
	if got := build(intPtr(5)).MaxRetries; got != 5 {
		t.Fatalf("expected 5 retries, got %d", got)
	}
	if got, def := build(nil).MaxRetries, founders.New(context.Background(), nil, "", "").MaxRetries; got != def {
		t.Fatalf("unset must keep the default %d, got %d", def, got)
	}
}

func TestPrepareFiltersShowIncomplete(t *testing.T) {
	t.Parallel()

	_, candidates, err := rankCandidates(testPool(), "me", zap.NewNop())
	if err != nil {
		t.Fatalf("rank: %v", err)
	}

	filters := prepareFilters(nil, &Config{ShowIncomplete: true}, zap.NewNop())
	for _, status := range filters.Describe() {
		if status.Name == filtering.IncompleteFilterName && status.Enabled {
			t.Fatalf("incomplete filter must be disabled")
		}
	}

	filtered, err := filters.RunFilters(context.Background(), candidates)
	if err != nil {
		t.Fatalf("filters: %v", err)
	}
	if got := strings.Join(filtered.IDs(), ","); got != "alice,bob,ghost" {
		t.Fatalf("unexpected candidates %s", got)
	}
}

func emailOnlySource() *fakeSource {
	return &fakeSource{FileSource: &founders.FileSource{
		Path: "pool.json",
		Profiles: &founders.Profiles{Items: []*compatibility.FounderProfile{
			{ID: "me"},
			{Email: "a@x.com", Name: "A"},
			{Email: "b@x.com", Name: "B"},
			{Email: "c@x.com", Name: "C"},
		}},
	}}
}

func TestDecideEmailOnlyFounders(t *testing.T) {
	t.Parallel()

	source := emailOnlySource()
	_, candidates, err := rankCandidates(source, "me", zap.NewNop())
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	candidates.Exclude([]string{"me"})

	path := filepath.Join(t.TempDir(), "decisions.json")
	config := &Config{DecisionsFile: path}

	if err := handleAction(PromptPass, source, zap.NewNop(), config, candidates); err != nil {
		t.Fatalf("pass: %v", err)
	}
	if candidates.Len() != 2 {
		t.Fatalf("only the passed founder must leave, got %d left", candidates.Len())
	}

	// Without an id the like stays local.
	if err := handleAction(PromptLike, source, zap.NewNop(), config, candidates); err != nil {
		t.Fatalf("like: %v", err)
	}
	if len(source.liked) != 0 {
		t.Fatalf("unexpected remote likes %v", source.liked)
	}
	if candidates.Len() != 1 || candidates.Items[0].Key() != "c@x.com" {
		t.Fatalf("unexpected founders left %v", candidates.Items)
	}

	decisions, err := founders.LoadDecisions(path)
	if err != nil {
		t.Fatalf("load decisions: %v", err)
	}
	if got := strings.Join(decisions.Keys(), ","); got != "a@x.com,b@x.com" {
		t.Fatalf("unexpected decided founders %s", got)
	}

	// The next run hides only the decided founders.
	_, next, err := rankCandidates(source, "me", zap.NewNop())
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	filtered, err := prepareFilters(nil, &Config{DecisionsFile: path, ShowIncomplete: true}, zap.NewNop()).RunFilters(context.Background(), next)
	if err != nil {
		t.Fatalf("filters: %v", err)
	}
	if filtered.Len() != 1 || filtered.Items[0].Key() != "c@x.com" {
		t.Fatalf("unexpected founders after filters %d", filtered.Len())
	}
}
