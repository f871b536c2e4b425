package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cofounder-match/internal/compatibility"
	"github.com/spigell/cofounder-match/internal/filtering"
	"github.com/spigell/cofounder-match/internal/founders"
	"github.com/spigell/cofounder-match/internal/logger"
)

const (
	PromptLike               = "Like"
	PromptPass               = "Pass"
	PromptReportByVariant    = "Report by variant"
	PromptCandidatesToFile   = "Dump candidates to file"
	PromptExit               = "Exit"
	PromptAppendAllDecisions = "Pass on all remaining candidates"
)

var errExit = errors.New("exit requested")

// liker is implemented by sources that can record a like remotely.
type liker interface {
	Like(candidateID string) error
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Score, rank and swipe through potential co-founders",
	Run: func(cmd *cobra.Command, _ []string) {
		discover(cmd)
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().BoolP("auto", "y", false, "print the ranked list without asking for decisions")
	discoverCmd.Flags().BoolP("show-decided", "f", false, "do not hide founders already liked or passed")
	discoverCmd.Flags().StringP("decisions-file", "e", "", "file with the decision log. Default is unset.")
	discoverCmd.Flags().Int("minimum-score", 0, "hide scored founders below this score")
	discoverCmd.Flags().Bool("show-incomplete", false, "keep founders without comparable data")

	viper.BindPFlag("decisions-file", discoverCmd.Flags().Lookup("decisions-file"))
	viper.BindPFlag("minimum-score", discoverCmd.Flags().Lookup("minimum-score"))
	viper.BindPFlag("show-incomplete", discoverCmd.Flags().Lookup("show-incomplete"))
}

// discover is the main command for the cli.
func discover(cmd *cobra.Command) {
	ctx := context.Background()

	lg := newLogger()

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	lg.Info("starting the cofounder-match", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	lg.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	source, err := newSource(ctx, config, lg)
	if err != nil {
		lg.Fatal("preparing founders source",
			zap.Error(err),
			zap.String("hint", "set source.file or source.api.url and COFOUNDER_TOKEN_FILE"),
		)
	}

	me, candidates, err := rankCandidates(source, config.Source.Me, lg)
	if err != nil {
		lg.Fatal("ranking candidates", zap.Error(err))
	}

	if candidates.Len() == 0 {
		lg.Info("exiting", zap.String("reason", "no founders found"))
		return
	}

	filters := prepareFilters(cmd, config, lg)

	filtered, err := filters.RunFilters(ctx, candidates)
	if err != nil {
		lg.Fatal("filtering failed", zap.Error(err))
	}
	candidates = filtered

	if candidates.Len() == 0 {
		lg.Info("exiting", zap.String("reason", "no founders left after filters"))
		return
	}

	if flagIsSet(cmd, "auto") {
		printRanking(candidates)
		return
	}

	lg = logger.WithFounder(lg, me)

	for candidates.Len() > 0 {
		current := candidates.Items[0]
		lg.Info("next founder",
			append(logger.ResultFields(current.Result),
				zap.String("name", current.DisplayName()),
				zap.String("match", current.Label()),
				zap.Int("left", candidates.Len()),
			)...,
		)

		prompt := promptui.Select{
			Label: fmt.Sprintf("%s (%s)", current.DisplayName(), current.Label()),
			Items: []string{PromptLike, PromptPass, PromptReportByVariant, PromptCandidatesToFile, PromptAppendAllDecisions, PromptExit},
		}

		_, action, err := prompt.Run()
		if err != nil {
			lg.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, source, lg, config, candidates); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			lg.Fatal("exiting", zap.Error(err))
		}
	}

	lg.Info("exiting", zap.String("reason", "no founders left"))
}

// rankCandidates scores the pool against the current founder and sorts it.
func rankCandidates(source founders.Source, ref string, lg *zap.Logger) (*compatibility.FounderProfile, *founders.Candidates, error) {
	me, err := source.Me(ref)
	if err != nil {
		return nil, nil, fmt.Errorf("getting current founder: %w", err)
	}

	lg.Info("found current founder", logger.FounderFields(me)...)

	pool, err := source.Candidates()
	if err != nil {
		return nil, nil, fmt.Errorf("getting founders: %w", err)
	}

	lg.Info("getting founders", zap.Int("count", pool.Len()))

	candidates := founders.NewCandidates(pool)
	candidates.Score(me)
	candidates.Sort()

	return me, candidates, nil
}

func handleAction(action string, source founders.Source, lg *zap.Logger, config *Config, candidates *founders.Candidates) error {
	switch action {
	case PromptLike:
		return decide(candidates, founders.DecisionLike, source, lg, config.DecisionsFile)
	case PromptPass:
		return decide(candidates, founders.DecisionPass, source, lg, config.DecisionsFile)
	case PromptAppendAllDecisions:
		return passAll(candidates, lg, config.DecisionsFile)
	case PromptReportByVariant:
		pretty, _ := json.MarshalIndent(candidates.ReportByVariant(), "", "  ")
		lg.Info(string(pretty), zap.Int("founders count", candidates.Len()))
		return nil
	case PromptCandidatesToFile:
		filename, err := candidates.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		lg.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		lg.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// decide records a decision on the top candidate and removes it from the list.
func decide(candidates *founders.Candidates, decision founders.Decision, source founders.Source, lg *zap.Logger, decisionsFile string) error {
	if candidates.Len() == 0 {
		return nil
	}

	current := candidates.Items[0]
	lg = lg.With(zap.String("candidate", current.Key()))

	if decision == founders.DecisionLike {
		if remote, ok := source.(liker); ok {
			if current.ID() == "" {
				lg.Warn("founder has no id, like is kept locally only")
			} else if err := remote.Like(current.ID()); err != nil {
				return fmt.Errorf("like founder %s: %w", current.ID(), err)
			}
		}
	}

	single := &founders.Candidates{Items: []*founders.Candidate{current}}
	if err := appendDecisions(decisionsFile, single.Decide(decision)); err != nil {
		return err
	}

	candidates.ExcludeFunc(func(candidate *founders.Candidate) bool {
		return candidate == current
	})

	lg.Info("decision recorded",
		zap.String("decision", string(decision)),
		zap.String("name", current.DisplayName()),
	)
	return nil
}

func passAll(candidates *founders.Candidates, lg *zap.Logger, decisionsFile string) error {
	if decisionsFile == "" {
		lg.Warn("decisions file is not set, nothing to append", zap.String("hint", "set decisions-file"))
		return nil
	}

	decisions := candidates.Decide(founders.DecisionPass)
	if err := appendDecisions(decisionsFile, decisions); err != nil {
		return err
	}

	lg.Info("appended to decisions file",
		zap.String("filename", decisionsFile),
		zap.Int("count", decisions.Len()),
	)

	candidates.ExcludeFunc(func(*founders.Candidate) bool { return true })
	return nil
}

// appendDecisions adds decisions to the log at path. An empty path keeps
// decisions in memory only.
func appendDecisions(path string, decisions *founders.Decisions) error {
	if path == "" {
		return nil
	}

	existing, err := founders.LoadDecisions(path)
	if err != nil {
		return err
	}

	existing.Append(decisions)
	return existing.ToFile(path)
}

func prepareFilters(cmd *cobra.Command, config *Config, lg *zap.Logger) *filtering.Filtering {
	steps := []filtering.Filter{
		filtering.NewSelf(),
		filtering.NewDecided(
			&filtering.DecidedConfig{Path: config.DecisionsFile, Ignore: flagIsSet(cmd, "show-decided")},
			&filtering.DecidedDeps{Logger: lg},
		),
		filtering.NewIncomplete(),
		filtering.NewMinimumScore(config.MinimumScore),
	}

	filters := filtering.New(steps, lg)
	if config.ShowIncomplete {
		filters.DisableByName(filtering.IncompleteFilterName, "show-incomplete is set")
	}

	for _, status := range filters.Describe() {
		lg.Debug("filter configured",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	return filters
}

func printRanking(candidates *founders.Candidates) {
	for i, candidate := range candidates.Items {
		line := fmt.Sprintf("%3d. %-14s %s", i+1, candidate.Label(), candidate.DisplayName())
		if candidate.Profile.Headline != "" {
			line += " / " + candidate.Profile.Headline
		}
		fmt.Println(line)
	}
}

func flagIsSet(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	flag := cmd.Flag(name)
	return flag != nil && strings.EqualFold(flag.Value.String(), "true")
}
