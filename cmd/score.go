package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cofounder-match/internal/compatibility"
	"github.com/spigell/cofounder-match/internal/founders"
	"github.com/spigell/cofounder-match/internal/logger"
)

var scoreCmd = &cobra.Command{
	Use:   "score <founder> [<other founder>]",
	Short: "Score two founders against each other",
	Long: `Score prints the compatibility of two founders given by id or email.
With a single argument the founder is scored against the current founder (--me).`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		score(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().Bool("explain", false, "print every evaluated factor")
}

func score(cmd *cobra.Command, args []string) {
	lg := newLogger()

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	source, err := newSource(context.Background(), config, lg)
	if err != nil {
		lg.Fatal("preparing founders source", zap.Error(err))
	}

	current, candidate, err := resolvePair(source, config.Source.Me, args)
	if err != nil {
		lg.Fatal("resolving founders", zap.Error(err))
	}

	result := compatibility.Evaluate(current, candidate)

	lg.Debug("scored founders",
		append(logger.ResultFields(result),
			zap.String("current", current.ID),
			zap.String("candidate", candidate.ID),
		)...,
	)

	fmt.Println(compatibility.Label(result.Score))

	if flagIsSet(cmd, "explain") {
		fmt.Println(explain(result))
	}
}

// resolvePair maps command arguments to the two founders to score.
func resolvePair(source founders.Source, me string, args []string) (*compatibility.FounderProfile, *compatibility.FounderProfile, error) {
	currentRef, candidateRef := me, args[0]
	if len(args) == 2 {
		currentRef, candidateRef = args[0], args[1]
	}

	current, err := source.Me(currentRef)
	if err != nil {
		return nil, nil, fmt.Errorf("current founder: %w", err)
	}

	candidate, err := source.Me(candidateRef)
	if err != nil {
		return nil, nil, fmt.Errorf("founder %q: %w", candidateRef, err)
	}

	return current, candidate, nil
}

type explanation struct {
	Score         int                   `json:"score"`
	Variant       compatibility.Variant `json:"variant"`
	Factors       []explainedFactor     `json:"factors,omitempty"`
	AvgDifference float64               `json:"avg_difference,omitempty"`
}

type explainedFactor struct {
	Name         string  `json:"name"`
	Weight       float64 `json:"weight"`
	Score        float64 `json:"score"`
	Contribution float64 `json:"contribution"`
}

func explain(result compatibility.Result) string {
	out := explanation{
		Score:         result.Score,
		Variant:       result.Variant,
		AvgDifference: result.AvgDifference,
	}
	for _, factor := range result.Factors {
		out.Factors = append(out.Factors, explainedFactor{
			Name:         factor.Name,
			Weight:       factor.Weight,
			Score:        factor.Score,
			Contribution: factor.Contribution(),
		})
	}

	// do not bother error since every field is a plain value
	pretty, _ := json.MarshalIndent(out, "", "  ")
	return string(pretty)
}
