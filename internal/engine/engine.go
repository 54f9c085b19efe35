package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aundre1/incentedge/internal/evaluator"
	"github.com/aundre1/incentedge/internal/stacking"
	"github.com/aundre1/incentedge/pkg/constants"
	"github.com/aundre1/incentedge/pkg/datetime"
	"github.com/aundre1/incentedge/pkg/format"
	"github.com/aundre1/incentedge/pkg/incentive"
)

// EvaluateEligibility runs the full batch: every program against the
// project, with per-program fault isolation, then ranking, grouping,
// stacking, and summary. It always returns a structured output for
// well-typed input; it never returns an error.
func EvaluateEligibility(logger *zap.Logger, input Input) Output {
	if logger == nil {
		logger = zap.NewNop()
	}
	started := time.Now()
	cfg := input.Config.applyDefaults(started)

	candidates := filterInactive(input.Programs, cfg.IncludeInactive)

	opts := evaluator.Options{
		EvaluationDate:   cfg.EvaluationDate,
		IncludeBreakdown: *cfg.IncludeBreakdown,
		Scoring:          *cfg.Scoring,
	}

	evaluated := make([]evaluator.MatchResult, 0, len(candidates))
	for i := range candidates {
		match, err := evaluateIsolated(logger, &input.Project, &candidates[i], opts)
		if err != nil {
			logger.Error("program evaluation failed; skipping",
				zap.String("op", "engine.EvaluateEligibility"),
				zap.String("program", candidates[i].ID),
				zap.Error(err),
			)
			continue
		}
		evaluated = append(evaluated, match)
	}

	kept := filterByScore(evaluated, cfg.MinScore)
	kept = rankByValue(kept)
	if len(kept) > cfg.MaxResults {
		kept = kept[:cfg.MaxResults]
	}

	output := Output{
		Matches:          kept,
		ByCategory:       groupByCategory(kept),
		ValueByCategory:  valueByCategory(kept),
		RecommendedStack: recommendedStack(kept),
		Summary:          summarize(evaluated),
	}
	for _, match := range kept {
		output.TotalPotentialValue += match.EstimatedValue
	}
	output.TotalPotentialValue = format.RoundCurrency(output.TotalPotentialValue)
	output.OptimizedTotalValue = output.TotalPotentialValue

	if *cfg.AnalyzeStacking && len(kept) > 1 {
		qualified := qualifiedOnly(kept)
		if len(qualified) > 1 {
			analysis := stacking.Analyze(logger, qualified, candidates)
			output.Stacking = &analysis
			output.OptimizedTotalValue = format.RoundCurrency(analysis.CombinedValue + unqualifiedValue(kept))
		}
	}

	output.Meta = Meta{
		EngineVersion:  constants.EngineVersion,
		EvaluationID:   uuid.NewString(),
		EvaluationDate: cfg.EvaluationDate.Format(datetime.DateTimeLayout),
		DurationMs:     time.Since(started).Milliseconds(),
	}

	logger.Info("eligibility evaluation complete",
		zap.String("op", "engine.EvaluateEligibility"),
		zap.Int("evaluated", len(evaluated)),
		zap.Int("matched", len(kept)),
		zap.Int("qualified", output.Summary.Qualified),
		zap.Int64("duration_ms", output.Meta.DurationMs),
	)

	return output
}

// evaluate is a swappable reference to the single-program evaluator so
// isolation tests can inject failing evaluations.
var evaluate = evaluator.Evaluate

// evaluateIsolated wraps one program evaluation so a panic in rule data
// cannot abort the batch.
func evaluateIsolated(logger *zap.Logger, project *incentive.Project, program *incentive.IncentiveProgram, opts evaluator.Options) (match evaluator.MatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during evaluation: %v", r)
		}
	}()
	return evaluate(logger, project, program, opts)
}

func filterInactive(programs []incentive.IncentiveProgram, includeInactive bool) []incentive.IncentiveProgram {
	if includeInactive {
		return programs
	}
	kept := make([]incentive.IncentiveProgram, 0, len(programs))
	for _, program := range programs {
		if program.IsActive() {
			kept = append(kept, program)
		}
	}
	return kept
}
