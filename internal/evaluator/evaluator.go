// Package evaluator runs a single incentive program against a project and
// produces a ranked, explainable match result.
package evaluator

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/aundre1/incentedge/internal/rules"
	"github.com/aundre1/incentedge/internal/valuation"
	"github.com/aundre1/incentedge/pkg/incentive"
	"github.com/aundre1/incentedge/pkg/mathutil"
)

// Recommendation tiers, strongest first.
const (
	TierHigh    = "high"
	TierMedium  = "medium"
	TierLow     = "low"
	TierExplore = "explore"
)

// MatchResult is one program's outcome for one project.
type MatchResult struct {
	ProgramID     string `json:"program_id"`
	ProgramName   string `json:"program_name"`
	Provider      string `json:"provider,omitempty"`
	Category      string `json:"category"`
	IncentiveType string `json:"incentive_type"`

	Qualified        bool    `json:"qualified"`
	OverallScore     int     `json:"overall_score"`
	ProbabilityScore float64 `json:"probability_score"`
	EstimatedValue   float64 `json:"estimated_value"`

	ValueBreakdown       *valuation.Breakdown `json:"value_breakdown,omitempty"`
	Conditions           []rules.Result       `json:"conditions,omitempty"`
	DisqualifyingReasons []string             `json:"disqualifying_reasons,omitempty"`

	RecommendationTier string `json:"recommendation_tier"`
	PriorityRank       int    `json:"priority_rank,omitempty"`
}

// ScoringConfig holds the scoring coefficients. It is injected rather than
// read from package state so tests can vary weights freely.
type ScoringConfig struct {
	// DisqualifiedScoreMultiplier discounts the weighted score of programs
	// that failed a required condition, so they can never outrank a
	// qualified match on score alone.
	DisqualifiedScoreMultiplier float64

	ProbabilitySlope                  float64
	ProbabilityIntercept              float64
	ProbabilityCap                    float64
	DisqualifiedProbabilityMultiplier float64

	HighScoreThreshold   int
	MediumScoreThreshold int
	HighValueFloor       float64
}

// DefaultScoring returns the production scoring coefficients.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		DisqualifiedScoreMultiplier:       0.40,
		ProbabilitySlope:                  0.85,
		ProbabilityIntercept:              0.10,
		ProbabilityCap:                    0.95,
		DisqualifiedProbabilityMultiplier: 0.30,
		HighScoreThreshold:                80,
		MediumScoreThreshold:              60,
		HighValueFloor:                    100_000,
	}
}

// Options control one program evaluation.
type Options struct {
	EvaluationDate   time.Time
	IncludeBreakdown bool
	Scoring          ScoringConfig
	// Overrides is an optional field-path override map consulted before
	// project/program/computed fields during condition evaluation.
	Overrides map[string]any
}

// Evaluate runs the full pipeline for one (project, program) pair: derive
// computed values, build default conditions, evaluate them, score, and
// calculate value.
func Evaluate(logger *zap.Logger, project *incentive.Project, program *incentive.IncentiveProgram, opts Options) (MatchResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if project == nil {
		return MatchResult{}, fmt.Errorf("no project to evaluate")
	}
	if program == nil {
		return MatchResult{}, fmt.Errorf("no program to evaluate")
	}

	computed := incentive.Derive(project, program, opts.EvaluationDate)
	ctx := &rules.Context{
		Project:        project,
		Program:        program,
		Computed:       &computed,
		Overrides:      opts.Overrides,
		EvaluationDate: opts.EvaluationDate,
	}

	baseConds := rules.BuildConditions(program)
	bonusConds := rules.BuildBonusConditions(program)
	if err := rules.Validate(append(append([]rules.Condition{}, baseConds...), bonusConds...)); err != nil {
		return MatchResult{}, fmt.Errorf("program %s has invalid conditions: %w", program.ID, err)
	}

	baseResults := rules.EvaluateAll(ctx, baseConds)
	bonusResults := rules.EvaluateAll(ctx, bonusConds)

	allResults := make([]rules.Result, 0, len(baseResults)+len(bonusResults))
	allResults = append(allResults, baseResults...)
	allResults = append(allResults, bonusResults...)

	qualified := true
	var reasons []string
	for i, r := range baseResults {
		if r.Required && !r.Passed {
			qualified = false
			reasons = append(reasons, disqualifyingReason(baseConds[i], r))
		}
	}

	weighted := weightedScore(allResults)
	score := overallScore(weighted, qualified, opts.Scoring)
	probability := probabilityScore(weighted, qualified, opts.Scoring)

	var bonuses []valuation.BonusAdder
	for i, r := range bonusResults {
		if r.Passed && bonusConds[i].Bonus != nil {
			bonuses = append(bonuses, valuation.BonusAdder{
				Kind:       string(bonusConds[i].Bonus.Kind),
				Percentage: bonusConds[i].Bonus.Percentage,
			})
		}
	}
	breakdown := valuation.Calculate(project, program, &computed, bonuses)

	match := MatchResult{
		ProgramID:            program.ID,
		ProgramName:          program.Name,
		Provider:             program.Provider,
		Category:             program.Category,
		IncentiveType:        program.IncentiveType,
		Qualified:            qualified,
		OverallScore:         score,
		ProbabilityScore:     probability,
		EstimatedValue:       breakdown.FinalValue,
		DisqualifyingReasons: reasons,
		RecommendationTier:   recommendationTier(qualified, score, breakdown.FinalValue, opts.Scoring),
	}
	if opts.IncludeBreakdown {
		match.ValueBreakdown = &breakdown
		match.Conditions = allResults
	}

	logger.Debug("evaluated program",
		zap.String("op", "evaluator.Evaluate"),
		zap.String("program", program.ID),
		zap.Bool("qualified", qualified),
		zap.Int("score", score),
		zap.Float64("value", breakdown.FinalValue),
	)

	return match, nil
}

// weightedScore is the weight-normalized pass rate over all evaluated
// conditions: 0 with no conditions, otherwise in [0, 1].
func weightedScore(results []rules.Result) float64 {
	var passedWeight, totalWeight float64
	for _, r := range results {
		totalWeight += r.Weight
		if r.Passed {
			passedWeight += r.Weight
		}
	}
	if totalWeight == 0 {
		return 0
	}
	return mathutil.Clamp01(passedWeight / totalWeight)
}

func overallScore(weighted float64, qualified bool, cfg ScoringConfig) int {
	if qualified {
		return int(math.Round(weighted * 100))
	}
	return int(math.Round(weighted * 100 * cfg.DisqualifiedScoreMultiplier))
}

func probabilityScore(weighted float64, qualified bool, cfg ScoringConfig) float64 {
	if qualified {
		return mathutil.Min(cfg.ProbabilityCap, weighted*cfg.ProbabilitySlope+cfg.ProbabilityIntercept)
	}
	return weighted * cfg.DisqualifiedProbabilityMultiplier
}

func recommendationTier(qualified bool, score int, value float64, cfg ScoringConfig) string {
	switch {
	case !qualified:
		return TierExplore
	case score >= cfg.HighScoreThreshold && value > cfg.HighValueFloor:
		return TierHigh
	case score >= cfg.MediumScoreThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

func disqualifyingReason(cond rules.Condition, r rules.Result) string {
	if cond.Description != "" {
		return fmt.Sprintf("%s: %s", cond.Description, r.Message)
	}
	return r.Message
}
