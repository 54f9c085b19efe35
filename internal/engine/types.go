// Package engine is the batch entry point of the eligibility core: it runs
// every candidate program against a project, ranks and groups the results,
// and analyzes cross-program stacking.
package engine

import (
	"time"

	"github.com/aundre1/incentedge/internal/evaluator"
	"github.com/aundre1/incentedge/internal/stacking"
	"github.com/aundre1/incentedge/pkg/constants"
	"github.com/aundre1/incentedge/pkg/incentive"
)

// Config holds the caller-tunable evaluation options. The zero value plus
// applyDefaults yields production behavior.
type Config struct {
	// IncludeInactive evaluates programs whose status is not active.
	IncludeInactive bool `json:"include_inactive" mapstructure:"include_inactive"`

	// MinScore is the fractional score floor for retaining non-qualified
	// matches.
	MinScore float64 `json:"min_score" mapstructure:"min_score" validate:"gte=0,lte=1"`

	// MaxResults caps the number of returned matches.
	MaxResults int `json:"max_results" mapstructure:"max_results" validate:"gte=0"`

	// IncludeBreakdown retains full condition and value-step detail on each
	// match. Defaults to true.
	IncludeBreakdown *bool `json:"include_breakdown,omitempty" mapstructure:"include_breakdown"`

	// AnalyzeStacking runs the stacking analyzer when more than one match
	// survives. Defaults to true.
	AnalyzeStacking *bool `json:"analyze_stacking,omitempty" mapstructure:"analyze_stacking"`

	// EvaluationDate anchors all date logic; injected for deterministic
	// testing. Defaults to the current time.
	EvaluationDate time.Time `json:"evaluation_date,omitempty" mapstructure:"evaluation_date"`

	// Scoring overrides the default scoring coefficients when non-zero.
	Scoring *evaluator.ScoringConfig `json:"scoring,omitempty" mapstructure:"scoring"`
}

// Input is the full request for one eligibility evaluation.
type Input struct {
	Project  incentive.Project            `json:"project" mapstructure:"project"`
	Programs []incentive.IncentiveProgram `json:"programs" mapstructure:"programs"`
	Config   Config                       `json:"config" mapstructure:"config"`
}

// Output is the structured result of one eligibility evaluation. The engine
// always produces one for well-typed input; per-program failures are logged
// and omitted rather than surfaced as errors.
type Output struct {
	Matches    []evaluator.MatchResult            `json:"matches"`
	ByCategory map[string][]evaluator.MatchResult `json:"by_category"`

	TotalPotentialValue float64            `json:"total_potential_value"`
	ValueByCategory     map[string]float64 `json:"value_by_category"`
	OptimizedTotalValue float64            `json:"optimized_total_value"`

	Stacking         *stacking.AnalysisResult `json:"stacking,omitempty"`
	RecommendedStack []string                 `json:"recommended_stack"`

	Summary Summary `json:"summary"`
	Meta    Meta    `json:"meta"`
}

// Summary carries the batch counters.
type Summary struct {
	TotalEvaluated int     `json:"total_evaluated"`
	Qualified      int     `json:"qualified"`
	Disqualified   int     `json:"disqualified"`
	AverageScore   float64 `json:"average_score"`
	HighConfidence int     `json:"high_confidence"`
}

// Meta carries caller-side observability data; the engine's own behavior
// never depends on it.
type Meta struct {
	EngineVersion  string `json:"engine_version"`
	EvaluationID   string `json:"evaluation_id"`
	EvaluationDate string `json:"evaluation_date"`
	DurationMs     int64  `json:"duration_ms"`
}

// applyDefaults fills unset config fields with production defaults and
// clamps out-of-range values.
func (c Config) applyDefaults(now time.Time) Config {
	if c.MinScore <= 0 || c.MinScore > 1 {
		c.MinScore = constants.DefaultMinScore
	}
	if c.MaxResults <= 0 {
		c.MaxResults = constants.DefaultMaxResults
	}
	if c.IncludeBreakdown == nil {
		c.IncludeBreakdown = boolPtr(true)
	}
	if c.AnalyzeStacking == nil {
		c.AnalyzeStacking = boolPtr(true)
	}
	if c.EvaluationDate.IsZero() {
		c.EvaluationDate = now
	}
	if c.Scoring == nil {
		scoring := evaluator.DefaultScoring()
		c.Scoring = &scoring
	}
	return c
}

func boolPtr(v bool) *bool { return &v }
