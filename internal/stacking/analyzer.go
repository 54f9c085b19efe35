// Package stacking analyzes how multiple qualified incentive matches combine
// on one project: compatibility conflicts, value reductions, and the
// achievable combined value.
package stacking

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/aundre1/incentedge/internal/evaluator"
	"github.com/aundre1/incentedge/pkg/incentive"
	"github.com/aundre1/incentedge/pkg/mathutil"
)

// FederalGrantReduction is the flat reduction applied to each federal
// grant-type program when two or more such programs are stacked.
const FederalGrantReduction = 0.20

// AdjustedValue is one program's value after stacking reductions.
type AdjustedValue struct {
	ProgramID        string  `json:"program_id"`
	OriginalValue    float64 `json:"original_value"`
	AdjustedValue    float64 `json:"adjusted_value"`
	ReductionApplied float64 `json:"reduction_applied"`
}

// Conflict is a non-fatal compatibility note between two matched programs.
type Conflict struct {
	ProgramID     string `json:"program_id"`
	ConflictsWith string `json:"conflicts_with"`
	Note          string `json:"note"`
}

// AnalysisResult is the outcome of a stacking analysis.
type AnalysisResult struct {
	CombinedValue    float64         `json:"combined_value"`
	AdjustedValues   []AdjustedValue `json:"adjusted_values"`
	Conflicts        []Conflict      `json:"conflicts,omitempty"`
	RecommendedOrder []string        `json:"recommended_order"`
}

// Analyze applies the cross-program stacking rules to a set of qualified
// matches. Matches and programs are read only; the result is built fresh.
func Analyze(logger *zap.Logger, matches []evaluator.MatchResult, programs []incentive.IncentiveProgram) AnalysisResult {
	if logger == nil {
		logger = zap.NewNop()
	}

	byID := make(map[string]*incentive.IncentiveProgram, len(programs))
	for i := range programs {
		byID[programs[i].ID] = &programs[i]
	}

	result := AnalysisResult{
		AdjustedValues: make([]AdjustedValue, 0, len(matches)),
	}

	for _, match := range matches {
		reduction := maxReduction(match, matches, byID)
		adjusted := mathutil.Round(match.EstimatedValue * (1 - reduction))
		result.AdjustedValues = append(result.AdjustedValues, AdjustedValue{
			ProgramID:        match.ProgramID,
			OriginalValue:    match.EstimatedValue,
			AdjustedValue:    adjusted,
			ReductionApplied: reduction,
		})
		result.CombinedValue += adjusted

		if reduction > 0 {
			logger.Debug("stacking reduction applied",
				zap.String("op", "stacking.Analyze"),
				zap.String("program", match.ProgramID),
				zap.Float64("reduction", reduction),
			)
		}
	}

	result.Conflicts = detectConflicts(matches, byID)
	result.RecommendedOrder = recommendedOrder(matches)

	return result
}

// maxReduction returns the largest reduction any stacking rule applies to
// this match. Rules never sum: the strictest one wins.
func maxReduction(match evaluator.MatchResult, matches []evaluator.MatchResult, programs map[string]*incentive.IncentiveProgram) float64 {
	reduction := 0.0

	// Federal programs stack freely, except that federal grants dilute each
	// other: stacking two or more federal grant-type programs reduces each
	// of them by a flat percentage.
	if isFederalGrant(match, programs) {
		for _, other := range matches {
			if other.ProgramID == match.ProgramID {
				continue
			}
			if isFederalGrant(other, programs) {
				if FederalGrantReduction > reduction {
					reduction = FederalGrantReduction
				}
				break
			}
		}
	}

	return reduction
}

func isFederalGrant(match evaluator.MatchResult, programs map[string]*incentive.IncentiveProgram) bool {
	if match.IncentiveType != incentive.TypeGrant {
		return false
	}
	if program, ok := programs[match.ProgramID]; ok {
		return program.IsFederal()
	}
	return match.Category == incentive.CategoryFederal
}

// detectConflicts emits a note whenever a matched program's structured
// stacking restrictions reference another matched program. Conflicts warn;
// they never disqualify.
func detectConflicts(matches []evaluator.MatchResult, programs map[string]*incentive.IncentiveProgram) []Conflict {
	var conflicts []Conflict
	for _, match := range matches {
		program, ok := programs[match.ProgramID]
		if !ok {
			continue
		}
		for _, restriction := range program.StackingRestrictions {
			for _, other := range matches {
				if other.ProgramID == match.ProgramID {
					continue
				}
				if restriction.ProgramID == other.ProgramID ||
					(restriction.ProgramName != "" && strings.EqualFold(restriction.ProgramName, other.ProgramName)) {
					note := restriction.Note
					if note == "" {
						note = fmt.Sprintf("%s declares a stacking restriction against %s", program.Name, other.ProgramName)
					}
					conflicts = append(conflicts, Conflict{
						ProgramID:     match.ProgramID,
						ConflictsWith: other.ProgramID,
						Note:          note,
					})
				}
			}
		}
	}
	return conflicts
}

// recommendedOrder sorts program IDs by raw estimated value descending. It
// intentionally ignores reductions: the ordering is about which application
// to pursue first, not the post-stacking arithmetic.
func recommendedOrder(matches []evaluator.MatchResult) []string {
	ordered := make([]evaluator.MatchResult, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].EstimatedValue != ordered[j].EstimatedValue {
			return ordered[i].EstimatedValue > ordered[j].EstimatedValue
		}
		return ordered[i].ProgramID < ordered[j].ProgramID
	})

	ids := make([]string, len(ordered))
	for i, match := range ordered {
		ids[i] = match.ProgramID
	}
	return ids
}
