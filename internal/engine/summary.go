package engine

import (
	"math"
	"sort"

	"github.com/aundre1/incentedge/internal/evaluator"
	"github.com/aundre1/incentedge/pkg/constants"
)

// The ranking and grouping helpers below are pure: they return new
// collections and never mutate their inputs, so per-program evaluation stays
// safe to parallelize by the caller.

// highConfidenceProbability is the probability score at or above which a
// match counts toward the high-confidence summary counter.
const highConfidenceProbability = 0.80

// filterByScore keeps matches that cleared the score floor or qualified
// outright.
func filterByScore(matches []evaluator.MatchResult, minScore float64) []evaluator.MatchResult {
	floor := int(math.Round(minScore * 100))
	kept := make([]evaluator.MatchResult, 0, len(matches))
	for _, match := range matches {
		if match.Qualified || match.OverallScore >= floor {
			kept = append(kept, match)
		}
	}
	return kept
}

// rankByValue returns a new slice sorted by estimated value descending with
// 1-based priority ranks assigned.
func rankByValue(matches []evaluator.MatchResult) []evaluator.MatchResult {
	ranked := make([]evaluator.MatchResult, len(matches))
	copy(ranked, matches)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].EstimatedValue != ranked[j].EstimatedValue {
			return ranked[i].EstimatedValue > ranked[j].EstimatedValue
		}
		return ranked[i].ProgramID < ranked[j].ProgramID
	})
	for i := range ranked {
		ranked[i].PriorityRank = i + 1
	}
	return ranked
}

// groupByCategory buckets matches by program category.
func groupByCategory(matches []evaluator.MatchResult) map[string][]evaluator.MatchResult {
	grouped := make(map[string][]evaluator.MatchResult)
	for _, match := range matches {
		category := match.Category
		if category == "" {
			category = "other"
		}
		grouped[category] = append(grouped[category], match)
	}
	return grouped
}

// valueByCategory totals raw estimated values per category.
func valueByCategory(matches []evaluator.MatchResult) map[string]float64 {
	totals := make(map[string]float64)
	for _, match := range matches {
		category := match.Category
		if category == "" {
			category = "other"
		}
		totals[category] += match.EstimatedValue
	}
	return totals
}

// recommendedStack returns the program IDs of the top qualified matches by
// value. Matches arrive ranked, so the first qualified ones win.
func recommendedStack(ranked []evaluator.MatchResult) []string {
	stack := make([]string, 0, constants.RecommendedStackSize)
	for _, match := range ranked {
		if !match.Qualified {
			continue
		}
		stack = append(stack, match.ProgramID)
		if len(stack) == constants.RecommendedStackSize {
			break
		}
	}
	return stack
}

// qualifiedOnly returns the qualified subset of matches.
func qualifiedOnly(matches []evaluator.MatchResult) []evaluator.MatchResult {
	qualified := make([]evaluator.MatchResult, 0, len(matches))
	for _, match := range matches {
		if match.Qualified {
			qualified = append(qualified, match)
		}
	}
	return qualified
}

// unqualifiedValue sums the raw values of non-qualified matches, used when
// combining stacked qualified value with the remainder.
func unqualifiedValue(matches []evaluator.MatchResult) float64 {
	var total float64
	for _, match := range matches {
		if !match.Qualified {
			total += match.EstimatedValue
		}
	}
	return total
}

// summarize computes batch counters over everything evaluated, including
// matches later dropped by the score floor or result cap.
func summarize(evaluated []evaluator.MatchResult) Summary {
	s := Summary{TotalEvaluated: len(evaluated)}
	if len(evaluated) == 0 {
		return s
	}

	var scoreTotal int
	for _, match := range evaluated {
		scoreTotal += match.OverallScore
		if match.Qualified {
			s.Qualified++
		}
		if match.ProbabilityScore >= highConfidenceProbability {
			s.HighConfidence++
		}
	}
	s.Disqualified = s.TotalEvaluated - s.Qualified
	s.AverageScore = float64(scoreTotal) / float64(len(evaluated))
	return s
}
