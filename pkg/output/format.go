// Package output provides utilities for formatting and displaying
// eligibility results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/aundre1/incentedge/internal/engine"
	"github.com/aundre1/incentedge/pkg/constants"
	"github.com/aundre1/incentedge/pkg/format"
	"github.com/aundre1/incentedge/pkg/mathutil"
)

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, result engine.Output) {
	p := message.NewPrinter(language.English)

	fmt.Fprintf(w, "--- Incentive matches (%d evaluated, %d qualified) ---\n",
		result.Summary.TotalEvaluated, result.Summary.Qualified)
	fmt.Fprintf(w, "Rank | Program                                  | Category | Tier    | Score | Estimated Value\n")
	fmt.Fprintf(w, "____ | ________________________________________ | ________ | _______ | _____ | _______________\n")

	for _, match := range result.Matches {
		_, _ = p.Fprintf(w, "%4d | %-40s | %-8s | %-7s | %5d | %s\n",
			match.PriorityRank, truncate(match.ProgramName, 40), match.Category,
			match.RecommendationTier, match.OverallScore, format.Currency(match.EstimatedValue))
		for _, reason := range match.DisqualifyingReasons {
			fmt.Fprintf(w, "     |   not qualified: %s\n", reason)
		}
	}

	fmt.Fprintf(w, "\nTotal potential value:  %s\n", format.Currency(result.TotalPotentialValue))
	if !mathutil.WithinTolerance(result.OptimizedTotalValue, result.TotalPotentialValue, constants.CurrencyTolerance) {
		fmt.Fprintf(w, "Optimized stack value:  %s\n", format.Currency(result.OptimizedTotalValue))
	}
	if len(result.RecommendedStack) > 0 {
		fmt.Fprintf(w, "Recommended stack:      %s\n", strings.Join(result.RecommendedStack, ", "))
	}
	if result.Stacking != nil {
		for _, conflict := range result.Stacking.Conflicts {
			fmt.Fprintf(w, "Stacking conflict:      %s vs %s: %s\n",
				conflict.ProgramID, conflict.ConflictsWith, conflict.Note)
		}
	}
}

// CsvFormat writes matches in comma-separated value format.
func CsvFormat(w io.Writer, result engine.Output) {
	fmt.Fprintf(w, "\"rank\",\"program_id\",\"program\",\"category\",\"incentive_type\",\"qualified\",\"score\",\"probability\",\"tier\",\"estimated_value\",\"value_low\",\"value_high\"\n")
	for _, match := range result.Matches {
		low, high := 0.0, 0.0
		if match.ValueBreakdown != nil {
			low, high = match.ValueBreakdown.ValueLow, match.ValueBreakdown.ValueHigh
		}
		fmt.Fprintf(w, "%d,\"%s\",\"%s\",\"%s\",\"%s\",%t,%d,%.2f,\"%s\",%.2f,%.2f,%.2f\n",
			match.PriorityRank, csvEscape(match.ProgramID), csvEscape(match.ProgramName),
			csvEscape(match.Category), csvEscape(match.IncentiveType), match.Qualified,
			match.OverallScore, match.ProbabilityScore, csvEscape(match.RecommendationTier),
			match.EstimatedValue, low, high)
	}
}

// JSONFormat writes the full structured output.
func JSONFormat(w io.Writer, result engine.Output) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// csvEscape doubles embedded quotes so interpolated fields stay valid CSV.
func csvEscape(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

// truncate shortens a string to max characters, slicing on rune boundaries.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
