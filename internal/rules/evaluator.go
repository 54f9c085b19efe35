package rules

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aundre1/incentedge/pkg/datetime"
	"github.com/aundre1/incentedge/pkg/mathutil"
)

// Evaluate runs one condition against the context and returns a structured
// result. It never panics and never returns an error: missing or malformed
// data fails closed with an explanatory message.
func Evaluate(ctx *Context, cond Condition) Result {
	switch cond.Type {
	case TypeComparison:
		return evaluateComparison(ctx, cond)
	case TypeDate:
		return evaluateDate(ctx, cond)
	case TypeGeographic:
		return evaluateGeographic(ctx, cond)
	case TypeAffordability:
		return evaluateAffordability(ctx, cond)
	case TypeSustainability:
		return evaluateSustainability(ctx, cond)
	case TypeFinancial:
		return evaluateFinancial(ctx, cond)
	case TypeEntity:
		// Organization data is outside this engine; entity checks are a
		// documented gap and always pass.
		return result(cond, true, "entity requirements not evaluated (organization data unavailable)")
	case TypeTechnology:
		return evaluateTechnology(ctx, cond)
	case TypeIRABonus:
		return evaluateIRABonus(ctx, cond)
	case TypeStacking:
		// Stacking conditions are informational metadata for the stacking
		// analyzer; they never affect qualification.
		return result(cond, true, "stacking compatibility analyzed separately")
	case TypeComposite:
		return evaluateComposite(ctx, cond)
	case TypeCustom:
		return result(cond, true, "custom condition not implemented; treated as passing")
	}
	return result(cond, false, fmt.Sprintf("unknown condition type %q", cond.Type))
}

// EvaluateAll evaluates every condition in order, returning one result per
// condition.
func EvaluateAll(ctx *Context, conds []Condition) []Result {
	results := make([]Result, 0, len(conds))
	for _, cond := range conds {
		results = append(results, Evaluate(ctx, cond))
	}
	return results
}

// result builds a Result for the condition with the weight clamped to [0, 1].
func result(cond Condition, passed bool, message string) Result {
	return Result{
		Type:     cond.Type,
		Passed:   passed,
		Required: cond.Required,
		Weight:   mathutil.Clamp01(cond.Weight),
		Message:  message,
	}
}

func evaluateComparison(ctx *Context, cond Condition) Result {
	actual, found := ctx.Resolve(cond.Field)

	switch cond.Operator {
	case OpExists:
		return result(cond, found && actual != nil,
			fmt.Sprintf("%s %s", cond.Field, presenceWord(found && actual != nil)))
	case OpNotExists:
		return result(cond, !found || actual == nil,
			fmt.Sprintf("%s %s", cond.Field, presenceWord(found && actual != nil)))
	}

	if !found {
		return result(cond, false, fmt.Sprintf("%s is not set", cond.Field))
	}

	switch cond.Operator {
	case OpEq:
		passed := looseEqual(actual, cond.Value)
		return result(cond, passed, compareMessage(cond.Field, "equal", actual, cond.Value, passed))
	case OpNeq:
		passed := !looseEqual(actual, cond.Value)
		return result(cond, passed, compareMessage(cond.Field, "differ from", actual, cond.Value, passed))
	case OpGt, OpGte, OpLt, OpLte:
		return evaluateNumericComparison(cond, actual)
	case OpBetween:
		return evaluateBetween(cond, actual)
	case OpIn:
		passed := listContains(cond.Value, actual)
		return result(cond, passed, compareMessage(cond.Field, "be one of", actual, cond.Value, passed))
	case OpNotIn:
		passed := !listContains(cond.Value, actual)
		return result(cond, passed, compareMessage(cond.Field, "not be one of", actual, cond.Value, passed))
	case OpContains:
		passed := valueContains(actual, cond.Value)
		return result(cond, passed, compareMessage(cond.Field, "contain", actual, cond.Value, passed))
	case OpNotContains:
		passed := !valueContains(actual, cond.Value)
		return result(cond, passed, compareMessage(cond.Field, "not contain", actual, cond.Value, passed))
	case OpStartsWith:
		passed := strings.HasPrefix(lowerString(actual), lowerString(cond.Value))
		return result(cond, passed, compareMessage(cond.Field, "start with", actual, cond.Value, passed))
	case OpEndsWith:
		passed := strings.HasSuffix(lowerString(actual), lowerString(cond.Value))
		return result(cond, passed, compareMessage(cond.Field, "end with", actual, cond.Value, passed))
	case OpMatches:
		re, err := regexp.Compile(stringOf(cond.Value))
		if err != nil {
			return result(cond, false, fmt.Sprintf("invalid pattern %q for %s", stringOf(cond.Value), cond.Field))
		}
		passed := re.MatchString(stringOf(actual))
		return result(cond, passed, compareMessage(cond.Field, "match", actual, cond.Value, passed))
	}
	return result(cond, false, fmt.Sprintf("unsupported comparison operator %q", cond.Operator))
}

func evaluateNumericComparison(cond Condition, actual any) Result {
	actualNum, actualOK := toFloat(actual)
	expectedNum, expectedOK := toFloat(cond.Value)
	if !actualOK || !expectedOK {
		return result(cond, false, fmt.Sprintf("%s is not numeric (got %v)", cond.Field, actual))
	}

	var passed bool
	switch cond.Operator {
	case OpGt:
		passed = actualNum > expectedNum
	case OpGte:
		passed = actualNum >= expectedNum
	case OpLt:
		passed = actualNum < expectedNum
	case OpLte:
		passed = actualNum <= expectedNum
	}
	return result(cond, passed,
		fmt.Sprintf("%s is %v, %s %v", cond.Field, actualNum, requirementWord(passed), expectedNum))
}

func evaluateBetween(cond Condition, actual any) Result {
	actualNum, actualOK := toFloat(actual)
	lo, loOK := toFloat(cond.Value)
	hi, hiOK := toFloat(cond.ValueMax)
	if !loOK || !hiOK {
		return result(cond, false, fmt.Sprintf("between requires numeric bounds for %s", cond.Field))
	}
	if !actualOK {
		return result(cond, false, fmt.Sprintf("%s is not numeric (got %v)", cond.Field, actual))
	}
	passed := actualNum >= lo && actualNum <= hi
	return result(cond, passed,
		fmt.Sprintf("%s is %v, %s range [%v, %v]", cond.Field, actualNum, insideWord(passed), lo, hi))
}

func evaluateDate(ctx *Context, cond Condition) Result {
	if cond.Operator == OpIsActive {
		if ctx.Program == nil {
			return result(cond, false, "no program to check activity window for")
		}
		passed := datetime.WithinWindow(ctx.EvaluationDate, ctx.Program.StartDate, ctx.Program.EndDate)
		if passed {
			return result(cond, true, "program is currently active")
		}
		return result(cond, false, "program is outside its active window")
	}

	fieldValue, found := ctx.Resolve(cond.Field)
	if !found {
		return result(cond, false, fmt.Sprintf("%s is not set", cond.Field))
	}
	fieldDate, ok := datetime.Parse(stringOf(fieldValue))
	if !ok {
		return result(cond, false, fmt.Sprintf("%s is not a parseable date (got %v)", cond.Field, fieldValue))
	}

	// A declared value anchors the comparison; otherwise the evaluation date
	// does.
	anchor := ctx.EvaluationDate
	if s := stringOf(cond.Value); s != "" {
		parsed, ok := datetime.Parse(s)
		if !ok {
			if cond.Operator == OpWithinDays {
				return evaluateWithinDays(ctx, cond, fieldDate)
			}
			return result(cond, false, fmt.Sprintf("condition date %q is not parseable", s))
		}
		anchor = parsed
	}

	switch cond.Operator {
	case OpBefore:
		passed := fieldDate.Before(anchor)
		return result(cond, passed,
			fmt.Sprintf("%s (%s) %s %s", cond.Field, fieldDate.Format(datetime.DateTimeLayout), beforeWord(passed), anchor.Format(datetime.DateTimeLayout)))
	case OpAfter:
		passed := fieldDate.After(anchor)
		return result(cond, passed,
			fmt.Sprintf("%s (%s) %s %s", cond.Field, fieldDate.Format(datetime.DateTimeLayout), afterWord(passed), anchor.Format(datetime.DateTimeLayout)))
	case OpBetween:
		start, startOK := datetime.Parse(stringOf(cond.Value))
		end, endOK := datetime.Parse(stringOf(cond.ValueMax))
		if !startOK || !endOK {
			return result(cond, false, "between requires parseable start and end dates")
		}
		passed := !fieldDate.Before(start) && !fieldDate.After(end)
		return result(cond, passed,
			fmt.Sprintf("%s is %s range [%s, %s]", cond.Field, insideWord(passed), start.Format(datetime.DateTimeLayout), end.Format(datetime.DateTimeLayout)))
	case OpWithinDays:
		return evaluateWithinDays(ctx, cond, fieldDate)
	}
	return result(cond, false, fmt.Sprintf("unsupported date operator %q", cond.Operator))
}

func evaluateWithinDays(ctx *Context, cond Condition, fieldDate time.Time) Result {
	limit, ok := toFloat(cond.Value)
	if !ok {
		return result(cond, false, "within_days requires a numeric day limit")
	}
	days := datetime.DaysBetween(ctx.EvaluationDate, fieldDate)
	if days < 0 {
		days = -days
	}
	passed := float64(days) <= limit
	return result(cond, passed,
		fmt.Sprintf("%s is %d days from the evaluation date, %s limit %v", cond.Field, days, insideWord(passed), limit))
}

func presenceWord(present bool) string {
	if present {
		return "is set"
	}
	return "is not set"
}

func requirementWord(passed bool) string {
	if passed {
		return "meets requirement"
	}
	return "fails requirement"
}

func insideWord(passed bool) string {
	if passed {
		return "within"
	}
	return "outside"
}

func beforeWord(passed bool) string {
	if passed {
		return "is before"
	}
	return "is not before"
}

func afterWord(passed bool) string {
	if passed {
		return "is after"
	}
	return "is not after"
}

func compareMessage(field, verb string, actual, expected any, passed bool) string {
	outcome := "does"
	if !passed {
		outcome = "does not"
	}
	return fmt.Sprintf("%s (%v) %s %s %v", field, actual, outcome, verb, expected)
}
