package rules

import (
	"fmt"

	"github.com/aundre1/incentedge/pkg/constants"
	"github.com/aundre1/incentedge/pkg/mathutil"
)

func evaluateIRABonus(ctx *Context, cond Condition) Result {
	params := cond.Bonus
	if params == nil {
		return result(cond, false, "ira_bonus condition missing parameters")
	}

	eligible, reason := bonusEligible(ctx, params.Kind)
	if !eligible {
		return result(cond, false, reason)
	}

	// Nested requirements must all hold or eligibility is retracted.
	if len(params.Requirements) > 0 {
		children := EvaluateAll(ctx, params.Requirements)
		for _, child := range children {
			if !child.Passed {
				r := result(cond, false,
					fmt.Sprintf("%s bonus requirements not met: %s", params.Kind, child.Message))
				r.Children = children
				return r
			}
		}
		r := result(cond, true, fmt.Sprintf("%s: bonus requirements met", reason))
		r.Children = children
		return r
	}

	return result(cond, true, reason)
}

// bonusEligible decides base eligibility for one IRA bonus kind from project
// flags and derived values.
func bonusEligible(ctx *Context, kind BonusKind) (bool, string) {
	if ctx.Project == nil {
		return false, "no project data to check bonus eligibility against"
	}

	switch kind {
	case BonusDomesticContent:
		if ctx.Project.MeetsDomesticContent {
			return true, "project meets domestic content requirements"
		}
		return false, "project does not meet domestic content requirements"
	case BonusEnergyCommunity:
		if ctx.Project.IsEnergyCommunity || (ctx.Computed != nil && ctx.Computed.IsEnergyCommunity) {
			return true, "project is in an energy community"
		}
		return false, "project is not in an energy community"
	case BonusPrevailingWage:
		if ctx.Project.MeetsPrevailingWage {
			return true, "project meets prevailing wage requirements"
		}
		return false, "project does not meet prevailing wage requirements"
	case BonusLowIncome:
		if ctx.Project.IsLowIncomeCommunity || (ctx.Computed != nil && ctx.Computed.IsLowIncomeCommunity) {
			return true, "project is in a low-income community"
		}
		if ctx.Computed != nil && ctx.Computed.AffordabilityPercentage >= constants.LowIncomeAffordabilityThreshold {
			return true, fmt.Sprintf("project affordability %.1f%% qualifies as low-income",
				ctx.Computed.AffordabilityPercentage)
		}
		return false, "project does not serve a low-income community"
	}
	return false, fmt.Sprintf("unknown bonus kind %q", kind)
}

func evaluateComposite(ctx *Context, cond Condition) Result {
	if len(cond.Children) == 0 {
		return result(cond, false, "composite condition has no children")
	}

	children := EvaluateAll(ctx, cond.Children)

	// An unset weight defaults to the heaviest child.
	weight := cond.Weight
	if weight == 0 {
		for _, child := range children {
			weight = mathutil.Max(weight, child.Weight)
		}
	}

	var passed bool
	var message string
	switch cond.Logic {
	case LogicAnd:
		passed = true
		for _, child := range children {
			if !child.Passed {
				passed = false
				message = fmt.Sprintf("AND group failed: %s", child.Message)
				break
			}
		}
		if passed {
			message = fmt.Sprintf("all %d conditions in AND group passed", len(children))
		}
	case LogicOr:
		for _, child := range children {
			if child.Passed {
				passed = true
				message = fmt.Sprintf("OR group satisfied: %s", child.Message)
				break
			}
		}
		if !passed {
			message = fmt.Sprintf("none of %d conditions in OR group passed", len(children))
		}
	case LogicNot:
		// NOT is unary: only the first child is inspected. Extra children are
		// rejected by Validate, not here.
		passed = !children[0].Passed
		if passed {
			message = fmt.Sprintf("NOT satisfied: %s", children[0].Message)
		} else {
			message = fmt.Sprintf("NOT violated: %s", children[0].Message)
		}
	default:
		passed = false
		message = fmt.Sprintf("unknown composite logic %q", cond.Logic)
	}

	r := Result{
		Type:     cond.Type,
		Passed:   passed,
		Required: cond.Required,
		Weight:   mathutil.Clamp01(weight),
		Message:  message,
		Children: children,
	}
	return r
}
