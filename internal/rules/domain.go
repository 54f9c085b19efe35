package rules

import (
	"fmt"
	"strings"

	"github.com/aundre1/incentedge/pkg/constants"
	"github.com/aundre1/incentedge/pkg/incentive"
)

func evaluateGeographic(ctx *Context, cond Condition) Result {
	params := cond.Geographic
	if params == nil {
		return result(cond, false, "geographic condition missing parameters")
	}

	// Federal programs that declare themselves location-agnostic always pass.
	if params.AllowFederal && ctx.Program != nil && ctx.Program.IsFederal() {
		return result(cond, true, "federal program available in all locations")
	}

	switch params.Operator {
	case OpAny:
		return result(cond, true, "no geographic restriction")
	case OpNone:
		return result(cond, false, "program is not available in any location")
	}

	var projectValue string
	if ctx.Project != nil {
		projectValue = ctx.Project.LocationValue(params.Scope)
	}
	if projectValue == "" {
		// A project with no value for the scope can only pass an
		// unconstrained check.
		passed := len(params.Values) == 0
		return result(cond, passed, fmt.Sprintf("project has no %s on record", params.Scope))
	}

	member := false
	for _, v := range params.Values {
		if strings.EqualFold(v, projectValue) {
			member = true
			break
		}
	}

	switch params.Operator {
	case OpNotIn:
		if member {
			return result(cond, false, fmt.Sprintf("%s %q is excluded", params.Scope, projectValue))
		}
		return result(cond, true, fmt.Sprintf("%s %q is not excluded", params.Scope, projectValue))
	default: // in
		if member || len(params.Values) == 0 {
			return result(cond, true, fmt.Sprintf("%s %q is eligible", params.Scope, projectValue))
		}
		return result(cond, false,
			fmt.Sprintf("%s %q is not among eligible values %v", params.Scope, projectValue, params.Values))
	}
}

func evaluateAffordability(ctx *Context, cond Condition) Result {
	params := cond.Affordability
	if params == nil {
		return result(cond, false, "affordability condition missing parameters")
	}
	if ctx.Project == nil || ctx.Computed == nil {
		return result(cond, false, "no project data to check affordability against")
	}

	pct := ctx.Computed.AffordabilityPercentage
	var checks []string

	if params.MinPercentage != nil {
		if pct < *params.MinPercentage {
			return result(cond, false,
				fmt.Sprintf("%.1f%% is below minimum (%g%%)", pct, *params.MinPercentage))
		}
		checks = append(checks, fmt.Sprintf("%.1f%% meets minimum (%g%%)", pct, *params.MinPercentage))
	}
	if params.MaxPercentage != nil {
		if pct > *params.MaxPercentage {
			return result(cond, false,
				fmt.Sprintf("%.1f%% exceeds maximum (%g%%)", pct, *params.MaxPercentage))
		}
		checks = append(checks, fmt.Sprintf("%.1f%% within maximum (%g%%)", pct, *params.MaxPercentage))
	}
	if params.MinUnits > 0 {
		units := ctx.Project.Affordability.UnitsAtOrBelow(params.AMILevel)
		if units < params.MinUnits {
			return result(cond, false,
				fmt.Sprintf("%d units at/below %d%% AMI, need %d", units, params.AMILevel, params.MinUnits))
		}
		checks = append(checks, fmt.Sprintf("%d units at/below %d%% AMI meets %d", units, params.AMILevel, params.MinUnits))
	}

	if len(checks) == 0 {
		return result(cond, true, "no affordability requirements declared")
	}
	return result(cond, true, strings.Join(checks, "; "))
}

func evaluateSustainability(ctx *Context, cond Condition) Result {
	params := cond.Sustainability
	if params == nil {
		return result(cond, false, "sustainability condition missing parameters")
	}
	if ctx.Project == nil || ctx.Computed == nil {
		return result(cond, false, "no project data to check sustainability against")
	}

	tier := ctx.Computed.SustainabilityTier

	if params.MinTier != "" {
		required := incentive.TierFromName(params.MinTier)
		if required == incentive.TierNone {
			return result(cond, false, fmt.Sprintf("unknown tier %q", params.MinTier))
		}
		if tier < required {
			return result(cond, false,
				fmt.Sprintf("project tier %q is below required %q", tierLabel(tier), params.MinTier))
		}
	}
	if len(params.AcceptedTiers) > 0 {
		accepted := false
		for _, name := range params.AcceptedTiers {
			if incentive.TierFromName(name) == tier && tier != incentive.TierNone {
				accepted = true
				break
			}
		}
		if !accepted {
			return result(cond, false,
				fmt.Sprintf("project tier %q is not among accepted tiers %v", tierLabel(tier), params.AcceptedTiers))
		}
	}
	if params.MinEnergyReduction != nil && ctx.Project.EnergyReductionPct < *params.MinEnergyReduction {
		return result(cond, false,
			fmt.Sprintf("energy reduction %.1f%% is below required %.1f%%", ctx.Project.EnergyReductionPct, *params.MinEnergyReduction))
	}
	for _, cert := range params.RequiredCertifications {
		if !containsFold(ctx.Project.Certifications, cert) {
			return result(cond, false, fmt.Sprintf("missing required certification %q", cert))
		}
	}
	for _, renewable := range params.RequiredRenewables {
		if !containsFold(ctx.Project.RenewableTechnologies, renewable) {
			return result(cond, false, fmt.Sprintf("missing required renewable %q", renewable))
		}
	}

	return result(cond, true, fmt.Sprintf("sustainability requirements met (tier %q)", tierLabel(tier)))
}

func tierLabel(t incentive.Tier) string {
	if t == incentive.TierNone {
		return "none"
	}
	return t.String()
}

func evaluateFinancial(ctx *Context, cond Condition) Result {
	params := cond.Financial
	if params == nil {
		return result(cond, false, "financial condition missing parameters")
	}
	if ctx.Project == nil || ctx.Computed == nil {
		return result(cond, false, "no project data to check financials against")
	}

	var value float64
	switch params.Metric {
	case "total_development_cost":
		value = ctx.Project.TotalDevelopmentCost
	case "hard_costs":
		value = ctx.Project.HardCosts
	case "soft_costs":
		value = ctx.Project.SoftCosts
	case "cost_per_unit":
		value = ctx.Computed.CostPerUnit
	case "cost_per_sqft":
		value = ctx.Computed.CostPerSqFt
	default:
		return result(cond, false, fmt.Sprintf("unknown financial metric %q", params.Metric))
	}

	if params.MinValue != nil && value < *params.MinValue {
		return result(cond, false,
			fmt.Sprintf("%s %.2f is below minimum %.2f", params.Metric, value, *params.MinValue))
	}
	if params.MaxValue != nil && value > *params.MaxValue {
		return result(cond, false,
			fmt.Sprintf("%s %.2f exceeds maximum %.2f", params.Metric, value, *params.MaxValue))
	}
	return result(cond, true, fmt.Sprintf("%s %.2f within required bounds", params.Metric, value))
}

func evaluateTechnology(ctx *Context, cond Condition) Result {
	params := cond.Technology
	if params == nil {
		return result(cond, false, "technology condition missing parameters")
	}
	if ctx.Project == nil {
		return result(cond, false, "no project data to check technologies against")
	}

	tags := ctx.Project.TechnologyTags()

	for _, required := range params.RequiredTypes {
		if !containsFold(tags, required) {
			return result(cond, false, fmt.Sprintf("project lacks required technology %q", required))
		}
	}
	if len(params.AcceptedTypes) > 0 {
		matched := false
		for _, accepted := range params.AcceptedTypes {
			if containsFold(tags, accepted) {
				matched = true
				break
			}
		}
		if !matched {
			return result(cond, false,
				fmt.Sprintf("project technologies %v match none of %v", tags, params.AcceptedTypes))
		}
	}
	for _, excluded := range params.ExcludedTypes {
		if containsFold(tags, excluded) {
			return result(cond, false, fmt.Sprintf("project uses excluded technology %q", excluded))
		}
	}

	capacityKW := ctx.Project.CapacityMW * constants.KWPerMW
	if params.MinCapacityKW != nil && capacityKW < *params.MinCapacityKW {
		return result(cond, false,
			fmt.Sprintf("capacity %.0f kW is below minimum %.0f kW", capacityKW, *params.MinCapacityKW))
	}
	if params.MaxCapacityKW != nil && capacityKW > *params.MaxCapacityKW {
		return result(cond, false,
			fmt.Sprintf("capacity %.0f kW exceeds maximum %.0f kW", capacityKW, *params.MaxCapacityKW))
	}

	return result(cond, true, "technology requirements met")
}
