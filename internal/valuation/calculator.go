// Package valuation computes the estimated monetary value of an incentive
// program for a project, with an auditable step-by-step breakdown.
package valuation

import (
	"fmt"

	"github.com/aundre1/incentedge/pkg/constants"
	"github.com/aundre1/incentedge/pkg/format"
	"github.com/aundre1/incentedge/pkg/incentive"
	"github.com/aundre1/incentedge/pkg/mathutil"
)

// Step is one audited operation in a value calculation.
type Step struct {
	Description string  `json:"description"`
	Operation   string  `json:"operation"` // base, multiply, add, clamp_min, clamp_max
	Delta       float64 `json:"delta"`
	Total       float64 `json:"total"`
}

// Breakdown is the full result of a value calculation. It is created once
// per evaluation and never mutated afterwards.
type Breakdown struct {
	Steps      []Step  `json:"steps"`
	BaseValue  float64 `json:"base_value"`
	FinalValue float64 `json:"final_value"`
	Confidence float64 `json:"confidence"`
	ValueLow   float64 `json:"value_low"`
	ValueHigh  float64 `json:"value_high"`
}

// BonusAdder is an eligible IRA bonus to layer onto the base value.
type BonusAdder struct {
	Kind       string  `json:"kind"`
	Percentage float64 `json:"percentage"`
}

// Calculate runs the deterministic value pipeline: method selection, tier
// multiplier, additive bonus stacking, min/max clamping, confidence, and the
// confidence-weighted value range.
func Calculate(project *incentive.Project, program *incentive.IncentiveProgram,
	computed *incentive.ComputedValues, bonuses []BonusAdder) Breakdown {

	var b Breakdown
	if project == nil || program == nil {
		return b
	}

	total := selectBase(&b, project, program)
	b.BaseValue = total

	// Tier multiplier applies before bonuses so adders compute off the
	// tier-adjusted base.
	if computed != nil {
		if mult := computed.SustainabilityTier.Multiplier(); mult > 1 && total > 0 {
			delta := total*mult - total
			total *= mult
			b.append(Step{
				Description: fmt.Sprintf("sustainability tier %s multiplier %.2fx", computed.SustainabilityTier, mult),
				Operation:   "multiply",
				Delta:       delta,
				Total:       total,
			})
		}
	}

	// Bonuses are additive off the tier-adjusted base, never compounding on
	// each other.
	adjustedBase := total
	for _, bonus := range bonuses {
		pct := mathutil.NormalizePercentage(bonus.Percentage)
		if pct <= 0 || adjustedBase <= 0 {
			continue
		}
		delta := adjustedBase * pct
		total += delta
		b.append(Step{
			Description: fmt.Sprintf("%s bonus +%.0f%% (%s)", bonus.Kind, pct*constants.PercentageMultiplier, format.Currency(delta)),
			Operation:   "add",
			Delta:       delta,
			Total:       total,
		})
	}

	// Clamp into the program's declared bounds.
	if program.AmountMin > 0 && total < program.AmountMin {
		delta := program.AmountMin - total
		total = program.AmountMin
		b.append(Step{
			Description: fmt.Sprintf("raised to program minimum %s", format.Currency(program.AmountMin)),
			Operation:   "clamp_min",
			Delta:       delta,
			Total:       total,
		})
	}
	if program.AmountMax > 0 && total > program.AmountMax {
		delta := program.AmountMax - total
		total = program.AmountMax
		b.append(Step{
			Description: fmt.Sprintf("capped at program maximum %s", format.Currency(program.AmountMax)),
			Operation:   "clamp_max",
			Delta:       delta,
			Total:       total,
		})
	}

	if total < 0 {
		total = 0
	}
	b.FinalValue = total
	b.Confidence = confidence(project, program)

	// Lower confidence widens the band around the final value.
	spread := (1 - b.Confidence) * 0.3
	b.ValueLow = mathutil.Max(0, total*(0.9-spread))
	b.ValueHigh = total * (1.1 + spread)

	return b
}

// selectBase picks the first applicable calculation method in fixed priority
// order and records it as the base step.
func selectBase(b *Breakdown, project *incentive.Project, program *incentive.IncentiveProgram) float64 {
	switch {
	case program.AmountFixed > 0:
		return b.base(program.AmountFixed,
			fmt.Sprintf("fixed amount %s", format.Currency(program.AmountFixed)))

	case program.AmountPercentage > 0 && project.TotalDevelopmentCost > 0:
		pct := mathutil.NormalizePercentage(program.AmountPercentage)
		value := project.TotalDevelopmentCost * pct
		return b.base(value,
			fmt.Sprintf("%.0f%% of total development cost %s", pct*constants.PercentageMultiplier, format.Currency(project.TotalDevelopmentCost)))

	case program.AmountPerUnit > 0 && project.TotalUnits > 0:
		value := program.AmountPerUnit * float64(project.TotalUnits)
		return b.base(value,
			fmt.Sprintf("%s per unit across %d units", format.Currency(program.AmountPerUnit), project.TotalUnits))

	case program.AmountPerKW > 0 && project.CapacityMW > 0:
		capacityKW := project.CapacityMW * constants.KWPerMW
		value := program.AmountPerKW * capacityKW
		return b.base(value,
			fmt.Sprintf("%s per kW across %.0f kW", format.Currency(program.AmountPerKW), capacityKW))

	case program.AmountMax > 0:
		value := program.AmountMax * constants.FallbackMaxFraction
		return b.base(value,
			fmt.Sprintf("%.0f%% of program maximum %s (no calculation method applies)",
				constants.FallbackMaxFraction*constants.PercentageMultiplier, format.Currency(program.AmountMax)))
	}

	return b.base(0, "program declares no usable value formula")
}

// confidence scores how much of the calculation rested on known inputs.
func confidence(project *incentive.Project, program *incentive.IncentiveProgram) float64 {
	c := constants.BaseConfidence
	if project.TotalDevelopmentCost > 0 {
		c += 0.15
	}
	if project.TotalUnits > 0 {
		c += 0.10
	}
	if project.CapacityMW > 0 {
		c += 0.10
	}
	if program.DeclaresFixedOrPercentage() {
		c += 0.10
	}
	return mathutil.Min(c, constants.ConfidenceCap)
}

func (b *Breakdown) append(step Step) {
	b.Steps = append(b.Steps, step)
}

func (b *Breakdown) base(value float64, description string) float64 {
	b.append(Step{
		Description: description,
		Operation:   "base",
		Delta:       value,
		Total:       value,
	})
	return value
}
