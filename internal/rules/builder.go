package rules

import (
	"github.com/aundre1/incentedge/pkg/incentive"
)

// Default weights for synthesized conditions.
const (
	weightProgramActive = 1.0
	weightDeadline      = 0.95
	weightGeographic    = 0.9
	weightCountyCity    = 0.85
	weightProjectType   = 0.8
	weightTechnology    = 0.8
	weightSectorType    = 0.75
	weightBonus         = 0.5
)

// BuildConditions synthesizes the default eligibility conditions for a
// program from its declarative fields. Programs carry no authored rule sets;
// everything the evaluator checks comes from here.
func BuildConditions(program *incentive.IncentiveProgram) []Condition {
	if program == nil {
		return nil
	}
	var conds []Condition

	conds = append(conds, geographicConditions(program)...)

	if len(program.ProjectTypes) > 0 {
		conds = append(conds, Condition{
			Type:        TypeComparison,
			Description: "project type accepted by program",
			Field:       "project.project_type",
			Operator:    OpIn,
			Value:       program.ProjectTypes,
			Required:    true,
			Weight:      weightProjectType,
		})
	}
	if len(program.SectorTypes) > 0 {
		conds = append(conds, Condition{
			Type:        TypeComparison,
			Description: "sector accepted by program",
			Field:       "project.sector_type",
			Operator:    OpIn,
			Value:       program.SectorTypes,
			Required:    true,
			Weight:      weightSectorType,
		})
	}

	if len(program.TechnologyTypes) > 0 {
		conds = append(conds, Condition{
			Type:        TypeTechnology,
			Description: "project uses an eligible technology",
			Required:    true,
			Weight:      weightTechnology,
			Technology: &TechnologyParams{
				AcceptedTypes: program.TechnologyTypes,
			},
		})
	}

	conds = append(conds, Condition{
		Type:        TypeDate,
		Description: "program currently active",
		Operator:    OpIsActive,
		Required:    true,
		Weight:      weightProgramActive,
	})
	if program.ApplicationDeadline != "" {
		conds = append(conds, Condition{
			Type:        TypeDate,
			Description: "application deadline not passed",
			Field:       "program.application_deadline",
			Operator:    OpAfter,
			Required:    true,
			Weight:      weightDeadline,
		})
	}

	return conds
}

func geographicConditions(program *incentive.IncentiveProgram) []Condition {
	var conds []Condition

	if program.IsFederal() {
		conds = append(conds, Condition{
			Type:        TypeGeographic,
			Description: "program available nationwide",
			Required:    true,
			Weight:      weightGeographic,
			Geographic: &GeographicParams{
				Scope:        "state",
				Operator:     OpIn,
				AllowFederal: true,
			},
		})
		return conds
	}

	if program.State != "" {
		conds = append(conds, Condition{
			Type:        TypeGeographic,
			Description: "project located in program state",
			Required:    true,
			Weight:      weightGeographic,
			Geographic: &GeographicParams{
				Scope:    "state",
				Operator: OpIn,
				Values:   []string{program.State},
			},
		})
	}
	if len(program.Counties) > 0 {
		conds = append(conds, Condition{
			Type:        TypeGeographic,
			Description: "project located in an eligible county",
			Required:    true,
			Weight:      weightCountyCity,
			Geographic: &GeographicParams{
				Scope:    "county",
				Operator: OpIn,
				Values:   program.Counties,
			},
		})
	}
	if len(program.Municipalities) > 0 {
		conds = append(conds, Condition{
			Type:        TypeGeographic,
			Description: "project located in an eligible municipality",
			Required:    true,
			Weight:      weightCountyCity,
			Geographic: &GeographicParams{
				Scope:    "city",
				Operator: OpIn,
				Values:   program.Municipalities,
			},
		})
	}

	return conds
}

// BuildBonusConditions synthesizes zero to three ira_bonus conditions from
// the program's bonus-percentage fields. Bonus conditions are never required;
// they feed value stacking, not qualification.
func BuildBonusConditions(program *incentive.IncentiveProgram) []Condition {
	if program == nil {
		return nil
	}
	var conds []Condition

	if program.DomesticContentBonus > 0 {
		conds = append(conds, bonusCondition(BonusDomesticContent, program.DomesticContentBonus,
			"domestic content bonus"))
	}
	if program.EnergyCommunityBonus > 0 {
		conds = append(conds, bonusCondition(BonusEnergyCommunity, program.EnergyCommunityBonus,
			"energy community bonus"))
	}
	if program.PrevailingWageBonus > 0 {
		conds = append(conds, bonusCondition(BonusPrevailingWage, program.PrevailingWageBonus,
			"prevailing wage bonus"))
	}

	return conds
}

func bonusCondition(kind BonusKind, percentage float64, description string) Condition {
	return Condition{
		Type:        TypeIRABonus,
		Description: description,
		Required:    false,
		Weight:      weightBonus,
		Bonus: &BonusParams{
			Kind:       kind,
			Percentage: percentage,
		},
	}
}
