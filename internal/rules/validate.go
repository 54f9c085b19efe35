package rules

import (
	"fmt"
)

// Validate checks a condition set for configuration errors before
// evaluation. Evaluation itself fails closed on bad data; Validate exists so
// authoring mistakes surface as errors instead of silently changing
// semantics. In particular a NOT composite with more than one child is
// rejected here, because evaluation only ever inspects the first child.
func Validate(conds []Condition) error {
	for i, cond := range conds {
		if err := validateCondition(cond); err != nil {
			return fmt.Errorf("condition %d: %w", i, err)
		}
	}
	return nil
}

func validateCondition(cond Condition) error {
	if cond.Weight < 0 || cond.Weight > 1 {
		return fmt.Errorf("weight %v outside [0, 1]", cond.Weight)
	}

	switch cond.Type {
	case TypeComposite:
		if len(cond.Children) == 0 {
			return fmt.Errorf("composite %s group has no children", cond.Logic)
		}
		if cond.Logic == LogicNot && len(cond.Children) > 1 {
			return fmt.Errorf("NOT group has %d children; NOT is unary", len(cond.Children))
		}
		if cond.Logic != LogicAnd && cond.Logic != LogicOr && cond.Logic != LogicNot {
			return fmt.Errorf("unknown composite logic %q", cond.Logic)
		}
		if err := Validate(cond.Children); err != nil {
			return err
		}
	case TypeIRABonus:
		if cond.Bonus == nil {
			return fmt.Errorf("ira_bonus condition missing bonus parameters")
		}
		if cond.Bonus.Percentage < 0 {
			return fmt.Errorf("bonus percentage %v is negative", cond.Bonus.Percentage)
		}
		if err := Validate(cond.Bonus.Requirements); err != nil {
			return err
		}
	case TypeComparison, TypeDate, TypeGeographic, TypeAffordability,
		TypeSustainability, TypeFinancial, TypeEntity, TypeTechnology,
		TypeStacking, TypeCustom:
		// Structurally fine; evaluation handles per-variant data problems.
	default:
		return fmt.Errorf("unknown condition type %q", cond.Type)
	}
	return nil
}
