// Package rules defines the rule-condition language used to decide program
// eligibility and implements its evaluator and the default rule builder.
package rules

// ConditionType tags the variant of a rule condition. The set is closed: the
// evaluator switches over it exhaustively and treats anything else as a
// failing condition.
type ConditionType string

const (
	TypeComparison     ConditionType = "comparison"
	TypeDate           ConditionType = "date"
	TypeGeographic     ConditionType = "geographic"
	TypeAffordability  ConditionType = "affordability"
	TypeSustainability ConditionType = "sustainability"
	TypeFinancial      ConditionType = "financial"
	TypeEntity         ConditionType = "entity"
	TypeTechnology     ConditionType = "technology"
	TypeIRABonus       ConditionType = "ira_bonus"
	TypeStacking       ConditionType = "stacking"
	TypeComposite      ConditionType = "composite"
	TypeCustom         ConditionType = "custom"
)

// Operator names a comparison or date operator.
type Operator string

// Comparison operators.
const (
	OpEq          Operator = "eq"
	OpNeq         Operator = "neq"
	OpGt          Operator = "gt"
	OpGte         Operator = "gte"
	OpLt          Operator = "lt"
	OpLte         Operator = "lte"
	OpBetween     Operator = "between"
	OpIn          Operator = "in"
	OpNotIn       Operator = "not_in"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
	OpStartsWith  Operator = "starts_with"
	OpEndsWith    Operator = "ends_with"
	OpMatches     Operator = "matches"
	OpExists      Operator = "exists"
	OpNotExists   Operator = "not_exists"
)

// Date operators.
const (
	OpIsActive   Operator = "is_active"
	OpBefore     Operator = "before"
	OpAfter      Operator = "after"
	OpWithinDays Operator = "within_days"
)

// Geographic operators.
const (
	OpAny  Operator = "any"
	OpNone Operator = "none"
)

// LogicOperator combines the children of a composite condition.
type LogicOperator string

const (
	LogicAnd LogicOperator = "AND"
	LogicOr  LogicOperator = "OR"
	LogicNot LogicOperator = "NOT"
)

// BonusKind names an IRA bonus adder.
type BonusKind string

const (
	BonusDomesticContent BonusKind = "domestic_content"
	BonusEnergyCommunity BonusKind = "energy_community"
	BonusPrevailingWage  BonusKind = "prevailing_wage"
	BonusLowIncome       BonusKind = "low_income"
)

// Condition is one eligibility rule. Type selects the variant; the
// variant-specific parameter blocks below are nil for other variants.
type Condition struct {
	Type        ConditionType `json:"type" mapstructure:"type"`
	Description string        `json:"description,omitempty" mapstructure:"description"`
	Required    bool          `json:"required" mapstructure:"required"`
	Weight      float64       `json:"weight" mapstructure:"weight"`

	// comparison and date variants
	Field    string   `json:"field,omitempty" mapstructure:"field"`
	Operator Operator `json:"operator,omitempty" mapstructure:"operator"`
	Value    any      `json:"value,omitempty" mapstructure:"value"`
	ValueMax any      `json:"value_max,omitempty" mapstructure:"value_max"`

	Geographic     *GeographicParams     `json:"geographic,omitempty" mapstructure:"geographic"`
	Affordability  *AffordabilityParams  `json:"affordability,omitempty" mapstructure:"affordability"`
	Sustainability *SustainabilityParams `json:"sustainability,omitempty" mapstructure:"sustainability"`
	Financial      *FinancialParams      `json:"financial,omitempty" mapstructure:"financial"`
	Technology     *TechnologyParams     `json:"technology,omitempty" mapstructure:"technology"`
	Bonus          *BonusParams          `json:"bonus,omitempty" mapstructure:"bonus"`

	// composite variant
	Logic    LogicOperator `json:"logic,omitempty" mapstructure:"logic"`
	Children []Condition   `json:"children,omitempty" mapstructure:"children"`
}

// GeographicParams constrain where a project must be located.
type GeographicParams struct {
	Scope        string   `json:"scope" mapstructure:"scope"` // state, county, city, zip_code, census_tract, utility_territory
	Operator     Operator `json:"operator" mapstructure:"operator"`
	Values       []string `json:"values" mapstructure:"values"`
	AllowFederal bool     `json:"allow_federal" mapstructure:"allow_federal"`
}

// AffordabilityParams constrain a project's affordable-housing profile.
// Every declared sub-check must pass; a params block with nothing declared
// trivially passes.
type AffordabilityParams struct {
	MinPercentage *float64 `json:"min_percentage,omitempty" mapstructure:"min_percentage"`
	MaxPercentage *float64 `json:"max_percentage,omitempty" mapstructure:"max_percentage"`
	MinUnits      int      `json:"min_units,omitempty" mapstructure:"min_units"`
	AMILevel      int      `json:"ami_level,omitempty" mapstructure:"ami_level"`
}

// SustainabilityParams constrain a project's sustainability profile.
type SustainabilityParams struct {
	MinTier                string   `json:"min_tier,omitempty" mapstructure:"min_tier"`
	AcceptedTiers          []string `json:"accepted_tiers,omitempty" mapstructure:"accepted_tiers"`
	MinEnergyReduction     *float64 `json:"min_energy_reduction,omitempty" mapstructure:"min_energy_reduction"`
	RequiredCertifications []string `json:"required_certifications,omitempty" mapstructure:"required_certifications"`
	RequiredRenewables     []string `json:"required_renewables,omitempty" mapstructure:"required_renewables"`
}

// FinancialParams constrain one project cost metric.
type FinancialParams struct {
	Metric   string   `json:"metric" mapstructure:"metric"` // total_development_cost, hard_costs, soft_costs, cost_per_unit, cost_per_sqft
	MinValue *float64 `json:"min_value,omitempty" mapstructure:"min_value"`
	MaxValue *float64 `json:"max_value,omitempty" mapstructure:"max_value"`
}

// TechnologyParams constrain a project's technology profile.
type TechnologyParams struct {
	RequiredTypes []string `json:"required_types,omitempty" mapstructure:"required_types"`
	AcceptedTypes []string `json:"accepted_types,omitempty" mapstructure:"accepted_types"`
	ExcludedTypes []string `json:"excluded_types,omitempty" mapstructure:"excluded_types"`
	MinCapacityKW *float64 `json:"min_capacity_kw,omitempty" mapstructure:"min_capacity_kw"`
	MaxCapacityKW *float64 `json:"max_capacity_kw,omitempty" mapstructure:"max_capacity_kw"`
}

// BonusParams describe an IRA bonus adder and any extra requirements that
// must hold for the bonus to stick.
type BonusParams struct {
	Kind         BonusKind   `json:"kind" mapstructure:"kind"`
	Percentage   float64     `json:"percentage" mapstructure:"percentage"`
	Requirements []Condition `json:"requirements,omitempty" mapstructure:"requirements"`
}

// Result is the outcome of evaluating one condition. Results are never
// mutated after creation.
type Result struct {
	Type     ConditionType `json:"type"`
	Passed   bool          `json:"passed"`
	Required bool          `json:"required"`
	Weight   float64       `json:"weight"`
	Message  string        `json:"message"`
	Children []Result      `json:"children,omitempty"`
}
