package incentive

// Program category and incentive type values used throughout the engine.
const (
	CategoryFederal = "federal"
	CategoryState   = "state"
	CategoryLocal   = "local"
	CategoryUtility = "utility"

	TypeTaxCredit = "tax_credit"
	TypeGrant     = "grant"
	TypeRebate    = "rebate"
	TypeLoan      = "loan"

	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusExpired  = "expired"
)

// IncentiveProgram is an immutable snapshot of an incentive's eligibility
// metadata and value formula.
type IncentiveProgram struct {
	ID       string `json:"id" mapstructure:"id"`
	Name     string `json:"name" mapstructure:"name"`
	Provider string `json:"provider" mapstructure:"provider"`

	Category      string `json:"category" mapstructure:"category" validate:"omitempty,oneof=federal state local utility"`
	IncentiveType string `json:"incentive_type" mapstructure:"incentive_type" validate:"omitempty,oneof=tax_credit grant rebate loan"`
	Status        string `json:"status" mapstructure:"status"`

	// Program window and deadline, formatted per constants.DateTimeLayout.
	StartDate           string `json:"start_date" mapstructure:"start_date"`
	EndDate             string `json:"end_date" mapstructure:"end_date"`
	ApplicationDeadline string `json:"application_deadline" mapstructure:"application_deadline"`

	// Geographic applicability
	State             string   `json:"state" mapstructure:"state"`
	Counties          []string `json:"counties" mapstructure:"counties"`
	Municipalities    []string `json:"municipalities" mapstructure:"municipalities"`
	JurisdictionLevel string   `json:"jurisdiction_level" mapstructure:"jurisdiction_level"` // federal, state, county, municipal

	// Project applicability
	ProjectTypes    []string `json:"project_types" mapstructure:"project_types"`
	SectorTypes     []string `json:"sector_types" mapstructure:"sector_types"`
	TechnologyTypes []string `json:"technology_types" mapstructure:"technology_types"`

	// Value formula. Exactly one method is normally declared; the calculator
	// picks the first applicable in fixed priority order.
	AmountFixed      float64 `json:"amount_fixed" mapstructure:"amount_fixed" validate:"gte=0"`
	AmountPercentage float64 `json:"amount_percentage" mapstructure:"amount_percentage" validate:"gte=0"`
	AmountPerUnit    float64 `json:"amount_per_unit" mapstructure:"amount_per_unit" validate:"gte=0"`
	AmountPerKW      float64 `json:"amount_per_kw" mapstructure:"amount_per_kw" validate:"gte=0"`
	AmountMin        float64 `json:"amount_min" mapstructure:"amount_min" validate:"gte=0"`
	AmountMax        float64 `json:"amount_max" mapstructure:"amount_max" validate:"gte=0"`

	// IRA bonus adders, each a percentage of the base value.
	DomesticContentBonus float64 `json:"domestic_content_bonus" mapstructure:"domestic_content_bonus" validate:"gte=0"`
	EnergyCommunityBonus float64 `json:"energy_community_bonus" mapstructure:"energy_community_bonus" validate:"gte=0"`
	PrevailingWageBonus  float64 `json:"prevailing_wage_bonus" mapstructure:"prevailing_wage_bonus" validate:"gte=0"`
	LowIncomeBonus       float64 `json:"low_income_bonus" mapstructure:"low_income_bonus" validate:"gte=0"`

	// Structured cross-program stacking restrictions.
	StackingRestrictions []StackingRestriction `json:"stacking_restrictions" mapstructure:"stacking_restrictions"`
}

// StackingRestriction references another program this program cannot be
// freely combined with. References are structured rather than free text so
// conflict detection does not depend on substring matching.
type StackingRestriction struct {
	ProgramID   string `json:"program_id" mapstructure:"program_id"`
	ProgramName string `json:"program_name" mapstructure:"program_name"`
	Note        string `json:"note" mapstructure:"note"`
}

// IsFederal reports whether the program is a federal-level incentive.
func (p *IncentiveProgram) IsFederal() bool {
	return p.Category == CategoryFederal || p.JurisdictionLevel == "federal"
}

// IsActive reports whether the program should be evaluated at all. Programs
// with no declared status are assumed active.
func (p *IncentiveProgram) IsActive() bool {
	return p.Status == "" || p.Status == StatusActive
}

// DeclaresFixedOrPercentage reports whether the program declares one of the
// two highest-confidence value methods.
func (p *IncentiveProgram) DeclaresFixedOrPercentage() bool {
	return p.AmountFixed > 0 || p.AmountPercentage > 0
}
