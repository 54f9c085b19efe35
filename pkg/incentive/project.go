// Package incentive defines the data structures shared by the eligibility
// engine: development projects, incentive programs, and the values derived
// from them during an evaluation.
package incentive

// Project is an immutable snapshot of a real-estate development. The engine
// only reads it; ownership stays with the caller.
type Project struct {
	ID   string `json:"id" mapstructure:"id"`
	Name string `json:"name" mapstructure:"name"`

	// Classification
	ProjectType string `json:"project_type" mapstructure:"project_type"` // residential, commercial, mixed_use, ...
	SectorType  string `json:"sector_type" mapstructure:"sector_type"`   // multifamily, office, industrial, ...

	// Location
	State            string `json:"state" mapstructure:"state"`
	County           string `json:"county" mapstructure:"county"`
	City             string `json:"city" mapstructure:"city"`
	ZipCode          string `json:"zip_code" mapstructure:"zip_code"`
	CensusTract      string `json:"census_tract" mapstructure:"census_tract"`
	UtilityTerritory string `json:"utility_territory" mapstructure:"utility_territory"`

	// Units and size
	TotalUnits      int      `json:"total_units" mapstructure:"total_units" validate:"gte=0"`
	AffordableUnits *int     `json:"affordable_units,omitempty" mapstructure:"affordable_units"`
	SquareFootage   float64  `json:"square_footage" mapstructure:"square_footage" validate:"gte=0"`
	Affordability   AMIUnits `json:"affordability_breakdown" mapstructure:"affordability_breakdown"`

	// Costs
	TotalDevelopmentCost float64 `json:"total_development_cost" mapstructure:"total_development_cost" validate:"gte=0"`
	HardCosts            float64 `json:"hard_costs" mapstructure:"hard_costs" validate:"gte=0"`
	SoftCosts            float64 `json:"soft_costs" mapstructure:"soft_costs" validate:"gte=0"`

	// Sustainability
	Certifications        []string `json:"certifications" mapstructure:"certifications"`
	EnergyReductionPct    float64  `json:"energy_reduction_pct" mapstructure:"energy_reduction_pct"`
	RenewableTechnologies []string `json:"renewable_technologies" mapstructure:"renewable_technologies"`
	CapacityMW            float64  `json:"capacity_mw" mapstructure:"capacity_mw" validate:"gte=0"`

	// IRA eligibility flags, supplied by the caller.
	MeetsDomesticContent  bool `json:"meets_domestic_content" mapstructure:"meets_domestic_content"`
	MeetsPrevailingWage   bool `json:"meets_prevailing_wage" mapstructure:"meets_prevailing_wage"`
	IsEnergyCommunity     bool `json:"is_energy_community" mapstructure:"is_energy_community"`
	IsLowIncomeCommunity  bool `json:"is_low_income_community" mapstructure:"is_low_income_community"`
	IsDistressedCommunity bool `json:"is_distressed_community" mapstructure:"is_distressed_community"`

	// Timeline, formatted per constants.DateTimeLayout.
	CreatedDate           string `json:"created_date" mapstructure:"created_date"`
	ConstructionStartDate string `json:"construction_start_date" mapstructure:"construction_start_date"`
	CompletionDate        string `json:"completion_date" mapstructure:"completion_date"`
}

// AMIUnits breaks affordable units down by Area Median Income bucket.
type AMIUnits struct {
	At30 int `json:"units_at_30_ami" mapstructure:"units_at_30_ami"`
	At50 int `json:"units_at_50_ami" mapstructure:"units_at_50_ami"`
	At60 int `json:"units_at_60_ami" mapstructure:"units_at_60_ami"`
	At80 int `json:"units_at_80_ami" mapstructure:"units_at_80_ami"`
}

// UnitsAtOrBelow returns the cumulative number of units at or below the given
// AMI percentage. Buckets accumulate: a 60% query sums the 30, 50, and 60
// buckets.
func (a AMIUnits) UnitsAtOrBelow(amiPct int) int {
	total := 0
	if amiPct >= 30 {
		total += a.At30
	}
	if amiPct >= 50 {
		total += a.At50
	}
	if amiPct >= 60 {
		total += a.At60
	}
	if amiPct >= 80 {
		total += a.At80
	}
	return total
}

// Total returns the number of units across all AMI buckets.
func (a AMIUnits) Total() int {
	return a.At30 + a.At50 + a.At60 + a.At80
}

// TechnologyTags returns the searchable technology descriptors for the
// project: declared renewables plus its building and sector types.
func (p *Project) TechnologyTags() []string {
	tags := make([]string, 0, len(p.RenewableTechnologies)+2)
	tags = append(tags, p.RenewableTechnologies...)
	if p.ProjectType != "" {
		tags = append(tags, p.ProjectType)
	}
	if p.SectorType != "" {
		tags = append(tags, p.SectorType)
	}
	return tags
}

// LocationValue returns the project's value for a geographic scope name,
// empty when the project does not carry one.
func (p *Project) LocationValue(scope string) string {
	switch scope {
	case "state":
		return p.State
	case "county":
		return p.County
	case "city":
		return p.City
	case "zip_code":
		return p.ZipCode
	case "census_tract":
		return p.CensusTract
	case "utility_territory":
		return p.UtilityTerritory
	}
	return ""
}
