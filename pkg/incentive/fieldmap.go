package incentive

// Field maps back the dotted-path lookups used by rule conditions
// ("project.total_units", "program.amount_max", "computed.cost_per_unit").
// Maps are built explicitly rather than via reflection so every resolvable
// path is visible here, and a path absent from its map simply resolves to
// nothing.

// FieldMap returns the project's rule-resolvable fields keyed by snake_case
// name.
func (p *Project) FieldMap() map[string]any {
	if p == nil {
		return nil
	}
	m := map[string]any{
		"id":                      p.ID,
		"name":                    p.Name,
		"project_type":            p.ProjectType,
		"sector_type":             p.SectorType,
		"state":                   p.State,
		"county":                  p.County,
		"city":                    p.City,
		"zip_code":                p.ZipCode,
		"census_tract":            p.CensusTract,
		"utility_territory":       p.UtilityTerritory,
		"total_units":             float64(p.TotalUnits),
		"square_footage":          p.SquareFootage,
		"total_development_cost":  p.TotalDevelopmentCost,
		"hard_costs":              p.HardCosts,
		"soft_costs":              p.SoftCosts,
		"certifications":          p.Certifications,
		"energy_reduction_pct":    p.EnergyReductionPct,
		"renewable_technologies":  p.RenewableTechnologies,
		"capacity_mw":             p.CapacityMW,
		"meets_domestic_content":  p.MeetsDomesticContent,
		"meets_prevailing_wage":   p.MeetsPrevailingWage,
		"is_energy_community":     p.IsEnergyCommunity,
		"is_low_income_community": p.IsLowIncomeCommunity,
		"is_distressed_community": p.IsDistressedCommunity,
		"created_date":            p.CreatedDate,
		"construction_start_date": p.ConstructionStartDate,
		"completion_date":         p.CompletionDate,
	}
	if p.AffordableUnits != nil {
		m["affordable_units"] = float64(*p.AffordableUnits)
	}
	return m
}

// FieldMap returns the program's rule-resolvable fields keyed by snake_case
// name.
func (p *IncentiveProgram) FieldMap() map[string]any {
	if p == nil {
		return nil
	}
	return map[string]any{
		"id":                     p.ID,
		"name":                   p.Name,
		"provider":               p.Provider,
		"category":               p.Category,
		"incentive_type":         p.IncentiveType,
		"status":                 p.Status,
		"start_date":             p.StartDate,
		"end_date":               p.EndDate,
		"application_deadline":   p.ApplicationDeadline,
		"state":                  p.State,
		"counties":               p.Counties,
		"municipalities":         p.Municipalities,
		"jurisdiction_level":     p.JurisdictionLevel,
		"project_types":          p.ProjectTypes,
		"sector_types":           p.SectorTypes,
		"technology_types":       p.TechnologyTypes,
		"amount_fixed":           p.AmountFixed,
		"amount_percentage":      p.AmountPercentage,
		"amount_per_unit":        p.AmountPerUnit,
		"amount_per_kw":          p.AmountPerKW,
		"amount_min":             p.AmountMin,
		"amount_max":             p.AmountMax,
		"domestic_content_bonus": p.DomesticContentBonus,
		"energy_community_bonus": p.EnergyCommunityBonus,
		"prevailing_wage_bonus":  p.PrevailingWageBonus,
		"low_income_bonus":       p.LowIncomeBonus,
	}
}

// FieldMap returns the derived values keyed by snake_case name.
func (c *ComputedValues) FieldMap() map[string]any {
	if c == nil {
		return nil
	}
	return map[string]any{
		"affordability_percentage": c.AffordabilityPercentage,
		"is_affordable_housing":    c.IsAffordableHousing,
		"cost_per_unit":            c.CostPerUnit,
		"cost_per_sqft":            c.CostPerSqFt,
		"sustainability_tier":      c.SustainabilityTier.String(),
		"project_age_days":         float64(c.ProjectAgeDays),
		"days_to_start":            float64(c.DaysToStart),
		"days_to_deadline":         float64(c.DaysToDeadline),
		"is_energy_community":      c.IsEnergyCommunity,
		"is_low_income_community":  c.IsLowIncomeCommunity,
		"is_distressed_community":  c.IsDistressedCommunity,
	}
}
