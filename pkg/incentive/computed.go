package incentive

import (
	"time"

	"github.com/aundre1/incentedge/pkg/constants"
	"github.com/aundre1/incentedge/pkg/datetime"
	"github.com/aundre1/incentedge/pkg/mathutil"
)

// ComputedValues holds the secondary facts derived from a project (and
// optionally a program) at a fixed evaluation date. Values are ephemeral:
// recomputed for every evaluation and never mutated after creation.
type ComputedValues struct {
	AffordabilityPercentage float64 `json:"affordability_percentage"`
	IsAffordableHousing     bool    `json:"is_affordable_housing"`

	CostPerUnit float64 `json:"cost_per_unit"`
	CostPerSqFt float64 `json:"cost_per_sqft"`

	SustainabilityTier Tier `json:"sustainability_tier"`

	ProjectAgeDays int `json:"project_age_days"`
	DaysToStart    int `json:"days_to_start"`
	DaysToDeadline int `json:"days_to_deadline"`

	// Community lookups are not implemented in this engine and always come
	// back false. Real values must be supplied on the Project record by an
	// external collaborator.
	IsEnergyCommunity     bool `json:"is_energy_community"`
	IsLowIncomeCommunity  bool `json:"is_low_income_community"`
	IsDistressedCommunity bool `json:"is_distressed_community"`
}

// Derive computes the secondary facts for a project against an optional
// program at the given evaluation date. It is a pure function: no side
// effects, no clock access (callers inject the date).
func Derive(project *Project, program *IncentiveProgram, evaluationDate time.Time) ComputedValues {
	var cv ComputedValues
	if project == nil {
		return cv
	}

	cv.AffordabilityPercentage = affordabilityPercentage(project)
	cv.IsAffordableHousing = cv.AffordabilityPercentage >= constants.AffordableHousingThreshold

	cv.CostPerUnit = mathutil.SafeRatio(project.TotalDevelopmentCost, float64(project.TotalUnits))
	cv.CostPerSqFt = mathutil.SafeRatio(project.TotalDevelopmentCost, project.SquareFootage)

	cv.SustainabilityTier = InferTier(project.Certifications, project.EnergyReductionPct)

	if created, ok := datetime.Parse(project.CreatedDate); ok {
		cv.ProjectAgeDays = datetime.DaysBetween(created, evaluationDate)
	}
	if start, ok := datetime.Parse(project.ConstructionStartDate); ok {
		cv.DaysToStart = datetime.DaysBetween(evaluationDate, start)
	}

	cv.DaysToDeadline = constants.FarFutureDeadlineDays
	if program != nil {
		if deadline, ok := datetime.Parse(program.ApplicationDeadline); ok {
			cv.DaysToDeadline = datetime.DaysBetween(evaluationDate, deadline)
		}
	}

	return cv
}

// affordabilityPercentage prefers an explicit affordable-unit count and falls
// back to summing the AMI buckets. A project with no declared units is 0%.
func affordabilityPercentage(project *Project) float64 {
	if project.TotalUnits == 0 {
		return 0
	}
	affordable := project.Affordability.Total()
	if project.AffordableUnits != nil {
		affordable = *project.AffordableUnits
	}
	return mathutil.CalculatePercentage(float64(affordable), float64(project.TotalUnits))
}
