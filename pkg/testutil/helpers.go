// Package testutil provides common utility functions for testing.
package testutil

import (
	"time"

	"github.com/aundre1/incentedge/internal/evaluator"
	"github.com/aundre1/incentedge/pkg/incentive"
)

// FixedEvaluationDate is the evaluation date used across tests so results
// stay reproducible.
var FixedEvaluationDate = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

// SampleProject returns a qualified-looking multifamily project in New York.
func SampleProject() incentive.Project {
	affordable := 60
	return incentive.Project{
		ID:                    "proj-hudson-yards",
		Name:                  "Hudson Green Apartments",
		ProjectType:           "residential",
		SectorType:            "multifamily",
		State:                 "NY",
		County:                "Westchester",
		City:                  "Yonkers",
		ZipCode:               "10701",
		TotalUnits:            100,
		AffordableUnits:       &affordable,
		SquareFootage:         120_000,
		TotalDevelopmentCost:  10_000_000,
		HardCosts:             7_500_000,
		SoftCosts:             2_500_000,
		Certifications:        []string{"LEED Gold"},
		EnergyReductionPct:    55,
		RenewableTechnologies: []string{"solar"},
		CapacityMW:            1.5,
		MeetsDomesticContent:  true,
		MeetsPrevailingWage:   true,
		CreatedDate:           "2024-01-10",
		ConstructionStartDate: "2025-09-01",
	}
}

// SampleProgram returns an active New York grant program with a fixed amount.
func SampleProgram() incentive.IncentiveProgram {
	return incentive.IncentiveProgram{
		ID:            "prog-ny-green",
		Name:          "NY Green Building Grant",
		Provider:      "NYSERDA",
		Category:      incentive.CategoryState,
		IncentiveType: incentive.TypeGrant,
		Status:        incentive.StatusActive,
		StartDate:     "2025-01-01",
		EndDate:       "2026-12-31",
		State:         "NY",
		ProjectTypes:  []string{"residential", "mixed_use"},
		AmountFixed:   1_000_000,
	}
}

// FindMatch finds a match by program ID in the results slice. Returns a
// pointer to the match if found, nil otherwise.
func FindMatch(matches []evaluator.MatchResult, programID string) *evaluator.MatchResult {
	for i := range matches {
		if matches[i].ProgramID == programID {
			return &matches[i]
		}
	}
	return nil
}
