package rules

import (
	"testing"
	"time"

	"github.com/aundre1/incentedge/pkg/constants"
	"github.com/aundre1/incentedge/pkg/datetime"
	"github.com/aundre1/incentedge/pkg/incentive"
)

func testEvaluationDate() time.Time {
	return datetime.MustParseTime(constants.DateTimeLayout, "2025-06-15")
}

func float64Ptr(f float64) *float64 { return &f }
func intPtr(n int) *int             { return &n }

func testProject() *incentive.Project {
	return &incentive.Project{
		ID:                    "proj-001",
		Name:                  "Atlantic Yards Phase 2",
		ProjectType:           "residential",
		SectorType:            "multifamily",
		State:                 "NY",
		County:                "Kings",
		City:                  "Brooklyn",
		TotalUnits:            100,
		AffordableUnits:       intPtr(60),
		SquareFootage:         80000,
		TotalDevelopmentCost:  10000000,
		HardCosts:             7000000,
		SoftCosts:             3000000,
		Certifications:        []string{"LEED Gold"},
		EnergyReductionPct:    55,
		RenewableTechnologies: []string{"solar"},
		CapacityMW:            1.5,
		MeetsDomesticContent:  true,
		MeetsPrevailingWage:   true,
		CreatedDate:           "2025-01-15",
		ConstructionStartDate: "2025-09-01",
	}
}

func testProgram() *incentive.IncentiveProgram {
	return &incentive.IncentiveProgram{
		ID:                  "prog-ny-green",
		Name:                "NY Green Building Grant",
		Provider:            "NYSERDA",
		Category:            incentive.CategoryState,
		IncentiveType:       incentive.TypeGrant,
		Status:              incentive.StatusActive,
		StartDate:           "2025-01-01",
		EndDate:             "2026-12-31",
		ApplicationDeadline: "2026-06-30",
		State:               "NY",
		ProjectTypes:        []string{"residential", "mixed_use"},
		AmountFixed:         1000000,
	}
}

func newTestContext() *Context {
	project := testProject()
	program := testProgram()
	computed := incentive.Derive(project, program, testEvaluationDate())
	return &Context{
		Project:        project,
		Program:        program,
		Computed:       &computed,
		EvaluationDate: testEvaluationDate(),
	}
}

func TestResolve(t *testing.T) {
	ctx := newTestContext()

	tests := []struct {
		name     string
		path     string
		expectOK bool
		expected any
	}{
		{
			name:     "Project string field",
			path:     "project.state",
			expectOK: true,
			expected: "NY",
		},
		{
			name:     "Project numeric field",
			path:     "project.total_units",
			expectOK: true,
			expected: float64(100),
		},
		{
			name:     "Program field",
			path:     "program.amount_fixed",
			expectOK: true,
			expected: float64(1000000),
		},
		{
			name:     "Computed field",
			path:     "computed.affordability_percentage",
			expectOK: true,
			expected: float64(60),
		},
		{
			name:     "Unknown prefix",
			path:     "market.cap_rate",
			expectOK: false,
		},
		{
			name:     "Unknown field",
			path:     "project.lot_size",
			expectOK: false,
		},
		{
			name:     "No dot",
			path:     "state",
			expectOK: false,
		},
		{
			name:     "Trailing dot",
			path:     "project.",
			expectOK: false,
		},
		{
			name:     "Empty path",
			path:     "",
			expectOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ctx.Resolve(tt.path)
			if ok != tt.expectOK {
				t.Fatalf("Resolve(%q) ok = %t, expected %t", tt.path, ok, tt.expectOK)
			}
			if ok && got != tt.expected {
				t.Errorf("Resolve(%q) = %v, expected %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestResolveOverrides(t *testing.T) {
	ctx := newTestContext()
	ctx.Overrides = map[string]any{
		"computed.is_energy_community": true,
		"project.state":                "CA",
	}

	got, ok := ctx.Resolve("computed.is_energy_community")
	if !ok || got != true {
		t.Errorf("Resolve(override) = %v/%t, expected true/true", got, ok)
	}
	got, ok = ctx.Resolve("project.state")
	if !ok || got != "CA" {
		t.Errorf("Resolve(overridden field) = %v, expected CA", got)
	}

	// Paths not in the override map still hit the record.
	got, ok = ctx.Resolve("project.city")
	if !ok || got != "Brooklyn" {
		t.Errorf("Resolve(project.city) = %v, expected Brooklyn", got)
	}
}

func TestResolveNilReceivers(t *testing.T) {
	var nilCtx *Context
	if _, ok := nilCtx.Resolve("project.state"); ok {
		t.Error("nil context must not resolve anything")
	}

	empty := &Context{EvaluationDate: testEvaluationDate()}
	if _, ok := empty.Resolve("project.state"); ok {
		t.Error("context without a project must not resolve project paths")
	}
	if _, ok := empty.Resolve("program.name"); ok {
		t.Error("context without a program must not resolve program paths")
	}
	if _, ok := empty.Resolve("computed.cost_per_unit"); ok {
		t.Error("context without computed values must not resolve computed paths")
	}
}
