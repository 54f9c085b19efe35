package integration

import (
	"bufio"
	"bytes"
	"math"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/aundre1/incentedge/internal/config"
	"github.com/aundre1/incentedge/internal/engine"
	"github.com/aundre1/incentedge/pkg/output"
	"github.com/aundre1/incentedge/pkg/validation"
)

// runBaseline loads the fixture files exactly as main() does and runs one
// full evaluation.
func runBaseline(t *testing.T) engine.Output {
	t.Helper()
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	project, err := config.LoadProject("../test_project.yaml")
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	programs, err := config.LoadPrograms("../test_programs.yaml")
	if err != nil {
		t.Fatalf("LoadPrograms() error = %v", err)
	}

	if err := validation.ValidateProject(project); err != nil {
		t.Fatalf("ValidateProject() error = %v", err)
	}
	if err := validation.ValidatePrograms(programs); err != nil {
		t.Fatalf("ValidatePrograms() error = %v", err)
	}

	engineConfig, err := conf.Engine.ToEngineConfig()
	if err != nil {
		t.Fatalf("ToEngineConfig() error = %v", err)
	}

	return engine.EvaluateEligibility(logger, engine.Input{
		Project:  *project,
		Programs: programs,
		Config:   engineConfig,
	})
}

// TestMainIntegrationBaseline checks that the full pipeline produces the
// baseline results captured for the fixture project and program catalog.
func TestMainIntegrationBaseline(t *testing.T) {
	result := runBaseline(t)

	if result.Summary.TotalEvaluated != 3 {
		t.Errorf("Expected 3 programs evaluated, got %d", result.Summary.TotalEvaluated)
	}
	if result.Summary.Qualified != 2 {
		t.Errorf("Expected 2 qualified programs, got %d", result.Summary.Qualified)
	}
	if result.Summary.Disqualified != 1 {
		t.Errorf("Expected 1 disqualified program, got %d", result.Summary.Disqualified)
	}

	// The California grant scores below the 0.4 floor and drops out.
	if len(result.Matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(result.Matches))
	}

	baselineChecks := []struct {
		programID     string
		expectedValue float64
		qualified     bool
		rank          int
	}{
		{"prog-fed-itc", 3150000.00, true, 1},
		{"prog-ny-green", 1050000.00, true, 2},
	}
	for i, check := range baselineChecks {
		match := result.Matches[i]
		if match.ProgramID != check.programID {
			t.Errorf("Match %d: expected program %s, got %s", i, check.programID, match.ProgramID)
			continue
		}
		if math.Abs(match.EstimatedValue-check.expectedValue) > 0.01 {
			t.Errorf("%s: expected value %.2f, got %.2f", check.programID, check.expectedValue, match.EstimatedValue)
		}
		if match.Qualified != check.qualified {
			t.Errorf("%s: expected qualified=%v, got %v", check.programID, check.qualified, match.Qualified)
		}
		if match.PriorityRank != check.rank {
			t.Errorf("%s: expected rank %d, got %d", check.programID, check.rank, match.PriorityRank)
		}
	}

	if math.Abs(result.TotalPotentialValue-4200000.00) > 0.01 {
		t.Errorf("Expected total potential value 4200000.00, got %.2f", result.TotalPotentialValue)
	}

	// A federal tax credit and a state grant stack without reduction.
	if result.Stacking == nil {
		t.Fatalf("Expected stacking analysis for 2 qualified matches")
	}
	if math.Abs(result.Stacking.CombinedValue-4200000.00) > 0.01 {
		t.Errorf("Expected combined value 4200000.00, got %.2f", result.Stacking.CombinedValue)
	}
	if math.Abs(result.OptimizedTotalValue-4200000.00) > 0.01 {
		t.Errorf("Expected optimized total value 4200000.00, got %.2f", result.OptimizedTotalValue)
	}
	if len(result.Stacking.Conflicts) != 0 {
		t.Errorf("Expected no stacking conflicts, got %d", len(result.Stacking.Conflicts))
	}

	if result.Meta.EvaluationDate != "2025-06-15" {
		t.Errorf("Expected evaluation date 2025-06-15, got %s", result.Meta.EvaluationDate)
	}
}

// TestMainIntegrationPrettyOutput checks the pretty formatter against the
// baseline run.
func TestMainIntegrationPrettyOutput(t *testing.T) {
	result := runBaseline(t)

	var buf bytes.Buffer
	output.PrettyFormat(&buf, result)
	text := buf.String()

	expectedFragments := []string{
		"Investment Tax Credit",
		"NY Green Building Grant",
		"$3,150,000.00",
		"$1,050,000.00",
		"3 evaluated, 2 qualified",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(text, fragment) {
			t.Errorf("Pretty output missing %q", fragment)
		}
	}
}

// TestMainIntegrationCsvOutput checks the CSV formatter row by row.
func TestMainIntegrationCsvOutput(t *testing.T) {
	result := runBaseline(t)

	var buf bytes.Buffer
	output.CsvFormat(&buf, result)

	scanner := bufio.NewScanner(&buf)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], `"rank","program_id"`) {
		t.Errorf("Unexpected CSV header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], `1,"prog-fed-itc"`) {
		t.Errorf("Expected first row for prog-fed-itc, got: %s", lines[1])
	}
	if !strings.HasPrefix(lines[2], `2,"prog-ny-green"`) {
		t.Errorf("Expected second row for prog-ny-green, got: %s", lines[2])
	}
}

// TestProgramWarningsOnFixtures checks the catalog fixtures are clean.
func TestProgramWarningsOnFixtures(t *testing.T) {
	programs, err := config.LoadPrograms("../test_programs.yaml")
	if err != nil {
		t.Fatalf("LoadPrograms() error = %v", err)
	}
	if warnings := validation.ProgramWarnings(programs); len(warnings) != 0 {
		t.Errorf("Expected no program warnings, got %v", warnings)
	}
}
