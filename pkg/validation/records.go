// Package validation checks project and program records before evaluation
// and reports configuration problems as errors or non-fatal warnings.
package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/aundre1/incentedge/pkg/constants"
	"github.com/aundre1/incentedge/pkg/datetime"
	"github.com/aundre1/incentedge/pkg/incentive"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateProject checks the structural validity of a project record.
func ValidateProject(project *incentive.Project) error {
	if project == nil {
		return fmt.Errorf("no project record")
	}
	if err := validate.Struct(project); err != nil {
		return fmt.Errorf("invalid project record: %w", err)
	}
	if project.AffordableUnits != nil && *project.AffordableUnits > project.TotalUnits {
		return fmt.Errorf("project declares %d affordable units out of %d total",
			*project.AffordableUnits, project.TotalUnits)
	}
	return nil
}

// ValidatePrograms checks the structural validity of every program record.
func ValidatePrograms(programs []incentive.IncentiveProgram) error {
	for i := range programs {
		if err := validate.Struct(&programs[i]); err != nil {
			return fmt.Errorf("invalid program record %s: %w", programLabel(&programs[i], i), err)
		}
	}
	return nil
}

// ProgramWarnings reports suspect but non-fatal problems in program records:
// the evaluation proceeds, the caller decides whether to care.
func ProgramWarnings(programs []incentive.IncentiveProgram) []string {
	var warnings []string
	for i := range programs {
		program := &programs[i]
		label := programLabel(program, i)

		if program.AmountMax > 0 && program.AmountMin > program.AmountMax {
			warnings = append(warnings, fmt.Sprintf(
				"program %s declares amount_min %.0f above amount_max %.0f", label, program.AmountMin, program.AmountMax))
		}
		if program.AmountFixed == 0 && program.AmountPercentage == 0 &&
			program.AmountPerUnit == 0 && program.AmountPerKW == 0 && program.AmountMax == 0 {
			warnings = append(warnings, fmt.Sprintf(
				"program %s declares no value formula; estimated value will be zero", label))
		}

		start, startOK := datetime.Parse(program.StartDate)
		if program.StartDate != "" && !startOK {
			warnings = append(warnings, fmt.Sprintf("program %s has unparseable start_date %q", label, program.StartDate))
		}
		if program.EndDate != "" {
			if end, ok := datetime.Parse(program.EndDate); !ok {
				warnings = append(warnings, fmt.Sprintf("program %s has unparseable end_date %q", label, program.EndDate))
			} else if startOK && end.Before(start) {
				warnings = append(warnings, fmt.Sprintf("program %s ends before it starts (%s < %s)",
					label, program.EndDate, program.StartDate))
			}
		}
		if program.ApplicationDeadline != "" {
			if deadline, ok := datetime.Parse(program.ApplicationDeadline); !ok {
				warnings = append(warnings, fmt.Sprintf("program %s has unparseable application_deadline %q",
					label, program.ApplicationDeadline))
			} else if startOK && deadline.Before(start) {
				warnings = append(warnings, fmt.Sprintf("program %s deadline precedes its start date (%s < %s)",
					label, program.ApplicationDeadline, program.StartDate))
			}
		}

		for _, restriction := range program.StackingRestrictions {
			if restriction.ProgramID == "" && restriction.ProgramName == "" {
				warnings = append(warnings, fmt.Sprintf(
					"program %s has a stacking restriction that references no program", label))
			}
		}
	}
	return warnings
}

// ValidateOutputFormat checks that the requested output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("invalid output format: %s", format)
}

func programLabel(program *incentive.IncentiveProgram, index int) string {
	if program.ID != "" {
		return program.ID
	}
	if program.Name != "" {
		return program.Name
	}
	return fmt.Sprintf("#%d", index)
}
