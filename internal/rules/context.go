package rules

import (
	"strings"
	"time"

	"github.com/aundre1/incentedge/pkg/incentive"
)

// Context carries everything a condition can be evaluated against: the
// project, the program under evaluation, the derived values, and an optional
// override map consulted before any record field.
type Context struct {
	Project  *incentive.Project
	Program  *incentive.IncentiveProgram
	Computed *incentive.ComputedValues

	// Overrides maps full dotted paths (e.g. "computed.is_energy_community")
	// to replacement values. Checked before record fields.
	Overrides map[string]any

	// EvaluationDate anchors all date conditions.
	EvaluationDate time.Time
}

// Resolve looks up a dotted field path ("project.total_units",
// "program.amount_max", "computed.cost_per_unit"). It never panics: any
// broken path resolves to (nil, false).
func (c *Context) Resolve(path string) (any, bool) {
	if c == nil || path == "" {
		return nil, false
	}
	if c.Overrides != nil {
		if v, ok := c.Overrides[path]; ok {
			return v, true
		}
	}

	prefix, field, ok := strings.Cut(path, ".")
	if !ok || field == "" {
		return nil, false
	}

	var fields map[string]any
	switch prefix {
	case "project":
		fields = c.Project.FieldMap()
	case "program":
		fields = c.Program.FieldMap()
	case "computed":
		fields = c.Computed.FieldMap()
	default:
		return nil, false
	}
	v, ok := fields[field]
	return v, ok
}
