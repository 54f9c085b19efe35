package rules

import (
	"strings"
	"testing"
)

func TestEvaluateIRABonus(t *testing.T) {
	tests := []struct {
		name     string
		params   *BonusParams
		mutate   func(*Context)
		expected bool
	}{
		{
			name:     "Domestic content met",
			params:   &BonusParams{Kind: BonusDomesticContent, Percentage: 0.10},
			expected: true,
		},
		{
			name:   "Domestic content not met",
			params: &BonusParams{Kind: BonusDomesticContent, Percentage: 0.10},
			mutate: func(ctx *Context) {
				ctx.Project.MeetsDomesticContent = false
			},
			expected: false,
		},
		{
			name:     "Prevailing wage met",
			params:   &BonusParams{Kind: BonusPrevailingWage, Percentage: 0.10},
			expected: true,
		},
		{
			name:     "Energy community not flagged",
			params:   &BonusParams{Kind: BonusEnergyCommunity, Percentage: 0.10},
			expected: false,
		},
		{
			name:   "Energy community flagged on project",
			params: &BonusParams{Kind: BonusEnergyCommunity, Percentage: 0.10},
			mutate: func(ctx *Context) {
				ctx.Project.IsEnergyCommunity = true
			},
			expected: true,
		},
		{
			name:     "Low income via affordability percentage",
			params:   &BonusParams{Kind: BonusLowIncome, Percentage: 0.10},
			expected: true, // 60% affordable clears the 50% threshold
		},
		{
			name:   "Low income via community flag",
			params: &BonusParams{Kind: BonusLowIncome, Percentage: 0.10},
			mutate: func(ctx *Context) {
				ctx.Project.IsLowIncomeCommunity = true
				computed := *ctx.Computed
				computed.AffordabilityPercentage = 10
				ctx.Computed = &computed
			},
			expected: true,
		},
		{
			name:   "Low income with neither signal",
			params: &BonusParams{Kind: BonusLowIncome, Percentage: 0.10},
			mutate: func(ctx *Context) {
				computed := *ctx.Computed
				computed.AffordabilityPercentage = 10
				ctx.Computed = &computed
			},
			expected: false,
		},
		{
			name:     "Unknown kind fails closed",
			params:   &BonusParams{Kind: "overtime", Percentage: 0.10},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext()
			if tt.mutate != nil {
				tt.mutate(ctx)
			}
			r := Evaluate(ctx, Condition{Type: TypeIRABonus, Bonus: tt.params, Weight: 0.5})
			if r.Passed != tt.expected {
				t.Errorf("passed = %t, expected %t (message: %s)", r.Passed, tt.expected, r.Message)
			}
		})
	}
}

func TestEvaluateIRABonusMissingParams(t *testing.T) {
	ctx := newTestContext()
	r := Evaluate(ctx, Condition{Type: TypeIRABonus})
	if r.Passed {
		t.Error("ira_bonus without parameters must fail closed")
	}
}

func TestEvaluateIRABonusRequirements(t *testing.T) {
	ctx := newTestContext()

	// Passing nested requirements keep the bonus.
	cond := Condition{Type: TypeIRABonus, Bonus: &BonusParams{
		Kind:       BonusDomesticContent,
		Percentage: 0.10,
		Requirements: []Condition{
			{Type: TypeComparison, Field: "project.capacity_mw", Operator: OpGt, Value: 1.0},
		},
	}}
	r := Evaluate(ctx, cond)
	if !r.Passed {
		t.Fatalf("expected bonus with satisfied requirements to pass, got: %s", r.Message)
	}
	if len(r.Children) != 1 {
		t.Errorf("expected 1 child result, got %d", len(r.Children))
	}

	// A failing requirement retracts an otherwise-eligible bonus.
	cond.Bonus.Requirements = []Condition{
		{Type: TypeComparison, Field: "project.capacity_mw", Operator: OpGt, Value: 5.0},
	}
	r = Evaluate(ctx, cond)
	if r.Passed {
		t.Error("expected failing requirements to retract the bonus")
	}
	if !strings.Contains(r.Message, "requirements not met") {
		t.Errorf("message should explain the retraction, got %q", r.Message)
	}
	if len(r.Children) != 1 {
		t.Errorf("expected child results on retraction, got %d", len(r.Children))
	}
}

func TestEvaluateComposite(t *testing.T) {
	passing := Condition{Type: TypeComparison, Field: "project.state", Operator: OpEq, Value: "NY", Weight: 0.6}
	failing := Condition{Type: TypeComparison, Field: "project.state", Operator: OpEq, Value: "CA", Weight: 0.8}

	tests := []struct {
		name     string
		cond     Condition
		expected bool
	}{
		{
			name:     "AND with all passing",
			cond:     Condition{Type: TypeComposite, Logic: LogicAnd, Children: []Condition{passing, passing}},
			expected: true,
		},
		{
			name:     "AND with one failing",
			cond:     Condition{Type: TypeComposite, Logic: LogicAnd, Children: []Condition{passing, failing}},
			expected: false,
		},
		{
			name:     "OR with one passing",
			cond:     Condition{Type: TypeComposite, Logic: LogicOr, Children: []Condition{failing, passing}},
			expected: true,
		},
		{
			name:     "OR with none passing",
			cond:     Condition{Type: TypeComposite, Logic: LogicOr, Children: []Condition{failing, failing}},
			expected: false,
		},
		{
			name:     "NOT inverts failure",
			cond:     Condition{Type: TypeComposite, Logic: LogicNot, Children: []Condition{failing}},
			expected: true,
		},
		{
			name:     "NOT inverts success",
			cond:     Condition{Type: TypeComposite, Logic: LogicNot, Children: []Condition{passing}},
			expected: false,
		},
		{
			name: "Nested composites",
			cond: Condition{Type: TypeComposite, Logic: LogicAnd, Children: []Condition{
				passing,
				{Type: TypeComposite, Logic: LogicOr, Children: []Condition{failing, passing}},
			}},
			expected: true,
		},
		{
			name:     "No children fails closed",
			cond:     Condition{Type: TypeComposite, Logic: LogicAnd},
			expected: false,
		},
		{
			name:     "Unknown logic fails closed",
			cond:     Condition{Type: TypeComposite, Logic: "XOR", Children: []Condition{passing}},
			expected: false,
		},
	}

	ctx := newTestContext()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Evaluate(ctx, tt.cond)
			if r.Passed != tt.expected {
				t.Errorf("passed = %t, expected %t (message: %s)", r.Passed, tt.expected, r.Message)
			}
		})
	}
}

func TestEvaluateCompositeWeightDefaultsToHeaviestChild(t *testing.T) {
	ctx := newTestContext()

	cond := Condition{Type: TypeComposite, Logic: LogicAnd, Children: []Condition{
		{Type: TypeComparison, Field: "project.state", Operator: OpEq, Value: "NY", Weight: 0.6},
		{Type: TypeComparison, Field: "project.total_units", Operator: OpGt, Value: 10, Weight: 0.9},
	}}

	r := Evaluate(ctx, cond)
	if r.Weight != 0.9 {
		t.Errorf("composite weight = %v, expected heaviest child 0.9", r.Weight)
	}

	cond.Weight = 0.3
	r = Evaluate(ctx, cond)
	if r.Weight != 0.3 {
		t.Errorf("explicit composite weight = %v, expected 0.3", r.Weight)
	}
}

func TestEvaluateCompositeRecordsChildren(t *testing.T) {
	ctx := newTestContext()
	cond := Condition{Type: TypeComposite, Logic: LogicOr, Children: []Condition{
		{Type: TypeComparison, Field: "project.state", Operator: OpEq, Value: "CA"},
		{Type: TypeComparison, Field: "project.state", Operator: OpEq, Value: "NY"},
	}}

	r := Evaluate(ctx, cond)
	if len(r.Children) != 2 {
		t.Fatalf("expected 2 child results, got %d", len(r.Children))
	}
	if r.Children[0].Passed || !r.Children[1].Passed {
		t.Errorf("child outcomes = %t/%t, expected false/true", r.Children[0].Passed, r.Children[1].Passed)
	}
}
