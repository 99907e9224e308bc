package milp

import (
	"github.com/veloworks/veloplan/internal/params"
)

// Variable name prefixes. Reports and solver backends address variables by
// these names.
const (
	ProducePrefix = "Produce_"
	UnusedPrefix  = "Unused_"
)

// ProduceVar returns the production-count variable name for a bike type.
func ProduceVar(bikeType string) string {
	return ProducePrefix + bikeType
}

// UnusedVar returns the leftover-inventory variable name for a component.
func UnusedVar(component string) string {
	return UnusedPrefix + component
}

// Weights are the objective-term weights. Profit and quantity are rewarded;
// waste, time, and diversity are penalized.
type Weights struct {
	Profit    float64
	Waste     float64
	Time      float64
	Quantity  float64
	Diversity float64
}

// Quota bounds the premium and non-premium shares of total production.
type Quota struct {
	NonPremiumMin float64
	PremiumMax    float64
}

// Options configures Build.
type Options struct {
	// Quota adds the premium/non-premium ratio constraints when non-nil.
	Quota *Quota
}

// Terms holds the unweighted objective term expressions of a built model,
// kept so reports can break the objective down after a solve.
type Terms struct {
	Profit   Expr
	Waste    Expr
	Time     Expr
	Quantity Expr
}

// Build assembles a fresh decision model from derived parameters: one
// non-negative integer Produce variable per bike type, one non-negative
// continuous Unused variable per component, an inventory-balance equality per
// component, optional quota ratio constraints, and the weighted maximize
// objective. Every call returns an independent model; Build never solves.
func Build(p *params.Parameters, w Weights, opts Options) (*Model, Terms) {
	m := NewModel()

	produce := make(map[string]*Var, len(p.BikeTypes))
	for _, bt := range p.BikeTypes {
		produce[bt] = m.NewIntVar(ProduceVar(bt))
	}
	unused := make(map[string]*Var, len(p.Components))
	for _, c := range p.Components {
		unused[c] = m.NewFloatVar(UnusedVar(c))
	}

	var terms Terms
	for _, bt := range p.BikeTypes {
		terms.Profit.Add(p.Margin(bt), produce[bt])
		terms.Time.Add(p.ProductionTime[bt], produce[bt])
		terms.Quantity.Add(p.PriorityWeight[bt], produce[bt])
	}
	for _, c := range p.Components {
		terms.Waste.Add(1, unused[c])
	}

	// Composite maximize objective: profit and quantity rewarded, waste and
	// time penalized.
	var obj Expr
	profit := terms.Profit.Scale(w.Profit)
	for _, t := range profit.Terms() {
		obj.Add(t.Coef, t.Var)
	}
	waste := terms.Waste.Scale(-w.Waste)
	for _, t := range waste.Terms() {
		obj.Add(t.Coef, t.Var)
	}
	time := terms.Time.Scale(-w.Time)
	for _, t := range time.Terms() {
		obj.Add(t.Coef, t.Var)
	}
	quantity := terms.Quantity.Scale(w.Quantity)
	for _, t := range quantity.Terms() {
		obj.Add(t.Coef, t.Var)
	}

	objective := Objective{Expr: obj}
	if w.Diversity != 0 {
		vars := make([]*Var, 0, len(p.BikeTypes))
		for _, bt := range p.BikeTypes {
			vars = append(vars, produce[bt])
		}
		objective.Diversity = &DiversityPenalty{Weight: w.Diversity, Vars: vars}
	}
	m.SetObjective(objective)

	// Inventory balance: demand plus leftover exactly equals supply. No
	// shortfall slack, so an unsatisfiable mix is infeasible rather than
	// silently partial.
	for _, c := range p.Components {
		var expr Expr
		for _, bt := range p.BikeTypes {
			expr.Add(p.Require(bt, c), produce[bt])
		}
		expr.Add(1, unused[c])
		m.AddConstraint(Constraint{
			Name: "Inventory_" + c,
			Expr: expr,
			Rel:  Equal,
			RHS:  p.AvailableInventory[c],
		})
	}

	if opts.Quota != nil {
		addQuotaConstraints(m, p, produce, *opts.Quota)
	}

	return m, terms
}

// addQuotaConstraints keeps the ratio bounds linear by moving the fraction of
// total production to the left-hand side:
//
//	nonPremium - lower*total >= 0
//	premium    - upper*total <= 0
//
// Classification uses the explicit Premium attribute fixed at derivation.
func addQuotaConstraints(m *Model, p *params.Parameters, produce map[string]*Var, q Quota) {
	var lower Expr
	for _, bt := range p.BikeTypes {
		coef := -q.NonPremiumMin
		if !p.Premium[bt] {
			coef += 1
		}
		lower.Add(coef, produce[bt])
	}
	m.AddConstraint(Constraint{
		Name: "MinNonPremiumQuota",
		Expr: lower,
		Rel:  GreaterEq,
		RHS:  0,
	})

	var upper Expr
	for _, bt := range p.BikeTypes {
		coef := -q.PremiumMax
		if p.Premium[bt] {
			coef += 1
		}
		upper.Add(coef, produce[bt])
	}
	m.AddConstraint(Constraint{
		Name: "MaxPremiumQuota",
		Expr: upper,
		Rel:  LessEq,
		RHS:  0,
	})
}
