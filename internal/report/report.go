// Package report interprets a solved production model into plan, inventory,
// and component-breakdown tables. All outputs are plain data; rendering is
// the caller's concern.
package report

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/veloworks/veloplan/internal/milp"
	"github.com/veloworks/veloplan/internal/params"
)

// unusedTolerance bounds the allowed disagreement between the recomputed
// remaining inventory and the solver's Unused value.
const unusedTolerance = 1e-6

// ProductionRow is the plan for one bike type.
type ProductionRow struct {
	BikeType string
	Produced int
	Revenue  float64
	Cost     float64
	Profit   float64
	Hours    float64
}

// InventoryRow is the utilization of one component.
type InventoryRow struct {
	Component string
	Available float64
	Utilized  float64
	Remaining float64
}

// BreakdownRow traces one component requirement of a produced bike type back
// to its source quality.
type BreakdownRow struct {
	BikeType  string
	Component string
	Quality   string
	Utilized  float64
}

// PlanReport is the full interpretation of one optimal solve.
type PlanReport struct {
	Objective  float64
	Production []ProductionRow
	Inventory  []InventoryRow
	Breakdown  []BreakdownRow

	TotalProduced int
	TotalRevenue  float64
	TotalCost     float64
	TotalProfit   float64
	TotalHours    float64
	TotalUnused   float64
}

// Interpret turns an optimal solution into a PlanReport. Produce values are
// rounded to the nearest integer and variables absent from the assignment
// count as zero production. Calling Interpret with a non-optimal solution is
// an error; no partial report is produced.
func Interpret(p *params.Parameters, sol *milp.Solution) (*PlanReport, error) {
	if sol.Status != milp.StatusOptimal {
		return nil, fmt.Errorf("report: cannot interpret a %s solution", sol.Status)
	}

	r := &PlanReport{Objective: sol.Objective}

	produced := make(map[string]int, len(p.BikeTypes))
	for _, bt := range p.BikeTypes {
		n := int(math.Floor(sol.Value(milp.ProduceVar(bt)) + 0.5))
		produced[bt] = n

		revenue := p.WASP[bt] * float64(n)
		cost := p.UnitCost[bt] * float64(n)
		hours := p.ProductionTime[bt] * float64(n)
		r.Production = append(r.Production, ProductionRow{
			BikeType: bt,
			Produced: n,
			Revenue:  revenue,
			Cost:     cost,
			Profit:   revenue - cost,
			Hours:    hours,
		})

		r.TotalProduced += n
		r.TotalRevenue += revenue
		r.TotalCost += cost
		r.TotalProfit += revenue - cost
		r.TotalHours += hours
	}

	for _, c := range p.Components {
		var utilized float64
		for _, bt := range p.BikeTypes {
			utilized += p.Require(bt, c) * float64(produced[bt])
		}
		remaining := p.AvailableInventory[c] - utilized

		// Consistency check against the solver's own leftover variable.
		if unused := sol.Value(milp.UnusedVar(c)); math.Abs(unused-remaining) > unusedTolerance {
			slog.Warn("solver leftover disagrees with recomputed remaining inventory",
				"component", c, "solver", unused, "recomputed", remaining)
		}

		r.Inventory = append(r.Inventory, InventoryRow{
			Component: c,
			Available: p.AvailableInventory[c],
			Utilized:  utilized,
			Remaining: remaining,
		})
		r.TotalUnused += remaining
	}

	for _, bt := range p.BikeTypes {
		if produced[bt] == 0 {
			continue
		}
		for _, c := range p.Components {
			req := p.Require(bt, c)
			if req == 0 {
				continue
			}
			r.Breakdown = append(r.Breakdown, BreakdownRow{
				BikeType:  bt,
				Component: c,
				Quality:   p.Quality[params.TypeComponent{BikeType: bt, Component: c}],
				Utilized:  req * float64(produced[bt]),
			})
		}
	}

	return r, nil
}

// ObjectiveBreakdown holds the weighted value each objective term contributed
// at the optimum. Penalized terms carry their negative sign.
type ObjectiveBreakdown struct {
	Profit   float64
	Waste    float64
	Time     float64
	Quantity float64
	Total    float64
}

// Objective evaluates the builder's term expressions against a solution and
// applies the weights and sign conventions of the composite objective.
func Objective(terms milp.Terms, w milp.Weights, sol *milp.Solution) ObjectiveBreakdown {
	b := ObjectiveBreakdown{
		Profit:   w.Profit * terms.Profit.Eval(sol.Values),
		Waste:    -w.Waste * terms.Waste.Eval(sol.Values),
		Time:     -w.Time * terms.Time.Eval(sol.Values),
		Quantity: w.Quantity * terms.Quantity.Eval(sol.Values),
	}
	b.Total = b.Profit + b.Waste + b.Time + b.Quantity
	return b
}
