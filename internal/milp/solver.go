package milp

import "context"

// Status is the outcome reported by a solver backend. The planner drives all
// optimality and infeasibility handling from this value alone.
type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusInfeasible Status = "infeasible"
	StatusUnbounded  Status = "unbounded"
	StatusOther      Status = "other"
)

// Solution is a solver's answer for one model.
type Solution struct {
	Status    Status
	Objective float64
	// Values maps variable names to assigned values. A variable absent from
	// the map has no value and must be read as 0.
	Values map[string]float64
}

// Value returns the assigned value for a variable name, 0 when unassigned.
func (s *Solution) Value(name string) float64 {
	return s.Values[name]
}

// Solver is the external optimization backend. Implementations receive a
// fully built model and return a status plus variable assignment; the
// planner never depends on how the solve is performed. Solve is expected to
// honor ctx cancellation for long-running searches.
type Solver interface {
	Solve(ctx context.Context, m *Model) (*Solution, error)
}
