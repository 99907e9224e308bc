// Package simplex is the bundled optimization backend: it solves the linear
// relaxation with gonum's simplex method and closes the integrality gap with
// branch and bound on the integer variables.
package simplex

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/go-viper/mapstructure/v2"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/veloworks/veloplan/internal/milp"
)

// Defaults for solver options.
const (
	DefaultMaxNodes     = 10000
	DefaultIntTolerance = 1e-6
)

// Options tunes the branch-and-bound search. Zero values are replaced with
// the package defaults.
type Options struct {
	// MaxNodes caps the number of branch-and-bound nodes explored.
	MaxNodes int `mapstructure:"max_nodes"`
	// IntTolerance is the distance from the nearest integer within which a
	// relaxation value counts as integral.
	IntTolerance float64 `mapstructure:"int_tolerance"`
}

// Solver implements milp.Solver.
type Solver struct {
	opts Options
}

// New creates a solver from raw backend options, typically the solver
// `options:` block of a plan config. Unknown keys are rejected.
func New(raw map[string]any) (*Solver, error) {
	opts := Options{
		MaxNodes:     DefaultMaxNodes,
		IntTolerance: DefaultIntTolerance,
	}
	if len(raw) > 0 {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &opts,
			ErrorUnused: true,
		})
		if err != nil {
			return nil, fmt.Errorf("simplex: creating options decoder: %w", err)
		}
		if err := dec.Decode(raw); err != nil {
			return nil, fmt.Errorf("simplex: decoding options: %w", err)
		}
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	if opts.IntTolerance <= 0 {
		opts.IntTolerance = DefaultIntTolerance
	}
	return &Solver{opts: opts}, nil
}

// row is one constraint in the working formulation.
type row struct {
	coefs []float64
	rel   milp.Relation
	rhs   float64
}

// bound is a branching constraint on a single variable.
type bound struct {
	idx int
	rel milp.Relation
	val float64
}

// Solve runs branch and bound over the model's linear relaxation. Models
// carrying a quadratic diversity term cannot be expressed for this backend
// and come back as StatusOther with an error.
func (s *Solver) Solve(ctx context.Context, m *milp.Model) (*milp.Solution, error) {
	if d := m.Objective().Diversity; d != nil && d.Weight != 0 {
		return &milp.Solution{Status: milp.StatusOther},
			errors.New("simplex: quadratic diversity objective is not expressible in a linear backend")
	}

	vars := m.Vars()
	index := make(map[string]int, len(vars))
	for i, v := range vars {
		index[v.Name] = i
	}

	// Maximize by minimizing the negated objective.
	obj := make([]float64, len(vars))
	objExpr := m.Objective().Expr
	for _, t := range objExpr.Terms() {
		obj[index[t.Var.Name]] -= t.Coef
	}

	rows := make([]row, 0, len(m.Constraints()))
	for _, c := range m.Constraints() {
		coefs := make([]float64, len(vars))
		for _, t := range c.Expr.Terms() {
			coefs[index[t.Var.Name]] += t.Coef
		}
		rows = append(rows, row{coefs: coefs, rel: c.Rel, rhs: c.RHS})
	}

	var intVars []int
	for i, v := range vars {
		if v.Kind == milp.Integer {
			intVars = append(intVars, i)
		}
	}

	best := math.Inf(-1)
	var bestX []float64

	stack := [][]bound{nil}
	nodes := 0
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("simplex: solve canceled: %w", err)
		}
		nodes++
		if nodes > s.opts.MaxNodes {
			return nil, fmt.Errorf("simplex: node limit %d exceeded", s.opts.MaxNodes)
		}

		bounds := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, val, err := solveRelaxation(obj, rows, bounds, len(vars))
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			continue
		case errors.Is(err, lp.ErrUnbounded):
			return &milp.Solution{Status: milp.StatusUnbounded}, nil
		case err != nil:
			return nil, fmt.Errorf("simplex: solving relaxation: %w", err)
		}

		// The relaxation value is an upper bound for the subtree.
		if val <= best+1e-12 && bestX != nil {
			continue
		}

		frac := -1
		for _, i := range intVars {
			if math.Abs(x[i]-math.Round(x[i])) > s.opts.IntTolerance {
				frac = i
				break
			}
		}
		if frac < 0 {
			if val > best {
				best = val
				bestX = x
			}
			continue
		}

		lo := append(append([]bound(nil), bounds...), bound{idx: frac, rel: milp.LessEq, val: math.Floor(x[frac])})
		hi := append(append([]bound(nil), bounds...), bound{idx: frac, rel: milp.GreaterEq, val: math.Ceil(x[frac])})
		stack = append(stack, hi, lo)
	}

	if bestX == nil {
		return &milp.Solution{Status: milp.StatusInfeasible}, nil
	}

	values := make(map[string]float64, len(vars))
	for i, v := range vars {
		val := bestX[i]
		if v.Kind == milp.Integer {
			val = math.Round(val)
		} else if math.Abs(val) < 1e-9 {
			val = 0
		}
		values[v.Name] = val
	}
	return &milp.Solution{
		Status:    milp.StatusOptimal,
		Objective: m.ObjectiveValue(values),
		Values:    values,
	}, nil
}

// solveRelaxation solves the LP relaxation in standard form
// (min c^T x, Ax = b, x >= 0): inequalities and branching bounds get one
// slack column each, the original variables come first. Returns the values
// of the original variables and the maximize objective value.
func solveRelaxation(obj []float64, rows []row, bounds []bound, nvars int) ([]float64, float64, error) {
	work := make([]row, 0, len(rows)+len(bounds))
	work = append(work, rows...)
	for _, b := range bounds {
		coefs := make([]float64, nvars)
		coefs[b.idx] = 1
		work = append(work, row{coefs: coefs, rel: b.rel, rhs: b.val})
	}

	nslack := 0
	for _, r := range work {
		if r.rel != milp.Equal {
			nslack++
		}
	}

	ncols := nvars + nslack
	a := mat.NewDense(len(work), ncols, nil)
	b := make([]float64, len(work))
	c := make([]float64, ncols)
	copy(c, obj)

	slack := nvars
	for i, r := range work {
		for j, coef := range r.coefs {
			a.Set(i, j, coef)
		}
		switch r.rel {
		case milp.LessEq:
			a.Set(i, slack, 1)
			slack++
		case milp.GreaterEq:
			a.Set(i, slack, -1)
			slack++
		}
		b[i] = r.rhs
	}

	opt, x, err := lp.Simplex(c, a, b, 0, nil)
	if err != nil {
		return nil, 0, err
	}
	return x[:nvars], -opt, nil
}
