// Package milp declares the production decision model: non-negative decision
// variables, linear constraints, and a weighted maximize objective. Solving is
// delegated entirely to a Solver implementation; this package never inspects
// how a solution was found.
package milp

// VarKind is the domain of a decision variable. All variables are
// non-negative.
type VarKind int

const (
	// Integer is a non-negative integer variable.
	Integer VarKind = iota
	// Continuous is a non-negative continuous variable.
	Continuous
)

// Var is a decision variable, identified by name within its model.
type Var struct {
	Name string
	Kind VarKind
}

// Term is one coefficient-variable pair of a linear expression.
type Term struct {
	Coef float64
	Var  *Var
}

// Expr is a linear expression over decision variables.
type Expr struct {
	terms []Term
}

// Add appends a term to the expression. Zero coefficients are dropped.
func (e *Expr) Add(coef float64, v *Var) {
	if coef == 0 {
		return
	}
	e.terms = append(e.terms, Term{Coef: coef, Var: v})
}

// Terms returns the expression's terms.
func (e *Expr) Terms() []Term {
	return e.terms
}

// Eval computes the expression value under a variable assignment. Variables
// absent from the assignment count as 0.
func (e *Expr) Eval(values map[string]float64) float64 {
	var sum float64
	for _, t := range e.terms {
		sum += t.Coef * values[t.Var.Name]
	}
	return sum
}

// Scale returns a copy of the expression with every coefficient multiplied
// by f.
func (e *Expr) Scale(f float64) Expr {
	var out Expr
	for _, t := range e.terms {
		out.Add(f*t.Coef, t.Var)
	}
	return out
}

// Relation compares a linear expression against a bound.
type Relation int

const (
	Equal Relation = iota
	LessEq
	GreaterEq
)

func (r Relation) String() string {
	switch r {
	case Equal:
		return "="
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	}
	return "?"
}

// Constraint is expr REL rhs.
type Constraint struct {
	Name string
	Expr Expr
	Rel  Relation
	RHS  float64
}

// DiversityPenalty is the optional quadratic objective term
// w * sum_b (x_b - total/n)^2 penalizing deviation from a uniform production
// split. Linear backends may reject models that carry one.
type DiversityPenalty struct {
	Weight float64
	Vars   []*Var
}

// Eval computes the weighted penalty under a variable assignment.
func (d *DiversityPenalty) Eval(values map[string]float64) float64 {
	n := len(d.Vars)
	if n == 0 {
		return 0
	}
	total := 0.0
	for _, v := range d.Vars {
		total += values[v.Name]
	}
	mean := total / float64(n)
	sum := 0.0
	for _, v := range d.Vars {
		dev := values[v.Name] - mean
		sum += dev * dev
	}
	return d.Weight * sum
}

// Objective is the maximize target: a weighted linear expression minus an
// optional diversity penalty.
type Objective struct {
	Expr      Expr
	Diversity *DiversityPenalty
}

// Model is a fully built decision model ready to hand to a Solver.
type Model struct {
	vars        []*Var
	byName      map[string]*Var
	constraints []Constraint
	objective   Objective
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{byName: make(map[string]*Var)}
}

// NewIntVar declares a non-negative integer variable. Declaring the same name
// twice returns the existing variable.
func (m *Model) NewIntVar(name string) *Var {
	return m.newVar(name, Integer)
}

// NewFloatVar declares a non-negative continuous variable.
func (m *Model) NewFloatVar(name string) *Var {
	return m.newVar(name, Continuous)
}

func (m *Model) newVar(name string, kind VarKind) *Var {
	if v, ok := m.byName[name]; ok {
		return v
	}
	v := &Var{Name: name, Kind: kind}
	m.vars = append(m.vars, v)
	m.byName[name] = v
	return v
}

// Vars returns the declared variables in declaration order.
func (m *Model) Vars() []*Var {
	return m.vars
}

// Var returns the named variable, or nil.
func (m *Model) Var(name string) *Var {
	return m.byName[name]
}

// AddConstraint appends a linear constraint.
func (m *Model) AddConstraint(c Constraint) {
	m.constraints = append(m.constraints, c)
}

// Constraints returns the constraints in insertion order.
func (m *Model) Constraints() []Constraint {
	return m.constraints
}

// SetObjective sets the maximize objective.
func (m *Model) SetObjective(obj Objective) {
	m.objective = obj
}

// Objective returns the maximize objective.
func (m *Model) Objective() Objective {
	return m.objective
}

// ObjectiveValue evaluates the objective under a variable assignment.
func (m *Model) ObjectiveValue(values map[string]float64) float64 {
	v := m.objective.Expr.Eval(values)
	if m.objective.Diversity != nil {
		v -= m.objective.Diversity.Eval(values)
	}
	return v
}
