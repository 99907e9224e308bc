package milp

import "context"

// MockSolver is a simple Solver implementation for testing. It records every
// model it receives and answers with a fixed status and assignment, or with
// SolveFn when set.
type MockSolver struct {
	Status Status
	Values map[string]float64
	Err    error

	// SolveFn, when non-nil, overrides the fixed response.
	SolveFn func(ctx context.Context, m *Model) (*Solution, error)

	// Models holds every model passed to Solve, in call order.
	Models []*Model
}

// NewMockSolver creates a mock solver answering StatusOptimal with the given
// assignment.
func NewMockSolver(values map[string]float64) *MockSolver {
	return &MockSolver{Status: StatusOptimal, Values: values}
}

func (s *MockSolver) Solve(ctx context.Context, m *Model) (*Solution, error) {
	s.Models = append(s.Models, m)
	if s.SolveFn != nil {
		return s.SolveFn(ctx, m)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	values := s.Values
	if values == nil {
		values = map[string]float64{}
	}
	return &Solution{
		Status:    s.Status,
		Objective: m.ObjectiveValue(values),
		Values:    values,
	}, nil
}
