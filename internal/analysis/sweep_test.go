package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloworks/veloplan/internal/milp"
	"github.com/veloworks/veloplan/internal/params"
	"github.com/veloworks/veloplan/internal/simplex"
)

func sweepParams() *params.Parameters {
	return &params.Parameters{
		BikeTypes:  []string{"Road_Premium", "City_Basic"},
		Components: []string{"Frame"},
		RequiredQty: map[params.TypeComponent]float64{
			{BikeType: "Road_Premium", Component: "Frame"}: 1,
			{BikeType: "City_Basic", Component: "Frame"}:   1,
		},
		AvailableInventory: map[string]float64{"Frame": 5},
		ProductionTime:     map[string]float64{"Road_Premium": 5, "City_Basic": 4},
		PriorityWeight:     map[string]float64{"Road_Premium": 1, "City_Basic": 1},
		UnitCost:           map[string]float64{"Road_Premium": 150, "City_Basic": 80},
		Premium:            map[string]bool{"Road_Premium": true},
		WASP:               map[string]float64{"Road_Premium": 170, "City_Basic": 90},
	}
}

func TestWeightLabel(t *testing.T) {
	w := milp.Weights{Profit: 0.01, Waste: 2, Time: 3, Quantity: 1}
	assert.Equal(t, "P:0.01 | I:2 | T:3 | Q:1", WeightLabel(w))
}

func TestWeightSweepEmptyGrid(t *testing.T) {
	grids := Grids{Profit: []float64{1}, Waste: []float64{0}, Time: nil, Quantity: []float64{0}}
	_, err := WeightSweep(context.Background(), sweepParams(), grids, milp.NewMockSolver(nil), 1)
	require.Error(t, err)
}

func TestWeightSweepBuildsFreshModels(t *testing.T) {
	mock := milp.NewMockSolver(map[string]float64{
		milp.ProduceVar("City_Basic"): 5,
		milp.UnusedVar("Frame"):       0,
	})

	grids := Grids{
		Profit:   []float64{0.01, 1},
		Waste:    []float64{0, 2},
		Time:     []float64{0},
		Quantity: []float64{1},
	}
	results, err := WeightSweep(context.Background(), sweepParams(), grids, mock, 1)
	require.NoError(t, err)
	require.Len(t, results, 4)
	require.Len(t, mock.Models, 4)

	// Every iteration got its own model.
	seen := map[*milp.Model]bool{}
	for _, m := range mock.Models {
		assert.False(t, seen[m])
		seen[m] = true
	}

	// Grid order: profit outermost, quantity innermost.
	assert.Equal(t, milp.Weights{Profit: 0.01, Waste: 0, Quantity: 1}, results[0].Weights)
	assert.Equal(t, milp.Weights{Profit: 0.01, Waste: 2, Quantity: 1}, results[1].Weights)
	assert.Equal(t, milp.Weights{Profit: 1, Waste: 0, Quantity: 1}, results[2].Weights)
	assert.Equal(t, milp.Weights{Profit: 1, Waste: 2, Quantity: 1}, results[3].Weights)

	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, 5, r.TotalProduced)
		assert.InDelta(t, 450, r.TotalRevenue, 1e-9)
		assert.InDelta(t, 50, r.TotalProfit, 1e-9)
		assert.InDelta(t, 20, r.TotalHours, 1e-9)
		assert.Zero(t, r.TotalUnused)
	}
}

func TestWeightSweepExcludesNonOptimal(t *testing.T) {
	calls := 0
	mock := &milp.MockSolver{SolveFn: func(ctx context.Context, m *milp.Model) (*milp.Solution, error) {
		calls++
		if calls%2 == 0 {
			return &milp.Solution{Status: milp.StatusInfeasible}, nil
		}
		return &milp.Solution{
			Status: milp.StatusOptimal,
			Values: map[string]float64{milp.ProduceVar("City_Basic"): 5},
		}, nil
	}}

	grids := Grids{
		Profit:   []float64{1, 2, 3, 4},
		Waste:    []float64{0},
		Time:     []float64{0},
		Quantity: []float64{0},
	}
	results, err := WeightSweep(context.Background(), sweepParams(), grids, mock, 1)
	require.NoError(t, err)

	// Half of the combinations came back infeasible and are silently
	// excluded; ordering of the rest is preserved.
	require.Len(t, results, 2)
	assert.Less(t, results[0].Index, results[1].Index)
}

func TestWeightSweepParallelAgainstSolver(t *testing.T) {
	s, err := simplex.New(nil)
	require.NoError(t, err)

	grids := Grids{
		Profit:   []float64{0.01, 1},
		Waste:    []float64{0, 2},
		Time:     []float64{0, 3},
		Quantity: []float64{0, 1},
	}
	results, err := WeightSweep(context.Background(), sweepParams(), grids, s, 4)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for i, r := range results {
		if i > 0 {
			assert.Less(t, results[i-1].Index, r.Index)
		}
		assert.Equal(t, WeightLabel(r.Weights), r.Label)
		// Inventory balance holds for every recorded combination.
		assert.LessOrEqual(t, float64(r.TotalProduced), 5.0)
		assert.InDelta(t, 5, float64(r.TotalProduced)+r.TotalUnused, 1e-6)
	}
}
