package milp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloworks/veloplan/internal/params"
)

func builderParams() *params.Parameters {
	return &params.Parameters{
		BikeTypes:  []string{"Road_Premium", "City_Basic"},
		Components: []string{"Frame", "Wheels"},
		RequiredQty: map[params.TypeComponent]float64{
			{BikeType: "Road_Premium", Component: "Frame"}:  1,
			{BikeType: "Road_Premium", Component: "Wheels"}: 2,
			{BikeType: "City_Basic", Component: "Frame"}:    1,
		},
		AvailableInventory: map[string]float64{"Frame": 10, "Wheels": 8},
		ProductionTime:     map[string]float64{"Road_Premium": 5, "City_Basic": 4},
		PriorityWeight:     map[string]float64{"Road_Premium": 1.1, "City_Basic": 1.0},
		UnitCost:           map[string]float64{"Road_Premium": 150, "City_Basic": 80},
		Premium:            map[string]bool{"Road_Premium": true},
		WASP:               map[string]float64{"Road_Premium": 170, "City_Basic": 90},
	}
}

func coefOf(e Expr, name string) float64 {
	var sum float64
	for _, t := range e.Terms() {
		if t.Var.Name == name {
			sum += t.Coef
		}
	}
	return sum
}

func TestBuildVariables(t *testing.T) {
	m, _ := Build(builderParams(), Weights{Profit: 1}, Options{})

	require.Len(t, m.Vars(), 4)
	for _, name := range []string{"Produce_Road_Premium", "Produce_City_Basic"} {
		v := m.Var(name)
		require.NotNil(t, v, name)
		assert.Equal(t, Integer, v.Kind)
	}
	for _, name := range []string{"Unused_Frame", "Unused_Wheels"} {
		v := m.Var(name)
		require.NotNil(t, v, name)
		assert.Equal(t, Continuous, v.Kind)
	}
}

func TestBuildInventoryConstraints(t *testing.T) {
	m, _ := Build(builderParams(), Weights{Profit: 1}, Options{})

	var frame *Constraint
	for i := range m.Constraints() {
		if m.Constraints()[i].Name == "Inventory_Frame" {
			frame = &m.Constraints()[i]
		}
	}
	require.NotNil(t, frame)

	assert.Equal(t, Equal, frame.Rel)
	assert.InDelta(t, 10, frame.RHS, 1e-9)
	assert.InDelta(t, 1, coefOf(frame.Expr, "Produce_Road_Premium"), 1e-9)
	assert.InDelta(t, 1, coefOf(frame.Expr, "Produce_City_Basic"), 1e-9)
	assert.InDelta(t, 1, coefOf(frame.Expr, "Unused_Frame"), 1e-9)
	assert.Zero(t, coefOf(frame.Expr, "Unused_Wheels"))
}

func TestBuildObjective(t *testing.T) {
	w := Weights{Profit: 0.01, Waste: 2, Time: 3, Quantity: 1}
	m, terms := Build(builderParams(), w, Options{})

	obj := m.Objective().Expr

	// Road_Premium: 0.01*(170-150) - 3*5 + 1*1.1 = 0.2 - 15 + 1.1
	assert.InDelta(t, 0.2-15+1.1, coefOf(obj, "Produce_Road_Premium"), 1e-9)
	// City_Basic: 0.01*(90-80) - 3*4 + 1*1.0
	assert.InDelta(t, 0.1-12+1.0, coefOf(obj, "Produce_City_Basic"), 1e-9)
	// Unused inventory is penalized.
	assert.InDelta(t, -2, coefOf(obj, "Unused_Frame"), 1e-9)
	assert.InDelta(t, -2, coefOf(obj, "Unused_Wheels"), 1e-9)

	// Unweighted terms are preserved for the breakdown report.
	assert.InDelta(t, 20, coefOf(terms.Profit, "Produce_Road_Premium"), 1e-9)
	assert.InDelta(t, 5, coefOf(terms.Time, "Produce_Road_Premium"), 1e-9)
	assert.InDelta(t, 1, coefOf(terms.Waste, "Unused_Frame"), 1e-9)
	assert.InDelta(t, 1.1, coefOf(terms.Quantity, "Produce_Road_Premium"), 1e-9)

	assert.Nil(t, m.Objective().Diversity)
}

func TestBuildDiversityOnlyWhenWeighted(t *testing.T) {
	m, _ := Build(builderParams(), Weights{Profit: 1, Diversity: 0.5}, Options{})

	d := m.Objective().Diversity
	require.NotNil(t, d)
	assert.InDelta(t, 0.5, d.Weight, 1e-9)
	assert.Len(t, d.Vars, 2)
}

func TestBuildQuotaConstraints(t *testing.T) {
	m, _ := Build(builderParams(), Weights{Profit: 1}, Options{
		Quota: &Quota{NonPremiumMin: 0.2, PremiumMax: 0.8},
	})

	byName := make(map[string]Constraint)
	for _, c := range m.Constraints() {
		byName[c.Name] = c
	}

	lower, ok := byName["MinNonPremiumQuota"]
	require.True(t, ok)
	assert.Equal(t, GreaterEq, lower.Rel)
	assert.Zero(t, lower.RHS)
	// nonPremium - 0.2*total: City_Basic gets 1-0.2, Road_Premium gets -0.2.
	assert.InDelta(t, 0.8, coefOf(lower.Expr, "Produce_City_Basic"), 1e-9)
	assert.InDelta(t, -0.2, coefOf(lower.Expr, "Produce_Road_Premium"), 1e-9)

	upper, ok := byName["MaxPremiumQuota"]
	require.True(t, ok)
	assert.Equal(t, LessEq, upper.Rel)
	assert.InDelta(t, 0.2, coefOf(upper.Expr, "Produce_Road_Premium"), 1e-9)
	assert.InDelta(t, -0.8, coefOf(upper.Expr, "Produce_City_Basic"), 1e-9)
}

func TestBuildReturnsIndependentModels(t *testing.T) {
	p := builderParams()
	m1, _ := Build(p, Weights{Profit: 1}, Options{})
	m2, _ := Build(p, Weights{Profit: 1}, Options{})

	assert.NotSame(t, m1, m2)
	assert.NotSame(t, m1.Var("Produce_City_Basic"), m2.Var("Produce_City_Basic"))
}
