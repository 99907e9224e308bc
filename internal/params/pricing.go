package params

// Markup applied to a bike type's total unit cost to obtain its full selling
// price.
const Markup = 0.20

// Tier is one named sales channel with its price multiplier, fixed
// probability mass, and the standard deviation used by sensitivity analysis.
type Tier struct {
	Name        string
	Factor      float64
	Probability float64
	StdDev      float64
}

// tierTable is the frozen demand-mix table. The probabilities are constants
// shared by every bike type and sum to exactly 1; they are never re-derived
// or resampled, so repeated runs give identical answers.
var tierTable = []Tier{
	{Name: "Full Price", Factor: 1.00, Probability: 0.10, StdDev: 0.02},
	{Name: "10% Discount", Factor: 0.90, Probability: 0.70, StdDev: 0.05},
	{Name: "15% Discount", Factor: 0.85, Probability: 0.20, StdDev: 0.03},
}

// Tiers returns a copy of the price tier table.
func Tiers() []Tier {
	out := make([]Tier, len(tierTable))
	copy(out, tierTable)
	return out
}

// tierPrices returns the per-tier selling prices for a bike type with the
// given total unit cost.
func tierPrices(unitCost float64) []float64 {
	base := unitCost * (1 + Markup)
	prices := make([]float64, len(tierTable))
	for i, tier := range tierTable {
		prices[i] = base * tier.Factor
	}
	return prices
}

// weightedPrice computes the expected selling price for the given per-tier
// prices and probabilities. Probabilities are assumed normalized.
func weightedPrice(prices, probs []float64) float64 {
	var w float64
	for i, p := range prices {
		w += p * probs[i]
	}
	return w
}
