// Package analysis contains the two experiment drivers built on the derived
// parameters: a demand-mix sensitivity sweep and a weight grid sweep.
package analysis

import (
	"errors"
	"log/slog"

	"github.com/veloworks/veloplan/internal/params"
)

// ErrDegeneratePerturbation marks a perturbation level at which every tier
// probability clamps to zero, leaving nothing to renormalize.
var ErrDegeneratePerturbation = errors.New("analysis: all tier probabilities clamped to zero")

// DefaultLevels are the perturbation levels applied to the tier probability
// means, in standard deviations.
var DefaultLevels = []float64{-1, 0, 1}

// SensitivityRow is the outcome of one (bike type, perturbation level)
// combination. Production is a fixed input; only the demand mix moves.
type SensitivityRow struct {
	BikeType string
	Level    float64
	Produced int
	Hours    float64

	BaselineWASP    float64
	AdjustedWASP    float64
	BaselineRevenue float64
	AdjustedRevenue float64
	BaselineProfit  float64
	AdjustedProfit  float64

	// Err is set when the perturbation is degenerate; the adjusted figures
	// are then meaningless and left zero.
	Err error
}

// Sensitivity perturbs each tier probability mean by level·σ, clamps at zero,
// renormalizes the tier set to sum to 1, and recomputes WASP, revenue, and
// profit at the unchanged baseline production quantities. The model is never
// re-solved. A nil levels slice means DefaultLevels.
func Sensitivity(p *params.Parameters, produced map[string]int, levels []float64) []SensitivityRow {
	if levels == nil {
		levels = DefaultLevels
	}
	tiers := params.Tiers()

	var rows []SensitivityRow
	for _, bt := range p.BikeTypes {
		n := float64(produced[bt])
		base := SensitivityRow{
			BikeType:        bt,
			Produced:        produced[bt],
			Hours:           p.ProductionTime[bt] * n,
			BaselineWASP:    p.WASP[bt],
			BaselineRevenue: p.WASP[bt] * n,
			BaselineProfit:  (p.WASP[bt] - p.UnitCost[bt]) * n,
		}

		for _, level := range levels {
			row := base
			row.Level = level

			probs := make([]float64, len(tiers))
			var sum float64
			for i, tier := range tiers {
				probs[i] = max(0, tier.Probability+level*tier.StdDev)
				sum += probs[i]
			}
			if sum == 0 {
				row.Err = ErrDegeneratePerturbation
				slog.Warn("degenerate demand-mix perturbation",
					"bike_type", bt, "level", level)
				rows = append(rows, row)
				continue
			}

			var wasp float64
			for i, price := range p.SellingPrice[bt] {
				wasp += price * probs[i] / sum
			}
			row.AdjustedWASP = wasp
			row.AdjustedRevenue = wasp * n
			row.AdjustedProfit = (wasp - p.UnitCost[bt]) * n
			rows = append(rows, row)
		}
	}
	return rows
}
