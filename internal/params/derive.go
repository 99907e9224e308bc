package params

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/veloworks/veloplan/internal/dataset"
)

// Options controls parameter derivation.
type Options struct {
	// Crossovers are synthesized after the base types, in order.
	Crossovers []Crossover
	// PremiumTypes explicitly classifies bike types as premium. When empty,
	// a type is premium iff its name contains PremiumMarker.
	PremiumTypes []string
}

// Derive builds the immutable Parameters from raw source records. Records are
// grouped by bike type: production time and priority weight come from the
// first row of each group (disagreement in later rows is logged, not fatal),
// required quantities are summed across quality variants, and available
// inventory accumulates on the component identity across all bike types.
func Derive(records []dataset.Record, opts Options) (*Parameters, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("params: no source records")
	}

	p := &Parameters{
		RequiredQty:        make(map[TypeComponent]float64),
		AvailableInventory: make(map[string]float64),
		ProductionTime:     make(map[string]float64),
		PriorityWeight:     make(map[string]float64),
		UnitCost:           make(map[string]float64),
		Premium:            make(map[string]bool),
		SellingPrice:       make(map[string][]float64),
		WASP:               make(map[string]float64),
		Quality:            make(map[TypeComponent]string),
	}

	seenType := make(map[string]bool)
	seenComponent := make(map[string]bool)

	for _, rec := range records {
		if !seenType[rec.BikeType] {
			seenType[rec.BikeType] = true
			p.BikeTypes = append(p.BikeTypes, rec.BikeType)
			p.ProductionTime[rec.BikeType] = rec.ProductionTime
			p.PriorityWeight[rec.BikeType] = rec.PriorityWeight
		} else {
			if rec.ProductionTime != p.ProductionTime[rec.BikeType] {
				slog.Warn("inconsistent production time, keeping first-seen value",
					"bikeType", rec.BikeType,
					"first", p.ProductionTime[rec.BikeType],
					"row", rec.ProductionTime)
			}
			if rec.PriorityWeight != p.PriorityWeight[rec.BikeType] {
				slog.Warn("inconsistent priority weight, keeping first-seen value",
					"bikeType", rec.BikeType,
					"first", p.PriorityWeight[rec.BikeType],
					"row", rec.PriorityWeight)
			}
		}

		if !seenComponent[rec.Component] {
			seenComponent[rec.Component] = true
			p.Components = append(p.Components, rec.Component)
		}

		tc := TypeComponent{rec.BikeType, rec.Component}
		p.RequiredQty[tc] += float64(rec.RequiredQty)
		if _, ok := p.Quality[tc]; !ok {
			p.Quality[tc] = rec.Quality
		}
		p.AvailableInventory[rec.Component] += float64(rec.Inventory)
		p.UnitCost[rec.BikeType] += rec.UnitCost
	}

	baseTypes := make([]string, len(p.BikeTypes))
	copy(baseTypes, p.BikeTypes)

	if err := synthesizeCrossovers(p, records, baseTypes, opts.Crossovers); err != nil {
		return nil, err
	}

	classifyPremium(p, opts.PremiumTypes)

	for _, bt := range p.BikeTypes {
		prices := tierPrices(p.UnitCost[bt])
		p.SellingPrice[bt] = prices
		probs := make([]float64, len(tierTable))
		for i, tier := range tierTable {
			probs[i] = tier.Probability
		}
		p.WASP[bt] = weightedPrice(prices, probs)
	}

	slog.Debug("derived planning parameters",
		"bikeTypes", len(p.BikeTypes),
		"components", len(p.Components),
		"crossovers", len(opts.Crossovers))

	return p, nil
}

// synthesizeCrossovers appends the declared crossover variants. A crossover's
// required quantity for a listed component is the quantity recorded anywhere
// in the source data for that component/quality pair, regardless of which
// bike type's rows carried it; an absent pair yields 0.
func synthesizeCrossovers(p *Parameters, records []dataset.Record, baseTypes []string, crossovers []Crossover) error {
	meanTime := 0.0
	for _, bt := range baseTypes {
		meanTime += p.ProductionTime[bt]
	}
	if len(baseTypes) > 0 {
		meanTime /= float64(len(baseTypes))
	}

	for _, cv := range crossovers {
		if _, exists := p.ProductionTime[cv.Name]; exists {
			return fmt.Errorf("params: crossover %q collides with an existing bike type", cv.Name)
		}
		p.BikeTypes = append(p.BikeTypes, cv.Name)
		p.ProductionTime[cv.Name] = meanTime
		p.PriorityWeight[cv.Name] = 1.0

		for component, quality := range cv.ComponentMix {
			var qty float64
			for _, rec := range records {
				if rec.Component == component && rec.Quality == quality {
					qty += float64(rec.RequiredQty)
				}
			}
			tc := TypeComponent{cv.Name, component}
			p.RequiredQty[tc] = qty
			p.Quality[tc] = quality
		}
	}
	return nil
}

func classifyPremium(p *Parameters, explicit []string) {
	if len(explicit) > 0 {
		for _, bt := range explicit {
			p.Premium[bt] = true
		}
		return
	}
	for _, bt := range p.BikeTypes {
		if strings.Contains(bt, PremiumMarker) {
			p.Premium[bt] = true
		}
	}
}
