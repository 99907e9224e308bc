// Package params derives the planning parameters consumed by the decision
// model: per-type requirements and economics, shared component inventory,
// selling-price tiers, and synthesized crossover variants.
package params

// PremiumMarker is the name fragment the default classifier looks for when no
// explicit premium list is configured.
const PremiumMarker = "Premium"

// TypeComponent keys the required-quantity map.
type TypeComponent struct {
	BikeType  string
	Component string
}

// Crossover declares a synthesized bike type whose component requirements are
// borrowed from specific quality variants in the source data.
type Crossover struct {
	Name         string
	ComponentMix map[string]string // component -> quality label
}

// Parameters holds every derived planning parameter. It is built once per run
// by Derive and is read-only afterwards; all downstream components share the
// same instance.
type Parameters struct {
	// BikeTypes lists base types in first-seen source order followed by
	// crossover variants in declaration order.
	BikeTypes []string
	// Components lists component identities in first-seen source order.
	Components []string

	RequiredQty        map[TypeComponent]float64
	AvailableInventory map[string]float64
	ProductionTime     map[string]float64
	PriorityWeight     map[string]float64
	UnitCost           map[string]float64

	// Premium is the explicit classification attribute used by the quota
	// constraints, fixed at derivation time.
	Premium map[string]bool

	// SellingPrice holds per-tier prices indexed like Tiers().
	SellingPrice map[string][]float64
	// WASP is the weighted-average selling price per bike type.
	WASP map[string]float64

	// Quality records the first-seen quality label per (type, component),
	// used by the component-breakdown report.
	Quality map[TypeComponent]string
}

// Require returns the required quantity for a (bike type, component) pair.
// Pairs absent from the source data are defined to be 0.
func (p *Parameters) Require(bikeType, component string) float64 {
	return p.RequiredQty[TypeComponent{bikeType, component}]
}

// Margin returns WASP minus unit cost for a bike type.
func (p *Parameters) Margin(bikeType string) float64 {
	return p.WASP[bikeType] - p.UnitCost[bikeType]
}

// NonPremiumTypes returns the bike types not classified as premium, in
// BikeTypes order.
func (p *Parameters) NonPremiumTypes() []string {
	var out []string
	for _, bt := range p.BikeTypes {
		if !p.Premium[bt] {
			out = append(out, bt)
		}
	}
	return out
}

// PremiumTypes returns the bike types classified as premium, in BikeTypes
// order.
func (p *Parameters) PremiumTypes() []string {
	var out []string
	for _, bt := range p.BikeTypes {
		if p.Premium[bt] {
			out = append(out, bt)
		}
	}
	return out
}
