package pricing

import "math"

// FinalStep is the granularity of published channel prices. Unit prices are
// rounded up to the configurable rounding step, but the final retail,
// wholesale and per-100g prices always land on a multiple of 50.
const FinalStep = 50.0

// Inputs are the cost and margin fields of one catalog item. Optional
// values are nil pointers; margins are fractions valid only inside (0,1).
type Inputs struct {
	ManualUnitCost    *float64 `json:"manual_unit_cost"`
	BulkPrice         *float64 `json:"bulk_price"`
	UnitsPerBulk      *float64 `json:"units_per_bulk"`
	RetailMargin      *float64 `json:"retail_margin"`
	WholesaleMargin   *float64 `json:"wholesale_margin"`
	WholesalePackSize *int     `json:"wholesale_pack_size"`
	SoldByWeight      bool     `json:"sold_by_weight"`
	WeightPerUnitG    *float64 `json:"weight_per_unit_g"`
	ManualCostPer100g *float64 `json:"manual_cost_per_100g"`
	MarginPer100g     *float64 `json:"margin_per_100g"`
}

// Breakdown is the full price computation result. A nil field means the
// inputs were insufficient or invalid for that value; ComputePrices never
// produces NaN or infinities.
type Breakdown struct {
	PackSize      int      `json:"pack_size"`
	UnitCost      *float64 `json:"unit_cost"`
	RetailUnit    *float64 `json:"retail_unit"`
	WholesaleUnit *float64 `json:"wholesale_unit"`
	Retail        *float64 `json:"retail"`
	Wholesale     *float64 `json:"wholesale"`
	CostPer100g   *float64 `json:"cost_per_100g"`
	SalePer100g   *float64 `json:"sale_per_100g"`
}

// ComputePrices converts cost inputs into the full price breakdown.
// Pure; an invalid roundingStep degrades to 1.
func ComputePrices(in Inputs, roundingStep float64) Breakdown {
	out := Breakdown{PackSize: packSize(in.WholesalePackSize)}

	// 1) unit cost: manual override wins, bulk derivation second
	if c, ok := positive(in.ManualUnitCost); ok {
		out.UnitCost = ptr(c)
	} else if bulk, ok := positive(in.BulkPrice); ok {
		if units, ok := positive(in.UnitsPerBulk); ok {
			out.UnitCost = ptr(bulk / units)
		}
	}

	// 2) per-channel unit sale prices, before pack
	if c, ok := positive(out.UnitCost); ok {
		if m, ok := validMargin(in.RetailMargin); ok {
			out.RetailUnit = ptr(ceilToStep(c/(1-m), roundingStep))
		}
		if m, ok := validMargin(in.WholesaleMargin); ok {
			out.WholesaleUnit = ptr(ceilToStep(c/(1-m), roundingStep))
		}
	}

	// 3) final channel prices: pack applied, nearest-50, never <=0 for a
	// positive pre-round value
	if u, ok := positive(out.RetailUnit); ok {
		out.Retail = ptr(roundToStepMinPositive(u*float64(out.PackSize), FinalStep))
	}
	if u, ok := positive(out.WholesaleUnit); ok {
		out.Wholesale = ptr(roundToStepMinPositive(u*float64(out.PackSize), FinalStep))
	}

	// 4) cost per 100g: positive manual override, else derived from unit
	// cost and weight when sold by weight
	if c, ok := positive(in.ManualCostPer100g); ok {
		out.CostPer100g = ptr(c)
	} else if in.SoldByWeight {
		if c, ok := positive(out.UnitCost); ok {
			if w, ok := positive(in.WeightPerUnitG); ok {
				out.CostPer100g = ptr(c / w * 100)
			}
		}
	}

	// 5) sale price per 100g: weight items only, pack never applies
	if in.SoldByWeight {
		if c, ok := positive(out.CostPer100g); ok {
			if m, ok := validMargin(in.MarginPer100g); ok {
				out.SalePer100g = ptr(roundToStepMinPositive(c/(1-m), FinalStep))
			}
		}
	}

	return out
}

func packSize(p *int) int {
	if p == nil || *p < 1 {
		return 1
	}
	return *p
}

// positive reports a value that is present, finite and strictly positive.
func positive(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	v := *p
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

// validMargin reports a margin strictly inside (0,1). Anything else is
// treated as absent, never clamped.
func validMargin(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	m := *p
	if math.IsNaN(m) || m <= 0 || m >= 1 {
		return 0, false
	}
	return m, true
}

// ceilToStep rounds up to the nearest multiple of step. An invalid step
// degrades to 1.
func ceilToStep(v, step float64) float64 {
	k := step
	if math.IsNaN(k) || math.IsInf(k, 0) || k <= 0 {
		k = 1
	}
	return math.Ceil(v/k) * k
}

// roundToStep rounds half up to the nearest multiple of step.
func roundToStep(v, step float64) float64 {
	if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

// roundToStepMinPositive rounds like roundToStep but clamps to one step when
// a strictly positive value would otherwise round to zero or below.
func roundToStepMinPositive(v, step float64) float64 {
	rounded := roundToStep(v, step)
	if v > 0 && rounded <= 0 && step > 0 {
		return step
	}
	return rounded
}

func ptr(v float64) *float64 {
	return &v
}
