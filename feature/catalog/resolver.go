package catalog

import (
	"context"
	"fmt"
	"time"

	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/pricing"

	"go.uber.org/zap"
)

// Result summarizes one composite cost recalculation run.
type Result struct {
	// Updated counts composites whose cached cost was written back.
	Updated int `json:"updated"`
	// Warnings describe recipe lines that could not contribute a cost.
	Warnings []string `json:"warnings"`
	// CycleItemIDs lists items where a recipe cycle was detected.
	CycleItemIDs []int64 `json:"cycle_item_ids"`
}

// costPair carries the two cost tracks of one resolved item.
type costPair struct {
	unitCost *float64
	cost100  *float64
}

// Resolver recomputes the cached cost of composite items by walking their
// recipe graphs.
type Resolver struct {
	store  *Store
	logger *zap.Logger
}

// NewResolver creates a new composite cost resolver.
func NewResolver(store *Store, logger *zap.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

// resolution is the per-run DFS state.
type resolution struct {
	items    map[int64]*models.Item
	lines    map[int64][]models.RecipeLine
	step     float64
	memo     map[int64]costPair
	visiting map[int64]bool
	result   *Result
}

// Recalculate resolves every composite item of the owner and writes the
// resulting unit costs back to the composite cost cache. Cycles and
// unresolvable recipe lines are reported, not fatal; storage failures are.
func (r *Resolver) Recalculate(ctx context.Context, owner string) (*Result, error) {
	items, err := r.store.GetItems(ctx, owner)
	if err != nil {
		return nil, err
	}
	lines, err := r.store.GetRecipeLines(ctx, owner)
	if err != nil {
		return nil, err
	}
	step, err := r.store.GetFloatParameter(ctx, owner, pricing.RoundingStepKey, 1)
	if err != nil {
		return nil, err
	}
	if step <= 0 {
		step = 1
	}

	res := &resolution{
		items:    make(map[int64]*models.Item, len(items)),
		lines:    make(map[int64][]models.RecipeLine),
		step:     step,
		memo:     make(map[int64]costPair),
		visiting: make(map[int64]bool),
		result:   &Result{Warnings: []string{}, CycleItemIDs: []int64{}},
	}
	for idx := range items {
		res.items[items[idx].ID] = &items[idx]
	}
	for _, line := range lines {
		res.lines[line.ParentID] = append(res.lines[line.ParentID], line)
	}

	now := time.Now().UTC()
	for idx := range items {
		item := &items[idx]
		if !item.IsComposite {
			continue
		}
		pair := res.resolve(item.ID)
		if pair.unitCost == nil {
			continue
		}
		err := r.store.UpdateItem(ctx, owner, item.ID, map[string]any{
			"composite_cost_cache":       *pair.unitCost,
			"composite_cost_computed_at": now,
		})
		if err != nil {
			return nil, err
		}
		res.result.Updated++
	}

	r.logger.Info("Composite costs recalculated",
		zap.String("owner", owner),
		zap.Int("updated", res.result.Updated),
		zap.Int("warnings", len(res.result.Warnings)),
		zap.Int("cycles", len(res.result.CycleItemIDs)))
	return res.result, nil
}

// resolve returns the memoized cost pair of one item. A cycle hit or an
// unresolvable item yields a nil pair, which is never memoized for cycle
// hits so siblings of the cycle still resolve.
func (s *resolution) resolve(id int64) costPair {
	if pair, ok := s.memo[id]; ok {
		return pair
	}
	if s.visiting[id] {
		s.result.CycleItemIDs = appendUnique(s.result.CycleItemIDs, id)
		return costPair{}
	}

	item, ok := s.items[id]
	if !ok {
		return costPair{}
	}

	s.visiting[id] = true
	defer delete(s.visiting, id)

	var pair costPair
	if item.IsComposite {
		pair = s.resolveComposite(item)
	} else {
		pair = s.computeDirect(item)
	}

	s.memo[id] = pair
	return pair
}

// resolveComposite sums the item's recipe lines. Every line that cannot
// contribute a cost produces a warning and marks the composite unresolved;
// the remaining lines are still walked so one run reports every gap. An
// empty recipe resolves to a cost of zero.
func (s *resolution) resolveComposite(item *models.Item) costPair {
	total := 0.0
	resolved := true

	for _, line := range s.lines[item.ID] {
		component, ok := s.items[line.ComponentID]
		if !ok {
			s.warnf("recipe of %q references missing item %d", item.Name, line.ComponentID)
			resolved = false
			continue
		}

		// Variants never carry independent recipes or costs; a line that
		// points at a variant is costed through its parent product.
		if component.Type == models.TypeVariant && component.ParentID != nil {
			if parent, ok := s.items[*component.ParentID]; ok {
				component = parent
			}
		}

		pair := s.resolve(component.ID)
		switch line.Unit {
		case models.UnitWeightGrams:
			if pair.cost100 == nil {
				s.warnf("component %q of %q has no cost per 100g", component.Name, item.Name)
				resolved = false
				continue
			}
			total += line.Quantity * *pair.cost100 / 100
		case models.UnitCount:
			if pair.unitCost == nil {
				s.warnf("component %q of %q has no unit cost", component.Name, item.Name)
				resolved = false
				continue
			}
			total += line.Quantity * *pair.unitCost
		default:
			s.warnf("recipe line %d of %q has unknown unit %q", line.ID, item.Name, line.Unit)
			resolved = false
		}
	}

	if !resolved {
		return costPair{}
	}

	// Rerun the price computation with the resolved total as the item's
	// cost so the per-100g track stays consistent with the recipe result.
	inputs := s.effectiveInputs(item)
	inputs.ManualUnitCost = &total
	breakdown := pricing.ComputePrices(inputs, s.step)
	return costPair{unitCost: &total, cost100: breakdown.CostPer100g}
}

// computeDirect prices a non-composite item from its own inputs, with a
// variant inheriting unset inputs from its parent.
func (s *resolution) computeDirect(item *models.Item) costPair {
	breakdown := pricing.ComputePrices(s.effectiveInputs(item), s.step)
	return costPair{unitCost: breakdown.UnitCost, cost100: breakdown.CostPer100g}
}

// effectiveInputs returns the item's pricing inputs, filling unset fields
// from the parent when the item is a variant.
func (s *resolution) effectiveInputs(item *models.Item) pricing.Inputs {
	inputs := item.PricingInputs()
	if item.Type != models.TypeVariant || item.ParentID == nil {
		return inputs
	}
	parent, ok := s.items[*item.ParentID]
	if !ok {
		return inputs
	}

	parentInputs := parent.PricingInputs()
	if inputs.ManualUnitCost == nil {
		inputs.ManualUnitCost = parentInputs.ManualUnitCost
	}
	if inputs.BulkPrice == nil {
		inputs.BulkPrice = parentInputs.BulkPrice
	}
	if inputs.UnitsPerBulk == nil {
		inputs.UnitsPerBulk = parentInputs.UnitsPerBulk
	}
	if inputs.WeightPerUnitG == nil {
		inputs.WeightPerUnitG = parentInputs.WeightPerUnitG
	}
	if inputs.ManualCostPer100g == nil {
		inputs.ManualCostPer100g = parentInputs.ManualCostPer100g
	}
	if !inputs.SoldByWeight {
		inputs.SoldByWeight = parentInputs.SoldByWeight
	}

	// A composite parent contributes its cached recipe cost as the
	// variant's manual cost when the variant has none of its own.
	if inputs.ManualUnitCost == nil && parent.IsComposite && parent.CompositeCostCache != nil {
		inputs.ManualUnitCost = parent.CompositeCostCache
	}
	return inputs
}

func (s *resolution) warnf(format string, args ...any) {
	s.result.Warnings = append(s.result.Warnings, fmt.Sprintf(format, args...))
}

func appendUnique(ids []int64, id int64) []int64 {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
