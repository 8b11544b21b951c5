package integrity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"catalog-manager/feature/catalog"
	"catalog-manager/feature/catalog/models"
)

// staleCacheAge is how old a composite cost cache may get before it is
// flagged for recalculation.
const staleCacheAge = 7 * 24 * time.Hour

// Finding is one detected catalog problem.
type Finding struct {
	Check  string `json:"check"`
	ItemID int64  `json:"item_id,omitempty"`
	LineID int64  `json:"line_id,omitempty"`
	Detail string `json:"detail"`
}

// Report collects the findings of one integrity pass.
type Report struct {
	Owner        string    `json:"owner"`
	ItemsChecked int       `json:"items_checked"`
	LinesChecked int       `json:"lines_checked"`
	Findings     []Finding `json:"findings"`
	CheckedAt    time.Time `json:"checked_at"`
}

// CheckCatalog runs every integrity check over one owner's catalog.
func CheckCatalog(ctx context.Context, store *catalog.Store, owner string) (*Report, error) {
	items, err := store.GetItems(ctx, owner)
	if err != nil {
		return nil, err
	}
	lines, err := store.GetRecipeLines(ctx, owner)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Owner:        owner,
		ItemsChecked: len(items),
		LinesChecked: len(lines),
		Findings:     []Finding{},
		CheckedAt:    time.Now().UTC(),
	}

	byID := make(map[int64]*models.Item, len(items))
	for idx := range items {
		byID[items[idx].ID] = &items[idx]
	}

	checkRecipeLines(report, byID, lines)
	checkItems(report, items)
	return report, nil
}

// checkRecipeLines flags lines pointing at missing items and lines under
// non-composite parents.
func checkRecipeLines(report *Report, byID map[int64]*models.Item, lines []models.RecipeLine) {
	for _, line := range lines {
		parent, ok := byID[line.ParentID]
		if !ok {
			report.add(Finding{
				Check:  "orphan-recipe-line",
				LineID: line.ID,
				Detail: fmt.Sprintf("recipe line parent %d does not exist", line.ParentID),
			})
		} else if !parent.IsComposite {
			report.add(Finding{
				Check:  "recipe-on-plain-item",
				LineID: line.ID,
				ItemID: parent.ID,
				Detail: fmt.Sprintf("item %q has recipe lines but is not composite", parent.Name),
			})
		}

		if _, ok := byID[line.ComponentID]; !ok {
			report.add(Finding{
				Check:  "orphan-recipe-line",
				LineID: line.ID,
				Detail: fmt.Sprintf("recipe line component %d does not exist", line.ComponentID),
			})
		}

		if line.Unit != models.UnitWeightGrams && line.Unit != models.UnitCount {
			report.add(Finding{
				Check:  "invalid-unit",
				LineID: line.ID,
				Detail: fmt.Sprintf("unknown recipe unit %q", line.Unit),
			})
		}

		if line.Quantity <= 0 {
			report.add(Finding{
				Check:  "invalid-quantity",
				LineID: line.ID,
				Detail: fmt.Sprintf("recipe quantity %v is not positive", line.Quantity),
			})
		}
	}
}

// checkItems flags unsyncable variants, stale composite caches, margins
// outside (0,1) and SKUs with stray whitespace.
func checkItems(report *Report, items []models.Item) {
	cutoff := time.Now().UTC().Add(-staleCacheAge)

	for idx := range items {
		item := &items[idx]

		if item.Type == models.TypeVariant && item.NormalizedSKU() == "" && item.RemoteVariantID == nil {
			report.add(Finding{
				Check:  "unsyncable-variant",
				ItemID: item.ID,
				Detail: fmt.Sprintf("variant %q has neither SKU nor remote variant id", item.Name),
			})
		}

		if item.IsComposite {
			switch {
			case item.CompositeCostCache == nil:
				report.add(Finding{
					Check:  "missing-composite-cost",
					ItemID: item.ID,
					Detail: fmt.Sprintf("composite %q has no cached cost", item.Name),
				})
			case item.CompositeCostComputedAt == nil || item.CompositeCostComputedAt.Before(cutoff):
				report.add(Finding{
					Check:  "stale-composite-cost",
					ItemID: item.ID,
					Detail: fmt.Sprintf("composite %q has a stale cached cost", item.Name),
				})
			}
		}

		checkMargin(report, item, "retail_margin", item.RetailMargin)
		checkMargin(report, item, "wholesale_margin", item.WholesaleMargin)
		checkMargin(report, item, "margin_per_100g", item.MarginPer100g)

		if item.SKU != nil && *item.SKU != strings.TrimSpace(*item.SKU) {
			report.add(Finding{
				Check:  "unnormalized-sku",
				ItemID: item.ID,
				Detail: fmt.Sprintf("SKU %q has surrounding whitespace", *item.SKU),
			})
		}
	}
}

func checkMargin(report *Report, item *models.Item, field string, margin *float64) {
	if margin == nil || (*margin > 0 && *margin < 1) {
		return
	}
	report.add(Finding{
		Check:  "margin-out-of-range",
		ItemID: item.ID,
		Detail: fmt.Sprintf("%s %v of %q is outside (0,1)", field, *margin, item.Name),
	})
}

func (r *Report) add(f Finding) {
	r.Findings = append(r.Findings, f)
}
