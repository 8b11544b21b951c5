package integrity

import (
	"context"
	"testing"
	"time"

	"catalog-manager/feature/catalog"
	"catalog-manager/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupStore(t *testing.T) *catalog.Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&models.Item{}, &models.RecipeLine{}, &models.Parameter{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return catalog.NewStore(db)
}

func fp(v float64) *float64 { return &v }
func sp(v string) *string   { return &v }

func seed(t *testing.T, store *catalog.Store, value any) {
	if err := store.DB().Create(value).Error; err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}
}

func findChecks(report *Report, check string) []Finding {
	var out []Finding
	for _, f := range report.Findings {
		if f.Check == check {
			out = append(out, f)
		}
	}
	return out
}

func TestCheckCatalog_CleanCatalog(t *testing.T) {
	store := setupStore(t)
	now := time.Now().UTC()
	seed(t, store, &models.Item{Owner: "shop", Name: "Sugar", Type: models.TypeIngredient, ManualUnitCost: fp(10)})
	cake := models.Item{Owner: "shop", Name: "Cake", Type: models.TypeProduct, IsComposite: true,
		CompositeCostCache: fp(40), CompositeCostComputedAt: &now}
	seed(t, store, &cake)
	seed(t, store, &models.Item{Owner: "shop", Name: "Cake slice", Type: models.TypeVariant,
		ParentID: &cake.ID, SKU: sp("cake-1"), RetailMargin: fp(0.5)})

	report, err := CheckCatalog(context.Background(), store, "shop")
	assert.NoError(t, err)
	assert.Equal(t, 3, report.ItemsChecked)
	assert.Empty(t, report.Findings)
}

func TestCheckCatalog_OrphanRecipeLines(t *testing.T) {
	store := setupStore(t)
	cake := models.Item{Owner: "shop", Name: "Cake", Type: models.TypeProduct, IsComposite: true}
	seed(t, store, &cake)
	seed(t, store, &models.RecipeLine{Owner: "shop", ParentID: cake.ID, ComponentID: 9999,
		Quantity: 1, Unit: models.UnitCount})
	seed(t, store, &models.RecipeLine{Owner: "shop", ParentID: 8888, ComponentID: cake.ID,
		Quantity: 1, Unit: models.UnitCount})

	report, err := CheckCatalog(context.Background(), store, "shop")
	assert.NoError(t, err)
	assert.Len(t, findChecks(report, "orphan-recipe-line"), 2)
}

func TestCheckCatalog_UnsyncableVariant(t *testing.T) {
	store := setupStore(t)
	bread := models.Item{Owner: "shop", Name: "Bread", Type: models.TypeProduct}
	seed(t, store, &bread)
	seed(t, store, &models.Item{Owner: "shop", Name: "Nameless", Type: models.TypeVariant, ParentID: &bread.ID})

	report, err := CheckCatalog(context.Background(), store, "shop")
	assert.NoError(t, err)
	findings := findChecks(report, "unsyncable-variant")
	assert.Len(t, findings, 1)
}

func TestCheckCatalog_CompositeCostCache(t *testing.T) {
	store := setupStore(t)
	old := time.Now().UTC().Add(-30 * 24 * time.Hour)
	seed(t, store, &models.Item{Owner: "shop", Name: "Never", Type: models.TypeProduct, IsComposite: true})
	seed(t, store, &models.Item{Owner: "shop", Name: "Stale", Type: models.TypeProduct, IsComposite: true,
		CompositeCostCache: fp(40), CompositeCostComputedAt: &old})

	report, err := CheckCatalog(context.Background(), store, "shop")
	assert.NoError(t, err)
	assert.Len(t, findChecks(report, "missing-composite-cost"), 1)
	assert.Len(t, findChecks(report, "stale-composite-cost"), 1)
}

func TestCheckCatalog_MarginsAndSKUs(t *testing.T) {
	store := setupStore(t)
	seed(t, store, &models.Item{Owner: "shop", Name: "Bad margins", Type: models.TypeProduct,
		RetailMargin: fp(1.2), WholesaleMargin: fp(0)})
	seed(t, store, &models.Item{Owner: "shop", Name: "Messy", Type: models.TypeProduct, SKU: sp(" brd-1 ")})

	report, err := CheckCatalog(context.Background(), store, "shop")
	assert.NoError(t, err)
	assert.Len(t, findChecks(report, "margin-out-of-range"), 2)
	assert.Len(t, findChecks(report, "unnormalized-sku"), 1)
}
