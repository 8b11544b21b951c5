package push

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"catalog-manager/core/remote"
	"catalog-manager/core/remote/mocks"
	"catalog-manager/feature/catalog"
	"catalog-manager/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var storeSeq int

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

// testConfig returns a remote config with a unique store id so the shared
// index cache never leaks between tests.
func testConfig() remote.Config {
	storeSeq++
	return remote.Config{StoreID: fmt.Sprintf("push-test-%d", storeSeq), PageSize: 200}
}

func fp(v float64) *float64 { return &v }
func sp(v string) *string   { return &v }
func ip(v int64) *int64     { return &v }

func seedItem(t *testing.T, store *catalog.Store, item models.Item) models.Item {
	item.Owner = "shop"
	if err := store.DB().Create(&item).Error; err != nil {
		t.Fatalf("Failed to seed item: %v", err)
	}
	return item
}

func newTestEngine(store *catalog.Store, client remote.Client, cfg remote.Config) *Engine {
	engine := NewEngine(store, client, cfg, zap.NewNop())
	engine.PatchDelay = 0
	return engine
}

func TestRun_PushesMatchedVariant(t *testing.T) {
	store := setupStore(t)
	parent := seedItem(t, store, models.Item{Name: "Bread", Type: models.TypeProduct,
		ManualUnitCost: fp(100), RetailMargin: fp(0.5)})
	seedItem(t, store, models.Item{Name: "Bread big", Type: models.TypeVariant,
		ParentID: &parent.ID, SKU: sp(" brd-1 ")})

	client := &mocks.Client{}
	client.On("ListProductsPage", mock.Anything, 1, 200).Return([]remote.Product{
		{ID: 9, Variants: []remote.Variant{{ID: 501, SKU: "BRD-1"}}},
	}, nil)
	client.On("PatchVariants", mock.Anything, int64(9), []remote.VariantPatch{
		{ID: 501, Price: "200"},
	}).Return(nil)

	report, err := newTestEngine(store, client, testConfig()).Run(context.Background(), "shop", ScopeAll, nil)
	assert.NoError(t, err)
	assert.True(t, report.OK)
	assert.False(t, report.Partial)
	assert.Equal(t, 1, report.ProductsTouched)
	assert.Equal(t, 1, report.VariantsUpdated)
	client.AssertExpectations(t)
}

func TestRun_CompositeParentCostFeedsVariant(t *testing.T) {
	store := setupStore(t)
	parent := seedItem(t, store, models.Item{Name: "Cake", Type: models.TypeProduct,
		IsComposite: true, CompositeCostCache: fp(60), RetailMargin: fp(0.5)})
	seedItem(t, store, models.Item{Name: "Cake slice", Type: models.TypeVariant,
		ParentID: &parent.ID, SKU: sp("cake-1")})

	client := &mocks.Client{}
	client.On("ListProductsPage", mock.Anything, 1, 200).Return([]remote.Product{
		{ID: 3, Variants: []remote.Variant{{ID: 31, SKU: "CAKE-1"}}},
	}, nil)
	// 60 / 0.5 = 120 unit, nearest 50 is 100
	client.On("PatchVariants", mock.Anything, int64(3), []remote.VariantPatch{
		{ID: 31, Price: "100"},
	}).Return(nil)

	report, err := newTestEngine(store, client, testConfig()).Run(context.Background(), "shop", ScopeAll, nil)
	assert.NoError(t, err)
	assert.True(t, report.OK)
	client.AssertExpectations(t)
}

func TestRun_WholesalePublishKind(t *testing.T) {
	store := setupStore(t)
	parent := seedItem(t, store, models.Item{Name: "Jam", Type: models.TypeProduct,
		ManualUnitCost: fp(72), WholesaleMargin: fp(0.4), RetailMargin: fp(0.5),
		WholesalePackSize: func() *int { v := 6; return &v }(),
		PublishPrice:      sp(models.PublishWholesale)})
	seedItem(t, store, models.Item{Name: "Jam unit", Type: models.TypeVariant,
		ParentID: &parent.ID, SKU: sp("jam-1")})

	client := &mocks.Client{}
	client.On("ListProductsPage", mock.Anything, 1, 200).Return([]remote.Product{
		{ID: 4, Variants: []remote.Variant{{ID: 41, SKU: "JAM-1"}}},
	}, nil)
	// 72 / 0.6 = 120 unit, pack 6 -> 720 -> nearest 50 is 700
	client.On("PatchVariants", mock.Anything, int64(4), []remote.VariantPatch{
		{ID: 41, Price: "700"},
	}).Return(nil)

	report, err := newTestEngine(store, client, testConfig()).Run(context.Background(), "shop", ScopeAll, nil)
	assert.NoError(t, err)
	assert.True(t, report.OK)
	client.AssertExpectations(t)
}

func TestRun_MatchByRemoteVariantID(t *testing.T) {
	store := setupStore(t)
	parent := seedItem(t, store, models.Item{Name: "Tea", Type: models.TypeProduct,
		ManualUnitCost: fp(100), RetailMargin: fp(0.5)})
	seedItem(t, store, models.Item{Name: "Tea box", Type: models.TypeVariant,
		ParentID: &parent.ID, RemoteVariantID: ip(77)})

	client := &mocks.Client{}
	client.On("ListProductsPage", mock.Anything, 1, 200).Return([]remote.Product{
		{ID: 7, Variants: []remote.Variant{{ID: 77, SKU: ""}}},
	}, nil)
	client.On("PatchVariants", mock.Anything, int64(7), []remote.VariantPatch{
		{ID: 77, Price: "200"},
	}).Return(nil)

	report, err := newTestEngine(store, client, testConfig()).Run(context.Background(), "shop", ScopeAll, nil)
	assert.NoError(t, err)
	assert.True(t, report.OK)
	client.AssertExpectations(t)
}

func TestRun_ReportsUnmatchedAndUnpriced(t *testing.T) {
	store := setupStore(t)
	parent := seedItem(t, store, models.Item{Name: "Bread", Type: models.TypeProduct,
		ManualUnitCost: fp(100), RetailMargin: fp(0.5)})
	// no SKU and no remote id
	seedItem(t, store, models.Item{Name: "Nameless", Type: models.TypeVariant, ParentID: &parent.ID})
	// SKU unknown remotely
	seedItem(t, store, models.Item{Name: "Gone", Type: models.TypeVariant,
		ParentID: &parent.ID, SKU: sp("gone-1")})
	// no derivable unit cost at all
	bare := seedItem(t, store, models.Item{Name: "Bare", Type: models.TypeProduct})
	seedItem(t, store, models.Item{Name: "Bare unit", Type: models.TypeVariant,
		ParentID: &bare.ID, SKU: sp("bare-1")})
	// unit cost exists but no margin yields a channel price
	flat := seedItem(t, store, models.Item{Name: "Flat", Type: models.TypeProduct, ManualUnitCost: fp(100)})
	seedItem(t, store, models.Item{Name: "Flat unit", Type: models.TypeVariant,
		ParentID: &flat.ID, SKU: sp("flat-1")})

	client := &mocks.Client{}
	client.On("ListProductsPage", mock.Anything, 1, 200).Return([]remote.Product{
		{ID: 5, Variants: []remote.Variant{{ID: 51, SKU: "BARE-1"}}},
	}, nil)

	report, err := newTestEngine(store, client, testConfig()).Run(context.Background(), "shop", ScopeAll, nil)
	assert.NoError(t, err)
	assert.True(t, report.OK)
	assert.Equal(t, 0, report.VariantsUpdated)
	assert.Len(t, report.MissingSKULocal, 1)
	assert.Len(t, report.MissingInRemote, 1)
	assert.Equal(t, "GONE-1", report.MissingInRemote[0].SKU)

	reasons := map[string]string{}
	for _, skipped := range report.SkippedNoPrice {
		reasons[skipped.SKU] = skipped.Reason
	}
	assert.Len(t, reasons, 2)
	assert.Equal(t, "no unit cost", reasons["BARE-1"])
	assert.Equal(t, "no computed price", reasons["FLAT-1"])
	client.AssertNotCalled(t, "PatchVariants", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_PartialFailureKeepsSiblings(t *testing.T) {
	store := setupStore(t)
	parent := seedItem(t, store, models.Item{Name: "Bread", Type: models.TypeProduct,
		ManualUnitCost: fp(100), RetailMargin: fp(0.5)})
	seedItem(t, store, models.Item{Name: "A", Type: models.TypeVariant, ParentID: &parent.ID, SKU: sp("a-1")})
	seedItem(t, store, models.Item{Name: "B", Type: models.TypeVariant, ParentID: &parent.ID, SKU: sp("b-1")})

	client := &mocks.Client{}
	client.On("ListProductsPage", mock.Anything, 1, 200).Return([]remote.Product{
		{ID: 1, Variants: []remote.Variant{{ID: 11, SKU: "A-1"}}},
		{ID: 2, Variants: []remote.Variant{{ID: 21, SKU: "B-1"}}},
	}, nil)
	client.On("PatchVariants", mock.Anything, int64(1), mock.Anything).Return(errors.New("remote 422"))
	client.On("PatchVariants", mock.Anything, int64(2), mock.Anything).Return(nil)

	report, err := newTestEngine(store, client, testConfig()).Run(context.Background(), "shop", ScopeAll, nil)
	assert.NoError(t, err)
	assert.False(t, report.OK)
	assert.True(t, report.Partial)
	assert.Equal(t, 1, report.ProductsTouched)
	assert.Equal(t, 1, report.VariantsUpdated)
	assert.Len(t, report.FailedProducts, 1)
	assert.Equal(t, int64(1), report.FailedProducts[0].ProductID)
	assert.Equal(t, 1, report.FailedProducts[0].Attempted)
}

func TestRun_ProductScope(t *testing.T) {
	store := setupStore(t)
	wanted := seedItem(t, store, models.Item{Name: "Bread", Type: models.TypeProduct,
		ManualUnitCost: fp(100), RetailMargin: fp(0.5)})
	other := seedItem(t, store, models.Item{Name: "Cake", Type: models.TypeProduct,
		ManualUnitCost: fp(100), RetailMargin: fp(0.5)})
	seedItem(t, store, models.Item{Name: "Bread unit", Type: models.TypeVariant,
		ParentID: &wanted.ID, SKU: sp("brd-1")})
	seedItem(t, store, models.Item{Name: "Cake unit", Type: models.TypeVariant,
		ParentID: &other.ID, SKU: sp("cake-1")})

	client := &mocks.Client{}
	client.On("ListProductsPage", mock.Anything, 1, 200).Return([]remote.Product{
		{ID: 1, Variants: []remote.Variant{{ID: 11, SKU: "BRD-1"}}},
		{ID: 2, Variants: []remote.Variant{{ID: 21, SKU: "CAKE-1"}}},
	}, nil)
	client.On("PatchVariants", mock.Anything, int64(1), mock.Anything).Return(nil)

	report, err := newTestEngine(store, client, testConfig()).Run(context.Background(), "shop", ScopeProduct, &wanted.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, report.VariantsUpdated)
	client.AssertNotCalled(t, "PatchVariants", mock.Anything, int64(2), mock.Anything)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "123", formatPrice(123.4))
	assert.Equal(t, "124", formatPrice(123.6))
	assert.Equal(t, "700", formatPrice(700))
}

func TestRun_ProductScopeRequiresID(t *testing.T) {
	store := setupStore(t)
	client := &mocks.Client{}

	_, err := newTestEngine(store, client, testConfig()).Run(context.Background(), "shop", ScopeProduct, nil)
	assert.Error(t, err)
}
