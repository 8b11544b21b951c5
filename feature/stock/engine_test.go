package stock

import (
	"context"
	"errors"
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

func sp(v string) *string { return &v }

func seedVariant(t *testing.T, store *catalog.Store, name string, sku *string) models.Item {
	item := models.Item{Owner: "shop", Name: name, Type: models.TypeVariant, SKU: sku}
	if err := store.DB().Create(&item).Error; err != nil {
		t.Fatalf("Failed to seed variant: %v", err)
	}
	return item
}

func stockOf(v float64) *remote.FlexFloat {
	f := remote.FlexFloat(v)
	return &f
}

func TestSync_WritesMatchedRows(t *testing.T) {
	store := setupStore(t)
	matched := seedVariant(t, store, "Bread big", sp(" brd-1 "))
	unmatched := seedVariant(t, store, "Lonely", sp("lonely-1"))

	client := &mocks.Client{}
	client.On("ListProductsPage", mock.Anything, 1, 200).Return([]remote.Product{
		{ID: 9, Variants: []remote.Variant{
			{ID: 501, SKU: "brd-1", Stock: stockOf(12)},
			{ID: 502, SKU: "other", Stock: stockOf(3)},
		}},
	}, nil)

	summary, err := NewEngine(store, client, remote.Config{}, zap.NewNop()).Sync(context.Background(), "shop")
	assert.NoError(t, err)
	assert.True(t, summary.OK)
	assert.Equal(t, 2, summary.RemoteVariantsSeen)
	assert.Equal(t, 2, summary.LocalVariantsWithSK)
	assert.Equal(t, 1, summary.MatchedBySKU)
	assert.Equal(t, 1, summary.RowsWritten)

	var got models.Item
	assert.NoError(t, store.DB().First(&got, matched.ID).Error)
	assert.Equal(t, int64(501), *got.RemoteVariantID)
	assert.Equal(t, 12.0, *got.RemoteStock)
	assert.NotNil(t, got.RemoteStockSyncedAt)

	var gotUnmatched models.Item
	assert.NoError(t, store.DB().First(&gotUnmatched, unmatched.ID).Error)
	assert.Nil(t, gotUnmatched.RemoteVariantID)
	assert.Nil(t, gotUnmatched.RemoteStockSyncedAt)
}

func TestSync_MatchIsCaseSensitive(t *testing.T) {
	store := setupStore(t)
	variant := seedVariant(t, store, "Bread", sp("BRD-1"))

	client := &mocks.Client{}
	client.On("ListProductsPage", mock.Anything, 1, 200).Return([]remote.Product{
		{ID: 9, Variants: []remote.Variant{{ID: 501, SKU: "brd-1", Stock: stockOf(5)}}},
	}, nil)

	summary, err := NewEngine(store, client, remote.Config{}, zap.NewNop()).Sync(context.Background(), "shop")
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.MatchedBySKU)

	var got models.Item
	assert.NoError(t, store.DB().First(&got, variant.ID).Error)
	assert.Nil(t, got.RemoteVariantID)
}

func TestSync_SumsInventoryLevels(t *testing.T) {
	store := setupStore(t)
	variant := seedVariant(t, store, "Bread", sp("brd-1"))

	client := &mocks.Client{}
	client.On("ListProductsPage", mock.Anything, 1, 200).Return([]remote.Product{
		{ID: 9, Variants: []remote.Variant{{
			ID:  501,
			SKU: "brd-1",
			InventoryLevels: []remote.InventoryLevel{
				{Stock: stockOf(4)},
				{Stock: stockOf(6)},
			},
		}}},
	}, nil)

	_, err := NewEngine(store, client, remote.Config{}, zap.NewNop()).Sync(context.Background(), "shop")
	assert.NoError(t, err)

	var got models.Item
	assert.NoError(t, store.DB().First(&got, variant.ID).Error)
	assert.Equal(t, 10.0, *got.RemoteStock)
}

func TestSync_NilStockStaysNil(t *testing.T) {
	store := setupStore(t)
	variant := seedVariant(t, store, "Bread", sp("brd-1"))

	client := &mocks.Client{}
	client.On("ListProductsPage", mock.Anything, 1, 200).Return([]remote.Product{
		{ID: 9, Variants: []remote.Variant{{ID: 501, SKU: "brd-1"}}},
	}, nil)

	summary, err := NewEngine(store, client, remote.Config{}, zap.NewNop()).Sync(context.Background(), "shop")
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.RowsWritten)

	var got models.Item
	assert.NoError(t, store.DB().First(&got, variant.ID).Error)
	assert.Equal(t, int64(501), *got.RemoteVariantID)
	assert.Nil(t, got.RemoteStock)
}

func TestSync_RemoteFetchFailureIsFatal(t *testing.T) {
	store := setupStore(t)
	seedVariant(t, store, "Bread", sp("brd-1"))

	client := &mocks.Client{}
	client.On("ListProductsPage", mock.Anything, 1, 200).Return(nil, errors.New("remote 500"))

	_, err := NewEngine(store, client, remote.Config{}, zap.NewNop()).Sync(context.Background(), "shop")
	assert.Error(t, err)
}
