package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-manager/core/remote"

	"github.com/stretchr/testify/assert"
)

func testConfig(baseURL string) remote.Config {
	return remote.Config{
		BaseURL:    baseURL,
		StoreID:    "12345",
		Token:      "secret-token",
		UserAgent:  "catalog-manager (test)",
		APIVersion: "2025-03",
		PageSize:   200,
	}
}

func TestListProductsPage(t *testing.T) {
	var gotPath, gotAuth, gotUA string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotAuth = r.Header.Get("Authentication")
		gotUA = r.Header.Get("User-Agent")

		_ = json.NewEncoder(w).Encode([]remote.Product{
			{ID: 9, Variants: []remote.Variant{{ID: 501, SKU: "abc-1"}}},
		})
	}))
	defer srv.Close()

	client := remote.NewClient(testConfig(srv.URL))

	products, err := client.ListProductsPage(context.Background(), 1, 200)
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, int64(9), products[0].ID)
	assert.Equal(t, "abc-1", products[0].Variants[0].SKU)

	assert.Equal(t, "/2025-03/12345/products?page=1&per_page=200&fields=id,variants", gotPath)
	assert.Equal(t, "bearer secret-token", gotAuth)
	assert.Equal(t, "catalog-manager (test)", gotUA)
}

func TestListProductsPage_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	client := remote.NewClient(testConfig(srv.URL))

	_, err := client.ListProductsPage(context.Background(), 1, 200)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "slow down")
}

func TestListProductsPage_StringStock(t *testing.T) {
	// Some API versions serialize stock as a quoted string.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"variants":[{"id":10,"sku":"A","stock":"7"},{"id":11,"sku":"B","stock":null,"inventory_levels":[{"stock":2},{"stock":3}]}]}]`))
	}))
	defer srv.Close()

	client := remote.NewClient(testConfig(srv.URL))

	products, err := client.ListProductsPage(context.Background(), 1, 200)
	assert.NoError(t, err)

	direct := products[0].Variants[0].StockQuantity()
	assert.NotNil(t, direct)
	assert.Equal(t, 7.0, *direct)

	summed := products[0].Variants[1].StockQuantity()
	assert.NotNil(t, summed)
	assert.Equal(t, 5.0, *summed)
}

func TestPatchVariants(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody []remote.VariantPatch

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := remote.NewClient(testConfig(srv.URL))

	err := client.PatchVariants(context.Background(), 9, []remote.VariantPatch{{ID: 501, Price: "123"}})
	assert.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/2025-03/12345/products/9/variants", gotPath)
	assert.Equal(t, []remote.VariantPatch{{ID: 501, Price: "123"}}, gotBody)
}

func TestPatchVariants_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("bad variant"))
	}))
	defer srv.Close()

	client := remote.NewClient(testConfig(srv.URL))

	err := client.PatchVariants(context.Background(), 9, []remote.VariantPatch{{ID: 501, Price: "123"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}
