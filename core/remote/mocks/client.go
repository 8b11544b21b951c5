package mocks

import (
	"context"

	"catalog-manager/core/remote"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of remote.Client
type Client struct {
	mock.Mock
}

func (m *Client) ListProductsPage(ctx context.Context, page, perPage int) ([]remote.Product, error) {
	args := m.Called(ctx, page, perPage)
	if products, ok := args.Get(0).([]remote.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) PatchVariants(ctx context.Context, productID int64, patches []remote.VariantPatch) error {
	args := m.Called(ctx, productID, patches)
	return args.Error(0)
}
