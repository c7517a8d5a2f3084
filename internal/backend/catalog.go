package backend

import (
	"context"
	"net/http"

	"github.com/dvalverde/pos-companion/internal/models"
)

// ListProducts fetches one catalog page, optionally filtered by search text.
func (c *Client) ListProducts(ctx context.Context, page, pageSize int, search string) (*models.ProductPage, error) {
	var result models.ProductPage
	if err := c.do(ctx, http.MethodGet, "/products", pageQuery(page, pageSize, search), nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetProduct fetches a single product, used for the live stock check right
// before a sale is submitted.
func (c *Client) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	var result models.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+productID, nil, nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// DollarRate fetches the current reference exchange rate.
func (c *Client) DollarRate(ctx context.Context) (*models.ExchangeRate, error) {
	var result models.ExchangeRate
	if err := c.do(ctx, http.MethodGet, "/dollar-rate", nil, nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
