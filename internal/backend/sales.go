package backend

import (
	"context"
	"net/http"

	"github.com/dvalverde/pos-companion/internal/models"
)

// CreateSale submits a finished checkout. The backend owns the sale from
// here on; the companion only keeps the returned record for confirmation.
func (c *Client) CreateSale(ctx context.Context, sale models.CreateSaleRequest) (*models.Sale, error) {
	var result models.Sale
	if err := c.do(ctx, http.MethodPost, "/sales", nil, sale, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) ListSales(ctx context.Context, page, pageSize int, search string) (*models.SalePage, error) {
	var result models.SalePage
	if err := c.do(ctx, http.MethodGet, "/sales", pageQuery(page, pageSize, search), nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) ListClients(ctx context.Context, page, pageSize int, search string) (*models.ClientPage, error) {
	var result models.ClientPage
	if err := c.do(ctx, http.MethodGet, "/clients", pageQuery(page, pageSize, search), nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) CreateClient(ctx context.Context, req models.CreateClientRequest) (*models.Client, error) {
	var result models.Client
	if err := c.do(ctx, http.MethodPost, "/clients", nil, req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
