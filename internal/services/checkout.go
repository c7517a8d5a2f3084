package service

import (
	"context"
	"log/slog"

	"github.com/dvalverde/pos-companion/internal/cart"
	"github.com/dvalverde/pos-companion/internal/errors"
	"github.com/dvalverde/pos-companion/internal/models"
)

type productFetcher interface {
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
}

type saleCreator interface {
	CreateSale(ctx context.Context, sale models.CreateSaleRequest) (*models.Sale, error)
}

// CheckoutService turns the cart into a submitted sale. Stock is re-validated
// against the live catalog immediately before submission; a single stale line
// aborts the whole checkout so the backend never sees a partial sale.
type CheckoutService struct {
	cart     *cart.Store
	products productFetcher
	sales    saleCreator
}

func NewCheckoutService(cartStore *cart.Store, products productFetcher, sales saleCreator) *CheckoutService {
	return &CheckoutService{cart: cartStore, products: products, sales: sales}
}

func (s *CheckoutService) Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.Sale, error) {

	// one snapshot drives the whole submission, so a cart edit racing the
	// checkout cannot split the payload across two states
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, errors.BadRequestError("Cannot check out an empty cart")
	}

	clientID := s.cart.SelectedClient()
	if clientID == "" {
		return nil, errors.BadRequestError("A client must be selected before processing the sale")
	}

	// live stock check, item by item
	var exceeded []string

	for _, item := range items {
		product, err := s.products.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, errors.BackendError("Failed to verify stock for product: " + item.Name).WithError(err)
		}

		if item.Quantity > product.Quantity {
			exceeded = append(exceeded, item.Name)
		}
	}

	if len(exceeded) > 0 {
		return nil, errors.StockConflictError(exceeded)
	}

	var total float64

	saleItems := make([]models.SaleItem, 0, len(items))
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
		saleItems = append(saleItems, models.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	status := models.SaleStatusPending
	if req.InitialPaymentAmount >= total {
		status = models.SaleStatusPaid
	}

	payload := models.CreateSaleRequest{
		Items:         saleItems,
		Status:        status,
		ClientID:      clientID,
		PaymentMethod: req.PaymentMethod,
	}
	if req.InitialPaymentAmount > 0 {
		payload.InitialPaymentAmount = req.InitialPaymentAmount
	}

	sale, err := s.sales.CreateSale(ctx, payload)
	if err != nil {
		return nil, err
	}

	slog.Info("Sale submitted",
		slog.String("saleId", sale.ID),
		slog.String("status", status),
		slog.Float64("total", total),
		slog.Int("lines", len(payload.Items)))

	s.cart.Clear()
	s.cart.SetSelectedClient("")

	return sale, nil
}
