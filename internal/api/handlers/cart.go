package handlers

import (
	"net/http"

	"github.com/dvalverde/pos-companion/internal/cart"
	"github.com/dvalverde/pos-companion/internal/currency"
	appErrors "github.com/dvalverde/pos-companion/internal/errors"
	"github.com/dvalverde/pos-companion/internal/metrics"
	"github.com/dvalverde/pos-companion/internal/models"
	service "github.com/dvalverde/pos-companion/internal/services"
	"github.com/dvalverde/pos-companion/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// CartHandler exposes the cart over the device API. The store serializes
// its own mutations, so handlers stay plain decode-mutate-render closures.
type CartHandler struct {
	cart      *cart.Store
	checkout  *service.CheckoutService
	converter *currency.Converter
	validator *validator.Validate
}

func NewCartHandler(cartStore *cart.Store, checkout *service.CheckoutService, converter *currency.Converter) *CartHandler {
	return &CartHandler{
		cart:      cartStore,
		checkout:  checkout,
		converter: converter,
		validator: validator.New(),
	}
}

type cartLineView struct {
	models.CartItem

	FormattedPrice    string `json:"formattedPrice"`
	FormattedSubtotal string `json:"formattedSubtotal"`
}

type cartView struct {
	Items          []cartLineView `json:"items"`
	ClientID       string         `json:"clientId,omitempty"`
	Total          float64        `json:"total"`
	FormattedTotal string         `json:"formattedTotal"`
}

// view renders the cart in the active display mode.
func (h *CartHandler) view() cartView {
	items := h.cart.Items()

	lines := make([]cartLineView, 0, len(items))
	for _, item := range items {
		lines = append(lines, cartLineView{
			CartItem:          item,
			FormattedPrice:    h.converter.Format(item.Price, nil),
			FormattedSubtotal: h.converter.Format(item.Price*float64(item.Quantity), nil),
		})
	}

	total := h.cart.Total()

	return cartView{
		Items:          lines,
		ClientID:       h.cart.SelectedClient(),
		Total:          total,
		FormattedTotal: h.converter.Format(total, nil),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		response.Success(w, http.StatusOK, h.view())

	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.AddItemRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		if err := h.cart.AddItem(req.Product, req.Quantity); err != nil {
			response.Error(w, err)
			return
		}

		metrics.CartMutation("add")
		response.Success(w, http.StatusOK, h.view())

	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.UpdateQuantityRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		h.cart.UpdateQuantity(req.ProductID, req.Quantity)

		metrics.CartMutation("update")
		response.Success(w, http.StatusOK, h.view())

	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID := r.PathValue("id")
		if productID == "" {
			response.Error(w, appErrors.BadRequestError("Product ID is required"))
			return
		}

		h.cart.Remove(productID)

		metrics.CartMutation("remove")
		response.Success(w, http.StatusOK, h.view())

	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.cart.Clear()

		metrics.CartMutation("clear")
		response.Success(w, http.StatusOK, h.view())

	}
}

func (h *CartHandler) SelectClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.SelectClientRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		h.cart.SetSelectedClient(req.ClientID)

		response.Success(w, http.StatusOK, h.view())

	}
}

func (h *CartHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CheckoutRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		sale, err := h.checkout.Checkout(r.Context(), &req)
		if err != nil {
			if appErr, ok := appErrors.IsAppError(err); ok && appErr.Code == appErrors.ErrCodeStockConflict {
				metrics.Checkout("stock_conflict")
			} else {
				metrics.Checkout("failed")
			}

			response.Error(w, err)
			return
		}

		metrics.Checkout("submitted")
		response.Success(w, http.StatusCreated, sale)

	}
}
