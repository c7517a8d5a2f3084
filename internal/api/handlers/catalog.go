package handlers

import (
	"net/http"
	"strconv"

	"github.com/dvalverde/pos-companion/internal/backend"
	"github.com/dvalverde/pos-companion/internal/models"
	"github.com/dvalverde/pos-companion/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// CatalogHandler passes catalog, client and sale listings through to the
// backend so the device UI talks to one surface only.
type CatalogHandler struct {
	backend   *backend.Client
	validator *validator.Validate
}

func NewCatalogHandler(backendClient *backend.Client) *CatalogHandler {
	return &CatalogHandler{
		backend:   backendClient,
		validator: validator.New(),
	}
}

func pagination(r *http.Request) (page, pageSize int, search string) {
	page, pageSize = 1, 10

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil && v > 0 {
		pageSize = v
	}

	return page, pageSize, r.URL.Query().Get("search")
}

func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, pageSize, search := pagination(r)

		result, err := h.backend.ListProducts(r.Context(), page, pageSize, search)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)

	}
}

func (h *CatalogHandler) ListClients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, pageSize, search := pagination(r)

		result, err := h.backend.ListClients(r.Context(), page, pageSize, search)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)

	}
}

func (h *CatalogHandler) CreateClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CreateClientRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		client, err := h.backend.CreateClient(r.Context(), req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, client)

	}
}

func (h *CatalogHandler) ListSales() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, pageSize, search := pagination(r)

		result, err := h.backend.ListSales(r.Context(), page, pageSize, search)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)

	}
}
