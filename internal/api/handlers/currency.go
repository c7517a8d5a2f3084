package handlers

import (
	"net/http"

	"github.com/dvalverde/pos-companion/internal/currency"
	appErrors "github.com/dvalverde/pos-companion/internal/errors"
	"github.com/dvalverde/pos-companion/internal/models"
	"github.com/dvalverde/pos-companion/internal/poller"
	"github.com/dvalverde/pos-companion/internal/utils/response"
)

type CurrencyHandler struct {
	converter *currency.Converter
	rates     *poller.RatePoller
}

func NewCurrencyHandler(converter *currency.Converter, rates *poller.RatePoller) *CurrencyHandler {
	return &CurrencyHandler{converter: converter, rates: rates}
}

type currencyView struct {
	Mode          currency.Mode        `json:"mode"`
	Rate          *models.ExchangeRate `json:"rate,omitempty"`
	FormattedRate string               `json:"formattedRate,omitempty"`
}

func (h *CurrencyHandler) state() currencyView {
	view := currencyView{Mode: h.converter.Mode()}

	if last, ok := h.rates.Last(); ok {
		view.Rate = &last
		view.FormattedRate = h.converter.FormatIn(currency.ModeLocal, 1, nil)
	}

	return view
}

func (h *CurrencyHandler) GetState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		response.Success(w, http.StatusOK, h.state())

	}
}

// ToggleMode flips between base and local display for the whole process.
func (h *CurrencyHandler) ToggleMode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.converter.Toggle()

		response.Success(w, http.StatusOK, h.state())

	}
}

type setModeRequest struct {
	Mode currency.Mode `json:"mode"`
}

func (h *CurrencyHandler) SetMode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req setModeRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if req.Mode != currency.ModeBase && req.Mode != currency.ModeLocal {
			response.Error(w, appErrors.BadRequestError("Mode must be BASE or LOCAL"))
			return
		}

		h.converter.SetMode(req.Mode)

		response.Success(w, http.StatusOK, h.state())

	}
}
