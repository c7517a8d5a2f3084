package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dvalverde/pos-companion/internal/api/handlers"
	"github.com/dvalverde/pos-companion/internal/currency"
	"github.com/dvalverde/pos-companion/internal/poller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCurrencyHandler(t *testing.T) (*handlers.CurrencyHandler, *currency.Converter) {
	t.Helper()

	converter := currency.NewConverter(currency.Profile{Country: "Venezuela", Code: "USD", Symbol: "$"})
	rates := poller.NewRatePoller(nil, converter, 0)

	return handlers.NewCurrencyHandler(converter, rates), converter
}

func TestToggleModeHandler(t *testing.T) {
	// Arrange
	handler, converter := newCurrencyHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/currency/toggle", http.NoBody)
	rec := httptest.NewRecorder()

	// Act
	handler.ToggleMode()(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, currency.ModeLocal, converter.Mode())

	// toggling again lands back in base mode
	handler.ToggleMode()(httptest.NewRecorder(), req)
	assert.Equal(t, currency.ModeBase, converter.Mode())
}

func TestSetModeHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		handler, converter := newCurrencyHandler(t)

		// Act
		rec := postJSON(t, handler.SetMode(), "/api/v1/currency/mode", map[string]string{"mode": "LOCAL"})

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, currency.ModeLocal, converter.Mode())
	})

	t.Run("Failure - Unknown Mode", func(t *testing.T) {
		// Arrange
		handler, converter := newCurrencyHandler(t)

		// Act
		rec := postJSON(t, handler.SetMode(), "/api/v1/currency/mode", map[string]string{"mode": "CRYPTO"})

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, currency.ModeBase, converter.Mode())
	})
}

func TestGetStateHandler(t *testing.T) {
	// Arrange: no rate fetched yet, so the view carries the mode only
	handler, _ := newCurrencyHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency", http.NoBody)
	rec := httptest.NewRecorder()

	// Act
	handler.GetState()(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec.Body)
	require.True(t, env.Success)

	state, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "BASE", state["mode"])
	assert.NotContains(t, state, "rate")
}
