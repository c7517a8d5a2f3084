// Package currency renders monetary amounts for the device UI, honoring the
// seller's currency profile and, for dual-currency locales, a runtime toggle
// between the base currency and a local currency derived from the exchange
// rate published by the backend.
package currency

import (
	"math"
	"strconv"
	"sync"

	"github.com/dvalverde/pos-companion/internal/models"
	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type Mode string

const (
	ModeBase  Mode = "BASE"
	ModeLocal Mode = "LOCAL"
)

// Locale describes the formatting strategy for a country. Countries with
// ConversionEnabled render in a local currency when a rate is available and
// the operator has toggled to local mode.
type Locale struct {
	ConversionEnabled bool
	LocalSymbol       string
	NumberLocale      language.Tag
}

// Keyed by the country value of the seller profile. Extending dual-currency
// support to another locale is a new table entry, not a new code path.
var locales = map[string]Locale{
	"Venezuela": {ConversionEnabled: true, LocalSymbol: "Bs. ", NumberLocale: language.MustParse("es-VE")},
	"VE":        {ConversionEnabled: true, LocalSymbol: "Bs. ", NumberLocale: language.MustParse("es-VE")},
}

// Profile is the currency slice of the seller record.
type Profile struct {
	Country string
	Code    string
	Symbol  string
}

// ProfileFromUser derives the presentation profile from the authenticated
// seller. The symbol falls back to "$" when the record carries none.
func ProfileFromUser(user models.User) Profile {
	symbol := user.CurrencySymbol
	if symbol == "" {
		symbol = "$"
	}

	return Profile{
		Country: user.Country,
		Code:    user.Currency,
		Symbol:  symbol,
	}
}

// FormatOptions controls fractional-digit rendering. A nil options value
// means the defaults: decimals shown, two places. DecimalPlaces is ignored
// when ShowDecimals is false.
type FormatOptions struct {
	ShowDecimals  bool
	DecimalPlaces int
}

// Converter holds the process-wide display state: the active profile, the
// BASE/LOCAL toggle and the latest exchange rate. The rate arrives from the
// refresh goroutine while handlers read, hence the mutex; every operation on
// it stays a plain in-memory mutation with no suspension points.
type Converter struct {
	mu      sync.RWMutex
	profile Profile
	mode    Mode
	rate    float64 // 0 means no rate fetched yet
}

func NewConverter(profile Profile) *Converter {
	return &Converter{
		profile: profile,
		mode:    ModeBase,
	}
}

func (c *Converter) SetProfile(profile Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = profile
}

func (c *Converter) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.mode
}

func (c *Converter) SetMode(mode Mode) {
	if mode != ModeBase && mode != ModeLocal {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
}

// Toggle flips between base and local display and returns the new mode.
// The toggle lives for the process only; a restart comes back in base mode.
func (c *Converter) Toggle() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ModeBase {
		c.mode = ModeLocal
	} else {
		c.mode = ModeBase
	}

	return c.mode
}

// SetRate commits a new exchange rate. Validation of the value (finite,
// positive) is the caller's job; the rate poller screens rates before they
// reach this setter.
func (c *Converter) SetRate(rate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rate = rate
}

func (c *Converter) Rate() (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.rate, c.rate > 0
}

// conversionActive reports whether amounts can be converted at all: the
// profile's country must be a conversion locale and a rate must be present.
// Callers hold at least a read lock.
func (c *Converter) conversionActive() (Locale, bool) {
	loc, ok := locales[c.profile.Country]
	if !ok || !loc.ConversionEnabled || c.rate <= 0 {
		return Locale{}, false
	}

	return loc, true
}

// Convert maps a base-currency amount into the local currency. Identity when
// no conversion locale applies or no rate has been fetched yet.
func (c *Converter) Convert(amount float64) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.conversionActive(); !ok {
		return amount
	}

	return amount * c.rate
}

// Original is the exact inverse of Convert.
func (c *Converter) Original(amount float64) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.conversionActive(); !ok {
		return amount
	}

	return amount / c.rate
}

// Format renders the amount in the currently toggled mode.
func (c *Converter) Format(amount float64, opts *FormatOptions) string {
	return c.FormatIn(c.Mode(), amount, opts)
}

// FormatIn renders the amount in an explicit mode, regardless of the toggle.
//
// Non-finite amounts render as an empty string: currency display sits on the
// render path and must never produce "NaN" or panic. Local mode without a
// rate falls back to base formatting until the poller delivers one.
func (c *Converter) FormatIn(mode Mode, amount float64, opts *FormatOptions) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ""
	}

	showDecimals, places := true, 2
	if opts != nil {
		showDecimals = opts.ShowDecimals
		if opts.DecimalPlaces > 0 {
			places = opts.DecimalPlaces
		}
	}
	if !showDecimals {
		places = 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if loc, ok := c.conversionActive(); ok && mode == ModeLocal {
		// Dedicated local path: the generic currency-code formatting is never
		// reused here, so the local symbol cannot be doubled up.
		printer := message.NewPrinter(loc.NumberLocale)

		return loc.LocalSymbol + printer.Sprintf("%v", number.Decimal(amount*c.rate, number.Scale(places)))
	}

	return c.formatBase(amount, places)
}

// formatBase renders in the base currency. A valid ISO 4217 code gets the
// en-US grouped rendering prefixed with the profile symbol; anything else
// falls back to symbol plus a fixed-point value.
func (c *Converter) formatBase(amount float64, places int) string {
	symbol := c.profile.Symbol
	if symbol == "" {
		symbol = "$"
	}

	if _, err := xcurrency.ParseISO(c.profile.Code); err != nil {
		return symbol + strconv.FormatFloat(amount, 'f', places, 64)
	}

	printer := message.NewPrinter(language.AmericanEnglish)

	return symbol + printer.Sprintf("%v", number.Decimal(amount, number.Scale(places)))
}
