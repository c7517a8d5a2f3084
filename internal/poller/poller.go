// Package poller keeps the exchange rate fresh. The currency converter only
// consumes already-resolved values; this is the collaborator that fetches
// them from the backend on a fixed interval and pushes them in.
package poller

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/dvalverde/pos-companion/internal/models"
)

type rateSource interface {
	DollarRate(ctx context.Context) (*models.ExchangeRate, error)
}

type rateSink interface {
	SetRate(rate float64)
}

type RatePoller struct {
	source   rateSource
	sink     rateSink
	interval time.Duration

	mu   sync.RWMutex
	last *models.ExchangeRate
}

func NewRatePoller(source rateSource, sink rateSink, interval time.Duration) *RatePoller {
	return &RatePoller{
		source:   source,
		sink:     sink,
		interval: interval,
	}
}

// Run fetches once immediately, then on every tick until the context is
// cancelled. A failed or invalid fetch keeps the previously committed rate;
// local-mode formatting falls back to base currency until the first success.
func (p *RatePoller) Run(ctx context.Context) {
	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *RatePoller) refresh(ctx context.Context) {
	rate, err := p.source.DollarRate(ctx)
	if err != nil {
		slog.Warn("Failed to fetch exchange rate, keeping previous value", slog.String("error", err.Error()))

		return
	}

	// the converter never rejects rates, so screening happens here
	if rate.Rate <= 0 || math.IsNaN(rate.Rate) || math.IsInf(rate.Rate, 0) {
		slog.Warn("Discarding invalid exchange rate", slog.Float64("rate", rate.Rate), slog.String("source", rate.Source))

		return
	}

	p.sink.SetRate(rate.Rate)

	p.mu.Lock()
	p.last = rate
	p.mu.Unlock()

	slog.Info("Exchange rate updated",
		slog.Float64("rate", rate.Rate),
		slog.String("source", rate.Source),
		slog.Time("lastUpdated", rate.LastUpdated))
}

// Last returns the most recent successfully committed rate record.
func (p *RatePoller) Last() (models.ExchangeRate, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.last == nil {
		return models.ExchangeRate{}, false
	}

	return *p.last, true
}
