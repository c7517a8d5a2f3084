package poller_test

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	appErrors "github.com/dvalverde/pos-companion/internal/errors"
	"github.com/dvalverde/pos-companion/internal/models"
	"github.com/dvalverde/pos-companion/internal/poller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRateSource struct {
	mu    sync.Mutex
	rates []*models.ExchangeRate
	errs  []error
	calls int
}

func (f *fakeRateSource) DollarRate(_ context.Context) (*models.ExchangeRate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.calls
	if i >= len(f.rates) {
		i = len(f.rates) - 1
	}
	f.calls++

	if f.errs[i] != nil {
		return nil, f.errs[i]
	}

	return f.rates[i], nil
}

func (f *fakeRateSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

type recordingSink struct {
	mu    sync.Mutex
	rates []float64
}

func (r *recordingSink) SetRate(rate float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates = append(r.rates, rate)
}

func (r *recordingSink) committed() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]float64(nil), r.rates...)
}

func TestRatePoller(t *testing.T) {
	t.Run("Commits Valid Rates And Skips Failures", func(t *testing.T) {
		// Arrange: first fetch ok, second fails, third delivers a new rate
		source := &fakeRateSource{
			rates: []*models.ExchangeRate{
				{ID: "r1", Rate: 36.58, Source: "BCV"},
				nil,
				{ID: "r2", Rate: 37.01, Source: "BCV"},
			},
			errs: []error{nil, appErrors.BackendError("backend down"), nil},
		}
		sink := &recordingSink{}
		p := poller.NewRatePoller(source, sink, 5*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})

		// Act
		go func() {
			defer close(done)
			p.Run(ctx)
		}()

		require.Eventually(t, func() bool {
			return source.callCount() >= 3
		}, time.Second, time.Millisecond)

		cancel()
		<-done

		// Assert: the failed fetch committed nothing
		committed := sink.committed()
		require.NotEmpty(t, committed)
		assert.Equal(t, 36.58, committed[0])
		assert.NotContains(t, committed, 0.0)

		last, ok := p.Last()
		require.True(t, ok)
		assert.Equal(t, "r2", last.ID)
	})

	t.Run("Discards Invalid Rates", func(t *testing.T) {
		// Arrange
		source := &fakeRateSource{
			rates: []*models.ExchangeRate{
				{ID: "r1", Rate: 0, Source: "BCV"},
				{ID: "r2", Rate: -3, Source: "BCV"},
				{ID: "r3", Rate: math.NaN(), Source: "BCV"},
			},
			errs: []error{nil, nil, nil},
		}
		sink := &recordingSink{}
		p := poller.NewRatePoller(source, sink, 5*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})

		// Act
		go func() {
			defer close(done)
			p.Run(ctx)
		}()

		require.Eventually(t, func() bool {
			return source.callCount() >= 3
		}, time.Second, time.Millisecond)

		cancel()
		<-done

		// Assert
		assert.Empty(t, sink.committed())
		_, ok := p.Last()
		assert.False(t, ok)
	})
}
