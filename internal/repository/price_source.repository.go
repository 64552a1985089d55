package repository

import (
	"context"
	"fmt"
	"growthprojection/internal/domain"
	"math"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"golang.org/x/time/rate"
)

const baseRetryWait = 500 * time.Millisecond

// PriceSourceRepository fetches daily adjusted closes from an upstream
// market data provider
type PriceSourceRepository interface {
	ListDaily(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error)
}

type fetchDailyFn func(symbol string, start, end time.Time) ([]domain.AssetPrice, error)

type yahooPriceSourceHandler struct {
	Limiter    *rate.Limiter
	MaxRetries int
	RetryWait  time.Duration
	fetch      fetchDailyFn
}

func NewYahooPriceSourceRepository(ratePerSecond float64, burst, maxRetries int) PriceSourceRepository {
	return yahooPriceSourceHandler{
		Limiter:    rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		MaxRetries: maxRetries,
		RetryWait:  baseRetryWait,
		fetch:      fetchYahooChart,
	}
}

func fetchYahooChart(symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	out := []domain.AssetPrice{}
	for iter.Next() {
		bar := iter.Bar()
		t := time.Unix(int64(bar.Timestamp), 0).UTC()
		out = append(out, domain.AssetPrice{
			Symbol: symbol,
			Date:   time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
			Price:  bar.AdjClose.InexactFloat64(),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}

	return out, nil
}

// ListDaily retries failed upstream calls with exponential backoff. an
// empty result is not an error; the symbol simply has no data in range
func (h yahooPriceSourceHandler) ListDaily(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	var lastErr error
	for attempt := 0; attempt <= h.MaxRetries; attempt++ {
		if err := h.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		prices, err := h.fetch(symbol, start, end)
		if err == nil {
			return prices, nil
		}
		lastErr = err

		if attempt < h.MaxRetries {
			if err := h.sleep(ctx, attempt); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("upstream request for %s failed after %d retries: %w", symbol, h.MaxRetries, lastErr)
}

func (h yahooPriceSourceHandler) sleep(ctx context.Context, attempt int) error {
	wait := time.Duration(math.Pow(2, float64(attempt))) * h.RetryWait
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}
