package service

import (
	"context"
	"encoding/json"
	"fmt"
	"growthprojection/internal/domain"
	"growthprojection/internal/logger"
	"growthprojection/internal/repository"
	"growthprojection/internal/util"
	"math"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	priceWorkers = 10
	// tolerance when deciding whether stored prices cover a range, so
	// weekends and holidays at either end don't force a refetch
	coverageSlack = 7 * 24 * time.Hour
)

type PriceService interface {
	GetSeries(ctx context.Context, symbols []string, startYear, endYear int) (*GetSeriesResult, error)
	Ingest(ctx context.Context, symbols []string, start, end time.Time) (map[string]int, error)
}

type GetSeriesResult struct {
	// only symbols with at least one usable close
	Series         map[string]domain.PriceSeries `json:"series"`
	InvalidSymbols []string                      `json:"invalidSymbols"`
	DataIssues     []domain.DataIssue            `json:"dataIssues"`
}

type priceServiceHandler struct {
	AdjPriceRepository    repository.AdjustedPriceRepository
	PriceSourceRepository repository.PriceSourceRepository
	CacheRepository       repository.CacheRepository
	CacheTtl              time.Duration
	now                   func() time.Time
}

func NewPriceService(
	adjPriceRepository repository.AdjustedPriceRepository,
	priceSourceRepository repository.PriceSourceRepository,
	cacheRepository repository.CacheRepository,
	cacheTtl time.Duration,
) PriceService {
	return priceServiceHandler{
		AdjPriceRepository:    adjPriceRepository,
		PriceSourceRepository: priceSourceRepository,
		CacheRepository:       cacheRepository,
		CacheTtl:              cacheTtl,
		now:                   time.Now,
	}
}

// NormalizeSymbols upper-cases and trims symbols, dropping blanks and
// duplicates while keeping the requested order
func NormalizeSymbols(symbols []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func priceCacheKey(symbols []string, startYear, endYear int) string {
	sorted := make([]string, len(symbols))
	copy(sorted, symbols)
	sort.Strings(sorted)
	return fmt.Sprintf("prices:%s:%d:%d", strings.Join(sorted, ","), startYear, endYear)
}

type seriesWorkResult struct {
	symbol   string
	series   domain.PriceSeries
	issue    *domain.DataIssue
	valid    bool
	// set when the upstream fetch was needed but failed
	degraded bool
}

func (h priceServiceHandler) GetSeries(ctx context.Context, symbols []string, startYear, endYear int) (*GetSeriesResult, error) {
	log := logger.FromContext(ctx)
	symbols = NormalizeSymbols(symbols)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: at least one stock symbol is required", domain.ErrInvalidParameters)
	}

	cacheKey := priceCacheKey(symbols, startYear, endYear)
	if cached, ok := h.CacheRepository.Get(ctx, cacheKey); ok {
		out := GetSeriesResult{}
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			log.Debugw("price cache hit", "key", cacheKey)
			return &out, nil
		}
		log.Warnw("discarding unreadable price cache entry", "key", cacheKey)
	}

	// endYear is exclusive
	start := util.StartOfYear(startYear)
	end := util.EndOfYear(endYear - 1)

	inputCh := make(chan string, len(symbols))
	resultCh := make(chan seriesWorkResult, len(symbols))
	for _, s := range symbols {
		inputCh <- s
	}
	close(inputCh)

	var wg sync.WaitGroup
	for i := 0; i < priceWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range inputCh {
				resultCh <- h.loadSymbol(ctx, symbol, start, end)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	bySymbol := map[string]seriesWorkResult{}
	degraded := []string{}
	for res := range resultCh {
		bySymbol[res.symbol] = res
		if res.degraded {
			degraded = append(degraded, res.symbol)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to load prices: %w", err)
	}

	out := &GetSeriesResult{
		Series:         map[string]domain.PriceSeries{},
		InvalidSymbols: []string{},
		DataIssues:     []domain.DataIssue{},
	}
	for _, symbol := range symbols {
		res := bySymbol[symbol]
		if res.valid {
			out.Series[symbol] = res.series
		} else {
			out.InvalidSymbols = append(out.InvalidSymbols, symbol)
		}
		if res.issue != nil {
			out.DataIssues = append(out.DataIssues, *res.issue)
		}
	}

	log.Infow(
		"loaded price series",
		"requested", len(symbols),
		"valid", len(out.Series),
		"invalid", out.InvalidSymbols,
		"issues", len(out.DataIssues),
	)

	if len(degraded) > 0 {
		log.Infow("not caching price series after upstream failure", "key", cacheKey, "symbols", degraded)
	} else if b, err := json.Marshal(out); err == nil {
		if err := h.CacheRepository.Set(ctx, cacheKey, string(b), h.CacheTtl); err != nil {
			log.Warnw("failed to cache price series", "key", cacheKey, "error", err)
		}
	}

	return out, nil
}

// loadSymbol reads stored prices, falling back to the upstream source
// when the store doesn't cover the range. upstream results are written
// back to the store
func (h priceServiceHandler) loadSymbol(ctx context.Context, symbol string, start, end time.Time) seriesWorkResult {
	log := logger.FromContext(ctx)

	stored, err := h.AdjPriceRepository.List(ctx, symbol, start, end)
	if err != nil {
		log.Warnw("failed to read stored prices", "symbol", symbol, "error", err)
		stored = nil
	}
	if h.coversRange(stored, start, end) {
		return assessSeries(symbol, stored)
	}

	fetched, err := h.PriceSourceRepository.ListDaily(ctx, symbol, start, end)
	if err != nil {
		if len(stored) > 0 {
			log.Warnw("upstream fetch failed, using partial stored prices", "symbol", symbol, "error", err)
			out := assessSeries(symbol, stored)
			out.degraded = true
			return out
		}
		return seriesWorkResult{
			symbol: symbol,
			issue: &domain.DataIssue{
				Symbol: symbol,
				Status: domain.DataIssueStatus_Error,
				Error:  err.Error(),
			},
			degraded: true,
		}
	}

	if len(fetched) > 0 {
		if err := h.AdjPriceRepository.Add(ctx, usablePrices(fetched)); err != nil {
			log.Warnw("failed to store fetched prices", "symbol", symbol, "error", err)
		}
	}

	return assessSeries(symbol, fetched)
}

func (h priceServiceHandler) coversRange(prices []domain.AssetPrice, start, end time.Time) bool {
	if len(prices) == 0 {
		return false
	}
	if now := h.now(); end.After(now) {
		end = now
	}
	first := prices[0].Date
	last := prices[len(prices)-1].Date
	return !first.After(start.Add(coverageSlack)) && !last.Before(end.Add(-coverageSlack))
}

func isUsable(price float64) bool {
	return !math.IsNaN(price) && !math.IsInf(price, 0) && price > 0
}

func usablePrices(prices []domain.AssetPrice) []domain.AssetPrice {
	out := []domain.AssetPrice{}
	for _, p := range prices {
		if isUsable(p.Price) {
			out = append(out, p)
		}
	}
	return out
}

// assessSeries builds the series for a symbol, turning unusable closes
// into gaps, and reports data quality
func assessSeries(symbol string, prices []domain.AssetPrice) seriesWorkResult {
	series := domain.NewPriceSeries(symbol, prices)
	if len(series.Points) == 0 {
		return seriesWorkResult{
			symbol: symbol,
			issue: &domain.DataIssue{
				Symbol: symbol,
				Status: domain.DataIssueStatus_NoData,
				Error:  "symbol not found in data",
			},
		}
	}

	valid := 0
	var firstValid, lastValid *time.Time
	for i, p := range series.Points {
		if p.Price == nil || !isUsable(*p.Price) {
			series.Points[i].Price = nil
			continue
		}
		valid++
		d := p.Date
		if firstValid == nil {
			firstValid = &d
		}
		lastValid = &d
	}

	total := len(series.Points)
	nulls := total - valid
	if series.IsEmpty() {
		return seriesWorkResult{
			symbol: symbol,
			issue: &domain.DataIssue{
				Symbol:      symbol,
				Status:      domain.DataIssueStatus_NoValidData,
				TotalPoints: total,
				NullPoints:  nulls,
			},
		}
	}

	out := seriesWorkResult{
		symbol: symbol,
		series: series,
		valid:  true,
	}
	if nulls > 0 {
		out.issue = &domain.DataIssue{
			Symbol:         symbol,
			Status:         domain.DataIssueStatus_PartialData,
			TotalPoints:    total,
			ValidPoints:    valid,
			NullPoints:     nulls,
			NullPercentage: util.RoundFloat(float64(nulls)/float64(total)*100, 2),
			FirstValidDate: firstValid.Format(time.DateOnly),
			LastValidDate:  lastValid.Format(time.DateOnly),
		}
	}
	return out
}

// Ingest pulls daily prices for each symbol from the upstream source into
// the store and returns how many closes were stored per symbol
func (h priceServiceHandler) Ingest(ctx context.Context, symbols []string, start, end time.Time) (map[string]int, error) {
	log := logger.FromContext(ctx)
	symbols = NormalizeSymbols(symbols)

	out := map[string]int{}
	errs := []error{}
	for _, symbol := range symbols {
		prices, err := h.PriceSourceRepository.ListDaily(ctx, symbol, start, end)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to ingest historical prices for %s: %w", symbol, err))
			continue
		}
		prices = usablePrices(prices)
		if err := h.AdjPriceRepository.Add(ctx, prices); err != nil {
			errs = append(errs, fmt.Errorf("failed to store prices for %s: %w", symbol, err))
			continue
		}
		out[symbol] = len(prices)
		log.Infow("ingested prices", "symbol", symbol, "count", len(prices))
	}

	if len(errs) > 0 {
		return out, fmt.Errorf("failed to ingest %d/%d symbols. first err: %w", len(errs), len(symbols), errs[0])
	}
	return out, nil
}
