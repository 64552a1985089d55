package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"growthprojection/internal/domain"
	"growthprojection/internal/logger"
	"growthprojection/pkg/bls"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
)

const blsInflationTtl = 24 * time.Hour

type InflationRepository interface {
	Get(ctx context.Context, country string) (domain.InflationTable, error)
}

type jsonInflationRepositoryHandler struct {
	Path string
}

// NewJsonInflationRepository reads files shaped {"US": {"2020": 0.012}}
func NewJsonInflationRepository(path string) InflationRepository {
	return jsonInflationRepositoryHandler{Path: path}
}

func (h jsonInflationRepositoryHandler) Get(ctx context.Context, country string) (domain.InflationTable, error) {
	f, err := os.Open(h.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open inflation data: %w", err)
	}
	defer f.Close()

	data := map[string]domain.InflationTable{}
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode inflation data %s: %w", h.Path, err)
	}

	return lookupCountry(data, country)
}

func lookupCountry(data map[string]domain.InflationTable, country string) (domain.InflationTable, error) {
	table, ok := data[strings.ToUpper(country)]
	if !ok {
		return nil, fmt.Errorf("no inflation data for country %s: %w", country, domain.ErrNotFound)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid inflation data for %s: %w", country, err)
	}
	return table, nil
}

type csvInflationRepositoryHandler struct {
	Path string
}

type inflationCsvRow struct {
	Country string  `csv:"country"`
	Year    int     `csv:"year"`
	Rate    float64 `csv:"rate"`
}

// NewCsvInflationRepository reads country,year,rate rows
func NewCsvInflationRepository(path string) InflationRepository {
	return csvInflationRepositoryHandler{Path: path}
}

func (h csvInflationRepositoryHandler) Get(ctx context.Context, country string) (domain.InflationTable, error) {
	f, err := os.Open(h.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open inflation data: %w", err)
	}
	defer f.Close()

	rows := []inflationCsvRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse inflation csv %s: %w", h.Path, err)
	}

	data := map[string]domain.InflationTable{}
	for _, row := range rows {
		c := strings.ToUpper(row.Country)
		if _, ok := data[c]; !ok {
			data[c] = domain.InflationTable{}
		}
		data[c][strconv.Itoa(row.Year)] = row.Rate
	}

	return lookupCountry(data, country)
}

type blsInflationRepositoryHandler struct {
	Client    bls.Client
	Cache     CacheRepository
	StartYear int
	now       func() time.Time
}

// NewBlsInflationRepository serves US CPI-U inflation from the BLS api.
// tables are cached for a day since BLS publishes monthly
func NewBlsInflationRepository(client bls.Client, cache CacheRepository) InflationRepository {
	return blsInflationRepositoryHandler{
		Client:    client,
		Cache:     cache,
		StartYear: domain.MinStartYear,
		now:       time.Now,
	}
}

func (h blsInflationRepositoryHandler) Get(ctx context.Context, country string) (domain.InflationTable, error) {
	if !strings.EqualFold(country, "US") {
		return nil, fmt.Errorf("bls only publishes US inflation, got %s: %w", country, domain.ErrNotFound)
	}

	cacheKey := "inflation:bls:US"
	if cached, ok := h.Cache.Get(ctx, cacheKey); ok {
		table := domain.InflationTable{}
		if err := json.Unmarshal([]byte(cached), &table); err == nil {
			return table, nil
		}
	}

	rates, err := h.Client.GetAnnualInflation(ctx, h.StartYear, h.now().Year())
	if err != nil {
		return nil, fmt.Errorf("failed to get bls inflation: %w", err)
	}

	table := domain.InflationTable{}
	for year, rate := range rates {
		// deflation would grow real value, which the haircut model doesn't support
		if rate < 0 {
			rate = 0
		}
		table[strconv.Itoa(year)] = rate
	}

	if b, err := json.Marshal(table); err == nil {
		if err := h.Cache.Set(ctx, cacheKey, string(b), blsInflationTtl); err != nil {
			logger.FromContext(ctx).Warnw("failed to cache inflation table", "key", cacheKey, "error", err)
		}
	}

	return table, nil
}
