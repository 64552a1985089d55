package repository

import (
	"context"
	"fmt"
	"growthprojection/internal/domain"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
)

type priceCsvRow struct {
	Date   string `csv:"date"`
	Symbol string `csv:"symbol"`
	// blank for days without a close
	Price string `csv:"price"`
}

// ReadPriceCsv parses date,symbol,price rows into one series per symbol.
// blank prices are kept as gaps
func ReadPriceCsv(r io.Reader) (map[string]domain.PriceSeries, error) {
	rows := []priceCsvRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse price csv: %w", err)
	}

	points := map[string][]domain.PricePoint{}
	for i, row := range rows {
		date, err := time.Parse(time.DateOnly, strings.TrimSpace(row.Date))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q: %w", i+1, row.Date, err)
		}
		symbol := strings.ToUpper(strings.TrimSpace(row.Symbol))
		if symbol == "" {
			return nil, fmt.Errorf("row %d: missing symbol", i+1)
		}

		point := domain.PricePoint{Date: date}
		if s := strings.TrimSpace(row.Price); s != "" {
			price, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid price %q: %w", i+1, row.Price, err)
			}
			point.Price = &price
		}
		points[symbol] = append(points[symbol], point)
	}

	out := map[string]domain.PriceSeries{}
	for symbol, p := range points {
		sort.SliceStable(p, func(i, j int) bool {
			return p[i].Date.Before(p[j].Date)
		})
		out[symbol] = domain.PriceSeries{Symbol: symbol, Points: p}
	}
	return out, nil
}

type csvPriceSourceHandler struct {
	Series map[string]domain.PriceSeries
}

// NewCsvPriceSourceRepository serves prices from a local csv export in
// place of the upstream provider
func NewCsvPriceSourceRepository(path string) (PriceSourceRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price csv: %w", err)
	}
	defer f.Close()

	series, err := ReadPriceCsv(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return csvPriceSourceHandler{Series: series}, nil
}

func (h csvPriceSourceHandler) ListDaily(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	out := []domain.AssetPrice{}
	series, ok := h.Series[strings.ToUpper(symbol)]
	if !ok {
		return out, nil
	}
	for _, p := range series.Points {
		if p.Price == nil || p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		out = append(out, domain.AssetPrice{
			Symbol: series.Symbol,
			Date:   p.Date,
			Price:  *p.Price,
		})
	}
	return out, nil
}
