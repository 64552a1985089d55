package service

import (
	"context"
	"errors"
	"fmt"
	"growthprojection/internal/calculator"
	"growthprojection/internal/domain"
	"growthprojection/internal/logger"
	"growthprojection/internal/repository"
)

const dataWarningMessage = "Some stocks had issues with data availability"

type GrowthService interface {
	Calculate(ctx context.Context, in CalculateInput) (*CalculateResult, error)
}

type CalculateInput struct {
	Parameters domain.InvestmentParameters
	Symbols    []string
}

type CalculateResult struct {
	Results  []domain.StockResult `json:"data"`
	Warnings *domain.Warnings     `json:"warnings,omitempty"`
}

type growthServiceHandler struct {
	PriceService        PriceService
	InflationRepository repository.InflationRepository
	InflationCountry    string
	Workers             int
}

func NewGrowthService(
	priceService PriceService,
	inflationRepository repository.InflationRepository,
	inflationCountry string,
	workers int,
) GrowthService {
	return growthServiceHandler{
		PriceService:        priceService,
		InflationRepository: inflationRepository,
		InflationCountry:    inflationCountry,
		Workers:             workers,
	}
}

func (h growthServiceHandler) Calculate(ctx context.Context, in CalculateInput) (*CalculateResult, error) {
	log := logger.FromContext(ctx)
	profile := domain.GetProfile(ctx)

	symbols := NormalizeSymbols(in.Symbols)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: at least one stock symbol is required", domain.ErrInvalidParameters)
	}
	params := in.Parameters
	if err := params.Validate(); err != nil {
		return nil, err
	}

	_, endSpan := profile.StartNewSpan("fetch price series")
	prices, err := h.PriceService.GetSeries(ctx, symbols, params.StartYear, params.EndYear)
	if err != nil {
		return nil, fmt.Errorf("failed to get price series: %w", err)
	}
	endSpan()

	if len(prices.InvalidSymbols) > 0 {
		log.Warnw("invalid symbols found", "symbols", prices.InvalidSymbols)
	}
	if len(prices.Series) == 0 {
		return nil, domain.NoStockDataError{
			Symbols:        symbols,
			InvalidSymbols: prices.InvalidSymbols,
		}
	}

	var inflation domain.InflationTable
	if params.AdjustForInflation {
		_, endSpan = profile.StartNewSpan("load inflation")
		inflation, err = h.InflationRepository.Get(ctx, h.InflationCountry)
		if err != nil {
			return nil, fmt.Errorf("failed to load inflation data: %w", err)
		}
		endSpan()
	}

	stocks := []domain.PriceSeries{}
	for _, symbol := range symbols {
		if series, ok := prices.Series[symbol]; ok {
			stocks = append(stocks, series)
		}
	}

	_, endSpan = profile.StartNewSpan("project growth")
	projection, err := calculator.ProjectGrowth(calculator.ProjectGrowthInput{
		Parameters: params,
		Stocks:     stocks,
		Inflation:  inflation,
	}, calculator.Options{
		Workers: h.Workers,
		Logger:  log,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoValidResults) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to project growth: %w", err)
	}
	endSpan()

	_, endSpan = profile.StartNewSpan("summarize")
	for i, result := range projection.Results {
		summary, err := calculator.Summarize(result)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize %s: %w", result.Symbol, err)
		}
		projection.Results[i].Summary = summary
	}
	endSpan()

	out := &CalculateResult{
		Results: projection.Results,
	}
	if len(prices.InvalidSymbols) > 0 || len(prices.DataIssues) > 0 || len(projection.Exclusions) > 0 {
		warnings := &domain.Warnings{
			InvalidSymbols: prices.InvalidSymbols,
			DataIssues:     prices.DataIssues,
			Message:        dataWarningMessage,
		}
		for _, e := range projection.Exclusions {
			warnings.ExcludedSymbols = append(warnings.ExcludedSymbols, domain.SymbolExclusion{
				Symbol: e.Symbol,
				Reason: e.Excluded,
			})
		}
		out.Warnings = warnings
	}

	log.Infow(
		"calculation completed",
		"symbols", len(symbols),
		"results", len(out.Results),
		"startYear", params.StartYear,
		"endYear", params.EndYear,
	)

	return out, nil
}
