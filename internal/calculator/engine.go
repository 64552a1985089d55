package calculator

import (
	"fmt"
	"growthprojection/internal/domain"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"
)

type Options struct {
	// number of symbols projected concurrently. 0 uses NumCPU, 1 runs
	// everything on the calling goroutine
	Workers int
	Logger  *zap.SugaredLogger
}

type ProjectGrowthInput struct {
	Parameters domain.InvestmentParameters
	// one series per requested symbol, in the order results should be returned
	Stocks    []domain.PriceSeries
	Inflation domain.InflationTable
}

type ProjectGrowthResult struct {
	Results    []domain.StockResult
	Exclusions []domain.SymbolOutcome
}

// SeriesFromMap orders a symbol -> series map by symbol so that
// projections over maps are deterministic
func SeriesFromMap(stocks map[string]domain.PriceSeries) []domain.PriceSeries {
	symbols := make([]string, 0, len(stocks))
	for symbol := range stocks {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	out := make([]domain.PriceSeries, 0, len(symbols))
	for _, symbol := range symbols {
		s := stocks[symbol]
		if s.Symbol == "" {
			s.Symbol = symbol
		}
		out = append(out, s)
	}
	return out
}

type projectWorkInput struct {
	index  int
	series domain.PriceSeries
}

type projectWorkResult struct {
	index   int
	outcome domain.SymbolOutcome
}

// ProjectGrowth runs the accrual engine for every symbol and assembles the
// non-empty results in input order. symbols without usable months are
// reported as exclusions. if nothing is usable it returns ErrNoValidResults
// alongside the exclusions
//
// the function is pure: it reads only its inputs and never mutates them
func ProjectGrowth(in ProjectGrowthInput, opts Options) (*ProjectGrowthResult, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	outcomes := make([]domain.SymbolOutcome, len(in.Stocks))
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(in.Stocks) {
		workers = len(in.Stocks)
	}

	if workers <= 1 {
		for i, series := range in.Stocks {
			outcomes[i] = projectSymbol(series, in.Parameters, in.Inflation, log)
		}
	} else {
		inputCh := make(chan projectWorkInput, len(in.Stocks))
		resultCh := make(chan projectWorkResult, len(in.Stocks))
		for i, series := range in.Stocks {
			inputCh <- projectWorkInput{index: i, series: series}
		}
		close(inputCh)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for input := range inputCh {
					resultCh <- projectWorkResult{
						index:   input.index,
						outcome: projectSymbol(input.series, in.Parameters, in.Inflation, log),
					}
				}
			}()
		}

		go func() {
			wg.Wait()
			close(resultCh)
		}()

		// completion order is arbitrary; slotting by index restores input order
		for res := range resultCh {
			outcomes[res.index] = res.outcome
		}
	}

	out := &ProjectGrowthResult{
		Results:    []domain.StockResult{},
		Exclusions: []domain.SymbolOutcome{},
	}
	for _, outcome := range outcomes {
		if outcome.Result != nil {
			out.Results = append(out.Results, *outcome.Result)
		} else {
			out.Exclusions = append(out.Exclusions, outcome)
		}
	}

	if len(out.Results) == 0 {
		return out, fmt.Errorf("projected %d symbols: %w", len(in.Stocks), domain.ErrNoValidResults)
	}

	log.Infow(
		"investment growth calculation completed",
		"symbols", len(in.Stocks),
		"results", len(out.Results),
		"excluded", len(out.Exclusions),
	)

	return out, nil
}
