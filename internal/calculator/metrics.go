package calculator

import (
	"fmt"
	"growthprojection/internal/domain"
	"growthprojection/internal/util"
	"math"

	"github.com/montanaflynn/stats"
)

// Summarize computes headline metrics for a projected symbol. volatility
// is the sample stdev of month-over-month changes in total value,
// annualized, and needs at least two changes to be meaningful
func Summarize(result domain.StockResult) (*domain.Summary, error) {
	last, ok := result.Last()
	if !ok {
		return nil, fmt.Errorf("cannot summarize %s with no data points", result.Symbol)
	}

	returns := monthlyReturns(result.MonthlyData)
	volatility := 0.0
	if len(returns) >= 2 {
		stdev, err := stats.StandardDeviationSample(returns)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate stdev for %s: %w", result.Symbol, err)
		}
		volatility = stdev * math.Sqrt(12)
	}

	return &domain.Summary{
		MonthsCovered:        len(result.MonthlyData),
		FinalInvested:        last.Invested,
		FinalTotal:           last.Total,
		FinalGains:           last.Gains,
		ReturnPercentage:     last.ReturnPercentage,
		AnnualizedVolatility: util.RoundFloat(volatility, 4),
		MaxDrawdown:          util.RoundFloat(maxDrawdown(result.MonthlyData), 4),
	}, nil
}

func monthlyReturns(points []domain.MonthlyDataPoint) []float64 {
	returns := []float64{}
	for i := 1; i < len(points); i++ {
		prev := points[i-1].Total
		if prev == 0 {
			continue
		}
		returns = append(returns, (points[i].Total-prev)/prev)
	}
	return returns
}

// maxDrawdown is the largest peak-to-trough fall in total value, as a
// fraction of the peak
func maxDrawdown(points []domain.MonthlyDataPoint) float64 {
	peak := 0.0
	worst := 0.0
	for _, p := range points {
		if p.Total > peak {
			peak = p.Total
		}
		if peak > 0 {
			drawdown := (peak - p.Total) / peak
			if drawdown > worst {
				worst = drawdown
			}
		}
	}
	return worst
}
