package calculator

import (
	"fmt"
	"growthprojection/internal/domain"
	"growthprojection/internal/util"
	"math"
	"time"

	"go.uber.org/zap"
)

// holdings is the state carried from one resolved month to the next
type holdings struct {
	invested float64
	// cumulative inflation haircut applied to the initial stake
	stakeFactor float64
	// contributions are held as units bought at their entry price so
	// they keep earning from their entry date forward
	contributionUnits float64
	lastDeflatedYear  int
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// projectSymbol walks one symbol's monthly closes through the
// contribution schedule and inflation haircuts, emitting one data point
// per resolved month inside [StartYear, EndYear)
func projectSymbol(
	series domain.PriceSeries,
	params domain.InvestmentParameters,
	inflation domain.InflationTable,
	log *zap.SugaredLogger,
) domain.SymbolOutcome {
	obs := usableObservations(series)
	anchor, ok := newReturnAnchor(obs)
	if !ok {
		log.Warnw("skipping symbol with no usable prices", "symbol", series.Symbol)
		return domain.SymbolOutcome{
			Symbol:   series.Symbol,
			Excluded: domain.ExclusionReason_NoData,
		}
	}

	months := resampleMonthly(obs)
	priceByMonth := make(map[monthKey]float64, len(months))
	for _, m := range months {
		priceByMonth[m.key] = m.price
	}

	initial := params.InitialInvestment
	amount := params.AdditionAmount
	state := holdings{
		invested:    initial,
		stakeFactor: 1,
	}

	points := []domain.MonthlyDataPoint{}
	for _, m := range months {
		year, month := m.key.year, m.key.month
		if year < params.StartYear || year >= params.EndYear {
			continue
		}

		next := state
		value := initial*(1+anchor.cumulativeReturn(m.price))*next.stakeFactor + next.contributionUnits*m.price

		switch params.AdditionFrequency {
		case domain.AdditionFrequency_Monthly:
			if year > params.StartYear || month > time.January {
				next.invested += amount
				// the contribution enters at last month's close. without one
				// it enters at this month's close, i.e. at face value
				entryPrice := m.price
				prevYear, prevMonth := util.PreviousMonth(year, month)
				if prior, ok := priceByMonth[monthKey{year: prevYear, month: prevMonth}]; ok {
					entryPrice = prior
				}
				units := amount / entryPrice
				next.contributionUnits += units
				value += units * m.price
			}
		case domain.AdditionFrequency_Annually:
			if month == time.January && year > params.StartYear {
				next.invested += amount
				next.contributionUnits += amount / m.price
				value += amount
			}
		}

		if params.AdjustForInflation && month == time.December && next.lastDeflatedYear != year {
			if rate, ok := inflation.Rate(year); ok {
				haircut := 1 - rate
				next.stakeFactor *= haircut
				next.contributionUnits *= haircut
				next.lastDeflatedYear = year
				value *= haircut
				log.Debugw(
					"applied yearly inflation adjustment",
					"symbol", series.Symbol,
					"year", year,
					"rate", rate,
					"valueAfter", value,
				)
			}
		}

		gains := value - next.invested
		if !isFinite(value) || !isFinite(next.invested) || !isFinite(gains) {
			log.Warnw(
				"dropping month with non-finite values",
				"symbol", series.Symbol,
				"month", m.date.Format(util.MonthLayout),
			)
			continue
		}

		state = next
		points = append(points, newMonthlyDataPoint(year, month, next.invested, value))
	}

	if len(points) == 0 {
		log.Warnw(
			"no usable months in range",
			"symbol", series.Symbol,
			"startYear", params.StartYear,
			"endYear", params.EndYear,
		)
		return domain.SymbolOutcome{
			Symbol:   series.Symbol,
			Excluded: domain.ExclusionReason_NoUsableMonths,
		}
	}

	return domain.SymbolOutcome{
		Symbol: series.Symbol,
		Result: &domain.StockResult{
			Symbol:      series.Symbol,
			MonthlyData: points,
		},
	}
}

// newMonthlyDataPoint rounds at emission only; accrual stays at full precision
func newMonthlyDataPoint(year int, month time.Month, invested, total float64) domain.MonthlyDataPoint {
	gains := total - invested
	returnPercentage := 0.0
	if invested != 0 {
		returnPercentage = gains / invested * 100
	}
	return domain.MonthlyDataPoint{
		Year:             year,
		Month:            int(month),
		Date:             fmt.Sprintf("%04d-%02d", year, int(month)),
		Invested:         util.RoundFloat(invested, 2),
		Total:            util.RoundFloat(total, 2),
		Gains:            util.RoundFloat(gains, 2),
		ReturnPercentage: util.RoundFloat(returnPercentage, 2),
	}
}
