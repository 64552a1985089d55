package calculator

import (
	"errors"
	"growthprojection/internal/domain"
	"growthprojection/internal/util"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// monthlySeries places one close on the 15th of consecutive months
func monthlySeries(symbol string, year, month int, prices ...float64) domain.PriceSeries {
	points := []domain.PricePoint{}
	for i, p := range prices {
		points = append(points, domain.PricePoint{
			Date:  util.NewDate(year, month+i, 15),
			Price: util.FloatPointer(p),
		})
	}
	return domain.PriceSeries{Symbol: symbol, Points: points}
}

// weekdaySeries has a close for every weekday in [start, end]
func weekdaySeries(symbol string, start, end time.Time, price func(d time.Time) float64) domain.PriceSeries {
	points := []domain.PricePoint{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		points = append(points, domain.PricePoint{
			Date:  d,
			Price: util.FloatPointer(price(d)),
		})
	}
	return domain.PriceSeries{Symbol: symbol, Points: points}
}

// tenPercentGrowth compounds to exactly +10% after 365 days from 2020-01-01
func tenPercentGrowth(d time.Time) float64 {
	days := d.Sub(util.NewDate(2020, 1, 1)).Hours() / 24
	return 100 * math.Pow(1.10, days/365)
}

func project(t *testing.T, params domain.InvestmentParameters, inflation domain.InflationTable, stocks ...domain.PriceSeries) *ProjectGrowthResult {
	t.Helper()
	out, err := ProjectGrowth(ProjectGrowthInput{
		Parameters: params,
		Stocks:     stocks,
		Inflation:  inflation,
	}, Options{Workers: 1})
	require.NoError(t, err)
	return out
}

func lastPoint(t *testing.T, result domain.StockResult) domain.MonthlyDataPoint {
	t.Helper()
	p, ok := result.Last()
	require.True(t, ok)
	return p
}

func TestProjectGrowth_linearExample(t *testing.T) {
	prices := []float64{}
	for i := 0; i < 12; i++ {
		prices = append(prices, 100+10*float64(i)/11)
	}
	out := project(t, domain.InvestmentParameters{
		InitialInvestment: 1000,
		StartYear:         2020,
		EndYear:           2021,
		AdditionFrequency: domain.AdditionFrequency_None,
	}, nil, monthlySeries("TEST", 2020, 1, prices...))

	require.Len(t, out.Results, 1)
	require.Len(t, out.Results[0].MonthlyData, 12)
	require.Equal(
		t,
		"",
		cmp.Diff(
			domain.MonthlyDataPoint{
				Year:             2020,
				Month:            12,
				Date:             "2020-12",
				Invested:         1000,
				Total:            1100,
				Gains:            100,
				ReturnPercentage: 10,
			},
			lastPoint(t, out.Results[0]),
		),
	)
	require.Equal(t, "2020-01", out.Results[0].MonthlyData[0].Date)
	require.Equal(t, 1000.0, out.Results[0].MonthlyData[0].Total)
}

func TestProjectGrowth_noContributionsRisingPrices(t *testing.T) {
	series := weekdaySeries("TEST", util.NewDate(2020, 1, 1), util.NewDate(2021, 12, 31), func(d time.Time) float64 {
		return 50 + float64(d.YearDay()+365*(d.Year()-2020))*0.1
	})
	out := project(t, domain.InvestmentParameters{
		InitialInvestment: 2500,
		StartYear:         2020,
		EndYear:           2022,
		AdditionAmount:    0,
		AdditionFrequency: domain.AdditionFrequency_Monthly,
	}, nil, series)

	points := out.Results[0].MonthlyData
	require.Len(t, points, 24)
	for i := 1; i < len(points); i++ {
		require.GreaterOrEqual(t, points[i].Total, points[i-1].Total, "month %s", points[i].Date)
	}
	require.Equal(t, 2500.0, points[len(points)-1].Invested)
}

func TestProjectGrowth_monthlyContributions(t *testing.T) {
	series := weekdaySeries("TEST", util.NewDate(2020, 1, 1), util.NewDate(2021, 12, 31), func(d time.Time) float64 {
		// oscillating, so invested must not depend on price behaviour
		return 100 + 20*math.Sin(float64(d.YearDay()))
	})
	out := project(t, domain.InvestmentParameters{
		InitialInvestment: 1000,
		StartYear:         2020,
		EndYear:           2022,
		AdditionAmount:    100,
		AdditionFrequency: domain.AdditionFrequency_Monthly,
	}, nil, series)

	points := out.Results[0].MonthlyData
	require.Len(t, points, 24)

	// no contribution in the very first month
	require.Equal(t, 1000.0, points[0].Invested)
	require.Equal(t, 1100.0, points[1].Invested)

	endOf2020 := points[11]
	endOf2021 := points[23]
	require.Equal(t, "2020-12", endOf2020.Date)
	require.InDelta(t, 1000+11*100, endOf2020.Invested, 0.01)
	require.InDelta(t, 12*100, endOf2021.Invested-endOf2020.Invested, 0.01)
}

func TestProjectGrowth_monthlyContributionReturn(t *testing.T) {
	params := domain.InvestmentParameters{
		InitialInvestment: 1000,
		StartYear:         2020,
		EndYear:           2021,
		AdditionAmount:    100,
		AdditionFrequency: domain.AdditionFrequency_Monthly,
	}

	t.Run("prior month present", func(t *testing.T) {
		out := project(t, params, nil, monthlySeries("TEST", 2020, 1, 100, 110, 121))
		points := out.Results[0].MonthlyData

		// feb: stake 1100, contribution bought at jan close earns 10%
		require.Equal(t, 1100.0, points[1].Invested)
		require.InDelta(t, 1210, points[1].Total, 0.001)
		// mar: stake 1210, feb contribution 121, mar contribution 110
		require.Equal(t, 1200.0, points[2].Invested)
		require.InDelta(t, 1441, points[2].Total, 0.001)
	})

	t.Run("prior month missing enters at face value", func(t *testing.T) {
		series := domain.PriceSeries{
			Symbol: "TEST",
			Points: []domain.PricePoint{
				{Date: util.NewDate(2020, 1, 31), Price: util.FloatPointer(100)},
				{Date: util.NewDate(2020, 3, 31), Price: util.FloatPointer(120)},
			},
		}
		out := project(t, params, nil, series)
		points := out.Results[0].MonthlyData

		require.Len(t, points, 2)
		require.Equal(t, "2020-03", points[1].Date)
		require.Equal(t, 1100.0, points[1].Invested)
		require.InDelta(t, 1300, points[1].Total, 0.001)
	})
}

func TestProjectGrowth_annualContributions(t *testing.T) {
	prices := []float64{}
	for i := 0; i < 36; i++ {
		prices = append(prices, 100+float64(i))
	}
	out := project(t, domain.InvestmentParameters{
		InitialInvestment: 1000,
		StartYear:         2020,
		EndYear:           2023,
		AdditionAmount:    500,
		AdditionFrequency: domain.AdditionFrequency_Annually,
	}, nil, monthlySeries("TEST", 2020, 1, prices...))

	points := out.Results[0].MonthlyData
	require.Len(t, points, 36)
	for _, p := range points {
		expected := 1000.0 + 500*float64(p.Year-2020)
		require.Equal(t, expected, p.Invested, "month %s", p.Date)
	}

	// the january contribution enters at face value
	dec2020 := points[11]
	jan2021 := points[12]
	require.InDelta(t, 1000*(112.0/100), jan2021.Total-500, 0.01)
	require.Less(t, dec2020.Total, jan2021.Total)
}

func TestProjectGrowth_tenPercentYear(t *testing.T) {
	series := weekdaySeries("TEST", util.NewDate(2020, 1, 1), util.NewDate(2020, 12, 31), tenPercentGrowth)
	params := domain.InvestmentParameters{
		InitialInvestment: 10000,
		StartYear:         2020,
		EndYear:           2021,
		AdditionFrequency: domain.AdditionFrequency_None,
	}

	nominal := project(t, params, nil, series)
	nominalEnd := lastPoint(t, nominal.Results[0])
	require.Equal(t, "2020-12", nominalEnd.Date)
	require.InDelta(t, 10, nominalEnd.ReturnPercentage, 1)

	params.AdjustForInflation = true
	real := project(t, params, domain.InflationTable{"2020": 0.03}, series)
	realEnd := lastPoint(t, real.Results[0])
	require.Less(t, realEnd.Total, nominalEnd.Total)
	require.InDelta(t, nominalEnd.Total*0.97, realEnd.Total, 0.01)
	require.Equal(t, nominalEnd.Invested, realEnd.Invested)
}

func TestProjectGrowth_dollarCostAveragingVsLumpSum(t *testing.T) {
	series := weekdaySeries("TEST", util.NewDate(2020, 1, 1), util.NewDate(2020, 12, 31), tenPercentGrowth)
	total := 12000.0

	lumpSum := project(t, domain.InvestmentParameters{
		InitialInvestment: total,
		StartYear:         2020,
		EndYear:           2021,
		AdditionFrequency: domain.AdditionFrequency_None,
	}, nil, series)

	dca := project(t, domain.InvestmentParameters{
		InitialInvestment: total / 12,
		StartYear:         2020,
		EndYear:           2021,
		AdditionAmount:    total / 12,
		AdditionFrequency: domain.AdditionFrequency_Monthly,
	}, nil, series)

	lumpEnd := lastPoint(t, lumpSum.Results[0])
	dcaEnd := lastPoint(t, dca.Results[0])
	require.InDelta(t, total, lumpEnd.Invested, 0.01)
	require.InDelta(t, total, dcaEnd.Invested, 0.01)
	require.LessOrEqual(t, dcaEnd.Gains, lumpEnd.Gains)
	require.Greater(t, dcaEnd.Gains, 0.0)
}

func TestProjectGrowth_inflation(t *testing.T) {
	flat := []float64{}
	for i := 0; i < 24; i++ {
		flat = append(flat, 100)
	}
	series := monthlySeries("FLAT", 2020, 1, flat...)
	params := domain.InvestmentParameters{
		InitialInvestment:  1000,
		StartYear:          2020,
		EndYear:            2022,
		AdditionFrequency:  domain.AdditionFrequency_None,
		AdjustForInflation: true,
	}

	t.Run("haircut once in december and carried forward", func(t *testing.T) {
		out := project(t, params, domain.InflationTable{"2020": 0.1}, series)
		points := out.Results[0].MonthlyData

		require.Equal(t, 1000.0, points[10].Total)
		require.Equal(t, 900.0, points[11].Total)
		require.Equal(t, 900.0, points[12].Total)
		// 2021 has no entry, so it's treated as 0%
		require.Equal(t, 900.0, points[23].Total)
		for _, p := range points {
			require.Equal(t, 1000.0, p.Invested)
		}
	})

	t.Run("disabled flag ignores table", func(t *testing.T) {
		p := params
		p.AdjustForInflation = false
		out := project(t, p, domain.InflationTable{"2020": 0.1}, series)
		require.Equal(t, 1000.0, lastPoint(t, out.Results[0]).Total)
	})

	t.Run("year without a december close is not haircut", func(t *testing.T) {
		throughOctober := monthlySeries("OCT", 2020, 1, flat[:10]...)
		out := project(t, params, domain.InflationTable{"2020": 0.1, "2021": 0.1}, throughOctober)
		points := out.Results[0].MonthlyData
		require.Len(t, points, 10)
		require.Equal(t, 1000.0, lastPoint(t, out.Results[0]).Total)
	})

	t.Run("later contributions are not deflated by earlier years", func(t *testing.T) {
		p := params
		p.AdditionAmount = 100
		p.AdditionFrequency = domain.AdditionFrequency_Annually
		out := project(t, p, domain.InflationTable{"2020": 0.1}, series)
		points := out.Results[0].MonthlyData
		require.Equal(t, 1000.0, points[12].Total)
		require.Equal(t, 1100.0, points[12].Invested)
	})
}

func TestProjectGrowth_missingAndEmptySeries(t *testing.T) {
	params := domain.InvestmentParameters{
		InitialInvestment: 1000,
		StartYear:         2020,
		EndYear:           2021,
		AdditionFrequency: domain.AdditionFrequency_None,
	}

	empty := domain.PriceSeries{Symbol: "EMPTY"}
	gaps := domain.PriceSeries{
		Symbol: "GAPS",
		Points: []domain.PricePoint{
			{Date: util.NewDate(2020, 1, 2)},
			{Date: util.NewDate(2020, 1, 3), Price: util.FloatPointer(math.NaN())},
			{Date: util.NewDate(2020, 1, 6), Price: util.FloatPointer(-5)},
		},
	}
	outOfRange := monthlySeries("OLD", 2015, 1, 10, 11)
	good := monthlySeries("GOOD", 2020, 1, 100, 105)

	t.Run("unusable symbols are excluded, not errors", func(t *testing.T) {
		out := project(t, params, nil, empty, gaps, good, outOfRange)
		require.Len(t, out.Results, 1)
		require.Equal(t, "GOOD", out.Results[0].Symbol)
		require.Equal(
			t,
			"",
			cmp.Diff(
				[]domain.SymbolOutcome{
					{Symbol: "EMPTY", Excluded: domain.ExclusionReason_NoData},
					{Symbol: "GAPS", Excluded: domain.ExclusionReason_NoData},
					{Symbol: "OLD", Excluded: domain.ExclusionReason_NoUsableMonths},
				},
				out.Exclusions,
			),
		)
	})

	t.Run("nothing usable", func(t *testing.T) {
		out, err := ProjectGrowth(ProjectGrowthInput{
			Parameters: params,
			Stocks:     []domain.PriceSeries{empty, gaps},
		}, Options{})
		require.Error(t, err)
		require.True(t, errors.Is(err, domain.ErrNoValidResults))
		require.Len(t, out.Exclusions, 2)
	})

	t.Run("no symbols", func(t *testing.T) {
		_, err := ProjectGrowth(ProjectGrowthInput{Parameters: params}, Options{})
		require.ErrorIs(t, err, domain.ErrNoValidResults)
	})
}

func TestProjectGrowth_edgeCases(t *testing.T) {
	t.Run("single day series", func(t *testing.T) {
		out := project(t, domain.InvestmentParameters{
			InitialInvestment: 1000,
			StartYear:         2020,
			EndYear:           2021,
			AdditionFrequency: domain.AdditionFrequency_Monthly,
			AdditionAmount:    50,
		}, nil, domain.PriceSeries{
			Symbol: "ONE",
			Points: []domain.PricePoint{{Date: util.NewDate(2020, 6, 15), Price: util.FloatPointer(42)}},
		})
		points := out.Results[0].MonthlyData
		require.Len(t, points, 1)
		require.Equal(t, "2020-06", points[0].Date)
		// june still gets its contribution at face value
		require.Equal(t, 1050.0, points[0].Invested)
		require.Equal(t, 1050.0, points[0].Total)
	})

	t.Run("zero initial investment", func(t *testing.T) {
		out := project(t, domain.InvestmentParameters{
			InitialInvestment: 0,
			StartYear:         2020,
			EndYear:           2021,
			AdditionFrequency: domain.AdditionFrequency_Monthly,
			AdditionAmount:    100,
		}, nil, monthlySeries("TEST", 2020, 1, 100, 100, 100))
		points := out.Results[0].MonthlyData
		require.Equal(t, domain.MonthlyDataPoint{Year: 2020, Month: 1, Date: "2020-01"}, points[0])
		require.Equal(t, 100.0, points[1].Invested)
		require.Equal(t, 200.0, points[2].Invested)
		require.Equal(t, 200.0, points[2].Total)
	})

	t.Run("anchor is the first usable price even before start year", func(t *testing.T) {
		out := project(t, domain.InvestmentParameters{
			InitialInvestment: 1000,
			StartYear:         2020,
			EndYear:           2021,
			AdditionFrequency: domain.AdditionFrequency_None,
		}, nil, monthlySeries("TEST", 2019, 12, 50, 100))
		points := out.Results[0].MonthlyData
		require.Len(t, points, 1)
		require.Equal(t, 2000.0, points[0].Total)
	})

	t.Run("month end close wins and input order is ignored", func(t *testing.T) {
		series := domain.PriceSeries{
			Symbol: "TEST",
			Points: []domain.PricePoint{
				{Date: util.NewDate(2020, 1, 31), Price: util.FloatPointer(120)},
				{Date: util.NewDate(2020, 1, 2), Price: util.FloatPointer(100)},
				{Date: util.NewDate(2020, 1, 15), Price: util.FloatPointer(90)},
			},
		}
		out := project(t, domain.InvestmentParameters{
			InitialInvestment: 1000,
			StartYear:         2020,
			EndYear:           2021,
		}, nil, series)
		require.Equal(t, 1200.0, out.Results[0].MonthlyData[0].Total)
	})

	t.Run("non-finite months are dropped", func(t *testing.T) {
		out := project(t, domain.InvestmentParameters{
			InitialInvestment: 1000,
			StartYear:         2020,
			EndYear:           2021,
			AdditionFrequency: domain.AdditionFrequency_Monthly,
			AdditionAmount:    math.NaN(),
		}, nil, monthlySeries("TEST", 2020, 1, 100, 101, 102))
		points := out.Results[0].MonthlyData
		require.Len(t, points, 1)
		require.Equal(t, "2020-01", points[0].Date)
	})

	t.Run("infinite stake excludes the symbol", func(t *testing.T) {
		out, err := ProjectGrowth(ProjectGrowthInput{
			Parameters: domain.InvestmentParameters{
				InitialInvestment: math.Inf(1),
				StartYear:         2020,
				EndYear:           2021,
			},
			Stocks: []domain.PriceSeries{monthlySeries("TEST", 2020, 1, 100)},
		}, Options{Workers: 1})
		require.ErrorIs(t, err, domain.ErrNoValidResults)
		require.Equal(t, domain.ExclusionReason_NoUsableMonths, out.Exclusions[0].Excluded)
	})
}

func TestProjectGrowth_idempotentAndOrdered(t *testing.T) {
	stocks := []domain.PriceSeries{}
	for _, symbol := range []string{"D", "A", "C", "B", "E"} {
		stocks = append(stocks, weekdaySeries(symbol, util.NewDate(2020, 1, 1), util.NewDate(2022, 12, 31), func(d time.Time) float64 {
			return 100 + 10*math.Sin(float64(d.YearDay())/30) + float64(symbol[0]-'A')
		}))
	}
	in := ProjectGrowthInput{
		Parameters: domain.InvestmentParameters{
			InitialInvestment:  5000,
			StartYear:          2020,
			EndYear:            2023,
			AdditionAmount:     250,
			AdditionFrequency:  domain.AdditionFrequency_Monthly,
			AdjustForInflation: true,
		},
		Stocks:    stocks,
		Inflation: domain.InflationTable{"2020": 0.012, "2021": 0.047, "2022": 0.08},
	}

	sequential, err := ProjectGrowth(in, Options{Workers: 1})
	require.NoError(t, err)
	again, err := ProjectGrowth(in, Options{Workers: 1})
	require.NoError(t, err)
	parallel, err := ProjectGrowth(in, Options{Workers: 4})
	require.NoError(t, err)

	require.Equal(t, "", cmp.Diff(sequential, again))
	require.Equal(t, "", cmp.Diff(sequential, parallel))

	symbols := []string{}
	for _, r := range parallel.Results {
		symbols = append(symbols, r.Symbol)
	}
	require.Equal(t, []string{"D", "A", "C", "B", "E"}, symbols)
}

func TestSeriesFromMap(t *testing.T) {
	out := SeriesFromMap(map[string]domain.PriceSeries{
		"MSFT": {},
		"AAPL": {Symbol: "AAPL"},
	})
	require.Len(t, out, 2)
	require.Equal(t, "AAPL", out[0].Symbol)
	require.Equal(t, "MSFT", out[1].Symbol)
}
