package calculator

import (
	"growthprojection/internal/domain"
	"growthprojection/internal/util"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_usableObservations(t *testing.T) {
	series := domain.PriceSeries{
		Symbol: "TEST",
		Points: []domain.PricePoint{
			{Date: util.NewDate(2020, 1, 6), Price: util.FloatPointer(12)},
			{Date: util.NewDate(2020, 1, 2), Price: util.FloatPointer(10)},
			{Date: util.NewDate(2020, 1, 3)},
			{Date: util.NewDate(2020, 1, 7), Price: util.FloatPointer(math.Inf(1))},
			{Date: util.NewDate(2020, 1, 8), Price: util.FloatPointer(0)},
			{Date: util.NewDate(2020, 1, 9), Price: util.FloatPointer(-1)},
			{Date: util.NewDate(2020, 1, 10), Price: util.FloatPointer(math.NaN())},
		},
	}

	obs := usableObservations(series)
	require.Equal(
		t,
		"",
		cmp.Diff(
			[]observation{
				{date: util.NewDate(2020, 1, 2), price: 10},
				{date: util.NewDate(2020, 1, 6), price: 12},
			},
			obs,
			cmp.AllowUnexported(observation{}),
		),
	)

	anchor, ok := newReturnAnchor(obs)
	require.True(t, ok)
	require.InDelta(t, 0.2, anchor.cumulativeReturn(12), 1e-12)

	_, ok = newReturnAnchor(nil)
	require.False(t, ok)
}

func Test_resampleMonthly(t *testing.T) {
	obs := []observation{
		{date: util.NewDate(2019, 12, 31), price: 9},
		{date: util.NewDate(2020, 1, 2), price: 10},
		{date: util.NewDate(2020, 1, 31), price: 11},
		{date: util.NewDate(2020, 3, 2), price: 13},
	}

	months := resampleMonthly(obs)
	require.Equal(
		t,
		"",
		cmp.Diff(
			[]monthlyPrice{
				{key: monthKey{2019, time.December}, date: util.NewDate(2019, 12, 31), price: 9},
				{key: monthKey{2020, time.January}, date: util.NewDate(2020, 1, 31), price: 11},
				{key: monthKey{2020, time.March}, date: util.NewDate(2020, 3, 2), price: 13},
			},
			months,
			cmp.AllowUnexported(monthlyPrice{}, monthKey{}),
		),
	)

	require.Empty(t, resampleMonthly(nil))
}
