package main

import (
	"bytes"
	"context"
	"growthprojection/internal/domain"
	"growthprojection/internal/repository"
	"growthprojection/internal/util"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testPrices = `date,symbol,price
2020-01-15,AAPL,100
2020-02-14,AAPL,110
2020-03-16,AAPL,121
2020-01-15,MSFT,50
2020-02-14,MSFT,
2020-03-16,MSFT,50
`

func writePrices(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(testPrices), 0o644))
	return path
}

func Test_runProject(t *testing.T) {
	t.Run("every symbol in the csv", func(t *testing.T) {
		out := &bytes.Buffer{}
		err := runProject(context.Background(), out, projectFlags{
			pricesFile: writePrices(t),
			startYear:  2020,
			endYear:    2021,
			initial:    1000,
			frequency:  "none",
		})
		require.NoError(t, err)
		require.Contains(t, out.String(), "AAPL")
		require.Contains(t, out.String(), "$1210.00")
		require.Contains(t, out.String(), "MSFT")
		require.Contains(t, out.String(), "$1000.00")
	})

	t.Run("requested symbols with one missing", func(t *testing.T) {
		out := &bytes.Buffer{}
		err := runProject(context.Background(), out, projectFlags{
			pricesFile: writePrices(t),
			symbols:    []string{"aapl", "nope"},
			startYear:  2020,
			endYear:    2021,
			initial:    1000,
		})
		require.NoError(t, err)
		require.NotContains(t, out.String(), "MSFT")
		require.Contains(t, out.String(), "skipped NOPE: no_data")
	})

	t.Run("invalid parameters", func(t *testing.T) {
		err := runProject(context.Background(), &bytes.Buffer{}, projectFlags{
			pricesFile: writePrices(t),
			startYear:  2020,
			endYear:    2020,
			initial:    1000,
		})
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		err := runProject(context.Background(), &bytes.Buffer{}, projectFlags{
			pricesFile: filepath.Join(t.TempDir(), "nope.csv"),
			startYear:  2020,
			endYear:    2021,
		})
		require.ErrorContains(t, err, "failed to open")
	})
}

func Test_storedSymbols(t *testing.T) {
	ctx := context.Background()
	cfg := util.Config{
		PriceDb: util.PriceDbConfig{
			Driver: repository.DriverSqlite,
			Dsn:    filepath.Join(t.TempDir(), "prices.db"),
		},
	}

	symbols, err := storedSymbols(ctx, cfg)
	require.NoError(t, err)
	require.Empty(t, symbols)

	db, err := repository.OpenPriceDb(cfg.PriceDb.Driver, cfg.PriceDb.Dsn)
	require.NoError(t, err)
	defer db.Close()
	err = repository.NewAdjustedPriceRepository(db, cfg.PriceDb.Driver).Add(ctx, []domain.AssetPrice{
		{Symbol: "SPY", Date: util.NewDate(2020, 1, 2), Price: 300},
		{Symbol: "AAPL", Date: util.NewDate(2020, 1, 2), Price: 100},
	})
	require.NoError(t, err)

	symbols, err = storedSymbols(ctx, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"AAPL", "SPY"}, symbols)
}
