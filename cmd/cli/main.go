package main

import (
	"context"
	"fmt"
	"growthprojection/cmd"
	"growthprojection/internal/calculator"
	"growthprojection/internal/domain"
	"growthprojection/internal/repository"
	"growthprojection/internal/service"
	"growthprojection/internal/util"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "growth",
		Short:        "project the growth of stock investments over historical prices",
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCmd(),
		newProjectCmd(),
		newSymbolsCmd(),
		newIngestCmd(),
	)
	return root
}

func newServeCmd() *cobra.Command {
	var port int
	c := &cobra.Command{
		Use:   "serve",
		Short: "run the http api",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := util.LoadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			apiHandler, err := cmd.InitializeDependenciesFromConfig(*cfg)
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(apiHandler)

			apiHandler.Logger.Infow("starting api", "port", cfg.Server.Port)
			return apiHandler.StartApi(cfg.Server.Port)
		},
	}
	c.Flags().IntVar(&port, "port", 0, "port to listen on (overrides config)")
	return c
}

type projectFlags struct {
	pricesFile     string
	inflationFile  string
	country        string
	symbols        []string
	startYear      int
	endYear        int
	initial        float64
	additionAmount float64
	frequency      string
}

func newProjectCmd() *cobra.Command {
	flags := projectFlags{}
	c := &cobra.Command{
		Use:   "project",
		Short: "project growth offline from a csv of daily prices",
		Long:  "reads date,symbol,price rows from --prices and prints the final position of every symbol",
		RunE: func(c *cobra.Command, args []string) error {
			return runProject(c.Context(), c.OutOrStdout(), flags)
		},
	}
	c.Flags().StringVar(&flags.pricesFile, "prices", "", "csv file with date,symbol,price rows")
	c.Flags().StringVar(&flags.inflationFile, "inflation", "", "json inflation table; enables inflation adjustment")
	c.Flags().StringVar(&flags.country, "country", "US", "country to read from the inflation table")
	c.Flags().StringSliceVar(&flags.symbols, "symbols", nil, "symbols to project, defaults to every symbol in the csv")
	c.Flags().IntVar(&flags.startYear, "start", 0, "first year of the projection")
	c.Flags().IntVar(&flags.endYear, "end", 0, "year after the last projected year")
	c.Flags().Float64Var(&flags.initial, "initial", 0, "initial investment")
	c.Flags().Float64Var(&flags.additionAmount, "amount", 0, "recurring contribution amount")
	c.Flags().StringVar(&flags.frequency, "frequency", "none", "contribution frequency: none, monthly or annually")
	_ = c.MarkFlagRequired("prices")
	_ = c.MarkFlagRequired("start")
	_ = c.MarkFlagRequired("end")
	return c
}

func runProject(ctx context.Context, out io.Writer, flags projectFlags) error {
	frequency, err := domain.NewAdditionFrequency(flags.frequency)
	if err != nil {
		return err
	}
	params := domain.InvestmentParameters{
		InitialInvestment:  flags.initial,
		StartYear:          flags.startYear,
		EndYear:            flags.endYear,
		AdditionAmount:     flags.additionAmount,
		AdditionFrequency:  frequency,
		AdjustForInflation: flags.inflationFile != "",
	}
	if err := params.Validate(); err != nil {
		return err
	}

	f, err := os.Open(flags.pricesFile)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", flags.pricesFile, err)
	}
	defer f.Close()
	seriesBySymbol, err := repository.ReadPriceCsv(f)
	if err != nil {
		return err
	}

	stocks := calculator.SeriesFromMap(seriesBySymbol)
	if len(flags.symbols) > 0 {
		stocks = []domain.PriceSeries{}
		for _, symbol := range service.NormalizeSymbols(flags.symbols) {
			series, ok := seriesBySymbol[symbol]
			if !ok {
				series = domain.PriceSeries{Symbol: symbol}
			}
			stocks = append(stocks, series)
		}
	}

	var inflation domain.InflationTable
	if params.AdjustForInflation {
		inflation, err = repository.NewJsonInflationRepository(flags.inflationFile).Get(ctx, flags.country)
		if err != nil {
			return err
		}
	}

	result, err := calculator.ProjectGrowth(calculator.ProjectGrowthInput{
		Parameters: params,
		Stocks:     stocks,
		Inflation:  inflation,
	}, calculator.Options{Logger: zap.S()})
	if err != nil {
		return err
	}

	return printProjection(out, result)
}

func printProjection(out io.Writer, result *calculator.ProjectGrowthResult) error {
	table := tablewriter.NewWriter(out)
	table.Header("Symbol", "Months", "Invested", "Total", "Gains", "Return", "Max DD")
	for _, r := range result.Results {
		summary, err := calculator.Summarize(r)
		if err != nil {
			return fmt.Errorf("failed to summarize %s: %w", r.Symbol, err)
		}
		table.Append(
			r.Symbol,
			fmt.Sprintf("%d", summary.MonthsCovered),
			util.FormatMoney(summary.FinalInvested),
			util.FormatMoney(summary.FinalTotal),
			util.FormatMoney(summary.FinalGains),
			fmt.Sprintf("%.2f%%", summary.ReturnPercentage),
			fmt.Sprintf("%.2f%%", summary.MaxDrawdown*100),
		)
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, e := range result.Exclusions {
		fmt.Fprintf(out, "  skipped %s: %s\n", e.Symbol, e.Excluded)
	}
	return nil
}

func newSymbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols [query]",
		Short: "list or search the known stock symbols",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := util.LoadConfig()
			if err != nil {
				return err
			}
			tickerRepository, err := repository.NewTickerRepository(cfg.Data.StockListFile)
			if err != nil {
				return err
			}

			var tickers []domain.Ticker
			if len(args) == 1 {
				tickers, err = tickerRepository.Search(args[0])
			} else {
				tickers, err = tickerRepository.List()
			}
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(c.OutOrStdout())
			table.Header("Symbol", "Name", "Exchange")
			for _, t := range tickers {
				table.Append(t.Symbol, t.Name, t.Exchange)
			}
			return table.Render()
		},
	}
}

func newIngestCmd() *cobra.Command {
	var startYear, endYear int
	c := &cobra.Command{
		Use:   "ingest [SYMBOL...]",
		Short: "backfill the price store from the upstream source",
		Long:  "without symbols, every symbol already in the price store is refreshed",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := util.LoadConfig()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args, err = storedSymbols(c.Context(), *cfg)
				if err != nil {
					return err
				}
				if len(args) == 0 {
					return fmt.Errorf("price store is empty; pass the symbols to ingest")
				}
			}

			apiHandler, err := cmd.InitializeDependenciesFromConfig(*cfg)
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(apiHandler)

			if endYear == 0 {
				endYear = time.Now().UTC().Year()
			}
			ingested, err := apiHandler.PriceService.Ingest(
				c.Context(),
				args,
				util.StartOfYear(startYear),
				util.EndOfYear(endYear),
			)
			for _, symbol := range service.NormalizeSymbols(args) {
				if n, ok := ingested[symbol]; ok {
					fmt.Fprintf(c.OutOrStdout(), "%s\t%d prices\n", symbol, n)
				}
			}
			return err
		},
	}
	c.Flags().IntVar(&startYear, "start", domain.MinStartYear, "first year to ingest")
	c.Flags().IntVar(&endYear, "end", 0, "last year to ingest, defaults to the current year")
	return c
}

func storedSymbols(ctx context.Context, cfg util.Config) ([]string, error) {
	db, err := repository.OpenPriceDb(cfg.PriceDb.Driver, cfg.PriceDb.Dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	adjPriceRepository := repository.NewAdjustedPriceRepository(db, cfg.PriceDb.Driver)
	if err := adjPriceRepository.Migrate(ctx); err != nil {
		return nil, err
	}
	return adjPriceRepository.ListSymbols(ctx)
}
