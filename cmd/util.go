package cmd

import (
	"context"
	"fmt"
	"growthprojection/api"
	"growthprojection/internal/logger"
	"growthprojection/internal/repository"
	"growthprojection/internal/service"
	"growthprojection/internal/util"
	"growthprojection/pkg/bls"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

func CloseDependencies(handler *api.ApiHandler) {
	for _, closeFn := range handler.Closers {
		if err := closeFn(); err != nil {
			handler.Logger.Errorw("failed to close dependency", "error", err)
		}
	}
	_ = handler.Logger.Sync()
}

func InitializeDependencies() (*api.ApiHandler, error) {
	cfg, err := util.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return InitializeDependenciesFromConfig(*cfg)
}

func InitializeDependenciesFromConfig(cfg util.Config) (*api.ApiHandler, error) {
	lg := logger.NewAtLevel(cfg.Log.Level)
	zap.ReplaceGlobals(lg.Desugar())
	closers := []func() error{}

	dbConn, err := repository.OpenPriceDb(cfg.PriceDb.Driver, cfg.PriceDb.Dsn)
	if err != nil {
		return nil, err
	}
	closers = append(closers, dbConn.Close)

	adjPriceRepository := repository.NewAdjustedPriceRepository(dbConn, cfg.PriceDb.Driver)
	if err := adjPriceRepository.Migrate(context.Background()); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to migrate price db: %w", err)
	}

	var cacheRepository repository.CacheRepository
	if cfg.Cache.RedisAddr != "" {
		cacheRepository = repository.NewRedisCacheRepository(cfg.Cache.RedisAddr)
		lg.Infow("using redis cache", "addr", cfg.Cache.RedisAddr)
	} else {
		cacheRepository = repository.NewMemoryCacheRepository()
	}

	priceSourceRepository := repository.NewYahooPriceSourceRepository(
		cfg.Upstream.RatePerSecond,
		cfg.Upstream.Burst,
		cfg.Upstream.MaxRetries,
	)

	inflationRepository, err := newInflationRepository(cfg, cacheRepository)
	if err != nil {
		dbConn.Close()
		return nil, err
	}

	tickerRepository, err := repository.NewTickerRepository(cfg.Data.StockListFile)
	if err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to load stock list: %w", err)
	}

	priceService := service.NewPriceService(
		adjPriceRepository,
		priceSourceRepository,
		cacheRepository,
		cfg.PriceTtl(),
	)
	growthService := service.NewGrowthService(
		priceService,
		inflationRepository,
		cfg.Data.InflationCountry,
		cfg.Engine.Workers,
	)

	apiHandler := &api.ApiHandler{
		GrowthService:       growthService,
		PriceService:        priceService,
		InflationRepository: inflationRepository,
		TickerRepository:    tickerRepository,
		CacheRepository:     cacheRepository,
		InflationCountry:    cfg.Data.InflationCountry,
		ResponseTtl:         cfg.ResponseTtl(),
		CorsOrigins:         cfg.Server.CorsOrigins,
		Logger:              lg,
		Closers:             closers,
	}

	return apiHandler, nil
}

func newInflationRepository(cfg util.Config, cacheRepository repository.CacheRepository) (repository.InflationRepository, error) {
	switch strings.ToLower(cfg.Data.InflationSource) {
	case "bls":
		return repository.NewBlsInflationRepository(bls.NewClient(cfg.Upstream.BlsApiKey), cacheRepository), nil
	case "file":
		if strings.EqualFold(filepath.Ext(cfg.Data.InflationFile), ".csv") {
			return repository.NewCsvInflationRepository(cfg.Data.InflationFile), nil
		}
		return repository.NewJsonInflationRepository(cfg.Data.InflationFile), nil
	}
	return nil, fmt.Errorf("unknown inflation source '%s'", cfg.Data.InflationSource)
}
