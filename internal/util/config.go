package util

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Cache    CacheConfig    `yaml:"cache"`
	PriceDb  PriceDbConfig  `yaml:"priceDb"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Data     DataConfig     `yaml:"data"`
	Engine   EngineConfig   `yaml:"engine"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port        int      `yaml:"port"`
	CorsOrigins []string `yaml:"corsOrigins"`
}

type CacheConfig struct {
	// empty uses the in-process cache
	RedisAddr          string `yaml:"redisAddr"`
	PriceTtlSeconds    int    `yaml:"priceTtlSeconds"`
	ResponseTtlSeconds int    `yaml:"responseTtlSeconds"`
}

type PriceDbConfig struct {
	Driver string `yaml:"driver"` // sqlite | postgres
	Dsn    string `yaml:"dsn"`
}

type UpstreamConfig struct {
	RatePerSecond float64 `yaml:"ratePerSecond"`
	Burst         int     `yaml:"burst"`
	MaxRetries    int     `yaml:"maxRetries"`
	BlsApiKey     string  `yaml:"blsApiKey"`
}

type DataConfig struct {
	InflationFile    string `yaml:"inflationFile"`
	InflationSource  string `yaml:"inflationSource"` // file | bls
	InflationCountry string `yaml:"inflationCountry"`
	StockListFile    string `yaml:"stockListFile"`
}

type EngineConfig struct {
	Workers int `yaml:"workers"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func (c Config) PriceTtl() time.Duration {
	return time.Duration(c.Cache.PriceTtlSeconds) * time.Second
}

func (c Config) ResponseTtl() time.Duration {
	return time.Duration(c.Cache.ResponseTtlSeconds) * time.Second
}

func configFile() string {
	switch strings.ToLower(os.Getenv("GROWTH_ENV")) {
	case "dev":
		return "config-dev.yaml"
	case "test":
		return "config-test.yaml"
	}
	if f := os.Getenv("GROWTH_CONFIG"); f != "" {
		return f
	}
	return "config.yaml"
}

// LoadConfig reads the yaml config for the current GROWTH_ENV, applies
// .env and environment overrides, then fills defaults. a missing config
// file is not an error
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	f, err := os.ReadFile(configFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not open %s: %w", configFile(), err)
	}
	if err == nil {
		if err := yaml.Unmarshal(f, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configFile(), err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	setDefaults(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("PRICE_DB_DRIVER"); v != "" {
		cfg.PriceDb.Driver = v
	}
	if v := os.Getenv("PRICE_DB_DSN"); v != "" {
		cfg.PriceDb.Dsn = v
	}
	if v := os.Getenv("BLS_API_KEY"); v != "" {
		cfg.Upstream.BlsApiKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 3009
	}
	if cfg.Cache.PriceTtlSeconds <= 0 {
		cfg.Cache.PriceTtlSeconds = 3600
	}
	if cfg.Cache.ResponseTtlSeconds <= 0 {
		cfg.Cache.ResponseTtlSeconds = 300
	}
	if cfg.PriceDb.Driver == "" {
		cfg.PriceDb.Driver = "sqlite"
	}
	if cfg.PriceDb.Dsn == "" {
		cfg.PriceDb.Dsn = "prices.db"
	}
	if cfg.Upstream.RatePerSecond <= 0 {
		cfg.Upstream.RatePerSecond = 2
	}
	if cfg.Upstream.Burst <= 0 {
		cfg.Upstream.Burst = 5
	}
	if cfg.Upstream.MaxRetries <= 0 {
		cfg.Upstream.MaxRetries = 3
	}
	if cfg.Data.InflationFile == "" {
		cfg.Data.InflationFile = "data/inflation_data.json"
	}
	if cfg.Data.InflationSource == "" {
		cfg.Data.InflationSource = "file"
	}
	if cfg.Data.InflationCountry == "" {
		cfg.Data.InflationCountry = "US"
	}
	if cfg.Data.StockListFile == "" {
		cfg.Data.StockListFile = "data/stock_list.json"
	}
	if cfg.Engine.Workers <= 0 {
		cfg.Engine.Workers = runtime.NumCPU()
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
