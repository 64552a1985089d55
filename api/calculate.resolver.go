package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"growthprojection/internal/domain"
	"growthprojection/internal/logger"
	"growthprojection/internal/service"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

type CalculateRequest struct {
	InitialInvestment  *float64 `json:"initialInvestment"`
	StartYear          *int     `json:"startYear"`
	EndYear            *int     `json:"endYear"`
	Stocks             []string `json:"stocks"`
	AdditionAmount     *float64 `json:"additionAmount"`
	AdditionFrequency  string   `json:"additionFrequency"`
	AdjustForInflation bool     `json:"adjustForInflation"`
}

type CalculateResponse struct {
	Data     []domain.StockResult `json:"data"`
	Warnings *domain.Warnings     `json:"warnings,omitempty"`
}

func (r CalculateRequest) toInput() (*service.CalculateInput, error) {
	missing := []string{}
	if r.InitialInvestment == nil {
		missing = append(missing, "initialInvestment")
	}
	if r.StartYear == nil {
		missing = append(missing, "startYear")
	}
	if r.EndYear == nil {
		missing = append(missing, "endYear")
	}
	if r.Stocks == nil {
		missing = append(missing, "stocks")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrInvalidParameters, strings.Join(missing, ", "))
	}

	frequency, err := domain.NewAdditionFrequency(r.AdditionFrequency)
	if err != nil {
		return nil, err
	}
	additionAmount := 0.0
	if r.AdditionAmount != nil {
		additionAmount = *r.AdditionAmount
	}

	return &service.CalculateInput{
		Parameters: domain.InvestmentParameters{
			InitialInvestment:  *r.InitialInvestment,
			StartYear:          *r.StartYear,
			EndYear:            *r.EndYear,
			AdditionAmount:     additionAmount,
			AdditionFrequency:  frequency,
			AdjustForInflation: r.AdjustForInflation,
		},
		Symbols: r.Stocks,
	}, nil
}

// responseCacheKey hashes the request with symbols normalized and sorted,
// so equivalent requests share a cached response
func responseCacheKey(in service.CalculateInput) (string, error) {
	symbols := service.NormalizeSymbols(in.Symbols)
	sort.Strings(symbols)

	b, err := json.Marshal(struct {
		Parameters domain.InvestmentParameters
		Symbols    []string
	}{in.Parameters, symbols})
	if err != nil {
		return "", err
	}
	hasher := sha256.New()
	hasher.Write(b)
	return "calculate:" + hex.EncodeToString(hasher.Sum(nil)), nil
}

func (m ApiHandler) calculate(c *gin.Context) {
	lg := logger.FromContext(c)
	profile, endProfile := domain.NewProfile()
	defer func() {
		endProfile()
		lg.Debugw("calculate profile", "totalMs", profile.TotalMs, "spans", profile.Spans)
	}()
	ctx := domain.ContextWithProfile(logger.WithLogger(c.Request.Context(), lg), profile)

	var requestBody CalculateRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("%w: %s", domain.ErrInvalidParameters, err.Error()), c, http.StatusBadRequest)
		return
	}

	input, err := requestBody.toInput()
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	}

	cacheKey, err := responseCacheKey(*input)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	if cached, ok := m.CacheRepository.Get(ctx, cacheKey); ok {
		c.Header("X-Cache", "HIT")
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	result, err := m.GrowthService.Calculate(ctx, *input)
	if err != nil {
		noStockData := domain.NoStockDataError{}
		switch {
		case errors.As(err, &noStockData):
			returnErrorJsonDetails(err, c, http.StatusBadRequest, gin.H{
				"invalidSymbols": noStockData.InvalidSymbols,
				"message":        fmt.Sprintf("No valid data found for any symbols. Please check: %s", strings.Join(noStockData.InvalidSymbols, ", ")),
			})
		case errors.Is(err, domain.ErrInvalidParameters):
			returnErrorJsonCode(err, c, http.StatusBadRequest)
		case errors.Is(err, domain.ErrNoValidResults):
			returnErrorJsonCode(err, c, http.StatusUnprocessableEntity)
		default:
			returnErrorJson(err, c)
		}
		return
	}

	responseJson, err := json.Marshal(CalculateResponse{
		Data:     result.Results,
		Warnings: result.Warnings,
	})
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to encode response: %w", err), c)
		return
	}

	if err := m.CacheRepository.Set(ctx, cacheKey, string(responseJson), m.ResponseTtl); err != nil {
		lg.Warnw("failed to cache response", "error", err)
	}

	c.Header("X-Cache", "MISS")
	c.Data(http.StatusOK, "application/json; charset=utf-8", responseJson)
}
