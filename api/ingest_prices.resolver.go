package api

import (
	"fmt"
	"growthprojection/internal/domain"
	"growthprojection/internal/logger"
	"growthprojection/internal/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type IngestPricesRequest struct {
	Symbols   []string `json:"symbols"`
	StartYear int      `json:"startYear"`
	// defaults to the current year
	EndYear int `json:"endYear"`
}

type IngestPricesResponse struct {
	Ingested map[string]int `json:"ingested"`
	Error    string         `json:"error,omitempty"`
}

// ingestPrices backfills the price store from the upstream source
func (m ApiHandler) ingestPrices(c *gin.Context) {
	var requestBody IngestPricesRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	}
	if len(requestBody.Symbols) == 0 {
		returnErrorJsonCode(fmt.Errorf("%w: at least one symbol is required", domain.ErrInvalidParameters), c, http.StatusBadRequest)
		return
	}
	if requestBody.StartYear < domain.MinStartYear {
		requestBody.StartYear = domain.MinStartYear
	}
	if requestBody.EndYear == 0 {
		requestBody.EndYear = time.Now().UTC().Year()
	}

	ctx := logger.WithLogger(c.Request.Context(), logger.FromContext(c))
	ingested, err := m.PriceService.Ingest(
		ctx,
		requestBody.Symbols,
		util.StartOfYear(requestBody.StartYear),
		util.EndOfYear(requestBody.EndYear),
	)

	if err != nil && len(ingested) == 0 {
		returnErrorJson(err, c)
		return
	}

	out := IngestPricesResponse{Ingested: ingested}
	if err != nil {
		// partial ingests still report what was stored
		logger.FromContext(c).Warnw("price ingest incomplete", "error", err)
		out.Error = err.Error()
		c.JSON(http.StatusMultiStatus, out)
		return
	}

	c.JSON(http.StatusOK, out)
}
