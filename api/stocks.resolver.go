package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) getStocks(c *gin.Context) {
	tickers, err := m.TickerRepository.List()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(http.StatusOK, tickers)
}

func (m ApiHandler) searchStocks(c *gin.Context) {
	tickers, err := m.TickerRepository.Search(c.Query("q"))
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(http.StatusOK, tickers)
}
