package api

import (
	"errors"
	"growthprojection/internal/domain"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) getInflation(c *gin.Context) {
	country := c.DefaultQuery("country", m.InflationCountry)

	table, err := m.InflationRepository.Get(c.Request.Context(), country)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			returnErrorJsonCode(err, c, http.StatusNotFound)
			return
		}
		returnErrorJson(err, c)
		return
	}

	c.JSON(http.StatusOK, table)
}
