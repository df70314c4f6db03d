package api

import (
	"github.com/gin-gonic/gin"
)

type listCommoditiesResponse struct {
	Commodities []string `json:"commodities"`
}

func (m ApiHandler) listCommodities(c *gin.Context) {
	c.JSON(200, listCommoditiesResponse{
		Commodities: m.HistoricalRecordRepository.ListCommodities(),
	})
}
