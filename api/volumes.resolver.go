package api

import (
	"commodityforecast/internal/domain"
	l3_service "commodityforecast/internal/service/l3"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

type volumesTradedRequest struct {
	ForecastPeriod int    `json:"forecastPeriod"`
	StartDate      string `json:"startDate"`
}

type commodityTotalResponse struct {
	Commodity            string  `json:"commodity"`
	TotalPredictedVolume float64 `json:"totalPredictedVolume"`
}

type skippedCommodityResponse struct {
	Commodity string `json:"commodity"`
	Reason    string `json:"reason"`
}

type volumesTradedTotalsResponse struct {
	StartDate string                     `json:"startDate"`
	Totals    []commodityTotalResponse   `json:"totals"`
	Skipped   []skippedCommodityResponse `json:"skipped"`
}

func (m ApiHandler) totalVolumes(c *gin.Context) (*l3_service.VolumeTotalsResult, error) {
	var requestBody volumesTradedRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		return nil, fmt.Errorf("%w: failed to read request body: %w", domain.ErrParse, err)
	}

	return m.VolumeService.TotalVolumes(c.Request.Context(), l3_service.VolumeTotalsInput{
		StartDate:          requestBody.StartDate,
		ForecastPeriodDays: requestBody.ForecastPeriod,
	})
}

// volumesTraded returns the bar chart of total predicted volume per
// commodity. commodities left out for lack of data are listed in a
// header since the body is the image
func (m ApiHandler) volumesTraded(c *gin.Context) {
	result, err := m.totalVolumes(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	img, err := m.ChartRenderer.RenderVolumeTotals(result.Totals)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to render volume totals: %w", err), c)
		return
	}

	if len(result.Skipped) > 0 {
		skipped := make([]string, len(result.Skipped))
		for i, s := range result.Skipped {
			skipped[i] = s.Commodity
		}
		c.Header("X-Skipped-Commodities", strings.Join(skipped, ","))
	}
	c.Data(200, "image/png", img)
}

func (m ApiHandler) volumesTradedTotals(c *gin.Context) {
	result, err := m.totalVolumes(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := volumesTradedTotalsResponse{
		StartDate: result.StartDate,
		Totals:    make([]commodityTotalResponse, len(result.Totals)),
		Skipped:   make([]skippedCommodityResponse, len(result.Skipped)),
	}
	for i, t := range result.Totals {
		out.Totals[i] = commodityTotalResponse{
			Commodity:            t.Commodity,
			TotalPredictedVolume: round4(t.TotalPredictedVolume),
		}
	}
	for i, s := range result.Skipped {
		out.Skipped[i] = skippedCommodityResponse(s)
	}

	c.JSON(200, out)
}
