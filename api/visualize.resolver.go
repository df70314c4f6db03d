package api

import (
	"commodityforecast/internal/domain"
	"commodityforecast/internal/util"
	"fmt"

	"github.com/gin-gonic/gin"
)

func forecastTableToResult(table forecastTable) (*domain.ForecastResult, error) {
	target, err := domain.ParseTargetVariable(table.TargetVariable)
	if err != nil {
		return nil, err
	}
	if len(table.Forecast) == 0 {
		return nil, fmt.Errorf("%w: forecast table is empty", domain.ErrValidation)
	}

	points := make([]domain.ForecastPoint, len(table.Forecast))
	for i, r := range table.Forecast {
		date, err := util.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("forecast row %d: %w", i, err)
		}
		points[i] = domain.ForecastPoint{
			Date:           date,
			PredictedValue: r.PredictedValue,
			LowerBound:     r.LowerPredictionInterval,
			UpperBound:     r.UpperPredictionInterval,
		}
	}

	return &domain.ForecastResult{
		Commodity:      table.Commodity,
		TargetVariable: target,
		Points:         points,
	}, nil
}

// visualize charts a table previously returned by /predict
func (m ApiHandler) visualize(c *gin.Context) {
	var requestBody forecastTable
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(fmt.Errorf("%w: failed to read request body: %w", domain.ErrParse, err), c)
		return
	}

	result, err := forecastTableToResult(requestBody)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	img, err := m.ChartRenderer.RenderForecast(*result)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to render forecast: %w", err), c)
		return
	}

	c.Data(200, "image/png", img)
}
