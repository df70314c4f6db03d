package api

import (
	"commodityforecast/internal/domain"
	l2_service "commodityforecast/internal/service/l2"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

type predictRequest struct {
	Commodity      string `json:"commodity"`
	ForecastPeriod int    `json:"forecastPeriod"`
	StartDate      string `json:"startDate"`
	TargetVariable string `json:"targetVariable"`
}

type forecastRow struct {
	Date                    string  `json:"date"`
	PredictedValue          float64 `json:"predictedValue"`
	LowerPredictionInterval float64 `json:"lowerPredictionInterval"`
	UpperPredictionInterval float64 `json:"upperPredictionInterval"`
}

// forecastTable is returned by /predict and accepted back by /visualize
type forecastTable struct {
	Commodity      string        `json:"commodity"`
	TargetVariable string        `json:"targetVariable"`
	Forecast       []forecastRow `json:"forecast"`
}

type forecastCsvRow struct {
	Date                    string  `csv:"Date"`
	PredictedValue          float64 `csv:"Predicted_Value"`
	LowerPredictionInterval float64 `csv:"Lower_Prediction_Interval"`
	UpperPredictionInterval float64 `csv:"Upper_Prediction_Interval"`
}

func round4(f float64) float64 {
	return decimal.NewFromFloat(f).Round(4).InexactFloat64()
}

func newForecastTable(result domain.ForecastResult) forecastTable {
	rows := make([]forecastRow, len(result.Points))
	for i, p := range result.Points {
		rows[i] = forecastRow{
			Date:                    p.Date.Format(time.DateOnly),
			PredictedValue:          round4(p.PredictedValue),
			LowerPredictionInterval: round4(p.LowerBound),
			UpperPredictionInterval: round4(p.UpperBound),
		}
	}
	return forecastTable{
		Commodity:      result.Commodity,
		TargetVariable: string(result.TargetVariable),
		Forecast:       rows,
	}
}

func forecastTableToCsv(table forecastTable) ([]byte, error) {
	rows := make([]forecastCsvRow, len(table.Forecast))
	for i, r := range table.Forecast {
		rows[i] = forecastCsvRow(r)
	}
	return gocsv.MarshalBytes(&rows)
}

func (m ApiHandler) predict(c *gin.Context) {
	var requestBody predictRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(fmt.Errorf("%w: failed to read request body: %w", domain.ErrParse, err), c)
		return
	}

	result, err := m.ForecastService.Forecast(c.Request.Context(), l2_service.ForecastInput{
		Commodity:          requestBody.Commodity,
		TargetVariable:     requestBody.TargetVariable,
		StartDate:          requestBody.StartDate,
		ForecastPeriodDays: requestBody.ForecastPeriod,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	table := newForecastTable(*result)

	if strings.EqualFold(c.Query("format"), "csv") {
		out, err := forecastTableToCsv(table)
		if err != nil {
			returnErrorJson(fmt.Errorf("failed to write csv: %w", err), c)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%s_forecast.csv", result.Commodity, result.TargetVariable))
		c.Data(200, "text/csv", out)
		return
	}

	c.JSON(200, table)
}

// ForecastResultToCsv renders the forecast table in the same csv
// format as /predict?format=csv
func ForecastResultToCsv(result domain.ForecastResult) ([]byte, error) {
	return forecastTableToCsv(newForecastTable(result))
}
