package chart

import (
	"bytes"
	"commodityforecast/internal/domain"
	"commodityforecast/internal/util"
	"errors"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func forecastFixture(n int) domain.ForecastResult {
	points := []domain.ForecastPoint{}
	for i, d := range util.DateRange(util.NewDate(2024, 1, 1), n) {
		v := 200 + float64(i)
		points = append(points, domain.ForecastPoint{
			Date:           d,
			PredictedValue: v,
			LowerBound:     v - 5,
			UpperBound:     v + 5,
		})
	}
	return domain.ForecastResult{
		Commodity:      "wheat",
		TargetVariable: domain.TargetVariable_Price,
		Points:         points,
	}
}

func TestRenderForecast(t *testing.T) {
	r := NewRenderer()

	t.Run("png at 8x6in", func(t *testing.T) {
		out, err := r.RenderForecast(forecastFixture(7))
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(out, pngMagic))

		cfg, err := png.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		require.InDelta(t, 4.0/3.0, float64(cfg.Width)/float64(cfg.Height), 0.01)
	})

	t.Run("single point", func(t *testing.T) {
		out, err := r.RenderForecast(forecastFixture(1))
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(out, pngMagic))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := r.RenderForecast(domain.ForecastResult{Commodity: "wheat"})
		require.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("non-finite", func(t *testing.T) {
		f := forecastFixture(2)
		f.Points[1].UpperBound = math.Inf(1)
		_, err := r.RenderForecast(f)
		require.True(t, errors.Is(err, domain.ErrValidation))
	})
}

func TestForecastTitle(t *testing.T) {
	require.Equal(t, "Forecasted Prices with Prediction Intervals for wheat", ForecastTitle(forecastFixture(1)))
}

func TestRenderVolumeTotals(t *testing.T) {
	r := NewRenderer()

	t.Run("png at 10x6in", func(t *testing.T) {
		out, err := r.RenderVolumeTotals([]domain.CommodityTotal{
			{Commodity: "wheat", TotalPredictedVolume: 12000},
			{Commodity: "maize", TotalPredictedVolume: 8000.5},
			{Commodity: "soybean", TotalPredictedVolume: 0},
		})
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(out, pngMagic))

		cfg, err := png.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		require.InDelta(t, 10.0/6.0, float64(cfg.Width)/float64(cfg.Height), 0.01)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := r.RenderVolumeTotals(nil)
		require.True(t, errors.Is(err, domain.ErrValidation))
	})
}
