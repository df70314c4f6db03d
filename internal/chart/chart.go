// Package chart draws forecast results as PNG images
package chart

import (
	"bytes"
	"commodityforecast/internal/domain"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

var (
	predictedColor = color.NRGBA{R: 0, G: 128, B: 0, A: 255}
	// matplotlib style blue at alpha 0.2
	intervalColor = color.NRGBA{R: 0, G: 0, B: 255, A: 51}
	barColor      = color.NRGBA{R: 31, G: 119, B: 180, A: 255}
)

const intervalLabel = "95% Confidence Interval"

type Renderer interface {
	RenderForecast(result domain.ForecastResult) ([]byte, error)
	RenderVolumeTotals(totals []domain.CommodityTotal) ([]byte, error)
}

type rendererHandler struct {
	ForecastWidth  vg.Length
	ForecastHeight vg.Length
	TotalsWidth    vg.Length
	TotalsHeight   vg.Length
}

func NewRenderer() Renderer {
	return rendererHandler{
		ForecastWidth:  8 * vg.Inch,
		ForecastHeight: 6 * vg.Inch,
		TotalsWidth:    10 * vg.Inch,
		TotalsHeight:   6 * vg.Inch,
	}
}

func ForecastTitle(result domain.ForecastResult) string {
	return fmt.Sprintf("Forecasted %ss with Prediction Intervals for %s", result.TargetVariable.Title(), result.Commodity)
}

// RenderForecast draws the predicted values as a line over a shaded
// band between the lower and upper bounds
func (h rendererHandler) RenderForecast(result domain.ForecastResult) ([]byte, error) {
	if len(result.Points) == 0 {
		return nil, fmt.Errorf("%w: forecast for %s has no points to plot", domain.ErrValidation, result.Commodity)
	}

	p := plot.New()
	p.Title.Text = ForecastTitle(result)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = result.TargetVariable.Title()
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid())

	predicted := make(plotter.XYs, len(result.Points))
	band := make(plotter.XYs, 0, 2*len(result.Points))
	for i, pt := range result.Points {
		x := float64(pt.Date.Unix())
		if !isFinite(pt.PredictedValue) || !isFinite(pt.LowerBound) || !isFinite(pt.UpperBound) {
			return nil, fmt.Errorf("%w: non-finite value on %s", domain.ErrValidation, pt.Date.Format("2006-01-02"))
		}
		predicted[i] = plotter.XY{X: x, Y: pt.PredictedValue}
		band = append(band, plotter.XY{X: x, Y: pt.UpperBound})
	}
	for i := len(result.Points) - 1; i >= 0; i-- {
		pt := result.Points[i]
		band = append(band, plotter.XY{X: float64(pt.Date.Unix()), Y: pt.LowerBound})
	}

	interval, err := plotter.NewPolygon(band)
	if err != nil {
		return nil, fmt.Errorf("failed to build interval band: %w", err)
	}
	interval.Color = intervalColor
	interval.LineStyle.Width = 0

	line, err := plotter.NewLine(predicted)
	if err != nil {
		return nil, fmt.Errorf("failed to build prediction line: %w", err)
	}
	line.LineStyle.Color = predictedColor
	line.LineStyle.Width = vg.Points(1.5)

	p.Add(interval, line)
	p.Legend.Add("Predicted "+result.TargetVariable.Title(), line)
	p.Legend.Add(intervalLabel, interval)
	p.Legend.Top = true

	return encodePng(p, h.ForecastWidth, h.ForecastHeight)
}

// RenderVolumeTotals draws one bar per commodity, in the order given
func (h rendererHandler) RenderVolumeTotals(totals []domain.CommodityTotal) ([]byte, error) {
	if len(totals) == 0 {
		return nil, fmt.Errorf("%w: no commodity volumes to plot", domain.ErrValidation)
	}

	values := make(plotter.Values, len(totals))
	names := make([]string, len(totals))
	for i, t := range totals {
		if !isFinite(t.TotalPredictedVolume) {
			return nil, fmt.Errorf("%w: non-finite volume for %s", domain.ErrValidation, t.Commodity)
		}
		values[i] = t.TotalPredictedVolume
		names[i] = t.Commodity
	}

	p := plot.New()
	p.Title.Text = "Total Predicted Volume Traded by Commodity"
	p.X.Label.Text = "Commodity"
	p.Y.Label.Text = "Total Predicted Volume"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	return encodePng(p, h.TotalsWidth, h.TotalsHeight)
}

func encodePng(p *plot.Plot, width, height vg.Length) ([]byte, error) {
	w, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create png writer: %w", err)
	}
	buf := &bytes.Buffer{}
	if _, err := w.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
