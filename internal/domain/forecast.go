package domain

import "time"

type ForecastPoint struct {
	Date           time.Time
	PredictedValue float64
	LowerBound     float64
	UpperBound     float64
}

type ForecastResult struct {
	Commodity      string
	TargetVariable TargetVariable
	Points         []ForecastPoint
}

type CommodityTotal struct {
	Commodity            string
	TotalPredictedVolume float64
}

// SkippedCommodity is reported when a commodity could not be
// forecast as part of a batch and was left out of the result
type SkippedCommodity struct {
	Commodity string
	Reason    string
}
