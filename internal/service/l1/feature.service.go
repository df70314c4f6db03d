package l1_service

import (
	"commodityforecast/internal/domain"
	"time"
)

// BuildFeatures derives a feature row for every date, in order
func BuildFeatures(dates []time.Time) []domain.FeatureRow {
	out := make([]domain.FeatureRow, len(dates))
	for i, d := range dates {
		out[i] = domain.NewFeatureRow(d)
	}
	return out
}

func BuildRecordFeatures(records []domain.HistoricalRecord) []domain.FeatureRow {
	out := make([]domain.FeatureRow, len(records))
	for i, r := range records {
		out[i] = domain.NewFeatureRow(r.Date)
	}
	return out
}
