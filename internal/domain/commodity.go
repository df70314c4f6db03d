package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type HistoricalRecord struct {
	Date      time.Time
	Commodity string
	Price     float64
	Volume    float64
}

// FeatureRow is the calendar breakdown of a date that the
// forecast models train and predict on
type FeatureRow struct {
	Day   int
	Month int
	Year  int
}

func NewFeatureRow(t time.Time) FeatureRow {
	return FeatureRow{
		Day:   t.Day(),
		Month: int(t.Month()),
		Year:  t.Year(),
	}
}

func (f FeatureRow) Vector() []float64 {
	return []float64{float64(f.Day), float64(f.Month), float64(f.Year)}
}

type TargetVariable string

const (
	TargetVariable_Price  TargetVariable = "price"
	TargetVariable_Volume TargetVariable = "volume"
)

func ParseTargetVariable(s string) (TargetVariable, error) {
	switch TargetVariable(strings.ToLower(strings.TrimSpace(s))) {
	case TargetVariable_Price:
		return TargetVariable_Price, nil
	case TargetVariable_Volume:
		return TargetVariable_Volume, nil
	}
	return "", fmt.Errorf("%w: unknown target variable %q, expected one of [price volume]", ErrValidation, s)
}

// Value selects the column this target refers to. A missing
// cell is NaN
func (t TargetVariable) Value(r HistoricalRecord) float64 {
	switch t {
	case TargetVariable_Price:
		return r.Price
	case TargetVariable_Volume:
		return r.Volume
	}
	return math.NaN()
}

// Title is used for chart labels, e.g. "Price"
func (t TargetVariable) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}
