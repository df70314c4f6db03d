package l2_service

import (
	"commodityforecast/internal/domain"
	"commodityforecast/internal/logger"
	"commodityforecast/internal/repository"
	l1_service "commodityforecast/internal/service/l1"
	"commodityforecast/internal/util"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
)

//go:generate mockgen -source=forecast.service.go -destination=mocks/mock_forecast.service.go

// z-score for a two-sided 95% normal band
const intervalZ = 1.96

type ForecastService interface {
	Forecast(ctx context.Context, in ForecastInput) (*domain.ForecastResult, error)
	ForecastFrom(ctx context.Context, in ForecastFromInput) (*domain.ForecastResult, error)
}

type ForecastInput struct {
	Commodity          string
	TargetVariable     string
	StartDate          string
	ForecastPeriodDays int
	WithoutIntervals   bool
}

type ForecastFromInput struct {
	Commodity          string
	TargetVariable     domain.TargetVariable
	Start              time.Time
	ForecastPeriodDays int
	// bounds are set to the point estimate
	WithoutIntervals bool
}

type ForecastServiceConfig struct {
	// longest forecast a caller may ask for, 0 means no limit
	MaxPeriodDays int
}

func DefaultForecastServiceConfig() ForecastServiceConfig {
	return ForecastServiceConfig{
		MaxPeriodDays: 3650,
	}
}

type forecastServiceHandler struct {
	HistoricalRecordRepository repository.HistoricalRecordRepository
	ModelService               l1_service.ModelService
	Config                     ForecastServiceConfig
}

func NewForecastService(
	historicalRecordRepository repository.HistoricalRecordRepository,
	modelService l1_service.ModelService,
	cfg ForecastServiceConfig,
) ForecastService {
	return forecastServiceHandler{
		HistoricalRecordRepository: historicalRecordRepository,
		ModelService:               modelService,
		Config:                     cfg,
	}
}

// ValidatePeriod rejects non-positive periods and, when maxDays is
// positive, periods longer than maxDays
func ValidatePeriod(days int, maxDays int) error {
	if days <= 0 {
		return fmt.Errorf("%w: forecast period must be a positive number of days, got %d", domain.ErrValidation, days)
	}
	if maxDays > 0 && days > maxDays {
		return fmt.Errorf("%w: forecast period of %d days exceeds the limit of %d", domain.ErrValidation, days, maxDays)
	}
	return nil
}

// Forecast validates raw request inputs and forecasts the commodity's
// target variable for ForecastPeriodDays days from StartDate
func (h forecastServiceHandler) Forecast(ctx context.Context, in ForecastInput) (*domain.ForecastResult, error) {
	if err := ValidatePeriod(in.ForecastPeriodDays, h.Config.MaxPeriodDays); err != nil {
		return nil, err
	}
	target, err := domain.ParseTargetVariable(in.TargetVariable)
	if err != nil {
		return nil, err
	}
	start, err := util.ParseDate(in.StartDate)
	if err != nil {
		return nil, err
	}

	return h.ForecastFrom(ctx, ForecastFromInput{
		Commodity:          in.Commodity,
		TargetVariable:     target,
		Start:              start,
		ForecastPeriodDays: in.ForecastPeriodDays,
		WithoutIntervals:   in.WithoutIntervals,
	})
}

func (h forecastServiceHandler) ForecastFrom(ctx context.Context, in ForecastFromInput) (*domain.ForecastResult, error) {
	if err := ValidatePeriod(in.ForecastPeriodDays, h.Config.MaxPeriodDays); err != nil {
		return nil, err
	}
	target, err := domain.ParseTargetVariable(string(in.TargetVariable))
	if err != nil {
		return nil, err
	}
	in.TargetVariable = target

	// this is already a copy, sorting it leaves the store alone
	records, err := h.HistoricalRecordRepository.ListByCommodity(in.Commodity)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no historical records for commodity %q", domain.ErrNotFound, in.Commodity)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	profile := domain.ProfileFromContext(ctx)
	_, endSpan := profile.StartNewSpan(fmt.Sprintf("train %s %s", in.Commodity, in.TargetVariable))
	model, err := h.ModelService.Train(ctx, l1_service.TrainModelInput{
		Commodity:      in.Commodity,
		TargetVariable: in.TargetVariable,
		Records:        records,
		DataVersion:    h.HistoricalRecordRepository.Version(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to train %s model for %s: %w", in.TargetVariable, in.Commodity, err)
	}
	endSpan()

	_, endSpan = profile.StartNewSpan(fmt.Sprintf("predict %s %s", in.Commodity, in.TargetVariable))
	defer endSpan()
	dates := util.DateRange(in.Start, in.ForecastPeriodDays)
	prediction, err := h.ModelService.Predict(model, l1_service.BuildFeatures(dates))
	if err != nil {
		return nil, fmt.Errorf("failed to predict %s for %s: %w", in.TargetVariable, in.Commodity, err)
	}
	if len(prediction.Values) != len(dates) {
		return nil, fmt.Errorf("received %d predictions for %d dates", len(prediction.Values), len(dates))
	}

	points := make([]domain.ForecastPoint, len(dates))
	for i, d := range dates {
		value := prediction.Values[i]
		margin := 0.0
		if !in.WithoutIntervals {
			margin, err = intervalMargin(prediction.PerTree[i])
			if err != nil {
				return nil, fmt.Errorf("failed to compute interval on %s: %w", d.Format(time.DateOnly), err)
			}
		}
		points[i] = domain.ForecastPoint{
			Date:           d,
			PredictedValue: value,
			LowerBound:     value - margin,
			UpperBound:     value + margin,
		}
	}

	logger.FromContext(ctx).Infow(
		"forecast complete",
		"commodity", in.Commodity,
		"target", in.TargetVariable,
		"historicalRows", len(records),
		"start", in.Start.Format(time.DateOnly),
		"days", in.ForecastPeriodDays,
	)

	return &domain.ForecastResult{
		Commodity:      in.Commodity,
		TargetVariable: in.TargetVariable,
		Points:         points,
	}, nil
}

// intervalMargin is 1.96 times the population std dev of the tree
// predictions. it approximates a 95% band, nothing is calibrated
func intervalMargin(perTree []float64) (float64, error) {
	if len(perTree) > 0 && allEqual(perTree) {
		return 0, nil
	}
	stdev, err := stats.StandardDeviationPopulation(perTree)
	if err != nil {
		return 0, err
	}
	return intervalZ * stdev, nil
}

// exact check, summing identical floats can still leave a tiny
// nonzero variance
func allEqual(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
