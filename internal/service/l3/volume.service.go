package l3_service

import (
	"commodityforecast/internal/domain"
	"commodityforecast/internal/logger"
	"commodityforecast/internal/metrics"
	"commodityforecast/internal/repository"
	l2_service "commodityforecast/internal/service/l2"
	"commodityforecast/internal/util"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
)

//go:generate mockgen -source=volume.service.go -destination=mocks/mock_volume.service.go

type VolumeService interface {
	TotalVolumes(ctx context.Context, in VolumeTotalsInput) (*VolumeTotalsResult, error)
}

type VolumeTotalsInput struct {
	// optional. only validated and echoed back, every commodity is
	// forecast from its own latest observation
	StartDate          string
	ForecastPeriodDays int
}

type VolumeTotalsResult struct {
	StartDate string
	Totals    []domain.CommodityTotal
	// commodities that had too little volume history to train on
	Skipped []domain.SkippedCommodity
}

type volumeServiceHandler struct {
	HistoricalRecordRepository repository.HistoricalRecordRepository
	ForecastService            l2_service.ForecastService
	Metrics                    *metrics.Metrics
	MaxPeriodDays              int
}

func NewVolumeService(
	historicalRecordRepository repository.HistoricalRecordRepository,
	forecastService l2_service.ForecastService,
	m *metrics.Metrics,
	maxPeriodDays int,
) VolumeService {
	return volumeServiceHandler{
		HistoricalRecordRepository: historicalRecordRepository,
		ForecastService:            forecastService,
		Metrics:                    m,
		MaxPeriodDays:              maxPeriodDays,
	}
}

// TotalVolumes forecasts daily volume for every commodity over the next
// ForecastPeriodDays days, starting at that commodity's latest date, and
// sums the predictions
func (h volumeServiceHandler) TotalVolumes(ctx context.Context, in VolumeTotalsInput) (*VolumeTotalsResult, error) {
	if err := l2_service.ValidatePeriod(in.ForecastPeriodDays, h.MaxPeriodDays); err != nil {
		return nil, err
	}
	startDate := ""
	if in.StartDate != "" {
		start, err := util.ParseDate(in.StartDate)
		if err != nil {
			return nil, err
		}
		startDate = start.Format(time.DateOnly)
	}

	log := logger.FromContext(ctx)
	out := &VolumeTotalsResult{
		StartDate: startDate,
		Totals:    []domain.CommodityTotal{},
		Skipped:   []domain.SkippedCommodity{},
	}

	for _, commodity := range h.HistoricalRecordRepository.ListCommodities() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lastDate, err := h.HistoricalRecordRepository.LatestDate(commodity)
		if err != nil {
			return nil, fmt.Errorf("failed to get latest date for %s: %w", commodity, err)
		}

		forecast, err := h.ForecastService.ForecastFrom(ctx, l2_service.ForecastFromInput{
			Commodity:          commodity,
			TargetVariable:     domain.TargetVariable_Volume,
			Start:              lastDate,
			ForecastPeriodDays: in.ForecastPeriodDays,
			WithoutIntervals:   true,
		})
		if errors.Is(err, domain.ErrData) {
			log.Warnw("skipping commodity", "commodity", commodity, "error", err.Error())
			h.Metrics.SkippedCommodity()
			out.Skipped = append(out.Skipped, domain.SkippedCommodity{
				Commodity: commodity,
				Reason:    err.Error(),
			})
			continue
		} else if err != nil {
			return nil, fmt.Errorf("failed to forecast volume for %s: %w", commodity, err)
		}

		daily := make([]float64, len(forecast.Points))
		for i, p := range forecast.Points {
			daily[i] = p.PredictedValue
		}
		total, err := stats.Sum(daily)
		if err != nil {
			return nil, fmt.Errorf("failed to sum volume for %s: %w", commodity, err)
		}

		out.Totals = append(out.Totals, domain.CommodityTotal{
			Commodity:            commodity,
			TotalPredictedVolume: total,
		})
	}

	log.Infow(
		"volume totals complete",
		"days", in.ForecastPeriodDays,
		"commodities", len(out.Totals),
		"skipped", len(out.Skipped),
	)

	return out, nil
}
