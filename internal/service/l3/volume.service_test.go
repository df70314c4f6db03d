package l3_service

import (
	"commodityforecast/internal/domain"
	"commodityforecast/internal/metrics"
	"commodityforecast/internal/repository"
	mock_repository "commodityforecast/internal/repository/mocks"
	l1_service "commodityforecast/internal/service/l1"
	l2_service "commodityforecast/internal/service/l2"
	mock_l2_service "commodityforecast/internal/service/l2/mocks"
	"commodityforecast/internal/util"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/montanaflynn/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testRecords() []domain.HistoricalRecord {
	out := []domain.HistoricalRecord{}
	start := util.NewDate(2023, 1, 1)
	for i := 0; i < 120; i++ {
		d := start.AddDate(0, 0, i)
		out = append(out,
			domain.HistoricalRecord{Date: d, Commodity: "wheat", Price: 210, Volume: 1000 + float64((i*17)%90)},
			domain.HistoricalRecord{Date: d, Commodity: "maize", Price: 95, Volume: 400 + float64(i%7)*10},
		)
	}
	out = append(out, domain.HistoricalRecord{Date: util.NewDate(2023, 2, 1), Commodity: "rice", Price: 40, Volume: 80})
	return out
}

func forecastPoints(start string, values ...float64) []domain.ForecastPoint {
	d, _ := util.ParseDate(start)
	out := []domain.ForecastPoint{}
	for i, v := range values {
		out = append(out, domain.ForecastPoint{
			Date:           d.AddDate(0, 0, i),
			PredictedValue: v,
			LowerBound:     v,
			UpperBound:     v,
		})
	}
	return out
}

func Test_volumeServiceHandler_TotalVolumes(t *testing.T) {
	ctx := context.Background()

	t.Run("sums daily predictions per commodity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockHistoricalRecordRepository(ctrl)
		forecastService := mock_l2_service.NewMockForecastService(ctrl)
		handler := volumeServiceHandler{
			HistoricalRecordRepository: repo,
			ForecastService:            forecastService,
		}

		repo.EXPECT().ListCommodities().Return([]string{"wheat", "maize"})
		repo.EXPECT().LatestDate("wheat").Return(util.NewDate(2024, 1, 10), nil)
		repo.EXPECT().LatestDate("maize").Return(util.NewDate(2024, 2, 1), nil)

		forecastService.EXPECT().
			ForecastFrom(gomock.Any(), l2_service.ForecastFromInput{
				Commodity:          "wheat",
				TargetVariable:     domain.TargetVariable_Volume,
				Start:              util.NewDate(2024, 1, 10),
				ForecastPeriodDays: 3,
				WithoutIntervals:   true,
			}).
			Return(&domain.ForecastResult{Points: forecastPoints("2024-01-10", 10, 20, 30.5)}, nil)
		forecastService.EXPECT().
			ForecastFrom(gomock.Any(), l2_service.ForecastFromInput{
				Commodity:          "maize",
				TargetVariable:     domain.TargetVariable_Volume,
				Start:              util.NewDate(2024, 2, 1),
				ForecastPeriodDays: 3,
				WithoutIntervals:   true,
			}).
			Return(&domain.ForecastResult{Points: forecastPoints("2024-02-01", 1, 1, 1)}, nil)

		out, err := handler.TotalVolumes(ctx, VolumeTotalsInput{
			StartDate:          "2024-01-01",
			ForecastPeriodDays: 3,
		})
		require.NoError(t, err)
		require.Equal(
			t,
			"",
			cmp.Diff(&VolumeTotalsResult{
				StartDate: "2024-01-01",
				Totals: []domain.CommodityTotal{
					{Commodity: "wheat", TotalPredictedVolume: 60.5},
					{Commodity: "maize", TotalPredictedVolume: 3},
				},
				Skipped: []domain.SkippedCommodity{},
			}, out),
		)
	})

	t.Run("data errors are skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockHistoricalRecordRepository(ctrl)
		forecastService := mock_l2_service.NewMockForecastService(ctrl)
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		handler := volumeServiceHandler{
			HistoricalRecordRepository: repo,
			ForecastService:            forecastService,
			Metrics:                    m,
		}

		repo.EXPECT().ListCommodities().Return([]string{"rice", "wheat"})
		repo.EXPECT().LatestDate(gomock.Any()).Return(util.NewDate(2024, 1, 1), nil).Times(2)

		dataErr := fmt.Errorf("failed to train volume model for rice: %w", domain.ErrData)
		forecastService.EXPECT().
			ForecastFrom(gomock.Any(), gomock.Any()).
			Return(nil, dataErr)
		forecastService.EXPECT().
			ForecastFrom(gomock.Any(), gomock.Any()).
			Return(&domain.ForecastResult{Points: forecastPoints("2024-01-01", 5)}, nil)

		out, err := handler.TotalVolumes(ctx, VolumeTotalsInput{ForecastPeriodDays: 1})
		require.NoError(t, err)
		require.Equal(t, "", out.StartDate)
		require.Equal(t, []domain.CommodityTotal{{Commodity: "wheat", TotalPredictedVolume: 5}}, out.Totals)
		require.Equal(t, []domain.SkippedCommodity{{Commodity: "rice", Reason: dataErr.Error()}}, out.Skipped)
		require.Equal(t, 1.0, testutil.ToFloat64(m.SkippedCommodities))
	})

	t.Run("other errors abort", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockHistoricalRecordRepository(ctrl)
		forecastService := mock_l2_service.NewMockForecastService(ctrl)
		handler := volumeServiceHandler{
			HistoricalRecordRepository: repo,
			ForecastService:            forecastService,
		}

		repo.EXPECT().ListCommodities().Return([]string{"wheat", "maize"})
		repo.EXPECT().LatestDate("wheat").Return(util.NewDate(2024, 1, 1), nil)
		forecastService.EXPECT().
			ForecastFrom(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("boom"))

		_, err := handler.TotalVolumes(ctx, VolumeTotalsInput{ForecastPeriodDays: 2})
		require.Error(t, err)
		require.False(t, errors.Is(err, domain.ErrData))
	})

	t.Run("validates before forecasting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := volumeServiceHandler{
			HistoricalRecordRepository: mock_repository.NewMockHistoricalRecordRepository(ctrl),
			ForecastService:            mock_l2_service.NewMockForecastService(ctrl),
		}

		_, err := handler.TotalVolumes(ctx, VolumeTotalsInput{ForecastPeriodDays: 0})
		require.True(t, errors.Is(err, domain.ErrValidation))

		_, err = handler.TotalVolumes(ctx, VolumeTotalsInput{StartDate: "01-01-2024", ForecastPeriodDays: 3})
		require.True(t, errors.Is(err, domain.ErrParse))
	})

	t.Run("period above limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := volumeServiceHandler{
			HistoricalRecordRepository: mock_repository.NewMockHistoricalRecordRepository(ctrl),
			ForecastService:            mock_l2_service.NewMockForecastService(ctrl),
			MaxPeriodDays:              365,
		}

		_, err := handler.TotalVolumes(ctx, VolumeTotalsInput{ForecastPeriodDays: 100_000_000})
		require.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockHistoricalRecordRepository(ctrl)
		handler := volumeServiceHandler{
			HistoricalRecordRepository: repo,
			ForecastService:            mock_l2_service.NewMockForecastService(ctrl),
		}
		repo.EXPECT().ListCommodities().Return([]string{"wheat"})

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := handler.TotalVolumes(cancelled, VolumeTotalsInput{ForecastPeriodDays: 3})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func Test_volumeServiceHandler_TotalVolumes_endToEnd(t *testing.T) {
	ctx := context.Background()
	repo, err := repository.NewHistoricalRecordRepository(testRecords())
	require.NoError(t, err)
	modelService, err := l1_service.NewModelService(l1_service.DefaultModelServiceConfig(), nil)
	require.NoError(t, err)
	forecastService := l2_service.NewForecastService(repo, modelService, l2_service.DefaultForecastServiceConfig())
	s := NewVolumeService(repo, forecastService, nil, 3650)

	in := VolumeTotalsInput{StartDate: "2024-01-01", ForecastPeriodDays: 14}
	first, err := s.TotalVolumes(ctx, in)
	require.NoError(t, err)
	second, err := s.TotalVolumes(ctx, in)
	require.NoError(t, err)
	require.Equal(t, "", cmp.Diff(first, second))

	require.Len(t, first.Totals, 2)
	require.Equal(t, "wheat", first.Totals[0].Commodity)
	require.Equal(t, "maize", first.Totals[1].Commodity)
	require.Len(t, first.Skipped, 1)
	require.Equal(t, "rice", first.Skipped[0].Commodity)

	// each total is the sum of that commodity's own forecast, starting
	// at its latest date
	for _, total := range first.Totals {
		lastDate, err := repo.LatestDate(total.Commodity)
		require.NoError(t, err)
		forecast, err := forecastService.ForecastFrom(ctx, l2_service.ForecastFromInput{
			Commodity:          total.Commodity,
			TargetVariable:     domain.TargetVariable_Volume,
			Start:              lastDate,
			ForecastPeriodDays: 14,
		})
		require.NoError(t, err)
		require.Len(t, forecast.Points, 14)
		require.Equal(t, lastDate, forecast.Points[0].Date)

		daily := []float64{}
		for _, p := range forecast.Points {
			daily = append(daily, p.PredictedValue)
		}
		sum, err := stats.Sum(daily)
		require.NoError(t, err)
		require.Equal(t, sum, total.TotalPredictedVolume)
	}
}
