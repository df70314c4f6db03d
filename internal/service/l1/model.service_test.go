package l1_service

import (
	"commodityforecast/internal/domain"
	"commodityforecast/internal/metrics"
	"commodityforecast/internal/util"
	"context"
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/montanaflynn/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func syntheticRecords(commodity string, n int) []domain.HistoricalRecord {
	out := []domain.HistoricalRecord{}
	start := util.NewDate(2022, 1, 1)
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		out = append(out, domain.HistoricalRecord{
			Date:      d,
			Commodity: commodity,
			Price:     100 + 10*math.Sin(float64(i)/15) + float64(d.Month()),
			Volume:    1000 + float64((i*7)%50),
		})
	}
	return out
}

func newTestModelService(t *testing.T, cfg ModelServiceConfig, m *metrics.Metrics) ModelService {
	s, err := NewModelService(cfg, m)
	require.NoError(t, err)
	return s
}

func Test_trainTestSplit(t *testing.T) {
	t.Run("sizes", func(t *testing.T) {
		train, test := trainTestSplit(10, 0.2, 42)
		require.Len(t, train, 8)
		require.Len(t, test, 2)

		train, test = trainTestSplit(2, 0.2, 42)
		require.Len(t, train, 1)
		require.Len(t, test, 1)

		train, test = trainTestSplit(11, 0.2, 42)
		require.Len(t, train, 8)
		require.Len(t, test, 3)
	})

	t.Run("partition of all rows", func(t *testing.T) {
		train, test := trainTestSplit(50, 0.2, 42)
		all := append(append([]int{}, train...), test...)
		sort.Ints(all)
		for i, v := range all {
			require.Equal(t, i, v)
		}
	})

	t.Run("same seed same split", func(t *testing.T) {
		train1, test1 := trainTestSplit(100, 0.2, 42)
		train2, test2 := trainTestSplit(100, 0.2, 42)
		require.Equal(t, "", cmp.Diff(train1, train2))
		require.Equal(t, "", cmp.Diff(test1, test2))
	})
}

func Test_modelServiceHandler_Train(t *testing.T) {
	ctx := context.Background()

	t.Run("split sizes", func(t *testing.T) {
		s := newTestModelService(t, DefaultModelServiceConfig(), nil)
		model, err := s.Train(ctx, TrainModelInput{
			Commodity:      "wheat",
			TargetVariable: domain.TargetVariable_Price,
			Records:        syntheticRecords("wheat", 100),
		})
		require.NoError(t, err)
		require.Equal(t, 80, model.TrainRows)
		require.Equal(t, 20, model.HeldOutRows)
		require.Equal(t, 100, model.NumTrees())
		require.Equal(t, "wheat", model.Commodity)
	})

	t.Run("too few rows", func(t *testing.T) {
		s := newTestModelService(t, DefaultModelServiceConfig(), nil)
		_, err := s.Train(ctx, TrainModelInput{
			Commodity:      "wheat",
			TargetVariable: domain.TargetVariable_Price,
			Records:        syntheticRecords("wheat", 1),
		})
		require.True(t, errors.Is(err, domain.ErrData))

		_, err = s.Train(ctx, TrainModelInput{
			Commodity:      "wheat",
			TargetVariable: domain.TargetVariable_Price,
		})
		require.True(t, errors.Is(err, domain.ErrData))
	})

	t.Run("two rows is enough", func(t *testing.T) {
		s := newTestModelService(t, DefaultModelServiceConfig(), nil)
		model, err := s.Train(ctx, TrainModelInput{
			Commodity:      "wheat",
			TargetVariable: domain.TargetVariable_Price,
			Records:        syntheticRecords("wheat", 2),
		})
		require.NoError(t, err)
		require.Equal(t, 1, model.TrainRows)
	})

	t.Run("duplicate rows count separately", func(t *testing.T) {
		s := newTestModelService(t, DefaultModelServiceConfig(), nil)
		row := syntheticRecords("wheat", 1)[0]
		model, err := s.Train(ctx, TrainModelInput{
			Commodity:      "wheat",
			TargetVariable: domain.TargetVariable_Price,
			Records:        []domain.HistoricalRecord{row, row},
		})
		require.NoError(t, err)
		require.Equal(t, 1, model.TrainRows)
		require.Equal(t, 1, model.HeldOutRows)

		prediction, err := s.Predict(model, []domain.FeatureRow{domain.NewFeatureRow(row.Date)})
		require.NoError(t, err)
		require.InDelta(t, row.Price, prediction.Values[0], 1e-9)
	})

	t.Run("rows missing the target are dropped", func(t *testing.T) {
		records := syntheticRecords("wheat", 3)
		records[0].Volume = math.NaN()
		records[1].Volume = math.NaN()

		s := newTestModelService(t, DefaultModelServiceConfig(), nil)
		_, err := s.Train(ctx, TrainModelInput{
			Commodity:      "wheat",
			TargetVariable: domain.TargetVariable_Volume,
			Records:        records,
		})
		require.True(t, errors.Is(err, domain.ErrData))

		_, err = s.Train(ctx, TrainModelInput{
			Commodity:      "wheat",
			TargetVariable: domain.TargetVariable_Price,
			Records:        records,
		})
		require.NoError(t, err)
	})

	t.Run("deterministic", func(t *testing.T) {
		in := TrainModelInput{
			Commodity:      "wheat",
			TargetVariable: domain.TargetVariable_Price,
			Records:        syntheticRecords("wheat", 200),
		}
		features := BuildFeatures(util.DateRange(util.NewDate(2023, 1, 1), 5))

		s1 := newTestModelService(t, DefaultModelServiceConfig(), nil)
		m1, err := s1.Train(ctx, in)
		require.NoError(t, err)
		p1, err := s1.Predict(m1, features)
		require.NoError(t, err)

		s2 := newTestModelService(t, DefaultModelServiceConfig(), nil)
		m2, err := s2.Train(ctx, in)
		require.NoError(t, err)
		p2, err := s2.Predict(m2, features)
		require.NoError(t, err)

		require.Equal(t, "", cmp.Diff(p1, p2))
	})

	t.Run("cache keyed by data version", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		cfg := DefaultModelServiceConfig()
		cfg.CacheSize = 4
		s := newTestModelService(t, cfg, m)

		in := TrainModelInput{
			Commodity:      "wheat",
			TargetVariable: domain.TargetVariable_Price,
			Records:        syntheticRecords("wheat", 30),
			DataVersion:    "v1",
		}
		first, err := s.Train(ctx, in)
		require.NoError(t, err)
		second, err := s.Train(ctx, in)
		require.NoError(t, err)
		require.Same(t, first, second)

		in.DataVersion = "v2"
		third, err := s.Train(ctx, in)
		require.NoError(t, err)
		require.NotSame(t, first, third)

		in.TargetVariable = domain.TargetVariable_Volume
		fourth, err := s.Train(ctx, in)
		require.NoError(t, err)
		require.NotSame(t, third, fourth)

		require.Equal(t, 1.0, testutil.ToFloat64(m.ModelCacheRequests.WithLabelValues("hit")))
		require.Equal(t, 3.0, testutil.ToFloat64(m.ModelCacheRequests.WithLabelValues("miss")))
	})

	t.Run("no cache by default", func(t *testing.T) {
		s := newTestModelService(t, DefaultModelServiceConfig(), nil)
		in := TrainModelInput{
			Commodity:      "wheat",
			TargetVariable: domain.TargetVariable_Price,
			Records:        syntheticRecords("wheat", 30),
			DataVersion:    "v1",
		}
		first, err := s.Train(ctx, in)
		require.NoError(t, err)
		second, err := s.Train(ctx, in)
		require.NoError(t, err)
		require.NotSame(t, first, second)
	})
}

func Test_modelServiceHandler_Predict(t *testing.T) {
	ctx := context.Background()
	s := newTestModelService(t, DefaultModelServiceConfig(), nil)
	model, err := s.Train(ctx, TrainModelInput{
		Commodity:      "wheat",
		TargetVariable: domain.TargetVariable_Price,
		Records:        syntheticRecords("wheat", 120),
	})
	require.NoError(t, err)

	t.Run("value is mean of trees", func(t *testing.T) {
		features := BuildFeatures(util.DateRange(util.NewDate(2022, 3, 1), 3))
		p, err := s.Predict(model, features)
		require.NoError(t, err)
		require.Len(t, p.Values, 3)
		require.Len(t, p.PerTree, 3)
		for i := range features {
			require.Len(t, p.PerTree[i], 100)
			mean, err := stats.Mean(p.PerTree[i])
			require.NoError(t, err)
			require.Equal(t, mean, p.Values[i])
		}
	})

	t.Run("repeatable", func(t *testing.T) {
		features := BuildFeatures(util.DateRange(util.NewDate(2024, 1, 1), 2))
		p1, err := s.Predict(model, features)
		require.NoError(t, err)
		p2, err := s.Predict(model, features)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(p1, p2))
	})

	t.Run("untrained", func(t *testing.T) {
		_, err := s.Predict(nil, nil)
		require.Error(t, err)
		_, err = s.Predict(&TrainedModel{}, nil)
		require.Error(t, err)
	})
}

func TestNewModelService(t *testing.T) {
	_, err := NewModelService(ModelServiceConfig{NumTrees: 0, TestFraction: 0.2}, nil)
	require.Error(t, err)
	_, err = NewModelService(ModelServiceConfig{NumTrees: 10, TestFraction: 1}, nil)
	require.Error(t, err)
}
