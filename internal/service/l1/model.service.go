package l1_service

import (
	"commodityforecast/internal/domain"
	"commodityforecast/internal/forest"
	"commodityforecast/internal/logger"
	"commodityforecast/internal/metrics"
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/montanaflynn/stats"
)

//go:generate mockgen -source=model.service.go -destination=mocks/mock_model.service.go

type ModelService interface {
	Train(ctx context.Context, in TrainModelInput) (*TrainedModel, error)
	Predict(model *TrainedModel, features []domain.FeatureRow) (*Prediction, error)
}

type TrainModelInput struct {
	Commodity      string
	TargetVariable domain.TargetVariable
	Records        []domain.HistoricalRecord
	// identifies the dataset snapshot Records came from. only
	// used to key the model cache, empty skips the cache
	DataVersion string
}

// TrainedModel is a forest bound to one commodity and target. it is
// never modified after Train returns
type TrainedModel struct {
	Commodity      string
	TargetVariable domain.TargetVariable
	TrainRows      int
	HeldOutRows    int
	forest         *forest.Forest
}

func (m TrainedModel) NumTrees() int {
	return m.forest.NumTrees()
}

type Prediction struct {
	// mean over the ensemble, one per feature row
	Values []float64
	// PerTree[i][t] is tree t's prediction for feature row i
	PerTree [][]float64
}

type ModelServiceConfig struct {
	NumTrees     int
	Seed         uint64
	TestFraction float64
	MaxDepth     int
	// 0 disables caching, every Train call fits a new forest
	CacheSize int
}

func DefaultModelServiceConfig() ModelServiceConfig {
	return ModelServiceConfig{
		NumTrees:     100,
		Seed:         42,
		TestFraction: 0.2,
	}
}

type modelCacheKey struct {
	Commodity      string
	TargetVariable domain.TargetVariable
	DataVersion    string
}

type modelServiceHandler struct {
	Config  ModelServiceConfig
	Cache   *lru.Cache[modelCacheKey, *TrainedModel]
	Metrics *metrics.Metrics
}

func NewModelService(cfg ModelServiceConfig, m *metrics.Metrics) (ModelService, error) {
	if cfg.NumTrees <= 0 {
		return nil, fmt.Errorf("number of trees must be positive, got %d", cfg.NumTrees)
	}
	if cfg.TestFraction < 0 || cfg.TestFraction >= 1 {
		return nil, fmt.Errorf("test fraction must be in [0, 1), got %v", cfg.TestFraction)
	}

	h := &modelServiceHandler{
		Config:  cfg,
		Metrics: m,
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[modelCacheKey, *TrainedModel](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create model cache: %w", err)
		}
		h.Cache = cache
	}

	return h, nil
}

// trainTestSplit shuffles row indices with a fixed seed and holds out
// ceil(testFraction * n) of them
func trainTestSplit(n int, testFraction float64, seed uint64) (train []int, test []int) {
	nTest := int(math.Ceil(testFraction * float64(n)))
	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(n)
	return perm[nTest:], perm[:nTest]
}

func (h modelServiceHandler) Train(ctx context.Context, in TrainModelInput) (*TrainedModel, error) {
	log := logger.FromContext(ctx)

	key := modelCacheKey{
		Commodity:      in.Commodity,
		TargetVariable: in.TargetVariable,
		DataVersion:    in.DataVersion,
	}
	useCache := h.Cache != nil && in.DataVersion != ""
	if useCache {
		if model, ok := h.Cache.Get(key); ok {
			h.Metrics.CacheHit()
			return model, nil
		}
		h.Metrics.CacheMiss()
	}

	usable := make([]domain.HistoricalRecord, 0, len(in.Records))
	for _, r := range in.Records {
		if v := in.TargetVariable.Value(r); !math.IsNaN(v) && !math.IsInf(v, 0) {
			usable = append(usable, r)
		}
	}
	if dropped := len(in.Records) - len(usable); dropped > 0 {
		log.Infow("dropped rows without target value", "commodity", in.Commodity, "target", in.TargetVariable, "dropped", dropped)
	}
	// rows are counted, not distinct dates, so repeated observations
	// still make a trainable set
	if len(usable) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 %s rows to train a model for %s, got %d", domain.ErrData, in.TargetVariable, in.Commodity, len(usable))
	}

	train, test := trainTestSplit(len(usable), h.Config.TestFraction, h.Config.Seed)
	if len(train) == 0 {
		return nil, fmt.Errorf("%w: no training rows left for %s after holding out %d", domain.ErrData, in.Commodity, len(test))
	}

	features := BuildRecordFeatures(usable)
	x := make([][]float64, 0, len(train))
	y := make([]float64, 0, len(train))
	for _, i := range train {
		x = append(x, features[i].Vector())
		y = append(y, in.TargetVariable.Value(usable[i]))
	}

	cfg := forest.DefaultConfig()
	cfg.NumTrees = h.Config.NumTrees
	cfg.Seed = h.Config.Seed
	cfg.MaxDepth = h.Config.MaxDepth

	start := time.Now()
	f, err := forest.Fit(x, y, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to fit model for %s %s: %w", in.Commodity, in.TargetVariable, err)
	}
	h.Metrics.ObserveTraining(string(in.TargetVariable), time.Since(start))

	model := &TrainedModel{
		Commodity:      in.Commodity,
		TargetVariable: in.TargetVariable,
		TrainRows:      len(train),
		HeldOutRows:    len(test),
		forest:         f,
	}
	log.Infow(
		"trained model",
		"commodity", in.Commodity,
		"target", in.TargetVariable,
		"trainRows", model.TrainRows,
		"heldOutRows", model.HeldOutRows,
		"elapsedMs", time.Since(start).Milliseconds(),
	)

	if useCache {
		h.Cache.Add(key, model)
	}

	return model, nil
}

func (h modelServiceHandler) Predict(model *TrainedModel, features []domain.FeatureRow) (*Prediction, error) {
	if model == nil || model.forest == nil {
		return nil, fmt.Errorf("cannot predict with untrained model")
	}

	out := &Prediction{
		Values:  make([]float64, len(features)),
		PerTree: make([][]float64, len(features)),
	}
	for i, f := range features {
		perTree := model.forest.PredictPerTree(f.Vector())
		mean, err := stats.Mean(perTree)
		if err != nil {
			return nil, fmt.Errorf("failed to average tree predictions: %w", err)
		}
		out.Values[i] = mean
		out.PerTree[i] = perTree
	}

	return out, nil
}
