// Package forest implements a random forest regressor: bagged CART
// trees whose predictions are averaged. Per-tree predictions are
// exposed so callers can measure how much the ensemble disagrees.
package forest

import (
	"fmt"
	"math"
	"math/rand/v2"
)

type Config struct {
	NumTrees int
	Seed     uint64
	// draw n rows with replacement for every tree
	Bootstrap bool
	// 0 grows trees until leaves are pure
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
}

func DefaultConfig() Config {
	return Config{
		NumTrees:        100,
		Seed:            42,
		Bootstrap:       true,
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	}
}

type Forest struct {
	trees []*Tree
}

// Fit trains cfg.NumTrees trees on x/y. The same inputs and seed
// always produce the same forest
func Fit(x [][]float64, y []float64, cfg Config) (*Forest, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("cannot fit forest on 0 rows")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("received %d feature rows but %d targets", len(x), len(y))
	}
	if cfg.NumTrees <= 0 {
		return nil, fmt.Errorf("number of trees must be positive, got %d", cfg.NumTrees)
	}
	numFeatures := len(x[0])
	if numFeatures == 0 {
		return nil, fmt.Errorf("feature rows are empty")
	}
	for i, row := range x {
		if len(row) != numFeatures {
			return nil, fmt.Errorf("row %d has %d features, expected %d", i, len(row), numFeatures)
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("row %d has non-finite feature %v", i, v)
			}
		}
		if math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return nil, fmt.Errorf("row %d has non-finite target %v", i, y[i])
		}
	}

	cfg.MinSamplesSplit = max(cfg.MinSamplesSplit, 2)
	cfg.MinSamplesLeaf = max(cfg.MinSamplesLeaf, 1)

	seeds := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	trees := make([]*Tree, cfg.NumTrees)
	n := len(x)
	for t := range trees {
		rng := rand.New(rand.NewPCG(seeds.Uint64(), seeds.Uint64()))
		idx := make([]int, n)
		for i := range idx {
			if cfg.Bootstrap {
				idx[i] = rng.IntN(n)
			} else {
				idx[i] = i
			}
		}
		trees[t] = fitTree(x, y, idx, cfg)
	}

	return &Forest{
		trees: trees,
	}, nil
}

func (f *Forest) NumTrees() int {
	return len(f.trees)
}

// Predict returns the mean of every tree's prediction for row
func (f *Forest) Predict(row []float64) float64 {
	sum := 0.0
	for _, t := range f.trees {
		sum += t.Predict(row)
	}
	return sum / float64(len(f.trees))
}

// PredictPerTree returns one prediction per tree, in tree order
func (f *Forest) PredictPerTree(row []float64) []float64 {
	out := make([]float64, len(f.trees))
	for i, t := range f.trees {
		out[i] = t.Predict(row)
	}
	return out
}
