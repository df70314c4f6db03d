package forest

import (
	"sort"
)

type node struct {
	feature   int
	threshold float64
	// -1 on leaves
	left  int
	right int
	value float64
}

// Tree is a CART regression tree split on squared error. Nodes are
// stored flat with the root at index 0
type Tree struct {
	nodes []node
}

func (t *Tree) Predict(row []float64) float64 {
	i := 0
	for {
		n := t.nodes[i]
		if n.left < 0 {
			return n.value
		}
		if row[n.feature] <= n.threshold {
			i = n.left
		} else {
			i = n.right
		}
	}
}

// Depth of the deepest leaf, the root alone is depth 0
func (t *Tree) Depth() int {
	var walk func(i, d int) int
	walk = func(i, d int) int {
		n := t.nodes[i]
		if n.left < 0 {
			return d
		}
		return max(walk(n.left, d+1), walk(n.right, d+1))
	}
	return walk(0, 0)
}

func (t *Tree) NumLeaves() int {
	c := 0
	for _, n := range t.nodes {
		if n.left < 0 {
			c++
		}
	}
	return c
}

type treeBuilder struct {
	x     [][]float64
	y     []float64
	cfg   Config
	nodes []node
}

type split struct {
	feature   int
	threshold float64
	score     float64
}

// fitTree grows a tree on the rows in idx. idx may repeat rows,
// which is how bootstrap samples are passed in
func fitTree(x [][]float64, y []float64, idx []int, cfg Config) *Tree {
	b := &treeBuilder{
		x:   x,
		y:   y,
		cfg: cfg,
	}
	b.build(idx, 0)
	return &Tree{nodes: b.nodes}
}

func (b *treeBuilder) build(idx []int, depth int) int {
	id := len(b.nodes)
	b.nodes = append(b.nodes, node{
		left:  -1,
		right: -1,
		value: b.mean(idx),
	})

	if len(idx) < b.cfg.MinSamplesSplit || len(idx) < 2*b.cfg.MinSamplesLeaf {
		return id
	}
	if b.cfg.MaxDepth > 0 && depth >= b.cfg.MaxDepth {
		return id
	}
	if b.pure(idx) {
		return id
	}

	s, ok := b.bestSplit(idx)
	if !ok {
		return id
	}

	left := make([]int, 0, len(idx))
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		if b.x[i][s.feature] <= s.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := b.build(left, depth+1)
	r := b.build(right, depth+1)

	// index again, the appends above may have moved the slice
	b.nodes[id].feature = s.feature
	b.nodes[id].threshold = s.threshold
	b.nodes[id].left = l
	b.nodes[id].right = r

	return id
}

func (b *treeBuilder) mean(idx []int) float64 {
	sum := 0.0
	for _, i := range idx {
		sum += b.y[i]
	}
	return sum / float64(len(idx))
}

func (b *treeBuilder) pure(idx []int) bool {
	first := b.y[idx[0]]
	for _, i := range idx[1:] {
		if b.y[i] != first {
			return false
		}
	}
	return true
}

// bestSplit scans every feature for the threshold that minimizes the
// summed squared error of the two children. minimizing SSE is the same
// as maximizing sumL²/nL + sumR²/nR, which is what gets compared
func (b *treeBuilder) bestSplit(idx []int) (split, bool) {
	n := len(idx)
	total := 0.0
	for _, i := range idx {
		total += b.y[i]
	}

	best := split{}
	found := false
	sorted := make([]int, n)

	for f := 0; f < len(b.x[idx[0]]); f++ {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, c int) bool {
			return b.x[sorted[a]][f] < b.x[sorted[c]][f]
		})

		leftSum := 0.0
		for k := 0; k < n-1; k++ {
			leftSum += b.y[sorted[k]]
			lo := b.x[sorted[k]][f]
			hi := b.x[sorted[k+1]][f]
			if lo == hi {
				continue
			}
			nl := k + 1
			nr := n - nl
			if nl < b.cfg.MinSamplesLeaf || nr < b.cfg.MinSamplesLeaf {
				continue
			}
			rightSum := total - leftSum
			score := leftSum*leftSum/float64(nl) + rightSum*rightSum/float64(nr)
			if !found || score > best.score {
				threshold := lo + (hi-lo)/2
				if threshold >= hi {
					threshold = lo
				}
				best = split{
					feature:   f,
					threshold: threshold,
					score:     score,
				}
				found = true
			}
		}
	}

	return best, found
}
