package model

import (
	"errors"
	"math"
	"sort"
	"sync"
)

// ---------------------------
// Types & options
// ---------------------------

// DecisionTreeRegressor is a CART-style regression tree using squared error.
// All fields are exported so the fitted tree can be gob-encoded.
type DecisionTreeRegressor struct {
	// Hyperparameters / options
	MaxDepth        int // maximum depth (root depth = 0). 0 => no limit
	MinSamplesSplit int // minimum samples to attempt a split
	MinSamplesLeaf  int // minimum samples required in each leaf

	NFeatures int
	Root      *TreeNode
}

// TreeNode holds a node in the tree.
type TreeNode struct {
	Leaf        bool
	Feature     int
	Threshold   float64 // x <= Threshold => Left
	DefaultLeft bool    // branch taken by NaN
	Left        *TreeNode
	Right       *TreeNode

	N     int     // training samples that reached this node
	Value float64 // mean target of those samples
}

// Option functional config
type Option func(*DecisionTreeRegressor)

func WithMaxDepth(d int) Option { return func(t *DecisionTreeRegressor) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) Option {
	return func(t *DecisionTreeRegressor) { t.MinSamplesSplit = n }
}
func WithMinSamplesLeaf(n int) Option {
	return func(t *DecisionTreeRegressor) { t.MinSamplesLeaf = n }
}

// NewDecisionTreeRegressor returns a regressor with sensible defaults.
func NewDecisionTreeRegressor(opts ...Option) *DecisionTreeRegressor {
	t := &DecisionTreeRegressor{
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// ---------------------------
// Public API: Fit / Predict
// ---------------------------

// Fit grows the tree on X (n x p) and targets y.
// Missing values must be math.NaN(); each split learns which side they take.
func (t *DecisionTreeRegressor) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return errors.New("dtree: empty X")
	}
	n := len(X)
	if len(y) != n {
		return errors.New("dtree: X and y length mismatch")
	}
	p := len(X[0])
	for i := range X {
		if len(X[i]) != p {
			return errors.New("dtree: inconsistent number of features in X rows")
		}
	}

	idx := make([]int, n)
	for i := 0; i < n; i++ {
		idx[i] = i
	}
	t.NFeatures = p
	t.Root = t.buildNode(X, y, idx, 0)
	return nil
}

// Predict returns one prediction per row of X.
func (t *DecisionTreeRegressor) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i := range X {
		out[i] = t.PredictOne(X[i])
	}
	return out
}

// PredictOne walks a single feature vector down the tree.
func (t *DecisionTreeRegressor) PredictOne(x []float64) float64 {
	node := t.Root
	if node == nil {
		return 0
	}
	for !node.Leaf {
		val := x[node.Feature]
		switch {
		case math.IsNaN(val):
			if node.DefaultLeft {
				node = node.Left
			} else {
				node = node.Right
			}
		case val <= node.Threshold:
			node = node.Left
		default:
			node = node.Right
		}
	}
	return node.Value
}

// Depth returns the number of split levels below the root.
func (t *DecisionTreeRegressor) Depth() int { return subtreeDepth(t.Root) }

func subtreeDepth(n *TreeNode) int {
	if n == nil || n.Leaf {
		return 0
	}
	return 1 + max(subtreeDepth(n.Left), subtreeDepth(n.Right))
}

// ---------------------------
// Internal builders & helpers
// ---------------------------

// splitResult holds the best split found for a single feature.
type splitResult struct {
	gain        float64
	feature     int
	threshold   float64
	defaultLeft bool
	leftIdx     []int
	rightIdx    []int
}

// pair is a feature value and the sample index it came from.
type pair struct {
	v float64
	i int
}

func (t *DecisionTreeRegressor) buildNode(X [][]float64, y []float64, idx []int, depth int) *TreeNode {
	sum := 0.0
	for _, ii := range idx {
		sum += y[ii]
	}
	node := &TreeNode{N: len(idx), Value: sum / float64(len(idx))}

	if constantTarget(y, idx) || (t.MinSamplesSplit > 0 && len(idx) < t.MinSamplesSplit) {
		node.Leaf = true
		return node
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		node.Leaf = true
		return node
	}

	p := len(X[0])
	parentScore := sum * sum / float64(len(idx))

	// One goroutine per feature; each writes only its own slot.
	results := make([]splitResult, p)
	var wg sync.WaitGroup
	for f := 0; f < p; f++ {
		wg.Add(1)
		go func(f int) {
			defer wg.Done()
			results[f] = t.findBestSplitForFeature(X, y, idx, f, parentScore)
		}(f)
	}
	wg.Wait()

	// Scan in feature order so ties resolve the same way on every run.
	best := splitResult{feature: -1}
	for _, r := range results {
		if r.feature >= 0 && r.gain > best.gain {
			best = r
		}
	}

	if best.feature == -1 {
		node.Leaf = true
		return node
	}

	node.Feature = best.feature
	node.Threshold = best.threshold
	node.DefaultLeft = best.defaultLeft
	node.Left = t.buildNode(X, y, best.leftIdx, depth+1)
	node.Right = t.buildNode(X, y, best.rightIdx, depth+1)
	return node
}

// findBestSplitForFeature scans every threshold between distinct values of
// feature f. Gain is the reduction in squared error, computed from prefix
// sums: sumL^2/nL + sumR^2/nR - sum^2/n.
func (t *DecisionTreeRegressor) findBestSplitForFeature(X [][]float64, y []float64, idx []int, f int, parentScore float64) splitResult {
	result := splitResult{feature: -1}

	valid := make([]pair, 0, len(idx))
	var nans []int
	nanSum := 0.0
	for _, ii := range idx {
		v := X[ii][f]
		if math.IsNaN(v) {
			nans = append(nans, ii)
			nanSum += y[ii]
			continue
		}
		valid = append(valid, pair{v, ii})
	}
	if len(valid) < 2 {
		return result
	}

	sort.Slice(valid, func(a, b int) bool {
		if valid[a].v != valid[b].v {
			return valid[a].v < valid[b].v
		}
		return valid[a].i < valid[b].i
	})

	validSum := 0.0
	for _, pv := range valid {
		validSum += y[pv.i]
	}

	bestS := -1
	bestNaNLeft := false
	leftSum := 0.0
	for s := 1; s < len(valid); s++ {
		leftSum += y[valid[s-1].i]
		if valid[s].v == valid[s-1].v {
			continue
		}
		nL, nR := s, len(valid)-s
		sL, sR := leftSum, validSum-leftSum

		if len(nans) == 0 {
			if gain, ok := t.gain(sL, nL, sR, nR, parentScore); ok && gain > result.gain {
				result.gain, bestS = gain, s
				bestNaNLeft = nL >= nR
			}
			continue
		}
		// try NaNs on the left, then on the right
		if gain, ok := t.gain(sL+nanSum, nL+len(nans), sR, nR, parentScore); ok && gain > result.gain {
			result.gain, bestS, bestNaNLeft = gain, s, true
		}
		if gain, ok := t.gain(sL, nL, sR+nanSum, nR+len(nans), parentScore); ok && gain > result.gain {
			result.gain, bestS, bestNaNLeft = gain, s, false
		}
	}
	if bestS < 0 {
		return result
	}

	result.feature = f
	result.threshold = (valid[bestS-1].v + valid[bestS].v) / 2.0
	result.defaultLeft = bestNaNLeft
	result.leftIdx = indicesFromPairs(valid[:bestS])
	result.rightIdx = indicesFromPairs(valid[bestS:])
	if bestNaNLeft {
		result.leftIdx = append(result.leftIdx, nans...)
	} else {
		result.rightIdx = append(result.rightIdx, nans...)
	}
	return result
}

func (t *DecisionTreeRegressor) gain(sumL float64, nL int, sumR float64, nR int, parentScore float64) (float64, bool) {
	if nL < t.MinSamplesLeaf || nR < t.MinSamplesLeaf || nL == 0 || nR == 0 {
		return 0, false
	}
	return sumL*sumL/float64(nL) + sumR*sumR/float64(nR) - parentScore, true
}

func constantTarget(y []float64, idx []int) bool {
	for _, ii := range idx[1:] {
		if y[ii] != y[idx[0]] {
			return false
		}
	}
	return true
}

func indicesFromPairs(pairs []pair) []int {
	out := make([]int, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.i)
	}
	return out
}
