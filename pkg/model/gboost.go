package model

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"

	"autovalue/pkg/loss"
	"autovalue/pkg/optim"
	"autovalue/pkg/stats"
)

// GradientBoostingRegressor fits an additive ensemble of regression trees,
// each one trained on the negative gradient of squared error left by the
// trees before it.
type GradientBoostingRegressor struct {
	// Hyperparameters / options
	NEstimators     int
	LearningRate    float64
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int

	// Fitted state
	BaseScore float64
	NFeatures int
	Trees     []*DecisionTreeRegressor
}

// BoostingOption functional config for GradientBoostingRegressor
type BoostingOption func(*GradientBoostingRegressor)

func WithNEstimators(n int) BoostingOption {
	return func(g *GradientBoostingRegressor) { g.NEstimators = n }
}
func WithLearningRate(lr float64) BoostingOption {
	return func(g *GradientBoostingRegressor) { g.LearningRate = lr }
}
func WithTreeDepth(d int) BoostingOption {
	return func(g *GradientBoostingRegressor) { g.MaxDepth = d }
}

// NewGradientBoostingRegressor returns a booster with the defaults used for
// price models: 100 trees, learning rate 0.1, depth 5.
func NewGradientBoostingRegressor(opts ...BoostingOption) *GradientBoostingRegressor {
	g := &GradientBoostingRegressor{
		NEstimators:     100,
		LearningRate:    0.1,
		MaxDepth:        5,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Fit trains the ensemble. Training is fully deterministic: no row or
// feature subsampling is performed.
func (g *GradientBoostingRegressor) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return errors.New("gboost: empty X")
	}
	if len(y) != len(X) {
		return errors.New("gboost: X and y length mismatch")
	}
	if g.NEstimators <= 0 || g.LearningRate <= 0 {
		return fmt.Errorf("gboost: invalid hyperparameters (estimators=%d, learning rate=%v)", g.NEstimators, g.LearningRate)
	}

	n := len(X)
	g.NFeatures = len(X[0])
	g.BaseScore = stats.Mean(y)
	g.Trees = make([]*DecisionTreeRegressor, 0, g.NEstimators)

	var sq loss.SquaredError
	opt := optim.NewSGD(g.LearningRate)

	pred := make([]float64, n)
	for i := range pred {
		pred[i] = g.BaseScore
	}
	grad := make([]float64, n)
	target := make([]float64, n)
	step := make([]float64, n)

	for m := 0; m < g.NEstimators; m++ {
		sq.Gradient(y, pred, grad)
		for i := range grad {
			target[i] = -grad[i]
		}

		tree := NewDecisionTreeRegressor(
			WithMaxDepth(g.MaxDepth),
			WithMinSamplesSplit(g.MinSamplesSplit),
			WithMinSamplesLeaf(g.MinSamplesLeaf),
		)
		if err := tree.Fit(X, target); err != nil {
			return fmt.Errorf("gboost: tree %d: %w", m, err)
		}
		g.Trees = append(g.Trees, tree)

		// pred += lr * tree(x), written as a descent step along -tree(x)
		for i := range X {
			step[i] = -tree.PredictOne(X[i])
		}
		opt.Step(pred, step)
	}
	return nil
}

// Predict returns one prediction per row of X.
func (g *GradientBoostingRegressor) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i := range X {
		out[i] = g.PredictOne(X[i])
	}
	return out
}

// PredictOne scores a single feature vector ordered like the training matrix.
func (g *GradientBoostingRegressor) PredictOne(x []float64) float64 {
	out := g.BaseScore
	for _, t := range g.Trees {
		out += g.LearningRate * t.PredictOne(x)
	}
	return out
}

// Width returns the number of features the ensemble was fitted on.
func (g *GradientBoostingRegressor) Width() int { return g.NFeatures }

// boosted has the same fields but no methods, so gob does not recurse into
// MarshalBinary.
type boosted GradientBoostingRegressor

// MarshalBinary implements encoding.BinaryMarshaler using gob.
func (g *GradientBoostingRegressor) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode((*boosted)(g)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler using gob.
func (g *GradientBoostingRegressor) UnmarshalBinary(data []byte) error {
	var b boosted
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&b); err != nil {
		return err
	}
	if len(b.Trees) == 0 {
		return errors.New("gboost: decoded model has no trees")
	}
	*g = GradientBoostingRegressor(b)
	return nil
}
