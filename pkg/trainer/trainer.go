// Package trainer fits the price model from a raw listings table and
// produces the three artifacts the serving side needs: the model, the
// ordered feature columns and the accuracy metadata.
package trainer

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"autovalue/pkg/data"
	"autovalue/pkg/dataprep"
	"autovalue/pkg/loader"
	"autovalue/pkg/loss"
	"autovalue/pkg/model"
)

// Fixed training parameters. Changing any of them changes every artifact.
const (
	NEstimators  = 100
	LearningRate = 0.1
	MaxDepth     = 5
	TestRatio    = 0.2
	Seed         = 42
)

// ErrTooFewRows is returned when fewer than two labelled rows remain.
var ErrTooFewRows = errors.New("trainer: need at least two labelled rows")

// Result is everything a training run produces.
type Result struct {
	Model    *model.GradientBoostingRegressor
	Columns  []string
	Metadata model.Metadata

	// Dropped lists raw column names ignored by normalization.
	Dropped []string

	TrainRows        int
	HoldoutActual    []float64
	HoldoutPredicted []float64
}

type options struct {
	now    func() time.Time
	logger *log.Logger
}

// Option configures a training run.
type Option func(*options)

// WithClock sets the clock used to derive vehicle age.
func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

// WithLogger sets the logger for progress messages.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// Train normalizes, encodes, splits, fits and evaluates. It never writes
// anything; persisting the result is the caller's job.
func Train(raw *data.Frame, opts ...Option) (*Result, error) {
	o := options{now: time.Now, logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	f, dropped := dataprep.NormalizeColumns(raw)
	if len(dropped) > 0 {
		o.logger.Printf("trainer: ignoring unrecognized columns: %s", strings.Join(dropped, ", "))
	}
	if err := dataprep.RequireColumns(f, dataprep.Required...); err != nil {
		return nil, err
	}

	design, err := BuildDesign(f, o.now().Year())
	if err != nil {
		return nil, err
	}
	if len(design.Y) < 2 {
		return nil, ErrTooFewRows
	}
	if n := len(f.Rows) - len(design.Y); n > 0 {
		o.logger.Printf("trainer: dropped %d rows without %s", n, dataprep.SellingPrice)
	}

	XTrain, XTest, yTrain, yTest := loader.TrainTestSplit(design.X, design.Y, TestRatio, Seed)
	o.logger.Printf("trainer: %d features, %d train rows, %d holdout rows", len(design.Columns), len(XTrain), len(XTest))

	reg := model.NewGradientBoostingRegressor(
		model.WithNEstimators(NEstimators),
		model.WithLearningRate(LearningRate),
		model.WithTreeDepth(MaxDepth),
	)
	if err := reg.Fit(XTrain, yTrain); err != nil {
		return nil, fmt.Errorf("trainer: fit: %w", err)
	}

	var sq loss.SquaredError
	pred := reg.Predict(XTest)
	meta, err := model.Evaluate(yTest, pred)
	if err != nil {
		return nil, fmt.Errorf("trainer: evaluate: %w", err)
	}
	o.logger.Printf("trainer: train loss %.4f, holdout RMSE %.4f, R² %.2f%%",
		sq.Loss(yTrain, reg.Predict(XTrain)), model.RMSE(yTest, pred), meta.Accuracy)

	return &Result{
		Model:            reg,
		Columns:          design.Columns,
		Metadata:         meta,
		Dropped:          dropped,
		TrainRows:        len(XTrain),
		HoldoutActual:    yTest,
		HoldoutPredicted: pred,
	}, nil
}
