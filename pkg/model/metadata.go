package model

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Metadata is the accuracy summary stored next to a trained model.
// It is informational only; nothing at inference time depends on it.
type Metadata struct {
	Accuracy float64 `json:"accuracy"` // R² on the holdout, in percent
	MAE      float64 `json:"mae"`      // mean absolute error, currency units
}

// Evaluate scores holdout predictions. Both figures are rounded to two
// decimals, the precision they are published with. A non-finite score means
// the model diverged and is reported as an error.
func Evaluate(yTrue, yPred []float64) (Metadata, error) {
	acc, err := round2("accuracy", R2(yTrue, yPred)*100)
	if err != nil {
		return Metadata{}, err
	}
	mae, err := round2("mae", MAE(yTrue, yPred))
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{Accuracy: acc, MAE: mae}, nil
}

func round2(name string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("metrics: %s is %v", name, v)
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f, nil
}
