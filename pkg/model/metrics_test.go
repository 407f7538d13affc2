package model

import (
	"math"
	"testing"
)

func TestRegressionMetrics(t *testing.T) {
	yTrue := []float64{3, -0.5, 2, 7}
	yPred := []float64{2.5, 0.0, 2, 8}

	if got := MAE(yTrue, yPred); got != 0.5 {
		t.Errorf("MAE = %v; want 0.5", got)
	}
	if got := MSE(yTrue, yPred); got != 0.375 {
		t.Errorf("MSE = %v; want 0.375", got)
	}
	if got := RMSE(yTrue, yPred); math.Abs(got-math.Sqrt(0.375)) > 1e-12 {
		t.Errorf("RMSE = %v", got)
	}
	if got := R2(yTrue, yPred); math.Abs(got-0.9486081370449679) > 1e-9 {
		t.Errorf("R2 = %v; want ~0.9486", got)
	}
	if got := R2([]float64{1, 1}, []float64{0, 2}); got != 0 {
		t.Errorf("R2 on constant target = %v; want 0", got)
	}
}

func TestEvaluateRounds(t *testing.T) {
	yTrue := []float64{3, -0.5, 2, 7}
	yPred := []float64{2.5, 0.0, 2, 8}
	m, err := Evaluate(yTrue, yPred)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if m.Accuracy != 94.86 {
		t.Errorf("Accuracy = %v; want 94.86", m.Accuracy)
	}
	if m.MAE != 0.5 {
		t.Errorf("MAE = %v; want 0.5", m.MAE)
	}
}

func TestEvaluateRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name  string
		yPred []float64
	}{
		{"nan prediction", []float64{1, math.NaN()}},
		{"infinite prediction", []float64{1, math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Evaluate([]float64{1, 2}, tt.yPred); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
