package model

// Model is a generic supervised learning interface.
type Model interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) []float64
}

// Regressor is a fitted model that can score a single feature vector.
// The serving path only ever needs PredictOne.
type Regressor interface {
	Model
	PredictOne(x []float64) float64
	// Width is the feature-vector length the model was fitted on.
	Width() int
}
