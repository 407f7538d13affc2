package loss

// SquaredError is the regression loss 0.5*(y - yhat)^2.
// Its negative gradient with respect to yhat is the plain residual.
type SquaredError struct{}

// Loss returns the mean squared error over the batch.
func (SquaredError) Loss(yTrue, yPred []float64) float64 {
	n := len(yTrue)
	if n == 0 {
		return 0
	}
	s := 0.0
	for i := 0; i < n; i++ {
		e := yPred[i] - yTrue[i]
		s += e * e
	}
	return s / float64(n)
}

// Gradient writes d loss / d yPred for each sample into grad.
// Boosting fits each new tree to -grad.
func (SquaredError) Gradient(yTrue, yPred, grad []float64) {
	for i := range yTrue {
		grad[i] = yPred[i] - yTrue[i]
	}
}
