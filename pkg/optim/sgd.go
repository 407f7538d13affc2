package optim

// SGD is a plain gradient step with a fixed learning rate. Boosting uses it
// as the shrinkage step in function space: the weights are the running
// predictions and the gradient is the negated output of the new tree.
type SGD struct{ LearningRate float64 }

func NewSGD(lr float64) *SGD { return &SGD{LearningRate: lr} }

func (o *SGD) Step(weights, grads []float64) { // in-place update using pointer receiver
	for i := range weights {
		weights[i] -= o.LearningRate * grads[i]
	}
}
