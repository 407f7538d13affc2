package loader

import (
	"math"
	"math/rand"
)

// TrainTestSplit splits X, Y into train and test sets by ratio. The
// permutation comes from a private source seeded with seed, so the same
// inputs always produce the same partitions. The test set holds
// ceil(n*testRatio) rows.
func TrainTestSplit(X [][]float64, Y []float64, testRatio float64, seed int64) (XTrain, XTest [][]float64, YTrain, YTest []float64) {
	n := len(X)
	indices := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(math.Ceil(float64(n) * testRatio))
	for i := 0; i < n; i++ {
		if i < nTest {
			XTest = append(XTest, X[indices[i]])
			YTest = append(YTest, Y[indices[i]])
		} else {
			XTrain = append(XTrain, X[indices[i]])
			YTrain = append(YTrain, Y[indices[i]])
		}
	}
	return
}
