package report

import (
	"fmt"
	"image/color"

	"autovalue/pkg/stats"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// HoldoutScatter plots predicted against actual prices for the holdout rows,
// with the identity line for reference.
func HoldoutScatter(yTrue, yPred []float64) (*plot.Plot, error) {
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("report: %d actual vs %d predicted values", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return nil, errNoPoints
	}

	pts := make(plotter.XYs, len(yTrue))
	for i := range yTrue {
		pts[i].X, pts[i].Y = yTrue[i], yPred[i]
	}

	p := plot.New()
	p.Title.Text = "Holdout: predicted vs actual"
	p.X.Label.Text = "Actual selling price"
	p.Y.Label.Text = "Predicted selling price"

	s, err := scatter(pts)
	if err != nil {
		return nil, err
	}
	p.Add(s)

	lo, hi := stats.MinMax(append(append([]float64(nil), yTrue...), yPred...))
	identity, err := dashedLine(plotter.XY{X: lo, Y: lo}, plotter.XY{X: hi, Y: hi}, color.Gray{Y: 96})
	if err != nil {
		return nil, err
	}
	p.Add(identity, plotter.NewGrid())
	p.Legend.Add("y = x", identity)
	return p, nil
}
