package report

import (
	"errors"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Depreciation model used for the illustrative curve.
const (
	AnnualRetention = 0.88
	MaxAge          = 15
)

// DepreciationPoints returns price·0.88^a for ages 0 through MaxAge.
func DepreciationPoints(showroomPrice float64) plotter.XYs {
	pts := make(plotter.XYs, MaxAge+1)
	for a := range pts {
		pts[a].X = float64(a)
		pts[a].Y = showroomPrice * math.Pow(AnnualRetention, float64(a))
	}
	return pts
}

// DepreciationCurve plots the generic depreciation curve for a vehicle with
// the given showroom price and marks its current age with a dashed line.
func DepreciationCurve(showroomPrice float64, currentAge int) (*plot.Plot, error) {
	if showroomPrice <= 0 || math.IsNaN(showroomPrice) || math.IsInf(showroomPrice, 0) {
		return nil, errors.New("report: showroom price must be positive")
	}

	p := plot.New()
	p.Title.Text = "Estimated depreciation"
	p.X.Label.Text = "Age (years)"
	p.Y.Label.Text = "Value"
	p.X.Min, p.X.Max = 0, MaxAge
	p.Y.Min = 0

	curve, err := plotter.NewLine(DepreciationPoints(showroomPrice))
	if err != nil {
		return nil, err
	}
	curve.Color = lineColor
	curve.FillColor = fillColor
	curve.Width = vg.Points(2)
	p.Add(curve)

	if currentAge >= 0 && currentAge <= MaxAge {
		x := float64(currentAge)
		marker, err := dashedLine(plotter.XY{X: x, Y: 0}, plotter.XY{X: x, Y: showroomPrice}, markerColor)
		if err != nil {
			return nil, err
		}
		p.Add(marker)
		p.Legend.Add("current age", marker)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}
