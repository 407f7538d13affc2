// Package report renders the charts shown alongside a valuation and
// produced after training.
package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default output size.
const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

var (
	lineColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	fillColor   = color.RGBA{R: 31, G: 119, B: 180, A: 60}
	markerColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// WritePNG encodes p as PNG at the default size.
func WritePNG(p *plot.Plot, w io.Writer) error {
	wt, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("report: write png: %w", err)
	}
	return nil
}

// SavePNG writes p to a PNG file.
func SavePNG(p *plot.Plot, path string) error {
	if err := p.Save(Width, Height, path); err != nil {
		return fmt.Errorf("report: save %q: %w", path, err)
	}
	return nil
}

// dashedLine returns a straight dashed segment between two points.
func dashedLine(a, b plotter.XY, c color.Color) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{a, b})
	if err != nil {
		return nil, err
	}
	l.Color = c
	l.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	l.Width = vg.Points(1.5)
	return l, nil
}

var errNoPoints = errors.New("report: no points")

func scatter(pts plotter.XYs) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.Color = lineColor
	s.Shape = draw.CircleGlyph{}
	s.Radius = vg.Points(2.5)
	return s, nil
}
