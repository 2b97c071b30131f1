// Package plot renders the analysis charts as PNG images.
package plot

import (
	"fmt"
	"image/color"
	"io"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	width  = 8 * vg.Inch
	height = 6 * vg.Inch
	format = "png"
)

// Suffixes appended to the result name for each chart
const (
	EigenSuffix    = "_eigen_analysis.png"
	ScreeSuffix    = "_variance_scree.png"
	HornSuffix     = "_horn_analysis.png"
	LoadingsSuffix = "_EFA.png"
)

var (
	dataColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	randomColor = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	guideColor  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// Eigen draws the correlation eigenvalues against factor number with the
// Kaiser line at 1
func Eigen(w io.Writer, eigenvalues []float64) error {
	p := newPlot("Eigen Value Analysis", "Factor", "Eigenvalue")

	if err := addSeries(p, "EFA - Data", eigenvalues, dataColor); err != nil {
		return err
	}
	if err := addGuide(p, 1, len(eigenvalues)); err != nil {
		return err
	}

	return save(p, w)
}

// Scree draws the proportion of variance explained by each factor
func Scree(w io.Writer, proportional []float64) error {
	p := newPlot("Scree Plot", "Factor", "Variance Explained")

	if err := addSeries(p, "EFA - Data", proportional, dataColor); err != nil {
		return err
	}

	return save(p, w)
}

// Horn draws data eigenvalues against the averaged random baseline
func Horn(w io.Writer, eigenvalues, random []float64) error {
	p := newPlot("Horn Parallel Analysis", "Factor", "Eigenvalue")

	if err := addSeries(p, "EFA - data", eigenvalues, dataColor); err != nil {
		return err
	}
	if err := addSeries(p, "EFA - random", random, randomColor); err != nil {
		return err
	}
	if err := addGuide(p, 1, len(eigenvalues)); err != nil {
		return err
	}

	return save(p, w)
}

func newPlot(title, x, y string) *gplot.Plot {
	p := gplot.New()
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

// addSeries plots values at x = 1..n as a line with point markers
func addSeries(p *gplot.Plot, label string, values []float64, c color.Color) error {
	if len(values) == 0 {
		return fmt.Errorf("no values to plot for %s", label)
	}

	xys := make(plotter.XYs, len(values))
	for i, v := range values {
		xys[i].X = float64(i + 1)
		xys[i].Y = v
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("failed to plot %s: %w", label, err)
	}
	line.Color = c
	points.Color = c
	points.Shape = draw.CircleGlyph{}

	p.Add(line, points)
	p.Legend.Add(label, line, points)
	return nil
}

// addGuide draws a dashed horizontal line at y across 1..n
func addGuide(p *gplot.Plot, y float64, n int) error {
	guide, err := plotter.NewLine(plotter.XYs{{X: 1, Y: y}, {X: float64(max(n, 2)), Y: y}})
	if err != nil {
		return fmt.Errorf("failed to plot guide: %w", err)
	}
	guide.Color = guideColor
	guide.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(guide)
	return nil
}

func save(p *gplot.Plot, w io.Writer) error {
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}
