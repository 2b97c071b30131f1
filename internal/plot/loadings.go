package plot

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
)

const paletteSize = 255

// blues runs from near white to dark blue
type blues int

var _ palette.Palette = blues(0)

func (b blues) Colors() []color.Color {
	light := [3]float64{247, 251, 255}
	dark := [3]float64{8, 48, 107}

	colors := make([]color.Color, int(b))
	for i := range colors {
		t := float64(i) / float64(max(int(b)-1, 1))
		colors[i] = color.RGBA{
			R: uint8(light[0] + t*(dark[0]-light[0])),
			G: uint8(light[1] + t*(dark[1]-light[1])),
			B: uint8(light[2] + t*(dark[2]-light[2])),
			A: 255,
		}
	}
	return colors
}

// loadingGrid adapts a p x k loadings matrix to a heat map grid with factors
// on the x axis and the first variable on the top row. Cells are shaded by
// absolute loading.
type loadingGrid struct {
	m mat.Matrix
}

func (g loadingGrid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g loadingGrid) Z(c, r int) float64 {
	return math.Abs(g.loading(c, r))
}

func (g loadingGrid) loading(c, r int) float64 {
	rows, _ := g.m.Dims()
	return g.m.At(rows-1-r, c)
}

func (g loadingGrid) X(c int) float64 { return float64(c) }
func (g loadingGrid) Y(r int) float64 { return float64(r) }

// Loadings draws the rotated loadings as an annotated heat map
func Loadings(w io.Writer, loadings mat.Matrix, headings, labels []string) error {
	rows, cols := loadings.Dims()
	if rows != len(headings) || cols != len(labels) {
		return fmt.Errorf("loadings are %dx%d but got %d headings and %d labels", rows, cols, len(headings), len(labels))
	}

	p := gplot.New()
	p.Title.Text = "Factor Loadings"
	p.X.Label.Text = "Factor"

	grid := loadingGrid{m: loadings}
	hm := plotter.NewHeatMap(grid, blues(paletteSize))
	hm.Min, hm.Max = 0, 1
	p.Add(hm)

	xys := make(plotter.XYs, 0, rows*cols)
	values := make([]string, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			xys = append(xys, plotter.XY{X: grid.X(c), Y: grid.Y(r)})
			values = append(values, fmt.Sprintf("%.2f", grid.loading(c, r)))
		}
	}
	annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: values})
	if err != nil {
		return fmt.Errorf("failed to annotate loadings: %w", err)
	}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].XAlign = draw.XCenter
		annotations.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(annotations)

	xTicks := make(gplot.ConstantTicks, cols)
	for c, label := range labels {
		xTicks[c] = gplot.Tick{Value: grid.X(c), Label: label}
	}
	yTicks := make(gplot.ConstantTicks, rows)
	for r := range yTicks {
		yTicks[r] = gplot.Tick{Value: grid.Y(r), Label: headings[rows-1-r]}
	}
	p.X.Tick.Marker = xTicks
	p.Y.Tick.Marker = yTicks

	return save(p, w)
}
