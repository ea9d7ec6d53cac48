// Package plot renders listing columns as images.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/carstats/internal/parser"
	"github.com/KaramelBytes/carstats/internal/stats"
)

// ErrNoData is returned when there are no records to draw.
var ErrNoData = errors.New("no records to plot")

// Options controls the rendered image.
type Options struct {
	Width  vg.Length
	Height vg.Length
	// Fit draws the least-squares line over the points.
	Fit bool
}

// DefaultOptions returns a 6x4 inch image with a fit line.
func DefaultOptions() Options {
	return Options{Width: 6 * vg.Inch, Height: 4 * vg.Inch, Fit: true}
}

// Scatter saves a scatter plot of yName against xName to path. The image
// format follows the file extension (png, svg, pdf...).
func Scatter(path string, ds *parser.Dataset, xName, yName string, opt Options) error {
	if ds == nil || ds.Len() == 0 {
		return ErrNoData
	}
	xs, ok := ds.Column(xName)
	if !ok {
		return fmt.Errorf("unknown column %q", xName)
	}
	ys, ok := ds.Column(yName)
	if !ok {
		return fmt.Errorf("unknown column %q", yName)
	}

	p := gonumplot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s (r=%.3f)", yName, xName, stats.Pearson(xs, ys))
	p.X.Label.Text = xName
	p.Y.Label.Text = yName

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(2)
	p.Add(s)

	if opt.Fit {
		if line := fitLine(xs, ys); line != nil {
			l, err := plotter.NewLine(line)
			if err != nil {
				return fmt.Errorf("fit line: %w", err)
			}
			l.LineStyle.Color = color.RGBA{R: 200, A: 255}
			l.LineStyle.Width = vg.Points(1.5)
			p.Add(l)
			p.Legend.Add("least squares", l)
		}
	}

	w, h := opt.Width, opt.Height
	if w <= 0 || h <= 0 {
		d := DefaultOptions()
		w, h = d.Width, d.Height
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// fitLine returns the endpoints of the regression line over the x range,
// or nil when x has no spread.
func fitLine(xs, ys []float64) plotter.XYs {
	if stats.StdDev(xs) == 0 {
		return nil
	}
	slope, intercept := stats.LinearFit(xs, ys)
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return plotter.XYs{
		{X: lo, Y: slope*lo + intercept},
		{X: hi, Y: slope*hi + intercept},
	}
}
