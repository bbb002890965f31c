package chart

import (
	"log/slog"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	defaultSideCM = 25.4
)

// Size is the rendered image size.
type Size struct {
	WidthCM  float64 `json:"width_cm" yaml:"width_cm"`
	HeightCM float64 `json:"height_cm" yaml:"height_cm"`
}

// DefaultSize is a 10x10 inch square.
var DefaultSize = Size{WidthCM: defaultSideCM, HeightCM: defaultSideCM}

func (s Size) lengths() (vg.Length, vg.Length) {
	w, h := s.WidthCM, s.HeightCM
	if w <= 0 {
		w = defaultSideCM
	}
	if h <= 0 {
		h = defaultSideCM
	}
	return vg.Length(w) * vg.Centimeter, vg.Length(h) * vg.Centimeter
}

// Curve is a single line plotted over the unit square.
type Curve struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
}

// Save renders the curve to path. The image format is taken from the
// path extension and any existing file is overwritten.
func Save(path string, c Curve, size Size) error {
	if path == "" {
		return errors.New("image path required")
	}
	if len(c.X) != len(c.Y) {
		return errors.Errorf("curve length mismatch: x=%d, y=%d", len(c.X), len(c.Y))
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(c.X))
	for i := range pts {
		pts[i].X = c.X[i]
		pts[i].Y = c.Y[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrapf(err, "error creating %s line", c.Title)
	}
	p.Add(line)

	w, h := size.lengths()
	if err := p.Save(w, h, path); err != nil {
		return errors.Wrapf(err, "error saving plot: %s", path)
	}

	slog.Debug("plot saved", "path", path, "points", len(pts))
	return nil
}
