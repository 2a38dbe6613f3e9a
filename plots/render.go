package plots

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/LdDl/mr-go/mr"
)

// errorPoints is a line with symmetric vertical error bars
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

func driftPlot(drift mr.DriftCurve, uncertainty mr.UncertaintyCurve) (*plot.Plot, error) {
	if len(drift) == 0 {
		return nil, errors.New("empty drift curve")
	}
	if len(drift) != len(uncertainty) {
		return nil, errors.Errorf("drift has %d frames, uncertainty has %d", len(drift), len(uncertainty))
	}
	p := plot.New()
	p.Title.Text = "Drift"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Displacement (px)"

	axes := []struct {
		label string
		value func(mr.DriftRecord) float64
	}{
		{"x", func(r mr.DriftRecord) float64 { return r.X }},
		{"y", func(r mr.DriftRecord) float64 { return r.Y }},
	}
	for i, axis := range axes {
		pts := errorPoints{
			XYs:     make(plotter.XYs, len(drift)),
			YErrors: make(plotter.YErrors, len(drift)),
		}
		for j, rec := range drift {
			pts.XYs[j] = plotter.XY{X: float64(rec.Frame), Y: axis.value(rec)}
			std := axis.value(uncertainty[j])
			pts.YErrors[j].Low = std
			pts.YErrors[j].High = std
		}
		line, err := plotter.NewLine(pts.XYs)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't draw %s drift", axis.label)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		bars, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't draw %s uncertainty", axis.label)
		}
		bars.Color = plotutil.Color(i)
		p.Add(line, bars)
		p.Legend.Add(axis.label, line)
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p, nil
}

func msdPlot(curves map[string]mr.MSDCurve) (*plot.Plot, error) {
	if len(curves) == 0 {
		return nil, errors.New("no MSD curves")
	}
	p := plot.New()
	p.Title.Text = "Mean squared displacement"
	p.X.Label.Text = "Lag time (s)"
	p.Y.Label.Text = "MSD (μm²)"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	// Sort names for consistent legend and colors
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)

	drawn := 0
	for i, name := range names {
		pts := make(plotter.XYs, 0, len(curves[name]))
		for _, rec := range curves[name] {
			// Log axes can't show non-positive values
			if rec.LagTime <= 0 || rec.MSD <= 0 {
				continue
			}
			pts = append(pts, plotter.XY{X: rec.LagTime, Y: rec.MSD})
		}
		if len(pts) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't draw curve %s", name)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(name, line, points)
		drawn++
	}
	if drawn == 0 {
		return nil, errors.New("MSD curves have no positive values")
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}
