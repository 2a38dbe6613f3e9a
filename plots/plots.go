// Package plots renders drift and MSD curves with gonum/plot.
package plots

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/vg"

	"github.com/LdDl/mr-go/mr"
)

const (
	defaultWidth  = 10 * vg.Inch
	defaultHeight = 6 * vg.Inch
)

// Sink writes plots into a directory. Extension picks the format ("png", "svg", "pdf").
type Sink struct {
	Dir       string
	Extension string
	Width     vg.Length
	Height    vg.Length
}

// NewSink creates PNG sink with default size
func NewSink(dir string) *Sink {
	return &Sink{
		Dir:       dir,
		Extension: "png",
		Width:     defaultWidth,
		Height:    defaultHeight,
	}
}

func (sink *Sink) path(name string) string {
	return filepath.Join(sink.Dir, fmt.Sprintf("%s.%s", name, sink.Extension))
}

// Drift saves drift plot named name and returns its path
func (sink *Sink) Drift(name string, drift mr.DriftCurve, uncertainty mr.UncertaintyCurve) (string, error) {
	p, err := driftPlot(drift, uncertainty)
	if err != nil {
		return "", err
	}
	path := sink.path(name)
	if err := p.Save(sink.Width, sink.Height, path); err != nil {
		return "", errors.Wrapf(err, "Can't save drift plot %s", path)
	}
	mr.Diagf("saved drift plot %s", path)
	return path, nil
}

// MSD saves log-log plot of the curves named name and returns its path
func (sink *Sink) MSD(name string, curves map[string]mr.MSDCurve) (string, error) {
	p, err := msdPlot(curves)
	if err != nil {
		return "", err
	}
	path := sink.path(name)
	if err := p.Save(sink.Width, sink.Height, path); err != nil {
		return "", errors.Wrapf(err, "Can't save MSD plot %s", path)
	}
	mr.Diagf("saved MSD plot %s", path)
	return path, nil
}

// Drift saves drift plot to path. Format is picked by the extension of path.
func Drift(path string, drift mr.DriftCurve, uncertainty mr.UncertaintyCurve) error {
	p, err := driftPlot(drift, uncertainty)
	if err != nil {
		return err
	}
	return errors.Wrapf(p.Save(defaultWidth, defaultHeight, path), "Can't save drift plot %s", path)
}

// MSD saves log-log plot of a single curve to path
func MSD(path string, curve mr.MSDCurve) error {
	p, err := msdPlot(map[string]mr.MSDCurve{"MSD": curve})
	if err != nil {
		return err
	}
	return errors.Wrapf(p.Save(defaultWidth, defaultHeight, path), "Can't save MSD plot %s", path)
}
