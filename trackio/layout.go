// Package trackio reads and writes track arrays as CSV with an explicit column layout.
package trackio

import (
	"strings"

	"github.com/pkg/errors"
)

// Column is a named track array column
type Column string

const (
	ColumnProbe Column = "probe"
	ColumnFrame Column = "frame"
	ColumnX     Column = "x"
	ColumnY     Column = "y"
	ColumnMass  Column = "mass"
	ColumnSize  Column = "size"
	ColumnEcc   Column = "ecc"
)

// Layout is column order of a table
type Layout []Column

var (
	// CoreLayout is the order used by the analysis
	CoreLayout = Layout{ColumnProbe, ColumnFrame, ColumnX, ColumnY, ColumnMass, ColumnSize, ColumnEcc}
	// TrackerLayout is the order the tracker emits its tables in
	TrackerLayout = Layout{ColumnX, ColumnY, ColumnMass, ColumnSize, ColumnEcc, ColumnFrame, ColumnProbe}
)

// ParseLayout accepts "core" or "tracker"
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(s) {
	case "core", "":
		return CoreLayout, nil
	case "tracker":
		return TrackerLayout, nil
	default:
		return nil, errors.Errorf("unknown column layout %q", s)
	}
}

// index returns position of every column. Probe, frame, x and y are mandatory.
func (layout Layout) index() (map[Column]int, error) {
	idx := make(map[Column]int, len(layout))
	for i, col := range layout {
		if _, ok := idx[col]; ok {
			return nil, errors.Errorf("duplicate column %q", col)
		}
		idx[col] = i
	}
	for _, col := range []Column{ColumnProbe, ColumnFrame, ColumnX, ColumnY} {
		if _, ok := idx[col]; !ok {
			return nil, errors.Errorf("layout misses column %q", col)
		}
	}
	return idx, nil
}

// Header returns column names
func (layout Layout) Header() []string {
	header := make([]string, len(layout))
	for i, col := range layout {
		header[i] = string(col)
	}
	return header
}
