package trackio

import (
	"encoding/csv"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/LdDl/mr-go/mr"
)

// Normalize converts raw rows of the given layout into a core track array sorted by probe, then frame.
// Probe and frame values must be integral.
func Normalize(rows [][]float64, layout Layout) (mr.TrackArray, error) {
	idx, err := layout.index()
	if err != nil {
		return nil, err
	}
	get := func(row []float64, col Column) float64 {
		i, ok := idx[col]
		if !ok {
			return 0
		}
		return row[i]
	}
	ta := make(mr.TrackArray, 0, len(rows))
	for r, row := range rows {
		if len(row) != len(layout) {
			return nil, errors.Errorf("row %d has %d values, layout expects %d", r, len(row), len(layout))
		}
		probe, frame := get(row, ColumnProbe), get(row, ColumnFrame)
		if probe != math.Trunc(probe) || frame != math.Trunc(frame) {
			return nil, errors.Errorf("row %d: probe %v and frame %v must be integers", r, probe, frame)
		}
		ta = append(ta, mr.Detection{
			Probe: int(probe),
			Sample: mr.Sample{
				Frame: int(frame),
				X:     get(row, ColumnX),
				Y:     get(row, ColumnY),
				Mass:  get(row, ColumnMass),
				Size:  get(row, ColumnSize),
				Ecc:   get(row, ColumnEcc),
			},
		})
	}
	sort.SliceStable(ta, func(i, j int) bool {
		if ta[i].Probe != ta[j].Probe {
			return ta[i].Probe < ta[j].Probe
		}
		return ta[i].Frame < ta[j].Frame
	})
	return ta, nil
}

// ReadCSV reads a table with a header line in the given layout and normalizes it
func ReadCSV(r io.Reader, layout Layout) (mr.TrackArray, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(layout)
	reader.TrimLeadingSpace = true
	if _, err := reader.Read(); err != nil {
		return nil, errors.Wrap(err, "Can't read header")
	}
	rows := make([][]float64, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "Can't read line %d", line)
		}
		row := make([]float64, len(record))
		for i, field := range record {
			row[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "Can't parse column %q on line %d", layout[i], line)
			}
		}
		rows = append(rows, row)
	}
	return Normalize(rows, layout)
}

// WriteCSV writes track array with a header line in the given layout
func WriteCSV(w io.Writer, ta mr.TrackArray, layout Layout) error {
	if _, err := layout.index(); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(layout.Header()); err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	record := make([]string, len(layout))
	for _, d := range ta {
		for i, col := range layout {
			record[i] = formatColumn(d, col)
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "Can't write row")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "Can't flush rows")
}

func formatColumn(d mr.Detection, col Column) string {
	switch col {
	case ColumnProbe:
		return strconv.Itoa(d.Probe)
	case ColumnFrame:
		return strconv.Itoa(d.Frame)
	case ColumnX:
		return strconv.FormatFloat(d.X, 'g', -1, 64)
	case ColumnY:
		return strconv.FormatFloat(d.Y, 'g', -1, 64)
	case ColumnMass:
		return strconv.FormatFloat(d.Mass, 'g', -1, 64)
	case ColumnSize:
		return strconv.FormatFloat(d.Size, 'g', -1, 64)
	case ColumnEcc:
		return strconv.FormatFloat(d.Ecc, 'g', -1, 64)
	default:
		return ""
	}
}

// WriteCurveCSV writes MSD curve. Detailed columns are included when detail is set.
func WriteCurveCSV(w io.Writer, curve mr.MSDCurve, detail bool) error {
	writer := csv.NewWriter(w)
	header := []string{"lag", "lagt", "msd"}
	if detail {
		header = append(header, "<x>", "<y>", "<r>", "<x^2>", "<y^2>", "<r^2>", "N")
	}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, rec := range curve {
		record := []string{strconv.Itoa(rec.Lag), f(rec.LagTime), f(rec.MSD)}
		if detail {
			record = append(record, f(rec.MeanDX), f(rec.MeanDY), f(rec.MeanDR), f(rec.MeanSqDX), f(rec.MeanSqDY), f(rec.MeanSqDR), f(rec.N))
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "Can't write row")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "Can't flush rows")
}

// WriteDriftCSV writes drift curve with its uncertainty side by side. Both curves must share frames.
func WriteDriftCSV(w io.Writer, drift mr.DriftCurve, uncertainty mr.UncertaintyCurve) error {
	if len(drift) != len(uncertainty) {
		return errors.Errorf("drift has %d frames, uncertainty has %d", len(drift), len(uncertainty))
	}
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"frame", "x", "y", "x_std", "y_std"}); err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i, rec := range drift {
		u := uncertainty[i]
		if err := writer.Write([]string{strconv.Itoa(rec.Frame), f(rec.X), f(rec.Y), f(u.X), f(u.Y)}); err != nil {
			return errors.Wrap(err, "Can't write row")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "Can't flush rows")
}
