package trackio

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/LdDl/mr-go/mr"
)

// ReadDetections reads unlinked per-frame detections. Columns are matched by header name:
// frame, x and y are mandatory, mass, size and ecc are optional, the rest are ignored.
func ReadDetections(r io.Reader) ([]mr.Sample, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "Can't read header")
	}
	idx := make(map[Column]int, len(header))
	for i, name := range header {
		idx[Column(strings.ToLower(strings.TrimSpace(name)))] = i
	}
	for _, col := range []Column{ColumnFrame, ColumnX, ColumnY} {
		if _, ok := idx[col]; !ok {
			return nil, errors.Errorf("detections miss column %q", col)
		}
	}

	samples := make([]mr.Sample, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "Can't read line %d", line)
		}
		values := make(map[Column]float64, len(idx))
		for col, i := range idx {
			switch col {
			case ColumnFrame, ColumnX, ColumnY, ColumnMass, ColumnSize, ColumnEcc:
			default:
				continue
			}
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "Can't parse column %q on line %d", col, line)
			}
			values[col] = v
		}
		frame := values[ColumnFrame]
		if frame != math.Trunc(frame) {
			return nil, errors.Errorf("line %d: frame %v must be an integer", line, frame)
		}
		samples = append(samples, mr.Sample{
			Frame: int(frame),
			X:     values[ColumnX],
			Y:     values[ColumnY],
			Mass:  values[ColumnMass],
			Size:  values[ColumnSize],
			Ecc:   values[ColumnEcc],
		})
	}
	return samples, nil
}
