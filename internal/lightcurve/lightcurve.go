// Package lightcurve loads time series photometry from CSV and Parquet files
// into unit-tagged arrays ready for periodogram analysis.
package lightcurve

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/periscan/periscan/internal/parquet"
	"github.com/periscan/periscan/internal/quantity"
)

// LightCurve holds loaded observations. FluxErr is nil when the input file
// carries no error column.
type LightCurve struct {
	Time    quantity.Array
	Flux    quantity.Array
	FluxErr *quantity.Array
}

// NumPoints returns the number of observations.
func (lc *LightCurve) NumPoints() int { return lc.Time.Len() }

// HasErrors reports whether per-point flux uncertainties are available.
func (lc *LightCurve) HasErrors() bool { return lc.FluxErr != nil }

// Load reads a light curve from path, dispatching on the file extension.
// Supported formats are CSV (.csv) and Parquet (.parquet, .pq). The columns
// are time, flux and an optional flux error. Unit names tag the loaded
// arrays; empty names leave them plain.
func Load(path, timeUnitName, fluxUnitName string) (*LightCurve, error) {
	timeUnit, err := quantity.ParseUnit(timeUnitName)
	if err != nil {
		return nil, fmt.Errorf("time unit: %w", err)
	}
	fluxUnit, err := quantity.ParseUnit(fluxUnitName)
	if err != nil {
		return nil, fmt.Errorf("flux unit: %w", err)
	}

	var t, y []float64
	var dy []float64
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		t, y, dy, err = readCSV(path)
	case ".parquet", ".pq":
		t, y, dy, err = readParquet(path)
	default:
		return nil, fmt.Errorf("unsupported light curve format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if len(t) == 0 {
		return nil, fmt.Errorf("light curve %s contains no observations", path)
	}

	lc := &LightCurve{
		Time: quantity.Array{Values: t, Unit: timeUnit},
		Flux: quantity.Array{Values: y, Unit: fluxUnit},
	}
	if dy != nil {
		lc.FluxErr = &quantity.Array{Values: dy, Unit: fluxUnit}
	}
	return lc, nil
}

// readCSV reads time,flux[,flux_err] rows. A header row is detected by
// attempting to parse the first row as numbers; rows where the error column
// is empty are treated as having no error, which downgrades the whole file
// to errorless to keep the arrays aligned.
func readCSV(path string) (t, y, dy []float64, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open light curve: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil, nil
	}

	start := 0
	if !isNumericRow(records[0]) {
		start = 1
	}

	hasErrs := true
	for i := start; i < len(records); i++ {
		row := records[i]
		if len(row) < 2 || len(row) > 3 {
			return nil, nil, nil, fmt.Errorf("row %d: expected 2 or 3 columns, got %d", i+1, len(row))
		}
		tv, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("row %d: bad time value %q", i+1, row[0])
		}
		yv, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("row %d: bad flux value %q", i+1, row[1])
		}
		t = append(t, tv)
		y = append(y, yv)

		if len(row) == 3 && strings.TrimSpace(row[2]) != "" {
			ev, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("row %d: bad flux error value %q", i+1, row[2])
			}
			dy = append(dy, ev)
		} else {
			hasErrs = false
		}
	}
	if !hasErrs {
		dy = nil
	}
	return t, y, dy, nil
}

func isNumericRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	for _, field := range row {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
			return false
		}
	}
	return true
}

// readParquet reads time/flux/flux_err columns. The file is errorless when
// any row has a null flux_err.
func readParquet(path string) (t, y, dy []float64, err error) {
	rows, err := parquet.ReadLightCurve(path)
	if err != nil {
		return nil, nil, nil, err
	}

	t = make([]float64, len(rows))
	y = make([]float64, len(rows))
	dy = make([]float64, 0, len(rows))
	hasErrs := true
	for i, row := range rows {
		t[i] = row.Time
		y[i] = row.Flux
		if row.FluxErr != nil {
			dy = append(dy, *row.FluxErr)
		} else {
			hasErrs = false
		}
	}
	if !hasErrs {
		dy = nil
	}
	return t, y, dy, nil
}
