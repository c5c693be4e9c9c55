package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/periscan/periscan/internal/contract"
	"github.com/periscan/periscan/schema"
)

// WriteGridResults outputs the generated trial period grid, dispatching
// based on the output format configured. Text output prints only the grid
// summary; CSV and JSON carry the full grid.
func WriteGridResults(grid schema.GridSummary, cfg *contract.Config) error {
	fmtFloat := floatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, grid)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeGridCSVResults(grid, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGridSummary(grid, fmtFloat, w)
		}, "Wrote summary")
	}
	return nil
}

// writeGridCSVResults writes the full grid as index,period rows.
func writeGridCSVResults(grid schema.GridSummary, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, []string{"index", "period"}, func(csvWriter *csv.Writer) error {
			for i, p := range grid.Periods {
				if err := csvWriter.Write([]string{strconv.Itoa(i), fmtFloat(p)}); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeGridSummary prints the human-readable grid summary.
func writeGridSummary(grid schema.GridSummary, fmtFloat func(float64) string, w io.Writer) error {
	unit := grid.TimeUnit
	if unit == "" {
		unit = "-"
	}
	lines := []string{
		fmt.Sprintf("Trial periods:   %d", grid.Count),
		fmt.Sprintf("Minimum period:  %s", fmtFloat(grid.MinPeriod)),
		fmt.Sprintf("Maximum period:  %s", fmtFloat(grid.MaxPeriod)),
		fmt.Sprintf("Frequency step:  %.6g", grid.FrequencyStep),
		fmt.Sprintf("Time unit:       %s", unit),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
