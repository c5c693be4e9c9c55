package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/periscan/periscan/internal/contract"
	"github.com/periscan/periscan/schema"
)

// WriteModelResults outputs the fitted box model aligned to input times.
// Text output falls back to CSV since a long per-point table adds nothing.
func WriteModelResults(series schema.ModelSeries, cfg *contract.Config) error {
	fmtFloat := floatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, series)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
		return nil
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"time", "model_flux"}, func(csvWriter *csv.Writer) error {
				for i, t := range series.Time {
					rec := []string{fmtFloat(t), fmtFloat(series.Flux[i])}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	}
}

// WriteMaskResults outputs the boolean in-transit mask aligned to input times.
func WriteMaskResults(series schema.MaskSeries, cfg *contract.Config) error {
	fmtFloat := floatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, series)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
		return nil
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"time", "in_transit"}, func(csvWriter *csv.Writer) error {
				for i, t := range series.Time {
					rec := []string{fmtFloat(t), strconv.FormatBool(series.InTransit[i])}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	}
}
